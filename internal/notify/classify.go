// Package notify implements the notification core: classification,
// the in-memory store, and the read/delete lifecycle.
package notify

import (
	"strings"

	"github.com/th33k/resourcehub-console/internal/model"
)

// Category is the derived display classification of a notification.
type Category int

const (
	// CategoryDefault is used when no classification rule matches.
	CategoryDefault Category = iota

	// CategoryMaintenance marks maintenance-request notifications.
	CategoryMaintenance

	// CategoryAssetAccept marks approved asset requests.
	CategoryAssetAccept

	// CategoryAssetReject marks declined asset requests.
	CategoryAssetReject
)

// Label returns the human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryMaintenance:
		return "Maintenance"
	case CategoryAssetAccept:
		return "Asset Accepted"
	case CategoryAssetReject:
		return "Asset Rejected"
	default:
		return "Notification"
	}
}

// Icon returns the glyph shown next to notifications of this category.
func (c Category) Icon() string {
	switch c {
	case CategoryMaintenance:
		return "🔧"
	case CategoryAssetAccept:
		return "✔"
	case CategoryAssetReject:
		return "✘"
	default:
		return "•"
	}
}

// rule maps a predicate over the lowercased raw type and title to a
// category. Rules are evaluated in order; the first match wins.
type rule struct {
	match    func(rawType, title string) bool
	category Category
}

// titleEquals matches when the lowercased title equals want exactly.
// Title rules take precedence over type rules, so a record titled
// "Asset Request Accepted" renders with accept styling regardless of
// its raw type.
func titleEquals(want string) func(string, string) bool {
	return func(_, title string) bool {
		return title == want
	}
}

// typeContains matches when the lowercased raw type contains want.
func typeContains(want string) func(string, string) bool {
	return func(rawType, _ string) bool {
		return rawType != "" && strings.Contains(rawType, want)
	}
}

// classificationRules is the ordered rule table. Title overrides come
// first, then the raw-type substring rules in their priority order.
var classificationRules = []rule{
	{titleEquals("asset request accepted"), CategoryAssetAccept},
	{titleEquals("asset request rejected"), CategoryAssetReject},
	{typeContains("maintenance"), CategoryMaintenance},
	{typeContains("accept"), CategoryAssetAccept},
	{typeContains("reject"), CategoryAssetReject},
}

// Classify derives the display category for a notification. It is a pure
// function of the record's raw type and title: absent or unrecognized
// input always resolves to CategoryDefault.
func Classify(n model.Notification) Category {
	rawType := strings.ToLower(n.RawType)
	title := strings.ToLower(n.Title)

	for _, r := range classificationRules {
		if r.match(rawType, title) {
			return r.category
		}
	}
	return CategoryDefault
}

// priorityLabels maps normalized priority values to their display labels.
var priorityLabels = map[string]string{
	"general": "General",
	"low":     "Low",
	"medium":  "Medium",
	"high":    "High",
}

// NormalizePriority lowercases the given priority and resolves it to one
// of the four canonical values, falling back to "general" for anything
// unrecognized (including the empty string).
func NormalizePriority(priority string) string {
	p := strings.ToLower(priority)
	if _, ok := priorityLabels[p]; !ok {
		return "general"
	}
	return p
}

// PriorityLabel returns the display label for a priority value.
func PriorityLabel(priority string) string {
	return priorityLabels[NormalizePriority(priority)]
}
