package notify

import (
	"testing"

	"github.com/th33k/resourcehub-console/internal/model"
)

func TestClassifyRawTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rawType string
		want    Category
	}{
		{"maintenance request", "maintenance_request", CategoryMaintenance},
		{"maintenance uppercase", "MAINTENANCE", CategoryMaintenance},
		{"asset accepted", "asset_request_accepted", CategoryAssetAccept},
		{"asset rejected", "asset_request_rejected", CategoryAssetReject},
		{"unknown type", "announcement", CategoryDefault},
		{"empty type", "", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(model.Notification{RawType: tt.rawType})
			if got != tt.want {
				t.Errorf("Classify(rawType=%q) = %v, want %v", tt.rawType, got, tt.want)
			}
		})
	}
}

// A raw type containing both "maintenance" and "accept" must classify as
// maintenance: the rule order is maintenance, then accept, then reject.
func TestClassifyRuleOrder(t *testing.T) {
	t.Parallel()

	got := Classify(model.Notification{RawType: "maintenance_accepted"})
	if got != CategoryMaintenance {
		t.Errorf("Classify(maintenance_accepted) = %v, want CategoryMaintenance", got)
	}
}

func TestClassifyTitleOverride(t *testing.T) {
	t.Parallel()

	// The override is case-insensitive and wins over the raw type.
	titles := []string{
		"Asset Request Accepted",
		"asset request accepted",
		"ASSET REQUEST ACCEPTED",
	}
	for _, title := range titles {
		got := Classify(model.Notification{
			RawType: "maintenance_request",
			Title:   title,
		})
		if got != CategoryAssetAccept {
			t.Errorf("Classify(title=%q) = %v, want CategoryAssetAccept", title, got)
		}
	}

	got := Classify(model.Notification{
		RawType: "maintenance_request",
		Title:   "Asset Request Rejected",
	})
	if got != CategoryAssetReject {
		t.Errorf("Classify(rejected title) = %v, want CategoryAssetReject", got)
	}

	// A title that merely contains the phrase is not an override.
	got = Classify(model.Notification{Title: "your asset request accepted yesterday"})
	if got != CategoryDefault {
		t.Errorf("Classify(partial title) = %v, want CategoryDefault", got)
	}
}

func TestClassifyNeverPanicsAndIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []model.Notification{
		{},
		{RawType: "", Title: ""},
		{RawType: "   ", Title: "   "},
		{RawType: "ACCEPTREJECT", Title: "noise"},
	}
	valid := map[Category]bool{
		CategoryDefault:     true,
		CategoryMaintenance: true,
		CategoryAssetAccept: true,
		CategoryAssetReject: true,
	}
	for _, n := range inputs {
		if got := Classify(n); !valid[got] {
			t.Errorf("Classify(%+v) = %v, not a valid category", n, got)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	n := model.Notification{RawType: "asset_accept", Title: "Asset granted"}
	first := Classify(n)
	for i := 0; i < 10; i++ {
		if got := Classify(n); got != first {
			t.Fatalf("Classify not deterministic: %v then %v", first, got)
		}
	}
}

func TestNormalizePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"HIGH", "high"},
		{"high", "high"},
		{"High", "high"},
		{"medium", "medium"},
		{"Low", "low"},
		{"general", "general"},
		{"urgent", "general"},
		{"", "general"},
	}

	for _, tt := range tests {
		if got := NormalizePriority(tt.in); got != tt.want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityLabel(t *testing.T) {
	t.Parallel()

	if got := PriorityLabel("HIGH"); got != "High" {
		t.Errorf("PriorityLabel(HIGH) = %q, want High", got)
	}
	if got := PriorityLabel("urgent"); got != "General" {
		t.Errorf("PriorityLabel(urgent) = %q, want General", got)
	}
}

func TestCategoryLabelAndIcon(t *testing.T) {
	t.Parallel()

	categories := []Category{
		CategoryDefault,
		CategoryMaintenance,
		CategoryAssetAccept,
		CategoryAssetReject,
	}
	for _, c := range categories {
		if c.Label() == "" {
			t.Errorf("category %v has empty label", c)
		}
		if c.Icon() == "" {
			t.Errorf("category %v has empty icon", c)
		}
	}
}
