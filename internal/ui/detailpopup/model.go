// Package detailpopup implements the notification detail popup: a
// single-selection overlay showing one notification at a time.
package detailpopup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/notify"
	"github.com/th33k/resourcehub-console/internal/theme"
)

// CloseMsg signals the parent to close the popup.
type CloseMsg struct{}

// MarkReadMsg asks the parent to mark the shown notification as read.
type MarkReadMsg struct {
	ID string
}

// DeleteMsg asks the parent to delete the shown notification.
type DeleteMsg struct {
	ID string
}

// Model is the detail popup. At most one notification is shown at a
// time: Open replaces any prior selection, Close clears it with no
// memory of the last-viewed record.
type Model struct {
	record   *model.Notification
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a closed detail popup.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Open shows the given notification, replacing any prior selection.
func (m *Model) Open(n model.Notification) {
	record := n
	m.record = &record
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Close hides the popup and clears the selection.
func (m *Model) Close() {
	m.record = nil
}

// IsOpen reports whether a notification is currently shown.
func (m Model) IsOpen() bool {
	return m.record != nil
}

// CurrentID returns the id of the shown notification, or "" when closed.
func (m Model) CurrentID() string {
	if m.record == nil {
		return ""
	}
	return m.record.ID
}

// Update handles messages while the popup is open. Mark-read and delete
// are forwarded to the parent; the popup itself stays open until the
// parent confirms the mutation succeeded.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.record == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return CloseMsg{}
			}

		case key.Matches(msg, m.keys.MarkRead):
			// A read record exposes no mark-read action.
			if !m.record.IsRead {
				id := m.record.ID
				return m, func() tea.Msg {
					return MarkReadMsg{ID: id}
				}
			}

		case key.Matches(msg, m.keys.Delete):
			id := m.record.ID
			return m, func() tea.Msg {
				return DeleteMsg{ID: id}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the popup content.
func (m Model) View() string {
	if m.record == nil {
		return ""
	}

	return theme.PopupStyle.
		Width(min(m.width-4, 80)).
		Render(m.viewport.View())
}

// renderContent builds the full popup content string for the viewport.
func (m Model) renderContent() string {
	if m.record == nil {
		return ""
	}

	n := *m.record
	cat := notify.Classify(n)

	var sections []string

	// Title line
	title := n.Title
	if title == "" {
		title = cat.Label()
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(title))

	// Badges line: category + priority
	catBadge := theme.CategoryStyle(cat).Render(cat.Icon() + " " + cat.Label())
	priBadge := theme.PriorityStyle(n.Priority).Render(
		notify.PriorityLabel(n.Priority),
	)
	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top, catBadge, "  ", priBadge,
	))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if n.Sender != nil && n.Sender.Username != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("From:"),
			valStyle.Render(n.Sender.Username),
		))
	}
	if n.CreatedAt != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Date:"),
			valStyle.Render(n.DisplayCreatedAt()),
		))
	}
	if n.IsRead {
		sections = append(sections, metaStyle.Render("Read"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-8, 72)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	body := n.Message
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No message")
	}
	sections = append(sections, body)

	// Footer hints; mark-read disappears once the record is read.
	hints := "esc close | d delete"
	if !n.IsRead {
		hints = "esc close | m mark read | d delete"
	}
	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(hints))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the popup dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.record != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
