// Package notiflist implements the full-page notification list view.
package notiflist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/notify"
	"github.com/th33k/resourcehub-console/internal/pager"
	"github.com/th33k/resourcehub-console/internal/theme"
)

// SelectedMsg is sent when the user opens a notification's detail popup.
type SelectedMsg struct {
	ID string
}

// MarkReadMsg asks the parent to mark a notification as read.
type MarkReadMsg struct {
	ID string
}

// DeleteMsg asks the parent to delete a notification.
type DeleteMsg struct {
	ID string
}

// RefreshMsg asks the parent to re-fetch the notification list.
type RefreshMsg struct{}

// Model is the full-page notification list. Pages use the one-based
// convention: the first page is page 1.
type Model struct {
	store  *notify.Store
	pages  *pager.Pager
	keys   *keys.KeyMap
	cursor int
	width  int
	height int
}

// New creates a notification list over the given store, showing
// pageSize rows per page.
func New(s *notify.Store, k *keys.KeyMap, pageSize, width, height int) Model {
	return Model{
		store:  s,
		pages:  pager.New(pageSize, pager.OneBased),
		keys:   k,
		width:  width,
		height: height,
	}
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

// handleKeys processes navigation and action keys.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	page := m.currentPage()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(page)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.pages.Next(m.store.Len())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.pages.Prev(m.store.Len())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if n, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return SelectedMsg{ID: n.ID}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.MarkRead):
		// A read record exposes no mark-read action.
		if n, ok := m.selected(); ok && !n.IsRead {
			return m, func() tea.Msg {
				return MarkReadMsg{ID: n.ID}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return DeleteMsg{ID: n.ID}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg {
			return RefreshMsg{}
		}
	}

	return m, nil
}

// Refreshed reconciles paging state after the underlying snapshot
// changed. If the list shrank below the active page, the pager moves to
// the last valid page; the cursor is clamped into the resulting page.
func (m *Model) Refreshed() {
	m.pages.Clamp(m.store.Len())
	m.clampCursor()
}

// SetPageSize changes the rows-per-page and returns to the first page.
func (m *Model) SetPageSize(size int) {
	m.pages.SetPageSize(size)
	m.cursor = 0
}

// currentPage returns the records on the active page.
func (m Model) currentPage() []model.Notification {
	return pager.Slice(m.pages, m.store.Snapshot())
}

// selected returns the record under the cursor, if any.
func (m Model) selected() (model.Notification, bool) {
	page := m.currentPage()
	if m.cursor < 0 || m.cursor >= len(page) {
		return model.Notification{}, false
	}
	return page[m.cursor], true
}

// clampCursor keeps the cursor inside the active page.
func (m *Model) clampCursor() {
	page := m.currentPage()
	if len(page) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(page) {
		m.cursor = len(page) - 1
	}
}

// View renders the list view.
func (m Model) View() string {
	snapshot := m.store.Snapshot()
	if len(snapshot) == 0 {
		return m.renderEmptyState()
	}

	page := pager.Slice(m.pages, snapshot)

	var rows []string
	rows = append(rows, theme.HeaderStyle.Render("Notifications"))
	rows = append(rows, "")

	for i, n := range page {
		rows = append(rows, m.renderRow(n, i == m.cursor))
	}

	rows = append(rows, "")
	rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
		"Page %d/%d · %d notifications",
		m.pages.Page(),
		m.pages.PageCount(len(snapshot)),
		len(snapshot),
	)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderRow renders a single notification row.
func (m Model) renderRow(n model.Notification, selected bool) string {
	cat := notify.Classify(n)

	marker := " "
	if !n.IsRead {
		marker = "●"
	}

	title := n.Title
	if title == "" {
		title = cat.Label()
	}

	line := fmt.Sprintf(
		"%s %s %s  %s  %s",
		marker,
		cat.Icon(),
		theme.CategoryStyle(cat).Render(cat.Label()),
		title,
		theme.HelpStyle.Render(n.DisplayCreatedAt()),
	)

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// renderEmptyState shows guidance text when no notifications exist.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No notifications.\n\nPress r to refresh.")
}

// SetSize updates the list view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
