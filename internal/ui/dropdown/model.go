// Package dropdown implements the compact recent-notification panel
// shown from the header, mirroring the web console's bell dropdown.
package dropdown

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/notify"
	"github.com/th33k/resourcehub-console/internal/pager"
	"github.com/th33k/resourcehub-console/internal/theme"
)

// CloseMsg signals the parent to close the panel.
type CloseMsg struct{}

// OpenListMsg asks the parent to switch to the full notification list.
type OpenListMsg struct{}

// Model is the compact panel. Row pages use the zero-based convention:
// the first block of rows is page 0.
type Model struct {
	store  *notify.Store
	rows   *pager.Pager
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a compact panel over the given store showing rowCount
// rows at a time.
func New(s *notify.Store, k *keys.KeyMap, rowCount, width, height int) Model {
	return Model{
		store:  s,
		rows:   pager.New(rowCount, pager.ZeroBased),
		keys:   k,
		width:  width,
		height: height,
	}
}

// Update handles messages for the panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Dropdown):
			return m, func() tea.Msg {
				return CloseMsg{}
			}

		case key.Matches(msg, m.keys.NextPage):
			m.rows.Next(m.store.Len())
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.rows.Prev(m.store.Len())
			return m, nil

		case key.Matches(msg, m.keys.Select):
			return m, func() tea.Msg {
				return OpenListMsg{}
			}
		}
	}
	return m, nil
}

// Reset returns the panel to its first row page.
func (m *Model) Reset() {
	m.rows.Reset()
}

// Refreshed pulls the row page back into range after the snapshot
// shrank underneath it.
func (m *Model) Refreshed() {
	m.rows.Clamp(m.store.Len())
}

// View renders the panel.
func (m Model) View() string {
	snapshot := m.store.Snapshot()

	var rows []string
	rows = append(rows, lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Recent notifications"))
	rows = append(rows, "")

	if len(snapshot) == 0 {
		rows = append(rows, theme.HelpStyle.Render("Nothing yet."))
	} else {
		for _, n := range pager.Slice(m.rows, snapshot) {
			cat := notify.Classify(n)

			marker := " "
			if !n.IsRead {
				marker = "●"
			}

			title := n.Title
			if title == "" {
				title = cat.Label()
			}

			rows = append(rows, fmt.Sprintf("%s %s %s", marker, cat.Icon(), title))
		}

		rows = append(rows, "")
		rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
			"rows %d/%d · enter all · esc close",
			m.rows.Page()+1,
			m.rows.PageCount(len(snapshot)),
		)))
	}

	return theme.PopupStyle.
		Width(min(m.width-4, 48)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
