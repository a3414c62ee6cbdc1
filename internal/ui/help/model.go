// Package help renders the keyboard and command reference overlay.
package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/theme"
)

// paletteEntry is one command understood by the : prompt.
type paletteEntry struct {
	name  string
	alias string
	desc  string
}

// paletteReference mirrors the commands the root model executes.
var paletteReference = []paletteEntry{
	{"refresh", "sync", "re-fetch the notification list"},
	{"notifications", "list", "open the full notification list"},
	{"recent", "", "open the compact recent panel"},
	{"settings", "connect", "open the connection settings"},
	{"quit", "q", "exit the console"},
}

// Model is the help overlay: the full keymap followed by a reference of
// the command palette entries.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates the help overlay over the given keymap.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view. The overlay is static; the
// toggle key is handled by the root model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	headingStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true

	sections := []string{
		headingStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		headingStyle.Render("Command Palette"),
	}
	sections = append(sections, m.renderPalette()...)

	return theme.PopupStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderPalette renders one aligned row per palette command.
func (m Model) renderPalette() []string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)

	rows := make([]string, 0, len(paletteReference))
	for _, c := range paletteReference {
		invocation := ":" + c.name
		if c.alias != "" {
			invocation = fmt.Sprintf(":%s, :%s", c.name, c.alias)
		}
		rows = append(rows, fmt.Sprintf(
			"%s %s",
			nameStyle.Render(fmt.Sprintf("%-24s", invocation)),
			theme.HelpStyle.Render(c.desc),
		))
	}
	return rows
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
