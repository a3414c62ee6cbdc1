// Package settings implements the connection settings form: server URL,
// API token, role, and polling interval.
package settings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/th33k/resourcehub-console/internal/credential"
	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/theme"
)

// DoneMsg signals the settings view should close. Saved reports whether
// the configuration changed.
type DoneMsg struct {
	Saved  bool
	Config *model.AppConfig
}

// savedMsg is sent after the configuration has been persisted.
type savedMsg struct {
	cfg *model.AppConfig
	err error
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form       *huh.Form
	configPath string
	width      int
	height     int
	errText    string

	formBaseURL  string
	formToken    string
	formRole     string
	formInterval string
}

// New creates a settings form pre-filled from the given configuration.
func New(cfg *model.AppConfig, configPath string, width, height int) Model {
	m := Model{
		configPath:   configPath,
		width:        width,
		height:       height,
		formBaseURL:  cfg.Server.BaseURL,
		formRole:     cfg.Role,
		formInterval: strconv.Itoa(cfg.PollIntervalMS),
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// buildForm constructs the huh form for connection settings.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Description("ResourceHub API root (e.g., https://hub.example.com/api)").
				Placeholder("https://hub.example.com/api").
				Value(&m.formBaseURL).
				Validate(validateURL),
			huh.NewInput().
				Title("API Token").
				Description("Stored in the system keyring; leave empty to keep the current token").
				EchoMode(huh.EchoModePassword).
				Value(&m.formToken),
			huh.NewSelect[string]().
				Title("Role").
				Description("User sessions poll the unread count; admin sessions fetch it once").
				Options(
					huh.NewOption("User", "user"),
					huh.NewOption("Admin", "admin"),
				).
				Value(&m.formRole),
			huh.NewInput().
				Title("Poll Interval (ms)").
				Description("Unread count refresh interval for user sessions").
				Value(&m.formInterval).
				Validate(validateInterval),
		),
	).WithWidth(m.formWidth())
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if saved, ok := msg.(savedMsg); ok {
		if saved.err != nil {
			m.errText = saved.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return DoneMsg{Saved: true, Config: saved.cfg}
		}
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg {
			return DoneMsg{Saved: false}
		}
	}

	return m, cmd
}

// save persists the form values: the token into the keyring, the rest
// into the YAML config file.
func (m Model) save() tea.Cmd {
	baseURL := strings.TrimSpace(m.formBaseURL)
	token := strings.TrimSpace(m.formToken)
	role := m.formRole
	interval, _ := strconv.Atoi(strings.TrimSpace(m.formInterval))
	path := m.configPath

	return func() tea.Msg {
		if token != "" {
			if err := credential.SetToken(token); err != nil {
				return savedMsg{err: fmt.Errorf("saving token: %w", err)}
			}
		}

		cfg, err := model.LoadConfig(path)
		if err != nil {
			return savedMsg{err: err}
		}
		cfg.Server.BaseURL = baseURL
		cfg.Role = role
		if interval > 0 {
			cfg.PollIntervalMS = interval
		}

		if err := model.SaveConfig(path, cfg); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{cfg: cfg}
	}
}

// View renders the settings form.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{
		titleStyle.Render("Connection Settings"),
		m.form.View(),
	}
	if m.errText != "" {
		sections = append(sections, theme.NoticeStyle.Render(m.errText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// formWidth returns the width for the embedded form.
func (m Model) formWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("URL is required")
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must include scheme and host (e.g., https://example.com)")
	}
	return nil
}

func validateInterval(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("interval must be a number of milliseconds")
	}
	if v <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}
