// Package app wires the notification core, the poller, and the UI views
// into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/th33k/resourcehub-console/internal/credential"
	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/notify"
	"github.com/th33k/resourcehub-console/internal/source/resourcehub"
	appsync "github.com/th33k/resourcehub-console/internal/sync"
	"github.com/th33k/resourcehub-console/internal/ui"
	"github.com/th33k/resourcehub-console/internal/ui/command"
	"github.com/th33k/resourcehub-console/internal/ui/detailpopup"
	"github.com/th33k/resourcehub-console/internal/ui/dropdown"
	"github.com/th33k/resourcehub-console/internal/ui/help"
	"github.com/th33k/resourcehub-console/internal/ui/notiflist"
	"github.com/th33k/resourcehub-console/internal/ui/settings"
)

// opTimeout bounds a single store refresh or lifecycle mutation.
const opTimeout = 30 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewDropdown
	ViewSettings
	ViewHelp
	ViewCommand
)

// mutationOp identifies a lifecycle operation.
type mutationOp int

const (
	opMarkRead mutationOp = iota
	opDelete
)

// refreshDoneMsg reports the outcome of a store refresh.
type refreshDoneMsg struct {
	err error
}

// mutationDoneMsg reports the outcome of a lifecycle mutation.
type mutationDoneMsg struct {
	op  mutationOp
	id  string
	err error
}

// primedMsg reports that the cached snapshot was loaded at startup.
type primedMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and the notification core.
type Model struct {
	cfg        *model.AppConfig
	configPath string

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	ready        bool

	store   *notify.Store
	manager *notify.Manager
	poller  *appsync.Poller
	cache   notify.Cache

	list     notiflist.Model
	popup    detailpopup.Model
	dropdown dropdown.Model
	settings settings.Model
	helpView help.Model
	command  command.Model

	unreadCount int
	notices     []notice
}

// New creates the root application model. cache may be nil when the
// local snapshot cache is unavailable.
func New(cfg *model.AppConfig, configPath string, cache notify.Cache) Model {
	k := keys.DefaultKeyMap()

	client := resourcehub.NewClient(cfg.Server.BaseURL, credential.AuthHeader)
	store := notify.NewStore(client, cache)
	manager := notify.NewManager(client, store)
	poller := appsync.New(
		client,
		time.Duration(cfg.PollIntervalMS)*time.Millisecond,
	)

	return Model{
		cfg:        cfg,
		configPath: configPath,
		keys:       k,
		store:      store,
		manager:    manager,
		poller:     poller,
		cache:      cache,
		list:       notiflist.New(store, k, cfg.Display.PageSize, 80, 24),
		popup:      detailpopup.New(k, 80, 24),
		dropdown:   dropdown.New(store, k, cfg.Display.DropdownRows, 80, 24),
		settings:   settings.New(cfg, configPath, 80, 24),
		helpView:   help.New(k, 80, 24),
		command:    command.New(80, 24),
	}
}

// pollerMode maps the configured role to a polling cadence: admin
// sessions fetch the unread count once, user sessions poll.
func (m Model) pollerMode() appsync.Mode {
	if m.cfg.Role == "admin" {
		return appsync.ModeOnce
	}
	return appsync.ModeRecurring
}

// Init primes the store from the cache, starts the poller, and issues
// the initial refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.primeCache(),
		m.refresh(),
		m.poller.Start(m.pollerMode()),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.list.SetSize(contentWidth, contentHeight)
		m.popup.SetSize(contentWidth, contentHeight)
		m.dropdown.SetSize(contentWidth, contentHeight)
		m.settings.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.command.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case primedMsg:
		// A cache miss is not worth a notice; the first refresh covers it.
		m.list.Refreshed()
		m.dropdown.Refreshed()
		return m, nil

	case refreshDoneMsg:
		if msg.err != nil {
			return m.showNotice("Could not load notifications")
		}
		m.list.Refreshed()
		m.dropdown.Refreshed()
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case appsync.UnreadCountMsg:
		m.unreadCount = msg.Count
		return m, m.poller.WaitForNext()

	case noticeExpiredMsg:
		m.expireNotice(msg.id)
		return m, nil

	case notiflist.SelectedMsg:
		if n, ok := m.store.Get(msg.ID); ok {
			m.popup.Open(n)
			m.previousView = m.currentView
			m.currentView = ViewDetail
		}
		return m, nil

	case notiflist.MarkReadMsg:
		return m, m.markRead(msg.ID)

	case notiflist.DeleteMsg:
		return m, m.delete(msg.ID)

	case notiflist.RefreshMsg:
		return m, m.refresh()

	case detailpopup.CloseMsg:
		m.popup.Close()
		m.currentView = ViewList
		return m, nil

	case detailpopup.MarkReadMsg:
		return m, m.markRead(msg.ID)

	case detailpopup.DeleteMsg:
		return m, m.delete(msg.ID)

	case dropdown.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case dropdown.OpenListMsg:
		m.currentView = ViewList
		return m, nil

	case settings.DoneMsg:
		if msg.Saved && msg.Config != nil {
			return m.restartSession(msg.Config)
		}
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		return m.handleGlobalKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the current
// view, then falls through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.poller.Stop()
		return m, tea.Quit

	case "q":
		if m.currentView == ViewList {
			m.poller.Stop()
			return m, tea.Quit
		}

	case "?":
		if m.currentView == ViewSettings || m.currentView == ViewCommand {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case ":":
		if m.currentView == ViewSettings {
			break
		}
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.command.Focus()

	case "s":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewSettings
			m.settings = settings.New(
				m.cfg,
				m.configPath,
				m.layout.ContentWidth(),
				m.layout.ContentHeight(),
			)
			return m, m.settings.Init()
		}

	case "n":
		if m.currentView == ViewList {
			m.dropdown.Reset()
			m.previousView = m.currentView
			m.currentView = ViewDropdown
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// handleMutationDone reconciles UI state after a lifecycle mutation. A
// RefreshError means the mutation itself succeeded, so the popup still
// closes; only a failed mutation leaves it open for a retry.
func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	succeeded := msg.err == nil || notify.IsRefreshError(msg.err)

	if succeeded {
		m.list.Refreshed()
		m.dropdown.Refreshed()
		if m.popup.IsOpen() && m.popup.CurrentID() == msg.id {
			m.popup.Close()
			if m.currentView == ViewDetail {
				m.currentView = ViewList
			}
		}
		if notify.IsRefreshError(msg.err) {
			return m.showNotice("Updated, but the list could not be reloaded")
		}
		return m, nil
	}

	switch msg.op {
	case opMarkRead:
		return m.showNotice("Could not mark the notification as read")
	default:
		return m.showNotice("Could not delete the notification")
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "refresh", "sync":
		return m, m.refresh()
	case "quit", "q":
		m.poller.Stop()
		return m, tea.Quit
	case "settings", "connect":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		m.settings = settings.New(
			m.cfg,
			m.configPath,
			m.layout.ContentWidth(),
			m.layout.ContentHeight(),
		)
		return m, m.settings.Init()
	case "notifications", "list":
		m.currentView = ViewList
		return m, nil
	case "recent":
		m.dropdown.Reset()
		m.currentView = ViewDropdown
		return m, nil
	default:
		return m.showNotice(fmt.Sprintf("Unknown command: %s", cmd))
	}
}

// restartSession rebuilds the client, store, manager, and poller against
// the saved configuration. The poller is stopped exactly once; the new
// session owns a fresh one.
func (m Model) restartSession(cfg *model.AppConfig) (tea.Model, tea.Cmd) {
	m.poller.Stop()

	m.cfg = cfg
	client := resourcehub.NewClient(cfg.Server.BaseURL, credential.AuthHeader)
	m.store = notify.NewStore(client, m.cache)
	m.manager = notify.NewManager(client, m.store)
	m.poller = appsync.New(
		client,
		time.Duration(cfg.PollIntervalMS)*time.Millisecond,
	)

	width := m.layout.ContentWidth()
	height := m.layout.ContentHeight()
	m.list = notiflist.New(m.store, m.keys, cfg.Display.PageSize, width, height)
	m.dropdown = dropdown.New(m.store, m.keys, cfg.Display.DropdownRows, width, height)
	m.popup.Close()
	m.currentView = ViewList

	return m, tea.Batch(
		m.refresh(),
		m.poller.Start(m.pollerMode()),
	)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	case ViewDetail:
		m.popup, cmd = m.popup.Update(msg)
	case ViewDropdown:
		m.dropdown, cmd = m.dropdown.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.command, cmd = m.command.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	badge := ""
	if m.unreadCount > 0 {
		badge = fmt.Sprintf("%d unread", m.unreadCount)
	}

	header := m.layout.RenderHeader("ResourceHub", badge)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.currentNotice())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.popup.View()
	case ViewDropdown:
		return m.dropdown.View()
	case ViewSettings:
		return m.settings.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.command.View()
	default:
		return m.list.View()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewDetail:
		return "esc close | m mark read | d delete | j/k scroll"
	case ViewDropdown:
		return "h/l page | enter all notifications | esc close"
	case ViewSettings:
		return "enter next | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close | enter execute | esc back"
	default:
		return "q quit | ? help | enter open | m read | d delete | r refresh | n recent | s settings"
	}
}

// showNotice appends a transient notice and schedules its expiry.
func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	n, cmd := newNotice(text)
	m.notices = append(m.notices, n)
	return m, cmd
}

// currentNotice returns the most recent active notice text, if any.
func (m Model) currentNotice() string {
	if len(m.notices) == 0 {
		return ""
	}
	return m.notices[len(m.notices)-1].text
}

// primeCache loads the cached snapshot before the first fetch completes.
func (m Model) primeCache() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return primedMsg{err: s.Prime(ctx)}
	}
}

// refresh returns a command that re-fetches the notification list.
func (m Model) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return refreshDoneMsg{err: s.Refresh(ctx)}
	}
}

// markRead returns a command that marks a notification read and
// reconciles local state.
func (m Model) markRead(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return mutationDoneMsg{
			op:  opMarkRead,
			id:  id,
			err: mgr.MarkRead(ctx, id),
		}
	}
}

// delete returns a command that deletes a notification and reconciles
// local state.
func (m Model) delete(id string) tea.Cmd {
	mgr := m.manager
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return mutationDoneMsg{
			op:  opDelete,
			id:  id,
			err: mgr.Delete(ctx, id),
		}
	}
}
