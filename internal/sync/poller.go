// Package sync owns the unread-count poller: a single per-session
// service that keeps the unread notification counter fresh and publishes
// updates to the UI through the Bubble Tea message stream.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects the polling cadence.
type Mode int

const (
	// ModeOnce fetches the unread count a single time on start. Used by
	// administrative sessions.
	ModeOnce Mode = iota

	// ModeRecurring fetches on start and then on every interval tick
	// until Stop is called. Used by standard-user sessions.
	ModeRecurring
)

// UnreadCountMsg is a tea.Msg carrying a freshly fetched unread count.
type UnreadCountMsg struct {
	Count int
}

// CountService is the slice of the API the poller depends on.
type CountService interface {
	UnreadCount(ctx context.Context) (int, error)
}

// fetchTimeout is the maximum time allowed for a single count fetch.
const fetchTimeout = 10 * time.Second

// Poller is the single owner of the unread counter for a session.
// Display surfaces read the latest committed value via Count or receive
// updates as UnreadCountMsg messages; they never fetch independently.
//
// Each tick is fire-and-forget: a slow response does not delay the next
// tick, and the counter is idempotently overwritten by whichever
// response completes last.
type Poller struct {
	svc      CountService
	interval time.Duration

	countCh chan int
	stopCh  chan struct{}

	mu      gosync.Mutex
	count   int
	running bool
	stopped bool
}

// New creates a Poller fetching from svc on the given interval. The
// interval is only used in ModeRecurring.
func New(svc CountService, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{
		svc:      svc,
		interval: interval,
		countCh:  make(chan int, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that delivers UnreadCountMsg messages to the Bubble Tea
// runtime. Calling Start more than once is a no-op.
func (p *Poller) Start(mode Mode) tea.Cmd {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.run(mode)

	return p.waitForCount()
}

// Stop halts the polling loop. It is idempotent; after Stop returns no
// further fetches are issued.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stopCh)
}

// Count returns the latest committed unread count.
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// WaitForNext returns a tea.Cmd that waits for the next published count.
// It should be re-issued after each UnreadCountMsg to keep listening.
func (p *Poller) WaitForNext() tea.Cmd {
	return p.waitForCount()
}

// run is the polling loop. The initial fetch happens immediately in both
// modes; ModeRecurring then ticks until stopped.
func (p *Poller) run(mode Mode) {
	p.fetch()

	if mode == ModeOnce {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			go p.fetch()
		}
	}
}

// fetch performs one unread-count request. A failed fetch keeps the
// previous value and publishes nothing; the next scheduled tick is the
// retry.
func (p *Poller) fetch() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	count, err := p.svc.UnreadCount(ctx)
	if err != nil {
		return
	}

	p.mu.Lock()
	p.count = count
	p.mu.Unlock()

	select {
	case p.countCh <- count:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}

// waitForCount returns a tea.Cmd that blocks until the next published
// count and converts it into an UnreadCountMsg.
func (p *Poller) waitForCount() tea.Cmd {
	return func() tea.Msg {
		select {
		case count := <-p.countCh:
			return UnreadCountMsg{Count: count}
		case <-p.stopCh:
			return nil
		}
	}
}
