package sync

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeCountService counts calls and serves a scripted unread count.
type fakeCountService struct {
	mu    gosync.Mutex
	calls int
	count int
	err   error
}

func (f *fakeCountService) UnreadCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeCountService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCountService) set(count int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count = count
	f.err = err
}

// drain runs the subscription command until a message arrives or the
// deadline passes.
func drain(t *testing.T, cmd tea.Cmd, deadline time.Duration) tea.Msg {
	t.Helper()

	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()

	select {
	case msg := <-done:
		return msg
	case <-time.After(deadline):
		t.Fatal("timed out waiting for poller message")
		return nil
	}
}

func TestInitialFetchPublishesCount(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(3, nil)

	p := New(svc, 50*time.Millisecond)
	sub := p.Start(ModeRecurring)
	defer p.Stop()

	msg := drain(t, sub, time.Second)
	count, ok := msg.(UnreadCountMsg)
	if !ok {
		t.Fatalf("msg = %T, want UnreadCountMsg", msg)
	}
	if count.Count != 3 {
		t.Errorf("count = %d, want 3", count.Count)
	}
	if p.Count() != 3 {
		t.Errorf("Count() = %d, want 3", p.Count())
	}
}

func TestModeOnceFetchesExactlyOnce(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(1, nil)

	p := New(svc, 10*time.Millisecond)
	sub := p.Start(ModeOnce)
	defer p.Stop()

	drain(t, sub, time.Second)

	// Wait several would-be intervals; no further fetches are issued.
	time.Sleep(80 * time.Millisecond)
	if got := svc.callCount(); got != 1 {
		t.Errorf("ModeOnce issued %d fetches, want 1", got)
	}
}

func TestRecurringTicksKeepFetching(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(2, nil)

	p := New(svc, 10*time.Millisecond)
	p.Start(ModeRecurring)
	defer p.Stop()

	deadline := time.Now().Add(time.Second)
	for svc.callCount() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d fetches after 1s, want at least 3", svc.callCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStopCancelsSchedule(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(1, nil)

	p := New(svc, 10*time.Millisecond)
	p.Start(ModeRecurring)

	// Let at least one fetch land, then tear down.
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	// Give any in-flight tick a moment to finish before sampling.
	time.Sleep(20 * time.Millisecond)
	before := svc.callCount()

	// Several interval durations later, no further fetch was issued.
	time.Sleep(60 * time.Millisecond)
	if after := svc.callCount(); after != before {
		t.Errorf("fetches continued after Stop: %d -> %d", before, after)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	p := New(&fakeCountService{}, 10*time.Millisecond)
	p.Start(ModeRecurring)

	p.Stop()
	p.Stop() // must not panic on double close
}

func TestFailedTickKeepsPreviousValue(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(4, nil)

	p := New(svc, 10*time.Millisecond)
	sub := p.Start(ModeRecurring)
	defer p.Stop()

	drain(t, sub, time.Second)
	if p.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", p.Count())
	}

	// Subsequent ticks fail; the committed value stays at 4 and the
	// schedule keeps running.
	svc.set(0, errors.New("service unavailable"))
	before := svc.callCount()
	deadline := time.Now().Add(time.Second)
	for svc.callCount() < before+2 {
		if time.Now().After(deadline) {
			t.Fatal("schedule stopped after a failed tick")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if p.Count() != 4 {
		t.Errorf("Count() = %d after failed ticks, want 4", p.Count())
	}
}

func TestStartTwiceIsNoOp(t *testing.T) {
	t.Parallel()

	svc := &fakeCountService{}
	svc.set(1, nil)

	p := New(svc, time.Hour)
	if cmd := p.Start(ModeOnce); cmd == nil {
		t.Fatal("first Start returned nil command")
	}
	if cmd := p.Start(ModeOnce); cmd != nil {
		t.Error("second Start returned a command, want nil")
	}
	p.Stop()
}
