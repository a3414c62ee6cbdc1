package detailpopup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/th33k/resourcehub-console/internal/keys"
	"github.com/th33k/resourcehub-console/internal/model"
)

func newTestPopup() Model {
	return New(keys.DefaultKeyMap(), 80, 24)
}

func TestOpenCloseStateMachine(t *testing.T) {
	t.Parallel()

	m := newTestPopup()
	if m.IsOpen() {
		t.Fatal("new popup reports open")
	}
	if m.CurrentID() != "" {
		t.Fatalf("closed popup CurrentID = %q, want empty", m.CurrentID())
	}

	m.Open(model.Notification{ID: "n1", Title: "First"})
	if !m.IsOpen() || m.CurrentID() != "n1" {
		t.Fatalf("after Open: open=%v id=%q", m.IsOpen(), m.CurrentID())
	}

	// Opening another record replaces the selection; only one popup at
	// a time.
	m.Open(model.Notification{ID: "n2", Title: "Second"})
	if m.CurrentID() != "n2" {
		t.Errorf("after second Open, CurrentID = %q, want n2", m.CurrentID())
	}

	// Close clears the selection with no memory of the last record.
	m.Close()
	if m.IsOpen() || m.CurrentID() != "" {
		t.Errorf("after Close: open=%v id=%q", m.IsOpen(), m.CurrentID())
	}
}

func TestEscEmitsClose(t *testing.T) {
	t.Parallel()

	m := newTestPopup()
	m.Open(model.Notification{ID: "n1"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Error("esc did not emit CloseMsg")
	}
}

func TestMarkReadForwardedForUnreadOnly(t *testing.T) {
	t.Parallel()

	m := newTestPopup()
	m.Open(model.Notification{ID: "n1", IsRead: false})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if cmd == nil {
		t.Fatal("m key produced no command for an unread record")
	}
	msg, ok := cmd().(MarkReadMsg)
	if !ok || msg.ID != "n1" {
		t.Fatalf("msg = %#v, want MarkReadMsg{n1}", msg)
	}

	// A read record exposes no mark-read action.
	m.Open(model.Notification{ID: "n2", IsRead: true})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if cmd != nil {
		if _, ok := cmd().(MarkReadMsg); ok {
			t.Error("mark-read emitted for an already-read record")
		}
	}
}

func TestDeleteForwarded(t *testing.T) {
	t.Parallel()

	m := newTestPopup()
	m.Open(model.Notification{ID: "n1", IsRead: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("d key produced no command")
	}
	msg, ok := cmd().(DeleteMsg)
	if !ok || msg.ID != "n1" {
		t.Fatalf("msg = %#v, want DeleteMsg{n1}", msg)
	}
}

func TestClosedPopupIgnoresKeys(t *testing.T) {
	t.Parallel()

	m := newTestPopup()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil {
		t.Error("closed popup produced a command")
	}
	if m.View() != "" {
		t.Error("closed popup rendered content")
	}
}
