package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// noticeDuration is how long a transient notice stays in the status bar.
const noticeDuration = 4 * time.Second

// notice is a transient, non-blocking user-visible message. Failures at
// every operation boundary surface as notices; nothing propagates past
// them or crashes the surrounding view.
type notice struct {
	id   uuid.UUID
	text string
}

// noticeExpiredMsg clears a notice after its display duration.
type noticeExpiredMsg struct {
	id uuid.UUID
}

// newNotice creates a notice and the command that expires it.
func newNotice(text string) (notice, tea.Cmd) {
	n := notice{id: uuid.New(), text: text}
	cmd := tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: n.id}
	})
	return n, cmd
}

// expireNotice removes the notice with the given id.
func (m *Model) expireNotice(id uuid.UUID) {
	for i, n := range m.notices {
		if n.id == id {
			m.notices = append(m.notices[:i], m.notices[i+1:]...)
			return
		}
	}
}
