// Package testutil provides shared test fixtures, most notably an
// in-memory fake of the ResourceHub notification API.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/th33k/resourcehub-console/internal/model"
)

// FakeAPI is an in-memory ResourceHub notification service behind an
// httptest server. Notifications are served newest-first in insertion
// order; mutations are idempotent the way the real service is.
type FakeAPI struct {
	Server *httptest.Server

	mu            sync.Mutex
	notifications []model.Notification
	unreadFixed   *int

	// FailList makes GET /notification return HTTP 500.
	FailList bool

	// FailMutations makes mark-read and delete return HTTP 500.
	FailMutations bool

	// ListCalls counts GET /notification requests.
	ListCalls int

	// CountCalls counts GET /unreadCount requests.
	CountCalls int
}

// NewFakeAPI starts a fake notification service. It is shut down
// automatically when the test completes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake service.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// SetNotifications replaces the served notification list.
func (f *FakeAPI) SetNotifications(records ...model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append([]model.Notification(nil), records...)
}

// Notifications returns a copy of the current server-side list.
func (f *FakeAPI) Notifications() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Notification(nil), f.notifications...)
}

// SetUnreadCount pins the reported unread count to a fixed value
// instead of deriving it from the notification list.
func (f *FakeAPI) SetUnreadCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unreadFixed = &n
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/notification":
		f.ListCalls++
		if f.FailList {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.notifications)

	case r.Method == http.MethodGet && r.URL.Path == "/unreadCount":
		f.CountCalls++
		count := 0
		if f.unreadFixed != nil {
			count = *f.unreadFixed
		} else {
			for _, n := range f.notifications {
				if !n.IsRead {
					count++
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"unread_count": count})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/markread/"):
		if f.FailMutations {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/markread/")
		for i := range f.notifications {
			if f.notifications[i].ID == id {
				f.notifications[i].IsRead = true
			}
		}
		// Marking an unknown or already-read id is a benign no-op.
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/deleteNotification/"):
		if f.FailMutations {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/deleteNotification/")
		kept := f.notifications[:0]
		for _, n := range f.notifications {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		f.notifications = kept
		// Deleting an already-absent id succeeds.
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// StaticAuth returns an AuthFunc-compatible closure supplying a fixed
// authorization header value.
func StaticAuth(header string) func() (string, error) {
	return func() (string, error) {
		return header, nil
	}
}
