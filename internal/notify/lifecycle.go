package notify

import (
	"context"
	"errors"
	"fmt"
)

// RefreshError reports that a mutation succeeded but the follow-up store
// refresh failed. Callers that only care about the mutation outcome
// (e.g. closing the detail popup) should treat it as success.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("notification updated, refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// IsRefreshError reports whether err (or any error in its chain) is a
// RefreshError.
func IsRefreshError(err error) bool {
	var re *RefreshError
	return errors.As(err, &re)
}

// Manager executes the state-changing notification operations and
// reconciles local state by triggering a full store refresh after each
// successful mutation. There is no optimistic local flip: the store only
// changes when the server confirms.
type Manager struct {
	svc   Service
	store *Store
}

// NewManager creates a lifecycle manager bound to the given service and
// store.
func NewManager(svc Service, store *Store) *Manager {
	return &Manager{svc: svc, store: store}
}

// MarkRead marks the notification as read on the server, then refreshes
// the store. Marking an already-read notification is a benign no-op
// handled by the server. A nil or RefreshError return means the mutation
// itself succeeded.
func (m *Manager) MarkRead(ctx context.Context, id string) error {
	if err := m.svc.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}

	if err := m.store.Refresh(ctx); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}

// Delete removes the notification on the server, then refreshes the
// store. Deleting an already-absent id is handled by the server; the
// manager does not guard against double invocation. A nil or
// RefreshError return means the mutation itself succeeded.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.svc.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}

	if err := m.store.Refresh(ctx); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}
