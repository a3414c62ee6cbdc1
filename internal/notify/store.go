package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/th33k/resourcehub-console/internal/model"
)

// Service is the slice of the ResourceHub API the notification core
// depends on.
type Service interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// Cache persists the last successful snapshot so a restarted console can
// show the last-known list before the first fetch completes. It is
// write-through only and never a source of truth for mutations.
type Cache interface {
	ReplaceSnapshot(ctx context.Context, records []model.Notification) error
	Snapshot(ctx context.Context) ([]model.Notification, error)
}

// Store is the in-memory ordered collection of notifications for the
// current viewer. The snapshot is replaced wholesale on every successful
// refresh; readers always see a complete, committed snapshot and never a
// partial update. Order is whatever the service returned (newest first);
// the store does not re-sort.
type Store struct {
	svc   Service
	cache Cache

	mu      sync.RWMutex
	records []model.Notification
}

// NewStore creates a Store backed by the given service. cache may be nil,
// in which case snapshots are not persisted across restarts.
func NewStore(svc Service, cache Cache) *Store {
	return &Store{svc: svc, cache: cache}
}

// Refresh re-fetches the full notification list from the service and
// replaces the in-memory snapshot. On failure the previous snapshot is
// retained so the list does not flash empty on a transient error; the
// error is returned for the caller to surface.
func (s *Store) Refresh(ctx context.Context) error {
	records, err := s.svc.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("refreshing notifications: %w", err)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	if s.cache != nil {
		// Persisting the snapshot is best-effort; a cache failure must
		// not fail a successful refresh.
		_ = s.cache.ReplaceSnapshot(ctx, records)
	}

	return nil
}

// Prime loads the cached snapshot into the store, if a cache is
// configured and the store is still empty. Used at startup so the UI has
// something to show before the first fetch completes.
func (s *Store) Prime(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	records, err := s.cache.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading cached notifications: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		s.records = records
	}
	return nil
}

// Snapshot returns a copy of the current notification list.
func (s *Store) Snapshot() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Notification, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the notification with the given id, if present.
func (s *Store) Get(id string) (model.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.records {
		if n.ID == id {
			return n, true
		}
	}
	return model.Notification{}, false
}

// Len returns the number of notifications in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
