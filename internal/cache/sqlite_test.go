package cache

import (
	"context"
	"testing"

	"github.com/th33k/resourcehub-console/internal/model"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()

	c, err := NewSQLiteCache(":memory:")
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})
	return c
}

func TestSnapshotRoundTripPreservesOrder(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	records := []model.Notification{
		{
			ID:        "n3",
			RawType:   "maintenance_request",
			Title:     "Projector broken",
			Message:   "Room 4",
			Priority:  "high",
			CreatedAt: "2026-02-11 09:30:00.0",
			Sender:    &model.SenderProfile{Username: "facilities"},
		},
		{ID: "n2", Message: "Asset ready", IsRead: true},
		{ID: "n1", Message: "Welcome"},
	}

	if err := c.ReplaceSnapshot(ctx, records); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	got, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("snapshot has %d records, want 3", len(got))
	}
	for i, want := range []string{"n3", "n2", "n1"} {
		if got[i].ID != want {
			t.Errorf("record %d = %s, want %s", i, got[i].ID, want)
		}
	}

	first := got[0]
	if first.RawType != "maintenance_request" || first.Priority != "high" {
		t.Errorf("first record fields lost: %+v", first)
	}
	if first.Sender == nil || first.Sender.Username != "facilities" {
		t.Errorf("sender not preserved: %+v", first.Sender)
	}
	if got[1].Sender != nil {
		t.Errorf("record without sender came back with one: %+v", got[1].Sender)
	}
	if !got[1].IsRead || got[2].IsRead {
		t.Errorf("read flags not preserved")
	}
}

func TestReplaceSnapshotOverwrites(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	if err := c.ReplaceSnapshot(ctx, []model.Notification{
		{ID: "old1"}, {ID: "old2"},
	}); err != nil {
		t.Fatalf("first ReplaceSnapshot: %v", err)
	}
	if err := c.ReplaceSnapshot(ctx, []model.Notification{
		{ID: "new1"},
	}); err != nil {
		t.Fatalf("second ReplaceSnapshot: %v", err)
	}

	got, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(got) != 1 || got[0].ID != "new1" {
		t.Errorf("snapshot = %+v, want just new1", got)
	}
}

func TestEmptySnapshot(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	got, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot on empty cache: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty cache returned %d records", len(got))
	}

	if err := c.ReplaceSnapshot(ctx, nil); err != nil {
		t.Fatalf("ReplaceSnapshot(nil): %v", err)
	}
}
