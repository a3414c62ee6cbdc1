package notify_test

import (
	"context"
	"testing"

	"github.com/th33k/resourcehub-console/internal/model"
	"github.com/th33k/resourcehub-console/internal/notify"
	"github.com/th33k/resourcehub-console/internal/source/resourcehub"
	"github.com/th33k/resourcehub-console/tests/testutil"
)

func newManager(t *testing.T, api *testutil.FakeAPI) (*notify.Manager, *notify.Store) {
	t.Helper()
	client := resourcehub.NewClient(api.URL(), testutil.StaticAuth("Bearer test"))
	store := notify.NewStore(client, nil)
	return notify.NewManager(client, store), store
}

func TestMarkReadUpdatesStoreViaRefresh(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	api.SetNotifications(
		model.Notification{ID: "1", IsRead: false},
		model.Notification{ID: "2", IsRead: true},
	)

	mgr, store := newManager(t, api)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := mgr.MarkRead(context.Background(), "1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	snap := store.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d records, want 2", len(snap))
	}
	if !snap[0].IsRead || !snap[1].IsRead {
		t.Errorf("after MarkRead(1): isRead = [%v %v], want both true",
			snap[0].IsRead, snap[1].IsRead)
	}
}

func TestMarkReadFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	api.SetNotifications(model.Notification{ID: "1", IsRead: false})

	mgr, store := newManager(t, api)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	api.FailMutations = true
	err := mgr.MarkRead(context.Background(), "1")
	if err == nil {
		t.Fatal("MarkRead returned nil error while mutations are failing")
	}
	if notify.IsRefreshError(err) {
		t.Fatal("a failed mutation must not be reported as a refresh error")
	}

	// No optimistic flip: the record is still unread locally.
	if n, _ := store.Get("1"); n.IsRead {
		t.Error("record flipped to read despite the server rejecting the call")
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	api.SetNotifications(
		model.Notification{ID: "1"},
		model.Notification{ID: "2"},
	)

	mgr, store := newManager(t, api)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := mgr.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := store.Get("2"); ok {
		t.Error("record 2 still present after delete")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

// Deleting an id that is already gone is handled by the service as a
// benign no-op; the client side must not treat it as a crash.
func TestDeleteAbsentIDIsBenign(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	api.SetNotifications(model.Notification{ID: "2"})

	mgr, store := newManager(t, api)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := mgr.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := mgr.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("second Delete of absent id: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestRefreshErrorIsDistinguishable(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	api.SetNotifications(model.Notification{ID: "1", IsRead: false})

	mgr, store := newManager(t, api)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// The mutation succeeds but the follow-up list fetch fails.
	api.FailList = true
	err := mgr.MarkRead(context.Background(), "1")
	if err == nil {
		t.Fatal("expected a refresh error")
	}
	if !notify.IsRefreshError(err) {
		t.Fatalf("err = %v, want a RefreshError", err)
	}

	// The stale snapshot is retained rather than cleared.
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}
