package feed

import (
	"context"
	"testing"
	"time"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	store := newMemStore()
	readState := NewReadStateStore(store, &recordingFlagWriter{}, "u1")
	hidden := NewHiddenStore(store, &recordingDeleter{}, "u1")
	return NewEngine(nil, readState, hidden)
}

func TestEngine_BadgeLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryApplications

	// Cursor starts at epoch zero; two events arrive.
	e.apply(cat, []models.NotificationEvent{ev(cat, "A", 10), ev(cat, "B", 5)})
	assert.Equal(t, 2, e.Badge(ctx))

	// Everything read: cursor jumps to the max visible timestamp.
	e.MarkAllRead(ctx)
	assert.Equal(t, 0, e.Badge(ctx))

	// A later snapshot adds one newer event; only it counts.
	e.apply(cat, []models.NotificationEvent{ev(cat, "A", 10), ev(cat, "B", 5), ev(cat, "C", 15)})
	assert.Equal(t, 1, e.Badge(ctx))
	assert.Equal(t, 1, e.UnreadCount(ctx, cat))
}

func TestEngine_HideSurvivesSnapshotRefresh(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryListings

	e.apply(cat, []models.NotificationEvent{ev(cat, "X", 1)})
	e.Hide(ctx, cat, "X")

	// The server still has the document and re-emits it unchanged.
	e.apply(cat, []models.NotificationEvent{ev(cat, "X", 1)})

	assert.Empty(t, e.Timeline(ctx, cat))
}

func TestEngine_SnapshotReplacesNotAppends(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryListings

	e.apply(cat, []models.NotificationEvent{ev(cat, "a", 1), ev(cat, "b", 2)})
	e.apply(cat, []models.NotificationEvent{ev(cat, "b", 2)})

	timeline := e.Timeline(ctx, cat)
	require.Len(t, timeline, 1)
	assert.Equal(t, "b", timeline[0].ID)
}

func TestEngine_TimelineMergesAcrossCategories(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	e.apply(models.CategoryListings, []models.NotificationEvent{ev(models.CategoryListings, "a", 10)})
	e.apply(models.CategoryApplications, []models.NotificationEvent{ev(models.CategoryApplications, "b", 20)})

	timeline := e.Timeline(ctx, FilterAll)
	require.Len(t, timeline, 2)
	assert.Equal(t, "b", timeline[0].ID)
	assert.Equal(t, "a", timeline[1].ID)
}

func TestEngine_DeleteAllThenEmptyVisibleSetIsNoOp(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryListings

	e.apply(cat, []models.NotificationEvent{ev(cat, "a", 1), ev(cat, "b", 2)})

	e.DeleteAll(ctx, cat)
	assert.Empty(t, e.Timeline(ctx, cat))

	// Second invocation sees an empty visible set: no error, same result.
	e.DeleteAll(ctx, cat)
	assert.Empty(t, e.Timeline(ctx, cat))
}

func TestEngine_EventLookup(t *testing.T) {
	e := newTestEngine()
	cat := models.CategoryListings
	e.apply(cat, []models.NotificationEvent{ev(cat, "a", 1)})

	found, ok := e.Event(cat, "a")
	require.True(t, ok)
	assert.Equal(t, "a", found.ID)

	_, ok = e.Event(cat, "missing")
	assert.False(t, ok)
}

func TestEngine_UnreadCountsPerCategory(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	e.apply(models.CategoryListings, []models.NotificationEvent{
		ev(models.CategoryListings, "a", 10),
		ev(models.CategoryListings, "b", 20),
	})
	e.apply(models.CategoryApplications, []models.NotificationEvent{
		ev(models.CategoryApplications, "c", 30),
	})

	counts := e.UnreadCounts(ctx)
	assert.Equal(t, 2, counts[models.CategoryListings])
	assert.Equal(t, 1, counts[models.CategoryApplications])
}

func TestEngine_MarkAsReadSingleEvent(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryApplications

	e.apply(cat, []models.NotificationEvent{ev(cat, "a", 10), ev(cat, "b", 20)})
	target, ok := e.Event(cat, "b")
	require.True(t, ok)

	e.MarkAsRead(ctx, target)

	// Cursor moved to 20: both a and b now read.
	assert.Equal(t, 0, e.Badge(ctx))
}

func TestEngine_StartAndStopTearDownAllSubscriptions(t *testing.T) {
	src1 := newFakeSource(models.CategoryListings)
	src2 := newFakeSource(models.CategoryApplications)
	store := newMemStore()
	e := NewEngine(
		[]Source{src1, src2},
		NewReadStateStore(store, nil, "u1"),
		NewHiddenStore(store, nil, "u1"),
	)

	e.Start(context.Background())
	src1.snapshots <- []models.NotificationEvent{ev(models.CategoryListings, "a", 1)}

	require.Eventually(t, func() bool {
		return len(e.Timeline(context.Background(), FilterAll)) == 1
	}, time.Second, 5*time.Millisecond)

	e.Stop()

	select {
	case <-src1.stopped:
	case <-time.After(time.Second):
		t.Fatal("source 1 subscription not torn down")
	}
	select {
	case <-src2.stopped:
	case <-time.After(time.Second):
		t.Fatal("source 2 subscription not torn down")
	}
}

func TestEngine_StopIsIdempotent(t *testing.T) {
	e := newTestEngine()
	e.Start(context.Background())
	e.Stop()
	e.Stop()
}

func TestEngine_StopBeforeStartIsSafe(t *testing.T) {
	e := newTestEngine()
	e.Stop()
}

func TestEngine_BadgeClampsAt99(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()
	cat := models.CategoryListings

	events := make([]models.NotificationEvent, 150)
	for i := range events {
		events[i] = ev(cat, "id-"+string(rune('a'+i/26))+string(rune('a'+i%26)), int64(i+1))
	}
	e.apply(cat, events)

	assert.Equal(t, BadgeCap, e.Badge(ctx))
	assert.Equal(t, "99+", BadgeLabel(e.Badge(ctx)))
}
