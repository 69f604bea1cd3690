package feed

import (
	"context"
	"sync"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// Engine coordinates one principal's notification feed: it holds the latest
// full snapshot per category, derives the merged timeline and badge through
// the read-state and hidden stores, and owns the lifecycle of every source
// subscription. All derivations are pure over the held snapshots, so a
// reconciliation pass is safe on every push.
type Engine struct {
	readState *ReadStateStore
	hidden    *HiddenStore
	sources   []Source

	mu        sync.Mutex
	snapshots map[models.Category][]models.NotificationEvent
	gen       uint64

	badgeGen   uint64
	badgeValue int
	badgeValid bool

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
}

// NewEngine creates an engine over the given sources and state stores.
func NewEngine(sources []Source, readState *ReadStateStore, hidden *HiddenStore) *Engine {
	return &Engine{
		readState: readState,
		hidden:    hidden,
		sources:   sources,
		snapshots: make(map[models.Category][]models.NotificationEvent),
	}
}

// Start opens every source subscription. Each push replaces that category's
// snapshot wholesale; no ordering across categories is assumed.
func (e *Engine) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		subCtx, cancel := context.WithCancel(ctx)
		e.cancel = cancel
		for _, src := range e.sources {
			src := src
			go src.Subscribe(subCtx, func(events []models.NotificationEvent) {
				e.apply(src.Category(), events)
			})
		}
	})
}

// Stop tears down every subscription together. Idempotent; safe to call
// before Start.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}
	})
}

// apply replaces one category's snapshot.
func (e *Engine) apply(c models.Category, events []models.NotificationEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots[c] = events
	e.gen++
}

// bump invalidates derived state after a read-state or hidden-set mutation.
func (e *Engine) bump() {
	e.mu.Lock()
	e.gen++
	e.mu.Unlock()
}

func (e *Engine) snapshotCopy() map[models.Category][]models.NotificationEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	copied := make(map[models.Category][]models.NotificationEvent, len(e.snapshots))
	for c, events := range e.snapshots {
		copied[c] = events
	}
	return copied
}

// Timeline returns the merged, hidden-filtered feed, optionally restricted
// to one category (FilterAll for everything).
func (e *Engine) Timeline(ctx context.Context, filter models.Category) []models.NotificationEvent {
	return Merge(e.snapshotCopy(), func(c models.Category, id string) bool {
		return e.hidden.Hidden(ctx, c, id)
	}, filter)
}

// Badge returns the clamped unread count over the visible timeline,
// memoized on the engine's state generation.
func (e *Engine) Badge(ctx context.Context) int {
	e.mu.Lock()
	if e.badgeValid && e.badgeGen == e.gen {
		value := e.badgeValue
		e.mu.Unlock()
		return value
	}
	gen := e.gen
	e.mu.Unlock()

	visible := e.Timeline(ctx, FilterAll)
	value := Badge(visible, func(ev models.NotificationEvent) bool {
		return e.readState.Unread(ctx, ev)
	})

	e.mu.Lock()
	e.badgeGen = gen
	e.badgeValue = value
	e.badgeValid = true
	e.mu.Unlock()
	return value
}

// UnreadCount returns the unread count contributed by one category's
// visible events.
func (e *Engine) UnreadCount(ctx context.Context, c models.Category) int {
	count := 0
	for _, ev := range e.Timeline(ctx, c) {
		if e.readState.Unread(ctx, ev) {
			count++
		}
	}
	return count
}

// UnreadCounts returns per-category unread counts for every category with a
// visible event.
func (e *Engine) UnreadCounts(ctx context.Context) map[models.Category]int {
	counts := make(map[models.Category]int)
	for _, ev := range e.Timeline(ctx, FilterAll) {
		if e.readState.Unread(ctx, ev) {
			counts[ev.Category]++
		}
	}
	return counts
}

// Event looks up an event in the current snapshots by (category, id).
func (e *Engine) Event(c models.Category, id string) (models.NotificationEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ev := range e.snapshots[c] {
		if ev.ID == id {
			return ev, true
		}
	}
	return models.NotificationEvent{}, false
}

// MarkAsRead marks one event as read.
func (e *Engine) MarkAsRead(ctx context.Context, ev models.NotificationEvent) {
	e.readState.MarkAsRead(ctx, ev)
	e.bump()
}

// MarkAllRead marks every currently-visible event as read.
func (e *Engine) MarkAllRead(ctx context.Context) {
	e.readState.MarkAllRead(ctx, e.Timeline(ctx, FilterAll))
	e.bump()
}

// Hide dismisses one event locally.
func (e *Engine) Hide(ctx context.Context, c models.Category, id string) {
	e.hidden.Hide(ctx, c, id)
	e.bump()
}

// DeleteOwned dismisses an event locally and deletes the remote record.
func (e *Engine) DeleteOwned(ctx context.Context, c models.Category, id string) {
	e.hidden.DeleteOwned(ctx, c, id)
	e.bump()
}

// DeleteAll dismisses every visible event in a category.
func (e *Engine) DeleteAll(ctx context.Context, c models.Category) {
	visible := e.Timeline(ctx, c)
	ids := make([]string, 0, len(visible))
	for _, ev := range visible {
		ids = append(ids, ev.ID)
	}
	e.hidden.DeleteAll(ctx, c, ids)
	e.bump()
}
