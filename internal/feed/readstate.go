package feed

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/moranr123/Pawsafety-sub002/internal/localstore"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// FlagWriter updates the read flag on a remote record for flag-model
// categories. Implemented by repository.EventRepository.
type FlagWriter interface {
	MarkRead(ctx context.Context, category models.Category, id string) error
}

// ReadStateStore tracks unread status per category for one principal.
// Cursor-model categories keep a monotonic last-seen timestamp persisted in
// the local store; flag-model categories delegate to the record's own read
// flag with a local optimistic override layer. The store is an explicit
// dependency of the engine — never package-global — so concurrent view
// instances stay isolated.
type ReadStateStore struct {
	mu        sync.Mutex
	local     localstore.Store
	flags     FlagWriter
	principal string

	cursors   map[models.Category]time.Time
	loaded    map[models.Category]bool
	overrides map[models.Category]map[string]struct{}
}

// NewReadStateStore creates a read-state store for one principal. flags may
// be nil when no flag-model category is in use (tests).
func NewReadStateStore(local localstore.Store, flags FlagWriter, principal string) *ReadStateStore {
	return &ReadStateStore{
		local:     local,
		flags:     flags,
		principal: principal,
		cursors:   make(map[models.Category]time.Time),
		loaded:    make(map[models.Category]bool),
		overrides: make(map[models.Category]map[string]struct{}),
	}
}

func (s *ReadStateStore) cursorKey(c models.Category) string {
	return "cursor/" + s.principal + "/" + string(c)
}

// cursor returns the last-seen timestamp for a category, loading it from the
// local store on first use. A missing or unreadable value behaves as epoch
// zero: everything unread, never fatal.
func (s *ReadStateStore) cursor(ctx context.Context, c models.Category) time.Time {
	if s.loaded[c] {
		return s.cursors[c]
	}
	s.loaded[c] = true
	s.cursors[c] = models.EpochZero

	value, ok, err := s.local.Get(ctx, s.cursorKey(c))
	if err != nil {
		log.Printf("read cursor load failed for %s: %v", c, err)
		return s.cursors[c]
	}
	if !ok {
		return s.cursors[c]
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("read cursor for %s is malformed: %v", c, err)
		return s.cursors[c]
	}
	s.cursors[c] = time.UnixMilli(millis).UTC()
	return s.cursors[c]
}

// Cursor returns the current last-seen timestamp for a category.
func (s *ReadStateStore) Cursor(ctx context.Context, c models.Category) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor(ctx, c)
}

// advanceCursor moves the cursor forward to ts, never backward. Persistence
// is best-effort; a failed write leaves the in-memory cursor authoritative.
func (s *ReadStateStore) advanceCursor(ctx context.Context, c models.Category, ts time.Time) {
	current := s.cursor(ctx, c)
	if !ts.After(current) {
		return
	}
	s.cursors[c] = ts
	if err := s.local.Set(ctx, s.cursorKey(c), strconv.FormatInt(ts.UnixMilli(), 10)); err != nil {
		log.Printf("read cursor persist failed for %s: %v", c, err)
	}
}

// MarkAsRead marks one event as read. Cursor-model categories advance the
// category cursor (tolerant of out-of-order calls); flag-model categories
// record a local override immediately and fire the remote flag write without
// awaiting it.
func (s *ReadStateStore) MarkAsRead(ctx context.Context, ev models.NotificationEvent) {
	spec, ok := models.SpecFor(ev.Category)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if spec.ReadModel == models.ReadModelCursor {
		s.advanceCursor(ctx, ev.Category, ev.Timestamp)
		return
	}

	s.override(ev.Category)[ev.ID] = struct{}{}
	if s.flags != nil {
		category, id := ev.Category, ev.ID
		go func() {
			if err := s.flags.MarkRead(context.Background(), category, id); err != nil {
				// Local state already reports read; the next snapshot
				// reconciles the discrepancy.
				log.Printf("remote read-flag write failed for %s/%s: %v", category, id, err)
			}
		}()
	}
}

// MarkAllRead marks every visible event as read: cursor categories jump to
// the maximum visible timestamp, flag categories batch-mark each unread
// event. Idempotent — with no new events a second call changes nothing.
func (s *ReadStateStore) MarkAllRead(ctx context.Context, visible []models.NotificationEvent) {
	maxSeen := make(map[models.Category]time.Time)
	var flagged []models.NotificationEvent

	s.mu.Lock()
	for _, ev := range visible {
		spec, ok := models.SpecFor(ev.Category)
		if !ok {
			continue
		}
		if spec.ReadModel == models.ReadModelCursor {
			if ev.Timestamp.After(maxSeen[ev.Category]) {
				maxSeen[ev.Category] = ev.Timestamp
			}
			continue
		}
		if !s.unreadLocked(ctx, ev) {
			continue
		}
		s.override(ev.Category)[ev.ID] = struct{}{}
		flagged = append(flagged, ev)
	}
	for category, ts := range maxSeen {
		s.advanceCursor(ctx, category, ts)
	}
	s.mu.Unlock()

	if s.flags == nil || len(flagged) == 0 {
		return
	}
	go func() {
		for _, ev := range flagged {
			if err := s.flags.MarkRead(context.Background(), ev.Category, ev.ID); err != nil {
				log.Printf("remote read-flag write failed for %s/%s: %v", ev.Category, ev.ID, err)
			}
		}
	}()
}

// Unread reports whether an event is unread under its category's read model.
func (s *ReadStateStore) Unread(ctx context.Context, ev models.NotificationEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked(ctx, ev)
}

func (s *ReadStateStore) unreadLocked(ctx context.Context, ev models.NotificationEvent) bool {
	spec, ok := models.SpecFor(ev.Category)
	if !ok {
		return false
	}
	if spec.ReadModel == models.ReadModelCursor {
		return ev.Timestamp.After(s.cursor(ctx, ev.Category))
	}
	if ev.Read {
		// The remote flag caught up; the override is no longer needed.
		delete(s.override(ev.Category), ev.ID)
		return false
	}
	_, overridden := s.override(ev.Category)[ev.ID]
	return !overridden
}

func (s *ReadStateStore) override(c models.Category) map[string]struct{} {
	m, ok := s.overrides[c]
	if !ok {
		m = make(map[string]struct{})
		s.overrides[c] = m
	}
	return m
}
