package feed

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/moranr123/Pawsafety-sub002/internal/localstore"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// RemoteDeleter deletes a single remote record in an owned category.
// Implemented by repository.EventRepository.
type RemoteDeleter interface {
	Delete(ctx context.Context, category models.Category, id string) error
}

// HiddenStore keeps, per category, the set of event ids the user has
// dismissed locally. Hidden ids are excluded from the timeline regardless of
// what the live source still returns. For owned categories a dismissal also
// issues an authoritative remote delete, but local hidden state stays
// authoritative for presentation even when that delete fails.
type HiddenStore struct {
	mu        sync.Mutex
	local     localstore.Store
	deleter   RemoteDeleter
	principal string

	sets   map[models.Category]map[string]struct{}
	loaded map[models.Category]bool
}

// NewHiddenStore creates a hidden-item store for one principal. deleter may
// be nil when no owned category is in use (tests).
func NewHiddenStore(local localstore.Store, deleter RemoteDeleter, principal string) *HiddenStore {
	return &HiddenStore{
		local:     local,
		deleter:   deleter,
		principal: principal,
		sets:      make(map[models.Category]map[string]struct{}),
		loaded:    make(map[models.Category]bool),
	}
}

func (s *HiddenStore) setKey(c models.Category) string {
	return "hidden/" + s.principal + "/" + string(c)
}

// set returns the hidden set for a category, loading it from the local store
// on first use. A missing or unreadable value behaves as an empty set.
func (s *HiddenStore) set(ctx context.Context, c models.Category) map[string]struct{} {
	if s.loaded[c] {
		return s.sets[c]
	}
	s.loaded[c] = true
	s.sets[c] = make(map[string]struct{})

	value, ok, err := s.local.Get(ctx, s.setKey(c))
	if err != nil {
		log.Printf("hidden set load failed for %s: %v", c, err)
		return s.sets[c]
	}
	if !ok {
		return s.sets[c]
	}
	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		log.Printf("hidden set for %s is malformed: %v", c, err)
		return s.sets[c]
	}
	for _, id := range ids {
		s.sets[c][id] = struct{}{}
	}
	return s.sets[c]
}

// persist serializes a category's hidden set, best-effort.
func (s *HiddenStore) persist(ctx context.Context, c models.Category) {
	ids := make([]string, 0, len(s.sets[c]))
	for id := range s.sets[c] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	raw, err := json.Marshal(ids)
	if err != nil {
		log.Printf("hidden set encode failed for %s: %v", c, err)
		return
	}
	if err := s.local.Set(ctx, s.setKey(c), string(raw)); err != nil {
		log.Printf("hidden set persist failed for %s: %v", c, err)
	}
}

// Hidden reports whether (category, id) has been dismissed.
func (s *HiddenStore) Hidden(ctx context.Context, c models.Category, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hidden := s.set(ctx, c)[id]
	return hidden
}

// Hide dismisses a single event locally. Used for categories where the user
// has no remote-delete permission.
func (s *HiddenStore) Hide(ctx context.Context, c models.Category, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(ctx, c)[id] = struct{}{}
	s.persist(ctx, c)
}

// DeleteOwned dismisses an event the user authored: the id is hidden locally
// for immediate effect and a remote delete is issued without awaiting it.
// A failed remote delete does not re-show the item.
func (s *HiddenStore) DeleteOwned(ctx context.Context, c models.Category, id string) {
	s.mu.Lock()
	s.set(ctx, c)[id] = struct{}{}
	s.persist(ctx, c)
	s.mu.Unlock()

	s.remoteDelete(c, []string{id})
}

// DeleteAll dismisses every currently-visible id in a category, issuing
// remote deletes for owned categories. Idempotent: an empty visibleIDs is a
// no-op, not an error.
func (s *HiddenStore) DeleteAll(ctx context.Context, c models.Category, visibleIDs []string) {
	if len(visibleIDs) == 0 {
		return
	}

	s.mu.Lock()
	set := s.set(ctx, c)
	changed := false
	for _, id := range visibleIDs {
		if _, already := set[id]; !already {
			set[id] = struct{}{}
			changed = true
		}
	}
	if changed {
		s.persist(ctx, c)
	}
	s.mu.Unlock()

	if spec, ok := models.SpecFor(c); ok && spec.Owned {
		s.remoteDelete(c, visibleIDs)
	}
}

// remoteDelete fires remote deletes without blocking the caller. Partial
// failure is logged only; the hidden set already reflects the intended end
// state.
func (s *HiddenStore) remoteDelete(c models.Category, ids []string) {
	if s.deleter == nil {
		return
	}
	spec, ok := models.SpecFor(c)
	if !ok || !spec.Owned {
		return
	}
	go func() {
		for _, id := range ids {
			if err := s.deleter.Delete(context.Background(), c, id); err != nil {
				log.Printf("remote delete failed for %s/%s: %v", c, id, err)
			}
		}
	}()
}
