package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// memStore is an in-memory localstore.Store with optional failure injection.
type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errors.New("disk error")
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("disk error")
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Close() error { return nil }

// recordingFlagWriter records remote read-flag writes.
type recordingFlagWriter struct {
	mu     sync.Mutex
	marked []string
	err    error
}

func (w *recordingFlagWriter) MarkRead(_ context.Context, c models.Category, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.marked = append(w.marked, string(c)+"/"+id)
	return w.err
}

func (w *recordingFlagWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.marked)
}

// recordingDeleter records remote deletes.
type recordingDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (d *recordingDeleter) Delete(_ context.Context, c models.Category, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, string(c)+"/"+id)
	return d.err
}

func (d *recordingDeleter) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.deleted)
}

// fakeSource replays queued snapshots and exits when ctx is cancelled.
type fakeSource struct {
	category  models.Category
	snapshots chan []models.NotificationEvent
	stopped   chan struct{}
}

func newFakeSource(c models.Category) *fakeSource {
	return &fakeSource{
		category:  c,
		snapshots: make(chan []models.NotificationEvent, 8),
		stopped:   make(chan struct{}),
	}
}

func (s *fakeSource) Category() models.Category { return s.category }

func (s *fakeSource) Subscribe(ctx context.Context, push func([]models.NotificationEvent)) {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-s.snapshots:
			push(snapshot)
		}
	}
}

func ev(c models.Category, id string, unixMilli int64) models.NotificationEvent {
	return models.NotificationEvent{
		ID:        id,
		Category:  c,
		Timestamp: time.UnixMilli(unixMilli).UTC(),
	}
}
