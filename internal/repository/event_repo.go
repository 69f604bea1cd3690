package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/moranr123/Pawsafety-sub002/internal/config"
	"github.com/moranr123/Pawsafety-sub002/internal/feed"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// snapshotWindow is how many of the most recent documents each category
// subscription returns.
const snapshotWindow = 30

// resubscribeDelay spaces out retries after a failed snapshot listen.
const resubscribeDelay = 5 * time.Second

type EventRepository struct {
	client *firestore.Client
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		client: config.FirestoreClient,
	}
}

// query builds one category's window: principal-filtered where the category
// has a principal field, newest first, limited.
func (r *EventRepository) query(spec models.CategorySpec, principal string) firestore.Query {
	q := r.client.Collection(spec.Collection).Query
	if spec.PrincipalField != "" {
		q = q.Where(spec.PrincipalField, "==", principal)
	}
	return q.OrderBy("createdAt", firestore.Desc).Limit(snapshotWindow)
}

// Sources returns one feed source per registered category for a principal.
func (r *EventRepository) Sources(principal string) []feed.Source {
	categories := models.AllCategories()
	sources := make([]feed.Source, 0, len(categories))
	for _, c := range categories {
		spec, _ := models.SpecFor(c)
		sources = append(sources, &eventSource{repo: r, spec: spec, principal: principal})
	}
	return sources
}

// MarkRead sets the read flag on a flag-model record.
func (r *EventRepository) MarkRead(ctx context.Context, c models.Category, id string) error {
	spec, ok := models.SpecFor(c)
	if !ok {
		return fmt.Errorf("unknown category %q", c)
	}
	_, err := r.client.Collection(spec.Collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	return err
}

// Delete removes a record in an owned category.
func (r *EventRepository) Delete(ctx context.Context, c models.Category, id string) error {
	spec, ok := models.SpecFor(c)
	if !ok {
		return fmt.Errorf("unknown category %q", c)
	}
	_, err := r.client.Collection(spec.Collection).Doc(id).Delete(ctx)
	return err
}

// eventSource is one category's live Firestore subscription.
type eventSource struct {
	repo      *EventRepository
	spec      models.CategorySpec
	principal string
}

func (s *eventSource) Category() models.Category {
	return s.spec.Category
}

// Subscribe listens on the category query until ctx is cancelled. Firestore
// delivers the complete current result set on every change; each snapshot is
// normalized and pushed wholesale. Listen errors leave the previous snapshot
// in effect: they are logged and the subscription reopens after a delay.
func (s *eventSource) Subscribe(ctx context.Context, push func([]models.NotificationEvent)) {
	for {
		s.listen(ctx, push)
		if ctx.Err() != nil {
			return
		}
		log.Printf("⚠️ %s subscription dropped, reopening in %s", s.spec.Category, resubscribeDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (s *eventSource) listen(ctx context.Context, push func([]models.NotificationEvent)) {
	snapshots := s.repo.query(s.spec, s.principal).Snapshots(ctx)
	defer snapshots.Stop()

	for {
		snap, err := snapshots.Next()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("⚠️ %s snapshot listen failed: %v", s.spec.Category, err)
			}
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("⚠️ %s snapshot read failed: %v", s.spec.Category, err)
			continue
		}

		events := make([]models.NotificationEvent, 0, len(docs))
		for _, doc := range docs {
			events = append(events, normalizeEvent(s.spec, doc.Ref.ID, doc.Data()))
		}
		push(events)
	}
}
