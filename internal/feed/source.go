package feed

import (
	"context"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// Source is one category's live subscription against the remote store.
// Every push delivers the complete current result set for the category's
// query window — a full replacement, never a diff.
type Source interface {
	// Category returns the category this source feeds.
	Category() models.Category

	// Subscribe blocks until ctx is cancelled, invoking push with the full
	// current result set on every change. Subscription errors must be
	// handled internally (log and retry); the previously pushed snapshot
	// stays in effect until the next successful push.
	Subscribe(ctx context.Context, push func([]models.NotificationEvent))
}
