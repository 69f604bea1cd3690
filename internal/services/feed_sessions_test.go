package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/moranr123/Pawsafety-sub002/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullStore struct{}

func (nullStore) Get(_ context.Context, _ string) (string, bool, error) { return "", false, nil }
func (nullStore) Set(_ context.Context, _, _ string) error             { return nil }
func (nullStore) Close() error                                         { return nil }

func newSessionStore() (*FeedSessionStore, *atomic.Int32) {
	var builds atomic.Int32
	ss := NewFeedSessionStore(func(principal string) *feed.Engine {
		builds.Add(1)
		return feed.NewEngine(
			nil,
			feed.NewReadStateStore(nullStore{}, nil, principal),
			feed.NewHiddenStore(nullStore{}, nil, principal),
		)
	})
	return ss, &builds
}

func TestFeedSessions_SamePrincipalReusesEngine(t *testing.T) {
	ss, builds := newSessionStore()

	e1 := ss.Engine("u1")
	e2 := ss.Engine("u1")

	assert.Same(t, e1, e2)
	assert.Equal(t, int32(1), builds.Load())
}

func TestFeedSessions_DistinctPrincipalsGetDistinctEngines(t *testing.T) {
	ss, builds := newSessionStore()

	e1 := ss.Engine("u1")
	e2 := ss.Engine("u2")

	assert.NotSame(t, e1, e2)
	assert.Equal(t, int32(2), builds.Load())
}

func TestFeedSessions_DropDiscardsSession(t *testing.T) {
	ss, builds := newSessionStore()

	first := ss.Engine("u1")
	ss.Drop("u1")
	second := ss.Engine("u1")

	require.NotSame(t, first, second)
	assert.Equal(t, int32(2), builds.Load())
}

func TestFeedSessions_DropWithoutSessionIsSafe(t *testing.T) {
	ss, _ := newSessionStore()
	ss.Drop("never-seen")
}
