package services

import (
	"context"
	"sync"
	"time"

	"github.com/moranr123/Pawsafety-sub002/internal/feed"
)

// sessionTTL is how long an idle feed session keeps its subscriptions open.
const sessionTTL = 30 * time.Minute

type feedSession struct {
	engine     *feed.Engine
	lastAccess time.Time
}

// FeedSessionStore manages one running feed engine per principal. The first
// feed request builds and starts the engine; idle sessions are evicted by a
// background sweep that tears down all of their subscriptions together, so a
// discarded session never keeps listeners firing.
type FeedSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*feedSession
	build    func(principal string) *feed.Engine
}

// NewFeedSessionStore creates a session store around an engine factory and
// starts the eviction sweep.
func NewFeedSessionStore(build func(principal string) *feed.Engine) *FeedSessionStore {
	ss := &FeedSessionStore{
		sessions: make(map[string]*feedSession),
		build:    build,
	}
	go ss.sweepIdleSessions()
	return ss
}

// Engine returns the running engine for a principal, starting one on first
// use.
func (ss *FeedSessionStore) Engine(principal string) *feed.Engine {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	session, ok := ss.sessions[principal]
	if !ok {
		engine := ss.build(principal)
		engine.Start(context.Background())
		session = &feedSession{engine: engine}
		ss.sessions[principal] = session
	}
	session.lastAccess = time.Now()
	return session.engine
}

// Drop stops a principal's engine and discards the session. Safe to call
// when no session exists.
func (ss *FeedSessionStore) Drop(principal string) {
	ss.mu.Lock()
	session, ok := ss.sessions[principal]
	delete(ss.sessions, principal)
	ss.mu.Unlock()

	if ok {
		session.engine.Stop()
	}
}

// sweepIdleSessions evicts sessions with no access inside sessionTTL.
func (ss *FeedSessionStore) sweepIdleSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-sessionTTL)

		ss.mu.Lock()
		var stale []*feedSession
		for principal, session := range ss.sessions {
			if session.lastAccess.Before(cutoff) {
				stale = append(stale, session)
				delete(ss.sessions, principal)
			}
		}
		ss.mu.Unlock()

		for _, session := range stale {
			session.engine.Stop()
		}
	}
}
