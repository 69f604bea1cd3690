package services

import (
	"sync"
	"time"
)

type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time
}

// TokenStore manages user sessions. Constructed once in main and injected;
// onEvict lets the feed session store tear down a user's subscriptions when
// their session expires or is deleted.
type TokenStore struct {
	tokens  map[string]*TokenInfo // token -> TokenInfo
	mu      sync.RWMutex
	onEvict func(userID string)
}

// NewTokenStore creates a token store and starts the expiry sweep.
// onEvict may be nil.
func NewTokenStore(onEvict func(userID string)) *TokenStore {
	ts := &TokenStore{
		tokens:  make(map[string]*TokenInfo),
		onEvict: onEvict,
	}
	go ts.cleanupExpiredTokens()
	return ts
}

// StoreToken stores a token with its associated user ID (30 days expiration)
func (ts *TokenStore) StoreToken(token, userID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tokens[token] = &TokenInfo{
		UserID:    userID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour), // 30 days
	}
}

// GetUserID retrieves the user ID associated with a token
func (ts *TokenStore) GetUserID(token string) (string, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	tokenInfo, exists := ts.tokens[token]
	if !exists {
		return "", false
	}
	// Check if token is expired
	if time.Now().After(tokenInfo.ExpiresAt) {
		return "", false
	}
	return tokenInfo.UserID, true
}

// DeleteToken removes a token from the store
func (ts *TokenStore) DeleteToken(token string) {
	ts.mu.Lock()
	tokenInfo, exists := ts.tokens[token]
	delete(ts.tokens, token)
	ts.mu.Unlock()

	if exists && ts.onEvict != nil {
		ts.onEvict(tokenInfo.UserID)
	}
}

// cleanupExpiredTokens removes expired tokens periodically
func (ts *TokenStore) cleanupExpiredTokens() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ts.mu.Lock()
		now := time.Now()
		var evicted []string
		for token, info := range ts.tokens {
			if now.After(info.ExpiresAt) {
				evicted = append(evicted, info.UserID)
				delete(ts.tokens, token)
			}
		}
		ts.mu.Unlock()

		if ts.onEvict != nil {
			for _, userID := range evicted {
				ts.onEvict(userID)
			}
		}
	}
}
