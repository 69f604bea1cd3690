package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_StoreAndLookup(t *testing.T) {
	ts := NewTokenStore(nil)

	ts.StoreToken("tok", "u1")

	userID, ok := ts.GetUserID("tok")
	require.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestTokenStore_UnknownToken(t *testing.T) {
	ts := NewTokenStore(nil)

	_, ok := ts.GetUserID("missing")
	assert.False(t, ok)
}

func TestTokenStore_DeleteNotifiesEviction(t *testing.T) {
	var evicted []string
	ts := NewTokenStore(func(userID string) { evicted = append(evicted, userID) })

	ts.StoreToken("tok", "u1")
	ts.DeleteToken("tok")

	_, ok := ts.GetUserID("tok")
	assert.False(t, ok)
	assert.Equal(t, []string{"u1"}, evicted)
}

func TestTokenStore_DeleteUnknownTokenDoesNotEvict(t *testing.T) {
	called := false
	ts := NewTokenStore(func(string) { called = true })

	ts.DeleteToken("missing")

	assert.False(t, called)
}
