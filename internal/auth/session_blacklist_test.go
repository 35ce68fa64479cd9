package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistAddAndCheck(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	blacklisted, err := store.IsBlacklisted("unknown")
	assert.NoError(t, err)
	assert.False(t, blacklisted)

	assert.NoError(t, store.AddToBlacklist("token-1", time.Now().Add(time.Hour)))

	blacklisted, err = store.IsBlacklisted("token-1")
	assert.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestBlacklistCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	assert.NoError(t, store.AddToBlacklist("stale", time.Now().Add(-time.Minute)))
	assert.NoError(t, store.AddToBlacklist("fresh", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	stale, _ := store.IsBlacklisted("stale")
	fresh, _ := store.IsBlacklisted("fresh")
	assert.False(t, stale)
	assert.True(t, fresh)
}
