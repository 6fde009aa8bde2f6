package progression

import (
	"testing"

	"lunabot/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLevel(t *testing.T, s store.Store, userID string, level int) {
	t.Helper()
	err := s.Update(func(doc *store.Document) error {
		doc.EnsureUser(userID)
		doc.XP[userID].Level = level
		return nil
	})
	require.NoError(t, err)
}

func TestHasUnlock_LevelGates(t *testing.T) {
	st := testStore(t)
	gate := NewGate(st, nil)

	// Fresh user is level 1: everything gated is locked
	for _, feature := range []string{"voice", "images", "romantic"} {
		ok, err := gate.HasUnlock("u1", feature)
		require.NoError(t, err)
		assert.False(t, ok, feature)
	}

	// Unknown features default to level 1 and are always open
	ok, err := gate.HasUnlock("u1", "chat")
	require.NoError(t, err)
	assert.True(t, ok)

	seedLevel(t, st, "u1", 3)
	tests := []struct {
		feature string
		want    bool
	}{
		{"voice", true},
		{"images", true},
		{"romantic", false},
	}
	for _, tt := range tests {
		ok, err := gate.HasUnlock("u1", tt.feature)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, tt.feature)
	}
}

func TestHasUnlock_PremiumOverridesLevels(t *testing.T) {
	st := testStore(t)
	gate := NewGate(st, nil)

	require.NoError(t, gate.SetPremium("u1", true))

	for _, feature := range []string{"voice", "images", "romantic"} {
		ok, err := gate.HasUnlock("u1", feature)
		require.NoError(t, err)
		assert.True(t, ok, feature)
	}
}

func TestHasUnlock_TierCountsAsPremium(t *testing.T) {
	gate := NewGate(testStore(t), nil)

	require.NoError(t, gate.SetTier("u1", TierGold))

	premium, err := gate.IsPremium("u1")
	require.NoError(t, err)
	assert.True(t, premium)

	ok, err := gate.HasUnlock("u1", "romantic")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequirement(t *testing.T) {
	gate := NewGate(testStore(t), nil)

	assert.Equal(t, 2, gate.Requirement("voice"))
	assert.Equal(t, 3, gate.Requirement("images"))
	assert.Equal(t, 5, gate.Requirement("romantic"))
	assert.Equal(t, 1, gate.Requirement("unknown_feature"))
}

func TestSetPremium_Remove(t *testing.T) {
	gate := NewGate(testStore(t), nil)

	require.NoError(t, gate.SetPremium("u1", true))
	premium, err := gate.IsPremium("u1")
	require.NoError(t, err)
	assert.True(t, premium)

	require.NoError(t, gate.SetPremium("u1", false))
	premium, err = gate.IsPremium("u1")
	require.NoError(t, err)
	assert.False(t, premium)
}

func TestSetTier_Clear(t *testing.T) {
	gate := NewGate(testStore(t), nil)

	require.NoError(t, gate.SetTier("u1", TierBronze))
	tier, err := gate.Tier("u1")
	require.NoError(t, err)
	assert.Equal(t, TierBronze, tier)

	require.NoError(t, gate.SetTier("u1", ""))
	tier, err = gate.Tier("u1")
	require.NoError(t, err)
	assert.Empty(t, tier)

	premium, err := gate.IsPremium("u1")
	require.NoError(t, err)
	assert.False(t, premium)
}

func TestLevel_FreshUser(t *testing.T) {
	gate := NewGate(testStore(t), nil)

	level, err := gate.Level("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestGate_CustomGates(t *testing.T) {
	st := testStore(t)
	gate := NewGate(st, map[string]int{"voice": 10})

	assert.Equal(t, 10, gate.Requirement("voice"))

	seedLevel(t, st, "u1", 9)
	ok, err := gate.HasUnlock("u1", "voice")
	require.NoError(t, err)
	assert.False(t, ok)
}
