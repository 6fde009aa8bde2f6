package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "users.json")
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(testPath(t))

	doc, err := store.Load()
	require.NoError(t, err)

	// Every top-level key must be usable without nil checks
	assert.NotNil(t, doc.PremiumUsers)
	assert.NotNil(t, doc.Tiers)
	assert.NotNil(t, doc.XP)
	assert.NotNil(t, doc.Bond)
	require.NotNil(t, doc.Quests)
	assert.NotNil(t, doc.Quests.Completed)
	assert.NotNil(t, doc.Quests.Claimed)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(testPath(t))

	doc := NewDocument()
	doc.EnsureUser("u1")
	doc.XP["u1"].XP = 42
	doc.XP["u1"].Level = 3
	doc.Bond["u1"].Score = 7
	doc.Tiers["u1"] = "GOLD"
	doc.PremiumUsers = append(doc.PremiumUsers, "u2")
	doc.Quests.Completed["u1"] = []string{"daily_greet"}

	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.XP["u1"].XP)
	assert.Equal(t, 3, loaded.XP["u1"].Level)
	assert.Equal(t, 7, loaded.Bond["u1"].Score)
	assert.Equal(t, "GOLD", loaded.Tiers["u1"])
	assert.Equal(t, []string{"u2"}, loaded.PremiumUsers)
	assert.Equal(t, []string{"daily_greet"}, loaded.Quests.Completed["u1"])
}

func TestFileStore_CorruptFileRecovers(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	doc, err := store.Load()
	require.NoError(t, err, "corrupt store must recover, not fail the caller")
	assert.Empty(t, doc.XP)
	assert.NotNil(t, doc.Quests.Completed)
}

func TestFileStore_PartialDocumentNormalized(t *testing.T) {
	path := testPath(t)
	// Document written by an older deployment, missing newer keys
	require.NoError(t, os.WriteFile(path, []byte(`{"xp": {"u1": {"xp": 5, "level": 2}}}`), 0o644))

	store := NewFileStore(path)
	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, doc.XP["u1"].Level)
	assert.NotNil(t, doc.Tiers)
	assert.NotNil(t, doc.Bond)
	require.NotNil(t, doc.Quests)
	assert.NotNil(t, doc.Quests.Claimed)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	path := testPath(t)
	store := NewFileStore(path)
	require.NoError(t, store.Save(NewDocument()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestFileStore_UpdateSerializesWriters(t *testing.T) {
	store := NewFileStore(testPath(t))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update(func(doc *Document) error {
				doc.EnsureUser("u1")
				doc.XP["u1"].XP++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, writers, doc.XP["u1"].XP, "no update may be lost")
}

func TestDocument_EnsureUserIdempotent(t *testing.T) {
	doc := NewDocument()
	doc.EnsureUser("u1")
	doc.XP["u1"].XP = 10
	doc.Bond["u1"].Score = 4

	doc.EnsureUser("u1")
	assert.Equal(t, 10, doc.XP["u1"].XP)
	assert.Equal(t, 4, doc.Bond["u1"].Score)
	assert.Equal(t, 1, doc.XP["u1"].Level)
}

func TestDocument_IsPremium(t *testing.T) {
	doc := NewDocument()
	assert.False(t, doc.IsPremium("u1"))

	doc.PremiumUsers = append(doc.PremiumUsers, "u1")
	assert.True(t, doc.IsPremium("u1"))

	// A tier assignment alone counts as premium
	doc.Tiers["u2"] = "BRONZE"
	assert.True(t, doc.IsPremium("u2"))
	assert.False(t, doc.IsPremium("u3"))
}
