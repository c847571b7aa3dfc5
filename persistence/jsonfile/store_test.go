package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flarexio/librarian/vector"
)

func TestStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "embeddings.json")

	store := NewStore(path)
	if err := store.Initialize(); err != nil {
		assert.Fail(err.Error())
		return
	}

	vec := []float64{0.1, 0.2, 0.3}
	meta := vector.Metadata{
		Title:  "Gone Dark",
		Author: "Lee Child",
		Genre:  "Mystery",
		Status: "available",
	}

	if err := store.Put(42, vec, meta); err != nil {
		assert.Fail(err.Error())
		return
	}

	got, ok := store.Get(42)
	assert.True(ok)
	assert.Equal(vec, got)

	_, ok = store.Get(7)
	assert.False(ok)

	if err := store.Remove(42); err != nil {
		assert.Fail(err.Error())
		return
	}

	_, ok = store.Get(42)
	assert.False(ok)
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "embeddings.json")

	store := NewStore(path)
	store.Initialize()

	vec := []float64{1, 2, 3}
	if err := store.Put(1, vec, vector.Metadata{Title: "Dune"}); err != nil {
		assert.Fail(err.Error())
		return
	}

	reopened := NewStore(path)
	if err := reopened.Initialize(); err != nil {
		assert.Fail(err.Error())
		return
	}

	got, ok := reopened.Get(1)
	assert.True(ok)
	assert.Equal(vec, got)
	assert.Equal(1, reopened.Stats().Entries)
}

func TestStoreClearAll(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "embeddings.json")

	store := NewStore(path)
	store.Initialize()

	store.Put(1, []float64{1}, vector.Metadata{})
	store.Put(2, []float64{2}, vector.Metadata{})
	assert.Equal(2, store.Stats().Entries)

	if err := store.ClearAll(); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(0, store.Stats().Entries)
	assert.Equal(path, store.Stats().Path)

	// The empty snapshot is persisted too.
	reopened := NewStore(path)
	reopened.Initialize()
	assert.Equal(0, reopened.Stats().Entries)
}

func TestStoreInitializeWithoutPriorData(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(filepath.Join(t.TempDir(), "missing", "embeddings.json"))

	assert.NoError(store.Initialize(), "absence of prior data is not an error")
	assert.Equal(0, store.Stats().Entries)
}

func TestStoreOverwriteKeepsCreatedAt(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "embeddings.json")

	store := NewStore(path)
	store.Initialize()

	store.Put(5, []float64{1}, vector.Metadata{Title: "First"})
	store.Put(5, []float64{2}, vector.Metadata{Title: "Second"})

	got, ok := store.Get(5)
	assert.True(ok)
	assert.Equal([]float64{2}, got, "Put overwrites, not merges")
	assert.Equal(1, store.Stats().Entries)

	data, err := os.ReadFile(path)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		assert.Fail(err.Error())
		return
	}

	if !assert.Len(snap.Metadata, 1) {
		return
	}

	meta := snap.Metadata[0].Metadata
	assert.Equal("Second", meta.Title)
	assert.False(meta.CreatedAt.IsZero())
	assert.False(meta.UpdatedAt.Before(meta.CreatedAt))
	assert.Equal(formatVersion, snap.Version)
	assert.Len(snap.Vectors, len(snap.Metadata), "entry lists stay in bijection")
}
