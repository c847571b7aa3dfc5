package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/flarexio/librarian/vector"
)

const formatVersion = 1

// snapshot is the persisted document: two entry lists kept in bijection by
// book id, plus a format version and the time of the last write.
type snapshot struct {
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Vectors   []vectorEntry   `json:"vectors"`
	Metadata  []metadataEntry `json:"metadata"`
}

type vectorEntry struct {
	BookID    int       `json:"bookId"`
	Embedding []float64 `json:"embedding"`
}

type metadataEntry struct {
	BookID   int             `json:"bookId"`
	Metadata vector.Metadata `json:"metadata"`
}

// NewStore creates a file-backed embedding store persisting to path. Every
// mutation rewrites the whole snapshot through a temp file and an atomic
// rename, so a crash mid-write never leaves a truncated document.
func NewStore(path string) vector.Store {
	return &store{
		path:     path,
		vectors:  make(map[int][]float64),
		metadata: make(map[int]vector.Metadata),
	}
}

type store struct {
	mu       sync.RWMutex
	path     string
	vectors  map[int][]float64
	metadata map[int]vector.Metadata
}

func (s *store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		// No prior data, or unreadable data. Either way start empty.
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}

	s.vectors = make(map[int][]float64, len(snap.Vectors))
	for _, entry := range snap.Vectors {
		s.vectors[entry.BookID] = entry.Embedding
	}

	s.metadata = make(map[int]vector.Metadata, len(snap.Metadata))
	for _, entry := range snap.Metadata {
		s.metadata[entry.BookID] = entry.Metadata
	}

	return nil
}

func (s *store) Get(bookID int) ([]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	embedding, ok := s.vectors[bookID]
	return embedding, ok
}

func (s *store) Put(bookID int, embedding []float64, meta vector.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	meta.UpdatedAt = now
	meta.CreatedAt = now
	if existing, ok := s.metadata[bookID]; ok && !existing.CreatedAt.IsZero() {
		meta.CreatedAt = existing.CreatedAt
	}

	s.vectors[bookID] = embedding
	s.metadata[bookID] = meta

	return s.persist()
}

func (s *store) Remove(bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.vectors, bookID)
	delete(s.metadata, bookID)

	return s.persist()
}

func (s *store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vectors = make(map[int][]float64)
	s.metadata = make(map[int]vector.Metadata)

	return s.persist()
}

func (s *store) Stats() vector.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return vector.Stats{
		Entries: len(s.vectors),
		Path:    s.path,
	}
}

// persist writes the full snapshot. Callers must hold the write lock.
func (s *store) persist() error {
	snap := snapshot{
		Version:   formatVersion,
		UpdatedAt: time.Now().UTC(),
		Vectors:   make([]vectorEntry, 0, len(s.vectors)),
		Metadata:  make([]metadataEntry, 0, len(s.metadata)),
	}

	ids := make([]int, 0, len(s.vectors))
	for id := range s.vectors {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		snap.Vectors = append(snap.Vectors, vectorEntry{
			BookID:    id,
			Embedding: s.vectors[id],
		})
		snap.Metadata = append(snap.Metadata, metadataEntry{
			BookID:   id,
			Metadata: s.metadata[id],
		})
	}

	data, err := json.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
