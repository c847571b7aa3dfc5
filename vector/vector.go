package vector

import "time"

// Store is a durable map from catalog book id to an embedding vector and
// its metadata. At most one record exists per book id; Put overwrites.
type Store interface {
	Initialize() error
	Get(bookID int) ([]float64, bool)
	Put(bookID int, embedding []float64, meta Metadata) error
	Remove(bookID int) error
	ClearAll() error
	Stats() Stats
}

// Metadata travels with a persisted embedding for diagnostics and audits.
type Metadata struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Stats struct {
	Entries int    `json:"entries"`
	Path    string `json:"path"`
}
