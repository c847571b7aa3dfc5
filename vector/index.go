package vector

import (
	"math"
	"sort"
)

// CosineSimilarity returns dot(a,b) / (‖a‖·‖b‖). A zero-norm vector yields 0
// instead of dividing by zero. Vectors of unequal length are compared over
// the overlapping prefix; callers should otherwise guarantee equal lengths.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}

// Match is a ranked position in the index with its similarity score.
type Match struct {
	Pos        int
	Similarity float64
}

// Index ranks a fixed snapshot of embeddings against query vectors. It
// never mutates the vectors it holds; positions follow insertion order.
type Index struct {
	embeddings [][]float64
}

func NewIndex(embeddings [][]float64) *Index {
	return &Index{embeddings: embeddings}
}

func (idx *Index) Len() int {
	return len(idx.embeddings)
}

// Search returns the top k positions by cosine similarity, descending.
// Ties keep insertion order. k <= 0 yields no matches.
func (idx *Index) Search(query []float64, k int) []Match {
	if k <= 0 || len(idx.embeddings) == 0 {
		return nil
	}

	matches := make([]Match, len(idx.embeddings))
	for i, embedding := range idx.embeddings {
		matches[i] = Match{
			Pos:        i,
			Similarity: CosineSimilarity(query, embedding),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if k < len(matches) {
		matches = matches[:k]
	}

	return matches
}
