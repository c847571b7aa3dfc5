package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert := assert.New(t)

	v := []float64{0.3, 0.5, 0.8}
	zero := []float64{0, 0, 0}

	assert.InDelta(1.0, CosineSimilarity(v, v), 1e-9, "identical vectors")
	assert.Zero(CosineSimilarity(v, zero), "zero vector yields 0")
	assert.Zero(CosineSimilarity(nil, v), "empty vector yields 0")

	opposite := []float64{-0.3, -0.5, -0.8}
	assert.InDelta(-1.0, CosineSimilarity(v, opposite), 1e-9)
}

func TestCosineSimilarityPrefixOverlap(t *testing.T) {
	assert := assert.New(t)

	a := []float64{1, 0}
	b := []float64{1, 0, 0, 0}

	// Unequal lengths compare over the overlapping prefix.
	assert.InDelta(1.0, CosineSimilarity(a, b), 1e-9)
}

func TestIndexSearch(t *testing.T) {
	assert := assert.New(t)

	idx := NewIndex([][]float64{
		{0, 1},  // orthogonal to the query
		{1, 0},  // identical direction
		{1, 1},  // in between
		{-1, 0}, // opposite direction
	})

	query := []float64{1, 0}

	matches := idx.Search(query, 3)
	if !assert.Len(matches, 3) {
		return
	}

	assert.Equal(1, matches[0].Pos)
	assert.Equal(2, matches[1].Pos)
	assert.Equal(0, matches[2].Pos)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(matches[i-1].Similarity, matches[i].Similarity)
	}
}

func TestIndexSearchStableTies(t *testing.T) {
	assert := assert.New(t)

	idx := NewIndex([][]float64{
		{2, 0},
		{1, 0},
		{3, 0},
	})

	// All three have similarity 1; insertion order must be kept.
	matches := idx.Search([]float64{1, 0}, 3)
	if !assert.Len(matches, 3) {
		return
	}

	assert.Equal(0, matches[0].Pos)
	assert.Equal(1, matches[1].Pos)
	assert.Equal(2, matches[2].Pos)
}

func TestIndexSearchBounds(t *testing.T) {
	assert := assert.New(t)

	idx := NewIndex([][]float64{{1, 0}, {0, 1}})

	assert.Nil(idx.Search([]float64{1, 0}, 0), "k = 0 yields no matches")
	assert.Nil(idx.Search([]float64{1, 0}, -1), "k < 0 yields no matches")
	assert.Len(idx.Search([]float64{1, 0}, 10), 2, "k larger than index")

	empty := NewIndex(nil)
	assert.Nil(empty.Search([]float64{1, 0}, 5), "empty index")
}
