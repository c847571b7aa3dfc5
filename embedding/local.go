package embedding

import (
	"context"
	"math"
	"strings"
)

const localDimension = 100

// LocalGenerator is the offline fallback: a bag-of-hashed-words projection.
// It is crude but fully deterministic, which is what the fallback needs.
type LocalGenerator struct{}

func NewLocalGenerator() *LocalGenerator {
	return &LocalGenerator{}
}

func (g *LocalGenerator) Dimension() int {
	return localDimension
}

// Embed lower-cases and tokenizes the text, drops tokens of length <= 2,
// buckets each remaining token by a 32-bit string hash, and L2-normalizes
// the bucket counts. An input with no usable tokens yields the zero vector.
func (g *LocalGenerator) Embed(ctx context.Context, text string) ([]float64, error) {
	embedding := make([]float64, localDimension)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		if len(token) <= 2 {
			continue
		}

		embedding[bucket(token)]++
	}

	var norm float64
	for _, v := range embedding {
		norm += v * v
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range embedding {
			embedding[i] /= norm
		}
	}

	return embedding, nil
}

// bucket hashes a token with h = h*31 + char over wrapping 32-bit signed
// arithmetic, then maps the absolute value onto the vector. The widening to
// int64 keeps the math.MinInt32 edge well-defined.
func bucket(token string) int {
	var h int32
	for _, c := range token {
		h = h*31 + int32(c)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}

	return int(v % localDimension)
}
