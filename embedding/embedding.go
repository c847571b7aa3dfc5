package embedding

import (
	"context"
	"errors"
)

var (
	ErrServiceUnavailable = errors.New("embedding service unavailable")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
)

// Generator turns free text into a fixed-length vector. Implementations are
// selected at startup and never mixed within one index: remote and local
// vectors have different dimensionality.
type Generator interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}
