package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalEmbedDeterminism(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	g := NewLocalGenerator()

	first, err := g.Embed(ctx, "recommend me a mystery novel")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	second, err := g.Embed(ctx, "recommend me a mystery novel")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(first, second)
	assert.Len(first, g.Dimension())
}

func TestLocalEmbedNormalized(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	g := NewLocalGenerator()

	vec, err := g.Embed(ctx, "An atmospheric detective story set in Oslo")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}

	assert.InDelta(1.0, math.Sqrt(norm), 1e-9)
}

func TestLocalEmbedShortTokensOnly(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	g := NewLocalGenerator()

	// Every token has length <= 2, so nothing is bucketed.
	vec, err := g.Embed(ctx, "a an of to it is")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	for _, v := range vec {
		assert.Zero(v)
	}
}

func TestLocalEmbedCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	g := NewLocalGenerator()

	lower, _ := g.Embed(ctx, "mystery thriller")
	upper, _ := g.Embed(ctx, "MYSTERY Thriller")

	assert.Equal(lower, upper)
}
