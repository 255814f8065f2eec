package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// degenerate inputs score zero instead of NaN
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestMMRLambdaOneIsCosineOrder(t *testing.T) {
	query := []float32{1, 0, 0}
	// candidates already in descending cosine order, as the store returns them
	candidates := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0.8, 0.2, 0},
		{0.1, 0.9, 0},
	}

	picked := MMR(query, candidates, 3, 1.0)
	assert.Equal(t, []int{0, 1, 2}, picked)
}

func TestMMRPenalizesRedundancy(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := [][]float32{
		{0.9, 0.1, 0},  // best match
		{0.9, 0.11, 0}, // near duplicate of the first
		{0.8, 0, 0.3},  // further from the query but diverse
	}

	picked := MMR(query, candidates, 2, 0.5)
	assert.Equal(t, []int{0, 2}, picked)
}

func TestMMRBounds(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{{1, 0}, {0, 1}}

	assert.Nil(t, MMR(query, candidates, 0, 0.5))
	assert.Nil(t, MMR(query, nil, 4, 0.5))
	assert.Len(t, MMR(query, candidates, 10, 0.5), 2)
}
