package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyOfferUnsupported(t *testing.T) {
	g, err := NewGreedy(2, sumFunction{})
	require.NoError(t, err)

	err = g.Offer([]float64{1}, nil)
	assert.True(t, IsStreamingUnsupported(err))
}

func TestGreedyPicksLargestEachRound(t *testing.T) {
	g, err := NewGreedy(2, sumFunction{})
	require.NoError(t, err)

	points := [][]float64{{1}, {5}, {3}, {5}}
	require.NoError(t, g.Fit(points, nil, 1))

	sol, err := g.Solution()
	require.NoError(t, err)
	require.Len(t, sol, 2)
	// both 5s dominate every remaining choice in their round, so greedy
	// picks the first 5 (index 1) then the second (index 3).
	assert.Equal(t, 5.0, sol[0][0])
	assert.Equal(t, 5.0, sol[1][0])
}

func TestGreedyValueMatchesFinalSolution(t *testing.T) {
	g, err := NewGreedy(2, sumFunction{})
	require.NoError(t, err)
	require.NoError(t, g.Fit([][]float64{{1}, {2}, {3}}, nil, 1))

	val, err := g.Value()
	require.NoError(t, err)
	sol, err := g.Solution()
	require.NoError(t, err)
	assert.Equal(t, sumFunction{}.Value(sol), val)
}

func TestGreedyStopsWhenCandidatesExhausted(t *testing.T) {
	g, err := NewGreedy(5, sumFunction{})
	require.NoError(t, err)
	require.NoError(t, g.Fit([][]float64{{1}, {2}}, nil, 1))

	sol, err := g.Solution()
	require.NoError(t, err)
	assert.Len(t, sol, 2)
}

func TestGreedyWithIDs(t *testing.T) {
	g, err := NewGreedy(2, sumFunction{})
	require.NoError(t, err)
	require.NoError(t, g.Fit([][]float64{{1}, {2}, {3}}, []int{10, 20, 30}, 1))

	ids, err := g.IDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}
