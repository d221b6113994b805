package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISIFillsBudgetBeforeReplacing(t *testing.T) {
	o, err := NewIndependentSetImprovement(2, sumFunction{})
	require.NoError(t, err)

	require.NoError(t, o.Offer([]float64{1}, nil))
	require.NoError(t, o.Offer([]float64{2}, nil))

	sol, err := o.Solution()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2}}, sol)
}

func TestISIReplacesOnlyWhenGainMoreThanDoublesMin(t *testing.T) {
	o, err := NewIndependentSetImprovement(2, sumFunction{})
	require.NoError(t, err)

	require.NoError(t, o.Offer([]float64{1}, nil)) // weight 1
	require.NoError(t, o.Offer([]float64{2}, nil)) // weight 2, min weight is now 1 (slot 0)

	// candidate with a tiny marginal gain should not replace the min slot.
	require.NoError(t, o.Offer([]float64{1.5}, nil))
	sol, err := o.Solution()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2}}, sol, "small gain must not evict the frozen-min slot")

	// a candidate whose gain more than doubles the frozen min (1) must replace it.
	require.NoError(t, o.Offer([]float64{10}, nil))
	sol, err = o.Solution()
	require.NoError(t, err)
	assert.Contains(t, sol, []float64{10})
}

func TestISIValueTracksObjectiveAfterEveryOffer(t *testing.T) {
	o, err := NewIndependentSetImprovement(2, sumFunction{})
	require.NoError(t, err)
	require.NoError(t, o.Offer([]float64{3}, nil))
	require.NoError(t, o.Offer([]float64{4}, nil))

	val, err := o.Value()
	require.NoError(t, err)
	sol, err := o.Solution()
	require.NoError(t, err)
	assert.Equal(t, sumFunction{}.Value(sol), val)
}

func TestISIIsFittedAfterFirstOffer(t *testing.T) {
	o, err := NewIndependentSetImprovement(2, sumFunction{})
	require.NoError(t, err)
	_, err = o.Solution()
	assert.True(t, IsNotFitted(err))

	require.NoError(t, o.Offer([]float64{1}, nil))
	_, err = o.Solution()
	assert.NoError(t, err)
}
