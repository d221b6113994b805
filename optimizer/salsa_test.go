package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalsaOfferUnsupported(t *testing.T) {
	s, err := NewSalsa(2, sumFunction{}, 1.0, 0.3, DefaultSalsaConfig())
	require.NoError(t, err)
	err = s.Offer([]float64{1}, nil)
	assert.True(t, IsStreamingUnsupported(err))
}

func TestSalsaBuildsThreeMembersPerThreshold(t *testing.T) {
	s, err := NewSalsa(2, sumFunction{}, 1.0, 0.3, DefaultSalsaConfig())
	require.NoError(t, err)
	require.NoError(t, s.Fit([][]float64{{1}, {2}, {3}}, nil, 1))

	ts, err := Thresholds(1.0, 2.0, 0.3)
	require.NoError(t, err)
	assert.Equal(t, len(ts)*3, s.NumCandidateSolutions())
}

func TestSalsaPicksBestMemberAcrossEnsemble(t *testing.T) {
	s, err := NewSalsa(2, sumFunction{}, 1.0, 0.3, DefaultSalsaConfig())
	require.NoError(t, err)
	require.NoError(t, s.Fit([][]float64{{1}, {5}, {3}, {4}}, nil, 2))

	val, err := s.Value()
	require.NoError(t, err)

	var best float64
	for _, mem := range s.members {
		if mv, merr := mem.Value(); merr == nil && mv > best {
			best = mv
		}
	}
	assert.Equal(t, best, val)
}

func TestSalsaNeverExceedsBudgetPerMember(t *testing.T) {
	s, err := NewSalsa(2, sumFunction{}, 1.0, 0.3, DefaultSalsaConfig())
	require.NoError(t, err)
	require.NoError(t, s.Fit([][]float64{{1}, {2}, {3}, {4}, {5}}, nil, 1))

	for _, mem := range s.members {
		sol, err := mem.Solution()
		if err != nil {
			continue
		}
		assert.LessOrEqual(t, len(sol), 2)
	}
}

func TestSalsaFitMismatchedIDs(t *testing.T) {
	s, err := NewSalsa(2, sumFunction{}, 1.0, 0.3, DefaultSalsaConfig())
	require.NoError(t, err)
	err = s.Fit([][]float64{{1}, {2}}, []int{1}, 1)
	assert.True(t, IsIDsCardinalityMismatch(err))
}

func TestDefaultSalsaConfigMatchesReferenceHyperparameters(t *testing.T) {
	cfg := DefaultSalsaConfig()
	assert.Equal(t, 0.05, cfg.HiLowEpsilon)
	assert.Equal(t, 0.1, cfg.HiLowBeta)
	assert.Equal(t, 0.025, cfg.HiLowDelta)
	assert.Equal(t, 0.8, cfg.DenseBeta)
	assert.Equal(t, 10.0, cfg.DenseC1)
	assert.Equal(t, 0.2, cfg.DenseC2)
	assert.InDelta(t, 1.0/6.0, cfg.FixedEpsilon, 1e-9)
}
