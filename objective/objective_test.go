package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(solution [][]float64) float64 {
	var total float64
	for _, p := range solution {
		total += p[0]
	}
	return total
}

func TestFuncValue(t *testing.T) {
	f := Func{F: sum}
	assert.Equal(t, 3.0, f.Value([][]float64{{1}, {2}}))
}

func TestFuncPeekAppend(t *testing.T) {
	f := Func{F: sum}
	got, err := f.Peek([][]float64{{1}, {2}}, []float64{5}, 2)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)
}

func TestFuncPeekReplace(t *testing.T) {
	f := Func{F: sum}
	got, err := f.Peek([][]float64{{1}, {2}}, []float64{5}, 0)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestFuncPeekDoesNotMutateSolution(t *testing.T) {
	f := Func{F: sum}
	solution := [][]float64{{1}, {2}}
	_, err := f.Peek(solution, []float64{99}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, solution[0][0], "peek must not mutate the caller's solution")
}

func TestFuncUpdateIsNoop(t *testing.T) {
	f := Func{F: sum}
	assert.NoError(t, f.Update([][]float64{{1}}, []float64{2}, 1))
}

func TestFuncCloneSharesFunction(t *testing.T) {
	f := Func{F: sum}
	clone := f.Clone()
	assert.Equal(t, f.Value([][]float64{{4}}), clone.Value([][]float64{{4}}))
}
