package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingKernel struct {
	evals int
}

func (c *countingKernel) Eval(x, y []float64) float64 {
	c.evals++
	return x[0] + y[0]
}

func (c *countingKernel) Clone() Kernel { return &countingKernel{} }

func TestCachedEvalMemoizes(t *testing.T) {
	inner := &countingKernel{}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	x, y := []float64{1}, []float64{2}
	assert.Equal(t, 3.0, cached.Eval(x, y))
	assert.Equal(t, 3.0, cached.Eval(x, y))
	assert.Equal(t, 1, inner.evals, "second call should hit the cache")
}

func TestCachedCloneStartsCold(t *testing.T) {
	inner := &countingKernel{}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	x, y := []float64{1}, []float64{2}
	cached.Eval(x, y)

	clone := cached.Clone().(*Cached)
	clone.Eval(x, y)

	clonedInner := clone.inner.(*countingKernel)
	assert.Equal(t, 1, clonedInner.evals)
}

func TestNewCachedInvalidSize(t *testing.T) {
	_, err := NewCached(&countingKernel{}, 0)
	assert.Error(t, err)
}
