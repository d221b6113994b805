package kernel

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// Cached wraps any Kernel with an LRU memoization layer keyed by the two
// input vectors. Most useful ahead of FastIVM's O(K^3) replace-case
// recomputation, where the same pairs get re-evaluated repeatedly.
type Cached struct {
	inner Kernel
	cache *lru.Cache
	size  int
}

// NewCached builds a memoizing decorator around inner with room for size
// entries.
func NewCached(inner Kernel, size int) (*Cached, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, &ConfigError{Op: "NewCached", Param: "size", Value: size, Err: err}
	}
	return &Cached{inner: inner, cache: c, size: size}, nil
}

// Eval implements Kernel.
func (c *Cached) Eval(x, y []float64) float64 {
	key := cacheKey(x, y)
	if v, ok := c.cache.Get(key); ok {
		return v.(float64)
	}
	v := c.inner.Eval(x, y)
	c.cache.Add(key, v)
	return v
}

// Clone implements Kernel. The cache itself is not part of the kernel's
// semantic identity, so the clone starts cold rather than carrying over any
// entries — analogous to the objective Clone contract returning empty state.
func (c *Cached) Clone() Kernel {
	cloned, err := NewCached(c.inner.Clone(), c.size)
	if err != nil {
		return c.inner.Clone()
	}
	return cloned
}

func cacheKey(x, y []float64) string {
	var b strings.Builder
	writeVec(&b, x)
	b.WriteByte('|')
	writeVec(&b, y)
	return b.String()
}

func writeVec(b *strings.Builder, v []float64) {
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}
