// Package objective defines the submodular-function capability set (C3)
// that every optimizer in package optimizer drives through peek/update
// without assuming how the objective caches state.
package objective

// Function is polymorphic over the capability set {Value, Peek, Update,
// Clone}. Peek must not mutate externally observable state; Update commits
// the hypothetical placement a prior Peek described. Implementations may be
// called concurrently by nothing — the core is single-threaded.
type Function interface {
	// Value returns f(S) for the supplied summary. May be O(|S|^3) for
	// objectives that do not maintain state.
	Value(solution [][]float64) float64

	// Peek returns f(S (+)_p x), where (+)_p means "place x at slot p": if
	// p >= len(S) then append, else replace slot p.
	Peek(solution [][]float64, x []float64, pos int) (float64, error)

	// Update commits the hypothetical placement from a prior Peek call to
	// the function's private state. Callers promise to call Update at most
	// once per accepted element, and only after a corresponding Peek.
	Update(solution [][]float64, x []float64, pos int) error

	// Clone returns an independent instance with empty state, used by any
	// optimizer that runs multiple parallel copies.
	Clone() Function
}

// Func adapts a pure value(S) function into the Function capability set.
// Peek copy-places x into a scratch summary and calls the wrapped function;
// Update is a no-op since the wrapped function carries no state of its own.
type Func struct {
	F func(solution [][]float64) float64
}

// Value implements Function.
func (f Func) Value(solution [][]float64) float64 { return f.F(solution) }

// Peek implements Function.
func (f Func) Peek(solution [][]float64, x []float64, pos int) (float64, error) {
	scratch := make([][]float64, len(solution))
	copy(scratch, solution)
	if pos >= len(solution) {
		scratch = append(scratch, x)
	} else {
		scratch[pos] = x
	}
	return f.F(scratch), nil
}

// Update implements Function. It is a no-op: Func carries no private state.
func (f Func) Update(solution [][]float64, x []float64, pos int) error { return nil }

// Clone implements Function. The wrapped closure is shared, which the
// contract requires be stateless in that case.
func (f Func) Clone() Function { return f }
