// Package optimizer implements the submodular-maximization optimizer base
// (C5) and the family of concrete batch/streaming policies built on top of
// it (C6-C12): Greedy, Reservoir, IndependentSetImprovement, SieveStreaming,
// SieveStreamingPP, ThreeSieves and Salsa.
package optimizer

import "github.com/vecsummary/submod/objective"

// Optimizer is implemented by every submodular-maximization policy in this
// package, streaming or batch.
type Optimizer interface {
	// Offer is the streaming entry point. Optimizers that do not support
	// streaming fail with ErrStreamingUnsupported.
	Offer(x []float64, id *int) error

	// Fit drives the optimizer over a whole sequence. ids may be nil or
	// empty to omit ids, or must match len(points) exactly.
	Fit(points [][]float64, ids []int, maxIterations int) error

	Solution() ([][]float64, error)
	IDs() ([]int, error)
	Value() (float64, error)

	NumCandidateSolutions() int
	NumElementsStored() int
}

// Base carries the state shared by every optimizer: the cardinality budget,
// the owned objective (cloned from the caller's reference at construction),
// the current summary, its optional ids, the current value, and whether any
// data has been offered yet.
type Base struct {
	K         int
	Objective objective.Function

	solution [][]float64
	ids      []int
	value    float64
	fitted   bool
}

// NewBase validates K and clones f, returning the shared optimizer state.
func NewBase(k int, f objective.Function) (*Base, error) {
	if k < 1 {
		return nil, &Error{Op: "New", Param: "K", Value: k, Err: ErrInvalidBudget}
	}
	return &Base{K: k, Objective: f.Clone()}, nil
}

// Solution returns the current summary. Fails with ErrNotFitted before any
// data has been offered.
func (b *Base) Solution() ([][]float64, error) {
	if !b.fitted {
		return nil, &Error{Op: "Solution", Err: ErrNotFitted}
	}
	return b.solution, nil
}

// IDs returns the ids parallel to the current summary, or an empty slice if
// ids were never supplied. Fails with ErrNotFitted before any data has been
// offered.
func (b *Base) IDs() ([]int, error) {
	if !b.fitted {
		return nil, &Error{Op: "IDs", Err: ErrNotFitted}
	}
	return b.ids, nil
}

// Value returns the objective's current value. Fails with ErrNotFitted
// before any data has been offered.
func (b *Base) Value() (float64, error) {
	if !b.fitted {
		return 0, &Error{Op: "Value", Err: ErrNotFitted}
	}
	return b.value, nil
}

// NumCandidateSolutions defaults to 1; sieve-based optimizers override it.
func (b *Base) NumCandidateSolutions() int { return 1 }

// NumElementsStored defaults to the solution size; sieve-based optimizers
// override it to sum over their sieves.
func (b *Base) NumElementsStored() int { return len(b.solution) }

// accept commits x (and id, if supplied) into slot pos, updating the cached
// value and marking the optimizer fitted. pos >= len(solution) appends;
// otherwise it replaces the existing slot in place.
func (b *Base) accept(x []float64, id *int, pos int, newValue float64) {
	if pos >= len(b.solution) {
		b.solution = append(b.solution, x)
		if id != nil {
			b.ids = append(b.ids, *id)
		}
	} else {
		b.solution[pos] = x
		if id != nil && pos < len(b.ids) {
			b.ids[pos] = *id
		}
	}
	b.value = newValue
	b.fitted = true
}

// DefaultFit drives o by repeatedly calling Offer over points, looping up to
// maxIterations times but breaking out early after the first full pass once
// the summary reaches k elements. Concrete optimizers without a bespoke
// batch routine implement Fit by delegating here.
func DefaultFit(o Optimizer, k int, points [][]float64, ids []int, maxIterations int) error {
	if len(ids) > 0 && len(ids) != len(points) {
		return &Error{Op: "Fit", Err: ErrIDsCardinalityMismatch}
	}
	if maxIterations < 1 {
		maxIterations = 1
	}
	withIDs := len(ids) == len(points) && len(ids) > 0

	for it := 0; it < maxIterations; it++ {
		for i, x := range points {
			var idp *int
			if withIDs {
				v := ids[i]
				idp = &v
			}
			if err := o.Offer(x, idp); err != nil {
				return err
			}
		}
		sol, err := o.Solution()
		if err == nil && len(sol) >= k {
			return nil
		}
	}
	return nil
}
