// Package ivm implements the Fast IVM objective (C4): the log-determinant
// engine f(S) = log det(sigma*I + K_S) that serves as this module's default
// submodular function, maintaining an incremental Cholesky factorization so
// that appending a candidate point is O(K^2) to evaluate and commit.
package ivm

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/kernel"
	"github.com/vecsummary/submod/matrix"
	"github.com/vecsummary/submod/objective"
)

// ErrNotPositiveDefinite is surfaced when the maintained kernel matrix is
// numerically indefinite — a pathological kernel, not a caller bug.
var ErrNotPositiveDefinite = matrix.ErrNotPositiveDefinite

// FastIVM maintains a (K+1)x(K+1) kernel matrix and Cholesky factor so a
// hypothetical append can be evaluated by extending the factor by one
// row/column (O(added^2)) instead of refactorizing from scratch. Replacing
// an existing slot still requires a full O(added^3) refactor.
type FastIVM struct {
	k      int
	kernel kernel.Kernel
	sigma  float64

	added int
	kmat  *matrix.Dense
	l     *matrix.Dense
	fval  float64
}

// New constructs a FastIVM objective for a budget of k points, using ker as
// the similarity function and sigma as the ridge added to the diagonal.
func New(k int, ker kernel.Kernel, sigma float64) *FastIVM {
	return &FastIVM{
		k:      k,
		kernel: ker,
		sigma:  sigma,
		kmat:   matrix.New(k + 1),
		l:      matrix.New(k + 1),
	}
}

// Value implements objective.Function. It ignores solution and returns the
// cached fval — the invariant holds provided the caller respects the
// peek/update discipline.
func (f *FastIVM) Value(_ [][]float64) float64 { return f.fval }

// Peek implements objective.Function.
func (f *FastIVM) Peek(solution [][]float64, x []float64, pos int) (float64, error) {
	if pos < f.added {
		return f.peekReplace(solution, x, pos)
	}
	return f.peekAppend(solution, x)
}

// peekAppend evaluates the hypothetical value of appending x past the last
// committed element. When the solution is already at budget, this still
// computes a real marginal value using the kernel matrix's reserved
// (k+1)th row/column as scratch — never committed, only read by callers
// like IndependentSetImprovement that need f(S union x) to size a potential
// replacement's gain.
func (f *FastIVM) peekAppend(solution [][]float64, x []float64) (float64, error) {
	added := f.added
	for i := 0; i < added; i++ {
		kv := f.kernel.Eval(solution[i], x)
		f.kmat.Set(i, added, kv)
		f.kmat.Set(added, i, kv)
	}
	f.kmat.Set(added, added, f.sigma+f.kernel.Eval(x, x))

	diag, err := f.extendCholesky(added)
	if err != nil {
		return 0, err
	}
	return f.fval + 2*math.Log(diag), nil
}

// extendCholesky writes row/column `added` of L from the (already updated)
// kmat, without disturbing any previously committed row, and returns the new
// diagonal entry L[added,added].
func (f *FastIVM) extendCholesky(added int) (float64, error) {
	for j := 0; j <= added; j++ {
		var s float64
		for kk := 0; kk < j; kk++ {
			s += f.l.At(added, kk) * f.l.At(j, kk)
		}
		if j == added {
			radicand := f.kmat.At(added, added) - s
			if radicand <= 0 {
				log.Error().Int("added", added).Msg("ivm: non-positive radicand extending cholesky factor")
				return 0, ErrNotPositiveDefinite
			}
			f.l.Set(added, added, math.Sqrt(radicand))
		} else {
			v := (f.kmat.At(added, j) - s) / f.l.At(j, j)
			f.l.Set(added, j, v)
			f.l.Set(j, added, v)
		}
	}
	return f.l.At(added, added), nil
}

func (f *FastIVM) peekReplace(solution [][]float64, x []float64, pos int) (float64, error) {
	n := f.added
	scratch := matrix.NewFromSub(f.kmat, n)
	f.writeReplaceRow(scratch, solution, x, pos, n)

	l, err := matrix.FullCholesky(scratch, n)
	if err != nil {
		return 0, err
	}
	return matrix.LogDetFromCholesky(l, n), nil
}

func (f *FastIVM) writeReplaceRow(m *matrix.Dense, solution [][]float64, x []float64, pos, n int) {
	for i := 0; i < n; i++ {
		if i == pos {
			continue
		}
		kv := f.kernel.Eval(solution[i], x)
		m.Set(pos, i, kv)
		m.Set(i, pos, kv)
	}
	m.Set(pos, pos, f.sigma+f.kernel.Eval(x, x))
}

// Update implements objective.Function.
func (f *FastIVM) Update(solution [][]float64, x []float64, pos int) error {
	if pos < f.added {
		return f.updateReplace(solution, x, pos)
	}
	return f.updateAppend(solution, x)
}

func (f *FastIVM) updateAppend(solution [][]float64, x []float64) error {
	if f.added >= f.k {
		return nil
	}
	added := f.added
	for i := 0; i < added; i++ {
		kv := f.kernel.Eval(solution[i], x)
		f.kmat.Set(i, added, kv)
		f.kmat.Set(added, i, kv)
	}
	f.kmat.Set(added, added, f.sigma+f.kernel.Eval(x, x))

	diag, err := f.extendCholesky(added)
	if err != nil {
		return err
	}
	f.fval += 2 * math.Log(diag)
	f.added++
	return nil
}

func (f *FastIVM) updateReplace(solution [][]float64, x []float64, pos int) error {
	n := f.added
	f.writeReplaceRow(f.kmat, solution, x, pos, n)

	l, err := matrix.FullCholesky(f.kmat, n)
	if err != nil {
		log.Error().Int("pos", pos).Msg("ivm: kernel matrix not positive definite during replace")
		return err
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			f.l.Set(i, j, l.At(i, j))
			f.l.Set(j, i, l.At(i, j))
		}
	}
	f.fval = matrix.LogDetFromCholesky(l, n)
	return nil
}

// Clone implements objective.Function, returning a fresh instance with the
// same K, a cloned kernel, and the same sigma, but an empty factorization.
func (f *FastIVM) Clone() objective.Function {
	return New(f.k, f.kernel.Clone(), f.sigma)
}
