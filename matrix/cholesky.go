package matrix

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrNotPositiveDefinite is returned by both Cholesky paths when the
// radicand on the diagonal is non-positive, i.e. the supplied block is not
// (numerically) positive definite.
var ErrNotPositiveDefinite = errors.New("matrix: not positive definite")

// Cholesky computes, via the standard column-wise algorithm, the
// lower-triangular L such that L·Lᵀ equals the leading nSub×nSub block of a.
// For each column j, L[j,j] = sqrt(A[j,j] - Σ_{k<j} L[j,k]²), then for i>j,
// L[i,j] = (A[i,j] - Σ_{k<j} L[i,k]·L[j,k]) / L[j,j].
func Cholesky(a *Dense, nSub int) (*Dense, error) {
	l := New(nSub)
	for j := 0; j < nSub; j++ {
		var sum float64
		for k := 0; k < j; k++ {
			sum += l.At(j, k) * l.At(j, k)
		}
		radicand := a.At(j, j) - sum
		if radicand <= 0 {
			return nil, ErrNotPositiveDefinite
		}
		l.Set(j, j, math.Sqrt(radicand))

		for i := j + 1; i < nSub; i++ {
			var s float64
			for k := 0; k < j; k++ {
				s += l.At(i, k) * l.At(j, k)
			}
			l.Set(i, j, (a.At(i, j)-s)/l.At(j, j))
		}
	}
	return l, nil
}

// LogDetFromCholesky returns 2·Σᵢ log L[i,i] over the leading nSub×nSub
// block of a matrix previously factorized via Cholesky.
func LogDetFromCholesky(l *Dense, nSub int) float64 {
	var det float64
	for i := 0; i < nSub; i++ {
		det += math.Log(l.At(i, i))
	}
	return 2 * det
}

// LogDet factorizes the leading nSub×nSub block of a and returns its
// log-determinant.
func LogDet(a *Dense, nSub int) (float64, error) {
	l, err := Cholesky(a, nSub)
	if err != nil {
		return 0, err
	}
	return LogDetFromCholesky(l, nSub), nil
}

// FullCholesky recomputes the Cholesky factorization of the leading
// nSub×nSub block of a from scratch via gonum's mat.Cholesky. This backs the
// O(K³) replace-case refactor in package ivm, where the whole block changes
// and a hand-rolled loop would only duplicate what a well-tested linear
// algebra library already solves.
func FullCholesky(a *Dense, nSub int) (*Dense, error) {
	sym := mat.NewSymDense(nSub, nil)
	for i := 0; i < nSub; i++ {
		for j := i; j < nSub; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}

	var lTri mat.TriDense
	chol.LTo(&lTri)

	l := New(nSub)
	for i := 0; i < nSub; i++ {
		for j := 0; j <= i; j++ {
			l.Set(i, j, lTri.At(i, j))
		}
	}
	return l, nil
}
