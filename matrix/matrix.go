// Package matrix implements the dense square-matrix value type the rest of
// this module builds on: element access, row/column overwrite, a rank-one
// symmetric row/column update, and the two whole-block Cholesky
// factorizations (hand-rolled column-wise, gonum-backed) in cholesky.go.
// The one-row incremental extension of a factor lives in package ivm.
package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Dense is a square N×N matrix of float64 values in row-major storage.
type Dense struct {
	n    int
	data []float64
}

// New allocates an n×n matrix with every entry set to zero.
func New(n int) *Dense {
	return &Dense{n: n, data: make([]float64, n*n)}
}

// NewFromSub copies the leading nSub×nSub block of other into a new matrix.
// The caller must ensure nSub <= other.Size().
func NewFromSub(other *Dense, nSub int) *Dense {
	d := New(nSub)
	for i := 0; i < nSub; i++ {
		for j := 0; j < nSub; j++ {
			d.Set(i, j, other.At(i, j))
		}
	}
	return d
}

// Size returns the number of rows (equivalently columns) of the matrix.
func (d *Dense) Size() int { return d.n }

// At returns the (i,j) entry. No bounds checking is performed.
func (d *Dense) At(i, j int) float64 { return d.data[i*d.n+j] }

// Set writes the (i,j) entry. No bounds checking is performed.
func (d *Dense) Set(i, j int, v float64) { d.data[i*d.n+j] = v }

// ReplaceRow overwrites row with the entries of x.
func (d *Dense) ReplaceRow(row int, x []float64) {
	for i := 0; i < d.n; i++ {
		d.Set(row, i, x[i])
	}
}

// ReplaceColumn overwrites col with the entries of x.
func (d *Dense) ReplaceColumn(col int, x []float64) {
	for i := 0; i < d.n; i++ {
		d.Set(i, col, x[i])
	}
}

// RankOneUpdate adds x componentwise to row j and column j, updating the
// diagonal entry (j,j) exactly once rather than twice.
func (d *Dense) RankOneUpdate(j int, x []float64) {
	for i := 0; i < d.n; i++ {
		if i == j {
			d.Set(i, i, d.At(i, i)+x[i])
		} else {
			d.Set(i, j, d.At(i, j)+x[i])
			d.Set(j, i, d.At(j, i)+x[i])
		}
	}
}

// String renders the leading block as a python/numpy-compatible nested list,
// convenient for pasting into an interactive session while debugging.
func (d *Dense) String() string { return d.subString(d.n) }

func (d *Dense) subString(nSub int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < nSub; i++ {
		b.WriteByte('[')
		for j := 0; j < nSub; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(d.At(i, j), 'g', -1, 64))
		}
		b.WriteByte(']')
		if i < nSub-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteByte(']')
	return b.String()
}

// GoString implements fmt.GoStringer so %#v on a *Dense prints String()
// prefixed with the type name.
func (d *Dense) GoString() string { return fmt.Sprintf("matrix.Dense%s", d.String()) }
