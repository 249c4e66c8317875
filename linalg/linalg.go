// Package linalg implements exact Gaussian elimination over the rationals.
package linalg

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/utils/bignum"
)

var (
	// ErrDimensionMismatch is returned when the right hand side does not match the number of rows.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrInconsistent is returned when a linear system has no solution.
	ErrInconsistent = errors.New("linalg: inconsistent system")
)

// Matrix is a dense row-major matrix of rationals.
type Matrix [][]bignum.Frac

// NewMatrix returns the rows x cols zero matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]bignum.Frac, cols)
	}
	return m
}

// FromInts returns the matrix with integer entries v.
func FromInts(v [][]int64) Matrix {
	m := make(Matrix, len(v))
	for i := range v {
		m[i] = make([]bignum.Frac, len(v[i]))
		for j := range v[i] {
			m[i][j] = bignum.FracOf(v[i][j])
		}
	}
	return m
}

// Rows returns the number of rows of m.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of m, 0 for a matrix without rows.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = make([]bignum.Frac, len(m[i]))
		copy(c[i], m[i])
	}
	return c
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	t := NewMatrix(m.Cols(), m.Rows())
	for i := range m {
		for j := range m[i] {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// MulVec returns m * v.
func (m Matrix) MulVec(v []bignum.Frac) ([]bignum.Frac, error) {
	if m.Cols() != len(v) && m.Rows() > 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%dx%d matrix times vector of length %d", m.Rows(), m.Cols(), len(v))
	}
	out := make([]bignum.Frac, len(m))
	for i := range m {
		var acc bignum.Frac
		for j := range m[i] {
			if !m[i][j].IsZero() && !v[j].IsZero() {
				acc = acc.Add(m[i][j].Mul(v[j]))
			}
		}
		out[i] = acc
	}
	return out, nil
}

// GaussToRREF reduces a to reduced row echelon form in place and returns the
// pivot columns in increasing order. If maxCols >= 0 only the columns
// [0, maxCols) are used as pivots, which is how an augmented system [M|b]
// is reduced on M alone.
func GaussToRREF(a Matrix, maxCols int) (pivots []int) {

	pivots = []int{}

	rows, cols := a.Rows(), a.Cols()
	if rows == 0 || cols == 0 {
		return
	}

	limit := cols
	if maxCols >= 0 && maxCols < cols {
		limit = maxCols
	}

	var pr int
	for c := 0; c < limit && pr < rows; c++ {

		r := pr
		for r < rows && a[r][c].IsZero() {
			r++
		}

		if r == rows {
			continue
		}

		a[r], a[pr] = a[pr], a[r]

		pivot := a[pr][c]
		if !pivot.IsOne() {
			for j := 0; j < cols; j++ {
				if !a[pr][j].IsZero() {
					a[pr][j] = a[pr][j].MustQuo(pivot)
				}
			}
		}

		for i := 0; i < rows; i++ {
			if i == pr || a[i][c].IsZero() {
				continue
			}
			scale := a[i][c]
			for j := 0; j < cols; j++ {
				if !a[pr][j].IsZero() {
					a[i][j] = a[i][j].Sub(scale.Mul(a[pr][j]))
				}
			}
		}

		pivots = append(pivots, c)
		pr++
	}

	return
}

// Rank returns the rank of m. m is not modified.
func Rank(m Matrix) int {
	return len(GaussToRREF(m.Clone(), -1))
}

// freeColumns returns the columns of [0, cols) that are not pivots.
func freeColumns(pivots []int, cols int) []int {
	isPivot := make([]bool, cols)
	for _, p := range pivots {
		isPivot[p] = true
	}
	free := []int{}
	for j := 0; j < cols; j++ {
		if !isPivot[j] {
			free = append(free, j)
		}
	}
	return free
}

// Kernel returns a basis of the null space {v : m v = 0}, one vector per free
// column of the reduced form of m, with a 1 at that column. m is not modified.
func Kernel(m Matrix) [][]bignum.Frac {

	if m.Rows() == 0 || m.Cols() == 0 {
		return [][]bignum.Frac{}
	}

	a := m.Clone()
	pivots := GaussToRREF(a, -1)
	cols := a.Cols()

	basis := [][]bignum.Frac{}
	for _, fc := range freeColumns(pivots, cols) {
		v := make([]bignum.Frac, cols)
		v[fc] = bignum.FracOf(1)
		for pi, pc := range pivots {
			v[pc] = a[pi][fc].Neg()
		}
		basis = append(basis, v)
	}

	return basis
}

// Solve returns a solution x of m x = b, with the free variables set to zero.
// Returns ErrDimensionMismatch if len(b) differs from the number of rows and
// ErrInconsistent if the system has no solution. m and b are not modified.
func Solve(m Matrix, b []bignum.Frac) ([]bignum.Frac, error) {

	rows, cols := m.Rows(), m.Cols()

	if rows == 0 || cols == 0 || len(b) != rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%dx%d system with right hand side of length %d", rows, cols, len(b))
	}

	a := make(Matrix, rows)
	for i := range m {
		a[i] = make([]bignum.Frac, cols+1)
		copy(a[i], m[i])
		a[i][cols] = b[i]
	}

	pivots := GaussToRREF(a, cols)

	for i := len(pivots); i < rows; i++ {
		if !a[i][cols].IsZero() {
			return nil, errors.Wrapf(ErrInconsistent, "row %d reduces to 0 = %s", i, a[i][cols])
		}
	}

	x := make([]bignum.Frac, cols)
	for pi, pc := range pivots {
		x[pc] = a[pi][cols]
	}

	return x, nil
}
