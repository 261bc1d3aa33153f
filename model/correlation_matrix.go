package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/uyouii/copula-algorithms/common"
	"gonum.org/v1/gonum/mat"
)

// CorrelationMatrix is a symmetric matrix with unit diagonal. Set keeps it
// symmetric; positive definiteness is checked by the consumers that need it.
type CorrelationMatrix struct {
	m *mat.SymDense
}

// NewCorrelationMatrix returns the d x d identity.
func NewCorrelationMatrix(d int) *CorrelationMatrix {
	m := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		m.SetSym(i, i, 1)
	}
	return &CorrelationMatrix{m: m}
}

// NewCorrelationMatrixFromRows builds a matrix from its rows. Only the
// lower triangle is read, the input must still be square.
func NewCorrelationMatrixFromRows(rows [][]float64) (*CorrelationMatrix, error) {
	d := len(rows)
	if d == 0 {
		return nil, fmt.Errorf("empty correlation matrix: %w", common.ErrorInvalidParameter)
	}
	c := NewCorrelationMatrix(d)
	for i, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("correlation row %d has %d entries, want %d: %w",
				i, len(row), d, common.ErrorInvalidParameter)
		}
		for j := 0; j <= i; j++ {
			if row[j] != rows[j][i] {
				return nil, fmt.Errorf("correlation matrix not symmetric at (%d,%d): %w",
					i, j, common.ErrorInvalidParameter)
			}
			c.m.SetSym(i, j, row[j])
		}
	}
	return c, nil
}

// NewCorrelationMatrixFromSym copies s.
func NewCorrelationMatrixFromSym(s mat.Symmetric) *CorrelationMatrix {
	return &CorrelationMatrix{m: copySym(s)}
}

func copySym(s mat.Symmetric) *mat.SymDense {
	m := mat.NewSymDense(s.SymmetricDim(), nil)
	m.CopySym(s)
	return m
}

func (c *CorrelationMatrix) Dimension() int {
	return c.m.SymmetricDim()
}

func (c *CorrelationMatrix) At(i, j int) float64 {
	return c.m.At(i, j)
}

// Set assigns both (i, j) and (j, i).
func (c *CorrelationMatrix) Set(i, j int, v float64) {
	c.m.SetSym(i, j, v)
}

func (c *CorrelationMatrix) Clone() *CorrelationMatrix {
	return NewCorrelationMatrixFromSym(c.m)
}

// SymDense returns a copy of the underlying matrix.
func (c *CorrelationMatrix) SymDense() *mat.SymDense {
	return copySym(c.m)
}

func (c *CorrelationMatrix) Rows() [][]float64 {
	d := c.Dimension()
	rows := make([][]float64, d)
	for i := range rows {
		rows[i] = make([]float64, d)
		for j := range rows[i] {
			rows[i][j] = c.m.At(i, j)
		}
	}
	return rows
}

// Validate checks the unit diagonal and that every entry is a finite value
// in [-1, 1].
func (c *CorrelationMatrix) Validate() error {
	d := c.Dimension()
	for i := 0; i < d; i++ {
		if c.m.At(i, i) != 1 {
			return fmt.Errorf("diagonal entry (%d,%d)=%v: %w", i, i, c.m.At(i, i), common.ErrorInvalidParameter)
		}
		for j := 0; j < i; j++ {
			v := c.m.At(i, j)
			if math.IsNaN(v) || v < -1 || v > 1 {
				return fmt.Errorf("entry (%d,%d)=%v outside [-1,1]: %w", i, j, v, common.ErrorInvalidParameter)
			}
		}
	}
	return nil
}

func (c *CorrelationMatrix) IsPositiveDefinite() bool {
	var chol mat.Cholesky
	return chol.Factorize(c.m)
}

func (c *CorrelationMatrix) IsIdentity() bool {
	d := c.Dimension()
	for i := 0; i < d; i++ {
		for j := 0; j < i; j++ {
			if c.m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

// Sub returns the matrix restricted to indices, in their order.
func (c *CorrelationMatrix) Sub(indices Indices) *CorrelationMatrix {
	s := mat.NewSymDense(len(indices), nil)
	for a, i := range indices {
		for b := 0; b <= a; b++ {
			s.SetSym(a, b, c.m.At(i, indices[b]))
		}
	}
	return &CorrelationMatrix{m: s}
}

// EqualApprox reports whether every entry of c and o differs by at most tol.
func (c *CorrelationMatrix) EqualApprox(o *CorrelationMatrix, tol float64) bool {
	return mat.EqualApprox(c.m, o.m, tol)
}

func (c *CorrelationMatrix) String() string {
	rows := c.Rows()
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = Point(row).String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}
