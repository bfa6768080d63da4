package bezier

import (
	"fmt"

	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/polyn"
)

// Surface is a tensor-product Bezier surface of degree (n,m), defined by a
// grid of (n+1)×(m+1) control points. The first grid index runs along u.
type Surface[T cortex.Vector3[T]] struct {
	k [][]T
}

// NewSurface creates a surface from a grid of control points. The grid is
// copied. All rows must have the same, non-zero length.
func NewSurface[T cortex.Vector3[T]](grid [][]T) (*Surface[T], error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrNoControlPoints
	}
	n, m := len(grid)-1, len(grid[0])-1
	if n > polyn.MaxDegree || m > polyn.MaxDegree {
		return nil, fmt.Errorf("%w: surface of degree (%d,%d), maximum is %d",
			ErrDegreeTooHigh, n, m, polyn.MaxDegree)
	}
	k := make([][]T, n+1)
	for i, row := range grid {
		if len(row) != m+1 {
			return nil, fmt.Errorf("%w: row %d has %d control points, expected %d",
				ErrRaggedGrid, i, len(row), m+1)
		}
		k[i] = make([]T, m+1)
		copy(k[i], row)
	}
	return &Surface[T]{k: k}, nil
}

// Degree returns (n,m) for a grid of (n+1)×(m+1) control points.
func (s *Surface[T]) Degree() (int, int) {
	return len(s.k) - 1, len(s.k[0]) - 1
}

// ControlPoint returns control point k.i.j. It panics if (i,j) is outside
// of the grid.
func (s *Surface[T]) ControlPoint(i, j int) T {
	return s.k[i][j]
}

// Transpose returns a surface with the grid indices swapped, i.e. with u and
// v exchanged. The normal of the transposed surface points to the opposite
// side.
func (s *Surface[T]) Transpose() *Surface[T] {
	n, m := s.Degree()
	k := make([][]T, m+1)
	for j := 0; j <= m; j++ {
		k[j] = make([]T, n+1)
		for i := 0; i <= n; i++ {
			k[j][i] = s.k[i][j]
		}
	}
	return &Surface[T]{k: k}
}

// Position evaluates the surface at (u,v).
func (s *Surface[T]) Position(u, v float64) T {
	var buf [polyn.MaxDegree + 1]T
	return evalPoints(s.rowsAt(v, buf[:len(s.k)]), u)
}

// Tangents returns the partial derivatives of the surface at (u,v), in
// u-direction and in v-direction.
func (s *Surface[T]) Tangents(u, v float64) (du T, dv T) {
	var rbuf, cbuf [polyn.MaxDegree + 1]T
	du = evalTangent(s.rowsAt(v, rbuf[:len(s.k)]), u)
	dv = evalTangent(s.columnsAt(u, cbuf[:len(s.k[0])]), v)
	return
}

// Normal returns du × dv at (u,v). It is not normalized and may be zero at
// degenerate points, e.g. where a row of control points collapses into a
// single point.
func (s *Surface[T]) Normal(u, v float64) T {
	du, dv := s.Tangents(u, v)
	return du.Cross(dv)
}

// rowsAt evaluates every row of the grid at v, giving n+1 points.
func (s *Surface[T]) rowsAt(v float64, pts []T) []T {
	for i, row := range s.k {
		pts[i] = evalPoints(row, v)
	}
	return pts
}

// columnsAt evaluates every column of the grid at u, giving m+1 points.
func (s *Surface[T]) columnsAt(u float64, pts []T) []T {
	var col [polyn.MaxDegree + 1]T
	c := col[:len(s.k)]
	for j := range pts {
		for i := range s.k {
			c[i] = s.k[i][j]
		}
		pts[j] = evalPoints(c, u)
	}
	return pts
}

func (s *Surface[T]) String() string {
	n, m := s.Degree()
	return fmt.Sprintf("bezier(%d,%d)%v", n, m, s.k)
}
