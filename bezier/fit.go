package bezier

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/polyn"
)

// Components gives coordinate-wise access to a vector type.
type Components[T any] struct {
	Dim  int                     // number of coordinates
	Get  func(v T, i int) float64 // coordinate i of v
	Make func(c []float64) T      // vector from Dim coordinates
}

// Vec2Components gives access to the coordinates of mgl64.Vec2.
var Vec2Components = Components[mgl64.Vec2]{
	Dim:  2,
	Get:  func(v mgl64.Vec2, i int) float64 { return v[i] },
	Make: func(c []float64) mgl64.Vec2 { return mgl64.Vec2{c[0], c[1]} },
}

// Vec3Components gives access to the coordinates of mgl64.Vec3.
var Vec3Components = Components[mgl64.Vec3]{
	Dim:  3,
	Get:  func(v mgl64.Vec3, i int) float64 { return v[i] },
	Make: func(c []float64) mgl64.Vec3 { return mgl64.Vec3{c[0], c[1], c[2]} },
}

// FitCurve finds the Bezier curve of degree len(points)−1 which passes
// through points.j at parameter ts.j. If ts is nil, the points are assigned
// evenly spaced parameters j/(len(points)−1).
//
// For every coordinate the system
//
//	Σ x.i ⋅ b(n,i)(ts.j) = points.j     for j = 0 … n
//
// is handed to a polyn.LinEqSolver. Parameters occurring twice make the
// system singular, which is reported as an error wrapping
// polyn.ErrInconsistentEquation or polyn.ErrUnderdetermined.
func FitCurve[T cortex.Vector[T]](points []T, ts []float64, comp Components[T]) (*Curve[T], error) {
	n := len(points) - 1
	if n < 0 {
		return nil, ErrNoControlPoints
	}
	if n > polyn.MaxDegree {
		return nil, fmt.Errorf("%w: cannot fit %d points, maximum degree is %d",
			ErrDegreeTooHigh, len(points), polyn.MaxDegree)
	}
	if ts == nil {
		ts = make([]float64, n+1)
		for j := 1; j <= n; j++ {
			ts[j] = float64(j) / float64(n)
		}
	} else if len(ts) != len(points) {
		return nil, fmt.Errorf("%w: %d points but %d parameters",
			cortex.ErrPrecondition, len(points), len(ts))
	}
	coords := make([][]float64, n+1) // coords[i][d] of control point i
	for i := range coords {
		coords[i] = make([]float64, comp.Dim)
	}
	for d := 0; d < comp.Dim; d++ {
		leq := polyn.NewLinEqSolver()
		for j, p := range points {
			eq := polyn.NewConstantPolynomial(-comp.Get(p, d))
			for i := 0; i <= n; i++ {
				eq.SetTerm(i+1, polyn.Bernstein(n, i, ts[j]))
			}
			if err := leq.AddEq(eq); err != nil {
				tracer().Errorf("fitting curve: %v", err)
				return nil, fmt.Errorf("cannot fit curve, coordinate %d: %w", d, err)
			}
		}
		for i := 0; i <= n; i++ {
			x, err := leq.Value(i + 1)
			if err != nil {
				tracer().Errorf("fitting curve: %v", err)
				return nil, fmt.Errorf("cannot fit curve, coordinate %d: %w", d, err)
			}
			coords[i][d] = x
		}
	}
	k := make([]T, n+1)
	for i := range k {
		k[i] = comp.Make(coords[i])
	}
	return NewCurve(k)
}

// FitCurve2 is FitCurve for planar points.
func FitCurve2(points []mgl64.Vec2, ts []float64) (*Curve[mgl64.Vec2], error) {
	return FitCurve(points, ts, Vec2Components)
}

// FitCurve3 is FitCurve for points in space.
func FitCurve3(points []mgl64.Vec3, ts []float64) (*Curve[mgl64.Vec3], error) {
	return FitCurve(points, ts, Vec3Components)
}
