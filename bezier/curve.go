package bezier

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/polyn"
)

// Curve is a Bezier curve of fixed degree n, defined by n+1 control points.
type Curve[T cortex.Vector[T]] struct {
	k []T // control points k.0 … k.n
	d []T // control points of the derivative curve, n of them
}

// NewCurve creates a curve of degree len(controlPoints)−1. The control points
// are copied.
func NewCurve[T cortex.Vector[T]](controlPoints []T) (*Curve[T], error) {
	n := len(controlPoints) - 1
	if n < 0 {
		return nil, ErrNoControlPoints
	}
	if n > polyn.MaxDegree {
		return nil, fmt.Errorf("%w: curve of degree %d, maximum is %d", ErrDegreeTooHigh, n, polyn.MaxDegree)
	}
	c := &Curve[T]{k: make([]T, n+1)}
	copy(c.k, controlPoints)
	c.d = derivativePoints(c.k)
	return c, nil
}

// MustNewCurve is like NewCurve, but panics on invalid input. It is intended
// for static control point tables.
func MustNewCurve[T cortex.Vector[T]](controlPoints []T) *Curve[T] {
	c, err := NewCurve(controlPoints)
	if err != nil {
		panic(err)
	}
	return c
}

// Degree returns n for a curve with n+1 control points.
func (c *Curve[T]) Degree() int {
	return len(c.k) - 1
}

// ControlPoints returns a copy of the control points.
func (c *Curve[T]) ControlPoints() []T {
	k := make([]T, len(c.k))
	copy(k, c.k)
	return k
}

// Position evaluates the curve at t. t is not clamped to [0,1]; outside of it
// the polynomial is extrapolated.
func (c *Curve[T]) Position(t float64) T {
	return evalPoints(c.k, t)
}

// Tangent evaluates the first derivative of the curve at t, i.e. the
// position of the derivative curve of degree n−1 with control points
// n⋅(k.(i+1) − k.i). For a curve of degree 0 the tangent is the zero vector.
func (c *Curve[T]) Tangent(t float64) T {
	if len(c.d) == 0 {
		var zero T
		return zero
	}
	return evalPoints(c.d, t)
}

// Derivative returns the derivative curve of degree n−1, or nil for a curve
// of degree 0.
func (c *Curve[T]) Derivative() *Curve[T] {
	if len(c.d) == 0 {
		return nil
	}
	return MustNewCurve(c.d)
}

func (c *Curve[T]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("bezier(%d)[", c.Degree()))
	for i, k := range c.k {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%v", k))
	}
	sb.WriteString("]")
	return sb.String()
}

// === Normals of planar curves ==============================================

// NormalFunc derives a vertex normal from the tangent of a curve.
type NormalFunc[T any] func(tangent T) T

// Perpendicular rotates a 2D vector by 90° counter-clockwise.
// It may be used as a NormalFunc for planar curves.
func Perpendicular(d mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-d[1], d[0]}
}

// Normal returns the normal of a planar curve at t, which is the tangent
// rotated by 90° counter-clockwise. It is not normalized.
func Normal(c *Curve[mgl64.Vec2], t float64) mgl64.Vec2 {
	return Perpendicular(c.Tangent(t))
}

// === Evaluation helpers ====================================================

// evalPoints evaluates the Bezier polynomial with control points k at t.
// len(k) must be at least 1.
func evalPoints[T cortex.Vector[T]](k []T, t float64) T {
	n := len(k) - 1
	p := k[0].Mul(polyn.Bernstein(n, 0, t))
	for i := 1; i <= n; i++ {
		p = p.Add(k[i].Mul(polyn.Bernstein(n, i, t)))
	}
	return p
}

// evalTangent evaluates the derivative of the Bezier polynomial with control
// points k at t, without materializing the derivative control points.
func evalTangent[T cortex.Vector[T]](k []T, t float64) T {
	n := len(k) - 1
	if n == 0 {
		var zero T
		return zero
	}
	fn := float64(n)
	d := k[1].Sub(k[0]).Mul(fn * polyn.Bernstein(n-1, 0, t))
	for i := 1; i < n; i++ {
		d = d.Add(k[i+1].Sub(k[i]).Mul(fn * polyn.Bernstein(n-1, i, t)))
	}
	return d
}

func derivativePoints[T cortex.Vector[T]](k []T) []T {
	n := len(k) - 1
	if n == 0 {
		return nil
	}
	d := make([]T, n)
	for i := 0; i < n; i++ {
		d[i] = k[i+1].Sub(k[i]).Mul(float64(n))
	}
	return d
}
