package jhobby

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cortex.jhobby'
func tracer() tracing.Trace {
	return tracing.Select("cortex.jhobby")
}

const _epsilon = 0.0000001

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewKnots indicates path knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
	// ErrCycleHasDuplicateTerminalKnot indicates cyclic path redundantly repeats first knot as last knot.
	ErrCycleHasDuplicateTerminalKnot = errors.New("cycle path must not repeat first knot as terminal knot")
	// ErrUnsolved indicates a path whose control points have not been calculated.
	ErrUnsolved = errors.New("path has unknown control points")
)

// pair is a point or a direction in the plane.
type pair = mgl64.Vec2

// prepost holds a parameter before and after a knot.
type prepost struct {
	pre, post float64
}

var neutral = prepost{1, 1}

// Path is the concrete type for building and solving Hobby splines.
// To construct a path, start with Nullpath(), which creates an empty
// path, and then extend it.
type Path struct {
	points   []pair    // point i
	cycle    bool      // is this path cyclic ?
	predirs  []pair    // explicit pre-direction at point i
	postdirs []pair    // explicit post-direction at point i
	curls    []prepost // explicit pre- and post-curl at point i
	tensions []prepost // explicit pre- and post-tension at point i
	lines    []bool    // is the join from point i to i+1 straight ?
	Controls *Controls // control points to be calculated
}

// A segment view onto a parent path.
type pathPartial struct {
	whole    *Path     // parent path
	start    int       // first index within parent path
	end      int       // last index within parent path, may wrap for cycles
	controls *Controls // control points, shared with parent path
}

// Controls collects calculated spline control points.
type Controls struct {
	prec  []pair // control point i-, to be calculated
	postc []pair // control point i+, to be calculated
}
