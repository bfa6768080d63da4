package jhobby

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex/bezier"
)

// SetPreControl sets the control point before z.i.
func (ctrls *Controls) SetPreControl(i int, c mgl64.Vec2) {
	ctrls.prec = extend(ctrls.prec, i, unknown)
	ctrls.prec[i] = c
}

// SetPostControl sets the control point after z.i.
func (ctrls *Controls) SetPostControl(i int, c mgl64.Vec2) {
	ctrls.postc = extend(ctrls.postc, i, unknown)
	ctrls.postc[i] = c
}

// PreControl returns the control point before z.i, or a vector of NaNs
// if it is not calculated.
func (ctrls *Controls) PreControl(i int) mgl64.Vec2 {
	return get(ctrls.prec, i, unknown)
}

// PostControl returns the control point after z.i, or a vector of NaNs
// if it is not calculated.
func (ctrls *Controls) PostControl(i int) mgl64.Vec2 {
	return get(ctrls.postc, i, unknown)
}

// Curves converts a path and its control points into a chain of cubic
// Bezier curves, one for each join. For cyclic paths the last curve ends
// at z.0.
func Curves(path *Path, controls *Controls) ([]*bezier.Curve[mgl64.Vec2], error) {
	if path == nil {
		return nil, ErrNilPath
	}
	if controls == nil {
		return nil, ErrUnsolved
	}
	n := path.N()
	joins := n - 1
	if path.IsCycle() {
		joins = n
	}
	curves := make([]*bezier.Curve[mgl64.Vec2], 0, joins)
	for i := 0; i < joins; i++ {
		j := (i + 1) % n
		c1, c2 := controls.PostControl(i), controls.PreControl(j)
		if isUnknown(c1) || isUnknown(c2) {
			return nil, fmt.Errorf("%w: join %d - %d", ErrUnsolved, i, j)
		}
		c, err := bezier.NewCurve([]mgl64.Vec2{path.Z(i), c1, c2, path.Z(j)})
		if err != nil {
			return nil, err
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// Smooth finds the Hobby control points for path and returns the resulting
// chain of cubic Bezier curves. The control points are stored in path.Controls.
func Smooth(path *Path) ([]*bezier.Curve[mgl64.Vec2], error) {
	if path == nil {
		return nil, ErrNilPath
	}
	controls, err := FindHobbyControls(path, path.Controls)
	if err != nil {
		return nil, err
	}
	path.Controls = controls
	return Curves(path, controls)
}

// AsString returns a path, optionally including spline control points, as a
// (debugging) string. The format is similar to MetaFont's tracing output.
func AsString(path *Path, contr *Controls) string {
	return asStringPartial(&pathPartial{whole: path, start: 0, end: path.N() - 1}, contr)
}
