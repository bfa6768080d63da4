package jhobby

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Nullpath creates an empty path, to be extended by subsequent builder
// calls. The following example builds a closed path of three knots, which are
// connected by a curve, then a straight line, and a curve again.
//
//	path := Nullpath().Knot(P(0,0)).Curve().Knot(P(3,2)).Line().Knot(P(5,2.5)).Curve().Cycle()
//	controls := path.Controls
//
// Calling Cycle() or End() returns a path. Its control point container
// (path.Controls) is empty and to be filled by calculating the Hobby spline
// control points.
func Nullpath() *Path {
	return &Path{Controls: &Controls{}}
}

// End an open path. Part of builder functionality.
func (path *Path) End() *Path {
	return path
}

// Cycle closes a cyclic path. Part of builder functionality.
func (path *Path) Cycle() *Path {
	path.cycle = true
	return path
}

// Knot adds a standard smooth knot to a path. Part of builder functionality.
func (path *Path) Knot(p mgl64.Vec2) *Path {
	return path.SmoothKnot(p)
}

// SmoothKnot adds a standard smooth knot to a path (same as Knot(p)).
// Part of builder functionality.
func (path *Path) SmoothKnot(p mgl64.Vec2) *Path {
	path.points = append(path.points, p)
	return path
}

// CurlKnot adds a knot with curl information to a path. Callers may specify pre- and/or
// post-curl. A curl value of 1.0 is considered neutral.
// Part of builder functionality.
func (path *Path) CurlKnot(p mgl64.Vec2, precurl, postcurl float64) *Path {
	path.points = append(path.points, p)
	path.SetPreCurl(path.N()-1, precurl)
	path.SetPostCurl(path.N()-1, postcurl)
	return path
}

// DirKnot adds a knot with a given tangent direction.
// Part of builder functionality.
func (path *Path) DirKnot(p mgl64.Vec2, dir mgl64.Vec2) *Path {
	path.points = append(path.points, p)
	path.SetPreDir(path.N()-1, dir)
	path.SetPostDir(path.N()-1, dir)
	return path
}

// Line connects two knots with a straight line. Both knots become
// breakpoints of the spline.
// Part of builder functionality.
func (path *Path) Line() *Path {
	if path.N() == 0 {
		panic("cannot add line to empty path")
	}
	path.lines = extend(path.lines, path.N()-1, false)
	path.lines[path.N()-1] = true
	return path
}

// Curve connects two knots with a smooth curve.
// Part of builder functionality.
func (path *Path) Curve() *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	path.TensionCurve(1.0, 1.0)
	return path
}

// TensionCurve connects two knots with a tense curve.
// Part of builder functionality.
//
// Tensions are adapted to lie between 3/4 and 4.
func (path *Path) TensionCurve(t1, t2 float64) *Path {
	if path.N() == 0 {
		panic("cannot add curve to empty path")
	}
	if t1 != 1.0 {
		path.SetPostTension(path.N()-1, t1)
	}
	if t2 != 1.0 {
		path.SetPreTension(path.N(), t2)
	}
	return path
}

// SetPreDir is a property setter.
func (path *Path) SetPreDir(i int, dir mgl64.Vec2) *Path {
	path.predirs = extend(path.predirs, i, unknown)
	path.predirs[i] = dir
	return path
}

// SetPostDir is a property setter.
func (path *Path) SetPostDir(i int, dir mgl64.Vec2) *Path {
	path.postdirs = extend(path.postdirs, i, unknown)
	path.postdirs[i] = dir
	return path
}

// SetPreCurl is a property setter.
func (path *Path) SetPreCurl(i int, curl float64) *Path {
	path.curls = extend(path.curls, i, neutral)
	path.curls[i].pre = curl
	return path
}

// SetPostCurl is a property setter.
func (path *Path) SetPostCurl(i int, curl float64) *Path {
	path.curls = extend(path.curls, i, neutral)
	path.curls[i].post = curl
	return path
}

func clampTension(t float64) float64 {
	if t < 0.75 {
		return 0.75
	} else if t > 4.0 {
		return 4.0
	}
	return t
}

// SetPreTension is a property setter.
//
// Tensions are adapted to lie between 3/4 and 4.
func (path *Path) SetPreTension(i int, tension float64) *Path {
	path.tensions = extend(path.tensions, i, neutral)
	path.tensions[i].pre = clampTension(tension)
	return path
}

// SetPostTension is a property setter.
//
// Tensions are adapted to lie between 3/4 and 4.
func (path *Path) SetPostTension(i int, tension float64) *Path {
	path.tensions = extend(path.tensions, i, neutral)
	path.tensions[i].post = clampTension(tension)
	return path
}

// IsCycle is a predicate: is this path cyclic?
func (path *Path) IsCycle() bool {
	return path.cycle
}

// N returns the length of this path (knot count). For cyclic paths, the first and last knot
// should count as one.
func (path *Path) N() int {
	return len(path.points)
}

// Z returns the knot at position (i mod N).
func (path *Path) Z(i int) mgl64.Vec2 {
	n := path.N()
	return path.points[(i%n+n)%n]
}

// PreDir gets the incoming tangent / direction vector at z.i.
func (path *Path) PreDir(i int) mgl64.Vec2 {
	return get(path.predirs, i, unknown)
}

// PostDir gets the outgoing tangent / direction vector at z.i.
func (path *Path) PostDir(i int) mgl64.Vec2 {
	return get(path.postdirs, i, unknown)
}

// PreCurl gets the curl before z.i.
func (path *Path) PreCurl(i int) float64 {
	return get(path.curls, i, neutral).pre
}

// PostCurl gets the curl after z.i.
func (path *Path) PostCurl(i int) float64 {
	return get(path.curls, i, neutral).post
}

// PreTension returns the tension before z.i.
func (path *Path) PreTension(i int) float64 {
	return get(path.tensions, i, neutral).pre
}

// PostTension returns the tension after z.i.
func (path *Path) PostTension(i int) float64 {
	return get(path.tensions, i, neutral).post
}

// IsLine is a predicate: is the join from z.i to z.(i+1) a straight line?
func (path *Path) IsLine(i int) bool {
	return get(path.lines, i, false)
}
