/*
Package polygon handles closed outlines in the plane, e.g. the outline of a
glyph or a profile built from a chain of planar Bezier curves, and clips
them against each other.

A polygon is a set of contours. Contours are implicitly closed and may
nest; a point is inside a polygon if it is inside an odd number of its
contours. Boolean operations are delegated to polyclip-go, an
implementation of the Martinez-Rueda clipping algorithm.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/bezier"
	"github.com/npillmayer/schuko/tracing"
)

// L traces with key 'cortex.polygon'
func L() tracing.Trace {
	return tracing.Select("cortex.polygon")
}

// Polygon is a set of closed contours. Polygons are values and never
// change after construction; operations create new polygons.
type Polygon struct {
	contours polyclip.Polygon
}

// Builder collects the knots of a single contour.
type Builder struct {
	contour polyclip.Contour
}

// NullPolygon starts a new contour without any knots.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a knot to the contour under construction.
func (b *Builder) Knot(p mgl64.Vec2) *Builder {
	b.contour.Add(pt(p))
	return b
}

// Cycle closes the contour and returns it as a polygon.
func (b *Builder) Cycle() *Polygon {
	c := make(polyclip.Contour, len(b.contour))
	copy(c, b.contour)
	return &Polygon{contours: polyclip.Polygon{c}}
}

// Box creates a rectangle from two opposite corners.
func Box(a, b mgl64.Vec2) *Polygon {
	lo := mgl64.Vec2{math.Min(a[0], b[0]), math.Min(a[1], b[1])}
	hi := mgl64.Vec2{math.Max(a[0], b[0]), math.Max(a[1], b[1])}
	return NullPolygon().
		Knot(lo).Knot(mgl64.Vec2{hi[0], lo[1]}).
		Knot(hi).Knot(mgl64.Vec2{lo[0], hi[1]}).
		Cycle()
}

// FromCurves builds a single contour from a chain of planar curves, each
// sampled at tCount parameters. Where a curve starts at the end point of its
// predecessor, the duplicate knot is dropped, as is a final knot equal to
// the first one.
func FromCurves(curves []*bezier.Curve[mgl64.Vec2], tCount int) (*Polygon, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("%w: no curves for outline", cortex.ErrPrecondition)
	}
	m := cortex.NewMesh[mgl64.Vec2](cortex.Lines)
	for _, c := range curves {
		if err := c.Tesselate(tCount, nil, m); err != nil {
			return nil, err
		}
	}
	b := NullPolygon()
	for _, v := range m.Vertices {
		if n := len(b.contour); n > 0 && b.contour[n-1].Equals(pt(v.Position)) {
			continue
		}
		b.Knot(v.Position)
	}
	if n := len(b.contour); n > 1 && b.contour[0].Equals(b.contour[n-1]) {
		b.contour = b.contour[:n-1]
	}
	if len(b.contour) < 3 {
		L().Errorf("outline of %d curves has %d distinct knots", len(curves), len(b.contour))
		return nil, fmt.Errorf("%w: outline needs at least 3 distinct knots, have %d",
			cortex.ErrPrecondition, len(b.contour))
	}
	L().Debugf("outline from %d curves has %d knots", len(curves), len(b.contour))
	return b.Cycle(), nil
}

// N returns the number of knots of all contours.
func (pg *Polygon) N() int {
	return pg.contours.NumVertices()
}

// Contours returns the number of contours.
func (pg *Polygon) Contours() int {
	return len(pg.contours)
}

// Knots returns the knots of contour #i.
func (pg *Polygon) Knots(i int) []mgl64.Vec2 {
	knots := make([]mgl64.Vec2, len(pg.contours[i]))
	for j, p := range pg.contours[i] {
		knots[j] = vec(p)
	}
	return knots
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (pg *Polygon) Bounds() (lo, hi mgl64.Vec2) {
	if pg.N() == 0 {
		return
	}
	r := pg.contours.BoundingBox()
	return vec(r.Min), vec(r.Max)
}

// Contains is a predicate: is p inside the polygon?
// Points on the boundary may be reported either way.
func (pg *Polygon) Contains(p mgl64.Vec2) bool {
	inside := false
	for _, c := range pg.contours {
		if c.Contains(pt(p)) {
			inside = !inside
		}
	}
	return inside
}

// Area returns the area enclosed by the polygon. Contours nested within an
// odd number of other contours are holes and count negative.
func (pg *Polygon) Area() float64 {
	area := 0.0
	for i, c := range pg.contours {
		a := math.Abs(shoelace(c))
		depth := 0
		for j, other := range pg.contours {
			if i != j && len(c) > 0 && other.Contains(c[0]) {
				depth++
			}
		}
		if depth%2 == 1 {
			a = -a
		}
		area += a
	}
	return area
}

// shoelace is the signed area of a contour, positive for counter-clockwise.
func shoelace(c polyclip.Contour) float64 {
	a := 0.0
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Union returns the area covered by pg or other.
func (pg *Polygon) Union(other *Polygon) *Polygon {
	return pg.construct(polyclip.UNION, other)
}

// Intersection returns the area covered by both pg and other.
func (pg *Polygon) Intersection(other *Polygon) *Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Difference returns the area covered by pg but not by other.
func (pg *Polygon) Difference(other *Polygon) *Polygon {
	return pg.construct(polyclip.DIFFERENCE, other)
}

// Xor returns the area covered by exactly one of pg and other.
func (pg *Polygon) Xor(other *Polygon) *Polygon {
	return pg.construct(polyclip.XOR, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) *Polygon {
	result := pg.contours.Construct(op, other.contours)
	L().Debugf("clipping: %d and %d contours give %d", len(pg.contours), len(other.contours), len(result))
	return &Polygon{contours: result}
}

// Outline appends all contours of pg to m as closed loops of line segments.
// Normals point outwards for counter-clockwise contours.
func (pg *Polygon) Outline(m *cortex.Mesh2) error {
	if err := m.CanAppend(cortex.Lines); err != nil {
		return err
	}
	m.Primitive = cortex.Lines
	for _, c := range pg.contours {
		off := m.Offset()
		n := len(c)
		for i := range c {
			prev, next := vec(c[(i+n-1)%n]), vec(c[(i+1)%n])
			normal := bezier.Perpendicular(prev.Sub(next))
			if l := normal.Len(); !cortex.Is0(l) {
				normal = normal.Mul(1 / l)
			}
			m.AddVertex(vec(c[i]), normal)
		}
		for i := 0; i < n; i++ {
			m.Indices = append(m.Indices, off+uint32(i), off+uint32((i+1)%n))
		}
	}
	return nil
}

// AsString returns a polygon in a format similar to MetaPost path syntax.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for i, c := range pg.contours {
		if i > 0 {
			sb.WriteString(", ")
		}
		for _, p := range c {
			sb.WriteString(fmt.Sprintf("(%.4g,%.4g) -- ", p.X, p.Y))
		}
		sb.WriteString("cycle")
	}
	return sb.String()
}

func pt(v mgl64.Vec2) polyclip.Point {
	return polyclip.Point{X: v[0], Y: v[1]}
}

func vec(p polyclip.Point) mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}
