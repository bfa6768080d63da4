// Package bezier evaluates Bezier curves and tensor-product Bezier surfaces
// and tesselates them into meshes.
/*

A curve of degree n is given by n+1 control points k.0 … k.n and evaluates to

   P(t) = Σ k.i ⋅ b(n,i)(t)

with b(n,i) the Bernstein basis polynomials of package polyn. A surface of
degree (n,m) is given by a grid of (n+1)×(m+1) control points. Surfaces are
evaluated row by row: every row (a curve of degree m) is evaluated at v,
and the resulting n+1 points, taken as a curve of degree n, are evaluated
at u. Consequently the first grid index runs along u and the second along v.

Control points may be of any type satisfying cortex.Vector, usually
mgl64.Vec2 or mgl64.Vec3. Surfaces need a cross product for their normals and
are therefore restricted to cortex.Vector3.

Curves and surfaces copy their control points on construction and are
immutable afterwards. All evaluation methods are pure and may be called
concurrently.

Usage

   c, err := bezier.NewCurve([]mgl64.Vec2{{0, 0}, {0.25, 1}, {0.75, 1}, {1, 0}})
   m := cortex.NewMesh[mgl64.Vec2](cortex.Lines)
   err = c.Tesselate(6, bezier.Perpendicular, m)

Winding

The surface normal is the cross product of the tangents in u- and
v-direction. It is not normalized. Triangles emitted by Surface.Tesselate are
counter-clockwise when seen from the side the normal points to. If the
control points of a patch are given in the opposite order, faces will point
inwards; package teaset handles this for its source data.

Degree

Degrees are bounded by polyn.MaxDegree (12). Construction of curves or
surfaces of higher degree fails with ErrDegreeTooHigh.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cortex.bezier'
func tracer() tracing.Trace {
	return tracing.Select("cortex.bezier")
}

var (
	// ErrNoControlPoints indicates a curve or surface without control points.
	ErrNoControlPoints = errors.New("need at least one control point")
	// ErrRaggedGrid indicates a surface grid with rows of different length.
	ErrRaggedGrid = errors.New("control point grid rows must have equal length")
	// ErrDegreeTooHigh indicates a degree above polyn.MaxDegree.
	ErrDegreeTooHigh = errors.New("degree exceeds maximum")
)
