/*
Package shape generates meshes for a few fixed solids: a cube, an
octahedron and a geodesic sphere approximating the unit sphere.

All generators replace the content of the mesh they are given, and all of
them emit triangles which are counter-clockwise when seen from outside.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package shape

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cortex.shape'
func tracer() tracing.Trace {
	return tracing.Select("cortex.shape")
}

// Shape is a solid which can be tesselated into a triangle mesh.
type Shape interface {
	Tesselate(m *cortex.Mesh3) error
}

var _ Shape = Cube{}
var _ Shape = Octahedron{}
var _ Shape = Sphere{}

// Cube is the axis-aligned cube of edge length 1, centered at the origin.
// Every face has its own 4 vertices, carrying the flat face normal.
type Cube struct{}

// Tesselate replaces the content of m with the 24 vertices and 36 indices of
// the cube. The only error condition is a nil mesh.
func (Cube) Tesselate(m *cortex.Mesh3) error {
	return fill(m, "cube", cubeVertices[:], cubeIndices[:])
}

// Octahedron is the regular octahedron with its corners on the coordinate
// axes at distance 1. Every face has its own 3 vertices, carrying the flat
// face normal (±1,±1,±1)/√3.
type Octahedron struct{}

// Tesselate replaces the content of m with the 24 vertices and 24 indices of
// the octahedron. The only error condition is a nil mesh.
func (Octahedron) Tesselate(m *cortex.Mesh3) error {
	return fill(m, "octahedron", octahedronVertices[:], octahedronIndices[:])
}

func fill(m *cortex.Mesh3, name string, vertices []cortex.Vertex[mgl64.Vec3], indices []uint32) error {
	if m == nil {
		tracer().Errorf("%s: tesselation target is nil", name)
		return fmt.Errorf("%w: no mesh to tesselate %s into", cortex.ErrPrecondition, name)
	}
	m.Reset(cortex.Triangles)
	m.Vertices = append(m.Vertices, vertices...)
	m.Indices = append(m.Indices, indices...)
	tracer().Debugf("%s: %d vertices, %d triangles", name, len(vertices), len(indices)/3)
	return nil
}

// --- Tables ----------------------------------------------------------------

type vertex = cortex.Vertex[mgl64.Vec3]

// Faces are listed as corners a, b, c, d with (b−a) × (d−a) pointing outwards.
var cubeVertices = [24]vertex{
	// +x
	{Position: mgl64.Vec3{.5, -.5, -.5}, Normal: mgl64.Vec3{1, 0, 0}},
	{Position: mgl64.Vec3{.5, .5, -.5}, Normal: mgl64.Vec3{1, 0, 0}},
	{Position: mgl64.Vec3{.5, .5, .5}, Normal: mgl64.Vec3{1, 0, 0}},
	{Position: mgl64.Vec3{.5, -.5, .5}, Normal: mgl64.Vec3{1, 0, 0}},
	// −x
	{Position: mgl64.Vec3{-.5, -.5, -.5}, Normal: mgl64.Vec3{-1, 0, 0}},
	{Position: mgl64.Vec3{-.5, -.5, .5}, Normal: mgl64.Vec3{-1, 0, 0}},
	{Position: mgl64.Vec3{-.5, .5, .5}, Normal: mgl64.Vec3{-1, 0, 0}},
	{Position: mgl64.Vec3{-.5, .5, -.5}, Normal: mgl64.Vec3{-1, 0, 0}},
	// +y
	{Position: mgl64.Vec3{-.5, .5, -.5}, Normal: mgl64.Vec3{0, 1, 0}},
	{Position: mgl64.Vec3{-.5, .5, .5}, Normal: mgl64.Vec3{0, 1, 0}},
	{Position: mgl64.Vec3{.5, .5, .5}, Normal: mgl64.Vec3{0, 1, 0}},
	{Position: mgl64.Vec3{.5, .5, -.5}, Normal: mgl64.Vec3{0, 1, 0}},
	// −y
	{Position: mgl64.Vec3{-.5, -.5, -.5}, Normal: mgl64.Vec3{0, -1, 0}},
	{Position: mgl64.Vec3{.5, -.5, -.5}, Normal: mgl64.Vec3{0, -1, 0}},
	{Position: mgl64.Vec3{.5, -.5, .5}, Normal: mgl64.Vec3{0, -1, 0}},
	{Position: mgl64.Vec3{-.5, -.5, .5}, Normal: mgl64.Vec3{0, -1, 0}},
	// +z
	{Position: mgl64.Vec3{-.5, -.5, .5}, Normal: mgl64.Vec3{0, 0, 1}},
	{Position: mgl64.Vec3{.5, -.5, .5}, Normal: mgl64.Vec3{0, 0, 1}},
	{Position: mgl64.Vec3{.5, .5, .5}, Normal: mgl64.Vec3{0, 0, 1}},
	{Position: mgl64.Vec3{-.5, .5, .5}, Normal: mgl64.Vec3{0, 0, 1}},
	// −z
	{Position: mgl64.Vec3{-.5, -.5, -.5}, Normal: mgl64.Vec3{0, 0, -1}},
	{Position: mgl64.Vec3{-.5, .5, -.5}, Normal: mgl64.Vec3{0, 0, -1}},
	{Position: mgl64.Vec3{.5, .5, -.5}, Normal: mgl64.Vec3{0, 0, -1}},
	{Position: mgl64.Vec3{.5, -.5, -.5}, Normal: mgl64.Vec3{0, 0, -1}},
}

var cubeIndices = [36]uint32{
	0, 1, 2, 0, 2, 3,
	4, 5, 6, 4, 6, 7,
	8, 9, 10, 8, 10, 11,
	12, 13, 14, 12, 14, 15,
	16, 17, 18, 16, 18, 19,
	20, 21, 22, 20, 22, 23,
}

var s3 = 1 / math.Sqrt(3)

// One face per octant. Octants with an odd number of negative signs list
// their corners in swapped order to keep the outward winding.
var octahedronVertices = [24]vertex{
	{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{s3, s3, s3}},
	{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{s3, s3, s3}},
	{Position: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{s3, s3, s3}},

	{Position: mgl64.Vec3{-1, 0, 0}, Normal: mgl64.Vec3{-s3, s3, s3}},
	{Position: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{-s3, s3, s3}},
	{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{-s3, s3, s3}},

	{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{s3, -s3, s3}},
	{Position: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{s3, -s3, s3}},
	{Position: mgl64.Vec3{0, -1, 0}, Normal: mgl64.Vec3{s3, -s3, s3}},

	{Position: mgl64.Vec3{-1, 0, 0}, Normal: mgl64.Vec3{-s3, -s3, s3}},
	{Position: mgl64.Vec3{0, -1, 0}, Normal: mgl64.Vec3{-s3, -s3, s3}},
	{Position: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{-s3, -s3, s3}},

	{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{s3, s3, -s3}},
	{Position: mgl64.Vec3{0, 0, -1}, Normal: mgl64.Vec3{s3, s3, -s3}},
	{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{s3, s3, -s3}},

	{Position: mgl64.Vec3{-1, 0, 0}, Normal: mgl64.Vec3{-s3, s3, -s3}},
	{Position: mgl64.Vec3{0, 1, 0}, Normal: mgl64.Vec3{-s3, s3, -s3}},
	{Position: mgl64.Vec3{0, 0, -1}, Normal: mgl64.Vec3{-s3, s3, -s3}},

	{Position: mgl64.Vec3{1, 0, 0}, Normal: mgl64.Vec3{s3, -s3, -s3}},
	{Position: mgl64.Vec3{0, -1, 0}, Normal: mgl64.Vec3{s3, -s3, -s3}},
	{Position: mgl64.Vec3{0, 0, -1}, Normal: mgl64.Vec3{s3, -s3, -s3}},

	{Position: mgl64.Vec3{-1, 0, 0}, Normal: mgl64.Vec3{-s3, -s3, -s3}},
	{Position: mgl64.Vec3{0, 0, -1}, Normal: mgl64.Vec3{-s3, -s3, -s3}},
	{Position: mgl64.Vec3{0, -1, 0}, Normal: mgl64.Vec3{-s3, -s3, -s3}},
}

var octahedronIndices = [24]uint32{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
	12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23,
}
