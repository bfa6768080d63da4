package shape

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
)

// MaxDivisions limits the subdivision depth of a sphere. At depth 10 the
// sphere has 8⋅4^10 ≈ 8.4 million triangles.
const MaxDivisions = 10

// Sphere is a geodesic approximation of the unit sphere.
//
// One octant is built from the spherical triangle (1,0,0), (0,1,0), (0,0,1),
// which is subdivided recursively Divisions times. Then the octant is
// mirrored three times by rotations, giving 8⋅4^Divisions triangles.
// Vertices on shared edges are not merged; use cortex.Weld for that.
type Sphere struct {
	Divisions int
}

// SphereFor creates a sphere with the subdivision depth configured in
// settings.
func SphereFor(settings cortex.Settings) Sphere {
	return Sphere{Divisions: settings.SphereDivisions}
}

// SphereCounts returns the number of vertices and indices of a sphere with
// the given subdivision depth.
func SphereCounts(divisions int) (nv, ni int) {
	p := 1 << (2 * divisions) // 4^d
	return 8 * (p + 2), 8 * 3 * p
}

// Tesselate replaces the content of m with the sphere. Every vertex has unit
// length and its normal equals its position.
//
// Divisions must be in [0, MaxDivisions]. Otherwise an error wrapping
// cortex.ErrPrecondition is returned and m is left untouched.
func (s Sphere) Tesselate(m *cortex.Mesh3) error {
	if m == nil {
		tracer().Errorf("sphere: tesselation target is nil")
		return fmt.Errorf("%w: no mesh to tesselate sphere into", cortex.ErrPrecondition)
	}
	if s.Divisions < 0 || s.Divisions > MaxDivisions {
		tracer().Errorf("sphere: %d divisions", s.Divisions)
		return fmt.Errorf("%w: sphere divisions must be in [0,%d], have %d",
			cortex.ErrPrecondition, MaxDivisions, s.Divisions)
	}
	m.Reset(cortex.Triangles)
	m.Grow(SphereCounts(s.Divisions))
	var zero mgl64.Vec3
	a := m.AddVertex(mgl64.Vec3{1, 0, 0}, zero)
	b := m.AddVertex(mgl64.Vec3{0, 1, 0}, zero)
	c := m.AddVertex(mgl64.Vec3{0, 0, 1}, zero)
	subdivide(m, a, b, c, s.Divisions)
	mirror(m, cortex.Rotation('z', math.Pi/2)) // x > 0 → x < 0
	mirror(m, cortex.Rotation('z', math.Pi))   // y > 0 → y < 0
	mirror(m, cortex.Rotation('x', math.Pi))   // z > 0 → z < 0
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Position.Normalize()
	}
	tracer().Debugf("sphere: %d divisions, %d vertices, %d triangles",
		s.Divisions, len(m.Vertices), m.TriangleCount())
	return nil
}

// subdivide splits the spherical triangle (a,b,c) into four, depth times.
// At depth 0 the triangle is emitted.
func subdivide(m *cortex.Mesh3, a, b, c uint32, depth int) {
	if depth == 0 {
		m.Indices = append(m.Indices, a, b, c)
		return
	}
	pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
	var zero mgl64.Vec3
	ab := m.AddVertex(midpoint(pa, pb), zero)
	bc := m.AddVertex(midpoint(pb, pc), zero)
	ca := m.AddVertex(midpoint(pc, pa), zero)
	subdivide(m, a, ab, ca, depth-1)
	subdivide(m, ab, b, bc, depth-1)
	subdivide(m, ca, bc, c, depth-1)
	subdivide(m, ab, bc, ca, depth-1)
}

// midpoint of the arc between p and q on the unit sphere.
func midpoint(p, q mgl64.Vec3) mgl64.Vec3 {
	return p.Add(q).Mul(0.5).Normalize()
}

// mirror appends a rotated copy of all vertices and triangles of m.
// Rotations keep the winding of the copied triangles.
func mirror(m *cortex.Mesh3, r mgl64.Mat3) {
	nv, ni := len(m.Vertices), len(m.Indices)
	off := uint32(nv)
	for i := 0; i < nv; i++ {
		m.AddVertex(cortex.Transform(r, m.Vertices[i].Position), m.Vertices[i].Normal)
	}
	for i := 0; i < ni; i++ {
		m.Indices = append(m.Indices, m.Indices[i]+off)
	}
}
