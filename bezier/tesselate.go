package bezier

import (
	"fmt"

	"github.com/npillmayer/cortex"
)

// CurveCounts returns the number of vertices and indices the tesselation of a
// curve with tCount samples produces.
func CurveCounts(tCount int) (nv, ni int) {
	return tCount, 2 * (tCount - 1)
}

// SurfaceCounts returns the number of vertices and indices the tesselation of
// a surface on a uCount×vCount grid produces.
func SurfaceCounts(uCount, vCount int) (nv, ni int) {
	return uCount * vCount, 6 * (uCount - 1) * (vCount - 1)
}

// Tesselate samples the curve at tCount evenly spaced parameters
// t.i = i/(tCount−1) and appends the samples to m as a strip of line
// segments. Vertex normals are derived from the tangent with normal, or are
// zero if normal is nil.
//
// tCount must be at least 2. Otherwise an error wrapping cortex.ErrPrecondition
// is returned and m is left untouched. An empty mesh is switched to
// cortex.Lines; appending to a mesh of other primitives is an error.
func (c *Curve[T]) Tesselate(tCount int, normal NormalFunc[T], m *cortex.Mesh[T]) error {
	if err := checkTarget(m, cortex.Lines); err != nil {
		return err
	}
	if tCount < 2 {
		tracer().Errorf("curve tesselation with %d samples", tCount)
		return fmt.Errorf("%w: need at least 2 samples per curve, have %d",
			cortex.ErrPrecondition, tCount)
	}
	if err := checkIndexRange(m, tCount); err != nil {
		return err
	}
	m.Primitive = cortex.Lines
	m.Grow(CurveCounts(tCount))
	off := m.Offset()
	var zero T
	for i := 0; i < tCount; i++ {
		t := float64(i) / float64(tCount-1)
		n := zero
		if normal != nil {
			n = normal(c.Tangent(t))
		}
		m.AddVertex(c.Position(t), n)
	}
	for i := uint32(0); i < uint32(tCount-1); i++ {
		m.Indices = append(m.Indices, off+i, off+i+1)
	}
	tracer().Debugf("tesselated %s curve into %d vertices", degreeName(c.Degree()), tCount)
	return nil
}

// Tesselate samples the surface on a uCount×vCount grid of evenly spaced
// parameters and appends the result to m as triangles. Vertices are appended
// in row-major order, u outer and v inner, with normals du × dv. Every grid
// cell gives two triangles, counter-clockwise seen from the side the normal
// points to.
//
// Both counts must be at least 2. Otherwise an error wrapping
// cortex.ErrPrecondition is returned and m is left untouched. An empty mesh
// is switched to cortex.Triangles; appending to a mesh of other primitives is
// an error.
func (s *Surface[T]) Tesselate(uCount, vCount int, m *cortex.Mesh[T]) error {
	if err := checkTarget(m, cortex.Triangles); err != nil {
		return err
	}
	if err := CheckSurfaceCounts(uCount, vCount); err != nil {
		return err
	}
	nv, ni := SurfaceCounts(uCount, vCount)
	if err := checkIndexRange(m, nv); err != nil {
		return err
	}
	m.Primitive = cortex.Triangles
	m.Grow(nv, ni)
	base := m.Offset()
	lv, li := len(m.Vertices), len(m.Indices)
	m.Vertices = m.Vertices[:lv+nv]
	m.Indices = m.Indices[:li+ni]
	s.TesselateInto(uCount, vCount, m.Vertices[lv:], m.Indices[li:], base)
	tracer().Debugf("tesselated surface into %d×%d vertices", uCount, vCount)
	return nil
}

// TesselateInto is the buffer level variant of Tesselate. It writes exactly
// SurfaceCounts(uCount, vCount) vertices and indices into the given slices,
// which must have at least that length. base is added to every index and
// is the position of vertices[0] in the final vertex buffer.
//
// TesselateInto does not check its arguments. Concurrent calls on disjoint
// slices of the same buffers are safe.
func (s *Surface[T]) TesselateInto(uCount, vCount int, vertices []cortex.Vertex[T],
	indices []uint32, base uint32) {
	//
	for i := 0; i < uCount; i++ {
		u := float64(i) / float64(uCount-1)
		for j := 0; j < vCount; j++ {
			v := float64(j) / float64(vCount-1)
			vertices[i*vCount+j] = cortex.Vertex[T]{
				Position: s.Position(u, v),
				Normal:   s.Normal(u, v),
			}
		}
	}
	stride := uint32(vCount)
	x := 0
	for i := uint32(0); i < uint32(uCount-1); i++ {
		for j := uint32(0); j < uint32(vCount-1); j++ {
			p := base + i*stride + j
			indices[x+0] = p
			indices[x+1] = p + stride
			indices[x+2] = p + 1
			indices[x+3] = p + 1
			indices[x+4] = p + stride
			indices[x+5] = p + stride + 1
			x += 6
		}
	}
}

func checkIndexRange[T any](m *cortex.Mesh[T], nv int) error {
	err := m.CanIndex(nv)
	if err != nil {
		tracer().Errorf("tesselation: %v", err)
	}
	return err
}

func checkTarget[T any](m *cortex.Mesh[T], primitive cortex.PrimitiveType) error {
	err := m.CanAppend(primitive)
	if err != nil {
		tracer().Errorf("tesselation: %v", err)
	}
	return err
}

// CheckSurfaceCounts returns an error wrapping cortex.ErrPrecondition if a
// uCount×vCount grid cannot be tesselated. The grid must have at least 2×2
// samples and at most cortex.MaxVertices.
func CheckSurfaceCounts(uCount, vCount int) error {
	if uCount < 2 || vCount < 2 {
		tracer().Errorf("surface tesselation with %d×%d samples", uCount, vCount)
		return fmt.Errorf("%w: need at least 2×2 samples per surface, have %d×%d",
			cortex.ErrPrecondition, uCount, vCount)
	}
	if uint64(uCount)*uint64(vCount) > cortex.MaxVertices {
		tracer().Errorf("surface tesselation with %d×%d samples", uCount, vCount)
		return fmt.Errorf("%w: %d×%d samples exceed 32-bit indices",
			cortex.ErrPrecondition, uCount, vCount)
	}
	return nil
}

func degreeName(n int) string {
	switch n {
	case 1:
		return "linear"
	case 2:
		return "quadratic"
	case 3:
		return "cubic"
	}
	return fmt.Sprintf("degree-%d", n)
}
