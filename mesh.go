package cortex

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PrimitiveType tells how the index buffer of a mesh is to be read.
type PrimitiveType int8

// Primitive types, the value is the number of indices per primitive.
const (
	Points    PrimitiveType = 1
	Lines     PrimitiveType = 2
	Triangles PrimitiveType = 3
)

func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	}
	return fmt.Sprintf("primitive(%d)", int8(p))
}

// Vertex is the output unit of tesselation. It has no identity beyond its
// position within a mesh's vertex sequence.
type Vertex[T any] struct {
	Position T
	Normal   T
}

// Mesh is an append-only pair of vertex and index buffers. Producers append
// vertices and then indices referencing them by insertion order; several
// tesselations may share one mesh.
//
// Every index must be smaller than the number of vertices at the time it is
// appended. Indices come in runs of Primitive (2 for lines, 3 for triangles).
type Mesh[T any] struct {
	Primitive PrimitiveType
	Vertices  []Vertex[T]
	Indices   []uint32
}

// Mesh3 is a mesh of 3D vertices.
type Mesh3 = Mesh[mgl64.Vec3]

// Mesh2 is a mesh of 2D vertices, e.g. from tesselating planar curves.
type Mesh2 = Mesh[mgl64.Vec2]

// NewMesh creates an empty mesh for a given primitive type.
func NewMesh[T any](primitive PrimitiveType) *Mesh[T] {
	return &Mesh[T]{Primitive: primitive}
}

// Reset clears both buffers, keeping their capacity.
func (m *Mesh[T]) Reset(primitive PrimitiveType) {
	m.Primitive = primitive
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Offset is the index the next appended vertex will get.
func (m *Mesh[T]) Offset() uint32 {
	return uint32(len(m.Vertices))
}

// Grow makes room for nv more vertices and ni more indices.
func (m *Mesh[T]) Grow(nv, ni int) {
	if free := cap(m.Vertices) - len(m.Vertices); free < nv {
		v := make([]Vertex[T], len(m.Vertices), len(m.Vertices)+nv)
		copy(v, m.Vertices)
		m.Vertices = v
	}
	if free := cap(m.Indices) - len(m.Indices); free < ni {
		x := make([]uint32, len(m.Indices), len(m.Indices)+ni)
		copy(x, m.Indices)
		m.Indices = x
	}
}

// MaxVertices is the number of vertices a mesh can address with 32-bit indices.
const MaxVertices = 1 << 32

// CanIndex checks whether nv more vertices may be appended to m and still be
// addressed by uint32 indices. Errors wrap ErrPrecondition.
func (m *Mesh[T]) CanIndex(nv int) error {
	if nv < 0 || uint64(len(m.Vertices))+uint64(nv) > MaxVertices {
		return fmt.Errorf("%w: %d + %d vertices exceed 32-bit indices", ErrPrecondition,
			len(m.Vertices), nv)
	}
	return nil
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh[T]) AddVertex(position, normal T) uint32 {
	m.Vertices = append(m.Vertices, Vertex[T]{Position: position, Normal: normal})
	return uint32(len(m.Vertices) - 1)
}

// CanAppend checks whether primitives of the given type may be appended to m.
// A nil mesh accepts nothing, an empty mesh accepts any primitive type.
// Errors wrap ErrPrecondition.
func (m *Mesh[T]) CanAppend(primitive PrimitiveType) error {
	if m == nil {
		return fmt.Errorf("%w: no mesh to append %s to", ErrPrecondition, primitive)
	}
	if m.Primitive == primitive || len(m.Vertices) == 0 && len(m.Indices) == 0 {
		return nil
	}
	return fmt.Errorf("%w: cannot append %s to a mesh of %s", ErrPrecondition, primitive, m.Primitive)
}

// PrimitiveCount is the number of complete primitives in the index buffer.
func (m *Mesh[T]) PrimitiveCount() int {
	if m.Primitive <= 0 {
		return 0
	}
	return len(m.Indices) / int(m.Primitive)
}

// TriangleCount is the number of triangles, 0 for non-triangle meshes.
func (m *Mesh[T]) TriangleCount() int {
	if m.Primitive != Triangles {
		return 0
	}
	return m.PrimitiveCount()
}

// Validate checks the mesh invariants: indices must come in complete runs
// and reference existing vertices.
func (m *Mesh[T]) Validate() error {
	if m.Primitive > 0 && len(m.Indices)%int(m.Primitive) != 0 {
		return fmt.Errorf("mesh of %s has %d indices, not a multiple of %d",
			m.Primitive, len(m.Indices), m.Primitive)
	}
	n := uint32(len(m.Vertices))
	for i, x := range m.Indices {
		if x >= n {
			return fmt.Errorf("index #%d = %d references beyond %d vertices", i, x, n)
		}
	}
	return nil
}

// === Adapters ==============================================================

// Interleave flattens a 3D mesh's vertices into a single float32 slice of
// position and normal components, in the layout usually uploaded to a GPU:
//
//	px py pz nx ny nz | px py pz nx ny nz | ...
//
// The stride is 6 floats.
func Interleave(m *Mesh3) []float32 {
	data := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		data = append(data,
			float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2]),
			float32(v.Normal[0]), float32(v.Normal[1]), float32(v.Normal[2]))
	}
	return data
}

// NormalizeNormals scales every vertex normal of m to unit length. Normals of
// length zero (e.g., at degenerate corners of a Bezier patch) are left as they
// are. Returns the number of normals which could not be normalized.
func NormalizeNormals(m *Mesh3) int {
	degenerate := 0
	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		if Is0(n.Len()) {
			degenerate++
			continue
		}
		m.Vertices[i].Normal = n.Normalize()
	}
	if degenerate > 0 {
		tracer().Debugf("%d of %d normals are degenerate", degenerate, len(m.Vertices))
	}
	return degenerate
}

type weldKey [6]float64

// Weld merges vertices having the same position and normal (rounded to
// Epsilon) and rewrites the index buffer accordingly. The order of first
// occurrence is kept. Returns the number of vertices removed.
func Weld(m *Mesh3) int {
	seen := make(map[weldKey]uint32, len(m.Vertices))
	remap := make([]uint32, len(m.Vertices))
	welded := m.Vertices[:0:0]
	for i, v := range m.Vertices {
		key := weldKey{
			Round(v.Position[0]), Round(v.Position[1]), Round(v.Position[2]),
			Round(v.Normal[0]), Round(v.Normal[1]), Round(v.Normal[2]),
		}
		if j, ok := seen[key]; ok {
			remap[i] = j
			continue
		}
		j := uint32(len(welded))
		seen[key] = j
		remap[i] = j
		welded = append(welded, v)
	}
	for i, x := range m.Indices {
		m.Indices[i] = remap[x]
	}
	removed := len(m.Vertices) - len(welded)
	m.Vertices = welded
	tracer().Debugf("welded mesh: %d vertices removed, %d left", removed, len(welded))
	return removed
}
