package bezier

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/polyn"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatGrid is a patch of degree (n,m) in the plane z=0, with u running along
// x and v running along y.
func flatGrid(n, m int) [][]mgl64.Vec3 {
	grid := make([][]mgl64.Vec3, n+1)
	for i := range grid {
		grid[i] = make([]mgl64.Vec3, m+1)
		for j := range grid[i] {
			grid[i][j] = mgl64.Vec3{float64(i) / float64(n), float64(j) / float64(m), 0}
		}
	}
	return grid
}

// bumpGrid is a bicubic patch with some height to it.
func bumpGrid() [][]mgl64.Vec3 {
	grid := flatGrid(3, 3)
	grid[1][1][2], grid[1][2][2] = 1, 0.5
	grid[2][1][2], grid[2][2][2] = -0.5, 2
	grid[0][3][2] = 0.3
	return grid
}

func TestSurfaceCorners(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	grids := map[string][][]mgl64.Vec3{
		"bicubic":    bumpGrid(),
		"degree 2,4": flatGrid(2, 4),
		"degree 4,1": flatGrid(4, 1),
		"degree 0,0": {{{7, 8, 9}}},
	}
	for name, grid := range grids {
		s, err := NewSurface(grid)
		require.NoError(t, err, name)
		n, m := s.Degree()
		assert.Equal(t, len(grid)-1, n, name)
		assert.Equal(t, len(grid[0])-1, m, name)
		assert.Equal(t, grid[0][0], s.Position(0, 0), name)
		assert.Equal(t, grid[0][m], s.Position(0, 1), name)
		assert.Equal(t, grid[n][0], s.Position(1, 0), name)
		assert.Equal(t, grid[n][m], s.Position(1, 1), name)
	}
}

func TestSurfaceFlatNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(flatGrid(1, 1))
	require.NoError(t, err)
	du, dv := s.Tangents(0.3, 0.6)
	assert.True(t, du.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12), "du = %v", du)
	assert.True(t, dv.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-12), "dv = %v", dv)
	assert.True(t, s.Normal(0.3, 0.6).ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12))
	// scaling the patch scales the normal; it is not normalized
	big := flatGrid(1, 1)
	for i := range big {
		for j := range big[i] {
			big[i][j] = big[i][j].Mul(2)
		}
	}
	s, _ = NewSurface(big)
	assert.InDelta(t, 4.0, s.Normal(0.5, 0.5).Len(), 1e-12)
}

func TestSurfaceTangentsMatchDifferenceQuotients(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(bumpGrid())
	require.NoError(t, err)
	const h = 1e-6
	for _, uv := range [][2]float64{{0.2, 0.2}, {0.5, 0.7}, {0.9, 0.1}} {
		u, v := uv[0], uv[1]
		du, dv := s.Tangents(u, v)
		qu := s.Position(u+h, v).Sub(s.Position(u-h, v)).Mul(1 / (2 * h))
		qv := s.Position(u, v+h).Sub(s.Position(u, v-h)).Mul(1 / (2 * h))
		assert.True(t, du.ApproxEqualThreshold(qu, 1e-5), "du(%g,%g) = %v, expected %v", u, v, du, qu)
		assert.True(t, dv.ApproxEqualThreshold(qv, 1e-5), "dv(%g,%g) = %v, expected %v", u, v, dv, qv)
	}
}

func TestSurfaceTranspose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(flatGrid(2, 3))
	require.NoError(t, err)
	tr := s.Transpose()
	n, m := tr.Degree()
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, m)
	assert.Equal(t, s.ControlPoint(1, 2), tr.ControlPoint(2, 1))
	p, q := s.Position(0.2, 0.9), tr.Position(0.9, 0.2)
	assert.True(t, p.ApproxEqualThreshold(q, 1e-12), "%v ≠ %v", p, q)
	nn := s.Normal(0.4, 0.4).Add(tr.Normal(0.4, 0.4))
	assert.InDelta(t, 0.0, nn.Len(), 1e-12, "transposed normal should flip")
}

func TestNewSurfaceErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewSurface[mgl64.Vec3](nil)
	assert.True(t, errors.Is(err, ErrNoControlPoints))
	_, err = NewSurface([][]mgl64.Vec3{{}})
	assert.True(t, errors.Is(err, ErrNoControlPoints))
	ragged := flatGrid(3, 3)
	ragged[2] = ragged[2][:3]
	_, err = NewSurface(ragged)
	assert.True(t, errors.Is(err, ErrRaggedGrid), "got %v", err)
	_, err = NewSurface(flatGrid(polyn.MaxDegree+1, 1))
	assert.True(t, errors.Is(err, ErrDegreeTooHigh), "got %v", err)
	_, err = NewSurface(flatGrid(1, polyn.MaxDegree+1))
	assert.True(t, errors.Is(err, ErrDegreeTooHigh), "got %v", err)
}

func TestSurfaceTesselateCounts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(bumpGrid())
	require.NoError(t, err)
	for _, c := range [][2]int{{2, 2}, {4, 4}, {3, 5}, {5, 3}, {2, 9}} {
		uCount, vCount := c[0], c[1]
		m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
		require.NoError(t, s.Tesselate(uCount, vCount, m))
		assert.Len(t, m.Vertices, uCount*vCount, "%d×%d", uCount, vCount)
		assert.Len(t, m.Indices, 6*(uCount-1)*(vCount-1), "%d×%d", uCount, vCount)
		assert.Equal(t, 2*(uCount-1)*(vCount-1), m.TriangleCount())
		assert.NoError(t, m.Validate(), "%d×%d", uCount, vCount)
		used := make([]bool, len(m.Vertices))
		for _, x := range m.Indices {
			used[x] = true
		}
		for i, u := range used {
			assert.True(t, u, "vertex %d unreferenced in %d×%d grid", i, uCount, vCount)
		}
		// vertex order is row-major, u outer
		assert.Equal(t, s.Position(1, 0), m.Vertices[(uCount-1)*vCount].Position)
		assert.Equal(t, s.Position(0, 1), m.Vertices[vCount-1].Position)
	}
}

func TestSurfaceTesselateWinding(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(flatGrid(2, 3))
	require.NoError(t, err)
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	require.NoError(t, s.Tesselate(4, 3, m))
	for x := 0; x < len(m.Indices); x += 3 {
		a := m.Vertices[m.Indices[x]]
		b := m.Vertices[m.Indices[x+1]]
		c := m.Vertices[m.Indices[x+2]]
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, face.Dot(a.Normal), 0.0, "triangle %d is clockwise", x/3)
	}
}

func TestSurfaceTesselateAppends(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(bumpGrid())
	require.NoError(t, err)
	m := &cortex.Mesh3{}
	require.NoError(t, s.Tesselate(2, 3, m))
	require.NoError(t, s.Tesselate(2, 3, m))
	assert.Equal(t, cortex.Triangles, m.Primitive)
	assert.Equal(t, []uint32{
		0, 3, 1, 1, 3, 4, 1, 4, 2, 2, 4, 5,
		6, 9, 7, 7, 9, 10, 7, 10, 8, 8, 10, 11,
	}, m.Indices)
	assert.NoError(t, m.Validate())
}

func TestSurfaceTesselatePreconditions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(bumpGrid())
	require.NoError(t, err)
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	for _, c := range [][2]int{{1, 4}, {4, 1}, {0, 0}, {-2, 5}} {
		err := s.Tesselate(c[0], c[1], m)
		assert.True(t, errors.Is(err, cortex.ErrPrecondition), "%v: %v", c, err)
	}
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
	assert.True(t, errors.Is(s.Tesselate(4, 4, nil), cortex.ErrPrecondition))
	assert.True(t, errors.Is(s.Tesselate(1<<16, 1<<16+1, m), cortex.ErrPrecondition),
		"grid exceeds 32-bit indices")
	assert.NoError(t, CheckSurfaceCounts(1<<16, 1<<16))
	lines := cortex.NewMesh[mgl64.Vec3](cortex.Lines)
	lines.AddVertex(mgl64.Vec3{}, mgl64.Vec3{})
	assert.True(t, errors.Is(s.Tesselate(4, 4, lines), cortex.ErrPrecondition))
}

func TestSurfaceTesselateIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewSurface(bumpGrid())
	require.NoError(t, err)
	m1 := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	m2 := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	require.NoError(t, s.Tesselate(7, 5, m1))
	require.NoError(t, s.Tesselate(7, 5, m2))
	if d := cmp.Diff(m1, m2); d != "" {
		t.Errorf("repeated tesselation differs (-first +second):\n%s", d)
	}
	// the buffer level variant yields the same output
	nv, ni := SurfaceCounts(7, 5)
	vertices := make([]cortex.Vertex[mgl64.Vec3], nv)
	indices := make([]uint32, ni)
	s.TesselateInto(7, 5, vertices, indices, 0)
	assert.Equal(t, m1.Vertices, vertices)
	assert.Equal(t, m1.Indices, indices)
}
