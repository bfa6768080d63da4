package teaset

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var windings = []Winding{RowMajor, RowMajorReversed, Transposed, TransposedReversed}

func readFixture(t *testing.T) *Table {
	t.Helper()
	f, err := os.Open("testdata/twopatch.txt")
	require.NoError(t, err)
	defer f.Close()
	tab, err := Parse(f)
	require.NoError(t, err)
	return tab
}

func loadFixture(t *testing.T, w Winding) *PatchSet {
	t.Helper()
	ps, err := Load(readFixture(t), w)
	require.NoError(t, err)
	return ps
}

// --- Parsing ---------------------------------------------------------------

func TestParseFixture(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tab := readFixture(t)
	require.Len(t, tab.Patches, 2)
	require.Len(t, tab.Vertices, 28)
	assert.Equal(t, 1, tab.Patches[0][0])
	assert.Equal(t, 13, tab.Patches[1][0])
	assert.Equal(t, 28, tab.Patches[1][15])
	assert.Equal(t, mgl64.Vec3{3, 6, 1.5}, tab.Vertices[27])
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	row := "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16\n"
	vertices := "1\n0,0,0\n"
	cases := []struct {
		name, data, line string
	}{
		{"empty", "", ""},
		{"blank only", "\n  \n", ""},
		{"count not a number", "x\n", "line 1"},
		{"negative count", "-2\n", "line 1"},
		{"short patch row", "1\n1,2,3\n", "line 2"},
		{"bad index", "1\n" + strings.Replace(row, "7", "seven", 1), "line 2"},
		{"missing patch row", "2\n" + row, ""},
		{"missing vertex count", "1\n" + row, ""},
		{"short vertex", "1\n" + row + "1\n0,0\n", "line 4"},
		{"bad coordinate", "1\n" + row + "1\n0,0,zz\n", "line 4"},
		{"missing vertex", "1\n" + row + "2\n0,0,0\n", ""},
		{"trailing content", "1\n" + row + vertices + "\n42\n", "line 6"},
		{"huge patch count", "1152921504606846976\n", ""},
		{"huge vertex count", "1\n" + row + "10000000000\n0,0,0\n", ""},
		{"count overflows int", "99999999999999999999999\n", "line 1"},
		{"overlong line", "1\n" + strings.Repeat(" ", 70000) + row, "line 2"},
	}
	for _, c := range cases {
		_, err := Parse(strings.NewReader(c.data))
		if !assert.True(t, errors.Is(err, ErrMalformedSourceData), "%s: got %v", c.name, err) {
			continue
		}
		if c.line != "" {
			assert.Contains(t, err.Error(), c.line+":", c.name)
		}
	}
}

func TestParseTolerance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	data := "\n\n 1 \n 1, 2,3,4 ,5,6,7,8,9,10,11,12,13,14,15,16\n\n   \n16\n"
	for i := 0; i < 16; i++ {
		data += " 0.5 ,-1e-2,  3\n"
	}
	data += "\n\n"
	tab, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 4, tab.Patches[0][3])
	assert.Equal(t, mgl64.Vec3{0.5, -0.01, 3}, tab.Vertices[15])
}

// --- Loading ---------------------------------------------------------------

func TestLoadPlacesControlPointsPerWinding(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tab := readFixture(t)
	for _, w := range windings {
		ps, err := Load(tab, w)
		require.NoError(t, err, w.String())
		require.Equal(t, len(tab.Patches), ps.Len())
		for p, row := range tab.Patches {
			for i, x := range row {
				var r, c int
				switch w {
				case RowMajor:
					r, c = i/4, i%4
				case RowMajorReversed:
					r, c = i/4, 3-i%4
				case Transposed:
					r, c = i%4, i/4
				case TransposedReversed:
					r, c = 3-i%4, i/4
				}
				assert.Equal(t, tab.Vertices[x-1], ps.Patch(p).ControlPoint(r, c),
					"%s: patch %d, index #%d", w, p, i)
			}
		}
	}
}

func TestLoadWindingDecidesNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	up := map[Winding]bool{
		RowMajor:           false,
		RowMajorReversed:   true,
		Transposed:         true,
		TransposedReversed: false,
	}
	for _, w := range windings {
		ps := loadFixture(t, w)
		for p := 0; p < ps.Len(); p++ {
			nz := ps.Patch(p).Normal(0.5, 0.5)[2]
			assert.Equal(t, up[w], nz > 0, "%s: patch %d has normal %v", w, p, ps.Patch(p).Normal(0.5, 0.5))
		}
	}
}

func TestLoadIndexOutOfRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, bad := range []int{0, -1, 29, 1000} {
		tab := readFixture(t)
		tab.Patches[1][5] = bad
		ps, err := Load(tab, RowMajor)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: %v", bad, err)
		assert.Nil(t, ps, "no partial patch set for index %d", bad)
	}
	_, err := Read(strings.NewReader("1\n0,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16\n0\n"), Teacup.Winding)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange), "got %v", err)
}

func TestLoadPreconditions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Load(nil, RowMajor)
	assert.True(t, errors.Is(err, cortex.ErrPrecondition))
	_, err = Load(readFixture(t), Winding(9))
	assert.True(t, errors.Is(err, cortex.ErrPrecondition))
	assert.Equal(t, "winding(9)", Winding(9).String())
}

func TestBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	lo, hi := loadFixture(t, RowMajor).Bounds()
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, lo)
	assert.Equal(t, mgl64.Vec3{3, 6, 1.5}, hi)
	lo, hi = (&PatchSet{}).Bounds()
	assert.Equal(t, lo, hi)
}

// --- Tesselation -----------------------------------------------------------

func TestPatchSetTesselate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajorReversed)
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	require.NoError(t, ps.Tesselate(4, 6, m))
	nv, ni := ps.Counts(4, 6)
	assert.Equal(t, 2*4*6, nv)
	assert.Len(t, m.Vertices, nv)
	assert.Len(t, m.Indices, ni)
	assert.Equal(t, 2*2*3*5, m.TriangleCount())
	assert.NoError(t, m.Validate())
	// second patch starts after the first patch's vertices
	assert.Equal(t, uint32(24), m.Indices[ni/2])
	// patches share the edge u=1 / u=0, so the mesh is seamless
	for j := 0; j < 6; j++ {
		assert.Equal(t, m.Vertices[3*6+j].Position, m.Vertices[24+j].Position, "seam vertex %d", j)
	}
}

func TestPatchSetTesselateIndexRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajor)
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	// each grid fits into 32-bit indices, both patches together do not
	assert.True(t, errors.Is(ps.Tesselate(46341, 46341, m), cortex.ErrPrecondition))
	assert.True(t, errors.Is(ps.TesselateParallel(context.Background(), 46341, 46341, 2, m),
		cortex.ErrPrecondition))
	assert.True(t, errors.Is(ps.Tesselate(1<<16, 1<<16+1, m), cortex.ErrPrecondition))
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
}

func TestPatchSetTesselatePreconditions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajor)
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	assert.True(t, errors.Is(ps.Tesselate(1, 4, m), cortex.ErrPrecondition))
	assert.True(t, errors.Is(ps.Tesselate(4, 4, nil), cortex.ErrPrecondition))
	assert.True(t, errors.Is(ps.TesselateParallel(context.Background(), 4, 0, 2, m), cortex.ErrPrecondition))
	assert.True(t, errors.Is(ps.TesselateParallel(context.Background(), 4, 4, 0, m), cortex.ErrPrecondition))
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
	lines := cortex.NewMesh[mgl64.Vec3](cortex.Lines)
	lines.AddVertex(mgl64.Vec3{}, mgl64.Vec3{})
	assert.True(t, errors.Is(ps.Tesselate(4, 4, lines), cortex.ErrPrecondition))
}

func TestTesselationIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajorReversed)
	m1 := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	m2 := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	require.NoError(t, ps.Tesselate(5, 7, m1))
	require.NoError(t, ps.Tesselate(5, 7, m2))
	if d := cmp.Diff(m1, m2); d != "" {
		t.Errorf("repeated tesselation differs (-first +second):\n%s", d)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajorReversed)
	for _, workers := range []int{1, 2, 3, 8} {
		seq := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
		par := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
		// appending to a non-empty mesh must work the same way
		require.NoError(t, ps.Tesselate(2, 2, seq))
		require.NoError(t, ps.Tesselate(2, 2, par))
		require.NoError(t, ps.Tesselate(6, 5, seq))
		require.NoError(t, ps.TesselateParallel(context.Background(), 6, 5, workers, par))
		if d := cmp.Diff(seq, par); d != "" {
			t.Errorf("%d workers: parallel tesselation differs (-sequential +parallel):\n%s", workers, d)
		}
	}
}

func TestParallelCancelled(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajor)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := cortex.NewMesh[mgl64.Vec3](cortex.Triangles)
	err := ps.TesselateParallel(ctx, 4, 4, 2, m)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Empty(t, m.Vertices)
	assert.Empty(t, m.Indices)
}

// --- Presets ---------------------------------------------------------------

func TestLoadPreset(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps, err := LoadPreset(os.DirFS("testdata"), Teacup)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Len())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, ps.Patch(0).ControlPoint(1, 1))
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, ps.Patch(0).ControlPoint(0, 3))

	data, err := os.ReadFile("testdata/teacup.txt")
	require.NoError(t, err)
	fsys := fstest.MapFS{"teapot.txt": {Data: data}}
	ps, err = LoadPreset(fsys, Teapot)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, ps.Patch(0).ControlPoint(0, 3), "teapot rows are mirrored")

	_, err = LoadPreset(fsys, Teaspoon)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	assert.Contains(t, err.Error(), "teaspoon")
	fsys["teaspoon.txt"] = &fstest.MapFile{Data: []byte("1\n1,2\n")}
	_, err = LoadPreset(fsys, Teaspoon)
	assert.True(t, errors.Is(err, ErrMalformedSourceData), "got %v", err)
}

func TestBuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ps := loadFixture(t, RowMajorReversed)
	settings := cortex.DefaultSettings()
	seq, err := Build(ps, settings)
	require.NoError(t, err)
	nv, _ := ps.Counts(settings.UCount, settings.VCount)
	assert.Len(t, seq.Vertices, nv)
	settings.Workers = 3
	par, err := Build(ps, settings)
	require.NoError(t, err)
	if d := cmp.Diff(seq, par); d != "" {
		t.Errorf("parallel build differs (-sequential +parallel):\n%s", d)
	}
	settings.UCount = 1
	_, err = Build(ps, settings)
	assert.True(t, errors.Is(err, cortex.ErrPrecondition))
}
