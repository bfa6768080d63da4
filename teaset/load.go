package teaset

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/bezier"
)

// Winding tells how the 16 indices of a patch row map onto the 4×4 control
// point grid k. The first grid index runs along u, the second along v.
// Data recorded in the opposite order yields patches with inward normals.
type Winding int8

const (
	// RowMajor places index i at k[i/4][i%4].
	RowMajor Winding = iota
	// RowMajorReversed places index i at k[i/4][3−i%4], mirroring every row.
	RowMajorReversed
	// Transposed places index i at k[i%4][i/4].
	Transposed
	// TransposedReversed places index i at k[3−i%4][i/4].
	TransposedReversed
)

func (w Winding) String() string {
	switch w {
	case RowMajor:
		return "row-major"
	case RowMajorReversed:
		return "row-major-reversed"
	case Transposed:
		return "transposed"
	case TransposedReversed:
		return "transposed-reversed"
	}
	return fmt.Sprintf("winding(%d)", int8(w))
}

// Place returns the grid position of index i of a patch row.
func (w Winding) Place(i int) (row, col int) {
	switch w {
	case RowMajorReversed:
		return i / 4, 3 - i%4
	case Transposed:
		return i % 4, i / 4
	case TransposedReversed:
		return 3 - i%4, i / 4
	}
	return i / 4, i % 4
}

func (w Winding) valid() bool {
	return w >= RowMajor && w <= TransposedReversed
}

// Load resolves the vertex indices of every patch of tab and creates the
// bicubic patches. Each index must be in [1, len(tab.Vertices)]; otherwise
// an error wrapping ErrIndexOutOfRange is returned and no patch set is
// created at all.
func Load(tab *Table, w Winding) (*PatchSet, error) {
	if tab == nil {
		return nil, fmt.Errorf("%w: no patch table", cortex.ErrPrecondition)
	}
	if !w.valid() {
		return nil, fmt.Errorf("%w: unknown %s", cortex.ErrPrecondition, w)
	}
	ps := &PatchSet{patches: make([]*bezier.Surface[mgl64.Vec3], 0, len(tab.Patches))}
	nv := len(tab.Vertices)
	for p, row := range tab.Patches {
		grid := [][]mgl64.Vec3{
			make([]mgl64.Vec3, 4), make([]mgl64.Vec3, 4),
			make([]mgl64.Vec3, 4), make([]mgl64.Vec3, 4),
		}
		for i, x := range row {
			if x < 1 || x > nv {
				tracer().Errorf("patch #%d: vertex index %d out of range", p, x)
				return nil, fmt.Errorf("%w: patch #%d, position %d: index %d not in [1,%d]",
					ErrIndexOutOfRange, p, i, x, nv)
			}
			r, c := w.Place(i)
			grid[r][c] = tab.Vertices[x-1]
		}
		patch, err := bezier.NewSurface(grid)
		if err != nil { // cannot happen for a complete 4×4 grid
			return nil, err
		}
		ps.patches = append(ps.patches, patch)
	}
	tracer().Infof("loaded %d patches with %s winding", len(ps.patches), w)
	return ps, nil
}

// Read parses patch set source data from r and loads it with winding w.
func Read(r io.Reader, w Winding) (*PatchSet, error) {
	tab, err := Parse(r)
	if err != nil {
		tracer().Errorf("reading patch set: %v", err)
		return nil, err
	}
	return Load(tab, w)
}
