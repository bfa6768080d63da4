package teaset

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/cortex/bezier"
	"golang.org/x/sync/errgroup"
)

// PatchSet is an ordered list of bicubic Bezier patches which together form
// one object. A patch set is immutable once loaded.
type PatchSet struct {
	patches []*bezier.Surface[mgl64.Vec3]
}

// Len returns the number of patches.
func (ps *PatchSet) Len() int {
	return len(ps.patches)
}

// Patch returns patch #i.
func (ps *PatchSet) Patch(i int) *bezier.Surface[mgl64.Vec3] {
	return ps.patches[i]
}

// Bounds returns the axis-aligned bounding box of all control points. As
// Bezier patches lie within the convex hull of their control points, the
// box contains the tesselated object. An empty patch set has empty bounds
// at the origin.
func (ps *PatchSet) Bounds() (lo, hi mgl64.Vec3) {
	if len(ps.patches) == 0 {
		return
	}
	lo = mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range ps.patches {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				k := p.ControlPoint(i, j)
				for d := 0; d < 3; d++ {
					lo[d] = math.Min(lo[d], k[d])
					hi[d] = math.Max(hi[d], k[d])
				}
			}
		}
	}
	return
}

// Counts returns the number of vertices and indices Tesselate appends.
func (ps *PatchSet) Counts(uCount, vCount int) (nv, ni int) {
	nv, ni = bezier.SurfaceCounts(uCount, vCount)
	return nv * len(ps.patches), ni * len(ps.patches)
}

func (ps *PatchSet) check(uCount, vCount int, m *cortex.Mesh3) error {
	if err := m.CanAppend(cortex.Triangles); err != nil {
		tracer().Errorf("patch set tesselation: %v", err)
		return err
	}
	if err := bezier.CheckSurfaceCounts(uCount, vCount); err != nil {
		return err
	}
	nv, _ := ps.Counts(uCount, vCount)
	if err := m.CanIndex(nv); err != nil {
		tracer().Errorf("patch set tesselation: %v", err)
		return err
	}
	return nil
}

// Tesselate tesselates every patch on a uCount×vCount grid, appending all of
// them to m, patch after patch, so that the whole object becomes one mesh.
//
// Both counts must be at least 2. Otherwise an error wrapping
// cortex.ErrPrecondition is returned and m is left untouched.
func (ps *PatchSet) Tesselate(uCount, vCount int, m *cortex.Mesh3) error {
	if err := ps.check(uCount, vCount, m); err != nil {
		return err
	}
	m.Primitive = cortex.Triangles
	m.Grow(ps.Counts(uCount, vCount))
	for _, p := range ps.patches {
		if err := p.Tesselate(uCount, vCount, m); err != nil {
			return err
		}
	}
	tracer().Debugf("tesselated %d patches into %d vertices", len(ps.patches), len(m.Vertices))
	return nil
}

// TesselateParallel is like Tesselate, but tesselates up to workers patches
// concurrently. Every patch is assigned its own range of the vertex and
// index buffers up front, so the output is identical to that of Tesselate.
//
// If ctx is cancelled before all patches are done, ctx.Err() is returned
// and m is left untouched.
func (ps *PatchSet) TesselateParallel(ctx context.Context, uCount, vCount, workers int, m *cortex.Mesh3) error {
	if err := ps.check(uCount, vCount, m); err != nil {
		return err
	}
	if workers < 1 {
		tracer().Errorf("patch set tesselation with %d workers", workers)
		return fmt.Errorf("%w: need at least one worker, have %d", cortex.ErrPrecondition, workers)
	}
	nv, ni := bezier.SurfaceCounts(uCount, vCount)
	m.Grow(ps.Counts(uCount, vCount))
	lv, li := len(m.Vertices), len(m.Indices)
	base := m.Offset()
	// write beyond len, within capacity; published only when all are done
	vertices := m.Vertices[lv : lv+nv*len(ps.patches)]
	indices := m.Indices[li : li+ni*len(ps.patches)]
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, p := range ps.patches {
		if gctx.Err() != nil {
			break
		}
		k, p := k, p // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.TesselateInto(uCount, vCount,
				vertices[k*nv:(k+1)*nv], indices[k*ni:(k+1)*ni],
				base+uint32(k*nv))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tracer().Infof("parallel tesselation stopped: %v", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Primitive = cortex.Triangles
	m.Vertices = m.Vertices[:lv+len(vertices)]
	m.Indices = m.Indices[:li+len(indices)]
	tracer().Debugf("tesselated %d patches with %d workers into %d vertices",
		len(ps.patches), workers, len(m.Vertices))
	return nil
}
