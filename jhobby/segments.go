package jhobby

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func (pp *pathPartial) IsCycle() bool {
	return pp.whole.IsCycle() && pp.whole.N() == pp.N()
}

func (pp *pathPartial) N() int {
	return pp.end - pp.start + 1
}

// Map a segment index to an index of the parent path. Segments of cyclic
// paths may run past the last knot.
func (pp *pathPartial) pmap(i int) int {
	n := pp.whole.N()
	if n == 0 {
		return i
	}
	return ((pp.start+i)%n + n) % n
}

func (pp *pathPartial) Z(i int) mgl64.Vec2 {
	return pp.whole.Z(pp.pmap(i))
}

func (pp *pathPartial) PreDir(i int) mgl64.Vec2 {
	return pp.whole.PreDir(pp.pmap(i))
}

func (pp *pathPartial) PostDir(i int) mgl64.Vec2 {
	return pp.whole.PostDir(pp.pmap(i))
}

func (pp *pathPartial) PreCurl(i int) float64 {
	return pp.whole.PreCurl(pp.pmap(i))
}

func (pp *pathPartial) PostCurl(i int) float64 {
	return pp.whole.PostCurl(pp.pmap(i))
}

func (pp *pathPartial) PreTension(i int) float64 {
	return pp.whole.PreTension(pp.pmap(i))
}

func (pp *pathPartial) PostTension(i int) float64 {
	return pp.whole.PostTension(pp.pmap(i))
}

func (pp *pathPartial) SetPreControl(i int, c mgl64.Vec2) {
	pp.controls.SetPreControl(pp.pmap(i), c)
}

func (pp *pathPartial) SetPostControl(i int, c mgl64.Vec2) {
	pp.controls.SetPostControl(pp.pmap(i), c)
}

func (pp *pathPartial) delta(i int) mgl64.Vec2 {
	return pp.Z(i + 1).Sub(pp.Z(i))
}

func (pp *pathPartial) d(i int) float64 {
	return pp.delta(i).Len()
}

// Turning angle at z.i.
func (pp *pathPartial) psi(i int) float64 {
	psi := 0.0
	if pp.IsCycle() || (i > 0 && i < pp.N()-1) {
		psi = angle(pp.delta(i)) - angle(pp.delta(i-1))
	}
	return reduceAngle(psi)
}

// Is this segment a single straight join?
func (pp *pathPartial) isLine() bool {
	return pp.N() == 2 && pp.whole.IsLine(pp.start)
}

func asStringPartial(path *pathPartial, contr *Controls) string {
	var sb strings.Builder
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			if contr != nil {
				fmt.Fprintf(&sb, " and %s\n  .. ", ptstring(contr.PreControl(path.pmap(i)), true))
			} else {
				sb.WriteString(" .. ")
			}
		}
		sb.WriteString(ptstring(path.Z(i), false))
		if contr != nil && (i < path.N()-1 || path.IsCycle()) {
			fmt.Fprintf(&sb, " .. controls %s", ptstring(contr.PostControl(path.pmap(i)), true))
		}
	}
	if path.IsCycle() {
		if contr != nil {
			fmt.Fprintf(&sb, " and %s\n ", ptstring(contr.PreControl(path.pmap(0)), true))
		}
		sb.WriteString(" .. cycle")
	}
	return sb.String()
}

// Split a path into segments, breaking it up at "rough" knots.
// Rough knots are those with parameters creating a discontinuity.
// Segments of a cyclic path start and end at rough knots, the last one
// wrapping around z.0.
func splitSegments(path *Path) []*pathPartial {
	n := path.N()
	var rough []int
	for i := 0; i < n; i++ {
		if (path.IsCycle() || (i > 0 && i < n-1)) && isrough(path, i) {
			rough = append(rough, i)
		}
	}
	var segments []*pathPartial
	if path.IsCycle() {
		if len(rough) == 0 {
			return append(segments, makePathSegment(path, 0, n-1))
		}
		for k, at := range rough {
			to := rough[0] + n
			if k+1 < len(rough) {
				to = rough[k+1]
			}
			segments = append(segments, makePathSegment(path, at, to))
		}
		return segments
	}
	bounds := append(append([]int{0}, rough...), n-1)
	for k := 0; k+1 < len(bounds); k++ {
		segments = append(segments, makePathSegment(path, bounds[k], bounds[k+1]))
	}
	return segments
}

// Create a path segment as a projection onto a parent path subset.
func makePathSegment(path *Path, from, to int) *pathPartial {
	partial := &pathPartial{
		whole: path,
		start: from,
		end:   to,
	}
	tracer().Debugf("breaking segment %d - %d of length %d, at %s and %s", from, to, partial.N(),
		ptstring(path.Z(from), false), ptstring(path.Z(to), false))
	return partial
}

func validateSegment(seg *pathPartial) error {
	if seg == nil || seg.whole == nil {
		return ErrNilPath
	}
	if seg.N() < 2 {
		return fmt.Errorf("%w: segment has %d knots", ErrTooFewKnots, seg.N())
	}
	limit := seg.N() - 1
	if seg.IsCycle() {
		limit = seg.N()
	}
	for i := 0; i < limit; i++ {
		if seg.d(i) <= _epsilon {
			return fmt.Errorf("%w in segment between %d and %d", ErrDegenerateSegment,
				seg.pmap(i), seg.pmap(i+1))
		}
	}
	return nil
}

// Is a knot a breakpoint for splitting a path into segments?
func isrough(path *Path, i int) bool {
	lc, rc := path.PreCurl(i), path.PostCurl(i)
	hascurl := lc != 1 || rc != 1
	ld, rd := path.PreDir(i), path.PostDir(i)
	has2dirs := !isUnknown(ld) && !isUnknown(rd) && !sameDirection(ld, rd)
	n := path.N()
	online := path.IsLine(i) || (i > 0 && path.IsLine(i-1)) || (path.IsCycle() && i == 0 && path.IsLine(n-1))
	return hascurl || has2dirs || online
}
