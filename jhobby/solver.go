package jhobby

import (
	"fmt"
	"math"
)

// ValidateForSolve checks if a path is solvable by Hobby interpolation.
func (path *Path) ValidateForSolve() error {
	if path == nil {
		return ErrNilPath
	}
	n := path.N()
	if path.IsCycle() {
		if n < 3 {
			return fmt.Errorf("%w: cycle needs at least 3 knots, got %d", ErrTooFewKnots, n)
		}
		if path.points[0].Sub(path.points[n-1]).Len() <= _epsilon {
			return ErrCycleHasDuplicateTerminalKnot
		}
	} else if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range path.points {
		if math.IsNaN(z[0]) || math.IsNaN(z[1]) || math.IsInf(z[0], 0) || math.IsInf(z[1], 0) {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	limit := n - 1
	if path.IsCycle() {
		limit = n
	}
	for i := 0; i < limit; i++ {
		j := (i + 1) % n
		if path.points[j].Sub(path.points[i]).Len() <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, j)
		}
	}
	return nil
}

// FindHobbyControls finds the parameters for Hobby-spline control points
// for a given skeleton path.
//
// Clients may provide a container for the spline control points. If none
// is provided, i.e. controls == nil, this function will allocate one.
// The path is validated first and an error is returned for empty or
// degenerate geometry.
//
// The calculated path is traced with level INFO, as MetaFont does with
// tracingchoices=true.
func FindHobbyControls(path *Path, controls *Controls) (*Controls, error) {
	if err := path.ValidateForSolve(); err != nil {
		return nil, err
	}
	if controls == nil {
		controls = &Controls{}
	}
	for _, segment := range splitSegments(path) {
		if err := validateSegment(segment); err != nil {
			return nil, err
		}
		segment.controls = controls
		tracer().Infof("find controls for segment %s", asStringPartial(segment, nil))
		findSegmentControls(segment)
	}
	return controls, nil
}

// MustFindHobbyControls is a helper which panics on validation errors.
func MustFindHobbyControls(path *Path, controls *Controls) *Controls {
	c, err := FindHobbyControls(path, controls)
	if err != nil {
		panic(err)
	}
	return c
}

// Find the control points of a single segment, without breakpoints in between.
func findSegmentControls(path *pathPartial) {
	if path.isLine() {
		setLineControls(path)
		return
	}
	var u = make([]float64, path.N()+2)
	var v = make([]float64, path.N()+2)
	var theta = make([]float64, path.N()+2)
	if path.IsCycle() {
		var w = make([]float64, path.N()+2)
		solveCyclePath(path, theta, u, v, w)
	} else {
		solveOpenPath(path, theta, u, v)
	}
	setControls(path, theta) // set control points from theta angles
}

func solveOpenPath(path *pathPartial, theta, u, v []float64) {
	startOpen(path, u, v)
	buildEqs(path, u, v, nil)
	endOpen(path, theta, u, v)
}

func solveCyclePath(path *pathPartial, theta, u, v, w []float64) {
	u[0], v[0], w[0] = 0, 0, 1
	buildEqs(path, u, v, w)
	endCycle(path, theta, u, v, w)
}

func startOpen(path *pathPartial, u, v []float64) {
	if isUnknown(path.PostDir(0)) {
		a := recip(path.PostTension(0))
		b := recip(path.PreTension(1))
		c := square(a) * path.PostCurl(0) / square(b)
		tracer().Debugf("a = %.4g, b = %.4g, c = %.4g", a, b, c)
		u[0] = ((3-a)*c + b) / (a*c + 3 - b)
		v[0] = -u[0] * path.psi(1)
	} else {
		u[0] = 0
		v[0] = reduceAngle(angle(path.PostDir(0)) - angle(path.delta(0)))
	}
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
}

func endOpen(path *pathPartial, theta, u, v []float64) {
	last := path.N() - 1
	if isUnknown(path.PreDir(last)) {
		a := recip(path.PostTension(last - 1))
		b := recip(path.PreTension(last))
		c := square(b) * path.PreCurl(last) / square(a)
		u[last] = (b*c + 3 - a) / ((3-b)*c + a)
		tracer().Debugf("u.%d = %g", last, u[last])
		if den := u[last-1] - u[last]; math.Abs(den) > _epsilon {
			theta[last] = v[last-1] / den
		} else {
			// curl at both ends of a single join
			theta[last] = 0
		}
	} else {
		theta[last] = reduceAngle(angle(path.PreDir(last)) - angle(path.delta(last-1)))
	}
	tracer().Debugf("theta.%d = %.4g", last, rad2deg(theta[last]))
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
		tracer().Debugf("theta.%d = %.4g", i, rad2deg(theta[i]))
	}
}

func endCycle(path *pathPartial, theta, u, v, w []float64) {
	n := path.N()
	var a, b float64 = 0, 1
	for i := n; i > 0; i-- {
		a = v[i] - a*u[i]
		b = w[i] - b*u[i]
	}
	t0 := (v[n] - a*u[n]) / (1 - (w[n] - b*u[n]))
	v[0] = t0
	for i := 1; i <= n; i++ {
		v[i] += w[i] * t0
	}
	theta[0], theta[n] = t0, t0
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// Build the tridiagonal equations for the inner knots. Cycles have no
// endpoints, so every knot is inner and the system wraps around.
func buildEqs(path *pathPartial, u, v, w []float64) {
	last := path.N() - 2
	if path.IsCycle() {
		last = path.N()
	}
	for i := 1; i <= last; i++ {
		a0 := recip(path.PostTension(i - 1))
		a1 := recip(path.PostTension(i))
		b1 := recip(path.PreTension(i))
		b2 := recip(path.PreTension(i + 1))
		A := a0 / (square(b1) * path.d(i-1))
		B := (3 - a0) / (square(b1) * path.d(i-1))
		C := (3 - b2) / (square(a1) * path.d(i))
		D := b2 / (square(a1) * path.d(i))
		tracer().Debugf("A, B, C, D: %.4g, %.4g, %.4g, %.4g", A, B, C, D)
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*path.psi(i) - D*path.psi(i+1) - A*v[i-1]) / t
		if w != nil {
			w[i] = -A * w[i-1] / t
		}
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
}

func setControls(path *pathPartial, theta []float64) {
	joins := path.N() - 1
	if path.IsCycle() {
		joins = path.N()
	}
	for i := 0; i < joins; i++ {
		phi := -path.psi(i+1) - theta[i+1]
		a := recip(path.PostTension(i))
		b := recip(path.PreTension(i + 1))
		p2, p3 := controlPoints(phi, theta[i], a, b, path.delta(i))
		path.SetPostControl(i, path.Z(i).Add(p2))
		path.SetPreControl(i+1, path.Z(i+1).Sub(p3))
	}
	tracer().Infof("%s", asStringPartial(path, path.controls))
}

// A straight join gets its control points at thirds of the line.
func setLineControls(path *pathPartial) {
	third := path.delta(0).Mul(1.0 / 3)
	path.SetPostControl(0, path.Z(0).Add(third))
	path.SetPreControl(1, path.Z(1).Sub(third))
	tracer().Infof("%s", asStringPartial(path, path.controls))
}
