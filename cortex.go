/*
Package cortex implements the basic types for parametric geometry: vector
constraints for control points, vertices, and append-only mesh buffers
which serve as the sink for tesselation.

Sub-packages evaluate Bezier curves and surfaces (package bezier), generate
primitive shapes and geodesic spheres (package shape), and load and tesselate
sets of bicubic Bezier patches (package teaset).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package cortex

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cortex'
func tracer() tracing.Trace {
	return tracing.Select("cortex")
}

// ErrPrecondition is returned by operations which have been called with
// arguments violating their contract, e.g. a sample count below 2.
// Output buffers are never touched in this case.
var ErrPrecondition = errors.New("precondition violated")

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Vector Data Types =====================================================

// Vector is the constraint for control points, positions and normals.
// Vectors are values: every operation returns a new vector and leaves the
// receiver untouched. mgl64.Vec2 and mgl64.Vec3 satisfy it.
type Vector[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(float64) T
}

// Vector3 is a Vector with a cross product, i.e. a vector in 3D space.
type Vector3[T any] interface {
	Vector[T]
	Cross(T) T
}

// Zap3 rounds all components of v to Epsilon.
func Zap3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{Zap(v[0]), Zap(v[1]), Zap(v[2])}
}

// IsUnit is a predicate: is v of length 1 (within tolerance eps)?
func IsUnit(v mgl64.Vec3, eps float64) bool {
	return math.Abs(v.Len()-1) <= eps
}

// === Rotations =============================================================

// Rotation returns a transform rotating a 3D point counter-clockwise by theta
// (in radians) around one of the coordinate axes. axis is one of 'x', 'y', 'z'.
func Rotation(axis byte, theta float64) mgl64.Mat3 {
	switch axis {
	case 'x', 'X':
		return mgl64.Rotate3DX(theta)
	case 'y', 'Y':
		return mgl64.Rotate3DY(theta)
	case 'z', 'Z':
		return mgl64.Rotate3DZ(theta)
	}
	panic("rotation axis must be one of x, y, z")
}

// Transform a 3D point. The argument is unchanged and a new vector is returned.
// Components which "mean" to be zero are zapped to exactly zero.
func Transform(m mgl64.Mat3, v mgl64.Vec3) mgl64.Vec3 {
	return Zap3(m.Mul3x1(v))
}
