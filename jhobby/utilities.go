package jhobby

import (
	"fmt"
	"math"
)

// unknown marks a direction or control point which is not set.
var unknown = pair{math.NaN(), math.NaN()}

func isUnknown(p pair) bool {
	return math.IsNaN(p[0]) || math.IsNaN(p[1])
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st := math.Sin(theta)    // in-angle
	ct := math.Cos(theta)
	sf := math.Sin(phi) // out-angle
	cf := math.Cos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

func hobbyParamsRhoSigma(alpha, beta float64) (float64, float64) {
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	return rho, sigma
}

// Rotate dvec by theta and by −phi.
func cunitvecs(theta, phi float64, dvec pair) (pair, pair) {
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	dx, dy := dvec[0], dvec[1]
	uv1 := pair{dx*ct - dy*st, dx*st + dy*ct}
	uv2 := pair{dx*cf + dy*sf, -dx*sf + dy*cf}
	return uv1, uv2
}

// Calculate control point offsets between z.i and z.[i+1].
func controlPoints(phi, theta, a, b float64, dvec pair) (pair, pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho, sigma := hobbyParamsRhoSigma(alpha, beta)
	uv1, uv2 := cunitvecs(theta, phi, dvec)
	return uv1.Mul(a / 3 * rho), uv2.Mul(b / 3 * sigma)
}

// Extend a slice to make room for index i.
// Will do nothing if the slice is already large enough.
func extend[E any](arr []E, i int, deflt E) []E {
	for len(arr) <= i {
		arr = append(arr, deflt)
	}
	return arr
}

// Get a value from a slice if present, default value deflt otherwise.
func get[E any](arr []E, i int, deflt E) E {
	if i < 0 || i >= len(arr) {
		return deflt
	}
	return arr[i]
}

func angle(p pair) float64 {
	if isUnknown(p) {
		return 0.0
	}
	return math.Atan2(p[1], p[0])
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}

func rad2deg(a float64) float64 {
	return a * 180 / math.Pi
}

func ptstring(p pair, iscontrol bool) string {
	if isUnknown(p) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p[0]), round(p[1]))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p[0]), round(p[1]))
}

// Round to 4 digits, without negative zero.
func round(x float64) float64 {
	if r := math.Round(x*10000.0) / 10000.0; r != 0 {
		return r
	}
	return 0
}

// Do two directions point the same way?
func sameDirection(d1, d2 pair) bool {
	return math.Abs(reduceAngle(angle(d1)-angle(d2))) < _epsilon
}
