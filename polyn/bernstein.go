package polyn

import "fmt"

// MaxDegree is the highest polynomial degree supported by the Bernstein
// evaluator. Coefficients are derived from factorials in 32-bit integers, and
// 13! no longer fits into a uint32.
const MaxDegree = 12

// factorials[n] = n!, binomials[n][v] = C(n,v), for n ≤ MaxDegree.
// Both tables are filled once at package initialization.
var (
	factorials [MaxDegree + 1]uint32
	binomials  [MaxDegree + 1][MaxDegree + 1]uint32
)

func init() {
	factorials[0] = 1
	for n := 1; n <= MaxDegree; n++ {
		factorials[n] = factorials[n-1] * uint32(n)
	}
	for n := 0; n <= MaxDegree; n++ {
		for v := 0; v <= n; v++ {
			binomials[n][v] = factorials[n] / (factorials[v] * factorials[n-v])
		}
	}
}

func checkDegree(n, v int) {
	if n < 0 || n > MaxDegree || v < 0 || v > n {
		panic(fmt.Sprintf("Bernstein term (%d,%d) out of range, degree must be within 0…%d",
			n, v, MaxDegree))
	}
}

// Factorial returns n! for 0 ≤ n ≤ MaxDegree. It panics for other values of n.
func Factorial(n int) uint32 {
	checkDegree(n, 0)
	return factorials[n]
}

// Binomial returns the binomial coefficient C(n,v) = n! / (v!(n−v)!)
// for 0 ≤ v ≤ n ≤ MaxDegree. It panics for other arguments.
func Binomial(n, v int) uint32 {
	checkDegree(n, v)
	return binomials[n][v]
}

// Bernstein evaluates the Bernstein basis polynomial
//
//	b(n,v)(x) = C(n,v) ⋅ x^v ⋅ (1−x)^(n−v)
//
// Degree n and term index v are fixed by the caller's curve, x is the only
// free parameter. x is not clamped to [0,1]. For n = 0 the result is 1.
func Bernstein(n, v int, x float64) float64 {
	checkDegree(n, v)
	return float64(binomials[n][v]) * ipow(x, v) * ipow(1-x, n-v)
}

// BernsteinPolynomial expands the Bernstein basis polynomial b(n,v) into
// power basis:
//
//	b(n,v)(x) = Σ_k C(n,v)⋅C(n−v,k)⋅(−1)^k ⋅ x^(v+k),  k = 0…n−v
func BernsteinPolynomial(n, v int) Polynomial {
	checkDegree(n, v)
	p := NewConstantPolynomial(0)
	c := float64(binomials[n][v])
	for k := 0; k <= n-v; k++ {
		a := c * float64(binomials[n-v][k])
		if k%2 == 1 {
			a = -a
		}
		p.SetTerm(v+k, a)
	}
	return p
}

// x^k for small non-negative k, avoiding math.Pow.
func ipow(x float64, k int) float64 {
	r := 1.0
	for ; k > 0; k-- {
		r *= x
	}
	return r
}
