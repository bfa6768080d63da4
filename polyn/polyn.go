// Package polyn is for arithmetic with polynomials, Bernstein basis
// polynomials and linear equations.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/cortex"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the equations tracer.
func T() tracing.Trace {
	return gtrace.EquationsTracer
}

var (
	// ErrNotConstant indicates a multiplication or division of two non-constant
	// polynomials.
	ErrNotConstant = errors.New("one of the operands must be a constant")
	// ErrDivisionByZero indicates a division by the constant 0.
	ErrDivisionByZero = errors.New("division by zero")
)

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅x^I
//
// I > 0
type X struct {
	I int     // exponent of x
	C float64 // coefficient
}

// New creates a polynomial, given the term coefficients and exponents
//
// Use it as
//
//	polyn.New(8, polyn.X{2,5}, polyn.X{1,2/3} )
//
// to get
//
//	P(x) = 8 + 2/3x + 5x²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term exponent must be at least 1, skipping it")
		} else {
			p.SetTerm(t.I, t.C)
		}
	}
	return p, err
}

// Polynomial is a type for polynomials
//
//	c + a.1 x.1 + a.2 x.2 + ... a.n x.n .
//
// We store the coefficients only. Index 0 is the constant term.
// We store the coefficients in a TreeMap (sorted map), keyed by int.
//
// The key i has two readings: in power basis it is the exponent of a term
// a.i⋅x^i; within the linear equation solver it is the ID of a variable x.i.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c) // initialize with constant term (at position 0)
	return p.Zap()
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for a term a.i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// GetCoeffForTerm gets the coefficient for term # i.
//
// Example:
//
//	p = x + 3x.2
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	if p.Terms == nil {
		return 0.0
	}
	if sc, found := p.Terms.Get(i); found {
		return sc.(float64)
	}
	return 0.0
}

// GetConstantValue returns the constant term of a polynomial.
func (p Polynomial) GetConstantValue() float64 {
	return p.GetCoeffForTerm(0)
}

// TermCount returns the number of stored terms, including the constant term.
func (p Polynomial) TermCount() int {
	if p.Terms == nil {
		return 0
	}
	return p.Terms.Size()
}

// Exponents returns the keys of all terms in ascending order, including 0.
func (p Polynomial) Exponents() []int {
	if p.Terms == nil {
		return nil
	}
	keys := p.Terms.Keys()
	exps := make([]int, len(keys))
	for n, k := range keys {
		exps[n] = k.(int)
	}
	return exps
}

// Degree returns the highest exponent with a non-zero coefficient.
func (p Polynomial) Degree() int {
	if p.Terms == nil || p.Terms.Empty() {
		return 0
	}
	it := p.Terms.Iterator()
	for it.End(); it.Prev(); {
		if !cortex.Is0(it.Value().(float64)) {
			return it.Key().(int)
		}
	}
	return 0
}

// Eval evaluates a polynomial in power basis at x, using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	n := p.Degree()
	r := p.GetCoeffForTerm(n)
	for i := n - 1; i >= 0; i-- {
		r = r*x + p.GetCoeffForTerm(i)
	}
	return r
}

// Find coefficient of maximum absolute value.
// If parameter 'dependents' is given, first search for a.i * x.i, with
// x.i not in dependents (i.e., we're looking for free variables only:
// find free variable x.i in p, with abs(a.i) is max in p).
// If no free variable can be found, find max(dependent(a.j)).
func (p Polynomial) maxCoeff(dependents map[int]Polynomial) (int, float64) {
	p.checkTerms()
	it := p.Terms.Iterator()
	var maxp int      // variable position of max coeff
	var maxc = 0.0    // max coeff
	var coeff float64 // result coeff
	for it.Next() {
		i := it.Key().(int)
		_, isdep := dependents[i]
		if i == 0 || isdep {
			continue
		}
		c := it.Value().(float64)
		if math.Abs(c) > maxc {
			maxc, maxp, coeff = math.Abs(c), i, c
		}
	}
	if maxp == 0 && dependents != nil { // no free variable found
		maxp, coeff = p.maxCoeff(nil)
	}
	return maxp, coeff
}

// Substitute variable i within p with Polynomial p2.
// If p does not contain a term.i, p is returned unchanged.
// p2 must not contain x.i itself.
func (p Polynomial) substitute(i int, p2 Polynomial) Polynomial {
	if !cortex.Is0(p2.GetCoeffForTerm(i)) {
		panic(fmt.Sprintf("cyclic call to substitute term #%d: %s", i, p2.String()))
	}
	scale := p.GetCoeffForTerm(i)
	if cortex.Is0(scale) {
		return p
	}
	q := p.CopyPolynomial()
	q.Terms.Remove(i)
	return q.Add(p2.Scale(scale)).Zap()
}

// CopyPolynomial makes a copy of a numeric Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := Polynomial{}
	p1.checkTerms()
	if p.Terms == nil {
		p1.Terms.Put(0, 0.0)
		return p1
	}
	it := p.Terms.Iterator()
	for it.Next() { // copy all terms of p into p1
		p1.Terms.Put(it.Key(), it.Value())
	}
	return p1
}

// Internal method: add or subtract 2 polynomials. The high level methods
// are based on this one.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool) Polynomial {
	p1 := p.CopyPolynomial() // will become our return value
	if p2.Terms == nil {
		return p1
	}
	it2 := p2.Terms.Iterator()
	for it2.Next() { // inspect all terms of p2
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		if !cortex.Is0(scale2) {
			scale1 := p1.GetCoeffForTerm(pos2)
			if doAdd {
				scale1 = scale1 + scale2 // if present, add a1 + a2
			} else {
				scale1 = scale1 - scale2 // if present, subtract a1 - a2
			}
			p1.SetTerm(pos2, scale1) // we operate on the copy p1
		}
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial, both operands are
// left unchanged.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, true)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial, both operands
// are left unchanged.
func (p Polynomial) Subtract(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, false)
}

// Scale returns a new polynomial with every coefficient multiplied by c.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.CopyPolynomial()
	it := p1.Terms.Iterator()
	for it.Next() {
		p1.Terms.Put(it.Key(), cortex.Zap(it.Value().(float64)*c))
	}
	return p1.Zap()
}

// Multiply multiplies two Polynomials. One of both must be a constant.
// Returns a new polynomial.
func (p Polynomial) Multiply(p2 Polynomial) (Polynomial, error) {
	if c, isconst := p2.IsConstant(); isconst {
		return p.Scale(c), nil
	}
	if c, isconst := p.IsConstant(); isconst {
		return p2.Scale(c), nil
	}
	return Polynomial{}, fmt.Errorf("%w: (%s) * (%s)", ErrNotConstant, p, p2)
}

// Divide divides a polynomial by a numeric (not 0).
func (p Polynomial) Divide(p2 Polynomial) (Polynomial, error) {
	c, isconst := p2.IsConstant()
	if !isconst {
		return Polynomial{}, fmt.Errorf("%w: divisor %s", ErrNotConstant, p2)
	}
	if cortex.Is0(c) {
		return Polynomial{}, ErrDivisionByZero
	}
	return p.Scale(1.0 / c), nil
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
// The constant term is always kept.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	for _, pos := range p.Terms.Keys() { // inspect terms
		if scale, _ := p.Terms.Get(pos); cortex.Is0(scale.(float64)) {
			p.Terms.Remove(pos) // may lose constant term c
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0) // set p = 0: re-introduce c
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.GetCoeffForTerm(0), p.TermCount() <= 1
}

// IsVariable checks wether
// a Polynomial is a variable?, i.e. a single term with coefficient = 1.
// Returns the position of the term and a flag.
func (p Polynomial) IsVariable() (int, bool) {
	if p.TermCount() == 2 && cortex.Is0(p.GetCoeffForTerm(0)) { // ok: p = a*x.i
		pos := p.Exponents()[1]
		if cortex.Is1(p.GetCoeffForTerm(pos)) {
			return pos, true
		}
	}
	return -77777, false
}

// IsValid checks if this a correctly initialized polynomial.
func (p Polynomial) IsValid() bool {
	return (p.Terms != nil)
}

// String creates a readable string representation for a Polynomial.
// Uses internal variable representations x.<n> where n corresponds to
// the variable's real life ID.
func (p Polynomial) String() string {
	return p.TraceString(nil)
}

// TraceString creates a string representation for a Polynomial. Uses a variable name
// resolver to print 'real' variable identifiers. If no resolver is
// present, variables are printed in a generic form: +/- a.i x.i, where i is
// the position of the term. Coefficients are rounded to Epsilon.
func (p Polynomial) TraceString(resolv VariableResolver) string {
	var buffer bytes.Buffer
	p.checkTerms()
	it := p.Terms.Iterator()
	var indent = false // no space before first term (usually constant)
	for it.Next() {
		pos := it.Key().(int)
		scale := it.Value().(float64)
		if pos == 0 { // constant term
			if resolv == nil {
				buffer.WriteString(fmt.Sprintf("{ %g } ", cortex.Round(scale)))
			} else if !cortex.Is0(scale) {
				buffer.WriteString(fmt.Sprintf("%g", cortex.Round(scale)))
				indent = true
			}
			continue
		}
		if resolv == nil {
			buffer.WriteString(fmt.Sprintf("{ %g x.%d } ", cortex.Round(scale), pos))
			continue
		}
		if indent {
			if scale < 0.0 {
				buffer.WriteString(" - ")
			} else if scale > 0.0 {
				buffer.WriteString(" + ")
			}
		} else {
			indent = true
			if scale < 0.0 {
				buffer.WriteString("-")
			}
		}
		if !cortex.Is0(math.Abs(scale) - 1.0) {
			buffer.WriteString(fmt.Sprintf("%g", math.Abs(scale)))
		}
		buffer.WriteString(resolv.GetVariableName(pos))
	}
	return buffer.String()
}

// TraceStringVar is a helper for tracing output. Parameter resolv may be nil.
func TraceStringVar(i int, resolv VariableResolver) string {
	if resolv == nil {
		return fmt.Sprintf("x.%d", i)
	}
	return resolv.GetVariableName(i)
}
