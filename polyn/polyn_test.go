package polyn

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type res map[int]float64 // a variable resolver for testing purposes

func newResolver() res {
	return make(map[int]float64)
}

func (r res) GetVariableName(n int) string { // get real-life name of x.i
	return string(rune(n + 96)) // 'a', 'b', ...
}

func (r res) SetVariableSolved(n int, v float64) { // message: x.i is solved
	r[n] = v // remember the value to assert test conditions
}

func snapshotPolynomial(p Polynomial) map[int]float64 {
	snap := make(map[int]float64)
	for _, i := range p.Exponents() {
		snap[i] = p.GetCoeffForTerm(i)
	}
	return snap
}

func assertBefore(t *testing.T, s, first, second string) {
	t.Helper()
	iFirst := strings.Index(s, first)
	iSecond := strings.Index(s, second)
	assert.NotEqual(t, -1, iFirst, "missing substring %q", first)
	assert.NotEqual(t, -1, iSecond, "missing substring %q", second)
	assert.Less(t, iFirst, iSecond, "expected %q before %q", first, second)
}

// --- Tests -----------------------------------------------------------------

func TestPolynSimple1(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(1.0)
	if p.TermCount() != 1 {
		t.Fail()
	}
}

func TestPolynConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	_, isconst := p.IsConstant()
	if !isconst {
		t.Error("did not recognize constant polynomial as constant")
	}
	p.SetTerm(1, 2)
	_, isconst = p.IsConstant()
	if isconst {
		t.Error("did falsely recognize non-constant polynomial as constant")
	}
}

func TestZapPolyn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	p.SetTerm(1, 0.0000000005)
	p.Zap()
	_, isconst := p.IsConstant()
	if !isconst {
		t.Error("Expected polynomial to be of constant type, isn't")
	}
}

func TestPolynNewRejectsConstantTerm(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := New(1, X{0, 5}, X{2, 3})
	assert.Error(t, err)
	assert.InDelta(t, 1.0, p.GetConstantValue(), 1e-9)
	assert.InDelta(t, 3.0, p.GetCoeffForTerm(2), 1e-9)
}

func TestPolynAddSubtract(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(10, X{1, 7}, X{2, 2})
	q, _ := New(4, X{1, 2}, X{3, 9})
	r := p.Add(q).Zap()
	assert.InDelta(t, 14.0, r.GetCoeffForTerm(0), 1e-9)
	assert.InDelta(t, 9.0, r.GetCoeffForTerm(1), 1e-9)
	r = p.Subtract(q).Zap()
	assert.InDelta(t, 6.0, r.GetCoeffForTerm(0), 1e-9)
	assert.InDelta(t, 5.0, r.GetCoeffForTerm(1), 1e-9)
	assert.InDelta(t, 2.0, r.GetCoeffForTerm(2), 1e-9)
	assert.InDelta(t, -9.0, r.GetCoeffForTerm(3), 1e-9)
}

func TestPolynAddDoesNotMutateOperands(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(5, X{1, 1}, X{2, 2})
	p2, _ := New(4, X{1, 6}, X{5, 4})
	pBefore := snapshotPolynomial(p)
	p2Before := snapshotPolynomial(p2)
	_ = p.Add(p2)
	assert.Equal(t, pBefore, snapshotPolynomial(p), "Add mutated left operand")
	assert.Equal(t, p2Before, snapshotPolynomial(p2), "Add mutated right operand")
}

func TestPolynMulDiv(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(6, X{1, 4}, X{2, 2})
	pr, err := p.Multiply(NewConstantPolynomial(-2.0))
	assert.NoError(t, err)
	assert.InDelta(t, -8.0, pr.GetCoeffForTerm(1), 1e-9)
	pr, err = NewConstantPolynomial(3).Multiply(p)
	assert.NoError(t, err)
	assert.InDelta(t, 6.0, pr.GetCoeffForTerm(2), 1e-9)
	_, err = p.Multiply(p)
	assert.True(t, errors.Is(err, ErrNotConstant))
	pr, err = p.Divide(NewConstantPolynomial(2.0))
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, pr.GetConstantValue(), 1e-9)
	_, err = p.Divide(NewConstantPolynomial(0.0))
	assert.True(t, errors.Is(err, ErrDivisionByZero), "expected error for division by zero")
}

func TestPolynSubst(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 10}, X{2, 20})
	p2, _ := New(2, X{3, 30}, X{4, 40})
	q := p.substitute(1, p2)
	t.Logf("%s [x.1 := %s] = %s", p, p2, q)
	assert.InDelta(t, 300.0, q.GetCoeffForTerm(3), 1e-9)
	assert.InDelta(t, 21.0, q.GetConstantValue(), 1e-9)
	assert.InDelta(t, 0.0, q.GetCoeffForTerm(1), 1e-9)
	assert.InDelta(t, 10.0, p.GetCoeffForTerm(1), 1e-9, "substitute mutated its receiver")
}

func TestPolynMaxCoeff(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(0, X{1, 5}, X{2, -5}, X{4, 5})
	i, c := p.maxCoeff(nil)
	assert.Equal(t, 1, i, "tie should resolve to lowest key in ascending scan")
	assert.InDelta(t, 5.0, c, 1e-9)
	dependents := EquationMap{1: NewConstantPolynomial(0)}
	i, c = p.maxCoeff(dependents)
	assert.Equal(t, 2, i, "dependent variable should be skipped")
	assert.InDelta(t, -5.0, c, 1e-9)
}

func TestPolynVariableAndValidity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var zero Polynomial
	assert.False(t, zero.IsValid())
	p, _ := New(0, X{3, 1})
	pos, ok := p.IsVariable()
	assert.True(t, ok)
	assert.Equal(t, 3, pos)
	q, _ := New(1, X{3, 1})
	_, ok = q.IsVariable()
	assert.False(t, ok)
}

func TestPolynEvalHorner(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, -3}, X{3, 2}) // 1 - 3x + 2x³
	assert.Equal(t, 3, p.Degree())
	for _, x := range []float64{-2, -0.5, 0, 0.25, 1, 3} {
		want := 1 - 3*x + 2*x*x*x
		assert.InDelta(t, want, p.Eval(x), 1e-12, "p(%g)", x)
	}
	assert.InDelta(t, 4.0, NewConstantPolynomial(4).Eval(17), 1e-12)
}

func TestTraceStringDeterministicOrdering(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := newResolver()
	p, _ := New(0, X{8, 1}, X{2, 1}, X{5, -2})
	s := p.TraceString(r)
	t.Logf("p = %s", s)
	assertBefore(t, s, "b", "e")
	assertBefore(t, s, "e", "h")
	assert.Equal(t, "b - 2e + h", s)
	assert.Equal(t, "x.3", TraceStringVar(3, nil))
	assert.Equal(t, "c", TraceStringVar(3, r))
}
