package polyn

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/cortex"
)

var (
	// ErrEmptyEquationList indicates no equations were supplied to AddEqs.
	ErrEmptyEquationList = errors.New("empty list of equations")
	// ErrInconsistentEquation indicates an equation reduced to 0 = c with c != 0.
	ErrInconsistentEquation = errors.New("inconsistent equation")
	// ErrUnderdetermined indicates a variable has been queried which is not
	// (yet) determined by the equations of the system.
	ErrUnderdetermined = errors.New("variable is not determined")
)

/*
----------------------------------------------------------------------

Objects and interfaces for solving systems of linear equations (LEQ).

Inspired by Donald E. Knuth's MetaFont, John Hobby's MetaPost and by
a Lua project by John D. Ramsdell: http://luaforge.net/projects/lineqpp/
*/

// A VariableResolver links solver variable IDs to "real" variable names.
//
// In polynomial notation, terms are keyed by exponent i (a_i * x^i). In LEQ
// mode, the same key i is interpreted as an internal variable ID x.i.
// The resolver maps IDs to names and receives a message whenever a variable
// becomes known.
type VariableResolver interface {
	GetVariableName(int) string     // get real-life name of x.i
	SetVariableSolved(int, float64) // message: x.i is solved
}

// EquationMap holds equations x.i = p(i), keyed by i.
type EquationMap map[int]Polynomial

// === System of linear equations =======================================

// LinEqSolver is a container for linear equations. Used to incrementally solve
// systems of linear equations.
//
// Invariant: right hand sides of dependent variables contain independent
// variables only.
type LinEqSolver struct {
	dependents       EquationMap      // dependent variable at position i has dependencies[i]
	solved           EquationMap      // map x.i => numeric
	varresolver      VariableResolver // to resolve variable names from term positions
	showdependencies bool             // continuously show dependent variables
}

// NewLinEqSolver creates a new system of linear equations.
func NewLinEqSolver() *LinEqSolver {
	return &LinEqSolver{
		dependents: make(EquationMap),
		solved:     make(EquationMap),
	}
}

// Helper to keep deterministic ascending iteration over equation maps.
// Keys are snapshotted so callbacks may remove entries from m safely.
func forEachEquationAscending(m EquationMap, fn func(int, Polynomial)) {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, i := range keys {
		if v, ok := m[i]; ok { // key may have been removed by callback
			fn(i, v)
		}
	}
}

// SetVariableResolver sets a variable resolver. Within the LEQ variables are
// encoded by their serial ID, i.e. by the term key i in this package's
// sparse term map.
func (leq *LinEqSolver) SetVariableResolver(resolver VariableResolver) {
	leq.varresolver = resolver
}

// ShowDependencies switches on dumping the system after every equation.
func (leq *LinEqSolver) ShowDependencies(show bool) {
	leq.showdependencies = show
}

// AddEq adds a
// new equation 0 = p (p is Polynomial) to a system of linear equations.
// Immediately starts to solve the -- possibly incomplete -- system, as
// far as possible.
func (leq *LinEqSolver) AddEq(p Polynomial) error {
	err := leq.addEq(p)
	if leq.showdependencies {
		leq.Dump()
	}
	return err
}

// AddEqs adds a set of linear equations to the LEQ system.
// See AddEq.
func (leq *LinEqSolver) AddEqs(plist []Polynomial) error {
	l := len(plist)
	if l == 0 {
		T().Errorf("given empty list of equations")
		return ErrEmptyEquationList
	}
	for i, p := range plist {
		T().Debugf("adding equation %d/%d: 0 = %s", i+1, l, p)
		if err := leq.addEq(p); err != nil {
			return err
		}
	}
	if leq.showdependencies {
		leq.Dump()
	}
	return nil
}

func (leq *LinEqSolver) addEq(p Polynomial) error {
	p = p.CopyPolynomial().Zap()
	T().P("op", "new equation").Infof("0 = %s", leq.PolynString(p))
	p = leq.substituteSolved(p)
	p = leq.substituteDependents(p)
	if c, isconst := p.IsConstant(); isconst {
		if !cortex.Is0(c) {
			return fmt.Errorf("%w: 0 = %s (off by %g)", ErrInconsistentEquation, leq.PolynString(p), c)
		}
		T().Debugf("redundant equation")
		return nil
	}
	i, _ := p.maxCoeff(nil) // pivot: max coefficient of p, all variables in p are free
	p = leq.activateEquationTowards(i, p)
	forEachEquationAscending(leq.dependents, func(j int, q Polynomial) {
		if termContains(q, i) {
			q = q.substitute(i, p)
			T().P("op", "substitute").Debugf("%s = %s", leq.VarString(j), leq.PolynString(q))
			leq.dependents[j] = q
		}
	})
	leq.dependents[i] = p
	leq.harvestSolved()
	return nil
}

// Does this polynomial contain x.i ?
func termContains(p Polynomial, i int) bool {
	return !cortex.Is0(p.GetCoeffForTerm(i))
}

// In an equation, substitute all variables which are already known.
func (leq *LinEqSolver) substituteSolved(p Polynomial) Polynomial {
	forEachEquationAscending(leq.solved, func(i int, rhs Polynomial) {
		if coeff := p.GetCoeffForTerm(i); !cortex.Is0(coeff) {
			p = p.substitute(i, rhs)
			T().P("op", "subst-solved").Debugf("%s = %g  =>  RHS = %s",
				leq.VarString(i), rhs.GetConstantValue(), leq.PolynString(p))
		}
	})
	return p
}

// In an equation, replace every dependent variable by its right hand side.
func (leq *LinEqSolver) substituteDependents(p Polynomial) Polynomial {
	forEachEquationAscending(leq.dependents, func(i int, rhs Polynomial) {
		if termContains(p, i) {
			p = p.substitute(i, rhs)
		}
	})
	return p
}

// Transform an equation 0 = p(a x.i) to make x.i the dependent variable, i.e.
// x.i = -1/a * p(...).
func (leq *LinEqSolver) activateEquationTowards(i int, p Polynomial) Polynomial {
	coeff := p.GetCoeffForTerm(i)
	p = p.CopyPolynomial()
	p.Terms.Remove(i) // remove term x.i from RHS(p)
	p = p.Scale(-1.0 / coeff)
	varname := leq.VarString(i)
	T().P("var", varname).Infof("## %s = %s", varname, leq.PolynString(p))
	return p
}

// Move all dependent variables with a constant right hand side to the set
// of solved variables.
func (leq *LinEqSolver) harvestSolved() {
	forEachEquationAscending(leq.dependents, func(i int, p Polynomial) {
		if _, isconst := p.IsConstant(); isconst {
			delete(leq.dependents, i)
			leq.setSolved(i, p)
		}
	})
}

// Mark a variable as solved. Sends a message to the variable resolver.
func (leq *LinEqSolver) setSolved(i int, p Polynomial) {
	c := p.GetConstantValue()
	varname := leq.VarString(i)
	T().P("var", varname).Infof("#### %s = %g", varname, c)
	leq.solved[i] = p // move x.i to set of solved variables
	if leq.varresolver != nil {
		leq.varresolver.SetVariableSolved(i, c) // notify variable solver
	}
}

// IsSolved is a predicate: has x.i a known value?
func (leq *LinEqSolver) IsSolved(i int) bool {
	_, ok := leq.solved[i]
	return ok
}

// Value returns the value of a solved variable x.i. If x.i is not determined
// by the system (yet), ErrUnderdetermined is returned.
func (leq *LinEqSolver) Value(i int) (float64, error) {
	p, ok := leq.solved[i]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnderdetermined, leq.VarString(i))
	}
	return p.GetConstantValue(), nil
}

// VarString returns a readable variable name for an internal variable.
// Uses a VariableResolver, if present.
func (leq *LinEqSolver) VarString(i int) string {
	return TraceStringVar(i, leq.varresolver)
}

// PolynString outputs a polynomial as string. Uses VariableResolver, if present.
func (leq *LinEqSolver) PolynString(p Polynomial) string {
	return p.TraceString(leq.varresolver)
}

// === Utilities =============================================================

// Dump is a debugging helper to dump all known equations to the equations tracer.
func (leq *LinEqSolver) Dump() {
	T().Debugf("----------------------------------------------------------------------")
	T().Debugf("Dependents:                                                        LEQ")
	forEachEquationAscending(leq.dependents, func(k int, p Polynomial) { // for every x.i = p[x.i]
		T().Debugf("\t%s = %s", leq.VarString(k), leq.PolynString(p))
	})
	T().Debugf("Solved:")
	forEachEquationAscending(leq.solved, func(k int, p Polynomial) { // for every x.i = { c }
		T().Debugf("\t%s = %g", leq.VarString(k), p.GetConstantValue())
	})
	T().Debugf("----------------------------------------------------------------------")
}
