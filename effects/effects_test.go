// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package effects_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tntc/construct"
	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

func dumpErrors(errs errtree.List) string {
	var sb strings.Builder
	for _, err := range errs {
		sb.WriteString(err.String())
	}
	return sb.String()
}

func infer(t *testing.T, m *ir.Module) *effects.Result {
	t.Helper()
	return effects.NewContext().InferModule(m, astutil.Resolve(m))
}

func requireScheme(t *testing.T, res *effects.Result, d ir.Def, expected string) {
	t.Helper()
	s, ok := res.Schemes[d.DefID()]
	require.True(t, ok, "no scheme for %s:\n%s", d.DefName(), dumpErrors(res.Errors))
	assert.Equal(t, expected, effects.SchemeString(s), "effect of %s", d.DefName())
}

func TestStateVariablesAreRead(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	n := b.Const("N", types.Int)
	v := b.Def(ir.QualifierVal, "v", b.App("iadd", b.Name("x"), b.Name("N")))
	lit := b.Def(ir.QualifierPureVal, "lit", b.App("Set", b.Int(1), b.Int(2)))
	res := infer(t, b.Module("m", x, n, v, lit))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, x, "Read['x']")
	requireScheme(t, res, n, "Pure")
	requireScheme(t, res, v, "Read['x']")
	requireScheme(t, res, lit, "Pure")
}

func TestAssignment(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	lit := b.App("assign", b.Name("x"), b.Int(5))
	cp := b.App("assign", b.Name("x"), b.Name("y"))
	inc := b.App("assign", b.Name("x"), b.App("iadd", b.Name("x"), b.Int(1)))
	a := b.Def(ir.QualifierAction, "a", b.App("actionAll", lit, cp, inc))
	res := infer(t, b.Module("m", x, y, a))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	assert.Equal(t, "Update['x']", effects.EffectString(res.Effects[lit.ID]))
	assert.Equal(t, "Read['y'] & Update['x']", effects.EffectString(res.Effects[cp.ID]))
	assert.Equal(t, "Read['x'] & Update['x']", effects.EffectString(res.Effects[inc.ID]))
	requireScheme(t, res, a, "Read['x', 'y'] & Update['x']")
}

func TestActionCombinatorsUnionBranches(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	both := b.Def(ir.QualifierAction, "both", b.App("actionAll",
		b.App("assign", b.Name("x"), b.Int(1)),
		b.App("assign", b.Name("y"), b.Int(2))))
	either := b.Def(ir.QualifierAction, "either", b.App("actionAny",
		b.App("assign", b.Name("x"), b.Int(1)),
		b.App("igt", b.Name("y"), b.Int(0))))
	res := infer(t, b.Module("m", x, y, both, either))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, both, "Update['x', 'y']")
	requireScheme(t, res, either, "Read['y'] & Update['x']")
}

func TestConnectivesArePureIffArgumentsArePure(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	pure := b.Def(ir.QualifierPureVal, "pure", b.App("and", b.Bool(true), b.App("not", b.Bool(false))))
	reads := b.Def(ir.QualifierVal, "reads", b.App("or", b.Bool(true), b.App("igt", b.Name("x"), b.Int(0))))
	acts := b.Def(ir.QualifierAction, "acts", b.App("and", b.App("igt", b.Name("x"), b.Int(0)), b.App("assign", b.Name("x"), b.Int(0))))
	res := infer(t, b.Module("m", x, pure, reads, acts))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, pure, "Pure")
	requireScheme(t, res, reads, "Read['x']")
	requireScheme(t, res, acts, "Read['x'] & Update['x']")
}

func TestTemporalOperators(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	inv := b.Def(ir.QualifierVal, "inv", b.App("igte", b.Name("x"), b.Int(0)))
	alw := b.Def(ir.QualifierTemporal, "alw", b.App("always", b.Name("inv")))
	step := b.Def(ir.QualifierAction, "step", b.App("assign", b.Name("x"), b.Int(1)))
	fair := b.Def(ir.QualifierTemporal, "fair", b.App("weakFair", b.Name("step"), b.Name("x")))
	en := b.Def(ir.QualifierTemporal, "en", b.App("enabled", b.Name("step")))
	res := infer(t, b.Module("m", x, inv, alw, step, fair, en))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, alw, "Temporal['x', *]")
	requireScheme(t, res, fair, "Temporal['x', *]")
	requireScheme(t, res, en, "Temporal['x', *]")
}

func TestTemporalOperatorsWithoutStateVariables(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	alw := b.Def(ir.QualifierTemporal, "alw", b.App("always", b.Bool(true)))
	ev := b.Def(ir.QualifierTemporal, "ev", b.App("eventually", b.Name("alw")))
	both := b.Def(ir.QualifierTemporal, "both", b.App("and",
		b.App("igt", b.Name("x"), b.Int(0)), b.App("always", b.Bool(false))))
	res := infer(t, b.Module("m", x, alw, ev, both))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, alw, "Temporal[*]")
	requireScheme(t, res, ev, "Temporal[*]")
	requireScheme(t, res, both, "Read['x'] & Temporal[*]")
}

func TestUnifyConcreteEntitiesWithOpenSets(t *testing.T) {
	x, y := effects.StateVar{Name: "x"}, effects.StateVar{Name: "y"}
	mixed := &effects.Concrete{Reads: effects.NewEntities([]effects.StateVar{x}, []int{1})}
	concrete := &effects.Concrete{Reads: effects.StateVars(y)}

	s, err := effects.Unify(effects.EmptySubstitution(), mixed, concrete)
	require.Nil(t, err)
	bound, ok := s.Entities.Lookup(1)
	require.True(t, ok, "v1 is unbound")
	assert.Equal(t, "'y'", bound.String())
	assert.Equal(t, "Read['x', 'y']", effects.EffectString(s.Apply(mixed)))

	// both sides open: each side absorbs the other's state variables
	other := &effects.Concrete{Reads: effects.NewEntities([]effects.StateVar{y}, []int{2})}
	s, err = effects.Unify(effects.EmptySubstitution(), mixed, other)
	require.Nil(t, err)
	assert.Equal(t, effects.EffectString(s.Apply(mixed)), effects.EffectString(s.Apply(other)))
	assert.Equal(t, "Read['x', 'y']", effects.EffectString(s.Apply(other)))

	// the temporal mark is concrete: an empty set cannot absorb it
	_, err = effects.Unify(effects.EmptySubstitution(), effects.Pure(), &effects.Concrete{Temporal: effects.TemporalOperator})
	require.NotNil(t, err)
	assert.Equal(t, errtree.EffectMismatch, err.Code)
}

func TestTemporalArgumentToAssignmentIsRejected(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Bool)
	arg := b.App("always", b.App("eq", b.Name("x"), b.Bool(true)))
	bad := b.Def(ir.QualifierAction, "bad", b.App("assign", b.Name("x"), arg))
	res := infer(t, b.Module("m", x, bad))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	err := res.Errors[0]
	assert.Equal(t, errtree.EffectMismatch, err.Code)
	require.Len(t, err.Children, 1)
	assert.Equal(t, []ir.ID{arg.ID}, err.Children[0].Refs)
	assert.NotContains(t, res.Schemes, bad.ID)
}

func TestQuantifierCallbacksArePure(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	s := b.Var("s", construct.TSet(types.Int))
	ex := b.Def(ir.QualifierVal, "ex", b.App("exists", b.Name("s"),
		b.Lambda([]string{"i"}, ir.QualifierDef, b.App("igt", b.Name("i"), b.Name("x")))))
	pick := b.Def(ir.QualifierAction, "pick", b.App("exists", b.App("to", b.Int(1), b.Int(3)),
		b.Lambda([]string{"i"}, ir.QualifierAction, b.App("assign", b.Name("x"), b.Name("i")))))
	mapped := b.Def(ir.QualifierVal, "mapped", b.App("map", b.Name("s"),
		b.Lambda([]string{"i"}, ir.QualifierDef, b.App("iadd", b.Name("i"), b.Int(1)))))
	res := infer(t, b.Module("m", x, s, ex, pick, mapped))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, ex, "Read['s', 'x']")
	requireScheme(t, res, pick, "Update['x']")
	requireScheme(t, res, mapped, "Read['s']")
}

func TestFoldCallbacksArePure(t *testing.T) {
	b := construct.NewBuilder()
	x, s := b.Var("x", types.Int), b.Var("s", construct.TSet(types.Int))
	sum := b.Def(ir.QualifierVal, "sum", b.App("foldl", b.Name("s"), b.Name("x"),
		b.Lambda([]string{"acc", "i"}, ir.QualifierDef, b.App("iadd", b.Name("acc"), b.Name("i")))))
	res := infer(t, b.Module("m", x, s, sum))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, sum, "Read['s', 'x']")
}

func TestOperatorDefinitionsAreGeneralized(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	put := b.DefParams(ir.QualifierAction, "put", []string{"v"}, b.App("assign", b.Name("x"), b.Name("v")))
	a1 := b.Def(ir.QualifierAction, "a1", b.App("put", b.Int(1)))
	a2 := b.Def(ir.QualifierAction, "a2", b.App("put", b.Name("y")))
	res := infer(t, b.Module("m", x, y, put, a1, a2))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, put, "forall v0 . (Read[v0]) => Read[v0] & Update['x']")
	// instantiating at one use does not constrain the other
	requireScheme(t, res, a1, "Update['x']")
	requireScheme(t, res, a2, "Read['y'] & Update['x']")
}

func TestHigherOrderParameters(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	apply := b.DefParams(ir.QualifierDef, "apply", []string{"f", "v"}, b.App("f", b.Name("v")))
	res1 := b.Def(ir.QualifierVal, "r1", b.App("apply",
		b.Lambda([]string{"a"}, ir.QualifierDef, b.App("iadd", b.Name("a"), b.Name("x"))), b.Int(1)))
	res := infer(t, b.Module("m", x, apply, res1))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, apply, "forall e0, e1 . ((e0) => e1, e0) => e1")
	requireScheme(t, res, res1, "Read['x']")
}

func TestNondetBindsMonomorphically(t *testing.T) {
	b := construct.NewBuilder()
	x, s := b.Var("x", types.Int), b.Var("s", construct.TSet(types.Int))
	choice := b.Def(ir.QualifierNondet, "v", b.App("oneOf", b.Name("s")))
	body := b.App("assign", b.Name("x"), b.Name("v"))
	step := b.Def(ir.QualifierAction, "step", b.Let(choice, body))
	res := infer(t, b.Module("m", x, s, step))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, choice, "Read['s']")
	assert.Equal(t, "Read['s'] & Update['x']", effects.EffectString(res.Effects[body.ID]))
	requireScheme(t, res, step, "Read['s'] & Update['x']")
}

func TestNestedDefinitionsAreGeneralized(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	put := b.DefParams(ir.QualifierAction, "put", []string{"v"}, b.App("assign", b.Name("x"), b.Name("v")))
	step := b.Def(ir.QualifierAction, "step", b.Let(put,
		b.App("actionAny", b.App("put", b.Int(0)), b.App("put", b.Name("y")))))
	res := infer(t, b.Module("m", x, y, step))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, put, "forall v0 . (Read[v0]) => Read[v0] & Update['x']")
	requireScheme(t, res, step, "Read['y'] & Update['x']")
}

func TestFailedDefinitionsAreSkippedSilently(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	f := b.DefParams(ir.QualifierDef, "f", []string{"v"}, b.App("g", b.Name("v")))
	g := b.DefParams(ir.QualifierDef, "g", []string{"v"}, b.App("f", b.Name("v")))
	h := b.Def(ir.QualifierVal, "h", b.App("iadd", b.App("f", b.Name("x")), b.Int(1)))
	res := infer(t, b.Module("m", x, f, g, h))

	assert.Empty(t, res.Errors, dumpErrors(res.Errors))
	assert.NotContains(t, res.Schemes, f.ID)
	assert.NotContains(t, res.Schemes, h.ID)
}

func TestExpressionEffectsAreResolved(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	f := b.DefParams(ir.QualifierDef, "f", []string{"v"}, b.App("iadd", b.Name("v"), b.Name("x")))
	a := b.Def(ir.QualifierAction, "a", b.App("assign", b.Name("x"), b.App("f", b.Int(1))))
	res := infer(t, b.Module("m", x, f, a))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	assert.Equal(t, "Read['x'] & Update['x']", effects.EffectString(res.Effects[a.Expr.ExprID()]))
	for id, e := range res.Effects {
		if _, ok := e.(*effects.Var); ok {
			t.Errorf("effect of #%d is unresolved: %s", id, spew.Sdump(e))
		}
	}
}
