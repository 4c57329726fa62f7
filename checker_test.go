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

package tntc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tntc/construct"
	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/modes"
	"github.com/wdamron/tntc/types"
)

func check(t *testing.T, opts []Option, modules ...*ir.Module) *Result {
	t.Helper()
	for _, m := range modules {
		t.Logf("module %s:\n%s", m.Name, moduleString(m))
	}
	return Check(modules, astutil.Resolve(modules...), opts...)
}

func TestCheckAssignments(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	setX := b.App("assign", b.Name("x"), b.Int(5))
	copyY := b.App("assign", b.Name("x"), b.Name("y"))
	a1 := b.Def(ir.QualifierAction, "a1", setX)
	a2 := b.Def(ir.QualifierAction, "a2", copyY)
	res := check(t, nil, b.Module("m", x, y, a1, a2))

	require.True(t, res.OK(), dumpErrors(res.Errors))
	assert.Equal(t, "Update['x']", effects.EffectString(res.Effects[setX.ID]))
	assert.Equal(t, "Read['y'] & Update['x']", effects.EffectString(res.Effects[copyY.ID]))
	assert.Equal(t, "bool", types.SchemeString(res.TypeSchemes[a2.ID]))
	assert.Equal(t, modes.StatusOK, res.Verdicts[a1.ID].Status)
	assert.Equal(t, modes.StatusOK, res.Verdicts[a2.ID].Status)
}

func TestActionDeclaredAsValIsRejected(t *testing.T) {
	b := construct.NewBuilder()
	x, y := b.Var("x", types.Int), b.Var("y", types.Int)
	all := b.App("actionAll", b.App("assign", b.Name("x"), b.Int(1)), b.App("assign", b.Name("y"), b.Int(2)))
	step := b.Def(ir.QualifierVal, "step", all)
	res := check(t, nil, b.Module("m", x, y, step))

	assert.Equal(t, "Update['x', 'y']", effects.EffectString(res.Effects[all.ID]))
	v := res.Verdicts[step.ID]
	assert.Equal(t, modes.StatusMismatch, v.Status)
	assert.Equal(t, ir.QualifierVal, v.Declared)
	assert.Equal(t, ir.QualifierAction, v.Required)

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.QualifierMismatch, res.Errors[0].Code)
	assert.Equal(t, []ir.ID{step.ID}, res.Errors[0].Refs)
}

func TestPureIncrementIsPuredef(t *testing.T) {
	b := construct.NewBuilder()
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x"}, b.App("iadd", b.Name("x"), b.Int(1)))
	res := check(t, nil, b.Module("m", f))

	require.True(t, res.OK(), dumpErrors(res.Errors))
	assert.Equal(t, "(int) => int", types.SchemeString(res.TypeSchemes[f.ID]))
	eff, ok := effects.ResultOf(res.EffectSchemes[f.ID].Effect).(*effects.Concrete)
	require.True(t, ok)
	assert.False(t, eff.Entities().HasStateVars(), effects.EffectString(eff))
	v := res.Verdicts[f.ID]
	assert.Equal(t, modes.StatusOK, v.Status)
	assert.Equal(t, ir.QualifierPureDef, v.Required)
}

func TestNondetWithoutUpdateIsRejected(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	choice := b.Def(ir.QualifierNondet, "v", b.App("oneOf", b.App("Set", b.Int(1), b.Int(2))))
	step := b.Def(ir.QualifierAction, "step", b.Let(choice, b.App("igt", b.Name("v"), b.Name("x"))))
	res := check(t, nil, b.Module("m", x, step))

	require.Contains(t, res.TypeSchemes, step.ID, "the definition type-checks")
	assert.Equal(t, modes.StatusMismatch, res.Verdicts[choice.ID].Status)
	assert.Equal(t, modes.StatusMismatch, res.Verdicts[step.ID].Status)
	assert.NotEmpty(t, res.Errors.WithCode(errtree.QualifierMismatch).Referencing(choice.ID))
}

func TestNondetWithUpdateIsAccepted(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	choice := b.Def(ir.QualifierNondet, "v", b.App("oneOf", b.App("Set", b.Int(1), b.Int(2))))
	step := b.Def(ir.QualifierAction, "step", b.Let(choice, b.App("assign", b.Name("x"), b.Name("v"))))
	res := check(t, nil, b.Module("m", x, step))

	require.True(t, res.OK(), dumpErrors(res.Errors))
	assert.Equal(t, modes.StatusOK, res.Verdicts[choice.ID].Status)
	assert.Equal(t, modes.StatusOK, res.Verdicts[step.ID].Status)
}

func TestTemporalProperties(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	inv := b.Def(ir.QualifierVal, "inv", b.App("igte", b.Name("x"), b.Int(0)))
	prop := b.Def(ir.QualifierTemporal, "prop", b.App("always", b.Name("inv")))
	notTemporal := b.Def(ir.QualifierTemporal, "notTemporal", b.App("igte", b.Name("x"), b.Int(0)))
	undeclared := b.Def(ir.QualifierVal, "undeclared", b.App("eventually", b.Name("inv")))
	res := check(t, nil, b.Module("m", x, inv, prop, notTemporal, undeclared))

	assert.Equal(t, "Temporal['x', *]", effects.SchemeString(res.EffectSchemes[prop.ID]))
	assert.Equal(t, modes.StatusOK, res.Verdicts[inv.ID].Status)
	assert.Equal(t, modes.StatusOK, res.Verdicts[prop.ID].Status)
	assert.Equal(t, modes.StatusMismatch, res.Verdicts[notTemporal.ID].Status)
	assert.Equal(t, modes.StatusMismatch, res.Verdicts[undeclared.ID].Status)
	assert.Equal(t, ir.QualifierTemporal, res.Verdicts[undeclared.ID].Required)
	assert.Len(t, res.Errors, 2, dumpErrors(res.Errors))
}

func TestDiagnosticsOfSeveralPassesAreDeduplicated(t *testing.T) {
	b := construct.NewBuilder()
	occ := b.Name("nowhere")
	v := b.Def(ir.QualifierVal, "v", occ)
	res := check(t, nil, b.Module("m", v))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.UnboundName, res.Errors[0].Code)
	assert.Equal(t, modes.StatusSkipped, res.Verdicts[v.ID].Status)
}

func TestDistinctDiagnosticsAtOneNodeAreKept(t *testing.T) {
	a := errtree.New(errtree.TypeMismatch, "expected int, found str", 4, 7)
	same := errtree.New(errtree.TypeMismatch, "expected int, found str", 4, 7)
	other := errtree.New(errtree.TypeMismatch, "expected bool, found int", 4, 7)

	assert.Equal(t, diagnosticKey(a), diagnosticKey(same))
	assert.NotEqual(t, diagnosticKey(a), diagnosticKey(other))
	assert.NotEqual(t, diagnosticKey(a), diagnosticKey(errtree.New(errtree.TypeMismatch, a.Message, 4)))
}

func TestCheckWithPolicy(t *testing.T) {
	policy, err := modes.ParsePolicy([]byte("requires_update: [action]\n"), "policy.yaml")
	require.NoError(t, err)

	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	run := b.Def(ir.QualifierRun, "run", b.App("igt", b.Name("x"), b.Int(0)))
	res := check(t, []Option{WithPolicy(policy)}, b.Module("m", x, run))

	require.True(t, res.OK(), dumpErrors(res.Errors))
	assert.Equal(t, modes.StatusOK, res.Verdicts[run.ID].Status)

	res = check(t, nil, b.Module("m", x, run))
	assert.Equal(t, modes.StatusMismatch, res.Verdicts[run.ID].Status)
}

func TestCheckImportedDefinitions(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	incr := b.Def(ir.QualifierAction, "incr", b.App("assign", b.Name("x"), b.App("iadd", b.Name("x"), b.Int(1))))
	lib := b.Module("lib", x, incr)
	step := b.Def(ir.QualifierAction, "step", b.App("actionAny", b.Name("incr"), b.App("assign", b.Name("x"), b.Int(0))))
	main := b.Module("main", step)
	res := check(t, nil, lib, main)

	require.True(t, res.OK(), dumpErrors(res.Errors))
	assert.Equal(t, "Read['x'] & Update['x']", effects.SchemeString(res.EffectSchemes[step.ID]))
	assert.Equal(t, modes.StatusOK, res.Verdicts[step.ID].Status)
}
