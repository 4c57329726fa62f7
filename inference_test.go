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
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tntc/construct"
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

func inferModule(t *testing.T, m *ir.Module) *TypeResult {
	t.Helper()
	t.Logf("module:\n%s", moduleString(m))
	return NewContext().InferModule(m, astutil.Resolve(m))
}

func moduleString(m *ir.Module) string {
	var sb strings.Builder
	for _, d := range m.Defs {
		sb.WriteString(ir.DefString(d))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func requireScheme(t *testing.T, res *TypeResult, d ir.Def, expected string) {
	t.Helper()
	s, ok := res.Schemes[d.DefID()]
	require.True(t, ok, "no scheme for %s:\n%s", d.DefName(), dumpErrors(res.Errors))
	assert.Equal(t, expected, types.SchemeString(s), "scheme of %s", d.DefName())
}

func TestIncrementIsIntToInt(t *testing.T) {
	b := construct.NewBuilder()
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x"}, b.App("iadd", b.Name("x"), b.Int(1)))
	res := inferModule(t, b.Module("m", f))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, f, "(int) => int")
}

func TestPolymorphicDefinitionsInstantiateIndependently(t *testing.T) {
	b := construct.NewBuilder()
	id := b.DefParams(ir.QualifierPureDef, "id", []string{"x"}, b.Name("x"))
	a := b.Def(ir.QualifierPureVal, "a", b.App("id", b.Int(1)))
	s := b.Def(ir.QualifierPureVal, "s", b.App("id", b.Str("s")))
	pair := b.Def(ir.QualifierPureVal, "pair", b.App("Tup", b.App("id", b.Bool(true)), b.App("id", b.Int(2))))
	res := inferModule(t, b.Module("m", id, a, s, pair))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, id, "forall 'a . ('a) => 'a")
	requireScheme(t, res, a, "int")
	requireScheme(t, res, s, "str")
	requireScheme(t, res, pair, "(bool, int)")
}

func TestNestedLetIsGeneralized(t *testing.T) {
	b := construct.NewBuilder()
	h := b.DefParams(ir.QualifierPureDef, "h", []string{"z"}, b.Name("z"))
	g := b.DefParams(ir.QualifierPureDef, "g", []string{"y"},
		b.Let(h, b.App("Tup", b.App("h", b.Name("y")), b.App("h", b.Bool(true)))))
	res := inferModule(t, b.Module("m", g))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, g, "forall 'a . ('a) => ('a, bool)")
	requireScheme(t, res, h, "forall 'a . ('a) => 'a")
}

func TestLambdaParametersAreMonomorphic(t *testing.T) {
	b := construct.NewBuilder()
	// the parameter f is used at two types within the body
	g := b.DefParams(ir.QualifierPureDef, "g", []string{"f"},
		b.App("Tup", b.App("f", b.Int(1)), b.App("f", b.Str("s"))))
	res := inferModule(t, b.Module("m", g))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.TypeMismatch, res.Errors[0].Code)
	assert.NotContains(t, res.Schemes, g.ID)
}

func TestRecordFieldAccessIsRowPolymorphic(t *testing.T) {
	b := construct.NewBuilder()
	getA := b.DefParams(ir.QualifierPureDef, "getA", []string{"r"}, b.App("field", b.Name("r"), b.Str("a")))
	v := b.Def(ir.QualifierPureVal, "v",
		b.App("getA", b.App("Rec", b.Str("a"), b.Int(1), b.Str("c"), b.Str("s"))))
	w := b.Def(ir.QualifierPureVal, "w", b.App("getA", b.App("Rec", b.Str("a"), b.Bool(true))))
	res := inferModule(t, b.Module("m", getA, v, w))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, getA, "forall 'a, 'b . ({ a: 'a | 'b }) => 'a")
	requireScheme(t, res, v, "int")
	requireScheme(t, res, w, "bool")
}

func TestRecordUpdateAndFieldNames(t *testing.T) {
	b := construct.NewBuilder()
	rec := b.Def(ir.QualifierPureVal, "rec", b.App("Rec", b.Str("a"), b.Int(1), b.Str("b"), b.Str("s")))
	upd := b.Def(ir.QualifierPureVal, "upd", b.App("with", b.Name("rec"), b.Str("a"), b.Int(2)))
	names := b.Def(ir.QualifierPureVal, "names", b.App("fieldNames", b.Name("rec")))
	bad := b.Def(ir.QualifierPureVal, "bad", b.App("with", b.Name("rec"), b.Str("a"), b.Str("x")))
	res := inferModule(t, b.Module("m", rec, upd, names, bad))

	requireScheme(t, res, rec, "{ a: int, b: str }")
	requireScheme(t, res, upd, "{ a: int, b: str }")
	requireScheme(t, res, names, "Set[str]")
	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.TypeMismatch, res.Errors[0].Code)
	assert.Contains(t, res.Errors[0].AllRefs(), bad.Expr.ExprID())
}

func TestMissingFieldOfClosedRecordIsRowMismatch(t *testing.T) {
	b := construct.NewBuilder()
	v := b.Def(ir.QualifierPureVal, "v", b.App("field", b.App("Rec", b.Str("a"), b.Int(1)), b.Str("b")))
	res := inferModule(t, b.Module("m", v))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.RowMismatch, res.Errors[0].Code)
	assert.Equal(t, errtree.RowMismatch, res.Errors[0].RootCause().Code)
}

func TestDuplicateRecordField(t *testing.T) {
	b := construct.NewBuilder()
	v := b.Def(ir.QualifierPureVal, "v", b.App("Rec", b.Str("a"), b.Int(1), b.Str("a"), b.Int(2)))
	res := inferModule(t, b.Module("m", v))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.RowMismatch, res.Errors[0].Code)
}

func TestCollectionsUnifyElements(t *testing.T) {
	b := construct.NewBuilder()
	set := b.Def(ir.QualifierPureVal, "set", b.App("Set", b.Int(1), b.Int(2)))
	list := b.Def(ir.QualifierPureVal, "list", b.App("List", b.Str("a")))
	m := b.Def(ir.QualifierPureVal, "m", b.App("Map", b.App("Tup", b.Int(1), b.Str("a"))))
	empty := b.Def(ir.QualifierPureVal, "empty", b.App("Set"))
	mixed := b.Def(ir.QualifierPureVal, "mixed", b.App("Set", b.Int(1), b.Str("a")))
	res := inferModule(t, b.Module("m", set, list, m, empty, mixed))

	requireScheme(t, res, set, "Set[int]")
	requireScheme(t, res, list, "List[str]")
	requireScheme(t, res, m, "int -> str")
	requireScheme(t, res, empty, "forall 'a . Set['a]")
	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	err := res.Errors[0]
	assert.Equal(t, errtree.TypeMismatch, err.Code)
	assert.Equal(t, "application of Set failed", err.Message)
	require.Len(t, err.Children, 1)
	assert.Equal(t, "argument 2 has the wrong type", err.Children[0].Message)
}

func TestTupleItem(t *testing.T) {
	b := construct.NewBuilder()
	second := b.Def(ir.QualifierPureVal, "second", b.App("item", b.App("Tup", b.Int(1), b.Str("a")), b.Int(2)))
	outOfRange := b.Def(ir.QualifierPureVal, "outOfRange", b.App("item", b.App("Tup", b.Int(1)), b.Int(3)))
	unknown := b.DefParams(ir.QualifierPureDef, "unknown", []string{"t"}, b.App("item", b.Name("t"), b.Int(1)))
	res := inferModule(t, b.Module("m", second, outOfRange, unknown))

	requireScheme(t, res, second, "str")
	require.Len(t, res.Errors, 2, dumpErrors(res.Errors))
	assert.Equal(t, errtree.ArityMismatch, res.Errors.Referencing(outOfRange.Expr.ExprID())[0].Code)
	assert.Equal(t, errtree.Unsupported, res.Errors.Referencing(unknown.Expr.(*ir.Lambda).Body.ExprID())[0].Code)
}

func TestArityMismatchIsDistinct(t *testing.T) {
	b := construct.NewBuilder()
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x", "y"}, b.Name("x"))
	v := b.Def(ir.QualifierPureVal, "v", b.App("f", b.Int(1)))
	w := b.Def(ir.QualifierPureVal, "w", b.App("iadd", b.Int(1)))
	res := inferModule(t, b.Module("m", f, v, w))

	require.Len(t, res.Errors, 2, dumpErrors(res.Errors))
	for _, err := range res.Errors {
		assert.Equal(t, errtree.ArityMismatch, err.Code, err.String())
	}
}

func TestArgumentMismatchIsNested(t *testing.T) {
	b := construct.NewBuilder()
	arg := b.Str("s")
	app := b.App("iadd", b.Int(1), arg)
	v := b.Def(ir.QualifierPureVal, "v", app)
	res := inferModule(t, b.Module("m", v))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	err := res.Errors[0]
	assert.Equal(t, errtree.TypeMismatch, err.Code)
	assert.Equal(t, []ir.ID{app.ID}, err.Refs)
	assert.Equal(t, "inferring type of def v", err.Location)
	require.Len(t, err.Children, 1)
	assert.Equal(t, []ir.ID{arg.ID}, err.Children[0].Refs)
	assert.Equal(t, "expected int, found str", err.RootCause().Message)
}

func TestFailuresDoNotCascade(t *testing.T) {
	b := construct.NewBuilder()
	a := b.Def(ir.QualifierPureVal, "a", b.App("iadd", b.Int(1), b.Str("s")))
	c := b.Def(ir.QualifierPureVal, "c", b.App("iadd", b.Name("a"), b.App("imul", b.Name("a"), b.Int(2))))
	d := b.Def(ir.QualifierPureVal, "d", b.App("not", b.Int(3)))
	res := inferModule(t, b.Module("m", a, c, d))

	require.Len(t, res.Errors, 2, dumpErrors(res.Errors))
	assert.NotContains(t, res.Schemes, a.ID)
	assert.NotContains(t, res.Schemes, c.ID)
	assert.NotContains(t, res.Schemes, d.ID)
	assert.Empty(t, res.Errors.Referencing(c.Expr.ExprID()))
}

func TestUnboundName(t *testing.T) {
	b := construct.NewBuilder()
	occ := b.Name("nowhere")
	v := b.Def(ir.QualifierPureVal, "v", b.App("iadd", occ, b.Int(1)))
	res := inferModule(t, b.Module("m", v))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.UnboundName, res.Errors[0].Code)
	assert.Equal(t, []ir.ID{occ.ID}, res.Errors[0].Refs)
}

func TestSelfApplicationIsInfinite(t *testing.T) {
	b := construct.NewBuilder()
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x"}, b.App("x", b.Name("x")))
	res := inferModule(t, b.Module("m", f))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.InfiniteType, res.Errors[0].Code)
}

func TestDefinitionsAreInferredInDependencyOrder(t *testing.T) {
	b := construct.NewBuilder()
	later := b.Def(ir.QualifierPureVal, "later", b.App("iadd", b.Name("first"), b.Int(1)))
	first := b.Def(ir.QualifierPureVal, "first", b.Int(1))
	res := inferModule(t, b.Module("m", later, first))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, later, "int")
}

func TestRecursiveDefinitionsAreCyclic(t *testing.T) {
	b := construct.NewBuilder()
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x"}, b.App("g", b.Name("x")))
	g := b.DefParams(ir.QualifierPureDef, "g", []string{"x"}, b.App("f", b.Name("x")))
	h := b.Def(ir.QualifierPureVal, "h", b.App("f", b.Int(1)))
	res := inferModule(t, b.Module("m", f, g, h))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	err := res.Errors[0]
	assert.Equal(t, errtree.CyclicDef, err.Code)
	assert.ElementsMatch(t, []ir.ID{f.ID, g.ID}, err.Refs)
	assert.NotContains(t, res.Schemes, h.ID)
}

func TestStateAndConstantDeclarations(t *testing.T) {
	b := construct.NewBuilder()
	n := b.Const("N", types.Int)
	x := b.Var("x", construct.TSet(types.Str))
	v := b.Def(ir.QualifierVal, "v", b.App("Tup", b.Name("N"), b.Name("x")))
	res := inferModule(t, b.Module("m", n, x, v))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, v, "(int, Set[str])")
}

func TestAnnotations(t *testing.T) {
	b := construct.NewBuilder()
	tv := construct.TNamed("t")
	id := b.AnnotatedDef(ir.QualifierPureDef, "id", construct.TOper1(tv, tv), b.Lambda([]string{"x"}, ir.QualifierPureDef, b.Name("x")))
	narrow := b.AnnotatedDef(ir.QualifierPureDef, "narrow", construct.TOper1(types.Int, types.Int),
		b.Lambda([]string{"x"}, ir.QualifierPureDef, b.Name("x")))
	wrong := b.AnnotatedDef(ir.QualifierPureVal, "wrong", types.Str, b.Int(1))
	res := inferModule(t, b.Module("m", id, narrow, wrong))

	requireScheme(t, res, id, "forall 'a . ('a) => 'a")
	requireScheme(t, res, narrow, "(int) => int")
	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.TypeMismatch, res.Errors[0].Code)
	assert.Equal(t, "the type of wrong does not match its annotation", res.Errors[0].Message)
}

func TestTypeAliasesExpandWithinAnnotations(t *testing.T) {
	b := construct.NewBuilder()
	alias := b.TypeDef("Balance", types.Int)
	proc := b.TypeDef("PROC", nil)
	x := b.Var("balances", construct.TFunc(construct.TConst("PROC"), construct.TConst("Balance")))
	inc := b.DefParams(ir.QualifierDef, "inc", []string{"p"}, b.App("iadd", b.App("get", b.Name("balances"), b.Name("p")), b.Int(1)))
	bad := b.Var("bad", construct.TConst("Missing"))
	res := inferModule(t, b.Module("m", alias, proc, x, inc, bad))

	requireScheme(t, res, inc, "(PROC) => int")
	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.InvalidAnnot, res.Errors[0].Code)
}

func TestRecursiveAliasesAreCyclic(t *testing.T) {
	b := construct.NewBuilder()
	a := b.TypeDef("A", construct.TSet(construct.TConst("B")))
	bb := b.TypeDef("B", construct.TList(construct.TConst("A")))
	res := inferModule(t, b.Module("m", a, bb))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.CyclicDef, res.Errors[0].Code)
	assert.ElementsMatch(t, []ir.ID{a.ID, bb.ID}, res.Errors[0].Refs)
}

func TestAssumptionsMustBeBoolean(t *testing.T) {
	b := construct.NewBuilder()
	ok := b.Assume("ok", b.App("igt", b.Int(2), b.Int(1)))
	bad := b.Assume("bad", b.Int(1))
	res := inferModule(t, b.Module("m", ok, bad))

	require.Len(t, res.Errors, 1, dumpErrors(res.Errors))
	assert.Equal(t, errtree.TypeMismatch, res.Errors[0].Code)
	assert.Equal(t, []ir.ID{bad.ID}, res.Errors[0].Refs)
}

func TestNondetBindingIsMonomorphic(t *testing.T) {
	b := construct.NewBuilder()
	x := b.Var("x", types.Int)
	choice := b.Def(ir.QualifierNondet, "v", b.App("oneOf", b.App("Set", b.Int(1), b.Int(2))))
	step := b.Def(ir.QualifierAction, "step", b.Let(choice, b.App("assign", b.Name("x"), b.Name("v"))))
	res := inferModule(t, b.Module("m", x, step))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, step, "bool")
	requireScheme(t, res, choice, "int")
}

func TestExpressionTypesAreResolved(t *testing.T) {
	b := construct.NewBuilder()
	param := b.Name("x")
	f := b.DefParams(ir.QualifierPureDef, "f", []string{"x"}, b.App("iadd", param, b.Int(1)))
	res := inferModule(t, b.Module("m", f))

	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	assert.Equal(t, "int", types.TypeString(res.Types[param.ID]), spew.Sdump(res.Types))
	for id, ty := range res.Types {
		assert.Empty(t, types.FreeVars(ty).Slice(), "type of #%d is not resolved: %s", id, types.TypeString(ty))
	}
}

func TestContextIsReusable(t *testing.T) {
	b := construct.NewBuilder()
	id := b.DefParams(ir.QualifierPureDef, "id", []string{"x"}, b.Name("x"))
	v := b.Def(ir.QualifierPureVal, "v", b.App("id", b.Int(1)))
	m := b.Module("m", id, v)
	table := astutil.Resolve(m)

	// infer twice to ensure state is properly reset between calls
	ctx := NewContext()
	first := ctx.InferModule(m, table)
	ctx.Reset()
	second := ctx.InferModule(m, table)

	require.Empty(t, second.Errors, dumpErrors(second.Errors))
	assert.Equal(t, types.SchemeString(first.Schemes[id.ID]), types.SchemeString(second.Schemes[id.ID]))
	assert.Equal(t, types.SchemeString(first.Schemes[v.ID]), types.SchemeString(second.Schemes[v.ID]))
}

func TestLaterModulesSeeEarlierDeclarations(t *testing.T) {
	b := construct.NewBuilder()
	inc := b.DefParams(ir.QualifierPureDef, "inc", []string{"x"}, b.App("iadd", b.Name("x"), b.Int(1)))
	lib := b.Module("lib", inc)
	v := b.Def(ir.QualifierPureVal, "v", b.App("inc", b.Int(1)))
	main := b.Module("main", v)
	table := astutil.Resolve(lib, main)

	ctx := NewContext()
	require.Empty(t, ctx.InferModule(lib, table).Errors)
	res := ctx.InferModule(main, table)
	require.Empty(t, res.Errors, dumpErrors(res.Errors))
	requireScheme(t, res, v, "int")
}
