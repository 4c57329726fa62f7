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

package construct

import (
	"math/big"

	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// Types

// Create a new type-variable with the given id.
func TVar(id int) *types.Var {
	return types.NewVar(id)
}

// Named type-variable, as written within annotations: `a`
func TNamed(name string) *types.Var {
	return &types.Var{Name: name}
}

// Type constant: `int`, `bool`, `PROC`, etc
func TConst(name string) *types.Const {
	return &types.Const{Name: name}
}

// Set type: `Set[int]`
func TSet(elem types.Type) *types.Set {
	return &types.Set{Elem: elem}
}

// List type: `List[int]`
func TList(elem types.Type) *types.List {
	return &types.List{Elem: elem}
}

// Function type: `int -> str`
func TFunc(arg, result types.Type) *types.Func {
	return &types.Func{Arg: arg, Result: result}
}

// Tuple type: `(int, str)`
func TTuple(elems ...types.Type) *types.Tuple {
	return &types.Tuple{Elems: elems}
}

// Operator type: `(int, int) => int`
func TOper(params []types.Type, result types.Type) *types.Oper {
	return &types.Oper{Params: params, Result: result}
}

// Operator type: `(int) => int`
func TOper1(param, result types.Type) *types.Oper {
	return &types.Oper{Params: []types.Type{param}, Result: result}
}

// Operator type: `(int, int) => int`
func TOper2(param1, param2, result types.Type) *types.Oper {
	return &types.Oper{Params: []types.Type{param1, param2}, Result: result}
}

// Operator type: `(int, int, int) => int`
func TOper3(param1, param2, param3, result types.Type) *types.Oper {
	return &types.Oper{Params: []types.Type{param1, param2, param3}, Result: result}
}

// Closed record type: `{ a: int, b: str }`
func TRecord(fields map[string]types.Type) *types.Record {
	return &types.Record{Row: types.NewRow(types.NewFlatFieldMap(fields), nil)}
}

// Open record type: `{ a: int, b: str | r }`
func TOpenRecord(fields map[string]types.Type, tail *types.Var) *types.Record {
	return &types.Record{Row: types.NewRow(types.NewFlatFieldMap(fields), tail)}
}

// Row of fields, closed when tail is nil
func TRow(fields map[string]types.Type, tail types.Type) *types.Row {
	return types.NewRow(types.NewFlatFieldMap(fields), tail)
}

// Union of records: `| { tag: "a", x: int } | { tag: "b" }`
func TUnion(tag string, records ...types.UnionRecord) *types.Union {
	return &types.Union{Tag: tag, Records: records}
}

// Case within a union of records
func TCase(tagValue string, fields map[string]types.Type) types.UnionRecord {
	return types.UnionRecord{TagValue: tagValue, Row: types.NewRow(types.NewFlatFieldMap(fields), nil)}
}

// Effects

// Effect-variable
func EVar(id int) *effects.Var {
	return &effects.Var{Id: id}
}

// Pure effect: `Pure`
func EPure() *effects.Concrete {
	return effects.Pure()
}

// Read effect over state variables: `Read['x', 'y']`
func ERead(vars ...string) *effects.Concrete {
	return &effects.Concrete{Reads: Entities(vars...)}
}

// Update effect over state variables: `Update['x']`
func EUpdate(vars ...string) *effects.Concrete {
	return &effects.Concrete{Updates: Entities(vars...)}
}

// Temporal effect of a temporal operator over state variables: `Temporal['x', *]`
func ETemporal(vars ...string) *effects.Concrete {
	return &effects.Concrete{Temporal: Entities(vars...).Union(effects.TemporalOperator)}
}

// Concrete effect with each component: `Read[r] & Update[u] & Temporal[t]`
func EConcrete(reads, updates, temporal effects.Entities) *effects.Concrete {
	return &effects.Concrete{Reads: reads, Updates: updates, Temporal: temporal}
}

// Operator effect: `(Read[r]) => Read[r]`
func EArrow(params []effects.Effect, result effects.Effect) *effects.Arrow {
	return &effects.Arrow{Params: params, Result: result}
}

// Set of state variables, referenced by name only
func Entities(vars ...string) effects.Entities {
	svs := make([]effects.StateVar, len(vars))
	for i, name := range vars {
		svs[i] = effects.StateVar{Name: name}
	}
	return effects.StateVars(svs...)
}

// Expressions and definitions:

// Builder allocates unique ids for the expressions and definitions it creates.
type Builder struct {
	next ir.ID
}

// Create a builder. The first allocated id is 1.
func NewBuilder() *Builder { return &Builder{next: 1} }

// NextID allocates a fresh id.
func (b *Builder) NextID() ir.ID {
	id := b.next
	b.next++
	return id
}

// Name reference: `x`
func (b *Builder) Name(name string) *ir.Name {
	return &ir.Name{ID: b.NextID(), Name: name}
}

// Boolean literal
func (b *Builder) Bool(v bool) *ir.Bool {
	return &ir.Bool{ID: b.NextID(), Value: v}
}

// Integer literal
func (b *Builder) Int(v int64) *ir.Int {
	return &ir.Int{ID: b.NextID(), Value: big.NewInt(v)}
}

// Integer literal of unbounded precision
func (b *Builder) BigInt(v *big.Int) *ir.Int {
	return &ir.Int{ID: b.NextID(), Value: v}
}

// String literal
func (b *Builder) Str(v string) *ir.Str {
	return &ir.Str{ID: b.NextID(), Value: v}
}

// Application: `f(x, y)`
func (b *Builder) App(opcode string, args ...ir.Expr) *ir.App {
	return &ir.App{ID: b.NextID(), Opcode: opcode, Args: args}
}

// Abstraction: `(x, y) => body`
func (b *Builder) Lambda(params []string, q ir.Qualifier, body ir.Expr) *ir.Lambda {
	ps := make([]ir.Param, len(params))
	for i, name := range params {
		ps[i] = ir.Param{ID: b.NextID(), Name: name}
	}
	return &ir.Lambda{ID: b.NextID(), Params: ps, Qualifier: q, Body: body}
}

// Nested definition: `val a = 1 { body }`
func (b *Builder) Let(def *ir.OpDef, body ir.Expr) *ir.Let {
	return &ir.Let{ID: b.NextID(), Def: def, Body: body}
}

// Operator definition: `def f = e`
func (b *Builder) Def(q ir.Qualifier, name string, expr ir.Expr) *ir.OpDef {
	return &ir.OpDef{ID: b.NextID(), Name: name, Qualifier: q, Expr: expr}
}

// Parameterized operator definition: `def f(x, y) = body`
func (b *Builder) DefParams(q ir.Qualifier, name string, params []string, body ir.Expr) *ir.OpDef {
	return b.Def(q, name, b.Lambda(params, q, body))
}

// Annotated operator definition: `def f: t = e`
func (b *Builder) AnnotatedDef(q ir.Qualifier, name string, t types.Type, expr ir.Expr) *ir.OpDef {
	d := b.Def(q, name, expr)
	d.TypeAnnotation = t
	return d
}

// Constant declaration: `const N: int`
func (b *Builder) Const(name string, t types.Type) *ir.Const {
	return &ir.Const{ID: b.NextID(), Name: name, Type: t}
}

// State variable declaration: `var x: int`
func (b *Builder) Var(name string, t types.Type) *ir.Var {
	return &ir.Var{ID: b.NextID(), Name: name, Type: t}
}

// Assumption: `assume name = e`
func (b *Builder) Assume(name string, e ir.Expr) *ir.Assume {
	return &ir.Assume{ID: b.NextID(), Name: name, Assumption: e}
}

// Type alias, or uninterpreted type when t is nil: `type T = t`
func (b *Builder) TypeDef(name string, t types.Type) *ir.TypeDef {
	return &ir.TypeDef{ID: b.NextID(), Name: name, Type: t}
}

// Module: `module name { defs }`
func (b *Builder) Module(name string, defs ...ir.Def) *ir.Module {
	return &ir.Module{ID: b.NextID(), Name: name, Defs: defs}
}
