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

// Package ir contains the intermediate tree consumed by the checker: expressions, definitions
// and modules, each carrying a unique identifier.
package ir

import (
	"math/big"

	"github.com/wdamron/tntc/types"
)

// ID uniquely identifies an expression, definition, lambda parameter or module. All inference
// results and diagnostics are keyed by ID.
type ID uint64

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// ExprID returns the unique identifier of the expression.
	ExprID() ID
}

var (
	_ Expr = (*Name)(nil)
	_ Expr = (*Bool)(nil)
	_ Expr = (*Int)(nil)
	_ Expr = (*Str)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Let)(nil)
)

// Reference to a variable, constant, parameter, definition or builtin: `x`
type Name struct {
	ID   ID
	Name string
}

// "Name"
func (e *Name) ExprName() string { return "Name" }
func (e *Name) ExprID() ID       { return e.ID }

// Boolean literal: `true`
type Bool struct {
	ID    ID
	Value bool
}

// "Bool"
func (e *Bool) ExprName() string { return "Bool" }
func (e *Bool) ExprID() ID       { return e.ID }

// Integer literal of unbounded precision: `42`
type Int struct {
	ID    ID
	Value *big.Int
}

// "Int"
func (e *Int) ExprName() string { return "Int" }
func (e *Int) ExprID() ID       { return e.ID }

// String literal: `"abc"`
type Str struct {
	ID    ID
	Value string
}

// "Str"
func (e *Str) ExprName() string { return "Str" }
func (e *Str) ExprID() ID       { return e.ID }

// Operator application: `f(x, y)`. The opcode is either a user-defined operator (resolved through
// the lookup table by the id of the application) or a builtin.
type App struct {
	ID     ID
	Opcode string
	Args   []Expr
}

// "App"
func (e *App) ExprName() string { return "App" }
func (e *App) ExprID() ID       { return e.ID }

// Formal parameter of a lambda
type Param struct {
	ID   ID
	Name string
}

// Operator abstraction: `(x, y) => x`
type Lambda struct {
	ID        ID
	Params    []Param
	Qualifier Qualifier
	Body      Expr
}

// "Lambda"
func (e *Lambda) ExprName() string { return "Lambda" }
func (e *Lambda) ExprID() ID       { return e.ID }

// Nested definition with a continuation: `val a = 1 { a + 1 }`
type Let struct {
	ID   ID
	Def  *OpDef
	Body Expr
}

// "Let"
func (e *Let) ExprName() string { return "Let" }
func (e *Let) ExprID() ID       { return e.ID }

// Def is the base for all definitions.
type Def interface {
	// Name of the syntax-type of the definition.
	DefKind() string
	// DefID returns the unique identifier of the definition.
	DefID() ID
	// DefName returns the name bound by the definition.
	DefName() string
}

var (
	_ Def = (*OpDef)(nil)
	_ Def = (*Const)(nil)
	_ Def = (*Var)(nil)
	_ Def = (*Assume)(nil)
	_ Def = (*TypeDef)(nil)
	_ Def = (*Import)(nil)
	_ Def = (*Instance)(nil)
)

// Operator definition. A parameterized operator's Expr is a *Lambda.
type OpDef struct {
	ID        ID
	Name      string
	Qualifier Qualifier
	Expr      Expr
	// TypeAnnotation is the optional declared type. Type-variables within annotations are named
	// and carry no meaningful id; they are renamed to fresh variables during inference.
	TypeAnnotation types.Type
	Doc            string
}

func (d *OpDef) DefKind() string { return "def" }
func (d *OpDef) DefID() ID       { return d.ID }
func (d *OpDef) DefName() string { return d.Name }

// IsParameterized reports whether the definition's expression is a lambda.
func (d *OpDef) IsParameterized() bool {
	_, ok := d.Expr.(*Lambda)
	return ok
}

// Constant declaration: `const N: int`
type Const struct {
	ID   ID
	Name string
	Type types.Type
}

func (d *Const) DefKind() string { return "const" }
func (d *Const) DefID() ID       { return d.ID }
func (d *Const) DefName() string { return d.Name }

// State variable declaration: `var x: int`
type Var struct {
	ID   ID
	Name string
	Type types.Type
}

func (d *Var) DefKind() string { return "var" }
func (d *Var) DefID() ID       { return d.ID }
func (d *Var) DefName() string { return d.Name }

// Assumption over constants: `assume _ = N > 0`
type Assume struct {
	ID         ID
	Name       string
	Assumption Expr
}

func (d *Assume) DefKind() string { return "assume" }
func (d *Assume) DefID() ID       { return d.ID }
func (d *Assume) DefName() string { return d.Name }

// Type alias (Type != nil) or uninterpreted type (Type == nil): `type PROC`
type TypeDef struct {
	ID   ID
	Name string
	Type types.Type
}

func (d *TypeDef) DefKind() string { return "typedef" }
func (d *TypeDef) DefID() ID       { return d.ID }
func (d *TypeDef) DefName() string { return d.Name }

// Import of a module's names. Imports are resolved upstream and ignored by the checker.
type Import struct {
	ID   ID
	Name string
	Path string
}

func (d *Import) DefKind() string { return "import" }
func (d *Import) DefID() ID       { return d.ID }
func (d *Import) DefName() string { return d.Name }

// Override of a constant or variable within an instance
type Override struct {
	Name string
	Expr Expr
}

// Module instance. Instances are flattened upstream and ignored by the checker.
type Instance struct {
	ID               ID
	Name             string
	ProtoName        string
	Overrides        []Override
	IdentityOverride bool
}

func (d *Instance) DefKind() string { return "instance" }
func (d *Instance) DefID() ID       { return d.ID }
func (d *Instance) DefName() string { return d.Name }

// Module of definitions
type Module struct {
	ID   ID
	Name string
	Defs []Def
}

// Lookup a top-level definition by name.
func (m *Module) Lookup(name string) (Def, bool) {
	for _, d := range m.Defs {
		if d.DefName() == name {
			return d, true
		}
	}
	return nil, false
}
