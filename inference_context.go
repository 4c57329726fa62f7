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
	"go.uber.org/zap"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/internal/typeutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/modes"
	"github.com/wdamron/tntc/types"
)

// TypeResult contains the types inferred for a module.
type TypeResult struct {
	// Resolved type of each expression, by id
	Types map[ir.ID]types.Type
	// Scheme of each definition (top-level or nested) whose type was inferred, by id
	Schemes map[ir.ID]types.Scheme
	Errors  errtree.List
}

// Option configures an inference context.
type Option func(*Context)

// WithLogger sets the logger of the context. By default, nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(ti *Context) {
		if logger != nil {
			ti.logger = logger
		}
	}
}

// WithPolicy sets the mode policy used by Check. By default, modes.DefaultPolicy is used.
func WithPolicy(policy *modes.Policy) Option {
	return func(ti *Context) { ti.policy = policy }
}

// Context is a reusable context for type inference.
//
// A context cannot be used concurrently.
type Context struct {
	logger     *zap.Logger
	policy     *modes.Policy
	varTracker typeutil.VarTracker
	env        *TypeEnv
	table      ir.LookupTable

	// substitution accumulated while inferring the current top-level definition
	sub types.Subst
	// expressions inferred since the substitution was last applied
	pending []ir.ID
	// nested definitions whose schemes were recorded since the substitution was last applied
	nested []ir.ID
	// definitions whose types could not be inferred
	failed map[ir.ID]bool
	// describes the top-level definition being inferred
	location string

	result *TypeResult
}

// Create a new type-inference context. A context may be reused for inference.
func NewContext(opts ...Option) *Context {
	ti := &Context{logger: zap.NewNop(), env: NewTypeEnv(), failed: make(map[ir.ID]bool)}
	for _, opt := range opts {
		opt(ti)
	}
	return ti
}

// Reset discards the declarations of previously inferred modules.
func (ti *Context) Reset() {
	ti.env.Reset()
	ti.varTracker.Reset()
	for k := range ti.failed {
		delete(ti.failed, k)
	}
}

func (ti *Context) reset(table ir.LookupTable) {
	ti.table, ti.sub, ti.pending, ti.nested = table, types.EmptySubst(), ti.pending[:0], ti.nested[:0]
	ti.location = ""
	ti.result = &TypeResult{Types: make(map[ir.ID]types.Type), Schemes: make(map[ir.ID]types.Scheme)}
}

func (ti *Context) newVar() *types.Var { return types.NewVar(ti.varTracker.New()) }

func (ti *Context) report(err *errtree.Tree) {
	if err.Location == "" {
		err.Location = ti.location
	}
	ti.result.Errors.Add(err)
}

// record the (unresolved) type of an expression; types are resolved when the enclosing
// top-level definition is finished
func (ti *Context) record(id ir.ID, t types.Type) {
	ti.result.Types[id] = t
	ti.pending = append(ti.pending, id)
}

// finish applies the substitution to every pending type, then discards the substitution. Schemes
// of top-level definitions are closed, so later definitions never refer to its variables.
func (ti *Context) finish() {
	for _, id := range ti.pending {
		ti.result.Types[id] = ti.sub.Apply(ti.result.Types[id])
	}
	// quantified variables are never bound, so only the free variables of nested schemes change
	for _, id := range ti.nested {
		s := ti.result.Schemes[id]
		ti.result.Schemes[id] = types.Scheme{Vars: s.Vars, Type: ti.sub.Apply(s.Type)}
	}
	ti.pending, ti.nested = ti.pending[:0], ti.nested[:0]
	ti.sub = types.EmptySubst()
}

// InferModule infers the types of each expression and definition within m. Occurrences of names
// are resolved through table.
//
// Declarations of modules previously inferred by the context remain visible, so that modules
// may refer to the definitions of the modules they import; see Reset.
//
// Definitions are inferred in dependency order. Inference continues after failures; a definition
// which depends on a failed definition is not diagnosed again.
func (ti *Context) InferModule(m *ir.Module, table ir.LookupTable) *TypeResult {
	ti.reset(table)
	for _, d := range m.Defs {
		if td, ok := d.(*ir.TypeDef); ok {
			ti.env.DeclareTypeDef(td)
		}
	}
	analysis := astutil.Analyze(m, table)
	for _, comp := range analysis.Order {
		if analysis.Cyclic[comp[0].DefID()] {
			ti.reportCycle(comp)
			continue
		}
		for _, d := range comp {
			ti.location = "inferring type of " + d.DefKind() + " " + d.DefName()
			ti.inferTopLevel(d)
			ti.finish()
		}
	}
	result := ti.result
	ti.result = nil
	ti.logger.Debug("inferred module types",
		zap.String("module", m.Name),
		zap.Int("schemes", len(result.Schemes)),
		zap.Int("errors", result.Errors.Len()))
	return result
}

func (ti *Context) reportCycle(comp []ir.Def) {
	refs := make([]ir.ID, len(comp))
	names := ""
	for i, d := range comp {
		refs[i] = d.DefID()
		ti.failed[d.DefID()] = true
		if i > 0 {
			names += ", "
		}
		names += d.DefName()
	}
	ti.report(errtree.New(errtree.CyclicDef, "recursive definitions are not supported: "+names, refs...).
		At("ordering definitions"))
}

func (ti *Context) inferTopLevel(d ir.Def) {
	switch d := d.(type) {
	case *ir.OpDef:
		t, ok := ti.inferOpDef(d)
		if !ok {
			ti.failed[d.ID] = true
			return
		}
		s := ti.generalize(t, nil)
		ti.env.Declare(d.ID, s)
		ti.result.Schemes[d.ID] = s
		ti.logger.Debug("inferred definition type",
			zap.String("def", d.Name),
			zap.Uint64("id", uint64(d.ID)),
			zap.String("scheme", types.SchemeString(s)))

	case *ir.Const:
		ti.declareAnnotated(d.ID, d.Name, d.Type)

	case *ir.Var:
		ti.declareAnnotated(d.ID, d.Name, d.Type)

	case *ir.Assume:
		t, ok := ti.infer(d.Assumption)
		if !ok {
			return
		}
		if err := ti.unify(types.Bool, t, d.Assumption.ExprID()); err != nil {
			ti.report(errtree.Wrap(err, "assumption "+d.Name+" must be a boolean", d.ID).At("checking assume " + d.Name))
		}

	case *ir.TypeDef:
		if d.Type == nil {
			return
		}
		if _, err := ti.newAnnotationResolver(d.ID).resolve(d.Type); err != nil {
			ti.failed[d.ID] = true
			ti.report(err.At("checking type " + d.Name))
		}

	default:
		// imports and instances are resolved upstream
		ti.logger.Debug("skipping definition", zap.String("kind", d.DefKind()), zap.String("def", d.DefName()))
	}
}

func (ti *Context) declareAnnotated(id ir.ID, name string, annotation types.Type) {
	t, err := ti.newAnnotationResolver(id).resolve(annotation)
	if err != nil {
		ti.failed[id] = true
		ti.report(err.At("checking declaration of " + name))
		return
	}
	s := ti.generalize(t, nil)
	ti.env.Declare(id, s)
	ti.result.Schemes[id] = s
}
