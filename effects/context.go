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

package effects

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/internal/typeutil"
	"github.com/wdamron/tntc/ir"
)

// Result contains the effects inferred for a module.
type Result struct {
	// Resolved effect of each expression, by id
	Effects map[ir.ID]Effect
	// Scheme of each definition (top-level or nested) whose effect was inferred, by id
	Schemes map[ir.ID]Scheme
	Errors  errtree.List
}

// Option configures an inference context.
type Option func(*Context)

// WithLogger sets the logger of the context. By default, nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Context is a reusable context for effect inference.
//
// A context cannot be used concurrently.
type Context struct {
	logger     *zap.Logger
	varTracker typeutil.VarTracker
	env        *typeutil.Env[Scheme]
	table      ir.LookupTable

	sub      Substitution
	pending  []ir.ID
	nested   []ir.ID
	failed   map[ir.ID]bool
	location string

	result *Result
}

// NewContext creates a new effect-inference context.
func NewContext(opts ...Option) *Context {
	c := &Context{logger: zap.NewNop(), env: typeutil.NewEnv[Scheme](), failed: make(map[ir.ID]bool)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset discards the declarations of previously inferred modules.
func (c *Context) Reset() {
	c.env.Reset()
	c.varTracker.Reset()
	for k := range c.failed {
		delete(c.failed, k)
	}
}

func (c *Context) reset(table ir.LookupTable) {
	c.table, c.sub = table, EmptySubstitution()
	c.pending, c.nested, c.location = c.pending[:0], c.nested[:0], ""
	c.result = &Result{Effects: make(map[ir.ID]Effect), Schemes: make(map[ir.ID]Scheme)}
}

func (c *Context) newVar() *Var { return &Var{Id: c.varTracker.New()} }

func (c *Context) newEntities() Entities { return EntityVars(c.varTracker.New()) }

func (c *Context) report(err *errtree.Tree) {
	if err.Location == "" {
		err.Location = c.location
	}
	c.result.Errors.Add(err)
}

func (c *Context) record(id ir.ID, e Effect) {
	c.result.Effects[id] = e
	c.pending = append(c.pending, id)
}

// finish resolves the effects recorded while inferring a top-level definition, then discards
// the substitution.
func (c *Context) finish() {
	for _, id := range c.pending {
		c.result.Effects[id] = c.sub.Apply(c.result.Effects[id])
	}
	for _, id := range c.nested {
		s := c.result.Schemes[id]
		s.Effect = c.sub.Apply(s.Effect)
		c.result.Schemes[id] = s
	}
	c.pending, c.nested = c.pending[:0], c.nested[:0]
	c.sub = EmptySubstitution()
}

// unify expected with actual under the current substitution.
func (c *Context) unify(expected, actual Effect, refs ...ir.ID) *errtree.Tree {
	u := unifier{refs: refs}
	s, err := u.unify(c.sub, expected, actual)
	if err != nil {
		return err
	}
	c.sub = s
	return nil
}

// envFreeVars returns the variables free in the monomorphic bindings of the environment.
func (c *Context) envFreeVars() (effectVars, entityVars *set.Set[int]) {
	effectVars, entityVars = set.New[int](8), set.New[int](8)
	c.env.Monos(func(_ ir.ID, s Scheme) {
		ev, nv := c.sub.FreeVars(s.Effect)
		effectVars.InsertSet(ev)
		entityVars.InsertSet(nv)
	})
	return effectVars, entityVars
}

// generalize quantifies the variables of e which are not free in the environment. Top-level
// definitions pass nil sets.
func (c *Context) generalize(e Effect, envEffects, envEntities *set.Set[int]) Scheme {
	e = c.sub.Apply(e)
	return Scheme{
		EffectVars: typeutil.Generalize(c.sub.Effects, e, envEffects),
		EntityVars: quantifyEntities(e, envEntities),
		Effect:     e,
	}
}

func quantifyEntities(e Effect, envFree *set.Set[int]) []int {
	free := set.New[int](4)
	visitEntityVars(e, func(id int) { free.Insert(id) })
	var ids []int
	for id := range free.Items() {
		if envFree == nil || !envFree.Contains(id) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// instantiate replaces the quantified variables of s with fresh variables.
func (c *Context) instantiate(s Scheme) Effect {
	if s.IsMono() {
		return s.Effect
	}
	fresh := EmptySubstitution()
	for _, id := range s.EffectVars {
		fresh = fresh.BindEffect(id, c.newVar())
	}
	for _, id := range s.EntityVars {
		fresh = fresh.BindEntities(id, c.newEntities())
	}
	return fresh.Apply(s.Effect)
}

// InferModule infers the effect of each expression and definition within m. Occurrences of names
// are resolved through table.
//
// Declarations of modules previously inferred by the context remain visible; see Reset.
//
// Failures which are also detected by type inference (unknown names, recursion) are not
// reported again; definitions which depend on them are left without an effect.
func (c *Context) InferModule(m *ir.Module, table ir.LookupTable) *Result {
	c.reset(table)
	analysis := astutil.Analyze(m, table)
	for _, comp := range analysis.Order {
		if analysis.Cyclic[comp[0].DefID()] {
			for _, d := range comp {
				c.failed[d.DefID()] = true
			}
			continue
		}
		for _, d := range comp {
			c.location = "inferring effect of " + d.DefKind() + " " + d.DefName()
			c.inferTopLevel(d)
			c.finish()
		}
	}
	result := c.result
	c.result = nil
	c.logger.Debug("inferred module effects",
		zap.String("module", m.Name),
		zap.Int("schemes", len(result.Schemes)),
		zap.Int("errors", result.Errors.Len()))
	return result
}

func (c *Context) inferTopLevel(d ir.Def) {
	switch d := d.(type) {
	case *ir.OpDef:
		e, ok := c.infer(d.Expr)
		if !ok {
			c.failed[d.ID] = true
			return
		}
		s := c.generalize(e, nil, nil)
		c.env.Assign(d.ID, s)
		c.result.Schemes[d.ID] = s
		c.logger.Debug("inferred definition effect",
			zap.String("def", d.Name),
			zap.Uint64("id", uint64(d.ID)),
			zap.String("scheme", SchemeString(s)))

	case *ir.Const:
		c.result.Schemes[d.ID] = Mono(Pure())

	case *ir.Var:
		c.result.Schemes[d.ID] = Mono(&Concrete{Reads: StateVars(StateVar{Name: d.Name, Ref: d.ID})})

	case *ir.Assume:
		c.infer(d.Assumption)
	}
}
