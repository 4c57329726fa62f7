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
	"strconv"

	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
)

// builtinValues are builtin names which denote pure values.
var builtinValues = map[string]bool{"Bool": true, "Int": true, "Nat": true}

// infer the effect of e. When inference fails, ok is false and the failure has been reported
// (here or by type inference).
func (c *Context) infer(e ir.Expr) (eff Effect, ok bool) {
	switch e := e.(type) {
	case *ir.Bool, *ir.Int, *ir.Str:
		eff, ok = Pure(), true

	case *ir.Name:
		eff, ok = c.inferName(e)

	case *ir.App:
		eff, ok = c.inferApp(e)

	case *ir.Lambda:
		params := make([]Effect, len(e.Params))
		for i, p := range e.Params {
			v := c.newVar()
			params[i] = v
			c.env.StashMono(p.ID, Mono(v))
		}
		var body Effect
		body, ok = c.infer(e.Body)
		c.env.Unstash(len(e.Params))
		if ok {
			eff = &Arrow{Params: params, Result: body}
		}

	case *ir.Let:
		de, defOk := c.infer(e.Def.Expr)
		if defOk {
			var s Scheme
			if e.Def.Qualifier == ir.QualifierNondet {
				// the choice is fixed within the continuation
				s = Mono(de)
				c.env.StashMono(e.Def.ID, s)
			} else {
				envEffects, envEntities := c.envFreeVars()
				s = c.generalize(de, envEffects, envEntities)
				c.env.Stash(e.Def.ID, s)
			}
			c.result.Schemes[e.Def.ID] = s
			c.nested = append(c.nested, e.Def.ID)
		} else {
			c.failed[e.Def.ID] = true
		}
		eff, ok = c.infer(e.Body)
		if defOk {
			c.env.Unstash(1)
		}

	default:
		return nil, false
	}
	if !ok {
		return nil, false
	}
	c.record(e.ExprID(), eff)
	return eff, true
}

func (c *Context) inferName(e *ir.Name) (Effect, bool) {
	if b, found := c.table.Lookup(e.ID); found {
		return c.lookupBinding(e.ID, b)
	}
	if builtinValues[e.Name] {
		return Pure(), true
	}
	if arity, found := builtinArities[e.Name]; found {
		return builtinSignature(c, e.Name, arity), true
	}
	if _, found := builtinSignatures[e.Name]; found {
		return Pure(), true
	}
	c.report(errtree.New(errtree.UnboundName, "name "+e.Name+" is not declared", e.ID))
	return nil, false
}

func (c *Context) lookupBinding(occ ir.ID, b ir.Binding) (Effect, bool) {
	switch b.Kind {
	case ir.BindingVar:
		return &Concrete{Reads: StateVars(StateVar{Name: b.Name, Ref: b.ID})}, true
	case ir.BindingConst:
		return Pure(), true
	case ir.BindingTypeDef:
		return nil, false
	}
	s, found := c.env.Lookup(b.ID)
	if !found {
		if !c.failed[b.ID] {
			c.report(errtree.New(errtree.UnboundName, b.Kind.String()+" "+b.Name+" is not in scope", occ, b.ID))
		}
		return nil, false
	}
	return c.instantiate(s), true
}

func (c *Context) inferApp(e *ir.App) (Effect, bool) {
	args := make([]Effect, len(e.Args))
	argsOk := true
	for i, arg := range e.Args {
		eff, ok := c.infer(arg)
		args[i], argsOk = eff, argsOk && ok
	}

	var callee Effect
	if b, found := c.table.Lookup(e.ID); found {
		eff, ok := c.lookupBinding(e.ID, b)
		if !ok {
			return nil, false
		}
		callee = eff
	} else {
		callee = builtinSignature(c, e.Opcode, len(e.Args))
	}
	if !argsOk {
		return nil, false
	}

	switch oper := c.sub.Apply(callee).(type) {
	case *Arrow:
		if len(oper.Params) != len(args) {
			c.report(errtree.New(errtree.ArityMismatch,
				"operator "+e.Opcode+" expects "+strconv.Itoa(len(oper.Params))+" arguments, found "+strconv.Itoa(len(args)), e.ID))
			return nil, false
		}
		var children []*errtree.Tree
		for i := range args {
			argId := e.Args[i].ExprID()
			if err := c.unify(oper.Params[i], args[i], argId); err != nil {
				children = append(children, errtree.Wrap(err, "argument "+strconv.Itoa(i+1)+" has an incompatible effect", argId))
			}
		}
		if len(children) > 0 {
			c.report(&errtree.Tree{
				Code:     children[0].Code,
				Message:  "application of " + e.Opcode + " failed",
				Refs:     []ir.ID{e.ID},
				Children: children,
			})
			return nil, false
		}
		return oper.Result, true

	case *Var:
		result := c.newVar()
		if err := c.unify(oper, &Arrow{Params: args, Result: result}, e.ID); err != nil {
			c.report(errtree.Wrap(err, "application of "+e.Opcode+" failed", e.ID))
			return nil, false
		}
		return result, true

	default:
		// not an operator; reported by type inference
		return nil, false
	}
}
