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

// Package modes checks the declared qualifier of each operator definition against the qualifier
// required by its inferred effect.
package modes

import (
	"go.uber.org/zap"

	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
)

// Status is the outcome of checking one definition.
type Status uint8

const (
	StatusOK Status = iota
	StatusMismatch
	// The effect of the definition could not be inferred.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMismatch:
		return "mismatch"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Verdict is the outcome of checking one definition.
type Verdict struct {
	Def      ir.ID
	Name     string
	Declared ir.Qualifier
	// Minimal qualifier required by the effect of the definition
	Required ir.Qualifier
	Status   Status
	Reason   string
}

// Result contains the verdicts for the operator definitions of a module, including nested
// definitions.
type Result struct {
	Verdicts map[ir.ID]Verdict
	Errors   errtree.List
}

// Checker classifies definitions by their effects.
type Checker struct {
	policy *Policy
	logger *zap.Logger
}

// NewChecker creates a checker for policy. A nil policy selects DefaultPolicy.
func NewChecker(policy *Policy) *Checker {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Checker{policy: policy, logger: zap.NewNop()}
}

// WithLogger sets the logger of the checker.
func (c *Checker) WithLogger(logger *zap.Logger) *Checker {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Check the operator definitions of m against the effects inferred for m.
func (c *Checker) Check(m *ir.Module, inferred *effects.Result) *Result {
	result := &Result{Verdicts: make(map[ir.ID]Verdict)}
	for _, d := range m.Defs {
		od, ok := d.(*ir.OpDef)
		if !ok {
			continue
		}
		c.checkDef(result, od, inferred)
		ir.WalkExpr(od.Expr, func(e ir.Expr) {
			let, ok := e.(*ir.Let)
			switch {
			case !ok:
			case let.Def.Qualifier == ir.QualifierNondet:
				c.checkNondet(result, let, inferred)
			default:
				c.checkDef(result, let.Def, inferred)
			}
		})
	}
	c.logger.Debug("checked module modes",
		zap.String("module", m.Name),
		zap.Int("verdicts", len(result.Verdicts)),
		zap.Int("errors", result.Errors.Len()))
	return result
}

// required returns the minimal qualifier of a definition with the given effect. Only concrete
// entities count; entity-variables are resolved where the definition is applied.
func required(eff *effects.Concrete, parameterized bool) ir.Qualifier {
	switch {
	case eff.Temporal.HasConcrete():
		return ir.QualifierTemporal
	case eff.Updates.HasStateVars():
		return ir.QualifierAction
	case eff.Reads.HasStateVars():
		if parameterized {
			return ir.QualifierDef
		}
		return ir.QualifierVal
	case parameterized:
		return ir.QualifierPureDef
	}
	return ir.QualifierPureVal
}

// resultEffect returns the effect of evaluating a definition with the given effect. Effects
// which remain variables are pure.
func resultEffect(eff effects.Effect) *effects.Concrete {
	if con, ok := effects.ResultOf(eff).(*effects.Concrete); ok {
		return con
	}
	return effects.Pure()
}

func (c *Checker) appliesActionOperator(e ir.Expr) bool {
	found := false
	ir.WalkExpr(e, func(e ir.Expr) {
		if app, ok := e.(*ir.App); ok && c.policy.IsActionOperator(app.Opcode) {
			found = true
		}
	})
	return found
}

func (c *Checker) checkDef(result *Result, d *ir.OpDef, inferred *effects.Result) {
	v := Verdict{Def: d.ID, Name: d.Name, Declared: d.Qualifier}
	scheme, ok := inferred.Schemes[d.ID]
	if !ok {
		v.Status, v.Reason = StatusSkipped, "the effect of "+d.Name+" was not inferred"
		result.Verdicts[d.ID] = v
		return
	}
	eff := resultEffect(scheme.Effect)
	v.Required = required(eff, d.IsParameterized())

	switch {
	case !c.policy.Leq(v.Required, d.Qualifier):
		v.Status = StatusMismatch
		v.Reason = d.Qualifier.String() + " " + d.Name + " has effect " + effects.EffectString(eff) +
			", which requires at least " + v.Required.String()
	case c.policy.IsRequiringUpdate(d.Qualifier) && !eff.Updates.HasStateVars() && !c.appliesActionOperator(d.Expr):
		v.Status = StatusMismatch
		v.Reason = d.Qualifier.String() + " " + d.Name + " never updates a state variable"
	case c.policy.IsRequiringTemporal(d.Qualifier) && !eff.Temporal.HasConcrete():
		v.Status = StatusMismatch
		v.Reason = d.Qualifier.String() + " " + d.Name + " contains no temporal operator"
	default:
		v.Status = StatusOK
	}
	c.record(result, v)
}

// checkNondet checks a nondeterministic choice bound by let: the value chosen must be neither
// temporal nor updating, and the continuation must meet the requirements of nondet.
func (c *Checker) checkNondet(result *Result, let *ir.Let, inferred *effects.Result) {
	d := let.Def
	v := Verdict{Def: d.ID, Name: d.Name, Declared: d.Qualifier}
	valueEff, valueOk := inferred.Effects[d.Expr.ExprID()]
	bodyEff, bodyOk := inferred.Effects[let.Body.ExprID()]
	if !valueOk || !bodyOk {
		v.Status, v.Reason = StatusSkipped, "the effect of "+d.Name+" was not inferred"
		result.Verdicts[d.ID] = v
		return
	}
	value, body := resultEffect(valueEff), resultEffect(bodyEff)
	v.Required = required(value, false)

	switch {
	case value.Temporal.HasConcrete():
		v.Status = StatusMismatch
		v.Reason = "nondet " + d.Name + " chooses from a temporal value " + effects.EffectString(value)
	case value.Updates.HasStateVars():
		v.Status = StatusMismatch
		v.Reason = "nondet " + d.Name + " chooses from a value which updates state: " + effects.EffectString(value)
	case c.policy.IsRequiringUpdate(d.Qualifier) && !body.Updates.HasStateVars() && !c.appliesActionOperator(let.Body):
		v.Status = StatusMismatch
		v.Reason = "the scope of nondet " + d.Name + " never updates a state variable"
		v.Required = required(body, false)
	default:
		v.Status = StatusOK
	}
	c.record(result, v)
}

func (c *Checker) record(result *Result, v Verdict) {
	result.Verdicts[v.Def] = v
	if v.Status != StatusMismatch {
		return
	}
	err := errtree.Newf(errtree.QualifierMismatch, []ir.ID{v.Def},
		"%s is declared %s, but its minimal qualifier is %s", v.Name, v.Declared, v.Required)
	err.Children = []*errtree.Tree{errtree.New(errtree.QualifierMismatch, v.Reason, v.Def)}
	result.Errors.Add(err.At("checking the mode of " + v.Name))
	c.logger.Debug("qualifier mismatch",
		zap.String("def", v.Name),
		zap.Uint64("id", uint64(v.Def)),
		zap.Stringer("declared", v.Declared),
		zap.Stringer("required", v.Required))
}
