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
	"strconv"

	"go.uber.org/zap"

	"github.com/wdamron/tntc/effects"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/modes"
	"github.com/wdamron/tntc/types"
)

// Result contains the results of every pass over a set of modules.
type Result struct {
	Types         map[ir.ID]types.Type
	TypeSchemes   map[ir.ID]types.Scheme
	Effects       map[ir.ID]effects.Effect
	EffectSchemes map[ir.ID]effects.Scheme
	Verdicts      map[ir.ID]modes.Verdict
	// Diagnostics of all passes, in the order they were reported. A diagnostic reported by more
	// than one pass appears once.
	Errors errtree.List
}

// OK reports whether no diagnostics were reported.
func (r *Result) OK() bool { return r.Errors.Empty() }

// Check infers the types and effects of modules, then checks the qualifier of each operator
// definition. Modules are checked in order; a module may refer to the definitions of the modules
// before it.
func Check(modules []*ir.Module, table ir.LookupTable, opts ...Option) *Result {
	ti := NewContext(opts...)
	ec := effects.NewContext(effects.WithLogger(ti.logger))
	mc := modes.NewChecker(ti.policy).WithLogger(ti.logger)

	result := &Result{
		Types:         make(map[ir.ID]types.Type),
		TypeSchemes:   make(map[ir.ID]types.Scheme),
		Effects:       make(map[ir.ID]effects.Effect),
		EffectSchemes: make(map[ir.ID]effects.Scheme),
		Verdicts:      make(map[ir.ID]modes.Verdict),
	}
	seen := make(map[string]bool)
	add := func(errs errtree.List) {
		for _, err := range errs {
			key := diagnosticKey(err)
			if seen[key] {
				continue
			}
			seen[key] = true
			result.Errors.Add(err)
		}
	}

	for _, m := range modules {
		tr := ti.InferModule(m, table)
		for id, t := range tr.Types {
			result.Types[id] = t
		}
		for id, s := range tr.Schemes {
			result.TypeSchemes[id] = s
		}
		add(tr.Errors)

		er := ec.InferModule(m, table)
		for id, e := range er.Effects {
			result.Effects[id] = e
		}
		for id, s := range er.Schemes {
			result.EffectSchemes[id] = s
		}
		add(er.Errors)

		mr := mc.Check(m, er)
		for id, v := range mr.Verdicts {
			result.Verdicts[id] = v
		}
		add(mr.Errors)

		ti.logger.Debug("checked module",
			zap.String("module", m.Name),
			zap.Uint64("id", uint64(m.ID)),
			zap.Int("errors", result.Errors.Len()))
	}
	return result
}

// diagnosticKey identifies diagnostics which report the same failure at the same nodes. Both
// inference passes report unbound names with the same message; distinct failures of one code at
// one node keep distinct keys.
func diagnosticKey(err *errtree.Tree) string {
	key := err.Code.ID
	for _, id := range err.Refs {
		key += ":" + strconv.FormatUint(uint64(id), 10)
	}
	return key + " " + err.Message
}
