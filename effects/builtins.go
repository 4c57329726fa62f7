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

// signature generates the effect of a builtin operator applied to arity arguments, with fresh
// entity-variables.
type signature func(c *Context, arity int) *Arrow

// builtinSignatures lists the operators whose effects differ from standard value operators.
// Operators not listed here (including structural builtins such as Set, Rec, and field) are
// standard.
var builtinSignatures = map[string]signature{
	"and":     connective,
	"or":      connective,
	"not":     connective,
	"implies": connective,
	"iff":     connective,
	"ite":     connective,
	"eq":      connective,
	"neq":     connective,

	"assign":    assign,
	"unchanged": unchanged,
	"actionAll": action,
	"actionAny": action,
	"then":      action,
	"fail":      action,
	"reps":      reps,

	"always":     temporalOf,
	"eventually": temporalOf,
	"enabled":    enabled,
	"weakFair":   fairness,
	"strongFair": fairness,
	"orKeep":     fairness,
	"mustChange": fairness,
	"leadsTo":    temporalUnion,
	"guarantees": temporalUnion,

	"exists": quantifier,
	"forall": quantifier,
	"map":    callback(1),
	"filter": callback(1),
	"select": callback(1),
	"mapBy":  callback(1),
	"fold":   foldSignature,
	"foldl":  foldSignature,
	"foldr":  foldSignature,
	"setBy":  setBy,
}

// builtinArities gives the arity of builtin operators which may be passed as values.
var builtinArities = map[string]int{
	"not": 1, "iuminus": 1, "always": 1, "eventually": 1, "enabled": 1,
	"size": 1, "powerset": 1, "flatten": 1, "head": 1, "tail": 1, "length": 1, "keys": 1,
	"iadd": 2, "isub": 2, "imul": 2, "idiv": 2, "imod": 2, "ipow": 2,
	"ilt": 2, "igt": 2, "ilte": 2, "igte": 2,
	"eq": 2, "neq": 2, "iff": 2, "implies": 2,
	"in": 2, "contains": 2, "notin": 2, "union": 2, "intersect": 2, "exclude": 2, "subseteq": 2,
	"append": 2, "concat": 2, "nth": 2, "get": 2, "to": 2, "range": 2,
}

// builtinSignature returns the signature of a builtin operator. Unknown operators are standard.
func builtinSignature(c *Context, name string, arity int) *Arrow {
	if sig, ok := builtinSignatures[name]; ok {
		return sig(c, arity)
	}
	return standard(c, arity)
}

// standard: (Read[r1] & Temporal[t1], ...) => Read[r1, ...] & Temporal[t1, ...]
func standard(c *Context, arity int) *Arrow {
	params, result := make([]Effect, arity), Pure()
	for i := range params {
		p := &Concrete{Reads: c.newEntities(), Temporal: c.newEntities()}
		params[i], result = p, result.Union(p)
	}
	return &Arrow{Params: params, Result: result}
}

// connective: (Read[r1] & Update[u1] & Temporal[t1], ...) => Read[r1, ...] & Update[u1, ...] & Temporal[t1, ...]
func connective(c *Context, arity int) *Arrow {
	params, result := make([]Effect, arity), Pure()
	for i := range params {
		p := &Concrete{Reads: c.newEntities(), Updates: c.newEntities(), Temporal: c.newEntities()}
		params[i], result = p, result.Union(p)
	}
	return &Arrow{Params: params, Result: result}
}

// action: (Read[r1] & Update[u1], ...) => Read[r1, ...] & Update[u1, ...]
func action(c *Context, arity int) *Arrow {
	params, result := make([]Effect, arity), Pure()
	for i := range params {
		p := &Concrete{Reads: c.newEntities(), Updates: c.newEntities()}
		params[i], result = p, result.Union(p)
	}
	return &Arrow{Params: params, Result: result}
}

// assign: (Read[r1], Read[r2]) => Read[r2] & Update[r1]
func assign(c *Context, _ int) *Arrow {
	r1, r2 := c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{&Concrete{Reads: r1}, &Concrete{Reads: r2}},
		Result: &Concrete{Reads: r2, Updates: r1},
	}
}

// unchanged: (Read[r]) => Read[r] & Update[r]
func unchanged(c *Context, _ int) *Arrow {
	r := c.newEntities()
	return &Arrow{Params: []Effect{&Concrete{Reads: r}}, Result: &Concrete{Reads: r, Updates: r}}
}

// reps: (Read[r1] & Temporal[t1], (Pure) => Read[r2] & Update[u2]) => Read[r1, r2] & Update[u2] & Temporal[t1]
func reps(c *Context, _ int) *Arrow {
	r1, t1, r2, u2 := c.newEntities(), c.newEntities(), c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{
			&Concrete{Reads: r1, Temporal: t1},
			&Arrow{Params: []Effect{Pure()}, Result: &Concrete{Reads: r2, Updates: u2}},
		},
		Result: &Concrete{Reads: r1.Union(r2), Updates: u2, Temporal: t1},
	}
}

// Temporal operators mark their results with `*`.

// always, eventually: (Read[r] & Temporal[t]) => Temporal[r, t, *]
func temporalOf(c *Context, _ int) *Arrow {
	r, t := c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{&Concrete{Reads: r, Temporal: t}},
		Result: &Concrete{Temporal: r.Union(t).Union(TemporalOperator)},
	}
}

// enabled: (Read[r] & Update[u]) => Temporal[r, u, *]
func enabled(c *Context, _ int) *Arrow {
	r, u := c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{&Concrete{Reads: r, Updates: u}},
		Result: &Concrete{Temporal: r.Union(u).Union(TemporalOperator)},
	}
}

// weakFair, strongFair, orKeep, mustChange: (Read[r] & Update[u], Read[v]) => Temporal[r, u, v, *]
func fairness(c *Context, _ int) *Arrow {
	r, u, v := c.newEntities(), c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{&Concrete{Reads: r, Updates: u}, &Concrete{Reads: v}},
		Result: &Concrete{Temporal: r.Union(u).Union(v).Union(TemporalOperator)},
	}
}

// leadsTo, guarantees: (Read[r1] & Temporal[t1], ...) => Temporal[r1, t1, ..., *]
func temporalUnion(c *Context, arity int) *Arrow {
	params, all := make([]Effect, arity), TemporalOperator
	for i := range params {
		r, t := c.newEntities(), c.newEntities()
		params[i], all = &Concrete{Reads: r, Temporal: t}, all.Union(r).Union(t)
	}
	return &Arrow{Params: params, Result: &Concrete{Temporal: all}}
}

// exists, forall:
//
//	(Read[r1] & Temporal[t1], (Pure) => Read[r2] & Update[u2] & Temporal[t2]) => Read[r1, r2] & Update[u2] & Temporal[t1, t2]
func quantifier(c *Context, _ int) *Arrow {
	r1, t1 := c.newEntities(), c.newEntities()
	r2, u2, t2 := c.newEntities(), c.newEntities(), c.newEntities()
	return &Arrow{
		Params: []Effect{
			&Concrete{Reads: r1, Temporal: t1},
			&Arrow{Params: []Effect{Pure()}, Result: &Concrete{Reads: r2, Updates: u2, Temporal: t2}},
		},
		Result: &Concrete{Reads: r1.Union(r2), Updates: u2, Temporal: t1.Union(t2)},
	}
}

// callback generates signatures of operators over a collection and a callback of n pure
// parameters:
//
//	(Read[r1] & Temporal[t1], (Pure, ...) => Read[r2] & Temporal[t2]) => Read[r1, r2] & Temporal[t1, t2]
func callback(n int) signature {
	return func(c *Context, _ int) *Arrow {
		r1, t1, r2, t2 := c.newEntities(), c.newEntities(), c.newEntities(), c.newEntities()
		return &Arrow{
			Params: []Effect{
				&Concrete{Reads: r1, Temporal: t1},
				&Arrow{Params: pureParams(n), Result: &Concrete{Reads: r2, Temporal: t2}},
			},
			Result: &Concrete{Reads: r1.Union(r2), Temporal: t1.Union(t2)},
		}
	}
}

// fold, foldl, foldr:
//
//	(Read[r1] & Temporal[t1], Read[r2] & Temporal[t2], (Pure, Pure) => Read[r3] & Temporal[t3]) => Read[r1, r2, r3] & Temporal[t1, t2, t3]
func foldSignature(c *Context, _ int) *Arrow {
	return withCallback(c, 2, 2)
}

// setBy: (Read[r1] & Temporal[t1], Read[r2] & Temporal[t2], (Pure) => Read[r3] & Temporal[t3]) => ...
func setBy(c *Context, _ int) *Arrow {
	return withCallback(c, 2, 1)
}

// withCallback generates a signature of values values followed by a callback of n pure
// parameters.
func withCallback(c *Context, values, n int) *Arrow {
	params, result := make([]Effect, values+1), Pure()
	for i := 0; i < values; i++ {
		p := &Concrete{Reads: c.newEntities(), Temporal: c.newEntities()}
		params[i], result = p, result.Union(p)
	}
	cbResult := &Concrete{Reads: c.newEntities(), Temporal: c.newEntities()}
	params[values] = &Arrow{Params: pureParams(n), Result: cbResult}
	return &Arrow{Params: params, Result: result.Union(cbResult)}
}

func pureParams(n int) []Effect {
	params := make([]Effect, n)
	for i := range params {
		params[i] = Pure()
	}
	return params
}
