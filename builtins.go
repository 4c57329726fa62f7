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
	"sort"

	"github.com/wdamron/tntc/construct"
	"github.com/wdamron/tntc/types"
)

// Variables within builtin signatures use negative ids, so they never collide with allocated
// variables. Signatures are instantiated with fresh variables at each use.
var (
	ta = construct.TVar(-1)
	tb = construct.TVar(-2)
)

var (
	tBool = types.Bool
	tInt  = types.Int
	tStr  = types.Str
)

func builtin(t types.Type) types.Scheme {
	vars := types.FreeVars(t).Slice()
	sort.Ints(vars)
	return types.Scheme{Vars: vars, Type: t}
}

// Signatures of builtin operators with a fixed number of parameters. Operators with a variable
// number of arguments, or whose types depend on literal arguments, are inferred structurally.
var builtinSignatures = map[string]types.Scheme{
	// booleans
	"eq":      builtin(construct.TOper2(ta, ta, tBool)),
	"neq":     builtin(construct.TOper2(ta, ta, tBool)),
	"iff":     builtin(construct.TOper2(tBool, tBool, tBool)),
	"implies": builtin(construct.TOper2(tBool, tBool, tBool)),
	"not":     builtin(construct.TOper1(tBool, tBool)),
	"ite":     builtin(construct.TOper3(tBool, ta, ta, ta)),

	// sets
	"exists":     builtin(construct.TOper2(construct.TSet(ta), construct.TOper1(ta, tBool), tBool)),
	"forall":     builtin(construct.TOper2(construct.TSet(ta), construct.TOper1(ta, tBool), tBool)),
	"in":         builtin(construct.TOper2(ta, construct.TSet(ta), tBool)),
	"contains":   builtin(construct.TOper2(construct.TSet(ta), ta, tBool)),
	"notin":      builtin(construct.TOper2(ta, construct.TSet(ta), tBool)),
	"union":      builtin(construct.TOper2(construct.TSet(ta), construct.TSet(ta), construct.TSet(ta))),
	"intersect":  builtin(construct.TOper2(construct.TSet(ta), construct.TSet(ta), construct.TSet(ta))),
	"exclude":    builtin(construct.TOper2(construct.TSet(ta), construct.TSet(ta), construct.TSet(ta))),
	"subseteq":   builtin(construct.TOper2(construct.TSet(ta), construct.TSet(ta), tBool)),
	"filter":     builtin(construct.TOper2(construct.TSet(ta), construct.TOper1(ta, tBool), construct.TSet(ta))),
	"map":        builtin(construct.TOper2(construct.TSet(ta), construct.TOper1(ta, tb), construct.TSet(tb))),
	"fold":       builtin(construct.TOper3(construct.TSet(ta), tb, construct.TOper2(tb, ta, tb), tb)),
	"powerset":   builtin(construct.TOper1(construct.TSet(ta), construct.TSet(construct.TSet(ta)))),
	"flatten":    builtin(construct.TOper1(construct.TSet(construct.TSet(ta)), construct.TSet(ta))),
	"allLists":   builtin(construct.TOper1(construct.TSet(ta), construct.TSet(construct.TList(ta)))),
	"chooseSome": builtin(construct.TOper1(construct.TSet(ta), ta)),
	"oneOf":      builtin(construct.TOper1(construct.TSet(ta), ta)),
	"isFinite":   builtin(construct.TOper1(construct.TSet(ta), tBool)),
	"size":       builtin(construct.TOper1(construct.TSet(ta), tInt)),
	"to":         builtin(construct.TOper2(tInt, tInt, construct.TSet(tInt))),

	// maps
	"get":       builtin(construct.TOper2(construct.TFunc(ta, tb), ta, tb)),
	"keys":      builtin(construct.TOper1(construct.TFunc(ta, tb), construct.TSet(ta))),
	"mapBy":     builtin(construct.TOper2(construct.TSet(ta), construct.TOper1(ta, tb), construct.TFunc(ta, tb))),
	"setToMap":  builtin(construct.TOper1(construct.TSet(construct.TTuple(ta, tb)), construct.TFunc(ta, tb))),
	"setOfMaps": builtin(construct.TOper2(construct.TSet(ta), construct.TSet(tb), construct.TSet(construct.TFunc(ta, tb)))),
	"set":       builtin(construct.TOper3(construct.TFunc(ta, tb), ta, tb, construct.TFunc(ta, tb))),
	"put":       builtin(construct.TOper3(construct.TFunc(ta, tb), ta, tb, construct.TFunc(ta, tb))),
	"setBy":     builtin(construct.TOper3(construct.TFunc(ta, tb), ta, construct.TOper1(tb, tb), construct.TFunc(ta, tb))),

	// lists
	"append":    builtin(construct.TOper2(construct.TList(ta), ta, construct.TList(ta))),
	"concat":    builtin(construct.TOper2(construct.TList(ta), construct.TList(ta), construct.TList(ta))),
	"head":      builtin(construct.TOper1(construct.TList(ta), ta)),
	"tail":      builtin(construct.TOper1(construct.TList(ta), construct.TList(ta))),
	"length":    builtin(construct.TOper1(construct.TList(ta), tInt)),
	"nth":       builtin(construct.TOper2(construct.TList(ta), tInt, ta)),
	"indices":   builtin(construct.TOper1(construct.TList(ta), construct.TSet(tInt))),
	"replaceAt": builtin(construct.TOper3(construct.TList(ta), tInt, ta, construct.TList(ta))),
	"slice":     builtin(construct.TOper3(construct.TList(ta), tInt, tInt, construct.TList(ta))),
	"range":     builtin(construct.TOper2(tInt, tInt, construct.TList(tInt))),
	"select":    builtin(construct.TOper2(construct.TList(ta), construct.TOper1(ta, tBool), construct.TList(ta))),
	"foldl":     builtin(construct.TOper3(construct.TList(ta), tb, construct.TOper2(tb, ta, tb), tb)),
	"foldr":     builtin(construct.TOper3(construct.TList(ta), tb, construct.TOper2(ta, tb, tb), tb)),

	// integers
	"iadd":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"isub":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"imul":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"idiv":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"imod":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"ipow":    builtin(construct.TOper2(tInt, tInt, tInt)),
	"iuminus": builtin(construct.TOper1(tInt, tInt)),
	"ilt":     builtin(construct.TOper2(tInt, tInt, tBool)),
	"igt":     builtin(construct.TOper2(tInt, tInt, tBool)),
	"ilte":    builtin(construct.TOper2(tInt, tInt, tBool)),
	"igte":    builtin(construct.TOper2(tInt, tInt, tBool)),

	// temporal
	"always":     builtin(construct.TOper1(tBool, tBool)),
	"eventually": builtin(construct.TOper1(tBool, tBool)),
	"next":       builtin(construct.TOper1(ta, ta)),
	"enabled":    builtin(construct.TOper1(tBool, tBool)),
	"weakFair":   builtin(construct.TOper2(tBool, ta, tBool)),
	"strongFair": builtin(construct.TOper2(tBool, ta, tBool)),
	"orKeep":     builtin(construct.TOper2(tBool, ta, tBool)),
	"mustChange": builtin(construct.TOper2(tBool, ta, tBool)),
	"leadsTo":    builtin(construct.TOper2(tBool, tBool, tBool)),
	"guarantees": builtin(construct.TOper2(tBool, tBool, tBool)),

	// actions
	"assign":    builtin(construct.TOper2(ta, ta, tBool)),
	"then":      builtin(construct.TOper2(tBool, tBool, tBool)),
	"reps":      builtin(construct.TOper2(tInt, construct.TOper1(tInt, tBool), tBool)),
	"fail":      builtin(construct.TOper1(tBool, tBool)),
	"assert":    builtin(construct.TOper1(tBool, tBool)),
	"unchanged": builtin(construct.TOper1(ta, tBool)),
}

// Types of builtin names which are not operators.
var builtinValues = map[string]types.Type{
	"Bool": construct.TSet(tBool),
	"Int":  construct.TSet(tInt),
	"Nat":  construct.TSet(tInt),
}

// Builtin operators which accept any number of arguments, or whose types depend on literal
// arguments. Their types are inferred by inferStructural.
var structuralBuiltins = map[string]bool{
	"Set":        true,
	"List":       true,
	"Tup":        true,
	"Rec":        true,
	"Map":        true,
	"and":        true,
	"or":         true,
	"actionAll":  true,
	"actionAny":  true,
	"field":      true,
	"with":       true,
	"item":       true,
	"fieldNames": true,
	"tuples":     true,
}

// IsBuiltin reports whether name is a builtin operator or value.
func IsBuiltin(name string) bool {
	if _, ok := builtinSignatures[name]; ok {
		return true
	}
	if _, ok := builtinValues[name]; ok {
		return true
	}
	return structuralBuiltins[name]
}
