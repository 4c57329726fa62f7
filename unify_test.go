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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tntc/construct"
	"github.com/wdamron/tntc/errtree"
	"github.com/wdamron/tntc/types"
)

func newTestUnifier() *unifier {
	next := 100
	return &unifier{fresh: func() *types.Var {
		next++
		return types.NewVar(next)
	}, refs: nil}
}

// unifyTypes unifies a with b and returns both sides with the unifier applied.
func unifyTypes(t *testing.T, a, b types.Type) (string, string) {
	t.Helper()
	s, err := newTestUnifier().unify(a, b)
	require.Nil(t, err, "%v", err)
	return types.TypeString(s.Apply(a)), types.TypeString(s.Apply(b))
}

func TestUnifyVariables(t *testing.T) {
	a, b := unifyTypes(t, construct.TVar(0), construct.TSet(types.Int))
	assert.Equal(t, "Set[int]", a)
	assert.Equal(t, a, b)

	a, b = unifyTypes(t,
		construct.TOper2(construct.TVar(0), construct.TVar(1), construct.TVar(0)),
		construct.TOper2(types.Int, construct.TVar(0), construct.TVar(1)))
	assert.Equal(t, "(int, int) => int", a)
	assert.Equal(t, a, b)
}

func TestUnifyOpenRowsMissingEachOthersFields(t *testing.T) {
	a, b := unifyTypes(t,
		construct.TOpenRecord(map[string]types.Type{"a": types.Int}, construct.TVar(1)),
		construct.TOpenRecord(map[string]types.Type{"b": types.Str}, construct.TVar(2)))
	// both tails are extended with a shared fresh tail
	assert.Equal(t, "{ a: int, b: str | 'a }", a)
	assert.Equal(t, a, b)
}

func TestUnifyOpenRowWithClosedRow(t *testing.T) {
	a, b := unifyTypes(t,
		construct.TOpenRecord(map[string]types.Type{"a": construct.TVar(0)}, construct.TVar(1)),
		construct.TRecord(map[string]types.Type{"a": types.Int, "b": types.Bool}))
	assert.Equal(t, "{ a: int, b: bool }", a)
	assert.Equal(t, a, b)

	a, b = unifyTypes(t,
		construct.TOpenRecord(map[string]types.Type{"a": types.Int}, construct.TVar(1)),
		construct.TRecord(map[string]types.Type{"a": types.Int}))
	assert.Equal(t, "{ a: int }", a)
	assert.Equal(t, a, b)
}

func TestUnifyClosedRowsRequireEqualFields(t *testing.T) {
	_, err := newTestUnifier().unify(
		construct.TRecord(map[string]types.Type{"a": types.Int}),
		construct.TRecord(map[string]types.Type{"a": types.Int, "b": types.Str}))
	require.NotNil(t, err)
	assert.Equal(t, errtree.RowMismatch, err.Code)
	assert.Equal(t, "record { a: int } lacks fields b", err.Message)
}

func TestUnifyRowsSharingTail(t *testing.T) {
	_, err := newTestUnifier().unify(
		construct.TOpenRecord(map[string]types.Type{"a": types.Int}, construct.TVar(1)),
		construct.TOpenRecord(map[string]types.Type{"b": types.Int}, construct.TVar(1)))
	require.NotNil(t, err)
	assert.Equal(t, errtree.RowMismatch, err.Code)
}

func TestUnifyFieldMismatch(t *testing.T) {
	_, err := newTestUnifier().unify(
		construct.TRecord(map[string]types.Type{"a": types.Int}),
		construct.TRecord(map[string]types.Type{"a": types.Str}))
	require.NotNil(t, err)
	assert.Equal(t, errtree.TypeMismatch, err.Code)
	assert.Equal(t, "mismatch in field a", err.Message)
	require.Len(t, err.Children, 1)
	assert.Equal(t, "expected int, found str", err.Children[0].Message)
}

func TestUnifyOccursCheck(t *testing.T) {
	_, err := newTestUnifier().unify(construct.TVar(0), construct.TList(construct.TVar(0)))
	require.NotNil(t, err)
	assert.Equal(t, errtree.InfiniteType, err.Code)
	assert.Equal(t, "type variable 'a occurs in List['a]", err.Message)
}

func TestUnifyArity(t *testing.T) {
	u := newTestUnifier()
	_, err := u.unify(construct.TTuple(types.Int, types.Int), construct.TTuple(types.Int))
	require.NotNil(t, err)
	assert.Equal(t, errtree.ArityMismatch, err.Code)

	_, err = u.unify(construct.TOper1(types.Int, types.Int), construct.TOper2(types.Int, types.Int, types.Int))
	require.NotNil(t, err)
	assert.Equal(t, errtree.ArityMismatch, err.Code)

	_, err = u.unify(construct.TOper2(types.Int, types.Int, types.Int), construct.TOper2(types.Int, types.Str, types.Int))
	require.NotNil(t, err)
	assert.Equal(t, errtree.TypeMismatch, err.Code)
	assert.Equal(t, "mismatch in operator parameter 2", err.Message)

	_, err = u.unify(construct.TTuple(types.Int, types.Bool), construct.TTuple(types.Int, types.Int))
	require.NotNil(t, err)
	assert.Equal(t, "mismatch in tuple element 2", err.Message)
}

func TestUnifyUnions(t *testing.T) {
	a := construct.TUnion("tag",
		construct.TCase("a", map[string]types.Type{"x": construct.TVar(0)}),
		construct.TCase("b", map[string]types.Type{"y": types.Str}))
	b := construct.TUnion("tag",
		construct.TCase("b", map[string]types.Type{"y": types.Str}),
		construct.TCase("a", map[string]types.Type{"x": types.Int}))
	s, err := newTestUnifier().unify(a, b)
	require.Nil(t, err, "%v", err)
	assert.Equal(t, `| { tag: "a", x: int } | { tag: "b", y: str }`, types.TypeString(s.Apply(a)))

	c := construct.TUnion("tag",
		construct.TCase("a", map[string]types.Type{"x": types.Int}),
		construct.TCase("c", map[string]types.Type{"y": types.Str}))
	_, err = newTestUnifier().unify(a, c)
	require.NotNil(t, err)
	assert.Equal(t, `union lacks the case "b"`, err.Message)

	_, err = newTestUnifier().unify(a, construct.TUnion("kind", a.Records...))
	require.NotNil(t, err)
	assert.Equal(t, errtree.TypeMismatch, err.Code)
}

func TestUnifyConstants(t *testing.T) {
	_, err := newTestUnifier().unify(construct.TConst("PROC"), construct.TConst("PROC"))
	assert.Nil(t, err)
	_, err = newTestUnifier().unify(construct.TConst("PROC"), types.Int)
	require.NotNil(t, err)
	assert.Equal(t, "expected PROC, found int", err.Message)
	_, err = newTestUnifier().unify(construct.TSet(types.Int), construct.TList(types.Int))
	require.NotNil(t, err)
	assert.Equal(t, errtree.TypeMismatch, err.Code)
}
