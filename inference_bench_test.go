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

package tntc_test

import (
	"strconv"
	"testing"

	. "github.com/wdamron/tntc"

	"github.com/wdamron/tntc/construct"
	"github.com/wdamron/tntc/internal/astutil"
	"github.com/wdamron/tntc/ir"
	"github.com/wdamron/tntc/types"
)

// chainModule builds a module of n definitions, each applying the previous one through a
// polymorphic identity and a record projection.
func chainModule(n int) *ir.Module {
	b := construct.NewBuilder()
	defs := []ir.Def{
		b.Var("x", types.Int),
		b.DefParams(ir.QualifierPureDef, "id", []string{"v"}, b.Name("v")),
		b.DefParams(ir.QualifierPureDef, "getA", []string{"r"}, b.App("field", b.Name("r"), b.Str("a"))),
		b.Def(ir.QualifierVal, "d0", b.Name("x")),
	}
	for i := 1; i < n; i++ {
		prev := "d" + strconv.Itoa(i-1)
		defs = append(defs, b.Def(ir.QualifierVal, "d"+strconv.Itoa(i),
			b.App("iadd",
				b.App("id", b.Name(prev)),
				b.App("getA", b.App("Rec", b.Str("a"), b.Name(prev), b.Str("b"), b.Bool(true))))))
	}
	return b.Module("chain", defs...)
}

func BenchmarkInferModule(b *testing.B) {
	m := chainModule(64)
	table := astutil.Resolve(m)
	ctx := NewContext()

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ctx.Reset()
		res := ctx.InferModule(m, table)
		if !res.Errors.Empty() {
			b.Fatal(res.Errors[0].String())
		}
	}
}

func BenchmarkCheck(b *testing.B) {
	m := chainModule(64)
	modules := []*ir.Module{m}
	table := astutil.Resolve(m)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		res := Check(modules, table)
		if !res.OK() {
			b.Fatal(res.Errors[0].String())
		}
	}
}
