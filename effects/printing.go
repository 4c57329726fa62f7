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
	"strings"
)

// EffectString returns a string representation of an effect. Effect-variables are named
// `e0`, `e1`, ... and entity-variables `v0`, `v1`, ... in order of first appearance.
func EffectString(e Effect) string {
	p := newEffectPrinter()
	p.effect(e)
	return p.sb.String()
}

// SchemeString returns a string representation of a scheme, listing quantified variables.
func SchemeString(s Scheme) string {
	p := newEffectPrinter()
	p.effect(s.Effect)
	body := p.sb.String()
	if len(s.EffectVars) == 0 && len(s.EntityVars) == 0 {
		return body
	}
	var sb strings.Builder
	sb.WriteString("forall ")
	i := 0
	for _, id := range s.EffectVars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.effectVar(id))
		i++
	}
	for _, id := range s.EntityVars {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.entityVar(id))
		i++
	}
	sb.WriteString(" . ")
	sb.WriteString(body)
	return sb.String()
}

type effectPrinter struct {
	effectNames map[int]string
	entityNames map[int]string
	sb          strings.Builder
}

func newEffectPrinter() *effectPrinter {
	return &effectPrinter{effectNames: make(map[int]string), entityNames: make(map[int]string)}
}

func (p *effectPrinter) effectVar(id int) string {
	if name, ok := p.effectNames[id]; ok {
		return name
	}
	name := "e" + itoa(len(p.effectNames))
	p.effectNames[id] = name
	return name
}

func (p *effectPrinter) entityVar(id int) string {
	if name, ok := p.entityNames[id]; ok {
		return name
	}
	name := "v" + itoa(len(p.entityNames))
	p.entityNames[id] = name
	return name
}

func (p *effectPrinter) effect(e Effect) {
	switch e := e.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Var:
		p.sb.WriteString(p.effectVar(e.Id))

	case *Arrow:
		p.sb.WriteByte('(')
		for i, param := range e.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.effect(param)
		}
		p.sb.WriteString(") => ")
		p.effect(e.Result)

	case *Concrete:
		if e.IsPure() {
			p.sb.WriteString("Pure")
			return
		}
		n := 0
		component := func(name string, ents Entities) {
			if ents.IsEmpty() {
				return
			}
			if n > 0 {
				p.sb.WriteString(" & ")
			}
			p.sb.WriteString(name)
			p.sb.WriteByte('[')
			entitiesString(&p.sb, ents, p.entityVar)
			p.sb.WriteByte(']')
			n++
		}
		component("Read", e.Reads)
		component("Update", e.Updates)
		component("Temporal", e.Temporal)
	}
}
