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

package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/wdamron/tntc/types"
)

// File is a decoded JSON document: the flattened modules and, optionally, the lookup table
// produced by name resolution.
type File struct {
	Modules []*Module
	// Table is nil when the document does not carry a lookup table.
	Table LookupTable
}

type rawFile struct {
	Modules []json.RawMessage         `json:"modules"`
	Table   map[string]rawLookupEntry `json:"table"`
}

type rawLookupEntry struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Reference *ID    `json:"reference"`
	ID        *ID    `json:"id"`
}

type rawNode struct {
	Kind             string              `json:"kind"`
	ID               ID                  `json:"id"`
	Name             string              `json:"name"`
	Value            json.RawMessage     `json:"value"`
	Opcode           string              `json:"opcode"`
	Args             []json.RawMessage   `json:"args"`
	Params           []json.RawMessage   `json:"params"`
	Qualifier        string              `json:"qualifier"`
	Expr             json.RawMessage     `json:"expr"`
	OpDef            json.RawMessage     `json:"opdef"`
	TypeAnnotation   json.RawMessage     `json:"typeAnnotation"`
	Type             json.RawMessage     `json:"type"`
	Assumption       json.RawMessage     `json:"assumption"`
	Doc              string              `json:"doc"`
	Path             string              `json:"path"`
	ProtoName        string              `json:"protoName"`
	Overrides        [][]json.RawMessage `json:"overrides"`
	IdentityOverride bool                `json:"identityOverride"`
	Defs             []json.RawMessage   `json:"defs"`
}

// Decode reads a JSON document containing either an array of modules or an object with
// "modules" and an optional "table".
func Decode(data []byte) (*File, error) {
	data = bytes.TrimSpace(data)
	var raw rawFile
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raw.Modules); err != nil {
			return nil, fmt.Errorf("decoding modules: %w", err)
		}
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	f := &File{Modules: make([]*Module, 0, len(raw.Modules))}
	for i, rm := range raw.Modules {
		m, err := decodeModule(rm)
		if err != nil {
			return nil, fmt.Errorf("module %d: %w", i, err)
		}
		f.Modules = append(f.Modules, m)
	}
	if raw.Table != nil {
		table, err := decodeTable(raw.Table)
		if err != nil {
			return nil, err
		}
		f.Table = table
	}
	return f, nil
}

// DecodeModules reads the modules of a JSON document, ignoring any lookup table.
func DecodeModules(data []byte) ([]*Module, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return f.Modules, nil
}

func decodeTable(raw map[string]rawLookupEntry) (LookupTable, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	table := make(LookupTable, len(raw))
	for _, k := range keys {
		entry := raw[k]
		occ, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("lookup table key %q: %w", k, err)
		}
		var kind BindingKind
		switch entry.Kind {
		case "def":
			kind = BindingDef
		case "const":
			kind = BindingConst
		case "var":
			kind = BindingVar
		case "param":
			kind = BindingParam
		case "typedef", "type":
			kind = BindingTypeDef
		default:
			return nil, fmt.Errorf("lookup table entry %s: unknown kind %q", k, entry.Kind)
		}
		ref := entry.Reference
		if ref == nil {
			ref = entry.ID
		}
		if ref == nil {
			return nil, fmt.Errorf("lookup table entry %s: missing reference", k)
		}
		table[ID(occ)] = Binding{Kind: kind, Name: entry.Name, ID: *ref}
	}
	return table, nil
}

func decodeModule(data json.RawMessage) (*Module, error) {
	var n rawNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	m := &Module{ID: n.ID, Name: n.Name, Defs: make([]Def, 0, len(n.Defs))}
	for _, rd := range n.Defs {
		d, err := decodeDef(rd)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		if d != nil {
			m.Defs = append(m.Defs, d)
		}
	}
	return m, nil
}

func decodeDef(data json.RawMessage) (Def, error) {
	var n rawNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	switch n.Kind {
	case "def":
		return decodeOpDef(&n)

	case "const", "var":
		t, err := DecodeType(n.TypeAnnotation)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", n.Kind, n.Name, err)
		}
		if n.Kind == "const" {
			return &Const{ID: n.ID, Name: n.Name, Type: t}, nil
		}
		return &Var{ID: n.ID, Name: n.Name, Type: t}, nil

	case "assume":
		e, err := decodeExpr(n.Assumption)
		if err != nil {
			return nil, fmt.Errorf("assume %s: %w", n.Name, err)
		}
		return &Assume{ID: n.ID, Name: n.Name, Assumption: e}, nil

	case "typedef":
		var t types.Type
		if len(n.Type) > 0 && string(n.Type) != "null" {
			var err error
			if t, err = DecodeType(n.Type); err != nil {
				return nil, fmt.Errorf("typedef %s: %w", n.Name, err)
			}
		}
		return &TypeDef{ID: n.ID, Name: n.Name, Type: t}, nil

	case "import":
		return &Import{ID: n.ID, Name: n.Name, Path: n.Path}, nil

	case "instance":
		inst := &Instance{ID: n.ID, Name: n.Name, ProtoName: n.ProtoName, IdentityOverride: n.IdentityOverride}
		for _, pair := range n.Overrides {
			if len(pair) != 2 {
				return nil, fmt.Errorf("instance %s: override must be a [name, expr] pair", n.Name)
			}
			var name string
			if err := json.Unmarshal(pair[0], &name); err != nil {
				return nil, fmt.Errorf("instance %s: %w", n.Name, err)
			}
			e, err := decodeExpr(pair[1])
			if err != nil {
				return nil, fmt.Errorf("instance %s: %w", n.Name, err)
			}
			inst.Overrides = append(inst.Overrides, Override{Name: name, Expr: e})
		}
		return inst, nil

	case "module":
		// nested modules are flattened upstream
		return nil, nil
	}
	return nil, fmt.Errorf("unknown definition kind %q", n.Kind)
}

func decodeOpDef(n *rawNode) (*OpDef, error) {
	q, err := ParseQualifier(n.Qualifier)
	if err != nil {
		return nil, fmt.Errorf("def %s: %w", n.Name, err)
	}
	e, err := decodeExpr(n.Expr)
	if err != nil {
		return nil, fmt.Errorf("def %s: %w", n.Name, err)
	}
	d := &OpDef{ID: n.ID, Name: n.Name, Qualifier: q, Expr: e, Doc: n.Doc}
	if len(n.TypeAnnotation) > 0 && string(n.TypeAnnotation) != "null" {
		if d.TypeAnnotation, err = DecodeType(n.TypeAnnotation); err != nil {
			return nil, fmt.Errorf("def %s: %w", n.Name, err)
		}
	}
	return d, nil
}

// DecodeExpr reads a single JSON expression.
func DecodeExpr(data []byte) (Expr, error) { return decodeExpr(data) }

func decodeExpr(data json.RawMessage) (Expr, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var n rawNode
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	switch n.Kind {
	case "name":
		return &Name{ID: n.ID, Name: n.Name}, nil

	case "bool":
		var v bool
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("bool %d: %w", n.ID, err)
		}
		return &Bool{ID: n.ID, Value: v}, nil

	case "int":
		// integers may be encoded as numbers or as strings of decimal digits
		s := string(bytes.Trim(n.Value, `"`))
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("int %d: invalid integer literal %q", n.ID, s)
		}
		return &Int{ID: n.ID, Value: v}, nil

	case "str":
		var v string
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, fmt.Errorf("str %d: %w", n.ID, err)
		}
		return &Str{ID: n.ID, Value: v}, nil

	case "app":
		app := &App{ID: n.ID, Opcode: n.Opcode, Args: make([]Expr, 0, len(n.Args))}
		for _, ra := range n.Args {
			arg, err := decodeExpr(ra)
			if err != nil {
				return nil, err
			}
			app.Args = append(app.Args, arg)
		}
		return app, nil

	case "lambda":
		q, err := ParseQualifier(n.Qualifier)
		if err != nil {
			return nil, fmt.Errorf("lambda %d: %w", n.ID, err)
		}
		lam := &Lambda{ID: n.ID, Qualifier: q, Params: make([]Param, 0, len(n.Params))}
		for _, rp := range n.Params {
			var p Param
			if err := json.Unmarshal(rp, &p); err != nil {
				return nil, fmt.Errorf("lambda %d: %w", n.ID, err)
			}
			lam.Params = append(lam.Params, p)
		}
		if lam.Body, err = decodeExpr(n.Expr); err != nil {
			return nil, err
		}
		return lam, nil

	case "let":
		var dn rawNode
		if err := json.Unmarshal(n.OpDef, &dn); err != nil {
			return nil, fmt.Errorf("let %d: %w", n.ID, err)
		}
		d, err := decodeOpDef(&dn)
		if err != nil {
			return nil, fmt.Errorf("let %d: %w", n.ID, err)
		}
		body, err := decodeExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &Let{ID: n.ID, Def: d, Body: body}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", n.Kind)
}

type rawType struct {
	Kind    string            `json:"kind"`
	Name    string            `json:"name"`
	Elem    json.RawMessage   `json:"elem"`
	Arg     json.RawMessage   `json:"arg"`
	Res     json.RawMessage   `json:"res"`
	Args    []json.RawMessage `json:"args"`
	Elems   []json.RawMessage `json:"elems"`
	Fields  json.RawMessage   `json:"fields"`
	Tag     string            `json:"tag"`
	Records []rawUnionRecord  `json:"records"`
}

type rawUnionRecord struct {
	TagValue string          `json:"tagValue"`
	Fields   json.RawMessage `json:"fields"`
}

type rawRow struct {
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	Fields []rawRowField   `json:"fields"`
	Other  json.RawMessage `json:"other"`
}

type rawRowField struct {
	FieldName string          `json:"fieldName"`
	FieldType json.RawMessage `json:"fieldType"`
}

// DecodeType reads a JSON type annotation. Type-variables are named; their ids are left zero.
func DecodeType(data []byte) (types.Type, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing type")
	}
	var r rawType
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	switch r.Kind {
	case "bool":
		return types.Bool, nil
	case "int":
		return types.Int, nil
	case "str":
		return types.Str, nil
	case "const":
		return &types.Const{Name: r.Name}, nil
	case "var":
		return &types.Var{Name: r.Name}, nil

	case "set", "list":
		elem, err := DecodeType(r.Elem)
		if err != nil {
			return nil, err
		}
		if r.Kind == "set" {
			return &types.Set{Elem: elem}, nil
		}
		return &types.List{Elem: elem}, nil

	case "fun":
		arg, err := DecodeType(r.Arg)
		if err != nil {
			return nil, err
		}
		res, err := DecodeType(r.Res)
		if err != nil {
			return nil, err
		}
		return &types.Func{Arg: arg, Result: res}, nil

	case "oper":
		params, err := decodeTypes(r.Args)
		if err != nil {
			return nil, err
		}
		res, err := DecodeType(r.Res)
		if err != nil {
			return nil, err
		}
		return &types.Oper{Params: params, Result: res}, nil

	case "tup":
		if r.Elems != nil {
			elems, err := decodeTypes(r.Elems)
			if err != nil {
				return nil, err
			}
			return &types.Tuple{Elems: elems}, nil
		}
		row, err := decodeRow(r.Fields)
		if err != nil {
			return nil, err
		}
		elems := make([]types.Type, row.Fields.Len())
		var bad error
		row.Fields.Range(func(label string, t types.Type) bool {
			i, err := strconv.Atoi(label)
			if err != nil || i < 0 || i >= len(elems) {
				bad = fmt.Errorf("invalid tuple field %q", label)
				return false
			}
			elems[i] = t
			return true
		})
		if bad != nil {
			return nil, bad
		}
		return &types.Tuple{Elems: elems}, nil

	case "rec":
		row, err := decodeRow(r.Fields)
		if err != nil {
			return nil, err
		}
		return &types.Record{Row: row}, nil

	case "union":
		u := &types.Union{Tag: r.Tag, Records: make([]types.UnionRecord, 0, len(r.Records))}
		for _, rec := range r.Records {
			row, err := decodeRow(rec.Fields)
			if err != nil {
				return nil, err
			}
			u.Records = append(u.Records, types.UnionRecord{TagValue: rec.TagValue, Row: row})
		}
		return u, nil
	}
	return nil, fmt.Errorf("unknown type kind %q", r.Kind)
}

func decodeTypes(raw []json.RawMessage) ([]types.Type, error) {
	ts := make([]types.Type, len(raw))
	for i, rt := range raw {
		t, err := DecodeType(rt)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

func decodeRow(data json.RawMessage) (*types.Row, error) {
	if len(data) == 0 {
		return types.EmptyRow(), nil
	}
	var r rawRow
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	switch r.Kind {
	case "empty":
		return types.EmptyRow(), nil
	case "var":
		return types.NewRow(types.EmptyFieldMap, &types.Var{Name: r.Name}), nil
	case "row":
	default:
		return nil, fmt.Errorf("unknown row kind %q", r.Kind)
	}
	b := types.NewFieldMapBuilder()
	for _, f := range r.Fields {
		t, err := DecodeType(f.FieldType)
		if err != nil {
			return nil, err
		}
		if _, dup := b.Build().Get(f.FieldName); dup {
			return nil, fmt.Errorf("duplicate field %q", f.FieldName)
		}
		b.Set(f.FieldName, t)
	}
	var tail types.Type
	if len(r.Other) > 0 {
		other, err := decodeRow(r.Other)
		if err != nil {
			return nil, err
		}
		tail = other
	}
	if tail == nil {
		return types.NewRow(b.Build(), nil), nil
	}
	return types.NewRow(b.Build(), tail), nil
}
