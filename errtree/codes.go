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

package errtree

// Code identifies a class of diagnostic.
type Code struct {
	ID          string
	Name        string
	Description string
}

func (c Code) String() string { return c.Name }

// =============================================================================
// TYPE ERRORS (T1xxx)
// =============================================================================
var (
	UnboundName   = Code{"T1001", "unbound-name", "name is not declared"}
	TypeMismatch  = Code{"T1002", "type-mismatch", "incompatible types"}
	ArityMismatch = Code{"T1003", "arity-mismatch", "wrong number of arguments or elements"}
	RowMismatch   = Code{"T1004", "row-mismatch", "incompatible record shapes"}
	InfiniteType  = Code{"T1005", "infinite-type", "type variable occurs within the type it is unified with"}
	InvalidAnnot  = Code{"T1006", "invalid-annotation", "type annotation is malformed or refers to an unknown type"}
	CyclicDef     = Code{"T1007", "cyclic-definition", "definitions refer to each other recursively"}
	Unsupported   = Code{"T1008", "unsupported-expression", "expression form cannot be checked"}
)

// =============================================================================
// EFFECT ERRORS (E2xxx)
// =============================================================================
var (
	EffectMismatch = Code{"E2001", "effect-mismatch", "incompatible effects"}
)

// =============================================================================
// MODE ERRORS (M3xxx)
// =============================================================================
var (
	QualifierMismatch = Code{"M3001", "qualifier-mismatch", "declared qualifier does not match the inferred effect"}
)

// Codes lists every diagnostic code.
var Codes = []Code{
	UnboundName, TypeMismatch, ArityMismatch, RowMismatch, InfiniteType, InvalidAnnot, CyclicDef,
	Unsupported, EffectMismatch, QualifierMismatch,
}

// CodeByName returns the code with the given name.
func CodeByName(name string) (Code, bool) {
	for _, c := range Codes {
		if c.Name == name {
			return c, true
		}
	}
	return Code{}, false
}
