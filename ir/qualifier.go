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

import "fmt"

// Qualifier is the author-declared category of an operator definition.
type Qualifier uint8

const (
	QualifierPureVal Qualifier = iota
	QualifierPureDef
	QualifierVal
	QualifierDef
	QualifierPred
	QualifierNondet
	QualifierAction
	QualifierRun
	QualifierTemporal
)

var qualifierNames = [...]string{
	QualifierPureVal:  "pureval",
	QualifierPureDef:  "puredef",
	QualifierVal:      "val",
	QualifierDef:      "def",
	QualifierPred:     "pred",
	QualifierNondet:   "nondet",
	QualifierAction:   "action",
	QualifierRun:      "run",
	QualifierTemporal: "temporal",
}

// Qualifiers lists every qualifier from weakest to strongest.
var Qualifiers = []Qualifier{
	QualifierPureVal, QualifierPureDef, QualifierVal, QualifierDef, QualifierPred,
	QualifierNondet, QualifierAction, QualifierRun, QualifierTemporal,
}

func (q Qualifier) String() string {
	if int(q) < len(qualifierNames) {
		return qualifierNames[q]
	}
	return fmt.Sprintf("Qualifier(%d)", uint8(q))
}

// ParseQualifier parses the source form of a qualifier.
func ParseQualifier(s string) (Qualifier, error) {
	for q, name := range qualifierNames {
		if name == s {
			return Qualifier(q), nil
		}
	}
	return 0, fmt.Errorf("unknown qualifier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (q Qualifier) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Qualifier) UnmarshalText(text []byte) error {
	parsed, err := ParseQualifier(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
