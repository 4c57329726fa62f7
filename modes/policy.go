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

package modes

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/tntc/ir"
)

// Policy configures the qualifier lattice and the shape requirements of qualifiers.
type Policy struct {
	// Order lists every qualifier from weakest to strongest.
	Order []ir.Qualifier `yaml:"order"`

	// RequiresUpdate lists qualifiers whose definitions must update a state variable or apply an
	// action operator.
	RequiresUpdate []ir.Qualifier `yaml:"requires_update"`

	// RequiresTemporal lists qualifiers whose definitions must contain a temporal operator.
	RequiresTemporal []ir.Qualifier `yaml:"requires_temporal"`

	// ActionOperators lists the builtin operators whose application makes a definition an action,
	// even when its effect has no concrete updates.
	ActionOperators []string `yaml:"action_operators"`

	rank map[ir.Qualifier]int
}

var (
	defaultRequiresUpdate   = []ir.Qualifier{ir.QualifierNondet, ir.QualifierAction, ir.QualifierRun}
	defaultRequiresTemporal = []ir.Qualifier{ir.QualifierTemporal}
	defaultActionOperators  = []string{"assign", "actionAll", "actionAny", "then", "reps", "fail", "unchanged"}
)

// DefaultPolicy returns the policy of the lattice
// pureval ≤ puredef ≤ val ≤ def ≤ pred ≤ nondet ≤ action ≤ run ≤ temporal.
func DefaultPolicy() *Policy {
	p := &Policy{}
	p.setDefaults()
	return p
}

// LoadPolicy reads and parses a policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy %s: %w", path, err)
	}
	return ParsePolicy(data, path)
}

// ParsePolicy parses policy content from bytes. Omitted fields take their default values.
// The path argument is used only for error messages.
func ParsePolicy(data []byte, path string) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.setDefaults()
	return &p, nil
}

// Marshal encodes the policy as YAML.
func (p *Policy) Marshal() ([]byte, error) { return yaml.Marshal(p) }

// validate checks the policy for semantic errors.
func (p *Policy) validate(path string) error {
	if len(p.Order) > 0 {
		seen := make(map[ir.Qualifier]bool, len(p.Order))
		for i, q := range p.Order {
			if seen[q] {
				return fmt.Errorf("%s: order[%d]: duplicate qualifier %s", path, i, q)
			}
			seen[q] = true
		}
		for _, q := range ir.Qualifiers {
			if !seen[q] {
				return fmt.Errorf("%s: order: missing qualifier %s", path, q)
			}
		}
	}
	for i, op := range p.ActionOperators {
		if op == "" {
			return fmt.Errorf("%s: action_operators[%d]: empty operator name", path, i)
		}
	}
	return nil
}

func (p *Policy) setDefaults() {
	if len(p.Order) == 0 {
		p.Order = append([]ir.Qualifier(nil), ir.Qualifiers...)
	}
	if p.RequiresUpdate == nil {
		p.RequiresUpdate = append([]ir.Qualifier(nil), defaultRequiresUpdate...)
	}
	if p.RequiresTemporal == nil {
		p.RequiresTemporal = append([]ir.Qualifier(nil), defaultRequiresTemporal...)
	}
	if p.ActionOperators == nil {
		p.ActionOperators = append([]string(nil), defaultActionOperators...)
	}
	p.rank = make(map[ir.Qualifier]int, len(p.Order))
	for i, q := range p.Order {
		p.rank[q] = i
	}
}

// Leq reports whether a is at most as strong as b.
func (p *Policy) Leq(a, b ir.Qualifier) bool { return p.rank[a] <= p.rank[b] }

// IsRequiringUpdate reports whether definitions declared with q must update state.
func (p *Policy) IsRequiringUpdate(q ir.Qualifier) bool { return slices.Contains(p.RequiresUpdate, q) }

// IsRequiringTemporal reports whether definitions declared with q must be temporal.
func (p *Policy) IsRequiringTemporal(q ir.Qualifier) bool {
	return slices.Contains(p.RequiresTemporal, q)
}

// IsActionOperator reports whether applying op makes a definition an action.
func (p *Policy) IsActionOperator(op string) bool { return slices.Contains(p.ActionOperators, op) }
