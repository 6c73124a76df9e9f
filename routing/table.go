package routing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownEndpoint is returned when a table has no rule for an endpoint.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Syntax selects how a rule's Pattern spells its variables.
type Syntax int

const (
	// Braces patterns use {name} or {name:regexp}, as gorilla/mux and chi do.
	Braces Syntax = iota
	// Angles patterns use <name> or <converter:name>, e.g. /widgets/<int:id>.
	Angles
)

// Rule is one routing table entry.
type Rule struct {
	Endpoint string
	Pattern  string
	Methods  []string
	// Defaults holds default values for pattern variables.
	Defaults map[string]any
	Syntax   Syntax
}

// Allows reports whether the rule accepts method (case-insensitive).
func (r Rule) Allows(method string) bool {
	return slices.ContainsFunc(r.Methods, func(m string) bool {
		return strings.EqualFold(m, method)
	})
}

// Table looks up the rules registered under an endpoint.
type Table interface {
	Rules(endpoint string) ([]Rule, error)
}

// Map is an in-memory [Table].
type Map struct {
	order []string
	rules map[string][]Rule
}

// NewMap returns a Map holding rules.
func NewMap(rules ...Rule) *Map {
	m := &Map{rules: map[string][]Rule{}}
	for _, r := range rules {
		m.Add(r)
	}
	return m
}

// Add registers rule. Methods are upper-cased. A rule with the same endpoint
// and pattern as an existing one extends that rule's methods instead.
func (m *Map) Add(rule Rule) {
	methods := make([]string, 0, len(rule.Methods))
	for _, meth := range rule.Methods {
		meth = strings.ToUpper(meth)
		if !slices.Contains(methods, meth) {
			methods = append(methods, meth)
		}
	}
	rule.Methods = methods

	existing, ok := m.rules[rule.Endpoint]
	if !ok {
		m.order = append(m.order, rule.Endpoint)
	}
	for i := range existing {
		if existing[i].Pattern != rule.Pattern {
			continue
		}
		for _, meth := range rule.Methods {
			if !existing[i].Allows(meth) {
				existing[i].Methods = append(existing[i].Methods, meth)
			}
		}
		return
	}
	m.rules[rule.Endpoint] = append(existing, rule)
}

// Rules returns the rules for endpoint, in registration order.
func (m *Map) Rules(endpoint string) ([]Rule, error) {
	rules, ok := m.rules[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEndpoint, endpoint)
	}
	return slices.Clone(rules), nil
}

// Endpoints returns every endpoint in the order it was first added.
func (m *Map) Endpoints() []string {
	return slices.Clone(m.order)
}
