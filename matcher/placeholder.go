package matcher

import (
	"fmt"
	"regexp"
)

// placeholderNamePattern constrains placeholder symbols to lowercase-led
// alphanumeric identifiers.
var placeholderNamePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)

// PlaceholderExpression pairs a symbolic name with a predicate subtree. The
// name stands for "the value currently being tested" in serialized form; it
// is nominal bookkeeping only and is never substituted during evaluation.
// The subtree is applied directly to the candidate value via MatchesElement.
type PlaceholderExpression struct {
	name   string
	filter Expression
}

// NewPlaceholder creates a placeholder-bound expression. The name must be a
// non-empty identifier starting with a lowercase letter.
func NewPlaceholder(name string, filter Expression) (*PlaceholderExpression, error) {
	if !placeholderNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid placeholder name %q", name)
	}
	if filter == nil {
		return nil, fmt.Errorf("placeholder %q requires a filter expression", name)
	}
	return &PlaceholderExpression{name: name, filter: filter}, nil
}

// Name returns the symbolic name.
func (p *PlaceholderExpression) Name() string { return p.name }

// Filter returns the bound predicate subtree.
func (p *PlaceholderExpression) Filter() Expression { return p.filter }

// Clone deep-copies the bound subtree, preserving the name.
func (p *PlaceholderExpression) Clone() *PlaceholderExpression {
	return &PlaceholderExpression{name: p.name, filter: p.filter.Clone()}
}

// Equivalent requires an identical placeholder name and a structurally
// equivalent subtree. Two expressions that differ only in placeholder symbol
// are deliberately not equivalent.
func (p *PlaceholderExpression) Equivalent(other *PlaceholderExpression) bool {
	if other == nil {
		return false
	}
	return p.name == other.name && p.filter.Equivalent(other.filter)
}
