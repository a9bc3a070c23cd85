package matcher

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/quarrydb/quarry/document"
)

// TypeExpression matches values whose type is in a TypeSet.
type TypeExpression struct {
	taggable
	path string
	set  TypeSet
}

// NewType creates a type-check expression at the given path.
func NewType(path string, set TypeSet) *TypeExpression {
	return &TypeExpression{path: path, set: set}
}

// Path returns the field path this expression constrains.
func (e *TypeExpression) Path() string { return e.path }

// Set returns the accepted type set.
func (e *TypeExpression) Set() TypeSet { return e.set }

func (e *TypeExpression) Matches(doc document.Document) bool {
	v, ok := doc.Lookup(e.path)
	if !ok {
		return false
	}
	return e.MatchesElement(v)
}

func (e *TypeExpression) MatchesElement(v document.Value) bool {
	return e.set.Contains(v.Kind())
}

func (e *TypeExpression) Clone() Expression {
	out := NewType(e.path, e.set)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *TypeExpression) Equivalent(other Expression) bool {
	o, ok := other.(*TypeExpression)
	return ok && e.path == o.path && e.set == o.set
}

func (e *TypeExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: "$type", Value: document.String(e.set.Alias())},
		})},
	}
}

// CompareOp is a comparison operator for ComparisonExpression.
type CompareOp string

const (
	OpLT  CompareOp = "$lt"
	OpLTE CompareOp = "$lte"
	OpGT  CompareOp = "$gt"
	OpGTE CompareOp = "$gte"
)

// ComparisonExpression matches values ordered relative to a literal. Only
// numbers and strings are ordered; a value that does not compare against the
// literal fails the predicate.
type ComparisonExpression struct {
	taggable
	op      CompareOp
	path    string
	literal document.Value
}

// NewComparison creates a comparison expression. The literal must be a
// number or a string.
func NewComparison(op CompareOp, path string, literal document.Value) (*ComparisonExpression, error) {
	switch op {
	case OpLT, OpLTE, OpGT, OpGTE:
	default:
		return nil, fmt.Errorf("unknown comparison operator %q", op)
	}
	if !literal.IsNumber() {
		if _, ok := literal.StringValue(); !ok {
			return nil, fmt.Errorf("comparison literal must be a number or string, got %s", literal.Kind())
		}
	}
	return &ComparisonExpression{op: op, path: path, literal: literal}, nil
}

// Op returns the comparison operator.
func (e *ComparisonExpression) Op() CompareOp { return e.op }

// Path returns the field path this expression constrains.
func (e *ComparisonExpression) Path() string { return e.path }

// Literal returns the comparison bound.
func (e *ComparisonExpression) Literal() document.Value { return e.literal }

func (e *ComparisonExpression) Matches(doc document.Document) bool {
	v, ok := doc.Lookup(e.path)
	if !ok {
		return false
	}
	return e.MatchesElement(v)
}

func (e *ComparisonExpression) MatchesElement(v document.Value) bool {
	cmp, ok := document.Compare(v, e.literal)
	if !ok {
		return false
	}
	switch e.op {
	case OpLT:
		return cmp < 0
	case OpLTE:
		return cmp <= 0
	case OpGT:
		return cmp > 0
	case OpGTE:
		return cmp >= 0
	}
	return false
}

func (e *ComparisonExpression) Clone() Expression {
	out := &ComparisonExpression{op: e.op, path: e.path, literal: e.literal.Clone()}
	out.SetTag(e.tag.Clone())
	return out
}

func (e *ComparisonExpression) Equivalent(other Expression) bool {
	o, ok := other.(*ComparisonExpression)
	return ok && e.op == o.op && e.path == o.path && e.literal.Equal(o.literal)
}

func (e *ComparisonExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: string(e.op), Value: e.literal.Clone()},
		})},
	}
}

// RegexExpression matches string values against a regular expression. The
// match is partial: the pattern may match anywhere in the string.
type RegexExpression struct {
	taggable
	path    string
	pattern string
	re      *regexp.Regexp
}

// NewRegex compiles the pattern and creates a regex-match expression.
func NewRegex(path, pattern string) (*RegexExpression, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	return &RegexExpression{path: path, pattern: pattern, re: re}, nil
}

// Path returns the field path this expression constrains.
func (e *RegexExpression) Path() string { return e.path }

// Pattern returns the pattern source text.
func (e *RegexExpression) Pattern() string { return e.pattern }

func (e *RegexExpression) Matches(doc document.Document) bool {
	v, ok := doc.Lookup(e.path)
	if !ok {
		return false
	}
	return e.MatchesElement(v)
}

func (e *RegexExpression) MatchesElement(v document.Value) bool {
	s, ok := v.StringValue()
	if !ok {
		return false
	}
	return e.re.MatchString(s)
}

func (e *RegexExpression) Clone() Expression {
	// Recompile from source; compiled regexes are never shared.
	out, _ := NewRegex(e.path, e.pattern)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *RegexExpression) Equivalent(other Expression) bool {
	o, ok := other.(*RegexExpression)
	return ok && e.path == o.path && e.pattern == o.pattern
}

func (e *RegexExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: "$regex", Value: document.Regex(e.pattern)},
		})},
	}
}

// lengthKind distinguishes the two string length bounds.
type lengthKind string

const (
	minLength lengthKind = "$minLength"
	maxLength lengthKind = "$maxLength"
)

// StringLengthExpression matches strings whose length in code points is
// bounded below or above. Non-string values fail the predicate.
type StringLengthExpression struct {
	taggable
	kind  lengthKind
	path  string
	bound int64
}

// NewMinLength creates a minimum string length expression.
func NewMinLength(path string, bound int64) (*StringLengthExpression, error) {
	return newStringLength(minLength, path, bound)
}

// NewMaxLength creates a maximum string length expression.
func NewMaxLength(path string, bound int64) (*StringLengthExpression, error) {
	return newStringLength(maxLength, path, bound)
}

func newStringLength(kind lengthKind, path string, bound int64) (*StringLengthExpression, error) {
	if bound < 0 {
		return nil, fmt.Errorf("string length bound must be non-negative, got %d", bound)
	}
	return &StringLengthExpression{kind: kind, path: path, bound: bound}, nil
}

// Path returns the field path this expression constrains.
func (e *StringLengthExpression) Path() string { return e.path }

// Bound returns the length bound.
func (e *StringLengthExpression) Bound() int64 { return e.bound }

func (e *StringLengthExpression) Matches(doc document.Document) bool {
	v, ok := doc.Lookup(e.path)
	if !ok {
		return false
	}
	return e.MatchesElement(v)
}

func (e *StringLengthExpression) MatchesElement(v document.Value) bool {
	s, ok := v.StringValue()
	if !ok {
		return false
	}
	n := int64(utf8.RuneCountInString(s))
	if e.kind == minLength {
		return n >= e.bound
	}
	return n <= e.bound
}

func (e *StringLengthExpression) Clone() Expression {
	out := &StringLengthExpression{kind: e.kind, path: e.path, bound: e.bound}
	out.SetTag(e.tag.Clone())
	return out
}

func (e *StringLengthExpression) Equivalent(other Expression) bool {
	o, ok := other.(*StringLengthExpression)
	return ok && e.kind == o.kind && e.path == o.path && e.bound == o.bound
}

func (e *StringLengthExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: string(e.kind), Value: document.Long(e.bound)},
		})},
	}
}

// ExistsExpression matches documents in which the field path resolves to a
// value of any type, including null.
type ExistsExpression struct {
	taggable
	path string
}

// NewExists creates an existence-check expression.
func NewExists(path string) *ExistsExpression {
	return &ExistsExpression{path: path}
}

// Path returns the field path this expression constrains.
func (e *ExistsExpression) Path() string { return e.path }

func (e *ExistsExpression) Matches(doc document.Document) bool {
	_, ok := doc.Lookup(e.path)
	return ok
}

// MatchesElement always matches: a value handed in directly is present by
// definition.
func (e *ExistsExpression) MatchesElement(v document.Value) bool {
	return true
}

func (e *ExistsExpression) Clone() Expression {
	out := NewExists(e.path)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *ExistsExpression) Equivalent(other Expression) bool {
	o, ok := other.(*ExistsExpression)
	return ok && e.path == o.path
}

func (e *ExistsExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: "$exists", Value: document.Bool(true)},
		})},
	}
}
