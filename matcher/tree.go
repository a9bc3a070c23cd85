package matcher

import (
	"fmt"

	"github.com/quarrydb/quarry/document"
)

// serializeChildren renders a child list as an array of serialized documents.
func serializeChildren(children []Expression) document.Value {
	elems := make([]document.Value, len(children))
	for i, c := range children {
		elems[i] = document.Object(c.Serialize())
	}
	return document.Array(elems...)
}

// cloneChildren deep-copies a child list.
func cloneChildren(children []Expression) []Expression {
	out := make([]Expression, len(children))
	for i, c := range children {
		out[i] = c.Clone()
	}
	return out
}

// equivalentChildren compares two child lists pairwise, in order.
func equivalentChildren(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equivalent(b[i]) {
			return false
		}
	}
	return true
}

// AndExpression matches when every child matches. With no children it is
// vacuously true; the compiler uses an empty conjunction to represent "no
// constraints".
type AndExpression struct {
	taggable
	children []Expression
}

// NewAnd creates a conjunction over the given children. The expression takes
// ownership of the child list.
func NewAnd(children ...Expression) *AndExpression {
	return &AndExpression{children: children}
}

// Add appends a child to the conjunction.
func (e *AndExpression) Add(child Expression) {
	e.children = append(e.children, child)
}

// Children returns the owned child list.
func (e *AndExpression) Children() []Expression { return e.children }

func (e *AndExpression) Matches(doc document.Document) bool {
	for _, c := range e.children {
		if !c.Matches(doc) {
			return false
		}
	}
	return true
}

func (e *AndExpression) MatchesElement(v document.Value) bool {
	for _, c := range e.children {
		if !c.MatchesElement(v) {
			return false
		}
	}
	return true
}

func (e *AndExpression) Clone() Expression {
	out := NewAnd(cloneChildren(e.children)...)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *AndExpression) Equivalent(other Expression) bool {
	o, ok := other.(*AndExpression)
	return ok && equivalentChildren(e.children, o.children)
}

func (e *AndExpression) Serialize() document.Document {
	return document.Document{{Name: "$and", Value: serializeChildren(e.children)}}
}

// OrExpression matches when at least one child matches. With no children it
// matches nothing.
type OrExpression struct {
	taggable
	children []Expression
}

// NewOr creates a disjunction over the given children.
func NewOr(children ...Expression) *OrExpression {
	return &OrExpression{children: children}
}

// Add appends a child to the disjunction.
func (e *OrExpression) Add(child Expression) {
	e.children = append(e.children, child)
}

// Children returns the owned child list.
func (e *OrExpression) Children() []Expression { return e.children }

func (e *OrExpression) Matches(doc document.Document) bool {
	for _, c := range e.children {
		if c.Matches(doc) {
			return true
		}
	}
	return false
}

func (e *OrExpression) MatchesElement(v document.Value) bool {
	for _, c := range e.children {
		if c.MatchesElement(v) {
			return true
		}
	}
	return false
}

func (e *OrExpression) Clone() Expression {
	out := NewOr(cloneChildren(e.children)...)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *OrExpression) Equivalent(other Expression) bool {
	o, ok := other.(*OrExpression)
	return ok && equivalentChildren(e.children, o.children)
}

func (e *OrExpression) Serialize() document.Document {
	return document.Document{{Name: "$or", Value: serializeChildren(e.children)}}
}

// XorExpression matches when exactly one child matches.
type XorExpression struct {
	taggable
	children []Expression
}

// NewXor creates an exclusive-or over the given children.
func NewXor(children ...Expression) *XorExpression {
	return &XorExpression{children: children}
}

// Add appends a child.
func (e *XorExpression) Add(child Expression) {
	e.children = append(e.children, child)
}

// Children returns the owned child list.
func (e *XorExpression) Children() []Expression { return e.children }

func (e *XorExpression) Matches(doc document.Document) bool {
	matched := false
	for _, c := range e.children {
		if c.Matches(doc) {
			if matched {
				return false
			}
			matched = true
		}
	}
	return matched
}

func (e *XorExpression) MatchesElement(v document.Value) bool {
	matched := false
	for _, c := range e.children {
		if c.MatchesElement(v) {
			if matched {
				return false
			}
			matched = true
		}
	}
	return matched
}

func (e *XorExpression) Clone() Expression {
	out := NewXor(cloneChildren(e.children)...)
	out.SetTag(e.tag.Clone())
	return out
}

func (e *XorExpression) Equivalent(other Expression) bool {
	o, ok := other.(*XorExpression)
	return ok && equivalentChildren(e.children, o.children)
}

func (e *XorExpression) Serialize() document.Document {
	return document.Document{{Name: "$_internalSchemaXor", Value: serializeChildren(e.children)}}
}

// NotExpression negates its single child.
type NotExpression struct {
	taggable
	child Expression
}

// NewNot creates a negation of the given child.
func NewNot(child Expression) *NotExpression {
	return &NotExpression{child: child}
}

// Child returns the negated expression.
func (e *NotExpression) Child() Expression { return e.child }

func (e *NotExpression) Matches(doc document.Document) bool {
	return !e.child.Matches(doc)
}

func (e *NotExpression) MatchesElement(v document.Value) bool {
	return !e.child.MatchesElement(v)
}

func (e *NotExpression) Clone() Expression {
	out := NewNot(e.child.Clone())
	out.SetTag(e.tag.Clone())
	return out
}

func (e *NotExpression) Equivalent(other Expression) bool {
	o, ok := other.(*NotExpression)
	return ok && e.child.Equivalent(o.child)
}

func (e *NotExpression) Serialize() document.Document {
	return document.Document{{Name: "$not", Value: document.Object(e.child.Serialize())}}
}

// AlwaysTrueExpression matches every document and every value.
type AlwaysTrueExpression struct {
	taggable
}

// NewAlwaysTrue creates a constant-true expression.
func NewAlwaysTrue() *AlwaysTrueExpression { return &AlwaysTrueExpression{} }

func (e *AlwaysTrueExpression) Matches(doc document.Document) bool   { return true }
func (e *AlwaysTrueExpression) MatchesElement(v document.Value) bool { return true }

func (e *AlwaysTrueExpression) Clone() Expression {
	out := NewAlwaysTrue()
	out.SetTag(e.tag.Clone())
	return out
}

func (e *AlwaysTrueExpression) Equivalent(other Expression) bool {
	_, ok := other.(*AlwaysTrueExpression)
	return ok
}

func (e *AlwaysTrueExpression) Serialize() document.Document {
	return document.Document{{Name: "$alwaysTrue", Value: document.Int(1)}}
}

// AlwaysFalseExpression matches nothing.
type AlwaysFalseExpression struct {
	taggable
}

// NewAlwaysFalse creates a constant-false expression.
func NewAlwaysFalse() *AlwaysFalseExpression { return &AlwaysFalseExpression{} }

func (e *AlwaysFalseExpression) Matches(doc document.Document) bool   { return false }
func (e *AlwaysFalseExpression) MatchesElement(v document.Value) bool { return false }

func (e *AlwaysFalseExpression) Clone() Expression {
	out := NewAlwaysFalse()
	out.SetTag(e.tag.Clone())
	return out
}

func (e *AlwaysFalseExpression) Equivalent(other Expression) bool {
	_, ok := other.(*AlwaysFalseExpression)
	return ok
}

func (e *AlwaysFalseExpression) Serialize() document.Document {
	return document.Document{{Name: "$alwaysFalse", Value: document.Int(1)}}
}

// ObjectMatchExpression evaluates its child against the object stored at a
// field path. A missing field or a non-object value fails the predicate.
type ObjectMatchExpression struct {
	taggable
	path  string
	child Expression
}

// NewObjectMatch creates an object-scoped expression. The path must be
// non-empty: at the document root the child can be evaluated directly.
func NewObjectMatch(path string, child Expression) (*ObjectMatchExpression, error) {
	if path == "" {
		return nil, fmt.Errorf("object match requires a non-empty path")
	}
	return &ObjectMatchExpression{path: path, child: child}, nil
}

// Path returns the field path this expression scopes.
func (e *ObjectMatchExpression) Path() string { return e.path }

// Child returns the scoped expression.
func (e *ObjectMatchExpression) Child() Expression { return e.child }

func (e *ObjectMatchExpression) Matches(doc document.Document) bool {
	v, ok := doc.Lookup(e.path)
	if !ok {
		return false
	}
	return e.MatchesElement(v)
}

func (e *ObjectMatchExpression) MatchesElement(v document.Value) bool {
	obj, ok := v.ObjectValue()
	if !ok {
		return false
	}
	return e.child.Matches(obj)
}

func (e *ObjectMatchExpression) Clone() Expression {
	out := &ObjectMatchExpression{path: e.path, child: e.child.Clone()}
	out.SetTag(e.tag.Clone())
	return out
}

func (e *ObjectMatchExpression) Equivalent(other Expression) bool {
	o, ok := other.(*ObjectMatchExpression)
	return ok && e.path == o.path && e.child.Equivalent(o.child)
}

func (e *ObjectMatchExpression) Serialize() document.Document {
	return document.Document{
		{Name: e.path, Value: document.Object(document.Document{
			{Name: "$_internalSchemaObjectMatch", Value: document.Object(e.child.Serialize())},
		})},
	}
}
