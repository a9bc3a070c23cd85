package matcher

import (
	"github.com/google/uuid"

	"github.com/quarrydb/quarry/document"
)

// Expression is the contract every node of the match tree implements.
//
// Matches evaluates the node against a whole document; MatchesElement
// evaluates it against a single value, ignoring any field path (this is how
// placeholder sub-expressions inside AllowedPropertiesExpression are
// applied). Both are pure and never error.
type Expression interface {
	// Matches reports whether the document satisfies this expression.
	Matches(doc document.Document) bool

	// MatchesElement reports whether a single value satisfies this
	// expression, ignoring the field path of leaf nodes.
	MatchesElement(v document.Value) bool

	// Clone returns a deep copy that shares no mutable state with the
	// receiver. Attached tags are cloned alongside.
	Clone() Expression

	// Equivalent reports structural equivalence with another expression.
	Equivalent(other Expression) bool

	// Serialize renders the expression in its canonical document form,
	// parseable by Parse.
	Serialize() document.Document

	// Tag returns the opaque annotation attached to this node, or nil.
	Tag() *Tag

	// SetTag attaches an opaque annotation to this node. The annotation is
	// never interpreted by the matcher; it survives cloning.
	SetTag(t *Tag)
}

// Tag is an opaque, clone-preserving annotation callers can attach to any
// expression node. The matcher never interprets it. The ID identifies the
// annotation across clones of the same tree.
type Tag struct {
	// ID identifies this annotation. Clones keep the same ID.
	ID uuid.UUID

	// Data is caller-owned payload.
	Data map[string]any
}

// NewTag creates a tag with a fresh ID and the given payload.
func NewTag(data map[string]any) *Tag {
	return &Tag{ID: uuid.New(), Data: data}
}

// Clone returns a deep copy of the tag. The copy keeps the original ID.
func (t *Tag) Clone() *Tag {
	if t == nil {
		return nil
	}
	out := &Tag{ID: t.ID}
	if t.Data != nil {
		out.Data = make(map[string]any, len(t.Data))
		for k, v := range t.Data {
			out.Data[k] = v
		}
	}
	return out
}

// taggable provides tag storage common to all node types.
type taggable struct {
	tag *Tag
}

// Tag returns the attached annotation, or nil.
func (t *taggable) Tag() *Tag { return t.tag }

// SetTag attaches an annotation to the node.
func (t *taggable) SetTag(tag *Tag) { t.tag = tag }
