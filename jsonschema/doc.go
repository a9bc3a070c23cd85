// Package jsonschema compiles declarative schema documents into match
// expression trees.
//
// A schema document is an ordered mapping from keyword to keyword value,
// possibly nesting further schema documents under composition keywords
// (allOf, anyOf, oneOf, not) and under properties. Compile walks one schema
// level at a time, translating each recognized keyword into a predicate
// subtree and conjoining the results:
//
//	schema, _ := document.ParseJSON([]byte(`{
//		"type": "object",
//		"properties": {"count": {"type": "int", "minimum": 0}}
//	}`))
//	expr, err := jsonschema.Compile(schema)
//	if err != nil {
//		// typed compile error: unknown keyword, bad shape, ...
//	}
//	ok := expr.Matches(doc)
//
// # Restriction keywords
//
// Keywords like maximum or pattern only constrain values of a particular
// type and are vacuously true for everything else. The compiler realizes
// this by wrapping each restriction as "not of the restricted type, or the
// restriction holds", and by collapsing restrictions that can never apply
// (given the level's stated type) to a constant-true node. A type keyword on
// a field is additionally gated on the field's presence: absent fields
// satisfy every schema constraint.
//
// Compilation detects unknown and duplicate keywords in a full pre-scan of
// each level before any keyword value is parsed, so a malformed keyword
// value never masks an unknown-keyword error. The first error aborts the
// whole compile; there is no partial state.
//
// The recognized keyword subset is fixed: type, properties, minimum,
// maximum, exclusiveMinimum, exclusiveMaximum, minLength, maxLength,
// pattern, allOf, anyOf, oneOf, not. This is not a conformant implementation
// of any JSON Schema draft.
package jsonschema
