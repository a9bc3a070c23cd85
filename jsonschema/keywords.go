package jsonschema

import (
	"strconv"

	"github.com/quarrydb/quarry/document"
	"github.com/quarrydb/quarry/matcher"
)

// Schema keywords recognized by the compiler. Anything else is a compile
// error.
const (
	KeywordType             = "type"
	KeywordProperties       = "properties"
	KeywordMaximum          = "maximum"
	KeywordMinimum          = "minimum"
	KeywordExclusiveMaximum = "exclusiveMaximum"
	KeywordExclusiveMinimum = "exclusiveMinimum"
	KeywordMaxLength        = "maxLength"
	KeywordMinLength        = "minLength"
	KeywordPattern          = "pattern"
	KeywordAllOf            = "allOf"
	KeywordAnyOf            = "anyOf"
	KeywordOneOf            = "oneOf"
	KeywordNot              = "not"
)

var knownKeywords = map[string]struct{}{
	KeywordType:             {},
	KeywordProperties:       {},
	KeywordMaximum:          {},
	KeywordMinimum:          {},
	KeywordExclusiveMaximum: {},
	KeywordExclusiveMinimum: {},
	KeywordMaxLength:        {},
	KeywordMinLength:        {},
	KeywordPattern:          {},
	KeywordAllOf:            {},
	KeywordAnyOf:            {},
	KeywordOneOf:            {},
	KeywordNot:              {},
}

// parseTypeKeyword parses the type keyword into an unwrapped type
// expression. Presence gating and root compatibility are applied by the
// caller once all other keywords are parsed.
func parseTypeKeyword(path string, v document.Value) (*matcher.TypeExpression, error) {
	alias, ok := v.StringValue()
	if !ok {
		return nil, newTypeMismatch(KeywordType, "a string")
	}
	set, err := matcher.ParseTypeAlias(alias)
	if err != nil {
		return nil, newMalformedShape(KeywordType, "unrecognized type alias", err)
	}
	return matcher.NewType(path, set), nil
}

// parseMaximum parses the maximum keyword, honoring exclusiveMaximum.
func parseMaximum(path string, v document.Value, typeExpr *matcher.TypeExpression, exclusive bool) (matcher.Expression, error) {
	if !v.IsNumber() {
		return nil, newTypeMismatch(KeywordMaximum, "a number")
	}

	if path == "" {
		// No effect in a top-level schema; only objects are stored.
		return matcher.NewAlwaysTrue(), nil
	}

	op := matcher.OpLTE
	if exclusive {
		op = matcher.OpLT
	}
	expr, err := matcher.NewComparison(op, path, v)
	if err != nil {
		return nil, newMalformedShape(KeywordMaximum, "invalid comparison bound", err)
	}
	return makeRestriction(matcher.TypeSet{AllNumbers: true}, path, expr, typeExpr), nil
}

// parseMinimum parses the minimum keyword, honoring exclusiveMinimum.
func parseMinimum(path string, v document.Value, typeExpr *matcher.TypeExpression, exclusive bool) (matcher.Expression, error) {
	if !v.IsNumber() {
		return nil, newTypeMismatch(KeywordMinimum, "a number")
	}

	if path == "" {
		// No effect in a top-level schema; only objects are stored.
		return matcher.NewAlwaysTrue(), nil
	}

	op := matcher.OpGTE
	if exclusive {
		op = matcher.OpGT
	}
	expr, err := matcher.NewComparison(op, path, v)
	if err != nil {
		return nil, newMalformedShape(KeywordMinimum, "invalid comparison bound", err)
	}
	return makeRestriction(matcher.TypeSet{AllNumbers: true}, path, expr, typeExpr), nil
}

// parseStrLength parses minLength or maxLength.
func parseStrLength(path string, v document.Value, typeExpr *matcher.TypeExpression, keyword string) (matcher.Expression, error) {
	if !v.IsNumber() {
		return nil, newTypeMismatch(keyword, "a number")
	}

	bound, err := nonNegativeInteger(keyword, v)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return matcher.NewAlwaysTrue(), nil
	}

	var expr matcher.Expression
	if keyword == KeywordMinLength {
		expr, err = matcher.NewMinLength(path, bound)
	} else {
		expr, err = matcher.NewMaxLength(path, bound)
	}
	if err != nil {
		return nil, newMalformedShape(keyword, "invalid length bound", err)
	}
	return makeRestriction(matcher.TypeSet{Kind: document.TypeString}, path, expr, typeExpr), nil
}

// nonNegativeInteger extracts an integral, non-negative bound from a numeric
// keyword value. Doubles are accepted only when they carry no fraction.
func nonNegativeInteger(keyword string, v document.Value) (int64, error) {
	if i, ok := v.IntValue(); ok {
		if i < 0 {
			return 0, newMalformedShape(keyword, "must be a non-negative integer", nil)
		}
		return i, nil
	}
	f, _ := v.Float()
	i := int64(f)
	if float64(i) != f || i < 0 {
		return 0, newMalformedShape(keyword, "must be a non-negative integer", nil)
	}
	return i, nil
}

// parsePattern parses the pattern keyword.
func parsePattern(path string, v document.Value, typeExpr *matcher.TypeExpression) (matcher.Expression, error) {
	pattern, ok := v.StringValue()
	if !ok {
		return nil, newTypeMismatch(KeywordPattern, "a string")
	}

	if path == "" {
		return matcher.NewAlwaysTrue(), nil
	}

	// Schema patterns carry no embedded flags.
	expr, err := matcher.NewRegex(path, pattern)
	if err != nil {
		return nil, newMalformedShape(KeywordPattern, "invalid regular expression", err)
	}
	return makeRestriction(matcher.TypeSet{Kind: document.TypeString}, path, expr, typeExpr), nil
}

// parseLogicalOf parses allOf, anyOf and oneOf: a non-empty array of nested
// schemas combined with AND, OR or XOR respectively. Each nested schema is
// compiled with the array index as its path; the index is scoped away again
// by the enclosing object match, so only the embedded schema matters.
func parseLogicalOf(path string, v document.Value, typeExpr *matcher.TypeExpression, keyword string) (matcher.Expression, error) {
	arr, ok := v.ArrayValue()
	if !ok {
		return nil, newTypeMismatch(keyword, "an array")
	}
	if len(arr) == 0 {
		return nil, newEmptyArray(keyword)
	}

	children := make([]matcher.Expression, 0, len(arr))
	for i, elem := range arr {
		nested, ok := elem.ObjectValue()
		if !ok {
			return nil, newMalformedShape(keyword, "must be an array of objects", nil)
		}
		child, err := parseSchema(strconv.Itoa(i), nested)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var combined matcher.Expression
	switch keyword {
	case KeywordAllOf:
		combined = matcher.NewAnd(children...)
	case KeywordAnyOf:
		combined = matcher.NewOr(children...)
	case KeywordOneOf:
		combined = matcher.NewXor(children...)
	}

	if path == "" {
		// Top level: the root document is the thing being combined over.
		return combined, nil
	}

	objectMatch, err := matcher.NewObjectMatch(path, combined)
	if err != nil {
		return nil, newMalformedShape(keyword, "invalid object scope", err)
	}
	return makeRestriction(matcher.TypeSet{Kind: document.TypeObject}, path, objectMatch, typeExpr), nil
}

// parseNot parses the not keyword: a single nested schema, negated.
func parseNot(path string, v document.Value, typeExpr *matcher.TypeExpression) (matcher.Expression, error) {
	nested, ok := v.ObjectValue()
	if !ok {
		return nil, newTypeMismatch(KeywordNot, "an object")
	}

	child, err := parseSchema(KeywordNot, nested)
	if err != nil {
		return nil, err
	}
	notExpr := matcher.NewNot(child)

	if path == "" {
		return notExpr, nil
	}

	objectMatch, err := matcher.NewObjectMatch(path, notExpr)
	if err != nil {
		return nil, newMalformedShape(KeywordNot, "invalid object scope", err)
	}
	return makeRestriction(matcher.TypeSet{Kind: document.TypeObject}, path, objectMatch, typeExpr), nil
}

// parseProperties parses the properties keyword: nested schemas per field,
// conjoined. Nested paths are relative to the enclosing object, which the
// object-match wrapper scopes back to this level's path.
func parseProperties(path string, v document.Value, typeExpr *matcher.TypeExpression) (matcher.Expression, error) {
	propertiesObj, ok := v.ObjectValue()
	if !ok {
		return nil, newTypeMismatch(KeywordProperties, "an object")
	}

	andExpr := matcher.NewAnd()
	for _, property := range propertiesObj {
		nested, ok := property.Value.ObjectValue()
		if !ok {
			return nil, newMalformedShape(KeywordProperties,
				"nested schema for property "+strconv.Quote(property.Name)+" must be an object", nil)
		}
		child, err := parseSchema(property.Name, nested)
		if err != nil {
			return nil, err
		}
		andExpr.Add(child)
	}

	// Top-level schema: no path, so no explicit object match is needed.
	if path == "" {
		return andExpr, nil
	}

	objectMatch, err := matcher.NewObjectMatch(path, andExpr)
	if err != nil {
		return nil, newMalformedShape(KeywordProperties, "invalid object scope", err)
	}
	return makeRestriction(matcher.TypeSet{Kind: document.TypeObject}, path, objectMatch, typeExpr), nil
}
