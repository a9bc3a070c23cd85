package jsonschema

import (
	"github.com/quarrydb/quarry/document"
	"github.com/quarrydb/quarry/matcher"
)

// Compile translates a schema document into a match expression tree. The
// resulting tree is immutable and safe for concurrent evaluation. The first
// error aborts compilation; there is no partial result.
func Compile(schema document.Document) (matcher.Expression, error) {
	return parseSchema("", schema)
}

// parseSchema compiles one schema level at the given field path. An empty
// path denotes the document root.
func parseSchema(path string, schema document.Document) (matcher.Expression, error) {
	keywords, err := scanKeywords(schema)
	if err != nil {
		return nil, err
	}

	// The type keyword is parsed first; every restriction keyword consults
	// it to decide whether the restriction can apply at all.
	var typeExpr *matcher.TypeExpression
	if v, ok := keywords[KeywordType]; ok {
		typeExpr, err = parseTypeKeyword(path, v)
		if err != nil {
			return nil, err
		}
	}

	andExpr := matcher.NewAnd()

	if v, ok := keywords[KeywordProperties]; ok {
		expr, err := parseProperties(path, v, typeExpr)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	}

	if v, ok := keywords[KeywordMaximum]; ok {
		exclusive, err := exclusiveFlag(keywords, KeywordExclusiveMaximum)
		if err != nil {
			return nil, err
		}
		expr, err := parseMaximum(path, v, typeExpr, exclusive)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	} else if _, ok := keywords[KeywordExclusiveMaximum]; ok {
		return nil, newMissingCompanion(KeywordExclusiveMaximum, KeywordMaximum)
	}

	if v, ok := keywords[KeywordMinimum]; ok {
		exclusive, err := exclusiveFlag(keywords, KeywordExclusiveMinimum)
		if err != nil {
			return nil, err
		}
		expr, err := parseMinimum(path, v, typeExpr, exclusive)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	} else if _, ok := keywords[KeywordExclusiveMinimum]; ok {
		return nil, newMissingCompanion(KeywordExclusiveMinimum, KeywordMinimum)
	}

	if v, ok := keywords[KeywordMaxLength]; ok {
		expr, err := parseStrLength(path, v, typeExpr, KeywordMaxLength)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	}

	if v, ok := keywords[KeywordMinLength]; ok {
		expr, err := parseStrLength(path, v, typeExpr, KeywordMinLength)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	}

	if v, ok := keywords[KeywordPattern]; ok {
		expr, err := parsePattern(path, v, typeExpr)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	}

	for _, keyword := range []string{KeywordAllOf, KeywordAnyOf, KeywordOneOf} {
		if v, ok := keywords[keyword]; ok {
			expr, err := parseLogicalOf(path, v, typeExpr, keyword)
			if err != nil {
				return nil, err
			}
			andExpr.Add(expr)
		}
	}

	if v, ok := keywords[KeywordNot]; ok {
		expr, err := parseNot(path, v, typeExpr)
		if err != nil {
			return nil, err
		}
		andExpr.Add(expr)
	}

	if path == "" && typeExpr != nil && !typeExpr.Set().Contains(document.TypeObject) {
		// A top-level schema stating a non-object type can never match:
		// only objects are ever stored at the root.
		return matcher.NewAlwaysFalse(), nil
	}

	if path != "" && typeExpr != nil {
		andExpr.Add(makeTypeRestriction(typeExpr))
	}

	return andExpr, nil
}

// scanKeywords validates the level in a single pass before any keyword value
// is parsed: every keyword must be recognized and appear at most once. The
// pre-scan always completes first, so a malformed keyword value cannot mask
// an unknown-keyword error elsewhere at the same level.
func scanKeywords(schema document.Document) (map[string]document.Value, error) {
	keywords := make(map[string]document.Value, len(schema))
	for _, elem := range schema {
		if _, ok := knownKeywords[elem.Name]; !ok {
			return nil, newUnknownKeyword(elem.Name)
		}
		if _, ok := keywords[elem.Name]; ok {
			return nil, newDuplicateKeyword(elem.Name)
		}
		keywords[elem.Name] = elem.Value
	}
	return keywords, nil
}

// exclusiveFlag reads an exclusiveMaximum/exclusiveMinimum boolean.
func exclusiveFlag(keywords map[string]document.Value, keyword string) (bool, error) {
	v, ok := keywords[keyword]
	if !ok {
		return false, nil
	}
	b, ok := v.BoolValue()
	if !ok {
		return false, newTypeMismatch(keyword, "a boolean")
	}
	return b, nil
}
