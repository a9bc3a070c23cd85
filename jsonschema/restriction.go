package jsonschema

import (
	"github.com/quarrydb/quarry/matcher"
)

// makeRestriction wraps a restriction keyword's predicate so that it only
// takes effect for values of the restricted type.
//
// Match expressions reject values of a non-matching type outright, whereas
// schema restriction keywords silently pass for them: maxLength constrains
// strings and says nothing about numbers. 'restriction' is the type the
// keyword applies to, 'restrictionExpr' the predicate enforcing it, and
// 'statedType' the parsed type keyword in effect at this level, if any.
//
// When the stated type can never produce a value of the restricted type, the
// restriction is vacuous and collapses to a constant-true node. Otherwise the
// result is
//
//	OR( NOT(TYPE restriction @path), restrictionExpr )
//
// so the restriction also passes when the field is absent or holds a value
// of a different type.
func makeRestriction(restriction matcher.TypeSet, path string, restrictionExpr matcher.Expression, statedType *matcher.TypeExpression) matcher.Expression {
	if statedType != nil {
		stated := statedType.Set()
		bothNumeric := restriction.AllNumbers && (stated.AllNumbers || stated.Kind.IsNumeric())
		typesMatch := !restriction.AllNumbers && !stated.AllNumbers && restriction.Kind == stated.Kind

		if !bothNumeric && !typesMatch {
			// The restriction can never apply to values of the stated type.
			return matcher.NewAlwaysTrue()
		}
	}

	return matcher.NewOr(
		matcher.NewNot(matcher.NewType(path, restriction)),
		restrictionExpr,
	)
}

// makeTypeRestriction gates a parsed type keyword on field presence:
//
//	OR( NOT(EXISTS @path), typeExpr )
//
// The type keyword only applies when the field is present; a schema
// constraint never requires presence by itself. The type expression must
// have a non-empty path (root-level compatibility is decided separately).
func makeTypeRestriction(typeExpr *matcher.TypeExpression) matcher.Expression {
	return matcher.NewOr(
		matcher.NewNot(matcher.NewExists(typeExpr.Path())),
		typeExpr,
	)
}
