package matcher

import (
	"fmt"
	"strings"

	"github.com/quarrydb/quarry/document"
)

// Parse builds an expression tree from its serialized document form. It
// accepts exactly the shapes Serialize emits, so Parse(e.Serialize()) yields
// a tree equivalent to e.
//
// A document with several top-level fields is an implicit conjunction; a
// field whose value holds several operators is likewise a conjunction of
// leaves at that path.
func Parse(doc document.Document) (Expression, error) {
	exprs := make([]Expression, 0, len(doc))
	for _, elem := range doc {
		e, err := parseElement(elem)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return NewAnd(exprs...), nil
}

func parseElement(elem document.Element) (Expression, error) {
	if strings.HasPrefix(elem.Name, "$") {
		return parseOperator(elem.Name, elem.Value)
	}
	return parsePathElement(elem.Name, elem.Value)
}

func parseOperator(name string, v document.Value) (Expression, error) {
	switch name {
	case "$and", "$or", "$_internalSchemaXor":
		children, err := parseExpressionArray(name, v)
		if err != nil {
			return nil, err
		}
		switch name {
		case "$and":
			return NewAnd(children...), nil
		case "$or":
			return NewOr(children...), nil
		default:
			return NewXor(children...), nil
		}
	case "$not":
		obj, ok := v.ObjectValue()
		if !ok {
			return nil, fmt.Errorf("$not requires an object, got %s", v.Kind())
		}
		child, err := Parse(obj)
		if err != nil {
			return nil, err
		}
		return NewNot(child), nil
	case "$alwaysTrue":
		return NewAlwaysTrue(), nil
	case "$alwaysFalse":
		return NewAlwaysFalse(), nil
	case AllowedPropertiesName:
		obj, ok := v.ObjectValue()
		if !ok {
			return nil, fmt.Errorf("%s requires an object, got %s", AllowedPropertiesName, v.Kind())
		}
		return parseAllowedProperties(obj)
	}
	return nil, fmt.Errorf("unknown top-level operator %q", name)
}

func parseExpressionArray(name string, v document.Value) ([]Expression, error) {
	arr, ok := v.ArrayValue()
	if !ok {
		return nil, fmt.Errorf("%s requires an array, got %s", name, v.Kind())
	}
	children := make([]Expression, 0, len(arr))
	for i, elem := range arr {
		obj, ok := elem.ObjectValue()
		if !ok {
			return nil, fmt.Errorf("%s element %d must be an object, got %s", name, i, elem.Kind())
		}
		child, err := Parse(obj)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// parsePathElement parses {path: {$op: arg, ...}} into one leaf per operator.
func parsePathElement(path string, v document.Value) (Expression, error) {
	obj, ok := v.ObjectValue()
	if !ok {
		return nil, fmt.Errorf("field %q must hold an operator object, got %s", path, v.Kind())
	}
	exprs := make([]Expression, 0, len(obj))
	for _, op := range obj {
		e, err := parseLeaf(path, op.Name, op.Value)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("field %q holds no operators", path)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return NewAnd(exprs...), nil
}

func parseLeaf(path, op string, arg document.Value) (Expression, error) {
	switch op {
	case "$type":
		alias, ok := arg.StringValue()
		if !ok {
			return nil, fmt.Errorf("$type requires a string, got %s", arg.Kind())
		}
		set, err := ParseTypeAlias(alias)
		if err != nil {
			return nil, err
		}
		return NewType(path, set), nil
	case "$lt", "$lte", "$gt", "$gte":
		return NewComparison(CompareOp(op), path, arg)
	case "$regex":
		pattern, ok := arg.RegexValue()
		if !ok {
			pattern, ok = arg.StringValue()
		}
		if !ok {
			return nil, fmt.Errorf("$regex requires a regex or string, got %s", arg.Kind())
		}
		return NewRegex(path, pattern)
	case "$minLength", "$maxLength":
		bound, ok := arg.IntValue()
		if !ok {
			return nil, fmt.Errorf("%s requires an integer, got %s", op, arg.Kind())
		}
		if op == "$minLength" {
			return NewMinLength(path, bound)
		}
		return NewMaxLength(path, bound)
	case "$exists":
		shouldExist, ok := arg.BoolValue()
		if !ok {
			return nil, fmt.Errorf("$exists requires a boolean, got %s", arg.Kind())
		}
		if shouldExist {
			return NewExists(path), nil
		}
		return NewNot(NewExists(path)), nil
	case "$_internalSchemaObjectMatch":
		obj, ok := arg.ObjectValue()
		if !ok {
			return nil, fmt.Errorf("$_internalSchemaObjectMatch requires an object, got %s", arg.Kind())
		}
		child, err := Parse(obj)
		if err != nil {
			return nil, err
		}
		return NewObjectMatch(path, child)
	}
	return nil, fmt.Errorf("unknown operator %q for field %q", op, path)
}

// parseAllowedProperties parses the body of $_internalSchemaAllowedProperties.
func parseAllowedProperties(body document.Document) (Expression, error) {
	var (
		properties      []string
		patternRules    []PatternSchema
		namePlaceholder string
		otherwiseExpr   Expression
		otherwiseBool   = true
		pendingPatterns []document.Document
	)

	for _, field := range body {
		switch field.Name {
		case allowedPropertiesProperties:
			arr, ok := field.Value.ArrayValue()
			if !ok {
				return nil, fmt.Errorf("%s must be an array", allowedPropertiesProperties)
			}
			for _, elem := range arr {
				name, ok := elem.StringValue()
				if !ok {
					return nil, fmt.Errorf("%s elements must be strings", allowedPropertiesProperties)
				}
				properties = append(properties, name)
			}
		case allowedPropertiesNamePlaceholder:
			name, ok := field.Value.StringValue()
			if !ok {
				return nil, fmt.Errorf("%s must be a string", allowedPropertiesNamePlaceholder)
			}
			namePlaceholder = name
		case allowedPropertiesPatternProperties:
			arr, ok := field.Value.ArrayValue()
			if !ok {
				return nil, fmt.Errorf("%s must be an array", allowedPropertiesPatternProperties)
			}
			// The placeholder name may appear after the rules in the
			// document; defer rule parsing until all fields are read.
			for i, elem := range arr {
				obj, ok := elem.ObjectValue()
				if !ok {
					return nil, fmt.Errorf("%s element %d must be an object", allowedPropertiesPatternProperties, i)
				}
				pendingPatterns = append(pendingPatterns, obj)
			}
		case allowedPropertiesOtherwise:
			if b, ok := field.Value.BoolValue(); ok {
				otherwiseBool = b
				continue
			}
			obj, ok := field.Value.ObjectValue()
			if !ok {
				return nil, fmt.Errorf("%s must be a boolean or an object", allowedPropertiesOtherwise)
			}
			filter, err := Parse(obj)
			if err != nil {
				return nil, err
			}
			otherwiseExpr = filter
		default:
			return nil, fmt.Errorf("unknown %s field %q", AllowedPropertiesName, field.Name)
		}
	}

	for _, obj := range pendingPatterns {
		rule, err := parsePatternRule(obj, namePlaceholder)
		if err != nil {
			return nil, err
		}
		patternRules = append(patternRules, rule)
	}

	if otherwiseExpr == nil {
		return NewAllowedPropertiesWithDefault(properties, patternRules, otherwiseBool, namePlaceholder)
	}

	placeholder, err := NewPlaceholder(namePlaceholder, otherwiseExpr)
	if err != nil {
		return nil, err
	}
	return NewAllowedProperties(properties, patternRules, placeholder, namePlaceholder)
}

func parsePatternRule(obj document.Document, namePlaceholder string) (PatternSchema, error) {
	regexVal, ok := obj.Get("regex")
	if !ok {
		return PatternSchema{}, fmt.Errorf("pattern rule requires a regex field")
	}
	pattern, ok := regexVal.RegexValue()
	if !ok {
		pattern, ok = regexVal.StringValue()
	}
	if !ok {
		return PatternSchema{}, fmt.Errorf("pattern rule regex must be a regex or string, got %s", regexVal.Kind())
	}

	exprVal, ok := obj.Get("expression")
	if !ok {
		return PatternSchema{}, fmt.Errorf("pattern rule requires an expression field")
	}
	exprObj, ok := exprVal.ObjectValue()
	if !ok {
		return PatternSchema{}, fmt.Errorf("pattern rule expression must be an object, got %s", exprVal.Kind())
	}
	filter, err := Parse(exprObj)
	if err != nil {
		return PatternSchema{}, err
	}

	placeholder, err := NewPlaceholder(namePlaceholder, filter)
	if err != nil {
		return PatternSchema{}, err
	}
	return NewPatternSchema(pattern, placeholder)
}

// DebugString renders an expression as its serialized document form, for
// logging and test failure output.
func DebugString(e Expression) string {
	return e.Serialize().String()
}
