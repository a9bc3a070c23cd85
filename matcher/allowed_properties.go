package matcher

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/quarrydb/quarry/document"
)

// Serialized field names of the allowed-properties expression.
const (
	AllowedPropertiesName = "$_internalSchemaAllowedProperties"

	allowedPropertiesProperties        = "properties"
	allowedPropertiesPatternProperties = "patternProperties"
	allowedPropertiesOtherwise         = "otherwise"
	allowedPropertiesNamePlaceholder   = "namePlaceholder"
)

// PatternSchema is one pattern rule of an allowed-properties expression: a
// compiled field-name pattern, its source text, and the placeholder-bound
// predicate that values of matching fields must satisfy.
type PatternSchema struct {
	pattern    string
	re         *regexp.Regexp
	expression *PlaceholderExpression
}

// NewPatternSchema compiles the pattern and pairs it with the given
// placeholder expression.
func NewPatternSchema(pattern string, expression *PlaceholderExpression) (PatternSchema, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return PatternSchema{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if expression == nil {
		return PatternSchema{}, fmt.Errorf("pattern %q requires an expression", pattern)
	}
	return PatternSchema{pattern: pattern, re: re, expression: expression}, nil
}

// Pattern returns the pattern source text.
func (p PatternSchema) Pattern() string { return p.pattern }

// Expression returns the placeholder-bound predicate.
func (p PatternSchema) Expression() *PlaceholderExpression { return p.expression }

// clone recompiles the pattern from source and deep-clones the expression.
func (p PatternSchema) clone() PatternSchema {
	out, _ := NewPatternSchema(p.pattern, p.expression.Clone())
	return out
}

// AllowedPropertiesExpression classifies every field of an object:
//
//   - fields named in the allowed set are permitted with no further check;
//   - fields whose name partially matches a pattern rule must satisfy every
//     matching rule's expression;
//   - fields covered by neither fall to the otherwise policy, which is
//     either a placeholder-bound expression or a plain boolean.
//
// The object matches when every field is permitted. The expression is built
// once and immutable thereafter.
type AllowedPropertiesExpression struct {
	taggable
	properties        map[string]struct{}
	patternProperties []PatternSchema
	otherwise         *PlaceholderExpression
	boolOtherwise     bool
	namePlaceholder   string
}

// NewAllowedProperties creates the expression with an expression-valued
// otherwise policy. The name placeholder must be non-empty.
func NewAllowedProperties(properties []string, patternProperties []PatternSchema, otherwise *PlaceholderExpression, namePlaceholder string) (*AllowedPropertiesExpression, error) {
	if namePlaceholder == "" {
		return nil, fmt.Errorf("allowed properties with an otherwise expression requires a name placeholder")
	}
	if otherwise == nil {
		return nil, fmt.Errorf("otherwise expression must not be nil")
	}
	e := &AllowedPropertiesExpression{
		properties:        propertySet(properties),
		patternProperties: patternProperties,
		otherwise:         otherwise,
		namePlaceholder:   namePlaceholder,
	}
	return e, nil
}

// NewAllowedPropertiesWithDefault creates the expression with a boolean
// otherwise policy: true permits uncovered fields unconditionally, false
// rejects them. The name placeholder must be non-empty whenever pattern
// rules are present.
func NewAllowedPropertiesWithDefault(properties []string, patternProperties []PatternSchema, otherwise bool, namePlaceholder string) (*AllowedPropertiesExpression, error) {
	if len(patternProperties) > 0 && namePlaceholder == "" {
		return nil, fmt.Errorf("allowed properties with pattern rules requires a name placeholder")
	}
	e := &AllowedPropertiesExpression{
		properties:        propertySet(properties),
		patternProperties: patternProperties,
		boolOtherwise:     otherwise,
		namePlaceholder:   namePlaceholder,
	}
	return e, nil
}

func propertySet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Properties returns the allowed field names, sorted.
func (e *AllowedPropertiesExpression) Properties() []string {
	names := make([]string, 0, len(e.properties))
	for n := range e.properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PatternProperties returns the pattern rules in original order.
func (e *AllowedPropertiesExpression) PatternProperties() []PatternSchema {
	return e.patternProperties
}

// NamePlaceholder returns the shared placeholder symbol.
func (e *AllowedPropertiesExpression) NamePlaceholder() string {
	return e.namePlaceholder
}

// Otherwise returns the otherwise expression, or nil when the policy is the
// boolean returned by OtherwiseBool.
func (e *AllowedPropertiesExpression) Otherwise() *PlaceholderExpression {
	return e.otherwise
}

// OtherwiseBool returns the boolean otherwise policy. Meaningful only when
// Otherwise returns nil.
func (e *AllowedPropertiesExpression) OtherwiseBool() bool {
	return e.boolOtherwise
}

// Matches classifies every field of the document. The first field that fails
// a matching pattern rule or the otherwise policy rejects the whole object.
func (e *AllowedPropertiesExpression) Matches(doc document.Document) bool {
	for _, field := range doc {
		checkOtherwise := true

		if _, ok := e.properties[field.Name]; ok {
			checkOtherwise = false
		}

		// A field name can match several pattern rules at once; every
		// matching rule's expression must accept the value.
		for _, rule := range e.patternProperties {
			if rule.re.MatchString(field.Name) {
				checkOtherwise = false
				if !rule.expression.Filter().MatchesElement(field.Value) {
					return false
				}
			}
		}

		if checkOtherwise {
			if e.otherwise != nil {
				if !e.otherwise.Filter().MatchesElement(field.Value) {
					return false
				}
			} else if !e.boolOtherwise {
				return false
			}
		}
	}
	return true
}

// MatchesElement fails for non-object values and otherwise delegates to
// Matches on the embedded object.
func (e *AllowedPropertiesExpression) MatchesElement(v document.Value) bool {
	obj, ok := v.ObjectValue()
	if !ok {
		return false
	}
	return e.Matches(obj)
}

// Clone deep-copies the expression: the allowed-name set, every pattern rule
// (recompiling each pattern from its source text), the otherwise policy and
// any attached tag. The clone shares no mutable state with the original.
func (e *AllowedPropertiesExpression) Clone() Expression {
	out := &AllowedPropertiesExpression{
		properties:      propertySet(e.Properties()),
		namePlaceholder: e.namePlaceholder,
		boolOtherwise:   e.boolOtherwise,
	}
	if len(e.patternProperties) > 0 {
		out.patternProperties = make([]PatternSchema, len(e.patternProperties))
		for i, rule := range e.patternProperties {
			out.patternProperties[i] = rule.clone()
		}
	}
	if e.otherwise != nil {
		out.otherwise = e.otherwise.Clone()
	}
	out.SetTag(e.tag.Clone())
	return out
}

// Equivalent compares allowed names as sets, the placeholder symbol exactly,
// the otherwise policy structurally, and the pattern rules as an unordered
// multiset keyed by pattern source text and expression equivalence.
func (e *AllowedPropertiesExpression) Equivalent(other Expression) bool {
	o, ok := other.(*AllowedPropertiesExpression)
	if !ok {
		return false
	}

	if len(e.properties) != len(o.properties) {
		return false
	}
	for n := range e.properties {
		if _, ok := o.properties[n]; !ok {
			return false
		}
	}

	if e.otherwise != nil {
		if !e.otherwise.Equivalent(o.otherwise) {
			return false
		}
	} else if o.otherwise != nil || e.boolOtherwise != o.boolOtherwise {
		return false
	}

	if e.namePlaceholder != o.namePlaceholder {
		return false
	}

	return patternRulesPermutation(e.patternProperties, o.patternProperties)
}

// patternRulesPermutation reports whether a bijection exists between the two
// rule lists pairing rules with identical pattern text and equivalent
// expressions.
func patternRulesPermutation(a, b []PatternSchema) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ra := range a {
		found := false
		for i, rb := range b {
			if used[i] {
				continue
			}
			if ra.pattern == rb.pattern && ra.expression.Equivalent(rb.expression) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Serialize renders the canonical document form. Allowed names are emitted
// sorted; re-parsing treats them as a set. Pattern rules keep their original
// order.
func (e *AllowedPropertiesExpression) Serialize() document.Document {
	props := make([]document.Value, 0, len(e.properties))
	for _, n := range e.Properties() {
		props = append(props, document.String(n))
	}

	body := document.Document{
		{Name: allowedPropertiesProperties, Value: document.Array(props...)},
		{Name: allowedPropertiesNamePlaceholder, Value: document.String(e.namePlaceholder)},
	}

	patterns := make([]document.Value, 0, len(e.patternProperties))
	for _, rule := range e.patternProperties {
		patterns = append(patterns, document.Object(document.Document{
			{Name: "regex", Value: document.Regex(rule.pattern)},
			{Name: "expression", Value: document.Object(rule.expression.Filter().Serialize())},
		}))
	}
	body = body.Append(allowedPropertiesPatternProperties, document.Array(patterns...))

	if e.otherwise != nil {
		body = body.Append(allowedPropertiesOtherwise, document.Object(e.otherwise.Filter().Serialize()))
	} else {
		body = body.Append(allowedPropertiesOtherwise, document.Bool(e.boolOtherwise))
	}

	return document.Document{{Name: AllowedPropertiesName, Value: document.Object(body)}}
}
