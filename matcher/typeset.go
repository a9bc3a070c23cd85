package matcher

import (
	"fmt"

	"github.com/quarrydb/quarry/document"
)

// TypeSet describes the set of value types a TypeExpression accepts: either
// a single concrete kind, or all numeric kinds at once ("number").
type TypeSet struct {
	// AllNumbers accepts int, long and double. When set, Kind is ignored.
	AllNumbers bool

	// Kind is the single accepted type when AllNumbers is false.
	Kind document.Type
}

// Contains reports whether a value of type t is in the set.
func (s TypeSet) Contains(t document.Type) bool {
	if s.AllNumbers {
		return t.IsNumeric()
	}
	return s.Kind == t
}

// Alias returns the type alias string used in serialized form.
func (s TypeSet) Alias() string {
	if s.AllNumbers {
		return "number"
	}
	return s.Kind.String()
}

// ParseTypeAlias resolves a type alias, as used by the schema "type" keyword
// and the serialized $type operator, into a TypeSet. Recognized aliases:
// object, array, string, int, long, double, number, bool, null, regex.
func ParseTypeAlias(alias string) (TypeSet, error) {
	switch alias {
	case "number":
		return TypeSet{AllNumbers: true}, nil
	case "object":
		return TypeSet{Kind: document.TypeObject}, nil
	case "array":
		return TypeSet{Kind: document.TypeArray}, nil
	case "string":
		return TypeSet{Kind: document.TypeString}, nil
	case "int":
		return TypeSet{Kind: document.TypeInt}, nil
	case "long":
		return TypeSet{Kind: document.TypeLong}, nil
	case "double":
		return TypeSet{Kind: document.TypeDouble}, nil
	case "bool":
		return TypeSet{Kind: document.TypeBool}, nil
	case "null":
		return TypeSet{Kind: document.TypeNull}, nil
	case "regex":
		return TypeSet{Kind: document.TypeRegex}, nil
	}
	return TypeSet{}, fmt.Errorf("unknown type alias %q", alias)
}
