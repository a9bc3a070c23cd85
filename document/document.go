package document

import (
	"strings"
)

// Type identifies the kind of a Value. The set is closed: every value stored
// in a document is exactly one of these kinds.
type Type int

const (
	// TypeNull is the null value.
	TypeNull Type = iota

	// TypeObject is a nested document.
	TypeObject

	// TypeArray is an ordered list of values.
	TypeArray

	// TypeString is a UTF-8 string.
	TypeString

	// TypeInt is a 32-bit signed integer.
	TypeInt

	// TypeLong is a 64-bit signed integer.
	TypeLong

	// TypeDouble is a 64-bit IEEE 754 floating point number.
	TypeDouble

	// TypeBool is a boolean.
	TypeBool

	// TypeRegex is a regular expression pattern. Only the pattern source is
	// stored; compilation happens where the pattern is used.
	TypeRegex
)

// String returns the canonical type alias, matching the names accepted by the
// schema "type" keyword.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeRegex:
		return "regex"
	}
	return "unknown"
}

// IsNumeric reports whether values of this type participate in numeric
// comparison. Int, long and double compare against each other by value.
func (t Type) IsNumeric() bool {
	return t == TypeInt || t == TypeLong || t == TypeDouble
}

// Value is a single document value. Exactly one kind is active; the zero
// Value is null.
type Value struct {
	kind Type
	i    int64
	f    float64
	s    string
	b    bool
	arr  []Value
	obj  Document
}

// Null returns the null value.
func Null() Value { return Value{kind: TypeNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: TypeString, s: s} }

// Int returns a 32-bit integer value.
func Int(i int32) Value { return Value{kind: TypeInt, i: int64(i)} }

// Long returns a 64-bit integer value.
func Long(i int64) Value { return Value{kind: TypeLong, i: i} }

// Double returns a floating point value.
func Double(f float64) Value { return Value{kind: TypeDouble, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: TypeBool, b: b} }

// Regex returns a regular expression value holding the given pattern source.
func Regex(pattern string) Value { return Value{kind: TypeRegex, s: pattern} }

// Array returns an array value over the given elements.
func Array(elems ...Value) Value { return Value{kind: TypeArray, arr: elems} }

// Object returns a value embedding the given document.
func Object(d Document) Value { return Value{kind: TypeObject, obj: d} }

// Kind returns the type of the value.
func (v Value) Kind() Type { return v.kind }

// IsNumber reports whether the value is int, long or double.
func (v Value) IsNumber() bool { return v.kind.IsNumeric() }

// StringValue returns the string contents if the value is a string.
func (v Value) StringValue() (string, bool) {
	return v.s, v.kind == TypeString
}

// RegexValue returns the pattern source if the value is a regex.
func (v Value) RegexValue() (string, bool) {
	return v.s, v.kind == TypeRegex
}

// BoolValue returns the boolean if the value is a bool.
func (v Value) BoolValue() (bool, bool) {
	return v.b, v.kind == TypeBool
}

// IntValue returns the integer contents if the value is an int or long.
func (v Value) IntValue() (int64, bool) {
	return v.i, v.kind == TypeInt || v.kind == TypeLong
}

// Float returns the value widened to float64 if it is numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case TypeInt, TypeLong:
		return float64(v.i), true
	case TypeDouble:
		return v.f, true
	}
	return 0, false
}

// ObjectValue returns the embedded document if the value is an object.
func (v Value) ObjectValue() (Document, bool) {
	return v.obj, v.kind == TypeObject
}

// ArrayValue returns the elements if the value is an array.
func (v Value) ArrayValue() ([]Value, bool) {
	return v.arr, v.kind == TypeArray
}

// Compare orders two values. It returns -1, 0 or 1 and true when the values
// are comparable: both numeric (compared by widened value) or both strings
// (compared lexicographically). All other pairings are not ordered.
func Compare(a, b Value) (int, bool) {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.Float()
		bf, _ := b.Float()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
	if a.kind == TypeString && b.kind == TypeString {
		return strings.Compare(a.s, b.s), true
	}
	return 0, false
}

// Equal reports structural equality. Numeric values of different kinds are
// equal when their widened values are equal; everything else requires the
// same kind and equal contents. Object fields compare in order.
func (v Value) Equal(other Value) bool {
	if v.IsNumber() && other.IsNumber() {
		vf, _ := v.Float()
		of, _ := other.Float()
		return vf == of
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case TypeNull:
		return true
	case TypeString, TypeRegex:
		return v.s == other.s
	case TypeBool:
		return v.b == other.b
	case TypeArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

// Clone returns a deep copy of the value. The copy shares no mutable state
// with the original.
func (v Value) Clone() Value {
	switch v.kind {
	case TypeArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{kind: TypeArray, arr: arr}
	case TypeObject:
		return Value{kind: TypeObject, obj: v.obj.Clone()}
	}
	return v
}

// Element is a named field of a document.
type Element struct {
	Name  string
	Value Value
}

// Document is an ordered sequence of named fields. Field order is preserved
// through parsing, cloning and serialization.
type Document []Element

// Get returns the value of the first field with the given name.
func (d Document) Get(name string) (Value, bool) {
	for _, e := range d {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Lookup resolves a dotted field path, descending through nested objects.
// It returns false if any path component is missing or any intermediate
// value is not an object.
func (d Document) Lookup(path string) (Value, bool) {
	if path == "" {
		return Value{}, false
	}
	cur := d
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := cur.Get(part)
		if !ok {
			return Value{}, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		obj, ok := v.ObjectValue()
		if !ok {
			return Value{}, false
		}
		cur = obj
	}
	return Value{}, false
}

// Append returns the document with a field appended.
func (d Document) Append(name string, v Value) Document {
	return append(d, Element{Name: name, Value: v})
}

// Equal reports field-by-field equality, including order.
func (d Document) Equal(other Document) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i].Name != other[i].Name || !d[i].Value.Equal(other[i].Value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i := range d {
		out[i] = Element{Name: d[i].Name, Value: d[i].Value.Clone()}
	}
	return out
}
