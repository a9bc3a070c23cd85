package document

import (
	"testing"
)

func TestValueKinds(t *testing.T) {
	if got := String("x").Kind(); got != TypeString {
		t.Errorf("expected TypeString, got %v", got)
	}
	if got := Int(1).Kind(); got != TypeInt {
		t.Errorf("expected TypeInt, got %v", got)
	}
	if got := Long(1).Kind(); got != TypeLong {
		t.Errorf("expected TypeLong, got %v", got)
	}
	if got := Double(1.5).Kind(); got != TypeDouble {
		t.Errorf("expected TypeDouble, got %v", got)
	}
	if got := Bool(true).Kind(); got != TypeBool {
		t.Errorf("expected TypeBool, got %v", got)
	}
	if got := Null().Kind(); got != TypeNull {
		t.Errorf("expected TypeNull, got %v", got)
	}
	if got := Regex("^a").Kind(); got != TypeRegex {
		t.Errorf("expected TypeRegex, got %v", got)
	}
	if got := Array(Int(1)).Kind(); got != TypeArray {
		t.Errorf("expected TypeArray, got %v", got)
	}
	if got := Object(nil).Kind(); got != TypeObject {
		t.Errorf("expected TypeObject, got %v", got)
	}

	var zero Value
	if zero.Kind() != TypeNull {
		t.Errorf("zero Value must be null, got %v", zero.Kind())
	}
}

func TestTypeIsNumeric(t *testing.T) {
	for _, typ := range []Type{TypeInt, TypeLong, TypeDouble} {
		if !typ.IsNumeric() {
			t.Errorf("expected %v to be numeric", typ)
		}
	}
	for _, typ := range []Type{TypeNull, TypeObject, TypeArray, TypeString, TypeBool, TypeRegex} {
		if typ.IsNumeric() {
			t.Errorf("expected %v to not be numeric", typ)
		}
	}
}

func TestCompareNumbers(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"int vs int", Int(1), Int(2), -1},
		{"int vs long", Int(5), Long(5), 0},
		{"long vs double", Long(3), Double(2.5), 1},
		{"double vs int", Double(2.5), Int(3), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			if !ok {
				t.Fatal("expected values to be comparable")
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCompareStrings(t *testing.T) {
	got, ok := Compare(String("a"), String("b"))
	if !ok || got != -1 {
		t.Errorf("expected (-1, true), got (%d, %v)", got, ok)
	}
}

func TestCompareIncomparable(t *testing.T) {
	if _, ok := Compare(Int(1), String("1")); ok {
		t.Error("number and string must not be comparable")
	}
	if _, ok := Compare(Bool(true), Bool(false)); ok {
		t.Error("booleans must not be ordered")
	}
}

func TestValueEqual(t *testing.T) {
	if !Int(5).Equal(Double(5.0)) {
		t.Error("numeric values with equal magnitude must be equal across kinds")
	}
	if Int(5).Equal(String("5")) {
		t.Error("number and string must not be equal")
	}
	if !Array(Int(1), String("a")).Equal(Array(Int(1), String("a"))) {
		t.Error("equal arrays must compare equal")
	}
	if Array(Int(1)).Equal(Array(Int(2))) {
		t.Error("different arrays must not compare equal")
	}

	a := Object(Document{{Name: "x", Value: Int(1)}})
	b := Object(Document{{Name: "x", Value: Int(1)}})
	c := Object(Document{{Name: "y", Value: Int(1)}})
	if !a.Equal(b) {
		t.Error("equal objects must compare equal")
	}
	if a.Equal(c) {
		t.Error("objects with different fields must not compare equal")
	}
}

func TestDocumentGetAndLookup(t *testing.T) {
	doc := Document{
		{Name: "a", Value: Int(1)},
		{Name: "b", Value: Object(Document{
			{Name: "c", Value: String("deep")},
		})},
	}

	if v, ok := doc.Get("a"); !ok || !v.Equal(Int(1)) {
		t.Errorf("Get(a) = (%v, %v)", v, ok)
	}
	if _, ok := doc.Get("missing"); ok {
		t.Error("Get on a missing field must report false")
	}

	if v, ok := doc.Lookup("b.c"); !ok {
		t.Error("Lookup(b.c) must succeed")
	} else if s, _ := v.StringValue(); s != "deep" {
		t.Errorf("Lookup(b.c) = %q", s)
	}

	if _, ok := doc.Lookup("a.c"); ok {
		t.Error("Lookup through a non-object must fail")
	}
	if _, ok := doc.Lookup(""); ok {
		t.Error("Lookup with an empty path must fail")
	}
}

func TestDocumentClone(t *testing.T) {
	inner := Document{{Name: "x", Value: Int(1)}}
	doc := Document{{Name: "obj", Value: Object(inner)}}

	clone := doc.Clone()
	if !clone.Equal(doc) {
		t.Fatal("clone must equal the original")
	}

	// Mutating the original must not affect the clone.
	inner[0].Value = Int(99)
	v, _ := clone.Lookup("obj.x")
	if !v.Equal(Int(1)) {
		t.Error("clone shares state with the original")
	}
}
