package document

import (
	"testing"
)

func TestParseJSONPreservesOrder(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	want := []string{"z", "a", "m"}
	if len(doc) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(doc))
	}
	for i, name := range want {
		if doc[i].Name != name {
			t.Errorf("field %d: expected %q, got %q", i, name, doc[i].Name)
		}
	}
}

func TestParseJSONNumberKinds(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"small": 5, "big": 5000000000, "frac": 2.5}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	v, _ := doc.Get("small")
	if v.Kind() != TypeInt {
		t.Errorf("small: expected int, got %v", v.Kind())
	}
	v, _ = doc.Get("big")
	if v.Kind() != TypeLong {
		t.Errorf("big: expected long, got %v", v.Kind())
	}
	v, _ = doc.Get("frac")
	if v.Kind() != TypeDouble {
		t.Errorf("frac: expected double, got %v", v.Kind())
	}
}

func TestParseJSONNested(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"a": {"b": [1, "two", null, true]}}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	v, ok := doc.Lookup("a.b")
	if !ok {
		t.Fatal("Lookup(a.b) failed")
	}
	arr, ok := v.ArrayValue()
	if !ok {
		t.Fatal("a.b is not an array")
	}
	if len(arr) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(arr))
	}
	if arr[0].Kind() != TypeInt || arr[1].Kind() != TypeString ||
		arr[2].Kind() != TypeNull || arr[3].Kind() != TypeBool {
		t.Errorf("unexpected element kinds: %v %v %v %v",
			arr[0].Kind(), arr[1].Kind(), arr[2].Kind(), arr[3].Kind())
	}
}

func TestParseJSONRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1, 2]`, `"str"`, `42`, `{"a":`} {
		if _, err := ParseJSON([]byte(input)); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"z": 1, "a": {"nested": "yes"}, "list": [1, 2.5]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	out, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	again, err := ParseJSON(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !again.Equal(doc) {
		t.Errorf("round trip changed the document: %s vs %s", doc, again)
	}
}
