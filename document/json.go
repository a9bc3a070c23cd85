package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseJSON parses a JSON object into a Document, preserving field order.
// The top-level value must be an object. Numbers without a fraction or
// exponent become int or long depending on magnitude; everything else
// becomes double.
func ParseJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	doc, err := parseJSONObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("unexpected trailing data after JSON document")
	}
	return doc, nil
}

func parseJSONObject(dec *json.Decoder) (Document, error) {
	var doc Document
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read field name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", tok)
		}
		v, err := parseJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		doc = append(doc, Element{Name: name, Value: v})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read object end: %w", err)
	}
	return doc, nil
}

func parseJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			doc, err := parseJSONObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Object(doc), nil
		case '[':
			var elems []Value
			for dec.More() {
				v, err := parseJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, v)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("failed to read array end: %w", err)
			}
			return Array(elems...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberValue(t.String())
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v", tok)
}

// numberValue converts a JSON number literal into the narrowest numeric kind.
func numberValue(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return Int(int32(i)), nil
			}
			return Long(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", lit, err)
	}
	return Double(f), nil
}

// MarshalJSON encodes the document as a JSON object, preserving field order.
// Regex values are written as {"$regex": pattern}; the encoding is intended
// for storage and diagnostics of schema documents, which carry patterns as
// plain strings.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONDocument(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String renders the document as JSON for logging and debug output.
func (d Document) String() string {
	data, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid document: %v>", err)
	}
	return string(data)
}

func writeJSONDocument(buf *bytes.Buffer, d Document) error {
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := writeJSONValue(buf, e.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v Value) error {
	switch v.Kind() {
	case TypeNull:
		buf.WriteString("null")
	case TypeBool:
		b, _ := v.BoolValue()
		buf.WriteString(strconv.FormatBool(b))
	case TypeString:
		s, _ := v.StringValue()
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(data)
	case TypeRegex:
		pattern, _ := v.RegexValue()
		data, err := json.Marshal(pattern)
		if err != nil {
			return err
		}
		buf.WriteString(`{"$regex":`)
		buf.Write(data)
		buf.WriteByte('}')
	case TypeInt, TypeLong:
		i, _ := v.IntValue()
		buf.WriteString(strconv.FormatInt(i, 10))
	case TypeDouble:
		f, _ := v.Float()
		data, err := json.Marshal(f)
		if err != nil {
			return err
		}
		buf.Write(data)
	case TypeArray:
		arr, _ := v.ArrayValue()
		buf.WriteByte('[')
		for i, e := range arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case TypeObject:
		obj, _ := v.ObjectValue()
		return writeJSONDocument(buf, obj)
	default:
		return fmt.Errorf("cannot encode value of type %s", v.Kind())
	}
	return nil
}
