// Package document provides the semi-structured document model shared by the
// schema compiler and the match expression tree.
//
// A Document is an ordered sequence of named fields. Order matters: schema
// documents are ordered mappings, and serialization must reproduce the order
// in which fields were written. Values are a closed set of kinds (object,
// array, string, int, long, double, bool, null, regex) with the three numeric
// kinds mutually comparable.
//
// # Construction
//
// Documents are built directly from element literals:
//
//	doc := document.Document{
//		{Name: "name", Value: document.String("quarry")},
//		{Name: "count", Value: document.Int(3)},
//	}
//
// or parsed from JSON or YAML bytes with order preserved:
//
//	doc, err := document.ParseJSON(data)
//	doc, err = document.ParseYAML(data)
//
// # Field Paths
//
// Lookup accepts a dotted path and descends through nested objects:
//
//	v, ok := doc.Lookup("settings.retention.days")
//
// An empty path always refers to the document itself and is never valid for
// Lookup.
package document
