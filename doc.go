// Package quarry is the document validation layer of the Quarry document
// database.
//
// Administrators attach a declarative schema to a collection; every insert
// and update is then checked against the compiled schema before the write is
// accepted. The layer is split into four packages:
//
//   - document: the ordered, semi-structured document model shared by
//     schemas and the documents they validate.
//   - matcher: the match expression tree compiled schemas evaluate against
//     documents, including the allowed-properties node.
//   - jsonschema: the schema compiler translating schema documents into
//     match expression trees.
//   - validator: the collection registry binding compiled schemas to
//     collections, with persistence and instrumentation.
//
// This root package holds the error types shared across the layer.
package quarry
