// Package matcher implements the match expression tree that compiled schemas
// evaluate against documents.
//
// Every node implements the Expression interface: boolean evaluation against
// a whole document or a single value, deep cloning, structural equivalence,
// and serialization back to document form. Nodes form an owned tree; a parent
// exclusively owns its children and cloning never shares state.
//
// Leaf nodes (type check, comparison, regex, string length, existence)
// constrain the value at a dotted field path. Combinators (and, or, not, xor)
// operate over owned child lists. ObjectMatchExpression evaluates its child
// against the object embedded at a path, and AllowedPropertiesExpression
// classifies every field of an object against an allowed-name set, pattern
// rules and a fallback policy.
//
// Matching never returns an error: a value of the wrong type simply fails the
// predicate. A constructed tree is immutable and safe for concurrent use.
//
// Parse reverses Serialize, so any tree produced here round-trips through its
// serialized document form.
package matcher
