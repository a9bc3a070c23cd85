package jsonschema

import (
	"fmt"
)

// Code classifies schema compile errors.
type Code string

const (
	// CodeUnknownKeyword indicates a keyword outside the recognized subset.
	CodeUnknownKeyword Code = "UNKNOWN_KEYWORD"

	// CodeDuplicateKeyword indicates a keyword repeated at one schema level.
	CodeDuplicateKeyword Code = "DUPLICATE_KEYWORD"

	// CodeTypeMismatch indicates a keyword value of the wrong type.
	CodeTypeMismatch Code = "TYPE_MISMATCH"

	// CodeMalformedShape indicates a keyword value of the right type but an
	// invalid shape (bad type alias, invalid pattern, non-integral bound).
	CodeMalformedShape Code = "MALFORMED_SHAPE"

	// CodeMissingCompanion indicates a keyword that requires another
	// keyword which is absent.
	CodeMissingCompanion Code = "MISSING_COMPANION"

	// CodeEmptyArray indicates a composition keyword with an empty array.
	CodeEmptyArray Code = "EMPTY_ARRAY"
)

// Error is a structured schema compile error. It carries the offending
// keyword and an error code so callers can produce precise diagnostics.
//
// Error supports errors.Is against a *Error template: a template matches
// when its Code matches and its Keyword is empty or equal.
type Error struct {
	// Code classifies the error.
	Code Code

	// Keyword is the schema keyword the error refers to.
	Keyword string

	// Message is a human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("jsonschema: keyword %q: %s (%s)", e.Keyword, e.Message, e.Code)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches a *Error template by Code, and by Keyword when the template
// names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	if t.Keyword != "" && t.Keyword != e.Keyword {
		return false
	}
	return t.Code != "" || t.Keyword != ""
}

func newUnknownKeyword(keyword string) *Error {
	return &Error{
		Code:    CodeUnknownKeyword,
		Keyword: keyword,
		Message: "unknown schema keyword",
	}
}

func newDuplicateKeyword(keyword string) *Error {
	return &Error{
		Code:    CodeDuplicateKeyword,
		Keyword: keyword,
		Message: "duplicate schema keyword",
	}
}

func newTypeMismatch(keyword, expected string) *Error {
	return &Error{
		Code:    CodeTypeMismatch,
		Keyword: keyword,
		Message: fmt.Sprintf("must be %s", expected),
	}
}

func newMalformedShape(keyword, detail string, cause error) *Error {
	return &Error{
		Code:    CodeMalformedShape,
		Keyword: keyword,
		Message: detail,
		Cause:   cause,
	}
}

func newMissingCompanion(keyword, requires string) *Error {
	return &Error{
		Code:    CodeMissingCompanion,
		Keyword: keyword,
		Message: fmt.Sprintf("requires keyword %q to be present", requires),
	}
}

func newEmptyArray(keyword string) *Error {
	return &Error{
		Code:    CodeEmptyArray,
		Keyword: keyword,
		Message: "must be a non-empty array",
	}
}
