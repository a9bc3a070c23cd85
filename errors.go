package quarry

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common validation-layer conditions. These can be used
// with errors.Is().
var (
	// ErrDocumentRejected indicates a document failed validation against
	// its collection's schema.
	ErrDocumentRejected = errors.New("document rejected by collection schema")

	// ErrCollectionNotFound indicates no validator is attached to the
	// requested collection.
	ErrCollectionNotFound = errors.New("collection has no attached validator")

	// ErrInvalidSchema indicates a schema document that failed to compile.
	ErrInvalidSchema = errors.New("invalid schema document")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents document rejections and schema compile
	// failures.
	KindValidation = "validation"

	// KindStorage represents errors from the schema store.
	KindStorage = "storage"

	// KindInternal represents internal validation-layer errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed and the category of error. It implements the error
// interface and supports unwrapping, making it compatible with errors.Is()
// and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Registry.Validate").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error.
	Err error

	// Context provides additional context about the error (optional), such
	// as the collection name or document field.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("quarry: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("quarry: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("quarry: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either another *Error by Kind (and Op, when the target names
// one) or delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context merged
// in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any, len(ctx))
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: err}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewStorageError creates a new Error with KindStorage.
func NewStorageError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindStorage, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// CloseWithLog attempts to close the provided resource and logs any error at
// warning level. Intended for defer statements so cleanup errors are not
// silently ignored. If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
