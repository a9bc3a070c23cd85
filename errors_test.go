package quarry

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrDocumentRejected",
			err:  ErrDocumentRejected,
			want: "document rejected by collection schema",
		},
		{
			name: "ErrCollectionNotFound",
			err:  ErrCollectionNotFound,
			want: "collection has no attached validator",
		},
		{
			name: "ErrInvalidSchema",
			err:  ErrInvalidSchema,
			want: "invalid schema document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorError verifies the Error() method formatting.
func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err: &Error{
				Op:   "Registry.Validate",
				Kind: KindValidation,
				Err:  ErrDocumentRejected,
			},
			want: "quarry: Registry.Validate (validation): document rejected by collection schema",
		},
		{
			name: "error without underlying error",
			err: &Error{
				Op:   "Registry.Detach",
				Kind: KindInternal,
			},
			want: "quarry: Registry.Detach: internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorErrorWithContext(t *testing.T) {
	err := NewNotFoundError("Registry.Validate", ErrCollectionNotFound).
		WithContext(map[string]any{"collection": "events"})

	got := err.Error()
	if !strings.Contains(got, "Registry.Validate") {
		t.Errorf("Error() = %q, missing operation", got)
	}
	if !strings.Contains(got, "collection") {
		t.Errorf("Error() = %q, missing context", got)
	}
}

// TestErrorUnwrap verifies errors.Is and errors.As reach the wrapped error.
func TestErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("store unavailable: %w", ErrCollectionNotFound)
	err := NewStorageError("RedisStore.Load", wrapped)

	if !errors.Is(err, ErrCollectionNotFound) {
		t.Error("errors.Is should reach the sentinel through the wrapper")
	}
	if unwrapped := errors.Unwrap(err); unwrapped != wrapped {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, wrapped)
	}
}

// TestErrorIsKindMatching verifies matching against an *Error template.
func TestErrorIsKindMatching(t *testing.T) {
	err := NewValidationError("Registry.Attach", ErrInvalidSchema)

	if !errors.Is(err, &Error{Kind: KindValidation}) {
		t.Error("should match a template with the same kind")
	}
	if !errors.Is(err, &Error{Kind: KindValidation, Op: "Registry.Attach"}) {
		t.Error("should match a template with the same kind and op")
	}
	if errors.Is(err, &Error{Kind: KindStorage}) {
		t.Error("should not match a template with a different kind")
	}
	if errors.Is(err, &Error{Kind: KindValidation, Op: "Registry.Validate"}) {
		t.Error("should not match a template with a different op")
	}
}

// TestErrorConstructors verifies each constructor sets the expected kind.
func TestErrorConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  *Error
		kind string
	}{
		{"not found", NewNotFoundError("op", cause), KindNotFound},
		{"validation", NewValidationError("op", cause), KindValidation},
		{"storage", NewStorageError("op", cause), KindStorage},
		{"internal", NewInternalError("op", cause), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Op != "op" {
				t.Errorf("Op = %q, want %q", tt.err.Op, "op")
			}
			if tt.err.Err != cause {
				t.Errorf("Err = %v, want %v", tt.err.Err, cause)
			}
		})
	}
}

// TestWithContext verifies that WithContext returns a copy carrying the
// merged context.
func TestWithContext(t *testing.T) {
	base := NewValidationError("Registry.Attach", ErrInvalidSchema)
	withCtx := base.WithContext(map[string]any{"collection": "events"})

	if base == withCtx {
		t.Error("WithContext should return a copy")
	}
	if len(base.Context) != 0 {
		t.Errorf("base context modified: %+v", base.Context)
	}
	if withCtx.Context["collection"] != "events" {
		t.Errorf("Context = %+v, want collection=events", withCtx.Context)
	}

	more := withCtx.WithContext(map[string]any{"validator_id": "v1"})
	if more.Context["collection"] != "events" || more.Context["validator_id"] != "v1" {
		t.Errorf("merged context = %+v", more.Context)
	}
}
