package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quarrydb/quarry"
	"github.com/quarrydb/quarry/document"
	"github.com/quarrydb/quarry/jsonschema"
	"github.com/quarrydb/quarry/matcher"
)

// CollectionValidator is a compiled schema bound to a collection.
type CollectionValidator struct {
	// ID identifies this validator instance.
	ID uuid.UUID

	// Collection is the collection the validator is attached to.
	Collection string

	// Schema is the schema document the validator was compiled from.
	Schema document.Document

	// AttachedAt records when the validator was attached.
	AttachedAt time.Time

	expr matcher.Expression
}

// Expression returns the compiled match expression tree. The tree is
// immutable; callers needing an independent copy should Clone it.
func (v *CollectionValidator) Expression() matcher.Expression {
	return v.expr
}

// Registry holds one validator per collection and checks documents against
// them. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]*CollectionValidator

	logger  *slog.Logger
	store   Store
	metrics *otelMetrics
	tracer  trace.Tracer
}

// NewRegistry creates a registry configured by the given options.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Registry{
		collections: make(map[string]*CollectionValidator),
		logger:      cfg.logger,
		store:       cfg.store,
	}

	if cfg.meterProvider != nil {
		metrics, err := newOTelMetrics(cfg.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		r.metrics = metrics
	}
	if cfg.tracerProvider != nil {
		r.tracer = cfg.tracerProvider.Tracer("github.com/quarrydb/quarry/validator")
	}

	return r, nil
}

// Attach compiles the schema document and binds it to the collection,
// replacing any existing validator. When a store is configured, the schema
// is persisted before the validator becomes visible.
func (r *Registry) Attach(ctx context.Context, collection string, schema document.Document) (*CollectionValidator, error) {
	const op = "Registry.Attach"

	expr, err := jsonschema.Compile(schema)
	if err != nil {
		r.metrics.recordCompile(ctx, collection, false)
		return nil, quarry.NewValidationError(op, errors.Join(quarry.ErrInvalidSchema, err)).
			WithContext(map[string]any{"collection": collection})
	}

	if r.store != nil {
		if err := r.store.Save(ctx, collection, schema); err != nil {
			return nil, quarry.NewStorageError(op, err).
				WithContext(map[string]any{"collection": collection})
		}
	}

	v := &CollectionValidator{
		ID:         uuid.New(),
		Collection: collection,
		Schema:     schema.Clone(),
		AttachedAt: time.Now(),
		expr:       expr,
	}

	r.mu.Lock()
	r.collections[collection] = v
	r.mu.Unlock()

	r.metrics.recordCompile(ctx, collection, true)
	r.logger.Info("validator attached",
		"collection", collection,
		"validator_id", v.ID)

	return v, nil
}

// Detach removes the collection's validator and deletes the persisted
// schema, if a store is configured. Detaching a collection without a
// validator is a no-op.
func (r *Registry) Detach(ctx context.Context, collection string) error {
	const op = "Registry.Detach"

	if r.store != nil {
		if err := r.store.Delete(ctx, collection); err != nil {
			return quarry.NewStorageError(op, err).
				WithContext(map[string]any{"collection": collection})
		}
	}

	r.mu.Lock()
	_, existed := r.collections[collection]
	delete(r.collections, collection)
	r.mu.Unlock()

	if existed {
		r.logger.Info("validator detached", "collection", collection)
	}
	return nil
}

// Validator returns the validator attached to the collection.
func (r *Registry) Validator(collection string) (*CollectionValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.collections[collection]
	return v, ok
}

// Collections returns the names of all collections with a validator.
func (r *Registry) Collections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	return names
}

// Validate checks the document against the collection's validator. It
// returns nil when the document is accepted, quarry.ErrCollectionNotFound
// when no validator is attached, and quarry.ErrDocumentRejected when the
// document fails validation.
func (r *Registry) Validate(ctx context.Context, collection string, doc document.Document) error {
	const op = "Registry.Validate"

	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "validator.Validate",
			trace.WithAttributes(attribute.String("collection", collection)))
		defer span.End()
	}

	r.mu.RLock()
	v, ok := r.collections[collection]
	r.mu.RUnlock()

	if !ok {
		return quarry.NewNotFoundError(op, quarry.ErrCollectionNotFound).
			WithContext(map[string]any{"collection": collection})
	}

	start := time.Now()
	matched := v.expr.Matches(doc)
	r.metrics.recordMatch(ctx, collection, matched, time.Since(start))

	if !matched {
		r.logger.Warn("document rejected",
			"collection", collection,
			"validator_id", v.ID)
		return quarry.NewValidationError(op, quarry.ErrDocumentRejected).
			WithContext(map[string]any{"collection": collection})
	}

	return nil
}

// LoadFromStore rebuilds validators from every schema persisted in the
// configured store. Schemas that no longer compile are skipped with a
// logged error rather than aborting the whole load.
func (r *Registry) LoadFromStore(ctx context.Context) error {
	const op = "Registry.LoadFromStore"

	if r.store == nil {
		return quarry.NewInternalError(op, fmt.Errorf("no store configured"))
	}

	schemas, err := r.store.LoadAll(ctx)
	if err != nil {
		return quarry.NewStorageError(op, err)
	}

	for collection, schema := range schemas {
		expr, err := jsonschema.Compile(schema)
		if err != nil {
			r.logger.Error("skipping stored schema that fails to compile",
				"collection", collection,
				"error", err)
			continue
		}
		v := &CollectionValidator{
			ID:         uuid.New(),
			Collection: collection,
			Schema:     schema,
			AttachedAt: time.Now(),
			expr:       expr,
		}
		r.mu.Lock()
		r.collections[collection] = v
		r.mu.Unlock()
	}

	r.logger.Info("validators loaded from store", "count", len(schemas))
	return nil
}
