// Package validator binds compiled schemas to collections.
//
// A Registry holds one compiled validator per collection. Attach compiles a
// schema document and registers it; Validate checks a document against the
// collection's validator before a write is accepted:
//
//	reg, _ := validator.NewRegistry(validator.WithLogger(logger))
//	if _, err := reg.Attach(ctx, "users", schema); err != nil {
//		// schema failed to compile
//	}
//	if err := reg.Validate(ctx, "users", doc); err != nil {
//		// document rejected, or collection has no validator
//	}
//
// The registry is safe for concurrent use. Compiled expression trees are
// immutable, so validation takes only a read lock.
//
// An optional Store persists attached schema documents so validators survive
// restarts; RedisStore is the provided implementation. Optional OpenTelemetry
// meter and tracer providers instrument compile counts, rejection counts,
// match durations and per-validation spans.
package validator
