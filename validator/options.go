package validator

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// options holds the configurable dependencies of a Registry.
type options struct {
	logger         *slog.Logger
	store          Store
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the structured logger used for attach, detach and
// rejection events. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStore sets the store used to persist attached schema documents.
// Without a store, validators live only in memory.
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMeterProvider enables OpenTelemetry metrics: compile counts, rejection
// counts and match durations.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithTracerProvider enables an OpenTelemetry span per Validate call.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}
