package validator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelMetrics holds the OpenTelemetry instruments for the registry. Created
// once when WithMeterProvider is configured and reused for every operation.
type otelMetrics struct {
	// compileCounter increments per schema compilation, with an outcome
	// attribute.
	compileCounter metric.Int64Counter

	// rejectCounter increments per rejected document.
	rejectCounter metric.Int64Counter

	// matchDuration records match evaluation time in milliseconds.
	matchDuration metric.Float64Histogram
}

func newOTelMetrics(mp metric.MeterProvider) (*otelMetrics, error) {
	meter := mp.Meter("github.com/quarrydb/quarry/validator")
	m := &otelMetrics{}
	var err error

	m.compileCounter, err = meter.Int64Counter(
		"validator.compile.count",
		metric.WithDescription("Number of schema compilations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create compile counter: %w", err)
	}

	m.rejectCounter, err = meter.Int64Counter(
		"validator.reject.count",
		metric.WithDescription("Number of documents rejected by validation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create reject counter: %w", err)
	}

	m.matchDuration, err = meter.Float64Histogram(
		"validator.match.duration",
		metric.WithDescription("Match evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create match duration histogram: %w", err)
	}

	return m, nil
}

// recordCompile records a schema compilation. Safe to call on a nil
// receiver, which makes metrics optional at every call site.
func (m *otelMetrics) recordCompile(ctx context.Context, collection string, ok bool) {
	if m == nil {
		return
	}
	m.compileCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.Bool("ok", ok),
	))
}

// recordMatch records the outcome and duration of one match evaluation.
func (m *otelMetrics) recordMatch(ctx context.Context, collection string, matched bool, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("collection", collection))
	m.matchDuration.Record(ctx, float64(d.Microseconds())/1000.0, attrs)
	if !matched {
		m.rejectCounter.Add(ctx, 1, attrs)
	}
}
