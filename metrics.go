package graphsearch

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for search operations.
var (
	tracer = otel.Tracer("graphsearch")
	meter  = otel.Meter("graphsearch")
)

var (
	searchTotal    metric.Int64Counter
	searchLatency  metric.Float64Histogram
	expandedNodes  metric.Int64Histogram
	metricsOnce    sync.Once
	metricsInitErr error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchTotal, err = meter.Int64Counter(
			"graphsearch_search_total",
			metric.WithDescription("Total number of completed searches"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		searchLatency, err = meter.Float64Histogram(
			"graphsearch_search_duration_seconds",
			metric.WithDescription("Duration of search operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		expandedNodes, err = meter.Int64Histogram(
			"graphsearch_expanded_nodes",
			metric.WithDescription("Number of states expanded per search"),
		)
		if err != nil {
			metricsInitErr = err
		}
	})
	return metricsInitErr
}

// startSearchSpan creates a span for one search.
func startSearchSpan(ctx context.Context, strategy Strategy) (context.Context, trace.Span) {
	return tracer.Start(ctx, "graphsearch.Search",
		trace.WithAttributes(
			attribute.String("graphsearch.strategy", strategy.String()),
		),
	)
}

// finishSearch records the outcome of a search on its span and in the metrics.
func finishSearch[NodeType comparable](
	ctx context.Context,
	span trace.Span,
	result Result[NodeType],
	duration time.Duration,
	err error,
) {
	span.SetAttributes(
		attribute.Int("graphsearch.expanded_nodes", result.ExpandedNodes),
		attribute.Bool("graphsearch.found", result.Found),
		attribute.Bool("graphsearch.truncated", result.Truncated),
		attribute.Int("graphsearch.path_length", len(result.Path)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if initMetrics() != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("strategy", result.Strategy.String()),
		attribute.Bool("found", result.Found),
		attribute.Bool("error", err != nil),
	)
	searchTotal.Add(ctx, 1, attrs)
	searchLatency.Record(ctx, duration.Seconds(), attrs)
	expandedNodes.Record(ctx, int64(result.ExpandedNodes), attrs)
}
