package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DesignerMetrics counts layout designer activity.
type DesignerMetrics struct {
	saves  metric.Int64Counter
	loads  metric.Int64Counter
	blocks metric.Int64Histogram
}

// NewDesignerMetrics registers the layout counters on the global meter.
func NewDesignerMetrics() (*DesignerMetrics, error) {
	meter := otel.Meter(instrumentationName)

	saves, err := meter.Int64Counter(
		"layout.saves",
		metric.WithDescription("Layout save attempts by scope and result"),
	)
	if err != nil {
		return nil, err
	}

	loads, err := meter.Int64Counter(
		"layout.loads",
		metric.WithDescription("Layout loads by scope and whether a layout existed"),
	)
	if err != nil {
		return nil, err
	}

	blocks, err := meter.Int64Histogram(
		"layout.blocks",
		metric.WithDescription("Number of blocks in saved layouts"),
	)
	if err != nil {
		return nil, err
	}

	return &DesignerMetrics{saves: saves, loads: loads, blocks: blocks}, nil
}

// RecordSave counts one save. A nil receiver is a no-op.
func (m *DesignerMetrics) RecordSave(ctx context.Context, scope string, blocks int, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.saves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("result", result),
	))

	if err == nil {
		m.blocks.Record(ctx, int64(blocks), metric.WithAttributes(attribute.String("scope", scope)))
	}
}

// RecordLoad counts one load. A nil receiver is a no-op.
func (m *DesignerMetrics) RecordLoad(ctx context.Context, scope string, found bool) {
	if m == nil {
		return
	}

	m.loads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.Bool("found", found),
	))
}
