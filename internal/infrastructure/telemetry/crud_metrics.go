package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Operation outcomes reported by CRUDMetrics
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// CRUDMetrics counts and times CRUD operations per entity. A nil *CRUDMetrics
// records nothing.
type CRUDMetrics struct {
	operations *Counter
	duration   *Histogram
	pageSize   *Histogram
}

// NewCRUDMetrics creates the CRUD instruments on meter.
func NewCRUDMetrics(meter metric.Meter) (*CRUDMetrics, error) {
	operations, err := NewCounter(meter,
		"campus_crud_operations_total",
		"Total number of CRUD operations by entity, operation and outcome",
		"{operation}",
	)
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "campus_crud_operation_duration_seconds",
		Description: "CRUD operation latency in seconds",
		Unit:        "s",
		Boundaries:  OperationDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	pageSize, err := NewHistogram(meter, HistogramOpts{
		Name:        "campus_crud_list_items",
		Description: "Number of items returned by list operations",
		Unit:        "{item}",
		Boundaries:  []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
	if err != nil {
		return nil, err
	}

	return &CRUDMetrics{operations: operations, duration: duration, pageSize: pageSize}, nil
}

// Observe records one completed operation that started at start.
func (m *CRUDMetrics) Observe(ctx context.Context, entity, operation, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.operations.Inc(ctx,
		AttrEntity.String(entity),
		AttrOperation.String(operation),
		AttrOutcome.String(outcome),
	)
	m.duration.RecordDuration(ctx, time.Since(start),
		AttrEntity.String(entity),
		AttrOperation.String(operation),
	)
}

// ObserveList records how many items a list operation returned.
func (m *CRUDMetrics) ObserveList(ctx context.Context, entity string, items int) {
	if m == nil {
		return
	}
	m.pageSize.Record(ctx, float64(items), AttrEntity.String(entity))
}
