package handoff

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsItemsTransferred = "handoff_items_transferred_total"
	metricsEnqueueWait      = "handoff_enqueue_wait_microseconds"
	metricsDequeueWait      = "handoff_dequeue_wait_microseconds"
)

type metricsRecorder struct {
	itemsTransferred metric.Int64Counter
	enqueueWait      metric.Int64Histogram
	dequeueWait      metric.Int64Histogram
}

func newMetricsRecorder(mp metric.MeterProvider, label string) (*metricsRecorder, error) {
	meter := mp.Meter("handoff", metric.WithInstrumentationAttributes(
		attribute.String("label", label),
	))

	itemsTransferred, err := meter.Int64Counter(
		metricsItemsTransferred,
		metric.WithDescription("Total number of values moved through the queue"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	enqueueWait, err := meter.Int64Histogram(
		metricsEnqueueWait,
		metric.WithDescription("Time the producer spent inside Enqueue, including blocking on a full queue"),
		metric.WithUnit("μs"),
	)
	if err != nil {
		return nil, err
	}

	dequeueWait, err := meter.Int64Histogram(
		metricsDequeueWait,
		metric.WithDescription("Time the consumer spent inside Dequeue, including blocking on an empty queue"),
		metric.WithUnit("μs"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsRecorder{
		itemsTransferred: itemsTransferred,
		enqueueWait:      enqueueWait,
		dequeueWait:      dequeueWait,
	}, nil
}

func (m *metricsRecorder) recordItemProduced(ctx context.Context) {
	if m == nil {
		return
	}

	m.itemsTransferred.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("side", "producer"),
		),
	)
}

func (m *metricsRecorder) recordItemConsumed(ctx context.Context) {
	if m == nil {
		return
	}

	m.itemsTransferred.Add(
		ctx,
		1,
		metric.WithAttributes(
			attribute.String("side", "consumer"),
		),
	)
}

func (m *metricsRecorder) recordEnqueueWait(ctx context.Context, duration time.Duration) {
	if m == nil {
		return
	}

	m.enqueueWait.Record(
		ctx,
		duration.Microseconds(),
	)
}

func (m *metricsRecorder) recordDequeueWait(ctx context.Context, duration time.Duration) {
	if m == nil {
		return
	}

	m.dequeueWait.Record(
		ctx,
		duration.Microseconds(),
	)
}
