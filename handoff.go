package handoff

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrQueueClosed     = errors.New("queue closed")
	ErrQueueFull       = errors.New("queue full")
	ErrQueueEmpty      = errors.New("queue empty")
	ErrDestinationFull = errors.New("destination full")
	ErrOrderViolation  = errors.New("order violation")
	ErrEmptySource     = errors.New("empty source")
	ErrMultipleStart   = errors.New("multiple start")
	ErrMultipleStop    = errors.New("multiple stop")
)

type config struct {
	label         *string
	logger        *slog.Logger
	capacity      int
	meterProvider metric.MeterProvider
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithLabel(label string) Option {
	return func(c *config) {
		c.label = &label
	}
}

// WithCapacity overrides the default queue capacity of max(1, N/2).
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}
