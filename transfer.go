package handoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Transfer wires a source, a bounded queue and a destination to one
// producer/consumer pair and runs the whole handoff to completion. The queue
// capacity defaults to half the source length, so the producer is guaranteed
// to hit a full queue at least once on any non-trivial source.
type Transfer struct {
	source      *Source
	destination *Destination
	queue       *BoundedQueue[Value]

	producer *Producer
	consumer *Consumer

	logger *slog.Logger
}

func NewTransfer(source *Source, opts ...Option) (*Transfer, error) {
	var config config
	for _, opt := range opts {
		opt(&config)
	}

	if source == nil || source.Len() == 0 {
		return nil, ErrEmptySource
	}

	logger := slog.Default()
	if config.logger != nil {
		logger = config.logger
	}

	label := "transfer"
	if config.label != nil {
		label = *config.label
	}

	capacity := config.capacity
	if capacity == 0 {
		capacity = max(1, source.Len()/2)
	}

	queue, err := NewBoundedQueue[Value](capacity)
	if err != nil {
		return nil, err
	}

	destination := NewDestination(source.Len())

	workerOpts := []Option{WithLogger(logger)}
	if config.meterProvider != nil {
		workerOpts = append(workerOpts, WithMeterProvider(config.meterProvider))
	}

	return &Transfer{
		source:      source,
		destination: destination,
		queue:       queue,
		producer:    NewProducer(source, queue, append(workerOpts, WithLabel(label+".producer"))...),
		consumer:    NewConsumer(queue, destination, append(workerOpts, WithLabel(label+".consumer"))...),
		logger:      logger.With("label", label),
	}, nil
}

// Run starts both workers and blocks until both have terminated. Worker
// errors are combined into a single multierror. Cancelling the context
// closes the queue, which deterministically releases whichever worker is
// blocked; ctx.Err() then joins the combined error.
func (t *Transfer) Run(ctx context.Context) error {
	t.logger.Info(logTransferStarted, "n", t.source.Len(), "capacity", t.queue.Cap())
	start := time.Now()

	var multierr *multierror.Error

	if err := t.producer.Start(); err != nil {
		return err
	}
	if err := t.consumer.Start(); err != nil {
		t.queue.Close()
		_ = t.producer.Wait()
		return err
	}

	var producerErr, consumerErr error
	waitCh := make(chan struct{})
	go func() {
		defer close(waitCh)
		producerErr = t.producer.Wait()
		consumerErr = t.consumer.Wait()
	}()

	select {
	case <-waitCh:
	case <-ctx.Done():
		t.logger.Warn(logRunCancelled)
		t.queue.Close()
		multierr = multierror.Append(multierr, ctx.Err())
		<-waitCh
	}

	if producerErr != nil {
		multierr = multierror.Append(multierr, producerErr)
	}
	if consumerErr != nil {
		multierr = multierror.Append(multierr, consumerErr)
	}

	t.logger.Info(logTransferFinished, "transferred", t.destination.Len(), "duration", time.Since(start))
	return multierr.ErrorOrNil()
}

// Verify checks the end-to-end ordering guarantee: the destination must
// equal the source value-for-value, including the numeric kind.
func (t *Transfer) Verify() error {
	if t.destination.Len() != t.source.Len() {
		return fmt.Errorf("%w: destination has %d values, source has %d", ErrOrderViolation, t.destination.Len(), t.source.Len())
	}

	for i := 0; i < t.source.Len(); i++ {
		if !t.destination.At(i).Equal(t.source.At(i)) {
			return fmt.Errorf("%w: index %d: got %s (%s), want %s (%s)",
				ErrOrderViolation, i,
				t.destination.At(i), t.destination.At(i).Kind(),
				t.source.At(i), t.source.At(i).Kind(),
			)
		}
	}

	return nil
}

func (t *Transfer) Source() *Source {
	return t.source
}

func (t *Transfer) Destination() *Destination {
	return t.destination
}

func (t *Transfer) Queue() *BoundedQueue[Value] {
	return t.queue
}

func (t *Transfer) Producer() *Producer {
	return t.producer
}

func (t *Transfer) Consumer() *Consumer {
	return t.consumer
}
