package handoff

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Consumer drains the bounded queue into a destination, preserving FIFO
// order. It blocks inside Dequeue whenever the queue is empty and terminates
// once the queue is closed and fully drained.
type Consumer struct {
	*workerState

	queue       *BoundedQueue[Value]
	destination *Destination

	label   string
	logger  *slog.Logger
	metrics *metricsRecorder

	starter *starter
	stopper *stopper
	doneCh  chan struct{}
	runErr  error
}

func NewConsumer(queue *BoundedQueue[Value], destination *Destination, opts ...Option) *Consumer {
	var config config
	for _, opt := range opts {
		opt(&config)
	}

	logger := slog.Default()
	if config.logger != nil {
		logger = config.logger
	}

	label := "consumer"
	if config.label != nil {
		label = *config.label
	}
	logger = logger.With("label", label)

	c := &Consumer{
		workerState: &workerState{},
		queue:       queue,
		destination: destination,
		label:       label,
		logger:      logger,
		doneCh:      make(chan struct{}),
	}

	if config.meterProvider != nil {
		if metrics, err := newMetricsRecorder(config.meterProvider, label); err != nil {
			logger.With("error", err).Warn("Failed to initialize consumer metrics")
		} else {
			c.metrics = metrics
		}
	}

	c.starter = &starter{f: func() error {
		go c.run()
		return nil
	}}
	c.stopper = &stopper{f: func() error {
		return c.Wait()
	}}

	c.setState(StateCreated)
	return c
}

func (c *Consumer) Label() string {
	return c.label
}

// Start spawns the consumer goroutine. A second call returns
// ErrMultipleStart.
func (c *Consumer) Start() error {
	return c.starter.Start()
}

// Wait blocks until the consumer goroutine has terminated and returns its
// run error, if any.
func (c *Consumer) Wait() error {
	<-c.doneCh
	return c.runErr
}

// Stop joins the consumer. A second call returns ErrMultipleStop.
func (c *Consumer) Stop() error {
	return c.stopper.Stop()
}

func (c *Consumer) State() WorkerState {
	return c.getState()
}

func (c *Consumer) run() {
	defer close(c.doneCh)

	c.transitionTo(StateRunning)
	c.logger.Info(logConsumerStarted)

	for {
		start := time.Now()
		v, err := c.queue.Dequeue()
		if errors.Is(err, ErrQueueClosed) {
			break
		}
		c.metrics.recordDequeueWait(context.Background(), time.Since(start))

		if err := c.destination.Append(v); err != nil {
			c.logger.With("error", err).Error(logAppendError)
			c.runErr = err
			c.transitionTo(StateTerminated)
			return
		}
		c.metrics.recordItemConsumed(context.Background())

		c.logger.Debug(logValueConsumed, "index", c.destination.Len()-1, "value", v.String(), "queue_size", c.queue.Len())
	}

	c.logger.Info(logConsumerFinished, "consumed", c.destination.Len())
	c.transitionTo(StateTerminated)
}

func (c *Consumer) transitionTo(newState WorkerState) {
	oldState := c.getState()
	c.setState(newState)
	c.logger.Debug(logStateTransition, "from", oldState.String(), "to", newState.String())
}
