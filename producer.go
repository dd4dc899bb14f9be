package handoff

import (
	"context"
	"log/slog"
	"time"
)

// Producer drains a source in index order into a bounded queue, blocking
// inside Enqueue whenever the queue is full. The blocking call is the whole
// coordination protocol: the consumer's dequeue wakes the producer, so no
// separate notification API exists.
type Producer struct {
	*workerState

	source *Source
	queue  *BoundedQueue[Value]

	label   string
	logger  *slog.Logger
	metrics *metricsRecorder

	starter *starter
	stopper *stopper
	doneCh  chan struct{}
	runErr  error
}

func NewProducer(source *Source, queue *BoundedQueue[Value], opts ...Option) *Producer {
	var config config
	for _, opt := range opts {
		opt(&config)
	}

	logger := slog.Default()
	if config.logger != nil {
		logger = config.logger
	}

	label := "producer"
	if config.label != nil {
		label = *config.label
	}
	logger = logger.With("label", label)

	p := &Producer{
		workerState: &workerState{},
		source:      source,
		queue:       queue,
		label:       label,
		logger:      logger,
		doneCh:      make(chan struct{}),
	}

	if config.meterProvider != nil {
		if metrics, err := newMetricsRecorder(config.meterProvider, label); err != nil {
			logger.With("error", err).Warn("Failed to initialize producer metrics")
		} else {
			p.metrics = metrics
		}
	}

	p.starter = &starter{f: func() error {
		go p.run()
		return nil
	}}
	p.stopper = &stopper{f: func() error {
		return p.Wait()
	}}

	p.setState(StateCreated)
	return p
}

func (p *Producer) Label() string {
	return p.label
}

// Start spawns the producer goroutine. A second call returns
// ErrMultipleStart.
func (p *Producer) Start() error {
	return p.starter.Start()
}

// Wait blocks until the producer goroutine has terminated and returns its
// run error, if any.
func (p *Producer) Wait() error {
	<-p.doneCh
	return p.runErr
}

// Stop joins the producer. A second call returns ErrMultipleStop.
func (p *Producer) Stop() error {
	return p.stopper.Stop()
}

func (p *Producer) State() WorkerState {
	return p.getState()
}

func (p *Producer) run() {
	defer close(p.doneCh)
	// Unblocks the consumer on every exit path. Idempotent, so the normal
	// completion path may also close explicitly.
	defer p.queue.Close()

	p.transitionTo(StateRunning)
	p.logger.Info(logProducerStarted)

	for i := 0; i < p.source.Len(); i++ {
		v := p.source.At(i)

		start := time.Now()
		if err := p.queue.Enqueue(v); err != nil {
			p.logger.With("error", err).Error(logEnqueueError)
			p.runErr = err
			p.transitionTo(StateTerminated)
			return
		}
		p.metrics.recordEnqueueWait(context.Background(), time.Since(start))
		p.metrics.recordItemProduced(context.Background())

		p.logger.Debug(logValueProduced, "index", i, "value", v.String(), "queue_size", p.queue.Len())
	}

	p.queue.Close()
	p.logger.Info(logProducerFinished, "produced", p.source.Len())
	p.transitionTo(StateTerminated)
}

func (p *Producer) transitionTo(newState WorkerState) {
	oldState := p.getState()
	p.setState(newState)
	p.logger.Debug(logStateTransition, "from", oldState.String(), "to", newState.String())
}
