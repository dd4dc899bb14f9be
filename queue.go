package handoff

import "sync"

// QueueState represents the position of the queue on its size axis
type QueueState int32

const (
	QueueEmpty QueueState = iota
	QueuePartial
	QueueFull
)

// String returns a human-readable representation of the queue state
func (s QueueState) String() string {
	switch s {
	case QueueEmpty:
		return "Empty"
	case QueuePartial:
		return "Partial"
	case QueueFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// BoundedQueue is a fixed-capacity FIFO buffer for a single producer and a
// single consumer. A ring buffer is guarded by one mutex; the two blocking
// conditions (not-full, not-empty) are awaited on separate condition
// variables so each side wakes only for the transition it cares about.
type BoundedQueue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	buf    []T
	head   int
	tail   int
	size   int
	closed bool
}

// NewBoundedQueue creates a queue with the given capacity. The capacity is
// fixed for the lifetime of the queue.
func NewBoundedQueue[T any](capacity int) (*BoundedQueue[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	q := &BoundedQueue[T]{buf: make([]T, capacity)}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Enqueue appends v at the tail, blocking while the queue is full. Returns
// ErrQueueClosed if the queue is closed before space becomes available.
func (q *BoundedQueue[T]) Enqueue(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == len(q.buf) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrQueueClosed
	}

	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++

	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns the head value, blocking while the queue is
// empty. Once the queue is closed, buffered values keep draining in order;
// ErrQueueClosed is returned only after the last one is gone.
func (q *BoundedQueue[T]) Dequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size == 0 {
		var zero T
		return zero, ErrQueueClosed
	}

	v := q.take()

	q.notFull.Signal()
	return v, nil
}

// TryEnqueue is the non-blocking variant of Enqueue. It returns ErrQueueFull
// instead of waiting, which lets tests observe the blocking contract without
// a goroutine.
func (q *BoundedQueue[T]) TryEnqueue(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.size == len(q.buf) {
		return ErrQueueFull
	}

	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++

	q.notEmpty.Signal()
	return nil
}

// TryDequeue is the non-blocking variant of Dequeue, returning ErrQueueEmpty
// instead of waiting.
func (q *BoundedQueue[T]) TryDequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		var zero T
		if q.closed {
			return zero, ErrQueueClosed
		}
		return zero, ErrQueueEmpty
	}

	v := q.take()

	q.notFull.Signal()
	return v, nil
}

func (q *BoundedQueue[T]) take() T {
	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v
}

// Close marks the queue as closed and wakes all waiting goroutines. Closing
// is how the producer signals that no further values will arrive; it is safe
// to call more than once.
func (q *BoundedQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

func (q *BoundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

func (q *BoundedQueue[T]) Cap() int {
	return len(q.buf)
}

// State reports where the queue sits on the Empty/Partial/Full axis.
func (q *BoundedQueue[T]) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.size {
	case 0:
		return QueueEmpty
	case len(q.buf):
		return QueueFull
	default:
		return QueuePartial
	}
}
