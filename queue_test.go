package handoff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transferlab/handoff"
)

func TestBoundedQueue_InvalidCapacity(t *testing.T) {
	q, err := handoff.NewBoundedQueue[handoff.Value](0)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, handoff.ErrInvalidCapacity)

	q, err = handoff.NewBoundedQueue[handoff.Value](-3)
	assert.Nil(t, q)
	assert.ErrorIs(t, err, handoff.ErrInvalidCapacity)
}

func TestBoundedQueue_FIFOOrder(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](4)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		require.NoError(t, q.TryEnqueue(i))
	}

	for i := 1; i <= 4; i++ {
		v, err := q.TryDequeue()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestBoundedQueue_TryOperationsAtBounds(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](2)
	require.NoError(t, err)

	_, err = q.TryDequeue()
	assert.ErrorIs(t, err, handoff.ErrQueueEmpty)

	require.NoError(t, q.TryEnqueue(1))
	require.NoError(t, q.TryEnqueue(2))

	// A full queue must refuse instead of silently overwriting.
	err = q.TryEnqueue(3)
	assert.ErrorIs(t, err, handoff.ErrQueueFull)
	assert.Equal(t, 2, q.Len())
}

func TestBoundedQueue_EnqueueBlocksWhenFull(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](1)
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(1))

	enqueued := make(chan struct{})
	go func() {
		defer close(enqueued)
		assert.NoError(t, q.Enqueue(2))
	}()

	select {
	case <-enqueued:
		t.Fatal("enqueue completed on a full queue without waiting")
	case <-time.After(50 * time.Millisecond):
	}

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	select {
	case <-enqueued:
	case <-time.After(time.Second):
		t.Fatal("enqueue was not woken by dequeue")
	}

	assert.Equal(t, 1, q.Len())
}

func TestBoundedQueue_DequeueBlocksWhenEmpty(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](1)
	require.NoError(t, err)

	dequeued := make(chan int)
	go func() {
		v, err := q.Dequeue()
		assert.NoError(t, err)
		dequeued <- v
	}()

	select {
	case <-dequeued:
		t.Fatal("dequeue completed on an empty queue without waiting")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.Enqueue(42))

	select {
	case v := <-dequeued:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("dequeue was not woken by enqueue")
	}
}

func TestBoundedQueue_CloseDrainsBufferedValues(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](3)
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	q.Close()

	assert.ErrorIs(t, q.Enqueue(3), handoff.ErrQueueClosed)
	assert.ErrorIs(t, q.TryEnqueue(3), handoff.ErrQueueClosed)

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, handoff.ErrQueueClosed)
	_, err = q.TryDequeue()
	assert.ErrorIs(t, err, handoff.ErrQueueClosed)
}

func TestBoundedQueue_CloseReleasesBlockedDequeue(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](1)
	require.NoError(t, err)

	released := make(chan error)
	go func() {
		_, err := q.Dequeue()
		released <- err
	}()

	time.Sleep(50 * time.Millisecond)
	q.Close()

	select {
	case err := <-released:
		assert.ErrorIs(t, err, handoff.ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("dequeue was not released by close")
	}
}

func TestBoundedQueue_CloseIsIdempotent(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](1)
	require.NoError(t, err)

	q.Close()
	q.Close()

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, handoff.ErrQueueClosed)
}

func TestBoundedQueue_StateTransitions(t *testing.T) {
	q, err := handoff.NewBoundedQueue[int](2)
	require.NoError(t, err)
	assert.Equal(t, handoff.QueueEmpty, q.State())

	require.NoError(t, q.Enqueue(1))
	assert.Equal(t, handoff.QueuePartial, q.State())

	require.NoError(t, q.Enqueue(2))
	assert.Equal(t, handoff.QueueFull, q.State())

	_, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, handoff.QueuePartial, q.State())

	_, err = q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, handoff.QueueEmpty, q.State())
}

func TestBoundedQueue_SizeStaysWithinBounds(t *testing.T) {
	const n = 1000

	q, err := handoff.NewBoundedQueue[int](8)
	require.NoError(t, err)

	go func() {
		for i := 0; i < n; i++ {
			assert.NoError(t, q.Enqueue(i))
		}
		q.Close()
	}()

	consumed := make(chan []int)
	go func() {
		var got []int
		for {
			v, err := q.Dequeue()
			if err != nil {
				break
			}
			got = append(got, v)
		}
		consumed <- got
	}()

	for {
		select {
		case got := <-consumed:
			require.Len(t, got, n)
			for i, v := range got {
				require.Equal(t, i, v)
			}
			return
		default:
			size := q.Len()
			require.GreaterOrEqual(t, size, 0)
			require.LessOrEqual(t, size, q.Cap())
		}
	}
}
