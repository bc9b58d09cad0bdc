package dispatch

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Mailbox is an unbounded multi-producer single-consumer queue. Any number
// of goroutines may Push; a single goroutine drains it through Recv.
//
// Producers append to a linked list with compare-and-swap. A consumer
// goroutine forwards items to the Recv channel in list order, so the
// delivery order is the order in which appends succeeded.
type Mailbox[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
	out  chan T

	closed    atomic.Bool
	producers atomic.Int64 // pushes in progress
	size      atomic.Int64

	mu   sync.Mutex
	cond *sync.Cond
}

// NewMailbox creates a mailbox and starts its consumer goroutine.
func NewMailbox[T any]() *Mailbox[T] {
	sentinel := &node[T]{}
	q := &Mailbox[T]{
		out: make(chan T),
	}
	q.cond = sync.NewCond(&q.mu)
	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	go q.consume()
	return q
}

// Push appends v. It returns false if the mailbox is closed.
func (q *Mailbox[T]) Push(v T) bool {
	q.producers.Add(1)
	defer q.wake()
	defer q.producers.Add(-1)

	if q.closed.Load() {
		return false
	}

	// Counted before linking so the consumer's decrement never runs first.
	q.size.Add(1)
	n := &node[T]{value: v}
	var backoff uint8
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				// Another producer may advance tail first; either way it moves.
				q.tail.CompareAndSwap(tail, n)
				return true
			}
		} else {
			// Help a producer that appended but has not moved tail yet.
			q.tail.CompareAndSwap(tail, next)
		}

		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// Recv returns the channel items are delivered on. It is closed once the
// mailbox is closed and every pushed item has been delivered.
func (q *Mailbox[T]) Recv() <-chan T {
	return q.out
}

// Close stops further pushes. Items already pushed are still delivered.
func (q *Mailbox[T]) Close() {
	q.closed.Store(true)
	q.wake()
}

// IsClosed reports whether Close has been called.
func (q *Mailbox[T]) IsClosed() bool {
	return q.closed.Load()
}

// Len returns the number of items pushed but not yet delivered.
func (q *Mailbox[T]) Len() int {
	return int(q.size.Load())
}

func (q *Mailbox[T]) wake() {
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
}

// drained reports whether no item can arrive any more.
func (q *Mailbox[T]) drained() bool {
	return q.closed.Load() && q.producers.Load() == 0
}

func (q *Mailbox[T]) consume() {
	defer close(q.out)

	for {
		delivered := false
		for {
			head := q.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}
			delivered = true

			v := next.value
			q.head.Store(next)
			q.out <- v
			q.size.Add(-1)

			var zero T
			next.value = zero
		}
		if delivered {
			continue
		}

		q.mu.Lock()
		if q.head.Load().next.Load() == nil {
			if q.drained() {
				q.mu.Unlock()
				return
			}
			q.cond.Wait()
		}
		q.mu.Unlock()
	}
}
