// ABOUTME: Single-slot "latest value" broadcast with change notification for many receivers
// ABOUTME: Publishes overwrite the slot; receivers await versions newer than the one they last saw

// Package watch provides a watched value cell: one Sender publishes, any
// number of Receivers read the most recent value and wait for the next change.
// It is not a queue. Values published between two waits are coalesced and only
// the latest one is observed.
package watch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Receiver.Changed once the sender has been closed
// and the receiver has already seen the final value, or once the receiver
// itself has been closed.
var ErrClosed = errors.New("watch: channel closed")

// shared is the state reachable from both ends.
type shared[T comparable] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	closed  bool

	// notify is closed and replaced on every publish and on Close.
	notify chan struct{}

	receivers   int
	noReceivers chan struct{}
	noRecvOnce  sync.Once
}

// Sender publishes values. It is safe for concurrent use.
type Sender[T comparable] struct {
	s *shared[T]
}

// Receiver observes values. A single Receiver must not be used from several
// goroutines at once; hand each goroutine its own Clone instead. Close is the
// exception and may be called while another goroutine waits.
type Receiver[T comparable] struct {
	s       *shared[T]
	seen    uint64
	closed  atomic.Bool
	once    sync.Once
	cleanup runtime.Cleanup

	// done is closed by Close to wake a pending Changed.
	done chan struct{}
}

// New creates a channel holding initial and returns its two ends. The
// receiver starts out having seen initial.
func New[T comparable](initial T) (*Sender[T], *Receiver[T]) {
	s := &shared[T]{
		value:       initial,
		notify:      make(chan struct{}),
		noReceivers: make(chan struct{}),
	}
	return &Sender[T]{s: s}, s.subscribe()
}

// subscribe registers a receiver positioned at the current version.
func (s *shared[T]) subscribe() *Receiver[T] {
	s.mu.Lock()
	s.receivers++
	r := &Receiver[T]{s: s, seen: s.version, done: make(chan struct{})}
	s.mu.Unlock()

	// A receiver that is dropped without Close still releases its slot so
	// the sender can notice that nobody is listening.
	r.cleanup = runtime.AddCleanup(r, func(s *shared[T]) { s.release() }, s)
	return r
}

func (s *shared[T]) release() {
	s.mu.Lock()
	s.receivers--
	last := s.receivers == 0
	s.mu.Unlock()

	if last {
		s.noRecvOnce.Do(func() { close(s.noReceivers) })
	}
}

// publishLocked stores v and wakes every waiter. Must hold mu.
func (s *shared[T]) publishLocked(v T) {
	s.value = v
	s.version++
	close(s.notify)
	s.notify = make(chan struct{})
}

// Send stores v and notifies every receiver, even if v equals the current
// value. It is a no-op after Close.
func (tx *Sender[T]) Send(v T) {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	if tx.s.closed {
		return
	}
	tx.s.publishLocked(v)
}

// SendIfModified stores v only when it differs from the current value and
// reports whether receivers were notified.
func (tx *Sender[T]) SendIfModified(v T) bool {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	if tx.s.closed || tx.s.value == v {
		return false
	}
	tx.s.publishLocked(v)
	return true
}

// Borrow returns the current value.
func (tx *Sender[T]) Borrow() T {
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()
	return tx.s.value
}

// Subscribe returns a new receiver that will be notified of changes made
// after this call.
func (tx *Sender[T]) Subscribe() *Receiver[T] {
	return tx.s.subscribe()
}

// ReceiverCount returns the number of receivers not yet closed.
func (tx *Sender[T]) ReceiverCount() int {
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()
	return tx.s.receivers
}

// Closed is closed the first time the receiver count drops to zero.
func (tx *Sender[T]) Closed() <-chan struct{} {
	return tx.s.noReceivers
}

// Close marks the channel finished. Pending waiters wake up, observe any
// value they have not seen yet, and then get ErrClosed.
func (tx *Sender[T]) Close() {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	if tx.s.closed {
		return
	}
	tx.s.closed = true
	close(tx.s.notify)
}

// Borrow returns the current value without marking it as seen.
func (r *Receiver[T]) Borrow() T {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.value
}

// BorrowAndUpdate returns the current value and marks it as seen.
func (r *Receiver[T]) BorrowAndUpdate() T {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	r.seen = r.s.version
	return r.s.value
}

// HasChanged reports whether a value newer than the last seen one exists.
// It returns ErrClosed when nothing new is pending and no more values can come.
func (r *Receiver[T]) HasChanged() (bool, error) {
	if r.closed.Load() {
		return false, ErrClosed
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.version != r.seen {
		return true, nil
	}
	if r.s.closed {
		return false, ErrClosed
	}
	return false, nil
}

// Changed blocks until a value newer than the last seen one is published,
// then marks it as seen. Read it with Borrow.
func (r *Receiver[T]) Changed(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}

	for {
		r.s.mu.RLock()
		if r.s.version != r.seen {
			r.seen = r.s.version
			r.s.mu.RUnlock()
			return nil
		}
		if r.s.closed {
			r.s.mu.RUnlock()
			return ErrClosed
		}
		wait := r.s.notify
		r.s.mu.RUnlock()

		select {
		case <-wait:
		case <-r.done:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Clone returns an independent receiver that has seen what r has seen.
func (r *Receiver[T]) Clone() *Receiver[T] {
	c := r.s.subscribe()
	c.seen = r.seen
	return c
}

// Close releases the receiver and makes a pending Changed on it return
// ErrClosed. Once every receiver is closed the sender's Closed channel
// fires. Safe to call more than once.
func (r *Receiver[T]) Close() {
	r.once.Do(func() {
		r.closed.Store(true)
		close(r.done)
		r.cleanup.Stop()
		r.s.release()
	})
}
