// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// segmentCapacity is the bounded capacity of each transport segment.
// A full tail segment links a fresh one, so the mailbox as a whole is unbounded.
const segmentCapacity = 64

// segment is one bounded lock-free link in a mailbox chain.
// next is published only after the segment has been filled, so a reader
// that observes next and then finds the segment empty may discard it.
type segment[T any] struct {
	q    lfq.SPSC[T]
	next atomic.Pointer[segment[T]]
}

func newSegment[T any]() *segment[T] {
	s := &segment[T]{}
	s.q.Init(segmentCapacity)
	return s
}

// Mailbox is an unbounded FIFO queue connecting goroutines.
//
// Storage is a chain of bounded SPSC segments from lfq. Writers are
// serialized among themselves and readers among themselves, so the
// single-producer single-consumer discipline of each segment holds while
// any number of goroutines write, read and drain concurrently.
// Every written item is returned by exactly one TryRead, Read, Poll or
// DrainAll call, in write order.
//
// A Mailbox must be created with NewMailbox.
type Mailbox[T any] struct {
	wmu  sync.Mutex
	tail *segment[T]

	rmu  sync.Mutex
	head *segment[T]

	// count is incremented before an item becomes visible and decremented
	// after it is removed, so it never underflows.
	count atomix.Uint32
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	s := newSegment[T]()
	return &Mailbox[T]{tail: s, head: s}
}

// Write appends item. It never blocks on readers and never fails.
func (m *Mailbox[T]) Write(item T) {
	m.count.Add(1)
	m.wmu.Lock()
	if err := m.tail.q.Enqueue(&item); err != nil {
		next := newSegment[T]()
		_ = next.q.Enqueue(&item)
		m.tail.next.Store(next)
		m.tail = next
	}
	m.wmu.Unlock()
}

// TryRead removes and returns the oldest item.
// Non-blocking: returns iox.ErrWouldBlock when the mailbox is empty.
func (m *Mailbox[T]) TryRead() (T, error) {
	m.rmu.Lock()
	v, err := m.dequeue()
	m.rmu.Unlock()
	return v, err
}

// Read blocks until an item is present, then removes and returns the oldest.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
// There is no way to interrupt a blocked Read other than writing an item.
func (m *Mailbox[T]) Read() T {
	var bo iox.Backoff
	for {
		v, err := m.TryRead()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Poll is Read bounded by timeout. It reports false if no item arrived in time.
// A non-positive timeout makes a single attempt.
func (m *Mailbox[T]) Poll(timeout time.Duration) (T, bool) {
	deadline := time.Now().Add(timeout)
	var bo iox.Backoff
	for {
		v, err := m.TryRead()
		if err == nil {
			return v, true
		}
		if !time.Now().Before(deadline) {
			var zero T
			return zero, false
		}
		bo.Wait()
	}
}

// DrainAll moves every item currently present into dst, oldest first, and
// returns the extended slice. It returns immediately, possibly with nothing
// appended. Items written concurrently either land in this drain or remain
// for the next one.
func (m *Mailbox[T]) DrainAll(dst []T) []T {
	m.rmu.Lock()
	for {
		v, err := m.dequeue()
		if err != nil {
			break
		}
		dst = append(dst, v)
	}
	m.rmu.Unlock()
	return dst
}

// Len returns a snapshot of the number of queued items.
// Under concurrency it may include items whose Write has not yet returned.
func (m *Mailbox[T]) Len() int {
	return int(m.count.Load())
}

// dequeue pops from the head segment, advancing past drained segments.
// Caller holds rmu.
func (m *Mailbox[T]) dequeue() (T, error) {
	for {
		v, err := m.head.q.Dequeue()
		if err == nil {
			m.count.Add(^uint32(0))
			return v, nil
		}
		next := m.head.next.Load()
		if next == nil {
			var zero T
			return zero, iox.ErrWouldBlock
		}
		// Everything written to head happened before next was published.
		if v, err = m.head.q.Dequeue(); err == nil {
			m.count.Add(^uint32(0))
			return v, nil
		}
		m.head = next
	}
}
