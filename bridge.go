// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "context"

// HandlerFunc receives a data message on the consumer side.
type HandlerFunc func(m Message)

// Bridge is the consumer side of a session. It drains the outbound mailbox
// on wake-up and dispatches each message, then the single terminal
// notification, to registered handlers.
//
// All Bridge methods must be called from the single consumer goroutine.
// Handlers run synchronously inside Poll or Run. A Poll made from inside a
// handler returns false without draining or dispatching.
type Bridge struct {
	s        *session
	named    map[string][]HandlerFunc
	fallback []HandlerFunc
	complete []func()
	failed   []func(error)
	batch    []Message
	polling  bool
	finished bool
	done     chan struct{}
}

func newBridge(s *session) *Bridge {
	return &Bridge{
		s:     s,
		named: make(map[string][]HandlerFunc),
		done:  make(chan struct{}),
	}
}

// On registers fn for data messages named name.
func (b *Bridge) On(name string, fn HandlerFunc) {
	b.named[name] = append(b.named[name], fn)
}

// OnDefault registers fn for data messages that have no named handler.
func (b *Bridge) OnDefault(fn HandlerFunc) {
	b.fallback = append(b.fallback, fn)
}

// OnComplete registers fn for the completion notification.
func (b *Bridge) OnComplete(fn func()) {
	b.complete = append(b.complete, fn)
}

// OnError registers fn for the failure notification.
func (b *Bridge) OnError(fn func(err error)) {
	b.failed = append(b.failed, fn)
}

// Wake returns the wake-up channel. A receive means "call Poll"; it carries
// no data and may arrive when there is nothing left to drain.
func (b *Bridge) Wake() <-chan struct{} {
	return b.s.wake
}

// Done is closed after the terminal notification has been dispatched.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Poll drains the outbound mailbox and dispatches everything found, in
// order. Once the worker has exited and its last messages are delivered,
// Poll dispatches the terminal notification and returns true. Later calls
// return true without dispatching. Poll never blocks.
func (b *Bridge) Poll() bool {
	if b.finished {
		return true
	}
	if b.polling {
		return false
	}
	b.polling = true
	defer func() { b.polling = false }()
	// Observe exit before draining: every message written before exit is
	// then guaranteed to be in this drain.
	exited := b.s.exited()
	b.batch = b.s.outbound.DrainAll(b.batch[:0])
	for _, m := range b.batch {
		b.dispatch(m)
	}
	clear(b.batch)
	if !exited || b.finished {
		return b.finished
	}
	b.finish()
	return true
}

// Run is a consumer loop: it polls on every wake-up until the terminal
// notification has been dispatched, then returns the session failure, or
// nil on completion. If ctx ends first Run returns ctx.Err(); the session
// keeps running and Run or Poll may be called again. Run called from inside
// a handler returns ErrReentrantRun.
func (b *Bridge) Run(ctx context.Context) error {
	if b.polling {
		return ErrReentrantRun
	}
	for !b.Poll() {
		select {
		case <-b.s.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return b.Err()
}

// Err returns the session failure once the worker has exited, else nil.
func (b *Bridge) Err() error {
	if !b.s.exited() {
		return nil
	}
	return b.s.failure()
}

func (b *Bridge) dispatch(m Message) {
	if hs, ok := b.named[m.Name]; ok {
		for _, h := range hs {
			h(m)
		}
		return
	}
	for _, h := range b.fallback {
		h(m)
	}
}

// finish dispatches exactly one terminal notification.
func (b *Bridge) finish() {
	b.finished = true
	b.s.state.Store(uint32(Closed))
	if err := b.s.failure(); err != nil {
		for _, h := range b.failed {
			h(err)
		}
	} else {
		for _, h := range b.complete {
			h()
		}
	}
	close(b.done)
}
