// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"runtime"

	"code.hybscloud.com/atomix"
)

// session is the worker side of a streaming job.
//
// The worker goroutine is the sole reader of inbound and the sole writer of
// outbound; the consumer is the sole writer of inbound and the sole reader
// of outbound. Besides the mailboxes only the closed flag, the state and the
// error slot are shared, all through atomics. err is written at most once,
// guarded by errSet, and read only after done is closed.
type session struct {
	inbound  *Mailbox[Message]
	outbound *Mailbox[Message]
	closed   atomix.Uint32
	state    atomix.Uint32
	errSet   atomix.Uint32
	err      error
	done     chan struct{}
	wake     chan struct{}
	notify   func()
	serial   Serial
}

// options configures a session.
type options struct {
	notify func()
}

// Option configures Start.
type Option func(*options)

// WithNotify registers fn as the "post to consumer" primitive of a host
// event loop. fn is called from the worker goroutine after every emitted
// message and once after the worker exits, in addition to the Wake channel.
// It must not block and must not call back into the Bridge.
func WithNotify(fn func()) Option {
	return func(o *options) { o.notify = fn }
}

func newSession(opts []Option) *session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &session{
		inbound:  NewMailbox[Message](),
		outbound: NewMailbox[Message](),
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
		notify:   o.notify,
		serial:   nextSerial(),
	}
	s.state.Store(uint32(Created))
	return s
}

// start runs job on a dedicated goroutine locked to its OS thread.
func (s *session) start(job Job) {
	s.state.Store(uint32(Running))
	go s.run(job)
}

// reject fails the session without ever running a body.
func (s *session) reject(err error) {
	s.fail(err)
	s.exit()
}

func (s *session) run(job Job) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer s.exit()
	returned := false
	defer func() {
		if r := recover(); r != nil {
			s.fail(&PanicError{Value: r})
		} else if !returned {
			s.fail(ErrWorkerExit)
		}
	}()
	err := job.Execute(&Worker{s: s})
	returned = true
	if err != nil {
		s.fail(err)
	}
}

// fail records err in the error slot. The first error wins.
func (s *session) fail(err error) {
	if s.errSet.CompareAndSwap(0, 1) {
		s.err = err
	}
}

// exit publishes the worker's final state and wakes the consumer.
// Every message emitted by the body happens before done is closed.
func (s *session) exit() {
	if s.errSet.Load() != 0 {
		s.state.Store(uint32(Failing))
	} else {
		s.state.Store(uint32(Completing))
	}
	close(s.done)
	s.signal()
}

// exited reports whether the worker has returned (or never started).
func (s *session) exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// signal is the content-free wake-up: a coalescing one-slot send.
// It only means "check the outbound mailbox".
func (s *session) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
	if s.notify != nil {
		s.notify()
	}
}

// failure returns the recorded error. Valid only after done is closed.
func (s *session) failure() error {
	if s.errSet.Load() == 0 {
		return nil
	}
	return s.err
}
