// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "errors"

// errNilJob rejects factories that return neither a Job nor an error.
var errNilJob = errors.New("factory returned nil job")

// Handle is the caller's front for one session: it sends input, requests
// close and, through the embedded Bridge, observes output and the terminal
// notification. Observing Done is the only safe trigger to release it.
type Handle struct {
	*Bridge
}

// Start validates cfg through factory and starts the resulting job on its
// own worker goroutine. If the factory rejects cfg the session fails with a
// ConfigError without starting a goroutine; the failure is still delivered
// exactly once through the Bridge.
func Start(factory Factory, cfg Config, opts ...Option) *Handle {
	s := newSession(opts)
	h := &Handle{Bridge: newBridge(s)}
	job, err := factory(cfg)
	if err == nil && job == nil {
		err = errNilJob
	}
	if err != nil {
		s.reject(&ConfigError{Err: err})
		return h
	}
	s.start(job)
	return h
}

// StartJob starts an already configured job.
func StartJob(job Job, opts ...Option) *Handle {
	return Start(func(Config) (Job, error) { return job, nil }, nil, opts...)
}

// Send queues a message for the worker body. Once the worker has exited
// the message is dropped and Send reports false; this is not an error, the
// consumer may race the body's natural termination. Sending after Close is
// allowed so that end-of-input sentinels still reach the body.
func (h *Handle) Send(name, payload string) bool {
	if h.s.exited() {
		return false
	}
	h.s.inbound.Write(Message{Name: name, Payload: payload})
	return true
}

// Close requests cooperative cancellation. It only sets the closed flag;
// the body decides when to stop. Close is idempotent.
func (h *Handle) Close() {
	h.s.closed.Store(1)
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	return h.s.closed.Load() != 0
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return State(h.s.state.Load())
}

// Serial returns the session serial.
func (h *Handle) Serial() Serial {
	return h.s.serial
}
