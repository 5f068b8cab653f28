// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "time"

// Job is the body of a streaming job. Execute runs once per session on the
// session's worker goroutine. Returning nil completes the session; returning
// an error fails it. The body owns its termination semantics: the session
// never interprets message contents.
type Job interface {
	Execute(w *Worker) error
}

// JobFunc adapts an ordinary function to Job.
type JobFunc func(w *Worker) error

// Execute calls f(w).
func (f JobFunc) Execute(w *Worker) error { return f(w) }

// Factory validates a configuration and builds the Job for one session.
// A non-nil error rejects the configuration.
type Factory func(cfg Config) (Job, error)

// Worker is the body's view of its session.
// Its methods must only be called from the worker goroutine.
type Worker struct {
	s *session
}

// Receive blocks until the consumer sends a message and returns it.
// Receive is not interrupted by Close; bodies that must stop on Close
// should use Poll.
func (w *Worker) Receive() Message {
	return w.s.inbound.Read()
}

// TryReceive returns the next inbound message without blocking.
func (w *Worker) TryReceive() (Message, bool) {
	m, err := w.s.inbound.TryRead()
	return m, err == nil
}

// Poll waits up to timeout for the next inbound message.
func (w *Worker) Poll(timeout time.Duration) (Message, bool) {
	return w.s.inbound.Poll(timeout)
}

// Emit queues a message for the consumer. Never blocks.
func (w *Worker) Emit(name, payload string) {
	w.EmitMessage(Message{Name: name, Payload: payload})
}

// EmitMessage queues m for the consumer and wakes it. Never blocks.
func (w *Worker) EmitMessage(m Message) {
	w.s.outbound.Write(m)
	w.s.signal()
}

// Closed reports whether the consumer has requested close.
// Cancellation is cooperative: bodies poll this to stop promptly.
func (w *Worker) Closed() bool {
	return w.s.closed.Load() != 0
}

// Fail records err as the session failure. The first recorded error wins;
// the session fails once the body returns.
func (w *Worker) Fail(err error) {
	if err != nil {
		w.s.fail(err)
	}
}

// Serial returns the session serial.
func (w *Worker) Serial() Serial {
	return w.s.serial
}
