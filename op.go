// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// workerDispatcher is the structural interface for worker effects.
// DispatchWorker runs on the worker goroutine and may block (Receive).
// TryDispatchWorker never blocks: it returns iox.ErrWouldBlock when the
// operation cannot complete yet.
type workerDispatcher interface {
	DispatchWorker(w *Worker) kont.Resumed
	TryDispatchWorker(w *Worker) (kont.Resumed, error)
}

// Receive is the effect operation for reading the next inbound message.
// Perform(Receive{}) blocks until the consumer sends one.
type Receive struct {
	kont.Phantom[Message]
}

// DispatchWorker handles Receive on the inbound mailbox.
func (Receive) DispatchWorker(w *Worker) kont.Resumed {
	return w.Receive()
}

// TryDispatchWorker handles Receive without blocking.
func (Receive) TryDispatchWorker(w *Worker) (kont.Resumed, error) {
	m, ok := w.TryReceive()
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	return m, nil
}

// Emit is the effect operation for sending a message to the consumer.
// Perform(Emit{Message: m}) queues m. Never blocks.
type Emit struct {
	kont.Phantom[struct{}]
	Message Message
}

// DispatchWorker handles Emit on the outbound mailbox.
func (e Emit) DispatchWorker(w *Worker) kont.Resumed {
	w.EmitMessage(e.Message)
	return struct{}{}
}

// TryDispatchWorker handles Emit. The outbound mailbox is unbounded.
func (e Emit) TryDispatchWorker(w *Worker) (kont.Resumed, error) {
	return e.DispatchWorker(w), nil
}

// IsClosed is the effect operation for observing the closed flag.
// Perform(IsClosed{}) resumes with true once the consumer requested close.
type IsClosed struct {
	kont.Phantom[bool]
}

// DispatchWorker handles IsClosed. Never blocks.
func (IsClosed) DispatchWorker(w *Worker) kont.Resumed {
	return w.Closed()
}

// TryDispatchWorker handles IsClosed.
func (c IsClosed) TryDispatchWorker(w *Worker) (kont.Resumed, error) {
	return c.DispatchWorker(w), nil
}
