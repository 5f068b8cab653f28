// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/stream"
)

// drive runs the consumer loop of h until the terminal notification.
// Fails the test if the session does not finish in time.
func drive(tb testing.TB, h *stream.Handle) error {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := h.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		tb.Fatalf("session %d did not finish, state %v", h.Serial(), h.State())
	}
	return err
}

// recorder collects every dispatch of a session as "name=payload",
// "close" or "error=<text>".
type recorder struct {
	events []string
}

func record(h *stream.Handle) *recorder {
	r := &recorder{}
	h.OnDefault(func(m stream.Message) {
		r.events = append(r.events, m.Name+"="+m.Payload)
	})
	h.OnComplete(func() {
		r.events = append(r.events, stream.EventClose)
	})
	h.OnError(func(err error) {
		r.events = append(r.events, stream.EventError+"="+err.Error())
	})
	return r
}

// echo returns inbound messages until closed.
var echo = stream.JobFunc(func(w *stream.Worker) error {
	for !w.Closed() {
		if m, ok := w.Poll(5 * time.Millisecond); ok {
			w.EmitMessage(m)
		}
	}
	return nil
})
