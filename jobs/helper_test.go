// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/jobs"
)

// start starts the named built-in job.
func start(tb testing.TB, name string, cfg stream.Config) (*stream.Handle, *[]string) {
	tb.Helper()
	h, err := jobs.NewRegistry().Start(name, cfg)
	if err != nil {
		tb.Fatalf("Start(%q): %v", name, err)
	}
	events := &[]string{}
	h.OnDefault(func(m stream.Message) {
		*events = append(*events, m.Name+"="+m.Payload)
	})
	h.OnComplete(func() { *events = append(*events, stream.EventClose) })
	h.OnError(func(err error) { *events = append(*events, stream.EventError) })
	return h, events
}

// drive runs the consumer loop of h until the terminal notification.
func drive(tb testing.TB, h *stream.Handle) error {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := h.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		tb.Fatalf("session %d did not finish, state %v", h.Serial(), h.State())
	}
	return err
}
