// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"code.hybscloud.com/stream"
)

// EvenOdd emits ("even_event", i) or ("odd_event", i) for i from option
// start (default 0) up to each received max. A negative max ends the job.
// Option interval paces the emission.
func EvenOdd(cfg stream.Config) (stream.Job, error) {
	start, err := cfg.Int("start")
	if err != nil {
		return nil, err
	}
	interval, err := cfg.Duration("interval", 0)
	if err != nil {
		return nil, err
	}
	if interval < 0 {
		return nil, fmt.Errorf("%w: interval %v", ErrNegativeInput, interval)
	}
	return stream.JobFunc(func(w *stream.Worker) error {
		for {
			m := w.Receive()
			max, err := strconv.ParseInt(strings.TrimSpace(m.Payload), 10, 64)
			if err != nil {
				return fmt.Errorf("even_odd: bad value %q: %w", m.Payload, err)
			}
			if max < 0 {
				return nil
			}
			for i := start; i <= max; i++ {
				event := "odd_event"
				if i%2 == 0 {
					event = "even_event"
				}
				w.Emit(event, strconv.FormatInt(i, 10))
				if interval > 0 {
					time.Sleep(interval)
				}
			}
		}
	}), nil
}
