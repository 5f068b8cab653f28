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

// maxPrimeLimit bounds the sieve allocation.
const maxPrimeLimit = 1 << 26

// Primes sieves the primes below option limit. For every candidate it emits
// ("progress", percent) with two decimals, then a final ("primes", list)
// with the primes comma separated. Once closed it stops sieving and emits
// the primes found so far. Option interval paces the candidates.
func Primes(cfg stream.Config) (stream.Job, error) {
	limit, err := cfg.Int("limit")
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrNegativeInput, limit)
	}
	if limit > maxPrimeLimit {
		return nil, fmt.Errorf("primes: limit %d exceeds %d", limit, maxPrimeLimit)
	}
	interval, err := cfg.Duration("interval", 0)
	if err != nil {
		return nil, err
	}
	return stream.JobFunc(func(w *stream.Worker) error {
		composite := make([]bool, limit)
		var found []string
		for n := int64(2); n < limit && !w.Closed(); n++ {
			w.Emit("progress", strconv.FormatFloat(100*float64(n)/float64(limit), 'f', 2, 64))
			if !composite[n] {
				found = append(found, strconv.FormatInt(n, 10))
				for i := n * n; i < limit; i += n {
					composite[i] = true
				}
			}
			if interval > 0 {
				time.Sleep(interval)
			}
		}
		w.Emit("primes", strings.Join(found, ","))
		return nil
	}), nil
}
