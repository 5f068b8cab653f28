// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"errors"
	"fmt"
	"strconv"

	"code.hybscloud.com/stream"
)

var errMissingN = errors.New(`factorization: option "n" is required`)

// Factorization emits ("factor", p) for each prime factor of option n, in
// ascending order with multiplicity. n must be present and non-negative;
// 0 and 1 have no factors. The job stops early once closed.
func Factorization(cfg stream.Config) (stream.Job, error) {
	if !cfg.Has("n") {
		return nil, errMissingN
	}
	n, err := cfg.Int("n")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot factorize %d", ErrNegativeInput, n)
	}
	return stream.JobFunc(func(w *stream.Worker) error {
		n := n
		factor := func(p int64) { w.Emit("factor", strconv.FormatInt(p, 10)) }
		for n > 1 && n%2 == 0 {
			factor(2)
			n /= 2
		}
		for i := int64(3); i <= n/i; i += 2 {
			if w.Closed() {
				return nil
			}
			for n%i == 0 {
				factor(i)
				n /= i
			}
		}
		if n > 1 {
			factor(n)
		}
		return nil
	}), nil
}
