// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"errors"

	"code.hybscloud.com/stream"
)

// Job names.
const (
	NameAccumulate    = "accumulate"
	NameEvenOdd       = "even_odd"
	NameFactorization = "factorization"
	NameSensor        = "sensor"
	NamePrimes        = "primes"
	NamePNGToBMP      = "png2bmp"
)

// ErrNegativeInput rejects a negative value where only non-negative ones make sense.
var ErrNegativeInput = errors.New("jobs: negative input")

var builtin = []struct {
	name    string
	factory stream.Factory
}{
	{NameAccumulate, Accumulate},
	{NameEvenOdd, EvenOdd},
	{NameFactorization, Factorization},
	{NameSensor, Sensor},
	{NamePrimes, Primes},
	{NamePNGToBMP, PNGToBMP},
}

// Register adds every built-in job to r.
func Register(r *stream.Registry) error {
	for _, b := range builtin {
		if err := r.Register(b.name, b.factory); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every built-in job.
func NewRegistry() *stream.Registry {
	r := stream.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
