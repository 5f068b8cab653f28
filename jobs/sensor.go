// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"code.hybscloud.com/stream"
)

const defaultSensorInterval = 50 * time.Millisecond

// Position is a sampled point in the unit cube.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample is the JSON payload of a "position_sample" message.
type Sample struct {
	Sensor   string   `json:"sensor"`
	Position Position `json:"position"`
}

// Sensor emits ("position_sample", JSON Sample) every option interval
// (default 50ms) until closed. Option name labels the samples, option
// samples caps their number (0 means unlimited) and option seed makes the
// positions reproducible.
func Sensor(cfg stream.Config) (stream.Job, error) {
	name := cfg.String("name", "default sensor")
	interval, err := cfg.Duration("interval", defaultSensorInterval)
	if err != nil {
		return nil, err
	}
	if interval < 0 {
		return nil, fmt.Errorf("%w: interval %v", ErrNegativeInput, interval)
	}
	limit, err := cfg.Int("samples")
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: samples %d", ErrNegativeInput, limit)
	}
	seeded := cfg.Has("seed")
	seed, err := cfg.Int("seed")
	if err != nil {
		return nil, err
	}
	return stream.JobFunc(func(w *stream.Worker) error {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		if seeded {
			rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
		coord := func() float64 { return rng.Float64()*2 - 1 }
		for n := int64(0); !w.Closed() && (limit == 0 || n < limit); n++ {
			b, err := json.Marshal(Sample{
				Sensor:   name,
				Position: Position{X: coord(), Y: coord(), Z: coord()},
			})
			if err != nil {
				return err
			}
			w.Emit("position_sample", string(b))
			if interval > 0 {
				time.Sleep(interval)
			}
		}
		return nil
	}), nil
}
