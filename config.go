// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Config is the open key/value configuration handed to a job factory.
// Keys a job does not know are ignored. Missing numeric keys read as zero
// unless the job validates more strictly.
type Config map[string]any

// Has reports whether key is present.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Int returns key as an integer. Missing keys read as 0. Integer kinds,
// integral floats and decimal strings are accepted.
func (c Config) Int(key string) (int64, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case bool:
		return 0, fmt.Errorf("option %q: bool is not a number", key)
	case float32, float64:
		// cast truncates fractions.
		if f := cast.ToFloat64(n); f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("option %q: %v is not an integer", key, f)
		}
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("option %q: %d overflows int64", key, n)
		}
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("option %q: %d overflows int64", key, n)
		}
	case string:
		v = strings.TrimSpace(n)
	case json.Number:
		v = n.String()
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return i, nil
}

// String returns key as a string, or def when missing.
// Values cast cannot convert are formatted with fmt.
func (c Config) String(key, def string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Duration returns key as a duration, or def when missing.
// Numbers are milliseconds; strings are Go durations or bare milliseconds.
func (c Config) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return def, nil
	}
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		s := strings.TrimSpace(d)
		if ms, err := cast.ToInt64E(s); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
		pd, err := cast.ToDurationE(s)
		if err != nil {
			return 0, fmt.Errorf("option %q: %w", key, err)
		}
		return pd, nil
	}
	ms, err := c.Int(key)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
