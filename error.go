// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownJob is returned by Registry.Start for an unregistered job name.
	ErrUnknownJob = errors.New("stream: unknown job")
	// ErrDuplicateJob is returned by Registry.Register when the name is taken.
	ErrDuplicateJob = errors.New("stream: duplicate job")
	// ErrReentrantRun is returned by Bridge.Run when called from a handler.
	ErrReentrantRun = errors.New("stream: Run called from a handler")
	// ErrWorkerExit fails a session whose body left its goroutine without
	// returning, as runtime.Goexit does.
	ErrWorkerExit = errors.New("stream: worker exited without returning")
)

// ConfigError reports a configuration rejected by a job factory.
// The session fails with it before any data message and without starting
// a worker goroutine.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "stream: invalid configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PanicError reports a panic recovered on a worker goroutine.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("stream: worker panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
