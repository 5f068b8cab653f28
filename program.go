// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"

	"code.hybscloud.com/kont"
)

// programHandler handles worker effects and string error effects.
// Worker ops run against the session. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type programHandler[R any] struct {
	w      *Worker
	errCtx *kont.ErrorContext[string]
}

// Dispatch implements kont.Handler for the composed Worker+Error handler.
// Dispatch order: Worker → Error.
func (h programHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if wop, ok := op.(workerDispatcher); ok {
		return wop.DispatchWorker(h.w), true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[string]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[string, R](h.errCtx.Err), false
		}
		return v, true
	}
	panic("stream: unhandled effect in programHandler")
}

// Exec runs a program on w. Returns Right with the program's result, or
// Left with the message passed to Throw.
func Exec[R any](w *Worker, program kont.Eff[R]) kont.Either[string, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[string, R]](program, func(r R) kont.Either[string, R] {
		return kont.Right[string, R](r)
	})
	var errCtx kont.ErrorContext[string]
	h := programHandler[R]{w: w, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// Program adapts an effect-style body to Job. A Throw fails the session
// with the thrown message; anything else completes it.
func Program[R any](program kont.Eff[R]) Job {
	return JobFunc(func(w *Worker) error {
		result := Exec(w, program)
		if msg, ok := result.GetLeft(); ok {
			return errors.New(msg)
		}
		return nil
	})
}
