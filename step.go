// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates a program until its first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
// A Throw completes the program with Left.
func Step[R any](program kont.Eff[R]) (kont.Either[string, R], *kont.Suspension[kont.Either[string, R]]) {
	wrapped := kont.ExprMap(kont.Reify(program), func(r R) kont.Either[string, R] {
		return kont.Right[string, R](r)
	})
	return kont.StepExpr(wrapped)
}

// Advance dispatches the suspended operation against w without blocking.
// Receive returns iox.ErrWouldBlock while the inbound mailbox is empty;
// the suspension is then unconsumed and may be retried.
//
// On success the suspension is consumed and the program advances to the
// next effect or to completion.
func Advance[R any](w *Worker, susp *kont.Suspension[kont.Either[string, R]]) (kont.Either[string, R], *kont.Suspension[kont.Either[string, R]], error) {
	if wop, ok := susp.Op().(workerDispatcher); ok {
		v, err := wop.TryDispatchWorker(w)
		if err != nil {
			var zero kont.Either[string, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	if eop, ok := susp.Op().(interface {
		DispatchError(ctx *kont.ErrorContext[string]) (kont.Resumed, bool)
	}); ok {
		var ctx kont.ErrorContext[string]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[string, R](ctx.Err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("stream: unhandled effect in Advance")
}

// Interruptible adapts a program to Job like Program, but the body also
// ends, completing the session, when Close is requested while the program
// waits for input. Between attempts the worker backs off adaptively.
func Interruptible[R any](program kont.Eff[R]) Job {
	return JobFunc(func(w *Worker) error {
		result, susp := Step(program)
		var bo iox.Backoff
		for susp != nil {
			var err error
			result, susp, err = Advance(w, susp)
			if err == nil {
				bo.Reset()
				continue
			}
			if w.Closed() {
				susp.Discard()
				return nil
			}
			bo.Wait()
		}
		if msg, ok := result.GetLeft(); ok {
			return errors.New(msg)
		}
		return nil
	})
}
