// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stream couples a long-running background job to a single-threaded
// consumer: the job streams messages out while the consumer streams input in.
//
// Each session owns one worker goroutine, locked to its OS thread, and two
// mailboxes. The worker runs a [Job]; the consumer drives a [Bridge].
//
// # Architecture
//
//   - Transport: [Mailbox] is an unbounded FIFO built from bounded lock-free SPSC segments via [code.hybscloud.com/lfq]. Writes never block.
//   - Blocking: reads wait past [code.hybscloud.com/iox.ErrWouldBlock] with adaptive backoff; [Mailbox.Poll] bounds the wait.
//   - Lifecycle: Created → Running → (Completing | Failing) → Closed. See [State].
//   - Wake-up: a content-free, coalescing signal ([Bridge.Wake], [WithNotify]) tells the consumer to drain; payloads only travel through the mailbox.
//   - Errors: configuration errors, returned errors and recovered panics are all converted to one terminal failure on the consumer side.
//
// # API Topologies
//
//   - Starting: [Start] with a [Factory] and [Config], [StartJob], or [Registry.Start] by job name.
//   - Caller side: [Handle.Send], [Handle.Close] (cooperative, idempotent), [Bridge.On], [Bridge.OnDefault], [Bridge.OnComplete], [Bridge.OnError].
//   - Worker side: [Worker.Receive], [Worker.Poll], [Worker.Emit], [Worker.Closed], [Worker.Fail].
//   - Effect-style bodies: [Program] over [code.hybscloud.com/kont] with [ReceiveBind], [EmitThen], [ClosedBind], [Throw] and [Loop].
//   - Composition: [Pipe] forwards one session's output to other sessions' input.
//
// # Integration
//
//   - Stepping programs: [Step] and [Advance] evaluate a program one effect at a time without blocking; [Interruptible] uses them so a program waiting for input ends on close.
//   - Stepping: [Bridge.Poll] drains and dispatches without blocking, making it easy to call from a host event loop on each wake-up.
//   - Blocking: [Bridge.Run] waits on the wake-up channel until the terminal notification.
//
// # Guarantees
//
// Messages are dispatched in the order the body emitted them. Exactly one
// terminal notification follows the last message written before the body
// returned; nothing is dispatched after it.
//
// # Example
//
//	h := stream.StartJob(stream.JobFunc(func(w *stream.Worker) error {
//		for i := 0; i < 3; i++ {
//			w.Emit("tick", strconv.Itoa(i))
//		}
//		return nil
//	}))
//	h.On("tick", func(m stream.Message) { fmt.Println(m.Payload) })
//	if err := h.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
package stream
