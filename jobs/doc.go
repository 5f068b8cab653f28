// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jobs provides ready-made streaming job bodies for [stream].
//
// Every job is a [stream.Factory]: it validates its options when the
// session starts and rejects bad ones with an error, which the session
// reports as its single failure notification.
//
//   - accumulate: sums inbound integers until a negative one, then emits "sum".
//   - even_odd: for each inbound max, emits "even_event"/"odd_event" from start to max.
//   - factorization: emits "factor" for each prime factor of option n.
//   - sensor: emits "position_sample" JSON until closed.
//   - primes: sieves below option limit with "progress" updates, then emits "primes".
//   - png2bmp: converts base64 PNG "png" messages to base64 BMP "bmp" messages.
//
// [Register] adds all of them to a [stream.Registry].
package jobs
