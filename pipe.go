// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Pipe forwards every data message of src that has no named handler to
// each dst, keeping name and payload. When src ends, end is called once per
// dst, typically to send an end-of-input sentinel; end may be nil.
//
// Pipe registers default and terminal handlers on src, so forwarding happens
// on the goroutine that polls src.
func Pipe(src *Handle, end func(dst *Handle), dsts ...*Handle) {
	src.OnDefault(func(m Message) {
		for _, dst := range dsts {
			dst.Send(m.Name, m.Payload)
		}
	})
	if end == nil {
		return
	}
	finish := func() {
		for _, dst := range dsts {
			end(dst)
		}
	}
	src.OnComplete(finish)
	src.OnError(func(error) { finish() })
}
