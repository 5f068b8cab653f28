// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"encoding/json"
	"io"

	"code.hybscloud.com/stream"
)

// Event is one line of command output.
type Event struct {
	Event   string `json:"event"`
	Payload string `json:"payload,omitempty"`
}

// printer writes events as JSON lines. The first write error sticks.
type printer struct {
	enc *json.Encoder
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{enc: json.NewEncoder(w)}
}

func (p *printer) print(ev Event) {
	if p.err == nil {
		p.err = p.enc.Encode(ev)
	}
}

// attach prints every data message and the terminal event of h.
func (p *printer) attach(h *stream.Handle) {
	h.OnDefault(func(m stream.Message) {
		p.print(Event{Event: m.Name, Payload: m.Payload})
	})
	p.attachTerminal(h)
}

// attachTerminal prints only the terminal event of h.
func (p *printer) attachTerminal(h *stream.Handle) {
	h.OnComplete(func() {
		p.print(Event{Event: stream.EventClose})
	})
	h.OnError(func(err error) {
		p.print(Event{Event: stream.EventError, Payload: err.Error()})
	})
}
