// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// Reserved event names used by stream adapters for the terminal notifications.
// Data messages never carry them as part of the session protocol.
const (
	// EventClose names the completion notification. It carries no payload.
	EventClose = "close"
	// EventError names the failure notification. Its payload is the error text.
	EventError = "error"
)

// Message is a named payload exchanged between a worker body and its consumer.
// Messages are values: each side holds its own copy once the message crosses
// a mailbox.
type Message struct {
	Name    string
	Payload string
}

// NewMessage returns a Message with the given name and payload.
func NewMessage(name, payload string) Message {
	return Message{Name: name, Payload: payload}
}
