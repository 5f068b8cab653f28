// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"code.hybscloud.com/kont"
)

// ReceiveBind receives the next inbound message and passes it to f.
// Fuses Perform(Receive{}) + Bind.
func ReceiveBind[B any](f func(Message) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Receive{}), f)
}

// EmitThen emits a message and then continues with next.
// Fuses Perform(Emit{...}) + Then.
func EmitThen[B any](name, payload string, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Emit{Message: Message{Name: name, Payload: payload}}), next)
}

// ClosedBind observes the closed flag and passes it to f.
// Fuses Perform(IsClosed{}) + Bind.
func ClosedBind[B any](f func(bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(IsClosed{}), f)
}

// Done finishes a program successfully.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}

// Throw fails a program with msg.
func Throw[A any](msg string) kont.Eff[A] {
	return kont.ThrowError[string, A](msg)
}
