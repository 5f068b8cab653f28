// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

// State is the lifecycle state of a session.
//
//	Created → Running → (Completing | Failing) → Closed
//
// A session whose configuration is rejected moves from Created straight to
// Failing without ever running its body.
type State uint32

const (
	// Created: the session exists but its body has not started.
	Created State = iota
	// Running: the body is executing on its worker goroutine.
	Running
	// Completing: the body returned normally; the terminal notification is pending.
	Completing
	// Failing: an error was recorded; the terminal notification is pending.
	Failing
	// Closed: the terminal notification has been dispatched.
	Closed
)

var stateNames = [...]string{
	Created:    "created",
	Running:    "running",
	Completing: "completing",
	Failing:    "failing",
	Closed:     "closed",
}

// String returns the lower-case state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the body can no longer produce messages.
func (s State) Terminal() bool {
	return s >= Completing
}
