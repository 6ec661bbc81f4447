// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// Transformation is a Channel that applies a function to each event and
// emits the result downstream.
type Transformation struct {
	*Channel
	fn func(event any) any
}

// NewTransformation returns an actuated [*Transformation] of kind
// [Transformer] that emits fn(event) for every event it transfers.
func NewTransformation(fn func(event any) any) *Transformation {
	t := &Transformation{Channel: NewChannel(Transformer), fn: fn}
	t.Channel.Transfer = func(c *Channel, event any) {
		c.Emit(t.fn(event))
	}
	return t
}
