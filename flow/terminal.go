// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// Terminal is a Channel with no downstream: it consumes events and,
// instead of emitting, notifies an endpoint callback once termination
// completes. It is the natural sink at the end of a flow, e.g. a
// response builder that needs to know when its upstream is done.
type Terminal struct {
	*Channel
	endpoint func(*Terminal)
}

// NewTerminal returns an actuated [*Terminal] of kind [Sink] that
// calls endpoint once, when termination finishes.
func NewTerminal(endpoint func(*Terminal)) *Terminal {
	t := &Terminal{Channel: NewChannel(Sink)}
	t.endpoint = endpoint
	t.onTerminated = func() { t.endpoint(t) }
	return t
}
