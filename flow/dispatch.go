// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// Dispatch is a Channel that calls an endpoint callback for every event it
// transfers, then forwards the event downstream unchanged. It is the
// simplest way to observe a flow without interrupting it, e.g. to log
// traffic or feed a metrics collector.
type Dispatch struct {
	*Channel
	endpoint func(event any)
}

// NewDispatch returns an actuated [*Dispatch] of kind [Transformer] that
// calls endpoint on every event before emitting it.
func NewDispatch(endpoint func(event any)) *Dispatch {
	d := &Dispatch{Channel: NewChannel(Transformer), endpoint: endpoint}
	d.Channel.Transfer = func(c *Channel, event any) {
		d.endpoint(event)
		c.Emit(event)
	}
	return d
}
