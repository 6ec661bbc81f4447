// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import "weak"

// Kind describes what role a [Channel] plays in a flow graph.
type Kind string

const (
	// Source channels emit events independently for downstream
	// processing (e.g. a connection reader).
	Source Kind = "source"
	// Sink channels consume events but emit nothing; see [Terminal].
	Sink Kind = "sink"
	// Switch channels distribute their input across a set of receiving
	// channels, e.g. [Division].
	Switch Kind = "switch"
	// Join channels combine events from a set of sources into a single
	// stream, e.g. [Catenation].
	Join Kind = "join"
	// Transformer channels emit events strictly in response to
	// processing, buffering as needed.
	Transformer Kind = ""
)

// Sentry is a pair of callbacks notified when a [Channel]'s obstructed
// state changes: Obstructed fires on the first obstruction, Cleared
// fires when the last one is lifted.
type Sentry struct {
	Obstructed func(*Channel)
	Cleared    func(*Channel)
}

// WatchToken identifies a registration made with [Channel.Watch], to be
// handed back to [Channel.Ignore] to remove it. Go func values carry no
// usable identity (they are not comparable), so unlike the Python
// original's set of callback pairs, monitors here are tracked by an
// opaque handle rather than by the Sentry value itself.
type WatchToken uint64

// TransferFunc processes one event arriving at a [Channel]. The default,
// set by [NewChannel], simply calls [Channel.Emit]; derived channel kinds
// (see [Dispatch], [Monitor]) override it to hook processing without
// touching anything else about the Channel's lifecycle.
type TransferFunc func(c *Channel, event any)

// Channel is one segment of a flow: it accepts events via Transfer,
// optionally transforms them, and emits the result downstream via Emit.
// Channels connect in a line, like pipes: events run downstream,
// obstruction signals run upstream. A Channel holds only a weak
// reference to its upstream (it does not own the channel feeding it) and
// a strong reference to its downstream (it does own forwarding into it).
//
// A zero Channel is not ready to use; construct one with [NewChannel].
type Channel struct {
	Type Kind

	// Transfer is invoked for every event reaching this Channel. Replace
	// it to implement a Transformer; the default forwards straight to
	// Emit.
	Transfer TransferFunc

	downstream *Channel
	upstream   weak.Pointer[Channel]

	emit func(event any)

	obstructions map[any]obstruction
	monitors     map[WatchToken]Sentry
	nextWatch    WatchToken

	terminating  bool
	terminated   bool
	interrupted  bool
	terminatedBy any

	onTerminated func() // finish_termination hook, set by derived kinds

	// downstreamWatch is the token this Channel was given back by its
	// downstream's Watch call in Connect, kept so Disconnect/finish can
	// Ignore the same registration.
	downstreamWatch WatchToken
}

type obstruction struct {
	signal    any
	condition any
}

// NewChannel returns an actuated [*Channel] of the given kind, ready to
// [Channel.Connect] and accept [Channel.Transfer] calls. Its Emit target
// discards events until connected.
func NewChannel(kind Kind) *Channel {
	c := &Channel{Type: kind}
	c.Transfer = func(c *Channel, event any) { c.Emit(event) }
	c.emit = c.discard
	return c
}

func (c *Channel) discard(any) {}

// Connect wires c's downstream to flow, replacing any existing
// connection. c begins watching flow's obstruction state, propagating it
// onto itself (keyed by flow) so backpressure runs upstream; c begins
// emitting into flow.
func (c *Channel) Connect(flow *Channel) {
	if c.downstream != nil {
		c.Disconnect()
	}
	c.downstream = flow
	flow.upstream = weak.Make(c)
	c.downstreamWatch = flow.Watch(Sentry{
		Obstructed: func(*Channel) { c.Obstruct(flow, nil, nil) },
		Cleared:    func(*Channel) { c.Clear(flow) },
	})
	c.emit = func(event any) { flow.Transfer(flow, event) }
}

// Disconnect stops emitting into the downstream Channel and stops
// watching its obstruction state.
func (c *Channel) Disconnect() {
	flow := c.downstream
	if flow != nil {
		c.downstream = nil
		flow.Ignore(c.downstreamWatch)
		flow.upstream = weak.Pointer[Channel]{}
		c.Clear(flow)
	}
	c.emit = c.discard
}

// Collapse removes c from its flow graph, connecting its upstream
// directly to its downstream, leaving c disconnected on both sides.
func (c *Channel) Collapse() {
	upstream := c.upstream.Value()
	if upstream == nil {
		return
	}
	upstream.Disconnect()
	downstream := c.downstream
	c.Disconnect()
	upstream.Connect(downstream)
}

// Substitute splices series into c's position: the Channel upstream of c
// connects to series[0], each Channel in series connects to the next,
// and series' last Channel connects to c's old downstream.
func (c *Channel) Substitute(series []*Channel) {
	if len(series) == 0 {
		return
	}
	for i := 0; i < len(series)-1; i++ {
		series[i].Connect(series[i+1])
	}
	series[len(series)-1].Connect(c.downstream)
	if upstream := c.upstream.Value(); upstream != nil {
		upstream.Connect(series[0])
	}
}

// Emit sends event to the downstream Channel, or discards it if c is not
// connected.
func (c *Channel) Emit(event any) {
	c.emit(event)
}

// Empty reports whether the Channel is idle (not actively mid-transfer).
// Buffering channels should override this; the base Channel is always
// empty.
func (c *Channel) Empty() bool { return true }

// Obstructed reports whether any obstruction is currently registered.
func (c *Channel) Obstructed() bool { return len(c.obstructions) > 0 }

// Obstruct registers an obstruction under key by, notifying monitors on
// the first one. signal and condition are opaque annotations recorded
// alongside the key for introspection.
func (c *Channel) Obstruct(by any, signal, condition any) {
	first := len(c.obstructions) == 0
	if c.obstructions == nil {
		c.obstructions = make(map[any]obstruction)
	}
	c.obstructions[by] = obstruction{signal: signal, condition: condition}
	if first {
		for _, s := range c.monitors {
			s.Obstructed(c)
		}
	}
}

// Clear lifts the obstruction registered under by, notifying monitors
// once no obstructions remain. It reports whether this call lifted the
// last remaining obstruction; clearing one of several returns false.
func (c *Channel) Clear(by any) bool {
	if len(c.obstructions) == 0 {
		return false
	}
	if _, ok := c.obstructions[by]; !ok {
		return false
	}
	delete(c.obstructions, by)
	if len(c.obstructions) == 0 {
		for _, s := range c.monitors {
			s.Cleared(c)
		}
		return true
	}
	return false
}

// Watch registers sentry to be notified of changes to c's obstructed
// state, firing Obstructed immediately if c is already obstructed. The
// returned [WatchToken] must be passed to [Channel.Ignore] to remove the
// registration.
func (c *Channel) Watch(sentry Sentry) WatchToken {
	if c.monitors == nil {
		c.monitors = make(map[WatchToken]Sentry)
	}
	c.nextWatch++
	token := c.nextWatch
	c.monitors[token] = sentry
	if c.Obstructed() {
		sentry.Obstructed(c)
	}
	return token
}

// Ignore stops notifying the sentry registered under token.
func (c *Channel) Ignore(token WatchToken) {
	delete(c.monitors, token)
}

// Terminate begins cooperative shutdown: c finishes what it has already
// accepted, records by as the party that terminated it, and propagates
// termination downstream. It reports whether termination
// was actually started (false if already terminated, terminating, or
// interrupted).
func (c *Channel) Terminate(by any) bool {
	if c.terminated || c.terminating || c.interrupted {
		return false
	}
	c.terminating = true
	c.terminatedBy = by
	c.finish()
	return true
}

// finish runs the shared completion sequence: it silences further
// transfer/emit, propagates termination downstream, and runs any
// onTerminated hook installed by a derived kind.
func (c *Channel) finish() {
	c.Transfer = func(*Channel, any) {}
	c.emit = c.discard
	c.terminated = true
	c.terminating = false

	if c.downstream != nil {
		c.downstream.Ignore(c.downstreamWatch)
		c.downstream.Terminate(c)
	}

	if c.onTerminated != nil {
		c.onTerminated()
	}
}

// Interrupt immediately silences the Channel without draining or
// notifying downstream: no further Transfer, Emit, or Terminate call has
// any effect.
func (c *Channel) Interrupt() {
	c.Transfer = func(*Channel, any) {}
	c.emit = c.discard
	c.interrupted = true
}

// Terminated reports whether termination has completed.
func (c *Channel) Terminated() bool { return c.terminated }

// Interrupted reports whether the Channel was interrupted.
func (c *Channel) Interrupted() bool { return c.interrupted }
