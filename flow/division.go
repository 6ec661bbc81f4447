// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// DivEventKind classifies one inbound multiplexed event a [Division]
// routes to its per-transaction consumer.
type DivEventKind int

const (
	// DivInitiate announces a new transaction: Data carries whatever
	// initiation payload the protocol layer produced (e.g. a parsed
	// request line and headers).
	DivInitiate DivEventKind = iota
	// DivTransfer carries one event belonging to an already-initiated
	// transaction.
	DivTransfer
	// DivTerminate marks the end of a transaction.
	DivTerminate
)

// DivEvent is one inbound event a [Division] demultiplexes.
type DivEvent struct {
	ChannelID any
	Kind      DivEventKind
	Data      any
}

type divEntry struct {
	flow        *Channel // nil until Connect
	watch       WatchToken
	queue       []any
	terminating bool
	terminal    any // terminate payload recorded if seen before Connect
}

// Division routes a single inbound stream of tagged events to
// independent per-transaction consumer [Channel]s: it is the
// demultiplexing counterpart of [Catenation]. A pipelined HTTP
// connection, for instance, produces one inbound byte stream; Division
// lets each request's body land on its own Channel without the
// transport layer knowing anything about requests.
//
// The consumer Channel for a transaction is the one its dispatch call
// returns when the DivInitiate event is routed; it is attached at once,
// so later events for that transaction go straight to it. A consumer
// cannot be attached afterwards: events routed for a transaction whose
// dispatch returned nil are held in its entry and never delivered.
type Division struct {
	*Channel

	dispatch func(channelID any, initiate any) *Channel
	entries  map[any]*divEntry
}

// NewDivision returns an actuated [*Division] of kind [Switch]. dispatch
// is called once per new transaction, with the DivInitiate payload, and
// must return the Channel that will receive the transaction's events —
// or nil to indicate the transaction carries no body (e.g. a response
// to HEAD).
func NewDivision(dispatch func(channelID any, initiate any) *Channel) *Division {
	return &Division{
		Channel:  NewChannel(Switch),
		dispatch: dispatch,
		entries:  make(map[any]*divEntry),
	}
}

// Route processes one inbound [DivEvent], delivering or queuing it
// according to its kind. Feed a [Division] a batch of events (e.g. the
// output of a [Catenation]-shaped upstream, or a protocol tokenizer) by
// calling Route once per event.
func (d *Division) Route(e DivEvent) {
	switch e.Kind {
	case DivInitiate:
		d.initiate(e.ChannelID, e.Data)
	case DivTransfer:
		d.transfer(e.ChannelID, e.Data)
	case DivTerminate:
		d.terminate(e.ChannelID, e.Data)
	}
}

func (d *Division) initiate(id any, initiate any) {
	d.entries[id] = &divEntry{}
	flow := d.dispatch(id, initiate)
	d.connect(id, flow)
}

// connect attaches flow (possibly nil, meaning no body) to id, draining
// any events queued for it so far.
func (d *Division) connect(id any, flow *Channel) {
	e, ok := d.entries[id]
	if !ok {
		e = &divEntry{}
		d.entries[id] = e
	}

	if flow == nil {
		if e.terminating {
			delete(d.entries, id)
		}
		return
	}

	e.watch = flow.Watch(Sentry{Obstructed: func(ch *Channel) { d.Channel.Obstruct(ch, nil, nil) }, Cleared: d.clearSentry})
	e.flow = flow

	for _, item := range e.queue {
		flow.Transfer(flow, item)
	}
	e.queue = nil

	if e.terminating {
		flow.Ignore(e.watch)
		flow.Terminate(d)
		delete(d.entries, id)
	}
}

// Interrupt force-terminates every attached per-transaction consumer
// before interrupting the Division itself: closure here means the
// protocol state never properly closed the transaction, so each
// consumer's state must be assumed incomplete and ended immediately
// rather than left dangling.
func (d *Division) Interrupt() {
	for id, e := range d.entries {
		if e.flow != nil {
			e.flow.Ignore(e.watch)
			e.flow.Terminate(d)
		}
		delete(d.entries, id)
	}
	d.Channel.Interrupt()
}

func (d *Division) clearSentry(upstream *Channel) {
	d.Channel.Clear(upstream)
}

func (d *Division) transfer(id any, event any) {
	e, ok := d.entries[id]
	if !ok {
		return // unknown channel id; no DivInitiate was ever routed
	}
	if e.flow == nil {
		e.queue = append(e.queue, event)
		return
	}
	e.flow.Transfer(e.flow, event)
}

func (d *Division) terminate(id any, terminal any) {
	e, ok := d.entries[id]
	if !ok {
		return
	}
	if e.flow == nil {
		e.terminating = true
		e.terminal = terminal
		return
	}
	delete(d.entries, id)
	e.flow.Ignore(e.watch)
	e.flow.Terminate(d)
}
