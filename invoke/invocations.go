// SPDX-License-Identifier: GPL-3.0-or-later

package invoke

import "github.com/streamcore/streamcore/flow"

// Pending is a reserved transaction slot: ChannelID is its reservation
// in the paired [flow.Catenation], and Connect attaches the eventual
// response/request producer to it.
type Pending struct {
	ChannelID int
	Connect   func(initiate any, upstream *flow.Channel)
}

// Accepted is a [Pending] slot paired with the buffered events Division
// had already collected for it before [Invocations.Accept] ran.
type Accepted struct {
	Pending
	Events []flow.DivEvent
}

// Invocations bridges a [flow.Division]'s output to application code.
// Events for every transaction land via [Invocations.Dispatch]; a
// user-supplied router then inspects them through [Invocations.Accept]
// (server role) or [Invocations.Correlate] (client role), and new
// outbound transactions are reserved through [Invocations.Allocate].
//
// Transaction ids are monotonically increasing positive integers,
// private to one Invocations instance.
type Invocations struct {
	cat    *flow.Catenation
	router func(*Invocations)

	nextID    int
	byID      map[int][]flow.DivEvent
	order     []int // ids in first-seen (arrival) order, for head-of-line-correct draining
	scheduled bool
}

// NewInvocations returns an Invocations that reserves response/request
// slots in cat. router is called once per batch of newly dispatched
// events, re-entrantly guarded so a router that itself triggers another
// Dispatch does not recurse.
func NewInvocations(cat *flow.Catenation, router func(*Invocations)) *Invocations {
	return &Invocations{
		cat:    cat,
		router: router,
		byID:   make(map[int][]flow.DivEvent),
	}
}

// Dispatch buffers events, grouped by their ChannelID (expected to be an
// int, as produced by [flow.RxProtocol]), then calls the router exactly
// once for this batch.
func (iv *Invocations) Dispatch(events []flow.DivEvent) {
	for _, e := range events {
		id, ok := e.ChannelID.(int)
		if !ok {
			continue
		}
		if _, seen := iv.byID[id]; !seen {
			iv.order = append(iv.order, id)
		}
		iv.byID[id] = append(iv.byID[id], e)
	}
	if iv.scheduled || iv.router == nil {
		return
	}
	iv.scheduled = true
	iv.router(iv)
	iv.scheduled = false
}

// Accept drains every transaction buffered so far, reserving each one's
// id in the paired Catenation so a response can be produced in the same
// order requests arrived. Call Connect on each returned [Accepted] once
// a handler is ready to produce the response and consume the rest of
// the request body.
func (iv *Invocations) Accept() []Accepted {
	out := make([]Accepted, 0, len(iv.order))
	for _, id := range iv.order {
		iv.cat.Reserve(id)
		out = append(out, Accepted{
			Pending: Pending{ChannelID: id, Connect: iv.connector(id)},
			Events:  iv.byID[id],
		})
		delete(iv.byID, id)
	}
	iv.order = nil
	return out
}

// Correlate drains every transaction buffered so far without touching
// the Catenation, returning the buffered events grouped by id so a
// client can match them against requests it is still waiting on.
func (iv *Invocations) Correlate() map[int][]flow.DivEvent {
	out := iv.byID
	iv.byID = make(map[int][]flow.DivEvent)
	iv.order = nil
	return out
}

// Allocate reserves n new transaction ids for outbound requests,
// returning one [Pending] per id in allocation order.
func (iv *Invocations) Allocate(n int) []Pending {
	out := make([]Pending, 0, n)
	for i := 0; i < n; i++ {
		iv.nextID++
		id := iv.nextID
		iv.cat.Reserve(id)
		out = append(out, Pending{ChannelID: id, Connect: iv.connector(id)})
	}
	return out
}

func (iv *Invocations) connector(id int) func(any, *flow.Channel) {
	return func(initiate any, upstream *flow.Channel) {
		iv.cat.Connect(id, initiate, upstream)
	}
}
