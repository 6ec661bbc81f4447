// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import "container/list"

// CatEventKind classifies one multiplexed event emitted downstream by a
// [Catenation].
type CatEventKind int

const (
	// CatInitiate marks the start of a new transaction's slot; Data
	// carries whatever initiation payload the caller supplied to
	// [Catenation.Reserve].
	CatInitiate CatEventKind = iota
	// CatTransfer carries one event belonging to the transaction
	// currently at the head of the line.
	CatTransfer
	// CatTerminate marks the end of a transaction's slot; the next
	// reserved transaction, if any, becomes head of line.
	CatTerminate
)

// CatEvent is one downstream-facing event produced by a [Catenation].
type CatEvent struct {
	ChannelID any
	Kind      CatEventKind
	Data      any
}

// catQueueLimit caps how many events accumulate for a non-head-of-line
// transaction before Catenation obstructs that transaction's own source,
// matching the Python original's cat_overflowing threshold.
const catQueueLimit = 8

type catEntry struct {
	queue       []any // buffered events, nil once this id is head of line
	upstream    *Channel
	terminating bool
	present     bool // false for a Reserve(id) slot with no upstream at all
}

// Catenation sequences events from many independently-arriving
// transactions onto one downstream Channel in reservation order: the
// transaction at the head of the line streams through immediately,
// while later transactions buffer until their turn, at which point the
// buffered events flush in one batch. This is how pipelined HTTP
// responses, each produced by an independent handler, are serialized
// back onto one connection in request order.
//
// Unlike the upstream Channel field Catenation inherits from (used only
// for its identity and obstruction bookkeeping), each multiplexed
// transaction is tracked under its own channel_id and carries its own
// weak upstream reference for backpressure.
type Catenation struct {
	*Channel

	order   *list.List // of channel ids, head of line first
	entries map[any]*catEntry
	pending []CatEvent // batch accumulated since the last flush
}

// NewCatenation returns an actuated [*Catenation] of kind [Join].
func NewCatenation() *Catenation {
	cat := &Catenation{
		Channel: NewChannel(Join),
		order:   list.New(),
		entries: make(map[any]*catEntry),
	}
	return cat
}

// Reserve appends id to the sequencing order, claiming a slot for a
// transaction that has not yet produced any events.
func (cat *Catenation) Reserve(id any) {
	cat.order.PushBack(id)
	cat.entries[id] = &catEntry{}
}

// headID returns the channel id currently at the head of the line, or
// nil if nothing is reserved.
func (cat *Catenation) headID() any {
	if front := cat.order.Front(); front != nil {
		return front.Value
	}
	return nil
}

// Connect associates upstream with id, so Catenation can obstruct it
// when this id's queue grows too deep while it waits its turn. initiate
// is recorded as the CatInitiate payload: flushed immediately if id is
// already head of line, buffered otherwise.
func (cat *Catenation) Connect(id any, initiate any, upstream *Channel) {
	e, ok := cat.entries[id]
	if !ok {
		e = &catEntry{}
		cat.entries[id] = e
	}
	e.upstream = upstream
	e.present = true

	if id == cat.headID() {
		cat.append(CatEvent{ChannelID: id, Kind: CatInitiate, Data: initiate})
		return
	}
	e.queue = append(e.queue, catInitiatePayload{initiate})
}

type catInitiatePayload struct{ data any }

// Transfer delivers one event belonging to transaction id: emitted
// immediately if id is head of line, buffered (and, past catQueueLimit,
// backpressured) otherwise.
func (cat *Catenation) Transfer(id any, event any) {
	e := cat.entries[id]
	if id == cat.headID() {
		cat.append(CatEvent{ChannelID: id, Kind: CatTransfer, Data: event})
		return
	}
	e.queue = append(e.queue, event)
	if e.upstream != nil && !e.upstream.Obstructed() && len(e.queue) > catQueueLimit {
		e.upstream.Obstruct(cat, nil, "catenation queue depth exceeded")
	}
}

// Terminate ends transaction id's slot. If id is head of line, the next
// reserved transaction (if any) is promoted and its buffered events, if
// any, flush as one batch. If id is not head of line, termination is
// simply noted and applied once its turn comes.
func (cat *Catenation) Terminate(id any) {
	e := cat.entries[id]
	if id == cat.headID() {
		cat.advance(id)
		return
	}
	if e != nil {
		e.terminating = true
	}
}

// advance pops id (presumed head of line) off the order, emits its
// CatTerminate marker, and promotes + drains the next transaction.
func (cat *Catenation) advance(id any) {
	cat.order.Remove(cat.order.Front())
	delete(cat.entries, id)
	cat.pending = append(cat.pending, CatEvent{ChannelID: id, Kind: CatTerminate})

	for {
		next := cat.headID()
		if next == nil {
			break
		}
		e := cat.entries[next]
		if e == nil || !e.present {
			break // reserved but not yet connected; stays head until Connect
		}
		for _, item := range e.queue {
			if p, ok := item.(catInitiatePayload); ok {
				cat.pending = append(cat.pending, CatEvent{ChannelID: next, Kind: CatInitiate, Data: p.data})
			} else {
				cat.pending = append(cat.pending, CatEvent{ChannelID: next, Kind: CatTransfer, Data: item})
			}
		}
		e.queue = nil
		if e.upstream != nil {
			e.upstream.Clear(cat)
		}
		if !e.terminating {
			break
		}
		cat.order.Remove(cat.order.Front())
		delete(cat.entries, next)
		cat.pending = append(cat.pending, CatEvent{ChannelID: next, Kind: CatTerminate})
	}

	cat.flush()
}

// append buffers an event and flushes at once: Connect/Transfer's
// immediate head-of-line path emits each event as it arrives, while
// Terminate's promotion path (advance) adds to pending directly and
// flushes once the whole cascade of drains settles.
func (cat *Catenation) append(e CatEvent) {
	cat.pending = append(cat.pending, e)
	cat.flush()
}

func (cat *Catenation) flush() {
	if len(cat.pending) == 0 {
		return
	}
	batch := cat.pending
	cat.pending = nil
	cat.Channel.Emit(batch)
}
