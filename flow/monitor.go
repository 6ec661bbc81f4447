// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import "time"

// Transfer is one recorded observation made by a [Monitor]: the size of
// an event (in bytes, as measured by the Monitor's size function) and
// the wall-clock instant it was transferred.
type Transfer struct {
	Size int
	At   time.Time
}

// Monitor is a [Terminal] that measures throughput instead of reacting
// to each event: every transfer is recorded as a (size, timestamp) pair
// using the Monitor's clock, which a caller can compare against the
// Monitor's reference instant to later
// derive rates or aggregate totals without having instrumented the
// events themselves.
type Monitor struct {
	*Terminal

	sizeOf    func(event any) int
	clockread func() time.Time

	reference time.Time
	transfers []Transfer
	aggregate int
}

// NewMonitor returns an actuated [*Monitor]. sizeOf measures one event's
// contribution to throughput (e.g. len of its payload); endpoint is
// notified, as with any [Terminal], once termination completes. now
// supplies the Monitor's clock and is normally [time.Now]; tests may
// substitute a deterministic clock.
func NewMonitor(sizeOf func(event any) int, endpoint func(*Terminal), now func() time.Time) *Monitor {
	if now == nil {
		now = time.Now
	}
	m := &Monitor{
		Terminal:  NewTerminal(endpoint),
		sizeOf:    sizeOf,
		clockread: now,
		reference: now(),
	}
	m.Channel.Transfer = func(c *Channel, event any) {
		units := m.sizeOf(event)
		m.transfers = append(m.transfers, Transfer{Size: units, At: m.clockread()})
		m.aggregate += units
	}
	return m
}

// Transfers returns every recorded observation, oldest first.
func (m *Monitor) Transfers() []Transfer { return m.transfers }

// Aggregate returns the running total of every observation's Size.
func (m *Monitor) Aggregate() int { return m.aggregate }

// Reference returns the instant the Monitor was constructed, the origin
// against which callers can compute elapsed time for a rate.
func (m *Monitor) Reference() time.Time { return m.reference }
