// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// Iteration is a source Channel that pumps the contents of a stored
// iterator into Emit until downstream obstruction or the iterator is
// exhausted. next returns the next item and true, or a zero value and
// false once exhausted.
type Iteration struct {
	*Channel
	next func() (any, bool)
}

// NewIteration returns an actuated [*Iteration] of kind [Source]. Call
// [Iteration.Start] once connected to begin pumping; pumping resumes
// automatically whenever a downstream obstruction clears.
func NewIteration(next func() (any, bool)) *Iteration {
	it := &Iteration{Channel: NewChannel(Source), next: next}
	it.Channel.Transfer = func(*Channel, any) {}
	it.Channel.Watch(Sentry{
		Obstructed: func(*Channel) {},
		Cleared:    func(*Channel) { it.step() },
	})
	return it
}

// Start begins pumping items into Emit.
func (it *Iteration) Start() {
	it.step()
}

// step emits items directly (bypassing Transfer) so any obstruction
// raised by a downstream Emit call is discovered immediately; it stops as
// soon as the Channel becomes obstructed, resuming via the Cleared sentry
// registered in NewIteration, and terminates itself once next is
// exhausted.
func (it *Iteration) step() {
	for {
		v, ok := it.next()
		if !ok {
			it.Terminate(it)
			return
		}
		it.Channel.Emit(v)
		if it.Channel.Obstructed() {
			return
		}
	}
}
