// SPDX-License-Identifier: GPL-3.0-or-later

package flow

// Collection is a [Terminal] that stores every event it receives via a
// store callback instead of discarding it, for processing once
// termination completes.
type Collection struct {
	*Terminal
	store func(event any)
}

// NewCollection returns an actuated [*Collection]. endpoint is notified,
// as with any [Terminal], once termination completes.
func NewCollection(store func(event any), endpoint func(*Terminal)) *Collection {
	c := &Collection{Terminal: NewTerminal(endpoint), store: store}
	c.Channel.Transfer = func(_ *Channel, event any) { c.store(event) }
	return c
}

// NewSliceCollection returns a [*Collection] that appends each event to
// *dst, in arrival order.
func NewSliceCollection(dst *[]any, endpoint func(*Terminal)) *Collection {
	return NewCollection(func(event any) { *dst = append(*dst, event) }, endpoint)
}

// NewBufferCollection returns a [*Collection] that appends each []byte
// event onto *dst.
func NewBufferCollection(dst *[]byte, endpoint func(*Terminal)) *Collection {
	return NewCollection(func(event any) {
		if b, ok := event.([]byte); ok {
			*dst = append(*dst, b...)
		}
	}, endpoint)
}
