// SPDX-License-Identifier: GPL-3.0-or-later

package httpwire

import (
	"bytes"
	"fmt"
)

// Marshal serializes a batch of [Event] values into the bytes they
// represent on the wire. It is the inverse of [Tokenizer.Feed]: feeding a
// [*Tokenizer] the bytes Marshal produces for a given event sequence
// reproduces that same sequence, except that the Tokenizer groups
// consecutive header fields into one Headers event and adds an empty
// Content event at the end of a Content-Length body.
//
// Marshal is a pure function: an [Assembler] is only a convenience for
// building up a sequence of events before marshaling them in one call.
func Marshal(events []Event) []byte {
	var buf bytes.Buffer
	for _, e := range events {
		switch e.Kind {
		case Content, Bypass:
			buf.Write(e.Data)

		case Chunk:
			fmt.Fprintf(&buf, "%x\r\n", len(e.Data))
			buf.Write(e.Data)
			buf.WriteString("\r\n")

		case RLine:
			buf.Write(bytes.Join(e.Line, []byte(" ")))
			buf.WriteString("\r\n")

		case Headers, Trailers:
			if len(e.Fields) == 0 {
				buf.WriteString("\r\n")
				continue
			}
			for _, f := range e.Fields {
				buf.Write(f.Name)
				buf.WriteString(": ")
				buf.Write(f.Value)
				buf.WriteString("\r\n")
			}

		case Message, Violation:
			// No wire representation.
		}
	}
	return buf.Bytes()
}

// Assembler accumulates a sequence of [Event] values for later
// marshaling, so a caller building up a message field by field doesn't
// need to track its own slice.
type Assembler struct {
	events []Event
}

// NewAssembler returns an empty [*Assembler].
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Emit appends e to the pending event sequence.
func (a *Assembler) Emit(e Event) {
	a.events = append(a.events, e)
}

// RequestLine appends an RLine event for a request.
func (a *Assembler) RequestLine(method, target, version string) {
	a.Emit(Event{Kind: RLine, Line: [][]byte{[]byte(method), []byte(target), []byte(version)}})
}

// StatusLine appends an RLine event for a response.
func (a *Assembler) StatusLine(version, code, reason string) {
	a.Emit(Event{Kind: RLine, Line: [][]byte{[]byte(version), []byte(code), []byte(reason)}})
}

// Header appends one header field. Call [*Assembler.EndHeaders] after the
// last one.
func (a *Assembler) Header(name, value string) {
	a.Emit(Event{Kind: Headers, Fields: []Field{{Name: []byte(name), Value: []byte(value)}}})
}

// EndHeaders appends the empty-Fields Headers event that terminates a
// header batch.
func (a *Assembler) EndHeaders() {
	a.Emit(Event{Kind: Headers, Fields: []Field{}})
}

// Body appends a Content event carrying data.
func (a *Assembler) Body(data []byte) {
	a.Emit(Event{Kind: Content, Data: data})
}

// EndOfMessage appends the Message event marking the message complete.
func (a *Assembler) EndOfMessage() {
	a.Emit(Event{Kind: Message})
}

// Marshal serializes every event emitted so far and clears the pending
// sequence.
func (a *Assembler) Marshal() []byte {
	out := Marshal(a.events)
	a.events = nil
	return out
}
