// SPDX-License-Identifier: GPL-3.0-or-later

// Package httpwire tokenizes and assembles the HTTP/1.x wire format.
//
// [Tokenizer] consumes raw bytes off a connection and emits a sequence of
// [Event] values: a request or status line, zero or more header fields
// terminated by an empty Headers event, the message body (as Content or
// Chunk events depending on the transfer encoding in use), optional
// trailers, and a Message event marking end-of-message. Pipelined
// requests/responses simply continue the same sequence: a new RLine
// event starts the next message.
//
// When the wire data violates a configured limit or the protocol itself,
// the Tokenizer emits a Violation event followed by a Bypass event
// carrying the unparsed remainder, and every subsequent [Tokenizer.Feed]
// call only ever emits further Bypass events: the caller is expected to
// either close the connection or take over framing itself (e.g. for a
// protocol upgrade).
//
// [Assembler] is the inverse: it serializes a sequence of Event values
// back into wire bytes, for a caller building requests or responses
// rather than parsing them.
//
// [Config.Strict] additionally validates header and trailer field names
// and values against RFC 9110's grammar, treating an invalid field as a
// protocol violation; the default is permissive.
package httpwire
