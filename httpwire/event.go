// SPDX-License-Identifier: GPL-3.0-or-later

package httpwire

// Kind identifies the role an [Event] plays in a tokenized HTTP/1.x
// message stream.
type Kind int

const (
	// RLine carries the request line (method, request-target, version)
	// or the status line (version, status-code, reason-phrase), split on
	// single spaces with a maximum of three fields.
	RLine Kind = iota
	// Headers carries a batch of header fields. The batch terminates
	// with a Headers event whose Fields is empty (but non-nil).
	Headers
	// Content carries a slice of the message body framed by
	// Content-Length. A final, empty Content event marks the end of the
	// body.
	Content
	// Chunk carries one chunk's data from a chunked transfer-coded body.
	// A final, empty Chunk event marks the end of the body, mirroring
	// Content.
	Chunk
	// Trailers carries a batch of trailer fields following a chunked
	// body's final chunk. The batch terminates with a Trailers event
	// whose Fields is empty (but non-nil).
	Trailers
	// Message marks the end of one complete message (request or
	// response). A new RLine event may follow immediately, for
	// pipelined traffic.
	Message
)

const (
	// Violation reports that a configured limit was exceeded or the
	// input broke protocol. It is always immediately followed by a
	// Bypass event, and every event after that is Bypass.
	Violation Kind = -1
	// Bypass carries raw, unparsed bytes. It appears after a Violation,
	// or after the Message that ends a Connection: close message with no
	// Content-Length or Transfer-Encoding, and forever after once either
	// has occurred.
	Bypass Kind = -2
)

func (k Kind) String() string {
	switch k {
	case RLine:
		return "rline"
	case Headers:
		return "headers"
	case Content:
		return "content"
	case Chunk:
		return "chunk"
	case Trailers:
		return "trailers"
	case Message:
		return "message"
	case Violation:
		return "violation"
	case Bypass:
		return "bypass"
	default:
		return "unknown"
	}
}

// Field is one header or trailer field, with leading/trailing
// optional-whitespace already trimmed from both name and value.
type Field struct {
	Name  []byte
	Value []byte
}

// ViolationCategory distinguishes a limit overrun from an outright
// protocol error.
type ViolationCategory string

const (
	// LimitViolation reports that a configured [Config] limit was
	// exceeded.
	LimitViolation ViolationCategory = "limit"
	// ProtocolViolation reports malformed input that no limit could have
	// prevented, e.g. a non-numeric Content-Length.
	ProtocolViolation ViolationCategory = "protocol"
)

// ViolationDetail describes a [Violation]-kind [Event].
type ViolationDetail struct {
	Category ViolationCategory
	// Name identifies what was violated, e.g. "max_line_size" or
	// "Content-Length".
	Name string
	// Detail is the offending raw text, when available.
	Detail string
}

// Event is one unit of the tokenized (or, for [Assembler], the
// to-be-serialized) HTTP/1.x message stream. Which fields are populated
// depends on Kind: RLine sets Line, Headers/Trailers set Fields,
// Content/Chunk/Bypass set Data, Violation sets Detail.
type Event struct {
	Kind   Kind
	Line   [][]byte
	Fields []Field
	Data   []byte
	Detail ViolationDetail
}
