// SPDX-License-Identifier: GPL-3.0-or-later

package httpwire

// Config bounds the resources a [Tokenizer] will spend on a single
// message, mirroring the limits of the reference tokenizer this package
// is a port of. Every limit is a count of bytes unless noted otherwise;
// exceeding one ends the message stream in a [Violation] followed by a
// permanent [Bypass].
type Config struct {
	// MaxLineSize bounds the request/status line.
	MaxLineSize int
	// MaxHeaders bounds the number of header fields in one message.
	MaxHeaders int
	// MaxTrailers bounds the number of trailer fields in one message.
	MaxTrailers int
	// MaxHeaderSize bounds a single header field line, name and value
	// combined.
	MaxHeaderSize int
	// MaxHeaderSetSize bounds the aggregate size of every header field in
	// one message, CRLFs included, independent of MaxHeaders and
	// MaxHeaderSize (which only bound the per-field and per-count shape).
	MaxHeaderSetSize int
	// MaxTrailerSize bounds a single trailer field line, name and value
	// combined.
	MaxTrailerSize int
	// MaxChunkLineSize bounds a chunk-size line (the hex size plus any
	// chunk extensions, not the chunk data itself).
	MaxChunkLineSize int
	// MaxMessages bounds the number of pipelined messages a single
	// [Tokenizer] will process before treating further input as a limit
	// violation. Zero means unlimited.
	MaxMessages int
	// Strict, when true, validates every header and trailer field name
	// and value against RFC 9110's token/field-value grammar, emitting a
	// [ProtocolViolation] on the first offender. The default, permissive
	// path accepts whatever bytes arrive between the colon and the CRLF,
	// matching spec.md §4.B.
	Strict bool
}

// NewConfig returns a [*Config] with the reference tokenizer's default
// limits.
func NewConfig() *Config {
	return &Config{
		MaxLineSize:      4096,
		MaxHeaders:       1024,
		MaxTrailers:      32,
		MaxHeaderSize:    0xFFFF * 2,
		MaxHeaderSetSize: 8192,
		MaxTrailerSize:   0xFFFF * 2,
		MaxChunkLineSize: 1024,
		MaxMessages:      0,
		Strict:           false,
	}
}

// noBodyResponseCodes lists the status codes that never carry a body
// regardless of Content-Length/Transfer-Encoding (RFC 9110 §6.4.1).
var noBodyResponseCodes = map[string]bool{
	"204": true,
	"304": true,
}
