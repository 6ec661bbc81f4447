// SPDX-License-Identifier: GPL-3.0-or-later

package httpwire

import (
	"bytes"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

type phase int

const (
	phaseLine phase = iota
	phaseHeaders
	phaseBody
	phaseChunkSize
	phaseChunkData
	phaseChunkCRLF
	phaseTrailers
	phaseBypass
)

// Tokenizer turns a stream of bytes into a sequence of [Event] values.
// It holds no connection or goroutine of its own: the caller feeds it
// bytes as they arrive and drains the events it returns. A Tokenizer is
// not safe for concurrent use.
type Tokenizer struct {
	cfg Config

	buf   []byte
	phase phase

	messageNumber int

	// per-message state, reset by beginMessage.
	isResponse    bool
	hasBody       bool
	chunked       bool
	connClose     bool
	remaining     int64 // bytes left in the current Content run, or the current chunk
	chunkFinal    bool  // saw the zero-size terminating chunk
	headerCount   int
	headerSetSize int // aggregate bytes consumed by header lines so far, CRLFs included
	ctl           ctlHeaders
	clInvalid     bool
}

// NewTokenizer returns a [*Tokenizer] configured with cfg. A nil cfg uses
// [NewConfig]'s defaults.
func NewTokenizer(cfg *Config) *Tokenizer {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Tokenizer{cfg: *cfg}
}

// Feed appends data to the tokenizer's internal buffer and returns every
// [Event] that can be produced from the bytes seen so far. It returns an
// empty slice, never nil, when more data is needed before the next event
// can be produced.
func (t *Tokenizer) Feed(data []byte) []Event {
	if len(data) > 0 {
		t.buf = append(t.buf, data...)
	}

	out := []Event{}
	for {
		switch t.phase {
		case phaseBypass:
			if len(t.buf) > 0 {
				out = append(out, Event{Kind: Bypass, Data: t.takeAll()})
			}
			return out

		case phaseLine:
			line, ok := t.takeRequestLine(t.cfg.MaxLineSize)
			if !ok {
				if len(t.buf) > t.cfg.MaxLineSize {
					out = t.violate(out, LimitViolation, "max_line_size", "")
					continue
				}
				return out
			}
			if t.cfg.MaxMessages > 0 && t.messageNumber >= t.cfg.MaxMessages {
				out = t.violate(out, LimitViolation, "max_messages", "")
				continue
			}
			t.messageNumber++

			parts := bytes.SplitN(line, []byte(" "), 3)
			t.beginMessage(parts)
			out = append(out, Event{Kind: RLine, Line: parts})
			t.phase = phaseHeaders

		case phaseHeaders:
			var done bool
			out, done = t.stepHeaders(out)
			if t.phase == phaseBypass {
				continue
			}
			if !done {
				return out
			}
			t.finalizeHeaders()
			t.phase = phaseBody

		case phaseBody:
			var done bool
			out, done = t.stepBody(out)
			if t.phase == phaseBypass {
				continue
			}
			if !done {
				return out
			}

		case phaseChunkSize:
			var done bool
			out, done = t.stepChunkSize(out)
			if t.phase == phaseBypass {
				continue
			}
			if !done {
				return out
			}

		case phaseChunkData:
			var done bool
			out, done = t.stepChunkedBody(out)
			if !done {
				return out
			}

		case phaseChunkCRLF:
			if len(t.buf) >= 2 && !bytes.Equal(t.buf[:2], crlf) {
				out = t.violate(out, ProtocolViolation, "bad-chunk-terminator", string(firstBytes(t.buf, 2)))
				continue
			}
			if !t.takeCRLF() {
				return out
			}
			t.phase = phaseChunkSize

		case phaseTrailers:
			var done bool
			out, done = t.stepTrailers(out)
			if t.phase == phaseBypass {
				continue
			}
			if !done {
				return out
			}
			out = append(out, Event{Kind: Message})
			t.phase = phaseLine

		default:
			return out
		}
	}
}

func (t *Tokenizer) takeAll() []byte {
	b := make([]byte, len(t.buf))
	copy(b, t.buf)
	t.buf = nil
	return b
}

// validField reports whether name/value pass RFC 9110's token/field-value
// grammar, or true unconditionally when Strict is off.
func (t *Tokenizer) validField(name, value []byte) bool {
	if !t.cfg.Strict {
		return true
	}
	return httpguts.ValidHeaderFieldName(string(name)) && httpguts.ValidHeaderFieldValue(string(value))
}

func (t *Tokenizer) violate(out []Event, category ViolationCategory, name, detail string) []Event {
	out = append(out, Event{Kind: Violation, Detail: ViolationDetail{Category: category, Name: name, Detail: detail}})
	out = append(out, Event{Kind: Bypass, Data: t.takeAll()})
	t.phase = phaseBypass
	return out
}

// takeLine extracts the next CRLF-terminated line within the first
// maxLen bytes of the buffer, including an empty one (idx==0), which
// callers in the headers/trailers loops rely on to detect the
// terminating blank line. It returns ok=false when no complete line is
// available yet.
func (t *Tokenizer) takeLine(maxLen int) ([]byte, bool) {
	limit := maxLen
	if limit > len(t.buf) {
		limit = len(t.buf)
	}
	idx := bytes.Index(t.buf[:limit], crlf)
	if idx == -1 {
		return nil, false
	}
	line := make([]byte, idx)
	copy(line, t.buf[:idx])
	t.buf = t.buf[idx+2:]
	return line, true
}

// takeRequestLine is takeLine specialized for the request/status-line
// position: it tolerates (and discards) any stray leading CRLF, which
// RFC 9112 §2.2 permits between pipelined messages.
func (t *Tokenizer) takeRequestLine(maxLen int) ([]byte, bool) {
	for {
		line, ok := t.takeLine(maxLen)
		if !ok || len(line) > 0 {
			return line, ok
		}
	}
}

func (t *Tokenizer) takeCRLF() bool {
	if len(t.buf) < 2 {
		return false
	}
	t.buf = t.buf[2:]
	return true
}

var crlf = []byte("\r\n")

func firstBytes(b []byte, n int) []byte {
	if n > len(b) {
		n = len(b)
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out
}

func (t *Tokenizer) beginMessage(line [][]byte) {
	t.isResponse = len(line) > 0 && bytes.ContainsRune(line[0], '/')
	t.hasBody = true
	t.chunked = false
	t.connClose = false
	t.remaining = 0
	t.chunkFinal = false
	t.headerCount = 0
	t.headerSetSize = 0
	t.ctl = ctlHeaders{}
	t.clInvalid = false

	if t.isResponse && len(line) > 1 {
		code := line[1]
		if noBodyResponseCodes[string(code)] || (len(code) > 0 && code[0] == '1') {
			t.hasBody = false
		}
	}
}

// ctlHeaders accumulates the three header fields that determine framing:
// Connection, Content-Length, Transfer-Encoding.
type ctlHeaders struct {
	connection       []byte
	contentLength    []byte
	haveContentLen   bool
	transferEncoding []byte
	haveTransferEnc  bool
}

func (t *Tokenizer) stepHeaders(out []Event) ([]Event, bool) {
	var ctl ctlHeaders
	var fields []Field

	for {
		line, ok := t.takeLine(t.cfg.MaxHeaderSize)
		if !ok {
			if len(fields) > 0 {
				out = append(out, Event{Kind: Headers, Fields: fields})
			}
			t.ctl = mergeCtl(t.ctl, ctl)
			if len(t.buf) > t.cfg.MaxHeaderSize {
				out = t.violate(out, LimitViolation, "max_header_size", "")
				return out, false
			}
			return out, false
		}

		t.headerSetSize += len(line) + len(crlf)
		if t.cfg.MaxHeaderSetSize > 0 && t.headerSetSize > t.cfg.MaxHeaderSetSize {
			if len(fields) > 0 {
				out = append(out, Event{Kind: Headers, Fields: fields})
			}
			t.ctl = mergeCtl(t.ctl, ctl)
			out = t.violate(out, LimitViolation, "max_header_set_size", "")
			return out, false
		}

		if len(line) == 0 {
			if len(fields) > 0 {
				out = append(out, Event{Kind: Headers, Fields: fields})
			}
			out = append(out, Event{Kind: Headers, Fields: []Field{}})
			t.ctl = mergeCtl(t.ctl, ctl)
			return out, true
		}

		colon := bytes.IndexByte(line, ':')
		var name, value []byte
		if colon == -1 {
			name = bytes.TrimSpace(line)
		} else {
			name = bytes.TrimSpace(line[:colon])
			value = bytes.TrimSpace(line[colon+1:])
		}
		if !t.validField(name, value) {
			return t.violate(out, ProtocolViolation, "header-field", string(line)), false
		}
		fields = append(fields, Field{Name: name, Value: value})

		if t.hasBody {
			switch lower := bytes.ToLower(name); {
			case bytes.Equal(lower, []byte("connection")):
				ctl.connection = value
			case bytes.Equal(lower, []byte("content-length")):
				ctl.contentLength, ctl.haveContentLen = value, true
			case bytes.Equal(lower, []byte("transfer-encoding")):
				ctl.transferEncoding, ctl.haveTransferEnc = value, true
			}
		}

		t.headerCount++
		if t.headerCount > t.cfg.MaxHeaders {
			out = append(out, Event{Kind: Headers, Fields: fields})
			t.ctl = mergeCtl(t.ctl, ctl)
			out = t.violate(out, LimitViolation, "max_headers", "")
			return out, false
		}
	}
}

func mergeCtl(base, add ctlHeaders) ctlHeaders {
	if add.connection != nil {
		base.connection = add.connection
	}
	if add.haveContentLen {
		base.contentLength, base.haveContentLen = add.contentLength, true
	}
	if add.haveTransferEnc {
		base.transferEncoding, base.haveTransferEnc = add.transferEncoding, true
	}
	return base
}

func (t *Tokenizer) finalizeHeaders() {
	ctl := t.ctl
	t.ctl = ctlHeaders{}

	t.connClose = bytes.EqualFold(ctl.connection, []byte("close"))

	sizeKnown := false
	if ctl.haveContentLen {
		n, err := strconv.ParseInt(string(bytes.TrimSpace(ctl.contentLength)), 10, 64)
		if err != nil || n < 0 {
			// Surfaced as a Violation on stepBody's first call, since
			// finalizeHeaders itself cannot append events.
			t.clInvalid = true
			return
		}
		t.remaining = n
		sizeKnown = true
	}
	if ctl.haveTransferEnc && bytes.EqualFold(bytes.TrimSpace(ctl.transferEncoding), []byte("chunked")) {
		t.chunked = true
		sizeKnown = true
	}

	if t.hasBody && !sizeKnown {
		t.hasBody = false
	}
}

func (t *Tokenizer) stepBody(out []Event) ([]Event, bool) {
	if t.clInvalid {
		out = t.violate(out, ProtocolViolation, "Content-Length", "")
		return out, false
	}

	if t.chunked {
		t.phase = phaseChunkSize
		return out, true
	}

	if !t.hasBody {
		if t.remaining == 0 && t.connClose {
			if len(t.buf) > 0 {
				out = append(out, Event{Kind: Content, Data: t.takeAll()})
			}
			out = append(out, Event{Kind: Message})
			t.phase = phaseBypass
			return out, false
		}
		out = append(out, Event{Kind: Message})
		t.phase = phaseLine
		return out, true
	}

	if t.remaining > 0 {
		n := int64(len(t.buf))
		if n == 0 {
			return out, false
		}
		if n > t.remaining {
			n = t.remaining
		}
		chunk := make([]byte, n)
		copy(chunk, t.buf[:n])
		t.buf = t.buf[n:]
		t.remaining -= n
		out = append(out, Event{Kind: Content, Data: chunk})
		if t.remaining > 0 {
			return out, false
		}
	}

	out = append(out, Event{Kind: Content, Data: []byte{}})
	out = append(out, Event{Kind: Message})
	t.phase = phaseLine
	return out, true
}

func (t *Tokenizer) stepChunkSize(out []Event) ([]Event, bool) {
	line, ok := t.takeLine(t.cfg.MaxChunkLineSize)
	if !ok {
		if len(t.buf) > t.cfg.MaxChunkLineSize {
			out = t.violate(out, LimitViolation, "max_chunk_line_size", "")
			return out, false
		}
		return out, false
	}

	field := line
	if semi := bytes.IndexByte(line, ';'); semi != -1 {
		field = line[:semi] // chunk extensions are accepted but ignored
	}
	size, err := strconv.ParseInt(string(bytes.TrimSpace(field)), 16, 64)
	if err != nil {
		out = t.violate(out, ProtocolViolation, "chunk-field", string(field))
		return out, false
	}

	if size == 0 {
		t.chunkFinal = true
		out = append(out, Event{Kind: Chunk, Data: []byte{}})
		t.phase = phaseTrailers
		return out, true
	}
	t.remaining = size
	t.phase = phaseChunkData
	return t.stepChunkedBody(out)
}

// stepChunkedBody drains the current chunk's data, then expects a
// trailing CRLF before the next chunk-size line.
func (t *Tokenizer) stepChunkedBody(out []Event) ([]Event, bool) {
	for t.remaining > 0 {
		n := int64(len(t.buf))
		if n == 0 {
			return out, false
		}
		if n > t.remaining {
			n = t.remaining
		}
		chunk := make([]byte, n)
		copy(chunk, t.buf[:n])
		t.buf = t.buf[n:]
		t.remaining -= n
		out = append(out, Event{Kind: Chunk, Data: chunk})
	}
	t.phase = phaseChunkCRLF
	return out, true
}

func (t *Tokenizer) stepTrailers(out []Event) ([]Event, bool) {
	var fields []Field
	ntrailers := 0
	for {
		line, ok := t.takeLine(t.cfg.MaxTrailerSize)
		if !ok {
			if len(fields) > 0 {
				out = append(out, Event{Kind: Trailers, Fields: fields})
			}
			if len(t.buf) > t.cfg.MaxTrailerSize {
				out = t.violate(out, LimitViolation, "max_trailer_size", "")
				return out, false
			}
			return out, false
		}
		if len(line) == 0 {
			if len(fields) > 0 {
				out = append(out, Event{Kind: Trailers, Fields: fields})
			}
			out = append(out, Event{Kind: Trailers, Fields: []Field{}})
			return out, true
		}

		colon := bytes.IndexByte(line, ':')
		var name, value []byte
		if colon == -1 {
			name = bytes.TrimSpace(line)
		} else {
			name = bytes.TrimSpace(line[:colon])
			value = bytes.TrimSpace(line[colon+1:])
		}
		if !t.validField(name, value) {
			return t.violate(out, ProtocolViolation, "trailer-field", string(line)), false
		}
		fields = append(fields, Field{Name: name, Value: value})

		ntrailers++
		if ntrailers > t.cfg.MaxTrailers {
			out = append(out, Event{Kind: Trailers, Fields: fields})
			out = t.violate(out, LimitViolation, "max_trailers", "")
			return out, false
		}
	}
}
