// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import "github.com/streamcore/streamcore/httpwire"

// AllocateFunc decides, once a request/status line and its headers have
// fully arrived, what initiation payload to hand downstream (e.g. a
// parsed request ready for routing) together with the wire version to
// reply with. It is the only point at which [RxProtocol] makes a
// client/server polarity decision, and is always supplied by the
// embedder.
type AllocateFunc func(line [][]byte, headers []httpwire.Field) (initiate any, version string)

// RxProtocol is a Channel that drives an [httpwire.Tokenizer] over the
// raw bytes it receives and emits [DivEvent] values in the tagged form a
// [Division] expects: one transaction id per request/status line,
// started by an AllocateFunc-produced DivInitiate, carrying its
// Content/Chunk/Trailers events as DivTransfer, and closed by DivTerminate
// once the tokenizer reports the message complete.
type RxProtocol struct {
	*Channel

	version  string
	allocate AllocateFunc
	tok      *httpwire.Tokenizer

	nextID  int
	current int
	line    [][]byte
	headers []httpwire.Field
}

// NewRxProtocol returns an actuated [*RxProtocol]. cfg may be nil to
// accept [httpwire.NewConfig]'s defaults.
func NewRxProtocol(version string, allocate AllocateFunc, cfg *httpwire.Config) *RxProtocol {
	p := &RxProtocol{
		Channel:  NewChannel(Transformer),
		version:  version,
		allocate: allocate,
		tok:      httpwire.NewTokenizer(cfg),
	}
	p.Channel.Transfer = func(c *Channel, event any) {
		data, _ := event.([]byte)
		for _, e := range p.tok.Feed(data) {
			p.translate(e)
		}
	}
	return p
}

func (p *RxProtocol) translate(e httpwire.Event) {
	switch e.Kind {
	case httpwire.RLine:
		p.nextID++
		p.current = p.nextID
		p.line = e.Line
		p.headers = nil

	case httpwire.Headers:
		if len(e.Fields) == 0 {
			initiate, _ := p.allocate(p.line, p.headers)
			p.Channel.Emit(DivEvent{ChannelID: p.current, Kind: DivInitiate, Data: initiate})
			return
		}
		p.headers = append(p.headers, e.Fields...)

	case httpwire.Content, httpwire.Chunk, httpwire.Trailers:
		p.Channel.Emit(DivEvent{ChannelID: p.current, Kind: DivTransfer, Data: e})

	case httpwire.Message:
		p.Channel.Emit(DivEvent{ChannelID: p.current, Kind: DivTerminate, Data: nil})

	case httpwire.Violation, httpwire.Bypass:
		p.Channel.Emit(DivEvent{ChannelID: p.current, Kind: DivTransfer, Data: e})
	}
}

// InitiateFunc turns an outbound transaction's initiation parameters
// (produced by whatever allocated the transaction, e.g. the invoke
// package's Invocations.Allocate) into the request/status line tokens and header
// fields an [httpwire.Assembler] needs to start a message.
type InitiateFunc func(version string, params any) (line []string, headers []httpwire.Field)

// TxProtocol is a Channel that drives an [httpwire.Assembler] from the
// [CatEvent] stream a [Catenation] produces: a CatInitiate event is
// turned into a request/status line and headers via an InitiateFunc,
// CatTransfer events carrying an [httpwire.Event] are marshaled as-is,
// and CatTerminate appends a Message event, which writes no bytes of its
// own.
type TxProtocol struct {
	*Channel

	version  string
	initiate InitiateFunc
	asm      *httpwire.Assembler
}

// NewTxProtocol returns an actuated [*TxProtocol].
func NewTxProtocol(version string, initiate InitiateFunc) *TxProtocol {
	p := &TxProtocol{
		Channel:  NewChannel(Transformer),
		version:  version,
		initiate: initiate,
		asm:      httpwire.NewAssembler(),
	}
	p.Channel.Transfer = func(c *Channel, event any) {
		batch, ok := event.([]CatEvent)
		if !ok {
			return
		}
		for _, e := range batch {
			p.translate(e)
		}
		if out := p.asm.Marshal(); len(out) > 0 {
			c.Emit(out)
		}
	}
	return p
}

func (p *TxProtocol) translate(e CatEvent) {
	switch e.Kind {
	case CatInitiate:
		line, headers := p.initiate(p.version, e.Data)
		if len(line) == 3 {
			p.asm.Emit(httpwire.Event{Kind: httpwire.RLine, Line: toByteLine(line)})
		}
		for _, h := range headers {
			p.asm.Emit(httpwire.Event{Kind: httpwire.Headers, Fields: []httpwire.Field{h}})
		}
		p.asm.Emit(httpwire.Event{Kind: httpwire.Headers, Fields: []httpwire.Field{}})

	case CatTransfer:
		if wireEvent, ok := e.Data.(httpwire.Event); ok {
			p.asm.Emit(wireEvent)
		}

	case CatTerminate:
		p.asm.Emit(httpwire.Event{Kind: httpwire.Message})
	}
}

func toByteLine(s []string) [][]byte {
	out := make([][]byte, len(s))
	for i, v := range s {
		out[i] = []byte(v)
	}
	return out
}
