// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	streamcorenet "net"

	streamcore "github.com/streamcore/streamcore"
	"github.com/streamcore/streamcore/flow"
	"github.com/streamcore/streamcore/invoke"
)

// Stack is spec.md §4.I's Transport Stack: an ordered list of layers,
// base to top, each contributing an rx Channel (spliced above the
// previous rx, so raw bytes flow bottom-up into increasingly parsed
// events) and a tx Channel (spliced below the previous tx, so
// application events flow top-down into increasingly serialized bytes).
type Stack struct {
	start func()

	topRx    *flow.Channel
	bottomTx *flow.Channel
}

// FromEndpoint seeds a Stack with the raw endpoint codec pair: conn,
// wrapped in cfg's observability, becomes the base rx/tx layer.
func FromEndpoint(conn streamcorenet.Conn, cfg *streamcore.Config, logger streamcore.SLogger) *Stack {
	rx, tx, start := NewEndpointChannels(conn, cfg, logger)
	return &Stack{start: start, topRx: rx, bottomTx: tx}
}

// Append splices a protocol layer's rx above the current top and tx
// below the current bottom, making it the new top/bottom respectively.
func (s *Stack) Append(rx, tx *flow.Channel) {
	s.topRx.Connect(rx)
	s.topRx = rx

	tx.Connect(s.bottomTx)
	s.bottomTx = tx
}

// Connect adds protoRx/protoTx as the final protocol layer, allocates a
// Catenation on the tx side and a Division on the rx side, and wires an
// [invoke.Invocations] router between them: every [flow.DivEvent]
// protoRx emits is both routed to its per-transaction consumer (via
// dispatch, a [flow.Division] callback — return nil to rely solely on
// Invocations' buffer-then-[invoke.Invocations.Accept] model) and handed
// to Invocations so router sees it. Connect returns the Invocations
// instance, the handle an embedder uses to accept/correlate/allocate
// transactions, and starts the endpoint's read loop.
//
// Spawning a [flow.Context] around one exchange is the embedder's job:
// Connect only wires the steady-state pipeline.
func (s *Stack) Connect(
	protoRx, protoTx *flow.Channel,
	dispatch func(channelID any, initiate any) *flow.Channel,
	router func(*invoke.Invocations),
) *invoke.Invocations {
	s.Append(protoRx, protoTx)

	cat := flow.NewCatenation()
	div := flow.NewDivision(dispatch)
	iv := invoke.NewInvocations(cat, router)

	var pending []flow.DivEvent
	bridge := flow.NewDispatch(func(event any) {
		e, ok := event.(flow.DivEvent)
		if !ok {
			return
		}
		div.Route(e)
		pending = append(pending, e)
		if e.Kind == flow.DivTerminate {
			iv.Dispatch(pending)
			pending = nil
		}
	})
	s.topRx.Connect(bridge.Channel)
	cat.Channel.Connect(s.bottomTx)

	s.start()
	return iv
}
