// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"net"

	"github.com/streamcore/streamcore"
	"github.com/streamcore/streamcore/flow"
)

// readBufferSize is the chunk size [NewEndpointChannels]'s reader uses
// per conn.Read call.
const readBufferSize = 4096

// NewEndpointChannels realizes spec.md §6.1's "Endpoint codec pair": rx
// is a [flow.Source] Channel that emits each successful read off conn as
// a []byte event and terminates once conn.Read returns an error; tx is a
// Channel that writes each []byte (or [][]byte batch) it receives
// straight to conn.
//
// conn is wrapped through cfg's [streamcore.ObserveConnFunc] first, so
// every read and write produces the same readStart/readDone/
// writeStart/writeDone structured log events the rest of this module's
// connection-handling code produces. The wrapper is never closed, so it
// emits no closeStart/closeDone events.
//
// The returned start function begins the read loop in its own
// goroutine; it is meant to be passed as a [flow.Context]'s start
// function, which calls it exactly once from [flow.Context.Execute].
func NewEndpointChannels(conn net.Conn, cfg *streamcore.Config, logger streamcore.SLogger) (rx, tx *flow.Channel, start func()) {
	observe := streamcore.NewObserveConnFunc(cfg, logger)
	observed, _ := observe.Call(context.Background(), conn)

	rx = flow.NewChannel(flow.Source)
	start = func() { go readLoop(rx, observed) }

	tx = flow.NewChannel(flow.Sink)
	tx.Transfer = func(c *flow.Channel, event any) {
		switch v := event.(type) {
		case [][]byte:
			for _, b := range v {
				observed.Write(b)
			}
		case []byte:
			observed.Write(v)
		}
	}

	return rx, tx, start
}

func readLoop(rx *flow.Channel, conn net.Conn) {
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			rx.Emit(chunk)
		}
		if err != nil {
			rx.Terminate(err)
			return
		}
	}
}
