// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"net"

	streamcore "github.com/streamcore/streamcore"
	"github.com/streamcore/streamcore/flow"
)

// NewTLSLayer realizes spec.md §6.1's "Secure transport" abstraction as a
// transport-stack layer: it runs handshake over conn and, on success,
// feeds the resulting [streamcore.TLSConn] through [NewEndpointChannels]
// so the rest of the stack sees it exactly like any other endpoint.
func NewTLSLayer(
	ctx context.Context,
	conn net.Conn,
	handshake *streamcore.TLSHandshakeFunc,
	cfg *streamcore.Config,
	logger streamcore.SLogger,
) (rx, tx *flow.Channel, start func(), err error) {
	tconn, err := handshake.Call(ctx, conn)
	if err != nil {
		return nil, nil, nil, err
	}
	rx, tx, start = NewEndpointChannels(tconn, cfg, logger)
	return rx, tx, start, nil
}
