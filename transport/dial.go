// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"crypto/tls"
	"net/netip"

	streamcore "github.com/streamcore/streamcore"
)

// Dial realizes spec.md §4.I step 1 for TCP (and, with tlsConfig set,
// TLS) clients: it composes [streamcore.ConnectFunc], then
// [streamcore.CancelWatchFunc], then — when tlsConfig is non-nil — a
// [streamcore.TLSHandshakeFunc], and hands the resulting connection to
// [FromEndpoint] to seed a [Stack].
//
// tlsConfig may be nil, in which case Dial returns a plaintext Stack.
func Dial(
	ctx context.Context,
	address netip.AddrPort,
	cfg *streamcore.Config,
	logger streamcore.SLogger,
	tlsConfig *tls.Config,
) (*Stack, error) {
	connect := streamcore.NewConnectFunc(cfg, "tcp", logger)
	cancelWatch := streamcore.NewCancelWatchFunc()

	if tlsConfig == nil {
		pipeline := streamcore.Compose2(connect, cancelWatch)
		conn, err := pipeline.Call(ctx, address)
		if err != nil {
			return nil, err
		}
		return FromEndpoint(conn, cfg, logger), nil
	}

	handshake := streamcore.NewTLSHandshakeFunc(cfg, tlsConfig, logger)
	pipeline := streamcore.Compose3(connect, cancelWatch, handshake)
	tconn, err := pipeline.Call(ctx, address)
	if err != nil {
		return nil, err
	}
	return FromEndpoint(tconn, cfg, logger), nil
}
