// SPDX-License-Identifier: GPL-3.0-or-later

// Package transport builds the concrete layer stack described by
// spec.md's Transport Stack: [NewEndpointChannels] realizes the raw
// endpoint codec pair over a [net.Conn], [Stack] splices protocol
// layers above it, and [Stack.Connect] wires the final protocol layer's
// Catenation/Division pair through an [invoke.Invocations] router and
// starts the endpoint's read loop. [Stack.Connect] creates no
// [flow.Context] for either direction.
package transport
