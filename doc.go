// SPDX-License-Identifier: GPL-3.0-or-later

// Package streamcore provides the ambient connection-handling primitives
// shared by this module's HTTP/1.x I/O core: dialing, TLS handshaking,
// connection observation, and context-driven cancellation. The
// domain-specific layers built on top of it live in sibling packages:
//
//   - [github.com/streamcore/streamcore/ri]: Resource Indicator parsing
//     and serialization
//   - [github.com/streamcore/streamcore/httpwire]: HTTP/1.x tokenizer and
//     assembler
//   - [github.com/streamcore/streamcore/flow]: the Channel kernel,
//     Catenation/Division multiplexing, and Protocol Channels
//   - [github.com/streamcore/streamcore/invoke]: the Invocations Router
//   - [github.com/streamcore/streamcore/transport]: the Transport Stack
//     that wires the above into a running connection
//
// # Core Abstraction
//
// The package is built around a single interface:
//
//	type Func[A, B any] interface {
//		Call(ctx context.Context, input A) (B, error)
//	}
//
// Each Func represents an atomic operation with exactly one success mode
// and one failure mode. This design enables type-safe composition via
// [Compose2] through [Compose8], where the compiler verifies that outputs
// match inputs across pipeline stages. [transport.Dial] composes
// [ConnectFunc], [CancelWatchFunc], and optionally [TLSHandshakeFunc] this
// way to seed a [transport.Stack].
//
// # Available Primitives
//
//   - [ConnectFunc]: dials TCP endpoints
//   - [TLSHandshakeFunc]: performs a TLS handshake over an existing connection
//   - [ObserveConnFunc]: observes connections for logging I/O operations;
//     this is what [transport.NewEndpointChannels] wraps every endpoint in
//   - [CancelWatchFunc]: closes a connection on context cancellation (for
//     responsive ^C handling)
//
// # Connection Lifecycle
//
// Dial operations ([ConnectFunc], [TLSHandshakeFunc]) create connections
// and transfer ownership to the next stage on success. On error, they
// close the connection. [transport.NewEndpointChannels] then reads from
// and writes to the resulting connection but never closes it: terminating
// the rx/tx Channels or a [flow.Context] leaves the connection open. It is
// closed by [CancelWatchFunc] when its context is done, or by the code
// that supplied it.
//
// # Observability
//
// [ConnectFunc], [TLSHandshakeFunc], and [ObserveConnFunc] support
// structured logging via [SLogger] (compatible with [log/slog]);
// [CancelWatchFunc] does not log. By default, logging is disabled — set the Logger
// field to a custom [*slog.Logger] to enable it. Error classification is
// configurable via [ErrClassifier]; by default, [DefaultErrClassifier] is
// used.
//
// Primitives emit span events (*Start/*Done pairs) recording operation
// lifecycle, timing, and success/failure. All events carry remoteAddr,
// protocol, and t (timestamp); every event except connectStart also
// carries localAddr.
// Completion events (*Done) additionally include t0 (start time), err,
// and errClass. I/O-level events (read, write, deadline changes) are
// emitted at [slog.LevelDebug]; all other events use [slog.LevelInfo].
//
// Use [NewSpanID] to generate a unique, time-ordered identifier (UUIDv7)
// for each operation, then attach it to the logger with
// [*slog.Logger.With]. All log entries from that operation will share the
// same spanID, enabling correlation across pipeline stages.
//
// # Timeout and Context Philosophy
//
// This package is context-transparent: operations never modify the
// context they receive. The caller controls timeouts externally via
// [context.WithTimeout], [context.WithDeadline], or
// [signal.NotifyContext]. Connection lifecycle requires [CancelWatchFunc]
// to bind the context lifecycle to the connection: when the context is
// done, the connection is closed immediately, causing any in-progress I/O
// — including a [flow.Channel]'s read loop — to fail and terminate.
package streamcore
