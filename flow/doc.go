// SPDX-License-Identifier: GPL-3.0-or-later

// Package flow implements a push-based event streaming kernel: [Channel]
// values connect together like pipes, but carry arbitrary typed events
// rather than bytes, and propagate backpressure (obstruction) upstream
// while events flow downstream.
//
// A [Channel] is actuated once, connected to at most one downstream
// Channel, and terminates either cooperatively (Terminate, draining what
// has already been accepted) or abruptly (Interrupt, discarding
// everything from that point on). [Transformation], [Iteration],
// [Collection], [Dispatch], and [Monitor] are the derived channel kinds:
// applying a function to each event, pumping a stored iterator's values
// into a source Channel, accumulating events into a sink, observing
// traffic in passing, and measuring throughput, respectively.
// [Catenation] and [Division] build multiplexed/demultiplexed channel
// graphs for pipelining several transactions over one underlying
// transport; [RxProtocol] and [TxProtocol] adapt a raw byte Channel to
// and from a typed event Channel using a codec; [Context] is the
// one-shot lifecycle scope that connects a series of Channels, starts
// them, and reports exactly once when the whole series has finished.
package flow
