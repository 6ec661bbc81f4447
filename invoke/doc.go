// SPDX-License-Identifier: GPL-3.0-or-later

// Package invoke bridges a [flow.Division] consumer with application
// code: it buffers the tagged events Division produces per transaction,
// hands them to a user-supplied router, and — on the server side —
// reserves matching transaction ids in a paired [flow.Catenation] so a
// handler can attach a response producer while it still consumes the
// request body; on the client side it lets a caller correlate buffered
// events against requests it is still waiting on.
package invoke
