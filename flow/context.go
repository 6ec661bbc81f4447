// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// Context is a one-shot lifecycle scope around a series of connected
// Channels: the unit a caller uses to run "one HTTP message exchange"
// or "one stream copy" and find out, exactly once, when it is over.
//
// A Context owns a span id (a UUIDv7, so it sorts chronologically in
// logs) that a caller can attach to its own log lines for this run; the
// Context and its channels do not log anything themselves.
type Context struct {
	SpanID string

	series   []*Channel
	terminal *Terminal
	start    func()
	done     func()

	executed   bool
	terminated bool
}

// NewContext builds a Context over series (ordered upstream-first,
// excluding the terminal) plus an internally appended terminal channel.
// start begins the flow once [Context.Execute] is called (typically
// kicking off a read loop on the underlying transport); done is called
// exactly once, when the terminal channel finishes.
func NewContext(series []*Channel, start func(), done func()) *Context {
	ctx := &Context{
		SpanID: runtimex.PanicOnError1(uuid.NewV7()).String(),
		series: series,
		start:  start,
		done:   done,
	}
	ctx.terminal = NewTerminal(func(*Terminal) { ctx.finish() })

	full := append(append([]*Channel{}, series...), ctx.terminal.Channel)
	for i := len(full) - 2; i >= 0; i-- {
		full[i].Connect(full[i+1])
	}
	return ctx
}

func (ctx *Context) finish() {
	if ctx.terminated {
		return
	}
	ctx.terminated = true
	if ctx.done != nil {
		ctx.done()
	}
}

// Execute starts the series, calling the start function supplied to
// [NewContext] exactly once.
func (ctx *Context) Execute() {
	if ctx.executed {
		return
	}
	ctx.executed = true
	if ctx.start != nil {
		ctx.start()
	}
}

// Terminate cooperatively shuts the series down from its head, cascading
// through every channel down to the terminal.
func (ctx *Context) Terminate() {
	if len(ctx.series) == 0 {
		ctx.terminal.Terminate(ctx)
		return
	}
	ctx.series[0].Terminate(ctx)
}

// Terminated reports whether the Context's terminal channel has fired.
func (ctx *Context) Terminated() bool { return ctx.terminated }
