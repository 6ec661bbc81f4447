// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"net"
	"testing"
	"time"

	streamcore "github.com/streamcore/streamcore"
	"github.com/streamcore/streamcore/flow"
	"github.com/streamcore/streamcore/invoke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Append splices a layer's rx above and tx below the current stack ends.
func TestStackAppendSplicesAboveAndBelow(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	stack := FromEndpoint(server, streamcore.NewConfig(), streamcore.DefaultSLogger())

	layerRx := flow.NewChannel(flow.Transformer)
	layerRx.Transfer = func(c *flow.Channel, e any) {
		c.Emit(append([]byte("["), append(e.([]byte), ']')...))
	}
	layerTx := flow.NewChannel(flow.Transformer)

	stack.Append(layerRx, layerTx)

	assert.Same(t, layerRx, stack.topRx)
	assert.Same(t, layerTx, stack.bottomTx)

	var got []byte
	sink := flow.NewChannel(flow.Sink)
	sink.Transfer = func(c *flow.Channel, e any) { got = append(got, e.([]byte)...) }
	stack.topRx.Connect(sink)

	stack.start()
	_, err := client.Write([]byte("hi"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(got) > 0 }, time.Second, time.Millisecond)
	assert.Equal(t, "[hi]", string(got))

	// layerTx forwards whatever it receives down to the original base tx.
	done := make(chan struct{})
	buf := make([]byte, 10)
	var n int
	go func() {
		n, _ = client.Read(buf)
		close(done)
	}()
	layerTx.Transfer(layerTx, []byte("bye"))
	<-done
	assert.Equal(t, "bye", string(buf[:n]))
}

// Connect wires a protocol layer's DivEvent stream through Division and
// into an Invocations router, so a buffered request becomes visible via
// Accept.
func TestStackConnectRoutesEventsToInvocations(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	stack := FromEndpoint(server, streamcore.NewConfig(), streamcore.DefaultSLogger())

	// A trivial "protocol" layer: one raw []byte chunk becomes one
	// complete transaction's DivInitiate+DivTerminate pair.
	nextID := 0
	protoRx := flow.NewChannel(flow.Transformer)
	protoRx.Transfer = func(c *flow.Channel, e any) {
		nextID++
		id := nextID
		c.Emit(flow.DivEvent{ChannelID: id, Kind: flow.DivInitiate, Data: e})
		c.Emit(flow.DivEvent{ChannelID: id, Kind: flow.DivTerminate})
	}
	protoTx := flow.NewChannel(flow.Transformer)

	var accepted []invoke.Accepted
	iv := stack.Connect(protoRx, protoTx, func(id, initiate any) *flow.Channel {
		return nil
	}, func(iv *invoke.Invocations) {
		accepted = append(accepted, iv.Accept()...)
	})
	require.NotNil(t, iv)

	_, err := client.Write([]byte("request-1"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(accepted) > 0 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, accepted[0].ChannelID)
	require.Len(t, accepted[0].Events, 2)
	assert.Equal(t, flow.DivInitiate, accepted[0].Events[0].Kind)
}
