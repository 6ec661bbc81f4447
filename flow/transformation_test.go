// SPDX-License-Identifier: GPL-3.0-or-later

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Transfer emits fn(event), not event itself.
func TestTransformationAppliesFnBeforeEmit(t *testing.T) {
	tf := NewTransformation(func(e any) any { return e.(int) * 2 })

	var forwarded []any
	down := NewChannel(Transformer)
	down.Transfer = func(c *Channel, e any) { forwarded = append(forwarded, e) }
	tf.Connect(down)

	tf.Transfer(tf.Channel, 21)
	assert.Equal(t, []any{42}, forwarded)
}
