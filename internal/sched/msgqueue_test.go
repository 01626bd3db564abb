package sched

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgQueueFIFOOrderAndEmptyTransition(t *testing.T) {
	var q msgQueue

	tassert.Nil(t, q.dequeue())

	wasEmpty := q.enqueue(&Message{size: 1, data: []byte{1}})
	tassert.True(t, wasEmpty)

	wasEmpty = q.enqueue(&Message{size: 1, data: []byte{2}})
	tassert.False(t, wasEmpty)

	first := q.dequeue()
	require.NotNil(t, first)
	tassert.Equal(t, byte(1), first.Bytes()[0])

	second := q.dequeue()
	require.NotNil(t, second)
	tassert.Equal(t, byte(2), second.Bytes()[0])

	tassert.Nil(t, q.dequeue())
}
