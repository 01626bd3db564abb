package sched

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
)

func TestEventMatrixSetClearPending(t *testing.T) {
	m := newEventMatrix(2)
	m.set(0, 3)
	m.set(0, 1)
	tassert.Equal(t, EventMask(0b1010), m.pending(0))

	m.clear(0, 1)
	tassert.Equal(t, EventMask(0b1000), m.pending(0))
	tassert.Zero(t, m.pending(1))
}

func TestEventMatrixLowestSet(t *testing.T) {
	m := newEventMatrix(1)
	_, ok := m.lowestSet(0)
	tassert.False(t, ok)

	m.set(0, 5)
	m.set(0, 2)
	bit, ok := m.lowestSet(0)
	tassert.True(t, ok)
	tassert.Equal(t, EventID(2), bit)
}

func TestEventMatrixSetIdempotent(t *testing.T) {
	m := newEventMatrix(1)
	m.set(0, 4)
	m.set(0, 4)
	tassert.Equal(t, EventMask(1<<4), m.pending(0))
}

func TestEventMatrixHighestEventLeavesOthersAlone(t *testing.T) {
	m := newEventMatrix(1)
	m.set(0, 0)
	m.set(0, EventMax-1)
	tassert.Equal(t, EventMask(1)|EventMask(1)<<(EventMax-1), m.pending(0))

	m.clear(0, EventMax-1)
	tassert.Equal(t, EventMask(1), m.pending(0))
}
