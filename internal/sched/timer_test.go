package sched

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWheel() (*timerWheel, map[TaskID]EventMask) {
	fired := make(map[TaskID]EventMask)
	w := newTimerWheel(func(task TaskID, event EventID) {
		fired[task] |= 1 << event
	})
	return w, fired
}

func TestTimerWheelSingleFire(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))

	w.advance(9)
	tassert.Zero(t, fired[0])

	w.advance(1)
	tassert.NotZero(t, fired[0]&(1<<1))
}

func TestTimerWheelZeroDelayFiresSynchronously(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 0))
	tassert.NotZero(t, fired[0]&(1<<1))
	entry, _ := w.find(0, 1)
	tassert.Nil(t, entry)
}

func TestTimerWheelDuplicateRejected(t *testing.T) {
	w, _ := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	err := w.create(0, 1, 20)
	tassert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestTimerWheelOrderingAndTieBreak(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.create(1, 1, 10)) // ties with the first, must land after it
	require.NoError(t, w.create(2, 1, 5))  // earlier than both

	// Walk the list order directly: 2 should be head, then 0, then 1.
	tassert.Equal(t, TaskID(2), w.head.task)
	tassert.Equal(t, TaskID(0), w.head.next.task)
	tassert.Equal(t, TaskID(1), w.head.next.next.task)

	w.advance(10)
	tassert.NotZero(t, fired[2])
	tassert.NotZero(t, fired[0])
	tassert.NotZero(t, fired[1])
}

func TestTimerWheelDeleteFoldsDelta(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.create(1, 1, 20))

	w.delete(0, 1)
	entry, _ := w.find(1, 1)
	require.NotNil(t, entry)
	tassert.Equal(t, uint32(20), entry.delta)

	w.advance(20)
	tassert.Zero(t, fired[0])
	tassert.NotZero(t, fired[1])
}

func TestTimerWheelUpdate(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.update(0, 1, 5))

	w.advance(5)
	tassert.NotZero(t, fired[0])
}

func TestTimerWheelRemaining(t *testing.T) {
	w, _ := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.create(1, 1, 5))

	rem, ok := w.remaining(0, 1)
	require.True(t, ok)
	tassert.Equal(t, uint32(10), rem)

	_, ok = w.remaining(9, 9)
	tassert.False(t, ok)
}

func TestTimerWheelDeleteMissingIsNoop(t *testing.T) {
	w, _ := newTestWheel()
	w.delete(5, 5)
	tassert.Nil(t, w.head)
}

func TestTimerWheelOverAdvanceDrainsEverything(t *testing.T) {
	w, fired := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.create(1, 1, 25))
	require.NoError(t, w.create(2, 1, 40))

	// elapsed beyond the sum of all deltas matures every entry in one
	// call and leaves the list empty.
	w.advance(100)
	tassert.NotZero(t, fired[0])
	tassert.NotZero(t, fired[1])
	tassert.NotZero(t, fired[2])
	tassert.Nil(t, w.head)
}

func TestTimerWheelCreateDeletePairRestoresList(t *testing.T) {
	w, _ := newTestWheel()
	require.NoError(t, w.create(0, 1, 10))
	require.NoError(t, w.create(1, 1, 30))

	require.NoError(t, w.create(2, 2, 20))
	w.delete(2, 2)

	// The surviving entries' absolute deadlines are unchanged.
	rem, ok := w.remaining(0, 1)
	require.True(t, ok)
	tassert.Equal(t, uint32(10), rem)
	rem, ok = w.remaining(1, 1)
	require.True(t, ok)
	tassert.Equal(t, uint32(30), rem)
}
