package sched

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPoolAllocSizes(t *testing.T) {
	p := newBufferPool(0)
	m := p.Alloc(10)
	require.NotNil(t, m)
	tassert.Equal(t, 10, m.Len())
	tassert.Len(t, m.Bytes(), 10)
	p.Free(m)
}

func TestBufferPoolRejectsOverMax(t *testing.T) {
	p := newBufferPool(16)
	tassert.Nil(t, p.Alloc(17))
	tassert.NotNil(t, p.Alloc(16))
}

func TestBufferPoolRejectsNegative(t *testing.T) {
	p := newBufferPool(0)
	tassert.Nil(t, p.Alloc(-1))
}

func TestBufferPoolReuse(t *testing.T) {
	p := newBufferPool(0)
	m := p.Alloc(8)
	p.Free(m)
	m2 := p.Alloc(8)
	require.NotNil(t, m2)
	tassert.Equal(t, 8, m2.Len())
}

func TestBufferPoolFreeNil(t *testing.T) {
	p := newBufferPool(0)
	tassert.NotPanics(t, func() { p.Free(nil) })
}
