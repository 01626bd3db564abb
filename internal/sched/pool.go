package sched

import (
	"sync"

	"github.com/peos-rtos/st/internal/constants"
)

// bufferPool is the default Allocator: a sync.Pool per payload size
// class. Stores *[]byte rather than []byte to avoid an
// interface-boxing allocation per Get/Put.
type bufferPool struct {
	small, medium, large, xlarge sync.Pool
	maxSize                      int
}

// newBufferPool builds a pool that refuses to allocate payloads larger
// than maxSize — callers see that as a nil handle, the same way a
// genuinely exhausted allocator reports. maxSize<=0 means unbounded.
func newBufferPool(maxSize int) *bufferPool {
	return &bufferPool{
		small:   sync.Pool{New: func() any { b := make([]byte, constants.MsgBucketSmall); return &b }},
		medium:  sync.Pool{New: func() any { b := make([]byte, constants.MsgBucketMedium); return &b }},
		large:   sync.Pool{New: func() any { b := make([]byte, constants.MsgBucketLarge); return &b }},
		xlarge:  sync.Pool{New: func() any { b := make([]byte, constants.MsgBucketXLarge); return &b }},
		maxSize: maxSize,
	}
}

func (p *bufferPool) bucketFor(size int) *sync.Pool {
	switch {
	case size <= constants.MsgBucketSmall:
		return &p.small
	case size <= constants.MsgBucketMedium:
		return &p.medium
	case size <= constants.MsgBucketLarge:
		return &p.large
	case size <= constants.MsgBucketXLarge:
		return &p.xlarge
	default:
		return nil
	}
}

// Alloc implements Allocator. The payload memory is uninitialized (or
// rather, whatever a previous tenant left behind); the caller writes
// into it before sending.
func (p *bufferPool) Alloc(size int) *Message {
	if size < 0 {
		return nil
	}
	if p.maxSize > 0 && size > p.maxSize {
		return nil
	}
	pool := p.bucketFor(size)
	var buf []byte
	if pool == nil {
		// Oversized but under maxSize (or maxSize unbounded): fall
		// back to a direct, unpooled allocation.
		buf = make([]byte, size)
	} else {
		buf = (*pool.Get().(*[]byte))[:size]
	}
	return &Message{size: size, data: buf}
}

// Free implements Allocator, returning pooled buffers to their bucket
// by capacity.
func (p *bufferPool) Free(m *Message) {
	if m == nil {
		return
	}
	c := cap(m.data)
	buf := m.data[:c]
	switch c {
	case constants.MsgBucketSmall:
		p.small.Put(&buf)
	case constants.MsgBucketMedium:
		p.medium.Put(&buf)
	case constants.MsgBucketLarge:
		p.large.Put(&buf)
	case constants.MsgBucketXLarge:
		p.xlarge.Put(&buf)
		// Non-bucket capacities (the unpooled, oversized path) are
		// left for the garbage collector.
	}
	m.data = nil
	m.size = 0
}

var _ Allocator = (*bufferPool)(nil)
