package main

import (
	"sync"
)

const statusBufferSize = 4 * 1024

// StatusBuffer keeps the tail of the launcher's diagnostic output so the
// window can show it. Writers never block; Changed is signalled best-effort.
type StatusBuffer struct {
	data    []byte
	size    int
	changed chan struct{}
	mu      sync.RWMutex
}

// NewStatusBuffer creates a status buffer holding at most size bytes
func NewStatusBuffer(size int) *StatusBuffer {
	return &StatusBuffer{
		data:    make([]byte, 0, size),
		size:    size,
		changed: make(chan struct{}, 1),
	}
}

// Write implements io.Writer
func (b *StatusBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	if len(b.data)+len(p) > b.size {
		excess := len(b.data) + len(p) - b.size
		if excess >= len(b.data) {
			// p alone fills the buffer, keep its tail
			b.data = append([]byte{}, p[len(p)-b.size:]...)
		} else {
			b.data = append(b.data[excess:], p...)
		}
	} else {
		b.data = append(b.data, p...)
	}
	b.mu.Unlock()

	select {
	case b.changed <- struct{}{}:
	default:
	}

	return len(p), nil
}

// String returns the current buffer contents
func (b *StatusBuffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.data)
}

// Changed fires after writes; several writes may coalesce into one signal
func (b *StatusBuffer) Changed() <-chan struct{} {
	return b.changed
}
