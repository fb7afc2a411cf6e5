package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to transporters on a background goroutine.
// When the queue is full the oldest queued entry is dropped.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	dropped      atomic.Int64

	mu     sync.RWMutex // guards closed against Send racing Close
	closed bool
	done   chan struct{}
}

// NewBuffer starts a buffer with the given queue capacity.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		queue:        make(chan Entry, capacity),
		transporters: transporters,
		done:         make(chan struct{}),
	}
	go b.run()
	return b
}

// Send queues an entry. It never blocks and is a no-op after Close.
func (b *Buffer) Send(entry Entry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for {
		select {
		case b.queue <- entry:
			return
		default:
		}
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
}

// Dropped returns how many entries were discarded because the queue was full.
func (b *Buffer) Dropped() int64 {
	return b.dropped.Load()
}

// Close flushes queued entries and closes every transporter. Safe to call twice.
func (b *Buffer) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	<-b.done
	for _, t := range b.transporters {
		if err := t.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "log transporter %q close: %v\n", t.Name(), err)
		}
	}
}

func (b *Buffer) run() {
	defer close(b.done)
	for entry := range b.queue {
		for _, t := range b.transporters {
			if err := t.Write(entry); err != nil {
				fmt.Fprintf(os.Stderr, "log transporter %q failed: %v\n", t.Name(), err)
			}
		}
	}
}
