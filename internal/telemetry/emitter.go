package telemetry

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize bounds the emitter's in-flight event queue.
const DefaultQueueSize = 256

// Emitter delivers events to a sink asynchronously. Emit never blocks the
// pipeline: events are queued and drained by a background goroutine, and
// dropped (counted) when the queue is full. Sink errors are logged and
// swallowed here, never returned to callers.
type Emitter struct {
	sink    Sink
	queue   chan Event
	done    chan struct{}
	closed  atomic.Bool
	dropped atomic.Int64
	once    sync.Once
}

// NewEmitter creates an emitter draining into sink. A nil sink means
// telemetry is unconfigured and every emission is a silent no-op.
func NewEmitter(sink Sink, queueSize int) *Emitter {
	if sink == nil {
		sink = NoopSink{}
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	e := &Emitter{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}
	go e.drain()
	return e
}

func (e *Emitter) drain() {
	defer close(e.done)
	for event := range e.queue {
		if err := e.sink.Emit(context.Background(), event); err != nil {
			log.Printf("telemetry: dropped %s event: %v", event.Kind, err)
		}
	}
}

// Emit queues an event without blocking. Events emitted after Flush, or
// while the queue is full, are dropped and counted.
func (e *Emitter) Emit(event Event) {
	if e.closed.Load() {
		e.dropped.Add(1)
		return
	}
	select {
	case e.queue <- event:
	default:
		e.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded.
func (e *Emitter) Dropped() int64 {
	return e.dropped.Load()
}

// Flush stops intake and waits for the queue to drain, bounded by ctx.
// It must be called before process exit to avoid silent event loss.
func (e *Emitter) Flush(ctx context.Context) error {
	e.once.Do(func() {
		e.closed.Store(true)
		close(e.queue)
	})

	select {
	case <-e.done:
		return e.sink.Close(ctx)
	case <-ctx.Done():
		return ctx.Err()
	}
}
