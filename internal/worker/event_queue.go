package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/events"
)

const deliverTimeout = 5 * time.Second

// EventQueue delivers events to a sink from a single background goroutine so request handlers
// never wait on the broker.
type EventQueue struct {
	sink   events.Sink
	logger *zap.Logger
	ch     chan events.Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// StartEventQueue launches the delivery loop. size bounds the number of buffered events.
func StartEventQueue(sink events.Sink, size int, logger *zap.Logger) *EventQueue {
	if size <= 0 {
		size = 1
	}
	q := &EventQueue{
		sink:   sink,
		logger: logger,
		ch:     make(chan events.Event, size),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Enqueue hands event to the loop without blocking. It reports false when the buffer is full or
// the queue is closed; the event is dropped in that case.
func (q *EventQueue) Enqueue(event events.Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.ch <- event:
		return true
	default:
		return false
	}
}

// Close stops accepting events, waits for buffered ones to be delivered and closes the sink.
func (q *EventQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return nil
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	<-q.done
	return q.sink.Close()
}

func (q *EventQueue) run() {
	defer close(q.done)
	for event := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := q.sink.Deliver(ctx, event); err != nil {
			q.logger.Warn("event delivery failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
		cancel()
	}
}
