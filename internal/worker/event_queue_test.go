package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSink struct {
	mu     sync.Mutex
	got    []string
	block  chan struct{}
	fail   error
	closed bool
}

func (s *recordingSink) Deliver(ctx context.Context, e events.Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, e.ID)
	return s.fail
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestEventQueueDeliversInOrderAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	q := StartEventQueue(sink, 10, zap.NewNop())

	for _, id := range []string{"a", "b", "c"} {
		require.True(t, q.Enqueue(events.Event{ID: id}))
	}
	require.NoError(t, q.Close())

	assert.Equal(t, []string{"a", "b", "c"}, sink.got)
	assert.True(t, sink.closed)
	assert.False(t, q.Enqueue(events.Event{ID: "late"}))
	assert.NoError(t, q.Close())
}

func TestEventQueueDropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	q := StartEventQueue(sink, 1, zap.NewNop())

	require.True(t, q.Enqueue(events.Event{ID: "first"}))
	// The loop may already hold "first"; fill the single buffer slot, then overflow it.
	accepted := 1
	for i := 0; i < 3; i++ {
		if q.Enqueue(events.Event{ID: "extra"}) {
			accepted++
		}
	}
	assert.LessOrEqual(t, accepted, 2)

	close(sink.block)
	require.NoError(t, q.Close())
	assert.Len(t, sink.got, accepted)
}

func TestEventQueueSurvivesDeliveryErrors(t *testing.T) {
	sink := &recordingSink{fail: errors.New("broker down")}
	q := StartEventQueue(sink, 4, zap.NewNop())

	require.True(t, q.Enqueue(events.Event{ID: "a"}))
	require.True(t, q.Enqueue(events.Event{ID: "b"}))
	require.NoError(t, q.Close())

	assert.Equal(t, []string{"a", "b"}, sink.got)
}
