package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
	test_test "github.com/arnegue/seatalk-mux/test"
)

func TestBoundedQueue_FIFO(t *testing.T) {
	q := newBoundedQueue(10)
	now := time.Now()
	for i := 0; i < 5; i++ {
		q.push(message.Envelope{Payload: []message.Message{message.DepthBelowTransducer{Meters: float32(i)}}, EnqueuedAt: now})
	}
	items := q.popAll()
	require.Len(t, items, 5)
	for i, env := range items {
		assert.Equal(t, float32(i), env.Payload[0].(message.DepthBelowTransducer).Meters)
	}
}

func TestBoundedQueue_HeadDropOnOverflow(t *testing.T) {
	q := newBoundedQueue(3)
	now := time.Now()
	var dropped int
	for i := 0; i < 5; i++ {
		if q.push(message.Envelope{Payload: []message.Message{message.DepthBelowTransducer{Meters: float32(i)}}, EnqueuedAt: now}) {
			dropped++
		}
	}
	assert.Equal(t, 2, dropped)
	items := q.popAll()
	require.Len(t, items, 3)
	// oldest two (0, 1) were dropped; 2,3,4 remain in order.
	assert.Equal(t, float32(2), items[0].Payload[0].(message.DepthBelowTransducer).Meters)
	assert.Equal(t, float32(3), items[1].Payload[0].(message.DepthBelowTransducer).Meters)
	assert.Equal(t, float32(4), items[2].Payload[0].(message.DepthBelowTransducer).Meters)
}

func TestBoundedQueue_NeverExceedsCapacity(t *testing.T) {
	q := newBoundedQueue(10)
	now := time.Now()
	for i := 0; i < 200; i++ {
		q.push(message.Envelope{Payload: []message.Message{message.DepthBelowTransducer{Meters: float32(i)}}, EnqueuedAt: now})
		assert.LessOrEqual(t, q.len(), 10)
	}
}

func TestExpired(t *testing.T) {
	now := test_test.UTCTime(1665488842) // Tue Oct 11 2022 11:47:22 GMT+0000
	env := message.Envelope{EnqueuedAt: now.Add(-time.Second)}
	assert.True(t, expired(env, 500*time.Millisecond, now))
	assert.False(t, expired(env, 2*time.Second, now))
}
