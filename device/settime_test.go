package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

func TestSetTimeDevice_SetsOnceFromFirstCompletePair(t *testing.T) {
	var calls []time.Time
	setClock := func(t time.Time) error {
		calls = append(calls, t)
		return nil
	}
	d := NewSetTimeDevice("clock", setClock, nil)

	d.Enqueue([]message.Message{message.GmtTime{Hour: 12, Minute: 35, Second: 19}}, time.Now())
	require.Empty(t, calls, "should not set before date arrives")

	d.Enqueue([]message.Message{message.Date{Year: 94, Month: 3, Day: 23}}, time.Now())
	require.Len(t, calls, 1)
	assert.Equal(t, 2094, calls[0].Year())
	assert.Equal(t, time.March, calls[0].Month())
	assert.Equal(t, 23, calls[0].Day())
	assert.Equal(t, 12, calls[0].Hour())
	assert.Equal(t, 35, calls[0].Minute())
	assert.Equal(t, 19, calls[0].Second())

	// Further messages, even a fresh complete pair, are ignored.
	d.Enqueue([]message.Message{message.GmtTime{Hour: 1, Minute: 2, Second: 3}}, time.Now())
	d.Enqueue([]message.Message{message.Date{Year: 95, Month: 1, Day: 1}}, time.Now())
	assert.Len(t, calls, 1)
}

func TestSetTimeDevice_PermissionDeniedStopsFurtherAttempts(t *testing.T) {
	var calls int
	setClock := func(t time.Time) error {
		calls++
		return muxerr.ErrPermissionDenied
	}
	d := NewSetTimeDevice("clock", setClock, nil)

	d.Enqueue([]message.Message{message.GmtTime{Hour: 1, Minute: 2, Second: 3}}, time.Now())
	d.Enqueue([]message.Message{message.Date{Year: 24, Month: 1, Day: 1}}, time.Now())
	assert.Equal(t, 1, calls)

	d.Enqueue([]message.Message{message.GmtTime{Hour: 4, Minute: 5, Second: 6}}, time.Now())
	d.Enqueue([]message.Message{message.Date{Year: 24, Month: 1, Day: 2}}, time.Now())
	assert.Equal(t, 1, calls, "must not retry after PermissionDenied")
}

func TestSetTimeDevice_IgnoresOtherMessageKinds(t *testing.T) {
	var calls int
	setClock := func(t time.Time) error {
		calls++
		return nil
	}
	d := NewSetTimeDevice("clock", setClock, nil)
	d.Enqueue([]message.Message{message.DepthBelowTransducer{Meters: 3}}, time.Now())
	assert.Equal(t, 0, calls)
}
