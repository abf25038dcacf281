package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"futsal/pkg/calendar"
	"futsal/pkg/kafka"
	"futsal/pkg/logger"
	"futsal/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	messages []kafka.Message
	err      error
	calls    int
}

func (f *fakeSender) Publish(_ context.Context, msg kafka.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeSender) Close() error { return nil }

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	sender := &fakeSender{}
	p := NewKafkaPublisher(sender, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, "futsal", logger.Discard())

	booking := &model.Booking{ID: "b-1", UserID: "u-1", Date: calendar.Day(2025, time.February, 19)}
	p.BookingCreated(context.Background(), booking)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, "b-1", msg.Key)
	assert.Equal(t, TypeBookingCreated, msg.GetEventType())
	assert.Equal(t, "futsal", msg.Headers[kafka.HeaderSource])

	var event Event
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, TypeBookingCreated, event.Type)
	require.NotNil(t, event.Booking)
	assert.Equal(t, "u-1", event.Booking.UserID)
}

func TestKafkaPublisher_BookingsPurged(t *testing.T) {
	sender := &fakeSender{}
	p := NewKafkaPublisher(sender, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Minute}, "futsal", logger.Discard())

	p.BookingsPurged(context.Background(), 4, calendar.Day(2025, time.February, 19))

	require.Len(t, sender.messages, 1)
	var event Event
	require.NoError(t, sender.messages[0].DecodeValue(&event))
	require.NotNil(t, event.Purge)
	assert.Equal(t, int64(4), event.Purge.Deleted)
	assert.Equal(t, "2025-02-19", event.Purge.Before)
	assert.Equal(t, "purge:2025-02-19", sender.messages[0].Key)
}

func TestKafkaPublisher_BreakerOpensAfterFailures(t *testing.T) {
	sender := &fakeSender{err: kafka.NewTransientError("failed to write message", errors.New("broker down"))}
	p := NewKafkaPublisher(sender, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, "futsal", logger.Discard())

	booking := &model.Booking{ID: "b-1"}
	for i := 0; i < 5; i++ {
		assert.NotPanics(t, func() { p.BookingCreated(context.Background(), booking) })
	}

	assert.Equal(t, 2, sender.calls, "open breaker short-circuits further publishes")
}

func TestKafkaPublisher_PermanentFailuresKeepBreakerClosed(t *testing.T) {
	sender := &fakeSender{err: kafka.NewPermanentError("unknown topic", errors.New("topic missing"))}
	p := NewKafkaPublisher(sender, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, "futsal", logger.Discard())

	booking := &model.Booking{ID: "b-1"}
	for i := 0; i < 5; i++ {
		p.BookingCreated(context.Background(), booking)
	}
	assert.Equal(t, 5, sender.calls)

	sender.err = nil
	p.BookingCreated(context.Background(), booking)
	assert.Len(t, sender.messages, 1)
}

func TestKafkaPublisher_UnwrappedErrorsArePermanent(t *testing.T) {
	sender := &fakeSender{err: errors.New("message too large")}
	p := NewKafkaPublisher(sender, BreakerSettings{MaxFailures: 1, OpenTimeout: time.Minute}, "futsal", logger.Discard())

	for i := 0; i < 3; i++ {
		p.BookingDeleted(context.Background(), &model.Booking{ID: "b-2"})
	}
	assert.Equal(t, 3, sender.calls)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	p.BookingCreated(context.Background(), &model.Booking{})
	p.BookingsPurged(context.Background(), 1, time.Now())
	assert.NoError(t, p.Close())
}
