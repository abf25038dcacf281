package events

import (
	"context"
	"errors"
	"time"

	"futsal/pkg/kafka"
	"futsal/pkg/logger"
	"futsal/pkg/middleware"
	"futsal/pkg/model"

	"github.com/sony/gobreaker"
)

const defaultPublishTimeout = 2 * time.Second

type sender interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// KafkaPublisher sends events through a circuit breaker. While the breaker
// is open, events are dropped without touching the producer.
type KafkaPublisher struct {
	producer sender
	breaker  *gobreaker.CircuitBreaker
	source   string
	timeout  time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewKafkaPublisher(producer sender, settings BreakerSettings, source string, log *logger.Logger) *KafkaPublisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-booking-events",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &KafkaPublisher{
		producer: producer,
		breaker:  breaker,
		source:   source,
		timeout:  defaultPublishTimeout,
		log:      log,
		now:      time.Now,
	}
}

func (p *KafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, Event{Type: TypeBookingCreated, OccurredAt: p.now(), Booking: booking})
}

func (p *KafkaPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, Event{Type: TypeBookingDeleted, OccurredAt: p.now(), Booking: booking})
}

func (p *KafkaPublisher) BookingsPurged(ctx context.Context, deleted int64, before time.Time) {
	p.publish(ctx, purgeEvent(deleted, before, p.now()))
}

func (p *KafkaPublisher) publish(ctx context.Context, event Event) {
	requestID := middleware.RequestIDFromContext(ctx)

	msg, err := kafka.NewMessage().
		WithKey(event.key()).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(requestID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		p.log.Error("Failed to build event", "event_type", event.Type, "error", err)
		return
	}

	// The request may already be finished; the publish gets its own deadline.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	// Only transient failures count against the breaker.
	var rejected error
	_, err = p.breaker.Execute(func() (interface{}, error) {
		pubErr := p.producer.Publish(pubCtx, msg)
		if pubErr != nil && kafka.ClassifyError(pubErr) == kafka.ErrorTypePermanent {
			rejected = pubErr
			return nil, nil
		}
		return nil, pubErr
	})
	if rejected != nil {
		p.log.Error("Event rejected",
			"event_type", event.Type,
			"key", msg.Key,
			"request_id", requestID,
			"error", rejected,
		)
		return
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			p.log.Debug("Event dropped, circuit open", "event_type", event.Type, "key", msg.Key)
			return
		}
		p.log.Warn("Failed to publish event",
			"event_type", event.Type,
			"key", msg.Key,
			"request_id", requestID,
			"error", err,
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
