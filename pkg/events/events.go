// Package events publishes booking lifecycle events. Publishing is best
// effort: failures are logged and never reach the caller.
package events

import (
	"context"
	"time"

	"futsal/pkg/calendar"
	"futsal/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingDeleted = "booking.deleted"
	TypeBookingsPurged = "bookings.purged"

	SchemaVersion = "1"
)

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    *model.Booking `json:"booking,omitempty"`
	Purge      *PurgeSummary  `json:"purge,omitempty"`
}

type PurgeSummary struct {
	Deleted int64  `json:"deleted"`
	Before  string `json:"before"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, booking *model.Booking)
	BookingsPurged(ctx context.Context, deleted int64, before time.Time)
	Close() error
}

// key picks the partition key: one booking's events stay ordered.
func (e Event) key() string {
	if e.Booking != nil {
		return e.Booking.ID
	}
	if e.Purge != nil {
		return "purge:" + e.Purge.Before
	}
	return e.Type
}

func purgeEvent(deleted int64, before time.Time, now time.Time) Event {
	return Event{
		Type:       TypeBookingsPurged,
		OccurredAt: now,
		Purge:      &PurgeSummary{Deleted: deleted, Before: calendar.Format(before)},
	}
}

// NopPublisher drops every event. Used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) {}
func (NopPublisher) BookingDeleted(context.Context, *model.Booking) {}
func (NopPublisher) BookingsPurged(context.Context, int64, time.Time) {}
func (NopPublisher) Close() error { return nil }
