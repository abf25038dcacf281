package scheduler

import (
	"context"
	"time"

	"futsal/pkg/calendar"
	"futsal/pkg/logger"
)

type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// ExpiryScheduler runs the booking purge once a day at a fixed wall-clock
// time. A failed run is logged and the loop waits for the next day.
type ExpiryScheduler struct {
	purger  Purger
	at      calendar.ClockTime
	loc     *time.Location
	onStart bool
	log     *logger.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

func NewExpiryScheduler(purger Purger, at calendar.ClockTime, loc *time.Location, onStart bool, log *logger.Logger) *ExpiryScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ExpiryScheduler{
		purger:  purger,
		at:      at,
		loc:     loc,
		onStart: onStart,
		log:     log,
		now:     time.Now,
		after:   time.After,
	}
}

func (s *ExpiryScheduler) Name() string {
	return "booking-expiry"
}

// NextRun is the first instant strictly after now at which the clock in loc
// reads at.
func NextRun(now time.Time, at calendar.ClockTime, loc *time.Location) time.Time {
	return calendar.NextOccurrence(now, at, loc)
}

// Start blocks until ctx is cancelled.
func (s *ExpiryScheduler) Start(ctx context.Context) {
	s.log.Info("Expiry scheduler started",
		"purge_at", s.at.String(),
		"timezone", s.loc.String(),
		"purge_on_startup", s.onStart,
	)

	if s.onStart {
		s.RunOnce(ctx)
	}

	for {
		now := s.now()
		next := NextRun(now, s.at, s.loc)
		wait := next.Sub(now)
		s.log.Debug("Next expiry purge scheduled", "at", next, "in", wait)

		select {
		case <-ctx.Done():
			s.log.Info("Expiry scheduler stopped")
			return
		case <-s.after(wait):
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs one purge and swallows its error.
func (s *ExpiryScheduler) RunOnce(ctx context.Context) {
	s.log.Info("Running scheduled job to delete expired data")

	deleted, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Error("Scheduled purge failed", "error", err)
		return
	}

	s.log.Debug("Scheduled purge finished", "deleted", deleted)
}
