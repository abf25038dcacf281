package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingserrors "futsal/internal/bookings/errors"
	"futsal/internal/bookings/repository"
	"futsal/internal/bookings/validator"
	"futsal/pkg/auth"
	"futsal/pkg/calendar"
	"futsal/pkg/config"
	apperrors "futsal/pkg/errors"
	"futsal/pkg/events"
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/sanitizer"
	"futsal/pkg/validation"
)

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	Filter(ctx context.Context, date, userID string) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type bookingService struct {
	repo        repository.BookingRepository
	validator   *validator.BookingValidator
	publisher   events.Publisher
	log         *logger.Logger
	loc         *time.Location
	phoneRegion string
	now         func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return newBookingService(repo, validator, publisher, cfg)
}

func newBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) *bookingService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:        repo,
		validator:   validator,
		publisher:   publisher,
		log:         cfg.Log,
		loc:         loc,
		phoneRegion: cfg.PhoneRegion,
		now:         time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	date, err := calendar.ParseDate(req.Date, s.loc)
	if err != nil {
		s.log.Warn("Rejected booking with invalid date", "date", req.Date)
		return nil, apperrors.InvalidInput("Invalid date format")
	}

	if err := s.validator.ValidateRequest(req); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	booking := s.buildBooking(ctx, req, date)

	if err := s.validator.Validate(booking); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", booking.UserID,
		"date", calendar.Format(booking.Date),
		"time", booking.TimeSlot,
	)
	s.publisher.BookingCreated(ctx, booking)

	return booking, nil
}

// buildBooking applies the coerced request values. The caller's identity
// fills in idUser and username when the body leaves them out.
func (s *bookingService) buildBooking(ctx context.Context, req *model.CreateBookingRequest, date time.Time) *model.Booking {
	userID := strings.TrimSpace(req.UserID)
	username := sanitizer.TrimAndNormalize(req.Username)
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		if userID == "" {
			userID = claims.UserID()
		}
		if username == "" {
			username = claims.Username
		}
	}

	timeSlot, _ := req.TimeSlot.Int()

	return &model.Booking{
		UserID:   userID,
		Username: username,
		Price:    req.Price.Value,
		Phone:    sanitizer.PhoneOrRaw(req.Phone, s.phoneRegion),
		TimeSlot: timeSlot,
		Date:     date,
		IsPaid:   bool(req.IsPaid),
	}
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.Find(ctx, model.BookingFilter{})
	if err != nil {
		s.log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Filter combines the optional date and user predicates with AND. Empty
// arguments match everything.
func (s *bookingService) Filter(ctx context.Context, date, userID string) ([]*model.Booking, error) {
	var filter model.BookingFilter

	if date = strings.TrimSpace(date); date != "" {
		day, err := calendar.ParseDate(date, s.loc)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid date format")
		}
		filter.Date = &day
	}
	filter.UserID = strings.TrimSpace(userID)

	bookings, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.log.Error("Failed to filter bookings", "error", err, "date", date, "user_id", filter.UserID)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateNotFound(err, "Failed to retrieve booking")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateNotFound(err, "Failed to delete booking")
	}

	s.log.Info("Booking deleted successfully", "id", id)
	s.publisher.BookingDeleted(ctx, booking)
	return nil
}

func (s *bookingService) translateNotFound(err error, message string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFound("Booking")
	}
	s.log.Error(message, "error", err)
	return apperrors.Internal(message, err)
}

// PurgeExpired deletes every booking dated before today in the configured
// timezone. Today's bookings are kept. Running it twice is harmless.
func (s *bookingService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := calendar.StartOfToday(s.now(), s.loc)

	deleted, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		s.log.Error("Error deleting expired data", "error", err, "before", calendar.Format(cutoff))
		return 0, apperrors.Internal("Failed to delete expired bookings", err)
	}

	s.log.Info(fmt.Sprintf("Deleted %d expired records", deleted),
		"count", deleted,
		"before", calendar.Format(cutoff),
	)
	if deleted > 0 {
		s.publisher.BookingsPurged(ctx, deleted, cutoff)
	}
	return deleted, nil
}
