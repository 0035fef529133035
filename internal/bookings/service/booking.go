package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingerrors "rentwheels/internal/bookings/errors"
	"rentwheels/internal/bookings/events"
	"rentwheels/internal/bookings/repository"
	"rentwheels/internal/bookings/validator"
	carrepository "rentwheels/internal/cars/repository"
	apperrors "rentwheels/pkg/errors"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
	"rentwheels/pkg/sanitizer"
)

const defaultStatus = "pending"

type BookingService struct {
	repo      repository.BookingRepository
	carRepo   carrepository.CarRepository
	validator *validator.BookingValidator
	publisher *events.Publisher
	log       *logger.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	carRepo carrepository.CarRepository,
	v *validator.BookingValidator,
	publisher *events.Publisher,
	log *logger.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		carRepo:   carRepo,
		validator: v,
		publisher: publisher,
		log:       log,
	}
}

// Create stores a booking, holding the invariant that one user books one car
// at most once. The duplicate pre-check and the insert run inside a
// transaction, and the unique (email, bookId) index backs them up against
// racing writers. The listing's booking counter is incremented afterwards as
// a separate write: a crash between insert and increment leaves the counter
// behind by one, which is tolerated in favor of never losing the booking.
func (s *BookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.Email = sanitizer.SanitizeEmail(booking.Email)
	if booking.Status == "" {
		booking.Status = defaultStatus
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now()
	}

	if err := s.validator.ValidateBooking(booking); err != nil {
		return nil, err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		_, err := s.repo.FindByUserAndCar(sessCtx, booking.Email, booking.BookID)
		if err == nil {
			return apperrors.Conflict("You have already booked this car")
		}
		if err != bookingerrors.ErrNotFound {
			return err
		}

		_, err = s.repo.Create(sessCtx, booking)
		return err
	})
	if err != nil {
		return nil, s.mapBookingError(booking.BookID, err)
	}

	// Best effort: the booking is already durable, so a failed increment is
	// logged and tolerated rather than unwound.
	if err := s.carRepo.IncrementBookingCount(ctx, booking.BookID, 1); err != nil {
		s.log.Warn("Failed to increment listing booking counter",
			"booking_id", booking.ID.Hex(),
			"car_id", booking.BookID,
			"error", err,
		)
	}

	s.publisher.BookingCreated(ctx, booking)

	s.log.Info("Booking created",
		"booking_id", booking.ID.Hex(),
		"email", booking.Email,
		"car_id", booking.BookID,
	)
	return booking, nil
}

// ListByUser returns the caller's bookings, newest first.
func (s *BookingService) ListByUser(ctx context.Context, email string) ([]model.Booking, error) {
	bookings, err := s.repo.FindByUser(ctx, sanitizer.SanitizeEmail(email))
	if err != nil {
		s.log.Error("Failed to fetch user bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to fetch bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapBookingError(id, err)
	}
	return booking, nil
}

// UpdateStatus overwrites the booking status. Values are free-form; no
// transition rules apply.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error) {
	update.Status = sanitizer.SanitizeStatus(update.Status)
	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		return nil, err
	}

	booking, err := s.repo.UpdateStatus(ctx, id, update.Status)
	if err != nil {
		return nil, s.mapBookingError(id, err)
	}

	s.publisher.BookingStatusChanged(ctx, booking)

	s.log.Info("Booking status updated", "booking_id", id, "status", update.Status)
	return booking, nil
}

func (s *BookingService) mapBookingError(id string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	switch err {
	case bookingerrors.ErrNotFound:
		return apperrors.NotFoundWithID("Booking", id)
	case bookingerrors.ErrInvalidID:
		return apperrors.InvalidInput("Invalid booking id")
	case bookingerrors.ErrDuplicate:
		return apperrors.Conflict("You have already booked this car")
	default:
		s.log.Error("Booking repository operation failed", "id", id, "error", err)
		return apperrors.Internal("Booking operation failed", err)
	}
}
