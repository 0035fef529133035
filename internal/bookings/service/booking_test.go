package service

import (
	"context"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	bookingerrors "rentwheels/internal/bookings/errors"
	"rentwheels/internal/bookings/validator"
	carrepository "rentwheels/internal/cars/repository"
	dbmongo "rentwheels/pkg/db/mongo"
	apperrors "rentwheels/pkg/errors"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
)

type mockBookingRepository struct {
	createFunc           func(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	findByIDFunc         func(ctx context.Context, id string) (*model.Booking, error)
	findByUserAndCarFunc func(ctx context.Context, email, bookID string) (*model.Booking, error)
	findByUserFunc       func(ctx context.Context, email string) ([]model.Booking, error)
	updateStatusFunc     func(ctx context.Context, id, status string) (*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	return m.createFunc(ctx, booking)
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockBookingRepository) FindByUserAndCar(ctx context.Context, email, bookID string) (*model.Booking, error) {
	return m.findByUserAndCarFunc(ctx, email, bookID)
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, email string) ([]model.Booking, error) {
	return m.findByUserFunc(ctx, email)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	return m.updateStatusFunc(ctx, id, status)
}

// ExecuteTransaction runs the callback directly; the mocked operations do not
// need a live session.
func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn dbmongo.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockCarCounter struct {
	carrepository.CarRepository

	incrementFunc func(ctx context.Context, id string, delta int64) error
}

func (m *mockCarCounter) IncrementBookingCount(ctx context.Context, id string, delta int64) error {
	return m.incrementFunc(ctx, id, delta)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func newTestService(repo *mockBookingRepository, cars *mockCarCounter) *BookingService {
	return NewBookingService(repo, cars, validator.NewBookingValidator(), nil, testLogger())
}

func validBooking() *model.Booking {
	return &model.Booking{
		Email:  "Alice@Example.com",
		BookID: "64f000000000000000000001",
	}
}

func TestCreateBooking(t *testing.T) {
	var incrementedID string
	var incrementedBy int64

	repo := &mockBookingRepository{
		findByUserAndCarFunc: func(ctx context.Context, email, bookID string) (*model.Booking, error) {
			return nil, bookingerrors.ErrNotFound
		},
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
			return booking, nil
		},
	}
	cars := &mockCarCounter{
		incrementFunc: func(ctx context.Context, id string, delta int64) error {
			incrementedID = id
			incrementedBy = delta
			return nil
		},
	}

	created, err := newTestService(repo, cars).Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.Status != "pending" {
		t.Errorf("status = %q, want default pending", created.Status)
	}
	if created.BookingDate.IsZero() {
		t.Error("booking date should default to now")
	}
	if incrementedID != "64f000000000000000000001" || incrementedBy != 1 {
		t.Errorf("counter increment = (%q, %d), want (booking's car, 1)", incrementedID, incrementedBy)
	}
}

func TestCreateBookingDuplicatePreCheck(t *testing.T) {
	incremented := false

	repo := &mockBookingRepository{
		findByUserAndCarFunc: func(ctx context.Context, email, bookID string) (*model.Booking, error) {
			return &model.Booking{Email: email, BookID: bookID}, nil
		},
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
			t.Fatal("insert must not run when a booking already exists")
			return nil, nil
		},
	}
	cars := &mockCarCounter{
		incrementFunc: func(ctx context.Context, id string, delta int64) error {
			incremented = true
			return nil
		},
	}

	_, err := newTestService(repo, cars).Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("expected conflict")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict code, got %s", appErr.Code)
	}
	if incremented {
		t.Error("counter must not change on a rejected duplicate")
	}
}

func TestCreateBookingDuplicateIndexRace(t *testing.T) {
	incremented := false

	repo := &mockBookingRepository{
		findByUserAndCarFunc: func(ctx context.Context, email, bookID string) (*model.Booking, error) {
			return nil, bookingerrors.ErrNotFound
		},
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
			// A concurrent writer won the race; the unique index fired.
			return nil, bookingerrors.ErrDuplicate
		},
	}
	cars := &mockCarCounter{
		incrementFunc: func(ctx context.Context, id string, delta int64) error {
			incremented = true
			return nil
		},
	}

	_, err := newTestService(repo, cars).Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("expected conflict")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict code, got %s", appErr.Code)
	}
	if incremented {
		t.Error("counter must not change when the insert loses the race")
	}
}

func TestCreateBookingSurvivesCounterFailure(t *testing.T) {
	repo := &mockBookingRepository{
		findByUserAndCarFunc: func(ctx context.Context, email, bookID string) (*model.Booking, error) {
			return nil, bookingerrors.ErrNotFound
		},
		createFunc: func(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
			return booking, nil
		},
	}
	cars := &mockCarCounter{
		incrementFunc: func(ctx context.Context, id string, delta int64) error {
			return context.DeadlineExceeded
		},
	}

	created, err := newTestService(repo, cars).Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("booking must survive a failed counter update, got %v", err)
	}
	if created == nil {
		t.Fatal("expected booking")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := &mockBookingRepository{
		findByUserAndCarFunc: func(ctx context.Context, email, bookID string) (*model.Booking, error) {
			t.Fatal("repository must not be called on validation failure")
			return nil, nil
		},
	}

	_, err := newTestService(repo, &mockCarCounter{}).Create(context.Background(), &model.Booking{
		Email:  "not-an-email",
		BookID: "not-an-object-id",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation code, got %s", appErr.Code)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Booking, error) {
			return &model.Booking{Status: status}, nil
		},
	}

	booking, err := newTestService(repo, &mockCarCounter{}).UpdateStatus(
		context.Background(),
		"64f000000000000000000002",
		&model.StatusUpdate{Status: "  confirmed  "},
	)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if booking.Status != "confirmed" {
		t.Errorf("status = %q, want trimmed %q", booking.Status, "confirmed")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Booking, error) {
			return nil, bookingerrors.ErrNotFound
		},
	}

	_, err := newTestService(repo, &mockCarCounter{}).UpdateStatus(
		context.Background(),
		"64f000000000000000000002",
		&model.StatusUpdate{Status: "confirmed"},
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found code, got %s", appErr.Code)
	}
}

func TestUpdateStatusEmptyRejected(t *testing.T) {
	repo := &mockBookingRepository{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Booking, error) {
			t.Fatal("repository must not be called with an empty status")
			return nil, nil
		},
	}

	_, err := newTestService(repo, &mockCarCounter{}).UpdateStatus(
		context.Background(),
		"64f000000000000000000002",
		&model.StatusUpdate{Status: "   "},
	)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestListByUserNormalizesEmail(t *testing.T) {
	var gotEmail string
	repo := &mockBookingRepository{
		findByUserFunc: func(ctx context.Context, email string) ([]model.Booking, error) {
			gotEmail = email
			return []model.Booking{}, nil
		},
	}

	bookings, err := newTestService(repo, &mockCarCounter{}).ListByUser(context.Background(), " Alice@Example.com ")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if gotEmail != "alice@example.com" {
		t.Errorf("email = %q, want normalized", gotEmail)
	}
	if bookings == nil {
		t.Error("bookings must never be nil")
	}
}
