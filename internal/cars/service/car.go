package service

import (
	"context"
	"sync"
	"time"

	carerrors "rentwheels/internal/cars/errors"
	"rentwheels/internal/cars/repository"
	"rentwheels/internal/cars/validator"
	apperrors "rentwheels/pkg/errors"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
	"rentwheels/pkg/sanitizer"
)

const (
	// listingPageSize is the fixed page size of the catalog. Clients cannot
	// override it.
	listingPageSize = 8

	recentLimit = 8

	sortDateDesc = "date-dsc"
)

// ListParams carries the raw query inputs of a catalog listing request.
type ListParams struct {
	Search string
	Sort   string
	Page   int
}

// ListResult is the paginated catalog response.
type ListResult struct {
	Cars        []model.Car `json:"cars"`
	TotalCars   int64       `json:"totalCars"`
	TotalPages  int64       `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

type CarService struct {
	repo      repository.CarRepository
	validator *validator.CarValidator
	log       *logger.Logger
}

func NewCarService(repo repository.CarRepository, v *validator.CarValidator, log *logger.Logger) *CarService {
	return &CarService{
		repo:      repo,
		validator: v,
		log:       log,
	}
}

// parseSort maps the wire sort token to a storage order. Only "date-dsc"
// selects descending; every other value, including absence, is ascending.
func parseSort(sort string) repository.SortOrder {
	if sort == sortDateDesc {
		return repository.DateDesc
	}
	return repository.DateAsc
}

// List runs the filtered count and the page fetch concurrently, then derives
// pagination from the filtered total.
func (s *CarService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	term := sanitizer.SanitizeSearchTerm(params.Search)
	order := parseSort(params.Sort)

	page := params.Page
	if page < 1 {
		page = 1
	}
	skip := int64(page-1) * listingPageSize

	var (
		wg       sync.WaitGroup
		cars     []model.Car
		total    int64
		findErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cars, findErr = s.repo.Search(ctx, term, order, listingPageSize, skip)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.CountSearch(ctx, term)
	}()
	wg.Wait()

	if findErr != nil {
		s.log.Error("Failed to search car listings", "error", findErr)
		return nil, apperrors.Internal("Failed to fetch car listings", findErr)
	}
	if countErr != nil {
		s.log.Error("Failed to count car listings", "error", countErr)
		return nil, apperrors.Internal("Failed to fetch car listings", countErr)
	}

	totalPages := (total + listingPageSize - 1) / listingPageSize

	return &ListResult{
		Cars:        cars,
		TotalCars:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// Recent returns the newest listings by publication date.
func (s *CarService) Recent(ctx context.Context) ([]model.Car, error) {
	cars, err := s.repo.FindRecent(ctx, recentLimit)
	if err != nil {
		s.log.Error("Failed to fetch recent car listings", "error", err)
		return nil, apperrors.Internal("Failed to fetch recent car listings", err)
	}
	return cars, nil
}

// ByOwner returns every listing published by the given owner, honoring the
// same sort token as the catalog.
func (s *CarService) ByOwner(ctx context.Context, email, sort string) ([]model.Car, error) {
	cars, err := s.repo.FindByOwner(ctx, email, parseSort(sort))
	if err != nil {
		s.log.Error("Failed to fetch owner car listings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to fetch car listings", err)
	}
	return cars, nil
}

func (s *CarService) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	car.UserDetails.Email = sanitizer.SanitizeEmail(car.UserDetails.Email)
	if car.Date.IsZero() {
		car.Date = time.Now()
	}
	// New listings always start with a zero counter regardless of payload.
	car.BookingCount = 0

	if err := s.validator.ValidateCar(car); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, car)
	if err != nil {
		s.log.Error("Failed to create car listing", "model", car.Model, "error", err)
		return nil, apperrors.Internal("Failed to create car listing", err)
	}

	s.log.Info("Car listing created", "id", created.ID.Hex(), "model", created.Model)
	return created, nil
}

func (s *CarService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapCarError(id, err)
	}
	return car, nil
}

func (s *CarService) GetAll(ctx context.Context) ([]model.Car, error) {
	cars, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to fetch car listings", "error", err)
		return nil, apperrors.Internal("Failed to fetch car listings", err)
	}
	return cars, nil
}

func (s *CarService) Update(ctx context.Context, id string, car *model.Car) (*model.Car, error) {
	car.UserDetails.Email = sanitizer.SanitizeEmail(car.UserDetails.Email)
	if car.Date.IsZero() {
		car.Date = time.Now()
	}

	if err := s.validator.ValidateCar(car); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, car)
	if err != nil {
		return nil, s.mapCarError(id, err)
	}

	s.log.Info("Car listing updated", "id", id)
	return updated, nil
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapCarError(id, err)
	}
	s.log.Info("Car listing deleted", "id", id)
	return nil
}

func (s *CarService) mapCarError(id string, err error) error {
	switch err {
	case carerrors.ErrNotFound:
		return apperrors.NotFoundWithID("Car", id)
	case carerrors.ErrInvalidID:
		return apperrors.InvalidInput("Invalid car id")
	default:
		s.log.Error("Car repository operation failed", "id", id, "error", err)
		return apperrors.Internal("Car operation failed", err)
	}
}
