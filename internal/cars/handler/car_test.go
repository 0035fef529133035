package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"rentwheels/internal/auth"
	"rentwheels/internal/cars/repository"
	"rentwheels/internal/cars/service"
	"rentwheels/internal/cars/validator"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
)

type stubCarRepository struct {
	repository.CarRepository

	cars  []model.Car
	total int64
}

func (s *stubCarRepository) Search(ctx context.Context, term string, order repository.SortOrder, limit, skip int64) ([]model.Car, error) {
	return s.cars, nil
}

func (s *stubCarRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	return s.total, nil
}

func (s *stubCarRepository) FindByOwner(ctx context.Context, email string, order repository.SortOrder) ([]model.Car, error) {
	return s.cars, nil
}

func (s *stubCarRepository) FindAll(ctx context.Context) ([]model.Car, error) {
	return s.cars, nil
}

func newTestRouter(repo repository.CarRepository) *httprouter.Router {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	svc := service.NewCarService(repo, validator.NewCarValidator(), log)

	router := httprouter.New()
	NewCarHandler(svc, log).RegisterRoutes(router)
	return router
}

// The catalog response carries pagination fields at the top level instead of
// the generic data envelope.
func TestListResponseShape(t *testing.T) {
	router := newTestRouter(&stubCarRepository{
		cars:  []model.Car{{Model: "Civic", Location: "Austin"}},
		total: 9,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars?search=civic&page=1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Cars        []model.Car `json:"cars"`
		TotalCars   int64       `json:"totalCars"`
		TotalPages  int64       `json:"totalPages"`
		CurrentPage int         `json:"currentPage"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(body.Cars) != 1 {
		t.Errorf("cars length = %d, want 1", len(body.Cars))
	}
	if body.TotalCars != 9 {
		t.Errorf("totalCars = %d, want 9", body.TotalCars)
	}
	if body.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", body.TotalPages)
	}
	if body.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1", body.CurrentPage)
	}
}

func TestListEmptyResult(t *testing.T) {
	router := newTestRouter(&stubCarRepository{cars: []model.Car{}, total: 0})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars?search=nomatch", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if string(body["cars"]) != "[]" {
		t.Errorf("cars = %s, want []", body["cars"])
	}
	if string(body["totalCars"]) != "0" || string(body["totalPages"]) != "0" {
		t.Errorf("totals = %s/%s, want 0/0", body["totalCars"], body["totalPages"])
	}
}

func TestGetAllReturnsEveryListing(t *testing.T) {
	router := newTestRouter(&stubCarRepository{
		cars: []model.Car{{Model: "Civic"}, {Model: "Corolla"}, {Model: "Model 3"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars/all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data []model.Car `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Data) != 3 {
		t.Errorf("data length = %d, want 3", len(body.Data))
	}
}

func TestOwnerRouteRequiresIdentity(t *testing.T) {
	router := newTestRouter(&stubCarRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars/owner/alice@example.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestOwnerRouteRejectsOtherOwner(t *testing.T) {
	router := newTestRouter(&stubCarRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars/owner/bob@example.com", nil)
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), "alice@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestOwnerRouteAllowsOwner(t *testing.T) {
	router := newTestRouter(&stubCarRepository{cars: []model.Car{{Model: "Civic"}}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars/owner/alice@example.com", nil)
	req = req.WithContext(auth.ContextWithIdentity(req.Context(), "alice@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
