package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentwheels/internal/auth"
	"rentwheels/internal/cars/service"
	apperrors "rentwheels/pkg/errors"
	httputil "rentwheels/pkg/http"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
)

type CarHandler struct {
	service *service.CarService
	log     *logger.Logger
}

func NewCarHandler(svc *service.CarService, log *logger.Logger) *CarHandler {
	return &CarHandler{
		service: svc,
		log:     log,
	}
}

func (h *CarHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

// List serves the paginated catalog. The response body is the pagination
// envelope itself, not the generic data wrapper, so clients read totals and
// the current page at the top level.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := service.ListParams{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
		Page:   httputil.ParsePage(r),
	}

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write response", "handler", "List", "error", err)
	}
}

func (h *CarHandler) Recent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cars, err := h.service.Recent(r.Context())
	if err != nil {
		h.writeError(w, "Recent", err)
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write response", "handler", "Recent", "error", err)
	}
}

func (h *CarHandler) ByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cars, err := h.service.ByOwner(r.Context(), ps.ByName("email"), r.URL.Query().Get("sort"))
	if err != nil {
		h.writeError(w, "ByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write response", "handler", "ByOwner", "error", err)
	}
}

// GetAll returns the whole catalog unfiltered and unpaginated.
func (h *CarHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cars, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write response", "handler", "GetAll", "error", err)
	}
}

func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	car, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write response", "handler", "GetByID", "error", err)
	}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &car)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), ps.ByName("id"), &car)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write response", "handler", "Update", "error", err)
	}
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/cars", h.List)
	router.POST("/api/v1/cars", h.Create)
	router.GET("/api/v1/cars/all", h.GetAll)
	router.GET("/api/v1/cars/recent", h.Recent)
	router.GET("/api/v1/cars/owner/:email", auth.RequireOwner("email", h.ByOwner))
	router.GET("/api/v1/cars/id/:id", h.GetByID)
	router.PUT("/api/v1/cars/id/:id", h.Update)
	router.DELETE("/api/v1/cars/id/:id", h.Delete)
}
