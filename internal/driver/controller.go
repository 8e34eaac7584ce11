package driver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/httpx"
	"aquaflow/internal/session"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

// Routes mounts the driver CRUD. GET /{driverId}/deliveries is served by the
// order module.
func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.HandleList)
	r.Post("/", c.HandleCreate)
	r.Patch("/{driverId}", c.HandleUpdate)
	r.Delete("/{driverId}", c.HandleDelete)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	drivers, err := c.useCase.List(r.Context(), sess, r.URL.Query().Get("companyId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, DriverListResponse{Drivers: drivers, Total: len(drivers)})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req CreateDriverRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	d, err := c.useCase.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, d)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req UpdateDriverRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if req.Capacity != nil && *req.Capacity < 0 {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "capacity",
			Message: "capacity must be non-negative",
		})
		return
	}

	d, err := c.useCase.Update(r.Context(), sess, chi.URLParam(r, "driverId"), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, d)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), sess, chi.URLParam(r, "driverId")); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) validateCreateRequest(req CreateDriverRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Phone == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "phone",
			Message: "phone is required",
		})
	}

	if req.Capacity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "capacity",
			Message: "capacity must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
