package product

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

func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.HandleList)
	r.Post("/", c.HandleCreate)
	r.Patch("/{productId}", c.HandleUpdate)
	r.Delete("/{productId}", c.HandleDelete)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	products, err := c.useCase.List(r.Context(), sess, ListFilter{
		CompanyID:  r.URL.Query().Get("companyId"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	})
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, ProductListResponse{Products: products, Total: len(products)})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req CreateProductRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	p, err := c.useCase.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, p)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := c.validateUpdateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	p, err := c.useCase.Update(r.Context(), sess, chi.URLParam(r, "productId"), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, p)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), sess, chi.URLParam(r, "productId")); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) validateCreateRequest(req CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Size == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "size",
			Message: "size is required",
		})
	}

	if req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *Controller) validateUpdateRequest(req UpdateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name != nil && *req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if req.Price != nil && *req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
