package company

import (
	"net/http"
	"net/mail"

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
	r.Patch("/{companyId}", c.HandleUpdate)
	r.Delete("/{companyId}", c.HandleDelete)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	companies, err := c.useCase.List(r.Context(), sess)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, CompanyListResponse{Companies: companies, Total: len(companies)})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateCreateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	company, err := c.useCase.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, company)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateUpdateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	company, err := c.useCase.Update(r.Context(), sess, chi.URLParam(r, "companyId"), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, company)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), sess, chi.URLParam(r, "companyId")); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateCreateRequest(req CreateCompanyRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if req.Status != "" && !req.Status.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be active, pending or suspended",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateUpdateRequest(req UpdateCompanyRequest) error {
	var details []apperrors.ValidationDetail

	if req.Status != nil && !req.Status.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be active, pending or suspended",
		})
	}

	if req.Users != nil && *req.Users < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "users",
			Message: "users must be non-negative",
		})
	}

	if req.Orders != nil && *req.Orders < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orders",
			Message: "orders must be non-negative",
		})
	}

	if req.TotalRevenue != nil && *req.TotalRevenue < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "totalRevenue",
			Message: "totalRevenue must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
