package user

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
	r.Patch("/{userId}", c.HandleUpdate)
	r.Delete("/{userId}", c.HandleDelete)
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	users, err := c.useCase.List(r.Context(), sess, r.URL.Query().Get("companyId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, UserListResponse{Users: users, Total: len(users)})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req CreateUserRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateCreateRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	u, err := c.useCase.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, u)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if req.Role != nil && !req.Role.Valid() {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "role",
			Message: "role must be admin, company_admin, manager or staff",
		})
		return
	}

	u, err := c.useCase.Update(r.Context(), sess, chi.URLParam(r, "userId"), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, u)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), sess, chi.URLParam(r, "userId")); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateCreateRequest(req CreateUserRequest) error {
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

	if !req.Role.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "role",
			Message: "role must be admin, company_admin, manager or staff",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
