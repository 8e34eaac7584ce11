package onboarding

import (
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
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
	r.Post("/companies", c.HandleOnboard)
}

func (c *Controller) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req domain.CompanyRegistration
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateRegistration(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp, err := c.useCase.Onboard(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, resp)
}

func validateRegistration(req domain.CompanyRegistration) error {
	var details []apperrors.ValidationDetail

	if req.CompanyName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "companyName",
			Message: "companyName is required",
		})
	}

	if req.RegistrationNumber == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "registrationNumber",
			Message: "registrationNumber is required",
		})
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
