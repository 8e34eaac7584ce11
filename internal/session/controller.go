package session

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/httpx"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (domain.User, bool)
}

type TokenIssuer interface {
	Issue(user domain.User) (string, time.Time, error)
}

type LoginRequest struct {
	UserID string `json:"userId"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// Controller signs an existing user in by id. There are no credentials:
// it stands in for the login screen of a development deployment.
type Controller struct {
	users  UserFinder
	issuer TokenIssuer
	logger *zap.Logger
}

func NewController(users UserFinder, issuer TokenIssuer, logger *zap.Logger) *Controller {
	return &Controller{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req LoginRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if req.UserID == "" {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "userId",
			Message: "userId is required",
		})
		return
	}

	user, ok := c.users.FindByID(r.Context(), req.UserID)
	if !ok {
		logger.Warn("login for unknown user", zap.String("userId", req.UserID))
		httpx.WriteError(w, logger, traceID, apperrors.NewUnauthorizedError("unknown user"))
		return
	}

	token, expiresAt, err := c.issuer.Issue(user)
	if err != nil {
		httpx.WriteError(w, logger, traceID, apperrors.NewInternalError("issuing session", err))
		return
	}

	logger.Info("session issued", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	httpx.WriteJSON(w, logger, http.StatusCreated, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// HandleMe echoes the session of an authenticated request.
func (c *Controller) HandleMe(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, sess.User)
}
