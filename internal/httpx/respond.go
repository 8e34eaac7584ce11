// Package httpx holds the JSON plumbing shared by every controller.
package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aquaflow/internal/dto"
	apperrors "aquaflow/internal/errors"
)

// Trace returns a fresh trace id and a logger tagged with it.
func Trace(logger *zap.Logger) (string, *zap.Logger) {
	traceID := uuid.New().String()
	return traceID, logger.With(zap.String("traceId", traceID))
}

func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// Decode reads a JSON body into dst, answering 400 on failure. It reports
// whether the caller should continue.
func Decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		WriteValidationError(w, logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func WriteValidationError(w http.ResponseWriter, logger *zap.Logger, traceID string, message string, details ...apperrors.ValidationDetail) {
	writeError(w, logger, traceID, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// WriteError maps err onto the HTTP status of its kind.
func WriteError(w http.ResponseWriter, logger *zap.Logger, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, logger, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		writeError(w, logger, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		writeError(w, logger, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		writeError(w, logger, traceID, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		writeError(w, logger, traceID, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
		return
	}

	if re, ok := apperrors.IsRemoteError(err); ok {
		logger.Error("remote backend failed", zap.Error(err))
		writeError(w, logger, traceID, http.StatusBadGateway, "REMOTE_ERROR", re.Message, nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	writeError(w, logger, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, traceID string, status int, code string, message string, details []apperrors.ValidationDetail) {
	WriteJSON(w, logger, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
