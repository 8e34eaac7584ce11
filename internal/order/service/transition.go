package service

import (
	"fmt"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

// CheckTransition validates moving an order from one status to another.
// Allowed without override: the adjacent successor, or cancelled from any
// non-terminal status. override lifts every rule except that target must be
// a known status different from the current one.
func CheckTransition(from, to domain.OrderStatus, override bool) error {
	if !to.Valid() {
		return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", to),
		})
	}

	if from == to {
		return apperrors.NewConflictError(fmt.Sprintf("order is already %s", to))
	}

	if override {
		return nil
	}

	if from.Terminal() {
		return apperrors.NewConflictError(fmt.Sprintf("order is %s and cannot change status", from))
	}

	if to == domain.OrderStatusCancelled {
		return nil
	}

	if next, ok := from.Next(); ok && next == to {
		return nil
	}

	return apperrors.NewConflictError(fmt.Sprintf("cannot move order from %s to %s", from, to))
}
