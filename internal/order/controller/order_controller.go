package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/dto"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/httpx"
	"aquaflow/internal/order/service"
	"aquaflow/internal/session"
)

const maxOrderItems = 100

type OrderUseCase interface {
	Create(ctx context.Context, sess session.Session, req dto.CreateOrderRequest) (domain.Order, error)
	Get(ctx context.Context, sess session.Session, id string) (domain.Order, error)
	List(ctx context.Context, sess session.Session, filter service.ListFilter) ([]domain.Order, error)
	Update(ctx context.Context, sess session.Session, id string, req dto.UpdateOrderRequest) (domain.Order, error)
	Delete(ctx context.Context, sess session.Session, id string) error
	Transition(ctx context.Context, sess session.Session, id string, target domain.OrderStatus, override bool) (domain.Order, error)
	Advance(ctx context.Context, sess session.Session, id string) (domain.Order, error)
	AssignDriver(ctx context.Context, sess session.Session, id string, driverID *string) (domain.Order, error)
	DriverDeliveries(ctx context.Context, sess session.Session, driverID string) ([]domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/{orderId}", c.Get)
	r.Patch("/{orderId}", c.Update)
	r.Delete("/{orderId}", c.Delete)
	r.Post("/{orderId}/transition", c.Transition)
	r.Post("/{orderId}/advance", c.Advance)
	r.Post("/{orderId}/driver", c.AssignDriver)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	filter := service.ListFilter{
		CompanyID: r.URL.Query().Get("companyId"),
		Status:    domain.OrderStatus(r.URL.Query().Get("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		httpx.WriteValidationError(w, logger, traceID, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown status " + strconv.Quote(string(filter.Status)),
		})
		return
	}

	orders, err := c.useCase.List(r.Context(), sess, filter)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.OrderListResponse{
		Orders: dto.NewOrderResponses(orders),
		Total:  len(orders),
	})
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateCreateOrderRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	order, err := c.useCase.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, dto.NewOrderResponse(order))
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	order, err := c.useCase.Get(r.Context(), sess, chi.URLParam(r, "orderId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if err := validateUpdateOrderRequest(req); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	order, err := c.useCase.Update(r.Context(), sess, chi.URLParam(r, "orderId"), req)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), sess, chi.URLParam(r, "orderId")); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) Transition(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	if !req.Status.Valid() {
		httpx.WriteValidationError(w, logger, traceID, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown status " + strconv.Quote(string(req.Status)),
		})
		return
	}

	order, err := c.useCase.Transition(r.Context(), sess, chi.URLParam(r, "orderId"), req.Status, req.Override)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) Advance(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	order, err := c.useCase.Advance(r.Context(), sess, chi.URLParam(r, "orderId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(order))
}

func (c *OrderController) AssignDriver(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	var req dto.AssignDriverRequest
	if !httpx.Decode(w, r, logger, traceID, &req) {
		return
	}

	order, err := c.useCase.AssignDriver(r.Context(), sess, chi.URLParam(r, "orderId"), req.DriverID)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(order))
}

// DriverDeliveries serves GET /drivers/{driverId}/deliveries.
func (c *OrderController) DriverDeliveries(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	orders, err := c.useCase.DriverDeliveries(r.Context(), sess, chi.URLParam(r, "driverId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.OrderListResponse{
		Orders: dto.NewOrderResponses(orders),
		Total:  len(orders),
	})
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}

	if req.Status != nil && !req.Status.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown status " + strconv.Quote(string(*req.Status)),
		})
	}

	if req.DeliveryFee != nil && *req.DeliveryFee < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "deliveryFee",
			Message: "deliveryFee must be non-negative",
		})
	}

	details = append(details, validateItems(req.Items)...)

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateUpdateOrderRequest(req dto.UpdateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.Status != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status changes go through the transition endpoint",
		})
	}

	if req.CustomerName != nil && *req.CustomerName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName must not be empty",
		})
	}

	if req.DeliveryFee != nil && *req.DeliveryFee < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "deliveryFee",
			Message: "deliveryFee must be non-negative",
		})
	}

	if req.Items != nil {
		details = append(details, validateItems(*req.Items)...)
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateItems(items []dto.OrderItemRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(items) > maxOrderItems {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of " + strconv.Itoa(maxOrderItems),
		})
	}

	seen := make(map[string]bool)
	for idx, item := range items {
		prefix := "items[" + strconv.Itoa(idx) + "]"

		if item.ProductID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId is required",
			})
		} else if seen[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId must not be duplicated",
			})
		}
		seen[item.ProductID] = true

		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".quantity",
				Message: "quantity must be at least 1",
			})
		}
	}

	return details
}
