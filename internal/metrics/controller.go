package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/httpx"
	"aquaflow/internal/session"
)

type OrderSource interface {
	ListByCompany(ctx context.Context, companyID string) []domain.Order
}

type DriverSource interface {
	ListByCompany(ctx context.Context, companyID string) []domain.DeliveryDriver
}

type CompanySource interface {
	List(ctx context.Context) []domain.Company
}

type DriversResponse struct {
	Drivers []DriverLoad `json:"drivers"`
}

// Controller serves the dashboards. It reads snapshots and never writes.
type Controller struct {
	orders    OrderSource
	drivers   DriverSource
	companies CompanySource
	logger    *zap.Logger
	now       func() time.Time
}

func NewController(orders OrderSource, drivers DriverSource, companies CompanySource, logger *zap.Logger) *Controller {
	return &Controller{
		orders:    orders,
		drivers:   drivers,
		companies: companies,
		logger:    logger,
		now:       time.Now,
	}
}

func (c *Controller) Routes(r chi.Router) {
	r.Get("/metrics", c.HandleMetrics)
	r.Get("/drivers", c.HandleDrivers)
	r.Get("/companies", c.HandleCompanies)
}

func (c *Controller) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	companyID, err := sess.CompanyFor(r.URL.Query().Get("companyId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	orders := c.orders.ListByCompany(r.Context(), companyID)
	httpx.WriteJSON(w, logger, http.StatusOK, Summarize(orders, companyID, c.now()))
}

func (c *Controller) HandleDrivers(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	companyID, err := sess.CompanyFor(r.URL.Query().Get("companyId"))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	board := DriverBoard(
		c.drivers.ListByCompany(r.Context(), companyID),
		c.orders.ListByCompany(r.Context(), companyID),
	)
	httpx.WriteJSON(w, logger, http.StatusOK, DriversResponse{Drivers: board})
}

func (c *Controller) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	sess, ok := session.MustFromRequest(w, r, logger, traceID)
	if !ok {
		return
	}

	if err := sess.Require(domain.RoleAdmin); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, SummarizeCompanies(c.companies.List(r.Context())))
}
