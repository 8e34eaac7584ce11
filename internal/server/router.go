package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"aquaflow/internal/company"
	"aquaflow/internal/driver"
	"aquaflow/internal/metrics"
	"aquaflow/internal/onboarding"
	ordercontroller "aquaflow/internal/order/controller"
	"aquaflow/internal/product"
	"aquaflow/internal/session"
	"aquaflow/internal/user"
)

// Controllers groups every feature surface the router mounts.
type Controllers struct {
	Sessions   *session.Controller
	Orders     *ordercontroller.OrderController
	Products   *product.Controller
	Drivers    *driver.Controller
	Companies  *company.Controller
	Users      *user.Controller
	Dashboard  *metrics.Controller
	Onboarding *onboarding.Controller
}

func NewRouter(ctrls Controllers, tokens session.TokenParser, users session.UserFinder, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/sessions", ctrls.Sessions.HandleLogin)

		api.Group(func(pr chi.Router) {
			pr.Use(session.Authenticate(tokens, users, logger))

			pr.Get("/sessions/me", ctrls.Sessions.HandleMe)
			pr.Route("/orders", ctrls.Orders.Routes)
			pr.Route("/products", ctrls.Products.Routes)
			pr.Route("/drivers", func(dr chi.Router) {
				ctrls.Drivers.Routes(dr)
				dr.Get("/{driverId}/deliveries", ctrls.Orders.DriverDeliveries)
			})
			pr.Route("/companies", ctrls.Companies.Routes)
			pr.Route("/users", ctrls.Users.Routes)
			pr.Route("/dashboard", ctrls.Dashboard.Routes)
			pr.Route("/onboarding", ctrls.Onboarding.Routes)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
