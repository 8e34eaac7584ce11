package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquaflow/internal/company"
	companyrepo "aquaflow/internal/company/repository"
	"aquaflow/internal/config"
	"aquaflow/internal/domain"
	"aquaflow/internal/driver"
	driverrepo "aquaflow/internal/driver/repository"
	"aquaflow/internal/infrastructure/kafka"
	"aquaflow/internal/metrics"
	"aquaflow/internal/onboarding"
	"aquaflow/internal/order"
	"aquaflow/internal/product"
	"aquaflow/internal/seed"
	"aquaflow/internal/session"
	"aquaflow/internal/store"
	"aquaflow/internal/user"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	slot := store.NewMemorySlot()
	cfg := &config.Config{Order: config.OrderConfig{TaxRate: 0.1, DeliveryFee: 5}}

	products := product.NewModule(ctx, slot, seed.Products(), logger)
	drivers := driverrepo.NewDriverRepository(slot, seed.Drivers(), logger)
	drivers.Load(ctx)
	companyRepo := companyrepo.NewCompanyRepository(slot, seed.Companies(), logger)
	companyRepo.Load(ctx)
	orders := order.NewModule(ctx, slot, seed.Orders(), products.Repository, drivers, companyRepo, kafka.NopPublisher{}, cfg, logger)
	fleet := driver.NewModule(drivers, orders.Service, logger)
	companies := company.NewModule(companyRepo, orders.Repository, logger)
	users := user.NewModule(ctx, slot, seed.Users(), companies.Repository, logger)
	issuer := session.NewIssuer("test-secret", time.Hour)

	return NewRouter(Controllers{
		Sessions:   session.NewController(users.Repository, issuer, logger),
		Orders:     orders.Controller,
		Products:   products.Controller,
		Drivers:    fleet.Controller,
		Companies:  companies.Controller,
		Users:      users.Controller,
		Dashboard:  metrics.NewController(orders.Repository, drivers, companies.Repository, logger),
		Onboarding: onboarding.NewModule(onboarding.DisabledRegistry{}, companies.Service, logger).Controller,
	}, issuer, users.Repository, logger)
}

func login(t *testing.T, h http.Handler, userID string) string {
	t.Helper()
	body, _ := json.Marshal(session.LoginRequest{UserID: userID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp session.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	rec := get(newTestRouter(t), "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/api/v1/orders", "/api/v1/dashboard/metrics", "/api/v1/sessions/me"} {
		assert.Equal(t, http.StatusUnauthorized, get(h, path, "").Code, path)
	}
}

func TestRouter_AuthenticatedFlow(t *testing.T) {
	h := newTestRouter(t)
	admin := seed.Users()[0]
	require.Equal(t, domain.RoleAdmin, admin.Role)
	token := login(t, h, admin.ID)

	assert.Equal(t, http.StatusOK, get(h, "/api/v1/orders", token).Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/v1/dashboard/metrics", token).Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/v1/dashboard/companies", token).Code)

	driverID := seed.Drivers()[0].ID
	rec := get(h, "/api/v1/drivers/"+driverID+"/deliveries", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
