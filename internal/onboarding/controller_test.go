package onboarding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/dto"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/session"
)

type mockUseCase struct {
	OnboardFunc func(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error)
}

func (m *mockUseCase) Onboard(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error) {
	return m.OnboardFunc(ctx, sess, reg)
}

func serve(t *testing.T, uc UseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewController(uc, zap.NewNop()).Routes(r)

	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))
	req = req.WithContext(session.WithContext(req.Context(), admin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestController_Onboard(t *testing.T) {
	uc := &mockUseCase{
		OnboardFunc: func(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error) {
			return OnboardResponse{RemoteID: "7", Company: domain.Company{ID: "c-9", Name: reg.CompanyName}}, nil
		},
	}

	rec := serve(t, uc, `{"companyName":"Blue Spring","registrationNumber":"REG-1","email":"ops@blue.example"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp OnboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "7", resp.RemoteID)
	assert.Equal(t, "Blue Spring", resp.Company.Name)
}

func TestController_OnboardValidation(t *testing.T) {
	uc := &mockUseCase{}

	rec := serve(t, uc, `{"email":"nope"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Details, 3)
}

func TestController_OnboardRemoteFailureIsBadGateway(t *testing.T) {
	uc := &mockUseCase{
		OnboardFunc: func(ctx context.Context, sess session.Session, reg domain.CompanyRegistration) (OnboardResponse, error) {
			return OnboardResponse{}, apperrors.NewRemoteError("registering company", nil)
		},
	}

	rec := serve(t, uc, `{"companyName":"Blue Spring","registrationNumber":"REG-1","email":"ops@blue.example"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
