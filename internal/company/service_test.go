package company

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquaflow/internal/company/repository"
	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/session"
	"aquaflow/internal/store"
)

type mockOrderCounter struct {
	CountByCompanyFunc func(ctx context.Context, companyID string) int
}

func (m *mockOrderCounter) CountByCompany(ctx context.Context, companyID string) int {
	return m.CountByCompanyFunc(ctx, companyID)
}

var (
	admin = session.New(domain.User{ID: "u-1", Role: domain.RoleAdmin})
	owner = session.New(domain.User{ID: "u-2", Role: domain.RoleCompanyAdmin})
)

func newTestService(t *testing.T, counts map[string]int) (*Service, *repository.CompanyRepository) {
	t.Helper()
	repo := repository.NewCompanyRepository(store.NewMemorySlot(), []domain.Company{
		{ID: "1", Name: "AquaPure", Status: domain.CompanyStatusActive, Orders: 3, TotalRevenue: 137.1},
		{ID: "2", Name: "Crystal", Status: domain.CompanyStatusPending},
	}, zap.NewNop())
	repo.Load(context.Background())

	svc := NewService(repo, &mockOrderCounter{
		CountByCompanyFunc: func(ctx context.Context, companyID string) int { return counts[companyID] },
	}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "c-new" }
	return svc, repo
}

func TestService_AdminOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, owner)
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	_, err = svc.Create(ctx, owner, CreateCompanyRequest{Name: "x"})
	_, ok = apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	err = svc.Delete(ctx, owner, "2")
	_, ok = apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestService_CreateDefaultsToPending(t *testing.T) {
	svc, _ := newTestService(t, nil)

	c, err := svc.Create(context.Background(), admin, CreateCompanyRequest{Name: "Blue", Email: "ops@blue.example"})
	require.NoError(t, err)

	assert.Equal(t, "c-new", c.ID)
	assert.Equal(t, domain.CompanyStatusPending, c.Status)
	assert.Nil(t, c.RemoteID)
}

func TestService_UpdateCountersAreDirectEdits(t *testing.T) {
	svc, _ := newTestService(t, map[string]int{"1": 99})
	orders := 7
	revenue := 250.5

	c, err := svc.Update(context.Background(), admin, "1", UpdateCompanyRequest{Orders: &orders, TotalRevenue: &revenue})
	require.NoError(t, err)

	assert.Equal(t, 7, c.Orders)
	assert.Equal(t, 250.5, c.TotalRevenue)
	assert.Equal(t, "AquaPure", c.Name)
}

func TestService_DeleteBlockedByOrders(t *testing.T) {
	svc, repo := newTestService(t, map[string]int{"1": 2})
	ctx := context.Background()

	err := svc.Delete(ctx, admin, "1")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	_, found := repo.FindByID(ctx, "1")
	assert.True(t, found)

	require.NoError(t, svc.Delete(ctx, admin, "2"))
	_, found = repo.FindByID(ctx, "2")
	assert.False(t, found)

	assert.NoError(t, svc.Delete(ctx, admin, "missing"))
}

func TestService_DeleteRestoresCompanyWhenOrderLandsDuringRemove(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	calls := 0
	svc.orders = &mockOrderCounter{
		CountByCompanyFunc: func(ctx context.Context, companyID string) int {
			calls++
			if calls == 1 {
				return 0
			}
			return 1
		},
	}

	err := svc.Delete(ctx, admin, "2")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, 2, calls)

	restored, found := repo.FindByID(ctx, "2")
	require.True(t, found)
	assert.Equal(t, "Crystal", restored.Name)
}

func TestService_UpdateUnknown(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Update(context.Background(), admin, "missing", UpdateCompanyRequest{})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestService_RegisterKeepsRemoteID(t *testing.T) {
	svc, _ := newTestService(t, nil)
	remote := "81"

	c, err := svc.Register(context.Background(), CreateCompanyRequest{Name: "Wave", RemoteID: &remote})
	require.NoError(t, err)

	require.NotNil(t, c.RemoteID)
	assert.Equal(t, "81", *c.RemoteID)
}
