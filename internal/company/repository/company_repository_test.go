package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquaflow/internal/domain"
	"aquaflow/internal/store"
)

func TestCompanyRepository_ClonesRemoteID(t *testing.T) {
	ctx := context.Background()
	remote := "42"
	repo := NewCompanyRepository(store.NewMemorySlot(), nil, zap.NewNop())
	repo.Load(ctx)

	_, err := repo.Add(ctx, domain.Company{ID: "c-9", Name: "Fresh", Status: domain.CompanyStatusPending, RemoteID: &remote})
	require.NoError(t, err)
	remote = "mutated"

	got, ok := repo.FindByID(ctx, "c-9")
	require.True(t, ok)
	assert.Equal(t, "42", *got.RemoteID)

	*got.RemoteID = "again"
	again, _ := repo.FindByID(ctx, "c-9")
	assert.Equal(t, "42", *again.RemoteID)
}

func TestCompanyRepository_ListByStatus(t *testing.T) {
	repo := NewCompanyRepository(store.NewMemorySlot(), []domain.Company{
		{ID: "1", Status: domain.CompanyStatusActive},
		{ID: "2", Status: domain.CompanyStatusSuspended},
		{ID: "3", Status: domain.CompanyStatusActive},
	}, zap.NewNop())
	repo.Load(context.Background())

	active := repo.ListByStatus(context.Background(), domain.CompanyStatusActive)

	require.Len(t, active, 2)
	assert.Equal(t, "1", active[0].ID)
	assert.Equal(t, "3", active[1].ID)
}

func TestCompanyRepository_NilDefaultsLoadEmpty(t *testing.T) {
	repo := NewCompanyRepository(store.NewMemorySlot(), nil, zap.NewNop())
	repo.Load(context.Background())

	assert.Empty(t, repo.List(context.Background()))
}
