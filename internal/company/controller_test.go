package company

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aquaflow/internal/domain"
	apperrors "aquaflow/internal/errors"
)

func TestValidateCreateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateCompanyRequest
		fields []string
	}{
		{name: "valid", req: CreateCompanyRequest{Name: "Blue", Email: "ops@blue.example"}},
		{name: "missing name", req: CreateCompanyRequest{Email: "ops@blue.example"}, fields: []string{"name"}},
		{name: "bad email", req: CreateCompanyRequest{Name: "Blue", Email: "nope"}, fields: []string{"email"}},
		{name: "bad status", req: CreateCompanyRequest{Name: "Blue", Email: "a@b.example", Status: "closed"}, fields: []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			ve, ok := apperrors.IsValidationError(err)
			assert.True(t, ok)
			var got []string
			for _, d := range ve.Details {
				got = append(got, d.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidateUpdateRequest(t *testing.T) {
	negative := -1
	status := domain.CompanyStatus("gone")

	err := validateUpdateRequest(UpdateCompanyRequest{Users: &negative, Status: &status})

	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Len(t, ve.Details, 2)
	assert.NoError(t, validateUpdateRequest(UpdateCompanyRequest{}))
}
