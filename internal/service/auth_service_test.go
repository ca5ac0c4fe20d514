package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/isp-support-service/internal/auth"
	"github.com/spec-kit/isp-support-service/internal/config"
	"github.com/spec-kit/isp-support-service/internal/domain"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	hash, err := auth.HashPassword("s3creto!", 4)
	require.NoError(t, err)
	staff := &fakeStaffRepo{members: map[string]domain.StaffMember{
		"staff-1": {ID: "staff-1", Name: "Ana", Email: "ana@example.com", PasswordHash: hash, Role: domain.StaffRoleAdmin, IsActive: true},
		"staff-2": {ID: "staff-2", Name: "Luis", Email: "luis@example.com", PasswordHash: hash, Role: domain.StaffRoleAgent, IsActive: false},
	}}
	return NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 15}, staff)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "ana@example.com", "s3creto!")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "staff-1", result.Staff.ID)
	assert.False(t, result.ExpiresAt.IsZero())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, unknownEmail := svc.Login(ctx, "nadie@example.com", "s3creto!")
	_, wrongPassword := svc.Login(ctx, "ana@example.com", "otra-cosa")
	_, inactive := svc.Login(ctx, "luis@example.com", "s3creto!")

	reference := apperrors.ToDomainError(unknownEmail)
	require.Equal(t, "UNAUTHORIZED", reference.Code)
	for _, err := range []error{wrongPassword, inactive} {
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, reference.Code, domainErr.Code)
		assert.Equal(t, reference.Message, domainErr.Message)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "", "s3creto!")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
