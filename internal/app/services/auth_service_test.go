package services

import (
	"context"
	"testing"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_EnsureUserAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, created, err := f.svc.Auth.EnsureUser(ctx, &dto.CreateUserRequest{Email: "Editor@Example.org", Password: "longpassword", Name: "Ed", RoleType: models.RoleEditor})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "editor@example.org", user.Email)

	token, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "editor@example.org", Password: "longpassword"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "editor@example.org", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.org", Password: "longpassword"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, created, err = f.svc.Auth.EnsureUser(ctx, &dto.CreateUserRequest{Email: "editor@example.org", Password: "anotherpassword", Name: "Ed", RoleType: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, created)
	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "editor@example.org", Password: "anotherpassword"})
	require.NoError(t, err)

	_, _, err = f.svc.Auth.EnsureUser(ctx, &dto.CreateUserRequest{Email: "x@example.org", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAuthService_DisabledAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, _, err := f.svc.Auth.EnsureUser(ctx, &dto.CreateUserRequest{Email: "off@example.org", Password: "longpassword", Name: "Off"})
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, f.repos.UserRepository.Update(ctx, user))

	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "off@example.org", Password: "longpassword"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	_, err = f.svc.Auth.GetCurrentUser(ctx, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, _, err := f.svc.Auth.EnsureUser(ctx, &dto.CreateUserRequest{Email: "a@example.org", Password: "longpassword", Name: "A"})
	require.NoError(t, err)

	err = f.svc.Auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "brandnewpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, f.svc.Auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "longpassword", NewPassword: "brandnewpass"}))
	_, err = f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "a@example.org", Password: "brandnewpass"})
	require.NoError(t, err)

	me, err := f.svc.Auth.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.org", me.Email)
}
