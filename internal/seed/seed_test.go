package seed

import (
	"context"
	"testing"
	"time"

	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/config"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/nursingassoc/website/internal/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*repositories.UserRepository, services.AuthService) {
	gdb := testutil.SetupSQLiteTestDB(t)
	userRepo := repositories.NewUserRepository(gdb)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return userRepo, services.NewAuthService(userRepo, jwtService, zerolog.Nop())
}

func adminConfig(email, password string) *config.Config {
	cfg := &config.Config{}
	cfg.Admin.Email = email
	cfg.Admin.Password = password
	cfg.Admin.Name = "Admin"
	return cfg
}

func TestCreateDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	userRepo, authService := setup(t)

	created, err := CreateDefaultAdmin(ctx, userRepo, authService, adminConfig("admin@example.org", "first-password"), zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)

	_, err = authService.Login(ctx, &dto.LoginRequest{Email: "admin@example.org", Password: "first-password"})
	require.NoError(t, err)

	created, err = CreateDefaultAdmin(ctx, userRepo, authService, adminConfig("admin@example.org", "second-password"), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)

	_, err = authService.Login(ctx, &dto.LoginRequest{Email: "admin@example.org", Password: "first-password"})
	assert.NoError(t, err, "existing account keeps its password")
}

func TestCreateDefaultAdmin_Skipped(t *testing.T) {
	ctx := context.Background()
	userRepo, authService := setup(t)

	created, err := CreateDefaultAdmin(ctx, userRepo, authService, adminConfig("", ""), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)

	created, err = CreateDefaultAdmin(ctx, userRepo, authService, adminConfig("admin@example.org", ""), zerolog.Nop())
	assert.ErrorIs(t, err, ErrAdminPasswordMissing)
	assert.False(t, created)
}
