package seed

import (
	"context"
	"errors"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/config"
	"github.com/rs/zerolog"
)

// ErrAdminPasswordMissing is returned when the bootstrap admin has no password configured
var ErrAdminPasswordMissing = errors.New("admin password is not configured")

// CreateDefaultAdmin creates the bootstrap admin from the admin config section
// unless an account with that email already exists. Existing accounts are
// left untouched so a changed password survives restarts.
func CreateDefaultAdmin(
	ctx context.Context,
	userRepo *repositories.UserRepository,
	authService services.AuthService,
	cfg *config.Config,
	lgr zerolog.Logger,
) (bool, error) {
	if cfg.Admin.Email == "" {
		lgr.Debug().Msg("No bootstrap admin email configured, skipping")
		return false, nil
	}

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		return false, err
	}
	if exists {
		lgr.Debug().Str("email", cfg.Admin.Email).Msg("Bootstrap admin already exists")
		return false, nil
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Str("email", cfg.Admin.Email).Msg("ADMIN_PASSWORD not set, bootstrap admin not created")
		return false, ErrAdminPasswordMissing
	}

	_, created, err := authService.EnsureUser(ctx, &dto.CreateUserRequest{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		RoleType: models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Bootstrap admin created")
	return created, nil
}
