package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService handles admin-area authentication
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	// EnsureUser creates the account or, when it exists, resets its password,
	// name and role. The bool reports whether the account was created.
	EnsureUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, bool, error)
}

type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
		now:        time.Now,
	}
}

// Login verifies credentials and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", user.Email).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	now := s.now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Could not record last login")
	} else {
		user.LastLoginAt = &now
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.FromUser(user),
	}, nil
}

// GetCurrentUser returns the signed-in account
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return dto.FromUser(user), nil
}

// ChangePassword replaces the password after checking the current one
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", userID).Msg("Password changed")
	return nil
}

// EnsureUser creates or resets an account
func (s *authServiceImpl) EnsureUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, false, apperrors.NewValidationError("a valid email is required")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, false, err
	}

	role := req.RoleType
	if role == "" {
		role = models.RoleAdmin
	}
	if !role.IsValid() {
		return nil, false, apperrors.NewValidationError("role must be ADMIN or EDITOR")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Administrator"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("error hashing password: %w", err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = name
		existing.RoleType = role
		existing.IsActive = true
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		if err := s.userRepo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return nil, false, err
		}
		existing.Password = hash
		s.logger.Info().Str("email", email).Msg("Account updated")
		return existing, false, nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, false, err
	}

	user := &models.User{
		Email:    email,
		Password: hash,
		Name:     name,
		RoleType: role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Info().Str("email", email).Str("role", string(role)).Msg("Account created")
	return user, true, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}
	return nil
}
