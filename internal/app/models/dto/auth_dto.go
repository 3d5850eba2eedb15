package dto

import (
	"time"

	"github.com/nursingassoc/website/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string        `json:"accessToken"`
	TokenType   string        `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64         `json:"expiresIn"`
	User        *UserResponse `json:"user"`
}

// ChangePasswordRequest represents a password change by the signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// CreateUserRequest is used by the create-admin command and admin user management
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Name     string          `json:"name" binding:"required"`
	RoleType models.RoleType `json:"roleType" binding:"omitempty,oneof=ADMIN EDITOR"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	RoleType    string     `json:"roleType"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		RoleType:    string(u.RoleType),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
}
