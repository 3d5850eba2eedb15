package models

import (
	"time"
)

// User is an account that can sign in to the admin dashboard
type User struct {
	ID          int64      `json:"id" gorm:"primaryKey" example:"1"`
	Email       string     `json:"email" gorm:"size:255;not null;uniqueIndex" example:"admin@nursing.org"`
	Password    string     `json:"-" gorm:"column:password_hash;not null"`
	Name        string     `json:"name" gorm:"size:255;not null" example:"Jane Doe"`
	RoleType    RoleType   `json:"roleType" gorm:"size:20;not null;default:ADMIN" example:"ADMIN"`
	IsActive    bool       `json:"isActive" gorm:"not null"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
