package dto

import "github.com/nursingassoc/website/internal/app/models"

// MemberApplicationRequest is submitted from the public membership page
type MemberApplicationRequest struct {
	FirstName     string `json:"firstName" form:"firstName" binding:"required,max=100"`
	LastName      string `json:"lastName" form:"lastName" binding:"required,max=100"`
	Email         string `json:"email" form:"email" binding:"required,email"`
	Phone         string `json:"phone" form:"phone" binding:"omitempty,max=50,phone"`
	Workplace     string `json:"workplace" form:"workplace" binding:"omitempty,max=255"`
	Position      string `json:"position" form:"position" binding:"omitempty,max=255"`
	LicenseNumber string `json:"licenseNumber" form:"licenseNumber" binding:"omitempty,max=100"`
}

// UpdateMemberRequest is used by admins to edit member details
type UpdateMemberRequest struct {
	FirstName     string `json:"firstName" binding:"required,max=100"`
	LastName      string `json:"lastName" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"omitempty,max=50,phone"`
	Workplace     string `json:"workplace" binding:"omitempty,max=255"`
	Position      string `json:"position" binding:"omitempty,max=255"`
	LicenseNumber string `json:"licenseNumber" binding:"omitempty,max=100"`
}

// UpdateMemberStatusRequest approves or denies a membership
type UpdateMemberStatusRequest struct {
	Status models.MemberStatus `json:"status" binding:"required,oneof=PENDING APPROVED DENIED"`
}

// MemberFilter holds member list filters
type MemberFilter struct {
	Status   models.MemberStatus
	Search   string
	Page     int
	PageSize int
}
