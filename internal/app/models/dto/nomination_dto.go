package dto

import "github.com/nursingassoc/website/internal/app/models"

// NominationRequest is submitted from the public awards page
type NominationRequest struct {
	NominatorName  string   `json:"nominatorName" binding:"required,max=255"`
	NominatorEmail string   `json:"nominatorEmail" binding:"required,email"`
	NominatorPhone string   `json:"nominatorPhone" binding:"omitempty,max=50,phone"`
	Nominees       []string `json:"nominees" binding:"required,min=1,max=3,dive,notblank,max=255"`
	Category       string   `json:"category" binding:"required,max=255"`
	Reason         string   `json:"reason" binding:"required"`
}

// UpdateNominationStatusRequest moves a nomination through review
type UpdateNominationStatusRequest struct {
	Status models.NominationStatus `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

// NominationFilter holds nomination list filters
type NominationFilter struct {
	Status   models.NominationStatus
	Category string
	Page     int
	PageSize int
}
