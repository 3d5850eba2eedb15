package models

import "time"

// Nomination proposes one to three candidates for a recognition category
type Nomination struct {
	ID             int64            `json:"id" gorm:"primaryKey"`
	NominatorName  string           `json:"nominatorName" gorm:"size:255;not null"`
	NominatorEmail string           `json:"nominatorEmail" gorm:"size:255;not null"`
	NominatorPhone string           `json:"nominatorPhone,omitempty" gorm:"size:50"`
	Nominees       []string         `json:"nominees" gorm:"type:text;serializer:json;not null"`
	Category       string           `json:"category" gorm:"size:255;not null;index"`
	Reason         string           `json:"reason" gorm:"type:text;not null"`
	Status         NominationStatus `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (Nomination) TableName() string {
	return "nominations"
}
