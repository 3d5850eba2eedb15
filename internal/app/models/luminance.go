package models

import "time"

// Luminance is an award-winner record. At most one row has is_current = true.
type Luminance struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Title       string    `json:"title,omitempty" gorm:"size:255"`
	Category    string    `json:"category,omitempty" gorm:"size:255"`
	Year        int       `json:"year" gorm:"not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string    `json:"imageUrl,omitempty" gorm:"size:1024"`
	IsCurrent   bool      `json:"isCurrent" gorm:"not null;default:false;uniqueIndex:idx_luminances_single_current,where:is_current = true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Luminance) TableName() string {
	return "luminances"
}
