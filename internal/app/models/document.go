package models

import "time"

// Document is metadata for an externally hosted file (usually a PDF).
// StorageKey is empty when the URL points somewhere we do not manage.
type Document struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Author      string    `json:"author,omitempty" gorm:"size:255"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	URL         string    `json:"url" gorm:"size:1024;not null"`
	StorageKey  string    `json:"-" gorm:"size:1024"`
	ContentType string    `json:"contentType,omitempty" gorm:"size:100"`
	Size        int64     `json:"size,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Document) TableName() string {
	return "documents"
}
