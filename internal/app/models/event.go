package models

import "time"

// Event is a news/event item. The public site calls the same rows "news".
// The partial unique index allows at most one row with is_latest = true.
type Event struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location,omitempty" gorm:"size:255"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	StartTime   string    `json:"startTime,omitempty" gorm:"size:5"`
	EndTime     string    `json:"endTime,omitempty" gorm:"size:5"`
	Type        EventType `json:"type" gorm:"size:20;not null;default:EVENT;index"`
	ImageURL    string    `json:"imageUrl,omitempty" gorm:"size:1024"`
	IsLatest    bool      `json:"isLatest" gorm:"not null;default:false;uniqueIndex:idx_events_single_latest,where:is_latest = true"`
	IsFinished  bool      `json:"isFinished" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Attendees []EventUser `json:"attendees,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (Event) TableName() string {
	return "events"
}
