package dto

import "github.com/nursingassoc/website/internal/app/models"

// EventRequest creates or updates an event/news item. Type, date and title
// are checked by the service, in that order, so the news API can report
// them with its own messages.
type EventRequest struct {
	Title       string           `json:"title" form:"title" binding:"max=255"`
	Description string           `json:"description" form:"description"`
	Location    string           `json:"location" form:"location" binding:"omitempty,max=255"`
	Date        string           `json:"date" form:"date"`
	StartTime   string           `json:"startTime" form:"startTime"`
	EndTime     string           `json:"endTime" form:"endTime"`
	Type        models.EventType `json:"type" form:"type"`
	ImageURL    string           `json:"imageUrl" form:"imageUrl" binding:"omitempty,max=1024"`
	IsLatest    bool             `json:"isLatest" form:"isLatest"`
	IsFinished  bool             `json:"isFinished" form:"isFinished"`
}

// SetFinishedRequest toggles the finished flag
type SetFinishedRequest struct {
	IsFinished bool `json:"isFinished"`
}

// EventFilter holds event list filters
type EventFilter struct {
	Type     models.EventType
	Finished *bool
	Page     int
	PageSize int
}

// NewsErrorResponse is the legacy error payload of the /api/news routes
type NewsErrorResponse struct {
	Error string `json:"error"`
}

// NewsMessageResponse is the legacy not-found payload of the /api/news routes
type NewsMessageResponse struct {
	Message string `json:"message"`
}
