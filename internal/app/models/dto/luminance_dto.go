package dto

// LuminanceRequest creates or updates an award winner
type LuminanceRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Title       string `json:"title" form:"title" binding:"omitempty,max=255"`
	Category    string `json:"category" form:"category" binding:"omitempty,max=255"`
	Year        int    `json:"year" form:"year" binding:"required,min=1900,max=3000"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl" binding:"omitempty,max=1024"`
	IsCurrent   bool   `json:"isCurrent" form:"isCurrent"`
}
