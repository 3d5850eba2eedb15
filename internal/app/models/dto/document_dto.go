package dto

// DocumentRequest carries document metadata. URL is required only when no
// file is uploaded with the request.
type DocumentRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Author      string `json:"author" form:"author" binding:"omitempty,max=255"`
	Description string `json:"description" form:"description"`
	URL         string `json:"url" form:"url" binding:"omitempty,url"`
}

// UploadResponse describes a stored object
type UploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
