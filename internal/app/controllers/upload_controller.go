package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
)

// UploadController stores images and PDFs referenced by other records
type UploadController struct {
	uploadService services.UploadService
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// Upload stores the multipart "file" and returns its public URL
// @Summary Upload file
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or PDF"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing, too large or unsupported file"
// @Failure 502 {object} dto.ErrorResponse "Storage unavailable"
// @Router /uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleAPIError(ctx, services.ErrFileTooLarge)
			return
		}
		middleware.HandleAPIError(ctx, services.ErrFileRequired)
		return
	}

	stored, err := c.uploadService.Upload(ctx.Request.Context(), file, services.FileKindAny)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UploadResponse{
		URL:         stored.URL,
		Key:         stored.Key,
		Size:        stored.Size,
		ContentType: stored.ContentType,
	}))
}
