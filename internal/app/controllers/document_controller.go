package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
)

// DocumentController handles the document library
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// List returns every document
// @Summary List documents
// @Tags documents
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Document}
// @Router /documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	docs, err := c.documentService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs))
}

// Get returns one document
// @Summary Get document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.Document}
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /documents/{id} [get]
func (c *DocumentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "document")
	if !ok {
		return
	}

	doc, err := c.documentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// Create adds a document, either uploading a PDF (multipart "file") or
// recording an existing url
// @Summary Create document
// @Tags admin-documents
// @Accept multipart/form-data,json
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Document name"
// @Param author formData string false "Author"
// @Param description formData string false "Description"
// @Param url formData string false "Existing URL when no file is sent"
// @Param file formData file false "PDF file"
// @Success 201 {object} dto.APIResponse{data=models.Document}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or not a PDF"
// @Failure 502 {object} dto.ErrorResponse "Storage unavailable"
// @Router /admin/documents [post]
func (c *DocumentController) Create(ctx *gin.Context) {
	var req dto.DocumentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	var file *multipart.FileHeader
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fh, err := ctx.FormFile("file")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid file upload").WithDetails(err.Error()),
			))
			return
		}
		file = fh
	}

	doc, err := c.documentService.Create(ctx.Request.Context(), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(doc))
}

// Update edits document metadata
// @Summary Update document
// @Tags admin-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.DocumentRequest true "Document metadata"
// @Success 200 {object} dto.APIResponse{data=models.Document}
// @Router /admin/documents/{id} [put]
func (c *DocumentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "document")
	if !ok {
		return
	}
	var req dto.DocumentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	doc, err := c.documentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// Delete removes a document and its stored file
// @Summary Delete document
// @Tags admin-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "document")
	if !ok {
		return
	}

	if err := c.documentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document deleted"))
}
