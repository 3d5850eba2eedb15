package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/helpers"
)

// NominationController handles award nominations
type NominationController struct {
	nominationService services.NominationService
}

// NewNominationController creates a new NominationController
func NewNominationController(nominationService services.NominationService) *NominationController {
	return &NominationController{
		nominationService: nominationService,
	}
}

// Submit records a nomination from the awards page
// @Summary Submit nomination
// @Tags nominations
// @Accept json
// @Produce json
// @Param request body dto.NominationRequest true "Nomination with 1 to 3 nominees"
// @Success 201 {object} dto.APIResponse{data=models.Nomination}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /nominations [post]
func (c *NominationController) Submit(ctx *gin.Context) {
	var req dto.NominationRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	nomination, err := c.nominationService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nomination))
}

// List returns a page of nominations
// @Summary List nominations
// @Tags admin-nominations
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param category query string false "Category"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/nominations [get]
func (c *NominationController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := dto.NominationFilter{
		Status:   models.NominationStatus(ctx.Query("status")),
		Category: ctx.Query("category"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := c.nominationService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Get returns one nomination
// @Summary Get nomination
// @Tags admin-nominations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Success 200 {object} dto.APIResponse{data=models.Nomination}
// @Router /admin/nominations/{id} [get]
func (c *NominationController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "nomination")
	if !ok {
		return
	}

	nomination, err := c.nominationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nomination))
}

// UpdateStatus moves a nomination through review
// @Summary Set nomination status
// @Tags admin-nominations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Param request body dto.UpdateNominationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Nomination}
// @Router /admin/nominations/{id}/status [put]
func (c *NominationController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "nomination")
	if !ok {
		return
	}
	var req dto.UpdateNominationStatusRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	nomination, err := c.nominationService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nomination))
}

// Delete removes a nomination
// @Summary Delete nomination
// @Tags admin-nominations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/nominations/{id} [delete]
func (c *NominationController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "nomination")
	if !ok {
		return
	}

	if err := c.nominationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Nomination deleted"))
}
