package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
)

// LuminanceController handles Luminance award winners
type LuminanceController struct {
	luminanceService services.LuminanceService
}

// NewLuminanceController creates a new LuminanceController
func NewLuminanceController(luminanceService services.LuminanceService) *LuminanceController {
	return &LuminanceController{
		luminanceService: luminanceService,
	}
}

// List returns every winner, newest year first
// @Summary List Luminance winners
// @Tags luminance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Luminance}
// @Router /luminance [get]
func (c *LuminanceController) List(ctx *gin.Context) {
	lums, err := c.luminanceService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lums))
}

// Current returns the winner flagged as current
// @Summary Current Luminance winner
// @Tags luminance
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Luminance}
// @Failure 404 {object} dto.ErrorResponse "No current winner"
// @Router /luminance/current [get]
func (c *LuminanceController) Current(ctx *gin.Context) {
	lum, err := c.luminanceService.GetCurrent(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lum))
}

// Get returns one winner
// @Summary Get Luminance winner
// @Tags luminance
// @Produce json
// @Param id path int true "Luminance ID"
// @Success 200 {object} dto.APIResponse{data=models.Luminance}
// @Router /luminance/{id} [get]
func (c *LuminanceController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "luminance")
	if !ok {
		return
	}

	lum, err := c.luminanceService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lum))
}

// Create adds a winner
// @Summary Create Luminance winner
// @Tags admin-luminance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LuminanceRequest true "Winner"
// @Success 201 {object} dto.APIResponse{data=models.Luminance}
// @Router /admin/luminance [post]
func (c *LuminanceController) Create(ctx *gin.Context) {
	var req dto.LuminanceRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	lum, err := c.luminanceService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lum))
}

// Update replaces a winner's fields
// @Summary Update Luminance winner
// @Tags admin-luminance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Luminance ID"
// @Param request body dto.LuminanceRequest true "Winner"
// @Success 200 {object} dto.APIResponse{data=models.Luminance}
// @Router /admin/luminance/{id} [put]
func (c *LuminanceController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "luminance")
	if !ok {
		return
	}
	var req dto.LuminanceRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	lum, err := c.luminanceService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lum))
}

// SetCurrent moves the current flag to the winner
// @Summary Mark winner as current
// @Tags admin-luminance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Luminance ID"
// @Success 200 {object} dto.APIResponse{data=models.Luminance}
// @Router /admin/luminance/{id}/current [put]
func (c *LuminanceController) SetCurrent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "luminance")
	if !ok {
		return
	}

	lum, err := c.luminanceService.SetCurrent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lum))
}

// Delete removes a winner
// @Summary Delete Luminance winner
// @Tags admin-luminance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Luminance ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/luminance/{id} [delete]
func (c *LuminanceController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "luminance")
	if !ok {
		return
	}

	if err := c.luminanceService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Luminance winner deleted"))
}
