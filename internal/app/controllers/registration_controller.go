package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/helpers"
)

// RegistrationController handles event registrations and non-member records
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// Register signs a member or non-member up for an event
// @Summary Register for an event
// @Description Send memberEmail for an approved member, or nonMember with attendee details
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.EventRegistrationRequest true "Registration"
// @Success 201 {object} dto.APIResponse{data=models.EventUser}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or event finished"
// @Failure 404 {object} dto.ErrorResponse "Event or member not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /events/{id}/register [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.EventRegistrationRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	registration, err := c.registrationService.Register(ctx.Request.Context(), eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registration))
}

// ListByEvent returns every registration of an event
// @Summary List event registrations
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.EventUser}
// @Router /admin/events/{id}/registrations [get]
func (c *RegistrationController) ListByEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	registrations, err := c.registrationService.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(registrations))
}

// Approve confirms a pending registration
// @Summary Approve registration
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse{data=models.EventUser}
// @Router /admin/registrations/{id}/approve [put]
func (c *RegistrationController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "registration")
	if !ok {
		return
	}

	registration, err := c.registrationService.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(registration))
}

// Remove deletes a registration
// @Summary Remove registration
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/registrations/{id} [delete]
func (c *RegistrationController) Remove(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "registration")
	if !ok {
		return
	}

	if err := c.registrationService.Remove(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Registration removed"))
}

// ListNonMembers returns a page of non-member attendees
// @Summary List non-members
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name or email"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/non-members [get]
func (c *RegistrationController) ListNonMembers(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	params := dto.ListParams{Page: page, PageSize: pageSize, Search: ctx.Query("search")}

	response, err := c.registrationService.ListNonMembers(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// DeleteNonMember removes a non-member and its registrations
// @Summary Delete non-member
// @Tags admin-registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Non-member ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/non-members/{id} [delete]
func (c *RegistrationController) DeleteNonMember(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "non-member")
	if !ok {
		return
	}

	if err := c.registrationService.DeleteNonMember(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Non-member deleted"))
}
