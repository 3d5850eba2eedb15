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

// MemberController handles membership applications and member administration
type MemberController struct {
	memberService services.MemberService
}

// NewMemberController creates a new MemberController
func NewMemberController(memberService services.MemberService) *MemberController {
	return &MemberController{
		memberService: memberService,
	}
}

// Apply submits a membership application
// @Summary Apply for membership
// @Tags members
// @Accept json
// @Produce json
// @Param request body dto.MemberApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.Member}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /members/apply [post]
func (c *MemberController) Apply(ctx *gin.Context) {
	var req dto.MemberApplicationRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	member, err := c.memberService.Apply(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(member))
}

// List returns a page of members
// @Summary List members
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or DENIED"
// @Param search query string false "Matches name or email"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /admin/members [get]
func (c *MemberController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := dto.MemberFilter{
		Status:   models.MemberStatus(ctx.Query("status")),
		Search:   ctx.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := c.memberService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Stats returns the number of members per status
// @Summary Member counts by status
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /admin/members/stats [get]
func (c *MemberController) Stats(ctx *gin.Context) {
	stats, err := c.memberService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Get returns one member
// @Summary Get member
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} dto.APIResponse{data=models.Member}
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Router /admin/members/{id} [get]
func (c *MemberController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	member, err := c.memberService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// Update edits member details
// @Summary Update member
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body dto.UpdateMemberRequest true "Member details"
// @Success 200 {object} dto.APIResponse{data=models.Member}
// @Router /admin/members/{id} [put]
func (c *MemberController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "member")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	member, err := c.memberService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// UpdateStatus approves or denies a membership
// @Summary Set member status
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body dto.UpdateMemberStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Member}
// @Router /admin/members/{id}/status [put]
func (c *MemberController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "member")
	if !ok {
		return
	}
	var req dto.UpdateMemberStatusRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	member, err := c.memberService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// Delete removes a member and its event registrations
// @Summary Delete member
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Router /admin/members/{id} [delete]
func (c *MemberController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "member")
	if !ok {
		return
	}

	if err := c.memberService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Member deleted"))
}
