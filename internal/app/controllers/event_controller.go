package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/helpers"
)

// EventController handles event operations for the public API and the admin area
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// List returns a page of events
// @Summary List events
// @Tags events
// @Produce json
// @Param type query string false "EVENT, RECOGNITION or TEAM"
// @Param finished query bool false "Filter by finished flag"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := dto.EventFilter{
		Type:     models.EventType(ctx.Query("type")),
		Finished: parseOptionalBool(ctx, "finished"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := c.eventService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Upcoming returns unfinished events from today onward
// @Summary Upcoming events
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /events/upcoming [get]
func (c *EventController) Upcoming(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	if limit > helpers.MaxPageSize {
		limit = helpers.MaxPageSize
	}

	events, err := c.eventService.Upcoming(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// Latest returns the event flagged as latest
// @Summary Latest event
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "No latest event"
// @Router /events/latest [get]
func (c *EventController) Latest(ctx *gin.Context) {
	event, err := c.eventService.GetLatest(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// Get returns one event
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	event, err := c.eventService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// Create adds an event
// @Summary Create event
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Title already exists"
// @Router /admin/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.EventRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// Update replaces an event's fields
// @Summary Update event
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.EventRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// SetLatest moves the latest flag to the event
// @Summary Mark event as latest
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/latest [put]
func (c *EventController) SetLatest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	event, err := c.eventService.SetLatest(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// SetFinished toggles whether the event is over
// @Summary Set finished flag
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SetFinishedRequest true "Finished flag"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /admin/events/{id}/finished [put]
func (c *EventController) SetFinished(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}
	var req dto.SetFinishedRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	event, err := c.eventService.SetFinished(ctx.Request.Context(), id, req.IsFinished)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// Delete removes an event and its registrations
// @Summary Delete event
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}
