package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/middleware"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// NewsController serves the legacy /api/news routes. Responses are bare JSON
// records and errors use {"error": ...} or {"message": ...} instead of the
// standard envelope.
type NewsController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewNewsController creates a new NewsController
func NewNewsController(eventService services.EventService, logger zerolog.Logger) *NewsController {
	return &NewsController{
		eventService: eventService,
		logger:       logger,
	}
}

// List returns every news record
// @Summary List news
// @Tags news
// @Produce json
// @Success 200 {array} models.Event
// @Router /news [get]
func (c *NewsController) List(ctx *gin.Context) {
	events, err := c.eventService.ListAll(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Error listing news")
		ctx.JSON(http.StatusInternalServerError, dto.NewsErrorResponse{Error: "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// GetByTitle returns one news record by its exact title
// @Summary Get news by title
// @Tags news
// @Produce json
// @Param title path string true "News title"
// @Success 200 {object} models.Event
// @Failure 404 {object} dto.NewsMessageResponse "News not found"
// @Router /news/{title} [get]
func (c *NewsController) GetByTitle(ctx *gin.Context) {
	event, err := c.eventService.GetByTitle(ctx.Request.Context(), ctx.Param("title"))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewsMessageResponse{Message: "News not found"})
			return
		}
		c.logger.Error().Err(err).Msg("Error retrieving news")
		ctx.JSON(http.StatusInternalServerError, dto.NewsErrorResponse{Error: "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// Create adds a news record. Only signed-in staff may post, so authentication
// is checked before the body.
// @Summary Create news
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "News record"
// @Success 201 {object} models.Event
// @Failure 400 {object} dto.NewsErrorResponse "Invalid request body, news type, date format or missing title"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token, returned before the body is read"
// @Failure 403 {object} dto.ErrorResponse "Account is not ADMIN or EDITOR"
// @Failure 409 {object} dto.NewsErrorResponse "Title already exists"
// @Router /news [post]
func (c *NewsController) Create(ctx *gin.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewsErrorResponse{Error: "Invalid request body"})
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), &req)
	if err != nil {
		status := middleware.StatusFor(err)
		message := apperrors.Message(err)
		if status == http.StatusInternalServerError || message == "" {
			c.logger.Error().Err(err).Msg("Error creating news")
			message = "Internal server error"
		}
		ctx.JSON(status, dto.NewsErrorResponse{Error: message})
		return
	}
	ctx.JSON(http.StatusCreated, event)
}
