package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/services"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

const homeUpcomingLimit = 3

// PageData is passed to every page template
type PageData struct {
	SiteName string
	Title    string
	Year     int
	Notice   string
	Error    string
	Data     gin.H
}

// PageController renders the public site. Every page reads the store at request time.
type PageController struct {
	siteName          string
	eventService      services.EventService
	luminanceService  services.LuminanceService
	documentService   services.DocumentService
	memberService     services.MemberService
	nominationService services.NominationService
	registrations     services.RegistrationService
	logger            zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(siteName string, svc *services.Services, logger zerolog.Logger) *PageController {
	return &PageController{
		siteName:          siteName,
		eventService:      svc.Event,
		luminanceService:  svc.Luminance,
		documentService:   svc.Document,
		memberService:     svc.Member,
		nominationService: svc.Nomination,
		registrations:     svc.Registration,
		logger:            logger,
	}
}

func (c *PageController) render(ctx *gin.Context, status int, name, title string, data gin.H, notice, errMsg string) {
	ctx.HTML(status, name, PageData{
		SiteName: c.siteName,
		Title:    title,
		Year:     time.Now().Year(),
		Notice:   notice,
		Error:    errMsg,
		Data:     data,
	})
}

func (c *PageController) serverError(ctx *gin.Context, err error, msg string) {
	c.logger.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg(msg)
	c.render(ctx, http.StatusInternalServerError, "error.html", "Error", nil, "", "")
}

// NotFound renders the 404 page, or a JSON error under /api
func (c *PageController) NotFound(ctx *gin.Context) {
	if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
		))
		return
	}
	c.render(ctx, http.StatusNotFound, "not_found.html", "Not found", nil, "", "")
}

// Home shows the latest news, upcoming events and the current Luminance winner
func (c *PageController) Home(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()
	data := gin.H{}

	latest, err := c.eventService.GetLatest(reqCtx)
	switch {
	case err == nil:
		data["Latest"] = latest
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		c.serverError(ctx, err, "Error loading latest event")
		return
	}

	upcoming, err := c.eventService.Upcoming(reqCtx, homeUpcomingLimit)
	if err != nil {
		c.serverError(ctx, err, "Error loading upcoming events")
		return
	}
	data["Upcoming"] = upcoming

	current, err := c.luminanceService.GetCurrent(reqCtx)
	switch {
	case err == nil:
		data["Luminance"] = current
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		c.serverError(ctx, err, "Error loading current luminance")
		return
	}

	c.render(ctx, http.StatusOK, "home.html", "Home", data, "", "")
}

// About renders the static about page
func (c *PageController) About(ctx *gin.Context) {
	c.render(ctx, http.StatusOK, "about.html", "About", nil, "", "")
}

// Board lists TEAM entries
func (c *PageController) Board(ctx *gin.Context) {
	response, err := c.eventService.List(ctx.Request.Context(), dto.EventFilter{
		Type:     models.EventTypeTeam,
		Page:     1,
		PageSize: helpers.MaxPageSize,
	})
	if err != nil {
		c.serverError(ctx, err, "Error loading board")
		return
	}
	c.render(ctx, http.StatusOK, "board.html", "Board", gin.H{"Teams": response.Items}, "", "")
}

// Membership renders the application form
func (c *PageController) Membership(ctx *gin.Context) {
	c.render(ctx, http.StatusOK, "membership.html", "Membership", nil, "", "")
}

// SubmitMembership handles the application form post
func (c *PageController) SubmitMembership(ctx *gin.Context) {
	var req dto.MemberApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.render(ctx, http.StatusBadRequest, "membership.html", "Membership", nil, "", formError(err))
		return
	}

	if _, err := c.memberService.Apply(ctx.Request.Context(), &req); err != nil {
		status, msg := c.userError(err)
		if status == http.StatusInternalServerError {
			c.serverError(ctx, err, "Error submitting membership application")
			return
		}
		c.render(ctx, status, "membership.html", "Membership", nil, "", msg)
		return
	}

	c.render(ctx, http.StatusOK, "membership.html", "Membership", nil,
		"Thank you! Your application was received and will be reviewed.", "")
}

// Events lists events, optionally filtered by type
func (c *PageController) Events(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	filter := dto.EventFilter{Page: page, PageSize: pageSize}
	if t := models.EventType(strings.ToUpper(ctx.Query("type"))); t.IsValid() {
		filter.Type = t
	}

	response, err := c.eventService.List(ctx.Request.Context(), filter)
	if err != nil {
		c.serverError(ctx, err, "Error loading events")
		return
	}
	c.render(ctx, http.StatusOK, "events.html", "Events", gin.H{
		"Events":     response.Items,
		"Pagination": response.Pagination,
	}, "", "")
}

// Event renders one event with its registration form
func (c *PageController) Event(ctx *gin.Context) {
	c.renderEvent(ctx, http.StatusOK, "", "")
}

func (c *PageController) renderEvent(ctx *gin.Context, status int, notice, errMsg string) {
	event, ok := c.loadEvent(ctx)
	if !ok {
		return
	}
	c.render(ctx, status, "event.html", event.Title, gin.H{"Event": event}, notice, errMsg)
}

func (c *PageController) loadEvent(ctx *gin.Context) (*models.Event, bool) {
	id, err := parsePositiveID(ctx.Param("id"))
	if err != nil {
		c.NotFound(ctx)
		return nil, false
	}
	event, err := c.eventService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			c.NotFound(ctx)
		} else {
			c.serverError(ctx, err, "Error loading event")
		}
		return nil, false
	}
	return event, true
}

type eventRegistrationForm struct {
	MemberEmail string `form:"memberEmail"`
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Workplace   string `form:"workplace"`
}

// RegisterForEvent handles the event page registration form
func (c *PageController) RegisterForEvent(ctx *gin.Context) {
	event, ok := c.loadEvent(ctx)
	if !ok {
		return
	}

	var form eventRegistrationForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderEvent(ctx, http.StatusBadRequest, "", "Invalid form submission")
		return
	}

	req := &dto.EventRegistrationRequest{MemberEmail: strings.TrimSpace(form.MemberEmail)}
	if req.MemberEmail == "" {
		req.NonMember = &dto.NonMemberRequest{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Workplace: form.Workplace,
		}
	}

	if _, err := c.registrations.Register(ctx.Request.Context(), event.ID, req); err != nil {
		status, msg := c.userError(err)
		if status == http.StatusInternalServerError {
			c.serverError(ctx, err, "Error registering for event")
			return
		}
		c.render(ctx, status, "event.html", event.Title, gin.H{"Event": event}, "", msg)
		return
	}

	c.render(ctx, http.StatusOK, "event.html", event.Title, gin.H{"Event": event},
		"You are registered. See you there!", "")
}

// Documents lists published documents
func (c *PageController) Documents(ctx *gin.Context) {
	docs, err := c.documentService.List(ctx.Request.Context())
	if err != nil {
		c.serverError(ctx, err, "Error loading documents")
		return
	}
	c.render(ctx, http.StatusOK, "documents.html", "Documents", gin.H{"Documents": docs}, "", "")
}

// Awards shows the Luminance winners and the nomination form
func (c *PageController) Awards(ctx *gin.Context) {
	c.renderAwards(ctx, http.StatusOK, "", "")
}

func (c *PageController) renderAwards(ctx *gin.Context, status int, notice, errMsg string) {
	winners, err := c.luminanceService.List(ctx.Request.Context())
	if err != nil {
		c.serverError(ctx, err, "Error loading luminance winners")
		return
	}
	data := gin.H{"Winners": winners}
	for i := range winners {
		if winners[i].IsCurrent {
			data["Current"] = &winners[i]
			break
		}
	}
	c.render(ctx, status, "awards.html", "Awards", data, notice, errMsg)
}

type nominationForm struct {
	NominatorName  string   `form:"nominatorName"`
	NominatorEmail string   `form:"nominatorEmail"`
	NominatorPhone string   `form:"nominatorPhone"`
	Nominees       []string `form:"nominees"`
	Category       string   `form:"category"`
	Reason         string   `form:"reason"`
}

// SubmitNomination handles the awards page nomination form. Blank optional
// nominee fields are dropped before validation.
func (c *PageController) SubmitNomination(ctx *gin.Context) {
	var form nominationForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderAwards(ctx, http.StatusBadRequest, "", "Invalid form submission")
		return
	}

	nominees := make([]string, 0, len(form.Nominees))
	for _, n := range form.Nominees {
		if strings.TrimSpace(n) != "" {
			nominees = append(nominees, n)
		}
	}

	_, err := c.nominationService.Submit(ctx.Request.Context(), &dto.NominationRequest{
		NominatorName:  form.NominatorName,
		NominatorEmail: form.NominatorEmail,
		NominatorPhone: form.NominatorPhone,
		Nominees:       nominees,
		Category:       form.Category,
		Reason:         form.Reason,
	})
	if err != nil {
		status, msg := c.userError(err)
		if status == http.StatusInternalServerError {
			c.serverError(ctx, err, "Error submitting nomination")
			return
		}
		c.renderAwards(ctx, status, "", msg)
		return
	}

	c.renderAwards(ctx, http.StatusOK, "Thank you! Your nomination was received.", "")
}

// userError converts service errors into a status and a message safe to show
func (c *PageController) userError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, messageOr(err, "Please check the form and try again.")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, messageOr(err, "Not found.")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, messageOr(err, "This was already submitted.")
	}
	return http.StatusInternalServerError, ""
}

func messageOr(err error, fallback string) string {
	if msg := apperrors.Message(err); msg != "" {
		return msg
	}
	return fallback
}

func formError(err error) string {
	detail := dto.HandleValidationError(err)
	if fields, ok := detail.Details.([]dto.FieldError); ok && len(fields) > 0 {
		return fields[0].Message
	}
	return "Please check the form and try again."
}
