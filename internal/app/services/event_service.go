package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// Event validation errors. The messages are part of the public news API.
var (
	ErrInvalidEventType = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid news type")
	ErrInvalidEventDate = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid date format")
	ErrInvalidEventTime = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid time format, expected HH:MM")
	ErrEventTitleEmpty  = apperrors.NewCustomError(apperrors.ErrValidationFailed, "Title is required")
)

// EventService handles events, which the public site also calls news
type EventService interface {
	Create(ctx context.Context, req *dto.EventRequest) (*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetByTitle(ctx context.Context, title string) (*models.Event, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	List(ctx context.Context, filter dto.EventFilter) (*dto.PaginatedResponse, error)
	Upcoming(ctx context.Context, limit int) ([]models.Event, error)
	// GetLatest returns ErrEventNotFound when no event is flagged
	GetLatest(ctx context.Context) (*models.Event, error)
	Update(ctx context.Context, id int64, req *dto.EventRequest) (*models.Event, error)
	SetLatest(ctx context.Context, id int64) (*models.Event, error)
	SetFinished(ctx context.Context, id int64, finished bool) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
}

type eventServiceImpl struct {
	eventRepo *repositories.EventRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo *repositories.EventRepository, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// buildEvent validates req and copies it onto event. Type is checked before
// date so a request with both wrong reports the type.
func buildEvent(event *models.Event, req *dto.EventRequest) error {
	if !req.Type.IsValid() {
		return ErrInvalidEventType
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return ErrInvalidEventDate
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ErrEventTitleEmpty
	}

	start, err := helpers.ParseClock(req.StartTime)
	if err != nil {
		return ErrInvalidEventTime
	}
	end, err := helpers.ParseClock(req.EndTime)
	if err != nil {
		return ErrInvalidEventTime
	}
	if start != "" && end != "" && end < start {
		return apperrors.NewValidationError("end time must not be before start time")
	}

	event.Title = title
	event.Description = req.Description
	event.Location = strings.TrimSpace(req.Location)
	event.Date = date
	event.StartTime = start
	event.EndTime = end
	event.Type = req.Type
	event.ImageURL = strings.TrimSpace(req.ImageURL)
	event.IsLatest = req.IsLatest
	event.IsFinished = req.IsFinished
	return nil
}

func (s *eventServiceImpl) Create(ctx context.Context, req *dto.EventRequest) (*models.Event, error) {
	event := &models.Event{}
	if err := buildEvent(event, req); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventId", event.ID).Bool("isLatest", event.IsLatest).Msg("Event created")
	return event, nil
}

func (s *eventServiceImpl) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// GetByTitle maps a missing event to the news not-found error
func (s *eventServiceImpl) GetByTitle(ctx context.Context, title string) (*models.Event, error) {
	event, err := s.eventRepo.GetByTitle(ctx, title)
	if errors.Is(err, apperrors.ErrEventNotFound) {
		return nil, apperrors.ErrNewsNotFound
	}
	return event, err
}

func (s *eventServiceImpl) ListAll(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (s *eventServiceImpl) List(ctx context.Context, filter dto.EventFilter) (*dto.PaginatedResponse, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, ErrInvalidEventType
	}
	filter.Page, filter.PageSize = helpers.NormalizePage(filter.Page, filter.PageSize)

	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return &dto.PaginatedResponse{
		Items:      events,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// Upcoming lists unfinished events from the start of today onward
func (s *eventServiceImpl) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = helpers.DefaultPageSize
	}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.eventRepo.Upcoming(ctx, startOfDay, limit)
}

func (s *eventServiceImpl) GetLatest(ctx context.Context) (*models.Event, error) {
	return s.eventRepo.GetLatest(ctx)
}

func (s *eventServiceImpl) Update(ctx context.Context, id int64, req *dto.EventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := buildEvent(event, req); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventId", id).Msg("Event updated")
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) SetLatest(ctx context.Context, id int64) (*models.Event, error) {
	if err := s.eventRepo.SetLatest(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("eventId", id).Msg("Latest event changed")
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) SetFinished(ctx context.Context, id int64, finished bool) (*models.Event, error) {
	if err := s.eventRepo.SetFinished(ctx, id, finished); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("eventId", id).Msg("Event deleted")
	return nil
}
