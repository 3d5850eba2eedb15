package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/dberrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// EventRepository handles database operations for events (news)
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// WithTx returns a repository bound to tx
func (r *EventRepository) WithTx(tx *gorm.DB) *EventRepository {
	return &EventRepository{db: tx}
}

// Create inserts an event. When event.IsLatest is set, the flag is moved to
// the new row in the same transaction.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wantLatest := event.IsLatest
		if wantLatest {
			if err := latestEventFlag.lock(tx); err != nil {
				return err
			}
			if err := latestEventFlag.clear(tx, 0); err != nil {
				return err
			}
		}
		return tx.Create(event).Error
	})
	if err != nil {
		return r.translateWriteError(ctx, err, "Error creating event", event)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving event")
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return &event, nil
}

// GetByTitle retrieves an event by its exact title
func (r *EventRepository) GetByTitle(ctx context.Context, title string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Str("title", title).Msg("Error retrieving event by title")
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return &event, nil
}

// GetLatest returns the event flagged as latest
func (r *EventRepository) GetLatest(ctx context.Context) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("is_latest = ?", true).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Msg("Error retrieving latest event")
		return nil, fmt.Errorf("error retrieving latest event: %w", err)
	}
	return &event, nil
}

// ListAll returns every event, newest date first
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("date desc, id desc").Find(&events).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// List returns a page of events matching filter and the total match count
func (r *EventRepository) List(ctx context.Context, filter dto.EventFilter) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Finished != nil {
		query = query.Where("is_finished = ?", *filter.Finished)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error().Err(err).Msg("Error counting events")
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	var events []models.Event
	err := query.Order("date desc, id desc").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Find(&events).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	return events, total, nil
}

// Upcoming returns unfinished events dated at or after from, soonest first
func (r *EventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("is_finished = ? AND date >= ?", false, from).
		Order("date asc, id asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error listing upcoming events")
		return nil, fmt.Errorf("error listing upcoming events: %w", err)
	}
	return events, nil
}

// Update saves every editable field. When event.IsLatest is set the flag is
// cleared on all other rows in the same transaction.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if event.IsLatest {
			if err := latestEventFlag.lock(tx); err != nil {
				return err
			}
			if err := latestEventFlag.clear(tx, event.ID); err != nil {
				return err
			}
		}
		res := tx.Model(&models.Event{}).Where("id = ?", event.ID).
			Updates(map[string]interface{}{
				"title":       event.Title,
				"description": event.Description,
				"location":    event.Location,
				"date":        event.Date,
				"start_time":  event.StartTime,
				"end_time":    event.EndTime,
				"type":        event.Type,
				"image_url":   event.ImageURL,
				"is_latest":   event.IsLatest,
				"is_finished": event.IsFinished,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEventNotFound
		}
		return nil
	})
	if err != nil {
		return r.translateWriteError(ctx, err, "Error updating event", event)
	}
	return nil
}

// SetLatest makes id the only event flagged as latest
func (r *EventRepository) SetLatest(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return latestEventFlag.claim(tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEventNotFound
		}
		return r.translateWriteError(ctx, err, "Error setting latest event", &models.Event{ID: id, IsLatest: true})
	}
	return nil
}

// SetFinished sets the finished flag of an event
func (r *EventRepository) SetFinished(ctx context.Context, id int64, finished bool) error {
	res := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_finished": finished,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error updating event finished flag")
		return fmt.Errorf("error updating event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event and its registrations
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventUser{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEventNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting event")
		return fmt.Errorf("error deleting event: %w", err)
	}
	return nil
}

// translateWriteError maps a failed write of event to a domain error. Translated
// duplicate-key errors do not name the index, so a conflict on a flagged write
// is attributed to the title only when another row actually holds it.
func (r *EventRepository) translateWriteError(ctx context.Context, err error, msg string, event *models.Event) error {
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound), errors.Is(err, apperrors.ErrSingletonFlagClaimed):
		return err
	case dberrors.IsDuplicateKeyError(err):
		if event.IsLatest && !r.titleTaken(ctx, event) {
			return apperrors.ErrSingletonFlagClaimed
		}
		return apperrors.ErrEventTitleExists
	}
	logger.Error().Err(err).Int64("id", event.ID).Msg(msg)
	return fmt.Errorf("error writing event: %w", err)
}

// titleTaken reports whether a row other than event uses event's title.
// Lookup failures count as taken.
func (r *EventRepository) titleTaken(ctx context.Context, event *models.Event) bool {
	if event.Title == "" {
		return false
	}
	q := r.db.WithContext(ctx).Model(&models.Event{}).Where("title = ?", event.Title)
	if event.ID > 0 {
		q = q.Where("id <> ?", event.ID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return true
	}
	return n > 0
}
