package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/dberrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// EventUserRepository handles database operations for event registrations
type EventUserRepository struct {
	db *gorm.DB
}

// NewEventUserRepository creates a new event registration repository
func NewEventUserRepository(db *gorm.DB) *EventUserRepository {
	return &EventUserRepository{
		db: db,
	}
}

// WithTx returns a repository bound to tx
func (r *EventUserRepository) WithTx(tx *gorm.DB) *EventUserRepository {
	return &EventUserRepository{db: tx}
}

// Create inserts a registration
func (r *EventUserRepository) Create(ctx context.Context, eventUser *models.EventUser) error {
	if (eventUser.MemberID == nil) == (eventUser.NonMemberID == nil) {
		return apperrors.NewValidationError("registration must reference exactly one of member or non-member")
	}
	if err := r.db.WithContext(ctx).Create(eventUser).Error; err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrAlreadyRegistered
		}
		logger.Error().Err(err).Int64("eventId", eventUser.EventID).Msg("Error creating event registration")
		return fmt.Errorf("error creating event registration: %w", err)
	}
	return nil
}

// GetByID retrieves a registration with its member or non-member
func (r *EventUserRepository) GetByID(ctx context.Context, id int64) (*models.EventUser, error) {
	var eventUser models.EventUser
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("NonMember").
		First(&eventUser, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventUserNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving event registration")
		return nil, fmt.Errorf("error retrieving event registration: %w", err)
	}
	return &eventUser, nil
}

// ExistsForMember reports whether memberID is already registered for eventID
func (r *EventUserRepository) ExistsForMember(ctx context.Context, eventID, memberID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventUser{}).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		Count(&count).Error
	if err != nil {
		logger.Error().Err(err).Int64("eventId", eventID).Int64("memberId", memberID).Msg("Error checking registration")
		return false, fmt.Errorf("error checking registration: %w", err)
	}
	return count > 0, nil
}

// ListByEvent returns all registrations of an event with attendee details
func (r *EventUserRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.EventUser, error) {
	var eventUsers []models.EventUser
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("NonMember").
		Where("event_id = ?", eventID).
		Order("created_at asc, id asc").
		Find(&eventUsers).Error
	if err != nil {
		logger.Error().Err(err).Int64("eventId", eventID).Msg("Error listing event registrations")
		return nil, fmt.Errorf("error listing event registrations: %w", err)
	}
	return eventUsers, nil
}

// CountByEvent returns the number of registrations of an event
func (r *EventUserRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventUser{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		logger.Error().Err(err).Int64("eventId", eventID).Msg("Error counting event registrations")
		return 0, fmt.Errorf("error counting event registrations: %w", err)
	}
	return count, nil
}

// Approve clears the pending flag of a registration
func (r *EventUserRepository) Approve(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&models.EventUser{}).Where("id = ?", id).Update("is_pending", false)
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error approving event registration")
		return fmt.Errorf("error approving event registration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEventUserNotFound
	}
	return nil
}

// Delete removes a registration
func (r *EventUserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.EventUser{}, id)
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error deleting event registration")
		return fmt.Errorf("error deleting event registration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEventUserNotFound
	}
	return nil
}
