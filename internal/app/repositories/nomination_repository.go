package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// NominationRepository handles database operations for award nominations
type NominationRepository struct {
	db *gorm.DB
}

// NewNominationRepository creates a new nomination repository
func NewNominationRepository(db *gorm.DB) *NominationRepository {
	return &NominationRepository{
		db: db,
	}
}

// Create inserts a nomination
func (r *NominationRepository) Create(ctx context.Context, nomination *models.Nomination) error {
	if nomination.Status == "" {
		nomination.Status = models.NominationStatusPending
	}
	if err := r.db.WithContext(ctx).Create(nomination).Error; err != nil {
		logger.Error().Err(err).Str("category", nomination.Category).Msg("Error creating nomination")
		return fmt.Errorf("error creating nomination: %w", err)
	}
	return nil
}

// GetByID retrieves a nomination by ID
func (r *NominationRepository) GetByID(ctx context.Context, id int64) (*models.Nomination, error) {
	var nomination models.Nomination
	if err := r.db.WithContext(ctx).First(&nomination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNominationNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving nomination")
		return nil, fmt.Errorf("error retrieving nomination: %w", err)
	}
	return &nomination, nil
}

// List returns a page of nominations matching filter and the total count
func (r *NominationRepository) List(ctx context.Context, filter dto.NominationFilter) ([]models.Nomination, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Nomination{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error().Err(err).Msg("Error counting nominations")
		return nil, 0, fmt.Errorf("error counting nominations: %w", err)
	}

	var nominations []models.Nomination
	err := query.Order("created_at desc, id desc").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Find(&nominations).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error listing nominations")
		return nil, 0, fmt.Errorf("error listing nominations: %w", err)
	}
	return nominations, total, nil
}

// UpdateStatus moves a nomination to status
func (r *NominationRepository) UpdateStatus(ctx context.Context, id int64, status models.NominationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Nomination{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error updating nomination status")
		return fmt.Errorf("error updating nomination: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNominationNotFound
	}
	return nil
}

// Delete removes a nomination
func (r *NominationRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Nomination{}, id)
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error deleting nomination")
		return fmt.Errorf("error deleting nomination: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNominationNotFound
	}
	return nil
}
