package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/dberrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// LuminanceRepository handles database operations for Luminance award winners
type LuminanceRepository struct {
	db *gorm.DB
}

// NewLuminanceRepository creates a new luminance repository
func NewLuminanceRepository(db *gorm.DB) *LuminanceRepository {
	return &LuminanceRepository{
		db: db,
	}
}

// Create inserts a winner, moving the current flag to it when requested
func (r *LuminanceRepository) Create(ctx context.Context, lum *models.Luminance) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if lum.IsCurrent {
			if err := currentLuminanceFlag.lock(tx); err != nil {
				return err
			}
			if err := currentLuminanceFlag.clear(tx, 0); err != nil {
				return err
			}
		}
		return tx.Create(lum).Error
	})
	if err != nil {
		return r.translateWriteError(err, "Error creating luminance", lum.ID)
	}
	return nil
}

// GetByID retrieves a winner by ID
func (r *LuminanceRepository) GetByID(ctx context.Context, id int64) (*models.Luminance, error) {
	var lum models.Luminance
	if err := r.db.WithContext(ctx).First(&lum, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLuminanceNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving luminance")
		return nil, fmt.Errorf("error retrieving luminance: %w", err)
	}
	return &lum, nil
}

// GetCurrent returns the winner flagged as current
func (r *LuminanceRepository) GetCurrent(ctx context.Context) (*models.Luminance, error) {
	var lum models.Luminance
	if err := r.db.WithContext(ctx).Where("is_current = ?", true).First(&lum).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLuminanceNotFound
		}
		logger.Error().Err(err).Msg("Error retrieving current luminance")
		return nil, fmt.Errorf("error retrieving current luminance: %w", err)
	}
	return &lum, nil
}

// List returns all winners, most recent year first
func (r *LuminanceRepository) List(ctx context.Context) ([]models.Luminance, error) {
	var lums []models.Luminance
	if err := r.db.WithContext(ctx).Order("year desc, id desc").Find(&lums).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing luminances")
		return nil, fmt.Errorf("error listing luminances: %w", err)
	}
	return lums, nil
}

// Update saves every editable field, clearing the current flag elsewhere when set
func (r *LuminanceRepository) Update(ctx context.Context, lum *models.Luminance) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if lum.IsCurrent {
			if err := currentLuminanceFlag.lock(tx); err != nil {
				return err
			}
			if err := currentLuminanceFlag.clear(tx, lum.ID); err != nil {
				return err
			}
		}
		res := tx.Model(&models.Luminance{}).Where("id = ?", lum.ID).
			Updates(map[string]interface{}{
				"name":        lum.Name,
				"title":       lum.Title,
				"category":    lum.Category,
				"year":        lum.Year,
				"description": lum.Description,
				"image_url":   lum.ImageURL,
				"is_current":  lum.IsCurrent,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrLuminanceNotFound
		}
		return nil
	})
	if err != nil {
		return r.translateWriteError(err, "Error updating luminance", lum.ID)
	}
	return nil
}

// SetCurrent makes id the only winner flagged as current
func (r *LuminanceRepository) SetCurrent(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return currentLuminanceFlag.claim(tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLuminanceNotFound
		}
		return r.translateWriteError(err, "Error setting current luminance", id)
	}
	return nil
}

// Delete removes a winner
func (r *LuminanceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Luminance{}, id)
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error deleting luminance")
		return fmt.Errorf("error deleting luminance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrLuminanceNotFound
	}
	return nil
}

func (r *LuminanceRepository) translateWriteError(err error, msg string, id int64) error {
	if errors.Is(err, apperrors.ErrLuminanceNotFound) || errors.Is(err, apperrors.ErrSingletonFlagClaimed) {
		return err
	}
	if dberrors.IsDuplicateKeyError(err) {
		return apperrors.ErrSingletonFlagClaimed
	}
	logger.Error().Err(err).Int64("id", id).Msg(msg)
	return fmt.Errorf("error writing luminance: %w", err)
}
