package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// NonMemberRepository handles database operations for non-member attendees
type NonMemberRepository struct {
	db *gorm.DB
}

// NewNonMemberRepository creates a new non-member repository
func NewNonMemberRepository(db *gorm.DB) *NonMemberRepository {
	return &NonMemberRepository{
		db: db,
	}
}

// WithTx returns a repository bound to tx
func (r *NonMemberRepository) WithTx(tx *gorm.DB) *NonMemberRepository {
	return &NonMemberRepository{db: tx}
}

// Create inserts a non-member
func (r *NonMemberRepository) Create(ctx context.Context, nonMember *models.NonMember) error {
	nonMember.Email = strings.ToLower(strings.TrimSpace(nonMember.Email))
	if err := r.db.WithContext(ctx).Create(nonMember).Error; err != nil {
		logger.Error().Err(err).Str("email", nonMember.Email).Msg("Error creating non-member")
		return fmt.Errorf("error creating non-member: %w", err)
	}
	return nil
}

// GetByID retrieves a non-member by ID
func (r *NonMemberRepository) GetByID(ctx context.Context, id int64) (*models.NonMember, error) {
	var nonMember models.NonMember
	if err := r.db.WithContext(ctx).First(&nonMember, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNonMemberNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving non-member")
		return nil, fmt.Errorf("error retrieving non-member: %w", err)
	}
	return &nonMember, nil
}

// List returns a page of non-members, newest first, with the total count
func (r *NonMemberRepository) List(ctx context.Context, params dto.ListParams) ([]models.NonMember, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NonMember{}).
		Scopes(containsAny(params.Search, "first_name", "last_name", "email"))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error().Err(err).Msg("Error counting non-members")
		return nil, 0, fmt.Errorf("error counting non-members: %w", err)
	}

	var nonMembers []models.NonMember
	err := query.Order("created_at desc, id desc").
		Scopes(paginate(params.Page, params.PageSize)).
		Find(&nonMembers).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error listing non-members")
		return nil, 0, fmt.Errorf("error listing non-members: %w", err)
	}
	return nonMembers, total, nil
}

// Delete removes a non-member and its registrations
func (r *NonMemberRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("non_member_id = ?", id).Delete(&models.EventUser{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.NonMember{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNonMemberNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNonMemberNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting non-member")
		return fmt.Errorf("error deleting non-member: %w", err)
	}
	return nil
}
