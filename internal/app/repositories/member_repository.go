package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/dberrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// MemberRepository handles database operations for members
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

// WithTx returns a repository bound to tx
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

// Create inserts a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if member.Status == "" {
		member.Status = models.MemberStatusPending
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", member.Email).Msg("Error creating member")
		return fmt.Errorf("error creating member: %w", err)
	}
	return nil
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving member")
		return nil, fmt.Errorf("error retrieving member: %w", err)
	}
	return &member, nil
}

// GetByEmail retrieves a member by email (case-insensitive)
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error retrieving member by email")
		return nil, fmt.Errorf("error retrieving member: %w", err)
	}
	return &member, nil
}

// List returns a page of members matching filter and the total match count
func (r *MemberRepository) List(ctx context.Context, filter dto.MemberFilter) ([]models.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Scopes(containsAny(filter.Search, "first_name", "last_name", "email", "workplace"))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error().Err(err).Msg("Error counting members")
		return nil, 0, fmt.Errorf("error counting members: %w", err)
	}

	var members []models.Member
	err := query.Order("created_at desc, id desc").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Find(&members).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error listing members")
		return nil, 0, fmt.Errorf("error listing members: %w", err)
	}
	return members, total, nil
}

// CountByStatus returns the number of members per status
func (r *MemberRepository) CountByStatus(ctx context.Context) (map[models.MemberStatus]int64, error) {
	var rows []struct {
		Status models.MemberStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error counting members by status")
		return nil, fmt.Errorf("error counting members: %w", err)
	}

	counts := make(map[models.MemberStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Update saves the editable member fields
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	res := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"first_name":     member.FirstName,
			"last_name":      member.LastName,
			"email":          member.Email,
			"phone":          member.Phone,
			"workplace":      member.Workplace,
			"position":       member.Position,
			"license_number": member.LicenseNumber,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		if dberrors.IsDuplicateKeyError(res.Error) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(res.Error).Int64("id", member.ID).Msg("Error updating member")
		return fmt.Errorf("error updating member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// UpdateStatus sets the approval state of a member
func (r *MemberRepository) UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error updating member status")
		return fmt.Errorf("error updating member status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Delete removes a member together with its event registrations
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.EventUser{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Member{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrMemberNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting member")
		return fmt.Errorf("error deleting member: %w", err)
	}
	return nil
}
