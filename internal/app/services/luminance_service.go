package services

import (
	"context"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// LuminanceService handles Luminance award winners
type LuminanceService interface {
	Create(ctx context.Context, req *dto.LuminanceRequest) (*models.Luminance, error)
	GetByID(ctx context.Context, id int64) (*models.Luminance, error)
	// GetCurrent returns ErrLuminanceNotFound when no winner is flagged
	GetCurrent(ctx context.Context) (*models.Luminance, error)
	List(ctx context.Context) ([]models.Luminance, error)
	Update(ctx context.Context, id int64, req *dto.LuminanceRequest) (*models.Luminance, error)
	SetCurrent(ctx context.Context, id int64) (*models.Luminance, error)
	Delete(ctx context.Context, id int64) error
}

type luminanceServiceImpl struct {
	luminanceRepo *repositories.LuminanceRepository
	logger        zerolog.Logger
}

// NewLuminanceService creates a new LuminanceService
func NewLuminanceService(luminanceRepo *repositories.LuminanceRepository, logger zerolog.Logger) LuminanceService {
	return &luminanceServiceImpl{
		luminanceRepo: luminanceRepo,
		logger:        logger,
	}
}

func applyLuminance(lum *models.Luminance, req *dto.LuminanceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.NewValidationError("name is required")
	}
	if req.Year < 1900 || req.Year > 3000 {
		return apperrors.NewValidationError("year is out of range")
	}
	lum.Name = name
	lum.Title = strings.TrimSpace(req.Title)
	lum.Category = strings.TrimSpace(req.Category)
	lum.Year = req.Year
	lum.Description = req.Description
	lum.ImageURL = strings.TrimSpace(req.ImageURL)
	lum.IsCurrent = req.IsCurrent
	return nil
}

func (s *luminanceServiceImpl) Create(ctx context.Context, req *dto.LuminanceRequest) (*models.Luminance, error) {
	lum := &models.Luminance{}
	if err := applyLuminance(lum, req); err != nil {
		return nil, err
	}
	if err := s.luminanceRepo.Create(ctx, lum); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("luminanceId", lum.ID).Bool("isCurrent", lum.IsCurrent).Msg("Luminance winner created")
	return lum, nil
}

func (s *luminanceServiceImpl) GetByID(ctx context.Context, id int64) (*models.Luminance, error) {
	return s.luminanceRepo.GetByID(ctx, id)
}

func (s *luminanceServiceImpl) GetCurrent(ctx context.Context) (*models.Luminance, error) {
	return s.luminanceRepo.GetCurrent(ctx)
}

func (s *luminanceServiceImpl) List(ctx context.Context) ([]models.Luminance, error) {
	lums, err := s.luminanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if lums == nil {
		lums = []models.Luminance{}
	}
	return lums, nil
}

func (s *luminanceServiceImpl) Update(ctx context.Context, id int64, req *dto.LuminanceRequest) (*models.Luminance, error) {
	lum, err := s.luminanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyLuminance(lum, req); err != nil {
		return nil, err
	}
	if err := s.luminanceRepo.Update(ctx, lum); err != nil {
		return nil, err
	}
	return s.luminanceRepo.GetByID(ctx, id)
}

func (s *luminanceServiceImpl) SetCurrent(ctx context.Context, id int64) (*models.Luminance, error) {
	if err := s.luminanceRepo.SetCurrent(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("luminanceId", id).Msg("Current luminance winner changed")
	return s.luminanceRepo.GetByID(ctx, id)
}

func (s *luminanceServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.luminanceRepo.Delete(ctx, id)
}
