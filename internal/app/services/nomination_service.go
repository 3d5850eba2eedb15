package services

import (
	"context"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

const maxNominees = 3

// NominationService handles award nominations
type NominationService interface {
	Submit(ctx context.Context, req *dto.NominationRequest) (*models.Nomination, error)
	GetByID(ctx context.Context, id int64) (*models.Nomination, error)
	List(ctx context.Context, filter dto.NominationFilter) (*dto.PaginatedResponse, error)
	UpdateStatus(ctx context.Context, id int64, status models.NominationStatus) (*models.Nomination, error)
	Delete(ctx context.Context, id int64) error
}

type nominationServiceImpl struct {
	nominationRepo *repositories.NominationRepository
	logger         zerolog.Logger
}

// NewNominationService creates a new NominationService
func NewNominationService(nominationRepo *repositories.NominationRepository, logger zerolog.Logger) NominationService {
	return &nominationServiceImpl{
		nominationRepo: nominationRepo,
		logger:         logger,
	}
}

// normalizeNominees trims names and rejects empty or repeated ones
func normalizeNominees(names []string) ([]string, error) {
	if len(names) == 0 || len(names) > maxNominees {
		return nil, apperrors.NewValidationError("between 1 and 3 nominees are required")
	}

	seen := make(map[string]bool, len(names))
	nominees := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.NewValidationError("nominee names must not be empty")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, apperrors.NewValidationError("nominee names must be distinct")
		}
		seen[key] = true
		nominees = append(nominees, name)
	}
	return nominees, nil
}

func (s *nominationServiceImpl) Submit(ctx context.Context, req *dto.NominationRequest) (*models.Nomination, error) {
	nominees, err := normalizeNominees(req.Nominees)
	if err != nil {
		return nil, err
	}

	nomination := &models.Nomination{
		NominatorName:  strings.TrimSpace(req.NominatorName),
		NominatorEmail: strings.ToLower(strings.TrimSpace(req.NominatorEmail)),
		NominatorPhone: strings.TrimSpace(req.NominatorPhone),
		Nominees:       nominees,
		Category:       strings.TrimSpace(req.Category),
		Reason:         strings.TrimSpace(req.Reason),
		Status:         models.NominationStatusPending,
	}
	if nomination.NominatorName == "" || nomination.Category == "" || nomination.Reason == "" {
		return nil, apperrors.NewValidationError("nominator name, category and reason are required")
	}

	if err := s.nominationRepo.Create(ctx, nomination); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("nominationId", nomination.ID).Int("nominees", len(nominees)).Msg("Nomination submitted")
	return nomination, nil
}

func (s *nominationServiceImpl) GetByID(ctx context.Context, id int64) (*models.Nomination, error) {
	return s.nominationRepo.GetByID(ctx, id)
}

func (s *nominationServiceImpl) List(ctx context.Context, filter dto.NominationFilter) (*dto.PaginatedResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid nomination status")
	}
	filter.Page, filter.PageSize = helpers.NormalizePage(filter.Page, filter.PageSize)

	nominations, total, err := s.nominationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if nominations == nil {
		nominations = []models.Nomination{}
	}
	return &dto.PaginatedResponse{
		Items:      nominations,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *nominationServiceImpl) UpdateStatus(ctx context.Context, id int64, status models.NominationStatus) (*models.Nomination, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid nomination status")
	}
	if err := s.nominationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("nominationId", id).Str("status", string(status)).Msg("Nomination status changed")
	return s.nominationRepo.GetByID(ctx, id)
}

func (s *nominationServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.nominationRepo.Delete(ctx, id)
}
