package services

import (
	"context"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/email"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// MemberService handles membership applications and member administration
type MemberService interface {
	Apply(ctx context.Context, req *dto.MemberApplicationRequest) (*models.Member, error)
	List(ctx context.Context, filter dto.MemberFilter) (*dto.PaginatedResponse, error)
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	Update(ctx context.Context, id int64, req *dto.UpdateMemberRequest) (*models.Member, error)
	UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) (*models.Member, error)
	// Delete removes the member and all of its event registrations
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (map[models.MemberStatus]int64, error)
}

type memberServiceImpl struct {
	memberRepo *repositories.MemberRepository
	notifier   email.Notifier
	logger     zerolog.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo *repositories.MemberRepository, notifier email.Notifier, logger zerolog.Logger) MemberService {
	return &memberServiceImpl{
		memberRepo: memberRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *memberServiceImpl) Apply(ctx context.Context, req *dto.MemberApplicationRequest) (*models.Member, error) {
	member := &models.Member{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         req.Email,
		Phone:         strings.TrimSpace(req.Phone),
		Workplace:     strings.TrimSpace(req.Workplace),
		Position:      strings.TrimSpace(req.Position),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Status:        models.MemberStatusPending,
	}
	if member.FirstName == "" || member.LastName == "" {
		return nil, apperrors.NewValidationError("first and last name are required")
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("memberId", member.ID).Msg("Membership application received")
	return member, nil
}

func (s *memberServiceImpl) List(ctx context.Context, filter dto.MemberFilter) (*dto.PaginatedResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid member status")
	}
	filter.Page, filter.PageSize = helpers.NormalizePage(filter.Page, filter.PageSize)

	members, total, err := s.memberRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.Member{}
	}
	return &dto.PaginatedResponse{
		Items:      members,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *memberServiceImpl) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.FirstName = strings.TrimSpace(req.FirstName)
	member.LastName = strings.TrimSpace(req.LastName)
	member.Email = req.Email
	member.Phone = strings.TrimSpace(req.Phone)
	member.Workplace = strings.TrimSpace(req.Workplace)
	member.Position = strings.TrimSpace(req.Position)
	member.LicenseNumber = strings.TrimSpace(req.LicenseNumber)

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(ctx, id)
}

// UpdateStatus changes the approval state. Moving to APPROVED or DENIED sends
// the applicant a notification; delivery failures are logged only.
func (s *memberServiceImpl) UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) (*models.Member, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid member status")
	}

	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := member.Status

	if err := s.memberRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	member.Status = status

	s.logger.Info().Int64("memberId", id).Str("from", string(previous)).Str("to", string(status)).Msg("Member status changed")

	if status != previous && s.notifier != nil {
		var decision email.Decision
		switch status {
		case models.MemberStatusApproved:
			decision = email.DecisionApproved
		case models.MemberStatusDenied:
			decision = email.DecisionDenied
		}
		if decision != "" {
			to := email.Recipient{Email: member.Email, Name: member.FullName()}
			if err := s.notifier.SendMembershipDecision(ctx, to, decision); err != nil {
				s.logger.Error().Err(err).Int64("memberId", id).Msg("Failed to send membership decision email")
			}
		}
	}

	return member, nil
}

func (s *memberServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("memberId", id).Msg("Member deleted")
	return nil
}

func (s *memberServiceImpl) Stats(ctx context.Context) (map[models.MemberStatus]int64, error) {
	counts, err := s.memberRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, st := range []models.MemberStatus{models.MemberStatusPending, models.MemberStatusApproved, models.MemberStatusDenied} {
		if _, ok := counts[st]; !ok {
			counts[st] = 0
		}
	}
	return counts, nil
}
