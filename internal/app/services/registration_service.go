package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/db"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/helpers"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrEventFinished is returned when registering for an event that has ended
var ErrEventFinished = apperrors.NewCustomError(apperrors.ErrValidationFailed, "registration is closed for this event")

// RegistrationService handles event sign-ups for members and non-members
type RegistrationService interface {
	// Register dispatches to RegisterMember or RegisterNonMember depending on req
	Register(ctx context.Context, eventID int64, req *dto.EventRegistrationRequest) (*models.EventUser, error)
	RegisterNonMember(ctx context.Context, eventID int64, req *dto.NonMemberRequest) (*models.EventUser, error)
	RegisterMember(ctx context.Context, eventID int64, email string) (*models.EventUser, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.EventUser, error)
	Approve(ctx context.Context, registrationID int64) (*models.EventUser, error)
	Remove(ctx context.Context, registrationID int64) error
	ListNonMembers(ctx context.Context, params dto.ListParams) (*dto.PaginatedResponse, error)
	DeleteNonMember(ctx context.Context, id int64) error
}

type registrationServiceImpl struct {
	db            *gorm.DB
	eventRepo     *repositories.EventRepository
	memberRepo    *repositories.MemberRepository
	nonMemberRepo *repositories.NonMemberRepository
	eventUserRepo *repositories.EventUserRepository
	logger        zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(gdb *gorm.DB, repos *repositories.Repositories, logger zerolog.Logger) RegistrationService {
	return &registrationServiceImpl{
		db:            gdb,
		eventRepo:     repos.EventRepository,
		memberRepo:    repos.MemberRepository,
		nonMemberRepo: repos.NonMemberRepository,
		eventUserRepo: repos.EventUserRepository,
		logger:        logger,
	}
}

func (s *registrationServiceImpl) Register(ctx context.Context, eventID int64, req *dto.EventRegistrationRequest) (*models.EventUser, error) {
	hasMember := strings.TrimSpace(req.MemberEmail) != ""
	hasNonMember := req.NonMember != nil
	switch {
	case hasMember && hasNonMember:
		return nil, apperrors.NewValidationError("provide either memberEmail or nonMember, not both")
	case hasMember:
		return s.RegisterMember(ctx, eventID, req.MemberEmail)
	case hasNonMember:
		return s.RegisterNonMember(ctx, eventID, req.NonMember)
	default:
		return nil, apperrors.NewValidationError("memberEmail or nonMember is required")
	}
}

func (s *registrationServiceImpl) openEvent(ctx context.Context, eventRepo *repositories.EventRepository, eventID int64) error {
	event, err := eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.IsFinished {
		return ErrEventFinished
	}
	return nil
}

// RegisterNonMember creates the attendee and its pending registration in one transaction
func (s *registrationServiceImpl) RegisterNonMember(ctx context.Context, eventID int64, req *dto.NonMemberRequest) (*models.EventUser, error) {
	nonMember := &models.NonMember{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Phone:     strings.TrimSpace(req.Phone),
		Workplace: strings.TrimSpace(req.Workplace),
	}
	if nonMember.FirstName == "" || nonMember.LastName == "" || strings.TrimSpace(nonMember.Email) == "" {
		return nil, apperrors.NewValidationError("first name, last name and email are required")
	}

	var registration *models.EventUser
	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.openEvent(ctx, s.eventRepo.WithTx(tx), eventID); err != nil {
			return err
		}
		if err := s.nonMemberRepo.WithTx(tx).Create(ctx, nonMember); err != nil {
			return err
		}
		registration = &models.EventUser{
			EventID:     eventID,
			NonMemberID: &nonMember.ID,
			IsPending:   true,
		}
		return s.eventUserRepo.WithTx(tx).Create(ctx, registration)
	})
	if err != nil {
		return nil, err
	}

	registration.NonMember = nonMember
	s.logger.Info().Int64("eventId", eventID).Int64("nonMemberId", nonMember.ID).Msg("Non-member registered for event")
	return registration, nil
}

// RegisterMember registers an approved member by email; the registration is confirmed immediately
func (s *registrationServiceImpl) RegisterMember(ctx context.Context, eventID int64, email string) (*models.EventUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.NewValidationError("member email is required")
	}

	var registration *models.EventUser
	var member *models.Member
	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.openEvent(ctx, s.eventRepo.WithTx(tx), eventID); err != nil {
			return err
		}

		var err error
		member, err = s.memberRepo.WithTx(tx).GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, apperrors.ErrMemberNotFound) {
				return apperrors.NewCustomError(apperrors.ErrMemberNotFound, fmt.Sprintf("no member found with email %s", email))
			}
			return err
		}
		eventUsers := s.eventUserRepo.WithTx(tx)
		exists, err := eventUsers.ExistsForMember(ctx, eventID, member.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrAlreadyRegistered
		}

		registration = &models.EventUser{
			EventID:   eventID,
			MemberID:  &member.ID,
			IsPending: false,
		}
		return eventUsers.Create(ctx, registration)
	})
	if err != nil {
		return nil, err
	}

	registration.Member = member
	s.logger.Info().Int64("eventId", eventID).Int64("memberId", member.ID).Msg("Member registered for event")
	return registration, nil
}

func (s *registrationServiceImpl) ListByEvent(ctx context.Context, eventID int64) ([]models.EventUser, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	regs, err := s.eventUserRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []models.EventUser{}
	}
	return regs, nil
}

func (s *registrationServiceImpl) Approve(ctx context.Context, registrationID int64) (*models.EventUser, error) {
	if err := s.eventUserRepo.Approve(ctx, registrationID); err != nil {
		return nil, err
	}
	return s.eventUserRepo.GetByID(ctx, registrationID)
}

func (s *registrationServiceImpl) Remove(ctx context.Context, registrationID int64) error {
	return s.eventUserRepo.Delete(ctx, registrationID)
}

func (s *registrationServiceImpl) ListNonMembers(ctx context.Context, params dto.ListParams) (*dto.PaginatedResponse, error) {
	params.Page, params.PageSize = helpers.NormalizePage(params.Page, params.PageSize)
	nonMembers, total, err := s.nonMemberRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if nonMembers == nil {
		nonMembers = []models.NonMember{}
	}
	return &dto.PaginatedResponse{
		Items:      nonMembers,
		Pagination: helpers.NewPaginationInfo(total, params.Page, params.PageSize),
	}, nil
}

func (s *registrationServiceImpl) DeleteNonMember(ctx context.Context, id int64) error {
	return s.nonMemberRepo.Delete(ctx, id)
}
