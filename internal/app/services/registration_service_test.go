package services

import (
	"context"
	"strings"
	"testing"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(t *testing.T, f *fixture, title string, finished bool) *models.Event {
	t.Helper()
	req := eventReq(title, "2030-01-15")
	req.IsFinished = finished
	event, err := f.svc.Event.Create(context.Background(), req)
	require.NoError(t, err)
	return event
}

func seedMember(t *testing.T, f *fixture, emailAddr string, status models.MemberStatus) *models.Member {
	t.Helper()
	ctx := context.Background()
	member, err := f.svc.Member.Apply(ctx, &dto.MemberApplicationRequest{FirstName: "Ann", LastName: "Lee", Email: emailAddr})
	require.NoError(t, err)
	if status != models.MemberStatusPending {
		member, err = f.svc.Member.UpdateStatus(ctx, member.ID, status)
		require.NoError(t, err)
	}
	return member
}

func nonMemberReq() *dto.NonMemberRequest {
	return &dto.NonMemberRequest{FirstName: "Bo", LastName: "Diaz", Email: "bo@example.org", Workplace: "City Hospital"}
}

func TestRegistrationService_NonMemberIsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Open Day", false)

	reg, err := f.svc.Registration.Register(ctx, event.ID, &dto.EventRegistrationRequest{NonMember: nonMemberReq()})
	require.NoError(t, err)
	assert.True(t, reg.IsPending)
	require.NotNil(t, reg.NonMemberID)
	assert.Nil(t, reg.MemberID)
	assert.Equal(t, "City Hospital", reg.NonMember.Workplace)

	regs, err := f.svc.Registration.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	approved, err := f.svc.Registration.Approve(ctx, reg.ID)
	require.NoError(t, err)
	assert.False(t, approved.IsPending)
}

func TestRegistrationService_NonMemberRejectedForClosedOrMissingEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Past Gala", true)

	_, err := f.svc.Registration.RegisterNonMember(ctx, event.ID, nonMemberReq())
	assert.ErrorIs(t, err, ErrEventFinished)

	_, err = f.svc.Registration.RegisterNonMember(ctx, 999, nonMemberReq())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	page, err := f.svc.Registration.ListNonMembers(ctx, dto.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestRegistrationService_MemberFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Symposium", false)
	member := seedMember(t, f, "ann@example.org", models.MemberStatusApproved)

	reg, err := f.svc.Registration.Register(ctx, event.ID, &dto.EventRegistrationRequest{MemberEmail: " ANN@example.org "})
	require.NoError(t, err)
	assert.False(t, reg.IsPending)
	require.NotNil(t, reg.MemberID)
	assert.Equal(t, member.ID, *reg.MemberID)

	_, err = f.svc.Registration.RegisterMember(ctx, event.ID, "ann@example.org")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegistrationService_MemberErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Symposium", false)

	_, err := f.svc.Registration.RegisterMember(ctx, event.ID, "ghost@example.org")
	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
	assert.Equal(t, "no member found with email ghost@example.org", apperrors.Message(err))

	_, err = f.svc.Registration.RegisterMember(ctx, event.ID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegistrationService_MemberRegistersRegardlessOfStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Symposium", false)

	for _, status := range []models.MemberStatus{models.MemberStatusPending, models.MemberStatusDenied} {
		member := seedMember(t, f, strings.ToLower(string(status))+"@example.org", status)

		reg, err := f.svc.Registration.RegisterMember(ctx, event.ID, member.Email)
		require.NoError(t, err, status)
		assert.False(t, reg.IsPending)
		require.NotNil(t, reg.MemberID)
		assert.Equal(t, member.ID, *reg.MemberID)
	}

	regs, err := f.svc.Registration.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestRegistrationService_RegisterNeedsExactlyOneKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Symposium", false)

	_, err := f.svc.Registration.Register(ctx, event.ID, &dto.EventRegistrationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.Registration.Register(ctx, event.ID, &dto.EventRegistrationRequest{
		MemberEmail: "ann@example.org",
		NonMember:   nonMemberReq(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegistrationService_RemoveAndDeleteNonMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := seedEvent(t, f, "Symposium", false)

	reg, err := f.svc.Registration.RegisterNonMember(ctx, event.ID, nonMemberReq())
	require.NoError(t, err)

	require.NoError(t, f.svc.Registration.Remove(ctx, reg.ID))
	assert.ErrorIs(t, f.svc.Registration.Remove(ctx, reg.ID), apperrors.ErrEventUserNotFound)

	require.NoError(t, f.svc.Registration.DeleteNonMember(ctx, *reg.NonMemberID))
	assert.ErrorIs(t, f.svc.Registration.DeleteNonMember(ctx, *reg.NonMemberID), apperrors.ErrNonMemberNotFound)

	_, err = f.svc.Registration.ListByEvent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
