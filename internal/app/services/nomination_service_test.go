package services

import (
	"context"
	"testing"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNominees(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{"single", []string{" Ann "}, []string{"Ann"}, false},
		{"three distinct", []string{"Ann", "Bo", "Cy"}, []string{"Ann", "Bo", "Cy"}, false},
		{"none", nil, nil, true},
		{"too many", []string{"A", "B", "C", "D"}, nil, true},
		{"blank entry", []string{"Ann", "  "}, nil, true},
		{"case-insensitive duplicate", []string{"Ann", "ann "}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeNominees(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNominationService_SubmitAndReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.svc.Nomination.Submit(ctx, &dto.NominationRequest{
		NominatorName:  "Dana",
		NominatorEmail: " Dana@Example.org",
		Nominees:       []string{"Ann Lee", "Bo Diaz"},
		Category:       "Excellence in Practice",
		Reason:         "Mentored every new graduate on the ward.",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.org", n.NominatorEmail)
	assert.Equal(t, models.NominationStatusPending, n.Status)

	got, err := f.svc.Nomination.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Bo Diaz"}, got.Nominees)

	approved, err := f.svc.Nomination.UpdateStatus(ctx, n.ID, models.NominationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.NominationStatusApproved, approved.Status)

	_, err = f.svc.Nomination.UpdateStatus(ctx, n.ID, "MAYBE")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	page, err := f.svc.Nomination.List(ctx, dto.NominationFilter{Status: models.NominationStatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Pagination.TotalItems)

	require.NoError(t, f.svc.Nomination.Delete(ctx, n.ID))
	_, err = f.svc.Nomination.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, apperrors.ErrNominationNotFound)
}

func TestNominationService_SubmitRequiresFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Nomination.Submit(context.Background(), &dto.NominationRequest{
		NominatorName: "Dana",
		Nominees:      []string{"Ann"},
		Category:      " ",
		Reason:        "x",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
