package services

import (
	"context"
	"testing"

	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuminanceService_CurrentIsSingleton(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Luminance.GetCurrent(ctx)
	assert.ErrorIs(t, err, apperrors.ErrLuminanceNotFound)

	a, err := f.svc.Luminance.Create(ctx, &dto.LuminanceRequest{Name: "Ann Lee", Year: 2023, IsCurrent: true})
	require.NoError(t, err)
	b, err := f.svc.Luminance.Create(ctx, &dto.LuminanceRequest{Name: "Bo Diaz", Year: 2024, IsCurrent: true})
	require.NoError(t, err)

	current, err := f.svc.Luminance.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, current.ID)

	_, err = f.svc.Luminance.SetCurrent(ctx, a.ID)
	require.NoError(t, err)
	current, err = f.svc.Luminance.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID)

	all, err := f.svc.Luminance.List(ctx)
	require.NoError(t, err)
	currents := 0
	for _, l := range all {
		if l.IsCurrent {
			currents++
		}
	}
	assert.Equal(t, 1, currents)

	_, err = f.svc.Luminance.SetCurrent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrLuminanceNotFound)
}

func TestLuminanceService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Luminance.Create(ctx, &dto.LuminanceRequest{Name: " ", Year: 2024})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = f.svc.Luminance.Create(ctx, &dto.LuminanceRequest{Name: "Ann", Year: 1850})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	lum, err := f.svc.Luminance.Create(ctx, &dto.LuminanceRequest{Name: "Ann", Year: 2024})
	require.NoError(t, err)

	updated, err := f.svc.Luminance.Update(ctx, lum.ID, &dto.LuminanceRequest{Name: "Ann Lee", Title: "RN", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", updated.Name)
	assert.Equal(t, 2025, updated.Year)

	require.NoError(t, f.svc.Luminance.Delete(ctx, lum.ID))
	_, err = f.svc.Luminance.GetByID(ctx, lum.ID)
	assert.ErrorIs(t, err, apperrors.ErrLuminanceNotFound)
}
