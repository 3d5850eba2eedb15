package services

import (
	"context"
	"testing"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventReq(title, date string) *dto.EventRequest {
	return &dto.EventRequest{Title: title, Date: date, Type: models.EventTypeEvent}
}

func TestEventService_CreateValidationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.EventRequest
		want error
	}{
		{"bad type wins over bad date", &dto.EventRequest{Title: "A", Date: "nope", Type: "PARTY"}, ErrInvalidEventType},
		{"bad date wins over empty title", &dto.EventRequest{Date: "12/05/2025", Type: models.EventTypeEvent}, ErrInvalidEventDate},
		{"blank title", &dto.EventRequest{Title: "   ", Date: "2025-05-12", Type: models.EventTypeTeam}, ErrEventTitleEmpty},
		{"bad clock", &dto.EventRequest{Title: "A", Date: "2025-05-12", Type: models.EventTypeEvent, StartTime: "25:00"}, ErrInvalidEventTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Event.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	req := eventReq("Gala", "2025-05-12")
	req.StartTime, req.EndTime = "18:00", "17:00"
	_, err := f.svc.Event.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventService_CreateAndLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := eventReq("  Spring Conference ", "2025-04-01T09:30")
	req.StartTime, req.EndTime = "9:30", "17:00"
	event, err := f.svc.Event.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Spring Conference", event.Title)
	assert.Equal(t, "09:30", event.StartTime)

	got, err := f.svc.Event.GetByTitle(ctx, "Spring Conference")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = f.svc.Event.GetByTitle(ctx, "Missing")
	assert.ErrorIs(t, err, apperrors.ErrNewsNotFound)
	assert.Equal(t, "News not found", apperrors.Message(err))

	_, err = f.svc.Event.Create(ctx, eventReq("Spring Conference", "2025-06-01"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	all, err := f.svc.Event.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEventService_ListAllEmptyIsNotNil(t *testing.T) {
	f := newFixture(t)
	all, err := f.svc.Event.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestEventService_LatestIsSingleton(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Event.GetLatest(ctx)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	first := eventReq("First", "2025-01-10")
	first.IsLatest = true
	a, err := f.svc.Event.Create(ctx, first)
	require.NoError(t, err)

	second := eventReq("Second", "2025-02-10")
	second.IsLatest = true
	b, err := f.svc.Event.Create(ctx, second)
	require.NoError(t, err)

	latest, err := f.svc.Event.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, latest.ID)

	got, err := f.svc.Event.SetLatest(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLatest)

	reloaded, err := f.svc.Event.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsLatest)

	_, err = f.svc.Event.SetLatest(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventService_UpdateAndFinished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	event, err := f.svc.Event.Create(ctx, eventReq("Workshop", "2025-03-03"))
	require.NoError(t, err)

	upd := eventReq("Workshop II", "2025-03-04")
	upd.Type = models.EventTypeRecognition
	updated, err := f.svc.Event.Update(ctx, event.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Workshop II", updated.Title)
	assert.Equal(t, models.EventTypeRecognition, updated.Type)

	finished, err := f.svc.Event.SetFinished(ctx, event.ID, true)
	require.NoError(t, err)
	assert.True(t, finished.IsFinished)

	_, err = f.svc.Event.Update(ctx, 999, upd)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	require.NoError(t, f.svc.Event.Delete(ctx, event.ID))
	assert.ErrorIs(t, f.svc.Event.Delete(ctx, event.ID), apperrors.ErrEventNotFound)
}

func TestEventService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, r := range []*dto.EventRequest{
		eventReq("E1", "2025-01-01"),
		{Title: "T1", Date: "2025-01-02", Type: models.EventTypeTeam},
		{Title: "T2", Date: "2025-01-03", Type: models.EventTypeTeam},
	} {
		_, err := f.svc.Event.Create(ctx, r)
		require.NoError(t, err)
	}

	page, err := f.svc.Event.List(ctx, dto.EventFilter{Type: models.EventTypeTeam, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Len(t, page.Items, 1)

	_, err = f.svc.Event.List(ctx, dto.EventFilter{Type: "OTHER"})
	assert.ErrorIs(t, err, ErrInvalidEventType)
}

func TestEventService_UpcomingStartsAtMidnight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Event.(*eventServiceImpl).now = func() time.Time {
		return time.Date(2025, 5, 12, 15, 0, 0, 0, time.UTC)
	}

	_, err := f.svc.Event.Create(ctx, eventReq("Yesterday", "2025-05-11"))
	require.NoError(t, err)
	_, err = f.svc.Event.Create(ctx, eventReq("This morning", "2025-05-12T08:00"))
	require.NoError(t, err)
	_, err = f.svc.Event.Create(ctx, eventReq("Next week", "2025-05-19"))
	require.NoError(t, err)
	done := eventReq("Done", "2025-05-20")
	done.IsFinished = true
	_, err = f.svc.Event.Create(ctx, done)
	require.NoError(t, err)

	upcoming, err := f.svc.Event.Upcoming(ctx, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "This morning", upcoming[0].Title)
	assert.Equal(t, "Next week", upcoming[1].Title)

	limited, err := f.svc.Event.Upcoming(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
