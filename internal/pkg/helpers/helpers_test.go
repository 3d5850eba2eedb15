package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-14":                time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		"2025-03-14T09:30":          time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		"2025-03-14T09:30:15Z":      time.Date(2025, 3, 14, 9, 30, 15, 0, time.UTC),
		" 2025-03-14 18:00 ":        time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC),
		"2025-03-14T09:30:15+02:00": time.Date(2025, 3, 14, 7, 30, 15, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: want %s got %s", in, want, got)
	}

	for _, bad := range []string{"", "tomorrow", "14/03/2025", "2025-13-01"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = ParseClock("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	info = NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, 40, offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/x?page=4&pageSize=25", nil)

	page, size := ParsePaginationParams(c)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, size)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?page=abc&pageSize=500", nil)
	page, size = ParsePaginationParams(c)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}
