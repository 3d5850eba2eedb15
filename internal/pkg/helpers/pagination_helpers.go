package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// NormalizePage clamps a 1-based page and page size into valid ranges.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into an ORM offset and limit.
func CalculateOffsetLimit(page, size int) (offset int, limit int) {
	page, limit = NormalizePage(page, size)
	return (page - 1) * limit, limit
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = NormalizePage(page, size)

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts page and pageSize (or size) from the query string
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}

	sizeStr := c.Query("pageSize")
	if sizeStr == "" {
		sizeStr = c.DefaultQuery("size", strconv.Itoa(DefaultPageSize))
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil {
		size = DefaultPageSize
	}

	return NormalizePage(page, size)
}
