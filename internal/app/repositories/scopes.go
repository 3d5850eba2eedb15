package repositories

import (
	"strings"

	"github.com/nursingassoc/website/internal/pkg/helpers"
	"gorm.io/gorm"
)

// paginate applies a 1-based page window to a query
func paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset, limit := helpers.CalculateOffsetLimit(page, size)
		return db.Offset(offset).Limit(limit)
	}
}

// containsAny matches search case-insensitively against any of columns
func containsAny(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		search = strings.ToLower(strings.TrimSpace(search))
		if search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + search + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
