package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(errors.New("boom")))
	assert.False(t, IsDuplicateKeyError(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
}
