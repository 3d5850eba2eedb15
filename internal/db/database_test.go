package db

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nursingassoc/website/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type note struct {
	ID   int64
	Body string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DBName = filepath.Join(t.TempDir(), "test.db")
	cfg.Database.ConnMaxLifetime = "1h"

	gdb, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, gdb.AutoMigrate(&note{}))
	return gdb
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "oracle"
	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestWithTransaction_CommitAndRollback(t *testing.T) {
	gdb := openSQLite(t)
	ctx := context.Background()

	err := WithTransaction(ctx, gdb, func(tx *gorm.DB) error {
		return tx.Create(&note{Body: "kept"}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTransaction(ctx, gdb, func(tx *gorm.DB) error {
		if err := tx.Create(&note{Body: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, gdb.Model(&note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), 10*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "query failed")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("x"))
	assert.Empty(t, buf.String())
}
