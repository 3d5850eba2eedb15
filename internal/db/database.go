package db

import (
	"context"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/config"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultMaxOpenConns    = 20
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = time.Hour
	defaultTxTimeout       = 30 * time.Second
)

// Open connects to the configured database through GORM and verifies the connection
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.DSN != "" {
			logger.Info().Msg("db: connecting using DSN")
		} else {
			logger.Info().
				Str("host", cfg.Database.Host).
				Str("port", cfg.Database.Port).
				Str("dbname", cfg.Database.DBName).
				Msg("db: connecting to postgres")
		}
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		logger.Info().Str("path", cfg.DSN()).Msg("db: opening sqlite database")
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger.WithComponent("gorm"), 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	maxOpen := cfg.Database.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.Database.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil || lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}

	if cfg.Database.Driver == "sqlite" {
		// one writer at a time; avoids "database is locked" under concurrent requests
		maxOpen, maxIdle = 1, 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("db: connected")
	return gormDB, nil
}

// Close releases the underlying connection pool
func Close(gormDB *gorm.DB) error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(tx *gorm.DB) error

// WithTransaction runs fn within a transaction. The transaction is rolled back
// when fn returns an error or panics.
func WithTransaction(ctx context.Context, gormDB *gorm.DB, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	return gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}
