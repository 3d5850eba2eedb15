package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// SchemaMigration records a data migration that has been applied
type SchemaMigration struct {
	Version   string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Step is a versioned data migration that runs once, inside a transaction
type Step struct {
	Version string
	Apply   func(tx *gorm.DB) error
}

// Migrator manages database migrations
type Migrator struct {
	db    *gorm.DB
	steps []Step
}

// NewMigrator creates a new migrator with the built-in data steps
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:    db,
		steps: defaultSteps(),
	}
}

// AddStep registers an additional data step. Steps run in registration order.
func (m *Migrator) AddStep(step Step) {
	m.steps = append(m.steps, step)
}

// Migrate brings the schema up to date for every model, including the partial
// unique indexes behind the latest-event and current-award flags, then applies
// pending data steps.
func (m *Migrator) Migrate(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info().Int("models", len(models.AllModels())).Msg("Schema migrated")

	for _, step := range m.steps {
		applied, err := m.isApplied(ctx, step.Version)
		if err != nil {
			return err
		}
		if applied {
			logger.Debug().Str("version", step.Version).Msg("Migration already applied, skipping")
			continue
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := step.Apply(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: step.Version, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", step.Version, err)
		}
		logger.Info().Str("version", step.Version).Msg("Migration applied")
	}

	return nil
}

// Applied returns the versions recorded in schema_migrations
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	var versions []string
	err := m.db.WithContext(ctx).Model(&SchemaMigration{}).Order("version").Pluck("version", &versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	return versions, nil
}

func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&SchemaMigration{}).Where("version = ?", version).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

func defaultSteps() []Step {
	return []Step{
		{
			// emails are compared case-insensitively by lowercasing on write
			Version: "001_lowercase_emails",
			Apply: func(tx *gorm.DB) error {
				for _, table := range []string{"users", "members", "non_members"} {
					if err := tx.Exec("UPDATE " + table + " SET email = LOWER(TRIM(email)) WHERE email <> LOWER(TRIM(email))").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
