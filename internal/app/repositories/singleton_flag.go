package repositories

import (
	"fmt"

	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/dberrors"
	"gorm.io/gorm"
)

// singletonFlag describes a boolean column that at most one row may have set.
// A partial unique index on the column backs the invariant in the database.
type singletonFlag struct {
	table  string
	column string
}

var (
	latestEventFlag      = singletonFlag{table: "events", column: "is_latest"}
	currentLuminanceFlag = singletonFlag{table: "luminances", column: "is_current"}
)

// lock serializes writers of the flag for the rest of the transaction.
// SQLite already serializes writers, so only Postgres takes the advisory lock.
func (f singletonFlag) lock(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", f.table+"."+f.column).Error
}

// clear unsets the flag on every row except keepID. Pass 0 to clear all rows.
func (f singletonFlag) clear(tx *gorm.DB, keepID int64) error {
	q := tx.Table(f.table).Where(f.column+" = ?", true)
	if keepID > 0 {
		q = q.Where("id <> ?", keepID)
	}
	return q.Update(f.column, false).Error
}

// claim clears the flag elsewhere and sets it on id. tx must be a transaction.
func (f singletonFlag) claim(tx *gorm.DB, id int64) error {
	if err := f.lock(tx); err != nil {
		return fmt.Errorf("lock %s.%s: %w", f.table, f.column, err)
	}
	if err := f.clear(tx, id); err != nil {
		return fmt.Errorf("clear %s.%s: %w", f.table, f.column, err)
	}
	res := tx.Table(f.table).Where("id = ?", id).Update(f.column, true)
	if res.Error != nil {
		return f.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f singletonFlag) translate(err error) error {
	if dberrors.IsDuplicateKeyError(err) {
		return apperrors.ErrSingletonFlagClaimed
	}
	return err
}
