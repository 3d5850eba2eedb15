package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/logger"
	"gorm.io/gorm"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

// Create inserts a document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		logger.Error().Err(err).Str("name", doc.Name).Msg("Error creating document")
		return fmt.Errorf("error creating document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error retrieving document")
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	return &doc, nil
}

// List returns all documents, newest first
func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&docs).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing documents")
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return docs, nil
}

// Update saves document metadata and location
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	res := r.db.WithContext(ctx).Model(&models.Document{}).Where("id = ?", doc.ID).
		Updates(map[string]interface{}{
			"name":         doc.Name,
			"author":       doc.Author,
			"description":  doc.Description,
			"url":          doc.URL,
			"storage_key":  doc.StorageKey,
			"content_type": doc.ContentType,
			"size":         doc.Size,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", doc.ID).Msg("Error updating document")
		return fmt.Errorf("error updating document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Document{}, id)
	if res.Error != nil {
		logger.Error().Err(res.Error).Int64("id", id).Msg("Error deleting document")
		return fmt.Errorf("error deleting document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}
