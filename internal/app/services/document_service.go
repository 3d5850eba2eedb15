package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DocumentService handles the published document library
type DocumentService interface {
	// Create stores file when given, otherwise req.URL must point at the document
	Create(ctx context.Context, req *dto.DocumentRequest, file *multipart.FileHeader) (*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	Update(ctx context.Context, id int64, req *dto.DocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
}

type documentServiceImpl struct {
	documentRepo *repositories.DocumentRepository
	uploads      UploadService
	logger       zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo *repositories.DocumentRepository, uploads UploadService, logger zerolog.Logger) DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		uploads:      uploads,
		logger:       logger,
	}
}

func (s *documentServiceImpl) Create(ctx context.Context, req *dto.DocumentRequest, file *multipart.FileHeader) (*models.Document, error) {
	doc := &models.Document{
		Name:        strings.TrimSpace(req.Name),
		Author:      strings.TrimSpace(req.Author),
		Description: req.Description,
		URL:         strings.TrimSpace(req.URL),
	}
	if doc.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	if file != nil {
		stored, err := s.uploads.Upload(ctx, file, FileKindPDF)
		if err != nil {
			return nil, err
		}
		doc.URL = stored.URL
		doc.StorageKey = stored.Key
		doc.ContentType = stored.ContentType
		doc.Size = stored.Size
	} else if doc.URL == "" {
		return nil, apperrors.NewValidationError("either a file or a url is required")
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if doc.StorageKey != "" {
			s.removeObject(ctx, doc.StorageKey)
		}
		return nil, err
	}

	s.logger.Info().Int64("documentId", doc.ID).Bool("uploaded", doc.StorageKey != "").Msg("Document created")
	return doc, nil
}

func (s *documentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

func (s *documentServiceImpl) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.documentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// Update edits metadata. A new URL detaches the document from its stored object.
func (s *documentServiceImpl) Update(ctx context.Context, id int64, req *dto.DocumentRequest) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	doc.Name = name
	doc.Author = strings.TrimSpace(req.Author)
	doc.Description = req.Description

	var orphanKey string
	if url := strings.TrimSpace(req.URL); url != "" && url != doc.URL {
		orphanKey = doc.StorageKey
		doc.URL = url
		doc.StorageKey = ""
		doc.ContentType = ""
		doc.Size = 0
	}

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	if orphanKey != "" {
		s.removeObject(ctx, orphanKey)
	}
	return doc, nil
}

// Delete removes the row first; a failure to remove the stored object is only logged
func (s *documentServiceImpl) Delete(ctx context.Context, id int64) error {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if doc.StorageKey != "" {
		s.removeObject(ctx, doc.StorageKey)
	}

	s.logger.Info().Int64("documentId", id).Msg("Document deleted")
	return nil
}

func (s *documentServiceImpl) removeObject(ctx context.Context, key string) {
	if err := s.uploads.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to delete stored document")
	}
}
