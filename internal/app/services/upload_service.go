package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// Upload validation errors
var (
	ErrFileRequired        = apperrors.NewCustomError(apperrors.ErrValidationFailed, "file is required")
	ErrFileTooLarge        = apperrors.NewCustomError(apperrors.ErrValidationFailed, "file exceeds the maximum upload size")
	ErrUnsupportedFileType = apperrors.NewCustomError(apperrors.ErrValidationFailed, "unsupported file type")
)

// FileKind restricts which content types an upload may have
type FileKind int

const (
	// FileKindAny accepts images and PDFs
	FileKindAny FileKind = iota
	FileKindImage
	FileKindPDF
)

const contentTypePDF = "application/pdf"

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (k FileKind) allows(contentType string) bool {
	switch k {
	case FileKindImage:
		return imageContentTypes[contentType]
	case FileKindPDF:
		return contentType == contentTypePDF
	default:
		return imageContentTypes[contentType] || contentType == contentTypePDF
	}
}

// UploadService validates uploaded files and hands them to the configured storage
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind FileKind) (*filestorage.StoredFile, error)
	Delete(ctx context.Context, key string) error
}

type uploadServiceImpl struct {
	storage       filestorage.FileStorage
	maxUploadSize int64
	logger        zerolog.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage filestorage.FileStorage, maxUploadSize int64, logger zerolog.Logger) UploadService {
	return &uploadServiceImpl{
		storage:       storage,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Upload sniffs the content type from the first bytes instead of trusting the
// client header.
func (s *uploadServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader, kind FileKind) (*filestorage.StoredFile, error) {
	if file == nil {
		return nil, ErrFileRequired
	}
	if s.maxUploadSize > 0 && file.Size > s.maxUploadSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	reader := bufio.NewReaderSize(src, 512)
	head, err := reader.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("error reading uploaded file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrFileRequired
	}

	contentType := http.DetectContentType(head)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !kind.allows(contentType) {
		s.logger.Warn().Str("filename", file.Filename).Str("contentType", contentType).Msg("Rejected upload")
		return nil, ErrUnsupportedFileType
	}

	stored, err := s.storage.Save(ctx, file.Filename, contentType, reader)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", file.Filename).Msg("Error storing upload")
		return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "could not store file")
	}

	s.logger.Info().Str("key", stored.Key).Int64("size", stored.Size).Msg("File uploaded")
	return stored, nil
}

func (s *uploadServiceImpl) Delete(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("error deleting stored file: %w", err)
	}
	return nil
}
