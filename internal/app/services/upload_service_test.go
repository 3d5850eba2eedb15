package services

import (
	"context"
	"testing"

	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_SniffsContentType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stored, err := f.svc.Upload.Upload(ctx, fileHeader(t, "photo.jpg", pngBytes), FileKindImage)
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Equal(t, int64(len(pngBytes)), stored.Size)
	assert.True(t, f.storage.has(stored.Key))

	_, err = f.svc.Upload.Upload(ctx, fileHeader(t, "fake.pdf", []byte("just some text")), FileKindAny)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = f.svc.Upload.Upload(ctx, fileHeader(t, "doc.pdf", pdfBytes), FileKindImage)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	stored, err = f.svc.Upload.Upload(ctx, fileHeader(t, "doc.pdf", pdfBytes), FileKindAny)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", stored.ContentType)
}

func TestUploadService_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upload.Upload(ctx, nil, FileKindAny)
	assert.ErrorIs(t, err, ErrFileRequired)

	_, err = f.svc.Upload.Upload(ctx, fileHeader(t, "empty.png", nil), FileKindAny)
	assert.ErrorIs(t, err, ErrFileRequired)

	small := NewUploadService(f.storage, 8, f.svc.Upload.(*uploadServiceImpl).logger)
	_, err = small.Upload(ctx, fileHeader(t, "doc.pdf", pdfBytes), FileKindPDF)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	f.storage.saveErr = errBoom
	_, err = f.svc.Upload.Upload(ctx, fileHeader(t, "doc.pdf", pdfBytes), FileKindPDF)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}

func TestDocumentService_UploadedFileLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Document.Create(ctx, &dto.DocumentRequest{Name: " Bylaws ", Author: "Board"}, fileHeader(t, "bylaws.pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "Bylaws", doc.Name)
	assert.NotEmpty(t, doc.StorageKey)
	assert.Equal(t, f.storage.URL(doc.StorageKey), doc.URL)
	key := doc.StorageKey

	updated, err := f.svc.Document.Update(ctx, doc.ID, &dto.DocumentRequest{Name: "Bylaws 2025", URL: "https://example.org/bylaws.pdf"})
	require.NoError(t, err)
	assert.Empty(t, updated.StorageKey)
	assert.Equal(t, "https://example.org/bylaws.pdf", updated.URL)
	assert.False(t, f.storage.has(key))

	require.NoError(t, f.svc.Document.Delete(ctx, doc.ID))
	_, err = f.svc.Document.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestDocumentService_CreateNeedsFileOrURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Document.Create(ctx, &dto.DocumentRequest{Name: "Minutes"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.Document.Create(ctx, &dto.DocumentRequest{Name: "Minutes"}, fileHeader(t, "minutes.png", pngBytes))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	doc, err := f.svc.Document.Create(ctx, &dto.DocumentRequest{Name: "Minutes", URL: "https://example.org/m.pdf"}, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.StorageKey)

	docs, err := f.svc.Document.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentService_DeleteSurvivesStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Document.Create(ctx, &dto.DocumentRequest{Name: "Report"}, fileHeader(t, "report.pdf", pdfBytes))
	require.NoError(t, err)

	f.storage.deleteErr = errBoom
	require.NoError(t, f.svc.Document.Delete(ctx, doc.ID))
	assert.Equal(t, []string{doc.StorageKey}, f.storage.deleted)

	_, err = f.svc.Document.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
	assert.ErrorIs(t, f.svc.Document.Delete(ctx, doc.ID), apperrors.ErrDocumentNotFound)
}
