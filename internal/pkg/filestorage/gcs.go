package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/nursingassoc/website/internal/pkg/logger"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSConfig configures the Google Cloud Storage backend
type GCSConfig struct {
	Bucket          string
	CredentialsFile string
	Prefix          string
	// PublicBaseURL overrides the default https://storage.googleapis.com/<bucket>
	PublicBaseURL string
}

// GCSStorage stores objects in a Google Cloud Storage bucket through the JSON API
type GCSStorage struct {
	service *storage.Service
	bucket  string
	prefix  string
	baseURL string
}

// NewGCSStorage creates a client from a service account file, or from
// application default credentials when no file is configured.
func NewGCSStorage(ctx context.Context, cfg GCSConfig, opts ...option.ClientOption) (*GCSStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs bucket is required")
	}

	if len(opts) == 0 {
		creds, err := loadCredentials(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load gcs credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = gcsPublicHost + "/" + cfg.Bucket
	}

	return &GCSStorage{
		service: service,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func loadCredentials(ctx context.Context, file string) (*google.Credentials, error) {
	if file == "" {
		return google.FindDefaultCredentials(ctx, storage.DevstorageReadWriteScope)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return google.CredentialsFromJSON(ctx, data, storage.DevstorageReadWriteScope)
}

// Save uploads r as a new object
func (s *GCSStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (*StoredFile, error) {
	key := NewObjectKey(s.prefix, name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	obj, err := s.service.Objects.
		Insert(s.bucket, &storage.Object{Name: key, ContentType: contentType}).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		logger.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("Failed to upload object")
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	logger.Info().Str("bucket", s.bucket).Str("key", key).Uint64("size", obj.Size).Msg("Object uploaded")
	return &StoredFile{
		Key:         key,
		URL:         s.URL(key),
		Size:        int64(obj.Size),
		ContentType: contentType,
	}, nil
}

// Delete removes an object; a 404 from the bucket is treated as success
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}

	err = s.service.Objects.Delete(s.bucket, cleaned).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			logger.Warn().Str("bucket", s.bucket).Str("key", cleaned).Msg("Object to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("bucket", s.bucket).Str("key", cleaned).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Info().Str("bucket", s.bucket).Str("key", cleaned).Msg("Object deleted")
	return nil
}

// URL returns the public object URL
func (s *GCSStorage) URL(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}
