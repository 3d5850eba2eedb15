package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/nursingassoc/website/internal/app/repositories"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/nursingassoc/website/internal/pkg/email"
	"github.com/nursingassoc/website/internal/pkg/filestorage"
	"github.com/nursingassoc/website/internal/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
)

type memoryStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	saveErr   error
	deleteErr error
	deleted   []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Save(_ context.Context, name, contentType string, r io.Reader) (*filestorage.StoredFile, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := filestorage.NewObjectKey("test", name)
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return &filestorage.StoredFile{Key: key, URL: m.URL(key), Size: int64(len(data)), ContentType: contentType}, nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) URL(key string) string {
	return "https://files.example.org/" + key
}

func (m *memoryStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type sentDecision struct {
	to       email.Recipient
	decision email.Decision
}

type recordingNotifier struct {
	sent []sentDecision
	err  error
}

func (n *recordingNotifier) SendMembershipDecision(_ context.Context, to email.Recipient, decision email.Decision) error {
	n.sent = append(n.sent, sentDecision{to: to, decision: decision})
	return n.err
}

type fixture struct {
	svc      *Services
	repos    *repositories.Repositories
	storage  *memoryStorage
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.SetupSQLiteTestDB(t)
	repos := repositories.NewRepositories(gdb)
	storage := newMemoryStorage()
	notifier := &recordingNotifier{}

	svc := NewServices(Deps{
		DB:    gdb,
		Repos: repos,
		JWT: auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "test",
		}),
		Storage:       storage,
		Notifier:      notifier,
		MaxUploadSize: 1 << 20,
		Logger:        zerolog.Nop(),
	})
	return &fixture{svc: svc, repos: repos, storage: storage, notifier: notifier}
}

// fileHeader builds a multipart file header the way gin hands it to handlers
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

var errBoom = errors.New("boom")
