package filestorage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("", "Annual Report.PDF")
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "/")

	key = NewObjectKey("/documents/", "a.png")
	assert.True(t, strings.HasPrefix(key, "documents/"))

	assert.NotEqual(t, NewObjectKey("", "a.png"), NewObjectKey("", "a.png"))
}

func TestCleanKey(t *testing.T) {
	got, err := cleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", got)

	_, err = cleanKey("  ")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = cleanKey("/")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads/", "docs")
	require.NoError(t, err)

	ctx := context.Background()
	stored, err := ls.Save(ctx, "minutes.pdf", "application/pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)

	assert.Equal(t, int64(len("%PDF-1.4 test")), stored.Size)
	assert.Equal(t, "application/pdf", stored.ContentType)
	assert.True(t, strings.HasPrefix(stored.Key, "docs/"))
	assert.Equal(t, "/uploads/"+stored.Key, stored.URL)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	require.NoError(t, ls.Delete(ctx, stored.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, ls.Delete(ctx, stored.Key))
}

func TestLocalStorage_SaveCanceled(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ls.Save(ctx, "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func newFakeGCS(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var uploads int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = io.Copy(io.Discard, r.Body)
			atomic.AddInt32(&uploads, 1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"obj","bucket":"assoc-media","size":"11"}`))
		case http.MethodDelete:
			if strings.Contains(r.URL.Path, "missing") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":{"code":404,"message":"No such object"}}`))
				return
			}
			if strings.Contains(r.URL.Path, "broken") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &uploads
}

func TestGCSStorage(t *testing.T) {
	srv, uploads := newFakeGCS(t)
	ctx := context.Background()

	gcs, err := NewGCSStorage(ctx, GCSConfig{Bucket: "assoc-media", Prefix: "uploads"},
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	stored, err := gcs.Save(ctx, "photo.JPG", "image/jpeg", strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(uploads))
	assert.Equal(t, int64(11), stored.Size)
	assert.True(t, strings.HasPrefix(stored.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(stored.Key, ".jpg"))
	assert.Equal(t, "https://storage.googleapis.com/assoc-media/"+stored.Key, stored.URL)

	assert.NoError(t, gcs.Delete(ctx, stored.Key))
	assert.NoError(t, gcs.Delete(ctx, "uploads/missing.jpg"))
	assert.Error(t, gcs.Delete(ctx, "uploads/broken.jpg"))
}

func TestGCSStorage_RequiresBucket(t *testing.T) {
	_, err := NewGCSStorage(context.Background(), GCSConfig{}, option.WithoutAuthentication())
	assert.Error(t, err)
}

func TestGCSStorage_URLEscapes(t *testing.T) {
	gcs := &GCSStorage{baseURL: "https://cdn.example.org/media"}
	assert.Equal(t, "https://cdn.example.org/media/a%20b/c.pdf", gcs.URL("a b/c.pdf"))
}
