package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/app/models/dto"
	"github.com/nursingassoc/website/internal/pkg/apperrors"
	"github.com/nursingassoc/website/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
}

func token(t *testing.T, jwt *auth.JWTService, role models.RoleType) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(&models.User{ID: 7, Email: "staff@example.org", RoleType: role})
	require.NoError(t, err)
	return tok
}

func decodeError(t *testing.T, body *bytes.Buffer) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	jwt := newJWT()
	m := NewAuthMiddleware(jwt)

	router := gin.New()
	router.GET("/staff", m.JWTAuth(), m.RoleRequired(models.RoleAdmin, models.RoleEditor), func(c *gin.Context) {
		id, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	router.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		setup  func(r *http.Request)
		status int
		code   dto.ErrorCode
	}{
		{"no credentials", "/staff", func(*http.Request) {}, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"malformed header", "/staff", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"garbage token", "/staff", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"editor bearer", "/staff", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, jwt, models.RoleEditor))
		}, http.StatusOK, ""},
		{"session cookie", "/staff", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token(t, jwt, models.RoleAdmin)})
		}, http.StatusOK, ""},
		{"editor on admin route", "/admin", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, jwt, models.RoleEditor))
		}, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"admin on admin route", "/admin", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, jwt, models.RoleAdmin))
		}, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, w.Body).Error.Code)
			}
		})
	}
}

func TestAuthMiddleware_UserIDInContext(t *testing.T) {
	jwt := newJWT()
	m := NewAuthMiddleware(jwt)
	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		id, ok := GetUserID(c)
		c.String(http.StatusOK, fmt.Sprintf("%d %v", id, ok))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, jwt, models.RoleEditor))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "7 true", w.Body.String())
}

func TestRoleRequired_WithoutJWTAuth(t *testing.T) {
	m := NewAuthMiddleware(newJWT())
	router := gin.New()
	router.GET("/x", m.RoleRequired(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "event not found"},
		{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
		{apperrors.NewValidationError("name is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "name is required"},
		{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeConflict, "already registered for this event"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
		{apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "could not store file"), http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "could not store file"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrMemberNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "member not found"},
		{errors.New("database exploded"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, StatusFor(tt.err))
			resp := decodeError(t, w.Body)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

type phoneBody struct {
	Phone    string   `json:"phone" binding:"omitempty,phone"`
	Nominees []string `json:"nominees" binding:"required,min=1,dive,notblank"`
}

func TestBindRequest(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var body phoneBody
		if !BindRequest(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, post(`{"phone":"+1 (555) 010-2000","nominees":["Ann"]}`).Code)

	w := post(`{"phone":"call me","nominees":["Ann"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "phone", resp.Error.Field)

	w = post(`{"nominees":["Ann","  "]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not be blank")

	w = post(`{"nominees":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, w.Body).Error.Code)
}

func TestMaxBodySize(t *testing.T) {
	router := gin.New()
	router.POST("/", MaxBodySize(8), func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/events/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", m.Handler())

	for _, path := range []string{"/events/1", "/events/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/events/:id",status="200"} 2`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "http_request_duration_seconds_bucket")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(zerolog.New(&buf)))
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?page=2", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"path":"/ok?page=2"`)
	assert.Contains(t, lines[1], `"level":"error"`)
	assert.Contains(t, lines[1], `"status":500`)
}
