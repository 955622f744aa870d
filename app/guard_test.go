package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminChecker struct {
	admins map[string]bool
	err    error
}

func (f fakeAdminChecker) IsAdmin(_ context.Context, userId string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userId], nil
}

func testApp() *App {
	return &App{
		JwtKey: []byte("test-secret"),
		Logger: zerolog.Nop(),
	}
}

func signTestToken(t *testing.T, key []byte, userId string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func requestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	gc, _ := gin.CreateTestContext(w)
	gc.Request = httptest.NewRequest(method, target, nil)
	return gc, w
}

func TestAuthenticate(t *testing.T) {
	a := testApp()

	t.Run("bearer header", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		token := signTestToken(t, a.JwtKey, "user-1", time.Now().Add(time.Hour))
		gc.Request.Header.Set("Authorization", "Bearer "+token)

		claims, ok := a.Authenticate(gc)
		require.True(t, ok)
		assert.Equal(t, "user-1", claims.UserId)
	})

	t.Run("cookie", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		token := signTestToken(t, a.JwtKey, "user-2", time.Now().Add(time.Hour))
		gc.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: token})

		claims, ok := a.Authenticate(gc)
		require.True(t, ok)
		assert.Equal(t, "user-2", claims.UserId)
	})

	t.Run("missing token", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		_, ok := a.Authenticate(gc)
		assert.False(t, ok)
	})

	t.Run("expired token", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		token := signTestToken(t, a.JwtKey, "user-1", time.Now().Add(-time.Hour))
		gc.Request.Header.Set("Authorization", "Bearer "+token)

		_, ok := a.Authenticate(gc)
		assert.False(t, ok)
	})

	t.Run("wrong key", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		token := signTestToken(t, []byte("other-secret"), "user-1", time.Now().Add(time.Hour))
		gc.Request.Header.Set("Authorization", "Bearer "+token)

		_, ok := a.Authenticate(gc)
		assert.False(t, ok)
	})

	t.Run("malformed header", func(t *testing.T) {
		gc, _ := requestContext(http.MethodGet, "/api/admin/services")
		gc.Request.Header.Set("Authorization", "Token abc")

		_, ok := a.Authenticate(gc)
		assert.False(t, ok)
	})
}

func TestAuthorize(t *testing.T) {
	a := testApp()
	checker := fakeAdminChecker{admins: map[string]bool{"admin-1": true, "user-1": false}}

	tests := []struct {
		name    string
		userId  string
		token   bool
		want    AuthOutcome
		checker AdminChecker
	}{
		{"no token", "", false, AuthUnauthorized, checker},
		{"non-admin", "user-1", true, AuthForbidden, checker},
		{"admin", "admin-1", true, AuthOk, checker},
		{"lookup failure", "admin-1", true, AuthUnauthorized, fakeAdminChecker{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, _ := requestContext(http.MethodGet, "/api/admin/services")
			if tt.token {
				token := signTestToken(t, a.JwtKey, tt.userId, time.Now().Add(time.Hour))
				gc.Request.Header.Set("Authorization", "Bearer "+token)
			}

			result := a.Authorize(gc, tt.checker)
			assert.Equal(t, tt.want, result.Outcome)
			if tt.want != AuthUnauthorized {
				assert.Equal(t, tt.userId, result.UserId)
			}
		})
	}
}

func TestRequireAdminMiddleware(t *testing.T) {
	a := testApp()
	checker := fakeAdminChecker{admins: map[string]bool{"admin-1": true, "user-1": false}}

	router := gin.New()
	router.GET("/guarded", a.RequireAdmin(checker), func(gc *gin.Context) {
		userId, _ := CurrentUserID(gc)
		gc.JSON(http.StatusOK, gin.H{"user": userId})
	})

	t.Run("no token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin is 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, a.JwtKey, "user-1", time.Now().Add(time.Hour)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, a.JwtKey, "admin-1", time.Now().Add(time.Hour)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin-1")
	})
}

func TestRequireAuthMiddleware(t *testing.T) {
	a := testApp()

	router := gin.New()
	router.GET("/me", a.RequireAuth(), func(gc *gin.Context) {
		userId, ok := CurrentUserID(gc)
		if !ok {
			gc.String(http.StatusInternalServerError, "no user in context")
			return
		}
		gc.String(http.StatusOK, userId)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, a.JwtKey, "user-9", time.Now().Add(time.Hour)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-9", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
