package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shifat0/eshop-server/internal/user"
	"github.com/shifat0/eshop-server/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT("user-1", true)
		require.NoError(t, err)

		var gotID string
		var gotAdmin bool
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = utils.GetUserIDFromContext(r.Context())
			gotAdmin = utils.IsAdminFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "user-1", gotID)
		assert.True(t, gotAdmin)
	})

	t.Run("NoTokenPassesThroughAnonymously", func(t *testing.T) {
		var ok bool
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = utils.GetUserIDFromContext(r.Context())
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})

	t.Run("GarbageTokenIgnored", func(t *testing.T) {
		var ok bool
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = utils.GetUserIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, ok)
	})

	t.Run("CookiePreferred", func(t *testing.T) {
		token, err := user.GenerateJWT("cookie-user", false)
		require.NoError(t, err)

		var gotID string
		h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = utils.GetUserIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "cookie-user", gotID)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireAuth(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), "user-1", false))

		rr := httptest.NewRecorder()
		RequireAuth(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("NonAdmin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), "user-1", false))

		rr := httptest.NewRecorder()
		RequireAdmin(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), "admin-1", true))

		rr := httptest.NewRecorder()
		RequireAdmin(okHandler()).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireAdmin(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(okHandler())

	// The strict tier allows a burst of 5; the sixth immediate request
	// from the same address must be rejected.
	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		lastCode = rr.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
