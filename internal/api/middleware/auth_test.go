// internal/api/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bannerearn-wallet/internal/auth"
	"bannerearn-wallet/internal/domain"
)

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenIssuer("middleware-secret", time.Hour)
	userToken, err := tokens.Issue(&domain.Account{ID: 42})
	require.NoError(t, err)

	var seenID int64
	protected := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = AccountIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"ValidToken", "Bearer " + userToken, http.StatusNoContent},
		{"MissingHeader", "", http.StatusUnauthorized},
		{"WrongScheme", "Basic " + userToken, http.StatusUnauthorized},
		{"Garbage", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenID = 0
			req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, int64(42), seenID)
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"Unauthorized"`)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req = req.WithContext(WithClaims(req.Context(), &auth.Claims{IsAdmin: true}))
		rec := httptest.NewRecorder()

		RequireAdmin(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RegularUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req = req.WithContext(WithClaims(req.Context(), &auth.Claims{IsAdmin: false}))
		rec := httptest.NewRecorder()

		RequireAdmin(ok).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()

		RequireAdmin(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
