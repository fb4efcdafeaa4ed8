// Package middleware holds the HTTP middlewares that guard the wallet and admin routes.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bannerearn-wallet/internal/auth"
	"bannerearn-wallet/internal/util"
)

type contextKey string

const claimsContextKey = contextKey("claims")

// TokenParser verifies an access token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate validates the Bearer token and stores its claims in the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if authHeader == "" || tokenString == authHeader || tokenString == "" {
				deny(w, http.StatusUnauthorized, util.ErrUnauthorized)
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				deny(w, http.StatusUnauthorized, util.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose token does not carry the admin flag.
// It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, util.ErrUnauthorized)
			return
		}
		if !claims.IsAdmin {
			deny(w, http.StatusForbidden, util.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the token claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// AccountIDFromContext returns the authenticated account id.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	id, err := claims.AccountID()
	return id, err == nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func deny(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  util.ErrorCode(err),
	})
}
