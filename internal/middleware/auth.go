package middleware

import (
	"context"
	"net/http"
	"strings"

	"backr/internal/auth"
	"backr/internal/security"
)

// contextKey avoids context collisions.
type contextKey string

// WalletContextKey holds the authenticated wallet address (lowercase).
const WalletContextKey = contextKey("wallet")

// WalletFromContext extracts the authenticated wallet address, if any.
func WalletFromContext(ctx context.Context) string {
	addr, _ := ctx.Value(WalletContextKey).(string)
	return addr
}

// AuthMiddleware validates Bearer session tokens and injects the wallet
// address into the request context.
func AuthMiddleware(jwtSecret string, seclog security.Log) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}
			address, err := auth.ValidateSessionToken(parts[1], jwtSecret)
			if err != nil {
				seclog.Record(security.Event{Kind: security.KindAuthFailure, Detail: err.Error()})
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), WalletContextKey, address)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware injects the wallet address when a valid token is
// present but lets anonymous requests through. Read endpoints use it so
// entitlement can be evaluated per viewer.
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if address, err := auth.ValidateSessionToken(parts[1], jwtSecret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), WalletContextKey, address))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
