package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backr/internal/auth"
	"backr/internal/security"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func walletEcho() (http.Handler, *string) {
	var seen string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = WalletFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), &seen
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	next, seen := walletEcho()
	h := AuthMiddleware(testSecret, security.Nop())(next)

	token, err := auth.IssueSessionToken("0xAbCd000000000000000000000000000000000001", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0xabcd000000000000000000000000000000000001", *seen)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	next, _ := walletEcho()
	h := AuthMiddleware(testSecret, security.Nop())(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadScheme(t *testing.T) {
	next, _ := walletEcho()
	h := AuthMiddleware(testSecret, security.Nop())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadTokenRecordsEvent(t *testing.T) {
	seclog := security.NewRingLog(4, zerolog.Nop())
	next, _ := walletEcho()
	h := AuthMiddleware(testSecret, seclog)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	events := seclog.Recent(1)
	require.Len(t, events, 1)
	assert.Equal(t, security.KindAuthFailure, events[0].Kind)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	next, seen := walletEcho()
	h := OptionalAuthMiddleware(testSecret)(next)

	// Anonymous requests pass straight through.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seen)

	// A valid token still identifies the viewer.
	token, err := auth.IssueSessionToken("0xabcd000000000000000000000000000000000001", testSecret, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "0xabcd000000000000000000000000000000000001", *seen)

	// An invalid token degrades to anonymous rather than failing.
	*seen = "sentinel"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seen)
}
