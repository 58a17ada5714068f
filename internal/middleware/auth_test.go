package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apiwat-s/screenscout-api/internal/auth"
)

func newGuardedHandler(t *testing.T, issuer auth.TokenIssuer) http.Handler {
	t.Helper()

	return Authenticator(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)

		w.Header().Set("X-User-ID", claims.UserID)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthenticator_ValidToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue("user-123", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newGuardedHandler(t, issuer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-123", rec.Header().Get("X-User-ID"))
}

func TestAuthenticator_MissingHeader(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newGuardedHandler(t, issuer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestAuthenticator_MalformedHeader(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		newGuardedHandler(t, issuer).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	expired, err := auth.NewTokenIssuer("test-secret", -time.Second).Issue("user-123", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()

	newGuardedHandler(t, issuer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_ForeignToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	foreign, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue("user-123", "a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	rec := httptest.NewRecorder()

	newGuardedHandler(t, issuer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
