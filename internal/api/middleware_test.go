package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinic-backend/internal/users"
)

type stubParser struct {
	claims *users.Claims
	err    error
}

func (s *stubParser) ParseToken(string) (*users.Claims, error) {
	return s.claims, s.err
}

func identityEcho(t *testing.T, got *Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		require.True(t, ok)
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareAttachesIdentity(t *testing.T) {
	userID := uuid.New()
	parser := &stubParser{claims: &users.Claims{
		Role:             users.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}}

	var got Identity
	h := AuthMiddleware(parser, false)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, users.RolePatient, got.Role)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	h := AuthMiddleware(&stubParser{}, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	parser := &stubParser{err: errors.New("token is expired")}
	h := AuthMiddleware(parser, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareDisabledGrantsAdmin(t *testing.T) {
	var got Identity
	h := AuthMiddleware(&stubParser{}, true)(identityEcho(t, &got))

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, users.RoleAdmin, got.Role)
}

func TestRequireRoles(t *testing.T) {
	allow := RequireRoles(users.RoleAdmin)

	run := func(role users.Role) int {
		called := false
		h := allow(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		parser := &stubParser{claims: &users.Claims{
			Role:             role,
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
		}}

		req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()

		AuthMiddleware(parser, false)(h).ServeHTTP(rec, req)

		if rec.Code == http.StatusOK {
			assert.True(t, called)
		}
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(users.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, run(users.RoleStaff))
	assert.Equal(t, http.StatusForbidden, run(users.RolePatient))
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	h := RequireRoles(users.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	// An inbound request ID is propagated, not replaced.
	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "inbound-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "inbound-id", seen)
	assert.Equal(t, "inbound-id", rec.Header().Get("X-Request-ID"))
}
