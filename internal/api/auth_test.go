package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/plantissier/backend/internal/middleware"
	"github.com/pageza/plantissier/backend/internal/service"
	"github.com/pageza/plantissier/backend/internal/types"
)

func TestProtectedRoutesRequireToken(t *testing.T) {
	validator := new(MockTokenValidator)
	router := newTestRouter(t, middleware.AuthMiddleware(validator))

	rec := doRequest(t, router, "GET", "/api/v1/desserts", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "missing authorization header", resp["error"])
	validator.AssertNotCalled(t, "ValidateToken")
}

func TestProtectedRoutesRejectMalformedHeader(t *testing.T) {
	validator := new(MockTokenValidator)
	router := newTestRouter(t, middleware.AuthMiddleware(validator))

	req := httptest.NewRequest("GET", "/api/v1/desserts", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "invalid authorization header format", resp["error"])
}

func TestProtectedRoutesRejectInvalidToken(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", "bad-token").Return(nil, errors.New("invalid token claims"))
	router := newTestRouter(t, middleware.AuthMiddleware(validator))

	req := httptest.NewRequest("GET", "/api/v1/desserts", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	validator.AssertExpectations(t)
}

func TestProtectedRoutesAcceptValidToken(t *testing.T) {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", "good-token").Return(&types.TokenClaims{Caller: "pos-terminal-7"}, nil)
	router := newTestRouter(t, middleware.AuthMiddleware(validator))

	req := httptest.NewRequest("GET", "/api/v1/desserts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	validator.AssertExpectations(t)
}

func TestHealthStaysOpenWithAuthEnabled(t *testing.T) {
	validator := new(MockTokenValidator)
	router := newTestRouter(t, middleware.AuthMiddleware(validator))

	rec := doRequest(t, router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRealTokenServiceEndToEnd(t *testing.T) {
	tokens := service.NewTokenService("api-test-secret")
	router := newTestRouter(t, middleware.AuthMiddleware(tokens))

	token, err := tokens.IssueToken("partner-kitchen")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/formulate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Empty body fails binding, but only after the token was accepted.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
