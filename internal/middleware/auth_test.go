package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/2beens/activeweek/internal/middleware"
	"github.com/2beens/activeweek/pkg"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	const token = "api-token-123"
	hash, err := pkg.HashToken(token, bcrypt.MinCost)
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddlewareHandler(hash)
	require.True(t, authMiddleware.Enabled())

	testCases := []struct {
		name               string
		path               string
		method             string
		authHeader         string
		expectedStatusCode int
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/activities",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "OptionsWithoutToken",
			path:               "/workouts",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "MissingToken",
			path:               "/workouts",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "BearerToken",
			path:               "/workouts",
			method:             "POST",
			authHeader:         "Bearer " + token,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "BareToken",
			path:               "/analytics",
			method:             "GET",
			authHeader:         token,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "InvalidToken",
			path:               "/workouts",
			method:             "DELETE",
			authHeader:         "Bearer nope",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "CachedTokenStillValid",
			path:               "/mcp",
			method:             "POST",
			authHeader:         "bearer " + token,
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
		})
	}
}

func TestAuthMiddlewareHandler_Disabled(t *testing.T) {
	authMiddleware := middleware.NewAuthMiddlewareHandler("")
	assert.False(t, authMiddleware.Enabled())

	rr := httptest.NewRecorder()
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	authMiddleware.AuthCheck()(handler).ServeHTTP(rr, httptest.NewRequest("DELETE", "/workouts", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}
