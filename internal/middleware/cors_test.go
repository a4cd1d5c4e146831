package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name        string
		origin      string
		userAgent   string
		path        string
		expectAllow string
		expectCors  bool
	}{
		{
			name:        "ConfiguredOrigin",
			origin:      "https://activeweek.example.com",
			expectAllow: "https://activeweek.example.com",
			expectCors:  true,
		},
		{
			name:        "DefaultDevOrigin",
			origin:      "http://localhost:5173",
			expectAllow: "http://localhost:5173",
			expectCors:  true,
		},
		{
			name:   "NotAllowedOrigin",
			origin: "https://www.notallowed.com",
		},
		{
			name:       "CurlUserAgent",
			userAgent:  "curl/8.4.0",
			expectCors: true,
		},
		{
			name:      "UnknownUserAgent",
			userAgent: "UnknownAgent/1.0",
		},
		{
			name:        "MCPWithoutOrigin",
			path:        "/mcp",
			expectAllow: "*",
			expectCors:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := tc.path
			if path == "" {
				path = "/workouts"
			}
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("GET", path, nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			req.Header.Set("User-Agent", tc.userAgent)

			called := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
			Cors([]string{"https://activeweek.example.com/"})(nextHandler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectCors, called)
			if tc.expectCors {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.Equal(t, tc.expectAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Equal(t, http.StatusForbidden, rr.Code)
			}
		})
	}
}
