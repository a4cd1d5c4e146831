package middleware

import (
	"crypto/sha256"
	"net/http"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/pkg"
)

const (
	verifiedTokensCacheSize = 512 * 1024
	verifiedTokenTTL        = 10 * time.Minute
)

// AuthMiddlewareHandler checks the API token from the Authorization header
// against a bcrypt hash. An empty hash disables the check.
type AuthMiddlewareHandler struct {
	tokenHash    string
	allowedPaths map[string]bool
	// sha256 of tokens that already passed bcrypt, so the slow compare runs once per TTL
	verified *freecache.Cache
}

func NewAuthMiddlewareHandler(tokenHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokenHash: tokenHash,
		allowedPaths: map[string]bool{
			"/":           true,
			"/version":    true,
			"/activities": true,
		},
		verified: freecache.NewCache(verifiedTokensCacheSize),
	}
}

func (h *AuthMiddlewareHandler) Enabled() bool {
	return h.tokenHash != ""
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if !h.Enabled() || r.Method == http.MethodOptions || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(token) {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	sum := sha256.Sum256([]byte(token))
	if _, err := h.verified.Get(sum[:]); err == nil {
		return true
	}
	if !pkg.CheckTokenHash(token, h.tokenHash) {
		return false
	}
	if err := h.verified.Set(sum[:], []byte{1}, int(verifiedTokenTTL.Seconds())); err != nil {
		log.Warnf("cache verified token: %s", err)
	}
	return true
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
