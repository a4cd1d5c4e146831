package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every request; mutating requests on the journal are
// logged at debug with their duration.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := log.WithFields(log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"route":  routeName(r),
			})
			entry.Tracef(" ====> request [UA: %s]", r.Header.Get("User-Agent"))

			start := time.Now()
			next.ServeHTTP(w, r)

			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				entry.WithField("took", time.Since(start).String()).Debug("journal changed")
			}
		})
	}
}
