package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/activeweek/internal/telemetry/metrics"
	"github.com/2beens/activeweek/pkg"
)

// PanicRecovery turns a handler panic into a JSON 500, marks the request span
// as failed and counts it.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				log.WithFields(log.Fields{
					"route":  recoveryRouteName(r),
					"method": r.Method,
				}).Errorf("panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())

				span := trace.SpanFromContext(r.Context())
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic")

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(`{"error":"internal server error"}`), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func recoveryRouteName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unknown"
}
