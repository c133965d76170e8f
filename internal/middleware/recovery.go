package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/pkg"

	log "github.com/sirupsen/logrus"
)

type panicResponse struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

// PanicRecovery answers a panicking handler with a 500 in the same
// {data, error} shape the proxy endpoints use. http.ErrAbortHandler is
// re-raised so net/http can drop the connection.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"route":  routeName(r),
				}).Errorf("handler panic: %v\n%s", rec, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}

				pkg.WriteJSON(w, panicResponse{Error: "Internal server error"}, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
