package middleware

import (
	"net/http"
	"time"

	"github.com/kgzivf/blogbackend/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every served request. Server errors are logged as
// warnings, the rest at trace level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(resp, r)

			ip, err := pkg.ReadUserIP(r)
			if err != nil {
				ip = "invalid"
			}
			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"route":    routeName(r),
				"status":   resp.statusCode,
				"ip":       ip,
				"duration": time.Since(begin).String(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Trace("request served")
		})
	}
}
