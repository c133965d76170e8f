package middleware

import (
	"net/http"
	"strings"

	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"
	"github.com/kgzivf/blogbackend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AdminKeyHeader = "X-API-Key"

// AdminKeyHandler guards admin paths with a key checked against a bcrypt
// hash. With an empty hash every protected request is refused.
type AdminKeyHandler struct {
	keyHash           string
	protectedPrefixes []string
}

func NewAdminKeyHandler(keyHash string, protectedPrefixes ...string) *AdminKeyHandler {
	if keyHash == "" {
		log.Warnln("admin key hash not set, admin endpoints are locked")
	}
	return &AdminKeyHandler{
		keyHash:           keyHash,
		protectedPrefixes: protectedPrefixes,
	}
}

func (h *AdminKeyHandler) isProtected(path string) bool {
	for _, prefix := range h.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AdminKeyHandler) AdminKeyCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// preflight requests carry no custom headers
			if r.Method == http.MethodOptions || !h.isProtected(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.admin_key")
			defer span.End()

			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				log.Tracef("[missing key] [admin middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-api-key")
				return
			}

			if !pkg.CheckAPIKeyHash(key, h.keyHash) {
				reqIP, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid key] [admin middleware] %s %s from %s", r.Method, r.URL.Path, reqIP)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-api-key")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
