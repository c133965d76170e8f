package proxy

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

const (
	PostgreSQLPath    = "/api/postgresql"
	SupabaseProxyPath = "/api/supabase-proxy"
)

type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// Handler serves the database endpoints used by browser clients that cannot
// reach PostgreSQL or Supabase themselves.
type Handler struct {
	runner      sqlRunner
	touchColumn string
	supabase    SupabaseConfig
	httpClient  *http.Client
	timeout     time.Duration
}

type NewHandlerParams struct {
	// Runner may be nil when no database is configured.
	Runner      sqlRunner
	TouchColumn string
	Supabase    SupabaseConfig
	HTTPClient  *http.Client
	Timeout     time.Duration
}

func NewHandler(params NewHandlerParams) *Handler {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		runner:      params.Runner,
		touchColumn: params.TouchColumn,
		supabase: SupabaseConfig{
			URL:     strings.TrimRight(params.Supabase.URL, "/"),
			AnonKey: params.Supabase.AnonKey,
		},
		httpClient: httpClient,
		timeout:    timeout,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc(PostgreSQLPath, h.handlePostgreSQL).Methods("POST", "OPTIONS").Name("postgresql")
	router.HandleFunc(SupabaseProxyPath, h.handleSupabaseProxy).Name("supabase-proxy")
}
