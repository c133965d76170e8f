package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kgzivf/blogbackend/internal/config"
	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
)

type ExecutorDeps struct {
	DB         pgxQuerier
	HTTPClient *http.Client
	Metrics    *metrics.Manager
}

// NewExecutor picks the adapter for the configured backend. The third-party
// blog API backend does not go through the query layer and is rejected here.
func NewExecutor(cfg *config.Config, deps ExecutorDeps) (query.Executor, error) {
	switch cfg.Backend {
	case config.BackendSQL:
		if deps.DB == nil {
			return nil, errors.New("sql backend requires a database pool")
		}
		return NewSQLExecutor(NewSQLExecutorParams{
			DB:             deps.DB,
			TouchColumn:    cfg.Database.TouchColumn,
			ConnectionType: cfg.ConnectionType(),
			Metrics:        deps.Metrics,
		}), nil
	case config.BackendREST:
		return NewRESTExecutor(NewRESTExecutorParams{
			Routes:        RoutesFor(cfg.Deployment, cfg.REST),
			AnonKey:       cfg.REST.AnonKey,
			HTTPClient:    deps.HTTPClient,
			Timeout:       cfg.REST.Timeout.Duration,
			RouteCacheTTL: cfg.REST.WinnerCacheTTL(),
			Metrics:       deps.Metrics,
		})
	default:
		return nil, fmt.Errorf("backend %s has no query executor", cfg.Backend)
	}
}
