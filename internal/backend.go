package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kgzivf/blogbackend/internal/blog"
	"github.com/kgzivf/blogbackend/internal/config"
	"github.com/kgzivf/blogbackend/internal/postapi"
	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/internal/transport"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogBackend is the blog service wired to the configured data source.
type BlogBackend struct {
	Service *blog.Service
	// Executor is set for the sql and rest backends.
	Executor query.Executor
	// PostAPI is set for the third-party blog API backend.
	PostAPI *postapi.Store
}

type BlogBackendDeps struct {
	// Pool may be nil when no database url is configured.
	Pool        *pgxpool.Pool
	HTTPClient  *http.Client
	RedisClient *redis.Client
	Metrics     *metrics.Manager
}

// NewBlogBackend selects the store once, from cfg.Backend.
func NewBlogBackend(cfg *config.Config, deps BlogBackendDeps) (*BlogBackend, error) {
	if cfg.Backend == config.BackendPostAPI {
		client := postapi.NewClient(postapi.NewClientParams{
			BaseURL:     cfg.PostAPI.BaseURL,
			APIKey:      cfg.PostAPI.APIKey,
			HTTPClient:  deps.HTTPClient,
			RedisClient: deps.RedisClient,
			Timeout:     cfg.PostAPI.Timeout.Duration,
			CacheTTL:    cfg.PostAPI.CacheTTL.Duration,
			EnableDebug: cfg.PostAPI.EnableDebug,
			Metrics:     deps.Metrics,
		})
		store := postapi.NewStore(client)
		return &BlogBackend{
			Service: blog.NewService(store),
			PostAPI: store,
		}, nil
	}

	execDeps := transport.ExecutorDeps{
		HTTPClient: deps.HTTPClient,
		Metrics:    deps.Metrics,
	}
	if deps.Pool != nil {
		execDeps.DB = deps.Pool
	}
	exec, err := transport.NewExecutor(cfg, execDeps)
	if err != nil {
		return nil, fmt.Errorf("new executor: %w", err)
	}

	return &BlogBackend{
		Service:  blog.NewService(blog.NewQueryStore(query.NewClient(exec))),
		Executor: exec,
	}, nil
}

// Health checks that the data source answers.
func (b *BlogBackend) Health(ctx context.Context) error {
	switch {
	case b.PostAPI != nil:
		return b.PostAPI.Health(ctx)
	case b.Executor != nil:
		_, err := b.Executor.Select(ctx, query.Query{
			Table:   "blog_posts",
			Columns: []string{"id"},
			Limit:   1,
		})
		return err
	default:
		return errors.New("no blog backend")
	}
}
