package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	URL             string
	MinConns        int32
	MaxConns        int32
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// NewDBPool creates the pgx pool. The pool is owned by the caller, which
// must Close it on shutdown. Connections are opened lazily, so an unreachable
// database does not fail here.
func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(params)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}

func PoolConfig(params NewDBPoolParams) (*pgxpool.Config, error) {
	if params.URL == "" {
		return nil, errors.New("database url not set")
	}

	poolConfig, err := pgxpool.ParseConfig(params.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.MinConns > 0 {
		poolConfig.MinConns = params.MinConns
	}
	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		return nil, fmt.Errorf("min conns %d greater than max conns %d", poolConfig.MinConns, poolConfig.MaxConns)
	}
	if params.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = params.MaxConnIdleTime
	}

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	return poolConfig, nil
}
