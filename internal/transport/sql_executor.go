package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/kgzivf/blogbackend/internal/query"
	"github.com/kgzivf/blogbackend/internal/telemetry/metrics"
	"github.com/kgzivf/blogbackend/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel/attribute"
)

// pgxQuerier is the part of *pgxpool.Pool the executor needs.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLExecutor runs parameterized SQL on a pgx pool.
type SQLExecutor struct {
	db             pgxQuerier
	touchColumn    string
	connectionType string
	metrics        *metrics.Manager
}

type NewSQLExecutorParams struct {
	DB pgxQuerier
	// TouchColumn is set to NOW() on every update when not empty.
	TouchColumn    string
	ConnectionType string
	Metrics        *metrics.Manager
}

func NewSQLExecutor(params NewSQLExecutorParams) *SQLExecutor {
	return &SQLExecutor{
		db:             params.DB,
		touchColumn:    params.TouchColumn,
		connectionType: params.ConnectionType,
		metrics:        params.Metrics,
	}
}

func (e *SQLExecutor) Name() string {
	return "sql"
}

func (e *SQLExecutor) Select(ctx context.Context, q query.Query) ([]query.Row, error) {
	sql, args, err := query.RenderSQL(q)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, "select", sql, args)
}

func (e *SQLExecutor) Insert(ctx context.Context, table string, values query.Row) ([]query.Row, error) {
	sql, args, err := query.RenderInsert(table, values)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, "insert", sql, args)
}

func (e *SQLExecutor) Update(ctx context.Context, table string, values query.Row, where query.Predicate) ([]query.Row, error) {
	sql, args, err := query.RenderUpdate(table, values, where, e.touchColumn)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, "update", sql, args)
}

func (e *SQLExecutor) Delete(ctx context.Context, table string, where query.Predicate) ([]query.Row, error) {
	sql, args, err := query.RenderDelete(table, where)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, "delete", sql, args)
}

// Query runs a raw statement with bound params.
func (e *SQLExecutor) Query(ctx context.Context, sql string, params []any) ([]query.Row, error) {
	return e.run(ctx, "query", sql, params)
}

func (e *SQLExecutor) run(ctx context.Context, op, sql string, args []any) (rows []query.Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "transport.sql."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sql.args", len(args)))
	e.metrics.CounterQueries.WithLabelValues(e.Name(), op).Inc()

	pgRows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	maps, err := pgx.CollectRows(pgRows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	rows = make([]query.Row, len(maps))
	for i, m := range maps {
		for k, v := range m {
			m[k] = normalizeValue(v)
		}
		rows[i] = m
	}
	return rows, nil
}

// normalizeValue converts pgx native values into plain JSON friendly ones.
func normalizeValue(v any) any {
	switch v := v.(type) {
	case [16]byte:
		return uuid.UUID(v).String()
	case pgtype.UUID:
		if !v.Valid {
			return nil
		}
		return uuid.UUID(v.Bytes).String()
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case map[string]any:
		for k, inner := range v {
			v[k] = normalizeValue(inner)
		}
		return v
	case []any:
		for i, inner := range v {
			v[i] = normalizeValue(inner)
		}
		return v
	default:
		return v
	}
}

type ConnectionInfo struct {
	Version        string    `json:"version"`
	ServerTime     time.Time `json:"serverTime"`
	ConnectionType string    `json:"connectionType"`
}

// TestConnection asks the server for its time and version.
func (e *SQLExecutor) TestConnection(ctx context.Context) (*ConnectionInfo, error) {
	info := &ConnectionInfo{ConnectionType: e.connectionType}
	if err := e.db.QueryRow(ctx, "SELECT NOW(), version()").Scan(&info.ServerTime, &info.Version); err != nil {
		return nil, fmt.Errorf("test connection: %w", err)
	}
	return info, nil
}
