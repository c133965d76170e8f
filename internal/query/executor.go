package query

import "context"

// Row is one record as returned by a backend, keyed by column name.
type Row = map[string]any

// Executor runs rendered queries against one backend. Implementations are
// the SQL and REST adapters in the transport package.
type Executor interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, values Row) ([]Row, error)
	Update(ctx context.Context, table string, values Row, where Predicate) ([]Row, error)
	Delete(ctx context.Context, table string, where Predicate) ([]Row, error)
	Name() string
}
