package db

import (
	"context"
	"fmt"

	"github.com/kgzivf/blogbackend/pkg"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type StatementResult struct {
	Statement string
	Skipped   bool
	Err       error
}

// ApplyStatements runs stmts one by one. Statements failing because their
// object is already in place are marked skipped; the first other failure
// stops the run and is returned.
func ApplyStatements(ctx context.Context, db execer, stmts []string) ([]StatementResult, error) {
	results := make([]StatementResult, 0, len(stmts))
	for _, stmt := range stmts {
		_, err := db.Exec(ctx, stmt)
		switch {
		case err == nil:
			results = append(results, StatementResult{Statement: stmt})
		case pkg.IsIgnorableSchemaError(err):
			log.Debugf("schema statement skipped: %s", err)
			results = append(results, StatementResult{Statement: stmt, Skipped: true, Err: err})
		default:
			results = append(results, StatementResult{Statement: stmt, Err: err})
			return results, fmt.Errorf("apply statement %d: %w", len(results), err)
		}
	}
	return results, nil
}
