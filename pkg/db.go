package pkg

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// IsForeignKeyViolationError checks if the error is a foreign key violation error
func IsForeignKeyViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// IsInvalidTextRepresentationError checks if a value could not be parsed into
// the column type, e.g. "5" compared against a uuid column
func IsInvalidTextRepresentationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

var ignorableSchemaErrFragments = []string{
	"already exists",
	"does not exist",
	"duplicate key",
}

// IsIgnorableSchemaError reports whether a schema statement failed only because
// the object it creates or drops is already in the desired state.
func IsIgnorableSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range ignorableSchemaErrFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
