package db

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the blog tables, indexes and seed authors as one script.
func Schema() string {
	return schemaSQL
}

// Statements splits the schema into single statements so they can be
// applied (and skipped) one by one. Statements are separated by ';' at the
// end of a line; the schema has no function bodies.
func Statements() []string {
	return SplitStatements(schemaSQL)
}

func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, strings.TrimSuffix(strings.TrimSpace(current.String()), ";"))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
