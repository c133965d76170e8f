package query

import "strings"

// Predicate is a node of a filter tree. Leaves compare a column with a value,
// groups combine children with AND or OR.
type Predicate interface {
	isPredicate()
}

type Operator string

const (
	OpEq    Operator = "eq"
	OpLike  Operator = "like"
	OpILike Operator = "ilike"
)

type Comparison struct {
	Column string
	Op     Operator
	Value  any
}

func (Comparison) isPredicate() {}

type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

type Group struct {
	Logic Logic
	Preds []Predicate
}

func (Group) isPredicate() {}

// RawSQL is a SQL condition written by the caller with its own $1..$n
// placeholders. Only the SQL renderer accepts it; placeholders are renumbered
// to follow the parameters bound before it.
type RawSQL struct {
	SQL  string
	Args []any
}

func (RawSQL) isPredicate() {}

func Raw(sql string, args ...any) Predicate {
	return RawSQL{SQL: sql, Args: args}
}

// Eq matches rows where column equals value. A nil value matches NULL.
func Eq(column string, value any) Predicate {
	return Comparison{Column: column, Op: OpEq, Value: value}
}

// Like matches column against a pattern using % and _ wildcards.
func Like(column, pattern string) Predicate {
	return Comparison{Column: column, Op: OpLike, Value: pattern}
}

// ILike is the case-insensitive Like.
func ILike(column, pattern string) Predicate {
	return Comparison{Column: column, Op: OpILike, Value: pattern}
}

// And is true when all preds are; with no preds it is true.
func And(preds ...Predicate) Predicate {
	return Group{Logic: LogicAnd, Preds: compact(preds)}
}

// Or is true when any pred is; with no preds it is false.
func Or(preds ...Predicate) Predicate {
	return Group{Logic: LogicOr, Preds: compact(preds)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds a substring pattern for Like/ILike with the LIKE
// wildcards in term escaped.
func Contains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func compact(preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
