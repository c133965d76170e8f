package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

func ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// sqlWhere renders predicates into a boolean expression, numbering the
// bound parameters from next. Columns are qualified with table when set.
type sqlWhere struct {
	table string
	args  []any
	next  int
}

func (w *sqlWhere) column(name string) string {
	if w.table == "" {
		return ident(name)
	}
	return ident(w.table, name)
}

func (w *sqlWhere) render(p Predicate) (string, error) {
	switch p := p.(type) {
	case Comparison:
		if p.Column == "" {
			return "", fmt.Errorf("predicate without column")
		}
		col := w.column(p.Column)
		switch p.Op {
		case OpEq:
			if p.Value == nil {
				return col + " IS NULL", nil
			}
			return col + " = " + w.bind(p.Value), nil
		case OpLike:
			return col + " LIKE " + w.bind(p.Value), nil
		case OpILike:
			return col + " ILIKE " + w.bind(p.Value), nil
		default:
			return "", fmt.Errorf("unsupported operator: %s", p.Op)
		}
	case Group:
		if len(p.Preds) == 0 {
			if p.Logic == LogicOr {
				return "FALSE", nil
			}
			return "TRUE", nil
		}
		sep := " AND "
		if p.Logic == LogicOr {
			sep = " OR "
		}
		parts := make([]string, 0, len(p.Preds))
		for _, child := range p.Preds {
			s, err := w.render(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, sep) + ")", nil
	case RawSQL:
		return w.raw(p)
	default:
		return "", fmt.Errorf("unsupported predicate: %T", p)
	}
}

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func (w *sqlWhere) raw(p RawSQL) (string, error) {
	if strings.TrimSpace(p.SQL) == "" {
		return "", fmt.Errorf("empty raw condition")
	}

	offset := w.next - 1
	var convErr error
	out := placeholderRe.ReplaceAllStringFunc(p.SQL, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(p.Args) {
			convErr = fmt.Errorf("placeholder %s has no argument (%d given)", m, len(p.Args))
			return m
		}
		return "$" + strconv.Itoa(n+offset)
	})
	if convErr != nil {
		return "", convErr
	}

	w.args = append(w.args, p.Args...)
	w.next += len(p.Args)
	return "(" + out + ")", nil
}

func (w *sqlWhere) bind(v any) string {
	w.args = append(w.args, v)
	w.next++
	return "$" + strconv.Itoa(w.next-1)
}

func (w *sqlWhere) renderAll(preds []Predicate) (string, error) {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		s, err := w.render(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " AND "), nil
}

// RenderSQL turns a read query into parameterized PostgreSQL. Values are
// never inlined; identifiers are quoted.
func RenderSQL(q Query) (string, []any, error) {
	if q.Table == "" {
		return "", nil, ErrNoTable
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(selectList(q))
	sb.WriteString(" FROM ")
	sb.WriteString(ident(q.Table))

	for _, e := range q.Embeds {
		fmt.Fprintf(&sb, " LEFT JOIN %s ON %s = %s",
			ident(e.Table), ident(e.Table, "id"), ident(q.Table, e.ForeignKey))
	}

	w := &sqlWhere{table: q.Table, next: 1}
	if len(q.Filters) > 0 {
		where, err := w.renderAll(q.Filters)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}

	if q.OrderBy != nil && q.OrderBy.Column != "" {
		dir := "DESC"
		if q.OrderBy.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", ident(q.Table, q.OrderBy.Column), dir)
	}

	switch {
	case q.Single:
		sb.WriteString(" LIMIT 1")
	case q.Limit > 0:
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	return sb.String(), w.args, nil
}

func selectList(q Query) string {
	var cols []string
	if len(q.Columns) == 0 || (len(q.Columns) == 1 && q.Columns[0] == "*") {
		cols = append(cols, ident(q.Table)+".*")
	} else {
		for _, c := range q.Columns {
			cols = append(cols, ident(q.Table, c))
		}
	}

	for _, e := range q.Embeds {
		var obj string
		if len(e.Columns) == 0 || (len(e.Columns) == 1 && e.Columns[0] == "*") {
			obj = "to_jsonb(" + ident(e.Table) + ".*)"
		} else {
			pairs := make([]string, 0, len(e.Columns)*2)
			for _, c := range e.Columns {
				pairs = append(pairs, quoteLiteral(c), ident(e.Table, c))
			}
			obj = "jsonb_build_object(" + strings.Join(pairs, ", ") + ")"
		}
		cols = append(cols, fmt.Sprintf("CASE WHEN %s IS NULL THEN NULL ELSE %s END AS %s",
			ident(e.Table, "id"), obj, ident(e.Table)))
	}

	return strings.Join(cols, ", ")
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sortedKeys(values Row) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderInsert builds an INSERT returning the stored row. Columns are
// emitted in sorted order.
func RenderInsert(table string, values Row) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(values) == 0 {
		return "", nil, ErrEmptyValues
	}

	keys := sortedKeys(values)
	cols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = ident(k)
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = values[k]
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return sql, args, nil
}

// RenderUpdate builds an UPDATE returning the changed rows. The value
// parameters come first, the filter parameters follow. A non-empty
// touchColumn is set to NOW() unless values already set it.
func RenderUpdate(table string, values Row, where Predicate, touchColumn string) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if len(values) == 0 {
		return "", nil, ErrEmptyValues
	}
	if where == nil {
		return "", nil, ErrMissingFilter
	}

	w := &sqlWhere{next: 1}
	keys := sortedKeys(values)
	sets := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		sets = append(sets, ident(k)+" = "+w.bind(values[k]))
	}
	if _, ok := values[touchColumn]; touchColumn != "" && !ok {
		sets = append(sets, ident(touchColumn)+" = NOW()")
	}

	cond, err := w.render(where)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *", ident(table), strings.Join(sets, ", "), cond)
	return sql, w.args, nil
}

func RenderDelete(table string, where Predicate) (string, []any, error) {
	if table == "" {
		return "", nil, ErrNoTable
	}
	if where == nil {
		return "", nil, ErrMissingFilter
	}

	w := &sqlWhere{next: 1}
	cond, err := w.render(where)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING *", ident(table), cond), w.args, nil
}
