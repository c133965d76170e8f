package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyOr is returned for an empty Or group, which PostgREST cannot
// express.
var ErrEmptyOr = errors.New("empty or group")

// RenderREST turns a read query into PostgREST query parameters. Repeated
// column keys are read by PostgREST as AND.
func RenderREST(q Query) (url.Values, error) {
	if q.Table == "" {
		return nil, ErrNoTable
	}

	params := url.Values{}
	params.Add("select", restSelect(q))

	if err := addRESTFilters(params, q.Filters); err != nil {
		return nil, err
	}

	if q.OrderBy != nil && q.OrderBy.Column != "" {
		dir := "desc"
		if q.OrderBy.Ascending {
			dir = "asc"
		}
		params.Add("order", q.OrderBy.Column+"."+dir)
	}

	switch {
	case q.Single:
		params.Add("limit", "1")
	case q.Limit > 0:
		params.Add("limit", strconv.Itoa(q.Limit))
	}

	return params, nil
}

// RenderRESTFilter renders a mutation filter.
func RenderRESTFilter(where Predicate) (url.Values, error) {
	if where == nil {
		return nil, ErrMissingFilter
	}
	params := url.Values{}
	if err := addRESTFilters(params, []Predicate{where}); err != nil {
		return nil, err
	}
	return params, nil
}

func restSelect(q Query) string {
	cols := "*"
	if len(q.Columns) > 0 {
		cols = strings.Join(q.Columns, ",")
	}
	for _, e := range q.Embeds {
		embedCols := "*"
		if len(e.Columns) > 0 {
			embedCols = strings.Join(e.Columns, ",")
		}
		cols += "," + e.Table + "(" + embedCols + ")"
	}
	return cols
}

func addRESTFilters(params url.Values, preds []Predicate) error {
	for _, p := range preds {
		switch p := p.(type) {
		case Comparison:
			params.Add(p.Column, restOperand(p, false))
		case Group:
			if len(p.Preds) == 0 {
				if p.Logic == LogicOr {
					return ErrEmptyOr
				}
				continue
			}
			inner, err := restGroupBody(p)
			if err != nil {
				return err
			}
			params.Add(string(p.Logic), inner)
		default:
			return fmt.Errorf("unsupported predicate: %T", p)
		}
	}
	return nil
}

// restGroupBody renders "(a.eq.1,b.eq.2)" for a group.
func restGroupBody(g Group) (string, error) {
	parts := make([]string, 0, len(g.Preds))
	for _, child := range g.Preds {
		switch c := child.(type) {
		case Comparison:
			parts = append(parts, c.Column+"."+restOperand(c, true))
		case Group:
			if len(c.Preds) == 0 {
				if c.Logic == LogicOr {
					return "", ErrEmptyOr
				}
				continue
			}
			inner, err := restGroupBody(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, string(c.Logic)+inner)
		default:
			return "", fmt.Errorf("unsupported predicate: %T", c)
		}
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}

// restOperand renders "op.value". Inside logic trees values holding
// reserved characters are double quoted.
func restOperand(c Comparison, nested bool) string {
	if c.Op == OpEq && c.Value == nil {
		return "is.null"
	}
	v := formatValue(c.Value)
	if c.Op == OpLike || c.Op == OpILike {
		v = restLikePattern(v)
	}
	if nested {
		v = quoteRESTValue(v)
	}
	return string(c.Op) + "." + v
}

// restLikePattern turns a LIKE pattern into PostgREST's form, where * is
// the wildcard. PostgREST maps every * to % with no escape, so a literal *
// becomes _ and only ever matches a single character. Escaped pairs pass
// through; \% arrives as \* and PostgREST maps it back to \%.
func restLikePattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch ch := pattern[i]; ch {
		case '\\':
			if i+1 >= len(pattern) {
				b.WriteString(`\\`)
				continue
			}
			i++
			switch next := pattern[i]; next {
			case '%':
				b.WriteString(`\*`)
			case '*':
				b.WriteByte('_')
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
		case '%':
			b.WriteByte('*')
		case '*':
			b.WriteByte('_')
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

const restReserved = ",.:()\"\\ "

func quoteRESTValue(v string) string {
	if !strings.ContainsAny(v, restReserved) {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
	return `"` + escaped + `"`
}
