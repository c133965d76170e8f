package query

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoTable       = errors.New("no table given")
	ErrEmptyValues   = errors.New("no values given")
	ErrMissingFilter = errors.New("mutation without filter")
	ErrNoRows        = errors.New("no rows in result")
)

// Query is the backend independent description of a read.
type Query struct {
	Table   string
	Columns []string
	Embeds  []Embed
	Filters []Predicate
	OrderBy *Ordering
	Limit   int
	Single  bool
}

// Embed pulls the row referenced by ForeignKey from Table into a nested
// object keyed by the table name.
type Embed struct {
	Table      string
	ForeignKey string
	Columns    []string
}

type Ordering struct {
	Column    string
	Ascending bool
}

type Client struct {
	exec Executor
}

func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// Backend names the executor behind the client.
func (c *Client) Backend() string {
	return c.exec.Name()
}

func (c *Client) From(table string) Builder {
	return Builder{
		exec: c.exec,
		q:    Query{Table: table},
	}
}

// Builder describes a read. Every method returns a new Builder and leaves
// the receiver untouched, so a partially built query can be shared.
type Builder struct {
	exec Executor
	q    Query
}

func (b Builder) Select(columns ...string) Builder {
	b.q.Columns = append([]string(nil), columns...)
	return b
}

func (b Builder) Embed(table, foreignKey string, columns ...string) Builder {
	embeds := make([]Embed, len(b.q.Embeds), len(b.q.Embeds)+1)
	copy(embeds, b.q.Embeds)
	b.q.Embeds = append(embeds, Embed{
		Table:      table,
		ForeignKey: foreignKey,
		Columns:    append([]string(nil), columns...),
	})
	return b
}

// Eq filters on column = value. Repeated calls are ANDed.
func (b Builder) Eq(column string, value any) Builder {
	return b.Where(Eq(column, value))
}

// Where adds p to the filters, ANDed with the existing ones.
func (b Builder) Where(p Predicate) Builder {
	if p == nil {
		return b
	}
	filters := make([]Predicate, len(b.q.Filters), len(b.q.Filters)+1)
	copy(filters, b.q.Filters)
	b.q.Filters = append(filters, p)
	return b
}

func (b Builder) Or(preds ...Predicate) Builder {
	return b.Where(Or(preds...))
}

// Order sets the single ordering column. A later call replaces it.
func (b Builder) Order(column string, ascending bool) Builder {
	b.q.OrderBy = &Ordering{Column: column, Ascending: ascending}
	return b
}

// Limit caps the number of rows. n <= 0 removes the cap.
func (b Builder) Limit(n int) Builder {
	if n < 0 {
		n = 0
	}
	b.q.Limit = n
	return b
}

// Single makes the result hold at most one row.
func (b Builder) Single() Builder {
	b.q.Single = true
	return b
}

// Query returns a copy of the accumulated description.
func (b Builder) Query() Query {
	q := b.q
	q.Columns = append([]string(nil), b.q.Columns...)
	q.Embeds = append([]Embed(nil), b.q.Embeds...)
	q.Filters = append([]Predicate(nil), b.q.Filters...)
	if b.q.OrderBy != nil {
		o := *b.q.OrderBy
		q.OrderBy = &o
	}
	return q
}

func (b Builder) Execute(ctx context.Context) (*Result, error) {
	if b.q.Table == "" {
		return nil, ErrNoTable
	}
	if b.exec == nil {
		return nil, errors.New("builder has no executor")
	}

	rows, err := b.exec.Select(ctx, b.Query())
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", b.q.Table, err)
	}
	if b.q.Single && len(rows) > 1 {
		rows = rows[:1]
	}

	return &Result{rows: rows, single: b.q.Single}, nil
}

// Insert adds one row and returns what the backend stored.
func (c *Client) Insert(ctx context.Context, table string, values Row) (*Result, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}
	rows, err := c.exec.Insert(ctx, table, values)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return &Result{rows: rows}, nil
}

// Update changes the rows matching where and returns them.
func (c *Client) Update(ctx context.Context, table string, values Row, where Predicate) (*Result, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	if len(values) == 0 {
		return nil, ErrEmptyValues
	}
	if where == nil {
		return nil, ErrMissingFilter
	}
	rows, err := c.exec.Update(ctx, table, values, where)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return &Result{rows: rows}, nil
}

// Delete removes the rows matching where and returns them.
func (c *Client) Delete(ctx context.Context, table string, where Predicate) (*Result, error) {
	if table == "" {
		return nil, ErrNoTable
	}
	if where == nil {
		return nil, ErrMissingFilter
	}
	rows, err := c.exec.Delete(ctx, table, where)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", table, err)
	}
	return &Result{rows: rows}, nil
}
