package query

import (
	"encoding/json"
	"fmt"
)

type Result struct {
	rows   []Row
	single bool
}

func NewResult(rows []Row, single bool) *Result {
	return &Result{rows: rows, single: single}
}

func (r *Result) Rows() []Row {
	if r == nil {
		return nil
	}
	return r.rows
}

func (r *Result) Single() bool {
	return r != nil && r.single
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

// One returns the first row, or nil when there is none.
func (r *Result) One() Row {
	if r.Len() == 0 {
		return nil
	}
	return r.rows[0]
}

// Decode fills v from the rows through their JSON form. Single results
// decode the one row into v and return ErrNoRows when empty; other results
// decode the row list (empty list when there are no rows).
func (r *Result) Decode(v any) error {
	var payload any
	if r.Single() {
		if r.Len() == 0 {
			return ErrNoRows
		}
		payload = r.rows[0]
	} else {
		rows := r.Rows()
		if rows == nil {
			rows = []Row{}
		}
		payload = rows
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}

// DecodeOne decodes the first row into v, ignoring the single flag.
func (r *Result) DecodeOne(v any) error {
	if r.Len() == 0 {
		return ErrNoRows
	}
	return NewResult(r.rows[:1], true).Decode(v)
}
