package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- fakes ---

type call struct {
	sql  string
	args []any
}

type result struct {
	rows *fakeRows
	err  error
}

// fakeQuerier replays results in call order and records every query.
type fakeQuerier struct {
	results []result
	calls   []call
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	i := len(f.calls) - 1
	if i >= len(f.results) {
		return nil, fmt.Errorf("unexpected query #%d", i+1)
	}
	r := f.results[i]
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type fakeRows struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func rowsOf(rows ...[]any) *fakeRows { return &fakeRows{rows: rows} }

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

// Scan mimics pgx for the destination kinds the store uses; nil skips a column.
func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		v := row[i]
		switch p := d.(type) {
		case nil:
		case *any:
			*p = v
		case **string:
			if v == nil {
				*p = nil
				continue
			}
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("scan column %d: %T into **string", i, v)
			}
			*p = &s
		case *int:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("scan column %d: %T into *int", i, v)
			}
			*p = n
		default:
			return fmt.Errorf("scan column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}
