// Package sqlstoretest provides in-memory doubles for sqlstore.DB.
package sqlstoretest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"funnel-metrics-service/internal/sqlstore"
)

// Row is one result row; values are assigned to Scan destinations by
// position.
type Row []any

// Rows implements sqlstore.RowScanner over a fixed set of rows.
type Rows struct {
	Data []Row
	Fail error // returned by Err after iteration

	i      int
	closed bool
}

func (r *Rows) Next() bool {
	if r.i >= len(r.Data) {
		return false
	}
	r.i++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.i == 0 || r.i > len(r.Data) {
		return errors.New("scan called without a current row")
	}
	row := r.Data[r.i-1]
	if len(dest) != len(row) {
		return fmt.Errorf("dest length mismatch: got %d, row has %d", len(dest), len(row))
	}
	for i := range dest {
		if err := assign(dest[i], row[i]); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

func (r *Rows) Err() error   { return r.Fail }
func (r *Rows) Close() error { r.closed = true; return nil }

// Closed reports whether Close was called.
func (r *Rows) Closed() bool { return r.closed }

func assign(dest, v any) error {
	if s, ok := dest.(sql.Scanner); ok {
		return s.Scan(v)
	}

	mismatch := fmt.Errorf("cannot assign %T to %T", v, dest)
	switch d := dest.(type) {
	case *int64:
		x, ok := v.(int64)
		if !ok {
			return mismatch
		}
		*d = x
	case *int:
		x, ok := v.(int64)
		if !ok {
			return mismatch
		}
		*d = int(x)
	case *float64:
		x, ok := v.(float64)
		if !ok {
			return mismatch
		}
		*d = x
	case *string:
		x, ok := v.(string)
		if !ok {
			return mismatch
		}
		*d = x
	case *bool:
		x, ok := v.(bool)
		if !ok {
			return mismatch
		}
		*d = x
	case *time.Time:
		x, ok := v.(time.Time)
		if !ok {
			return mismatch
		}
		*d = x
	case *[]byte:
		switch x := v.(type) {
		case []byte:
			*d = append([]byte(nil), x...)
		case string:
			*d = []byte(x)
		case nil:
			*d = nil
		default:
			return mismatch
		}
	default:
		return fmt.Errorf("unsupported dest type %T", dest)
	}
	return nil
}

// Result implements sql.Result.
type Result struct {
	Affected int64
}

func (r Result) LastInsertId() (int64, error) { return 0, errors.New("not implemented") }
func (r Result) RowsAffected() (int64, error) { return r.Affected, nil }

var _ sql.Result = Result{}

// Call records one query or exec.
type Call struct {
	Query string
	Args  []any
}

// DB implements sqlstore.DB. Unset hooks return empty rows and one
// affected row.
type DB struct {
	QueryFn func(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error)
	ExecFn  func(ctx context.Context, query string, args ...any) (sql.Result, error)

	mu      sync.Mutex
	Queries []Call
	Execs   []Call
}

func (f *DB) QueryContext(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error) {
	f.mu.Lock()
	f.Queries = append(f.Queries, Call{Query: query, Args: args})
	f.mu.Unlock()
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &Rows{}, nil
}

func (f *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.mu.Lock()
	f.Execs = append(f.Execs, Call{Query: query, Args: args})
	f.mu.Unlock()
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return Result{Affected: 1}, nil
}

// LastQuery returns the most recent query call.
func (f *DB) LastQuery() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Queries) == 0 {
		return Call{}
	}
	return f.Queries[len(f.Queries)-1]
}

var _ sqlstore.DB = (*DB)(nil)
