package warehouse

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/retail-daya/retail-daya/internal/shared"
)

// SQLSource reads a local warehouse replica through database/sql.
type SQLSource struct {
	db *sql.DB
}

func openSQLite(cfg Config) (*SQLSource, error) {
	db, err := sql.Open("sqlite", cfg.URL)
	if err != nil {
		return nil, err
	}
	return &SQLSource{db: db}, nil
}

// NewSQLSource wraps an existing handle. Tests use this with a mocked driver.
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// Query runs a read-only statement and returns every row as opaque text cells.
func (s *SQLSource) Query(ctx context.Context, query string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
	}

	var out []Row
	for rows.Next() {
		cells := make([]any, len(cols))
		for i := range cells {
			cells[i] = new(any)
		}
		if err := rows.Scan(cells...); err != nil {
			return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
		}
		record := make(Row, len(cols))
		for i, col := range cols {
			record[col] = stringify(*cells[i].(*any))
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
	}
	return out, nil
}

// Close releases the handle.
func (s *SQLSource) Close() {
	_ = s.db.Close()
}

var _ Source = (*SQLSource)(nil)
