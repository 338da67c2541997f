package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retail-daya/retail-daya/internal/shared"
)

// PGSource reads the warehouse over a pgx connection pool.
type PGSource struct {
	pool *pgxpool.Pool
}

func openPostgres(ctx context.Context, cfg Config) (*PGSource, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.AuthToken != "" {
		poolCfg.ConnConfig.Password = cfg.AuthToken
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return &PGSource{pool: pool}, nil
}

// Query runs a read-only statement and returns every row as opaque text cells.
func (s *PGSource) Query(ctx context.Context, query string) ([]Row, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, fd := range fields {
		cols[i] = fd.Name
	}

	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
		}
		record := make(Row, len(cols))
		for i, col := range cols {
			record[col] = stringify(values[i])
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryErr(err, shared.ErrUpstreamUnavailable, shared.ErrQueryFailed)
	}
	return out, nil
}

// Close releases the pool.
func (s *PGSource) Close() {
	s.pool.Close()
}

var _ Source = (*PGSource)(nil)
