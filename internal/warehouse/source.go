// Package warehouse reads the remote sales warehouse. The warehouse is an
// opaque, already-populated relational source: column names are treated as
// plain strings (several carry punctuation, e.g. "NO.MEMO" or "KOTA/KAB") and
// every cell comes back as text for the normalization layer to interpret.
package warehouse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Row is a single record keyed by opaque column name.
type Row map[string]string

// Source executes read-only queries against the warehouse.
type Source interface {
	Query(ctx context.Context, query string) ([]Row, error)
	Close()
}

// Config locates the warehouse endpoint.
type Config struct {
	URL       string
	AuthToken string
}

// Open picks a Source implementation from the URL scheme: postgres:// DSNs go
// through pgx, file paths and file: URLs through the sqlite driver (the
// warehouse replica case).
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"), strings.HasPrefix(cfg.URL, "postgresql://"):
		return openPostgres(ctx, cfg)
	case strings.HasPrefix(cfg.URL, "file:"), strings.HasSuffix(cfg.URL, ".db"), strings.HasSuffix(cfg.URL, ".sqlite"):
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("warehouse: unsupported url %q", cfg.URL)
	}
}

// mapQueryErr folds driver failures into the shared taxonomy: a deadline is an
// unavailable upstream, anything else a failed query.
func mapQueryErr(err error, sentinelUnavailable, sentinelFailed error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", sentinelUnavailable, err)
	}
	return fmt.Errorf("%w: %v", sentinelFailed, err)
}

// stringify renders a scanned cell as text. The normalizer downstream only
// ever sees strings.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(val)
	}
}
