package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/retail-daya/retail-daya/internal/shared"
)

func TestSQLSourceQueryOpaqueColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	src := NewSQLSource(db)
	defer src.Close()

	mock.ExpectQuery(`SELECT \* FROM LAPJUAL`).WillReturnRows(
		sqlmock.NewRows([]string{"NO.MEMO", "fixdate", "KOTA/KAB", "qty"}).
			AddRow("M-001", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "SLEMAN", 2).
			AddRow("M-002", "2024-03-06 00:00:00", nil, nil),
	)

	rows, err := src.Query(context.Background(), "SELECT * FROM LAPJUAL")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	if rows[0]["NO.MEMO"] != "M-001" {
		t.Fatalf("punctuated column lost: %v", rows[0])
	}
	if rows[0]["fixdate"] != "2024-03-05 00:00:00" {
		t.Fatalf("time cell not rendered as text: %q", rows[0]["fixdate"])
	}
	if rows[0]["qty"] != "2" {
		t.Fatalf("numeric cell not rendered as text: %q", rows[0]["qty"])
	}
	if rows[1]["KOTA/KAB"] != "" || rows[1]["qty"] != "" {
		t.Fatalf("NULL cells must come back empty: %v", rows[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSQLSourceMapsDeadlineToUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	src := NewSQLSource(db)
	defer src.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(context.DeadlineExceeded)

	_, err = src.Query(context.Background(), "SELECT * FROM LAPJUAL")
	if !errors.Is(err, shared.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSQLSourceMapsDriverErrorToQueryFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	src := NewSQLSource(db)
	defer src.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("no such table: LAPJUAL"))

	_, err = src.Query(context.Background(), "SELECT * FROM LAPJUAL")
	if !errors.Is(err, shared.ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "ftp://warehouse"}); err == nil {
		t.Fatalf("expected error for unsupported url")
	}
}
