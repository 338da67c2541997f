package sales

import (
	"reflect"
	"testing"

	"github.com/retail-daya/retail-daya/internal/warehouse"
)

func TestFromRowsParsesDatesAndKeepsColumns(t *testing.T) {
	rows := []warehouse.Row{
		{ColDate: "2024-03-05 00:00:00", ColMemo: "M-001", DimSeries: "BEAT", "KOTA/KAB": "SLEMAN"},
		{ColDate: "garbage", ColMemo: "M-002", DimSeries: "VARIO"},
		{ColDate: "", ColMemo: "M-003"},
	}
	events := FromRows(rows, ColDate, ColMemo)
	if len(events) != 3 {
		t.Fatalf("expected 3 events got %d", len(events))
	}
	if events[0].ID != "M-001" {
		t.Fatalf("expected id from memo column, got %q", events[0].ID)
	}
	if events[0].Date.IsZero() {
		t.Fatalf("expected parsed date for first row")
	}
	if !events[1].Date.IsZero() || !events[2].Date.IsZero() {
		t.Fatalf("unparseable dates must stay zero")
	}
	if events[0].Dim("KOTA/KAB") != "SLEMAN" {
		t.Fatalf("punctuated column not carried: %v", events[0].Dims)
	}
}

func TestNormalizeDropsUnparseableAndFillsFields(t *testing.T) {
	rows := []warehouse.Row{
		{ColDate: "2024-03-05 00:00:00", ColMemo: "M-001"},
		{ColDate: "not-a-date", ColMemo: "M-002"},
		{ColDate: "2023-12-31", ColMemo: "M-003"},
	}
	events := Normalize(FromRows(rows, ColDate, ColMemo), nil)
	if len(events) != 2 {
		t.Fatalf("expected 2 kept events got %d", len(events))
	}
	if events[0].Year != "2024" || events[0].Month != "03" || events[0].Day != 5 {
		t.Fatalf("unexpected derived fields %+v", events[0])
	}
	if events[1].Year != "2023" || events[1].Month != "12" || events[1].Day != 31 {
		t.Fatalf("unexpected derived fields %+v", events[1])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rows := []warehouse.Row{
		{ColDate: "2024-03-05 00:00:00", ColMemo: "M-001"},
		{ColDate: "bad", ColMemo: "M-002"},
	}
	once := Normalize(FromRows(rows, ColDate, ColMemo), nil)
	twice := Normalize(once, nil)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize must be idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestFilterMonthStringEquality(t *testing.T) {
	events := []Event{
		{ID: "a", Year: "2024", Month: "03", Day: 1},
		{ID: "b", Year: "2024", Month: "11", Day: 2},
		{ID: "c", Year: "2023", Month: "03", Day: 3},
	}
	got := FilterMonth(events, "2024", "03")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only event a, got %+v", got)
	}
	// Month strings are zero padded; "3" never matches.
	if got := FilterMonth(events, "2024", "3"); len(got) != 0 {
		t.Fatalf("unpadded month must match nothing, got %+v", got)
	}
}

func TestYearsSortedDistinct(t *testing.T) {
	events := []Event{
		{Year: "2024"}, {Year: "2022"}, {Year: "2024"}, {Year: "2023"},
	}
	got := Years(events)
	want := []string{"2022", "2023", "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}
