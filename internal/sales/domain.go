package sales

import (
	"fmt"
	"strconv"
	"time"

	"github.com/retail-daya/retail-daya/internal/shared"
)

// Warehouse column names. They are opaque identifiers, punctuation included,
// matching the fact table exactly.
const (
	ColDate = "fixdate"
	ColMemo = "NO.MEMO"

	DimSeries      = "SERIES"
	DimSegment     = "SEGMENT"
	DimUnitType    = "TIPEUNIT"
	DimSalesforce  = "NAMASALESFORCE"
	DimPaymentType = "TIPEPEMBAYARAN"
	DimLeasing     = "LEASING"
)

// Columns of the customer dataset, aliased by the contract join query.
const (
	CustomerColDate = "tgl_nd"
	CustomerColMemo = "no_espk"
)

// Event is one normalized sale transaction. Year and Month are the zero-padded
// strings the month filter compares against; Day is the 1-based day of month.
// Dims holds every warehouse column as opaque text.
type Event struct {
	ID    string            `json:"id"`
	Date  time.Time         `json:"date"`
	Year  string            `json:"year"`
	Month string            `json:"month"`
	Day   int               `json:"day"`
	Dims  map[string]string `json:"dims"`
}

// Dim returns the value of a categorical column, empty when absent.
func (e Event) Dim(col string) string {
	return e.Dims[col]
}

// MonthWindow selects a day range inside one calendar month.
type MonthWindow struct {
	Year     string
	Month    string
	StartDay int
	EndDay   int
}

// DaysInMonth returns the number of days in the window's month, or 0 when the
// year/month strings do not parse.
func (w MonthWindow) DaysInMonth() int {
	year, err := strconv.Atoi(w.Year)
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(w.Month)
	if err != nil || month < 1 || month > 12 {
		return 0
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Validate enforces 1 <= StartDay <= EndDay <= daysInMonth.
func (w MonthWindow) Validate() error {
	last := w.DaysInMonth()
	if last == 0 {
		return fmt.Errorf("%w: bad month %q-%q", shared.ErrInvalidRange, w.Year, w.Month)
	}
	if w.StartDay < 1 || w.EndDay > last || w.StartDay > w.EndDay {
		return fmt.Errorf("%w: days %d-%d outside 1-%d", shared.ErrInvalidRange, w.StartDay, w.EndDay, last)
	}
	return nil
}

// Days lists every day in the window, ascending.
func (w MonthWindow) Days() []int {
	days := make([]int, 0, w.EndDay-w.StartDay+1)
	for d := w.StartDay; d <= w.EndDay; d++ {
		days = append(days, d)
	}
	return days
}

// DayCount is one cell of a dense daily series.
type DayCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// Breakdown is a dense day-by-category count grid. Categories come only from
// the filtered input window, in first-seen order; every day in the window is
// present for every category, zero-filled.
type Breakdown struct {
	Dimension  string           `json:"dimension"`
	Days       []int            `json:"days"`
	Categories []string         `json:"categories"`
	Counts     map[string][]int `json:"counts"`
}

// DayTotal sums the breakdown across categories for the i-th day.
func (b *Breakdown) DayTotal(i int) int {
	total := 0
	for _, cat := range b.Categories {
		total += b.Counts[cat][i]
	}
	return total
}

// Matrix is a category-by-category count cross tab.
type Matrix struct {
	RowDim string   `json:"row_dim"`
	ColDim string   `json:"col_dim"`
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}
