package sales

import "sort"

// DailyTotals counts transactions per day over the window. The result is
// dense: every day in [StartDay, EndDay] is present exactly once, ascending,
// with explicit zeros where nothing sold. Events are expected to be
// pre-filtered to the window's month; days outside the bounds are ignored.
func DailyTotals(events []Event, w MonthWindow) ([]DayCount, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for _, e := range events {
		if e.Day >= w.StartDay && e.Day <= w.EndDay {
			counts[e.Day]++
		}
	}
	out := make([]DayCount, 0, w.EndDay-w.StartDay+1)
	for d := w.StartDay; d <= w.EndDay; d++ {
		out = append(out, DayCount{Day: d, Count: counts[d]})
	}
	return out, nil
}

// DailyBreakdown produces the dense day-by-category grid for one categorical
// dimension. The category set is exactly what the filtered input shows: a
// value absent from the window never appears, while days are always complete
// against the calendar. Categories keep first-seen order, stable per call.
func DailyBreakdown(events []Event, w MonthWindow, dim string) (*Breakdown, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	span := w.EndDay - w.StartDay + 1
	b := &Breakdown{
		Dimension: dim,
		Days:      w.Days(),
		Counts:    make(map[string][]int),
	}
	for _, e := range events {
		if e.Day < w.StartDay || e.Day > w.EndDay {
			continue
		}
		cat := e.Dim(dim)
		row, ok := b.Counts[cat]
		if !ok {
			row = make([]int, span)
			b.Counts[cat] = row
			b.Categories = append(b.Categories, cat)
		}
		row[e.Day-w.StartDay]++
	}
	return b, nil
}

// Heatmap cross-tabulates two categorical dimensions over the filtered input.
// Unobserved (row, col) pairs are explicit zeros; axes are sorted for a
// stable display, the way a pivot table lays them out.
func Heatmap(events []Event, rowDim, colDim string) *Matrix {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	var rows, cols []string
	for _, e := range events {
		rv, cv := e.Dim(rowDim), e.Dim(colDim)
		if _, ok := rowIdx[rv]; !ok {
			rowIdx[rv] = 0
			rows = append(rows, rv)
		}
		if _, ok := colIdx[cv]; !ok {
			colIdx[cv] = 0
			cols = append(cols, cv)
		}
	}
	sort.Strings(rows)
	sort.Strings(cols)
	for i, r := range rows {
		rowIdx[r] = i
	}
	for i, c := range cols {
		colIdx[c] = i
	}
	counts := make([][]int, len(rows))
	for i := range counts {
		counts[i] = make([]int, len(cols))
	}
	for _, e := range events {
		counts[rowIdx[e.Dim(rowDim)]][colIdx[e.Dim(colDim)]]++
	}
	return &Matrix{RowDim: rowDim, ColDim: colDim, Rows: rows, Cols: cols, Counts: counts}
}

// PruneZeroColumns returns a copy of the matrix without all-zero columns.
// Row order and the remaining column order are untouched. This is a display
// filter; the receiver keeps the full matrix.
func (m *Matrix) PruneZeroColumns() *Matrix {
	keep := make([]int, 0, len(m.Cols))
	for j := range m.Cols {
		for i := range m.Rows {
			if m.Counts[i][j] != 0 {
				keep = append(keep, j)
				break
			}
		}
	}
	out := &Matrix{
		RowDim: m.RowDim,
		ColDim: m.ColDim,
		Rows:   append([]string(nil), m.Rows...),
		Cols:   make([]string, 0, len(keep)),
		Counts: make([][]int, len(m.Rows)),
	}
	for _, j := range keep {
		out.Cols = append(out.Cols, m.Cols[j])
	}
	for i := range m.Rows {
		row := make([]int, 0, len(keep))
		for _, j := range keep {
			row = append(row, m.Counts[i][j])
		}
		out.Counts[i] = row
	}
	return out
}

// FilterRows returns a copy of the matrix keeping only the rows named in
// subset, in the matrix's own row order. Names absent from the matrix are
// ignored; an empty subset yields a matrix with no rows. Columns are copied
// whole, so callers re-apply PruneZeroColumns after filtering when columns
// emptied by the cut should disappear too. The receiver is untouched.
func (m *Matrix) FilterRows(subset []string) *Matrix {
	wanted := make(map[string]bool, len(subset))
	for _, name := range subset {
		wanted[name] = true
	}
	out := &Matrix{
		RowDim: m.RowDim,
		ColDim: m.ColDim,
		Cols:   append([]string(nil), m.Cols...),
	}
	for i, r := range m.Rows {
		if !wanted[r] {
			continue
		}
		out.Rows = append(out.Rows, r)
		out.Counts = append(out.Counts, append([]int(nil), m.Counts[i]...))
	}
	return out
}

// ColumnTotals sums each column across all rows, in column order.
func (m *Matrix) ColumnTotals() []int {
	totals := make([]int, len(m.Cols))
	for _, row := range m.Counts {
		for j, v := range row {
			totals[j] += v
		}
	}
	return totals
}
