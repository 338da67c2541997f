package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-daya/retail-daya/internal/shared"
)

func TestMonthWindowDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, MonthWindow{Year: "2024", Month: "03"}.DaysInMonth())
	assert.Equal(t, 29, MonthWindow{Year: "2024", Month: "02"}.DaysInMonth())
	assert.Equal(t, 28, MonthWindow{Year: "2023", Month: "02"}.DaysInMonth())
	assert.Equal(t, 30, MonthWindow{Year: "2024", Month: "04"}.DaysInMonth())

	assert.Zero(t, MonthWindow{Year: "20x4", Month: "02"}.DaysInMonth())
	assert.Zero(t, MonthWindow{Year: "2024", Month: "13"}.DaysInMonth())
	assert.Zero(t, MonthWindow{Year: "2024", Month: "00"}.DaysInMonth())
}

func TestMonthWindowValidate(t *testing.T) {
	valid := MonthWindow{Year: "2024", Month: "03", StartDay: 1, EndDay: 31}
	require.NoError(t, valid.Validate())

	single := MonthWindow{Year: "2024", Month: "03", StartDay: 15, EndDay: 15}
	require.NoError(t, single.Validate())

	for _, w := range []MonthWindow{
		{Year: "2024", Month: "03", StartDay: 0, EndDay: 10},
		{Year: "2024", Month: "03", StartDay: 1, EndDay: 32},
		{Year: "2024", Month: "03", StartDay: 20, EndDay: 10},
		{Year: "2024", Month: "xx", StartDay: 1, EndDay: 10},
	} {
		err := w.Validate()
		require.Error(t, err, "window %+v", w)
		assert.ErrorIs(t, err, shared.ErrInvalidRange)
	}
}

func TestMonthWindowDays(t *testing.T) {
	w := MonthWindow{Year: "2024", Month: "03", StartDay: 3, EndDay: 6}
	assert.Equal(t, []int{3, 4, 5, 6}, w.Days())
}

func TestBreakdownDayTotal(t *testing.T) {
	b := &Breakdown{
		Dimension:  DimSeries,
		Days:       []int{1, 2},
		Categories: []string{"BEAT", "VARIO"},
		Counts: map[string][]int{
			"BEAT":  {2, 0},
			"VARIO": {1, 1},
		},
	}
	assert.Equal(t, 3, b.DayTotal(0))
	assert.Equal(t, 1, b.DayTotal(1))
}
