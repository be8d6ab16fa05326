package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func twoPhases() []Span {
	return []Span{
		{Start: d(2025, 1, 15), End: d(2025, 3, 15)},
		{Start: d(2025, 3, 16), End: d(2025, 6, 30)},
	}
}

func TestResolve_TwoPhases(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	assert.Equal(t, d(2025, 1, 15), r.MinDate)
	assert.Equal(t, d(2025, 6, 30), r.MaxDate)
	assert.Equal(t, 166, r.TotalDays)
	assert.Equal(t, []time.Time{
		d(2025, 1, 1), d(2025, 2, 1), d(2025, 3, 1),
		d(2025, 4, 1), d(2025, 5, 1), d(2025, 6, 1),
	}, r.Months)
}

func TestResolve_YearRollover(t *testing.T) {
	r, err := Resolve([]Span{{Start: d(2025, 11, 15), End: d(2026, 2, 10)}})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		d(2025, 11, 1), d(2025, 12, 1), d(2026, 1, 1), d(2026, 2, 1),
	}, r.Months)
}

func TestResolve_MonthEndDoesNotSkipFebruary(t *testing.T) {
	r, err := Resolve([]Span{{Start: d(2025, 1, 31), End: d(2025, 3, 1)}})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{d(2025, 1, 1), d(2025, 2, 1), d(2025, 3, 1)}, r.Months)
	assert.Equal(t, 29, r.TotalDays)
}

func TestResolve_MinAndMaxFromAnyPhase(t *testing.T) {
	// Unordered input: the widest phase is in the middle.
	r, err := Resolve([]Span{
		{Start: d(2025, 5, 1), End: d(2025, 5, 10)},
		{Start: d(2025, 2, 1), End: d(2025, 9, 30)},
		{Start: d(2025, 3, 1), End: d(2025, 4, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, d(2025, 2, 1), r.MinDate)
	assert.Equal(t, d(2025, 9, 30), r.MaxDate)
}

func TestResolve_EmptyInput(t *testing.T) {
	_, err := Resolve(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Resolve([]Span{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestResolve_InvertedSpan(t *testing.T) {
	_, err := Resolve([]Span{
		{Start: d(2025, 1, 1), End: d(2025, 2, 1)},
		{Start: d(2025, 5, 1), End: d(2025, 4, 1)},
	})
	require.ErrorIs(t, err, ErrInvertedSpan)
	assert.Contains(t, err.Error(), "span 1")
}

func TestResolve_SingleDay(t *testing.T) {
	r, err := Resolve([]Span{{Start: d(2025, 7, 4), End: d(2025, 7, 4)}})
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalDays)
	assert.True(t, r.IsDegenerate())
	assert.Equal(t, []time.Time{d(2025, 7, 1)}, r.Months)
}

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	r, err := Resolve([]Span{{
		Start: time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.Equal(t, d(2025, 1, 15), r.MinDate)
	assert.Equal(t, 1, r.TotalDays)
}

func TestPlace_FullRange(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	pos, err := Place(r.MinDate, r.MaxDate, r)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pos.OffsetFraction)
	assert.Equal(t, 1.0, pos.WidthFraction)
}

func TestPlace_SecondPhase(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	pos, err := Place(d(2025, 3, 16), d(2025, 6, 30), r)
	require.NoError(t, err)
	assert.InDelta(t, 60.0/166.0, pos.OffsetFraction, 1e-9)
	assert.InDelta(t, 106.0/166.0, pos.WidthFraction, 1e-9)
}

func TestPlace_DegenerateRange(t *testing.T) {
	r, err := Resolve([]Span{{Start: d(2025, 7, 4), End: d(2025, 7, 4)}})
	require.NoError(t, err)

	pos, err := Place(d(2025, 7, 4), d(2025, 7, 4), r)
	require.NoError(t, err)
	assert.Equal(t, Position{}, pos)
	assert.False(t, math.IsNaN(pos.WidthFraction))
}

func TestPlace_NotClamped(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	pos, err := Place(d(2025, 6, 1), d(2025, 8, 1), r)
	require.NoError(t, err)
	assert.Greater(t, pos.OffsetFraction+pos.WidthFraction, 1.0)
}

func TestPlace_Inverted(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	_, err = Place(d(2025, 4, 1), d(2025, 3, 1), r)
	assert.ErrorIs(t, err, ErrInvertedSpan)
}

func TestTodayFraction_WorkedExample(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	f := TodayFraction(r, time.Date(2025, 4, 15, 9, 45, 0, 0, time.UTC))
	assert.InDelta(t, 90.0/166.0, f, 1e-9)
	assert.InDelta(t, 0.542, f, 0.001)
}

func TestTodayFraction_OutsideRange(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	assert.Less(t, TodayFraction(r, d(2024, 12, 1)), 0.0)
	assert.Greater(t, TodayFraction(r, d(2025, 8, 1)), 1.0)
}

func TestTodayFraction_DegenerateRange(t *testing.T) {
	r, err := Resolve([]Span{{Start: d(2025, 7, 4), End: d(2025, 7, 4)}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, TodayFraction(r, d(2025, 9, 1)))
}

func TestTodayFraction_UsesCalendarDateOfLocalTime(t *testing.T) {
	r, err := Resolve(twoPhases())
	require.NoError(t, err)

	// 23:30 in UTC-5 is already the next day in UTC; the local date counts.
	est := time.FixedZone("EST", -5*3600)
	f := TodayFraction(r, time.Date(2025, 4, 15, 23, 30, 0, 0, est))
	assert.InDelta(t, 90.0/166.0, f, 1e-9)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(d(2025, 1, 1), d(2025, 1, 1)))
	assert.Equal(t, 31, DaysBetween(d(2025, 1, 1), d(2025, 2, 1)))
	assert.Equal(t, -31, DaysBetween(d(2025, 2, 1), d(2025, 1, 1)))
	assert.Equal(t, 366, DaysBetween(d(2024, 1, 1), d(2025, 1, 1)))
}

func TestFixedClock(t *testing.T) {
	at := d(2025, 4, 15)
	var c Clock = FixedClock{At: at}
	assert.Equal(t, at, c.Now())
	assert.IsType(t, SystemClock{}, ClockOrSystem(nil))
	assert.Equal(t, c, ClockOrSystem(c))
}
