// Package timeline computes the layout of a Gantt chart: the overall date
// range spanned by a set of phases, the month header, and the fractional
// offset and width of each bar and of the "today" marker within that range.
//
// All functions are pure. Callers recompute on every render.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrEmptyInput is returned by Resolve when there are no spans to lay out.
	// Callers render an empty state instead of a timeline.
	ErrEmptyInput = errors.New("timeline: no spans to resolve")

	// ErrInvertedSpan is returned when a span starts after it ends.
	ErrInvertedSpan = errors.New("timeline: span start is after end")
)

const day = 24 * time.Hour

// Span is a closed interval of calendar dates.
type Span struct {
	Start time.Time
	End   time.Time
}

// Validate reports ErrInvertedSpan when Start is after End.
func (s Span) Validate() error {
	if Date(s.Start).After(Date(s.End)) {
		return ErrInvertedSpan
	}
	return nil
}

// DateRange is the shared horizontal extent of a timeline.
type DateRange struct {
	MinDate   time.Time
	MaxDate   time.Time
	Months    []time.Time // first day of every month from MinDate's through MaxDate's
	TotalDays int
}

// IsDegenerate is true when the range covers a single day.
func (r DateRange) IsDegenerate() bool {
	return r.TotalDays == 0
}

// Position places a bar on the track as fractions of TotalDays. Values are
// not clamped to [0, 1].
type Position struct {
	OffsetFraction float64
	WidthFraction  float64
}

// Date truncates t to its calendar date at UTC midnight, keeping the year,
// month and day as seen in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the ceiling of (b - a) in days after both are reduced to
// calendar dates. It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	diff := Date(b).Sub(Date(a))
	return int(math.Ceil(diff.Hours() / day.Hours()))
}

// Resolve computes the range covering every start and end date in spans.
func Resolve(spans []Span) (DateRange, error) {
	if len(spans) == 0 {
		return DateRange{}, ErrEmptyInput
	}

	var lo, hi time.Time
	for i, s := range spans {
		if err := s.Validate(); err != nil {
			return DateRange{}, fmt.Errorf("span %d: %w", i, err)
		}
		start, end := Date(s.Start), Date(s.End)
		if i == 0 || start.Before(lo) {
			lo = start
		}
		if i == 0 || end.After(hi) {
			hi = end
		}
	}

	return DateRange{
		MinDate:   lo,
		MaxDate:   hi,
		Months:    Months(lo, hi),
		TotalDays: DaysBetween(lo, hi),
	}, nil
}

// Months lists the first day of each month from the month of from through the
// month of to, inclusive. It returns nil when to precedes from's month.
func Months(from, to time.Time) []time.Time {
	last := MonthStart(to)
	var out []time.Time
	for m := MonthStart(from); !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, m)
	}
	return out
}

// Place positions the span [start, end] within r. A degenerate range yields
// the zero Position.
func Place(start, end time.Time, r DateRange) (Position, error) {
	if err := (Span{Start: start, End: end}).Validate(); err != nil {
		return Position{}, err
	}
	if r.TotalDays == 0 {
		return Position{}, nil
	}
	total := float64(r.TotalDays)
	return Position{
		OffsetFraction: float64(DaysBetween(r.MinDate, start)) / total,
		WidthFraction:  float64(DaysBetween(start, end)) / total,
	}, nil
}

// TodayFraction is the offset of now's calendar date within r. A date before
// MinDate is negative and one after MaxDate exceeds 1. A degenerate range
// yields 0.
func TodayFraction(r DateRange, now time.Time) float64 {
	span := DaysBetween(r.MinDate, r.MaxDate)
	if span == 0 {
		return 0
	}
	return float64(DaysBetween(r.MinDate, now)) / float64(span)
}
