package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPhaseGantt(t *testing.T, today time.Time) *contract.GanttResponse {
	t.Helper()
	phases := []domain.Phase{
		{ID: "a", Name: "Análisis", StartDate: date(2025, 1, 15), EndDate: date(2025, 3, 15), Status: domain.StatusCompleted},
		{ID: "b", Name: "Desarrollo", StartDate: date(2025, 3, 16), EndDate: date(2025, 6, 30), Status: domain.StatusPending},
	}
	spans := make([]timeline.Span, len(phases))
	for i, ph := range phases {
		spans[i] = timeline.Span{Start: ph.StartDate, End: ph.EndDate}
	}
	r, err := timeline.Resolve(spans)
	require.NoError(t, err)

	resp := &contract.GanttResponse{Range: r, Today: today, TodayFraction: timeline.TodayFraction(r, today)}
	for _, ph := range phases {
		pos, err := timeline.Place(ph.StartDate, ph.EndDate, r)
		require.NoError(t, err)
		resp.Rows = append(resp.Rows, contract.GanttRow{Phase: ph, Position: pos})
	}
	return resp
}

// track returns the width cells after the label column of a chart line.
func track(line string, width int) []rune {
	r := []rune(line)
	return r[ganttLabelWidth+1 : ganttLabelWidth+1+width]
}

func TestRenderGantt_BarsAndTodayMarker(t *testing.T) {
	const width = 40
	out := stripANSI(RenderGantt(twoPhaseGantt(t, date(2025, 4, 15)), width))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[0], " "), "Jan 2025"))

	// 59 of 166 days: cells [0, 14).
	first := track(lines[1], width)
	assert.True(t, strings.HasPrefix(lines[1], "Análisis"))
	assert.Equal(t, strings.Repeat("█", 14), string(first[:14]))
	// Today is day 90 of 166, cell 21, outside the first bar.
	assert.Equal(t, '│', first[21])
	assert.Equal(t, ' ', first[14])

	second := track(lines[2], width)
	assert.Equal(t, ' ', second[13])
	assert.Equal(t, '█', second[14])
	assert.Equal(t, '┃', second[21])
	assert.Equal(t, '█', second[width-1])

	assert.Contains(t, lines[1], "Jan 15 → Mar 15")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Today (Apr 15, 2025)")
	assert.NotContains(t, out, "outside the timeline")
}

func TestRenderGantt_TodayOffTrack(t *testing.T) {
	out := stripANSI(RenderGantt(twoPhaseGantt(t, date(2025, 9, 1)), 40))
	lines := strings.Split(out, "\n")
	for _, line := range lines[1:3] {
		assert.NotContains(t, string(track(line, 40)), "│")
		assert.NotContains(t, string(track(line, 40)), "┃")
	}
	assert.Contains(t, out, "today is outside the timeline")
}

func TestRenderGantt_NarrowWidthIsRaised(t *testing.T) {
	out := stripANSI(RenderGantt(twoPhaseGantt(t, date(2025, 4, 15)), 5))
	lines := strings.Split(out, "\n")
	assert.Len(t, track(lines[1], ganttMinWidth), ganttMinWidth)
}

func TestRenderGantt_Empty(t *testing.T) {
	out := stripANSI(RenderGantt(&contract.GanttResponse{Empty: true}, 60))
	assert.Equal(t, GanttEmptyMessage, out)
}

func TestRenderGantt_SingleDayRangeFillsTrack(t *testing.T) {
	d := date(2025, 5, 5)
	r, err := timeline.Resolve([]timeline.Span{{Start: d, End: d}})
	require.NoError(t, err)
	resp := &contract.GanttResponse{
		Range: r, Today: date(2026, 1, 1), TodayFraction: 5,
		Rows: []contract.GanttRow{{Phase: domain.Phase{Name: "Kickoff", StartDate: d, EndDate: d, Status: domain.StatusInProgress}}},
	}
	out := stripANSI(RenderGantt(resp, 20))
	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Repeat("█", 20), string(track(lines[1], 20)))
	assert.Contains(t, out, "today is outside the timeline")

	resp.Today, resp.TodayFraction = d, 0
	assert.NotContains(t, stripANSI(RenderGantt(resp, 20)), "today is outside the timeline")
}

func TestMonthHeader_SkipsOverlappingLabels(t *testing.T) {
	r, err := timeline.Resolve([]timeline.Span{{Start: date(2025, 11, 15), End: date(2026, 2, 10)}})
	require.NoError(t, err)
	header := monthHeader(r, 40)
	assert.True(t, strings.HasPrefix(header, "Nov 2025"))
	assert.Contains(t, header, "Jan 2026")
	assert.Contains(t, header, "Feb")
}
