package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

const (
	ganttLabelWidth = 22
	ganttMinWidth   = 20

	ganttBar      = "█"
	ganttToday    = "│"
	ganttTodayBar = "┃"
)

// GanttEmptyMessage is shown instead of a chart for projects without phases.
const GanttEmptyMessage = "No phases defined for this project. Add a phase to see the timeline."

// RenderGantt draws one bar per phase on a track width cells wide, with a
// month header, a today marker when it falls on the track, and a legend.
func RenderGantt(resp *contract.GanttResponse, width int) string {
	if resp.Empty {
		return Dim(GanttEmptyMessage)
	}
	width = max(width, ganttMinWidth)
	todayCol := -1
	if resp.TodayVisible() {
		todayCol = trackColumn(resp.TodayFraction, width)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+1))
	b.WriteString(Dim(monthHeader(resp.Range, width)))
	b.WriteString("\n")

	for _, row := range resp.Rows {
		b.WriteString(PadRight(Truncate(row.Phase.Name, ganttLabelWidth), ganttLabelWidth))
		b.WriteString(" ")
		b.WriteString(ganttTrack(row, resp.Range, width, todayCol))
		b.WriteString(" ")
		b.WriteString(Dim(fmt.Sprintf("%s → %s", row.Phase.StartDate.Format("Jan 2"), row.Phase.EndDate.Format("Jan 2"))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ganttLegend(resp))
	return b.String()
}

// trackColumn maps a fraction of the range to a cell. 1.0 lands on the last
// cell rather than one past it.
func trackColumn(fraction float64, width int) int {
	col := int(math.Floor(fraction * float64(width)))
	return min(max(col, 0), width-1)
}

// barSpan returns the half-open cell range [from, to) covered by a bar. Every
// bar is at least one cell wide.
func barSpan(pos timeline.Position, r timeline.DateRange, width int) (from, to int) {
	if r.IsDegenerate() {
		return 0, width
	}
	from = trackColumn(pos.OffsetFraction, width)
	to = int(math.Round((pos.OffsetFraction + pos.WidthFraction) * float64(width)))
	to = min(max(to, from+1), width)
	return from, to
}

func ganttTrack(row contract.GanttRow, r timeline.DateRange, width, todayCol int) string {
	from, to := barSpan(row.Position, r, width)
	style := StatusStyle(row.Phase.Status)

	var b strings.Builder
	for col := 0; col < width; col++ {
		inBar := col >= from && col < to
		switch {
		case col == todayCol && inBar:
			b.WriteString(StyleRed.Render(ganttTodayBar))
		case col == todayCol:
			b.WriteString(StyleRed.Render(ganttToday))
		case inBar:
			b.WriteString(style.Render(ganttBar))
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}

// monthHeader places each month's abbreviation at the column where the month
// starts. Labels that would overlap the previous one are skipped; the first
// label and every January carry the year.
func monthHeader(r timeline.DateRange, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i, m := range r.Months {
		col := 0
		if !r.IsDegenerate() {
			col = trackColumn(float64(timeline.DaysBetween(r.MinDate, m))/float64(r.TotalDays), width)
		}
		label := m.Format("Jan")
		if i == 0 || m.Month() == 1 {
			label = m.Format("Jan 2006")
		}
		if col < next {
			continue
		}
		for j, ch := range []rune(label) {
			if col+j >= width {
				break
			}
			line[col+j] = ch
		}
		next = col + len([]rune(label)) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func ganttLegend(resp *contract.GanttResponse) string {
	items := []string{
		StatusStyle(domain.StatusCompleted).Render(ganttBar) + " " + domain.StatusCompleted.Label(),
		StatusStyle(domain.StatusInProgress).Render(ganttBar) + " " + domain.StatusInProgress.Label(),
		StatusStyle(domain.StatusPending).Render(ganttBar) + " " + domain.StatusPending.Label(),
		StyleRed.Render(ganttToday) + " Today " + Dim("("+FormatDateLong(resp.Today)+")"),
	}
	legend := strings.Join(items, "   ")
	if !resp.TodayVisible() {
		legend += "  " + Dim("today is outside the timeline")
	}
	return legend
}
