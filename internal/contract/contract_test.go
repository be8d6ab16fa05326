package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGanttRequest_Defaults(t *testing.T) {
	req := NewGanttRequest("1")
	assert.Equal(t, "1", req.ProjectID)
	assert.Nil(t, req.Now)
}

func TestGanttResponse_TodayVisible(t *testing.T) {
	rng, err := timeline.Resolve([]timeline.Span{{Start: day(2025, 1, 15), End: day(2025, 6, 30)}})
	require.NoError(t, err)

	r := GanttResponse{Range: rng, Today: day(2025, 4, 15), TodayFraction: 0.5}
	assert.True(t, r.TodayVisible())

	r.TodayFraction = 1.2
	assert.False(t, r.TodayVisible())

	r = GanttResponse{Empty: true}
	assert.False(t, r.TodayVisible())
}

func TestGanttResponse_TodayVisible_SingleDayRange(t *testing.T) {
	rng, err := timeline.Resolve([]timeline.Span{{Start: day(2025, 7, 4), End: day(2025, 7, 4)}})
	require.NoError(t, err)

	// TodayFraction is 0 for every date on a single-day range.
	r := GanttResponse{Range: rng, Today: day(2030, 1, 1), TodayFraction: timeline.TodayFraction(rng, day(2030, 1, 1))}
	assert.False(t, r.TodayVisible())

	r.Today = day(2025, 7, 3)
	assert.False(t, r.TodayVisible())

	r.Today = time.Date(2025, 7, 4, 18, 30, 0, 0, time.UTC)
	assert.True(t, r.TodayVisible())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGanttError_WrapsCause(t *testing.T) {
	err := &GanttError{Code: GanttErrProjectNotFound, Message: "no project 9", Err: apperr.ErrNotFound}
	assert.Equal(t, "PROJECT_NOT_FOUND: no project 9", err.Error())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestProjectDetail_PhaseName(t *testing.T) {
	d := ProjectDetail{Phases: []domain.Phase{{ID: "p1", Name: "Design"}}}
	assert.Equal(t, "Design", d.PhaseName("p1"))
	assert.Equal(t, "", d.PhaseName("p9"))
}

func TestDocumentLibrary_Total(t *testing.T) {
	l := DocumentLibrary{Technical: make([]domain.Document, 4), Guides: make([]domain.Document, 4)}
	assert.Equal(t, 8, l.Total())
}
