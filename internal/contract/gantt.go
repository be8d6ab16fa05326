package contract

import (
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

type GanttRequest struct {
	ProjectID string
	// Now overrides the clock for the today marker.
	Now *time.Time
}

func NewGanttRequest(projectID string) GanttRequest {
	return GanttRequest{ProjectID: projectID}
}

// GanttRow is one phase bar.
type GanttRow struct {
	Phase    domain.Phase
	Position timeline.Position
}

type GanttResponse struct {
	Project domain.Project
	// Empty is set when the project has no phases; Range and Rows are then zero.
	Empty         bool
	Range         timeline.DateRange
	Rows          []GanttRow
	Today         time.Time
	TodayFraction float64
}

// TodayVisible reports whether the today marker falls on the track. A
// single-day range puts every date at fraction 0, so there the marker shows
// only on that day.
func (r *GanttResponse) TodayVisible() bool {
	if r.Empty {
		return false
	}
	if r.Range.IsDegenerate() {
		return timeline.Date(r.Today).Equal(r.Range.MinDate)
	}
	return r.TodayFraction >= 0 && r.TodayFraction <= 1
}

type GanttErrorCode string

const (
	GanttErrProjectNotFound GanttErrorCode = "PROJECT_NOT_FOUND"
	GanttErrInvalidPhase    GanttErrorCode = "INVALID_PHASE"
)

type GanttError struct {
	Code    GanttErrorCode
	Message string
	Err     error
}

func (e *GanttError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *GanttError) Unwrap() error {
	return e.Err
}
