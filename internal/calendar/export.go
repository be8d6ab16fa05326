// Package calendar exports a project's phases and tasks as an iCalendar feed
// so the timeline can be followed from any calendar client.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/timeline"
)

const (
	productID = "-//planboard//project timeline//EN"
	uidDomain = "planboard"

	CategoryPhase = "PHASE"
	CategoryTask  = "TASK"
)

// Build returns a calendar with one all-day event per phase and per task.
// DTEND is exclusive in iCalendar, so every event ends the day after its last
// day. stamp becomes DTSTAMP on every event.
func Build(detail *contract.ProjectDetail, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(detail.Project.Name)

	for i := range detail.Phases {
		ph := &detail.Phases[i]
		ev := cal.AddEvent(uid("phase", ph.ID))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(ph.Name)
		ev.SetDescription(fmt.Sprintf("%s phase of %s (%s)", ph.Status.Label(), detail.Project.Name, ph.Status))
		setDays(ev, ph.StartDate, ph.EndDate)
		ev.AddProperty(ics.ComponentPropertyCategories, CategoryPhase)
	}

	for i := range detail.Tasks {
		t := &detail.Tasks[i]
		ev := cal.AddEvent(uid("task", t.ID))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(t.Name)
		ev.SetDescription(taskDescription(detail, t))
		setDays(ev, t.StartDate, t.EndDate)
		ev.AddProperty(ics.ComponentPropertyCategories, CategoryTask)
	}
	return cal
}

// Export writes the project's calendar to w.
func Export(w io.Writer, detail *contract.ProjectDetail, stamp time.Time) error {
	if err := Build(detail, stamp).SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func uid(kind, id string) string {
	return kind + "-" + id + "@" + uidDomain
}

func setDays(ev *ics.VEvent, start, end time.Time) {
	ev.SetAllDayStartAt(timeline.Date(start))
	ev.SetAllDayEndAt(timeline.Date(end).AddDate(0, 0, 1))
}

func taskDescription(detail *contract.ProjectDetail, t *domain.Task) string {
	lines := []string{
		t.Description,
		"Assignee: " + t.Assignee,
		"Priority: " + t.Priority.Label(),
		"Status: " + t.Status.Label(),
	}
	if phase := detail.PhaseName(t.PhaseID); phase != "" {
		lines = append(lines, "Phase: "+phase)
	}
	return strings.Join(lines, "\n")
}
