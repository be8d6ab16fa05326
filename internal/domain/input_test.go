package domain

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validProjectInput() ProjectInput {
	return ProjectInput{
		Name:        "Portal",
		Description: "Corporate site",
		EndDate:     day(2025, 8, 15),
		Budget:      45000,
		Methodology: MethodologyWaterfall,
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestProjectInput_Valid(t *testing.T) {
	assert.NoError(t, validProjectInput().Validate())
}

func TestProjectInput_BlankAfterTrim(t *testing.T) {
	in := validProjectInput()
	in.Name = "   "
	in.Description = "\t"

	errs := fieldErrors(t, in.Validate())
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "description")
}

func TestProjectInput_Budget(t *testing.T) {
	in := validProjectInput()
	in.Budget = 0
	assert.Contains(t, fieldErrors(t, in.Validate()), "budget")

	in.Budget = -10
	errs := fieldErrors(t, in.Validate())
	assert.EqualError(t, errs["budget"], "must be greater than 0")
}

func TestProjectInput_MissingEndDate(t *testing.T) {
	in := validProjectInput()
	in.EndDate = time.Time{}
	assert.Contains(t, fieldErrors(t, in.Validate()), "end_date")
}

func TestProjectInput_NestedMemberAndPhase(t *testing.T) {
	in := validProjectInput()
	in.Members = []MemberInput{{Name: "Ana", Role: "PO", RoleDescription: ""}}
	in.Phases = []PhaseInput{{Name: "Design", StartDate: day(2025, 3, 1), EndDate: day(2025, 2, 1)}}

	errs := fieldErrors(t, in.Validate())
	assert.Contains(t, errs, "members")
	assert.Contains(t, errs, "phases")
}

func TestProjectInput_NormalizeDefaults(t *testing.T) {
	in := ProjectInput{
		Name:   "  Portal  ",
		Phases: []PhaseInput{{Name: " Build "}},
	}.Normalize()

	assert.Equal(t, "Portal", in.Name)
	assert.Equal(t, MethodologyScrum, in.Methodology)
	assert.Equal(t, "Build", in.Phases[0].Name)
	assert.Equal(t, StatusPending, in.Phases[0].Status)
}

func TestPhaseInput_EndBeforeStart(t *testing.T) {
	in := PhaseInput{Name: "QA", StartDate: day(2025, 10, 1), EndDate: day(2025, 9, 30)}.Normalize()
	errs := fieldErrors(t, in.Validate())
	assert.EqualError(t, errs["end_date"], "must not be before start_date")
}

func TestPhaseInput_SameDay(t *testing.T) {
	in := PhaseInput{Name: "Launch", StartDate: day(2025, 12, 1), EndDate: day(2025, 12, 1)}.Normalize()
	assert.NoError(t, in.Validate())
}

func TestTaskInput_RequiredFields(t *testing.T) {
	errs := fieldErrors(t, TaskInput{}.Normalize().Validate())
	for _, f := range []string{"name", "description", "assignee", "phase_id", "start_date", "end_date"} {
		assert.Contains(t, errs, f)
	}
	assert.NotContains(t, errs, "priority")
}

func TestTaskInput_NormalizeDropsBlankImages(t *testing.T) {
	in := TaskInput{Images: []string{" a.png ", "", "  "}}.Normalize()
	assert.Equal(t, []string{"a.png"}, in.Images)
	assert.Equal(t, PriorityMedium, in.Priority)
	assert.Equal(t, StatusPending, in.Status)
}

func TestTaskInput_InvalidPriority(t *testing.T) {
	in := TaskInput{
		Name: "x", Description: "y", Assignee: "z", PhaseID: "p1",
		Priority:  "urgent",
		StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2),
	}.Normalize()
	assert.Contains(t, fieldErrors(t, in.Validate()), "priority")
}

func TestKPIInput_TargetRules(t *testing.T) {
	in := KPIInput{Name: "Velocity", Target: 0, Current: 10, Unit: "pts", Description: "d"}
	assert.Contains(t, fieldErrors(t, in.Validate()), "target")

	in.LowerIsBetter = true
	assert.NoError(t, in.Validate())

	in.Target = -1
	assert.Contains(t, fieldErrors(t, in.Validate()), "target")
}

func TestKPIInput_NegativeCurrent(t *testing.T) {
	in := KPIInput{Name: "Coverage", Target: 80, Current: -1, Unit: "%", Description: "d"}
	assert.Contains(t, fieldErrors(t, in.Validate()), "current")
}
