package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanDelete_BelowThreshold(t *testing.T) {
	for _, progress := range []int{0, 1, 15, 19} {
		p := &Project{Progress: progress}
		assert.True(t, p.CanDelete(), "progress %d should be deletable", progress)
	}
}

func TestCanDelete_AtOrAboveThreshold(t *testing.T) {
	for _, progress := range []int{20, 45, 78, 100} {
		p := &Project{Progress: progress}
		assert.False(t, p.CanDelete(), "progress %d should not be deletable", progress)
	}
}

func TestIsActive(t *testing.T) {
	assert.False(t, (&Project{Progress: 0}).IsActive())
	assert.True(t, (&Project{Progress: 1}).IsActive())
	assert.True(t, (&Project{Progress: 99}).IsActive())
	assert.False(t, (&Project{Progress: 100}).IsActive())
}

func TestDisplayID_UUID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDisplayID_SeededID(t *testing.T) {
	p := &Project{ID: "1"}
	assert.Equal(t, "1", p.DisplayID())
}

func TestParseMethodology(t *testing.T) {
	cases := map[string]Methodology{
		"scrum":     MethodologyScrum,
		"Kanban":    MethodologyKanban,
		"WATERFALL": MethodologyWaterfall,
		"Cascada":   MethodologyWaterfall,
	}
	for in, want := range cases {
		got, err := ParseMethodology(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMethodology("xp")
	assert.Error(t, err)
}

func TestParsePriority_SpanishLabels(t *testing.T) {
	cases := map[string]Priority{
		"Crítica": PriorityCritical,
		"Alta":    PriorityHigh,
		"Media":   PriorityMedium,
		"Baja":    PriorityLow,
		"high":    PriorityHigh,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseStatus_AcceptsHyphen(t *testing.T) {
	s, err := ParseStatus("in-progress")
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("done")
	assert.Error(t, err)
}
