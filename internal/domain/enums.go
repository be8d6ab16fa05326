package domain

import (
	"fmt"
	"strings"
)

type Methodology string

const (
	MethodologyScrum     Methodology = "scrum"
	MethodologyKanban    Methodology = "kanban"
	MethodologyWaterfall Methodology = "waterfall"
)

// Methodologies lists every methodology in display order.
var Methodologies = []Methodology{MethodologyScrum, MethodologyKanban, MethodologyWaterfall}

func (m Methodology) Label() string {
	switch m {
	case MethodologyScrum:
		return "Scrum"
	case MethodologyKanban:
		return "Kanban"
	case MethodologyWaterfall:
		return "Waterfall"
	}
	return string(m)
}

// ParseMethodology accepts the canonical value or its label in any case.
// "cascada" is accepted as an alias of waterfall.
func ParseMethodology(s string) (Methodology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scrum":
		return MethodologyScrum, nil
	case "kanban":
		return MethodologyKanban, nil
	case "waterfall", "cascada":
		return MethodologyWaterfall, nil
	}
	return "", fmt.Errorf("invalid methodology %q (expected scrum, kanban or waterfall)", s)
}

// Status is shared by phases and tasks.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_"))) {
	case "pending":
		return StatusPending, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("invalid status %q (expected pending, in_progress or completed)", s)
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Label() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

// ParsePriority also accepts the Spanish labels used by imported workspaces.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "crítica", "critica":
		return PriorityCritical, nil
	case "high", "alta":
		return PriorityHigh, nil
	case "medium", "media":
		return PriorityMedium, nil
	case "low", "baja":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected critical, high, medium or low)", s)
}

type KPIStatus string

const (
	KPIExcellent KPIStatus = "excellent"
	KPIGood      KPIStatus = "good"
	KPIWarning   KPIStatus = "warning"
	KPICritical  KPIStatus = "critical"
)

func (s KPIStatus) Label() string {
	switch s {
	case KPIExcellent:
		return "Excellent"
	case KPIGood:
		return "Good"
	case KPIWarning:
		return "Warning"
	case KPICritical:
		return "Critical"
	}
	return string(s)
}

type DocumentType string

const (
	DocumentTechnical DocumentType = "technical"
	DocumentGuide     DocumentType = "guide"
)

func (t DocumentType) Label() string {
	switch t {
	case DocumentTechnical:
		return "Technical Documentation"
	case DocumentGuide:
		return "Guides"
	}
	return string(t)
}

func ParseDocumentType(s string) (DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "technical":
		return DocumentTechnical, nil
	case "guide":
		return DocumentGuide, nil
	}
	return "", fmt.Errorf("invalid document type %q (expected technical or guide)", s)
}
