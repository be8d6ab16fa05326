package importer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
)

// WorkspaceSchema is the top-level JSON structure of a workspace file: a set
// of projects with their children, plus the shared document library.
type WorkspaceSchema struct {
	Projects  []ProjectImport  `json:"projects"`
	Documents []DocumentImport `json:"documents,omitempty"`
}

// ProjectImport defines a project and everything it owns. IDs are optional;
// missing ones are generated. Tasks reference phases by phase ID.
type ProjectImport struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	EndDate     string         `json:"end_date"`
	Budget      float64        `json:"budget"`
	Methodology string         `json:"methodology"`
	Progress    int            `json:"progress"`
	Members     []MemberImport `json:"members,omitempty"`
	Phases      []PhaseImport  `json:"phases,omitempty"`
	Tasks       []TaskImport   `json:"tasks,omitempty"`
	KPIs        []KPIImport    `json:"kpis,omitempty"`
}

type MemberImport struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	RoleDescription string `json:"role_description"`
}

type PhaseImport struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status,omitempty"`
}

type TaskImport struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Priority    string   `json:"priority,omitempty"`
	Assignee    string   `json:"assignee"`
	PhaseID     string   `json:"phase_id"`
	Status      string   `json:"status,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Images      []string `json:"images,omitempty"`
}

type KPIImport struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	Target        float64 `json:"target"`
	Current       float64 `json:"current"`
	Unit          string  `json:"unit"`
	Description   string  `json:"description"`
	LowerIsBetter bool    `json:"lower_is_better,omitempty"`
}

// DocumentImport sizes are human readable, e.g. "2.4 MB".
type DocumentImport struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	UploadDate string `json:"upload_date"`
	Category   string `json:"category"`
}

//go:embed seed/workspace.json
var seedFS embed.FS

// ParseWorkspace decodes a workspace file, rejecting unknown fields.
func ParseWorkspace(data []byte) (*WorkspaceSchema, error) {
	var schema WorkspaceSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing workspace file: %w", err)
	}
	return &schema, nil
}

// LoadWorkspace reads and parses a workspace JSON file.
func LoadWorkspace(path string) (*WorkspaceSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorkspace(data)
}

// SeedWorkspace returns the demo workspace bundled with the binary.
func SeedWorkspace() (*WorkspaceSchema, error) {
	data, err := seedFS.ReadFile("seed/workspace.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded seed: %w", err)
	}
	return ParseWorkspace(data)
}
