package domain

import "strings"

// TaskFilter narrows a task list by free text and priority. A zero filter
// matches everything.
type TaskFilter struct {
	Search   string
	Priority Priority // "" or "all" matches any priority
}

func (f TaskFilter) Matches(t *Task) bool {
	if f.Priority != "" && f.Priority != "all" && t.Priority != f.Priority {
		return false
	}
	return containsFold(f.Search, t.Name, t.Description)
}

// Apply returns the matching tasks in their original order.
func (f TaskFilter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// DocumentFilter narrows the document library by name or category.
type DocumentFilter struct {
	Search string
	Type   DocumentType
}

func (f DocumentFilter) Matches(d *Document) bool {
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	return containsFold(f.Search, d.Name, d.Category)
}

func (f DocumentFilter) Apply(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for i := range docs {
		if f.Matches(&docs[i]) {
			out = append(out, docs[i])
		}
	}
	return out
}

// GroupDocuments splits docs into technical documentation and guides.
func GroupDocuments(docs []Document) (technical, guides []Document) {
	for _, d := range docs {
		switch d.Type {
		case DocumentTechnical:
			technical = append(technical, d)
		case DocumentGuide:
			guides = append(guides, d)
		}
	}
	return technical, guides
}

// containsFold reports whether query occurs in any of fields, ignoring case.
// An empty query matches.
func containsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
