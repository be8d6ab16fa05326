package formatter

import (
	"strings"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
)

// FormatDocumentLibrary renders the technical and guide groups. Empty groups
// are omitted; an empty library says so.
func FormatDocumentLibrary(lib *contract.DocumentLibrary) string {
	if lib.Total() == 0 {
		return Dim("No documents match.")
	}
	var sections []string
	if len(lib.Technical) > 0 {
		sections = append(sections, documentGroup(domain.DocumentTechnical, lib.Technical))
	}
	if len(lib.Guides) > 0 {
		sections = append(sections, documentGroup(domain.DocumentGuide, lib.Guides))
	}
	return strings.Join(sections, "\n")
}

func documentGroup(typ domain.DocumentType, docs []domain.Document) string {
	t := Table{
		Headers:    []string{"NAME", "CATEGORY", "SIZE", "UPLOADED"},
		RightAlign: []int{2},
	}
	for _, d := range docs {
		t.AddRow(Bold(d.Name), StylePurple.Render(d.Category), FormatSize(d.SizeBytes), FormatDate(d.UploadDate))
	}
	return Header(typ.Label()) + "\n" + t.Render()
}
