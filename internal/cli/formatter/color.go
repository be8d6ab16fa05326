package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors phases and tasks: completed green, in progress blue,
// pending dim.
func StatusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusCompleted:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusPill returns a colored indicator such as "● In Progress".
func StatusPill(s domain.Status) string {
	switch s {
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ " + s.Label())
	case domain.StatusInProgress:
		return StyleBlue.Render("● " + s.Label())
	case domain.StatusPending:
		return StyleDim.Render("○ " + s.Label())
	}
	return StyleDim.Render(string(s))
}

func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityCritical:
		return StyleRed
	case domain.PriorityHigh:
		return StyleHeader
	case domain.PriorityMedium:
		return StyleYellow
	default:
		return StyleDim
	}
}

func PriorityBadge(p domain.Priority) string {
	return PriorityStyle(p).Render(strings.ToUpper(p.Label()))
}

func KPIStatusStyle(s domain.KPIStatus) lipgloss.Style {
	switch s {
	case domain.KPIExcellent:
		return StyleGreen
	case domain.KPIGood:
		return StyleBlue
	case domain.KPIWarning:
		return StyleYellow
	default:
		return StyleRed
	}
}

func KPIStatusBadge(s domain.KPIStatus) string {
	return KPIStatusStyle(s).Render("● " + s.Label())
}

func MethodologyBadge(m domain.Methodology) string {
	if m == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(m.Label())
}

// Header renders an uppercase section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}
