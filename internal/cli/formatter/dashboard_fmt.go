package formatter

import (
	"strconv"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

const statCardWidth = 18

func statCard(label, value string, valueStyle lipgloss.Style) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Width(statCardWidth).
		Padding(0, 1).
		Render(Dim(label) + "\n" + valueStyle.Bold(true).Render(value))
}

// FormatStats renders the four headline cards side by side.
func FormatStats(s *contract.DashboardStats) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total projects", strconv.Itoa(s.TotalProjects), StyleFg),
		statCard("Active projects", strconv.Itoa(s.ActiveProjects), StyleBlue),
		statCard("Total budget", FormatMoney(s.TotalBudget), StyleGreen),
		statCard("Completed tasks", strconv.Itoa(s.CompletedTasks), StylePurple),
	)
}
