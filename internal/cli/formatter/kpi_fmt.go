package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
)

const kpiBarWidth = 20

// FormatKPISummary renders the "on target" count followed by one block per KPI.
func FormatKPISummary(s *contract.KPISummary) string {
	if s.Total == 0 {
		return Dim("No KPIs defined.")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("On target"),
		Bold(fmt.Sprintf("%d of %d", s.OnTarget, s.Total))))
	for i := range s.KPIs {
		b.WriteString(formatKPI(&s.KPIs[i]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatKPI(k *domain.KPI) string {
	status := k.Status()
	goal := "target"
	if k.LowerIsBetter {
		goal = "max"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(k.Name), KPIStatusBadge(status)))
	b.WriteString(fmt.Sprintf("  %s %s  %s %s %s\n",
		Dim("current"), FormatNumber(k.Current),
		Dim(goal), FormatNumber(k.Target), Dim(k.Unit)))
	filled, empty := Bar(k.ProgressPercent(), kpiBarWidth)
	b.WriteString(fmt.Sprintf("  [%s%s] %5.1f%%\n",
		KPIStatusStyle(status).Render(filled), StyleDim.Render(empty), k.Percentage()))
	if k.Description != "" {
		b.WriteString("  " + Dim(k.Description) + "\n")
	}
	return b.String()
}
