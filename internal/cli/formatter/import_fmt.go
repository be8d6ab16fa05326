package formatter

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/contract"
)

func FormatImportResult(res *contract.ImportResult) string {
	return Success(fmt.Sprintf("Imported %d projects (%d members, %d phases, %d tasks, %d KPIs) and %d documents",
		res.ProjectCount, res.MemberCount, res.PhaseCount, res.TaskCount, res.KPICount, res.DocumentCount))
}
