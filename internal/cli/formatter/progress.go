package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// Bar returns width cells with round(pct/100*width) of them filled. pct is
// clamped to [0, 100].
func Bar(pct float64, width int) (filled, empty string) {
	pct = math.Max(0, math.Min(pct, 100))
	width = max(width, 1)
	n := int(math.Round(pct / 100 * float64(width)))
	return strings.Repeat(filledBlock, n), strings.Repeat(emptyBlock, width-n)
}

// ProgressStyle colors a completion percentage: red below 33, yellow below
// 66, green otherwise.
func ProgressStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 33:
		return StyleRed
	case pct < 66:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// RenderProgress renders a bar like [████░░░░]  45% for a percentage in
// [0, 100].
func RenderProgress(pct float64, width int) string {
	return RenderProgressStyled(pct, width, ProgressStyle(pct))
}

// RenderProgressStyled is RenderProgress with a caller-chosen bar color.
func RenderProgressStyled(pct float64, width int, style lipgloss.Style) string {
	filled, empty := Bar(pct, width)
	return fmt.Sprintf("[%s%s] %3.0f%%", style.Render(filled), StyleDim.Render(empty), pct)
}
