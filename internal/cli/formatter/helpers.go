package formatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const DateLayout = "2006-01-02"

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(strings.TrimRight(content, "\n"))
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format(DateLayout)
}

// FormatDateLong renders dates as "Jan 2, 2006" for cards and headers.
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}

// FormatMoney renders a budget with thousands separators, e.g. $150,000.
func FormatMoney(v float64) string {
	return "$" + humanize.Commaf(v)
}

// FormatNumber drops the fraction of whole numbers and groups thousands.
func FormatNumber(v float64) string {
	return humanize.Commaf(v)
}

func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "--"
	}
	return humanize.Bytes(uint64(bytes))
}

// Truncate shortens s to width visible cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if lipgloss.Width(s) <= width {
		return s
	}
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func PadRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// FormatValidation lists per-field validation messages, one per line, sorted
// by field path. Errors without field detail are returned as-is.
func FormatValidation(err error) string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	var lines []string
	flattenValidation("", verrs, &lines)
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func flattenValidation(prefix string, verrs validation.Errors, lines *[]string) {
	for field, fe := range verrs {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fe, &nested) {
			flattenValidation(path, nested, lines)
			continue
		}
		*lines = append(*lines, fmt.Sprintf("  %s %s: %s", StyleRed.Render("✖"), path, fe.Error()))
	}
}
