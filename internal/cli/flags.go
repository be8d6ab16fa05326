package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value that only accepts what parse accepts, so bad
// values fail at flag parsing with the allowed set in the message.
type enumValue[T ~string] struct {
	target   *T
	typeName string
	parse    func(string) (T, error)
}

var (
	_ pflag.Value = (*enumValue[domain.Priority])(nil)
	_ pflag.Value = (*dateValue)(nil)
)

func (e *enumValue[T]) String() string {
	if e.target == nil {
		return ""
	}
	return string(*e.target)
}

func (e *enumValue[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return e.typeName }

func priorityFlag(target *domain.Priority) pflag.Value {
	return &enumValue[domain.Priority]{target: target, typeName: "priority", parse: domain.ParsePriority}
}

// priorityFilterFlag also accepts "all", which clears the filter.
func priorityFilterFlag(target *domain.Priority) pflag.Value {
	return &enumValue[domain.Priority]{target: target, typeName: "priority", parse: func(s string) (domain.Priority, error) {
		if strings.EqualFold(strings.TrimSpace(s), "all") {
			return "", nil
		}
		return domain.ParsePriority(s)
	}}
}

func methodologyFlag(target *domain.Methodology) pflag.Value {
	return &enumValue[domain.Methodology]{target: target, typeName: "methodology", parse: domain.ParseMethodology}
}

func statusFlag(target *domain.Status) pflag.Value {
	return &enumValue[domain.Status]{target: target, typeName: "status", parse: domain.ParseStatus}
}

func documentTypeFlag(target *domain.DocumentType) pflag.Value {
	return &enumValue[domain.DocumentType]{target: target, typeName: "type", parse: domain.ParseDocumentType}
}

// dateValue parses YYYY-MM-DD into a UTC date.
type dateValue struct {
	target *time.Time
}

func dateFlag(target *time.Time) pflag.Value {
	return &dateValue{target: target}
}

func (d *dateValue) String() string {
	if d.target == nil || d.target.IsZero() {
		return ""
	}
	return d.target.Format(formatter.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	*d.target = t
	return nil
}

func (d *dateValue) Type() string { return "date" }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(formatter.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
