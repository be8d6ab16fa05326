package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

// Members and phases are entered one per line (or one per --member/--phase
// flag) with fields separated by "|":
//
//	Ana López | Project Manager | Owns planning and stakeholders
//	Design | 2025-01-15 | 2025-03-15 | completed
const fieldSep = "|"

func splitFields(spec string, lo, hi int) ([]string, error) {
	parts := strings.Split(spec, fieldSep)
	if len(parts) < lo || len(parts) > hi {
		if lo == hi {
			return nil, fmt.Errorf("expected %d fields separated by %q, got %d", lo, fieldSep, len(parts))
		}
		return nil, fmt.Errorf("expected %d to %d fields separated by %q, got %d", lo, hi, fieldSep, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// parseMemberSpec reads "Name | Role | Role description".
func parseMemberSpec(spec string) (domain.MemberInput, error) {
	f, err := splitFields(spec, 3, 3)
	if err != nil {
		return domain.MemberInput{}, err
	}
	return domain.MemberInput{Name: f[0], Role: f[1], RoleDescription: f[2]}, nil
}

// parsePhaseSpec reads "Name | start | end" with an optional fourth status
// field.
func parsePhaseSpec(spec string) (domain.PhaseInput, error) {
	f, err := splitFields(spec, 3, 4)
	if err != nil {
		return domain.PhaseInput{}, err
	}
	start, err := parseDate(f[1])
	if err != nil {
		return domain.PhaseInput{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseDate(f[2])
	if err != nil {
		return domain.PhaseInput{}, fmt.Errorf("end: %w", err)
	}
	in := domain.PhaseInput{Name: f[0], StartDate: start, EndDate: end}
	if len(f) == 4 && f[3] != "" {
		if in.Status, err = domain.ParseStatus(f[3]); err != nil {
			return domain.PhaseInput{}, err
		}
	}
	return in, nil
}

// parseLines applies parse to every non-blank line of text.
func parseLines[T any](text string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseMemberLines(text string) ([]domain.MemberInput, error) {
	return parseLines(text, parseMemberSpec)
}

func parsePhaseLines(text string) ([]domain.PhaseInput, error) {
	return parseLines(text, parsePhaseSpec)
}

func parseMemberSpecs(specs []string) ([]domain.MemberInput, error) {
	return parseLines(strings.Join(specs, "\n"), parseMemberSpec)
}

func parsePhaseSpecs(specs []string) ([]domain.PhaseInput, error) {
	return parseLines(strings.Join(specs, "\n"), parsePhaseSpec)
}

// parseAmount accepts plain numbers with optional thousands separators and a
// leading "$".
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
