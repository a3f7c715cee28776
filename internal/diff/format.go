package diff

import (
	"strings"

	"github.com/verte-zerg/codetype/internal/model"
)

// Counts summarizes a report by line kind.
type Counts struct {
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
}

// Prefix returns the two-character marker for a line kind.
func Prefix(kind model.DiffKind) string {
	switch kind {
	case model.Added:
		return "+ "
	case model.Removed:
		return "- "
	case model.Hint:
		return "? "
	default:
		return "  "
	}
}

// Format renders a report as prefixed lines joined by newlines.
func Format(lines []model.DiffLine) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, Prefix(line.Kind)+line.Text)
	}
	return strings.Join(out, "\n")
}

// Summary counts unchanged, added and removed lines. Hint lines are not counted.
func Summary(lines []model.DiffLine) Counts {
	var c Counts
	for _, line := range lines {
		switch line.Kind {
		case model.Unchanged:
			c.Unchanged++
		case model.Added:
			c.Added++
		case model.Removed:
			c.Removed++
		}
	}
	return c
}

// Identical reports whether the report contains only unchanged lines.
func Identical(lines []model.DiffLine) bool {
	for _, line := range lines {
		if line.Kind != model.Unchanged {
			return false
		}
	}
	return true
}
