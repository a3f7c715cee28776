package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/codetype/internal/diff"
	"github.com/verte-zerg/codetype/internal/model"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorGray  = "\x1b[90m"
)

// Output formats accepted by Encode.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result is the machine-readable form of a scored attempt.
type Result struct {
	Accuracy        float64          `json:"accuracy" yaml:"accuracy"`
	WPM             float64          `json:"wpm" yaml:"wpm"`
	EditDistance    int              `json:"edit_distance" yaml:"edit_distance"`
	TargetChars     int              `json:"target_chars" yaml:"target_chars"`
	TypedChars      int              `json:"typed_chars" yaml:"typed_chars"`
	DurationSeconds float64          `json:"duration_seconds" yaml:"duration_seconds"`
	Lines           *diff.Counts     `json:"lines,omitempty" yaml:"lines,omitempty"`
	Diff            []model.DiffLine `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// NewResult combines metrics and an optional diff report.
func NewResult(m model.Metrics, report []model.DiffLine) Result {
	r := Result{
		Accuracy:        m.Accuracy,
		WPM:             m.WPM,
		EditDistance:    m.EditDistance,
		TargetChars:     m.TargetChars,
		TypedChars:      m.TypedChars,
		DurationSeconds: m.Duration.Seconds(),
	}
	if report != nil {
		counts := diff.Summary(report)
		r.Lines = &counts
		r.Diff = report
	}
	return r
}

// MetricsLines formats metrics as aligned label/value rows.
func MetricsLines(m model.Metrics) []string {
	rows := [][]string{
		{"Time", fmt.Sprintf("%.1f sec", m.Duration.Seconds())},
		{"Accuracy", fmt.Sprintf("%.2f%%", m.Accuracy)},
		{"WPM", fmt.Sprintf("%.2f", m.WPM)},
		{"Edits", fmt.Sprintf("%d", m.EditDistance)},
		{"Typed", fmt.Sprintf("%d/%d chars", m.TypedChars, m.TargetChars)},
	}
	return formatTable(nil, rows, nil)
}

// RenderMetrics prints the metrics table.
func RenderMetrics(w io.Writer, m model.Metrics) error {
	for _, line := range MetricsLines(m) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDiff prints a diff report, coloured when useColor is set.
func RenderDiff(w io.Writer, report []model.DiffLine, useColor bool) error {
	if len(report) == 0 {
		_, err := fmt.Fprintln(w, "(nothing to compare)")
		return err
	}
	for _, line := range report {
		text := diff.Prefix(line.Kind) + line.Text
		if useColor {
			if color := kindColor(line.Kind); color != "" {
				text = color + text + colorReset
			}
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

// RenderLanguages prints catalog languages with their snippet counts.
func RenderLanguages(w io.Writer, langs []model.Language, counts map[model.Language]int) error {
	rows := make([][]string, 0, len(langs))
	for _, lang := range langs {
		rows = append(rows, []string{string(lang), fmt.Sprintf("%d", counts[lang])})
	}
	return Table(w, []string{"Language", "Snippets"}, rows, map[int]bool{1: true})
}

// Table prints rows under headers with columns padded to their widest cell.
func Table(w io.Writer, headers []string, rows [][]string, rightAlignCols map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlignCols) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes r to w in the given format.
func Encode(w io.Writer, format string, r Result, useColor bool) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		if err := RenderMetrics(w, model.Metrics{
			Accuracy:     r.Accuracy,
			WPM:          r.WPM,
			EditDistance: r.EditDistance,
			TargetChars:  r.TargetChars,
			TypedChars:   r.TypedChars,
			Duration:     secondsDuration(r.DurationSeconds),
		}); err != nil {
			return err
		}
		if r.Diff == nil {
			return nil
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		return RenderDiff(w, r.Diff, useColor)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func secondsDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func kindColor(kind model.DiffKind) string {
	switch kind {
	case model.Added:
		return colorGreen
	case model.Removed:
		return colorRed
	case model.Hint:
		return colorGray
	default:
		return ""
	}
}
