package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/codetype/internal/diff"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/render"
)

const ellipsis = "…"

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.contentWidth()
	var body string
	if m.phase == phaseResult {
		body = m.resultView()
	} else {
		body = m.typingView(contentWidth)
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return placed + "\n" + footerLine
}

func (m *Model) typingView(contentWidth int) string {
	lines := diff.SplitLines(m.target)
	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = clipLine(line, contentWidth-4)
	}
	parts := []string{
		titleStyle.Render(string(m.lang)),
		snippetStyle.Width(contentWidth).Render(strings.Join(clipped, "\n")),
		m.input.View(),
	}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) resultView() string {
	parts := m.resultHeaderLines()
	if m.config.ShowReport {
		parts = append(parts, "", m.report.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) resultHeaderLines() []string {
	lines := []string{titleStyle.Render("Results · " + string(m.lang))}
	for _, line := range render.MetricsLines(m.metrics) {
		lines = append(lines, metricsStyle.Render(line))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return lines
}

func (m *Model) renderFooter() string {
	var segments []string
	if m.phase == phaseResult {
		segments = []string{"enter next", "r retry", "l language", "q quit"}
	} else {
		elapsed := fmt.Sprintf("Time %ds", int(m.elapsed.Seconds()))
		if m.config.TimeLimit > 0 {
			elapsed += fmt.Sprintf("/%ds", m.config.TimeLimit)
		}
		typed := fmt.Sprintf("Typed %d/%d", utf8.RuneCountInString(m.input.Value()), utf8.RuneCountInString(m.target))
		segments = []string{elapsed, typed, "ctrl+s submit", "ctrl+n new", "ctrl+l language", "ctrl+c quit"}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// renderReport styles diff lines for the results viewport, clipping each to
// width cells.
func renderReport(report []model.DiffLine, width int) string {
	if len(report) == 0 {
		return unchangedStyle.Render("(nothing to compare)")
	}
	lines := make([]string, len(report))
	for i, line := range report {
		text := clipLine(diff.Prefix(line.Kind)+line.Text, width)
		lines[i] = diffStyle(line.Kind).Render(text)
	}
	return strings.Join(lines, "\n")
}

func diffStyle(kind model.DiffKind) lipgloss.Style {
	switch kind {
	case model.Added:
		return addedStyle
	case model.Removed:
		return removedStyle
	case model.Hint:
		return hintStyle
	default:
		return unchangedStyle
	}
}

func clipLine(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, ellipsis)
}
