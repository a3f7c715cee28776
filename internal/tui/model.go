// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/codetype/internal/catalog"
	"github.com/verte-zerg/codetype/internal/diff"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/score"
)

const tickInterval = 250 * time.Millisecond

type phase int

const (
	phaseTyping phase = iota
	phaseResult
)

// tickMsg drives the timer of one attempt.
type tickMsg struct {
	attempt int
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	config  model.Config
	catalog *catalog.Catalog
	now     func() time.Time

	lang    model.Language
	snippet model.Snippet
	target  string

	input  textarea.Model
	report viewport.Model

	width  int
	height int

	phase     phase
	attempt   int
	started   bool
	startedAt time.Time
	elapsed   time.Duration

	metrics   model.Metrics
	diffLines []model.DiffLine
	errMsg    string
}

var (
	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	metricsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a practice TUI model for cfg.Lang. It fails when the
// language is not in the catalog.
func NewModel(cfg model.Config, cat *catalog.Catalog) (*Model, error) {
	lang, err := cat.Resolve(cfg.Lang)
	if err != nil {
		return nil, err
	}
	m := &Model{
		config:  cfg,
		catalog: cat,
		now:     time.Now,
		lang:    lang,
		input:   newInput(),
		report:  viewport.New(0, 0),
	}
	if err := m.newSnippet(); err != nil {
		return nil, err
	}
	return m, nil
}

func newInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Type the snippet here..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()
	return ta
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.phase == phaseResult {
			return m.updateResult(msg)
		}
		return m.updateTyping(msg)
	}
	if m.phase == phaseTyping {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlS:
		if m.started {
			m.submit()
		}
		return m, nil
	case tea.KeyCtrlN:
		return m, m.restart(m.newSnippet())
	case tea.KeyCtrlL:
		m.lang = m.catalog.Next(string(m.lang))
		return m, m.restart(m.newSnippet())
	case tea.KeyCtrlR:
		m.resetAttempt()
		return m, nil
	case tea.KeyTab:
		cmd := m.startTimer()
		m.input.InsertString(strings.Repeat(" ", m.config.TabWidth))
		return m, cmd
	}

	var startCmd tea.Cmd
	if isTypingKey(msg) {
		startCmd = m.startTimer()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(startCmd, cmd)
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter", "n", "ctrl+n":
		return m, m.restart(m.newSnippet())
	case "r", "ctrl+r":
		m.resetAttempt()
		return m, textarea.Blink
	case "l", "ctrl+l":
		m.lang = m.catalog.Next(string(m.lang))
		return m, m.restart(m.newSnippet())
	}
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	return m, cmd
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.attempt != m.attempt || m.phase != phaseTyping || !m.started {
		return m, nil
	}
	m.elapsed = m.now().Sub(m.startedAt)
	if limit := m.timeLimit(); limit > 0 && m.elapsed >= limit {
		m.submit()
		return m, nil
	}
	return m, tick(m.attempt)
}

func (m *Model) startTimer() tea.Cmd {
	if m.started {
		return nil
	}
	m.started = true
	m.startedAt = m.now()
	return tick(m.attempt)
}

func tick(attempt int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{attempt: attempt}
	})
}

func isTypingKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyEnter:
		return true
	default:
		return false
	}
}

func (m *Model) timeLimit() time.Duration {
	return time.Duration(m.config.TimeLimit) * time.Second
}

// submit scores the current input. The elapsed time is capped at the time
// limit so a late tick does not lower the speed.
func (m *Model) submit() {
	elapsed := m.now().Sub(m.startedAt)
	if limit := m.timeLimit(); limit > 0 && elapsed > limit {
		elapsed = limit
	}
	m.elapsed = elapsed
	typed := m.input.Value()

	metrics, err := score.Score(m.target, typed, elapsed.Seconds())
	m.metrics = metrics
	m.errMsg = ""
	if err != nil {
		m.errMsg = fmt.Sprintf("speed unavailable: %v", err)
	}
	m.diffLines = nil
	if m.config.ShowReport {
		m.diffLines = diff.Report(m.target, typed)
	}
	m.phase = phaseResult
	m.input.Blur()
	m.updateLayout()
}

func (m *Model) newSnippet() error {
	snippet, err := m.catalog.Pick(string(m.lang))
	if err != nil {
		return err
	}
	m.snippet = snippet
	m.target = expandTabs(snippet.Text, m.config.TabWidth)
	m.resetAttempt()
	return nil
}

// restart reports a failed snippet change and resumes typing.
func (m *Model) restart(err error) tea.Cmd {
	if err != nil {
		m.errMsg = err.Error()
	}
	return textarea.Blink
}

func (m *Model) resetAttempt() {
	m.phase = phaseTyping
	m.attempt++
	m.started = false
	m.startedAt = time.Time{}
	m.elapsed = 0
	m.metrics = model.Metrics{}
	m.diffLines = nil
	m.errMsg = ""
	m.input.Reset()
	m.input.Focus()
	m.updateLayout()
}

func expandTabs(text string, width int) string {
	if width <= 0 {
		return text
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", width))
}

func (m *Model) updateLayout() {
	contentWidth := m.contentWidth()
	m.input.SetWidth(contentWidth)
	lines := len(diff.SplitLines(m.target))
	m.input.SetHeight(max(lines+1, 3))

	m.report.Width = contentWidth
	reportHeight := m.height - len(m.resultHeaderLines()) - 4
	if reportHeight < 3 {
		reportHeight = 3
	}
	m.report.Height = reportHeight
	if m.phase == phaseResult {
		m.report.SetContent(renderReport(m.diffLines, contentWidth))
		m.report.GotoTop()
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	w := int(float64(m.width) * 0.80)
	if w < 20 {
		w = min(m.width, 20)
	}
	return w
}
