package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/codetype/internal/catalog"
	"github.com/verte-zerg/codetype/internal/model"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestModel(t *testing.T, cfg model.Config, snippets []model.Snippet) (*Model, *testClock) {
	t.Helper()
	m, err := NewModel(cfg, catalog.New(snippets, catalog.WithSeed(1)))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	clock := &testClock{now: time.Unix(1000, 0)}
	m.now = clock.Now
	return m, clock
}

func defaultConfig() model.Config {
	return model.Config{Lang: "Python", ShowReport: true, TabWidth: 4}
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestSubmitScoresAttempt(t *testing.T) {
	m, clock := newTestModel(t, defaultConfig(), []model.Snippet{{Lang: "Python", Text: "print(1)"}})

	typeText(m, "print(1)")
	clock.Advance(10 * time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.phase != phaseResult {
		t.Fatalf("expected result phase")
	}
	if m.metrics.Accuracy != 100 {
		t.Fatalf("expected 100 accuracy, got %v", m.metrics.Accuracy)
	}
	if m.metrics.WPM != 9.6 {
		t.Fatalf("expected 9.6 wpm, got %v", m.metrics.WPM)
	}
	if len(m.diffLines) != 1 || m.diffLines[0].Kind != model.Unchanged {
		t.Fatalf("unexpected diff: %+v", m.diffLines)
	}
	if !strings.Contains(m.View(), "Accuracy 100.00%") {
		t.Fatalf("expected metrics in view")
	}
}

func TestSubmitIgnoredBeforeTyping(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig(), []model.Snippet{{Lang: "Python", Text: "pass"}})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.phase != phaseTyping {
		t.Fatalf("expected typing phase before first keystroke")
	}
	if m.started {
		t.Fatalf("timer must not start without input")
	}
}

func TestReportHiddenWhenDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.ShowReport = false
	m, clock := newTestModel(t, cfg, []model.Snippet{{Lang: "Python", Text: "abc"}})
	typeText(m, "abd")
	clock.Advance(6 * time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.diffLines != nil {
		t.Fatalf("expected no diff when report is disabled")
	}
	if m.metrics.Accuracy != 66.67 {
		t.Fatalf("expected 66.67 accuracy, got %v", m.metrics.Accuracy)
	}
}

func TestTimeLimitSubmits(t *testing.T) {
	cfg := defaultConfig()
	cfg.TimeLimit = 5
	m, clock := newTestModel(t, cfg, []model.Snippet{{Lang: "Python", Text: "print(1)"}})

	typeText(m, "pr")
	clock.Advance(2 * time.Second)
	m.Update(tickMsg{attempt: m.attempt})
	if m.phase != phaseTyping {
		t.Fatalf("expected typing phase before the limit")
	}

	clock.Advance(5 * time.Second)
	m.Update(tickMsg{attempt: m.attempt})
	if m.phase != phaseResult {
		t.Fatalf("expected auto submit at the limit")
	}
	if m.metrics.Duration != 5*time.Second {
		t.Fatalf("expected duration capped at 5s, got %v", m.metrics.Duration)
	}
}

func TestTabInsertsSpaces(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig(), []model.Snippet{{Lang: "Python", Text: "    pass"}})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "    " {
		t.Fatalf("expected four spaces, got %q", got)
	}
	if !m.started {
		t.Fatalf("tab should start the timer")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	cfg := defaultConfig()
	cfg.TimeLimit = 1
	m, clock := newTestModel(t, cfg, []model.Snippet{{Lang: "Python", Text: "pass"}})
	typeText(m, "p")
	stale := m.attempt
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	typeText(m, "p")
	clock.Advance(2 * time.Second)

	if _, cmd := m.Update(tickMsg{attempt: stale}); cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	if m.phase != phaseTyping {
		t.Fatalf("stale tick must not submit")
	}
}

func TestTargetTabsExpanded(t *testing.T) {
	cfg := defaultConfig()
	cfg.Lang = "Go"
	cfg.TabWidth = 2
	m, _ := newTestModel(t, cfg, []model.Snippet{{Lang: "Go", Text: "{\n\treturn\n}"}})
	if m.target != "{\n  return\n}" {
		t.Fatalf("unexpected target %q", m.target)
	}
}

func TestRetryKeepsSnippet(t *testing.T) {
	m, clock := newTestModel(t, defaultConfig(), []model.Snippet{
		{ID: "a", Lang: "Python", Text: "pass"},
		{ID: "b", Lang: "Python", Text: "return"},
	})
	before := m.snippet
	typeText(m, "x")
	clock.Advance(time.Second)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	if m.phase != phaseTyping {
		t.Fatalf("expected typing phase after retry")
	}
	if m.snippet != before {
		t.Fatalf("retry changed snippet")
	}
	if m.input.Value() != "" || m.started {
		t.Fatalf("retry should reset the attempt")
	}
}

func TestCycleLanguage(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig(), []model.Snippet{
		{Lang: "Python", Text: "pass"},
		{Lang: "Go", Text: "return"},
	})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.lang != "Go" {
		t.Fatalf("expected Go after Python, got %q", m.lang)
	}
	if m.snippet.Lang != "Go" {
		t.Fatalf("expected Go snippet, got %q", m.snippet.Lang)
	}
}

func TestNewModelUnknownLanguage(t *testing.T) {
	cfg := defaultConfig()
	cfg.Lang = "Cobol"
	if _, err := NewModel(cfg, catalog.New([]model.Snippet{{Lang: "Go", Text: "x"}})); err == nil {
		t.Fatalf("expected unknown language error")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, defaultConfig(), []model.Snippet{{Lang: "Python", Text: "pass"}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
