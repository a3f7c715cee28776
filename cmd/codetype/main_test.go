package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/model"
)

func setupHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPracticeConfigFlagWins(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--lang", "Go"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	lang := "C++"
	tabWidth := 2
	report := false
	cfg := practiceConfig(root, config.FileConfig{Practice: config.PracticeConfig{
		Lang:       &lang,
		TabWidth:   &tabWidth,
		ShowReport: &report,
	}})

	if cfg.Lang != "Go" {
		t.Fatalf("expected flag value Go, got %q", cfg.Lang)
	}
	if cfg.TabWidth != 2 {
		t.Fatalf("expected file tab width 2, got %d", cfg.TabWidth)
	}
	if cfg.ShowReport {
		t.Fatalf("expected report disabled from file")
	}
	if cfg.TimeLimit != defaultTimeLimit {
		t.Fatalf("expected default time limit, got %d", cfg.TimeLimit)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{Lang: "Python", TabWidth: 4}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := []struct {
		name string
		cfg  model.Config
		want string
	}{
		{"empty lang", model.Config{TabWidth: 4}, "--lang must not be empty"},
		{"negative limit", model.Config{Lang: "Go", TimeLimit: -1, TabWidth: 4}, "--time-limit must be >= 0"},
		{"huge limit", model.Config{Lang: "Go", TimeLimit: 4000, TabWidth: 4}, "--time-limit must be <= 3600"},
		{"zero tab", model.Config{Lang: "Go"}, "--tab-width must be >= 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateConfig(tc.cfg)
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	setupHome(t)
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Practice.Lang != nil || cfg.Practice.TabWidth != nil {
		t.Fatalf("expected all template values commented out")
	}
}

func TestScoreCmdJSON(t *testing.T) {
	target := writeFile(t, "target.txt", "abc\n")
	typed := writeFile(t, "typed.txt", "abd")

	out, err := runCLI(t, "score", "--target", target, "--typed", typed, "--duration", "6", "--format", "json")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var result struct {
		Accuracy float64 `json:"accuracy"`
		WPM      float64 `json:"wpm"`
		Diff     []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"diff"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if result.Accuracy != 66.67 {
		t.Fatalf("expected 66.67 accuracy, got %v", result.Accuracy)
	}
	if result.WPM != 6 {
		t.Fatalf("expected 6 wpm, got %v", result.WPM)
	}
	if len(result.Diff) == 0 || result.Diff[0].Kind != "removed" {
		t.Fatalf("unexpected diff: %+v", result.Diff)
	}
}

func TestScoreCmdTextNoDiff(t *testing.T) {
	target := writeFile(t, "target.txt", "print(1)")
	typed := writeFile(t, "typed.txt", "print(1)")

	out, err := runCLI(t, "score", "--target", target, "--typed", typed, "--duration", "10", "--no-diff")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, "Accuracy 100.00%") || !strings.Contains(out, "WPM      9.60") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "  print(1)") {
		t.Fatalf("diff should be omitted:\n%s", out)
	}
}

func TestScoreCmdRejectsDuration(t *testing.T) {
	target := writeFile(t, "target.txt", "x")
	for _, d := range []string{"0", "-5"} {
		if _, err := runCLI(t, "score", "--target", target, "--typed", target, "--duration", d); err == nil {
			t.Fatalf("expected error for duration %s", d)
		}
	}
}

func TestSnippetLifecycle(t *testing.T) {
	setupHome(t)
	path := writeFile(t, "main.rs", "fn main() {\n    println!(\"hi\");\n}\n")

	out, err := runCLI(t, "snippet", "add", path)
	if err != nil {
		t.Fatalf("snippet add: %v", err)
	}
	id := strings.TrimSpace(out)
	if id == "" {
		t.Fatalf("expected snippet id")
	}

	out, err = runCLI(t, "snippet", "list", "--lang", "rust")
	if err != nil {
		t.Fatalf("snippet list: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "fn main() { …") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	out, err = runCLI(t, "langs")
	if err != nil {
		t.Fatalf("langs: %v", err)
	}
	if !strings.Contains(out, "Rust") || !strings.Contains(out, "Python") {
		t.Fatalf("expected stored and builtin languages:\n%s", out)
	}

	if _, err := runCLI(t, "snippet", "rm", id); err != nil {
		t.Fatalf("snippet rm: %v", err)
	}
	if _, err := runCLI(t, "snippet", "rm", id); err == nil {
		t.Fatalf("expected error removing missing snippet")
	}
}

func TestSnippetAddNeedsLanguage(t *testing.T) {
	setupHome(t)
	path := writeFile(t, "notes.txt", "hello")
	if _, err := runCLI(t, "snippet", "add", path); err == nil {
		t.Fatalf("expected error for undetectable language")
	}
	if _, err := runCLI(t, "snippet", "add", "--lang", "Text", path); err != nil {
		t.Fatalf("snippet add with --lang: %v", err)
	}
}

func TestLoadCatalogMissingDBDir(t *testing.T) {
	dir := writeFile(t, "blocker", "x")
	cat := loadCatalog(context.Background(), filepath.Join(dir, "sub", "codetype.db"))
	if cat.Len() == 0 {
		t.Fatalf("expected builtin catalog on store failure")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("one line"); got != "one line" {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := preview("first\nsecond"); got != "first …" {
		t.Fatalf("unexpected preview %q", got)
	}
	long := strings.Repeat("x", 50)
	if got := preview(long); got != strings.Repeat("x", 39)+"…" {
		t.Fatalf("unexpected preview %q", got)
	}
}
