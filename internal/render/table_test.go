package render

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Language", "Snippets", "Source"}
	rows := [][]string{
		{"Go", "3", "builtin"},
		{"JavaScript", "12", "builtin+user"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Language   Snippets Source" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Go                3 builtin" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "JavaScript       12 builtin+user" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"A", "B"}, [][]string{{"日本", "x"}}, nil)
	if lines[0] != "A    B" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "日本 x" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
