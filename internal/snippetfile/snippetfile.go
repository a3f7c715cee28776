// Package snippetfile loads snippet and transcript text from files.
package snippetfile

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the text at path. A path of "-" reads standard input.
func Load(path string) (string, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only file.
			_ = cerr
		}
	}()
	return Read(file)
}

// Read reads all of r, normalizes line endings to "\n" and drops trailing
// newlines.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Normalize(string(data)), nil
}

// Normalize converts "\r\n" and "\r" to "\n" and drops trailing newlines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimRight(text, "\n")
}

// LoadSnippet reads a snippet file and rejects blank content.
func LoadSnippet(path string) (string, error) {
	text, err := Load(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("snippet file is empty")
	}
	return text, nil
}
