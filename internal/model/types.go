// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Language names a programming language in the snippet catalog.
type Language string

// Builtin catalog languages.
const (
	LanguagePython     Language = "Python"
	LanguageJavaScript Language = "JavaScript"
	LanguageCpp        Language = "C++"
	LanguageGo         Language = "Go"
)

// Config defines practice settings.
type Config struct {
	Lang       string `validate:"required"`
	TimeLimit  int    `validate:"gte=0,lte=3600"`
	ShowReport bool
	TabWidth   int `validate:"gte=1,lte=16"`
}

var validate = validator.New()

// Validate checks practice settings against their allowed ranges.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Snippet is a piece of code to type. Builtin snippets have an empty ID.
type Snippet struct {
	ID   string
	Lang Language
	Text string
}

// Attempt is a single typed submission against a target text.
type Attempt struct {
	Target   string
	Typed    string
	Duration time.Duration
}

// Metrics holds the scored result of an attempt.
type Metrics struct {
	Accuracy     float64       `json:"accuracy" yaml:"accuracy"`
	WPM          float64       `json:"wpm" yaml:"wpm"`
	EditDistance int           `json:"edit_distance" yaml:"edit_distance"`
	TargetChars  int           `json:"target_chars" yaml:"target_chars"`
	TypedChars   int           `json:"typed_chars" yaml:"typed_chars"`
	Duration     time.Duration `json:"-" yaml:"-"`
}

// DiffKind classifies a line of a diff report.
type DiffKind int

// Diff line kinds.
const (
	Unchanged DiffKind = iota
	Added
	Removed
	Hint
)

// String returns the lower-case name of the kind.
func (k DiffKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k DiffKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DiffLine is one line of a diff report.
type DiffLine struct {
	Kind DiffKind `json:"kind" yaml:"kind"`
	Text string   `json:"text" yaml:"text"`
}
