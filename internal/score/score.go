// Package score computes accuracy and speed for a typed attempt.
package score

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/seqmatch"
)

// charsPerWord is the conventional length of a word for WPM.
const charsPerWord = 5.0

// ErrInvalidDuration is returned when the elapsed time is not a positive number.
var ErrInvalidDuration = errors.New("duration must be greater than 0")

// Similarity returns the match ratio of typed against target, in [0, 1].
func Similarity(target, typed string) float64 {
	return seqmatch.New([]rune(target), []rune(typed)).Ratio()
}

// Accuracy returns the similarity of typed against target as a percentage
// rounded to two decimals. Two empty strings are a perfect match.
func Accuracy(target, typed string) float64 {
	return Round2(Similarity(target, typed) * 100)
}

// WPM returns words per minute for typedChars characters over durationSeconds,
// rounded to two decimals.
func WPM(typedChars int, durationSeconds float64) (float64, error) {
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidDuration, durationSeconds)
	}
	minutes := durationSeconds / 60.0
	return Round2((float64(typedChars) / charsPerWord) / minutes), nil
}

// Score computes all metrics for an attempt. On an invalid duration the
// returned Metrics still carries accuracy and counts; only WPM is left zero.
func Score(target, typed string, durationSeconds float64) (model.Metrics, error) {
	typedChars := utf8.RuneCountInString(typed)
	metrics := model.Metrics{
		Accuracy:     Accuracy(target, typed),
		EditDistance: matchr.Levenshtein(target, typed),
		TargetChars:  utf8.RuneCountInString(target),
		TypedChars:   typedChars,
		Duration:     secondsToDuration(durationSeconds),
	}
	wpm, err := WPM(typedChars, durationSeconds)
	if err != nil {
		return metrics, err
	}
	metrics.WPM = wpm
	return metrics, nil
}

// ScoreAttempt scores an attempt using its recorded duration.
func ScoreAttempt(a model.Attempt) (model.Metrics, error) {
	return Score(a.Target, a.Typed, a.Duration.Seconds())
}

// Round2 rounds to two decimals, halves to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func secondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
