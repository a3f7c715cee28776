// Package diff builds a line-level comparison report of a typed attempt.
package diff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/seqmatch"
)

const (
	// A replaced pair of lines is shown with change hints only when the
	// lines are at least this similar.
	similarCutoff = 0.75
	bestRatioInit = 0.74
)

// Report compares target against typed line by line. Lines common to both are
// Unchanged, lines only in target are Removed and lines only in typed are
// Added. When a removed line closely resembles an added one, each is followed
// by a Hint line marking the differing columns with '^', '-' and '+'.
func Report(target, typed string) []model.DiffLine {
	a := SplitLines(target)
	b := SplitLines(typed)
	r := &reporter{}
	for _, op := range seqmatch.New(a, b).Opcodes() {
		switch op.Tag {
		case seqmatch.Replace:
			r.fancyReplace(a, op.I1, op.I2, b, op.J1, op.J2)
		case seqmatch.Delete:
			r.dump(model.Removed, a, op.I1, op.I2)
		case seqmatch.Insert:
			r.dump(model.Added, b, op.J1, op.J2)
		case seqmatch.Equal:
			r.dump(model.Unchanged, a, op.I1, op.I2)
		}
	}
	return r.lines
}

// SplitLines splits s at line boundaries: "\n", "\r\n", "\r", "\v", "\f",
// the file/group/record separators U+001C..U+001E, NEL, and the Unicode line
// and paragraph separators. A trailing boundary does not start an extra empty
// line.
func SplitLines(s string) []string {
	lines := []string{}
	start := 0
	for i, r := range s {
		if i < start || !isLineBreak(r) {
			continue
		}
		lines = append(lines, s[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && strings.HasPrefix(s[start:], "\n") {
			start++
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

type reporter struct {
	lines []model.DiffLine
}

func (r *reporter) emit(kind model.DiffKind, text string) {
	r.lines = append(r.lines, model.DiffLine{Kind: kind, Text: text})
}

func (r *reporter) dump(kind model.DiffKind, x []string, lo, hi int) {
	for i := lo; i < hi; i++ {
		r.emit(kind, x[i])
	}
}

func (r *reporter) plainReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	if bhi-blo < ahi-alo {
		r.dump(model.Added, b, blo, bhi)
		r.dump(model.Removed, a, alo, ahi)
		return
	}
	r.dump(model.Removed, a, alo, ahi)
	r.dump(model.Added, b, blo, bhi)
}

// fancyReplace finds the most similar pair of lines in a replaced block,
// reports it with hints and recurses on the lines before and after it.
// An identical pair is used as the sync point only when no pair reaches
// the similarity cutoff.
func (r *reporter) fancyReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	bestRatio := bestRatioInit
	besti, bestj := -1, -1
	eqi, eqj := -1, -1

	cruncher := seqmatch.New[rune](nil, nil, seqmatch.WithJunk(isCharJunk))
	for j := blo; j < bhi; j++ {
		cruncher.SetSeq2([]rune(b[j]))
		for i := alo; i < ahi; i++ {
			if a[i] == b[j] {
				if eqi < 0 {
					eqi, eqj = i, j
				}
				continue
			}
			cruncher.SetSeq1([]rune(a[i]))
			if cruncher.RealQuickRatio() > bestRatio && cruncher.QuickRatio() > bestRatio {
				if ratio := cruncher.Ratio(); ratio > bestRatio {
					bestRatio, besti, bestj = ratio, i, j
				}
			}
		}
	}

	identical := false
	if bestRatio < similarCutoff {
		if eqi < 0 {
			r.plainReplace(a, alo, ahi, b, blo, bhi)
			return
		}
		besti, bestj = eqi, eqj
		identical = true
	}

	r.fancyHelper(a, alo, besti, b, blo, bestj)

	aelt, belt := a[besti], b[bestj]
	if identical {
		r.emit(model.Unchanged, aelt)
	} else {
		r.hinted(cruncher, aelt, belt)
	}

	r.fancyHelper(a, besti+1, ahi, b, bestj+1, bhi)
}

func (r *reporter) fancyHelper(a []string, alo, ahi int, b []string, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		r.fancyReplace(a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		r.dump(model.Removed, a, alo, ahi)
	case blo < bhi:
		r.dump(model.Added, b, blo, bhi)
	}
}

func (r *reporter) hinted(cruncher *seqmatch.Matcher[rune], aline, bline string) {
	ar, br := []rune(aline), []rune(bline)
	cruncher.SetSeqs(ar, br)

	var atags, btags strings.Builder
	for _, op := range cruncher.Opcodes() {
		la, lb := op.I2-op.I1, op.J2-op.J1
		switch op.Tag {
		case seqmatch.Replace:
			atags.WriteString(strings.Repeat("^", la))
			btags.WriteString(strings.Repeat("^", lb))
		case seqmatch.Delete:
			atags.WriteString(strings.Repeat("-", la))
		case seqmatch.Insert:
			btags.WriteString(strings.Repeat("+", lb))
		case seqmatch.Equal:
			atags.WriteString(strings.Repeat(" ", la))
			btags.WriteString(strings.Repeat(" ", lb))
		}
	}

	r.emit(model.Removed, aline)
	if hint := keepOriginalWhitespace(ar, atags.String()); hint != "" {
		r.emit(model.Hint, hint)
	}
	r.emit(model.Added, bline)
	if hint := keepOriginalWhitespace(br, btags.String()); hint != "" {
		r.emit(model.Hint, hint)
	}
}

// keepOriginalWhitespace copies tabs and other whitespace from the line into
// the blank columns of its hint so markers stay aligned, then trims the
// trailing blanks.
func keepOriginalWhitespace(line []rune, tags string) string {
	var b strings.Builder
	for i, tag := range []rune(tags) {
		if i >= len(line) {
			break
		}
		if tag == ' ' && unicode.IsSpace(line[i]) {
			b.WriteRune(line[i])
			continue
		}
		b.WriteRune(tag)
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

func isCharJunk(r rune) bool {
	return r == ' ' || r == '\t'
}
