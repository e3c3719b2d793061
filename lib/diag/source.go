package diag

import (
	"strings"
	"unicode/utf8"
)

// Source maps byte offsets of a source text to line and column numbers.
type Source struct {
	text       string
	lineStarts []int
}

func NewSource(text string) *Source {
	s := &Source{text: text, lineStarts: make([]int, 1, strings.Count(text, "\n")+1)}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Text() string { return s.text }

func (s *Source) Lines() int { return len(s.lineStarts) }

// LineCol returns the 1-based line and rune column of offset. Offsets past
// the end are clamped to the end of the text.
func (s *Source) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	} else if offset > len(s.text) {
		offset = len(s.text)
	}
	idx := s.lineIndex(offset)
	start := s.lineStarts[idx]
	return idx + 1, utf8.RuneCountInString(s.text[start:offset]) + 1
}

// Line returns the text of the 1-based line without its line terminator.
func (s *Source) Line(line int) string {
	if line < 1 || line > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[line-1]
	end := len(s.text)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}

// LineStart returns the byte offset of the first character of the 1-based line.
func (s *Source) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(s.lineStarts) {
		return len(s.text)
	}
	return s.lineStarts[line-1]
}

func (s *Source) lineIndex(offset int) int {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
