// Package diag holds the error vocabulary shared by the miniC tokenizer and
// grammar engine. Errors are plain values; rendering them against the source
// is the job of package report.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// EndOfInput is the label used for the end-of-input sentinel, both as a found
// token and inside expected sets.
const EndOfInput = "end of input"

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Error is implemented by every diagnostic produced by the front end.
type Error interface {
	error
	Location() Span
}

// UnexpectedChar reports a character no token rule accepts.
type UnexpectedChar struct {
	Span Span
	Char rune
}

func (e *UnexpectedChar) Location() Span { return e.Span }

func (e *UnexpectedChar) Error() string {
	return fmt.Sprintf("%s: unexpected character %q", e.Span, e.Char)
}

// UnexpectedToken reports a token (or the end of input) where none of the
// expected token kinds was found.
type UnexpectedToken struct {
	Span     Span
	Expected []string
	Found    string // source text of the offending token, empty when EOF
	EOF      bool
}

func (e *UnexpectedToken) Location() Span { return e.Span }

func (e *UnexpectedToken) Error() string {
	if e.EOF {
		return fmt.Sprintf("%s: unexpected end of input, expected %s", e.Span, JoinExpected(e.Expected))
	}
	return fmt.Sprintf("%s: unexpected token %s, expected %s", e.Span, e.Found, JoinExpected(e.Expected))
}

// UnclosedDelimiter reports an opening delimiter whose closer was not found
// where the grammar required it.
type UnclosedDelimiter struct {
	Span          Span   // where the closer was expected
	Delimiter     string // the opening delimiter, e.g. "("
	DelimiterSpan Span
	Closer        string
	Expected      []string
	Found         string
	EOF           bool
}

func (e *UnclosedDelimiter) Location() Span { return e.Span }

func (e *UnclosedDelimiter) Error() string {
	found := e.Found
	if e.EOF {
		found = EndOfInput
	}
	return fmt.Sprintf("%s: unclosed delimiter %s opened at %s, found %s, expected %s",
		e.Span, e.Delimiter, e.DelimiterSpan, found, JoinExpected(e.Expected))
}

// Custom is a diagnostic with a free-form message.
type Custom struct {
	Span    Span
	Message string
}

func (e *Custom) Location() Span { return e.Span }

func (e *Custom) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// JoinExpected formats an expected set as "a, b or c".
func JoinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "something else"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// List is an ordered collection of diagnostics. It is the error value both
// stages return.
type List []Error

func (l List) Len() int      { return len(l) }
func (l List) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l List) Less(i, j int) bool {
	a, b := l[i].Location(), l[j].Location()
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// Sort orders the list by position. Errors at the same position keep their
// relative order.
func (l List) Sort() {
	sort.Stable(l)
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
