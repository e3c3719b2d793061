// Package report renders front-end diagnostics as annotated source excerpts:
//
//	error: unexpected token in input, expected int, unsigned or )
//	 --> main.mc:1:11
//	  |
//	1 | int main( { return 0; }
//	  |           ^ unexpected token {
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/vyPal/miniC/lib/diag"
)

const tabWidth = 4

type Options struct {
	// Color enables ANSI styling. It is applied per renderer and does not
	// touch the global color.NoColor setting.
	Color bool
}

// Renderer writes reports for diagnostics of a single source file.
type Renderer struct {
	w        io.Writer
	filename string
	src      *diag.Source

	errorStyle  *color.Color
	titleStyle  *color.Color
	gutterStyle *color.Color
	primary     *color.Color
	secondary   *color.Color
}

func New(w io.Writer, filename, src string, opts Options) *Renderer {
	r := &Renderer{
		w:           w,
		filename:    filename,
		src:         diag.NewSource(src),
		errorStyle:  color.New(color.FgRed, color.Bold),
		titleStyle:  color.New(color.Bold),
		gutterStyle: color.New(color.FgBlue, color.Bold),
		primary:     color.New(color.FgRed, color.Bold),
		secondary:   color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{r.errorStyle, r.titleStyle, r.gutterStyle, r.primary, r.secondary} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

type label struct {
	span    diag.Span
	text    string
	primary bool
}

// Render writes the report for one diagnostic.
func (r *Renderer) Render(e diag.Error) error {
	title, labels := describe(e)
	out := &writer{w: r.w}

	line, col := r.locate(e.Location().Start)
	width := len(fmt.Sprint(r.maxLine(labels)))
	pad := strings.Repeat(" ", width)

	out.printf("%s%s\n", r.errorStyle.Sprint("error"), r.titleStyle.Sprint(": "+title))
	out.printf("%s%s %s:%d:%d\n", pad, r.gutterStyle.Sprint("-->"), r.filename, line, col)
	out.printf("%s\n", r.gutterStyle.Sprint(pad+" |"))

	sort.SliceStable(labels, func(i, j int) bool { return labels[i].span.Start < labels[j].span.Start })
	shown := 0
	for _, l := range labels {
		n, _ := r.locate(l.span.Start)
		if n != shown {
			if shown != 0 && n > shown+1 {
				out.printf("%s\n", r.gutterStyle.Sprint("..."))
			}
			gutter := r.gutterStyle.Sprintf("%*d |", width, n)
			if text := expandTabs(r.src.Line(n)); text != "" {
				out.printf("%s %s\n", gutter, text)
			} else {
				out.printf("%s\n", gutter)
			}
			shown = n
		}
		out.printf("%s %s\n", r.gutterStyle.Sprint(pad+" |"), r.marker(n, l))
	}
	return out.err
}

// RenderAll writes a report for every diagnostic in list, separated by
// blank lines, followed by a summary when there is more than one.
func (r *Renderer) RenderAll(list diag.List) error {
	for i, e := range list {
		if i > 0 {
			if _, err := fmt.Fprintln(r.w); err != nil {
				return err
			}
		}
		if err := r.Render(e); err != nil {
			return err
		}
	}
	if len(list) > 1 {
		_, err := fmt.Fprintf(r.w, "\n%s%s\n", r.errorStyle.Sprint("error"),
			r.titleStyle.Sprintf(": aborting due to %d previous errors", len(list)))
		return err
	}
	return nil
}

func describe(e diag.Error) (string, []label) {
	switch e := e.(type) {
	case *diag.UnexpectedChar:
		return "unexpected character in input", []label{
			{span: e.Span, text: fmt.Sprintf("unexpected character %q", e.Char), primary: true},
		}

	case *diag.UnexpectedToken:
		if e.EOF {
			return "unexpected end of input, expected " + diag.JoinExpected(e.Expected), []label{
				{span: e.Span, text: "unexpected end of input", primary: true},
			}
		}
		return "unexpected token in input, expected " + diag.JoinExpected(e.Expected), []label{
			{span: e.Span, text: "unexpected token " + e.Found, primary: true},
		}

	case *diag.UnclosedDelimiter:
		closing := "must be closed before this " + e.Found
		if e.EOF {
			closing = "must be closed before the end of input"
		}
		return fmt.Sprintf("unclosed delimiter %s, expected %s", e.Delimiter, diag.JoinExpected(e.Expected)), []label{
			{span: e.DelimiterSpan, text: "unclosed delimiter " + e.Delimiter},
			{span: e.Span, text: closing, primary: true},
		}

	case *diag.Custom:
		return e.Message, []label{{span: e.Span, primary: true}}
	}
	return e.Error(), []label{{span: e.Location(), primary: true}}
}

// locate returns the line and rune column of offset. The end of a text that
// finishes with a newline is placed after the last character of the last
// line rather than on an empty line past it.
func (r *Renderer) locate(offset int) (line, col int) {
	text := r.src.Text()
	if offset >= len(text) && len(text) > 0 && text[len(text)-1] == '\n' {
		line, _ = r.src.LineCol(len(text) - 1)
		return line, utf8.RuneCountInString(r.src.Line(line)) + 1
	}
	return r.src.LineCol(offset)
}

func (r *Renderer) maxLine(labels []label) int {
	last := 1
	for _, l := range labels {
		if n, _ := r.locate(l.span.Start); n > last {
			last = n
		}
	}
	return last
}

// marker builds the caret line for l on source line n.
func (r *Renderer) marker(n int, l label) string {
	lineText := r.src.Line(n)
	lineStart := r.src.LineStart(n)

	start := clamp(l.span.Start-lineStart, 0, len(lineText))
	end := clamp(l.span.End-lineStart, start, len(lineText))
	if l.span.Start >= len(r.src.Text()) {
		start, end = len(lineText), len(lineText)
	}

	indent := displayWidth(lineText[:start])
	width := displayWidth(lineText[:end]) - indent
	if width < 1 {
		width = 1
	}

	style, mark := r.secondary, "-"
	if l.primary {
		style, mark = r.primary, "^"
	}
	m := strings.Repeat(mark, width)
	if l.text != "" {
		m += " " + l.text
	}
	return strings.Repeat(" ", indent) + style.Sprint(m)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func displayWidth(s string) int {
	w := 0
	for _, c := range s {
		if c == '\t' {
			w += tabWidth - w%tabWidth
		} else {
			w++
		}
	}
	return w
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	w := 0
	for _, c := range s {
		if c == '\t' {
			n := tabWidth - w%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			w += n
			continue
		}
		b.WriteRune(c)
		w++
	}
	return b.String()
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}
