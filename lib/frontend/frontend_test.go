package frontend

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/vyPal/miniC/lib/diag"
	"github.com/vyPal/miniC/lib/parser"
)

func newFrontend(c parser.Config) (*Frontend, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &Frontend{Parser: c, Log: logger}, hook
}

func TestRun(t *testing.T) {
	f, hook := newFrontend(parser.Config{})
	prog, err := f.Run("main.mc", "int main() { return 0; } int g(int x) { return x; }")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Functions) != 2 {
		t.Errorf("got %d functions", len(prog.Functions))
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[0].Message != "tokenized" || entries[0].Data["file"] != "main.mc" {
		t.Errorf("first entry = %s %v", entries[0].Message, entries[0].Data)
	}
	last := hook.LastEntry()
	if last.Message != "parsed" || last.Data["functions"] != 2 {
		t.Errorf("last entry = %s %v", last.Message, last.Data)
	}
}

func TestRunLexErrorsShortCircuit(t *testing.T) {
	f, hook := newFrontend(parser.Config{Recover: true})
	// The missing ';' would be a parse error; only the lex error is reported.
	_, err := f.Run("main.mc", "int main() { x = $ return 0; }")
	var list diag.List
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("err = %v, want one lex error", err)
	}
	if _, ok := list[0].(*diag.UnexpectedChar); !ok {
		t.Errorf("error is %T", list[0])
	}
	if last := hook.LastEntry(); last.Message != "tokenize failed" || last.Data["errors"] != 1 {
		t.Errorf("last entry = %s %v", last.Message, last.Data)
	}
}

func TestRunParseErrors(t *testing.T) {
	f, hook := newFrontend(parser.Config{Recover: true})
	prog, err := f.Run("main.mc", "int main() { x = ; y = ; }")
	if prog != nil {
		t.Error("partial tree returned")
	}
	var list diag.List
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("err = %v, want two parse errors", err)
	}
	if last := hook.LastEntry(); last.Message != "parse failed" || last.Data["errors"] != 2 {
		t.Errorf("last entry = %s %v", last.Message, last.Data)
	}
}

func TestTokens(t *testing.T) {
	f := &Frontend{}
	toks, err := f.Tokens("main.mc", "ifx = 1;")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 4 || toks[0].Text != "ifx" {
		t.Errorf("tokens = %v", toks)
	}
}
