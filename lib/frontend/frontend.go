// Package frontend chains the tokenizer and the grammar engine and logs what
// each phase did.
package frontend

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	mclex "github.com/vyPal/miniC/lib/lexer"
	"github.com/vyPal/miniC/lib/parser"
)

type Frontend struct {
	Parser parser.Config
	Log    logrus.FieldLogger
}

func (f *Frontend) log() logrus.FieldLogger {
	if f.Log == nil {
		l := logrus.New()
		l.Out = io.Discard
		return l
	}
	return f.Log
}

// Tokens scans src. On failure the error is a diag.List of lex errors.
func (f *Frontend) Tokens(filename, src string) ([]mclex.Token, error) {
	start := time.Now()
	toks, err := mclex.Tokenize(src)
	entry := f.log().WithFields(logrus.Fields{
		"file":    filename,
		"bytes":   len(src),
		"elapsed": time.Since(start),
	})
	if err != nil {
		entry.WithField("errors", errorCount(err)).Debug("tokenize failed")
		return nil, err
	}
	entry.WithField("tokens", len(toks)).Debug("tokenized")
	return toks, nil
}

// Run tokenizes and parses src. Lex errors stop the pipeline before parsing.
// On failure the error is a diag.List.
func (f *Frontend) Run(filename, src string) (*parser.Program, error) {
	toks, err := f.Tokens(filename, src)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	prog, err := f.Parser.Parse(toks, len(src))
	entry := f.log().WithFields(logrus.Fields{
		"file":    filename,
		"recover": f.Parser.Recover,
		"elapsed": time.Since(start),
	})
	if err != nil {
		entry.WithField("errors", errorCount(err)).Debug("parse failed")
		return nil, err
	}
	entry.WithFields(logrus.Fields{
		"functions": len(prog.Functions),
		"nodes":     parser.Count(prog),
	}).Debug("parsed")
	return prog, nil
}

func errorCount(err error) int {
	if l, ok := err.(interface{ Len() int }); ok {
		return l.Len()
	}
	return 1
}
