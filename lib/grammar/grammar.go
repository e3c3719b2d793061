// Package grammar is a declarative participle description of miniC. It
// shares the scanner of package mclex and is used to print the grammar and
// as an independent acceptor for the hand-written parser.
package grammar

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vyPal/miniC/lib/diag"
	mclex "github.com/vyPal/miniC/lib/lexer"
)

type Program struct {
	Functions []*Function `parser:"@@+"`
}

type Function struct {
	Pos lexer.Position

	ReturnType string       `parser:"@Type"`
	Name       string       `parser:"@Ident"`
	Parameter  *Parameter   `parser:"'(' @@? ')'"`
	Variables  []*Variable  `parser:"'{' @@*"`
	Statements []*Statement `parser:"@@* '}'"`
}

type Parameter struct {
	Type string `parser:"@Type"`
	Name string `parser:"@Ident"`
}

type Variable struct {
	Type string `parser:"@Type"`
	Name string `parser:"@Ident ';'"`
}

type Statement struct {
	Assignment *Assignment `parser:"  @@"`
	If         *If         `parser:"| @@"`
	Return     *Return     `parser:"| @@"`
	Compound   *Compound   `parser:"| @@"`
}

type Assignment struct {
	Name  string `parser:"@Ident '='"`
	Value *Expr  `parser:"@@ ';'"`
}

type If struct {
	Cond *RelExpr   `parser:"'if' '(' @@ ')'"`
	Then *Statement `parser:"@@"`
	Else *Statement `parser:"( 'else' @@ )?"`
}

type Return struct {
	Value *Expr `parser:"'return' @@ ';'"`
}

type Compound struct {
	Statements []*Statement `parser:"'{' @@* '}'"`
}

type RelExpr struct {
	Left  *Expr  `parser:"@@"`
	Op    string `parser:"@( '<' | '>' | '<=' | '>=' | '==' | '!=' )"`
	Right *Expr  `parser:"@@"`
}

type Expr struct {
	Left  *Product     `parser:"@@"`
	Right []*OpProduct `parser:"@@*"`
}

type OpProduct struct {
	Op      string   `parser:"@( '+' | '-' )"`
	Product *Product `parser:"@@"`
}

type Product struct {
	Left  *Atom     `parser:"@@"`
	Right []*OpAtom `parser:"@@*"`
}

type OpAtom struct {
	Op   string `parser:"@( '*' | '/' )"`
	Atom *Atom  `parser:"@@"`
}

type Atom struct {
	Call          *Call   `parser:"  (?= Ident '(') @@"`
	Identifier    *string `parser:"| @Ident"`
	Uint          *string `parser:"| @Uint"`
	Int           *string `parser:"| @Int"`
	SubExpression *Expr   `parser:"| '(' @@ ')'"`
}

type Call struct {
	Name string `parser:"@Ident '('"`
	Arg  *Expr  `parser:"@@? ')'"`
}

var miniC = participle.MustBuild[Program](
	participle.Lexer(mclex.Definition),
	participle.Elide("Whitespace", "Comment"),
)

// EBNF returns the grammar in EBNF notation.
func EBNF() string {
	return miniC.String()
}

// Parse parses src into the declarative tree. Syntax errors are returned as
// *diag.Custom positioned at the offending token.
func Parse(filename, src string) (*Program, error) {
	prog, err := miniC.ParseString(filename, src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			off := perr.Position().Offset
			return nil, &diag.Custom{Span: diag.Span{Start: off, End: off}, Message: perr.Message()}
		}
		return nil, err
	}
	return prog, nil
}

// Check reports whether src is a syntactically valid program.
func Check(filename, src string) error {
	_, err := Parse(filename, src)
	return err
}
