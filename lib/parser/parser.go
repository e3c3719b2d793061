package parser

import (
	"github.com/vyPal/miniC/lib/diag"
	mclex "github.com/vyPal/miniC/lib/lexer"
)

// DefaultMaxErrors bounds the number of errors collected in recovery mode.
const DefaultMaxErrors = 10

// Config controls error recovery. The zero value stops at the first error.
type Config struct {
	// Recover resynchronizes at statement and function boundaries after an
	// error so that one run can report several errors.
	Recover bool

	// MaxErrors aborts a recovering parse once this many errors have been
	// collected. Zero means DefaultMaxErrors.
	MaxErrors int
}

// Parse parses tokens into a Program. eof is the end-of-input offset, i.e.
// the length of the source the tokens were scanned from. The first mismatch
// ends the parse.
func Parse(tokens []mclex.Token, eof int) (*Program, error) {
	return Config{}.Parse(tokens, eof)
}

// Parse parses tokens with the recovery settings of c. On failure the
// program is nil and the error is a diag.List sorted by position; a partial
// tree is never returned.
func (c Config) Parse(tokens []mclex.Token, eof int) (*Program, error) {
	p := &parser{
		toks:      tokens,
		eof:       eof,
		recover:   c.Recover,
		maxErrors: c.MaxErrors,
	}
	if p.maxErrors <= 0 {
		p.maxErrors = DefaultMaxErrors
	}
	prog := p.parse()
	if len(p.errs) > 0 {
		p.errs.Sort()
		return nil, p.errs
	}
	return prog, nil
}

// bailout unwinds the descent after an error has been recorded.
type bailout struct{}

type parser struct {
	toks []mclex.Token
	pos  int
	eof  int
	tok  mclex.Token // current token; Kind EOF past the last token

	// expected collects the token labels tested at the current position.
	// It is reset whenever a token is consumed.
	expected []string

	recover   bool
	maxErrors int
	errs      diag.List
	abort     bool
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *parser) setTok() {
	if p.pos < len(p.toks) {
		p.tok = p.toks[p.pos]
		return
	}
	p.tok = mclex.Token{Kind: mclex.EOF, Span: diag.Span{Start: p.eof, End: p.eof}}
}

// next consumes the current token.
func (p *parser) next() {
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.expected = p.expected[:0]
	p.setTok()
}

func (p *parser) expect(label string) {
	for _, l := range p.expected {
		if l == label {
			return
		}
	}
	p.expected = append(p.expected, label)
}

// at reports whether the current token has kind k. A miss records k as
// expected at this position.
func (p *parser) at(k mclex.Kind) bool {
	if p.tok.Kind == k {
		return true
	}
	p.expect(k.String())
	return false
}

// got consumes the current token if it has kind k.
func (p *parser) got(k mclex.Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

// want consumes and returns a token of kind k, or fails.
func (p *parser) want(k mclex.Kind) mclex.Token {
	if !p.at(k) {
		p.unexpected()
	}
	t := p.tok
	p.next()
	return t
}

// close consumes the closer k of the delimiter open, or fails with an
// unclosed delimiter error.
func (p *parser) close(k mclex.Kind, open mclex.Token) {
	if p.got(k) {
		return
	}
	p.fail(&diag.UnclosedDelimiter{
		Span:          p.tok.Span,
		Delimiter:     open.Text,
		DelimiterSpan: open.Span,
		Closer:        k.String(),
		Expected:      p.takeExpected(),
		Found:         p.tok.Text,
		EOF:           p.tok.Kind == mclex.EOF,
	})
}

func (p *parser) atType() bool {
	return p.at(mclex.IntType) || p.at(mclex.UnsignedType)
}

func (p *parser) atLiteral() bool {
	if p.tok.Kind.IsLiteral() {
		return true
	}
	p.expect("literal")
	return false
}

func (p *parser) atStmt() bool {
	return p.at(mclex.Ident) || p.at(mclex.If) || p.at(mclex.Return) || p.at(mclex.LBrace)
}

func (p *parser) atExpr() bool {
	return p.at(mclex.Ident) || p.atLiteral() || p.at(mclex.LParen)
}

// ----------------------------------------------------------------------------
// Error handling

func (p *parser) takeExpected() []string {
	return append([]string(nil), p.expected...)
}

// unexpected fails at the current token with the expected set collected so far.
func (p *parser) unexpected() {
	p.fail(&diag.UnexpectedToken{
		Span:     p.tok.Span,
		Expected: p.takeExpected(),
		Found:    p.tok.Text,
		EOF:      p.tok.Kind == mclex.EOF,
	})
}

func (p *parser) fail(err diag.Error) {
	p.report(err)
	panic(bailout{})
}

// report records err unless an error at the same position is already known.
func (p *parser) report(err diag.Error) {
	if n := len(p.errs); n > 0 && p.errs[n-1].Location().Start == err.Location().Start {
		return
	}
	p.errs = append(p.errs, err)
	if len(p.errs) >= p.maxErrors {
		p.abort = true
	}
}

// recovering turns a bailout into a false result when recovery is enabled.
// Any other panic, and any bailout once the error limit is reached, keeps
// unwinding.
func (p *parser) recovering(r interface{}) bool {
	if _, ok := r.(bailout); !ok || !p.recover || p.abort {
		panic(r)
	}
	return true
}

// skipStmt advances past the rest of a failed statement: up to and
// including the next ';' or balanced '}', or up to the next '}', if, return
// or the end of input at the statement's own nesting level.
func (p *parser) skipStmt() {
	depth := 0
	for {
		switch p.tok.Kind {
		case mclex.EOF:
			return
		case mclex.Semicolon:
			p.next()
			if depth == 0 {
				return
			}
			continue
		case mclex.LBrace:
			depth++
		case mclex.RBrace:
			if depth == 0 {
				return
			}
			depth--
			p.next()
			if depth == 0 {
				return
			}
			continue
		case mclex.If, mclex.Return:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

// skipFunction advances to the next type name that follows a '}', or to
// the end of input.
func (p *parser) skipFunction() {
	for p.tok.Kind != mclex.EOF {
		prev := p.tok.Kind
		p.next()
		if prev == mclex.RBrace && p.tok.Kind.IsType() {
			return
		}
	}
}

// ----------------------------------------------------------------------------
// Program structure

func (p *parser) parse() (prog *Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog = nil
		}
	}()

	p.setTok()
	prog = &Program{}
	for {
		if f := p.tryFunction(); f != nil {
			prog.Functions = append(prog.Functions, f)
		}
		if !p.atType() {
			break
		}
	}
	if !p.at(mclex.EOF) {
		p.unexpected()
	}
	return prog
}

func (p *parser) tryFunction() (f *Function) {
	defer func() {
		if r := recover(); r != nil && p.recovering(r) {
			p.skipFunction()
			f = nil
		}
	}()
	return p.function()
}

// function parses: Type Name '(' Parameter? ')' '{' Variable* Statement* '}'
func (p *parser) function() *Function {
	f := &Function{}
	f.ReturnType = p.typ()
	f.Name = p.name()

	open := p.want(mclex.LParen)
	if p.atType() {
		param := &Parameter{}
		param.Type = p.typ()
		param.Name = p.name()
		f.Parameter = param
	}
	p.close(mclex.RParen, open)

	body := p.want(mclex.LBrace)
	for p.atType() {
		f.Variables = append(f.Variables, p.variable())
	}
	f.Statements = p.stmtList()
	p.close(mclex.RBrace, body)
	return f
}

// variable parses: Type Name ';'
func (p *parser) variable() *Variable {
	v := &Variable{}
	v.Type = p.typ()
	v.Name = p.name()
	p.want(mclex.Semicolon)
	return v
}

func (p *parser) typ() Type {
	switch {
	case p.got(mclex.IntType):
		return Int
	case p.got(mclex.UnsignedType):
		return Unsigned
	}
	p.unexpected()
	return Int
}

func (p *parser) name() string {
	return p.want(mclex.Ident).Text
}

// ----------------------------------------------------------------------------
// Statements

func (p *parser) stmtList() []Stmt {
	var list []Stmt
	for p.atStmt() {
		if s := p.tryStmt(); s != nil {
			list = append(list, s)
		}
	}
	return list
}

func (p *parser) tryStmt() (s Stmt) {
	defer func() {
		if r := recover(); r != nil && p.recovering(r) {
			p.skipStmt()
			s = nil
		}
	}()
	return p.stmt()
}

// stmt dispatches on the first token; every alternative starts with a
// different one.
func (p *parser) stmt() Stmt {
	switch {
	case p.at(mclex.Ident):
		return p.assignment()
	case p.at(mclex.If):
		return p.ifStmt()
	case p.at(mclex.Return):
		return p.returnStmt()
	case p.at(mclex.LBrace):
		return p.compound()
	}
	p.unexpected()
	return nil
}

// assignment parses: Name '=' Expr ';'
func (p *parser) assignment() *Assignment {
	s := &Assignment{}
	s.Name = p.name()
	p.want(mclex.Assign)
	s.Value = p.expr()
	p.want(mclex.Semicolon)
	return s
}

// ifStmt parses: 'if' '(' RelExpr ')' Stmt ('else' Stmt)?
// An else belongs to the nearest if.
func (p *parser) ifStmt() *If {
	p.want(mclex.If)
	open := p.want(mclex.LParen)
	s := &If{}
	s.Cond = p.relExpr()
	p.close(mclex.RParen, open)
	s.Then = p.stmt()
	if p.got(mclex.Else) {
		s.Else = p.stmt()
	}
	return s
}

// returnStmt parses: 'return' Expr ';'
func (p *parser) returnStmt() *Return {
	p.want(mclex.Return)
	s := &Return{Value: p.expr()}
	p.want(mclex.Semicolon)
	return s
}

// compound parses: '{' Stmt* '}'
func (p *parser) compound() *Compound {
	open := p.want(mclex.LBrace)
	s := &Compound{Stmts: p.stmtList()}
	p.close(mclex.RBrace, open)
	return s
}

// ----------------------------------------------------------------------------
// Expressions

var relops = [...]struct {
	kind mclex.Kind
	op   Relop
}{
	{mclex.Lt, Lt},
	{mclex.Gt, Gt},
	{mclex.Le, Le},
	{mclex.Ge, Ge},
	{mclex.Eq, Eq},
	{mclex.Ne, Ne},
}

// relExpr parses: Expr Relop Expr
func (p *parser) relExpr() *RelExpr {
	x := &RelExpr{}
	x.Left = p.expr()
	x.Op = p.relop()
	x.Right = p.expr()
	return x
}

func (p *parser) relop() Relop {
	for _, r := range relops {
		if p.got(r.kind) {
			return r.op
		}
	}
	p.unexpected()
	return Lt
}

// expr parses a sum: Product (('+'|'-') Product)*, folded to the left.
func (p *parser) expr() Expr {
	x := p.product()
	for {
		var op Arop
		switch {
		case p.got(mclex.Add):
			op = Add
		case p.got(mclex.Sub):
			op = Sub
		default:
			return x
		}
		x = &Binary{X: x, Op: op, Y: p.product()}
	}
}

// product parses: Atom (('*'|'/') Atom)*, folded to the left.
func (p *parser) product() Expr {
	x := p.atom()
	for {
		var op Arop
		switch {
		case p.got(mclex.Mul):
			op = Mul
		case p.got(mclex.Div):
			op = Div
		default:
			return x
		}
		x = &Binary{X: x, Op: op, Y: p.atom()}
	}
}

// atom parses: Call | Name | Literal | '(' Expr ')'
// A name directly followed by '(' is always a call.
func (p *parser) atom() Expr {
	switch {
	case p.at(mclex.Ident):
		name := p.tok.Text
		p.next()
		if !p.at(mclex.LParen) {
			return &Ident{Name: name}
		}
		open := p.tok
		p.next()
		c := &Call{Name: name}
		if p.atExpr() {
			c.Arg = p.expr()
		}
		p.close(mclex.RParen, open)
		return c

	case p.atLiteral():
		t := p.tok
		p.next()
		if t.Kind == mclex.Uint {
			return &UintNum{Value: t.Uint}
		}
		return &IntNum{Value: t.Int}

	case p.at(mclex.LParen):
		open := p.tok
		p.next()
		x := p.expr()
		p.close(mclex.RParen, open)
		return x
	}
	p.unexpected()
	return nil
}
