package mclex

import (
	"fmt"

	"github.com/vyPal/miniC/lib/diag"
)

// Kind classifies a token.
type Kind int

const (
	// EOF is never produced by Tokenize; the parser uses it for the
	// end-of-input position.
	EOF Kind = iota

	Ident
	Int  // signed integer literal, optional sign folded in
	Uint // unsigned integer literal with u/U suffix

	// Keywords
	If
	Else
	Return

	// Type names
	IntType
	UnsignedType

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Semicolon

	// Operators
	Add
	Sub
	Mul
	Div
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	Assign
)

var kindNames = [...]string{
	EOF:          diag.EndOfInput,
	Ident:        "identifier",
	Int:          "integer literal",
	Uint:         "unsigned literal",
	If:           "if",
	Else:         "else",
	Return:       "return",
	IntType:      "int",
	UnsignedType: "unsigned",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	Semicolon:    ";",
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Lt:           "<",
	Gt:           ">",
	Le:           "<=",
	Ge:           ">=",
	Eq:           "==",
	Ne:           "!=",
	Assign:       "=",
}

// String returns the spelling of fixed tokens and a class label for the rest.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of if, else, return.
func (k Kind) IsKeyword() bool { return k >= If && k <= Return }

// IsType reports whether k names a type.
func (k Kind) IsType() bool { return k == IntType || k == UnsignedType }

// IsLiteral reports whether k is an integer literal.
func (k Kind) IsLiteral() bool { return k == Int || k == Uint }

// IsRelop reports whether k is a relational operator.
func (k Kind) IsRelop() bool { return k >= Lt && k <= Ne }

// Token is a classified lexical unit with its source span. Int and Uint hold
// the literal value for the literal kinds.
type Token struct {
	Kind Kind
	Text string
	Span diag.Span
	Int  int32
	Uint uint32
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Int, Uint:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

var keywords = map[string]Kind{
	"if":       If,
	"else":     Else,
	"return":   Return,
	"int":      IntType,
	"unsigned": UnsignedType,
}

var fixed = map[string]Kind{
	"(":  LParen,
	")":  RParen,
	"{":  LBrace,
	"}":  RBrace,
	";":  Semicolon,
	"+":  Add,
	"-":  Sub,
	"*":  Mul,
	"/":  Div,
	"<":  Lt,
	">":  Gt,
	"<=": Le,
	">=": Ge,
	"==": Eq,
	"!=": Ne,
	"=":  Assign,
}
