// Package mclex turns miniC source text into tokens.
//
// The scanning rules are a participle lexer definition: rules are tried in
// order at each position and the first one that matches wins. Comments and
// whitespace are dropped, everything else becomes a Token or a diagnostic.
package mclex

import (
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vyPal/miniC/lib/diag"
)

// Definition is the participle lexer for miniC. Rule order matters: keywords
// only match at a word boundary, the u suffix is tried before signed digits,
// and a sign directly in front of digits belongs to the literal.
var Definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "OpenComment", Pattern: `/\*`},
	{Name: "Keyword", Pattern: `(?:if|else|return)\b`},
	{Name: "Type", Pattern: `(?:int|unsigned)\b`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Uint", Pattern: `[0-9]+[uU]`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Punct", Pattern: `[(){};]`},
	{Name: "Operator", Pattern: `<=|>=|==|!=|[<>=+\-*/]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n\f\v]+`},
	{Name: "Invalid", Pattern: `(?s:.)`},
})

var symbols = Definition.Symbols()

var (
	tokComment     = symbols["Comment"]
	tokOpenComment = symbols["OpenComment"]
	tokKeyword     = symbols["Keyword"]
	tokType        = symbols["Type"]
	tokIdent       = symbols["Ident"]
	tokUint        = symbols["Uint"]
	tokInt         = symbols["Int"]
	tokPunct       = symbols["Punct"]
	tokOperator    = symbols["Operator"]
	tokWhitespace  = symbols["Whitespace"]
	tokInvalid     = symbols["Invalid"]
)

// Tokenize scans src completely. Unknown characters are reported and
// skipped so that a single pass surfaces all of them; if anything was
// reported the token slice is nil and the error is a sorted diag.List.
func Tokenize(src string) ([]Token, error) {
	lex, err := Definition.LexString("", src)
	if err != nil {
		return nil, diag.List{&diag.Custom{Span: diag.Span{Start: 0, End: 0}, Message: err.Error()}}
	}

	var (
		toks []Token
		errs diag.List
		end  int
	)
scan:
	for {
		t, err := lex.Next()
		if err != nil {
			errs = append(errs, &diag.Custom{Span: diag.Span{Start: end, End: end}, Message: err.Error()})
			break
		}
		if t.EOF() {
			break
		}
		span := diag.Span{Start: t.Pos.Offset, End: t.Pos.Offset + len(t.Value)}
		end = span.End

		switch t.Type {
		case tokWhitespace, tokComment:
			continue
		case tokOpenComment:
			errs = append(errs, &diag.Custom{
				Span:    diag.Span{Start: span.Start, End: len(src)},
				Message: "unterminated comment",
			})
			break scan
		case tokInvalid:
			r, _ := utf8.DecodeRuneInString(t.Value)
			errs = append(errs, &diag.UnexpectedChar{Span: span, Char: r})
			continue
		}

		tok, lerr := convert(t, span)
		if lerr != nil {
			errs = append(errs, lerr)
			continue
		}
		toks = append(toks, tok)
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}
	return toks, nil
}

func convert(t lexer.Token, span diag.Span) (Token, diag.Error) {
	tok := Token{Text: t.Value, Span: span}
	switch t.Type {
	case tokKeyword, tokType:
		tok.Kind = keywords[t.Value]
	case tokIdent:
		tok.Kind = Ident
	case tokUint:
		n, err := strconv.ParseUint(t.Value[:len(t.Value)-1], 10, 32)
		if err != nil {
			return Token{}, outOfRange(span)
		}
		tok.Kind, tok.Uint = Uint, uint32(n)
	case tokInt:
		n, err := strconv.ParseInt(t.Value, 10, 32)
		if err != nil {
			return Token{}, outOfRange(span)
		}
		tok.Kind, tok.Int = Int, int32(n)
	case tokPunct, tokOperator:
		tok.Kind = fixed[t.Value]
	default:
		r, _ := utf8.DecodeRuneInString(t.Value)
		return Token{}, &diag.UnexpectedChar{Span: span, Char: r}
	}
	return tok, nil
}

func outOfRange(span diag.Span) diag.Error {
	return &diag.Custom{Span: span, Message: "integer literal out of range"}
}
