package mclex

import (
	"errors"
	"testing"

	"github.com/vyPal/miniC/lib/diag"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return toks
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lexErrors(t *testing.T, src string) diag.List {
	t.Helper()
	toks, err := Tokenize(src)
	if err == nil {
		t.Fatalf("Tokenize(%q) succeeded with %v, want error", src, toks)
	}
	if toks != nil {
		t.Errorf("Tokenize(%q) returned tokens alongside errors", src)
	}
	var list diag.List
	if !errors.As(err, &list) {
		t.Fatalf("error is %T, want diag.List", err)
	}
	return list
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"empty", "", nil},
		{"keywords", "if else return", []Kind{If, Else, Return}},
		{"types", "int unsigned", []Kind{IntType, UnsignedType}},
		{"punct", "( ) { } ;", []Kind{LParen, RParen, LBrace, RBrace, Semicolon}},
		{"arith", "+ - * /", []Kind{Add, Sub, Mul, Div}},
		{"relops", "< > <= >= == !=", []Kind{Lt, Gt, Le, Ge, Eq, Ne}},
		{"assign_vs_eq", "= == =", []Kind{Assign, Eq, Assign}},
		{"two_char_no_space", "a<=b", []Kind{Ident, Le, Ident}},
		{"lt_then_assign", "< =", []Kind{Lt, Assign}},
		{"function", "int main() { return 0; }", []Kind{IntType, Ident, LParen, RParen, LBrace, Return, Int, Semicolon, RBrace}},
		{"call", "f(x)", []Kind{Ident, LParen, Ident, RParen}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tokenize(t, tt.src))
			if !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordBoundary(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
		text string
	}{
		{"ifx", Ident, "ifx"},
		{"if_", Ident, "if_"},
		{"if9", Ident, "if9"},
		{"elsewhere", Ident, "elsewhere"},
		{"returned", Ident, "returned"},
		{"integer", Ident, "integer"},
		{"unsigned1", Ident, "unsigned1"},
		{"_int", Ident, "_int"},
		{"if", If, "if"},
		{"int", IntType, "int"},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.src)
		if len(toks) != 1 {
			t.Errorf("%q: got %d tokens %v, want 1", tt.src, len(toks), toks)
			continue
		}
		if toks[0].Kind != tt.want || toks[0].Text != tt.text {
			t.Errorf("%q: got %v %q, want %v %q", tt.src, toks[0].Kind, toks[0].Text, tt.want, tt.text)
		}
	}

	got := kinds(tokenize(t, "ifx = 1;"))
	want := []Kind{Ident, Assign, Int, Semicolon}
	if !equalKinds(got, want) {
		t.Errorf("ifx = 1; kinds = %v, want %v", got, want)
	}
	got = kinds(tokenize(t, "if(x)"))
	want = []Kind{If, LParen, Ident, RParen}
	if !equalKinds(got, want) {
		t.Errorf("if(x) kinds = %v, want %v", got, want)
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src      string
		kind     Kind
		signed   int32
		unsigned uint32
	}{
		{"5", Int, 5, 0},
		{"-5", Int, -5, 0},
		{"+5", Int, 5, 0},
		{"007", Int, 7, 0},
		{"5u", Uint, 0, 5},
		{"5U", Uint, 0, 5},
		{"0u", Uint, 0, 0},
		{"2147483647", Int, 2147483647, 0},
		{"-2147483648", Int, -2147483648, 0},
		{"4294967295u", Uint, 0, 4294967295},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.src)
		if len(toks) != 1 {
			t.Errorf("%q: got %d tokens %v, want 1", tt.src, len(toks), toks)
			continue
		}
		tok := toks[0]
		if tok.Kind != tt.kind || tok.Int != tt.signed || tok.Uint != tt.unsigned {
			t.Errorf("%q: got %v int=%d uint=%d, want %v int=%d uint=%d",
				tt.src, tok.Kind, tok.Int, tok.Uint, tt.kind, tt.signed, tt.unsigned)
		}
		if tok.Text != tt.src {
			t.Errorf("%q: text = %q", tt.src, tok.Text)
		}
	}
}

func TestSignFolding(t *testing.T) {
	// A sign directly in front of digits belongs to the literal, so "a-1"
	// has no operator token between the identifier and the literal.
	toks := tokenize(t, "a-1")
	if got, want := kinds(toks), []Kind{Ident, Int}; !equalKinds(got, want) {
		t.Fatalf("a-1 kinds = %v, want %v", got, want)
	}
	if toks[1].Int != -1 {
		t.Errorf("literal = %d, want -1", toks[1].Int)
	}

	if got, want := kinds(tokenize(t, "a - 1")), []Kind{Ident, Sub, Int}; !equalKinds(got, want) {
		t.Errorf("a - 1 kinds = %v, want %v", got, want)
	}
	if got, want := kinds(tokenize(t, "a- 1")), []Kind{Ident, Sub, Int}; !equalKinds(got, want) {
		t.Errorf("a- 1 kinds = %v, want %v", got, want)
	}
	if got, want := kinds(tokenize(t, "1+2")), []Kind{Int, Int}; !equalKinds(got, want) {
		t.Errorf("1+2 kinds = %v, want %v", got, want)
	}
	if got, want := kinds(tokenize(t, "5u-3")), []Kind{Uint, Int}; !equalKinds(got, want) {
		t.Errorf("5u-3 kinds = %v, want %v", got, want)
	}
}

func TestComments(t *testing.T) {
	src := "// leading\nint /* inline */ x; /* multi\nline */ // trailing"
	got := kinds(tokenize(t, src))
	want := []Kind{IntType, Ident, Semicolon}
	if !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	// A lone slash is still division.
	got = kinds(tokenize(t, "a / b"))
	want = []Kind{Ident, Div, Ident}
	if !equalKinds(got, want) {
		t.Errorf("a / b kinds = %v, want %v", got, want)
	}
}

func TestSpans(t *testing.T) {
	src := "int main() {\n  return -10u;\n}"
	toks, err := Tokenize("int main() {\n  return 10u;\n}")
	if err != nil {
		t.Fatal(err)
	}
	want := []diag.Span{{Start: 0, End: 3}, {Start: 4, End: 8}, {Start: 8, End: 9}, {Start: 9, End: 10}, {Start: 11, End: 12}, {Start: 15, End: 21}, {Start: 22, End: 25}, {Start: 25, End: 26}, {Start: 27, End: 28}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Span != want[i] {
			t.Errorf("token %d (%v) span = %v, want %v", i, tok, tok.Span, want[i])
		}
	}

	// Unsigned literals take no sign: "-10u" is the signed literal -10
	// followed by the identifier u.
	toks = tokenize(t, src)
	if got, want := kinds(toks[5:8]), []Kind{Return, Int, Ident}; !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestUnexpectedChars(t *testing.T) {
	errs := lexErrors(t, "int @main() { return 0$; } #")
	if len(errs) != 3 {
		t.Fatalf("got %d errors %v, want 3", len(errs), errs)
	}
	wantChars := []rune{'@', '$', '#'}
	wantStarts := []int{4, 22, 27}
	for i, e := range errs {
		uc, ok := e.(*diag.UnexpectedChar)
		if !ok {
			t.Fatalf("error %d is %T, want *diag.UnexpectedChar", i, e)
		}
		if uc.Char != wantChars[i] {
			t.Errorf("error %d char = %q, want %q", i, uc.Char, wantChars[i])
		}
		if uc.Span != (diag.Span{Start: wantStarts[i], End: wantStarts[i] + 1}) {
			t.Errorf("error %d span = %v, want start %d", i, uc.Span, wantStarts[i])
		}
	}
}

func TestUnexpectedMultibyteChar(t *testing.T) {
	errs := lexErrors(t, "x = é;")
	uc, ok := errs[0].(*diag.UnexpectedChar)
	if !ok {
		t.Fatalf("error is %T", errs[0])
	}
	if uc.Char != 'é' || uc.Span != (diag.Span{Start: 4, End: 6}) {
		t.Errorf("got %q at %v, want 'é' at 4..6", uc.Char, uc.Span)
	}
}

func TestBangAlone(t *testing.T) {
	errs := lexErrors(t, "a ! b")
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if uc, ok := errs[0].(*diag.UnexpectedChar); !ok || uc.Char != '!' {
		t.Errorf("got %v, want unexpected '!'", errs[0])
	}
}

func TestUnterminatedComment(t *testing.T) {
	src := "int x; /* never closed\nreturn"
	errs := lexErrors(t, src)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	c, ok := errs[0].(*diag.Custom)
	if !ok {
		t.Fatalf("error is %T, want *diag.Custom", errs[0])
	}
	if c.Message != "unterminated comment" || c.Span != (diag.Span{Start: 7, End: len(src)}) {
		t.Errorf("got %q at %v", c.Message, c.Span)
	}
}

func TestLiteralOutOfRange(t *testing.T) {
	tests := []string{"2147483648", "-2147483649", "4294967296u", "99999999999"}
	for _, src := range tests {
		errs := lexErrors(t, src)
		c, ok := errs[0].(*diag.Custom)
		if !ok || c.Message != "integer literal out of range" {
			t.Errorf("%q: got %v", src, errs[0])
			continue
		}
		if c.Span != (diag.Span{Start: 0, End: len(src)}) {
			t.Errorf("%q: span = %v", src, c.Span)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		EOF:          "end of input",
		Ident:        "identifier",
		RParen:       ")",
		Le:           "<=",
		UnsignedType: "unsigned",
		Kind(99):     "Kind(99)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
	if !Else.IsKeyword() || IntType.IsKeyword() {
		t.Error("IsKeyword misclassifies")
	}
	if !Ne.IsRelop() || Assign.IsRelop() || Add.IsRelop() {
		t.Error("IsRelop misclassifies")
	}
}
