package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented textual form of the tree to w, one node per line.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.print(node)
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) block(label string, f func()) {
	p.printf("%s", label)
	p.indent++
	f()
	p.indent--
}

func (p *printer) print(node Node) {
	switch n := node.(type) {
	case *Program:
		p.block("Program", func() {
			for _, f := range n.Functions {
				p.print(f)
			}
		})

	case *Function:
		p.block("Function "+n.Name, func() {
			p.printf("ReturnType: %s", n.ReturnType)
			if n.Parameter != nil {
				p.printf("Parameter: %s %s", n.Parameter.Type, n.Parameter.Name)
			} else {
				p.printf("Parameter: none")
			}
			if len(n.Variables) > 0 {
				p.block("Variables:", func() {
					for _, v := range n.Variables {
						p.print(v)
					}
				})
			}
			p.block("Statements:", func() {
				for _, s := range n.Statements {
					p.print(s)
				}
			})
		})

	case *Parameter:
		p.printf("Parameter %s %s", n.Type, n.Name)

	case *Variable:
		p.printf("Variable %s %s", n.Type, n.Name)

	case *Assignment:
		p.printf("Assignment %s = %s", n.Name, ExprString(n.Value))

	case *If:
		p.block("If", func() {
			p.printf("Cond: %s", n.Cond)
			p.block("Then:", func() { p.print(n.Then) })
			if n.Else != nil {
				p.block("Else:", func() { p.print(n.Else) })
			}
		})

	case *Return:
		p.printf("Return %s", ExprString(n.Value))

	case *Compound:
		p.block("Compound", func() {
			for _, s := range n.Stmts {
				p.print(s)
			}
		})

	case *RelExpr:
		p.printf("RelExpr %s", n)

	case Expr:
		p.printf("%s", ExprString(n))

	default:
		p.printf("%T", node)
	}
}

// ExprString renders x fully parenthesized: ((10 - 3) - 2), f(x), 5u.
func ExprString(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case *IntNum:
		b.WriteString(strconv.FormatInt(int64(x.Value), 10))
	case *UintNum:
		b.WriteString(strconv.FormatUint(uint64(x.Value), 10))
		b.WriteByte('u')
	case *Ident:
		b.WriteString(x.Name)
	case *Call:
		b.WriteString(x.Name)
		b.WriteByte('(')
		if x.Arg != nil {
			writeExpr(b, x.Arg)
		}
		b.WriteByte(')')
	case *Binary:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteString(" " + x.Op.String() + " ")
		writeExpr(b, x.Y)
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "%T", x)
	}
}

func (x *RelExpr) String() string {
	return ExprString(x.Left) + " " + x.Op.String() + " " + ExprString(x.Right)
}
