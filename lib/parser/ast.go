// Package parser builds miniC syntax trees from a token sequence.
package parser

// Node is implemented by every syntax tree node.
type Node interface {
	aNode()
}

// Stmt is a statement node: *Assignment, *If, *Return or *Compound.
type Stmt interface {
	Node
	aStmt()
}

// Expr is an expression node: *IntNum, *UintNum, *Ident, *Call or *Binary.
type Expr interface {
	Node
	aExpr()
}

// Literal is an integer constant. Signed and unsigned literals stay
// distinct types because the source spells them differently.
type Literal interface {
	Expr
	aLiteral()
}

type Type int

const (
	Int Type = iota
	Unsigned
)

func (t Type) String() string {
	if t == Unsigned {
		return "unsigned"
	}
	return "int"
}

// Arop is an arithmetic operator.
type Arop int

const (
	Add Arop = iota
	Sub
	Mul
	Div
)

var aropNames = [...]string{Add: "+", Sub: "-", Mul: "*", Div: "/"}

func (op Arop) String() string { return aropNames[op] }

// Relop is a relational operator.
type Relop int

const (
	Lt Relop = iota
	Gt
	Le
	Ge
	Eq
	Ne
)

var relopNames = [...]string{Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Eq: "==", Ne: "!="}

func (op Relop) String() string { return relopNames[op] }

// ----------------------------------------------------------------------------
// Program structure

// Program is a complete source file. It always holds at least one function.
type Program struct {
	Functions []*Function
}

type Function struct {
	ReturnType Type
	Name       string
	Parameter  *Parameter // nil if the function takes no parameter
	Variables  []*Variable
	Statements []Stmt
}

type Parameter struct {
	Type Type
	Name string
}

// Variable is a local declaration at the top of a function body.
type Variable struct {
	Type Type
	Name string
}

// ----------------------------------------------------------------------------
// Statements

// Assignment is Name = Value;
type Assignment struct {
	Name  string
	Value Expr
}

// If is if (Cond) Then else Else. Else is nil when there is no else branch.
type If struct {
	Cond *RelExpr
	Then Stmt
	Else Stmt
}

type Return struct {
	Value Expr
}

// Compound is a braced statement list.
type Compound struct {
	Stmts []Stmt
}

// RelExpr compares two expressions with exactly one relational operator.
type RelExpr struct {
	Left  Expr
	Op    Relop
	Right Expr
}

// ----------------------------------------------------------------------------
// Expressions

type IntNum struct {
	Value int32
}

type UintNum struct {
	Value uint32
}

type Ident struct {
	Name string
}

// Call is Name(Arg). Arg is nil for a call without argument.
type Call struct {
	Name string
	Arg  Expr
}

// Binary is X Op Y. Chains of one precedence level lean left.
type Binary struct {
	X  Expr
	Op Arop
	Y  Expr
}

func (*Program) aNode()   {}
func (*Function) aNode()  {}
func (*Parameter) aNode() {}
func (*Variable) aNode()  {}
func (*RelExpr) aNode()   {}

func (*Assignment) aNode() {}
func (*If) aNode()         {}
func (*Return) aNode()     {}
func (*Compound) aNode()   {}

func (*Assignment) aStmt() {}
func (*If) aStmt()         {}
func (*Return) aStmt()     {}
func (*Compound) aStmt()   {}

func (*IntNum) aNode()  {}
func (*UintNum) aNode() {}
func (*Ident) aNode()   {}
func (*Call) aNode()    {}
func (*Binary) aNode()  {}

func (*IntNum) aExpr()  {}
func (*UintNum) aExpr() {}
func (*Ident) aExpr()   {}
func (*Call) aExpr()    {}
func (*Binary) aExpr()  {}

func (*IntNum) aLiteral()  {}
func (*UintNum) aLiteral() {}
