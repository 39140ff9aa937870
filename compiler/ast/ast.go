package ast

import "strings"

// In this file, we define the ast the parser hands to the semantic analyzer. A program is a list of
// classes, a class is a list of members (fields and methods), and a method body is a list of statements.
// Every node carries the line it starts on; the file name lives on the owning class.
//
// The node sets are closed: Member, Stmt and Expr can only be implemented inside this package, so every
// phase can switch over them exhaustively.

type Node interface {
	LineNum() int
}

type Pos struct {
	Line int
}

func (p Pos) LineNum() int { return p.Line }

type Program struct {
	Pos
	Classes []*Class
}

type Class struct {
	Pos
	Filename string
	Name     string
	// Empty when the class has no extends clause, which means it extends Object.
	Parent  string
	Members []Member
}

// TypeRef is a declared type as written in the source, like int, Foo or Foo[].
type TypeRef struct {
	Name  string
	Array bool
}

func (t TypeRef) String() string {
	if t.Array {
		return t.Name + "[]"
	}
	return t.Name
}

// ParseTypeRef turns the textual form used by the parser ("Foo[]") into a TypeRef.
func ParseTypeRef(s string) TypeRef {
	if strings.HasSuffix(s, "[]") {
		return TypeRef{Name: strings.TrimSuffix(s, "[]"), Array: true}
	}
	return TypeRef{Name: s}
}

type Member interface {
	Node
	memberNode()
}

type Field struct {
	Pos
	Name string
	Type TypeRef
	// Optional.
	Init Expr
}

type Method struct {
	Pos
	Name       string
	ReturnType TypeRef
	Formals    []*Formal
	Body       []Stmt
}

type Formal struct {
	Pos
	Name string
	Type TypeRef
}

func (*Field) memberNode()  {}
func (*Method) memberNode() {}

type Stmt interface {
	Node
	stmtNode()
}

type DeclStmt struct {
	Pos
	Name string
	Type TypeRef
	Init Expr
}

type ExprStmt struct {
	Pos
	Expr Expr
}

type IfStmt struct {
	Pos
	Pred Expr
	Then Stmt
	// Optional.
	Else Stmt
}

type WhileStmt struct {
	Pos
	Pred Expr
	Body Stmt
}

// ForStmt has optional Init, Pred and Update expressions.
type ForStmt struct {
	Pos
	Init   Expr
	Pred   Expr
	Update Expr
	Body   Stmt
}

type BreakStmt struct {
	Pos
}

type BlockStmt struct {
	Pos
	Stmts []Stmt
}

// ReturnStmt has a nil Expr for a bare return.
type ReturnStmt struct {
	Pos
	Expr Expr
}

func (*DeclStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}

type Expr interface {
	Node
	exprNode()
}

// DispatchExpr is a method call. A nil Ref means the call is made on this.
type DispatchExpr struct {
	Pos
	Ref    Expr
	Method string
	Args   []Expr
}

type NewExpr struct {
	Pos
	Type string
}

type NewArrayExpr struct {
	Pos
	Type string
	Size Expr
}

type InstanceofExpr struct {
	Pos
	Expr Expr
	Type TypeRef
}

type CastExpr struct {
	Pos
	Type TypeRef
	Expr Expr
}

// AssignExpr is Name = Expr, RefName.Name = Expr when RefName is this or super.
type AssignExpr struct {
	Pos
	RefName string
	Name    string
	Expr    Expr
}

type ArrayAssignExpr struct {
	Pos
	RefName string
	Name    string
	Index   Expr
	Expr    Expr
}

type BinaryExpr struct {
	Pos
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type UnaryExpr struct {
	Pos
	Op   UnaryOp
	Expr Expr
	// Only meaningful for increment and decrement.
	Postfix bool
}

// VarExpr is a variable or field reference: Name, or Ref.Name. The keywords this, super and null are
// also represented as VarExpr without a Ref.
type VarExpr struct {
	Pos
	Ref  Expr
	Name string
}

type ArrayExpr struct {
	Pos
	Ref   Expr
	Name  string
	Index Expr
}

type ConstIntExpr struct {
	Pos
	Value int
}

type ConstBooleanExpr struct {
	Pos
	Value bool
}

type ConstStringExpr struct {
	Pos
	Value string
}

func (*DispatchExpr) exprNode()     {}
func (*NewExpr) exprNode()          {}
func (*NewArrayExpr) exprNode()     {}
func (*InstanceofExpr) exprNode()   {}
func (*CastExpr) exprNode()         {}
func (*AssignExpr) exprNode()       {}
func (*ArrayAssignExpr) exprNode()  {}
func (*BinaryExpr) exprNode()       {}
func (*UnaryExpr) exprNode()        {}
func (*VarExpr) exprNode()          {}
func (*ArrayExpr) exprNode()        {}
func (*ConstIntExpr) exprNode()     {}
func (*ConstBooleanExpr) exprNode() {}
func (*ConstStringExpr) exprNode()  {}

type BinaryOp int

const (
	PlusOp BinaryOp = iota
	MinusOp
	TimesOp
	DivideOp
	ModulusOp
	EqOp
	NeOp
	LtOp
	LeqOp
	GtOp
	GeqOp
	AndOp
	OrOp
)

var binaryOpNames = [...]string{
	PlusOp:    "+",
	MinusOp:   "-",
	TimesOp:   "*",
	DivideOp:  "/",
	ModulusOp: "%",
	EqOp:      "==",
	NeOp:      "!=",
	LtOp:      "<",
	LeqOp:     "<=",
	GtOp:      ">",
	GeqOp:     ">=",
	AndOp:     "&&",
	OrOp:      "||",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "?"
	}
	return binaryOpNames[op]
}

func (op BinaryOp) IsArithmetic() bool { return op >= PlusOp && op <= ModulusOp }
func (op BinaryOp) IsEquality() bool   { return op == EqOp || op == NeOp }
func (op BinaryOp) IsRelational() bool { return op >= LtOp && op <= GeqOp }
func (op BinaryOp) IsLogical() bool    { return op == AndOp || op == OrOp }

type UnaryOp int

const (
	NegOp UnaryOp = iota
	NotOp
	IncrOp
	DecrOp
)

func (op UnaryOp) String() string {
	switch op {
	case NegOp:
		return "-"
	case NotOp:
		return "!"
	case IncrOp:
		return "++"
	case DecrOp:
		return "--"
	}
	return "?"
}
