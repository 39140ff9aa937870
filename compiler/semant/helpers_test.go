package semant

import (
	"testing"

	"github.com/go-test/deep"

	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/diagnostic"
)

// Small constructors so test programs read close to the source they stand for.

const testFile = "test.btm"

func program(classes ...*ast.Class) *ast.Program {
	return &ast.Program{Classes: classes}
}

func class(name, parent string, members ...ast.Member) *ast.Class {
	return &ast.Class{Pos: ast.Pos{Line: 1}, Filename: testFile, Name: name, Parent: parent, Members: members}
}

// mainClass is class Main { void main() { body } }.
func mainClass(body ...ast.Stmt) *ast.Class {
	return class("Main", "", method("void", "main", nil, body...))
}

func field(typ, name string, init ast.Expr) *ast.Field {
	return &ast.Field{Pos: ast.Pos{Line: 2}, Name: name, Type: ast.ParseTypeRef(typ), Init: init}
}

func method(ret, name string, formals []*ast.Formal, body ...ast.Stmt) *ast.Method {
	return &ast.Method{Pos: ast.Pos{Line: 3}, Name: name, ReturnType: ast.ParseTypeRef(ret), Formals: formals, Body: body}
}

func formals(typeAndNames ...string) []*ast.Formal {
	var list []*ast.Formal
	for i := 0; i+1 < len(typeAndNames); i += 2 {
		list = append(list, &ast.Formal{Pos: ast.Pos{Line: 3}, Type: ast.ParseTypeRef(typeAndNames[i]), Name: typeAndNames[i+1]})
	}
	return list
}

func decl(typ, name string, init ast.Expr) *ast.DeclStmt {
	return &ast.DeclStmt{Pos: ast.Pos{Line: 4}, Name: name, Type: ast.ParseTypeRef(typ), Init: init}
}

func exprStmt(e ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{Pos: ast.Pos{Line: 5}, Expr: e}
}

func ret(e ast.Expr) *ast.ReturnStmt {
	return &ast.ReturnStmt{Pos: ast.Pos{Line: 6}, Expr: e}
}

func brk() *ast.BreakStmt {
	return &ast.BreakStmt{Pos: ast.Pos{Line: 7}}
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Pos: ast.Pos{Line: 8}, Stmts: stmts}
}

func while(pred ast.Expr, body ast.Stmt) *ast.WhileStmt {
	return &ast.WhileStmt{Pos: ast.Pos{Line: 9}, Pred: pred, Body: body}
}

func ifStmt(pred ast.Expr, then, els ast.Stmt) *ast.IfStmt {
	return &ast.IfStmt{Pos: ast.Pos{Line: 10}, Pred: pred, Then: then, Else: els}
}

func intLit(v int) *ast.ConstIntExpr      { return &ast.ConstIntExpr{Pos: ast.Pos{Line: 11}, Value: v} }
func boolLit(v bool) *ast.ConstBooleanExpr { return &ast.ConstBooleanExpr{Pos: ast.Pos{Line: 11}, Value: v} }
func strLit(v string) *ast.ConstStringExpr { return &ast.ConstStringExpr{Pos: ast.Pos{Line: 11}, Value: v} }

func varRef(name string) *ast.VarExpr {
	return &ast.VarExpr{Pos: ast.Pos{Line: 12}, Name: name}
}

func fieldRef(ref ast.Expr, name string) *ast.VarExpr {
	return &ast.VarExpr{Pos: ast.Pos{Line: 12}, Ref: ref, Name: name}
}

func index(name string, i ast.Expr) *ast.ArrayExpr {
	return &ast.ArrayExpr{Pos: ast.Pos{Line: 12}, Name: name, Index: i}
}

func call(ref ast.Expr, name string, args ...ast.Expr) *ast.DispatchExpr {
	return &ast.DispatchExpr{Pos: ast.Pos{Line: 13}, Ref: ref, Method: name, Args: args}
}

func newObj(typ string) *ast.NewExpr {
	return &ast.NewExpr{Pos: ast.Pos{Line: 14}, Type: typ}
}

func newArray(typ string, size ast.Expr) *ast.NewArrayExpr {
	return &ast.NewArrayExpr{Pos: ast.Pos{Line: 14}, Type: typ, Size: size}
}

func cast(typ string, e ast.Expr) *ast.CastExpr {
	return &ast.CastExpr{Pos: ast.Pos{Line: 15}, Type: ast.ParseTypeRef(typ), Expr: e}
}

func instanceOf(e ast.Expr, typ string) *ast.InstanceofExpr {
	return &ast.InstanceofExpr{Pos: ast.Pos{Line: 15}, Expr: e, Type: ast.ParseTypeRef(typ)}
}

func assign(name string, e ast.Expr) *ast.AssignExpr {
	return &ast.AssignExpr{Pos: ast.Pos{Line: 16}, Name: name, Expr: e}
}

func assignRef(ref, name string, e ast.Expr) *ast.AssignExpr {
	return &ast.AssignExpr{Pos: ast.Pos{Line: 16}, RefName: ref, Name: name, Expr: e}
}

func arrayAssign(name string, i, e ast.Expr) *ast.ArrayAssignExpr {
	return &ast.ArrayAssignExpr{Pos: ast.Pos{Line: 16}, Name: name, Index: i, Expr: e}
}

func bin(op ast.BinaryOp, left, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Pos: ast.Pos{Line: 17}, Op: op, Left: left, Right: right}
}

func unary(op ast.UnaryOp, e ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Pos: ast.Pos{Line: 17}, Op: op, Expr: e}
}

func analyze(classes ...*ast.Class) *Result {
	return Analyze(program(classes...), Options{})
}

func assertKinds(t *testing.T, result *Result, want ...diagnostic.Kind) {
	t.Helper()
	got := result.Diagnostics.Kinds()
	if len(want) == 0 {
		want = []diagnostic.Kind{}
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("diagnostic kinds differ: %v\n%s", diff, result.Diagnostics.Format())
	}
}
