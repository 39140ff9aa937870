package semant

import (
	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/diagnostic"
)

// typeChecker checks the members of one class. Locals live in their own symbol table chained to the
// class field table, so the class tables stay read-only.
type typeChecker struct {
	ctx   *Context
	class *ClassNode
	file  string
	vars  *SymbolTable

	// Set while checking a method body.
	methodName string
	returnType Type
	inMethod   bool
	// Enclosing loops, innermost last. A break is legal only when this is not empty.
	loops []ast.Stmt
}

// typeCheck checks every user class, parent before child. Built-in classes are trusted.
func (ctx *Context) typeCheck() {
	for _, node := range ctx.order {
		if node.BuiltIn {
			continue
		}
		tc := &typeChecker{ctx: ctx, class: node, file: node.Filename()}
		tc.checkClass()
	}
}

func (tc *typeChecker) errorf(kind diagnostic.Kind, node ast.Node, format string, args ...interface{}) {
	tc.ctx.errorf(kind, tc.file, node.LineNum(), format, args...)
}

func (tc *typeChecker) checkClass() {
	for _, member := range tc.class.Decl.Members {
		switch member := member.(type) {
		case *ast.Field:
			tc.checkField(member)
		case *ast.Method:
			tc.checkMethod(member)
		}
	}
}

func (tc *typeChecker) checkField(field *ast.Field) {
	if field.Init == nil {
		return
	}
	tc.vars = tc.class.Vars
	tc.inMethod = false
	initType := tc.checkExpr(field.Init)
	fieldType := typeFromRef(field.Type)
	if initType.IsVoid() {
		tc.errorf(diagnostic.TypeMismatch, field, "initializer of field '%s' cannot be void", field.Name)
	} else if tc.ctx.isKnownType(fieldType) && !tc.ctx.assignable(fieldType, initType) {
		tc.errorf(diagnostic.TypeMismatch, field,
			"cannot initialize field '%s' of type '%s' with '%s'", field.Name, fieldType, initType)
	}
}

func (tc *typeChecker) checkMethod(method *ast.Method) {
	tc.methodName = method.Name
	tc.returnType = typeFromRef(method.ReturnType)
	if !tc.ctx.isValidReturnType(tc.returnType) {
		tc.returnType = ErrorType
	}
	tc.inMethod = true
	tc.loops = nil
	tc.vars = NewSymbolTable(tc.class.Vars)
	tc.vars.EnterScope()
	for _, formal := range method.Formals {
		tc.declare(formal, formal.Name, formal.Type, FormalSymbol)
	}
	tc.checkStmts(method.Body)
	tc.inMethod = false
}

// declare binds a formal or a local in the current scope. It returns the bound type, or false when the
// name could not be bound at all. An unknown type is bound as ErrorType so later uses stay quiet.
func (tc *typeChecker) declare(at ast.Node, name string, ref ast.TypeRef, kind SymbolKind) (Type, bool) {
	if tc.ctx.reserved[name] {
		tc.errorf(diagnostic.ReservedIdentifier, at, "%ss cannot be named '%s'", kind, name)
		return ErrorType, false
	}
	if tc.vars.Peek(name) != nil {
		tc.errorf(diagnostic.DuplicateDefinition, at, "%s '%s' is already defined in this scope", kind, name)
		return ErrorType, false
	}
	t := typeFromRef(ref)
	if !tc.ctx.isKnownType(t) {
		tc.errorf(diagnostic.UndefinedType, at, "type '%s' of %s '%s' is undefined", t, kind, name)
		t = ErrorType
	}
	tc.vars.Add(name, &Symbol{Name: name, Kind: kind, Type: t})
	return t, true
}

func (tc *typeChecker) enterScope() func() {
	tc.vars.EnterScope()
	return tc.vars.ExitScope
}

// enterLoop pushes a loop marker. The returned func pops it and is meant to be deferred, so the marker
// is gone on every path out of the loop.
func (tc *typeChecker) enterLoop(loop ast.Stmt) func() {
	tc.loops = append(tc.loops, loop)
	depth := len(tc.loops)
	return func() {
		tc.loops = tc.loops[:depth-1]
	}
}

func (tc *typeChecker) checkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		tc.checkStmt(stmt)
	}
}

func (tc *typeChecker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		tc.checkDecl(s)
	case *ast.ExprStmt:
		tc.checkExpr(s.Expr)
		if !isStatementExpr(s.Expr) {
			tc.errorf(diagnostic.IllegalStatement, s, "expression is not a statement")
		}
	case *ast.IfStmt:
		tc.checkCondition(s.Pred, "if")
		tc.checkStmt(s.Then)
		if s.Else != nil {
			tc.checkStmt(s.Else)
		}
	case *ast.WhileStmt:
		tc.checkWhile(s)
	case *ast.ForStmt:
		tc.checkFor(s)
	case *ast.BreakStmt:
		if len(tc.loops) == 0 {
			tc.errorf(diagnostic.InvalidBreak, s, "break statement outside of a loop")
		}
	case *ast.BlockStmt:
		tc.checkBlock(s)
	case *ast.ReturnStmt:
		tc.checkReturn(s)
	}
}

func (tc *typeChecker) checkDecl(s *ast.DeclStmt) {
	initType := ErrorType
	if s.Init != nil {
		initType = tc.checkExpr(s.Init)
	}
	declared, ok := tc.declare(s, s.Name, s.Type, LocalSymbol)
	if !ok || declared.IsError() {
		return
	}
	if initType.IsVoid() {
		tc.errorf(diagnostic.TypeMismatch, s, "initializer of variable '%s' cannot be void", s.Name)
	} else if !tc.ctx.assignable(declared, initType) {
		tc.errorf(diagnostic.TypeMismatch, s,
			"cannot initialize variable '%s' of type '%s' with '%s'", s.Name, declared, initType)
	}
}

func (tc *typeChecker) checkCondition(pred ast.Expr, what string) {
	t := tc.checkExpr(pred)
	if t != BooleanType && !t.IsError() {
		tc.errorf(diagnostic.TypeMismatch, pred, "%s condition must be boolean, got '%s'", what, t)
	}
}

func (tc *typeChecker) checkWhile(s *ast.WhileStmt) {
	defer tc.enterLoop(s)()
	tc.checkCondition(s.Pred, "while")
	tc.checkStmt(s.Body)
}

func (tc *typeChecker) checkFor(s *ast.ForStmt) {
	defer tc.enterLoop(s)()
	if s.Init != nil {
		tc.checkExpr(s.Init)
	}
	if s.Pred != nil {
		tc.checkCondition(s.Pred, "for")
	}
	if s.Update != nil {
		tc.checkExpr(s.Update)
	}
	tc.checkStmt(s.Body)
}

func (tc *typeChecker) checkBlock(s *ast.BlockStmt) {
	defer tc.enterScope()()
	tc.checkStmts(s.Stmts)
}

func (tc *typeChecker) checkReturn(s *ast.ReturnStmt) {
	if !tc.inMethod {
		return
	}
	expected := tc.returnType
	if s.Expr == nil {
		if !expected.IsVoid() && !expected.IsError() {
			tc.errorf(diagnostic.TypeMismatch, s,
				"method '%s' must return a value of type '%s'", tc.methodName, expected)
		}
		return
	}
	t := tc.checkExpr(s.Expr)
	switch {
	case expected.IsVoid():
		tc.errorf(diagnostic.TypeMismatch, s, "void method '%s' cannot return a value", tc.methodName)
	case t.IsVoid():
		tc.errorf(diagnostic.TypeMismatch, s, "method '%s' cannot return a void expression", tc.methodName)
	case t.IsError() || expected.IsError():
	case t != expected:
		// No widening: the returned type must be the declared one.
		tc.errorf(diagnostic.TypeMismatch, s,
			"method '%s' returns '%s', but its declared return type is '%s'", tc.methodName, t, expected)
	}
}

// Only expressions with an effect may stand alone as statements.
func isStatementExpr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.AssignExpr, *ast.ArrayAssignExpr, *ast.NewExpr, *ast.DispatchExpr:
		return true
	case *ast.UnaryExpr:
		return e.Op == ast.IncrOp || e.Op == ast.DecrOp
	}
	return false
}
