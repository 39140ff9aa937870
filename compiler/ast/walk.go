package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls f(node) first; if f returns
// true, Inspect visits each non-nil child of node.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, class := range n.Classes {
			Inspect(class, f)
		}
	case *Class:
		for _, member := range n.Members {
			Inspect(member, f)
		}
	case *Field:
		inspectExpr(n.Init, f)
	case *Method:
		for _, formal := range n.Formals {
			Inspect(formal, f)
		}
		inspectStmts(n.Body, f)
	case *Formal, *BreakStmt:
	case *DeclStmt:
		inspectExpr(n.Init, f)
	case *ExprStmt:
		inspectExpr(n.Expr, f)
	case *IfStmt:
		inspectExpr(n.Pred, f)
		inspectStmt(n.Then, f)
		inspectStmt(n.Else, f)
	case *WhileStmt:
		inspectExpr(n.Pred, f)
		inspectStmt(n.Body, f)
	case *ForStmt:
		inspectExpr(n.Init, f)
		inspectExpr(n.Pred, f)
		inspectExpr(n.Update, f)
		inspectStmt(n.Body, f)
	case *BlockStmt:
		inspectStmts(n.Stmts, f)
	case *ReturnStmt:
		inspectExpr(n.Expr, f)
	case *DispatchExpr:
		inspectExpr(n.Ref, f)
		for _, arg := range n.Args {
			inspectExpr(arg, f)
		}
	case *NewArrayExpr:
		inspectExpr(n.Size, f)
	case *InstanceofExpr:
		inspectExpr(n.Expr, f)
	case *CastExpr:
		inspectExpr(n.Expr, f)
	case *AssignExpr:
		inspectExpr(n.Expr, f)
	case *ArrayAssignExpr:
		inspectExpr(n.Index, f)
		inspectExpr(n.Expr, f)
	case *BinaryExpr:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *UnaryExpr:
		inspectExpr(n.Expr, f)
	case *VarExpr:
		inspectExpr(n.Ref, f)
	case *ArrayExpr:
		inspectExpr(n.Ref, f)
		inspectExpr(n.Index, f)
	case *NewExpr, *ConstIntExpr, *ConstBooleanExpr, *ConstStringExpr:
	}
}

// Optional children such as a missing else branch are nil and skipped.
func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectStmt(s Stmt, f func(Node) bool) {
	if s != nil {
		Inspect(s, f)
	}
}

func inspectStmts(stmts []Stmt, f func(Node) bool) {
	for _, s := range stmts {
		inspectStmt(s, f)
	}
}
