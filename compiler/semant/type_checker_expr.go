package semant

import (
	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/diagnostic"
)

// checkExpr resolves the type of e, records it and returns it. Every violation reports one diagnostic and
// yields ErrorType, which every later check accepts.
func (tc *typeChecker) checkExpr(e ast.Expr) Type {
	if e == nil {
		return ErrorType
	}
	var t Type
	switch e := e.(type) {
	case *ast.ConstIntExpr:
		t = IntType
	case *ast.ConstBooleanExpr:
		t = BooleanType
	case *ast.ConstStringExpr:
		t = ClassType(StringClassName)
	case *ast.VarExpr:
		t = tc.checkVar(e)
	case *ast.ArrayExpr:
		t = tc.checkArrayRef(e)
	case *ast.DispatchExpr:
		t = tc.checkDispatch(e)
	case *ast.NewExpr:
		t = tc.checkNew(e)
	case *ast.NewArrayExpr:
		t = tc.checkNewArray(e)
	case *ast.InstanceofExpr:
		t = tc.checkInstanceof(e)
	case *ast.CastExpr:
		t = tc.checkCast(e)
	case *ast.AssignExpr:
		t = tc.checkAssign(e)
	case *ast.ArrayAssignExpr:
		t = tc.checkArrayAssign(e)
	case *ast.BinaryExpr:
		t = tc.checkBinary(e)
	case *ast.UnaryExpr:
		t = tc.checkUnary(e)
	default:
		t = ErrorType
	}
	return tc.ctx.setType(e, t)
}

func isInt(t Type) bool     { return t == IntType || t.IsError() }
func isBoolean(t Type) bool { return t == BooleanType || t.IsError() }

func (tc *typeChecker) lookupVar(name string, at ast.Node) Type {
	symbol := tc.vars.Lookup(name)
	if symbol == nil {
		tc.errorf(diagnostic.UndefinedSymbol, at, "undeclared variable '%s'", name)
		return ErrorType
	}
	return symbol.Type
}

// qualifier returns the class whose fields ref gives access to. Only this and super qualify a field.
func (tc *typeChecker) qualifier(ref ast.Expr) *ClassNode {
	v, ok := ref.(*ast.VarExpr)
	if !ok || v.Ref != nil {
		return nil
	}
	switch v.Name {
	case "this":
		return tc.class
	case "super":
		return tc.class.Parent
	}
	return nil
}

func (tc *typeChecker) lookupField(owner *ClassNode, name string, at ast.Node) Type {
	symbol := owner.LookupField(name)
	if symbol == nil {
		tc.errorf(diagnostic.UndefinedSymbol, at, "no field '%s' in class '%s'", name, owner.Name)
		return ErrorType
	}
	return symbol.Type
}

func (tc *typeChecker) checkVar(e *ast.VarExpr) Type {
	if e.Ref == nil {
		switch e.Name {
		case "this":
			return tc.class.Type()
		case "super":
			if tc.class.Parent == nil {
				return ErrorType
			}
			return tc.class.Parent.Type()
		case "null":
			return NullType
		}
		return tc.lookupVar(e.Name, e)
	}
	refType := tc.checkExpr(e.Ref)
	if refType.IsError() {
		return ErrorType
	}
	if refType.Array {
		if e.Name == "length" {
			return IntType
		}
		tc.errorf(diagnostic.InvalidOperator, e, "arrays only have a length member, not '%s'", e.Name)
		return ErrorType
	}
	owner := tc.qualifier(e.Ref)
	if owner == nil {
		tc.errorf(diagnostic.InvalidOperator, e, "field '%s' can only be accessed through this or super", e.Name)
		return ErrorType
	}
	return tc.lookupField(owner, e.Name, e)
}

func (tc *typeChecker) checkArrayRef(e *ast.ArrayExpr) Type {
	var base Type
	if e.Ref == nil {
		base = tc.lookupVar(e.Name, e)
	} else if refType := tc.checkExpr(e.Ref); refType.IsError() {
		base = ErrorType
	} else if owner := tc.qualifier(e.Ref); owner != nil {
		base = tc.lookupField(owner, e.Name, e)
	} else {
		tc.errorf(diagnostic.InvalidOperator, e, "field '%s' can only be accessed through this or super", e.Name)
		base = ErrorType
	}
	indexType := tc.checkExpr(e.Index)
	if !isInt(indexType) {
		tc.errorf(diagnostic.TypeMismatch, e.Index, "array index must be int, got '%s'", indexType)
	}
	if base.IsError() {
		return ErrorType
	}
	if !base.Array {
		tc.errorf(diagnostic.TypeMismatch, e, "'%s' of type '%s' is not an array", e.Name, base)
		return ErrorType
	}
	return base.Elem()
}

func (tc *typeChecker) checkDispatch(e *ast.DispatchExpr) Type {
	receiver := tc.class
	if e.Ref != nil {
		refType := tc.checkExpr(e.Ref)
		switch {
		case refType.IsError():
			receiver = nil
		case refType.Array:
			// Arrays inherit the root class methods.
			receiver = tc.ctx.root
		case refType.IsClass():
			receiver = tc.ctx.classOf(refType)
		default:
			tc.errorf(diagnostic.InvalidOperator, e, "cannot call method '%s' on type '%s'", e.Method, refType)
			receiver = nil
		}
	}
	argTypes := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = tc.checkExpr(arg)
	}
	if receiver == nil {
		return ErrorType
	}
	sig := receiver.LookupMethod(e.Method)
	if sig == nil {
		tc.errorf(diagnostic.UndefinedSymbol, e, "no method '%s' in class '%s'", e.Method, receiver.Name)
		return ErrorType
	}
	if len(argTypes) != len(sig.Params) {
		tc.errorf(diagnostic.TypeMismatch, e, "method '%s' expects %d argument(s), got %d",
			e.Method, len(sig.Params), len(argTypes))
		return ErrorType
	}
	ok := true
	for i, argType := range argTypes {
		param := sig.Params[i]
		switch {
		case argType.IsVoid():
			tc.errorf(diagnostic.TypeMismatch, e.Args[i], "argument %d of '%s' cannot be void", i+1, e.Method)
			ok = false
		case argType.IsError() || !tc.ctx.isKnownType(param):
		case argType != param:
			// Arguments must match the formal types exactly, no widening.
			tc.errorf(diagnostic.TypeMismatch, e.Args[i], "argument %d of '%s' has type '%s', expected '%s'",
				i+1, e.Method, argType, param)
			ok = false
		}
	}
	if !ok {
		return ErrorType
	}
	return sig.ReturnType
}

func (tc *typeChecker) checkNew(e *ast.NewExpr) Type {
	t := ClassType(e.Type)
	if tc.ctx.classOf(t) == nil {
		tc.errorf(diagnostic.UndefinedType, e, "cannot instantiate undefined class '%s'", e.Type)
		return ErrorType
	}
	return t
}

func (tc *typeChecker) checkNewArray(e *ast.NewArrayExpr) Type {
	elem := Type{Name: e.Type}
	sizeType := tc.checkExpr(e.Size)
	ok := true
	if !tc.ctx.isKnownType(elem) {
		tc.errorf(diagnostic.UndefinedType, e, "array element type '%s' is undefined", e.Type)
		ok = false
	}
	if !isInt(sizeType) {
		tc.errorf(diagnostic.TypeMismatch, e.Size, "array size must be int, got '%s'", sizeType)
		ok = false
	}
	if !ok {
		return ErrorType
	}
	return ArrayOf(elem)
}

func (tc *typeChecker) checkInstanceof(e *ast.InstanceofExpr) Type {
	target := typeFromRef(e.Type)
	exprType := tc.checkExpr(e.Expr)
	switch {
	case !target.IsReference():
		tc.errorf(diagnostic.InvalidOperator, e, "instanceof needs a class or array type, got '%s'", target)
	case !tc.ctx.isKnownType(target):
		tc.errorf(diagnostic.UndefinedType, e, "instanceof type '%s' is undefined", target)
	}
	if exprType.IsVoid() || exprType.IsPrimitive() {
		tc.errorf(diagnostic.TypeMismatch, e.Expr, "instanceof cannot be applied to an expression of type '%s'", exprType)
	}
	return BooleanType
}

// checkCast accepts casts within one lineage. Casting toward an ancestor is recorded as an upcast;
// casting toward a descendant is legal here but needs a run-time check.
func (tc *typeChecker) checkCast(e *ast.CastExpr) Type {
	target := typeFromRef(e.Type)
	from := tc.checkExpr(e.Expr)
	switch {
	case !target.IsReference():
		tc.errorf(diagnostic.InvalidCast, e, "cannot cast to non-reference type '%s'", target)
		return ErrorType
	case !tc.ctx.isKnownType(target):
		tc.errorf(diagnostic.UndefinedType, e, "cast type '%s' is undefined", target)
		return ErrorType
	case from.IsError():
		return target
	case from.IsNull():
		tc.ctx.upcasts[e] = true
		return target
	case !from.IsReference():
		tc.errorf(diagnostic.InvalidCast, e, "cannot cast expression of type '%s' to '%s'", from, target)
		return ErrorType
	}
	up := tc.ctx.isSubtype(from, target)
	down := tc.ctx.isSubtype(target, from)
	if !up && !down {
		tc.errorf(diagnostic.InvalidCast, e, "cannot cast '%s' to unrelated type '%s'", from, target)
		return ErrorType
	}
	tc.ctx.upcasts[e] = up
	return target
}

// resolveTarget finds the declared type of an assignment target: name, this.name or super.name.
func (tc *typeChecker) resolveTarget(refName, name string, at ast.Node) Type {
	switch refName {
	case "":
		return tc.lookupVar(name, at)
	case "this":
		return tc.lookupField(tc.class, name, at)
	case "super":
		if tc.class.Parent == nil {
			return ErrorType
		}
		return tc.lookupField(tc.class.Parent, name, at)
	}
	tc.errorf(diagnostic.InvalidOperator, at, "only this or super may qualify the assignment to '%s'", name)
	return ErrorType
}

func (tc *typeChecker) checkAssignedValue(target Type, value ast.Expr, name string) {
	valueType := tc.checkExpr(value)
	if valueType.IsVoid() {
		tc.errorf(diagnostic.TypeMismatch, value, "cannot assign a void expression to '%s'", name)
	} else if !tc.ctx.assignable(target, valueType) {
		tc.errorf(diagnostic.TypeMismatch, value, "cannot assign '%s' to '%s' of type '%s'", valueType, name, target)
	}
}

// checkAssign types the assignment as its target, so a bad right side does not change what the
// target is known to hold.
func (tc *typeChecker) checkAssign(e *ast.AssignExpr) Type {
	target := tc.resolveTarget(e.RefName, e.Name, e)
	tc.checkAssignedValue(target, e.Expr, e.Name)
	return target
}

func (tc *typeChecker) checkArrayAssign(e *ast.ArrayAssignExpr) Type {
	target := tc.resolveTarget(e.RefName, e.Name, e)
	indexType := tc.checkExpr(e.Index)
	if !isInt(indexType) {
		tc.errorf(diagnostic.TypeMismatch, e.Index, "array index must be int, got '%s'", indexType)
	}
	elem := ErrorType
	if target.Array {
		elem = target.Elem()
	} else if !target.IsError() {
		tc.errorf(diagnostic.TypeMismatch, e, "'%s' of type '%s' is not an array", e.Name, target)
	}
	tc.checkAssignedValue(elem, e.Expr, e.Name)
	return elem
}

func (tc *typeChecker) checkBinary(e *ast.BinaryExpr) Type {
	left := tc.checkExpr(e.Left)
	right := tc.checkExpr(e.Right)
	switch {
	case e.Op.IsArithmetic():
		if isInt(left) && isInt(right) {
			return IntType
		}
		tc.errorf(diagnostic.TypeMismatch, e, "operator '%s' needs int operands, got '%s' and '%s'", e.Op, left, right)
		return ErrorType
	case e.Op.IsRelational():
		if !isInt(left) || !isInt(right) {
			tc.errorf(diagnostic.TypeMismatch, e, "operator '%s' needs int operands, got '%s' and '%s'", e.Op, left, right)
		}
		return BooleanType
	case e.Op.IsEquality():
		if !tc.ctx.comparable(left, right) {
			tc.errorf(diagnostic.TypeMismatch, e, "cannot compare '%s' and '%s' with '%s'", left, right, e.Op)
		}
		return BooleanType
	case e.Op.IsLogical():
		if !isBoolean(left) || !isBoolean(right) {
			tc.errorf(diagnostic.TypeMismatch, e, "operator '%s' needs boolean operands, got '%s' and '%s'", e.Op, left, right)
		}
		return BooleanType
	}
	tc.errorf(diagnostic.InvalidOperator, e, "unknown binary operator '%s'", e.Op)
	return ErrorType
}

func (tc *typeChecker) checkUnary(e *ast.UnaryExpr) Type {
	operand := tc.checkExpr(e.Expr)
	switch e.Op {
	case ast.NegOp:
		if isInt(operand) {
			return IntType
		}
		tc.errorf(diagnostic.TypeMismatch, e, "operator '-' needs an int operand, got '%s'", operand)
		return ErrorType
	case ast.NotOp:
		if isBoolean(operand) {
			return BooleanType
		}
		tc.errorf(diagnostic.TypeMismatch, e, "operator '!' needs a boolean operand, got '%s'", operand)
		return ErrorType
	case ast.IncrOp, ast.DecrOp:
		if !tc.isVariable(e.Expr) {
			tc.errorf(diagnostic.InvalidOperator, e, "operator '%s' needs a variable or an array element", e.Op)
			return ErrorType
		}
		if !isInt(operand) {
			tc.errorf(diagnostic.TypeMismatch, e, "operator '%s' needs an int operand, got '%s'", e.Op, operand)
			return ErrorType
		}
		return IntType
	}
	tc.errorf(diagnostic.InvalidOperator, e, "unknown unary operator '%s'", e.Op)
	return ErrorType
}

// isVariable reports whether e names storage that can be updated in place. The length of an array is
// read-only.
func (tc *typeChecker) isVariable(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.ArrayExpr:
		return true
	case *ast.VarExpr:
		if e.Ref == nil {
			return true
		}
		refType := tc.ctx.types[e.Ref]
		return !refType.Array
	}
	return false
}
