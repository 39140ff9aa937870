package semant

import (
	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/diagnostic"
)

// buildClassEnvironments fills the field and method tables of every class. It must visit parents before
// children, since checking an override looks the name up in the already complete parent table.
func (ctx *Context) buildClassEnvironments() {
	for _, node := range ctx.order {
		ctx.buildClassEnvironment(node)
	}
}

func (ctx *Context) buildClassEnvironment(node *ClassNode) {
	for _, member := range node.Decl.Members {
		switch member := member.(type) {
		case *ast.Field:
			ctx.buildField(node, member)
		case *ast.Method:
			ctx.buildMethod(node, member)
		}
	}
}

func (ctx *Context) buildField(node *ClassNode, field *ast.Field) {
	file, line := node.Filename(), field.Line
	fieldType := typeFromRef(field.Type)
	switch {
	case ctx.reserved[field.Name]:
		ctx.errorf(diagnostic.ReservedIdentifier, file, line, "fields cannot be named '%s'", field.Name)
	case node.Vars.Peek(field.Name) != nil:
		ctx.errorf(diagnostic.DuplicateDefinition, file, line,
			"field '%s' is already defined in class '%s'", field.Name, node.Name)
	case !ctx.isKnownType(fieldType):
		ctx.errorf(diagnostic.UndefinedType, file, line,
			"type '%s' of field '%s' is undefined", fieldType, field.Name)
	default:
		symbol := &Symbol{Name: field.Name, Kind: FieldSymbol, Type: fieldType}
		node.Vars.Add(field.Name, symbol)
		node.Vars.Add("this."+field.Name, symbol)
		node.DeclaredFields = append(node.DeclaredFields, symbol)
	}
}

func (ctx *Context) buildMethod(node *ClassNode, method *ast.Method) {
	file, line := node.Filename(), method.Line
	returnType := typeFromRef(method.ReturnType)
	switch {
	case ctx.reserved[method.Name]:
		ctx.errorf(diagnostic.ReservedIdentifier, file, line, "methods cannot be named '%s'", method.Name)
		return
	case node.Methods.Peek(method.Name) != nil:
		ctx.errorf(diagnostic.DuplicateDefinition, file, line,
			"method '%s' is already defined in class '%s'", method.Name, node.Name)
		return
	case !ctx.isValidReturnType(returnType):
		ctx.errorf(diagnostic.UndefinedType, file, line,
			"return type '%s' of method '%s' is undefined", returnType, method.Name)
		return
	}

	sig := &MethodSig{Name: method.Name, ReturnType: returnType, Class: node, Decl: method}
	for _, formal := range method.Formals {
		sig.Params = append(sig.Params, typeFromRef(formal.Type))
	}
	// Peek failed, so any hit here is inherited. Overloading is not allowed: reusing a name needs the
	// exact same signature.
	if inherited := node.Methods.Lookup(method.Name); inherited != nil {
		if reason := overrideMismatch(sig, inherited.Method); reason != "" {
			ctx.errorf(diagnostic.IllegalOverload, file, line,
				"method '%s' in class '%s' overloads '%s' inherited from '%s': %s",
				method.Name, node.Name, inherited.Method, inherited.Method.Class.Name, reason)
			return
		}
	}
	node.Methods.Add(method.Name, &Symbol{Name: method.Name, Kind: MethodSymbol, Type: returnType, Method: sig})
	node.DeclaredMethods = append(node.DeclaredMethods, sig)
}

func (ctx *Context) isValidReturnType(t Type) bool {
	return t == VoidType || ctx.isKnownType(t)
}

func overrideMismatch(sig, inherited *MethodSig) string {
	if sig.SameSignature(inherited) {
		return ""
	}
	if sig.ReturnType != inherited.ReturnType {
		return "return types differ"
	}
	if len(sig.Params) != len(inherited.Params) {
		return "formal counts differ"
	}
	for i, param := range sig.Params {
		if param != inherited.Params[i] {
			return "formal types differ"
		}
	}
	return ""
}
