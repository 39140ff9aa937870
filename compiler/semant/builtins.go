package semant

import "bantam_compiler/compiler/ast"

const (
	RootClassName   = "Object"
	StringClassName = "String"
	TextIOClassName = "TextIO"
	SysClassName    = "Sys"

	builtInFilename = "<built-in class>"
)

type builtInMethod struct {
	name       string
	returnType string
	// Alternating formal type and formal name.
	params []string
}

// initBuiltInClasses registers the root class and the three sealed library classes. String, TextIO and Sys
// also have fields, but those are protected and the classes cannot be extended, so user code never sees
// them and they are left out.
func (ctx *Context) initBuiltInClasses() {
	ctx.root = ctx.addBuiltInClass(RootClassName, "", true, []builtInMethod{
		{name: "clone", returnType: RootClassName},
	})
	ctx.addBuiltInClass(StringClassName, RootClassName, false, []builtInMethod{
		{name: "length", returnType: IntTypeName},
		{name: "equals", returnType: BooleanTypeName, params: []string{RootClassName, "str"}},
		{name: "substring", returnType: StringClassName, params: []string{IntTypeName, "beginIndex", IntTypeName, "endIndex"}},
		{name: "concat", returnType: StringClassName, params: []string{StringClassName, "str"}},
	})
	ctx.addBuiltInClass(TextIOClassName, RootClassName, false, []builtInMethod{
		{name: "readStdin", returnType: VoidTypeName},
		{name: "readFile", returnType: VoidTypeName, params: []string{StringClassName, "readFile"}},
		{name: "writeStdout", returnType: VoidTypeName},
		{name: "writeStderr", returnType: VoidTypeName},
		{name: "writeFile", returnType: VoidTypeName, params: []string{StringClassName, "writeFile"}},
		{name: "getString", returnType: StringClassName},
		{name: "getInt", returnType: IntTypeName},
		{name: "putString", returnType: TextIOClassName, params: []string{StringClassName, "str"}},
		{name: "putInt", returnType: TextIOClassName, params: []string{IntTypeName, "n"}},
	})
	ctx.addBuiltInClass(SysClassName, RootClassName, false, []builtInMethod{
		{name: "exit", returnType: VoidTypeName, params: []string{IntTypeName, "status"}},
	})
}

// addBuiltInClass builds a synthetic class declaration so that built-in members go through the same
// environment building as user classes.
func (ctx *Context) addBuiltInClass(name, parent string, extendable bool, methods []builtInMethod) *ClassNode {
	decl := &ast.Class{Filename: builtInFilename, Name: name, Parent: parent}
	for _, method := range methods {
		methodDecl := &ast.Method{
			Name:       method.name,
			ReturnType: ast.ParseTypeRef(method.returnType),
			Body:       []ast.Stmt{&ast.ReturnStmt{}},
		}
		for i := 0; i+1 < len(method.params); i += 2 {
			methodDecl.Formals = append(methodDecl.Formals, &ast.Formal{
				Name: method.params[i+1],
				Type: ast.ParseTypeRef(method.params[i]),
			})
		}
		decl.Members = append(decl.Members, methodDecl)
	}
	node := newClassNode(decl, true, extendable)
	ctx.register(node)
	return node
}
