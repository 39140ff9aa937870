package semant

import "bantam_compiler/compiler/diagnostic"

// checkMain verifies the entry point: a class named Main with a main method that takes no arguments and
// returns void. Failures are reported but never stop type checking.
func (ctx *Context) checkMain() {
	entryClass, entryMethod := ctx.opts.EntryClass, ctx.opts.EntryMethod
	node, ok := ctx.classes[entryClass]
	if !ok {
		ctx.errorf(diagnostic.MissingMain, "", -1, "no class '%s' defined", entryClass)
		return
	}
	symbol := node.Methods.Peek(entryMethod)
	if symbol == nil {
		ctx.errorf(diagnostic.MissingMain, node.Filename(), node.Decl.Line,
			"no '%s' method defined in the '%s' class", entryMethod, entryClass)
		return
	}
	sig := symbol.Method
	line := sig.Decl.Line
	if len(sig.Params) != 0 {
		ctx.errorf(diagnostic.MalformedMain, node.Filename(), line,
			"'%s' method in class '%s' cannot take arguments", entryMethod, entryClass)
	}
	if sig.ReturnType != VoidType {
		ctx.errorf(diagnostic.MalformedMain, node.Filename(), line,
			"'%s' method in class '%s' must be void", entryMethod, entryClass)
	}
}
