package semant

import "bantam_compiler/compiler/diagnostic"

// buildClassTree registers the built-in and user classes, then links every class to its parent.
// Registration finishes before linking starts so a class may extend one declared after it.
func (ctx *Context) buildClassTree() {
	ctx.initBuiltInClasses()
	ctx.registerClasses()
	ctx.linkClasses()
	for _, node := range ctx.registered {
		node.Vars.EnterScope()
		node.Methods.EnterScope()
	}
	ctx.order = ctx.breadthFirstOrder()
	if ctx.opts.Logger != nil {
		for _, node := range ctx.order {
			ctx.logf("semant: class hierarchy %s", node.Lineage())
		}
	}
}

func (ctx *Context) registerClasses() {
	if ctx.program == nil {
		return
	}
	for _, decl := range ctx.program.Classes {
		if decl == nil {
			continue
		}
		existing, ok := ctx.classes[decl.Name]
		if !ok {
			ctx.register(newClassNode(decl, false, true))
			continue
		}
		if existing.BuiltIn {
			ctx.errorf(diagnostic.DuplicateDefinition, decl.Filename, decl.Line,
				"built-in class '%s' cannot be redefined", decl.Name)
		} else {
			ctx.errorf(diagnostic.DuplicateDefinition, decl.Filename, decl.Line,
				"class '%s' is already defined at %s:%d", decl.Name, existing.Filename(), existing.Decl.Line)
		}
	}
}

func (ctx *Context) linkClasses() {
	for _, node := range ctx.registered {
		if node == ctx.root {
			continue
		}
		file, line := node.Filename(), node.Decl.Line
		parentName := ctx.declaredParent(node)
		parent, ok := ctx.classes[parentName]
		switch {
		case !ok:
			ctx.inheritanceErrorf(diagnostic.MissingParent, file, line,
				"class '%s' extends undefined class '%s'", node.Name, parentName)
		case !parent.Extendable:
			ctx.inheritanceErrorf(diagnostic.SealedParent, file, line,
				"class '%s' cannot extend sealed class '%s'", node.Name, parentName)
		case ctx.reaches(parent, node):
			ctx.inheritanceErrorf(diagnostic.InheritanceCycle, file, line,
				"inheritance cycle detected involving class '%s'", node.Name)
		default:
			node.setParent(parent)
			continue
		}
		// A rejected class still inherits the root members.
		node.Vars.SetParent(ctx.root.Vars)
		node.Methods.SetParent(ctx.root.Methods)
	}
}

func (ctx *Context) inheritanceErrorf(reason diagnostic.Reason, file string, line int, format string, args ...interface{}) {
	ctx.diag.AddReasonf(diagnostic.IllegalInheritance, reason, file, line, format, args...)
}

func (ctx *Context) declaredParent(node *ClassNode) string {
	if node == ctx.root {
		return ""
	}
	if node.Decl.Parent == "" {
		return RootClassName
	}
	return node.Decl.Parent
}

// reaches walks the declared ancestor chain from start toward the root and reports whether it meets
// target. Links are not committed yet, so the walk follows declared parent names and stops on any
// loop that does not contain target.
func (ctx *Context) reaches(start, target *ClassNode) bool {
	seen := map[*ClassNode]bool{}
	for p := start; p != nil && p != ctx.root; p = ctx.classes[ctx.declaredParent(p)] {
		if p == target {
			return true
		}
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return false
}

// breadthFirstOrder lists every registered class, each parent before its children. The root tree comes
// first; a class whose parent link was rejected then heads a tree of its own, so its members and those
// of its subclasses are still built and checked.
func (ctx *Context) breadthFirstOrder() []*ClassNode {
	var order []*ClassNode
	for _, top := range ctx.registered {
		if top.Parent != nil {
			continue
		}
		start := len(order)
		order = append(order, top)
		for i := start; i < len(order); i++ {
			order = append(order, order[i].Children...)
		}
	}
	return order
}
