package semant

import (
	"log"

	"bantam_compiler/compiler/ast"
	"bantam_compiler/compiler/diagnostic"
)

const (
	DefaultEntryClass  = "Main"
	DefaultEntryMethod = "main"
)

type Options struct {
	// Logger receives phase progress and a dump of the class hierarchy. Nil disables logging.
	Logger *log.Logger
	// EntryClass and EntryMethod name the program entry point. Empty means Main and main.
	EntryClass  string
	EntryMethod string
}

// Context is the state of one analysis run. It owns the class forest, the diagnostics and the
// expression type table, and is passed to every phase. It must not be shared between runs.
type Context struct {
	program *ast.Program
	opts    Options
	diag    *diagnostic.Collector

	classes map[string]*ClassNode
	// Registration order: built-ins first, then user classes as declared.
	registered []*ClassNode
	root       *ClassNode
	// Breadth-first, parent before child. The root tree comes first, then the trees headed by classes
	// whose parent link was rejected.
	order []*ClassNode

	primitives map[string]bool
	reserved   map[string]bool

	types   map[ast.Expr]Type
	upcasts map[*ast.CastExpr]bool
}

func NewContext(program *ast.Program, opts Options) *Context {
	if opts.EntryClass == "" {
		opts.EntryClass = DefaultEntryClass
	}
	if opts.EntryMethod == "" {
		opts.EntryMethod = DefaultEntryMethod
	}
	return &Context{
		program:    program,
		opts:       opts,
		diag:       diagnostic.New(),
		classes:    map[string]*ClassNode{},
		primitives: map[string]bool{IntTypeName: true, BooleanTypeName: true},
		reserved:   map[string]bool{"this": true, "super": true, "null": true},
		types:      map[ast.Expr]Type{},
		upcasts:    map[*ast.CastExpr]bool{},
	}
}

// Analyze runs every phase over the program: the class hierarchy, the class environments, the entry
// point check and type checking. The program is accepted iff the returned diagnostics are empty.
func Analyze(program *ast.Program, opts Options) *Result {
	ctx := NewContext(program, opts)
	ctx.logf("semant: start building class tree")
	ctx.buildClassTree()
	ctx.logf("semant: start building class environments")
	ctx.buildClassEnvironments()
	ctx.logf("semant: start checking entry point")
	ctx.checkMain()
	ctx.logf("semant: start type checking")
	ctx.typeCheck()
	ctx.logf("semant: done, %d diagnostic(s)", ctx.diag.Count())
	return ctx.result()
}

func (ctx *Context) logf(format string, args ...interface{}) {
	if ctx.opts.Logger != nil {
		ctx.opts.Logger.Printf(format, args...)
	}
}

func (ctx *Context) errorf(kind diagnostic.Kind, file string, line int, format string, args ...interface{}) {
	ctx.diag.Addf(kind, file, line, format, args...)
}

func (ctx *Context) register(node *ClassNode) {
	ctx.classes[node.Name] = node
	ctx.registered = append(ctx.registered, node)
}

// isKnownType reports whether t is a primitive, a registered class, or an array of either.
func (ctx *Context) isKnownType(t Type) bool {
	if ctx.primitives[t.Name] {
		return true
	}
	_, ok := ctx.classes[t.Name]
	return ok
}

func (ctx *Context) classOf(t Type) *ClassNode {
	if !t.IsClass() {
		return nil
	}
	return ctx.classes[t.Name]
}

// isSubtype reports whether a value of type sub can be used where sup is expected by widening only.
// Every array type is a subtype of the root class and arrays of classes are covariant.
func (ctx *Context) isSubtype(sub, sup Type) bool {
	if sub == sup {
		return true
	}
	if !sub.IsReference() || !sup.IsReference() {
		return false
	}
	if sup == ctx.root.Type() {
		return true
	}
	if sub.Array != sup.Array {
		return false
	}
	subClass, supClass := ctx.classes[sub.Name], ctx.classes[sup.Name]
	if subClass == nil || supClass == nil {
		return false
	}
	return subClass.IsSubclassOf(supClass)
}

// assignable reports whether a value of type from may be stored in a variable of type to.
func (ctx *Context) assignable(to, from Type) bool {
	if to.IsError() || from.IsError() {
		return true
	}
	if from.IsVoid() || to.IsVoid() {
		return false
	}
	if from.IsNull() {
		return to.IsReference()
	}
	return ctx.isSubtype(from, to)
}

// comparable reports whether two operands may be compared with == or !=.
func (ctx *Context) comparable(left, right Type) bool {
	if left.IsError() || right.IsError() {
		return true
	}
	if left.IsVoid() || right.IsVoid() {
		return false
	}
	if left == right {
		return true
	}
	if left.IsNull() {
		return right.IsReference()
	}
	if right.IsNull() {
		return left.IsReference()
	}
	return ctx.isSubtype(left, right) || ctx.isSubtype(right, left)
}

// setType records the type of e. An expression is typed once; later writes are ignored.
func (ctx *Context) setType(e ast.Expr, t Type) Type {
	if old, ok := ctx.types[e]; ok {
		return old
	}
	ctx.types[e] = t
	return t
}

func (ctx *Context) result() *Result {
	return &Result{
		Root:        ctx.root,
		Classes:     ctx.classes,
		Order:       ctx.order,
		Diagnostics: ctx.diag,
		types:       ctx.types,
		upcasts:     ctx.upcasts,
	}
}

// Result is what the analyzer hands to code generation: the class forest and the resolved type of
// every expression.
type Result struct {
	Root    *ClassNode
	Classes map[string]*ClassNode
	// Every class, parent before child. On an accepted program they all descend from Root.
	Order       []*ClassNode
	Diagnostics *diagnostic.Collector

	types   map[ast.Expr]Type
	upcasts map[*ast.CastExpr]bool
}

// OK reports whether the program was accepted.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// TypeOf returns the resolved type of e.
func (r *Result) TypeOf(e ast.Expr) (Type, bool) {
	t, ok := r.types[e]
	return t, ok
}

// IsUpcast reports whether cast converts toward an ancestor, which needs no runtime check. A false
// result on an accepted program means a downcast that code generation must check at run time.
func (r *Result) IsUpcast(cast *ast.CastExpr) bool {
	return r.upcasts[cast]
}

func (r *Result) Class(name string) *ClassNode {
	return r.Classes[name]
}
