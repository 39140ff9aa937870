package semant

import (
	"strings"

	"bantam_compiler/compiler/ast"
)

// MethodSig is the signature of a declared method: its return type plus its formal types in order.
type MethodSig struct {
	Name       string
	ReturnType Type
	Params     []Type
	// The class that declares the method.
	Class *ClassNode
	Decl  *ast.Method
}

// SameSignature reports whether other has the same return type and formal types, which is what
// overriding requires.
func (sig *MethodSig) SameSignature(other *MethodSig) bool {
	if sig.ReturnType != other.ReturnType || len(sig.Params) != len(other.Params) {
		return false
	}
	for i, param := range sig.Params {
		if param != other.Params[i] {
			return false
		}
	}
	return true
}

func (sig *MethodSig) String() string {
	params := make([]string, len(sig.Params))
	for i, param := range sig.Params {
		params[i] = param.String()
	}
	return sig.ReturnType.String() + " " + sig.Name + "(" + strings.Join(params, ", ") + ")"
}

// ClassNode is one class of the hierarchy tree together with its member tables.
type ClassNode struct {
	Name       string
	Parent     *ClassNode
	Children   []*ClassNode
	BuiltIn    bool
	Extendable bool
	// Vars holds fields under both name and this.name; Methods holds method signatures. Both are
	// chained to the parent's tables once the parent link is set.
	Vars    *SymbolTable
	Methods *SymbolTable
	// Members declared by this class, in declaration order. Code generation lays objects out from these.
	DeclaredFields  []*Symbol
	DeclaredMethods []*MethodSig
	Decl            *ast.Class
}

func newClassNode(decl *ast.Class, builtIn, extendable bool) *ClassNode {
	return &ClassNode{
		Name:       decl.Name,
		BuiltIn:    builtIn,
		Extendable: extendable,
		Vars:       NewSymbolTable(nil),
		Methods:    NewSymbolTable(nil),
		Decl:       decl,
	}
}

func (node *ClassNode) setParent(parent *ClassNode) {
	node.Parent = parent
	parent.Children = append(parent.Children, node)
	node.Vars.SetParent(parent.Vars)
	node.Methods.SetParent(parent.Methods)
}

func (node *ClassNode) Type() Type {
	return ClassType(node.Name)
}

func (node *ClassNode) Filename() string {
	return node.Decl.Filename
}

// LookupMethod finds a method declared by the class or inherited from an ancestor.
func (node *ClassNode) LookupMethod(name string) *MethodSig {
	symbol := node.Methods.Lookup(name)
	if symbol == nil {
		return nil
	}
	return symbol.Method
}

// LookupField finds a field declared by the class or inherited from an ancestor.
func (node *ClassNode) LookupField(name string) *Symbol {
	return node.Vars.Lookup("this." + name)
}

// IsSubclassOf reports whether ancestor is the node itself or one of its ancestors.
func (node *ClassNode) IsSubclassOf(ancestor *ClassNode) bool {
	for n := node; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Lineage returns the chain from the root down to the node, like Object->A->B.
func (node *ClassNode) Lineage() string {
	names := []string{}
	for n := node; n != nil; n = n.Parent {
		names = append([]string{n.Name}, names...)
	}
	return strings.Join(names, "->")
}
