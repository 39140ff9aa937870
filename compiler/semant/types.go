package semant

import "bantam_compiler/compiler/ast"

const (
	IntTypeName     = "int"
	BooleanTypeName = "boolean"
	VoidTypeName    = "void"
	NullTypeName    = "null"
	// Never a legal identifier, so it cannot clash with a user class.
	errorTypeName = "<error>"
)

// Type is the resolved type of an expression or a declaration: a primitive, void, null, a class name,
// or a one-dimensional array of a primitive or a class.
type Type struct {
	Name  string
	Array bool
}

var (
	IntType     = Type{Name: IntTypeName}
	BooleanType = Type{Name: BooleanTypeName}
	VoidType    = Type{Name: VoidTypeName}
	NullType    = Type{Name: NullTypeName}
	// ErrorType is given to expressions that failed to check. It is compatible with every other type
	// so that one mistake is reported once.
	ErrorType = Type{Name: errorTypeName}
)

func ClassType(name string) Type {
	return Type{Name: name}
}

func ArrayOf(t Type) Type {
	return Type{Name: t.Name, Array: true}
}

func typeFromRef(ref ast.TypeRef) Type {
	return Type{Name: ref.Name, Array: ref.Array}
}

// Elem returns the element type of an array type.
func (t Type) Elem() Type {
	return Type{Name: t.Name}
}

func (t Type) IsPrimitive() bool {
	return !t.Array && (t.Name == IntTypeName || t.Name == BooleanTypeName)
}

func (t Type) IsVoid() bool  { return t == VoidType }
func (t Type) IsNull() bool  { return t == NullType }
func (t Type) IsError() bool { return t.Name == errorTypeName }

// IsClass reports whether t names a class, without checking that the class exists.
func (t Type) IsClass() bool {
	if t.Array {
		return false
	}
	switch t.Name {
	case IntTypeName, BooleanTypeName, VoidTypeName, NullTypeName, errorTypeName:
		return false
	}
	return true
}

// IsReference reports whether values of t are object references: classes and arrays.
func (t Type) IsReference() bool {
	return t.Array || t.IsClass()
}

func (t Type) String() string {
	if t.Array {
		return t.Name + "[]"
	}
	return t.Name
}
