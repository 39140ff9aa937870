package semant

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantam_compiler/compiler/diagnostic"
)

func TestBuildClassTree_BuiltIns(t *testing.T) {
	result := analyze(mainClass())
	assertKinds(t, result)

	root := result.Root
	require.NotNil(t, root)
	assert.Equal(t, RootClassName, root.Name)
	assert.Nil(t, root.Parent)
	assert.True(t, root.Extendable)
	for _, name := range []string{StringClassName, TextIOClassName, SysClassName} {
		node := result.Class(name)
		require.NotNil(t, node, name)
		assert.True(t, node.BuiltIn, name)
		assert.False(t, node.Extendable, name)
		assert.Equal(t, root, node.Parent, name)
	}
	assert.NotNil(t, root.LookupMethod("clone"))
	assert.NotNil(t, result.Class(StringClassName).LookupMethod("substring"))
	assert.NotNil(t, result.Class(TextIOClassName).LookupMethod("putInt"))
	assert.NotNil(t, result.Class(SysClassName).LookupMethod("exit"))
}

func TestBuildClassTree_Errors(t *testing.T) {
	testData := []struct {
		name    string
		classes []*classDecl
		want    []diagnostic.Kind
	}{
		{
			name:    "self cycle",
			classes: []*classDecl{{"A", "A"}},
			want:    []diagnostic.Kind{diagnostic.IllegalInheritance},
		},
		{
			name:    "two class cycle",
			classes: []*classDecl{{"A", "B"}, {"B", "A"}},
			want:    []diagnostic.Kind{diagnostic.IllegalInheritance, diagnostic.IllegalInheritance},
		},
		{
			name:    "class hanging off a cycle",
			classes: []*classDecl{{"A", "B"}, {"B", "C"}, {"C", "B"}},
			want:    []diagnostic.Kind{diagnostic.IllegalInheritance, diagnostic.IllegalInheritance},
		},
		{
			name:    "missing parent",
			classes: []*classDecl{{"A", "Nope"}},
			want:    []diagnostic.Kind{diagnostic.IllegalInheritance},
		},
		{
			name:    "sealed parent",
			classes: []*classDecl{{"MyString", StringClassName}},
			want:    []diagnostic.Kind{diagnostic.IllegalInheritance},
		},
		{
			name:    "duplicate class",
			classes: []*classDecl{{"Foo", ""}, {"Foo", ""}},
			want:    []diagnostic.Kind{diagnostic.DuplicateDefinition},
		},
		{
			name:    "redefined built-in",
			classes: []*classDecl{{SysClassName, ""}},
			want:    []diagnostic.Kind{diagnostic.DuplicateDefinition},
		},
		{
			name:    "parent declared after child",
			classes: []*classDecl{{"B", "A"}, {"A", ""}},
			want:    nil,
		},
	}
	for _, d := range testData {
		prog := program(mainClass())
		for _, c := range d.classes {
			prog.Classes = append(prog.Classes, class(c.name, c.parent))
		}
		result := Analyze(prog, Options{})
		assertKinds(t, result, d.want...)
	}
}

type classDecl struct {
	name   string
	parent string
}

func TestBuildClassTree_DuplicateKeepsFirst(t *testing.T) {
	first := class("Foo", "", field("int", "a", nil))
	second := class("Foo", "", field("boolean", "b", nil))
	result := analyze(mainClass(), first, second)
	assertKinds(t, result, diagnostic.DuplicateDefinition)

	foo := result.Class("Foo")
	require.NotNil(t, foo)
	assert.Equal(t, first, foo.Decl)
	assert.NotNil(t, foo.LookupField("a"))
	assert.Nil(t, foo.LookupField("b"))
}

func TestBuildClassTree_CycleLeavesParentUnset(t *testing.T) {
	result := analyze(mainClass(), class("A", "A"), class("B", "A"))
	a := result.Class("A")
	require.NotNil(t, a)
	assert.Nil(t, a.Parent)
	assert.Equal(t, a, result.Class("B").Parent)
	// A heads its own tree after the root tree, still parent before child.
	require.Len(t, result.Order, 7)
	assert.Equal(t, a, result.Order[5])
	assert.Equal(t, result.Class("B"), result.Order[6])
	// The rejected class still inherits the root members.
	assert.NotNil(t, a.LookupMethod("clone"))
}

func TestBuildClassTree_InheritanceReasons(t *testing.T) {
	testData := []struct {
		name    string
		classes []*classDecl
		want    []diagnostic.Reason
	}{
		{
			name:    "missing parent",
			classes: []*classDecl{{"A", "Nope"}},
			want:    []diagnostic.Reason{diagnostic.MissingParent},
		},
		{
			name:    "sealed parent",
			classes: []*classDecl{{"A", TextIOClassName}},
			want:    []diagnostic.Reason{diagnostic.SealedParent},
		},
		{
			name:    "self cycle",
			classes: []*classDecl{{"A", "A"}},
			want:    []diagnostic.Reason{diagnostic.InheritanceCycle},
		},
		{
			name:    "class below a cycle is not itself on it",
			classes: []*classDecl{{"A", "B"}, {"B", "C"}, {"C", "B"}, {"D", "A"}},
			want:    []diagnostic.Reason{diagnostic.InheritanceCycle, diagnostic.InheritanceCycle},
		},
	}
	for _, d := range testData {
		prog := program(mainClass())
		for _, c := range d.classes {
			prog.Classes = append(prog.Classes, class(c.name, c.parent))
		}
		result := Analyze(prog, Options{})

		var got []diagnostic.Reason
		for _, item := range result.Diagnostics.All() {
			require.Equal(t, diagnostic.IllegalInheritance, item.Kind, d.name)
			got = append(got, item.Reason)
		}
		if diff := deep.Equal(got, d.want); diff != nil {
			t.Error(d.name, diff)
		}
	}
}

func TestBuildClassTree_BreadthFirstOrder(t *testing.T) {
	result := analyze(
		class("C", "B"),
		class("B", "A"),
		mainClass(),
		class("A", ""),
	)
	assertKinds(t, result)
	position := map[string]int{}
	for i, node := range result.Order {
		position[node.Name] = i
	}
	assert.Equal(t, 0, position[RootClassName])
	assert.True(t, position["A"] < position["B"])
	assert.True(t, position["B"] < position["C"])
	assert.Equal(t, "Object->A->B->C", result.Class("C").Lineage())

	// Every class reaches the root without revisiting a class.
	for _, node := range result.Order {
		seen := map[*ClassNode]bool{}
		n := node
		for ; n.Parent != nil; n = n.Parent {
			assert.False(t, seen[n])
			seen[n] = true
		}
		assert.Equal(t, result.Root, n)
	}
}
