package semant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_PeekAndLookup(t *testing.T) {
	table := NewSymbolTable(nil)
	table.EnterScope()
	table.Add("a", &Symbol{Name: "a", Kind: LocalSymbol, Type: IntType})
	table.EnterScope()
	table.Add("b", &Symbol{Name: "b", Kind: LocalSymbol, Type: BooleanType})

	assert.Nil(t, table.Peek("a"))
	assert.NotNil(t, table.Peek("b"))
	assert.Equal(t, IntType, table.Lookup("a").Type)
	assert.Equal(t, 2, table.ScopeLevel())

	table.ExitScope()
	assert.Nil(t, table.Lookup("b"))
	assert.NotNil(t, table.Peek("a"))
}

func TestSymbolTable_InnermostWins(t *testing.T) {
	table := NewSymbolTable(nil)
	table.EnterScope()
	table.Add("x", &Symbol{Name: "x", Type: IntType})
	table.EnterScope()
	table.Add("x", &Symbol{Name: "x", Type: BooleanType})
	assert.Equal(t, BooleanType, table.Lookup("x").Type)
	table.ExitScope()
	assert.Equal(t, IntType, table.Lookup("x").Type)
}

func TestSymbolTable_ParentChain(t *testing.T) {
	parent := NewSymbolTable(nil)
	parent.EnterScope()
	parent.Add("inherited", &Symbol{Name: "inherited", Type: IntType})

	child := NewSymbolTable(parent)
	child.EnterScope()
	assert.Nil(t, child.Peek("inherited"))
	assert.NotNil(t, child.Lookup("inherited"))
	assert.Equal(t, parent, child.Parent())
	assert.Nil(t, child.Lookup("missing"))
}

func TestSymbolTable_EmptyTable(t *testing.T) {
	table := NewSymbolTable(nil)
	assert.Nil(t, table.Peek("a"))
	assert.Nil(t, table.Lookup("a"))
	table.ExitScope()
	assert.Equal(t, 0, table.ScopeLevel())
	// Adding without a scope opens one.
	table.Add("a", &Symbol{Name: "a"})
	assert.NotNil(t, table.Peek("a"))
}
