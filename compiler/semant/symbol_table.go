package semant

type SymbolKind int

const (
	FieldSymbol SymbolKind = iota
	MethodSymbol
	FormalSymbol
	LocalSymbol
)

func (kind SymbolKind) String() string {
	switch kind {
	case FieldSymbol:
		return "field"
	case MethodSymbol:
		return "method"
	case FormalSymbol:
		return "formal"
	case LocalSymbol:
		return "local variable"
	}
	return "unknown"
}

// Symbol is the binding info stored in a symbol table. Variables carry a Type, methods a signature.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Type   Type
	Method *MethodSig
}

// SymbolTable is a stack of scopes. Lookup walks the scopes from the innermost outward and then
// continues in the parent table, which is how a class sees the members of its superclass.
type SymbolTable struct {
	parent *SymbolTable
	scopes []map[string]*Symbol
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{parent: parent}
}

func (table *SymbolTable) SetParent(parent *SymbolTable) {
	table.parent = parent
}

func (table *SymbolTable) Parent() *SymbolTable {
	return table.parent
}

func (table *SymbolTable) EnterScope() {
	table.scopes = append(table.scopes, map[string]*Symbol{})
}

func (table *SymbolTable) ExitScope() {
	if len(table.scopes) == 0 {
		return
	}
	table.scopes = table.scopes[:len(table.scopes)-1]
}

// ScopeLevel is the number of scopes currently pushed on this table, not counting the parent.
func (table *SymbolTable) ScopeLevel() int {
	return len(table.scopes)
}

// Add binds name in the current scope. The caller checks for collisions with Peek first; Add silently
// replaces an existing binding.
func (table *SymbolTable) Add(name string, symbol *Symbol) {
	if len(table.scopes) == 0 {
		table.EnterScope()
	}
	table.scopes[len(table.scopes)-1][name] = symbol
}

// Peek looks name up in the current scope only.
func (table *SymbolTable) Peek(name string) *Symbol {
	if len(table.scopes) == 0 {
		return nil
	}
	return table.scopes[len(table.scopes)-1][name]
}

// Lookup returns the innermost binding of name visible from the current scope.
func (table *SymbolTable) Lookup(name string) *Symbol {
	for t := table; t != nil; t = t.parent {
		for i := len(t.scopes) - 1; i >= 0; i-- {
			if symbol, ok := t.scopes[i][name]; ok {
				return symbol
			}
		}
	}
	return nil
}
