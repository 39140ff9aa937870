package diagnostic

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies a semantic error.
type Kind int

const (
	DuplicateDefinition Kind = iota
	UndefinedType
	UndefinedSymbol
	IllegalInheritance
	IllegalOverload
	ReservedIdentifier
	TypeMismatch
	InvalidOperator
	InvalidCast
	InvalidBreak
	IllegalStatement
	MissingMain
	MalformedMain
)

var kindNames = [...]string{
	DuplicateDefinition: "DuplicateDefinition",
	UndefinedType:       "UndefinedType",
	UndefinedSymbol:     "UndefinedSymbol",
	IllegalInheritance:  "IllegalInheritance",
	IllegalOverload:     "IllegalOverload",
	ReservedIdentifier:  "ReservedIdentifier",
	TypeMismatch:        "TypeMismatch",
	InvalidOperator:     "InvalidOperator",
	InvalidCast:         "InvalidCast",
	InvalidBreak:        "InvalidBreak",
	IllegalStatement:    "IllegalStatement",
	MissingMain:         "MissingMain",
	MalformedMain:       "MalformedMain",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Reason refines a Kind. Only IllegalInheritance carries one.
type Reason int

const (
	NoReason Reason = iota
	MissingParent
	SealedParent
	InheritanceCycle
)

func (r Reason) String() string {
	switch r {
	case MissingParent:
		return "missing-parent"
	case SealedParent:
		return "sealed-parent"
	case InheritanceCycle:
		return "cycle"
	}
	return ""
}

// Severity of a diagnostic. The analyzer only reports semantic errors.
type Severity int

const (
	SemanticError Severity = iota
)

func (s Severity) String() string {
	if s == SemanticError {
		return "semantic error"
	}
	return "unknown"
}

// Diagnostic is a single problem found in the program.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Reason   Reason
	File     string
	// Line is negative for problems with no source location, like a missing Main class.
	Line    int
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Line < 0 {
		if d.File == "" {
			return fmt.Sprintf("%s: %s", d.Severity, d.Message)
		}
		return fmt.Sprintf("%s: %s: %s", d.File, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
}

// Collector accumulates diagnostics from every phase in emission order. Nothing is deduplicated.
type Collector struct {
	items []*Diagnostic
}

func New() *Collector {
	return &Collector{}
}

// Addf records a semantic error with a formatted message.
func (c *Collector) Addf(kind Kind, file string, line int, format string, args ...interface{}) {
	c.AddReasonf(kind, NoReason, file, line, format, args...)
}

// AddReasonf is Addf for kinds that come in variants, like the three ways inheritance can be illegal.
func (c *Collector) AddReasonf(kind Kind, reason Reason, file string, line int, format string, args ...interface{}) {
	c.items = append(c.items, &Diagnostic{
		Severity: SemanticError,
		Kind:     kind,
		Reason:   reason,
		File:     file,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *Collector) HasErrors() bool {
	return len(c.items) > 0
}

func (c *Collector) Count() int {
	return len(c.items)
}

// All returns the diagnostics in the order they were reported.
func (c *Collector) All() []*Diagnostic {
	return c.items
}

// Kinds returns the kind of every diagnostic, in order.
func (c *Collector) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.items))
	for _, item := range c.items {
		kinds = append(kinds, item.Kind)
	}
	return kinds
}

// CountKind returns how many diagnostics of the given kind were reported.
func (c *Collector) CountKind(kind Kind) int {
	n := 0
	for _, item := range c.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

// Err folds the diagnostics into a single error, or returns nil when there are none.
func (c *Collector) Err() error {
	var result *multierror.Error
	for _, item := range c.items {
		result = multierror.Append(result, item)
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatList
	return result
}

// Format renders one diagnostic per line, the way a driver prints them.
func (c *Collector) Format() string {
	lines := make([]string, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, item.Error())
	}
	return strings.Join(lines, "\n")
}

func formatList(errs []error) string {
	lines := make([]string, 0, len(errs)+1)
	lines = append(lines, fmt.Sprintf("%d semantic error(s) found", len(errs)))
	for _, err := range errs {
		lines = append(lines, "  "+err.Error())
	}
	return strings.Join(lines, "\n")
}
