package ir

import (
	"fmt"
	"strings"
)

// Module is a compilation unit: a collection of Functions and global
// Values, the unit anvilc reads, optimizes, and prints.
type Module struct {
	Name      string
	Functions []*Function
	Globals   []*Value
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends fn to the module.
func (m *Module) AddFunction(fn *Function) {
	m.Functions = append(m.Functions, fn)
}

func (m *Module) String() string {
	var sb strings.Builder
	sb.WriteString("; Module: ")
	sb.WriteString(m.Name)
	sb.WriteString("\n\n")

	if len(m.Globals) > 0 {
		sb.WriteString("; Globals\n")
		for _, g := range m.Globals {
			sb.WriteString("global ")
			sb.WriteString(g.String())
			sb.WriteString(": ")
			sb.WriteString(g.Type.String())
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, fn := range m.Functions {
		sb.WriteString(fn.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Verify checks structural well-formedness across every function in
// the module: every block ends in a terminator and the entry block
// has no predecessors. It does not check SSA use-def integrity — that
// is the optimizer's own invariant to preserve, covered by the
// optimizer package's own tests rather than re-derived by an external
// caller.
func (m *Module) Verify() []error {
	var errs []error
	for _, fn := range m.Functions {
		for b := fn.Entry; b != nil; b = b.Next {
			if !b.IsTerminated() {
				errs = append(errs, fmt.Errorf("block %s in function %s has no terminator", b.Label, fn.Name))
			}
		}
		if fn.Entry != nil && len(fn.Entry.Predecessors) > 0 {
			errs = append(errs, fmt.Errorf("entry block of function %s has predecessors", fn.Name))
		}
	}
	return errs
}
