// Package asm implements a small reader for ANVIL's textual IR
// assembly format (".air" files) — a line-oriented, already-
// three-address notation that lowers directly into internal/ir
// values, with no AST stage and no expression precedence to climb.
package asm

import "fmt"

// Position is a location in a ".air" source file.
//
// DESIGN CHOICE: a small value type, not a pointer — cheap to copy,
// and Line == 0 doubles as "invalid".
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// IsValid reports whether this position has a real line number.
func (p Position) IsValid() bool { return p.Line > 0 }
