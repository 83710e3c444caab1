package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// SlotSize is the width in bytes of one variable slot in the frame.
const SlotSize = 8

// Symbol is one declared variable in the single flat frame.
type Symbol struct {
	Name   string
	Offset int // positive byte distance below the frame pointer
	Line   int // declaration line
}

// Loc renders the symbol's frame location as an operand.
func (s Symbol) Loc() string {
	return fmt.Sprintf("-%d(%%rbp)", s.Offset)
}

// SymbolTable maps variable names to frame slots. The language has one
// global frame and no scoping, so offsets grow monotonically from the
// frame pointer down.
type SymbolTable struct {
	syms map[string]Symbol
	next int // bytes reserved so far
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{syms: make(map[string]Symbol)}
}

// Define reserves the next slot for name. The second result is false if
// the name is already taken.
func (s *SymbolTable) Define(name string, line int) (Symbol, bool) {
	if _, ok := s.syms[name]; ok {
		return Symbol{}, false
	}
	s.next += SlotSize
	sym := Symbol{Name: name, Offset: s.next, Line: line}
	s.syms[name] = sym
	return sym, true
}

// Lookup returns the symbol for name and whether it exists.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.syms[name]
	return sym, ok
}

// Size returns the raw number of bytes reserved, before any alignment.
func (s *SymbolTable) Size() int { return s.next }

// Len returns the number of declared variables.
func (s *SymbolTable) Len() int { return len(s.syms) }

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.syms) == 0 {
		sb.WriteString("Symbols: (empty)\n")
		return sb.String()
	}
	sb.WriteString("Symbols:\n")
	names := make([]string, 0, len(s.syms))
	for name := range s.syms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sym := s.syms[name]
		fmt.Fprintf(&sb, "  %-20s  %s (declared line %d)\n", name, sym.Loc(), sym.Line)
	}
	return sb.String()
}

// StringPool interns string literals and their read-only data labels.
// The first occurrence of a text assigns the label; identical texts
// reuse it. Insertion order is kept so emission is deterministic.
type StringPool struct {
	labels map[string]string
	order  []string
}

func newStringPool() *StringPool {
	return &StringPool{labels: make(map[string]string)}
}

// Label returns the label for text and whether it is registered.
func (p *StringPool) Label(text string) (string, bool) {
	label, ok := p.labels[text]
	return label, ok
}

func (p *StringPool) add(text, label string) {
	p.labels[text] = label
	p.order = append(p.order, text)
}

// Texts returns the registered literals in first-occurrence order.
func (p *StringPool) Texts() []string { return p.order }

// Len returns the number of distinct registered literals.
func (p *StringPool) Len() int { return len(p.order) }

func (p *StringPool) String() string {
	var sb strings.Builder
	if len(p.order) == 0 {
		sb.WriteString("Strings: (empty)\n")
		return sb.String()
	}
	sb.WriteString("Strings:\n")
	for _, text := range p.order {
		fmt.Fprintf(&sb, "  %-12s  %s\n", p.labels[text], text)
	}
	return sb.String()
}
