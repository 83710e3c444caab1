package compiler

import "fmt"

// SourceError is implemented by every compilation error that can point
// at the source line that triggered it. All variants are fatal: the
// pipeline stops at the first one and produces no output.
type SourceError interface {
	error
	SourceLine() int
}

// LexError reports an input position that matches no lexeme rule.
type LexError struct {
	Line int
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q on line %d", e.Char, e.Line)
}
func (e *LexError) SourceLine() int { return e.Line }

// UnknownSymbolError reports a bare word that is not a keyword,
// operator, or delimiter.
type UnknownSymbolError struct {
	Lexeme string
	Line   int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q on line %d", e.Lexeme, e.Line)
}
func (e *UnknownSymbolError) SourceLine() int { return e.Line }

// MalformedDeclarationError reports a declaration that does not follow
// the introducer with [variable, ':', type, ';'].
type MalformedDeclarationError struct {
	Line int
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("malformed variable declaration on line %d", e.Line)
}
func (e *MalformedDeclarationError) SourceLine() int { return e.Line }

// DuplicateDeclarationError reports a second declaration of a name,
// attributed to the second occurrence.
type DuplicateDeclarationError struct {
	Name string
	Line int
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("variable %q already declared (line %d)", e.Name, e.Line)
}
func (e *DuplicateDeclarationError) SourceLine() int { return e.Line }

// UndeclaredVariableError reports a reference with no prior declaration.
type UndeclaredVariableError struct {
	Name string
	Line int
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("use of undeclared variable %q on line %d", e.Name, e.Line)
}
func (e *UndeclaredVariableError) SourceLine() int { return e.Line }

// InvalidExpressionError reports an assignment or print whose operands
// do not form one of the supported shapes.
type InvalidExpressionError struct {
	Line int
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid expression on line %d", e.Line)
}
func (e *InvalidExpressionError) SourceLine() int { return e.Line }

// InvalidConditionError reports a malformed "when" header.
type InvalidConditionError struct {
	Line int
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition on line %d", e.Line)
}
func (e *InvalidConditionError) SourceLine() int { return e.Line }

// StopOutsideLoopError reports a "stop" with no enclosing loop.
type StopOutsideLoopError struct {
	Line int
}

func (e *StopOutsideLoopError) Error() string {
	return fmt.Sprintf("\"stop\" outside of any loop on line %d", e.Line)
}
func (e *StopOutsideLoopError) SourceLine() int { return e.Line }

// UnmatchedBraceError reports a block whose opening brace is never
// closed before the token sequence ends.
type UnmatchedBraceError struct {
	Line int
}

func (e *UnmatchedBraceError) Error() string {
	return fmt.Sprintf("unmatched '{' on line %d", e.Line)
}
func (e *UnmatchedBraceError) SourceLine() int { return e.Line }
