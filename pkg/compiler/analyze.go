package compiler

import "fmt"

// Analysis is the per-compilation context built by Analyze and consumed
// by Generate: the symbol table, the interned string constants, the
// aligned frame size, and the label counter. The counter keeps running
// through code generation so every label in one compilation is unique,
// and nothing here is shared between compilations.
type Analysis struct {
	Syms      *SymbolTable
	Strings   *StringPool
	FrameSize int // bytes, rounded up to a 16-byte boundary

	labels int
}

// newLabel returns the next unique label. Numbering is strictly
// increasing, which makes repeated compilations of the same source
// byte-identical.
func (an *Analysis) newLabel(prefix string) string {
	an.labels++
	return fmt.Sprintf(".L_%s_%d", prefix, an.labels)
}

// Analyze performs the single declaration/reference resolution pass.
// It allocates a frame slot per declaration, writes the resolved
// location onto every variable token, and interns string literals.
// Statement shapes other than declarations are deliberately left for
// the generator, so the first structural error is found in source
// order during emission, not earlier.
func Analyze(tokens []Token) (*Analysis, error) {
	an := &Analysis{Syms: NewSymbolTable(), Strings: newStringPool()}

	i := 0
	for i < len(tokens) {
		t := &tokens[i]
		switch t.Cat {
		case CatMutability:
			// Introducer must be followed by [variable : type ;].
			if i+4 >= len(tokens) {
				return nil, &MalformedDeclarationError{Line: t.Line}
			}
			v := &tokens[i+1]
			colon := tokens[i+2]
			typ := tokens[i+3]
			term := tokens[i+4]
			if v.Cat != CatVariable || colon.Lexeme != ":" || typ.Cat != CatType || term.Lexeme != ";" {
				return nil, &MalformedDeclarationError{Line: t.Line}
			}
			sym, ok := an.Syms.Define(v.Lexeme, v.Line)
			if !ok {
				return nil, &DuplicateDeclarationError{Name: v.Lexeme, Line: v.Line}
			}
			v.Loc = sym.Loc()
			i += 5

		case CatString:
			if _, ok := an.Strings.Label(t.Lexeme); !ok {
				an.Strings.add(t.Lexeme, an.newLabel("STR"))
			}
			i++

		case CatVariable:
			sym, ok := an.Syms.Lookup(t.Lexeme)
			if !ok {
				return nil, &UndeclaredVariableError{Name: t.Lexeme, Line: t.Line}
			}
			t.Loc = sym.Loc()
			i++

		default:
			i++
		}
	}

	an.FrameSize = alignFrame(an.Syms.Size())
	return an, nil
}

// alignFrame rounds size up to the 16-byte boundary the calling
// convention requires. A program with no declarations keeps a zero
// frame.
func alignFrame(size int) int {
	if size%16 != 0 {
		size += 16 - size%16
	}
	return size
}
