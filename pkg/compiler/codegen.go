package compiler

import (
	"fmt"
	"strings"
)

// numFmtLabel names the shared format string used by every print of a
// numeric value.
const numFmtLabel = ".LC_NUM_FMT"

// jumpIfFalse maps each comparator to the branch taken when the
// comparison fails. The mapping must stay exhaustive and exact: a wrong
// negation silently inverts program behaviour.
var jumpIfFalse = map[string]string{
	"==": "jne",
	"!=": "je",
	">":  "jle",
	"<":  "jge",
	">=": "jl",
	"<=": "jg",
}

// CodeGen walks the classified, resolved token sequence and emits
// x86-64 assembly text. Statements are recognised positionally: there
// is no parse tree, so the first structural problem encountered during
// emission is the one reported.
type CodeGen struct {
	an       *Analysis
	out      strings.Builder
	loopEnds []string // end labels of enclosing loops, innermost last
}

func newCodeGen(an *Analysis) *CodeGen {
	return &CodeGen{an: an}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

func (cg *CodeGen) comment(format string, args ...any) {
	cg.line("    # "+format, args...)
}

// loadOperand moves a variable or numeric literal into %rax. It
// returns false for any other token category.
func (cg *CodeGen) loadOperand(t Token) bool {
	switch t.Cat {
	case CatVariable:
		cg.line("    movq    %s, %%rax", t.Loc)
	case CatNumber:
		cg.line("    movq    $%s, %%rax", t.Lexeme)
	default:
		return false
	}
	return true
}

// blockRange returns the tokens inside the brace-delimited block whose
// opening brace sits at index open, plus the index just past the
// closing brace. Nesting depth is tracked so inner blocks stay intact.
func blockRange(toks []Token, open int) ([]Token, int, error) {
	depth := 1
	i := open + 1
	for i < len(toks) {
		switch toks[i].Lexeme {
		case "{":
			depth++
		case "}":
			depth--
		}
		i++
		if depth == 0 {
			return toks[open+1 : i-1], i, nil
		}
	}
	return nil, 0, &UnmatchedBraceError{Line: toks[open].Line}
}

// genBlock emits one statement sequence. It is called on the whole
// program and recursively on every brace-delimited sub-range.
func (cg *CodeGen) genBlock(toks []Token) error {
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Cat == CatMutability:
			// Storage was reserved during analysis; nothing to emit.
			i += 5

		case t.Cat == CatVariable && i+1 < len(toks) && toks[i+1].Lexeme == "=":
			next, err := cg.genAssign(toks, i)
			if err != nil {
				return err
			}
			i = next

		case t.Lexeme == "print":
			next, err := cg.genPrint(toks, i)
			if err != nil {
				return err
			}
			i = next

		case t.Lexeme == "when":
			next, err := cg.genWhen(toks, i)
			if err != nil {
				return err
			}
			i = next

		case t.Lexeme == "loop":
			next, err := cg.genLoop(toks, i)
			if err != nil {
				return err
			}
			i = next

		case t.Lexeme == "stop":
			if len(cg.loopEnds) == 0 {
				return &StopOutsideLoopError{Line: t.Line}
			}
			cg.line("    jmp %s", cg.loopEnds[len(cg.loopEnds)-1])
			i += 2

		default:
			// Delimiters and stray tokens start no statement.
			i++
		}
	}
	return nil
}

// genAssign lowers "target = literal" or "target = op1 operator op2".
// The result of a binary form is computed in %rax and stored back to
// the target's frame slot.
func (cg *CodeGen) genAssign(toks []Token, i int) (int, error) {
	target := toks[i]
	cg.line("")
	cg.comment("%s = ...", target.Lexeme)

	if i+4 < len(toks) && toks[i+3].Cat == CatOperator {
		op1, op, op2 := toks[i+2], toks[i+3], toks[i+4]
		if !cg.loadOperand(op1) {
			return 0, &InvalidExpressionError{Line: target.Line}
		}

		var rhs string
		switch op2.Cat {
		case CatVariable:
			cg.line("    movq    %s, %%rbx", op2.Loc)
			rhs = "%rbx"
		case CatNumber:
			rhs = "$" + op2.Lexeme
		default:
			return 0, &InvalidExpressionError{Line: op.Line}
		}

		switch op.Lexeme {
		case "+":
			cg.line("    addq    %s, %%rax", rhs)
		case "-":
			cg.line("    subq    %s, %%rax", rhs)
		case "*":
			cg.line("    imulq   %s, %%rax", rhs)
		case "/":
			// Signed 64-bit division: the divisor must sit in a
			// register and the dividend is sign-extended into
			// %rdx:%rax first.
			if op2.Cat == CatNumber {
				cg.line("    movq    %s, %%rbx", rhs)
			}
			cg.line("    cqto")
			cg.line("    idivq   %%rbx")
		default:
			return 0, &InvalidExpressionError{Line: op.Line}
		}

		cg.line("    movq    %%rax, %s", target.Loc)
		return i + 5, nil
	}

	if i+2 < len(toks) && toks[i+2].Cat == CatNumber {
		cg.line("    movq    $%s, %s", toks[i+2].Lexeme, target.Loc)
		return i + 3, nil
	}

	return 0, &InvalidExpressionError{Line: target.Line}
}

// genPrint lowers "print operand" to a printf call. The argument
// registers and the 32 bytes of shadow space follow the target calling
// convention.
func (cg *CodeGen) genPrint(toks []Token, i int) (int, error) {
	kw := toks[i]
	if i+1 >= len(toks) {
		return 0, &InvalidExpressionError{Line: kw.Line}
	}
	val := toks[i+1]
	cg.line("")
	cg.comment("print %s;", val.Lexeme)

	switch val.Cat {
	case CatVariable:
		cg.line("    leaq    %s(%%rip), %%rcx", numFmtLabel)
		cg.line("    movq    %s, %%rdx", val.Loc)
	case CatString:
		label, _ := cg.an.Strings.Label(val.Lexeme)
		cg.line("    leaq    %s(%%rip), %%rcx", label)
	default:
		return 0, &InvalidExpressionError{Line: val.Line}
	}

	cg.line("    subq    $32, %%rsp")
	cg.line("    movq    $0, %%rax")
	cg.line("    call    printf")
	cg.line("    addq    $32, %%rsp")
	return i + 2, nil
}

// genWhen lowers a conditional. The branch to the else label uses the
// logical negation of the comparator, so the "when" block falls
// through when the condition holds.
func (cg *CodeGen) genWhen(toks []Token, i int) (int, error) {
	kw := toks[i]
	if i+4 >= len(toks) {
		return 0, &InvalidConditionError{Line: kw.Line}
	}
	op1, cmp, op2 := toks[i+1], toks[i+2], toks[i+3]
	neg, ok := jumpIfFalse[cmp.Lexeme]
	if !ok || toks[i+4].Lexeme != "{" {
		return 0, &InvalidConditionError{Line: kw.Line}
	}

	elseLabel := cg.an.newLabel("ELSE")
	endLabel := cg.an.newLabel("END_WHEN")

	cg.line("")
	cg.comment("when %s %s %s {...}", op1.Lexeme, cmp.Lexeme, op2.Lexeme)
	if !cg.loadOperand(op1) {
		return 0, &InvalidConditionError{Line: kw.Line}
	}
	switch op2.Cat {
	case CatVariable:
		cg.line("    cmpq    %s, %%rax", op2.Loc)
	case CatNumber:
		cg.line("    cmpq    $%s, %%rax", op2.Lexeme)
	default:
		return 0, &InvalidConditionError{Line: kw.Line}
	}
	cg.line("    %s %s", neg, elseLabel)

	body, next, err := blockRange(toks, i+4)
	if err != nil {
		return 0, err
	}
	if err := cg.genBlock(body); err != nil {
		return 0, err
	}
	cg.line("    jmp %s", endLabel)
	cg.line("%s:", elseLabel)

	if next < len(toks) && toks[next].Lexeme == "other" {
		if next+1 >= len(toks) || toks[next+1].Lexeme != "{" {
			return 0, &UnmatchedBraceError{Line: toks[next].Line}
		}
		otherBody, after, err := blockRange(toks, next+1)
		if err != nil {
			return 0, err
		}
		if err := cg.genBlock(otherBody); err != nil {
			return 0, err
		}
		next = after
	}

	cg.line("%s:", endLabel)
	return next, nil
}

// genLoop lowers an unconditional loop. The end label is pushed for the
// duration of the body so "stop" anywhere inside, through any nesting
// of conditionals, resolves to this loop's exit.
func (cg *CodeGen) genLoop(toks []Token, i int) (int, error) {
	kw := toks[i]
	if i+1 >= len(toks) || toks[i+1].Lexeme != "{" {
		return 0, &UnmatchedBraceError{Line: kw.Line}
	}

	start := cg.an.newLabel("LOOP_START")
	end := cg.an.newLabel("LOOP_END")
	cg.loopEnds = append(cg.loopEnds, end)

	cg.line("")
	cg.line("%s:", start)

	body, next, err := blockRange(toks, i+1)
	if err != nil {
		return 0, err
	}
	if err := cg.genBlock(body); err != nil {
		return 0, err
	}

	cg.line("    jmp %s", start)
	cg.line("%s:", end)
	cg.loopEnds = cg.loopEnds[:len(cg.loopEnds)-1]
	return next, nil
}

// Generate emits the full assembly file: the read-only data section,
// then one globally visible "main" whose prologue reserves the frame,
// whose body is the token sequence lowered in source order, and whose
// epilogue returns a zero status.
func Generate(tokens []Token, an *Analysis) (string, error) {
	cg := newCodeGen(an)

	cg.line(".section .rodata")
	for _, text := range an.Strings.Texts() {
		label, _ := an.Strings.Label(text)
		cg.line("%s: .string %s", label, text)
	}
	cg.line("%s", numFmtLabel+`: .string "%lld\n"`)

	cg.line(".section .text")
	cg.line(".globl main")
	cg.line("")
	cg.line("main:")
	cg.line("    pushq   %%rbp")
	cg.line("    movq    %%rsp, %%rbp")
	if an.FrameSize > 0 {
		cg.line("    subq    $%d, %%rsp", an.FrameSize)
	}

	if err := cg.genBlock(tokens); err != nil {
		return "", err
	}

	cg.line("")
	cg.line("    movq    $0, %%rax")
	cg.line("    leave")
	cg.line("    ret")
	return cg.out.String(), nil
}
