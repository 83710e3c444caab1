package compiler

import (
	"strings"
	"unicode"
)

// keywordCats is the fixed table of keywords, operators, and delimiters.
var keywordCats = map[string]Category{
	"num": CatType,

	"let": CatMutability,
	"fix": CatMutability,

	"when":  CatControl,
	"other": CatControl,
	"loop":  CatControl,
	"stop":  CatControl,

	"print": CatIo,

	"=":  CatOperator,
	"+":  CatOperator,
	"-":  CatOperator,
	"*":  CatOperator,
	"/":  CatOperator,
	"==": CatOperator,
	"!=": CatOperator,
	">":  CatOperator,
	"<":  CatOperator,
	">=": CatOperator,
	"<=": CatOperator,

	":": CatDelimiter,
	"{": CatDelimiter,
	"}": CatDelimiter,
	";": CatDelimiter,
}

func isNumericLexeme(lex string) bool {
	digits := strings.TrimPrefix(lex, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Classify tags every token in place with exactly one category. Tokens
// are never reclassified later. A lexeme that is neither sigil-prefixed
// nor numeric nor quoted must appear in the fixed keyword table.
func Classify(tokens []Token) error {
	for i := range tokens {
		t := &tokens[i]
		switch {
		case strings.HasPrefix(t.Lexeme, "."):
			t.Cat = CatVariable
		case isNumericLexeme(t.Lexeme):
			t.Cat = CatNumber
		case strings.HasPrefix(t.Lexeme, `"`):
			t.Cat = CatString
		default:
			cat, ok := keywordCats[t.Lexeme]
			if !ok {
				return &UnknownSymbolError{Lexeme: t.Lexeme, Line: t.Line}
			}
			t.Cat = cat
		}
	}
	return nil
}
