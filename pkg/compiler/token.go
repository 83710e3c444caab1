package compiler

import "fmt"

// Category is the semantic class assigned to a token by Classify.
type Category int

const (
	CatUnknown Category = iota // sentinel: not yet classified

	CatVariable // sigil-prefixed variable reference, e.g. .count
	CatNumber   // integer literal, optionally negative
	CatString   // quoted string literal (lexeme keeps its quotes)

	CatMutability // "let" / "fix"
	CatType       // "num"
	CatControl    // "when" / "other" / "loop" / "stop"
	CatIo         // "print"

	CatOperator  // = + - * / == != > < >= <=
	CatDelimiter // : { } ;
)

// categoryNames is indexed by Category.
var categoryNames = [...]string{
	CatUnknown:    "Unknown",
	CatVariable:   "Variable",
	CatNumber:     "NumericLiteral",
	CatString:     "StringLiteral",
	CatMutability: "Mutability",
	CatType:       "Type",
	CatControl:    "Control",
	CatIo:         "Io",
	CatOperator:   "Operator",
	CatDelimiter:  "Delimiter",
}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Token is a single lexical unit. Scan creates it with Lexeme and Line
// set; Classify fills Cat; Analyze fills Loc on variable tokens. The
// token sequence itself is never resized or reordered after scanning.
type Token struct {
	Lexeme string
	Line   int      // 1-based source line
	Cat    Category // set by Classify
	Loc    string   // frame location such as "-8(%rbp)"; variables only
}

func (t Token) String() string {
	return fmt.Sprintf("%-14s %-14q  line %d", t.Cat, t.Lexeme, t.Line)
}
