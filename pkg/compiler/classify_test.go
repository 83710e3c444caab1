package compiler

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Category
	}{
		{
			name:  "Declaration",
			input: "let .x : num ;",
			expected: []Category{
				CatMutability, CatVariable, CatDelimiter, CatType, CatDelimiter,
			},
		},
		{
			name:  "Immutable declaration",
			input: "fix .y : num ;",
			expected: []Category{
				CatMutability, CatVariable, CatDelimiter, CatType, CatDelimiter,
			},
		},
		{
			name:  "Arithmetic assignment",
			input: ".x = .x * -2 ;",
			expected: []Category{
				CatVariable, CatOperator, CatVariable, CatOperator, CatNumber, CatDelimiter,
			},
		},
		{
			name:  "Control keywords and braces",
			input: "when .x >= 10 { stop ; } other { loop { } }",
			expected: []Category{
				CatControl, CatVariable, CatOperator, CatNumber, CatDelimiter,
				CatControl, CatDelimiter, CatDelimiter, CatControl, CatDelimiter,
				CatControl, CatDelimiter, CatDelimiter, CatDelimiter,
			},
		},
		{
			name:  "Print of a string",
			input: `print "done" ;`,
			expected: []Category{
				CatIo, CatString, CatDelimiter,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Scan(tc.input)
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if err := Classify(tokens); err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if len(tokens) != len(tc.expected) {
				t.Fatalf("token count: expected %d, got %d", len(tc.expected), len(tokens))
			}
			for i, want := range tc.expected {
				if tokens[i].Cat != want {
					t.Errorf("token %d (%q): expected %s, got %s",
						i, tokens[i].Lexeme, want, tokens[i].Cat)
				}
			}
		})
	}
}

func TestClassifyUnknownSymbol(t *testing.T) {
	tokens, err := Scan("let .x : num ;\nbanana ;")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	err = Classify(tokens)
	var unknownErr *UnknownSymbolError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownSymbolError, got %T (%v)", err, err)
	}
	if unknownErr.Lexeme != "banana" {
		t.Errorf("lexeme: expected \"banana\", got %q", unknownErr.Lexeme)
	}
	if unknownErr.Line != 2 {
		t.Errorf("line: expected 2, got %d", unknownErr.Line)
	}
}

func TestClassifyNeverReclassifies(t *testing.T) {
	tokens, err := Scan("-5 -")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := Classify(tokens); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if tokens[0].Cat != CatNumber {
		t.Errorf("\"-5\": expected NumericLiteral, got %s", tokens[0].Cat)
	}
	if tokens[1].Cat != CatOperator {
		t.Errorf("\"-\": expected Operator, got %s", tokens[1].Cat)
	}
}
