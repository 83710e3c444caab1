package compiler

import "unicode"

// Scanner holds all mutable state for a single pass over src.
type Scanner struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
}

func newScanner(src string) *Scanner {
	return &Scanner{src: []rune(src), pos: 0, line: 1}
}

// peek returns the rune at the current position without advancing.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (s *Scanner) peek2() rune {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

// advance consumes one rune and returns it.
func (s *Scanner) advance() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}
	return r
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.peek()) {
		s.advance()
	}
}

// skipLineComment discards everything from the current position to
// end-of-line. The opening "##" must already have been consumed.
func (s *Scanner) skipLineComment() {
	for s.pos < len(s.src) && s.peek() != '\n' {
		s.advance()
	}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// scanString collects a string literal. The lexeme keeps its quotes;
// there are no escapes and a literal may not span lines.
func (s *Scanner) scanString() (Token, error) {
	line := s.line
	start := s.pos
	s.advance() // consume opening "
	for s.pos < len(s.src) {
		r := s.peek()
		if r == '\n' {
			break
		}
		s.advance()
		if r == '"' {
			return Token{Lexeme: string(s.src[start:s.pos]), Line: line}, nil
		}
	}
	return Token{}, &LexError{Line: line, Char: '"'}
}

// scanVariable collects the sigil and the identifier characters after
// it. The '.' must still be at s.peek().
func (s *Scanner) scanVariable() (Token, error) {
	line := s.line
	start := s.pos
	s.advance() // consume '.'
	if !isIdentRune(s.peek()) {
		return Token{}, &LexError{Line: line, Char: '.'}
	}
	for s.pos < len(s.src) && isIdentRune(s.peek()) {
		s.advance()
	}
	return Token{Lexeme: string(s.src[start:s.pos]), Line: line}, nil
}

// scanNumber collects digits, with an optional leading minus that must
// be followed immediately by a digit.
func (s *Scanner) scanNumber() Token {
	line := s.line
	start := s.pos
	if s.peek() == '-' {
		s.advance()
	}
	for s.pos < len(s.src) && unicode.IsDigit(s.peek()) {
		s.advance()
	}
	return Token{Lexeme: string(s.src[start:s.pos]), Line: line}
}

// scanWord collects a bare keyword, letters only.
func (s *Scanner) scanWord() Token {
	line := s.line
	start := s.pos
	for s.pos < len(s.src) && isLetter(s.peek()) {
		s.advance()
	}
	return Token{Lexeme: string(s.src[start:s.pos]), Line: line}
}

// nextToken skips whitespace and comments and scans one token. A zero
// Token with ok=false means the input is exhausted.
func (s *Scanner) nextToken() (Token, bool, error) {
	for {
		s.skipWhitespace()
		if s.pos >= len(s.src) {
			return Token{}, false, nil
		}
		if s.peek() == '#' && s.peek2() == '#' {
			s.advance()
			s.advance()
			s.skipLineComment()
			continue
		}
		break
	}

	ch := s.peek()
	line := s.line

	// Alternatives are tried in fixed priority: string, variable,
	// number (so "-5" binds the minus), bare word, two-rune operator,
	// one-rune operator or delimiter.
	switch {
	case ch == '"':
		tok, err := s.scanString()
		return tok, err == nil, err
	case ch == '.':
		tok, err := s.scanVariable()
		return tok, err == nil, err
	case unicode.IsDigit(ch) || (ch == '-' && unicode.IsDigit(s.peek2())):
		return s.scanNumber(), true, nil
	case isLetter(ch):
		return s.scanWord(), true, nil
	}

	if (ch == '=' || ch == '!' || ch == '>' || ch == '<') && s.peek2() == '=' {
		s.advance()
		s.advance()
		return Token{Lexeme: string(ch) + "=", Line: line}, true, nil
	}

	switch ch {
	case '=', '+', '-', '*', '/', '>', '<', ':', '{', '}', ';':
		s.advance()
		return Token{Lexeme: string(ch), Line: line}, true, nil
	}

	return Token{}, false, &LexError{Line: line, Char: ch}
}

// Scan tokenises src into an ordered (lexeme, line) sequence with
// whitespace and "##" comments removed. It stops at the first input
// position that matches no lexeme rule.
func Scan(src string) ([]Token, error) {
	s := newScanner(src)
	var tokens []Token
	for {
		tok, ok, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
