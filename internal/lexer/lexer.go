// Package lexer implements the lexical scanner for CScript source code.
//
// The scanner produces tokens whose Text fields are substrings of the input
// buffer; no text is copied. Line/column positions reported in diagnostics
// count runes, not bytes.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Error describes a lexical error with its byte offset in the input.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Message)
}

// Lexer scans a CScript source buffer into tokens.
type Lexer struct {
	input        string
	errors       []*Error
	position     int
	readPosition int
	ch           rune
	tracing      bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithTracing enables debug tracing output.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// New creates a Lexer for the given input. A UTF-8 BOM is stripped if
// present.
func New(input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns the errors accumulated while scanning.
func (l *Lexer) Errors() []*Error { return l.errors }

// Tokenize scans the whole input. The returned error is the first lexical
// error encountered, if any.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	if len(l.errors) > 0 {
		return toks, l.errors[0]
	}
	return toks, nil
}

// Tokenize scans source in one call.
func Tokenize(source string) ([]token.Token, error) {
	return New(source).Tokenize()
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding", l.position)
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) addError(msg string, offset int) {
	l.errors = append(l.errors, &Error{Offset: offset, Message: msg})
}

func (l *Lexer) atEnd() bool { return l.position >= len(l.input) }

// next scans one token. ok is false at end of input.
func (l *Lexer) next() (token.Token, bool) {
	l.skipWhitespaceAndComments()
	if l.atEnd() {
		return token.Token{}, false
	}

	start := l.position

	switch {
	case isIdentStart(l.ch):
		text := l.readIdentifier()
		return l.make(token.LookupIdent(text), start), true
	case unicode.IsDigit(l.ch):
		return l.readNumber(), true
	case l.ch == '"' || l.ch == '\'':
		return l.readString(), true
	}

	kind := l.readOperator()
	if kind == token.Invalid {
		l.addError(fmt.Sprintf("unexpected character %q", l.ch), start)
		l.readChar()
	}
	return l.make(kind, start), true
}

func (l *Lexer) make(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Text: l.input[start:l.position], Offset: start}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			start := l.position
			l.readChar()
			l.readChar()
			closed := false
			for !l.atEnd() {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				l.addError("unterminated block comment", start)
			}
			continue
		}
		return
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans integer and floating-point literals in every supported
// radix. A literal immediately followed by identifier characters becomes a
// single UserDefinedLiteral token whose suffix is re-extractable from the
// text.
func (l *Lexer) readNumber() token.Token {
	start := l.position
	kind := token.IntegerLiteral

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			l.readChar()
			l.readChar()
			if !isHexDigit(l.ch) {
				l.addError("malformed hexadecimal literal", start)
			}
			for isHexDigit(l.ch) {
				l.readChar()
			}
			return l.finishNumber(token.HexadecimalLiteral, start)
		case 'b', 'B':
			l.readChar()
			l.readChar()
			if l.ch != '0' && l.ch != '1' {
				l.addError("malformed binary literal", start)
			}
			for l.ch == '0' || l.ch == '1' {
				l.readChar()
			}
			return l.finishNumber(token.BinaryLiteral, start)
		default:
			if isOctalDigit(l.peekChar()) {
				l.readChar()
				for isOctalDigit(l.ch) {
					l.readChar()
				}
				return l.finishNumber(token.OctalLiteral, start)
			}
		}
	}

	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		kind = token.DecimalLiteral
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if unicode.IsDigit(next) || ((next == '+' || next == '-') && l.exponentHasDigits()) {
			kind = token.DecimalLiteral
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		}
	}
	if l.ch == 'f' && !isIdentPart(l.peekChar()) {
		l.readChar()
		return l.make(token.DecimalLiteral, start)
	}
	return l.finishNumber(kind, start)
}

// exponentHasDigits looks past the sign of an exponent for at least one
// digit, so "1e+" does not swallow the sign into a malformed literal.
func (l *Lexer) exponentHasDigits() bool {
	pos := l.readPosition + 1 // past the sign
	if pos >= len(l.input) {
		return false
	}
	return l.input[pos] >= '0' && l.input[pos] <= '9'
}

func (l *Lexer) finishNumber(kind token.Kind, start int) token.Token {
	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			l.readChar()
		}
		kind = token.UserDefinedLiteral
	}
	return l.make(kind, start)
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isOctalDigit(ch rune) bool { return ch >= '0' && ch <= '7' }

// readString scans a string literal delimited by double or single quotes.
// Supported escapes: \\ \n \t \r \" \' \0. A closing quote immediately
// followed by identifier characters produces a UserDefinedLiteral.
func (l *Lexer) readString() token.Token {
	start := l.position
	quote := l.ch
	l.readChar()
	for {
		if l.atEnd() || l.ch == '\n' {
			l.addError("unterminated string literal", start)
			return l.make(token.StringLiteral, start)
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case '\\', 'n', 't', 'r', '"', '\'', '0':
				l.readChar()
			default:
				l.addError(fmt.Sprintf("unknown escape sequence \\%c", l.ch), l.position)
				l.readChar()
			}
			continue
		}
		if l.ch == quote {
			l.readChar()
			break
		}
		l.readChar()
	}
	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			l.readChar()
		}
		return l.make(token.UserDefinedLiteral, start)
	}
	return l.make(token.StringLiteral, start)
}

// readOperator scans punctuators and operators with maximal munch.
func (l *Lexer) readOperator() token.Kind {
	one := func(k token.Kind) token.Kind {
		l.readChar()
		return k
	}
	two := func(k token.Kind) token.Kind {
		l.readChar()
		l.readChar()
		return k
	}

	switch l.ch {
	case '(':
		return one(token.LeftPar)
	case ')':
		return one(token.RightPar)
	case '[':
		return one(token.LeftBracket)
	case ']':
		return one(token.RightBracket)
	case '{':
		return one(token.LeftBrace)
	case '}':
		return one(token.RightBrace)
	case ';':
		return one(token.Semicolon)
	case ',':
		return one(token.Comma)
	case '?':
		return one(token.QuestionMark)
	case '.':
		return one(token.Dot)
	case '~':
		return one(token.BitwiseNot)
	case ':':
		if l.peekChar() == ':' {
			return two(token.ScopeResolution)
		}
		return one(token.Colon)
	case '+':
		switch l.peekChar() {
		case '+':
			return two(token.PlusPlus)
		case '=':
			return two(token.AddEq)
		}
		return one(token.Plus)
	case '-':
		switch l.peekChar() {
		case '-':
			return two(token.MinusMinus)
		case '=':
			return two(token.SubEq)
		case '>':
			return two(token.Arrow)
		}
		return one(token.Minus)
	case '*':
		if l.peekChar() == '=' {
			return two(token.MulEq)
		}
		return one(token.Mul)
	case '/':
		if l.peekChar() == '=' {
			return two(token.DivEq)
		}
		return one(token.Div)
	case '%':
		if l.peekChar() == '=' {
			return two(token.RemainderEq)
		}
		return one(token.Remainder)
	case '=':
		if l.peekChar() == '=' {
			return two(token.EqEq)
		}
		return one(token.Eq)
	case '!':
		if l.peekChar() == '=' {
			return two(token.Neq)
		}
		return one(token.LogicalNot)
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return token.LeftShiftEq
			}
			return token.LeftShift
		}
		if l.peekChar() == '=' {
			return two(token.LessEqual)
		}
		return one(token.LeftAngle)
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return token.RightShiftEq
			}
			return token.RightRightAngle
		}
		if l.peekChar() == '=' {
			return two(token.GreaterEqual)
		}
		return one(token.RightAngle)
	case '&':
		switch l.peekChar() {
		case '&':
			return two(token.LogicalAnd)
		case '=':
			return two(token.BitAndEq)
		}
		return one(token.BitwiseAnd)
	case '|':
		switch l.peekChar() {
		case '|':
			return two(token.LogicalOr)
		case '=':
			return two(token.BitOrEq)
		}
		return one(token.BitwiseOr)
	case '^':
		if l.peekChar() == '=' {
			return two(token.BitXorEq)
		}
		return one(token.BitwiseXor)
	}
	return token.Invalid
}
