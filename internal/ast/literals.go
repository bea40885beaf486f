package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// Literal is the interface of all literal expression nodes.
type Literal interface {
	Expression
	literalNode()
}

// BoolLiteral is 'true' or 'false'.
type BoolLiteral struct {
	Tok token.Token
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) literalNode()         {}
func (l *BoolLiteral) Base() token.Token    { return l.Tok }
func (l *BoolLiteral) Pos() int             { return l.Tok.Offset }
func (l *BoolLiteral) End() int             { return l.Tok.End() }
func (l *BoolLiteral) TokenLiteral() string { return l.Tok.Text }

// Value reports the boolean value of the literal.
func (l *BoolLiteral) Value() bool { return l.Tok.Kind == token.True }

// IntegerLiteral is an integer literal in any radix.
type IntegerLiteral struct {
	Tok token.Token
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) literalNode()         {}
func (l *IntegerLiteral) Base() token.Token    { return l.Tok }
func (l *IntegerLiteral) Pos() int             { return l.Tok.Offset }
func (l *IntegerLiteral) End() int             { return l.Tok.End() }
func (l *IntegerLiteral) TokenLiteral() string { return l.Tok.Text }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Tok token.Token
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) literalNode()         {}
func (l *FloatLiteral) Base() token.Token    { return l.Tok }
func (l *FloatLiteral) Pos() int             { return l.Tok.Offset }
func (l *FloatLiteral) End() int             { return l.Tok.End() }
func (l *FloatLiteral) TokenLiteral() string { return l.Tok.Text }

// StringLiteral is a quoted string or character literal; single-quoted
// literals are typed as char by the compiler.
type StringLiteral struct {
	Tok token.Token
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) literalNode()         {}
func (l *StringLiteral) Base() token.Token    { return l.Tok }
func (l *StringLiteral) Pos() int             { return l.Tok.Offset }
func (l *StringLiteral) End() int             { return l.Tok.End() }
func (l *StringLiteral) TokenLiteral() string { return l.Tok.Text }

// IsSingleQuoted reports whether the literal uses single quotes.
func (l *StringLiteral) IsSingleQuoted() bool {
	return len(l.Tok.Text) > 0 && l.Tok.Text[0] == '\''
}

// UserDefinedLiteral is a numeric or string literal with a suffix handled by
// a literal operator, e.g. 3.0km.
type UserDefinedLiteral struct {
	Tok token.Token
}

func (l *UserDefinedLiteral) expressionNode()      {}
func (l *UserDefinedLiteral) literalNode()         {}
func (l *UserDefinedLiteral) Base() token.Token    { return l.Tok }
func (l *UserDefinedLiteral) Pos() int             { return l.Tok.Offset }
func (l *UserDefinedLiteral) End() int             { return l.Tok.End() }
func (l *UserDefinedLiteral) TokenLiteral() string { return l.Tok.Text }

// SuffixName extracts the trailing identifier suffix from the token text by
// re-scanning the literal part it decorates.
func (l *UserDefinedLiteral) SuffixName() string {
	text := l.Tok.Text
	if len(text) == 0 {
		return ""
	}
	if text[0] == '"' || text[0] == '\'' {
		quote := text[0]
		for i := 1; i < len(text); i++ {
			if text[i] == '\\' {
				i++
				continue
			}
			if text[i] == quote {
				return text[i+1:]
			}
		}
		return ""
	}
	i := 0
	digits := func(pred func(byte) bool) {
		for i < len(text) && pred(text[i]) {
			i++
		}
	}
	isDec := func(c byte) bool { return c >= '0' && c <= '9' }
	isHex := func(c byte) bool {
		return isDec(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		i = 2
		digits(isHex)
		return text[i:]
	}
	if len(text) > 2 && text[0] == '0' && (text[1] == 'b' || text[1] == 'B') {
		i = 2
		digits(func(c byte) bool { return c == '0' || c == '1' })
		return text[i:]
	}
	digits(isDec)
	if i < len(text) && text[i] == '.' {
		i++
		digits(isDec)
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDec(text[j]) {
			i = j
			digits(isDec)
		}
	}
	return text[i:]
}

// LiteralValue returns the token text with the suffix removed.
func (l *UserDefinedLiteral) LiteralValue() string {
	return l.Tok.Text[:len(l.Tok.Text)-len(l.SuffixName())]
}
