package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// SimpleIdentifier is a bare name.
type SimpleIdentifier struct {
	Tok token.Token
}

func (i *SimpleIdentifier) expressionNode()      {}
func (i *SimpleIdentifier) identifierNode()      {}
func (i *SimpleIdentifier) Base() token.Token    { return i.Tok }
func (i *SimpleIdentifier) Pos() int             { return i.Tok.Offset }
func (i *SimpleIdentifier) End() int             { return i.Tok.End() }
func (i *SimpleIdentifier) TokenLiteral() string { return i.Tok.Text }

// Name returns the identifier text.
func (i *SimpleIdentifier) Name() string { return i.Tok.Text }

// TemplateIdentifier is a name followed by a template argument list,
// e.g. pair<int, float>. Arguments are either TypeNodes or Expressions.
type TemplateIdentifier struct {
	NameTok    token.Token
	LeftAngle  token.Token
	Args       []Node
	RightAngle token.Token
}

func (i *TemplateIdentifier) expressionNode()      {}
func (i *TemplateIdentifier) identifierNode()      {}
func (i *TemplateIdentifier) Base() token.Token    { return i.NameTok }
func (i *TemplateIdentifier) Pos() int             { return i.NameTok.Offset }
func (i *TemplateIdentifier) End() int             { return i.RightAngle.End() }
func (i *TemplateIdentifier) TokenLiteral() string { return i.NameTok.Text }
func (i *TemplateIdentifier) Name() string         { return i.NameTok.Text }

// ScopedIdentifier is a qualified name A::B. Lhs may itself be scoped.
type ScopedIdentifier struct {
	Lhs        Identifier
	ColonColon token.Token
	Rhs        Identifier
}

func (i *ScopedIdentifier) expressionNode()      {}
func (i *ScopedIdentifier) identifierNode()      {}
func (i *ScopedIdentifier) Base() token.Token    { return i.ColonColon }
func (i *ScopedIdentifier) Pos() int             { return i.Lhs.Pos() }
func (i *ScopedIdentifier) End() int             { return i.Rhs.End() }
func (i *ScopedIdentifier) TokenLiteral() string { return i.ColonColon.Text }

// OperatorName names an operator function, e.g. operator+.
type OperatorName struct {
	Keyword token.Token
	Symbol  token.Token
}

func (i *OperatorName) expressionNode()      {}
func (i *OperatorName) identifierNode()      {}
func (i *OperatorName) Base() token.Token    { return i.Keyword }
func (i *OperatorName) Pos() int             { return i.Keyword.Offset }
func (i *OperatorName) End() int             { return i.Symbol.End() }
func (i *OperatorName) TokenLiteral() string { return i.Keyword.Text }

// LiteralOperatorName names a user-defined literal operator,
// e.g. operator"" km.
type LiteralOperatorName struct {
	Keyword token.Token
	Quotes  token.Token
	Suffix  token.Token
}

func (i *LiteralOperatorName) expressionNode()      {}
func (i *LiteralOperatorName) identifierNode()      {}
func (i *LiteralOperatorName) Base() token.Token    { return i.Keyword }
func (i *LiteralOperatorName) Pos() int             { return i.Keyword.Offset }
func (i *LiteralOperatorName) End() int             { return i.Suffix.End() }
func (i *LiteralOperatorName) TokenLiteral() string { return i.Keyword.Text }

// SuffixName returns the literal suffix this operator handles.
func (i *LiteralOperatorName) SuffixName() string { return i.Suffix.Text }
