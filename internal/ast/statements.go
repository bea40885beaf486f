package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// NullStatement is a lone semicolon.
type NullStatement struct {
	Semicolon token.Token
}

func (s *NullStatement) statementNode()       {}
func (s *NullStatement) Base() token.Token    { return s.Semicolon }
func (s *NullStatement) Pos() int             { return s.Semicolon.Offset }
func (s *NullStatement) End() int             { return s.Semicolon.End() }
func (s *NullStatement) TokenLiteral() string { return s.Semicolon.Text }

// ExpressionStatement is an expression evaluated for its effects.
type ExpressionStatement struct {
	Expr      Expression
	Semicolon token.Token
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) Base() token.Token    { return s.Expr.Base() }
func (s *ExpressionStatement) Pos() int             { return s.Expr.Pos() }
func (s *ExpressionStatement) End() int             { return s.Semicolon.End() }
func (s *ExpressionStatement) TokenLiteral() string { return s.Expr.TokenLiteral() }

// CompoundStatement is { stmts... }.
type CompoundStatement struct {
	OpeningBrace token.Token
	Statements   []Statement
	ClosingBrace token.Token
}

func (s *CompoundStatement) statementNode()       {}
func (s *CompoundStatement) Base() token.Token    { return s.OpeningBrace }
func (s *CompoundStatement) Pos() int             { return s.OpeningBrace.Offset }
func (s *CompoundStatement) End() int             { return s.ClosingBrace.End() }
func (s *CompoundStatement) TokenLiteral() string { return s.OpeningBrace.Text }

// IfStatement is if (cond) body [else clause].
type IfStatement struct {
	Keyword     token.Token
	Condition   Expression
	Body        Statement
	ElseKeyword token.Token
	ElseClause  Statement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) Base() token.Token    { return s.Keyword }
func (s *IfStatement) Pos() int             { return s.Keyword.Offset }
func (s *IfStatement) TokenLiteral() string { return s.Keyword.Text }

func (s *IfStatement) End() int {
	if s.ElseClause != nil {
		return s.ElseClause.End()
	}
	return s.Body.End()
}

// WhileLoop is while (cond) body.
type WhileLoop struct {
	Keyword   token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileLoop) statementNode()       {}
func (s *WhileLoop) Base() token.Token    { return s.Keyword }
func (s *WhileLoop) Pos() int             { return s.Keyword.Offset }
func (s *WhileLoop) End() int             { return s.Body.End() }
func (s *WhileLoop) TokenLiteral() string { return s.Keyword.Text }

// ForLoop is for (init; cond; incr) body.
type ForLoop struct {
	Keyword   token.Token
	Init      Statement
	Condition Expression
	Increment Expression
	Body      Statement
}

func (s *ForLoop) statementNode()       {}
func (s *ForLoop) Base() token.Token    { return s.Keyword }
func (s *ForLoop) Pos() int             { return s.Keyword.Offset }
func (s *ForLoop) End() int             { return s.Body.End() }
func (s *ForLoop) TokenLiteral() string { return s.Keyword.Text }

// BreakStatement is break;.
type BreakStatement struct {
	Keyword   token.Token
	Semicolon token.Token
}

func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) Base() token.Token    { return s.Keyword }
func (s *BreakStatement) Pos() int             { return s.Keyword.Offset }
func (s *BreakStatement) End() int             { return s.Semicolon.End() }
func (s *BreakStatement) TokenLiteral() string { return s.Keyword.Text }

// ContinueStatement is continue;.
type ContinueStatement struct {
	Keyword   token.Token
	Semicolon token.Token
}

func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) Base() token.Token    { return s.Keyword }
func (s *ContinueStatement) Pos() int             { return s.Keyword.Offset }
func (s *ContinueStatement) End() int             { return s.Semicolon.End() }
func (s *ContinueStatement) TokenLiteral() string { return s.Keyword.Text }

// ReturnStatement is return [expr];.
type ReturnStatement struct {
	Keyword   token.Token
	Expr      Expression
	Semicolon token.Token
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) Base() token.Token    { return s.Keyword }
func (s *ReturnStatement) Pos() int             { return s.Keyword.Offset }
func (s *ReturnStatement) End() int             { return s.Semicolon.End() }
func (s *ReturnStatement) TokenLiteral() string { return s.Keyword.Text }
