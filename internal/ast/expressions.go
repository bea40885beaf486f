package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// Operation is a unary (prefix or postfix) or binary operator application.
// Arg2 is nil for unary operations.
type Operation struct {
	OperatorTok token.Token
	Arg1        Expression
	Arg2        Expression
	Postfix     bool
}

func (e *Operation) expressionNode()      {}
func (e *Operation) Base() token.Token    { return e.OperatorTok }
func (e *Operation) TokenLiteral() string { return e.OperatorTok.Text }

func (e *Operation) Pos() int {
	if e.Postfix || e.Arg2 != nil {
		return e.Arg1.Pos()
	}
	return e.OperatorTok.Offset
}

func (e *Operation) End() int {
	if e.Arg2 != nil {
		return e.Arg2.End()
	}
	if e.Postfix {
		return e.OperatorTok.End()
	}
	return e.Arg1.End()
}

// IsBinary reports whether the operation has two operands.
func (e *Operation) IsBinary() bool { return e.Arg2 != nil }

// ConditionalExpression is cond ? a : b.
type ConditionalExpression struct {
	Condition    Expression
	QuestionMark token.Token
	OnTrue       Expression
	Colon        token.Token
	OnFalse      Expression
}

func (e *ConditionalExpression) expressionNode()      {}
func (e *ConditionalExpression) Base() token.Token    { return e.QuestionMark }
func (e *ConditionalExpression) Pos() int             { return e.Condition.Pos() }
func (e *ConditionalExpression) End() int             { return e.OnFalse.End() }
func (e *ConditionalExpression) TokenLiteral() string { return e.QuestionMark.Text }

// FunctionCall is callee(args...).
type FunctionCall struct {
	Callee   Expression
	LeftPar  token.Token
	Args     []Expression
	RightPar token.Token
}

func (e *FunctionCall) expressionNode()      {}
func (e *FunctionCall) Base() token.Token    { return e.LeftPar }
func (e *FunctionCall) Pos() int             { return e.Callee.Pos() }
func (e *FunctionCall) End() int             { return e.RightPar.End() }
func (e *FunctionCall) TokenLiteral() string { return e.LeftPar.Text }

// ArraySubscript is array[index].
type ArraySubscript struct {
	Array       Expression
	LeftBracket token.Token
	Index       Expression
	RightBracket token.Token
}

func (e *ArraySubscript) expressionNode()      {}
func (e *ArraySubscript) Base() token.Token    { return e.LeftBracket }
func (e *ArraySubscript) Pos() int             { return e.Array.Pos() }
func (e *ArraySubscript) End() int             { return e.RightBracket.End() }
func (e *ArraySubscript) TokenLiteral() string { return e.LeftBracket.Text }

// MemberAccess is object.member.
type MemberAccess struct {
	Object Expression
	Dot    token.Token
	Member Identifier
}

func (e *MemberAccess) expressionNode()      {}
func (e *MemberAccess) Base() token.Token    { return e.Dot }
func (e *MemberAccess) Pos() int             { return e.Object.Pos() }
func (e *MemberAccess) End() int             { return e.Member.End() }
func (e *MemberAccess) TokenLiteral() string { return e.Dot.Text }

// ListExpression is a braced initializer list { a, b, c }.
type ListExpression struct {
	LeftBrace  token.Token
	Elements   []Expression
	RightBrace token.Token
}

func (e *ListExpression) expressionNode()      {}
func (e *ListExpression) Base() token.Token    { return e.LeftBrace }
func (e *ListExpression) Pos() int             { return e.LeftBrace.Offset }
func (e *ListExpression) End() int             { return e.RightBrace.End() }
func (e *ListExpression) TokenLiteral() string { return e.LeftBrace.Text }

// ArrayExpression is an array literal [ a, b, c ].
type ArrayExpression struct {
	LeftBracket  token.Token
	Elements     []Expression
	RightBracket token.Token
}

func (e *ArrayExpression) expressionNode()      {}
func (e *ArrayExpression) Base() token.Token    { return e.LeftBracket }
func (e *ArrayExpression) Pos() int             { return e.LeftBracket.Offset }
func (e *ArrayExpression) End() int             { return e.RightBracket.End() }
func (e *ArrayExpression) TokenLiteral() string { return e.LeftBracket.Text }

// BraceConstruction is T{args...}.
type BraceConstruction struct {
	Temporary  Identifier
	LeftBrace  token.Token
	Args       []Expression
	RightBrace token.Token
}

func (e *BraceConstruction) expressionNode()      {}
func (e *BraceConstruction) Base() token.Token    { return e.LeftBrace }
func (e *BraceConstruction) Pos() int             { return e.Temporary.Pos() }
func (e *BraceConstruction) End() int             { return e.RightBrace.End() }
func (e *BraceConstruction) TokenLiteral() string { return e.LeftBrace.Text }
