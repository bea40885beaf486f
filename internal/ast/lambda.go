package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// LambdaCapture is one entry of a lambda capture list. The possible shapes:
//
//	=        capture-all by value (ByValueSign set, no name)
//	&        capture-all by reference (Reference set, no name)
//	x        capture x by value
//	&x       capture x by reference
//	x = expr capture with initializer
type LambdaCapture struct {
	ByValueSign    token.Token // '='
	Reference      token.Token // '&'
	Name           token.Token
	AssignmentSign token.Token
	Value          Expression
}

// IsDefaultByValue reports a bare '=' capture.
func (c LambdaCapture) IsDefaultByValue() bool {
	return c.ByValueSign.IsValid() && !c.Name.IsValid()
}

// IsDefaultByReference reports a bare '&' capture.
func (c LambdaCapture) IsDefaultByReference() bool {
	return c.Reference.IsValid() && !c.Name.IsValid()
}

// LambdaExpression is [captures](params){ body }.
type LambdaExpression struct {
	LeftBracket  token.Token
	Captures     []LambdaCapture
	RightBracket token.Token
	LeftPar      token.Token
	Params       []FunctionParameter
	RightPar     token.Token
	Body         *CompoundStatement
}

func (e *LambdaExpression) expressionNode()      {}
func (e *LambdaExpression) Base() token.Token    { return e.LeftBracket }
func (e *LambdaExpression) Pos() int             { return e.LeftBracket.Offset }
func (e *LambdaExpression) End() int             { return e.Body.End() }
func (e *LambdaExpression) TokenLiteral() string { return e.LeftBracket.Text }
