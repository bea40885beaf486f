package parser

import "github.com/tmaxwell/go-cscript/pkg/token"

// Associativity of an infix precedence level.
type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

// infixPrecedences maps infix operator tokens to their precedence. Larger
// values bind more weakly; the expression builder splits operands around the
// weakest operator. LeftAngle/RightAngle act as comparisons here and
// RightRightAngle as a right shift; template contexts are carved out before
// expression parsing ever sees them.
var infixPrecedences = map[token.Kind]int{
	token.Mul:             5,
	token.Div:             5,
	token.Remainder:       5,
	token.Plus:            6,
	token.Minus:           6,
	token.LeftShift:       7,
	token.RightRightAngle: 7,
	token.LeftAngle:       8,
	token.RightAngle:      8,
	token.LessEqual:       8,
	token.GreaterEqual:    8,
	token.EqEq:            9,
	token.Neq:             9,
	token.BitwiseAnd:      10,
	token.BitwiseXor:      11,
	token.BitwiseOr:       12,
	token.LogicalAnd:      13,
	token.LogicalOr:       14,
	token.Eq:              15,
	token.MulEq:           15,
	token.DivEq:           15,
	token.AddEq:           15,
	token.SubEq:           15,
	token.RemainderEq:     15,
	token.LeftShiftEq:     15,
	token.RightShiftEq:    15,
	token.BitAndEq:        15,
	token.BitOrEq:         15,
	token.BitXorEq:        15,
	token.Comma:           16,
}

// conditionalPrecedence is the level of the '?:' operator.
const conditionalPrecedence = 15

func associativity(precedence int) Associativity {
	if precedence == 15 {
		return RightToLeft
	}
	return LeftToRight
}

func isInfixOperator(tok token.Token) bool {
	_, ok := infixPrecedences[tok.Kind]
	return ok
}

func isPrefixOperator(tok token.Token) bool {
	switch tok.Kind {
	case token.Plus, token.Minus, token.LogicalNot, token.BitwiseNot,
		token.PlusPlus, token.MinusMinus:
		return true
	}
	return false
}
