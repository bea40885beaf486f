package parser

import (
	"fmt"

	"github.com/tmaxwell/go-cscript/pkg/token"
)

// ErrorCode identifies a parser error. Codes are stable identifiers; the
// rendered message is a host concern.
type ErrorCode int

const (
	UnexpectedEndOfInput ErrorCode = iota
	UnexpectedFragmentEnd
	UnexpectedToken
	ExpectedEmptyStringLiteral
	InvalidEmptyBrackets
	IllegalUseOfKeyword
	ExpectedIdentifier
	ExpectedUserDefinedName
	ExpectedLiteral
	ExpectedOperator
	ExpectedBinaryOperator
	ExpectedPrefixOperator
	ExpectedOperatorSymbol
	InvalidEmptyOperand
	ExpectedDeclaration
	MissingConditionalColon
	CouldNotParseLambdaCapture
	ExpectedCurrentClassName
	CouldNotReadType
)

var errorCodeNames = map[ErrorCode]string{
	UnexpectedEndOfInput:       "UnexpectedEndOfInput",
	UnexpectedFragmentEnd:      "UnexpectedFragmentEnd",
	UnexpectedToken:            "UnexpectedToken",
	ExpectedEmptyStringLiteral: "ExpectedEmptyStringLiteral",
	InvalidEmptyBrackets:       "InvalidEmptyBrackets",
	IllegalUseOfKeyword:        "IllegalUseOfKeyword",
	ExpectedIdentifier:         "ExpectedIdentifier",
	ExpectedUserDefinedName:    "ExpectedUserDefinedName",
	ExpectedLiteral:            "ExpectedLiteral",
	ExpectedOperator:           "ExpectedOperator",
	ExpectedBinaryOperator:     "ExpectedBinaryOperator",
	ExpectedPrefixOperator:     "ExpectedPrefixOperator",
	ExpectedOperatorSymbol:     "ExpectedOperatorSymbol",
	InvalidEmptyOperand:        "InvalidEmptyOperand",
	ExpectedDeclaration:        "ExpectedDeclaration",
	MissingConditionalColon:    "MissingConditionalColon",
	CouldNotParseLambdaCapture: "CouldNotParseLambdaCapture",
	ExpectedCurrentClassName:   "ExpectedCurrentClassName",
	CouldNotReadType:           "CouldNotReadType",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// SyntaxError is raised by any sub-parser on malformed input. Offset is the
// byte offset of the offending token in the source buffer.
type SyntaxError struct {
	Code   ErrorCode
	Offset int
	Actual token.Token
}

func (e *SyntaxError) Error() string {
	if e.Actual.IsValid() {
		return fmt.Sprintf("syntax error at offset %d: %s (near %q)", e.Offset, e.Code, e.Actual.Text)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Code)
}
