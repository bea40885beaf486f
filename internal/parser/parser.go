// Package parser implements the CScript parser as a family of cooperating
// recursive-descent sub-parsers sharing a token buffer.
//
// Each sub-parser operates on a TokenReader denoting a fragment of the token
// list; structured slicing of the list (balanced delimiter pairs, statements,
// list elements, template argument ranges) happens before parsing, so the
// individual parsers stay simple. A '>>' token closing two template argument
// lists at once is handled by the reader's right-right-angle flag.
package parser

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
)

// Parse tokenizes and parses a whole script.
func Parse(source string) (*ast.AST, error) {
	ctx, err := NewContext(source)
	if err != nil {
		return nil, err
	}
	pp := NewProgramParser(ctx, NewTokenReader(ctx.Source, ctx.Tokens))
	stmts, err := pp.ParseProgram()
	if err != nil {
		return nil, err
	}
	return ast.NewAST(ctx.Source, ctx.Tokens, stmts), nil
}

// ParseExpression parses a standalone expression, provided for tests and
// embedders evaluating snippets.
func ParseExpression(source string) (ast.Expression, error) {
	ctx, err := NewContext(source)
	if err != nil {
		return nil, err
	}
	ep := NewExpressionParser(ctx, NewTokenReader(ctx.Source, ctx.Tokens))
	return ep.Parse()
}

// ParseType parses a standalone qualified type.
func ParseType(source string) (ast.QualifiedType, error) {
	ctx, err := NewContext(source)
	if err != nil {
		return ast.QualifiedType{}, err
	}
	tp := NewTypeParser(ctx, NewTokenReader(ctx.Source, ctx.Tokens))
	return tp.Parse()
}
