// Package ast defines the Abstract Syntax Tree node types for CScript.
package ast

import (
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Node is the base interface for all AST nodes.
// Every node exposes the byte span it covers in the source buffer and a
// "base token" used for diagnostics.
type Node interface {
	// Base returns the token used to locate the node in diagnostics.
	Base() token.Token

	// Pos returns the byte offset of the start of the node.
	Pos() int

	// End returns the byte offset one past the end of the node.
	End() int

	// TokenLiteral returns the literal text of the base token.
	TokenLiteral() string
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a statement introducing one or more names.
type Declaration interface {
	Statement
	declarationNode()
}

// Identifier is the interface of all name nodes.
type Identifier interface {
	Expression
	identifierNode()
}

// AST owns the parsed tree and the source buffer its tokens view into.
// TokenReaders and node spans borrow from Source and must not outlive it.
type AST struct {
	Source string
	Tokens []token.Token
	Root   *ScriptRoot
}

// ScriptRoot is the root node of a parsed script.
type ScriptRoot struct {
	Statements []Statement

	// ast is a weak back-reference to the owning container so nodes can be
	// resolved to file positions.
	ast *AST
}

// NewAST wraps a parsed statement list into an AST container.
func NewAST(source string, tokens []token.Token, stmts []Statement) *AST {
	a := &AST{Source: source, Tokens: tokens}
	a.Root = &ScriptRoot{Statements: stmts, ast: a}
	return a
}

// Container returns the AST owning this root.
func (r *ScriptRoot) Container() *AST { return r.ast }

func (r *ScriptRoot) Base() token.Token {
	if len(r.Statements) > 0 {
		return r.Statements[0].Base()
	}
	return token.Token{}
}

func (r *ScriptRoot) Pos() int {
	if len(r.Statements) > 0 {
		return r.Statements[0].Pos()
	}
	return 0
}

func (r *ScriptRoot) End() int {
	if n := len(r.Statements); n > 0 {
		return r.Statements[n-1].End()
	}
	return 0
}

func (r *ScriptRoot) TokenLiteral() string { return r.Base().Text }
