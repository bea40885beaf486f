package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// QualifiedType is the syntactic form of a type: optional const qualifier,
// a type name, an optional reference sigil and an optional function-type
// suffix. It is a value, not a Node; TypeNode wraps it where a Node is
// required (template argument lists).
type QualifiedType struct {
	ConstQualifier token.Token
	Name           Identifier
	Reference      token.Token // '&' or '&&'
	FunctionType   *FunctionType
}

// IsNull reports whether the type was not written at all.
func (qt QualifiedType) IsNull() bool {
	return qt.Name == nil && qt.FunctionType == nil
}

// IsConst reports whether the const qualifier is present.
func (qt QualifiedType) IsConst() bool { return qt.ConstQualifier.IsValid() }

// IsRef reports whether a reference sigil is present.
func (qt QualifiedType) IsRef() bool { return qt.Reference.IsValid() }

// FunctionType is the syntactic form of a function type:
// a return type and an ordered parameter-type list.
type FunctionType struct {
	ReturnType QualifiedType
	Params     []QualifiedType
}

// TypeNode adapts a QualifiedType to the Node interface.
type TypeNode struct {
	Value QualifiedType
}

func (t *TypeNode) Base() token.Token {
	if t.Value.ConstQualifier.IsValid() {
		return t.Value.ConstQualifier
	}
	if t.Value.Name != nil {
		return t.Value.Name.Base()
	}
	return token.Token{}
}

func (t *TypeNode) Pos() int {
	if t.Value.ConstQualifier.IsValid() {
		return t.Value.ConstQualifier.Offset
	}
	if t.Value.Name != nil {
		return t.Value.Name.Pos()
	}
	return 0
}

func (t *TypeNode) End() int {
	if t.Value.Reference.IsValid() {
		return t.Value.Reference.End()
	}
	if t.Value.Name != nil {
		return t.Value.Name.End()
	}
	return 0
}

func (t *TypeNode) TokenLiteral() string { return t.Base().Text }

// FunctionParameter is one parameter of a function declaration.
type FunctionParameter struct {
	Type         QualifiedType
	Name         token.Token
	DefaultValue Expression
}
