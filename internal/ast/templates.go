package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// TemplateParameter is one parameter of a template declaration. Kind is the
// 'typename', 'int' or 'bool' keyword token.
type TemplateParameter struct {
	Kind         token.Token
	Name         token.Token
	EqualSign    token.Token
	DefaultValue Node
}

// TemplateDecl wraps an inner class or function declaration with a template
// parameter list.
//
// The declaration is a full specialization iff the parameter list is empty;
// a partial specialization iff the inner class declaration's name carries
// template arguments and it is not full.
type TemplateDecl struct {
	TemplateKeyword token.Token
	LeftAngle       token.Token
	Params          []TemplateParameter
	RightAngle      token.Token
	Decl            Declaration
}

func (d *TemplateDecl) statementNode()       {}
func (d *TemplateDecl) declarationNode()     {}
func (d *TemplateDecl) Base() token.Token    { return d.TemplateKeyword }
func (d *TemplateDecl) Pos() int             { return d.TemplateKeyword.Offset }
func (d *TemplateDecl) End() int             { return d.Decl.End() }
func (d *TemplateDecl) TokenLiteral() string { return d.TemplateKeyword.Text }

// IsClassTemplate reports whether the inner declaration is a class.
func (d *TemplateDecl) IsClassTemplate() bool {
	_, ok := d.Decl.(*ClassDecl)
	return ok
}

// IsFunctionTemplate reports whether the inner declaration is a function.
func (d *TemplateDecl) IsFunctionTemplate() bool {
	_, ok := d.Decl.(*FunctionDecl)
	return ok
}

// IsFullSpecialization reports an empty parameter list.
func (d *TemplateDecl) IsFullSpecialization() bool { return len(d.Params) == 0 }

// IsPartialSpecialization reports a class template whose name carries
// template arguments while the parameter list is non-empty.
func (d *TemplateDecl) IsPartialSpecialization() bool {
	if d.IsFullSpecialization() {
		return false
	}
	cd, ok := d.Decl.(*ClassDecl)
	if !ok {
		return false
	}
	_, ok = cd.Name.(*TemplateIdentifier)
	return ok
}
