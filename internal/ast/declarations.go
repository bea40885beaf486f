package ast

import "github.com/tmaxwell/go-cscript/pkg/token"

// VariableInit is the initializer of a variable declaration.
type VariableInit interface {
	Node
	variableInitNode()
}

// AssignmentInitialization is '= expr'.
type AssignmentInitialization struct {
	EqualSign token.Token
	Value     Expression
}

func (i *AssignmentInitialization) variableInitNode()    {}
func (i *AssignmentInitialization) Base() token.Token    { return i.EqualSign }
func (i *AssignmentInitialization) Pos() int             { return i.EqualSign.Offset }
func (i *AssignmentInitialization) End() int             { return i.Value.End() }
func (i *AssignmentInitialization) TokenLiteral() string { return i.EqualSign.Text }

// ConstructorInitialization is '(args...)'.
type ConstructorInitialization struct {
	LeftPar  token.Token
	Args     []Expression
	RightPar token.Token
}

func (i *ConstructorInitialization) variableInitNode()    {}
func (i *ConstructorInitialization) Base() token.Token    { return i.LeftPar }
func (i *ConstructorInitialization) Pos() int             { return i.LeftPar.Offset }
func (i *ConstructorInitialization) End() int             { return i.RightPar.End() }
func (i *ConstructorInitialization) TokenLiteral() string { return i.LeftPar.Text }

// BraceInitialization is '{args...}'.
type BraceInitialization struct {
	LeftBrace  token.Token
	Args       []Expression
	RightBrace token.Token
}

func (i *BraceInitialization) variableInitNode()    {}
func (i *BraceInitialization) Base() token.Token    { return i.LeftBrace }
func (i *BraceInitialization) Pos() int             { return i.LeftBrace.Offset }
func (i *BraceInitialization) End() int             { return i.RightBrace.End() }
func (i *BraceInitialization) TokenLiteral() string { return i.LeftBrace.Text }

// AttributeDeclaration is a [[ expr ]] specifier attached to a declaration.
type AttributeDeclaration struct {
	DoubleLeftBracket  token.Token
	Attribute          Expression
	DoubleRightBracket token.Token
}

func (a *AttributeDeclaration) Base() token.Token    { return a.DoubleLeftBracket }
func (a *AttributeDeclaration) Pos() int             { return a.DoubleLeftBracket.Offset }
func (a *AttributeDeclaration) End() int             { return a.DoubleRightBracket.End() }
func (a *AttributeDeclaration) TokenLiteral() string { return a.DoubleLeftBracket.Text }

// VariableDecl declares a variable, member or global.
type VariableDecl struct {
	Attribute  *AttributeDeclaration
	StaticSpec token.Token
	VarType    QualifiedType
	Name       token.Token
	Init       VariableInit
	Semicolon  token.Token
}

func (d *VariableDecl) statementNode()       {}
func (d *VariableDecl) declarationNode()     {}
func (d *VariableDecl) Base() token.Token    { return d.Name }
func (d *VariableDecl) TokenLiteral() string { return d.Name.Text }

func (d *VariableDecl) Pos() int {
	if d.StaticSpec.IsValid() {
		return d.StaticSpec.Offset
	}
	if d.VarType.ConstQualifier.IsValid() {
		return d.VarType.ConstQualifier.Offset
	}
	if d.VarType.Name != nil {
		return d.VarType.Name.Pos()
	}
	return d.Name.Offset
}

func (d *VariableDecl) End() int { return d.Semicolon.End() }

// FuncSpecifiers groups the optional specifier tokens of a function
// declaration.
type FuncSpecifiers struct {
	Explicit token.Token
	Static   token.Token
	Virtual  token.Token
}

// FunctionBodyKind distinguishes the five forms a declaration can end with.
type FunctionBodyKind int

const (
	BodyAbsent FunctionBodyKind = iota
	BodyCompound
	BodyDefaulted
	BodyDeleted
	BodyPure // '= 0'
)

// FunctionDecl declares a function, method or free operator. The
// constructor/destructor/operator/cast forms embed it.
type FunctionDecl struct {
	Attribute   *AttributeDeclaration
	Specifiers  FuncSpecifiers
	ReturnType  QualifiedType
	Name        Identifier
	LeftPar     token.Token
	Params      []FunctionParameter
	RightPar    token.Token
	ConstQual   token.Token // trailing const
	EqualSign   token.Token // for '= default', '= delete', '= 0'
	BodyKind    FunctionBodyKind
	Body        *CompoundStatement
	Semicolon   token.Token
}

func (d *FunctionDecl) statementNode()       {}
func (d *FunctionDecl) declarationNode()     {}
func (d *FunctionDecl) Base() token.Token    { return d.Name.Base() }
func (d *FunctionDecl) TokenLiteral() string { return d.Name.TokenLiteral() }

func (d *FunctionDecl) Pos() int {
	if d.Specifiers.Explicit.IsValid() {
		return d.Specifiers.Explicit.Offset
	}
	if d.Specifiers.Static.IsValid() {
		return d.Specifiers.Static.Offset
	}
	if d.Specifiers.Virtual.IsValid() {
		return d.Specifiers.Virtual.Offset
	}
	if !d.ReturnType.IsNull() && d.ReturnType.Name != nil {
		return d.ReturnType.Name.Pos()
	}
	return d.Name.Pos()
}

func (d *FunctionDecl) End() int {
	if d.Body != nil {
		return d.Body.End()
	}
	return d.Semicolon.End()
}

// IsVirtual reports whether the declaration carries 'virtual' or is pure.
func (d *FunctionDecl) IsVirtual() bool {
	return d.Specifiers.Virtual.IsValid() || d.BodyKind == BodyPure
}

// MemberInitialization is one entry of a constructor's member initializer
// list. Name references the enclosing class (delegating constructor), a base
// class, or a data member.
type MemberInitialization struct {
	Name Identifier
	Init VariableInit
}

// ConstructorDecl is a constructor declaration.
type ConstructorDecl struct {
	FunctionDecl
	MemberInits []MemberInitialization
}

// DestructorDecl is a destructor declaration.
type DestructorDecl struct {
	FunctionDecl
	Tilde token.Token
}

// OperatorOverloadDecl is an operator overload; Name is an *OperatorName.
type OperatorOverloadDecl struct {
	FunctionDecl
}

// CastDecl is a conversion function; ReturnType is the target type.
type CastDecl struct {
	FunctionDecl
	OperatorKw token.Token
}

// AccessSpecifier marks a 'public:', 'protected:' or 'private:' label inside
// a class body.
type AccessSpecifier struct {
	Keyword token.Token
	Colon   token.Token
}

func (d *AccessSpecifier) statementNode()       {}
func (d *AccessSpecifier) declarationNode()     {}
func (d *AccessSpecifier) Base() token.Token    { return d.Keyword }
func (d *AccessSpecifier) Pos() int             { return d.Keyword.Offset }
func (d *AccessSpecifier) End() int             { return d.Colon.End() }
func (d *AccessSpecifier) TokenLiteral() string { return d.Keyword.Text }

// ClassDecl declares a class.
type ClassDecl struct {
	Attribute    *AttributeDeclaration
	ClassKeyword token.Token
	Name         Identifier
	Colon        token.Token
	Parent       Identifier
	OpeningBrace token.Token
	Members      []Declaration
	ClosingBrace token.Token
	Semicolon    token.Token
}

func (d *ClassDecl) statementNode()       {}
func (d *ClassDecl) declarationNode()     {}
func (d *ClassDecl) Base() token.Token    { return d.ClassKeyword }
func (d *ClassDecl) Pos() int             { return d.ClassKeyword.Offset }
func (d *ClassDecl) End() int             { return d.Semicolon.End() }
func (d *ClassDecl) TokenLiteral() string { return d.ClassKeyword.Text }

// EnumValueDecl is one enumerator, optionally with an explicit value.
type EnumValueDecl struct {
	Name  token.Token
	Value Expression
}

// EnumDecl declares an enumeration.
type EnumDecl struct {
	EnumKeyword  token.Token
	ClassKeyword token.Token // 'enum class'
	Name         Identifier
	OpeningBrace token.Token
	Values       []EnumValueDecl
	ClosingBrace token.Token
	Semicolon    token.Token
}

func (d *EnumDecl) statementNode()       {}
func (d *EnumDecl) declarationNode()     {}
func (d *EnumDecl) Base() token.Token    { return d.EnumKeyword }
func (d *EnumDecl) Pos() int             { return d.EnumKeyword.Offset }
func (d *EnumDecl) End() int             { return d.Semicolon.End() }
func (d *EnumDecl) TokenLiteral() string { return d.EnumKeyword.Text }

// Typedef is typedef T name;.
type Typedef struct {
	TypedefKeyword token.Token
	QualType       QualifiedType
	Name           token.Token
	Semicolon      token.Token
}

func (d *Typedef) statementNode()       {}
func (d *Typedef) declarationNode()     {}
func (d *Typedef) Base() token.Token    { return d.TypedefKeyword }
func (d *Typedef) Pos() int             { return d.TypedefKeyword.Offset }
func (d *Typedef) End() int             { return d.Semicolon.End() }
func (d *Typedef) TokenLiteral() string { return d.TypedefKeyword.Text }

// NamespaceDecl declares a namespace with its enclosed statements.
type NamespaceDecl struct {
	Keyword      token.Token
	Name         token.Token
	OpeningBrace token.Token
	Statements   []Statement
	ClosingBrace token.Token
}

func (d *NamespaceDecl) statementNode()       {}
func (d *NamespaceDecl) declarationNode()     {}
func (d *NamespaceDecl) Base() token.Token    { return d.Keyword }
func (d *NamespaceDecl) Pos() int             { return d.Keyword.Offset }
func (d *NamespaceDecl) End() int             { return d.ClosingBrace.End() }
func (d *NamespaceDecl) TokenLiteral() string { return d.Keyword.Text }

// FriendDeclaration is 'friend class N;'.
type FriendDeclaration struct {
	FriendKeyword token.Token
	ClassKeyword  token.Token
	Name          Identifier
	Semicolon     token.Token
}

func (d *FriendDeclaration) statementNode()       {}
func (d *FriendDeclaration) declarationNode()     {}
func (d *FriendDeclaration) Base() token.Token    { return d.FriendKeyword }
func (d *FriendDeclaration) Pos() int             { return d.FriendKeyword.Offset }
func (d *FriendDeclaration) End() int             { return d.Semicolon.End() }
func (d *FriendDeclaration) TokenLiteral() string { return d.FriendKeyword.Text }

// UsingDeclaration is 'using A::b;'.
type UsingDeclaration struct {
	UsingKeyword token.Token
	Name         Identifier
	Semicolon    token.Token
}

func (d *UsingDeclaration) statementNode()       {}
func (d *UsingDeclaration) declarationNode()     {}
func (d *UsingDeclaration) Base() token.Token    { return d.UsingKeyword }
func (d *UsingDeclaration) Pos() int             { return d.UsingKeyword.Offset }
func (d *UsingDeclaration) End() int             { return d.Semicolon.End() }
func (d *UsingDeclaration) TokenLiteral() string { return d.UsingKeyword.Text }

// UsingDirective is 'using namespace N;'.
type UsingDirective struct {
	UsingKeyword     token.Token
	NamespaceKeyword token.Token
	Name             Identifier
	Semicolon        token.Token
}

func (d *UsingDirective) statementNode()       {}
func (d *UsingDirective) declarationNode()     {}
func (d *UsingDirective) Base() token.Token    { return d.UsingKeyword }
func (d *UsingDirective) Pos() int             { return d.UsingKeyword.Offset }
func (d *UsingDirective) End() int             { return d.Semicolon.End() }
func (d *UsingDirective) TokenLiteral() string { return d.UsingKeyword.Text }

// NamespaceAliasDefinition is 'namespace A = B;'.
type NamespaceAliasDefinition struct {
	NamespaceKeyword token.Token
	Alias            token.Token
	EqualSign        token.Token
	Name             Identifier
	Semicolon        token.Token
}

func (d *NamespaceAliasDefinition) statementNode()       {}
func (d *NamespaceAliasDefinition) declarationNode()     {}
func (d *NamespaceAliasDefinition) Base() token.Token    { return d.NamespaceKeyword }
func (d *NamespaceAliasDefinition) Pos() int             { return d.NamespaceKeyword.Offset }
func (d *NamespaceAliasDefinition) End() int             { return d.Semicolon.End() }
func (d *NamespaceAliasDefinition) TokenLiteral() string { return d.NamespaceKeyword.Text }

// TypeAliasDeclaration is 'using A = B;'.
type TypeAliasDeclaration struct {
	UsingKeyword token.Token
	Alias        token.Token
	EqualSign    token.Token
	Name         Identifier
	Semicolon    token.Token
}

func (d *TypeAliasDeclaration) statementNode()       {}
func (d *TypeAliasDeclaration) declarationNode()     {}
func (d *TypeAliasDeclaration) Base() token.Token    { return d.UsingKeyword }
func (d *TypeAliasDeclaration) Pos() int             { return d.UsingKeyword.Offset }
func (d *TypeAliasDeclaration) End() int             { return d.Semicolon.End() }
func (d *TypeAliasDeclaration) TokenLiteral() string { return d.UsingKeyword.Text }

// ImportDirective is 'import a.b.c;' or 'export import a.b.c;'.
type ImportDirective struct {
	ExportKeyword token.Token
	ImportKeyword token.Token
	Names         []token.Token
	Semicolon     token.Token
}

func (d *ImportDirective) statementNode()   {}
func (d *ImportDirective) declarationNode() {}

func (d *ImportDirective) Base() token.Token { return d.ImportKeyword }

func (d *ImportDirective) Pos() int {
	if d.ExportKeyword.IsValid() {
		return d.ExportKeyword.Offset
	}
	return d.ImportKeyword.Offset
}

func (d *ImportDirective) End() int             { return d.Semicolon.End() }
func (d *ImportDirective) TokenLiteral() string { return d.ImportKeyword.Text }

// ModuleName joins the dotted name parts.
func (d *ImportDirective) ModuleName() string {
	s := ""
	for i, n := range d.Names {
		if i > 0 {
			s += "."
		}
		s += n.Text
	}
	return s
}
