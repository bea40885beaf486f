package ast

// Visitor has its Visit method invoked for each node encountered by Walk.
// If the returned visitor is non-nil, Walk visits each child of the node
// with it, followed by a call of Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkQualType(v Visitor, qt QualifiedType) {
	if qt.Name != nil {
		Walk(v, qt.Name)
	}
	if qt.FunctionType != nil {
		walkQualType(v, qt.FunctionType.ReturnType)
		for _, p := range qt.FunctionType.Params {
			walkQualType(v, p)
		}
	}
}

func walkInit(v Visitor, init VariableInit) {
	switch n := init.(type) {
	case *AssignmentInitialization:
		Walk(v, n.Value)
	case *ConstructorInitialization:
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *BraceInitialization:
		for _, a := range n.Args {
			Walk(v, a)
		}
	}
}

func walkFunctionDecl(v Visitor, d *FunctionDecl) {
	walkQualType(v, d.ReturnType)
	if d.Name != nil {
		Walk(v, d.Name)
	}
	for _, p := range d.Params {
		walkQualType(v, p.Type)
		if p.DefaultValue != nil {
			Walk(v, p.DefaultValue)
		}
	}
	if d.Body != nil {
		Walk(v, d.Body)
	}
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *ScriptRoot:
		for _, s := range n.Statements {
			Walk(v, s)
		}

	case *SimpleIdentifier, *OperatorName, *LiteralOperatorName,
		*BoolLiteral, *IntegerLiteral, *FloatLiteral, *StringLiteral,
		*UserDefinedLiteral, *NullStatement, *BreakStatement,
		*ContinueStatement, *AccessSpecifier, *ImportDirective:
		// leaves

	case *TemplateIdentifier:
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *ScopedIdentifier:
		Walk(v, n.Lhs)
		Walk(v, n.Rhs)
	case *TypeNode:
		walkQualType(v, n.Value)

	case *Operation:
		Walk(v, n.Arg1)
		if n.Arg2 != nil {
			Walk(v, n.Arg2)
		}
	case *ConditionalExpression:
		Walk(v, n.Condition)
		Walk(v, n.OnTrue)
		Walk(v, n.OnFalse)
	case *FunctionCall:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *ArraySubscript:
		Walk(v, n.Array)
		Walk(v, n.Index)
	case *MemberAccess:
		Walk(v, n.Object)
		Walk(v, n.Member)
	case *ListExpression:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *ArrayExpression:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *BraceConstruction:
		Walk(v, n.Temporary)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *LambdaExpression:
		for _, c := range n.Captures {
			if c.Value != nil {
				Walk(v, c.Value)
			}
		}
		for _, p := range n.Params {
			walkQualType(v, p.Type)
			if p.DefaultValue != nil {
				Walk(v, p.DefaultValue)
			}
		}
		Walk(v, n.Body)

	case *ExpressionStatement:
		Walk(v, n.Expr)
	case *CompoundStatement:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
		if n.ElseClause != nil {
			Walk(v, n.ElseClause)
		}
	case *WhileLoop:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *ForLoop:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Condition != nil {
			Walk(v, n.Condition)
		}
		if n.Increment != nil {
			Walk(v, n.Increment)
		}
		Walk(v, n.Body)
	case *ReturnStatement:
		if n.Expr != nil {
			Walk(v, n.Expr)
		}

	case *VariableDecl:
		walkQualType(v, n.VarType)
		if n.Init != nil {
			walkInit(v, n.Init)
		}
	case *FunctionDecl:
		walkFunctionDecl(v, n)
	case *ConstructorDecl:
		for _, mi := range n.MemberInits {
			Walk(v, mi.Name)
			walkInit(v, mi.Init)
		}
		walkFunctionDecl(v, &n.FunctionDecl)
	case *DestructorDecl:
		walkFunctionDecl(v, &n.FunctionDecl)
	case *OperatorOverloadDecl:
		walkFunctionDecl(v, &n.FunctionDecl)
	case *CastDecl:
		walkFunctionDecl(v, &n.FunctionDecl)
	case *ClassDecl:
		Walk(v, n.Name)
		if n.Parent != nil {
			Walk(v, n.Parent)
		}
		for _, m := range n.Members {
			Walk(v, m)
		}
	case *EnumDecl:
		Walk(v, n.Name)
		for _, val := range n.Values {
			if val.Value != nil {
				Walk(v, val.Value)
			}
		}
	case *Typedef:
		walkQualType(v, n.QualType)
	case *NamespaceDecl:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *FriendDeclaration:
		Walk(v, n.Name)
	case *UsingDeclaration:
		Walk(v, n.Name)
	case *UsingDirective:
		Walk(v, n.Name)
	case *NamespaceAliasDefinition:
		Walk(v, n.Name)
	case *TypeAliasDeclaration:
		Walk(v, n.Name)
	case *TemplateDecl:
		for _, p := range n.Params {
			if p.DefaultValue != nil {
				Walk(v, p.DefaultValue)
			}
		}
		Walk(v, n.Decl)
	}

	v.Visit(nil)
}

// Inspect traverses the AST, calling f for every node. If f returns false,
// children of the node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	if f(node) {
		return f
	}
	return nil
}
