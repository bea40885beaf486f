package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// constructorCompiler generates the header of a constructor body: a
// delegating-constructor call, or a parent-constructor call followed by
// per-data-member initialization.
type constructorCompiler struct {
	fc *FunctionCompiler
}

func newConstructorCompiler(fc *FunctionCompiler) *constructorCompiler {
	return &constructorCompiler{fc: fc}
}

func (cc *constructorCompiler) class() *types.Class { return cc.fc.function.MemberOf }

func (cc *constructorCompiler) memberInits() []ast.MemberInitialization {
	if ctor, ok := cc.fc.declNode.(*ast.ConstructorDecl); ok {
		return ctor.MemberInits
	}
	return nil
}

func initArgs(init ast.VariableInit) []ast.Expression {
	switch n := init.(type) {
	case *ast.AssignmentInitialization:
		return []ast.Expression{n.Value}
	case *ast.ConstructorInitialization:
		return n.Args
	case *ast.BraceInitialization:
		return n.Args
	}
	return nil
}

func (cc *constructorCompiler) generateHeader() ([]program.Statement, error) {
	cls := cc.class()
	ec := cc.fc.expressionCompiler()
	inits := cc.memberInits()

	// A delegating constructor names the class itself; it must then be the
	// only initializer.
	for _, mi := range inits {
		name := mi.Name.TokenLiteral()
		if name != cls.Name {
			continue
		}
		if len(inits) != 1 {
			return nil, fail(InvalidUseOfDelegatedConstructor, mi.Name.Pos())
		}
		args, err := ec.compileArgs(initArgs(mi.Init))
		if err != nil {
			return nil, err
		}
		res := ResolveOverloads(cls.Constructors, ExprArgs(args), cc.fc.ts())
		if !res.Success() || res.Selected.Function == cc.fc.function {
			return nil, fail(NoDelegatingConstructorFound, mi.Name.Pos())
		}
		prepared, err := ec.prepareArgs(args, res.Selected)
		if err != nil {
			return nil, err
		}
		return []program.Statement{&program.ConstructionStatement{
			ObjectType:  cls.Type,
			Constructor: res.Selected.Function,
			Args:        prepared,
		}}, nil
	}

	var out []program.Statement
	out = append(out, &program.InitObjectStatement{ObjectType: cls.Type})

	// Parent construction.
	if cls.Parent != nil {
		var parentInit *ast.MemberInitialization
		for i := range inits {
			if inits[i].Name.TokenLiteral() == cls.Parent.Name {
				parentInit = &inits[i]
				break
			}
		}

		if parentInit != nil {
			args, err := ec.compileArgs(initArgs(parentInit.Init))
			if err != nil {
				return nil, err
			}
			res := ResolveOverloads(cls.Parent.Constructors, ExprArgs(args), cc.fc.ts())
			if !res.Success() {
				return nil, fail(CouldNotFindValidBaseConstructor, parentInit.Name.Pos())
			}
			prepared, err := ec.prepareArgs(args, res.Selected)
			if err != nil {
				return nil, err
			}
			out = append(out, &program.ConstructionStatement{
				ObjectType:  cls.Parent.Type,
				Constructor: res.Selected.Function,
				Args:        prepared,
			})
		} else {
			ctor := cls.Parent.DefaultConstructor()
			if ctor == nil {
				return nil, fail(ParentHasNoDefaultConstructor, cc.fc.declPos())
			}
			if ctor.IsDeleted() {
				return nil, fail(ParentHasDeletedDefaultConstructor, cc.fc.declPos())
			}
			out = append(out, &program.ConstructionStatement{
				ObjectType:  cls.Parent.Type,
				Constructor: ctor,
			})
		}
	}

	// Per-data-member initialization, in declaration order; members not
	// explicitly initialized are default-constructed.
	seen := map[string]bool{}
	for _, mi := range inits {
		name := mi.Name.TokenLiteral()
		if cls.Parent != nil && name == cls.Parent.Name {
			continue
		}
		if seen[name] {
			return nil, failx(DataMemberAlreadyHasInitializer, mi.Name.Pos(), name)
		}
		seen[name] = true
		if _, ok := cls.FindDataMember(name); !ok {
			if cls.AttributeIndex(name) >= 0 {
				return nil, failx(InheritedDataMember, mi.Name.Pos(), name)
			}
			return nil, failx(NotDataMember, mi.Name.Pos(), name)
		}
	}

	vc := &ValueConstructor{ec: ec}
	for i := range cls.DataMembers {
		member := &cls.DataMembers[i]

		var explicit *ast.MemberInitialization
		for j := range inits {
			if inits[j].Name.TokenLiteral() == member.Name {
				explicit = &inits[j]
				break
			}
		}

		var value program.Expression
		var err error
		if explicit != nil {
			args, aerr := ec.compileArgs(initArgs(explicit.Init))
			if aerr != nil {
				return nil, aerr
			}
			if _, isBrace := explicit.Init.(*ast.BraceInitialization); isBrace {
				value, err = vc.BraceConstruct(member.Type, args, explicit.Name.Pos())
			} else {
				value, err = vc.Construct(member.Type, args, true, explicit.Name.Pos())
			}
		} else {
			value, err = vc.DefaultConstruct(member.Type, cc.fc.declPos())
		}
		if err != nil {
			return nil, err
		}
		out = append(out, &program.PushDataMember{Value: value})
	}

	return out, nil
}

func (fc *FunctionCompiler) declPos() int {
	if fc.decl != nil {
		return fc.decl.Pos()
	}
	return 0
}

// destructorCompiler generates the footer of a destructor body: per-member
// destruction in reverse declaration order, then the parent destructor.
type destructorCompiler struct {
	fc *FunctionCompiler
}

func newDestructorCompiler(fc *FunctionCompiler) *destructorCompiler {
	return &destructorCompiler{fc: fc}
}

func (dc *destructorCompiler) generateFooter() []program.Statement {
	cls := dc.fc.function.MemberOf
	var out []program.Statement

	for i := len(cls.DataMembers) - 1; i >= 0; i-- {
		pop := &program.PopDataMember{}
		if memberClass := dc.fc.ts().GetClass(cls.DataMembers[i].Type); memberClass != nil {
			pop.Destructor = memberClass.Destructor
		}
		out = append(out, pop)
	}

	if cls.Parent != nil && cls.Parent.Destructor != nil {
		out = append(out, &program.ExpressionStatement{
			Expr: &program.FunctionCall{
				Callee: cls.Parent.Destructor,
				Args:   []program.Expression{dc.fc.thisExpr()},
			},
		})
	}

	return out
}

// compileDefaulted synthesizes the body of a '= default' special member:
// default/copy constructor, destructor or copy assignment, field-wise.
func (fc *FunctionCompiler) compileDefaulted() error {
	cls := fc.function.MemberOf
	if cls == nil {
		return fail(FunctionCannotBeDefaulted, fc.declPos())
	}

	body := &program.CompoundStatement{}
	fc.enterScope(FunctionArguments)
	if !fc.function.IsDestructor() {
		fc.stack.Push("", fc.function.ReturnType())
	}
	if err := fc.pushParameters(); err != nil {
		return err
	}

	switch {
	case fc.function.IsConstructor() && fc.function.Proto.ParamCount() == 1:
		stmts, err := fc.synthesizeDefaultConstructor(cls)
		if err != nil {
			return err
		}
		body.Statements = stmts

	case fc.function.IsConstructor() && fc.function.Proto.ParamCount() == 2:
		stmts, err := fc.synthesizeCopyConstructor(cls)
		if err != nil {
			return err
		}
		body.Statements = stmts

	case fc.function.IsDestructor():
		body.Statements = newDestructorCompiler(fc).generateFooter()

	case fc.function.Kind == types.OperatorFunction && fc.function.OperatorSymbol == "=":
		stmts, err := fc.synthesizeAssignment(cls)
		if err != nil {
			return err
		}
		body.Statements = stmts

	default:
		return fail(FunctionCannotBeDefaulted, fc.declPos())
	}

	fc.leaveScope(&body.Statements)
	fc.function.Body = body
	return nil
}

func (fc *FunctionCompiler) synthesizeDefaultConstructor(cls *types.Class) ([]program.Statement, error) {
	var out []program.Statement
	out = append(out, &program.InitObjectStatement{ObjectType: cls.Type})

	if cls.Parent != nil {
		ctor := cls.Parent.DefaultConstructor()
		if ctor == nil {
			return nil, fail(ParentHasNoDefaultConstructor, fc.declPos())
		}
		if ctor.IsDeleted() {
			return nil, fail(ParentHasDeletedDefaultConstructor, fc.declPos())
		}
		out = append(out, &program.ConstructionStatement{ObjectType: cls.Parent.Type, Constructor: ctor})
	}

	vc := &ValueConstructor{ec: fc.expressionCompiler()}
	for i := range cls.DataMembers {
		value, err := vc.DefaultConstruct(cls.DataMembers[i].Type, fc.declPos())
		if err != nil {
			return nil, err
		}
		out = append(out, &program.PushDataMember{Value: value})
	}
	return out, nil
}

func (fc *FunctionCompiler) synthesizeCopyConstructor(cls *types.Class) ([]program.Statement, error) {
	var out []program.Statement
	out = append(out, &program.InitObjectStatement{ObjectType: cls.Type})

	other := &program.StackValue{SlotIndex: fc.thisSlot() + 1, T: fc.function.Proto.Params[1]}

	if cls.Parent != nil {
		ctor := cls.Parent.CopyConstructor()
		if ctor == nil {
			return nil, fail(ParentHasNoCopyConstructor, fc.declPos())
		}
		if ctor.IsDeleted() {
			return nil, fail(ParentHasDeletedCopyConstructor, fc.declPos())
		}
		out = append(out, &program.ConstructionStatement{
			ObjectType:  cls.Parent.Type,
			Constructor: ctor,
			Args:        []program.Expression{other},
		})
	}

	offset := 0
	if cls.Parent != nil {
		offset = cls.Parent.AttributesCount()
	}
	for i := range cls.DataMembers {
		member := &cls.DataMembers[i]
		field := &program.MemberAccess{Object: other, Offset: offset + i, T: member.Type.WithConst()}

		if memberClass := fc.ts().GetClass(member.Type); memberClass != nil {
			copyCtor := memberClass.CopyConstructor()
			if copyCtor == nil || copyCtor.IsDeleted() {
				return nil, failx(DataMemberIsNotCopyable, fc.declPos(), member.Name)
			}
			out = append(out, &program.PushDataMember{Value: &program.ConstructorCall{
				Constructor: copyCtor,
				T:           member.Type.BaseType(),
				Args:        []program.Expression{field},
			}})
			continue
		}
		out = append(out, &program.PushDataMember{Value: &program.Copy{T: member.Type.BaseType(), Arg: field}})
	}
	return out, nil
}

func (fc *FunctionCompiler) synthesizeAssignment(cls *types.Class) ([]program.Statement, error) {
	var out []program.Statement

	self := fc.thisExpr()
	other := &program.StackValue{SlotIndex: fc.thisSlot() + 1, T: fc.function.Proto.Params[1]}

	if cls.Parent != nil {
		var parentAssign *types.Function
		for _, f := range cls.Parent.Operators {
			if f.OperatorSymbol == "=" {
				parentAssign = f
				break
			}
		}
		if parentAssign == nil {
			return nil, fail(ParentHasNoAssignmentOperator, fc.declPos())
		}
		if parentAssign.IsDeleted() {
			return nil, fail(ParentHasDeletedAssignmentOperator, fc.declPos())
		}
		out = append(out, &program.ExpressionStatement{Expr: &program.FunctionCall{
			Callee: parentAssign,
			Args:   []program.Expression{self, other},
		}})
	}

	offset := 0
	if cls.Parent != nil {
		offset = cls.Parent.AttributesCount()
	}
	ec := fc.expressionCompiler()
	for i := range cls.DataMembers {
		member := &cls.DataMembers[i]
		if member.Type.IsReference() {
			return nil, failx(DataMemberIsReferenceAndCannotBeAssigned, fc.declPos(), member.Name)
		}

		lhs := &program.MemberAccess{Object: self, Offset: offset + i, T: types.Ref(member.Type)}
		rhs := &program.MemberAccess{Object: other, Offset: offset + i, T: member.Type.WithConst()}

		fns := ec.resolver().LookupOperators("=", 2, fc.scope, []types.Type{lhs.T, rhs.T})
		res := ResolveOverloads(fns, ExprArgs([]program.Expression{lhs, rhs}), fc.ts())
		if !res.Success() {
			return nil, failx(DataMemberHasNoAssignmentOperator, fc.declPos(), member.Name)
		}
		if res.Selected.Function.IsDeleted() {
			return nil, failx(DataMemberHasDeletedAssignmentOperator, fc.declPos(), member.Name)
		}
		prepared, err := ec.prepareArgs([]program.Expression{lhs, rhs}, res.Selected)
		if err != nil {
			return nil, err
		}
		out = append(out, &program.ExpressionStatement{Expr: &program.FunctionCall{
			Callee: res.Selected.Function,
			Args:   prepared,
		}})
	}

	out = append(out, &program.ReturnStatement{ReturnValue: self})
	return out, nil
}
