package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// buildClass assembles a class from its declaration inside a type-system
// transaction: failing midway (e.g. an unresolved parent) rolls every
// registration back so the declaration can be re-queued.
func (sc *ScriptCompiler) buildClass(decl *ast.ClassDecl, scope *Scope, ns *types.Namespace) (*types.Class, error) {
	name := decl.Name.TokenLiteral()

	tr := sc.cs.engine.TypeSystem.BeginTransaction()
	scheduled := len(sc.funcTasks)

	cls := types.NewClass(name)
	cls.EnclosingNamespace = ns
	sc.cs.engine.TypeSystem.RegisterClass(cls)

	if err := sc.populateClass(cls, decl, scope); err != nil {
		tr.Rollback()
		sc.funcTasks = sc.funcTasks[:scheduled]
		return nil, err
	}
	tr.Commit()

	ns.Classes[name] = cls
	return cls, nil
}

// buildClassForTemplate assembles a template instance; the caller owns the
// transaction and the memoization entry.
func (sc *ScriptCompiler) buildClassForTemplate(decl *ast.ClassDecl, argScope *Scope, t *types.ClassTemplate, args []types.TemplateArg) (*types.Class, error) {
	cls := types.NewClass(t.Name)
	cls.EnclosingNamespace = t.Enclosing
	sc.cs.engine.TypeSystem.RegisterClass(cls)
	cls.Instantiation = &types.TemplateInstance{Template: t, Args: args}

	scheduled := len(sc.funcTasks)
	if err := sc.populateClass(cls, decl, argScope); err != nil {
		sc.funcTasks = sc.funcTasks[:scheduled]
		return nil, err
	}
	return cls, nil
}

func (sc *ScriptCompiler) populateClass(cls *types.Class, decl *ast.ClassDecl, scope *Scope) error {
	// Parent resolution first; the virtual table seeds from the parent's.
	if decl.Parent != nil {
		result, err := sc.cs.resolver.Resolve(decl.Parent, scope)
		if err != nil {
			return err
		}
		if result.Kind != TypeName {
			return failx(InvalidTypeName, decl.Parent.Pos(), decl.Parent.TokenLiteral())
		}
		parent := sc.cs.engine.TypeSystem.GetClass(result.Type)
		if parent == nil {
			return fail(InvalidBaseClass, decl.Parent.Pos())
		}
		cls.Parent = parent
		cls.VTable = append(cls.VTable, parent.VTable...)
	}

	classScope := NewClassScope(cls, scope)
	access := types.PrivateAccess

	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.AccessSpecifier:
			switch m.Keyword.Text {
			case "public":
				access = types.PublicAccess
			case "protected":
				access = types.ProtectedAccess
			default:
				access = types.PrivateAccess
			}

		case *ast.VariableDecl:
			if err := sc.addDataMember(cls, m, classScope, access); err != nil {
				return err
			}

		case *ast.ConstructorDecl:
			if err := sc.addConstructor(cls, m, classScope); err != nil {
				return err
			}

		case *ast.DestructorDecl:
			if err := sc.addDestructor(cls, m, classScope); err != nil {
				return err
			}

		case *ast.CastDecl:
			if err := sc.addCast(cls, m, classScope); err != nil {
				return err
			}

		case *ast.OperatorOverloadDecl:
			if err := sc.addMemberOperator(cls, m, classScope); err != nil {
				return err
			}

		case *ast.FunctionDecl:
			if err := sc.addMethod(cls, m, classScope, access); err != nil {
				return err
			}

		case *ast.ClassDecl:
			nested, err := sc.buildClass(m, classScope, cls.EnclosingNamespace)
			if err != nil {
				return err
			}
			delete(cls.EnclosingNamespace.Classes, nested.Name)
			nested.EnclosingClass = cls
			cls.Classes[nested.Name] = nested

		case *ast.EnumDecl:
			nested, err := sc.buildEnum(m, classScope, cls.EnclosingNamespace)
			if err != nil {
				return err
			}
			delete(cls.EnclosingNamespace.Enums, nested.Name)
			nested.EnclosingNamespace = nil
			nested.EnclosingClass = cls
			cls.Enums[nested.Name] = nested

		case *ast.Typedef:
			t, err := sc.cs.resolver.ResolveType(m.QualType, classScope)
			if err != nil {
				return err
			}
			cls.Typedefs[m.Name.Text] = t

		case *ast.FriendDeclaration:
			cls.Friends = append(cls.Friends, m.Name.TokenLiteral())

		case *ast.TemplateDecl:
			// Member templates register beside the class in its namespace.
			if err := sc.declareTemplate(m, classScope, cls.EnclosingNamespace); err != nil {
				return err
			}

		case *ast.UsingDeclaration:
			result, err := sc.cs.resolver.Resolve(m.Name, classScope)
			if err != nil {
				return err
			}
			if result.Kind != FunctionName {
				return fail(InvalidNameInUsingDirective, m.Name.Pos())
			}
			classScope.InjectUsingDeclaration(result.Functions[0].Name, result.Functions)

		default:
			return fail(ExpectedDeclaration, member.Pos())
		}
	}

	sc.synthesizeSpecialMembers(cls, classScope)
	return nil
}

func (sc *ScriptCompiler) addDataMember(cls *types.Class, decl *ast.VariableDecl, scope *Scope, access types.AccessSpec) error {
	if simple, ok := decl.VarType.Name.(*ast.SimpleIdentifier); ok && simple.Name() == "auto" {
		return fail(DataMemberCannotBeAuto, decl.Pos())
	}

	t, err := sc.cs.resolver.ResolveType(decl.VarType, scope)
	if err != nil {
		return err
	}

	if decl.StaticSpec.IsValid() {
		if decl.Init == nil {
			return failx(MissingStaticInitialization, decl.Pos(), decl.Name.Text)
		}
		assign, ok := decl.Init.(*ast.AssignmentInitialization)
		if !ok {
			return failx(InvalidStaticInitialization, decl.Pos(), decl.Name.Text)
		}
		sm := &types.StaticDataMember{Name: decl.Name.Text, Type: t, Access: access}
		cls.StaticMembers[decl.Name.Text] = sm

		ec := NewExpressionCompiler(sc.cs, scope, nil)
		expr, err := ec.Compile(assign.Value)
		if err != nil {
			return failx(FailedToInitializeStaticVariable, decl.Pos(), decl.Name.Text)
		}
		plan := ComputeExprInit(t, expr, sc.cs.engine.TypeSystem)
		if !plan.IsValid() {
			return failx(FailedToInitializeStaticVariable, decl.Pos(), decl.Name.Text)
		}
		vc := &ValueConstructor{ec: ec}
		value, err := vc.ConstructFromInit(t, expr, plan, decl.Pos())
		if err != nil {
			return failx(FailedToInitializeStaticVariable, decl.Pos(), decl.Name.Text)
		}
		sm.Init = value
		return nil
	}

	cls.DataMembers = append(cls.DataMembers, types.DataMember{
		Name:   decl.Name.Text,
		Type:   t,
		Access: access,
	})
	return nil
}

// memberProto prepends the implicit object parameter.
func (sc *ScriptCompiler) memberProto(cls *types.Class, decl *ast.FunctionDecl, scope *Scope, isStatic bool) (types.Prototype, error) {
	base, err := sc.resolveSignature(decl, scope)
	if err != nil {
		return types.Prototype{}, err
	}
	if isStatic {
		return base, nil
	}

	thisType := types.Ref(cls.Type).WithFlag(types.ThisFlag)
	if decl.ConstQual.IsValid() {
		thisType = types.Cref(cls.Type).WithFlag(types.ThisFlag)
	}
	params := append([]types.Type{thisType}, base.Params...)
	return types.Prototype{ReturnType: base.ReturnType, Params: params}, nil
}

func (sc *ScriptCompiler) addConstructor(cls *types.Class, decl *ast.ConstructorDecl, scope *Scope) error {
	proto, err := sc.memberProto(cls, &decl.FunctionDecl, scope, false)
	if err != nil {
		return err
	}
	proto.ReturnType = types.Void
	proto.Params[0] = cls.Type.WithFlag(types.ThisFlag)

	f := types.NewFunction(cls.Name, proto)
	f.Kind = types.ConstructorFunction
	f.MemberOf = cls
	f.Flags = functionFlags(&decl.FunctionDecl) &^ types.VirtualFlag
	cls.Constructors = append(cls.Constructors, f)

	if decl.Body != nil || decl.BodyKind == ast.BodyDefaulted {
		sc.scheduleBody(f, &decl.FunctionDecl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) addDestructor(cls *types.Class, decl *ast.DestructorDecl, scope *Scope) error {
	proto := types.DestructorPrototype(cls.Type.WithFlag(types.ThisFlag))
	f := types.NewFunction("~"+cls.Name, proto)
	f.Kind = types.DestructorFunction
	f.MemberOf = cls
	f.Flags = functionFlags(&decl.FunctionDecl)
	cls.Destructor = f

	if decl.Body != nil || decl.BodyKind == ast.BodyDefaulted {
		sc.scheduleBody(f, &decl.FunctionDecl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) addCast(cls *types.Class, decl *ast.CastDecl, scope *Scope) error {
	target, err := sc.cs.resolver.ResolveType(decl.ReturnType, scope)
	if err != nil {
		return err
	}
	thisType := types.Ref(cls.Type).WithFlag(types.ThisFlag)
	if decl.ConstQual.IsValid() {
		thisType = types.Cref(cls.Type).WithFlag(types.ThisFlag)
	}

	f := types.NewFunction("operator "+decl.ReturnType.Name.TokenLiteral(), types.CastPrototype(target, thisType))
	f.Kind = types.CastFunction
	f.MemberOf = cls
	f.Flags = functionFlags(&decl.FunctionDecl) &^ types.VirtualFlag
	cls.Casts = append(cls.Casts, f)

	if decl.Body != nil {
		sc.scheduleBody(f, &decl.FunctionDecl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) addMemberOperator(cls *types.Class, decl *ast.OperatorOverloadDecl, scope *Scope) error {
	opName, ok := decl.Name.(*ast.OperatorName)
	if !ok {
		return fail(LiteralOperatorNotInNamespace, decl.Pos())
	}

	symbol, _, err := normalizeOperator(opName.Symbol.Text, &decl.FunctionDecl, true)
	if err != nil {
		return err
	}

	fdecl := decl.FunctionDecl
	if symbol == "++post" || symbol == "--post" {
		fdecl.Params = fdecl.Params[:len(fdecl.Params)-1]
	}

	proto, err := sc.memberProto(cls, &fdecl, scope, false)
	if err != nil {
		return err
	}

	f := types.NewFunction("operator"+symbol, proto)
	f.Kind = types.OperatorFunction
	f.OperatorSymbol = symbol
	f.MemberOf = cls
	f.Flags = functionFlags(&decl.FunctionDecl) &^ types.VirtualFlag
	cls.Operators = append(cls.Operators, f)

	if decl.Body != nil || decl.BodyKind == ast.BodyDefaulted {
		sc.scheduleBody(f, &fdecl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) addMethod(cls *types.Class, decl *ast.FunctionDecl, scope *Scope, access types.AccessSpec) error {
	isStatic := decl.Specifiers.Static.IsValid()
	proto, err := sc.memberProto(cls, decl, scope, isStatic)
	if err != nil {
		return err
	}

	name := decl.Name.TokenLiteral()
	f := types.NewFunction(name, proto)
	f.MemberOf = cls
	f.Flags = functionFlags(decl)

	// Virtual table assignment: a method overriding a parent's virtual
	// method takes its slot and is implicitly virtual.
	if !isStatic {
		if slot := findOverriddenSlot(cls, f); slot >= 0 {
			f.Flags |= types.VirtualFlag
			f.VTableIndex = slot
			cls.VTable[slot] = f
		} else if f.IsVirtual() {
			f.VTableIndex = len(cls.VTable)
			cls.VTable = append(cls.VTable, f)
		}
	}

	cls.Methods = append(cls.Methods, f)

	if decl.Body == nil && decl.Attribute != nil && sc.cs.engine.FunctionMaker != nil {
		native, err := sc.cs.engine.FunctionMaker.Create(sc.cs.engine, decl, name, proto, decl.Attribute.Attribute)
		if err != nil {
			return failx(SyntaxError, decl.Pos(), err.Error())
		}
		if native != nil {
			f.Body = native.Body
			return nil
		}
	}

	if decl.Body != nil {
		sc.scheduleBody(f, decl, decl, scope)
	}
	return nil
}

// findOverriddenSlot searches the inherited virtual table for a method with
// the same name and value-parameter list.
func findOverriddenSlot(cls *types.Class, f *types.Function) int {
	for i, v := range cls.VTable {
		if v == nil || v.MemberOf == cls {
			continue
		}
		if v.Name != f.Name {
			continue
		}
		if len(v.Proto.Params) != len(f.Proto.Params) {
			continue
		}
		same := true
		for j := 1; j < len(v.Proto.Params); j++ {
			if v.Proto.Params[j] != f.Proto.Params[j] {
				same = false
				break
			}
		}
		if same {
			return i
		}
	}
	return -1
}

// synthesizeSpecialMembers implicitly declares the defaulted special
// members the class omitted. Their bodies are synthesized in the deferred
// pass; a member that cannot be synthesized becomes deleted.
func (sc *ScriptCompiler) synthesizeSpecialMembers(cls *types.Class, scope *Scope) {
	implicit := func(f *types.Function) {
		f.Flags |= types.DefaultedFlag
		f.MemberOf = cls
		sc.funcTasks = append(sc.funcTasks, CompileFunctionTask{Function: f, Scope: scope})
	}

	if len(cls.Constructors) == 0 {
		ctor := types.NewFunction(cls.Name, types.NewPrototype(types.Void, cls.Type.WithFlag(types.ThisFlag)))
		ctor.Kind = types.ConstructorFunction
		cls.Constructors = append(cls.Constructors, ctor)
		implicit(ctor)
	}

	if cls.CopyConstructor() == nil {
		copyCtor := types.NewFunction(cls.Name, types.NewPrototype(types.Void, cls.Type.WithFlag(types.ThisFlag), types.Cref(cls.Type)))
		copyCtor.Kind = types.ConstructorFunction
		cls.Constructors = append(cls.Constructors, copyCtor)
		implicit(copyCtor)
	}

	if cls.Destructor == nil {
		dtor := types.NewFunction("~"+cls.Name, types.DestructorPrototype(cls.Type.WithFlag(types.ThisFlag)))
		dtor.Kind = types.DestructorFunction
		cls.Destructor = dtor
		implicit(dtor)
	}

	hasAssign := false
	for _, op := range cls.Operators {
		if op.OperatorSymbol == "=" {
			hasAssign = true
			break
		}
	}
	if !hasAssign {
		assign := types.NewFunction("operator=", types.BinaryOperatorPrototype(
			types.Ref(cls.Type),
			types.Ref(cls.Type).WithFlag(types.ThisFlag),
			types.Cref(cls.Type),
		))
		assign.Kind = types.OperatorFunction
		assign.OperatorSymbol = "="
		cls.Operators = append(cls.Operators, assign)
		implicit(assign)
	}
}

// buildEnum assembles an enumeration; enumerator values default to one past
// the previous value.
func (sc *ScriptCompiler) buildEnum(decl *ast.EnumDecl, scope *Scope, ns *types.Namespace) (*types.Enum, error) {
	e := types.NewEnum(decl.Name.TokenLiteral(), decl.ClassKeyword.IsValid())
	e.EnclosingNamespace = ns
	sc.cs.engine.TypeSystem.RegisterEnum(e)

	next := 0
	for _, v := range decl.Values {
		if v.Value != nil {
			value, err := sc.evalEnumValue(v.Value, e)
			if err != nil {
				return nil, err
			}
			next = value
		}
		e.AddValue(v.Name.Text, next)
		next++
	}

	ns.Enums[e.Name] = e
	return e, nil
}

// evalEnumValue evaluates a constant enumerator initializer: an integer
// literal, its negation, or a previously declared enumerator.
func (sc *ScriptCompiler) evalEnumValue(expr ast.Expression, e *types.Enum) (int, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		v, err := ParseIntegerLiteral(n.Tok.Text)
		if err != nil {
			return 0, fail(SyntaxError, n.Pos())
		}
		return int(v), nil
	case *ast.Operation:
		if !n.IsBinary() && n.OperatorTok.Text == "-" {
			v, err := sc.evalEnumValue(n.Arg1, e)
			if err != nil {
				return 0, err
			}
			return -v, nil
		}
	case *ast.SimpleIdentifier:
		if v, ok := e.Values[n.Name()]; ok {
			return v, nil
		}
	}
	return 0, fail(SyntaxError, expr.Pos())
}
