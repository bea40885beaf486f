package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// NameResultKind discriminates the outcome of name lookup.
type NameResultKind int

const (
	UnknownName NameResultKind = iota
	FunctionName
	DataMemberName
	StaticDataMemberName
	EnumValueName
	GlobalName
	LocalName
	CaptureName
	NamespaceName
	TemplateName
	TypeName
	VariableName
	TemplateParameterName
)

// NameLookup is the discriminated result of resolving a name.
type NameLookup struct {
	Kind NameResultKind

	Functions []*types.Function
	Type      types.Type
	Namespace *types.Namespace

	Enum      *types.Enum
	EnumValue int

	MemberClass     *types.Class
	DataMemberIndex int
	StaticMember    *types.StaticDataMember

	GlobalIndex int
	GlobalType  types.Type

	Local Variable

	CaptureIndex int
	Capture      types.Capture

	ClassTemplate    *types.ClassTemplate
	FunctionTemplate *types.FunctionTemplate

	TemplateParam types.TemplateArg

	Variable *types.GlobalVariable
}

// TemplateNameProcessor instantiates class templates encountered during
// lookup; instantiation is memoized per argument tuple.
type TemplateNameProcessor interface {
	InstantiateClassTemplate(t *types.ClassTemplate, args []types.TemplateArg) (types.Type, error)
}

// NameResolver drives name lookup against a scope chain.
type NameResolver struct {
	TS  *types.TypeSystem
	TNP TemplateNameProcessor
}

// fundamentalKeyword maps the fundamental type keywords.
func fundamentalKeyword(name string) (types.Type, bool) {
	switch name {
	case "void":
		return types.Void, true
	case "bool":
		return types.Boolean, true
	case "char":
		return types.Char, true
	case "int":
		return types.Int, true
	case "float":
		return types.Float, true
	case "double":
		return types.Double, true
	case "auto":
		return types.Auto, true
	}
	return types.Null, false
}

// Resolve resolves an identifier against the scope chain.
func (r *NameResolver) Resolve(id ast.Identifier, scope *Scope) (NameLookup, error) {
	switch n := id.(type) {
	case *ast.SimpleIdentifier:
		if t, ok := fundamentalKeyword(n.Name()); ok {
			return NameLookup{Kind: TypeName, Type: t}, nil
		}
		return r.resolveSimple(n.Name(), scope, true), nil

	case *ast.TemplateIdentifier:
		return r.resolveTemplateId(n, scope)

	case *ast.ScopedIdentifier:
		return r.resolveScoped(n, scope)

	case *ast.OperatorName:
		fns := r.LookupOperators(n.Symbol.Text, -1, scope, nil)
		if len(fns) == 0 {
			return NameLookup{}, fail(CouldNotResolveOperatorName, n.Pos())
		}
		return NameLookup{Kind: FunctionName, Functions: fns}, nil

	case *ast.LiteralOperatorName:
		fns := r.LookupLiteralOperators(n.SuffixName(), scope)
		if len(fns) == 0 {
			return NameLookup{Kind: UnknownName}, nil
		}
		return NameLookup{Kind: FunctionName, Functions: fns}, nil
	}

	return NameLookup{}, fail(InvalidTypeName, id.Pos())
}

// resolveSimple asks each scope in the chain in turn; function names keep
// accumulating overloads from enclosing scopes.
func (r *NameResolver) resolveSimple(name string, scope *Scope, chainFallback bool) NameLookup {
	var functions []*types.Function

	for cur := scope; cur != nil; cur = cur.Parent {
		result := r.lookupLocal(name, cur)
		if result.Kind == FunctionName {
			functions = append(functions, result.Functions...)
			if !chainFallback {
				break
			}
			continue
		}
		if result.Kind != UnknownName {
			if len(functions) > 0 {
				// A closer function set shadows other entity kinds.
				return NameLookup{Kind: FunctionName, Functions: functions}
			}
			return result
		}
		if !chainFallback {
			break
		}
	}

	if len(functions) > 0 {
		return NameLookup{Kind: FunctionName, Functions: functions}
	}
	return NameLookup{Kind: UnknownName}
}

func (r *NameResolver) lookupLocal(name string, scope *Scope) NameLookup {
	// Injections are visible regardless of the variant.
	if fns, ok := scope.UsingDeclarations[name]; ok {
		return NameLookup{Kind: FunctionName, Functions: fns}
	}
	if t, ok := scope.TypeAliases[name]; ok {
		return NameLookup{Kind: TypeName, Type: t}
	}
	if ns, ok := scope.NamespaceAliases[name]; ok {
		return NameLookup{Kind: NamespaceName, Namespace: ns}
	}

	switch scope.Kind {
	case FunctionScope:
		return r.lookupFunctionLocal(name, scope)
	case TemplateScope:
		if arg, ok := scope.TemplateArgs[name]; ok {
			if arg.Kind == types.TypeArgument {
				return NameLookup{Kind: TypeName, Type: arg.Type, TemplateParam: arg}
			}
			return NameLookup{Kind: TemplateParameterName, TemplateParam: arg}
		}
	case ClassScope:
		return r.lookupInClass(name, scope.Class)
	case EnumScope:
		if v, ok := scope.Enum.Values[name]; ok {
			return NameLookup{Kind: EnumValueName, Enum: scope.Enum, EnumValue: v}
		}
	case ScriptScope, NamespaceScope, RootNamespaceScope:
		if result := r.lookupInNamespace(name, scope.Namespace); result.Kind != UnknownName {
			return result
		}
	}

	for _, ns := range scope.UsingDirectives {
		if result := r.lookupInNamespace(name, ns); result.Kind != UnknownName {
			return result
		}
	}

	return NameLookup{Kind: UnknownName}
}

func (r *NameResolver) lookupFunctionLocal(name string, scope *Scope) NameLookup {
	fc := scope.Compiler
	if fc == nil {
		return NameLookup{Kind: UnknownName}
	}
	if index := fc.stack.Find(name, scope.StackOffset); index >= 0 {
		return NameLookup{Kind: LocalName, Local: fc.stack.At(index)}
	}
	if fc.closure != nil {
		if index := fc.closure.CaptureIndex(name); index >= 0 {
			return NameLookup{
				Kind:         CaptureName,
				CaptureIndex: index,
				Capture:      fc.closure.Captures[index],
			}
		}
	}
	return NameLookup{Kind: UnknownName}
}

// lookupInClass searches the class's members, then walks the parent chain.
func (r *NameResolver) lookupInClass(name string, cls *types.Class) NameLookup {
	for cur := cls; cur != nil; cur = cur.Parent {
		if index := cur.AttributeIndex(name); index >= 0 {
			return NameLookup{Kind: DataMemberName, MemberClass: cls, DataMemberIndex: index}
		}
		if sm, ok := cur.StaticMembers[name]; ok {
			return NameLookup{Kind: StaticDataMemberName, MemberClass: cur, StaticMember: sm}
		}
		if fns := cur.FindMethods(name); len(fns) > 0 {
			return NameLookup{Kind: FunctionName, Functions: fns}
		}
		if nested, ok := cur.Classes[name]; ok {
			return NameLookup{Kind: TypeName, Type: nested.Type}
		}
		if e, ok := cur.Enums[name]; ok {
			return NameLookup{Kind: TypeName, Type: e.Type, Enum: e}
		}
		if t, ok := cur.Typedefs[name]; ok {
			return NameLookup{Kind: TypeName, Type: t}
		}
		for _, e := range cur.Enums {
			if !e.EnumClass && e.HasValue(name) {
				return NameLookup{Kind: EnumValueName, Enum: e, EnumValue: e.Values[name]}
			}
		}
	}
	return NameLookup{Kind: UnknownName}
}

func (r *NameResolver) lookupInNamespace(name string, ns *types.Namespace) NameLookup {
	if ns == nil {
		return NameLookup{Kind: UnknownName}
	}
	if c, ok := ns.Classes[name]; ok {
		return NameLookup{Kind: TypeName, Type: c.Type}
	}
	if e, ok := ns.Enums[name]; ok {
		return NameLookup{Kind: TypeName, Type: e.Type, Enum: e}
	}
	if t, ok := ns.Typedefs[name]; ok {
		return NameLookup{Kind: TypeName, Type: t}
	}
	if fns, ok := ns.Functions[name]; ok {
		return NameLookup{Kind: FunctionName, Functions: fns}
	}
	if v, ok := ns.Variables[name]; ok {
		return NameLookup{Kind: VariableName, Variable: v, GlobalIndex: v.Index, GlobalType: v.Type}
	}
	if t, ok := ns.ClassTemplates[name]; ok {
		return NameLookup{Kind: TemplateName, ClassTemplate: t}
	}
	if t, ok := ns.FunctionTemplates[name]; ok {
		return NameLookup{Kind: TemplateName, FunctionTemplate: t}
	}
	if child, ok := ns.Namespaces[name]; ok {
		return NameLookup{Kind: NamespaceName, Namespace: child}
	}
	if alias, ok := ns.NamespaceAliases[name]; ok {
		return NameLookup{Kind: NamespaceName, Namespace: alias}
	}
	for _, e := range ns.Enums {
		if !e.EnumClass && e.HasValue(name) {
			return NameLookup{Kind: EnumValueName, Enum: e, EnumValue: e.Values[name]}
		}
	}
	return NameLookup{Kind: UnknownName}
}

// resolveScoped resolves A::B: A resolves unqualifiedly to a scope-like
// entity, then B resolves inside it without chain fallback.
func (r *NameResolver) resolveScoped(id *ast.ScopedIdentifier, scope *Scope) (NameLookup, error) {
	lhs, err := r.Resolve(id.Lhs, scope)
	if err != nil {
		return NameLookup{}, err
	}

	switch lhs.Kind {
	case NamespaceName:
		return r.resolveInNamespaceMember(id.Rhs, lhs.Namespace, scope)

	case TypeName:
		if lhs.Enum != nil || lhs.Type.IsEnumType() {
			e := lhs.Enum
			if e == nil {
				e = r.TS.GetEnum(lhs.Type)
			}
			simple, ok := id.Rhs.(*ast.SimpleIdentifier)
			if !ok {
				return NameLookup{}, fail(InvalidTypeName, id.Rhs.Pos())
			}
			if v, ok := e.Values[simple.Name()]; ok {
				return NameLookup{Kind: EnumValueName, Enum: e, EnumValue: v}, nil
			}
			return NameLookup{Kind: UnknownName}, nil
		}
		if cls := r.TS.GetClass(lhs.Type); cls != nil {
			return r.resolveInClassMember(id.Rhs, cls, scope)
		}
	}

	return NameLookup{}, fail(InvalidTypeName, id.Pos())
}

func (r *NameResolver) resolveInNamespaceMember(rhs ast.Identifier, ns *types.Namespace, scope *Scope) (NameLookup, error) {
	switch n := rhs.(type) {
	case *ast.SimpleIdentifier:
		return r.lookupInNamespace(n.Name(), ns), nil
	case *ast.TemplateIdentifier:
		nsScope := NewNamespaceScope(ns, nil)
		return r.resolveTemplateId(n, nsScope)
	case *ast.ScopedIdentifier:
		lhs, err := r.resolveInNamespaceMember(n.Lhs, ns, scope)
		if err != nil {
			return NameLookup{}, err
		}
		if lhs.Kind == NamespaceName {
			return r.resolveInNamespaceMember(n.Rhs, lhs.Namespace, scope)
		}
		if lhs.Kind == TypeName {
			if cls := r.TS.GetClass(lhs.Type); cls != nil {
				return r.resolveInClassMember(n.Rhs, cls, scope)
			}
		}
		return NameLookup{}, fail(InvalidTypeName, n.Pos())
	case *ast.OperatorName:
		var fns []*types.Function
		for _, f := range ns.Operators {
			if f.OperatorSymbol == n.Symbol.Text {
				fns = append(fns, f)
			}
		}
		return NameLookup{Kind: FunctionName, Functions: fns}, nil
	case *ast.LiteralOperatorName:
		var fns []*types.Function
		for _, f := range ns.LiteralOperators {
			if f.Suffix == n.SuffixName() {
				fns = append(fns, f)
			}
		}
		return NameLookup{Kind: FunctionName, Functions: fns}, nil
	}
	return NameLookup{}, fail(InvalidTypeName, rhs.Pos())
}

func (r *NameResolver) resolveInClassMember(rhs ast.Identifier, cls *types.Class, scope *Scope) (NameLookup, error) {
	switch n := rhs.(type) {
	case *ast.SimpleIdentifier:
		return r.lookupInClass(n.Name(), cls), nil
	case *ast.OperatorName:
		var fns []*types.Function
		for cur := cls; cur != nil; cur = cur.Parent {
			for _, f := range cur.Operators {
				if f.OperatorSymbol == n.Symbol.Text {
					fns = append(fns, f)
				}
			}
		}
		return NameLookup{Kind: FunctionName, Functions: fns}, nil
	}
	return NameLookup{}, fail(InvalidTypeName, rhs.Pos())
}

// resolveTemplateId resolves F<args>: F must name a class template; the
// template-name processor instantiates or finds the memoized instance.
func (r *NameResolver) resolveTemplateId(id *ast.TemplateIdentifier, scope *Scope) (NameLookup, error) {
	base := r.resolveSimple(id.Name(), scope, true)
	if base.Kind != TemplateName || base.ClassTemplate == nil {
		if base.Kind == TemplateName && base.FunctionTemplate != nil {
			return NameLookup{}, fail(CouldNotFindPrimaryClassTemplate, id.Pos())
		}
		return NameLookup{}, fail(InvalidTypeName, id.Pos())
	}

	args, err := r.ResolveTemplateArgs(base.ClassTemplate.Params, id.Args, scope)
	if err != nil {
		return NameLookup{}, err
	}

	t, err := r.TNP.InstantiateClassTemplate(base.ClassTemplate, args)
	if err != nil {
		return NameLookup{}, err
	}
	return NameLookup{Kind: TypeName, Type: t}, nil
}

// ResolveTemplateArgs maps syntactic template arguments onto the declared
// parameters, filling trailing defaults.
func (r *NameResolver) ResolveTemplateArgs(params []types.TemplateParameter, args []ast.Node, scope *Scope) ([]types.TemplateArg, error) {
	if len(args) > len(params) {
		return nil, fail(InvalidTemplateArgument, argPos(args, len(params)))
	}

	var out []types.TemplateArg
	for i, param := range params {
		if i < len(args) {
			arg, err := r.resolveTemplateArg(param, args[i], scope)
			if err != nil {
				return nil, err
			}
			out = append(out, arg)
			continue
		}
		if !param.HasDefault() {
			return nil, fail(MissingNonDefaultedTemplateParameter, 0)
		}
		arg, err := r.resolveTemplateArg(param, param.Default, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

func argPos(args []ast.Node, i int) int {
	if i < len(args) {
		return args[i].Pos()
	}
	if len(args) > 0 {
		return args[len(args)-1].Pos()
	}
	return 0
}

func (r *NameResolver) resolveTemplateArg(param types.TemplateParameter, node ast.Node, scope *Scope) (types.TemplateArg, error) {
	switch param.Kind {
	case types.TypeTemplateParam:
		switch n := node.(type) {
		case *ast.TypeNode:
			t, err := r.ResolveType(n.Value, scope)
			if err != nil {
				return types.TemplateArg{}, err
			}
			return types.TypeArg(t), nil
		case ast.Identifier:
			result, err := r.Resolve(n, scope)
			if err != nil {
				return types.TemplateArg{}, err
			}
			if result.Kind == TypeName {
				return types.TypeArg(result.Type), nil
			}
		}
		return types.TemplateArg{}, fail(InvalidTemplateArgument, node.Pos())

	case types.IntTemplateParam:
		if n, ok := node.(*ast.IntegerLiteral); ok {
			v, err := ParseIntegerLiteral(n.Tok.Text)
			if err != nil {
				return types.TemplateArg{}, fail(InvalidLiteralTemplateArgument, node.Pos())
			}
			return types.IntArg(v), nil
		}
		if op, ok := node.(*ast.Operation); ok && !op.IsBinary() && op.OperatorTok.Text == "-" {
			if n, ok := op.Arg1.(*ast.IntegerLiteral); ok {
				v, err := ParseIntegerLiteral(n.Tok.Text)
				if err != nil {
					return types.TemplateArg{}, fail(InvalidLiteralTemplateArgument, node.Pos())
				}
				return types.IntArg(-v), nil
			}
		}
		return types.TemplateArg{}, fail(InvalidLiteralTemplateArgument, node.Pos())

	case types.BoolTemplateParam:
		if n, ok := node.(*ast.BoolLiteral); ok {
			return types.BoolArg(n.Value()), nil
		}
		return types.TemplateArg{}, fail(InvalidLiteralTemplateArgument, node.Pos())
	}
	return types.TemplateArg{}, fail(InvalidTemplateArgument, node.Pos())
}

// ResolveType resolves a syntactic qualified type to a type handle.
func (r *NameResolver) ResolveType(qt ast.QualifiedType, scope *Scope) (types.Type, error) {
	var t types.Type

	if qt.FunctionType != nil {
		rt, err := r.ResolveType(qt.FunctionType.ReturnType, scope)
		if err != nil {
			return types.Null, err
		}
		proto := types.Prototype{ReturnType: rt}
		for _, p := range qt.FunctionType.Params {
			pt, err := r.ResolveType(p, scope)
			if err != nil {
				return types.Null, err
			}
			proto.Params = append(proto.Params, pt)
		}
		t = r.TS.GetFunctionType(proto)
	} else {
		result, err := r.Resolve(qt.Name, scope)
		if err != nil {
			return types.Null, err
		}
		if result.Kind != TypeName {
			return types.Null, fail(InvalidTypeName, qt.Name.Pos())
		}
		t = result.Type
	}

	if qt.IsConst() {
		t = t.WithConst()
	}
	if qt.IsRef() {
		t = types.Ref(t)
	}
	return t, nil
}

// LookupOperators enumerates the operators with a symbol visible from a
// scope; operand types contribute their member operators and, ADL-like, the
// operators of their enclosing namespaces. arity < 0 accepts any arity.
func (r *NameResolver) LookupOperators(symbol string, arity int, scope *Scope, operands []types.Type) []*types.Function {
	seen := map[*types.Function]bool{}
	var out []*types.Function
	add := func(f *types.Function) {
		if f.OperatorSymbol != symbol || seen[f] {
			return
		}
		if arity >= 0 && f.Proto.ParamCount() != arity {
			return
		}
		seen[f] = true
		out = append(out, f)
	}

	for cur := scope; cur != nil; cur = cur.Parent {
		if cur.Namespace != nil {
			for _, f := range cur.Namespace.Operators {
				add(f)
			}
		}
		if cur.Kind == ClassScope {
			for cls := cur.Class; cls != nil; cls = cls.Parent {
				for _, f := range cls.Operators {
					add(f)
				}
			}
		}
		for _, ns := range cur.UsingDirectives {
			for _, f := range ns.Operators {
				add(f)
			}
		}
	}

	for _, t := range operands {
		if cls := r.TS.GetClass(t); cls != nil {
			for cur := cls; cur != nil; cur = cur.Parent {
				for _, f := range cur.Operators {
					add(f)
				}
				if cur.EnclosingNamespace != nil {
					for _, f := range cur.EnclosingNamespace.Operators {
						add(f)
					}
				}
			}
		}
		if e := r.TS.GetEnum(t); e != nil && e.EnclosingNamespace != nil {
			for _, f := range e.EnclosingNamespace.Operators {
				add(f)
			}
		}
	}

	return out
}

// LookupLiteralOperators finds the literal operators handling a suffix.
func (r *NameResolver) LookupLiteralOperators(suffix string, scope *Scope) []*types.Function {
	seen := map[*types.Function]bool{}
	var out []*types.Function
	for cur := scope; cur != nil; cur = cur.Parent {
		if cur.Namespace != nil {
			for _, f := range cur.Namespace.LiteralOperators {
				if f.Suffix == suffix && !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
		for _, ns := range cur.UsingDirectives {
			for _, f := range ns.LiteralOperators {
				if f.Suffix == suffix && !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
	}
	return out
}
