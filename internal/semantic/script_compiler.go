package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/parser"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// compilerSession groups the state shared by every compiler of one
// compilation unit.
type compilerSession struct {
	engine    *engine.Engine
	script    *engine.Script
	resolver  *NameResolver
	templates *TemplateProcessor
	sc        *ScriptCompiler
}

// declTask is one queued top-level declaration. Declarations whose type
// names do not resolve yet are re-queued for a later pass.
type declTask struct {
	node  ast.Statement
	scope *Scope
	ns    *types.Namespace
}

// ScriptCompiler walks the AST of a script, builds classes, enums and
// namespaces, registers functions with stub bodies, then compiles every
// function body in a deferred pass.
type ScriptCompiler struct {
	cs *compilerSession

	queue     []declTask
	funcTasks []CompileFunctionTask

	// rootStatements collects the imperative top-level statements and
	// global variable initializations, compiled into the script's root
	// function last.
	rootStatements []rootItem

	rootScope   *Scope
	scriptScope *Scope
}

type rootItem struct {
	stmt   ast.Statement
	global *globalInit
}

type globalInit struct {
	decl  *ast.VariableDecl
	index int
	typ   types.Type
}

// Compile runs the full compilation of a script: parse, declaration
// passes, deferred function-body compilation. The script is marked failed
// iff any error diagnostic was produced.
func Compile(e *engine.Engine, s *engine.Script) error {
	if err := e.BeginSession(); err != nil {
		return err
	}
	defer e.EndSession()

	cs := &compilerSession{engine: e, script: s}
	cs.templates = &TemplateProcessor{cs: cs}
	cs.resolver = &NameResolver{TS: e.TypeSystem, TNP: cs.templates}
	sc := &ScriptCompiler{cs: cs}
	cs.sc = sc

	tree, err := parser.Parse(s.Source)
	if err != nil {
		sc.reportParseError(err)
		return nil
	}
	s.Ast = tree

	sc.rootScope = NewRootScope(e.Root)
	sc.scriptScope = NewScriptScope(s, sc.rootScope)

	for _, stmt := range tree.Root.Statements {
		sc.queue = append(sc.queue, declTask{node: stmt, scope: sc.scriptScope, ns: s.Namespace})
	}

	sc.runPasses()
	sc.compileFunctions()
	sc.compileRootFunction()

	s.Compiled = !s.HasErrors()
	return nil
}

func (sc *ScriptCompiler) report(f *CompilationFailure) {
	sc.cs.script.AddDiagnostic(engine.Diagnostic{
		Severity: engine.Error,
		Code:     f.Code.String(),
		Offset:   f.Offset,
		Message:  f.Error(),
	})
}

func (sc *ScriptCompiler) reportParseError(err error) {
	d := engine.Diagnostic{Severity: engine.Error, Code: "SyntaxError", Message: err.Error()}
	if se, ok := err.(*parser.SyntaxError); ok {
		d.Code = se.Code.String()
		d.Offset = se.Offset
	}
	sc.cs.script.AddDiagnostic(d)
}

// runPasses processes the declaration queue until it drains or a full
// iteration makes no progress; leftover failures are then reported.
func (sc *ScriptCompiler) runPasses() {
	for len(sc.queue) > 0 {
		var requeued []declTask
		var failures []*CompilationFailure
		progress := false

		for _, task := range sc.queue {
			err := sc.processDeclaration(task)
			if err == nil {
				progress = true
				continue
			}
			if cf, ok := err.(*CompilationFailure); ok {
				if cf.IsRetryable() {
					requeued = append(requeued, task)
					failures = append(failures, cf)
					continue
				}
				sc.report(cf)
				progress = true
				continue
			}
			sc.report(failx(SyntaxError, task.node.Pos(), err.Error()))
			progress = true
		}

		sc.queue = requeued
		if !progress {
			for _, cf := range failures {
				sc.report(cf)
			}
			sc.queue = nil
		}
	}
}

// processDeclaration dispatches one top-level statement.
func (sc *ScriptCompiler) processDeclaration(task declTask) error {
	switch n := task.node.(type) {
	case *ast.ClassDecl:
		_, err := sc.buildClass(n, task.scope, task.ns)
		return err

	case *ast.EnumDecl:
		_, err := sc.buildEnum(n, task.scope, task.ns)
		return err

	case *ast.ConstructorDecl, *ast.DestructorDecl:
		return fail(ExpectedDeclaration, task.node.Pos())

	case *ast.CastDecl:
		return fail(OpOverloadMustBeDeclaredAsMember, n.Pos())

	case *ast.OperatorOverloadDecl:
		return sc.declareFreeOperator(n, task.scope, task.ns)

	case *ast.FunctionDecl:
		return sc.declareFreeFunction(n, task.scope, task.ns)

	case *ast.VariableDecl:
		return sc.declareGlobal(n, task.scope, task.ns)

	case *ast.NamespaceDecl:
		return sc.processNamespace(n, task)

	case *ast.Typedef:
		t, err := sc.cs.resolver.ResolveType(n.QualType, task.scope)
		if err != nil {
			return err
		}
		task.ns.Typedefs[n.Name.Text] = t
		return nil

	case *ast.TypeAliasDeclaration:
		result, err := sc.cs.resolver.Resolve(n.Name, task.scope)
		if err != nil {
			return err
		}
		if result.Kind != TypeName {
			return fail(InvalidTypeName, n.Name.Pos())
		}
		task.ns.Typedefs[n.Alias.Text] = result.Type
		return nil

	case *ast.UsingDirective:
		result, err := sc.cs.resolver.Resolve(n.Name, task.scope)
		if err != nil {
			return err
		}
		if result.Kind != NamespaceName {
			return fail(InvalidNameInUsingDirective, n.Name.Pos())
		}
		task.scope.InjectUsingDirective(result.Namespace)
		return nil

	case *ast.UsingDeclaration:
		result, err := sc.cs.resolver.Resolve(n.Name, task.scope)
		if err != nil {
			return err
		}
		if result.Kind != FunctionName {
			return fail(InvalidNameInUsingDirective, n.Name.Pos())
		}
		name := result.Functions[0].Name
		task.scope.InjectUsingDeclaration(name, result.Functions)
		return nil

	case *ast.NamespaceAliasDefinition:
		result, err := sc.cs.resolver.Resolve(n.Name, task.scope)
		if err != nil {
			return err
		}
		if result.Kind != NamespaceName {
			return fail(InvalidNameInUsingDirective, n.Name.Pos())
		}
		task.ns.NamespaceAliases[n.Alias.Text] = result.Namespace
		return nil

	case *ast.TemplateDecl:
		return sc.declareTemplate(n, task.scope, task.ns)

	case *ast.ImportDirective:
		return sc.processImport(n)

	case *ast.FriendDeclaration:
		return fail(FriendMustBeAClass, n.Pos())

	case *ast.AccessSpecifier:
		return fail(ExpectedDeclaration, n.Pos())
	}

	// Imperative top-level statement: deferred into the root function.
	sc.rootStatements = append(sc.rootStatements, rootItem{stmt: task.node})
	return nil
}

func (sc *ScriptCompiler) processNamespace(n *ast.NamespaceDecl, task declTask) error {
	if task.scope.Kind == FunctionScope || task.scope.Kind == ClassScope {
		return fail(NamespaceDeclarationCannotAppearAtThisLevel, n.Pos())
	}
	child := task.ns.ChildNamespace(n.Name.Text)
	childScope := NewNamespaceScope(child, task.scope)
	for _, stmt := range n.Statements {
		if err := sc.processDeclaration(declTask{node: stmt, scope: childScope, ns: child}); err != nil {
			return err
		}
	}
	return nil
}

func (sc *ScriptCompiler) processImport(n *ast.ImportDirective) error {
	name := n.ModuleName()
	if loaded := sc.cs.engine.FindModule(name); loaded != nil {
		sc.scriptScope.InjectUsingDirective(loaded.Namespace)
		return nil
	}
	if sc.cs.engine.Loader == nil {
		return failx(UnknownModuleName, n.Pos(), name)
	}
	loaded, err := sc.cs.engine.Loader.Load(sc.cs.engine, name)
	if err != nil {
		return failx(ModuleImportationFailed, n.Pos(), err.Error())
	}
	if loaded == nil {
		return failx(UnknownModuleName, n.Pos(), name)
	}
	loaded.ModuleName = name
	sc.scriptScope.InjectUsingDirective(loaded.Namespace)
	return nil
}

// resolveSignature resolves a declared function signature into a prototype.
func (sc *ScriptCompiler) resolveSignature(decl *ast.FunctionDecl, scope *Scope) (types.Prototype, error) {
	var proto types.Prototype
	if decl.ReturnType.IsNull() {
		proto.ReturnType = types.Void
	} else {
		rt, err := sc.cs.resolver.ResolveType(decl.ReturnType, scope)
		if err != nil {
			return proto, err
		}
		proto.ReturnType = rt
	}
	for _, p := range decl.Params {
		pt, err := sc.cs.resolver.ResolveType(p.Type, scope)
		if err != nil {
			return proto, err
		}
		proto.Params = append(proto.Params, pt)
	}
	return proto, nil
}

func functionFlags(decl *ast.FunctionDecl) types.FunctionFlags {
	var flags types.FunctionFlags
	if decl.Specifiers.Static.IsValid() {
		flags |= types.StaticFlag
	}
	if decl.Specifiers.Virtual.IsValid() {
		flags |= types.VirtualFlag
	}
	if decl.Specifiers.Explicit.IsValid() {
		flags |= types.ExplicitFlag
	}
	if decl.ConstQual.IsValid() {
		flags |= types.ConstMemberFlag
	}
	switch decl.BodyKind {
	case ast.BodyDeleted:
		flags |= types.DeletedFlag
	case ast.BodyDefaulted:
		flags |= types.DefaultedFlag
	case ast.BodyPure:
		flags |= types.VirtualFlag | types.PureFlag
	}
	return flags
}

func countDefaults(decl *ast.FunctionDecl) int {
	n := 0
	for _, p := range decl.Params {
		if p.DefaultValue != nil {
			n++
		}
	}
	return n
}

// scheduleBody queues a function body for the deferred pass; default
// arguments compile there too.
func (sc *ScriptCompiler) scheduleBody(f *types.Function, decl *ast.FunctionDecl, node ast.Declaration, scope *Scope) {
	sc.funcTasks = append(sc.funcTasks, CompileFunctionTask{Function: f, Decl: decl, Node: node, Scope: scope})
}

func (sc *ScriptCompiler) declareFreeFunction(decl *ast.FunctionDecl, scope *Scope, ns *types.Namespace) error {
	// Literal operators reach here with their operator name.
	if lon, ok := decl.Name.(*ast.LiteralOperatorName); ok {
		return sc.declareLiteralOperator(decl, lon, scope, ns)
	}

	if decl.Specifiers.Virtual.IsValid() {
		return fail(InvalidUseOfVirtualKeyword, decl.Pos())
	}
	if decl.Specifiers.Explicit.IsValid() {
		return fail(InvalidUseOfExplicitKeyword, decl.Pos())
	}
	if decl.ConstQual.IsValid() {
		return fail(InvalidUseOfConstKeyword, decl.Pos())
	}

	proto, err := sc.resolveSignature(decl, scope)
	if err != nil {
		return err
	}

	name := decl.Name.TokenLiteral()
	f := types.NewFunction(name, proto)
	if decl.BodyKind == ast.BodyDeleted {
		f.Flags |= types.DeletedFlag
	}
	f.DefaultArgs = make([]any, 0, countDefaults(decl))
	ns.AddFunction(f)
	sc.cs.script.Functions = append(sc.cs.script.Functions, f)

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

// normalizeOperator adjusts postfix increment/decrement declared with the
// dummy int parameter and validates arity.
func normalizeOperator(symbol string, decl *ast.FunctionDecl, member bool) (string, int, error) {
	params := len(decl.Params)
	if member {
		params++ // implicit object
	}

	if symbol == "++" || symbol == "--" {
		expected := 1
		if params == expected+1 {
			last := decl.Params[len(decl.Params)-1]
			if simple, ok := last.Type.Name.(*ast.SimpleIdentifier); ok && simple.Name() == "int" && !last.Name.IsValid() {
				return symbol + "post", expected, nil
			}
		}
		if params != expected {
			return "", 0, fail(InvalidParamCountInOperatorOverload, decl.Pos())
		}
		return symbol, expected, nil
	}

	switch symbol {
	case "!", "~":
		if params != 1 {
			return "", 0, fail(InvalidParamCountInOperatorOverload, decl.Pos())
		}
		return symbol, 1, nil
	case "()", "[]":
		return symbol, params, nil
	case "+", "-":
		if params != 1 && params != 2 {
			return "", 0, fail(InvalidParamCountInOperatorOverload, decl.Pos())
		}
		return symbol, params, nil
	default:
		if params != 2 {
			return "", 0, fail(InvalidParamCountInOperatorOverload, decl.Pos())
		}
		return symbol, 2, nil
	}
}

func (sc *ScriptCompiler) declareFreeOperator(decl *ast.OperatorOverloadDecl, scope *Scope, ns *types.Namespace) error {
	opName, ok := decl.Name.(*ast.OperatorName)
	if !ok {
		if lon, isLit := decl.Name.(*ast.LiteralOperatorName); isLit {
			return sc.declareLiteralOperator(&decl.FunctionDecl, lon, scope, ns)
		}
		return fail(CouldNotResolveOperatorName, decl.Pos())
	}

	symbol := opName.Symbol.Text
	switch symbol {
	case "=", "()", "[]":
		return fail(OpOverloadMustBeDeclaredAsMember, decl.Pos())
	}

	symbol, _, err := normalizeOperator(symbol, &decl.FunctionDecl, false)
	if err != nil {
		return err
	}

	// A postfix operator drops its dummy parameter.
	fdecl := decl.FunctionDecl
	if symbol == "++post" || symbol == "--post" {
		fdecl.Params = fdecl.Params[:len(fdecl.Params)-1]
	}

	proto, err := sc.resolveSignature(&fdecl, scope)
	if err != nil {
		return err
	}

	f := types.NewFunction("operator"+symbol, proto)
	f.Kind = types.OperatorFunction
	f.OperatorSymbol = symbol
	f.Flags = functionFlags(&decl.FunctionDecl) &^ types.VirtualFlag
	ns.AddOperator(f)
	sc.cs.script.Functions = append(sc.cs.script.Functions, f)

	if decl.Body != nil {
		sc.scheduleBody(f, &fdecl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) declareLiteralOperator(decl *ast.FunctionDecl, lon *ast.LiteralOperatorName, scope *Scope, ns *types.Namespace) error {
	proto, err := sc.resolveSignature(decl, scope)
	if err != nil {
		return err
	}
	f := types.NewFunction("operator\"\""+lon.SuffixName(), proto)
	f.Kind = types.LiteralOperatorFunction
	f.Suffix = lon.SuffixName()
	ns.AddLiteralOperator(f)
	sc.cs.script.Functions = append(sc.cs.script.Functions, f)

	if decl.Body != nil {
		sc.scheduleBody(f, decl, decl, scope)
	}
	return nil
}

func (sc *ScriptCompiler) declareGlobal(decl *ast.VariableDecl, scope *Scope, ns *types.Namespace) error {
	isAuto := false
	if decl.VarType.Name != nil {
		if simple, ok := decl.VarType.Name.(*ast.SimpleIdentifier); ok && simple.Name() == "auto" {
			isAuto = true
		}
	}
	if isAuto {
		return fail(GlobalVariablesCannotBeAuto, decl.Pos())
	}

	t, err := sc.cs.resolver.ResolveType(decl.VarType, scope)
	if err != nil {
		return err
	}

	if decl.Init == nil && sc.cs.engine.TypeSystem.GetClass(t) == nil {
		return fail(GlobalVariablesMustBeInitialized, decl.Pos())
	}

	index := sc.cs.script.AddGlobal(decl.Name.Text, t)
	ns.Variables[decl.Name.Text] = &types.GlobalVariable{Name: decl.Name.Text, Type: t, Index: index}

	sc.rootStatements = append(sc.rootStatements, rootItem{
		global: &globalInit{decl: decl, index: index, typ: t},
	})
	return nil
}

func (sc *ScriptCompiler) declareTemplate(decl *ast.TemplateDecl, scope *Scope, ns *types.Namespace) error {
	var params []types.TemplateParameter
	for _, p := range decl.Params {
		kind := types.TypeTemplateParam
		switch p.Kind.Kind {
		case token.Int:
			kind = types.IntTemplateParam
		case token.Bool:
			kind = types.BoolTemplateParam
		}
		params = append(params, types.TemplateParameter{Kind: kind, Name: p.Name.Text, Default: p.DefaultValue})
	}

	if cd, ok := decl.Decl.(*ast.ClassDecl); ok {
		name := cd.Name.TokenLiteral()
		if tid, isSpec := cd.Name.(*ast.TemplateIdentifier); isSpec {
			primary, ok := ns.ClassTemplates[tid.Name()]
			if !ok {
				return fail(CouldNotFindPrimaryClassTemplate, decl.Pos())
			}
			primary.Specializations = append(primary.Specializations, decl)
			return nil
		}
		t := types.NewClassTemplate(name, params, ns)
		t.Decl = decl
		t.DeclAST = sc.cs.script.Ast
		ns.ClassTemplates[name] = t
		return nil
	}

	if fd, ok := decl.Decl.(*ast.FunctionDecl); ok {
		name := fd.Name.TokenLiteral()
		if _, exists := ns.FunctionTemplates[name]; exists {
			return fail(CouldNotFindPrimaryFunctionTemplate, decl.Pos())
		}
		t := types.NewFunctionTemplate(name, params, ns)
		t.Decl = decl
		t.DeclAST = sc.cs.script.Ast
		ns.FunctionTemplates[name] = t
		return nil
	}

	return fail(ExpectedDeclaration, decl.Pos())
}

// instantiateFunction materializes one function-template instance and
// compiles its body immediately.
func (sc *ScriptCompiler) instantiateFunction(t *types.FunctionTemplate, decl *ast.FunctionDecl, argScope *Scope) (*types.Function, error) {
	proto, err := sc.resolveSignature(decl, argScope)
	if err != nil {
		return nil, err
	}
	f := types.NewFunction(t.Name, proto)
	f.Namespace = t.Enclosing

	if decl.Body != nil {
		fc := NewFunctionCompiler(sc.cs, CompileFunctionTask{Function: f, Decl: decl, Node: decl, Scope: argScope})
		if err := fc.Compile(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// compileFunctions runs the deferred pass over every scheduled function
// body; template instantiation may append further tasks while iterating.
// Default arguments compile first so overload resolution inside any body
// sees every function's true default count.
func (sc *ScriptCompiler) compileFunctions() {
	for _, task := range sc.funcTasks {
		if err := sc.compileDefaultArgs(task); err != nil {
			if cf, ok := err.(*CompilationFailure); ok {
				sc.report(cf)
			} else {
				sc.report(failx(SyntaxError, 0, err.Error()))
			}
		}
	}

	for i := 0; i < len(sc.funcTasks); i++ {
		task := sc.funcTasks[i]
		if err := sc.compileFunctionTask(task); err != nil {
			if cf, ok := err.(*CompilationFailure); ok {
				// Implicit special members that cannot be synthesized are
				// deleted, not reported.
				if task.Decl == nil {
					task.Function.Flags |= types.DeletedFlag
					continue
				}
				sc.report(cf)
				continue
			}
			sc.report(failx(SyntaxError, 0, err.Error()))
		}
	}
}

func (sc *ScriptCompiler) compileFunctionTask(task CompileFunctionTask) error {
	if err := sc.compileDefaultArgs(task); err != nil {
		return err
	}
	fc := NewFunctionCompiler(sc.cs, task)
	return fc.Compile()
}

// compileDefaultArgs compiles the default values of trailing parameters.
func (sc *ScriptCompiler) compileDefaultArgs(task CompileFunctionTask) error {
	if task.Decl == nil || len(task.Function.DefaultArgs) > 0 {
		return nil
	}

	ec := NewExpressionCompiler(sc.cs, task.Scope, nil)
	vc := &ValueConstructor{ec: ec}

	sawDefault := false
	implicitOffset := task.Function.Proto.ParamCount() - len(task.Decl.Params)
	for i, p := range task.Decl.Params {
		if p.DefaultValue == nil {
			if sawDefault {
				return fail(InvalidUseOfDefaultArgument, task.Decl.Pos())
			}
			continue
		}
		sawDefault = true
		expr, err := ec.Compile(p.DefaultValue)
		if err != nil {
			return err
		}
		paramType := task.Function.Proto.Params[implicitOffset+i]
		init := ComputeExprInit(paramType, expr, sc.cs.engine.TypeSystem)
		if !init.IsValid() {
			return fail(CouldNotConvert, p.DefaultValue.Pos())
		}
		converted, err := vc.ConstructFromInit(paramType, expr, init, p.DefaultValue.Pos())
		if err != nil {
			return err
		}
		task.Function.DefaultArgs = append(task.Function.DefaultArgs, converted)
	}
	return nil
}

// compileRootFunction compiles the imperative top-level statements and the
// global variable initializations, in source order, into the script's root
// function.
func (sc *ScriptCompiler) compileRootFunction() {
	if len(sc.rootStatements) == 0 {
		return
	}

	root := types.NewFunction("__script__", types.NewPrototype(types.Void))
	fc := NewFunctionCompiler(sc.cs, CompileFunctionTask{Function: root, Scope: sc.scriptScope})

	body := &program.CompoundStatement{}
	fc.enterScope(FunctionArguments)
	fc.stack.Push("", types.Void)
	fc.enterScope(FunctionBody)

	for _, item := range sc.rootStatements {
		var err error
		if item.global != nil {
			err = sc.compileGlobalInit(fc, item.global, &body.Statements)
		} else {
			err = fc.compileStatement(item.stmt, &body.Statements)
		}
		if err != nil {
			if cf, ok := err.(*CompilationFailure); ok {
				sc.report(cf)
			} else {
				sc.report(failx(SyntaxError, 0, err.Error()))
			}
		}
	}

	fc.leaveScope(&body.Statements)
	fc.leaveScope(&body.Statements)
	root.Body = body
	sc.cs.script.Functions = append(sc.cs.script.Functions, root)
}

func (sc *ScriptCompiler) compileGlobalInit(fc *FunctionCompiler, g *globalInit, out *[]program.Statement) error {
	ec := fc.expressionCompiler()
	vc := &ValueConstructor{ec: ec}

	var value program.Expression
	var err error
	switch init := g.decl.Init.(type) {
	case nil:
		value, err = vc.DefaultConstruct(g.typ, g.decl.Pos())
	case *ast.AssignmentInitialization:
		var expr program.Expression
		expr, err = ec.Compile(init.Value)
		if err == nil {
			plan := ComputeExprInit(g.typ, expr, fc.ts())
			if !plan.IsValid() {
				return fail(CouldNotConvert, init.Value.Pos())
			}
			value, err = vc.ConstructFromInit(g.typ, expr, plan, init.Value.Pos())
		}
	case *ast.ConstructorInitialization:
		var args []program.Expression
		args, err = ec.compileArgs(init.Args)
		if err == nil {
			value, err = vc.Construct(g.typ, args, true, g.decl.Pos())
		}
	case *ast.BraceInitialization:
		var args []program.Expression
		args, err = ec.compileArgs(init.Args)
		if err == nil {
			value, err = vc.BraceConstruct(g.typ, args, g.decl.Pos())
		}
	default:
		return fail(GlobalVariablesMustBeAssigned, g.decl.Pos())
	}
	if err != nil {
		return err
	}

	index := fc.stack.Push(g.decl.Name.Text, g.typ)
	*out = append(*out,
		&program.PushValue{T: g.typ, Name: g.decl.Name.Text, Value: value, StackIndex: index},
		&program.PushGlobal{GlobalIndex: g.index, T: g.typ},
	)
	return nil
}
