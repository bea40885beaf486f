package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// CompileFunctionTask schedules one function body for compilation.
type CompileFunctionTask struct {
	Function *types.Function
	Decl     *ast.FunctionDecl
	// Node is the concrete declaration; constructor declarations carry
	// their member initializer list here.
	Node  ast.Declaration
	Scope *Scope
}

// FunctionCompiler builds the program tree of one function body. Scope
// entry and exit are explicit: the stack is shrunk and destructors emitted
// on every normal, break, continue and return exit; the IR visitor performs
// no implicit cleanup.
type FunctionCompiler struct {
	cs       *compilerSession
	function *types.Function
	decl     *ast.FunctionDecl
	declNode ast.Declaration
	scope    *Scope
	stack    Stack
	closure  *types.ClosureType
}

// NewFunctionCompiler creates a function compiler for a task.
func NewFunctionCompiler(cs *compilerSession, task CompileFunctionTask) *FunctionCompiler {
	return &FunctionCompiler{
		cs:       cs,
		function: task.Function,
		decl:     task.Decl,
		declNode: task.Node,
		scope:    task.Scope,
	}
}

func (fc *FunctionCompiler) ts() *types.TypeSystem { return fc.cs.engine.TypeSystem }

func (fc *FunctionCompiler) expressionCompiler() *ExpressionCompiler {
	return NewExpressionCompiler(fc.cs, fc.scope, fc)
}

func (fc *FunctionCompiler) hasThis() bool {
	if fc.closure != nil {
		return true
	}
	return fc.function.IsMember() && !fc.function.IsStatic()
}

// thisSlot returns the stack index of the implicit object; destructors have
// no return-value slot, so theirs sits at 0.
func (fc *FunctionCompiler) thisSlot() int {
	if fc.function.IsDestructor() {
		return 0
	}
	return 1
}

func (fc *FunctionCompiler) thisType() types.Type {
	if len(fc.function.Proto.Params) > 0 && fc.function.Proto.Params[0].IsThis() {
		return fc.function.Proto.Params[0]
	}
	return types.Null
}

func (fc *FunctionCompiler) thisExpr() program.Expression {
	return &program.StackValue{SlotIndex: fc.thisSlot(), T: fc.thisType()}
}

// enterScope opens a function-local scope at the current stack pointer.
func (fc *FunctionCompiler) enterScope(cat FunctionScopeCategory) {
	fc.scope = NewFunctionScope(fc, cat, fc.stack.Size(), fc.scope)
}

// leaveScope emits the destruction of every variable the scope pushed, then
// pops the scope.
func (fc *FunctionCompiler) leaveScope(out *[]program.Statement) {
	fc.emitDestruction(fc.scope.StackOffset, out)
	fc.stack.ShrinkTo(fc.scope.StackOffset)
	fc.scope = fc.scope.Parent
}

// emitDestruction appends PopValue statements for every variable above
// downTo, in reverse push order, without shrinking the stack.
func (fc *FunctionCompiler) emitDestruction(downTo int, out *[]program.Statement) {
	for i := fc.stack.Size() - 1; i >= downTo; i-- {
		*out = append(*out, fc.popFor(fc.stack.At(i)))
	}
}

func (fc *FunctionCompiler) popFor(v Variable) program.Statement {
	pop := &program.PopValue{StackIndex: v.Index}
	if cls := fc.ts().GetClass(v.Type); cls != nil && !v.Type.IsReference() {
		pop.Destroy = true
		pop.Destructor = cls.Destructor
	}
	return pop
}

// Compile builds the function body.
func (fc *FunctionCompiler) Compile() error {
	if fc.function.IsDefaulted() {
		return fc.compileDefaulted()
	}

	body := &program.CompoundStatement{}

	fc.enterScope(FunctionArguments)
	if !fc.function.IsDestructor() {
		fc.stack.Push("", fc.function.ReturnType())
	}
	if err := fc.pushParameters(); err != nil {
		return err
	}

	if fc.function.IsConstructor() {
		header, err := newConstructorCompiler(fc).generateHeader()
		if err != nil {
			return err
		}
		body.Statements = append(body.Statements, header...)
	}

	fc.enterScope(FunctionBody)
	if fc.decl != nil && fc.decl.Body != nil {
		for _, stmt := range fc.decl.Body.Statements {
			if err := fc.compileStatement(stmt, &body.Statements); err != nil {
				return err
			}
		}
	}

	if fc.function.IsDestructor() {
		footer := newDestructorCompiler(fc).generateFooter()
		body.Statements = append(body.Statements, footer...)
	}

	fc.leaveScope(&body.Statements)
	fc.leaveScope(&body.Statements)

	fc.function.Body = body
	return nil
}

// pushParameters enters each parameter as a stack variable; the implicit
// object is named "this".
func (fc *FunctionCompiler) pushParameters() error {
	params := fc.function.Proto.Params
	declParams := fc.declaredParams()

	nameIdx := 0
	for _, t := range params {
		if t.IsThis() {
			fc.stack.Push("this", t)
			continue
		}
		name := ""
		if nameIdx < len(declParams) {
			name = declParams[nameIdx].Name.Text
		}
		nameIdx++
		fc.stack.Push(name, t)
	}
	return nil
}

func (fc *FunctionCompiler) declaredParams() []ast.FunctionParameter {
	if fc.decl == nil {
		return nil
	}
	return fc.decl.Params
}

func (fc *FunctionCompiler) compileStatement(stmt ast.Statement, out *[]program.Statement) error {
	switch n := stmt.(type) {
	case *ast.NullStatement:
		return nil

	case *ast.ExpressionStatement:
		expr, err := fc.expressionCompiler().Compile(n.Expr)
		if err != nil {
			return err
		}
		*out = append(*out, &program.ExpressionStatement{Expr: expr})
		return nil

	case *ast.CompoundStatement:
		compound := &program.CompoundStatement{}
		fc.enterScope(CompoundStatementBody)
		for _, s := range n.Statements {
			if err := fc.compileStatement(s, &compound.Statements); err != nil {
				return err
			}
		}
		fc.leaveScope(&compound.Statements)
		*out = append(*out, compound)
		return nil

	case *ast.IfStatement:
		return fc.compileIf(n, out)

	case *ast.WhileLoop:
		return fc.compileWhile(n, out)

	case *ast.ForLoop:
		return fc.compileFor(n, out)

	case *ast.BreakStatement:
		return fc.compileBreak(n, out)

	case *ast.ContinueStatement:
		return fc.compileContinue(n, out)

	case *ast.ReturnStatement:
		return fc.compileReturn(n, out)

	case *ast.VariableDecl:
		return fc.compileLocalVariable(n, out)

	case *ast.Typedef:
		resolved, err := fc.cs.resolver.ResolveType(n.QualType, fc.scope)
		if err != nil {
			return err
		}
		fc.scope.InjectTypeAlias(n.Name.Text, resolved)
		return nil

	case *ast.TypeAliasDeclaration:
		result, err := fc.cs.resolver.Resolve(n.Name, fc.scope)
		if err != nil {
			return err
		}
		if result.Kind != TypeName {
			return fail(InvalidTypeName, n.Name.Pos())
		}
		fc.scope.InjectTypeAlias(n.Alias.Text, result.Type)
		return nil

	case *ast.UsingDirective:
		result, err := fc.cs.resolver.Resolve(n.Name, fc.scope)
		if err != nil {
			return err
		}
		if result.Kind != NamespaceName {
			return fail(InvalidNameInUsingDirective, n.Name.Pos())
		}
		fc.scope.InjectUsingDirective(result.Namespace)
		return nil

	case *ast.NamespaceDecl:
		return fail(NamespaceDeclarationCannotAppearAtThisLevel, n.Pos())
	}

	return fail(ExpectedDeclaration, stmt.Pos())
}

func (fc *FunctionCompiler) compileIf(n *ast.IfStatement, out *[]program.Statement) error {
	cond, err := fc.expressionCompiler().compileBoolCondition(n.Condition)
	if err != nil {
		return err
	}

	stmt := &program.IfStatement{Condition: cond}

	body := &program.CompoundStatement{}
	fc.enterScope(IfBody)
	if err := fc.compileStatement(n.Body, &body.Statements); err != nil {
		return err
	}
	fc.leaveScope(&body.Statements)
	stmt.Body = body

	if n.ElseClause != nil {
		elseBody := &program.CompoundStatement{}
		fc.enterScope(IfBody)
		if err := fc.compileStatement(n.ElseClause, &elseBody.Statements); err != nil {
			return err
		}
		fc.leaveScope(&elseBody.Statements)
		stmt.ElseClause = elseBody
	}

	*out = append(*out, stmt)
	return nil
}

func (fc *FunctionCompiler) compileWhile(n *ast.WhileLoop, out *[]program.Statement) error {
	cond, err := fc.expressionCompiler().compileBoolCondition(n.Condition)
	if err != nil {
		return err
	}

	body := &program.CompoundStatement{}
	fc.enterScope(WhileBody)
	if err := fc.compileStatement(n.Body, &body.Statements); err != nil {
		return err
	}
	fc.leaveScope(&body.Statements)

	*out = append(*out, &program.WhileLoop{Condition: cond, Body: body})
	return nil
}

func (fc *FunctionCompiler) compileFor(n *ast.ForLoop, out *[]program.Statement) error {
	fc.enterScope(ForInit)

	var initStmt program.Statement
	if n.Init != nil {
		var initOut []program.Statement
		if err := fc.compileStatement(n.Init, &initOut); err != nil {
			return err
		}
		if len(initOut) == 1 {
			initStmt = initOut[0]
		} else if len(initOut) > 1 {
			initStmt = &program.CompoundStatement{Statements: initOut}
		}
	}

	var cond program.Expression
	if n.Condition != nil {
		var err error
		cond, err = fc.expressionCompiler().compileBoolCondition(n.Condition)
		if err != nil {
			return err
		}
	} else {
		cond = &program.Literal{T: types.Boolean, Value: true}
	}

	var incr program.Expression
	if n.Increment != nil {
		var err error
		incr, err = fc.expressionCompiler().Compile(n.Increment)
		if err != nil {
			return err
		}
	}

	body := &program.CompoundStatement{}
	fc.enterScope(ForBody)
	if err := fc.compileStatement(n.Body, &body.Statements); err != nil {
		return err
	}
	fc.leaveScope(&body.Statements)

	var destruction []program.Statement
	fc.leaveScope(&destruction)

	loop := &program.ForLoop{
		Init:      initStmt,
		Condition: cond,
		Increment: incr,
		Body:      body,
	}
	if len(destruction) > 0 {
		loop.Destruction = &program.CompoundStatement{Statements: destruction}
	}
	*out = append(*out, loop)
	return nil
}

// innermostLoopScope walks the chain for the enclosing loop body.
func (fc *FunctionCompiler) innermostLoopScope() *Scope {
	for cur := fc.scope; cur != nil && cur.Kind == FunctionScope; cur = cur.Parent {
		if cur.IsLoopBody() {
			return cur
		}
	}
	return nil
}

func (fc *FunctionCompiler) compileBreak(n *ast.BreakStatement, out *[]program.Statement) error {
	loop := fc.innermostLoopScope()
	if loop == nil {
		return fail(SyntaxError, n.Pos())
	}
	stmt := &program.BreakStatement{}
	fc.emitDestruction(loop.StackOffset, &stmt.Destruction)
	*out = append(*out, stmt)
	return nil
}

func (fc *FunctionCompiler) compileContinue(n *ast.ContinueStatement, out *[]program.Statement) error {
	loop := fc.innermostLoopScope()
	if loop == nil {
		return fail(SyntaxError, n.Pos())
	}
	stmt := &program.ContinueStatement{}
	fc.emitDestruction(loop.StackOffset, &stmt.Destruction)
	*out = append(*out, stmt)
	return nil
}

// functionBodyScope returns the scope opened for the function body.
func (fc *FunctionCompiler) functionBodyScope() *Scope {
	var found *Scope
	for cur := fc.scope; cur != nil && cur.Kind == FunctionScope; cur = cur.Parent {
		if cur.Category == FunctionBody || cur.Category == LambdaBody {
			found = cur
		}
	}
	return found
}

func (fc *FunctionCompiler) compileReturn(n *ast.ReturnStatement, out *[]program.Statement) error {
	returnType := fc.function.ReturnType()
	stmt := &program.ReturnStatement{}

	if n.Expr == nil {
		if returnType.IsAuto() {
			fc.function.Proto.ReturnType = types.Void
		} else if returnType.BaseType() != types.Void {
			return fail(ReturnStatementWithoutValue, n.Pos())
		}
	} else {
		if returnType.BaseType() == types.Void {
			return fail(ReturnStatementWithValue, n.Pos())
		}
		expr, err := fc.expressionCompiler().Compile(n.Expr)
		if err != nil {
			return err
		}
		if returnType.IsAuto() {
			// Lambda return-type deduction from the first returned value.
			deduced := expr.Type().WithoutRef().WithoutConst()
			if !deduced.IsValid() {
				return fail(CannotDeduceLambdaReturnType, n.Pos())
			}
			fc.function.Proto.ReturnType = deduced
			returnType = deduced
		}
		init := ComputeExprInit(returnType, expr, fc.ts())
		if !init.IsValid() {
			return fail(CouldNotConvert, n.Expr.Pos())
		}
		vc := &ValueConstructor{ec: fc.expressionCompiler()}
		converted, err := vc.ConstructFromInit(returnType, expr, init, n.Expr.Pos())
		if err != nil {
			return err
		}
		stmt.ReturnValue = converted
	}

	if body := fc.functionBodyScope(); body != nil {
		fc.emitDestruction(body.StackOffset, &stmt.Destruction)
	}
	*out = append(*out, stmt)
	return nil
}

// compileLocalVariable processes a local variable declaration: type
// resolution (with auto deduction), initialization, push, and destructor
// scheduling via the scope's exit path.
func (fc *FunctionCompiler) compileLocalVariable(n *ast.VariableDecl, out *[]program.Statement) error {
	ec := fc.expressionCompiler()
	vc := &ValueConstructor{ec: ec}

	var declType types.Type
	isAuto := false
	if n.VarType.Name != nil {
		if simple, ok := n.VarType.Name.(*ast.SimpleIdentifier); ok && simple.Name() == "auto" {
			isAuto = true
		}
	}
	if !isAuto {
		var err error
		declType, err = fc.cs.resolver.ResolveType(n.VarType, fc.scope)
		if err != nil {
			return err
		}
	}

	var value program.Expression

	switch init := n.Init.(type) {
	case nil:
		if isAuto {
			return fail(AutoMustBeUsedWithAssignment, n.Pos())
		}
		v, err := vc.DefaultConstruct(declType, n.Pos())
		if err != nil {
			return err
		}
		value = v

	case *ast.AssignmentInitialization:
		expr, err := ec.Compile(init.Value)
		if err != nil {
			return err
		}
		if isAuto {
			declType = expr.Type().WithoutRef().WithoutConst()
			if n.VarType.IsConst() {
				declType = declType.WithConst()
			}
			if n.VarType.IsRef() {
				declType = types.Ref(declType)
			}
		}
		initPlan := ComputeExprInit(declType, expr, fc.ts())
		if !initPlan.IsValid() {
			return fail(CouldNotConvert, init.Value.Pos())
		}
		value, err = vc.ConstructFromInit(declType, expr, initPlan, init.Value.Pos())
		if err != nil {
			return err
		}

	case *ast.ConstructorInitialization:
		if isAuto {
			return fail(AutoMustBeUsedWithAssignment, n.Pos())
		}
		args, err := ec.compileArgs(init.Args)
		if err != nil {
			return err
		}
		value, err = vc.Construct(declType, args, true, n.Pos())
		if err != nil {
			return err
		}

	case *ast.BraceInitialization:
		if isAuto {
			return fail(AutoMustBeUsedWithAssignment, n.Pos())
		}
		args, err := ec.compileArgs(init.Args)
		if err != nil {
			return err
		}
		value, err = vc.BraceConstruct(declType, args, n.Pos())
		if err != nil {
			return err
		}
	}

	index := fc.stack.Push(n.Name.Text, declType)
	*out = append(*out, &program.PushValue{
		T:          declType,
		Name:       n.Name.Text,
		Value:      value,
		StackIndex: index,
	})
	return nil
}
