package semantic

import (
	"strings"

	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// ExpressionCompiler translates AST expressions into typed IR expressions.
type ExpressionCompiler struct {
	cs    *compilerSession
	scope *Scope
	fc    *FunctionCompiler
}

// NewExpressionCompiler creates an expression compiler; fc is nil outside
// function bodies.
func NewExpressionCompiler(cs *compilerSession, scope *Scope, fc *FunctionCompiler) *ExpressionCompiler {
	return &ExpressionCompiler{cs: cs, scope: scope, fc: fc}
}

func (ec *ExpressionCompiler) ts() *types.TypeSystem { return ec.cs.engine.TypeSystem }

func (ec *ExpressionCompiler) resolver() *NameResolver { return ec.cs.resolver }

// Compile lowers one AST expression.
func (ec *ExpressionCompiler) Compile(expr ast.Expression) (program.Expression, error) {
	switch n := expr.(type) {
	case *ast.BoolLiteral:
		return &program.Literal{T: types.Boolean, Value: n.Value()}, nil
	case *ast.IntegerLiteral:
		v, err := ParseIntegerLiteral(n.Tok.Text)
		if err != nil {
			return nil, fail(SyntaxError, n.Pos())
		}
		return &program.Literal{T: types.Int, Value: v}, nil
	case *ast.FloatLiteral:
		v, err := ParseFloatLiteral(n.Tok.Text)
		if err != nil {
			return nil, fail(SyntaxError, n.Pos())
		}
		if strings.HasSuffix(n.Tok.Text, "f") {
			return &program.Literal{T: types.Float, Value: v}, nil
		}
		return &program.Literal{T: types.Double, Value: v}, nil
	case *ast.StringLiteral:
		return ec.compileStringLiteral(n)
	case *ast.UserDefinedLiteral:
		return ec.compileUserDefinedLiteral(n)
	case *ast.SimpleIdentifier, *ast.ScopedIdentifier, *ast.TemplateIdentifier:
		return ec.compileIdentifier(expr.(ast.Identifier))
	case *ast.Operation:
		return ec.compileOperation(n)
	case *ast.ConditionalExpression:
		return ec.compileConditional(n)
	case *ast.FunctionCall:
		return ec.compileCall(n)
	case *ast.ArraySubscript:
		return ec.compileSubscript(n)
	case *ast.MemberAccess:
		return ec.compileMemberAccess(n)
	case *ast.ListExpression:
		return ec.compileListExpression(n)
	case *ast.ArrayExpression:
		return ec.compileArrayExpression(n)
	case *ast.BraceConstruction:
		return ec.compileBraceConstruction(n)
	case *ast.LambdaExpression:
		return ec.compileLambda(n)
	}
	return nil, fail(SyntaxError, expr.Pos())
}

func (ec *ExpressionCompiler) compileStringLiteral(n *ast.StringLiteral) (program.Expression, error) {
	value, err := UnescapeStringLiteral(n.Tok.Text)
	if err != nil {
		return nil, fail(SyntaxError, n.Pos())
	}
	if n.IsSingleQuoted() {
		runes := []rune(value)
		if len(runes) != 1 {
			return nil, fail(InvalidCharacterLiteral, n.Pos())
		}
		return &program.Literal{T: types.Char, Value: runes[0]}, nil
	}
	return &program.Literal{T: ec.cs.engine.StringClass().Type, Value: value}, nil
}

// compileUserDefinedLiteral resolves the literal operator keyed by the
// suffix and calls it with the undecorated literal value.
func (ec *ExpressionCompiler) compileUserDefinedLiteral(n *ast.UserDefinedLiteral) (program.Expression, error) {
	suffix := n.SuffixName()
	fns := ec.resolver().LookupLiteralOperators(suffix, ec.scope)
	if len(fns) == 0 {
		return nil, failx(CouldNotFindValidLiteralOperator, n.Pos(), suffix)
	}

	raw := n.LiteralValue()
	var arg program.Expression
	switch {
	case len(raw) > 0 && (raw[0] == '"' || raw[0] == '\''):
		value, err := UnescapeStringLiteral(raw)
		if err != nil {
			return nil, fail(SyntaxError, n.Pos())
		}
		arg = &program.Literal{T: ec.cs.engine.StringClass().Type, Value: value}
	case strings.ContainsAny(raw, ".eE") && !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X"):
		v, err := ParseFloatLiteral(raw)
		if err != nil {
			return nil, fail(SyntaxError, n.Pos())
		}
		arg = &program.Literal{T: types.Double, Value: v}
	default:
		v, err := ParseIntegerLiteral(raw)
		if err != nil {
			return nil, fail(SyntaxError, n.Pos())
		}
		arg = &program.Literal{T: types.Int, Value: v}
	}

	res := ResolveOverloads(fns, ExprArgs([]program.Expression{arg}), ec.ts())
	if !res.Success() {
		return nil, failx(CouldNotFindValidLiteralOperator, n.Pos(), suffix)
	}
	args, err := ec.prepareArgs([]program.Expression{arg}, res.Selected)
	if err != nil {
		return nil, err
	}
	return &program.FunctionCall{Callee: res.Selected.Function, Args: args}, nil
}

// thisExpression produces the implicit object; slot 1, right after the
// return-value slot (slot 0 in destructors, which have no return-value slot).
func (ec *ExpressionCompiler) thisExpression(offset int) (program.Expression, error) {
	if ec.fc == nil || !ec.fc.hasThis() {
		return nil, fail(IllegalUseOfThis, offset)
	}
	return ec.fc.thisExpr(), nil
}

func (ec *ExpressionCompiler) compileIdentifier(id ast.Identifier) (program.Expression, error) {
	if simple, ok := id.(*ast.SimpleIdentifier); ok && simple.Tok.Is(token.This) {
		return ec.thisExpression(id.Pos())
	}

	result, err := ec.resolver().Resolve(id, ec.scope)
	if err != nil {
		return nil, err
	}
	return ec.expressionFromLookup(result, id)
}

func (ec *ExpressionCompiler) expressionFromLookup(result NameLookup, id ast.Identifier) (program.Expression, error) {
	switch result.Kind {
	case LocalName:
		return &program.StackValue{SlotIndex: result.Local.Index, T: result.Local.Type}, nil

	case CaptureName:
		obj, err := ec.thisExpression(id.Pos())
		if err != nil {
			return nil, err
		}
		return &program.CaptureAccess{
			T:      result.Capture.Type,
			Object: obj,
			Offset: result.CaptureIndex,
		}, nil

	case DataMemberName:
		// A member name inside a member function reads through the
		// implicit this.
		obj, err := ec.thisExpression(id.Pos())
		if err != nil {
			return nil, err
		}
		return ec.memberAccessExpr(obj, result.MemberClass, result.DataMemberIndex, id.Pos())

	case StaticDataMemberName:
		return &program.VariableAccess{Value: result.StaticMember, T: result.StaticMember.Type}, nil

	case EnumValueName:
		return &program.Literal{T: result.Enum.Type, Value: int64(result.EnumValue)}, nil

	case GlobalName, VariableName:
		return &program.FetchGlobal{GlobalIndex: result.GlobalIndex, T: result.GlobalType}, nil

	case FunctionName:
		if len(result.Functions) != 1 {
			return nil, fail(AmbiguousFunctionName, id.Pos())
		}
		f := result.Functions[0]
		ft := ec.ts().GetFunctionType(f.Proto)
		return &program.VariableAccess{Value: f, T: ft}, nil

	case TemplateParameterName:
		arg := result.TemplateParam
		switch arg.Kind {
		case types.IntArgument:
			return &program.Literal{T: types.Int, Value: arg.Int}, nil
		case types.BoolArgument:
			return &program.Literal{T: types.Boolean, Value: arg.Bool}, nil
		}
		return nil, fail(TypeNameInExpression, id.Pos())

	case TypeName:
		return nil, fail(TypeNameInExpression, id.Pos())
	case NamespaceName:
		return nil, fail(NamespaceNameInExpression, id.Pos())
	case TemplateName:
		return nil, fail(TemplateNamesAreNotExpressions, id.Pos())
	}

	return nil, failx(InvalidTypeName, id.Pos(), id.TokenLiteral())
}

func (ec *ExpressionCompiler) memberAccessExpr(obj program.Expression, cls *types.Class, index int, offset int) (program.Expression, error) {
	member := cls.AttributeAt(index)
	if member == nil {
		return nil, fail(NoSuchMember, offset)
	}
	if err := ec.checkAccess(cls, member.Access, offset); err != nil {
		return nil, err
	}
	t := member.Type
	if obj.Type().IsConst() {
		t = t.WithConst()
	}
	return &program.MemberAccess{Object: obj, Offset: index, T: t}, nil
}

// checkAccess enforces member visibility from the current scope.
func (ec *ExpressionCompiler) checkAccess(cls *types.Class, access types.AccessSpec, offset int) error {
	if access == types.PublicAccess {
		return nil
	}
	from := ec.scope.EnclosingClass()
	if from != nil {
		if depth, ok := from.InheritanceDepth(cls); ok {
			if access == types.ProtectedAccess || depth == 0 {
				return nil
			}
		}
		if cls.IsFriend(from.Name) {
			return nil
		}
	}
	return fail(InaccessibleMember, offset)
}

func operationSymbol(n *ast.Operation) string {
	sym := n.OperatorTok.Text
	if n.Postfix && (sym == "++" || sym == "--") {
		return sym + "post"
	}
	return sym
}

func (ec *ExpressionCompiler) compileOperation(n *ast.Operation) (program.Expression, error) {
	sym := operationSymbol(n)

	if n.IsBinary() {
		switch sym {
		case ",":
			lhs, err := ec.Compile(n.Arg1)
			if err != nil {
				return nil, err
			}
			rhs, err := ec.Compile(n.Arg2)
			if err != nil {
				return nil, err
			}
			return &program.CommaExpression{Lhs: lhs, Rhs: rhs}, nil
		case "&&", "||":
			return ec.compileLogical(n, sym)
		}

		lhs, err := ec.Compile(n.Arg1)
		if err != nil {
			return nil, err
		}
		rhs, err := ec.Compile(n.Arg2)
		if err != nil {
			return nil, err
		}
		return ec.resolveOperatorCall(sym, []program.Expression{lhs, rhs}, n.Pos())
	}

	arg, err := ec.Compile(n.Arg1)
	if err != nil {
		return nil, err
	}
	return ec.resolveOperatorCall(sym, []program.Expression{arg}, n.Pos())
}

// compileLogical lowers && and || to short-circuit IR when both operands
// convert to bool without user code; class overloads go through operator
// resolution and lose short-circuiting.
func (ec *ExpressionCompiler) compileLogical(n *ast.Operation, sym string) (program.Expression, error) {
	lhs, err := ec.Compile(n.Arg1)
	if err != nil {
		return nil, err
	}
	rhs, err := ec.Compile(n.Arg2)
	if err != nil {
		return nil, err
	}

	lconv := ComputeStandardConversion(lhs.Type(), types.Boolean, ec.ts())
	rconv := ComputeStandardConversion(rhs.Type(), types.Boolean, ec.ts())
	if lconv.IsConvertible() && rconv.IsConvertible() {
		l := ApplyStandardConversion(lhs, lconv)
		r := ApplyStandardConversion(rhs, rconv)
		if sym == "&&" {
			return &program.LogicalAnd{Lhs: l, Rhs: r}, nil
		}
		return &program.LogicalOr{Lhs: l, Rhs: r}, nil
	}

	return ec.resolveOperatorCall(sym, []program.Expression{lhs, rhs}, n.Pos())
}

func (ec *ExpressionCompiler) resolveOperatorCall(sym string, operands []program.Expression, offset int) (program.Expression, error) {
	operandTypes := make([]types.Type, len(operands))
	for i, o := range operands {
		operandTypes[i] = o.Type()
	}
	fns := ec.resolver().LookupOperators(sym, len(operands), ec.scope, operandTypes)
	res := ResolveOverloads(fns, ExprArgs(operands), ec.ts())
	if !res.Success() {
		return nil, failx(CouldNotFindValidOperator, offset, sym)
	}
	if res.Selected.Function.IsDeleted() {
		return nil, fail(CallToDeletedFunction, offset)
	}
	args, err := ec.prepareArgs(operands, res.Selected)
	if err != nil {
		return nil, err
	}
	return &program.FunctionCall{Callee: res.Selected.Function, Args: args}, nil
}

// compileConditional computes a common type by trying conversions in both
// directions and picking the lesser-rank successful one.
func (ec *ExpressionCompiler) compileConditional(n *ast.ConditionalExpression) (program.Expression, error) {
	cond, err := ec.compileBoolCondition(n.Condition)
	if err != nil {
		return nil, err
	}
	onTrue, err := ec.Compile(n.OnTrue)
	if err != nil {
		return nil, err
	}
	onFalse, err := ec.Compile(n.OnFalse)
	if err != nil {
		return nil, err
	}

	ta := onTrue.Type().WithoutRef().WithoutConst()
	tb := onFalse.Type().WithoutRef().WithoutConst()

	if ta == tb {
		return &program.ConditionalExpression{Condition: cond, OnTrue: onTrue, OnFalse: onFalse, T: ta}, nil
	}

	ab := ComputeConversion(onTrue.Type(), tb, ec.ts(), NoExplicitConversions)
	ba := ComputeConversion(onFalse.Type(), ta, ec.ts(), NoExplicitConversions)

	switch {
	case ab.IsInvalid() && ba.IsInvalid():
		return nil, fail(CouldNotFindCommonType, n.Pos())
	case ba.IsInvalid() || (!ab.IsInvalid() && ab.Rank() <= ba.Rank()):
		converted, err := ApplyConversion(onTrue, ab, n.Pos())
		if err != nil {
			return nil, err
		}
		return &program.ConditionalExpression{Condition: cond, OnTrue: converted, OnFalse: onFalse, T: tb}, nil
	default:
		converted, err := ApplyConversion(onFalse, ba, n.Pos())
		if err != nil {
			return nil, err
		}
		return &program.ConditionalExpression{Condition: cond, OnTrue: onTrue, OnFalse: converted, T: ta}, nil
	}
}

// compileBoolCondition compiles an expression and converts it to bool.
func (ec *ExpressionCompiler) compileBoolCondition(e ast.Expression) (program.Expression, error) {
	expr, err := ec.Compile(e)
	if err != nil {
		return nil, err
	}
	conv := ComputeConversion(expr.Type(), types.Boolean, ec.ts(), NoExplicitConversions)
	if conv.IsInvalid() {
		return nil, fail(CouldNotConvert, e.Pos())
	}
	return ApplyConversion(expr, conv, e.Pos())
}

func (ec *ExpressionCompiler) compileCall(n *ast.FunctionCall) (program.Expression, error) {
	if member, ok := n.Callee.(*ast.MemberAccess); ok {
		return ec.compileMethodCall(member, n)
	}

	if callee, ok := n.Callee.(ast.Identifier); ok {
		if simple, isSimple := callee.(*ast.SimpleIdentifier); !isSimple || !simple.Tok.Is(token.This) {
			return ec.compileNamedCall(callee, n)
		}
	}

	// The callee is an arbitrary expression: a closure, a function-typed
	// value or an object with a call operator.
	calleeExpr, err := ec.Compile(n.Callee)
	if err != nil {
		return nil, err
	}
	return ec.compileValueCall(calleeExpr, n)
}

func (ec *ExpressionCompiler) compileArgs(args []ast.Expression) ([]program.Expression, error) {
	out := make([]program.Expression, 0, len(args))
	for _, a := range args {
		e, err := ec.Compile(a)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (ec *ExpressionCompiler) compileNamedCall(callee ast.Identifier, n *ast.FunctionCall) (program.Expression, error) {
	result, err := ec.resolver().Resolve(callee, ec.scope)
	if err != nil {
		return nil, err
	}

	switch result.Kind {
	case FunctionName:
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		if len(result.Functions) > 0 && result.Functions[0].HasImplicitObject() {
			obj, err := ec.thisExpression(n.Pos())
			if err != nil {
				return nil, err
			}
			args = append([]program.Expression{obj}, args...)
		}
		res := ResolveOverloads(result.Functions, ExprArgs(args), ec.ts())
		if !res.Success() {
			return nil, failx(CouldNotFindValidCallee, n.Pos(), callee.TokenLiteral())
		}
		return ec.emitCall(res.Selected, args, n.Pos())

	case TypeName:
		vc := &ValueConstructor{ec: ec}
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		return vc.Construct(result.Type, args, true, n.Pos())

	case TemplateName:
		if result.FunctionTemplate == nil {
			return nil, fail(TemplateNamesAreNotExpressions, n.Pos())
		}
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		argTypes := make([]types.Type, len(args))
		for i, a := range args {
			argTypes[i] = a.Type()
		}
		f, err := ec.cs.templates.InstantiateFunctionTemplate(result.FunctionTemplate, argTypes)
		if err != nil {
			return nil, err
		}
		res := ResolveOverloads([]*types.Function{f}, ExprArgs(args), ec.ts())
		if !res.Success() {
			return nil, failx(CouldNotFindValidCallee, n.Pos(), callee.TokenLiteral())
		}
		return ec.emitCall(res.Selected, args, n.Pos())

	case LocalName, CaptureName, GlobalName, VariableName, DataMemberName:
		calleeExpr, err := ec.expressionFromLookup(result, callee)
		if err != nil {
			return nil, err
		}
		return ec.compileValueCall(calleeExpr, n)

	case NamespaceName:
		return nil, fail(NamespaceNameInExpression, n.Pos())
	}

	return nil, failx(NoSuchCallee, n.Pos(), callee.TokenLiteral())
}

func (ec *ExpressionCompiler) compileMethodCall(member *ast.MemberAccess, n *ast.FunctionCall) (program.Expression, error) {
	obj, err := ec.Compile(member.Object)
	if err != nil {
		return nil, err
	}

	cls := ec.ts().GetClass(obj.Type())
	if cls == nil {
		return nil, fail(NoSuchMember, member.Member.Pos())
	}

	name := member.Member.TokenLiteral()
	result := ec.resolver().lookupInClass(name, cls)
	switch result.Kind {
	case FunctionName:
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		callArgs := args
		if result.Functions[0].HasImplicitObject() {
			callArgs = append([]program.Expression{obj}, args...)
		}
		res := ResolveOverloads(result.Functions, ExprArgs(callArgs), ec.ts())
		if !res.Success() {
			return nil, failx(CouldNotFindValidMemberFunction, n.Pos(), name)
		}
		return ec.emitCall(res.Selected, callArgs, n.Pos())

	case DataMemberName:
		fieldExpr, err := ec.memberAccessExpr(obj, cls, result.DataMemberIndex, member.Member.Pos())
		if err != nil {
			return nil, err
		}
		return ec.compileValueCall(fieldExpr, n)
	}

	return nil, failx(NoSuchMember, member.Member.Pos(), name)
}

// compileValueCall invokes a closure, a function-typed value or an object's
// call operator.
func (ec *ExpressionCompiler) compileValueCall(calleeExpr program.Expression, n *ast.FunctionCall) (program.Expression, error) {
	t := calleeExpr.Type()

	if closure := ec.ts().GetLambda(t); closure != nil {
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		op := closure.CallOperator
		callArgs := append([]program.Expression{calleeExpr}, args...)
		res := ResolveOverloads([]*types.Function{op}, ExprArgs(callArgs), ec.ts())
		if !res.Success() {
			return nil, fail(CouldNotFindValidCallOperator, n.Pos())
		}
		prepared, err := ec.prepareArgs(callArgs, res.Selected)
		if err != nil {
			return nil, err
		}
		return &program.FunctionVariableCall{
			Callee:     calleeExpr,
			ReturnType: op.ReturnType(),
			Args:       prepared[1:],
		}, nil
	}

	if proto, ok := ec.ts().FunctionTypeProto(t); ok {
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		if len(args) != proto.ParamCount() {
			return nil, fail(NoSuchCallee, n.Pos())
		}
		converted := make([]program.Expression, len(args))
		for i, a := range args {
			conv := ComputeConversion(a.Type(), proto.Params[i], ec.ts(), NoExplicitConversions)
			if conv.IsInvalid() {
				return nil, fail(CouldNotConvert, n.Args[i].Pos())
			}
			converted[i], err = ApplyConversion(a, conv, n.Args[i].Pos())
			if err != nil {
				return nil, err
			}
		}
		return &program.FunctionVariableCall{
			Callee:     calleeExpr,
			ReturnType: proto.ReturnType,
			Args:       converted,
		}, nil
	}

	if cls := ec.ts().GetClass(t); cls != nil {
		args, err := ec.compileArgs(n.Args)
		if err != nil {
			return nil, err
		}
		var ops []*types.Function
		for cur := cls; cur != nil; cur = cur.Parent {
			for _, f := range cur.Operators {
				if f.OperatorSymbol == "()" {
					ops = append(ops, f)
				}
			}
		}
		callArgs := append([]program.Expression{calleeExpr}, args...)
		res := ResolveOverloads(ops, ExprArgs(callArgs), ec.ts())
		if !res.Success() {
			return nil, fail(CouldNotFindValidCallOperator, n.Pos())
		}
		return ec.emitCall(res.Selected, callArgs, n.Pos())
	}

	return nil, fail(NoSuchCallee, n.Pos())
}

// emitCall converts the arguments per the selected candidate and produces a
// FunctionCall, or a VirtualCall for virtual member functions.
func (ec *ExpressionCompiler) emitCall(selected Candidate, args []program.Expression, offset int) (program.Expression, error) {
	f := selected.Function
	if f.IsDeleted() {
		return nil, fail(CallToDeletedFunction, offset)
	}

	prepared, err := ec.prepareArgs(args, selected)
	if err != nil {
		return nil, err
	}

	if f.IsVirtual() && f.HasImplicitObject() {
		return &program.VirtualCall{
			Object:      prepared[0],
			VTableIndex: f.VTableIndex,
			ReturnType:  f.ReturnType(),
			Args:        prepared[1:],
		}, nil
	}

	return &program.FunctionCall{Callee: f, Args: prepared}, nil
}

// prepareArgs applies each argument's initialization and appends defaulted
// trailing arguments.
func (ec *ExpressionCompiler) prepareArgs(args []program.Expression, selected Candidate) ([]program.Expression, error) {
	vc := &ValueConstructor{ec: ec}
	return vc.Prepare(args, selected)
}

func (ec *ExpressionCompiler) compileSubscript(n *ast.ArraySubscript) (program.Expression, error) {
	array, err := ec.Compile(n.Array)
	if err != nil {
		return nil, err
	}
	index, err := ec.Compile(n.Index)
	if err != nil {
		return nil, err
	}

	cls := ec.ts().GetClass(array.Type())
	if cls == nil {
		return nil, fail(ArraySubscriptOnNonObject, n.Pos())
	}

	var ops []*types.Function
	for cur := cls; cur != nil; cur = cur.Parent {
		for _, f := range cur.Operators {
			if f.OperatorSymbol == "[]" {
				ops = append(ops, f)
			}
		}
	}
	callArgs := []program.Expression{array, index}
	res := ResolveOverloads(ops, ExprArgs(callArgs), ec.ts())
	if !res.Success() {
		return nil, fail(CouldNotFindValidSubscriptOperator, n.Pos())
	}
	return ec.emitCall(res.Selected, callArgs, n.Pos())
}

func (ec *ExpressionCompiler) compileMemberAccess(n *ast.MemberAccess) (program.Expression, error) {
	obj, err := ec.Compile(n.Object)
	if err != nil {
		return nil, err
	}

	cls := ec.ts().GetClass(obj.Type())
	if cls == nil {
		return nil, failx(NoSuchMember, n.Member.Pos(), n.Member.TokenLiteral())
	}

	name := n.Member.TokenLiteral()
	result := ec.resolver().lookupInClass(name, cls)
	switch result.Kind {
	case DataMemberName:
		return ec.memberAccessExpr(obj, cls, result.DataMemberIndex, n.Member.Pos())
	case StaticDataMemberName:
		return &program.VariableAccess{Value: result.StaticMember, T: result.StaticMember.Type}, nil
	case EnumValueName:
		return &program.Literal{T: result.Enum.Type, Value: int64(result.EnumValue)}, nil
	}
	return nil, failx(NoSuchMember, n.Member.Pos(), name)
}

// compileListExpression produces an untyped initializer list; the concrete
// type is decided by the initialization that consumes it.
func (ec *ExpressionCompiler) compileListExpression(n *ast.ListExpression) (program.Expression, error) {
	elements, err := ec.compileArgs(n.Elements)
	if err != nil {
		return nil, err
	}
	return &program.InitializerList{T: types.InitializerList, Elements: elements}, nil
}

// compileArrayExpression takes the element type from the first element;
// later elements must convert to it.
func (ec *ExpressionCompiler) compileArrayExpression(n *ast.ArrayExpression) (program.Expression, error) {
	elements, err := ec.compileArgs(n.Elements)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fail(ArrayElementNotConvertible, n.Pos())
	}

	elemType := elements[0].Type().WithoutRef().WithoutConst()
	for i, e := range elements {
		conv := ComputeConversion(e.Type(), elemType, ec.ts(), NoExplicitConversions)
		if conv.IsInvalid() {
			return nil, fail(ArrayElementNotConvertible, n.Elements[i].Pos())
		}
		elements[i], err = ApplyConversion(e, conv, n.Elements[i].Pos())
		if err != nil {
			return nil, err
		}
	}

	arrayTemplate := ec.cs.engine.Root.ClassTemplates["Array"]
	arrayType, err := ec.cs.templates.InstantiateClassTemplate(arrayTemplate, []types.TemplateArg{types.TypeArg(elemType)})
	if err != nil {
		return nil, err
	}
	return &program.ArrayExpression{ArrayType: arrayType, Elements: elements}, nil
}

func (ec *ExpressionCompiler) compileBraceConstruction(n *ast.BraceConstruction) (program.Expression, error) {
	result, err := ec.resolver().Resolve(n.Temporary, ec.scope)
	if err != nil {
		return nil, err
	}
	if result.Kind != TypeName {
		return nil, fail(UnknownTypeInBraceInitialization, n.Pos())
	}
	args, err := ec.compileArgs(n.Args)
	if err != nil {
		return nil, err
	}
	vc := &ValueConstructor{ec: ec}
	return vc.BraceConstruct(result.Type, args, n.Pos())
}
