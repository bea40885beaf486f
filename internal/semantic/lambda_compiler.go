package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// capturePlan pairs a capture record with the expression evaluated in the
// enclosing frame to initialize it.
type capturePlan struct {
	capture types.Capture
	value   program.Expression
}

// compileLambda lowers a lambda in three phases: capture preprocessing,
// closure-class synthesis, and body compilation with a nested function
// compiler whose scope sees the captures through the closure object.
func (ec *ExpressionCompiler) compileLambda(n *ast.LambdaExpression) (program.Expression, error) {
	plans, err := ec.preprocessCaptures(n)
	if err != nil {
		return nil, err
	}

	captures := make([]types.Capture, len(plans))
	values := make([]program.Expression, len(plans))
	for i, p := range plans {
		captures[i] = p.capture
		values[i] = p.value
	}

	closure := ec.ts().RegisterClosure(captures)

	// Synthesize the call operator.
	proto := types.Prototype{ReturnType: types.Auto}
	proto.Params = append(proto.Params, types.Ref(closure.Type).WithFlag(types.ThisFlag))
	for _, p := range n.Params {
		pt, err := ec.resolver().ResolveType(p.Type, ec.scope)
		if err != nil {
			return nil, err
		}
		proto.Params = append(proto.Params, pt)
	}

	callOp := types.NewFunction("operator()", proto)
	callOp.Kind = types.OperatorFunction
	callOp.OperatorSymbol = "()"
	closure.CallOperator = callOp

	// The lambda body sees the enclosing class/namespace chain but not the
	// enclosing locals; those are reached through captures.
	base := ec.scope
	for base != nil && base.Kind == FunctionScope {
		base = base.Parent
	}

	decl := &ast.FunctionDecl{Params: n.Params, Body: n.Body, BodyKind: ast.BodyCompound}
	nested := NewFunctionCompiler(ec.cs, CompileFunctionTask{Function: callOp, Decl: decl, Scope: base})
	nested.closure = closure
	if err := nested.compileLambdaBody(); err != nil {
		return nil, err
	}

	if callOp.Proto.ReturnType.IsAuto() {
		callOp.Proto.ReturnType = types.Void
	}

	return &program.LambdaExpression{ClosureType: closure.Type, Captures: values}, nil
}

// compileLambdaBody compiles the call operator like a member function of
// the closure; the implicit object carries the captures.
func (fc *FunctionCompiler) compileLambdaBody() error {
	body := &program.CompoundStatement{}

	fc.enterScope(FunctionArguments)
	fc.stack.Push("", fc.function.ReturnType())
	fc.stack.Push("this", fc.function.Proto.Params[0])
	for i, p := range fc.decl.Params {
		fc.stack.Push(p.Name.Text, fc.function.Proto.Params[i+1])
	}

	fc.enterScope(LambdaBody)
	for _, stmt := range fc.decl.Body.Statements {
		if err := fc.compileStatement(stmt, &body.Statements); err != nil {
			return err
		}
	}
	fc.leaveScope(&body.Statements)
	fc.leaveScope(&body.Statements)

	fc.function.Body = body
	return nil
}

func (ec *ExpressionCompiler) preprocessCaptures(n *ast.LambdaExpression) ([]capturePlan, error) {
	if len(n.Captures) > 0 && ec.fc == nil {
		return nil, fail(LambdaMustBeCaptureless, n.Pos())
	}

	var plans []capturePlan
	captured := map[string]bool{}
	defaultByValue, defaultByRef := false, false

	addCapture := func(name string, byRef bool, offset int) error {
		if captured[name] {
			return nil
		}
		index := ec.fc.stack.Find(name, 0)
		if index < 0 {
			return failx(UnknownCaptureName, offset, name)
		}
		v := ec.fc.stack.At(index)
		capturedType := v.Type.WithoutRef().WithoutConst()
		value := program.Expression(&program.StackValue{SlotIndex: v.Index, T: v.Type})
		if byRef {
			capturedType = types.Ref(capturedType)
		} else {
			if cls := ec.ts().GetClass(capturedType); cls != nil {
				copyCtor := cls.CopyConstructor()
				if copyCtor == nil || copyCtor.IsDeleted() {
					return failx(CannotCaptureNonCopyable, offset, name)
				}
				value = &program.ConstructorCall{
					Constructor: copyCtor,
					T:           capturedType,
					Args:        []program.Expression{value},
				}
			} else {
				value = &program.Copy{T: capturedType, Arg: value}
			}
		}
		captured[name] = true
		plans = append(plans, capturePlan{
			capture: types.Capture{Name: name, Type: capturedType, ByReference: byRef},
			value:   value,
		})
		return nil
	}

	for _, c := range n.Captures {
		switch {
		case c.IsDefaultByValue():
			if defaultByRef {
				return nil, fail(CannotCaptureByValueAndByRef, n.Pos())
			}
			defaultByValue = true
		case c.IsDefaultByReference():
			if defaultByValue {
				return nil, fail(CannotCaptureByValueAndByRef, n.Pos())
			}
			defaultByRef = true
		case c.Name.Is(token.This):
			return nil, fail(CannotCaptureThis, c.Name.Offset)
		case c.Value != nil:
			expr, err := ec.Compile(c.Value)
			if err != nil {
				return nil, err
			}
			captured[c.Name.Text] = true
			plans = append(plans, capturePlan{
				capture: types.Capture{Name: c.Name.Text, Type: expr.Type().WithoutRef().WithoutConst()},
				value:   expr,
			})
		default:
			byRef := c.Reference.IsValid()
			if err := addCapture(c.Name.Text, byRef, c.Name.Offset); err != nil {
				return nil, err
			}
		}
	}

	// Auto-capture for [=] and [&]: scan the body for free names that
	// resolve to visible locals.
	if defaultByValue || defaultByRef {
		for _, name := range freeNames(n.Body) {
			if captured[name] || name == "this" {
				continue
			}
			if ec.fc.stack.Find(name, 0) < 0 {
				continue
			}
			if err := addCapture(name, defaultByRef, n.Pos()); err != nil {
				return nil, err
			}
		}
	}

	return plans, nil
}

// freeNames collects, in first-appearance order, the simple identifiers a
// lambda body references outside of member positions.
func freeNames(body *ast.CompoundStatement) []string {
	var names []string
	seen := map[string]bool{}
	declared := map[string]bool{}

	ast.Inspect(body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.VariableDecl:
			declared[node.Name.Text] = true
		case *ast.MemberAccess:
			ast.Inspect(node.Object, func(inner ast.Node) bool {
				if id, ok := inner.(*ast.SimpleIdentifier); ok && !seen[id.Name()] && !declared[id.Name()] {
					seen[id.Name()] = true
					names = append(names, id.Name())
				}
				return true
			})
			return false
		case *ast.SimpleIdentifier:
			if !seen[node.Name()] && !declared[node.Name()] {
				seen[node.Name()] = true
				names = append(names, node.Name())
			}
		}
		return true
	})
	return names
}
