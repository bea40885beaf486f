// Package program defines the typed IR produced by the compiler: expression
// trees with a known type and statement trees carrying control flow. The
// interpreter walks these trees through the visitor interfaces; the compiler
// only builds them.
package program

import (
	"github.com/tmaxwell/go-cscript/internal/types"
)

// Expression is a typed IR node producing a value.
type Expression interface {
	// Type returns the type of the produced value.
	Type() types.Type

	// Accept dispatches to the visitor method for the concrete variant.
	Accept(v ExpressionVisitor)
}

// ExpressionVisitor visits every expression variant; the set is closed.
type ExpressionVisitor interface {
	VisitArrayExpression(*ArrayExpression)
	VisitBindExpression(*BindExpression)
	VisitCaptureAccess(*CaptureAccess)
	VisitCommaExpression(*CommaExpression)
	VisitConditionalExpression(*ConditionalExpression)
	VisitConstructorCall(*ConstructorCall)
	VisitCopy(*Copy)
	VisitFetchGlobal(*FetchGlobal)
	VisitFunctionCall(*FunctionCall)
	VisitFunctionVariableCall(*FunctionVariableCall)
	VisitFundamentalConversion(*FundamentalConversion)
	VisitInitializerList(*InitializerList)
	VisitLambdaExpression(*LambdaExpression)
	VisitLiteral(*Literal)
	VisitLogicalAnd(*LogicalAnd)
	VisitLogicalOr(*LogicalOr)
	VisitMemberAccess(*MemberAccess)
	VisitStackValue(*StackValue)
	VisitVariableAccess(*VariableAccess)
	VisitVirtualCall(*VirtualCall)
}

// Literal is a compile-time constant. Value holds the Go-native
// representation: bool, int64, float64, rune or string.
type Literal struct {
	T     types.Type
	Value any
}

func (e *Literal) Type() types.Type            { return e.T }
func (e *Literal) Accept(v ExpressionVisitor)  { v.VisitLiteral(e) }

// StackValue reads a value from the current stack frame.
type StackValue struct {
	SlotIndex int
	T         types.Type
}

func (e *StackValue) Type() types.Type           { return e.T }
func (e *StackValue) Accept(v ExpressionVisitor) { v.VisitStackValue(e) }

// FetchGlobal reads a script global.
type FetchGlobal struct {
	GlobalIndex int
	T           types.Type
}

func (e *FetchGlobal) Type() types.Type           { return e.T }
func (e *FetchGlobal) Accept(v ExpressionVisitor) { v.VisitFetchGlobal(e) }

// VariableAccess wraps a host value captured at compile time, e.g. an enum
// constant or a static data member.
type VariableAccess struct {
	Value any
	T     types.Type
}

func (e *VariableAccess) Type() types.Type           { return e.T }
func (e *VariableAccess) Accept(v ExpressionVisitor) { v.VisitVariableAccess(e) }

// LogicalAnd short-circuits &&.
type LogicalAnd struct {
	Lhs Expression
	Rhs Expression
}

func (e *LogicalAnd) Type() types.Type           { return types.Boolean }
func (e *LogicalAnd) Accept(v ExpressionVisitor) { v.VisitLogicalAnd(e) }

// LogicalOr short-circuits ||.
type LogicalOr struct {
	Lhs Expression
	Rhs Expression
}

func (e *LogicalOr) Type() types.Type           { return types.Boolean }
func (e *LogicalOr) Accept(v ExpressionVisitor) { v.VisitLogicalOr(e) }

// ConditionalExpression is cond ? a : b with a computed common type.
type ConditionalExpression struct {
	Condition Expression
	OnTrue    Expression
	OnFalse   Expression
	T         types.Type
}

func (e *ConditionalExpression) Type() types.Type           { return e.T }
func (e *ConditionalExpression) Accept(v ExpressionVisitor) { v.VisitConditionalExpression(e) }

// FunctionCall invokes a statically resolved function with converted
// arguments.
type FunctionCall struct {
	Callee *types.Function
	Args   []Expression
}

func (e *FunctionCall) Type() types.Type           { return e.Callee.ReturnType() }
func (e *FunctionCall) Accept(v ExpressionVisitor) { v.VisitFunctionCall(e) }

// VirtualCall dispatches through the object's virtual table.
type VirtualCall struct {
	Object      Expression
	VTableIndex int
	ReturnType  types.Type
	Args        []Expression
}

func (e *VirtualCall) Type() types.Type           { return e.ReturnType }
func (e *VirtualCall) Accept(v ExpressionVisitor) { v.VisitVirtualCall(e) }

// ConstructorCall creates an object with the selected constructor.
type ConstructorCall struct {
	Constructor *types.Function
	T           types.Type
	Args        []Expression
}

func (e *ConstructorCall) Type() types.Type           { return e.T }
func (e *ConstructorCall) Accept(v ExpressionVisitor) { v.VisitConstructorCall(e) }

// FunctionVariableCall invokes a closure or function-typed value.
type FunctionVariableCall struct {
	Callee     Expression
	ReturnType types.Type
	Args       []Expression
}

func (e *FunctionVariableCall) Type() types.Type           { return e.ReturnType }
func (e *FunctionVariableCall) Accept(v ExpressionVisitor) { v.VisitFunctionVariableCall(e) }

// Copy produces a copy of its argument.
type Copy struct {
	T   types.Type
	Arg Expression
}

func (e *Copy) Type() types.Type           { return e.T }
func (e *Copy) Accept(v ExpressionVisitor) { v.VisitCopy(e) }

// FundamentalConversion converts between fundamental types.
type FundamentalConversion struct {
	DestType types.Type
	Arg      Expression
}

func (e *FundamentalConversion) Type() types.Type           { return e.DestType }
func (e *FundamentalConversion) Accept(v ExpressionVisitor) { v.VisitFundamentalConversion(e) }

// ArrayExpression builds an Array<T> value from elements.
type ArrayExpression struct {
	ArrayType types.Type
	Elements  []Expression
}

func (e *ArrayExpression) Type() types.Type           { return e.ArrayType }
func (e *ArrayExpression) Accept(v ExpressionVisitor) { v.VisitArrayExpression(e) }

// MemberAccess reads a data member by its absolute index.
type MemberAccess struct {
	Object Expression
	Offset int
	T      types.Type
}

func (e *MemberAccess) Type() types.Type           { return e.T }
func (e *MemberAccess) Accept(v ExpressionVisitor) { v.VisitMemberAccess(e) }

// InitializerList aggregates element expressions for list initialization.
// Before an Initialization types it, T is the InitializerList marker.
type InitializerList struct {
	T        types.Type
	Elements []Expression
}

func (e *InitializerList) Type() types.Type           { return e.T }
func (e *InitializerList) Accept(v ExpressionVisitor) { v.VisitInitializerList(e) }

// LambdaExpression creates a closure; capture initializers are evaluated in
// the enclosing frame.
type LambdaExpression struct {
	ClosureType types.Type
	Captures    []Expression
}

func (e *LambdaExpression) Type() types.Type           { return e.ClosureType }
func (e *LambdaExpression) Accept(v ExpressionVisitor) { v.VisitLambdaExpression(e) }

// CaptureAccess reads a capture field of the enclosing closure object.
type CaptureAccess struct {
	T      types.Type
	Object Expression
	Offset int
}

func (e *CaptureAccess) Type() types.Type           { return e.T }
func (e *CaptureAccess) Accept(v ExpressionVisitor) { v.VisitCaptureAccess(e) }

// BindExpression binds a value to a name in the host's current context.
type BindExpression struct {
	Name  string
	Value Expression
}

func (e *BindExpression) Type() types.Type           { return e.Value.Type() }
func (e *BindExpression) Accept(v ExpressionVisitor) { v.VisitBindExpression(e) }

// CommaExpression evaluates both operands, producing the right one.
type CommaExpression struct {
	Lhs Expression
	Rhs Expression
}

func (e *CommaExpression) Type() types.Type           { return e.Rhs.Type() }
func (e *CommaExpression) Accept(v ExpressionVisitor) { v.VisitCommaExpression(e) }
