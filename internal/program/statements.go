package program

import (
	"github.com/tmaxwell/go-cscript/internal/types"
)

// Statement is a typed IR node producing control flow.
type Statement interface {
	// Accept dispatches to the visitor method for the concrete variant.
	Accept(v StatementVisitor)
}

// StatementVisitor visits every statement variant; the set is closed.
type StatementVisitor interface {
	VisitBreakStatement(*BreakStatement)
	VisitBreakpoint(*Breakpoint)
	VisitCompoundStatement(*CompoundStatement)
	VisitConstructionStatement(*ConstructionStatement)
	VisitContinueStatement(*ContinueStatement)
	VisitCppReturnStatement(*CppReturnStatement)
	VisitExpressionStatement(*ExpressionStatement)
	VisitForLoop(*ForLoop)
	VisitIfStatement(*IfStatement)
	VisitInitObjectStatement(*InitObjectStatement)
	VisitPopDataMember(*PopDataMember)
	VisitPopValue(*PopValue)
	VisitPushDataMember(*PushDataMember)
	VisitPushGlobal(*PushGlobal)
	VisitPushStaticValue(*PushStaticValue)
	VisitPushValue(*PushValue)
	VisitReturnStatement(*ReturnStatement)
	VisitWhileLoop(*WhileLoop)
}

// PushValue pushes a new stack variable initialized from Value.
type PushValue struct {
	T     types.Type
	Name  string
	Value Expression
	// StackIndex is the slot the variable occupies, recorded for
	// diagnostics and debug tooling.
	StackIndex int
}

func (s *PushValue) Accept(v StatementVisitor) { v.VisitPushValue(s) }

// PopValue removes the top stack variable; Destroy requests a destructor
// call first.
type PopValue struct {
	Destroy    bool
	Destructor *types.Function
	StackIndex int
}

func (s *PopValue) Accept(v StatementVisitor) { v.VisitPopValue(s) }

// PushGlobal promotes the top of stack into a script global.
type PushGlobal struct {
	GlobalIndex int
	T           types.Type
}

func (s *PushGlobal) Accept(v StatementVisitor) { v.VisitPushGlobal(s) }

// PushStaticValue initializes a static variable on first pass.
type PushStaticValue struct {
	Name        string
	GlobalIndex int
	Value       Expression
}

func (s *PushStaticValue) Accept(v StatementVisitor) { v.VisitPushStaticValue(s) }

// PushDataMember appends an initialized data member during object
// construction.
type PushDataMember struct {
	Value Expression
}

func (s *PushDataMember) Accept(v StatementVisitor) { v.VisitPushDataMember(s) }

// PopDataMember destroys the last data member during object destruction.
type PopDataMember struct {
	Destructor *types.Function
}

func (s *PopDataMember) Accept(v StatementVisitor) { v.VisitPopDataMember(s) }

// ExpressionStatement evaluates an expression for its effects.
type ExpressionStatement struct {
	Expr Expression
}

func (s *ExpressionStatement) Accept(v StatementVisitor) { v.VisitExpressionStatement(s) }

// CompoundStatement is an ordered statement list.
type CompoundStatement struct {
	Statements []Statement
}

func (s *CompoundStatement) Accept(v StatementVisitor) { v.VisitCompoundStatement(s) }

// BreakStatement leaves the innermost loop; Destruction destroys the
// variables between the current scope and the loop.
type BreakStatement struct {
	Destruction []Statement
}

func (s *BreakStatement) Accept(v StatementVisitor) { v.VisitBreakStatement(s) }

// ContinueStatement jumps to the loop head after Destruction.
type ContinueStatement struct {
	Destruction []Statement
}

func (s *ContinueStatement) Accept(v StatementVisitor) { v.VisitContinueStatement(s) }

// ReturnStatement leaves the function after Destruction.
type ReturnStatement struct {
	ReturnValue Expression
	Destruction []Statement
}

func (s *ReturnStatement) Accept(v StatementVisitor) { v.VisitReturnStatement(s) }

// CppReturnStatement returns a host-computed value from a native function
// body.
type CppReturnStatement struct {
	Value any
}

func (s *CppReturnStatement) Accept(v StatementVisitor) { v.VisitCppReturnStatement(s) }

// IfStatement branches on a boolean condition.
type IfStatement struct {
	Condition  Expression
	Body       Statement
	ElseClause Statement
}

func (s *IfStatement) Accept(v StatementVisitor) { v.VisitIfStatement(s) }

// WhileLoop iterates while the condition holds.
type WhileLoop struct {
	Condition Expression
	Body      Statement
}

func (s *WhileLoop) Accept(v StatementVisitor) { v.VisitWhileLoop(s) }

// ForLoop is init; cond; incr with a destruction block for the init
// variable.
type ForLoop struct {
	Init        Statement
	Condition   Expression
	Increment   Expression
	Body        Statement
	Destruction Statement
}

func (s *ForLoop) Accept(v StatementVisitor) { v.VisitForLoop(s) }

// InitObjectStatement starts construction of the implicit object inside a
// constructor body.
type InitObjectStatement struct {
	ObjectType types.Type
}

func (s *InitObjectStatement) Accept(v StatementVisitor) { v.VisitInitObjectStatement(s) }

// ConstructionStatement calls a base or delegate constructor on the object
// under construction.
type ConstructionStatement struct {
	ObjectType  types.Type
	Constructor *types.Function
	Args        []Expression
}

func (s *ConstructionStatement) Accept(v StatementVisitor) { v.VisitConstructionStatement(s) }

// Breakpoint is a debugger hook; the core compiler emits none, hosts may
// splice them in.
type Breakpoint struct {
	Line int
}

func (s *Breakpoint) Accept(v StatementVisitor) { v.VisitBreakpoint(s) }
