package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

func compileSource(t *testing.T, source string) (*engine.Engine, *engine.Script) {
	t.Helper()
	e := engine.New()
	s := e.NewScript("test.csl", source)
	require.NoError(t, Compile(e, s))
	return e, s
}

func requireCompiled(t *testing.T, source string) (*engine.Engine, *engine.Script) {
	t.Helper()
	e, s := compileSource(t, source)
	for _, d := range s.Diagnostics {
		t.Logf("diagnostic: %s", d.Message)
	}
	require.True(t, s.Compiled, "compilation must succeed")
	return e, s
}

func requireDiagnostic(t *testing.T, source, code string) *engine.Script {
	t.Helper()
	_, s := compileSource(t, source)
	require.False(t, s.Compiled, "compilation must fail")
	for _, d := range s.Diagnostics {
		if d.Code == code {
			return s
		}
	}
	t.Fatalf("expected diagnostic %s, got %v", code, s.Diagnostics)
	return nil
}

func findFunction(s *engine.Script, name string) *types.Function {
	for _, f := range s.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// collectStatements flattens a statement tree depth-first.
func collectStatements(stmt program.Statement, out *[]program.Statement) {
	if stmt == nil {
		return
	}
	*out = append(*out, stmt)
	switch n := stmt.(type) {
	case *program.CompoundStatement:
		for _, s := range n.Statements {
			collectStatements(s, out)
		}
	case *program.IfStatement:
		collectStatements(n.Body, out)
		collectStatements(n.ElseClause, out)
	case *program.WhileLoop:
		collectStatements(n.Body, out)
	case *program.ForLoop:
		collectStatements(n.Init, out)
		collectStatements(n.Body, out)
		collectStatements(n.Destruction, out)
	}
}

func bodyStatements(t *testing.T, f *types.Function) []program.Statement {
	t.Helper()
	require.NotNil(t, f, "function not found")
	body, ok := f.Body.(*program.CompoundStatement)
	require.True(t, ok, "function has no compiled body")
	var out []program.Statement
	collectStatements(body, &out)
	return out
}

// S1: fundamental overload selection.
func TestScenarioFundamentalOverloadSelection(t *testing.T) {
	_, s := requireCompiled(t, `
int max(int a, int b) { return a; }
int max(float a, float b) { return b; }
void test() { max(1, 2); }
`)

	var call *program.FunctionCall
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if es, ok := stmt.(*program.ExpressionStatement); ok {
			if fc, ok := es.Expr.(*program.FunctionCall); ok && fc.Callee.Name == "max" {
				call = fc
			}
		}
	}
	require.NotNil(t, call, "the call to max must appear in the IR")
	assert.Equal(t, []types.Type{types.Int, types.Int}, call.Callee.Proto.Params)
	for _, arg := range call.Args {
		_, isCopy := arg.(*program.Copy)
		assert.True(t, isCopy, "both arguments are copies from int")
	}
}

// S2: class with virtual dispatch; bar's IR contains a VirtualCall.
func TestScenarioVirtualDispatch(t *testing.T) {
	_, s := requireCompiled(t, `
class A { virtual int foo() { return 0; } };
class B : A { int foo() { return 1; } };
int bar(const A& a) { return a.foo(); }
B b;
int n = bar(b);
`)

	var virtual *program.VirtualCall
	for _, stmt := range bodyStatements(t, findFunction(s, "bar")) {
		if ret, ok := stmt.(*program.ReturnStatement); ok && ret.ReturnValue != nil {
			value := ret.ReturnValue
			if cp, isCopy := value.(*program.Copy); isCopy {
				// the returned value is copied into the return slot
				value = cp.Arg
			}
			if vc, ok := value.(*program.VirtualCall); ok {
				virtual = vc
			}
		}
	}
	require.NotNil(t, virtual, "bar must dispatch foo virtually")
	assert.Equal(t, types.Int, virtual.ReturnType)
	assert.Equal(t, 0, virtual.VTableIndex)
}

func TestOverridingMethodSharesVTableSlot(t *testing.T) {
	e, _ := requireCompiled(t, `
class A { virtual int foo() { return 0; } };
class B : A { int foo() { return 1; } };
`)

	root := e.Scripts[0].Namespace
	a := root.Classes["A"]
	b := root.Classes["B"]
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.Len(t, a.VTable, 1)
	require.Len(t, b.VTable, 1)
	assert.Equal(t, b, b.VTable[0].MemberOf, "the override occupies the parent's slot")
	assert.True(t, b.VTable[0].IsVirtual(), "an override is implicitly virtual")
}

// S3: ambiguous overload produces CouldNotFindValidCallee.
func TestScenarioAmbiguousOverload(t *testing.T) {
	requireDiagnostic(t, `
void f(float x) { }
void f(double x) { }
void test() { f(1); }
`, "CouldNotFindValidCallee")
}

// S4: narrowing rejection in brace initialization.
func TestScenarioNarrowingRejection(t *testing.T) {
	requireDiagnostic(t, `
void test() { int a{3.14}; }
`, "NarrowingConversionInBraceInitialization")
}

// S5: lambda with mixed capture: x and y by value, z by reference.
func TestScenarioLambdaMixedCapture(t *testing.T) {
	e, s := requireCompiled(t, `
void test() {
  int x = 1; int y = 2; int z = 3;
  auto f = [=, &z](){ z = z + x + y; y = y + 1; };
  f();
}
`)

	var lambda *program.LambdaExpression
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if push, ok := stmt.(*program.PushValue); ok && push.Name == "f" {
			value := push.Value
			if cp, isCopy := value.(*program.Copy); isCopy {
				value = cp.Arg
			}
			lambda, _ = value.(*program.LambdaExpression)
		}
	}
	require.NotNil(t, lambda, "f must hold a lambda expression")

	closure := e.TypeSystem.GetLambda(lambda.ClosureType)
	require.NotNil(t, closure)
	require.Len(t, closure.Captures, 3)

	byName := map[string]types.Capture{}
	for _, c := range closure.Captures {
		byName[c.Name] = c
	}
	assert.False(t, byName["x"].ByReference)
	assert.False(t, byName["y"].ByReference)
	assert.True(t, byName["z"].ByReference)
	assert.Len(t, lambda.Captures, 3)

	// The body rewrites outer locals as capture accesses.
	op := closure.CallOperator
	require.NotNil(t, op)
	var sawCapture bool
	var walk func(program.Statement)
	walk = func(st program.Statement) {
		var out []program.Statement
		collectStatements(st, &out)
		for _, s2 := range out {
			if es, ok := s2.(*program.ExpressionStatement); ok {
				if fc, ok := es.Expr.(*program.FunctionCall); ok {
					for _, a := range fc.Args {
						if _, ok := a.(*program.CaptureAccess); ok {
							sawCapture = true
						}
					}
				}
			}
		}
	}
	walk(op.Body.(*program.CompoundStatement))
	assert.True(t, sawCapture, "outer locals must compile to CaptureAccess")
}

func TestLambdaCallCompilesToFunctionVariableCall(t *testing.T) {
	_, s := requireCompiled(t, `
void test() {
  auto f = [](int a){ return a; };
  f(3);
}
`)
	var sawCall bool
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if es, ok := stmt.(*program.ExpressionStatement); ok {
			if _, ok := es.Expr.(*program.FunctionVariableCall); ok {
				sawCall = true
			}
		}
	}
	assert.True(t, sawCall)
}

// S6: template partial specialization: pair<int,int> selects the
// specialization, pair<int,float> the primary.
func TestScenarioPartialSpecialization(t *testing.T) {
	e, _ := requireCompiled(t, `
template<typename T, typename U> class pair { };
template<typename T> class pair<T, T> { };
void test() { pair<int, int> p; pair<int, float> q; }
`)

	tmpl := e.Scripts[0].Namespace.ClassTemplates["pair"]
	require.NotNil(t, tmpl)
	require.Len(t, tmpl.Specializations, 1)
	assert.Len(t, tmpl.Instances, 2)

	same, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Int), types.TypeArg(types.Int)})
	require.True(t, ok)
	mixed, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Int), types.TypeArg(types.Float)})
	require.True(t, ok)
	assert.NotEqual(t, same.Type, mixed.Type)
}

func TestTemplateInstantiationIsMemoized(t *testing.T) {
	e, _ := requireCompiled(t, `
template<typename T, typename U> class pair { };
void test() { pair<int, int> p; pair<int, int> q; }
`)
	tmpl := e.Scripts[0].Namespace.ClassTemplates["pair"]
	require.NotNil(t, tmpl)
	assert.Len(t, tmpl.Instances, 1, "identical argument tuples share one instance")
}

// S7: user-defined literal resolves the km suffix to the literal operator.
func TestScenarioUserDefinedLiteral(t *testing.T) {
	_, s := requireCompiled(t, `
double operator"" km(double x) { return x * 1000.0; }
void test() { auto d = 3.0km; }
`)

	var push *program.PushValue
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if pv, ok := stmt.(*program.PushValue); ok && pv.Name == "d" {
			push = pv
		}
	}
	require.NotNil(t, push)
	assert.Equal(t, types.Double, push.T.BaseType())

	call, ok := push.Value.(*program.FunctionCall)
	if !ok {
		// auto deduction may wrap the call in a copy
		cp, isCopy := push.Value.(*program.Copy)
		require.True(t, isCopy)
		call, ok = cp.Arg.(*program.FunctionCall)
		require.True(t, ok)
	}
	assert.Equal(t, "km", call.Callee.Suffix)
}

func TestUnknownSuffixIsRejected(t *testing.T) {
	requireDiagnostic(t, `
void test() { auto d = 3.0parsec; }
`, "CouldNotFindValidLiteralOperator")
}

// Destructor coverage: every variable pushed has a matching pop on every
// control-flow path leaving its scope.
func TestDestructorCoverage(t *testing.T) {
	_, s := requireCompiled(t, `
void test() {
  int a = 0;
  {
    int b = 1;
  }
  while (a < 3) {
    int c = a;
    if (c == 2) { break; }
    a = a + 1;
  }
  return;
}
`)

	stmts := bodyStatements(t, findFunction(s, "test"))
	pushes, pops := 0, 0
	var ret *program.ReturnStatement
	var brk *program.BreakStatement
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *program.PushValue:
			pushes++
		case *program.PopValue:
			pops++
		case *program.ReturnStatement:
			ret = n
		case *program.BreakStatement:
			brk = n
		}
	}

	require.NotNil(t, ret)
	require.NotNil(t, brk)
	assert.Len(t, ret.Destruction, 1, "return destroys 'a'")
	assert.Len(t, brk.Destruction, 1, "break destroys 'c'")
	assert.GreaterOrEqual(t, pops, pushes, "every push has a pop on the normal path")
}

func TestConstructorHeaderAndDestructorFooter(t *testing.T) {
	e, _ := requireCompiled(t, `
class A { A() { } ~A() { } int x; };
class B : A {
  B(int v) : y(v) { }
  ~B() { }
  int y;
};
`)

	b := e.Scripts[0].Namespace.Classes["B"]
	require.NotNil(t, b)

	var userCtor *types.Function
	for _, ctor := range b.Constructors {
		if ctor.Proto.ParamCount() == 2 && ctor.Proto.Params[1] == types.Int {
			userCtor = ctor
		}
	}
	require.NotNil(t, userCtor)

	var stmts []program.Statement
	collectStatements(userCtor.Body.(*program.CompoundStatement), &stmts)

	var sawInit, sawParentCtor, sawMemberPush bool
	for _, stmt := range stmts {
		switch stmt.(type) {
		case *program.InitObjectStatement:
			sawInit = true
		case *program.ConstructionStatement:
			sawParentCtor = true
		case *program.PushDataMember:
			sawMemberPush = true
		}
	}
	assert.True(t, sawInit, "constructor starts object initialization")
	assert.True(t, sawParentCtor, "constructor calls the parent constructor")
	assert.True(t, sawMemberPush, "constructor initializes data members")

	stmts = nil
	collectStatements(b.Destructor.Body.(*program.CompoundStatement), &stmts)
	var sawMemberPop bool
	for _, stmt := range stmts {
		if _, ok := stmt.(*program.PopDataMember); ok {
			sawMemberPop = true
		}
	}
	assert.True(t, sawMemberPop, "destructor destroys data members")
}

func TestDelegatingConstructor(t *testing.T) {
	e, _ := requireCompiled(t, `
class P {
  P(int a, int b) { }
  P() : P(0, 0) { }
};
`)
	p := e.Scripts[0].Namespace.Classes["P"]
	require.NotNil(t, p)

	var delegating *types.Function
	for _, ctor := range p.Constructors {
		if ctor.Proto.ParamCount() == 1 && !ctor.IsDefaulted() {
			delegating = ctor
		}
	}
	require.NotNil(t, delegating)

	body := delegating.Body.(*program.CompoundStatement)
	require.NotEmpty(t, body.Statements)
	first, ok := body.Statements[0].(*program.ConstructionStatement)
	require.True(t, ok, "a delegating constructor starts with the delegate call")
	assert.Equal(t, 2+1, first.Constructor.Proto.ParamCount())
}

func TestGlobalsAndRootFunction(t *testing.T) {
	_, s := requireCompiled(t, `
int g = 40 + 2;
`)
	require.Len(t, s.Globals, 1)
	assert.Equal(t, "g", s.Globals[0].Name)

	root := findFunction(s, "__script__")
	require.NotNil(t, root)

	var sawPushGlobal bool
	for _, stmt := range bodyStatements(t, root) {
		if _, ok := stmt.(*program.PushGlobal); ok {
			sawPushGlobal = true
		}
	}
	assert.True(t, sawPushGlobal)
}

func TestUninitializedFundamentalGlobalFails(t *testing.T) {
	requireDiagnostic(t, `int g;`, "GlobalVariablesMustBeInitialized")
}

func TestAutoGlobalFails(t *testing.T) {
	requireDiagnostic(t, `auto g = 1;`, "GlobalVariablesCannotBeAuto")
}

func TestReferencesMustBeInitialized(t *testing.T) {
	requireDiagnostic(t, `
void test() { int& r; }
`, "ReferencesMustBeInitialized")
}

func TestAutoNeedsAssignment(t *testing.T) {
	requireDiagnostic(t, `
void test() { auto x; }
`, "AutoMustBeUsedWithAssignment")
}

func TestReturnStatementChecks(t *testing.T) {
	requireDiagnostic(t, `
int f() { return; }
`, "ReturnStatementWithoutValue")

	requireDiagnostic(t, `
void f() { return 1; }
`, "ReturnStatementWithValue")
}

func TestCallToDeletedFunction(t *testing.T) {
	requireDiagnostic(t, `
class C {
public:
  C() { }
  int m() = delete;
};
void test() { C c; c.m(); }
`, "CallToDeletedFunction")
}

// Out-of-order declarations: a class referenced before its definition
// resolves on a later pass of the declaration queue.
func TestRequeueOnUnresolvedTypeName(t *testing.T) {
	e, _ := requireCompiled(t, `
Late g = Late();
class Late { public: Late() { } };
`)
	require.NotNil(t, e.Scripts[0].Namespace.Classes["Late"])
}

func TestEnumDeclarationAndValues(t *testing.T) {
	e, s := requireCompiled(t, `
enum Color { Red, Green = 5, Blue };
int pick() { return Green; }
`)
	color := e.Scripts[0].Namespace.Enums["Color"]
	require.NotNil(t, color)
	assert.Equal(t, 0, color.Values["Red"])
	assert.Equal(t, 5, color.Values["Green"])
	assert.Equal(t, 6, color.Values["Blue"])

	// An unscoped enumerator converts to int on return.
	stmts := bodyStatements(t, findFunction(s, "pick"))
	var sawReturn bool
	for _, stmt := range stmts {
		if ret, ok := stmt.(*program.ReturnStatement); ok && ret.ReturnValue != nil {
			sawReturn = true
			_, isConv := ret.ReturnValue.(*program.FundamentalConversion)
			assert.True(t, isConv, "enum value converts to int")
		}
	}
	assert.True(t, sawReturn)
}

func TestEnumClassScopedAccess(t *testing.T) {
	_, s := requireCompiled(t, `
enum class Mode { On, Off };
Mode pick() { return Mode::On; }
`)
	require.NotNil(t, findFunction(s, "pick"))
}

func TestNamespacesAndQualifiedLookup(t *testing.T) {
	_, s := requireCompiled(t, `
namespace math {
  int twice(int x) { return x + x; }
}
int use() { return math::twice(4); }
`)
	var sawCall bool
	for _, stmt := range bodyStatements(t, findFunction(s, "use")) {
		if ret, ok := stmt.(*program.ReturnStatement); ok && ret.ReturnValue != nil {
			value := ret.ReturnValue
			if cp, isCopy := value.(*program.Copy); isCopy {
				// the returned value is copied into the return slot
				value = cp.Arg
			}
			if fc, ok := value.(*program.FunctionCall); ok {
				sawCall = fc.Callee.Name == "twice"
			}
		}
	}
	assert.True(t, sawCall)
}

func TestUsingDirectiveInjectsNames(t *testing.T) {
	requireCompiled(t, `
namespace math {
  int twice(int x) { return x + x; }
}
using namespace math;
int use() { return twice(4); }
`)
}

func TestOperatorOverloadOnClass(t *testing.T) {
	_, s := requireCompiled(t, `
class Vec {
public:
  Vec() { }
  int x;
  Vec operator+(const Vec& rhs) { return Vec(); }
};
void test() { Vec a; Vec b; a + b; }
`)
	var sawOperatorCall bool
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if es, ok := stmt.(*program.ExpressionStatement); ok {
			if fc, ok := es.Expr.(*program.FunctionCall); ok && fc.Callee.OperatorSymbol == "+" && fc.Callee.IsMember() {
				sawOperatorCall = true
			}
		}
	}
	assert.True(t, sawOperatorCall)
}

func TestArrayLiteralUsesArrayTemplate(t *testing.T) {
	e, s := requireCompiled(t, `
void test() { auto xs = [1, 2, 3]; }
`)
	var arr *program.ArrayExpression
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if pv, ok := stmt.(*program.PushValue); ok {
			if a, ok := pv.Value.(*program.ArrayExpression); ok {
				arr = a
			} else if cp, ok := pv.Value.(*program.Copy); ok {
				if a, ok := cp.Arg.(*program.ArrayExpression); ok {
					arr = a
				}
			}
		}
	}
	require.NotNil(t, arr)
	cls := e.TypeSystem.GetClass(arr.ArrayType)
	require.NotNil(t, cls)
	require.NotNil(t, cls.Instantiation)
	assert.Equal(t, "Array", cls.Instantiation.Template.Name)
	assert.Equal(t, types.Int, cls.Instantiation.Args[0].Type)
}

func TestIncompatibleArrayElementFails(t *testing.T) {
	requireDiagnostic(t, `
class C { public: C() { } };
void test() { auto xs = [1, C()]; }
`, "ArrayElementNotConvertible")
}

func TestConditionalCommonType(t *testing.T) {
	_, s := requireCompiled(t, `
int test(bool c) { return c ? 1 : 2; }
`)
	require.NotNil(t, findFunction(s, "test"))

	requireDiagnostic(t, `
class C { public: C() { } };
void test(bool c) { c ? 1 : C(); }
`, "CouldNotFindCommonType")
}

func TestShortCircuitLowering(t *testing.T) {
	_, s := requireCompiled(t, `
bool test(bool a, bool b) { return a && b || a; }
`)
	var sawAnd, sawOr bool
	for _, stmt := range bodyStatements(t, findFunction(s, "test")) {
		if ret, ok := stmt.(*program.ReturnStatement); ok && ret.ReturnValue != nil {
			var visit func(e program.Expression)
			visit = func(e program.Expression) {
				switch n := e.(type) {
				case *program.LogicalOr:
					sawOr = true
					visit(n.Lhs)
					visit(n.Rhs)
				case *program.LogicalAnd:
					sawAnd = true
					visit(n.Lhs)
					visit(n.Rhs)
				case *program.Copy:
					visit(n.Arg)
				}
			}
			visit(ret.ReturnValue)
		}
	}
	assert.True(t, sawAnd)
	assert.True(t, sawOr)
}

func TestSessionFlagIsExclusive(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.BeginSession())
	s := e.NewScript("x", "int g = 1;")
	err := Compile(e, s)
	assert.ErrorIs(t, err, engine.ErrSessionActive)
	e.EndSession()
	require.NoError(t, Compile(e, s))
}
