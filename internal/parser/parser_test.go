package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxwell/go-cscript/internal/ast"
)

func TestParseExpressionPrecedence(t *testing.T) {
	expr, err := ParseExpression("1 + 2 * 3")
	require.NoError(t, err)

	op, ok := expr.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, "+", op.OperatorTok.Text)

	rhs, ok := op.Arg2.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.OperatorTok.Text)
}

func TestParseExpressionAssociativity(t *testing.T) {
	expr, err := ParseExpression("a - b - c")
	require.NoError(t, err)

	op := expr.(*ast.Operation)
	assert.Equal(t, "-", op.OperatorTok.Text)
	lhs, ok := op.Arg1.(*ast.Operation)
	require.True(t, ok, "subtraction is left associative")
	assert.Equal(t, "-", lhs.OperatorTok.Text)
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	expr, err := ParseExpression("a = b = c")
	require.NoError(t, err)

	op := expr.(*ast.Operation)
	assert.Equal(t, "=", op.OperatorTok.Text)
	_, lhsIsIdent := op.Arg1.(*ast.SimpleIdentifier)
	assert.True(t, lhsIsIdent)
	rhs, ok := op.Arg2.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, "=", rhs.OperatorTok.Text)
}

func TestParseConditional(t *testing.T) {
	expr, err := ParseExpression("a < b ? x + 1 : y")
	require.NoError(t, err)

	cond, ok := expr.(*ast.ConditionalExpression)
	require.True(t, ok)
	_, ok = cond.Condition.(*ast.Operation)
	assert.True(t, ok)
	_, ok = cond.OnTrue.(*ast.Operation)
	assert.True(t, ok)
	_, ok = cond.OnFalse.(*ast.SimpleIdentifier)
	assert.True(t, ok)
}

func TestParseNestedConditional(t *testing.T) {
	expr, err := ParseExpression("a ? b : c ? d : e")
	require.NoError(t, err)
	cond, ok := expr.(*ast.ConditionalExpression)
	require.True(t, ok)
	_, ok = cond.OnFalse.(*ast.ConditionalExpression)
	assert.True(t, ok)
}

func TestParseCallAndMemberAccess(t *testing.T) {
	expr, err := ParseExpression("obj.method(1, x).field")
	require.NoError(t, err)

	member, ok := expr.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "field", member.Member.TokenLiteral())

	call, ok := member.Object.(*ast.FunctionCall)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)

	callee, ok := call.Callee.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "method", callee.Member.TokenLiteral())
}

func TestParsePostfixOperators(t *testing.T) {
	expr, err := ParseExpression("i++")
	require.NoError(t, err)
	op, ok := expr.(*ast.Operation)
	require.True(t, ok)
	assert.True(t, op.Postfix)
	assert.Equal(t, "++", op.OperatorTok.Text)
}

func TestParseArrayLiteralAndSubscript(t *testing.T) {
	expr, err := ParseExpression("[1, 2, 3][0]")
	require.NoError(t, err)

	sub, ok := expr.(*ast.ArraySubscript)
	require.True(t, ok)
	arr, ok := sub.Array.(*ast.ArrayExpression)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParseLambda(t *testing.T) {
	expr, err := ParseExpression("[=, &z](int a){ return a; }")
	require.NoError(t, err)

	lambda, ok := expr.(*ast.LambdaExpression)
	require.True(t, ok)
	require.Len(t, lambda.Captures, 2)
	assert.True(t, lambda.Captures[0].IsDefaultByValue())
	assert.True(t, lambda.Captures[1].Reference.IsValid())
	assert.Equal(t, "z", lambda.Captures[1].Name.Text)
	require.Len(t, lambda.Params, 1)
	assert.Equal(t, "a", lambda.Params[0].Name.Text)
	require.NotNil(t, lambda.Body)
	assert.Len(t, lambda.Body.Statements, 1)
}

func TestParseBraceConstruction(t *testing.T) {
	expr, err := ParseExpression("Point{1, 2}")
	require.NoError(t, err)
	bc, ok := expr.(*ast.BraceConstruction)
	require.True(t, ok)
	assert.Equal(t, "Point", bc.Temporary.TokenLiteral())
	assert.Len(t, bc.Args, 2)
}

func TestParseTemplateIdentifier(t *testing.T) {
	expr, err := ParseExpression("pair<int, float>{}")
	require.NoError(t, err)
	bc, ok := expr.(*ast.BraceConstruction)
	require.True(t, ok)
	tid, ok := bc.Temporary.(*ast.TemplateIdentifier)
	require.True(t, ok)
	assert.Len(t, tid.Args, 2)
}

// a < b > c parses as two comparisons, not as a template-id a<b> followed
// by another operand.
func TestAngleBracketAmbiguityFallsBackToComparison(t *testing.T) {
	expr, err := ParseExpression("a < b > c")
	require.NoError(t, err)
	op, ok := expr.(*ast.Operation)
	require.True(t, ok)
	assert.Equal(t, ">", op.OperatorTok.Text)
}

func parseOne(t *testing.T, source string) ast.Statement {
	t.Helper()
	tree, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, tree.Root.Statements, 1)
	return tree.Root.Statements[0]
}

func TestParseVariableDecl(t *testing.T) {
	stmt := parseOne(t, "int x = 3;")
	v, ok := stmt.(*ast.VariableDecl)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Text)
	_, ok = v.Init.(*ast.AssignmentInitialization)
	assert.True(t, ok)
}

func TestParseVariableWithConstructorInit(t *testing.T) {
	stmt := parseOne(t, "Point p(1, 2);")
	v, ok := stmt.(*ast.VariableDecl)
	require.True(t, ok)
	init, ok := v.Init.(*ast.ConstructorInitialization)
	require.True(t, ok)
	assert.Len(t, init.Args, 2)
}

func TestParseFunctionDecl(t *testing.T) {
	stmt := parseOne(t, "int max(int a, int b) { return a; }")
	f, ok := stmt.(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "max", f.Name.TokenLiteral())
	require.Len(t, f.Params, 2)
	assert.Equal(t, "a", f.Params[0].Name.Text)
	assert.Equal(t, ast.BodyCompound, f.BodyKind)
}

// The parenthesized range is concurrently parsed as call arguments and as a
// parameter list; the first disambiguating token ('{', '=', ';', 'const')
// commits one interpretation. A trailing ';' commits the variable reading.
func TestDeclAmbiguity(t *testing.T) {
	stmt := parseOne(t, "int f(int x) { return x; }")
	_, isFunc := stmt.(*ast.FunctionDecl)
	assert.True(t, isFunc)

	stmt = parseOne(t, "int f(0);")
	_, isVar := stmt.(*ast.VariableDecl)
	assert.True(t, isVar)

	stmt = parseOne(t, "Point p(a, b);")
	_, isVar = stmt.(*ast.VariableDecl)
	assert.True(t, isVar)
}

func TestParseClass(t *testing.T) {
	src := `class B : A {
public:
  int n;
  B(int v) : n(v) { }
  ~B() { }
  virtual int foo() { return 1; }
  operator int() const { return n; }
  int operator+(int rhs) { return n + rhs; }
};`
	stmt := parseOne(t, src)
	cls, ok := stmt.(*ast.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "B", cls.Name.TokenLiteral())
	require.NotNil(t, cls.Parent)
	assert.Equal(t, "A", cls.Parent.TokenLiteral())

	var kinds []string
	for _, m := range cls.Members {
		switch m.(type) {
		case *ast.AccessSpecifier:
			kinds = append(kinds, "access")
		case *ast.VariableDecl:
			kinds = append(kinds, "var")
		case *ast.ConstructorDecl:
			kinds = append(kinds, "ctor")
		case *ast.DestructorDecl:
			kinds = append(kinds, "dtor")
		case *ast.CastDecl:
			kinds = append(kinds, "cast")
		case *ast.OperatorOverloadDecl:
			kinds = append(kinds, "op")
		case *ast.FunctionDecl:
			kinds = append(kinds, "fn")
		}
	}
	assert.Equal(t, []string{"access", "var", "ctor", "dtor", "fn", "cast", "op"}, kinds)
}

func TestParseConstructorMemberInits(t *testing.T) {
	src := `class P { P(int a) : x(a), y{0} { } int x; int y; };`
	stmt := parseOne(t, src)
	cls := stmt.(*ast.ClassDecl)
	ctor, ok := cls.Members[0].(*ast.ConstructorDecl)
	require.True(t, ok)
	require.Len(t, ctor.MemberInits, 2)
	assert.Equal(t, "x", ctor.MemberInits[0].Name.TokenLiteral())
	_, isBrace := ctor.MemberInits[1].Init.(*ast.BraceInitialization)
	assert.True(t, isBrace)
}

func TestParseDefaultedAndDeleted(t *testing.T) {
	src := `class C { C() = default; C(int) = delete; virtual int f() = 0; };`
	stmt := parseOne(t, src)
	cls := stmt.(*ast.ClassDecl)
	require.Len(t, cls.Members, 3)
	assert.Equal(t, ast.BodyDefaulted, cls.Members[0].(*ast.ConstructorDecl).BodyKind)
	assert.Equal(t, ast.BodyDeleted, cls.Members[1].(*ast.ConstructorDecl).BodyKind)
	assert.Equal(t, ast.BodyPure, cls.Members[2].(*ast.FunctionDecl).BodyKind)
}

func TestParseEnum(t *testing.T) {
	stmt := parseOne(t, "enum class Color { Red, Green = 5, Blue };")
	e, ok := stmt.(*ast.EnumDecl)
	require.True(t, ok)
	assert.True(t, e.ClassKeyword.IsValid())
	require.Len(t, e.Values, 3)
	assert.Equal(t, "Green", e.Values[1].Name.Text)
	assert.NotNil(t, e.Values[1].Value)
	assert.Nil(t, e.Values[2].Value)
}

func TestParseTemplateClass(t *testing.T) {
	stmt := parseOne(t, "template<typename T, typename U> class pair { };")
	td, ok := stmt.(*ast.TemplateDecl)
	require.True(t, ok)
	require.Len(t, td.Params, 2)
	assert.True(t, td.IsClassTemplate())
	assert.False(t, td.IsPartialSpecialization())
	assert.False(t, td.IsFullSpecialization())
}

func TestParsePartialSpecialization(t *testing.T) {
	stmt := parseOne(t, "template<typename T> class pair<T, T> { };")
	td := stmt.(*ast.TemplateDecl)
	assert.True(t, td.IsPartialSpecialization())
	assert.False(t, td.IsFullSpecialization())
}

func TestParseFullSpecialization(t *testing.T) {
	stmt := parseOne(t, "template<> class pair<int, int> { };")
	td := stmt.(*ast.TemplateDecl)
	assert.True(t, td.IsFullSpecialization())
}

func TestParseNestedTemplateArgsWithRightRightAngle(t *testing.T) {
	stmt := parseOne(t, "pair<int, Array<int>> p;")
	v, ok := stmt.(*ast.VariableDecl)
	require.True(t, ok)
	tid, ok := v.VarType.Name.(*ast.TemplateIdentifier)
	require.True(t, ok)
	require.Len(t, tid.Args, 2)
	inner, ok := tid.Args[1].(*ast.TypeNode)
	require.True(t, ok)
	innerTid, ok := inner.Value.Name.(*ast.TemplateIdentifier)
	require.True(t, ok)
	assert.Len(t, innerTid.Args, 1)
}

func TestParseUsingForms(t *testing.T) {
	tree, err := Parse(`using namespace math;
using math::cos;
using real = double;
namespace m = math;
typedef int integer;`)
	require.NoError(t, err)
	require.Len(t, tree.Root.Statements, 5)
	_, ok := tree.Root.Statements[0].(*ast.UsingDirective)
	assert.True(t, ok)
	_, ok = tree.Root.Statements[1].(*ast.UsingDeclaration)
	assert.True(t, ok)
	_, ok = tree.Root.Statements[2].(*ast.TypeAliasDeclaration)
	assert.True(t, ok)
	_, ok = tree.Root.Statements[3].(*ast.NamespaceAliasDefinition)
	assert.True(t, ok)
	_, ok = tree.Root.Statements[4].(*ast.Typedef)
	assert.True(t, ok)
}

func TestParseImport(t *testing.T) {
	stmt := parseOne(t, "import math.linear;")
	imp, ok := stmt.(*ast.ImportDirective)
	require.True(t, ok)
	assert.Equal(t, "math.linear", imp.ModuleName())
}

func TestParseLiteralOperatorDecl(t *testing.T) {
	stmt := parseOne(t, `double operator"" km(double x) { return x; }`)
	op, ok := stmt.(*ast.OperatorOverloadDecl)
	require.True(t, ok)
	lon, ok := op.Name.(*ast.LiteralOperatorName)
	require.True(t, ok)
	assert.Equal(t, "km", lon.SuffixName())
}

func TestParseControlFlow(t *testing.T) {
	src := `void f() {
  for (int i = 0; i < 10; i++) {
    if (i == 5) break; else continue;
  }
  while (true) { return; }
}`
	stmt := parseOne(t, src)
	fn := stmt.(*ast.FunctionDecl)
	require.Len(t, fn.Body.Statements, 2)
	loop, ok := fn.Body.Statements[0].(*ast.ForLoop)
	require.True(t, ok)
	_, ok = loop.Init.(*ast.VariableDecl)
	assert.True(t, ok)
	require.NotNil(t, loop.Condition)
	require.NotNil(t, loop.Increment)
	_, ok = fn.Body.Statements[1].(*ast.WhileLoop)
	assert.True(t, ok)
}

func TestParseAttribute(t *testing.T) {
	stmt := parseOne(t, `[[persistent]] int x = 0;`)
	v, ok := stmt.(*ast.VariableDecl)
	require.True(t, ok)
	require.NotNil(t, v.Attribute)
	assert.Equal(t, "persistent", v.Attribute.Attribute.TokenLiteral())
}

func TestSyntaxErrorCarriesCode(t *testing.T) {
	_, err := Parse("class ;")
	require.Error(t, err)
	se, ok := err.(*SyntaxError)
	require.True(t, ok)
	assert.Equal(t, ExpectedIdentifier, se.Code)
}
