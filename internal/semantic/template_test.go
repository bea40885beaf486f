package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
)

func TestFunctionTemplateDeduction(t *testing.T) {
	_, s := requireCompiled(t, `
template<typename T> T identity(T x) { return x; }
void test() { identity(42); identity(1.5); }
`)

	tmpl := s.Namespace.FunctionTemplates["identity"]
	require.NotNil(t, tmpl)
	assert.Len(t, tmpl.Instances, 2, "one instance per deduced argument tuple")

	intInstance, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Int)})
	require.True(t, ok)
	assert.Equal(t, types.Int, intInstance.ReturnType())

	doubleInstance, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Double)})
	require.True(t, ok)
	assert.Equal(t, types.Double, doubleInstance.ReturnType())
}

func TestFunctionTemplateDeductionIsMemoized(t *testing.T) {
	_, s := requireCompiled(t, `
template<typename T> T identity(T x) { return x; }
void test() { identity(1); identity(2); identity(3); }
`)
	tmpl := s.Namespace.FunctionTemplates["identity"]
	require.NotNil(t, tmpl)
	assert.Len(t, tmpl.Instances, 1)
}

// Conflicting deductions for the same parameter fail; agreeable duplicates
// collapse.
func TestDeductionConflictFails(t *testing.T) {
	requireDiagnostic(t, `
template<typename T> int both(T a, T b) { return 0; }
void test() { both(1, 1.5); }
`, "CouldNotFindPrimaryFunctionTemplate")
}

func TestClassTemplateWithValueParameter(t *testing.T) {
	e, _ := requireCompiled(t, `
template<typename T, int N> class buffer { };
void test() { buffer<int, 16> b; }
`)
	tmpl := e.Scripts[0].Namespace.ClassTemplates["buffer"]
	require.NotNil(t, tmpl)
	_, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Int), types.IntArg(16)})
	assert.True(t, ok)
}

func TestTemplateDefaultedParameter(t *testing.T) {
	e, _ := requireCompiled(t, `
template<typename T, typename U = int> class wrap { };
void test() { wrap<double> w; }
`)
	tmpl := e.Scripts[0].Namespace.ClassTemplates["wrap"]
	require.NotNil(t, tmpl)
	_, ok := tmpl.FindInstance([]types.TemplateArg{types.TypeArg(types.Double), types.TypeArg(types.Int)})
	assert.True(t, ok, "the defaulted parameter fills from its default")
}

func TestSpecializationWithoutPrimaryFails(t *testing.T) {
	requireDiagnostic(t, `
template<typename T> class pair<T, T> { };
`, "CouldNotFindPrimaryClassTemplate")
}

// The pattern matcher unifies specialization patterns with concrete
// argument tuples, collecting parameter deductions.
func TestPatternMatcher(t *testing.T) {
	e, _ := requireCompiled(t, `
template<typename T, typename U> class pair { };
template<typename T> class pair<T, T> { };
`)
	script := e.Scripts[0]
	tmpl := script.Namespace.ClassTemplates["pair"]
	require.NotNil(t, tmpl)
	require.Len(t, tmpl.Specializations, 1)
	spec := tmpl.Specializations[0]

	cs := &compilerSession{engine: e, script: script}
	cs.templates = &TemplateProcessor{cs: cs}
	cs.resolver = &NameResolver{TS: e.TypeSystem, TNP: cs.templates}

	classDecl := spec.Decl.(*ast.ClassDecl)
	tid := classDecl.Name.(*ast.TemplateIdentifier)

	m := newPatternMatcher(cs, spec)
	ok := m.matchArgumentList(tid.Args, []types.TemplateArg{types.TypeArg(types.Int), types.TypeArg(types.Int)})
	require.True(t, ok, "pair<T, T> matches (int, int)")
	assert.Equal(t, types.TypeArg(types.Int), m.deductions["T"])

	m = newPatternMatcher(cs, spec)
	ok = m.matchArgumentList(tid.Args, []types.TemplateArg{types.TypeArg(types.Int), types.TypeArg(types.Float)})
	assert.False(t, ok, "pair<T, T> must not match (int, float)")
}
