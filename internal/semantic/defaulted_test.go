package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

func TestImplicitSpecialMembers(t *testing.T) {
	e, _ := requireCompiled(t, `
class P { public: int x; int y; };
`)
	p := e.Scripts[0].Namespace.Classes["P"]
	require.NotNil(t, p)

	assert.NotNil(t, p.DefaultConstructor(), "implicit default constructor")
	assert.NotNil(t, p.CopyConstructor(), "implicit copy constructor")
	assert.NotNil(t, p.Destructor, "implicit destructor")

	var assign *types.Function
	for _, op := range p.Operators {
		if op.OperatorSymbol == "=" {
			assign = op
		}
	}
	require.NotNil(t, assign, "implicit copy assignment")
	assert.True(t, assign.IsDefaulted())
}

func TestDefaultedCopyConstructorIsFieldWise(t *testing.T) {
	e, _ := requireCompiled(t, `
class P { public: int x; double y; };
`)
	p := e.Scripts[0].Namespace.Classes["P"]
	copyCtor := p.CopyConstructor()
	require.NotNil(t, copyCtor)

	body, ok := copyCtor.Body.(*program.CompoundStatement)
	require.True(t, ok, "the defaulted copy constructor has a synthesized body")

	var stmts []program.Statement
	collectStatements(body, &stmts)
	memberPushes := 0
	for _, s := range stmts {
		if _, ok := s.(*program.PushDataMember); ok {
			memberPushes++
		}
	}
	assert.Equal(t, 2, memberPushes, "one push per data member")
}

func TestExplicitlyDefaultedConstructor(t *testing.T) {
	e, _ := requireCompiled(t, `
class P {
public:
  P() = default;
  int x;
};
`)
	p := e.Scripts[0].Namespace.Classes["P"]
	ctor := p.DefaultConstructor()
	require.NotNil(t, ctor)
	assert.True(t, ctor.IsDefaulted())
	_, ok := ctor.Body.(*program.CompoundStatement)
	assert.True(t, ok, "explicitly defaulted members get a synthesized body")
}

// A member whose type has a deleted copy constructor deletes the implicit
// copy constructor instead of reporting an error.
func TestNonCopyableMemberDeletesImplicitCopy(t *testing.T) {
	e, s := compileSource(t, `
class NoCopy {
public:
  NoCopy() { }
  NoCopy(const NoCopy& other) = delete;
};
class Holder { public: NoCopy field; };
`)
	require.True(t, s.Compiled, "implicit member synthesis failures are silent")

	holder := e.Scripts[0].Namespace.Classes["Holder"]
	require.NotNil(t, holder)
	copyCtor := holder.CopyConstructor()
	require.NotNil(t, copyCtor)
	assert.True(t, copyCtor.IsDeleted(), "the implicit copy constructor is deleted")
}

func TestStaticDataMember(t *testing.T) {
	e, _ := requireCompiled(t, `
class Counter {
public:
  static int start = 10;
};
int use() { return Counter::start; }
`)
	counter := e.Scripts[0].Namespace.Classes["Counter"]
	require.NotNil(t, counter)
	sm := counter.StaticMembers["start"]
	require.NotNil(t, sm)
	assert.Equal(t, types.Int, sm.Type)
	require.NotNil(t, sm.Init)
}

func TestStaticMemberNeedsInitializer(t *testing.T) {
	requireDiagnostic(t, `
class C { static int n; };
`, "MissingStaticInitialization")
}

func TestAccessControl(t *testing.T) {
	requireDiagnostic(t, `
class Sealed {
  int secret;
public:
  Sealed() { }
};
int peek() { Sealed s; return s.secret; }
`, "InaccessibleMember")
}

func TestMemberAccessFromOwnClass(t *testing.T) {
	requireCompiled(t, `
class Box {
  int value;
public:
  Box() { }
  int get() { return value; }
};
`)
}

type memoryLoader struct {
	sources map[string]string
}

func (l *memoryLoader) Load(e *engine.Engine, name string) (*engine.Script, error) {
	src, ok := l.sources[name]
	if !ok {
		return nil, nil
	}
	s := e.NewScript(name+".csl", src)
	// Imports load outside the active session; the test drives the nested
	// compilation after the outer one finishes.
	return s, nil
}

func TestImportUnknownModule(t *testing.T) {
	requireDiagnostic(t, `import vendor.missing;`, "UnknownModuleName")
}

func TestImportThroughLoader(t *testing.T) {
	e := engine.New()
	e.Loader = &memoryLoader{sources: map[string]string{"util": "int helper() { return 7; }"}}
	s := e.NewScript("main.csl", `import util;`)
	require.NoError(t, Compile(e, s))
	assert.True(t, s.Compiled)
	require.Len(t, e.Scripts, 2)
}
