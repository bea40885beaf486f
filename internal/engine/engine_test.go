package engine

import (
	"testing"

	"github.com/tmaxwell/go-cscript/internal/types"
)

func TestSessionFlag(t *testing.T) {
	e := New()
	if err := e.BeginSession(); err != nil {
		t.Fatal(err)
	}
	if err := e.BeginSession(); err != ErrSessionActive {
		t.Fatalf("nested session: %v", err)
	}
	e.EndSession()
	if err := e.BeginSession(); err != nil {
		t.Fatalf("after EndSession: %v", err)
	}
}

func TestBootstrapRegistersSupportTemplates(t *testing.T) {
	e := New()
	for _, name := range []string{"initializer_list", "Array"} {
		tmpl := e.Root.ClassTemplates[name]
		if tmpl == nil {
			t.Fatalf("missing template %s", name)
		}
		if tmpl.Builtin == nil {
			t.Errorf("%s must be a builtin template", name)
		}
	}
}

func TestArrayTemplateInstantiation(t *testing.T) {
	e := New()
	tmpl := e.Root.ClassTemplates["Array"]

	cls, err := tmpl.Builtin(e.TypeSystem, []types.TemplateArg{types.TypeArg(types.Int)})
	if err != nil {
		t.Fatal(err)
	}
	if cls.Instantiation == nil || cls.Instantiation.Template != tmpl {
		t.Error("the instance must record its template")
	}
	if cls.DefaultConstructor() == nil {
		t.Error("Array<int> must be default constructible")
	}
	var subscript *types.Function
	for _, op := range cls.Operators {
		if op.OperatorSymbol == "[]" {
			subscript = op
		}
	}
	if subscript == nil {
		t.Fatal("Array<int> must have operator[]")
	}
	if subscript.ReturnType() != types.Ref(types.Int) {
		t.Error("operator[] returns a reference to the element type")
	}
}

func TestInitializerListQueries(t *testing.T) {
	e := New()
	tmpl := e.Root.ClassTemplates["initializer_list"]

	cls, err := tmpl.Builtin(e.TypeSystem, []types.TemplateArg{types.TypeArg(types.Double)})
	if err != nil {
		t.Fatal(err)
	}
	if !e.TypeSystem.IsInitializerList(cls.Type) {
		t.Error("an initializer_list instance must be recognized")
	}
	elem, ok := e.TypeSystem.InitializerListElementType(cls.Type)
	if !ok || elem != types.Double {
		t.Error("the element type must be retrievable")
	}
	if e.TypeSystem.IsInitializerList(types.Int) {
		t.Error("int is not an initializer list")
	}
}

func TestStringClassRegistered(t *testing.T) {
	e := New()
	if e.StringClass() == nil {
		t.Fatal("missing String class")
	}
	if e.Root.Classes["String"] != e.StringClass() {
		t.Error("String must be reachable by name")
	}
}

func TestFundamentalOperatorsRegistered(t *testing.T) {
	e := New()
	var intPlus, intEq bool
	for _, op := range e.Root.Operators {
		if op.OperatorSymbol == "+" && len(op.Proto.Params) == 2 && op.Proto.Params[0] == types.Int {
			intPlus = true
		}
		if op.OperatorSymbol == "==" && len(op.Proto.Params) == 2 && op.Proto.Params[0] == types.Int {
			intEq = true
		}
	}
	if !intPlus || !intEq {
		t.Error("the builtin operator set must cover int arithmetic and comparison")
	}
}

func TestScriptDiagnostics(t *testing.T) {
	e := New()
	s := e.NewScript("x.csl", "int a = 1;")
	if s.HasErrors() {
		t.Error("fresh script has no errors")
	}
	s.AddDiagnostic(Diagnostic{Severity: Warning, Code: "W", Message: "careful"})
	if s.HasErrors() {
		t.Error("warnings do not mark the script failed")
	}
	s.AddDiagnostic(Diagnostic{Severity: Error, Code: "E", Message: "broken"})
	if !s.HasErrors() {
		t.Error("errors mark the script failed")
	}
}
