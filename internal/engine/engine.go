// Package engine ties the compiler front-end to an embedding host: it owns
// the type system, the root namespace, the loaded scripts and the module
// loader. Value representation and execution are host concerns.
package engine

import (
	"errors"

	"github.com/tmaxwell/go-cscript/internal/types"
)

// ErrSessionActive is returned when a compilation session is requested while
// another one is running; hosts hold at most one session at a time.
var ErrSessionActive = errors.New("a compiler session is already active")

// Engine is the embedding host's entry point into the front-end.
type Engine struct {
	TypeSystem    *types.TypeSystem
	Root          *types.Namespace
	Scripts       []*Script
	SearchDir     string
	ScriptExt     string
	Loader        ModuleLoader
	FunctionMaker FunctionCreator

	stringClass   *types.Class
	sessionActive bool
}

// New creates an engine with the fundamental types and the built-in support
// templates registered.
func New() *Engine {
	e := &Engine{
		TypeSystem: types.NewTypeSystem(),
		Root:       types.NewNamespace("", nil),
		ScriptExt:  ".csl",
	}
	e.registerSupportTemplates()
	e.registerBuiltins()
	return e
}

// BeginSession marks the engine busy compiling; at most one session exists
// at a time.
func (e *Engine) BeginSession() error {
	if e.sessionActive {
		return ErrSessionActive
	}
	e.sessionActive = true
	return nil
}

// EndSession releases the session flag.
func (e *Engine) EndSession() { e.sessionActive = false }

// SessionActive reports whether a compilation is running.
func (e *Engine) SessionActive() bool { return e.sessionActive }

// NewScript registers a script for the given source text.
func (e *Engine) NewScript(path, source string) *Script {
	s := &Script{
		Path:      path,
		Source:    source,
		Namespace: types.NewNamespace("", e.Root),
	}
	e.Scripts = append(e.Scripts, s)
	return s
}

// FindModule returns an already loaded script by module name.
func (e *Engine) FindModule(name string) *Script {
	for _, s := range e.Scripts {
		if s.ModuleName == name {
			return s
		}
	}
	return nil
}

// registerSupportTemplates installs initializer_list<T> and Array<T>, the
// two class templates the compiler itself relies on for list initialization
// and array literals.
func (e *Engine) registerSupportTemplates() {
	ilist := types.NewClassTemplate("initializer_list", []types.TemplateParameter{
		{Kind: types.TypeTemplateParam, Name: "T"},
	}, e.Root)
	ilist.Builtin = func(ts *types.TypeSystem, args []types.TemplateArg) (*types.Class, error) {
		elem := args[0].Type
		c := types.NewClass("initializer_list")
		c.EnclosingNamespace = e.Root
		t := ts.RegisterClass(c)
		c.Instantiation = &types.TemplateInstance{Template: ilist, Args: args}

		size := types.NewFunction("size", types.NewPrototype(types.Int, types.Cref(t).WithFlag(types.ThisFlag)))
		size.MemberOf = c
		size.Flags |= types.ConstMemberFlag
		c.Methods = append(c.Methods, size)

		at := types.NewFunction("at", types.NewPrototype(types.Cref(elem), types.Cref(t).WithFlag(types.ThisFlag), types.Int))
		at.MemberOf = c
		at.Flags |= types.ConstMemberFlag
		c.Methods = append(c.Methods, at)

		return c, nil
	}
	e.Root.ClassTemplates[ilist.Name] = ilist

	array := types.NewClassTemplate("Array", []types.TemplateParameter{
		{Kind: types.TypeTemplateParam, Name: "T"},
	}, e.Root)
	array.Builtin = func(ts *types.TypeSystem, args []types.TemplateArg) (*types.Class, error) {
		elem := args[0].Type
		c := types.NewClass("Array")
		c.EnclosingNamespace = e.Root
		t := ts.RegisterClass(c)
		c.Instantiation = &types.TemplateInstance{Template: array, Args: args}

		defaultCtor := types.NewFunction("Array", types.NewPrototype(types.Void, t.WithFlag(types.ThisFlag)))
		defaultCtor.Kind = types.ConstructorFunction
		defaultCtor.MemberOf = c
		c.Constructors = append(c.Constructors, defaultCtor)

		copyCtor := types.NewFunction("Array", types.NewPrototype(types.Void, t.WithFlag(types.ThisFlag), types.Cref(t)))
		copyCtor.Kind = types.ConstructorFunction
		copyCtor.MemberOf = c
		c.Constructors = append(c.Constructors, copyCtor)

		sizeCtor := types.NewFunction("Array", types.NewPrototype(types.Void, t.WithFlag(types.ThisFlag), types.Int))
		sizeCtor.Kind = types.ConstructorFunction
		sizeCtor.Flags |= types.ExplicitFlag
		sizeCtor.MemberOf = c
		c.Constructors = append(c.Constructors, sizeCtor)

		dtor := types.NewFunction("~Array", types.DestructorPrototype(t.WithFlag(types.ThisFlag)))
		dtor.Kind = types.DestructorFunction
		dtor.MemberOf = c
		c.Destructor = dtor

		size := types.NewFunction("size", types.NewPrototype(types.Int, types.Cref(t).WithFlag(types.ThisFlag)))
		size.MemberOf = c
		size.Flags |= types.ConstMemberFlag
		c.Methods = append(c.Methods, size)

		subscript := types.NewFunction("operator[]", types.BinaryOperatorPrototype(types.Ref(elem), t.WithFlag(types.ThisFlag), types.Int))
		subscript.Kind = types.OperatorFunction
		subscript.OperatorSymbol = "[]"
		subscript.MemberOf = c
		c.Operators = append(c.Operators, subscript)

		return c, nil
	}
	e.Root.ClassTemplates[array.Name] = array
}
