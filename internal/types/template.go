package types

import (
	"strconv"

	"github.com/tmaxwell/go-cscript/internal/ast"
)

// TemplateParamKind is the kind of one template parameter.
type TemplateParamKind int

const (
	TypeTemplateParam TemplateParamKind = iota
	IntTemplateParam
	BoolTemplateParam
)

// TemplateParameter is one declared parameter of a template.
type TemplateParameter struct {
	Kind    TemplateParamKind
	Name    string
	Default ast.Node
}

// HasDefault reports whether the parameter is defaulted.
func (p TemplateParameter) HasDefault() bool { return p.Default != nil }

// TemplateArgKind discriminates TemplateArg.
type TemplateArgKind int

const (
	TypeArgument TemplateArgKind = iota
	IntArgument
	BoolArgument
)

// TemplateArg is one concrete template argument.
type TemplateArg struct {
	Kind TemplateArgKind
	Type Type
	Int  int64
	Bool bool
}

// TypeArg builds a type argument.
func TypeArg(t Type) TemplateArg { return TemplateArg{Kind: TypeArgument, Type: t} }

// IntArg builds an integral argument.
func IntArg(n int64) TemplateArg { return TemplateArg{Kind: IntArgument, Int: n} }

// BoolArg builds a boolean argument.
func BoolArg(b bool) TemplateArg { return TemplateArg{Kind: BoolArgument, Bool: b} }

// Equals compares two arguments.
func (a TemplateArg) Equals(other TemplateArg) bool { return a == other }

// key renders a stable memoization key component.
func (a TemplateArg) key() string {
	switch a.Kind {
	case IntArgument:
		return "i" + strconv.FormatInt(a.Int, 10)
	case BoolArgument:
		if a.Bool {
			return "b1"
		}
		return "b0"
	}
	return "t" + strconv.FormatUint(uint64(a.Type), 16)
}

// ArgumentsKey renders the memoization key of an argument tuple.
func ArgumentsKey(args []TemplateArg) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += a.key()
	}
	return s
}

// TemplateInstance records the origin of a template-produced class.
type TemplateInstance struct {
	Template *ClassTemplate
	Args     []TemplateArg
}

// ClassTemplate is a class template with its primary declaration and any
// specializations. Instantiation is memoized per argument tuple.
//
// Builtin templates (initializer_list, Array) synthesize their instances in
// Go instead of compiling a declaration.
type ClassTemplate struct {
	Name            string
	Params          []TemplateParameter
	Decl            *ast.TemplateDecl
	DeclAST         *ast.AST
	Specializations []*ast.TemplateDecl
	Enclosing       *Namespace

	Instances map[string]*Class

	Builtin func(ts *TypeSystem, args []TemplateArg) (*Class, error)
}

// NewClassTemplate creates an empty class template.
func NewClassTemplate(name string, params []TemplateParameter, enclosing *Namespace) *ClassTemplate {
	return &ClassTemplate{
		Name:      name,
		Params:    params,
		Enclosing: enclosing,
		Instances: map[string]*Class{},
	}
}

// FindInstance consults the memoization map.
func (t *ClassTemplate) FindInstance(args []TemplateArg) (*Class, bool) {
	c, ok := t.Instances[ArgumentsKey(args)]
	return c, ok
}

// RememberInstance memoizes an instantiation.
func (t *ClassTemplate) RememberInstance(args []TemplateArg, c *Class) {
	t.Instances[ArgumentsKey(args)] = c
}

// NonDefaultedParamCount returns the number of leading parameters without a
// default.
func (t *ClassTemplate) NonDefaultedParamCount() int {
	n := 0
	for _, p := range t.Params {
		if !p.HasDefault() {
			n++
		}
	}
	return n
}

// FunctionTemplate is a function template; instantiation is driven by
// template argument deduction and memoized like class templates.
type FunctionTemplate struct {
	Name      string
	Params    []TemplateParameter
	Decl      *ast.TemplateDecl
	DeclAST   *ast.AST
	Enclosing *Namespace

	Instances map[string]*Function
}

// NewFunctionTemplate creates an empty function template.
func NewFunctionTemplate(name string, params []TemplateParameter, enclosing *Namespace) *FunctionTemplate {
	return &FunctionTemplate{
		Name:      name,
		Params:    params,
		Enclosing: enclosing,
		Instances: map[string]*Function{},
	}
}

// FindInstance consults the memoization map.
func (t *FunctionTemplate) FindInstance(args []TemplateArg) (*Function, bool) {
	f, ok := t.Instances[ArgumentsKey(args)]
	return f, ok
}

// RememberInstance memoizes an instantiation.
func (t *FunctionTemplate) RememberInstance(args []TemplateArg, f *Function) {
	t.Instances[ArgumentsKey(args)] = f
}
