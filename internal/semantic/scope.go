package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// ScopeKind discriminates the variants of a scope chain node.
type ScopeKind int

const (
	RootNamespaceScope ScopeKind = iota
	NamespaceScope
	ClassScope
	EnumScope
	ScriptScope
	FunctionScope
	TemplateScope
)

// FunctionScopeCategory classifies function-local scopes.
type FunctionScopeCategory int

const (
	FunctionArguments FunctionScopeCategory = iota
	FunctionBody
	IfBody
	WhileBody
	ForInit
	ForBody
	CompoundStatementBody
	LambdaBody
)

// Scope is a node in the lexical scope chain. Lookup delegates upward on
// miss; using-directives and using-declarations inject extra visible names
// without altering the chain.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope

	Namespace *types.Namespace
	Class     *types.Class
	Enum      *types.Enum
	Script    *engine.Script

	// Function-local scopes.
	Category    FunctionScopeCategory
	StackOffset int
	Compiler    *FunctionCompiler

	// Template parameter bindings.
	TemplateArgs map[string]types.TemplateArg

	// Injected visibility.
	UsingDirectives   []*types.Namespace
	UsingDeclarations map[string][]*types.Function
	TypeAliases       map[string]types.Type
	NamespaceAliases  map[string]*types.Namespace
}

// NewRootScope wraps the engine root namespace.
func NewRootScope(root *types.Namespace) *Scope {
	return &Scope{Kind: RootNamespaceScope, Namespace: root}
}

// NewNamespaceScope chains a namespace under parent.
func NewNamespaceScope(ns *types.Namespace, parent *Scope) *Scope {
	return &Scope{Kind: NamespaceScope, Namespace: ns, Parent: parent}
}

// NewScriptScope wraps a script's namespace.
func NewScriptScope(s *engine.Script, parent *Scope) *Scope {
	return &Scope{Kind: ScriptScope, Script: s, Namespace: s.Namespace, Parent: parent}
}

// NewClassScope chains a class under parent.
func NewClassScope(c *types.Class, parent *Scope) *Scope {
	return &Scope{Kind: ClassScope, Class: c, Parent: parent}
}

// NewEnumScope chains an enum under parent.
func NewEnumScope(e *types.Enum, parent *Scope) *Scope {
	return &Scope{Kind: EnumScope, Enum: e, Parent: parent}
}

// NewFunctionScope chains a function-local scope; sp is the stack pointer
// where the scope's variables begin.
func NewFunctionScope(fc *FunctionCompiler, cat FunctionScopeCategory, sp int, parent *Scope) *Scope {
	return &Scope{Kind: FunctionScope, Compiler: fc, Category: cat, StackOffset: sp, Parent: parent}
}

// NewTemplateScope binds template arguments to parameter names.
func NewTemplateScope(args map[string]types.TemplateArg, parent *Scope) *Scope {
	return &Scope{Kind: TemplateScope, TemplateArgs: args, Parent: parent}
}

// InjectUsingDirective makes a namespace's names visible in this scope.
func (s *Scope) InjectUsingDirective(ns *types.Namespace) {
	s.UsingDirectives = append(s.UsingDirectives, ns)
}

// InjectUsingDeclaration makes a set of function overloads visible under
// their unqualified name.
func (s *Scope) InjectUsingDeclaration(name string, fns []*types.Function) {
	if s.UsingDeclarations == nil {
		s.UsingDeclarations = map[string][]*types.Function{}
	}
	s.UsingDeclarations[name] = append(s.UsingDeclarations[name], fns...)
}

// InjectTypeAlias makes a type visible under an alias.
func (s *Scope) InjectTypeAlias(name string, t types.Type) {
	if s.TypeAliases == nil {
		s.TypeAliases = map[string]types.Type{}
	}
	s.TypeAliases[name] = t
}

// InjectNamespaceAlias makes a namespace visible under an alias.
func (s *Scope) InjectNamespaceAlias(name string, ns *types.Namespace) {
	if s.NamespaceAliases == nil {
		s.NamespaceAliases = map[string]*types.Namespace{}
	}
	s.NamespaceAliases[name] = ns
}

// EnclosingClass walks the chain for the innermost class scope.
func (s *Scope) EnclosingClass() *types.Class {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == ClassScope {
			return cur.Class
		}
	}
	return nil
}

// EnclosingNamespace walks the chain for the innermost namespace.
func (s *Scope) EnclosingNamespace() *types.Namespace {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Namespace != nil {
			return cur.Namespace
		}
	}
	return nil
}

// EnclosingScript walks the chain for the owning script.
func (s *Scope) EnclosingScript() *engine.Script {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Script != nil {
			return cur.Script
		}
	}
	return nil
}

// IsLoopBody reports whether this function scope belongs to a loop.
func (s *Scope) IsLoopBody() bool {
	return s.Kind == FunctionScope && (s.Category == WhileBody || s.Category == ForBody)
}
