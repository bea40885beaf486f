package engine

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// ModuleLoader resolves an import directive to a script. The loader may
// itself invoke the compiler for another source file; any such re-entry
// must occur outside an active session.
type ModuleLoader interface {
	Load(e *Engine, moduleName string) (*Script, error)
}

// FunctionCreator produces native function bodies for attribute-decorated
// declarations whose body is absent. The compiler calls it with the parsed
// declaration and the resolved prototype; the returned function is
// registered in place of a scripted one.
type FunctionCreator interface {
	Create(e *Engine, decl *ast.FunctionDecl, name string, proto types.Prototype, attribute ast.Expression) (*types.Function, error)
}
