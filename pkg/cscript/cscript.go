// Package cscript is the embedding API of the CScript compiler front-end:
// create an engine, hand it source text, and retrieve the typed program
// trees and diagnostics.
package cscript

import (
	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/semantic"
)

// Engine wraps the compiler engine for embedders.
type Engine struct {
	impl *engine.Engine
}

// Script is one compiled compilation unit.
type Script = engine.Script

// Diagnostic is one compiler message.
type Diagnostic = engine.Diagnostic

// ModuleLoader resolves imports for the engine.
type ModuleLoader = engine.ModuleLoader

// New creates an engine with the fundamental types, built-in operators and
// support templates registered.
func New() *Engine {
	return &Engine{impl: engine.New()}
}

// Impl exposes the underlying engine for advanced embedders.
func (e *Engine) Impl() *engine.Engine { return e.impl }

// SetLoader installs a module loader for import directives.
func (e *Engine) SetLoader(l ModuleLoader) { e.impl.Loader = l }

// NewScript registers a script for later compilation.
func (e *Engine) NewScript(path, source string) *Script {
	return e.impl.NewScript(path, source)
}

// Compile compiles a script; success is reported on the script, with
// diagnostics retrievable from it. The returned error covers only engine
// misuse (nested sessions), not compilation failures.
func (e *Engine) Compile(s *Script) (bool, error) {
	if err := semantic.Compile(e.impl, s); err != nil {
		return false, err
	}
	return s.Compiled, nil
}

// CompileSource is a convenience wrapping NewScript and Compile.
func (e *Engine) CompileSource(source string) (*Script, bool, error) {
	s := e.NewScript("", source)
	ok, err := e.Compile(s)
	return s, ok, err
}

// Scripts lists the scripts known to the engine.
func (e *Engine) Scripts() []*Script { return e.impl.Scripts }
