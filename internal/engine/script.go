package engine

import (
	"github.com/tmaxwell/go-cscript/internal/ast"
	"github.com/tmaxwell/go-cscript/internal/types"
	"github.com/tmaxwell/go-cscript/pkg/token"
)

// Severity grades a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Diagnostic is one compiler message. Code is the stable identifier of the
// parser or compiler error that produced it.
type Diagnostic struct {
	Severity Severity
	Code     string
	Offset   int
	Message  string
}

// Position resolves the diagnostic's location within source.
func (d Diagnostic) Position(source string) token.Position {
	return token.Locate(source, d.Offset)
}

// GlobalRecord describes one script global.
type GlobalRecord struct {
	Name string
	Type types.Type
}

// Script is one compilation unit: source text, parse tree, the declarations
// compiled out of it and the diagnostics produced along the way.
type Script struct {
	Path       string
	ModuleName string
	Source     string

	Ast *ast.AST

	// Namespace holds the script's top-level declarations; lookup falls
	// back to the engine root.
	Namespace *types.Namespace

	Globals   []GlobalRecord
	Functions []*types.Function

	Diagnostics []Diagnostic
	Compiled    bool
}

// AddDiagnostic appends a message.
func (s *Script) AddDiagnostic(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether any error diagnostic was produced; the script's
// IR is usable only if none was.
func (s *Script) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// AddGlobal appends a global record, returning its index.
func (s *Script) AddGlobal(name string, t types.Type) int {
	s.Globals = append(s.Globals, GlobalRecord{Name: name, Type: t})
	return len(s.Globals) - 1
}
