package semantic

import "github.com/tmaxwell/go-cscript/internal/types"

// Variable is one stack slot of the function being compiled.
type Variable struct {
	Name   string
	Type   types.Type
	Index  int
	Global bool
}

// Stack is the growable variable stack of the function compiler. Slot 0 is
// the implicit return-value slot for non-destructor functions. Destruction
// is LIFO: on scope exit every variable added since the scope's stack
// pointer is destroyed in reverse.
type Stack struct {
	vars []Variable
}

// Size returns the current stack pointer.
func (s *Stack) Size() int { return len(s.vars) }

// Push appends a variable, returning its index.
func (s *Stack) Push(name string, t types.Type) int {
	index := len(s.vars)
	s.vars = append(s.vars, Variable{Name: name, Type: t, Index: index})
	return index
}

// At returns the variable at an index.
func (s *Stack) At(index int) Variable { return s.vars[index] }

// ShrinkTo drops every variable at or above sp.
func (s *Stack) ShrinkTo(sp int) { s.vars = s.vars[:sp] }

// Find searches top-down for a variable by name at or above the floor
// index; -1 when absent.
func (s *Stack) Find(name string, floor int) int {
	for i := len(s.vars) - 1; i >= floor; i-- {
		if s.vars[i].Name == name {
			return i
		}
	}
	return -1
}
