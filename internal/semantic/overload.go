package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// Argument is one call argument handed to overload resolution: a type, plus
// the compiled expression when list-initialization rules may apply.
type Argument struct {
	Type types.Type
	Expr program.Expression
}

// TypeArgs adapts a type list to arguments.
func TypeArgs(ts ...types.Type) []Argument {
	args := make([]Argument, len(ts))
	for i, t := range ts {
		args[i] = Argument{Type: t}
	}
	return args
}

// ExprArgs adapts compiled expressions to arguments.
func ExprArgs(exprs []program.Expression) []Argument {
	args := make([]Argument, len(exprs))
	for i, e := range exprs {
		args[i] = Argument{Type: e.Type(), Expr: e}
	}
	return args
}

// Candidate pairs a viable function with the initialization plan of each
// argument slot.
type Candidate struct {
	Function        *types.Function
	Initializations []Initialization
}

// IsValid reports a non-empty candidate.
func (c Candidate) IsValid() bool { return c.Function != nil }

// OverloadComparison is the outcome of comparing two candidates.
type OverloadComparison int

const (
	FirstIsBetter OverloadComparison = 1 + iota
	SecondIsBetter
	Indistinguishable
	NotComparable
)

// CompareCandidates orders two viable candidates lexicographically over
// their argument initializations.
func CompareCandidates(a, b Candidate) OverloadComparison {
	if !a.IsValid() && !b.IsValid() {
		return Indistinguishable
	}
	if !b.IsValid() {
		return FirstIsBetter
	}
	if !a.IsValid() {
		return SecondIsBetter
	}
	if a.Function == b.Function {
		return Indistinguishable
	}

	n := len(a.Initializations)
	if len(b.Initializations) < n {
		n = len(b.Initializations)
	}

	firstBetter, secondBetter := false, false
	for i := 0; i < n; i++ {
		switch c := CompInitialization(a.Initializations[i], b.Initializations[i]); {
		case c < 0:
			firstBetter = true
		case c > 0:
			secondBetter = true
		}
	}

	switch {
	case firstBetter && secondBetter:
		return NotComparable
	case firstBetter:
		return FirstIsBetter
	case secondBetter:
		return SecondIsBetter
	}
	return Indistinguishable
}

// OverloadResult is the outcome of the resolution tournament.
type OverloadResult struct {
	Selected  Candidate
	Ambiguous Candidate
}

// Success reports a unique best candidate.
func (r OverloadResult) Success() bool {
	return r.Selected.IsValid() && !r.Ambiguous.IsValid()
}

// candidateParams returns the parameter slots matched against the caller's
// arguments. Constructors and destructors hide their implicit object slot;
// everything else matches positionally, the implicit object included.
func candidateParams(f *types.Function) []types.Type {
	if f.IsConstructor() || f.IsDestructor() {
		return f.Proto.Params[1:]
	}
	return f.Proto.Params
}

// ResolveOverloads runs the tournament over the candidate set. The result
// is valid iff a unique best candidate exists; permuting the candidate
// order does not change the outcome.
func ResolveOverloads(candidates []*types.Function, args []Argument, ts *types.TypeSystem) OverloadResult {
	var selected, ambiguous Candidate

	for _, f := range candidates {
		params := candidateParams(f)
		argc := len(args)
		if argc > len(params) || len(params) > argc+f.DefaultArgCount() {
			continue
		}

		current := Candidate{Function: f}
		viable := true
		for i, arg := range args {
			var init Initialization
			if params[i].IsThis() {
				// The implicit object binds regardless of constness; the
				// host's value model has no const objects at runtime.
				init = ComputeInit(params[i], arg.Type.WithoutConst(), ts, CopyInitialization)
			} else if arg.Expr != nil {
				init = computeArgInit(params[i], arg, ts)
			} else {
				init = ComputeInit(params[i], arg.Type, ts, CopyInitialization)
			}
			if !init.IsValid() {
				viable = false
				break
			}
			// An implicit object never converts by copy; slicing a
			// reference-qualified this is rejected.
			if params[i].IsThis() && !init.IsReferenceInitialization() {
				viable = false
				break
			}
			current.Initializations = append(current.Initializations, init)
		}
		if !viable {
			continue
		}

		processCandidate(&current, &selected, &ambiguous)
	}

	return OverloadResult{Selected: selected, Ambiguous: ambiguous}
}

func computeArgInit(param types.Type, arg Argument, ts *types.TypeSystem) Initialization {
	if arg.Expr != nil {
		if list, ok := arg.Expr.(*program.InitializerList); ok && list.T.BaseType() == types.InitializerList {
			return ComputeExprInit(param, arg.Expr, ts)
		}
	}
	return ComputeInit(param, arg.Type, ts, CopyInitialization)
}

// processCandidate maintains the (selected, ambiguous) tournament
// invariant: a new candidate either dominates the selection, is dominated,
// or marks the resolution ambiguous; a new selection is retested against
// the standing ambiguity.
func processCandidate(current, selected, ambiguous *Candidate) {
	if current.Function == selected.Function || current.Function == ambiguous.Function {
		return
	}

	switch CompareCandidates(*current, *selected) {
	case Indistinguishable, NotComparable:
		*ambiguous, *current = *current, *ambiguous
	case FirstIsBetter:
		*selected, *current = *current, *selected
		// Retest the new selection against the standing ambiguity.
		if ambiguous.IsValid() {
			if CompareCandidates(*selected, *ambiguous) == FirstIsBetter {
				*ambiguous = Candidate{}
			}
		}
	case SecondIsBetter:
		if ambiguous.IsValid() && CompareCandidates(*current, *ambiguous) == FirstIsBetter {
			*ambiguous = Candidate{}
		}
	}
}
