package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// InitializationCategory is the kind of a typed initialization plan.
type InitializationCategory int

const (
	InvalidInitialization InitializationCategory = iota
	DefaultInitialization
	DirectInitialization
	CopyInitialization
	ReferenceInitialization
	ListInitialization
	AggregateInitialization
)

// Initialization is a typed plan for producing a value of the destination
// type: the conversion sequence(s), the selected constructor, and for
// list/brace initialization the per-element sub-plans.
type Initialization struct {
	Category    InitializationCategory
	Conv        Conversion
	Constructor *types.Function
	DestType    types.Type
	Members     []Initialization
}

// InvalidInit is the failed plan.
func InvalidInit() Initialization { return Initialization{} }

// IsValid reports a usable plan.
func (i Initialization) IsValid() bool { return i.Category != InvalidInitialization }

// IsReferenceInitialization reports reference binding.
func (i Initialization) IsReferenceInitialization() bool {
	return i.Category == ReferenceInitialization
}

// CreatesTemporary reports whether executing the plan materializes a new
// value.
func (i Initialization) CreatesTemporary() bool {
	return i.IsValid() && !i.IsReferenceInitialization()
}

// HasInitializations reports per-element sub-plans.
func (i Initialization) HasInitializations() bool { return len(i.Members) > 0 }

// Rank grades the plan; for lists it is the worst element rank.
func (i Initialization) Rank() Rank {
	if !i.IsValid() {
		return NotConvertibleRank
	}
	if i.Category == ListInitialization || i.Category == AggregateInitialization {
		r := ExactMatch
		for _, m := range i.Members {
			if mr := m.Rank(); mr > r {
				r = mr
			}
		}
		return r
	}
	if i.Category == DefaultInitialization {
		return ExactMatch
	}
	return i.Conv.Rank()
}

// IsNarrowing propagates narrowing through the plan.
func (i Initialization) IsNarrowing() bool {
	if i.Conv.IsNarrowing() {
		return true
	}
	for _, m := range i.Members {
		if m.IsNarrowing() {
			return true
		}
	}
	return false
}

// CompInitialization orders two plans; negative when a is better, zero when
// indistinguishable.
func CompInitialization(a, b Initialization) int {
	if ra, rb := a.Rank(), b.Rank(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if !a.HasInitializations() && !b.HasInitializations() {
		return CompConversion(a.Conv, b.Conv)
	}
	return 0
}

// ComputeDefaultInit computes default initialization of a type. References,
// enumerations and function-typed variables cannot be defaulted; classes
// need an accessible default constructor.
func ComputeDefaultInit(t types.Type, ts *types.TypeSystem) Initialization {
	if t.IsReference() || t.IsEnumType() || t.IsFunctionType() || t.IsClosureType() {
		return InvalidInit()
	}
	init := Initialization{Category: DefaultInitialization, DestType: t}
	if cls := ts.GetClass(t); cls != nil {
		ctor := cls.DefaultConstructor()
		if ctor == nil || ctor.IsDeleted() {
			return InvalidInit()
		}
		init.Constructor = ctor
	}
	return init
}

// ComputeInit computes an initialization of dst from a value of type src.
func ComputeInit(dst, src types.Type, ts *types.TypeSystem, cat InitializationCategory) Initialization {
	policy := NoExplicitConversions
	if cat == DirectInitialization {
		policy = AllowExplicitConversions
	}
	conv := ComputeConversion(src, dst, ts, policy)
	if conv.IsInvalid() {
		return InvalidInit()
	}
	if dst.IsReference() && conv.UserDefined == nil && conv.First.IsReferenceConversion() {
		cat = ReferenceInitialization
	}
	return Initialization{Category: cat, Conv: conv, DestType: dst}
}

// ComputeExprInit computes an initialization of dst from a compiled
// expression; initializer-list expressions follow the list rules.
func ComputeExprInit(dst types.Type, expr program.Expression, ts *types.TypeSystem) Initialization {
	list, ok := expr.(*program.InitializerList)
	if !ok || list.T.BaseType() != types.InitializerList {
		return ComputeInit(dst, expr.Type(), ts, CopyInitialization)
	}
	return computeListInit(dst, list, ts)
}

func computeListInit(dst types.Type, list *program.InitializerList, ts *types.TypeSystem) Initialization {
	// Empty list: default-initialize.
	if len(list.Elements) == 0 {
		return ComputeDefaultInit(dst, ts)
	}

	// Destination is initializer_list<T>: element-wise copy-initialize.
	if elem, ok := ts.InitializerListElementType(dst); ok {
		init := Initialization{Category: ListInitialization, DestType: dst}
		for _, e := range list.Elements {
			sub := ComputeExprInit(elem, e, ts)
			if !sub.IsValid() {
				return InvalidInit()
			}
			init.Members = append(init.Members, sub)
		}
		return init
	}

	if cls := ts.GetClass(dst); cls != nil {
		// A constructor taking initializer_list<T>: recurse, then wrap in a
		// constructor call.
		for _, ctor := range cls.Constructors {
			if ctor.IsDeleted() || ctor.Proto.ParamCount() != 2 {
				continue
			}
			paramType := ctor.Proto.Params[1]
			if _, ok := ts.InitializerListElementType(paramType.WithoutRef().WithoutConst()); !ok {
				continue
			}
			inner := computeListInit(paramType.BaseType(), list, ts)
			if !inner.IsValid() {
				continue
			}
			inner.Constructor = ctor
			inner.DestType = dst
			return inner
		}

		// A constructor whose parameters match element-by-element.
		best := InvalidInit()
		var ambiguous bool
		for _, ctor := range cls.Constructors {
			if ctor.IsDeleted() {
				continue
			}
			argc := len(list.Elements)
			params := ctor.Proto.ParamCount() - 1
			if argc > params || params > argc+ctor.DefaultArgCount() {
				continue
			}
			cand := Initialization{Category: AggregateInitialization, DestType: dst, Constructor: ctor}
			valid := true
			for i, e := range list.Elements {
				sub := ComputeExprInit(ctor.Proto.Params[i+1], e, ts)
				if !sub.IsValid() {
					valid = false
					break
				}
				cand.Members = append(cand.Members, sub)
			}
			if !valid {
				continue
			}
			if !best.IsValid() {
				best = cand
				ambiguous = false
				continue
			}
			switch compInitList(cand.Members, best.Members) {
			case -1:
				best = cand
				ambiguous = false
			case 0:
				ambiguous = true
			}
		}
		if ambiguous {
			return InvalidInit()
		}
		return best
	}

	// Fundamental destination with a single element.
	if dst.IsFundamental() && len(list.Elements) == 1 {
		init := ComputeExprInit(dst, list.Elements[0], ts)
		if init.IsValid() {
			init.Category = ListInitialization
			init.Members = []Initialization{init}
		}
		return init
	}

	return InvalidInit()
}

// compInitList compares two plans' member lists lexicographically.
func compInitList(a, b []Initialization) int {
	if len(a) != len(b) {
		// More explicitly initialized members wins over defaults.
		if len(a) > len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if c := CompInitialization(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
