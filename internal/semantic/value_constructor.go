package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/program"
	"github.com/tmaxwell/go-cscript/internal/types"
)

// ValueConstructor centralizes all value-creation rules: default, direct
// and list initialization, and the realization of pre-computed
// Initialization plans.
type ValueConstructor struct {
	ec *ExpressionCompiler
}

func (vc *ValueConstructor) ts() *types.TypeSystem { return vc.ec.ts() }

// DefaultConstruct produces the default value of a type.
func (vc *ValueConstructor) DefaultConstruct(t types.Type, offset int) (program.Expression, error) {
	switch {
	case t.IsReference():
		return nil, fail(ReferencesMustBeInitialized, offset)
	case t.IsEnumType():
		return nil, fail(EnumerationsMustBeInitialized, offset)
	case t.IsFunctionType() || t.IsClosureType():
		return nil, fail(FunctionVariablesMustBeInitialized, offset)
	}

	if cls := vc.ts().GetClass(t); cls != nil {
		ctor := cls.DefaultConstructor()
		if ctor == nil {
			return nil, fail(VariableCannotBeDefaultConstructed, offset)
		}
		if ctor.IsDeleted() {
			return nil, fail(ClassHasDeletedDefaultCtor, offset)
		}
		args, err := vc.defaultedTail(ctor, 0)
		if err != nil {
			return nil, err
		}
		return &program.ConstructorCall{Constructor: ctor, T: t.BaseType(), Args: args}, nil
	}

	switch t.BaseType() {
	case types.Boolean:
		return &program.Literal{T: types.Boolean, Value: false}, nil
	case types.Char:
		return &program.Literal{T: types.Char, Value: rune(0)}, nil
	case types.Int:
		return &program.Literal{T: types.Int, Value: int64(0)}, nil
	case types.Float:
		return &program.Literal{T: types.Float, Value: float64(0)}, nil
	case types.Double:
		return &program.Literal{T: types.Double, Value: float64(0)}, nil
	}

	return nil, fail(VariableCannotBeDefaultConstructed, offset)
}

// Construct performs direct initialization of t from args, resolving
// constructor overloads for class types.
func (vc *ValueConstructor) Construct(t types.Type, args []program.Expression, direct bool, offset int) (program.Expression, error) {
	if len(args) == 0 {
		return vc.DefaultConstruct(t, offset)
	}

	if cls := vc.ts().GetClass(t); cls != nil {
		res := ResolveOverloads(cls.Constructors, ExprArgs(args), vc.ts())
		if !res.Success() {
			return nil, failx(CouldNotFindValidConstructor, offset, cls.Name)
		}
		if res.Selected.Function.IsDeleted() {
			return nil, fail(CallToDeletedFunction, offset)
		}
		prepared, err := vc.Prepare(args, res.Selected)
		if err != nil {
			return nil, err
		}
		return &program.ConstructorCall{Constructor: res.Selected.Function, T: t.BaseType(), Args: prepared}, nil
	}

	if len(args) > 1 {
		return nil, fail(TooManyArgumentInVariableInitialization, offset)
	}

	policy := NoExplicitConversions
	if direct {
		policy = AllowExplicitConversions
	}
	conv := ComputeConversion(args[0].Type(), t.WithoutRef().WithoutConst(), vc.ts(), policy)
	if conv.IsInvalid() {
		return nil, fail(CouldNotConvert, offset)
	}
	return ApplyConversion(args[0], conv, offset)
}

// BraceConstruct performs list initialization; narrowing is rejected.
func (vc *ValueConstructor) BraceConstruct(t types.Type, args []program.Expression, offset int) (program.Expression, error) {
	list := &program.InitializerList{T: types.InitializerList, Elements: args}
	init := ComputeExprInit(t, list, vc.ts())
	if !init.IsValid() {
		if vc.ts().GetClass(t) != nil {
			return nil, fail(CouldNotFindValidConstructor, offset)
		}
		return nil, fail(CouldNotConvert, offset)
	}
	if init.IsNarrowing() {
		return nil, fail(NarrowingConversionInBraceInitialization, offset)
	}
	return vc.ConstructFromInit(t, list, init, offset)
}

// ConstructFromInit executes a pre-computed Initialization, producing a
// copy, a fundamental conversion, a constructor call or an
// initializer-list value.
func (vc *ValueConstructor) ConstructFromInit(t types.Type, expr program.Expression, init Initialization, offset int) (program.Expression, error) {
	switch init.Category {
	case DefaultInitialization:
		return vc.DefaultConstruct(t, offset)

	case CopyInitialization, DirectInitialization, ReferenceInitialization:
		return ApplyConversion(expr, init.Conv, offset)

	case ListInitialization, AggregateInitialization:
		list, ok := expr.(*program.InitializerList)
		if !ok {
			return ApplyConversion(expr, init.Conv, offset)
		}
		return vc.constructFromList(t, list, init, offset)
	}
	return nil, fail(CouldNotConvert, offset)
}

func (vc *ValueConstructor) constructFromList(t types.Type, list *program.InitializerList, init Initialization, offset int) (program.Expression, error) {
	// Fundamental destination: the single element converts.
	if t.IsFundamental() {
		if len(list.Elements) != 1 || len(init.Members) != 1 {
			return nil, fail(CouldNotConvert, offset)
		}
		return ApplyConversion(list.Elements[0], init.Members[0].Conv, offset)
	}

	// Aggregate-like: one converted element per constructor parameter.
	if init.Category == AggregateInitialization {
		ctor := init.Constructor
		prepared := make([]program.Expression, 0, len(list.Elements))
		for i, e := range list.Elements {
			converted, err := vc.ConstructFromInit(ctor.Proto.Params[i+1], e, init.Members[i], offset)
			if err != nil {
				return nil, err
			}
			prepared = append(prepared, converted)
		}
		tail, err := vc.defaultedTail(ctor, len(prepared))
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, tail...)
		return &program.ConstructorCall{Constructor: ctor, T: t.BaseType(), Args: prepared}, nil
	}

	// Initializer-list destination: element-wise construction.
	buildList := func(listType types.Type) (program.Expression, error) {
		elemType, _ := vc.ts().InitializerListElementType(listType)
		elements := make([]program.Expression, 0, len(list.Elements))
		for i, e := range list.Elements {
			converted, err := vc.ConstructFromInit(elemType, e, init.Members[i], offset)
			if err != nil {
				return nil, err
			}
			elements = append(elements, converted)
		}
		return &program.InitializerList{T: listType, Elements: elements}, nil
	}

	if init.Constructor != nil {
		// constructor taking initializer_list<T>
		paramType := init.Constructor.Proto.Params[1].WithoutRef().WithoutConst()
		inner, err := buildList(paramType)
		if err != nil {
			return nil, err
		}
		return &program.ConstructorCall{
			Constructor: init.Constructor,
			T:           t.BaseType(),
			Args:        []program.Expression{inner},
		}, nil
	}

	if vc.ts().IsInitializerList(t) {
		return buildList(t.BaseType())
	}

	return nil, fail(CouldNotConvert, offset)
}

// Prepare applies the per-argument conversions of a resolved candidate and
// appends the defaulted trailing arguments, ready to feed a FunctionCall or
// ConstructorCall.
func (vc *ValueConstructor) Prepare(args []program.Expression, selected Candidate) ([]program.Expression, error) {
	f := selected.Function
	params := candidateParams(f)

	out := make([]program.Expression, 0, len(params))
	for i, arg := range args {
		converted, err := vc.ConstructFromInit(params[i], arg, selected.Initializations[i], 0)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}

	tail, err := vc.defaultedTail(f, len(args))
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}

// defaultedTail collects the compiled default arguments for the parameters
// left unfilled by the call.
func (vc *ValueConstructor) defaultedTail(f *types.Function, filled int) ([]program.Expression, error) {
	params := candidateParams(f)
	missing := len(params) - filled
	if missing <= 0 {
		return nil, nil
	}
	if missing > len(f.DefaultArgs) {
		return nil, fail(InvalidUseOfDefaultArgument, 0)
	}

	var out []program.Expression
	start := len(f.DefaultArgs) - missing
	for _, raw := range f.DefaultArgs[start:] {
		expr, ok := raw.(program.Expression)
		if !ok {
			return nil, fail(InvalidUseOfDefaultArgument, 0)
		}
		out = append(out, expr)
	}
	return out, nil
}
