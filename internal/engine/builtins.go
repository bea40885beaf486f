package engine

import (
	"github.com/tmaxwell/go-cscript/internal/types"
)

// StringClass is the built-in String class; string literals have its type.
func (e *Engine) StringClass() *types.Class { return e.stringClass }

func (e *Engine) registerBuiltins() {
	e.registerStringClass()
	e.registerFundamentalOperators()
}

func (e *Engine) registerStringClass() {
	c := types.NewClass("String")
	c.EnclosingNamespace = e.Root
	t := e.TypeSystem.RegisterClass(c)

	thisT := t.WithFlag(types.ThisFlag)
	constThisT := types.Cref(t).WithFlag(types.ThisFlag)

	defaultCtor := types.NewFunction("String", types.NewPrototype(types.Void, thisT))
	defaultCtor.Kind = types.ConstructorFunction
	defaultCtor.MemberOf = c
	c.Constructors = append(c.Constructors, defaultCtor)

	copyCtor := types.NewFunction("String", types.NewPrototype(types.Void, thisT, types.Cref(t)))
	copyCtor.Kind = types.ConstructorFunction
	copyCtor.MemberOf = c
	c.Constructors = append(c.Constructors, copyCtor)

	charCtor := types.NewFunction("String", types.NewPrototype(types.Void, thisT, types.Char))
	charCtor.Kind = types.ConstructorFunction
	charCtor.Flags |= types.ExplicitFlag
	charCtor.MemberOf = c
	c.Constructors = append(c.Constructors, charCtor)

	dtor := types.NewFunction("~String", types.DestructorPrototype(thisT))
	dtor.Kind = types.DestructorFunction
	dtor.MemberOf = c
	c.Destructor = dtor

	size := types.NewFunction("size", types.NewPrototype(types.Int, constThisT))
	size.Flags |= types.ConstMemberFlag
	size.MemberOf = c
	c.Methods = append(c.Methods, size)

	member := func(symbol string, proto types.Prototype) {
		f := types.NewFunction("operator"+symbol, proto)
		f.Kind = types.OperatorFunction
		f.OperatorSymbol = symbol
		f.MemberOf = c
		c.Operators = append(c.Operators, f)
	}
	member("=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t).WithFlag(types.ThisFlag), types.Cref(t)))
	member("[]", types.BinaryOperatorPrototype(types.Char, constThisT, types.Int))

	free := func(symbol string, proto types.Prototype) {
		f := types.NewFunction("operator"+symbol, proto)
		f.Kind = types.OperatorFunction
		f.OperatorSymbol = symbol
		e.Root.AddOperator(f)
	}
	free("+", types.BinaryOperatorPrototype(t, types.Cref(t), types.Cref(t)))
	free("==", types.BinaryOperatorPrototype(types.Boolean, types.Cref(t), types.Cref(t)))
	free("!=", types.BinaryOperatorPrototype(types.Boolean, types.Cref(t), types.Cref(t)))
	free("<", types.BinaryOperatorPrototype(types.Boolean, types.Cref(t), types.Cref(t)))

	e.Root.Classes["String"] = c
	e.stringClass = c
}

// registerFundamentalOperators installs the built-in operator set for the
// fundamental types in the root namespace. The interpreter recognizes these
// functions by identity; the compiler only needs their prototypes for
// overload resolution.
func (e *Engine) registerFundamentalOperators() {
	op := func(symbol string, proto types.Prototype) {
		f := types.NewFunction("operator"+symbol, proto)
		f.Kind = types.OperatorFunction
		f.OperatorSymbol = symbol
		e.Root.AddOperator(f)
	}

	numeric := []types.Type{types.Char, types.Int, types.Float, types.Double}
	arithmetic := []string{"+", "-", "*", "/"}
	comparisons := []string{"==", "!=", "<", ">", "<=", ">="}

	for _, t := range numeric {
		for _, sym := range arithmetic {
			op(sym, types.BinaryOperatorPrototype(t, t, t))
		}
		for _, sym := range comparisons {
			op(sym, types.BinaryOperatorPrototype(types.Boolean, t, t))
		}
		op("=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
		op("+", types.UnaryOperatorPrototype(t, t))
		op("-", types.UnaryOperatorPrototype(t, t))
		op("++", types.UnaryOperatorPrototype(types.Ref(t), types.Ref(t)))
		op("++post", types.UnaryOperatorPrototype(t, types.Ref(t)))
		op("--", types.UnaryOperatorPrototype(types.Ref(t), types.Ref(t)))
		op("--post", types.UnaryOperatorPrototype(t, types.Ref(t)))
		op("+=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
		op("-=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
		op("*=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
		op("/=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
	}

	// integral-only operators
	for _, t := range []types.Type{types.Char, types.Int} {
		op("%", types.BinaryOperatorPrototype(t, t, t))
		op("%=", types.BinaryOperatorPrototype(types.Ref(t), types.Ref(t), types.Cref(t)))
	}
	op("&", types.BinaryOperatorPrototype(types.Int, types.Int, types.Int))
	op("|", types.BinaryOperatorPrototype(types.Int, types.Int, types.Int))
	op("^", types.BinaryOperatorPrototype(types.Int, types.Int, types.Int))
	op("~", types.UnaryOperatorPrototype(types.Int, types.Int))
	op("<<", types.BinaryOperatorPrototype(types.Int, types.Int, types.Int))
	op(">>", types.BinaryOperatorPrototype(types.Int, types.Int, types.Int))
	op("<<=", types.BinaryOperatorPrototype(types.Ref(types.Int), types.Ref(types.Int), types.Int))
	op(">>=", types.BinaryOperatorPrototype(types.Ref(types.Int), types.Ref(types.Int), types.Int))
	op("&=", types.BinaryOperatorPrototype(types.Ref(types.Int), types.Ref(types.Int), types.Int))
	op("|=", types.BinaryOperatorPrototype(types.Ref(types.Int), types.Ref(types.Int), types.Int))
	op("^=", types.BinaryOperatorPrototype(types.Ref(types.Int), types.Ref(types.Int), types.Int))

	// booleans
	op("=", types.BinaryOperatorPrototype(types.Ref(types.Boolean), types.Ref(types.Boolean), types.Cref(types.Boolean)))
	op("==", types.BinaryOperatorPrototype(types.Boolean, types.Boolean, types.Boolean))
	op("!=", types.BinaryOperatorPrototype(types.Boolean, types.Boolean, types.Boolean))
	op("!", types.UnaryOperatorPrototype(types.Boolean, types.Boolean))
}
