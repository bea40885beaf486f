package semantic

import (
	"math/rand"
	"testing"

	"github.com/tmaxwell/go-cscript/internal/types"
)

func freeFn(name string, ret types.Type, params ...types.Type) *types.Function {
	return types.NewFunction(name, types.NewPrototype(ret, params...))
}

// int max(int, int) / int max(float, float): max(1, 2) selects the int
// overload with two exact-match copies.
func TestOverloadSelectsExactMatch(t *testing.T) {
	ts := types.NewTypeSystem()

	intMax := freeFn("max", types.Int, types.Int, types.Int)
	floatMax := freeFn("max", types.Int, types.Float, types.Float)

	res := ResolveOverloads([]*types.Function{floatMax, intMax}, TypeArgs(types.Int, types.Int), ts)
	if !res.Success() {
		t.Fatal("resolution must succeed")
	}
	if res.Selected.Function != intMax {
		t.Error("the int overload must win")
	}
	for _, init := range res.Selected.Initializations {
		if init.Rank() != ExactMatch || !init.Conv.First.IsCopy() {
			t.Error("both argument initializations must be exact-match copies")
		}
	}
}

// void f(float) / void f(double): f(1) is ambiguous, both conversions being
// promotions.
func TestOverloadAmbiguity(t *testing.T) {
	ts := types.NewTypeSystem()

	fFloat := freeFn("f", types.Void, types.Float)
	fDouble := freeFn("f", types.Void, types.Double)

	res := ResolveOverloads([]*types.Function{fFloat, fDouble}, TypeArgs(types.Int), ts)
	if res.Success() {
		t.Fatalf("expected ambiguity, selected %v", res.Selected.Function.Proto.Params)
	}
	if !res.Selected.IsValid() || !res.Ambiguous.IsValid() {
		t.Error("an ambiguity keeps both contenders")
	}
}

func TestOverloadNoViableCandidate(t *testing.T) {
	ts := types.NewTypeSystem()
	cls := types.NewClass("C")
	ts.RegisterClass(cls)

	f := freeFn("f", types.Void, cls.Type)
	res := ResolveOverloads([]*types.Function{f}, TypeArgs(types.Int), ts)
	if res.Selected.IsValid() {
		t.Error("no candidate must survive")
	}
}

func TestOverloadDefaultArgumentsTolerated(t *testing.T) {
	ts := types.NewTypeSystem()

	f := freeFn("f", types.Void, types.Int, types.Int)
	f.DefaultArgs = []any{nil} // one trailing default

	res := ResolveOverloads([]*types.Function{f}, TypeArgs(types.Int), ts)
	if !res.Success() {
		t.Error("argc within [params-defaults, params] must be viable")
	}

	res = ResolveOverloads([]*types.Function{f}, TypeArgs(types.Int, types.Int, types.Int), ts)
	if res.Selected.IsValid() {
		t.Error("too many arguments must not be viable")
	}
}

// Permuting the candidate order never changes the winner.
func TestOverloadResolutionStability(t *testing.T) {
	ts := types.NewTypeSystem()

	candidates := []*types.Function{
		freeFn("g", types.Void, types.Int, types.Int),
		freeFn("g", types.Void, types.Double, types.Double),
		freeFn("g", types.Void, types.Float, types.Double),
		freeFn("g", types.Void, types.Char, types.Int),
	}

	args := TypeArgs(types.Int, types.Int)
	base := ResolveOverloads(candidates, args, ts)
	if !base.Success() {
		t.Fatal("baseline resolution must succeed")
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]*types.Function(nil), candidates...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		res := ResolveOverloads(shuffled, args, ts)
		if !res.Success() || res.Selected.Function != base.Selected.Function {
			t.Fatalf("permutation %d changed the outcome", i)
		}
	}
}

func TestOverloadAmbiguityStability(t *testing.T) {
	ts := types.NewTypeSystem()

	candidates := []*types.Function{
		freeFn("h", types.Void, types.Float),
		freeFn("h", types.Void, types.Double),
		freeFn("h", types.Void, types.Char),
	}
	args := TypeArgs(types.Int)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		shuffled := append([]*types.Function(nil), candidates...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if res := ResolveOverloads(shuffled, args, ts); res.Success() {
			t.Fatalf("permutation %d resolved an ambiguous call", i)
		}
	}
}

// A candidate whose implicit-object conversion would copy is rejected.
func TestImplicitObjectNeverCopies(t *testing.T) {
	ts := types.NewTypeSystem()
	cls := types.NewClass("C")
	ts.RegisterClass(cls)

	method := types.NewFunction("m", types.NewPrototype(types.Void, cls.Type.WithFlag(types.ThisFlag)))
	method.MemberOf = cls

	res := ResolveOverloads([]*types.Function{method}, TypeArgs(types.Ref(cls.Type)), ts)
	if res.Success() {
		t.Error("a by-value implicit object slot must be rejected")
	}
}
