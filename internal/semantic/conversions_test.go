package semantic

import (
	"testing"

	"github.com/tmaxwell/go-cscript/internal/engine"
	"github.com/tmaxwell/go-cscript/internal/types"
)

func TestStandardConversionIdentity(t *testing.T) {
	ts := types.NewTypeSystem()

	c := ComputeStandardConversion(types.Int, types.Int, ts)
	if !c.IsConvertible() || !c.IsCopy() || c.Rank() != ExactMatch {
		t.Errorf("int -> int must be an exact-match copy, got rank %d", c.Rank())
	}
}

func TestReferenceBindingRules(t *testing.T) {
	ts := types.NewTypeSystem()

	// Any T binds to cref(T).
	c := ComputeStandardConversion(types.Int, types.Cref(types.Int), ts)
	if !c.IsConvertible() || !c.IsReferenceConversion() {
		t.Error("T -> cref(T) must bind")
	}

	// cref(T) never binds to ref(T).
	c = ComputeStandardConversion(types.Cref(types.Int), types.Ref(types.Int), ts)
	if c.IsConvertible() {
		t.Error("cref(T) -> ref(T) must not be convertible")
	}

	// The inverse is fine.
	c = ComputeStandardConversion(types.Ref(types.Int), types.Cref(types.Int), ts)
	if !c.IsConvertible() {
		t.Error("ref(T) -> cref(T) must be convertible")
	}
}

func TestNumericPromotionsAndConversions(t *testing.T) {
	ts := types.NewTypeSystem()

	tests := []struct {
		src, dst  types.Type
		rank      Rank
		narrowing bool
	}{
		{types.Int, types.Float, Promotion, false},
		{types.Int, types.Double, Promotion, false},
		{types.Float, types.Double, Promotion, false},
		{types.Char, types.Int, Promotion, false},
		{types.Boolean, types.Int, Promotion, false},
		{types.Double, types.Int, Conversion2Rank, true},
		{types.Double, types.Float, Conversion2Rank, true},
		{types.Int, types.Char, Conversion2Rank, true},
		{types.Int, types.Boolean, Conversion2Rank, true},
		{types.Double, types.Boolean, Conversion2Rank, true},
		{types.Char, types.Double, Conversion2Rank, false},
	}

	for _, tt := range tests {
		c := ComputeStandardConversion(tt.src, tt.dst, ts)
		if !c.IsConvertible() {
			t.Errorf("%v -> %v: not convertible", tt.src, tt.dst)
			continue
		}
		if c.Rank() != tt.rank {
			t.Errorf("%v -> %v: rank %d, want %d", tt.src, tt.dst, c.Rank(), tt.rank)
		}
		if c.IsNarrowing() != tt.narrowing {
			t.Errorf("%v -> %v: narrowing %v, want %v", tt.src, tt.dst, c.IsNarrowing(), tt.narrowing)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	if !(ExactMatch < Promotion && Promotion < Conversion2Rank &&
		Conversion2Rank < UserDefinedRank && UserDefinedRank < NotConvertibleRank) {
		t.Error("rank order must be ExactMatch < Promotion < Conversion < UserDefined < NotConvertible")
	}
}

func TestEnumToInt(t *testing.T) {
	ts := types.NewTypeSystem()
	e := types.NewEnum("Color", false)
	ts.RegisterEnum(e)

	c := ComputeStandardConversion(e.Type, types.Int, ts)
	if !c.IsConvertible() || !c.IsEnumToInt() || c.Rank() != Conversion2Rank {
		t.Error("enum -> int must be an EnumToInt conversion")
	}

	c = ComputeStandardConversion(types.Int, e.Type, ts)
	if c.IsConvertible() {
		t.Error("int -> enum must not be convertible")
	}
}

func TestDerivedToBase(t *testing.T) {
	ts := types.NewTypeSystem()
	a := types.NewClass("A")
	ts.RegisterClass(a)
	b := types.NewClass("B")
	b.Parent = a
	ts.RegisterClass(b)
	c := types.NewClass("C")
	c.Parent = b
	ts.RegisterClass(c)

	// Copy to a base ranks Conversion with the derivation depth.
	conv := ComputeStandardConversion(c.Type, a.Type, ts)
	if !conv.IsConvertible() || conv.DerivedToBaseConversionDepth() != 2 || conv.Rank() != Conversion2Rank {
		t.Errorf("C -> A copy: depth %d rank %d", conv.DerivedToBaseConversionDepth(), conv.Rank())
	}

	// Binding to a base reference ranks ExactMatch.
	conv = ComputeStandardConversion(c.Type, types.Cref(a.Type), ts)
	if !conv.IsConvertible() || !conv.IsReferenceConversion() || conv.Rank() != ExactMatch {
		t.Errorf("C -> cref(A): rank %d", conv.Rank())
	}

	// Depth is monotone: the closer base compares better.
	toB := ComputeStandardConversion(c.Type, b.Type, ts)
	toA := ComputeStandardConversion(c.Type, a.Type, ts)
	if CompStandardConversion(toB, toA) >= 0 {
		t.Error("a shorter derived-to-base walk must compare better")
	}

	// Base does not convert to derived.
	conv = ComputeStandardConversion(a.Type, c.Type, ts)
	if conv.IsConvertible() {
		t.Error("base -> derived must not be convertible")
	}
}

func TestConvertingConstructor(t *testing.T) {
	e := engine.New()
	ts := e.TypeSystem

	dist := types.NewClass("Distance")
	ts.RegisterClass(dist)
	ctor := types.NewFunction("Distance", types.NewPrototype(types.Void, dist.Type.WithFlag(types.ThisFlag), types.Double))
	ctor.Kind = types.ConstructorFunction
	ctor.MemberOf = dist
	dist.Constructors = append(dist.Constructors, ctor)

	conv := ComputeConversion(types.Double, dist.Type, ts, NoExplicitConversions)
	if conv.IsInvalid() || conv.UserDefined != ctor || conv.Rank() != UserDefinedRank {
		t.Error("double -> Distance must go through the converting constructor")
	}

	// int -> Distance chains int -> double before the constructor.
	conv = ComputeConversion(types.Int, dist.Type, ts, NoExplicitConversions)
	if conv.IsInvalid() || !conv.First.IsNumericPromotion() {
		t.Error("int -> Distance must chain a promotion into the constructor")
	}
}

func TestExplicitConstructorNeedsPolicy(t *testing.T) {
	e := engine.New()
	ts := e.TypeSystem

	box := types.NewClass("Box")
	ts.RegisterClass(box)
	ctor := types.NewFunction("Box", types.NewPrototype(types.Void, box.Type.WithFlag(types.ThisFlag), types.Int))
	ctor.Kind = types.ConstructorFunction
	ctor.Flags |= types.ExplicitFlag
	ctor.MemberOf = box
	box.Constructors = append(box.Constructors, ctor)

	if conv := ComputeConversion(types.Int, box.Type, ts, NoExplicitConversions); !conv.IsInvalid() {
		t.Error("an explicit constructor must not apply implicitly")
	}
	if conv := ComputeConversion(types.Int, box.Type, ts, AllowExplicitConversions); conv.IsInvalid() {
		t.Error("AllowExplicitConversions must admit the explicit constructor")
	}
}

func TestCastOperatorConversion(t *testing.T) {
	e := engine.New()
	ts := e.TypeSystem

	meters := types.NewClass("Meters")
	ts.RegisterClass(meters)
	cast := types.NewFunction("operator double", types.CastPrototype(types.Double, types.Cref(meters.Type).WithFlag(types.ThisFlag)))
	cast.Kind = types.CastFunction
	cast.Flags |= types.ConstMemberFlag
	cast.MemberOf = meters
	meters.Casts = append(meters.Casts, cast)

	conv := ComputeConversion(meters.Type, types.Double, ts, NoExplicitConversions)
	if conv.IsInvalid() || conv.UserDefined != cast {
		t.Error("Meters -> double must use the cast operator")
	}

	// The second standard conversion may continue: Meters -> double -> int.
	conv = ComputeConversion(meters.Type, types.Int, ts, NoExplicitConversions)
	if conv.IsInvalid() || !conv.Second.IsNumericConversion() {
		t.Error("Meters -> int must chain the cast with a numeric conversion")
	}
}

func TestConversionDeterminism(t *testing.T) {
	ts := types.NewTypeSystem()
	for i := 0; i < 10; i++ {
		a := ComputeStandardConversion(types.Int, types.Double, ts)
		b := ComputeStandardConversion(types.Int, types.Double, ts)
		if a != b {
			t.Fatal("conversion computation must be deterministic")
		}
	}
}
