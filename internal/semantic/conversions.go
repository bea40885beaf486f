// Package semantic implements the CScript semantic compiler: implicit
// conversions, initializations, overload resolution, name lookup, and the
// compilers that lower the AST into the typed program tree.
package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/types"
)

// Rank orders conversions from best to worst; it is the primary sort key of
// overload resolution.
type Rank int

const (
	ExactMatch Rank = 1 + iota
	Promotion
	Conversion2Rank
	UserDefinedRank
	NotConvertibleRank
)

// NumericPromotion classifies value-preserving numeric widenings.
type NumericPromotion int

const (
	NoPromotion NumericPromotion = iota
	IntegralPromotion
	FloatingPointPromotion
)

// NumericConversion classifies the remaining numeric conversions.
type NumericConversion int

const (
	NoNumericConversion NumericConversion = iota
	IntegralConversion
	FloatingPointConversion
	BooleanConversion
)

// StandardConversion is an implicit conversion not invoking user code:
// numeric promotion/conversion, reference binding, derived-to-base walk,
// qualification adjustment.
type StandardConversion struct {
	src types.Type
	dst types.Type

	convertible        bool
	refConversion      bool
	promotion          NumericPromotion
	conversion         NumericConversion
	enumToInt          bool
	derivedToBaseDepth int
	qualAdjust         bool
	narrowing          bool
}

// NotConvertibleStdConv is the failed standard conversion.
func NotConvertibleStdConv() StandardConversion {
	return StandardConversion{}
}

// CopyStdConv is the identity copy conversion.
func CopyStdConv(t types.Type) StandardConversion {
	return StandardConversion{src: t, dst: t.BaseType(), convertible: true}
}

// IsConvertible reports whether the conversion exists.
func (c StandardConversion) IsConvertible() bool { return c.convertible }

// IsReferenceConversion reports reference binding rather than a copy.
func (c StandardConversion) IsReferenceConversion() bool { return c.refConversion }

// IsCopy reports a plain copy without numeric or hierarchy movement.
func (c StandardConversion) IsCopy() bool {
	return c.convertible && !c.refConversion && c.promotion == NoPromotion &&
		c.conversion == NoNumericConversion && !c.enumToInt && c.derivedToBaseDepth == 0
}

// IsNumericPromotion reports a promotion.
func (c StandardConversion) IsNumericPromotion() bool { return c.promotion != NoPromotion }

// IsNumericConversion reports a numeric conversion.
func (c StandardConversion) IsNumericConversion() bool { return c.conversion != NoNumericConversion }

// IsDerivedToBaseConversion reports a hierarchy walk.
func (c StandardConversion) IsDerivedToBaseConversion() bool { return c.derivedToBaseDepth > 0 }

// DerivedToBaseConversionDepth returns the number of derivation steps.
func (c StandardConversion) DerivedToBaseConversionDepth() int { return c.derivedToBaseDepth }

// HasQualificationAdjustment reports an added const qualification.
func (c StandardConversion) HasQualificationAdjustment() bool { return c.qualAdjust }

// IsNarrowing reports a value-changing numeric conversion.
func (c StandardConversion) IsNarrowing() bool { return c.narrowing }

// IsEnumToInt reports the enum-to-int conversion.
func (c StandardConversion) IsEnumToInt() bool { return c.enumToInt }

// SrcType returns the conversion's source.
func (c StandardConversion) SrcType() types.Type { return c.src }

// DestType returns the conversion's destination.
func (c StandardConversion) DestType() types.Type { return c.dst }

// Rank grades the conversion.
func (c StandardConversion) Rank() Rank {
	switch {
	case !c.convertible:
		return NotConvertibleRank
	case c.conversion != NoNumericConversion || c.enumToInt:
		return Conversion2Rank
	case c.derivedToBaseDepth > 0 && !c.refConversion:
		return Conversion2Rank
	case c.promotion != NoPromotion:
		return Promotion
	default:
		return ExactMatch
	}
}

// numericLevel orders the fundamental arithmetic types for promotion and
// narrowing decisions.
func numericLevel(t types.Type) int {
	switch t.BaseType() {
	case types.Boolean:
		return 0
	case types.Char:
		return 1
	case types.Int:
		return 2
	case types.Float:
		return 3
	case types.Double:
		return 4
	}
	return -1
}

// ComputeStandardConversion computes the standard conversion sequence from
// src to dst, if any.
func ComputeStandardConversion(src, dst types.Type, ts *types.TypeSystem) StandardConversion {
	srcBase := src.BaseType()
	dstBase := dst.BaseType()

	// Identity, possibly with reference binding or const adjustment.
	if srcBase == dstBase {
		c := StandardConversion{src: src, dst: dst, convertible: true}
		if dst.IsReference() {
			c.refConversion = true
			if dst.IsConst() {
				if !src.IsConst() {
					c.qualAdjust = true
				}
			} else if src.IsConst() {
				// cref(T) never binds to ref(T)
				return NotConvertibleStdConv()
			}
		}
		return c
	}

	// Fundamental numeric moves.
	sl, dl := numericLevel(src), numericLevel(dst)
	if sl >= 0 && dl >= 0 {
		if dst.IsReference() && !dst.IsConst() {
			return NotConvertibleStdConv()
		}
		c := StandardConversion{src: src, dst: dst, convertible: true}
		switch {
		case dstBase == types.Boolean:
			c.conversion = BooleanConversion
			c.narrowing = true
		case srcBase == types.Boolean || srcBase == types.Char:
			switch dstBase {
			case types.Int:
				c.promotion = IntegralPromotion
			case types.Char:
				c.conversion = IntegralConversion
			default:
				c.conversion = FloatingPointConversion
			}
		case srcBase == types.Int && (dstBase == types.Float || dstBase == types.Double):
			c.promotion = FloatingPointPromotion
		case srcBase == types.Float && dstBase == types.Double:
			c.promotion = FloatingPointPromotion
		case sl < dl:
			c.conversion = FloatingPointConversion
		default:
			// value-narrowing move downwards
			if srcBase == types.Float || srcBase == types.Double {
				c.conversion = FloatingPointConversion
			} else {
				c.conversion = IntegralConversion
			}
			c.narrowing = true
		}
		return c
	}

	// Enum to int.
	if src.IsEnumType() && dstBase == types.Int {
		if dst.IsReference() && !dst.IsConst() {
			return NotConvertibleStdConv()
		}
		return StandardConversion{src: src, dst: dst, convertible: true, enumToInt: true}
	}

	// Derived to base.
	if src.IsObjectType() && dst.IsObjectType() {
		srcClass := ts.GetClass(src)
		dstClass := ts.GetClass(dst)
		if srcClass != nil && dstClass != nil {
			if depth, ok := srcClass.InheritanceDepth(dstClass); ok && depth > 0 {
				c := StandardConversion{src: src, dst: dst, convertible: true, derivedToBaseDepth: depth}
				if dst.IsReference() {
					c.refConversion = true
					if dst.IsConst() && !src.IsConst() {
						c.qualAdjust = true
					} else if !dst.IsConst() && src.IsConst() {
						return NotConvertibleStdConv()
					}
				}
				return c
			}
		}
	}

	return NotConvertibleStdConv()
}

// CompStandardConversion orders two standard conversions; negative when a is
// better, zero when indistinguishable.
func CompStandardConversion(a, b StandardConversion) int {
	if ra, rb := a.Rank(), b.Rank(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if a.derivedToBaseDepth != b.derivedToBaseDepth {
		if a.derivedToBaseDepth < b.derivedToBaseDepth {
			return -1
		}
		return 1
	}
	if a.refConversion != b.refConversion {
		// Binding a reference avoids a copy.
		if a.refConversion {
			return -1
		}
		return 1
	}
	if a.qualAdjust != b.qualAdjust {
		if !a.qualAdjust {
			return -1
		}
		return 1
	}
	return 0
}

// ConversionPolicy controls whether explicit constructors participate.
type ConversionPolicy int

const (
	NoExplicitConversions ConversionPolicy = iota
	AllowExplicitConversions
)

// Conversion is a full implicit conversion: a standard conversion,
// optionally followed by a user-defined conversion (converting constructor
// or cast operator) and a second standard conversion.
type Conversion struct {
	First       StandardConversion
	UserDefined *types.Function
	Second      StandardConversion
}

// NotConvertibleConv is the failed conversion.
func NotConvertibleConv() Conversion { return Conversion{} }

// IsInvalid reports a failed conversion.
func (c Conversion) IsInvalid() bool {
	return !c.First.IsConvertible() && c.UserDefined == nil
}

// IsUserDefinedConversion reports user code involvement.
func (c Conversion) IsUserDefinedConversion() bool { return c.UserDefined != nil }

// IsNarrowing propagates narrowing through the sequence.
func (c Conversion) IsNarrowing() bool {
	return c.First.IsNarrowing() || c.Second.IsNarrowing()
}

// Rank grades the full sequence.
func (c Conversion) Rank() Rank {
	if c.UserDefined != nil {
		return UserDefinedRank
	}
	if !c.First.IsConvertible() {
		return NotConvertibleRank
	}
	return c.First.Rank()
}

// SrcType returns the sequence's source.
func (c Conversion) SrcType() types.Type { return c.First.SrcType() }

// DestType returns the sequence's destination.
func (c Conversion) DestType() types.Type {
	if c.UserDefined != nil {
		return c.Second.DestType()
	}
	return c.First.DestType()
}

// ComputeConversion computes the conversion sequence from src to dst,
// trying the standard path first and enumerating converting constructors
// and cast operators otherwise.
func ComputeConversion(src, dst types.Type, ts *types.TypeSystem, policy ConversionPolicy) Conversion {
	std := ComputeStandardConversion(src, dst, ts)
	if std.IsConvertible() {
		return Conversion{First: std}
	}

	best := NotConvertibleConv()
	consider := func(cand Conversion) {
		if best.IsInvalid() {
			best = cand
			return
		}
		if CompStandardConversion(cand.First, best.First) < 0 {
			best = cand
		}
	}

	// Converting constructors of the destination class.
	if dstClass := ts.GetClass(dst); dstClass != nil {
		for _, ctor := range dstClass.Constructors {
			if ctor.IsDeleted() {
				continue
			}
			if ctor.IsExplicit() && policy != AllowExplicitConversions {
				continue
			}
			// one value parameter besides the implicit object
			if ctor.Proto.ParamCount()-1-ctor.DefaultArgCount() > 1 || ctor.Proto.ParamCount() < 2 {
				continue
			}
			paramType := ctor.Proto.Params[1]
			first := ComputeStandardConversion(src, paramType, ts)
			if !first.IsConvertible() {
				continue
			}
			consider(Conversion{First: first, UserDefined: ctor, Second: CopyStdConv(dst)})
		}
	}

	// Cast operators of the source class.
	if srcClass := ts.GetClass(src); srcClass != nil {
		for cls := srcClass; cls != nil; cls = cls.Parent {
			for _, cast := range cls.Casts {
				if cast.IsDeleted() {
					continue
				}
				if cast.IsExplicit() && policy != AllowExplicitConversions {
					continue
				}
				if src.IsConst() && !cast.IsConstMember() {
					continue
				}
				second := ComputeStandardConversion(cast.ReturnType(), dst, ts)
				if !second.IsConvertible() {
					continue
				}
				cand := Conversion{First: CopyStdConv(src), UserDefined: cast, Second: second}
				if best.IsInvalid() {
					best = cand
				}
			}
		}
	}

	return best
}

// CompConversion orders two conversion sequences; negative when a is
// better, zero when indistinguishable or not comparable.
func CompConversion(a, b Conversion) int {
	if ra, rb := a.Rank(), b.Rank(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if a.UserDefined == nil && b.UserDefined == nil {
		return CompStandardConversion(a.First, b.First)
	}
	if a.UserDefined != nil && b.UserDefined != nil && a.UserDefined == b.UserDefined {
		return CompStandardConversion(a.Second, b.Second)
	}
	return 0
}
