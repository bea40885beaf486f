package semantic

import (
	"github.com/tmaxwell/go-cscript/internal/program"
)

// ApplyStandardConversion wraps an expression in the IR node realizing a
// standard conversion: nothing for reference bindings, Copy for plain and
// derived-to-base copies, FundamentalConversion for numeric moves.
func ApplyStandardConversion(expr program.Expression, conv StandardConversion) program.Expression {
	if conv.IsReferenceConversion() {
		return expr
	}
	if conv.IsNumericPromotion() || conv.IsNumericConversion() || conv.IsEnumToInt() {
		return &program.FundamentalConversion{DestType: conv.DestType().BaseType(), Arg: expr}
	}
	return &program.Copy{T: conv.DestType().BaseType(), Arg: expr}
}

// ApplyConversion wraps an expression in the IR realizing a full conversion
// sequence, invoking the user-defined constructor or cast operator when one
// participates.
func ApplyConversion(expr program.Expression, conv Conversion, offset int) (program.Expression, error) {
	if conv.IsInvalid() {
		return nil, fail(CouldNotConvert, offset)
	}

	if conv.UserDefined == nil {
		return ApplyStandardConversion(expr, conv.First), nil
	}

	if conv.UserDefined.IsConstructor() {
		arg := ApplyStandardConversion(expr, conv.First)
		out := program.Expression(&program.ConstructorCall{
			Constructor: conv.UserDefined,
			T:           conv.UserDefined.MemberOf.Type,
			Args:        []program.Expression{arg},
		})
		if !conv.Second.IsCopy() && conv.Second.IsConvertible() {
			out = ApplyStandardConversion(out, conv.Second)
		}
		return out, nil
	}

	// cast operator: the object is the implicit argument
	out := program.Expression(&program.FunctionCall{
		Callee: conv.UserDefined,
		Args:   []program.Expression{expr},
	})
	if !conv.Second.IsCopy() && conv.Second.IsConvertible() {
		out = ApplyStandardConversion(out, conv.Second)
	}
	return out, nil
}
