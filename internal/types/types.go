// Package types implements the CScript type system: types as compact
// integer handles, interned function types, classes, enums, namespaces and
// templates.
package types

// Type is a packed 32-bit type handle: the low bits identify the type, the
// category bits classify it, and the modifier bits carry const/reference
// qualifications that never alter identity.
type Type uint32

// Fundamental type ids.
const (
	Null Type = 0

	Void    Type = 1
	Boolean Type = 2
	Char    Type = 3
	Int     Type = 4
	Float   Type = 5
	Double  Type = 6

	// Auto is a placeholder for variable-declaration deduction; it never
	// exists post-compilation.
	Auto Type = 7

	// InitializerList is a category marker used inside the conversion
	// rules; concrete initializer-list types are instances of the
	// initializer_list<T> template.
	InitializerList Type = 8

	firstUserID Type = 0x100
)

// Category flags.
const (
	EnumFlag      Type = 0x010000
	ObjectFlag    Type = 0x020000
	PrototypeFlag Type = 0x040000
	LambdaFlag    Type = 0x080000
)

// Modifier flags.
const (
	ConstFlag            Type = 0x100000
	ReferenceFlag        Type = 0x200000
	ForwardReferenceFlag Type = 0x400000
	ThisFlag             Type = 0x800000
)

const modifierMask = ConstFlag | ReferenceFlag | ForwardReferenceFlag | ThisFlag

// Category classifies a base type.
type Category int

const (
	FundamentalCategory Category = iota
	EnumCategory
	ObjectCategory
	PrototypeCategory
	ClosureCategory
)

// BaseType strips all modifier flags, yielding the type's identity.
func (t Type) BaseType() Type { return t &^ modifierMask }

// Category returns the category of the base type.
func (t Type) Category() Category {
	switch {
	case t&EnumFlag != 0:
		return EnumCategory
	case t&ObjectFlag != 0:
		return ObjectCategory
	case t&PrototypeFlag != 0:
		return PrototypeCategory
	case t&LambdaFlag != 0:
		return ClosureCategory
	}
	return FundamentalCategory
}

// IsNull reports the zero handle.
func (t Type) IsNull() bool { return t.BaseType() == Null }

// IsValid reports a non-null handle.
func (t Type) IsValid() bool { return !t.IsNull() }

// IsFundamental reports whether the base type is one of the built-in value
// types (void excluded from arithmetic but still fundamental).
func (t Type) IsFundamental() bool {
	b := t.BaseType()
	return b >= Void && b <= Auto
}

// IsAuto reports the deduction placeholder.
func (t Type) IsAuto() bool { return t.BaseType() == Auto }

// IsEnumType reports an enumeration type.
func (t Type) IsEnumType() bool { return t&EnumFlag != 0 }

// IsObjectType reports a class type.
func (t Type) IsObjectType() bool { return t&ObjectFlag != 0 }

// IsFunctionType reports an interned function signature type.
func (t Type) IsFunctionType() bool { return t&PrototypeFlag != 0 }

// IsClosureType reports a lambda closure type.
func (t Type) IsClosureType() bool { return t&LambdaFlag != 0 }

// IsConst reports the const modifier.
func (t Type) IsConst() bool { return t&ConstFlag != 0 }

// IsReference reports the reference modifier.
func (t Type) IsReference() bool { return t&ReferenceFlag != 0 }

// IsConstRef reports a const reference.
func (t Type) IsConstRef() bool { return t.IsConst() && t.IsReference() }

// IsThis reports the implicit-object modifier.
func (t Type) IsThis() bool { return t&ThisFlag != 0 }

// WithConst returns the type with the const modifier set.
func (t Type) WithConst() Type { return t | ConstFlag }

// WithoutConst returns the type with the const modifier cleared.
func (t Type) WithoutConst() Type { return t &^ ConstFlag }

// WithFlag returns the type with an extra flag set.
func (t Type) WithFlag(f Type) Type { return t | f }

// WithoutFlag returns the type with a flag cleared.
func (t Type) WithoutFlag(f Type) Type { return t &^ f }

// WithoutRef returns the type with the reference modifier cleared.
func (t Type) WithoutRef() Type { return t &^ ReferenceFlag }

// Ref returns a reference to the type.
func Ref(t Type) Type { return t | ReferenceFlag }

// Cref returns a const reference to the type.
func Cref(t Type) Type { return t | ConstFlag | ReferenceFlag }
