package types

// FunctionKind distinguishes the flavors of callable symbols.
type FunctionKind int

const (
	RegularFunction FunctionKind = iota
	ConstructorFunction
	DestructorFunction
	OperatorFunction
	CastFunction
	LiteralOperatorFunction
)

// FunctionFlags are the specifier bits of a function.
type FunctionFlags uint16

const (
	StaticFlag FunctionFlags = 1 << iota
	VirtualFlag
	PureFlag
	ExplicitFlag
	ConstMemberFlag
	DeletedFlag
	DefaultedFlag
)

// Function is a callable symbol: free function, method, constructor,
// destructor, operator, cast or literal operator.
//
// Body holds the compiled program tree; it is typed opaquely so the type
// system does not depend on the IR package. DefaultArgs likewise hold
// compiled expressions for trailing defaulted parameters, innermost last.
type Function struct {
	Name           string
	Kind           FunctionKind
	OperatorSymbol string // for operators: "+", "==", "()", "[]", ...
	Suffix         string // for literal operators
	Proto          Prototype
	Flags          FunctionFlags
	MemberOf       *Class
	Namespace      *Namespace
	VTableIndex    int
	DefaultArgs    []any
	Body           any
}

// NewFunction creates a regular function.
func NewFunction(name string, proto Prototype) *Function {
	return &Function{Name: name, Proto: proto, VTableIndex: -1}
}

// IsStatic reports the static specifier.
func (f *Function) IsStatic() bool { return f.Flags&StaticFlag != 0 }

// IsVirtual reports virtual dispatch.
func (f *Function) IsVirtual() bool { return f.Flags&VirtualFlag != 0 }

// IsPureVirtual reports '= 0'.
func (f *Function) IsPureVirtual() bool { return f.Flags&PureFlag != 0 }

// IsExplicit reports the explicit specifier.
func (f *Function) IsExplicit() bool { return f.Flags&ExplicitFlag != 0 }

// IsConstMember reports a const member function.
func (f *Function) IsConstMember() bool { return f.Flags&ConstMemberFlag != 0 }

// IsDeleted reports '= delete'.
func (f *Function) IsDeleted() bool { return f.Flags&DeletedFlag != 0 }

// IsDefaulted reports '= default'.
func (f *Function) IsDefaulted() bool { return f.Flags&DefaultedFlag != 0 }

// IsConstructor reports a constructor.
func (f *Function) IsConstructor() bool { return f.Kind == ConstructorFunction }

// IsDestructor reports a destructor.
func (f *Function) IsDestructor() bool { return f.Kind == DestructorFunction }

// IsMember reports whether the function belongs to a class.
func (f *Function) IsMember() bool { return f.MemberOf != nil }

// HasImplicitObject reports a non-static member function, whose first
// parameter is the implicit object.
func (f *Function) HasImplicitObject() bool {
	return f.IsMember() && !f.IsStatic() && f.Kind != ConstructorFunction
}

// DefaultArgCount returns the number of defaulted trailing parameters.
func (f *Function) DefaultArgCount() int { return len(f.DefaultArgs) }

// ReturnType returns the declared return type.
func (f *Function) ReturnType() Type { return f.Proto.ReturnType }
