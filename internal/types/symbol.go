package types

// SymbolKind discriminates Symbol.
type SymbolKind int

const (
	InvalidSymbol SymbolKind = iota
	NamespaceSymbol
	ClassSymbol
	FunctionSymbol
	OperatorSymbol
	LiteralOperatorSymbol
	EnumSymbol
)

// Symbol is a tagged union over the entities name lookup can produce and
// attributes can be attached to. Each symbol reaches its enclosing symbol
// through the entity's own parent links, enabling qualified-name
// reconstruction.
type Symbol struct {
	Kind      SymbolKind
	Namespace *Namespace
	Class     *Class
	Function  *Function
	Enum      *Enum
}

// NamespaceSym wraps a namespace.
func NamespaceSym(ns *Namespace) Symbol { return Symbol{Kind: NamespaceSymbol, Namespace: ns} }

// ClassSym wraps a class.
func ClassSym(c *Class) Symbol { return Symbol{Kind: ClassSymbol, Class: c} }

// FunctionSym wraps a function.
func FunctionSym(f *Function) Symbol {
	kind := FunctionSymbol
	switch f.Kind {
	case OperatorFunction:
		kind = OperatorSymbol
	case LiteralOperatorFunction:
		kind = LiteralOperatorSymbol
	}
	return Symbol{Kind: kind, Function: f}
}

// EnumSym wraps an enum.
func EnumSym(e *Enum) Symbol { return Symbol{Kind: EnumSymbol, Enum: e} }

// IsNull reports an empty symbol.
func (s Symbol) IsNull() bool { return s.Kind == InvalidSymbol }

// Enclosing returns the symbol lexically containing this one.
func (s Symbol) Enclosing() Symbol {
	switch s.Kind {
	case NamespaceSymbol:
		if s.Namespace.Parent != nil {
			return NamespaceSym(s.Namespace.Parent)
		}
	case ClassSymbol:
		if s.Class.EnclosingClass != nil {
			return ClassSym(s.Class.EnclosingClass)
		}
		if s.Class.EnclosingNamespace != nil {
			return NamespaceSym(s.Class.EnclosingNamespace)
		}
	case FunctionSymbol, OperatorSymbol, LiteralOperatorSymbol:
		if s.Function.MemberOf != nil {
			return ClassSym(s.Function.MemberOf)
		}
		if s.Function.Namespace != nil {
			return NamespaceSym(s.Function.Namespace)
		}
	case EnumSymbol:
		if s.Enum.EnclosingClass != nil {
			return ClassSym(s.Enum.EnclosingClass)
		}
		if s.Enum.EnclosingNamespace != nil {
			return NamespaceSym(s.Enum.EnclosingNamespace)
		}
	}
	return Symbol{}
}

// Name returns the symbol's unqualified name.
func (s Symbol) Name() string {
	switch s.Kind {
	case NamespaceSymbol:
		return s.Namespace.Name
	case ClassSymbol:
		return s.Class.Name
	case FunctionSymbol, OperatorSymbol, LiteralOperatorSymbol:
		return s.Function.Name
	case EnumSymbol:
		return s.Enum.Name
	}
	return ""
}

// QualifiedName reconstructs the symbol's fully qualified name by walking
// the enclosing chain.
func (s Symbol) QualifiedName() string {
	name := s.Name()
	for enc := s.Enclosing(); !enc.IsNull(); enc = enc.Enclosing() {
		if enc.Name() == "" {
			break
		}
		name = enc.Name() + "::" + name
	}
	return name
}
