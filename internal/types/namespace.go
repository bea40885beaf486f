package types

// GlobalVariable is a namespace-level variable; Index addresses the owning
// script's global table.
type GlobalVariable struct {
	Name  string
	Type  Type
	Index int
}

// Namespace owns the symbols declared at namespace level. The root
// namespace is process-wide and owns the fundamental types.
type Namespace struct {
	Name   string
	Parent *Namespace

	Namespaces        map[string]*Namespace
	NamespaceAliases  map[string]*Namespace
	Classes           map[string]*Class
	Enums             map[string]*Enum
	Functions         map[string][]*Function
	Operators         []*Function
	LiteralOperators  []*Function
	Variables         map[string]*GlobalVariable
	Typedefs          map[string]Type
	ClassTemplates    map[string]*ClassTemplate
	FunctionTemplates map[string]*FunctionTemplate
}

// NewNamespace creates an empty namespace under parent; parent is nil for
// the root.
func NewNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		Name:              name,
		Parent:            parent,
		Namespaces:        map[string]*Namespace{},
		NamespaceAliases:  map[string]*Namespace{},
		Classes:           map[string]*Class{},
		Enums:             map[string]*Enum{},
		Functions:         map[string][]*Function{},
		Variables:         map[string]*GlobalVariable{},
		Typedefs:          map[string]Type{},
		ClassTemplates:    map[string]*ClassTemplate{},
		FunctionTemplates: map[string]*FunctionTemplate{},
	}
}

// ChildNamespace returns the named child, creating it on first use.
func (ns *Namespace) ChildNamespace(name string) *Namespace {
	if child, ok := ns.Namespaces[name]; ok {
		return child
	}
	child := NewNamespace(name, ns)
	ns.Namespaces[name] = child
	return child
}

// AddFunction registers a function overload.
func (ns *Namespace) AddFunction(f *Function) {
	f.Namespace = ns
	ns.Functions[f.Name] = append(ns.Functions[f.Name], f)
}

// AddOperator registers a free operator.
func (ns *Namespace) AddOperator(f *Function) {
	f.Namespace = ns
	ns.Operators = append(ns.Operators, f)
}

// AddLiteralOperator registers a literal operator.
func (ns *Namespace) AddLiteralOperator(f *Function) {
	f.Namespace = ns
	ns.LiteralOperators = append(ns.LiteralOperators, f)
}

// FindLiteralOperators collects literal operators handling a suffix, in this
// namespace and its ancestors.
func (ns *Namespace) FindLiteralOperators(suffix string) []*Function {
	var out []*Function
	for cur := ns; cur != nil; cur = cur.Parent {
		for _, f := range cur.LiteralOperators {
			if f.Suffix == suffix {
				out = append(out, f)
			}
		}
	}
	return out
}

// QualifiedName renders the namespace's fully qualified name.
func (ns *Namespace) QualifiedName() string {
	if ns.Parent == nil || ns.Parent.Name == "" && ns.Parent.Parent == nil {
		return ns.Name
	}
	parent := ns.Parent.QualifiedName()
	if parent == "" {
		return ns.Name
	}
	return parent + "::" + ns.Name
}
