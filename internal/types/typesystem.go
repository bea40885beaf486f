package types

// Capture is one captured variable of a closure type.
type Capture struct {
	Name        string
	Type        Type
	ByReference bool
}

// ClosureType is the anonymous type synthesized for a lambda: one field per
// capture and a function-call operator whose implicit object is the closure.
type ClosureType struct {
	Type         Type
	Captures     []Capture
	CallOperator *Function
}

// CaptureIndex returns the index of a capture by name, or -1.
func (c *ClosureType) CaptureIndex(name string) int {
	for i := range c.Captures {
		if c.Captures[i].Name == name {
			return i
		}
	}
	return -1
}

// FunctionType pairs an interned signature with its type handle.
type FunctionType struct {
	Type  Type
	Proto Prototype
}

// TypeSystem owns the interned collections of the compiler: function-type
// signatures, class definitions, enum definitions and closure types. All
// queries run in O(1) after construction.
//
// Registrations go through a TypeSystemTransaction: rolling the transaction
// back removes every registration performed in it, so a class or template
// construction failing midway does not leak half-built types.
type TypeSystem struct {
	classes       map[Type]*Class
	enums         map[Type]*Enum
	closures      map[Type]*ClosureType
	functionTypes map[Type]FunctionType
	protoIndex    map[string]Type

	nextID Type

	transactions []*TypeSystemTransaction
}

// NewTypeSystem creates a type system holding only the fundamental types.
func NewTypeSystem() *TypeSystem {
	return &TypeSystem{
		classes:       map[Type]*Class{},
		enums:         map[Type]*Enum{},
		closures:      map[Type]*ClosureType{},
		functionTypes: map[Type]FunctionType{},
		protoIndex:    map[string]Type{},
		nextID:        firstUserID,
	}
}

func (ts *TypeSystem) allocate(category Type) Type {
	t := ts.nextID | category
	ts.nextID++
	return t
}

func (ts *TypeSystem) recordRegistration(t Type) {
	if n := len(ts.transactions); n > 0 {
		tr := ts.transactions[n-1]
		tr.registered = append(tr.registered, t)
	}
}

// Exists reports whether the base type is known to the type system.
func (ts *TypeSystem) Exists(t Type) bool {
	b := t.BaseType()
	if b.IsFundamental() || b == InitializerList {
		return true
	}
	switch b.Category() {
	case EnumCategory:
		_, ok := ts.enums[b]
		return ok
	case ObjectCategory:
		_, ok := ts.classes[b]
		return ok
	case PrototypeCategory:
		_, ok := ts.functionTypes[b]
		return ok
	case ClosureCategory:
		_, ok := ts.closures[b]
		return ok
	}
	return false
}

// RegisterClass assigns a type handle to the class and indexes it.
func (ts *TypeSystem) RegisterClass(c *Class) Type {
	t := ts.allocate(ObjectFlag)
	c.Type = t
	ts.classes[t] = c
	ts.recordRegistration(t)
	return t
}

// RegisterEnum assigns a type handle to the enum and indexes it.
func (ts *TypeSystem) RegisterEnum(e *Enum) Type {
	t := ts.allocate(EnumFlag)
	e.Type = t
	ts.enums[t] = e
	ts.recordRegistration(t)
	return t
}

// RegisterClosure creates a closure type for the given captures.
func (ts *TypeSystem) RegisterClosure(captures []Capture) *ClosureType {
	t := ts.allocate(LambdaFlag)
	ct := &ClosureType{Type: t, Captures: captures}
	ts.closures[t] = ct
	ts.recordRegistration(t)
	return ct
}

// GetClass resolves a class type handle.
func (ts *TypeSystem) GetClass(t Type) *Class {
	return ts.classes[t.BaseType()]
}

// GetEnum resolves an enum type handle.
func (ts *TypeSystem) GetEnum(t Type) *Enum {
	return ts.enums[t.BaseType()]
}

// GetLambda resolves a closure type handle.
func (ts *TypeSystem) GetLambda(t Type) *ClosureType {
	return ts.closures[t.BaseType()]
}

// GetFunctionType interns a prototype, registering a fresh type handle on
// first sight. Identical signatures share one handle.
func (ts *TypeSystem) GetFunctionType(proto Prototype) Type {
	key := proto.Key()
	if t, ok := ts.protoIndex[key]; ok {
		return t
	}
	t := ts.allocate(PrototypeFlag)
	ts.protoIndex[key] = t
	ts.functionTypes[t] = FunctionType{Type: t, Proto: proto}
	ts.recordRegistration(t)
	return t
}

// FunctionTypeProto resolves a function type handle back to its signature.
func (ts *TypeSystem) FunctionTypeProto(t Type) (Prototype, bool) {
	ft, ok := ts.functionTypes[t.BaseType()]
	return ft.Proto, ok
}

// IsInitializerList reports whether the type is the marker or an instance of
// the initializer_list template.
func (ts *TypeSystem) IsInitializerList(t Type) bool {
	if t.BaseType() == InitializerList {
		return true
	}
	c := ts.GetClass(t)
	return c != nil && c.Instantiation != nil && c.Instantiation.Template.Name == "initializer_list"
}

// InitializerListElementType returns the element type of an
// initializer_list instance.
func (ts *TypeSystem) InitializerListElementType(t Type) (Type, bool) {
	c := ts.GetClass(t)
	if c == nil || c.Instantiation == nil || c.Instantiation.Template.Name != "initializer_list" {
		return Null, false
	}
	return c.Instantiation.Args[0].Type, true
}

func (ts *TypeSystem) unregister(t Type) {
	b := t.BaseType()
	switch b.Category() {
	case EnumCategory:
		delete(ts.enums, b)
	case ObjectCategory:
		if c, ok := ts.classes[b]; ok {
			if c.Instantiation != nil {
				delete(c.Instantiation.Template.Instances, ArgumentsKey(c.Instantiation.Args))
			}
			delete(ts.classes, b)
		}
	case PrototypeCategory:
		if ft, ok := ts.functionTypes[b]; ok {
			delete(ts.protoIndex, ft.Proto.Key())
			delete(ts.functionTypes, b)
		}
	case ClosureCategory:
		delete(ts.closures, b)
	}
}

// TypeSystemTransaction scopes a group of registrations. Rollback removes
// every type registered since BeginTransaction; a rolled-back type is no
// longer queryable.
type TypeSystemTransaction struct {
	ts         *TypeSystem
	registered []Type
	done       bool
}

// BeginTransaction opens a transaction. Transactions nest; the innermost
// one records new registrations.
func (ts *TypeSystem) BeginTransaction() *TypeSystemTransaction {
	tr := &TypeSystemTransaction{ts: ts}
	ts.transactions = append(ts.transactions, tr)
	return tr
}

func (tr *TypeSystemTransaction) pop() {
	stack := tr.ts.transactions
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tr {
			tr.ts.transactions = append(stack[:i], stack[i+1:]...)
			return
		}
	}
}

// Commit keeps the registrations. When the transaction is nested, they are
// handed to the enclosing transaction.
func (tr *TypeSystemTransaction) Commit() {
	if tr.done {
		return
	}
	tr.done = true
	tr.pop()
	if n := len(tr.ts.transactions); n > 0 {
		outer := tr.ts.transactions[n-1]
		outer.registered = append(outer.registered, tr.registered...)
	}
	tr.registered = nil
}

// Rollback deregisters everything registered in this transaction, in
// reverse order.
func (tr *TypeSystemTransaction) Rollback() {
	if tr.done {
		return
	}
	tr.done = true
	tr.pop()
	for i := len(tr.registered) - 1; i >= 0; i-- {
		tr.ts.unregister(tr.registered[i])
	}
	tr.registered = nil
}
