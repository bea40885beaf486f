package types

import "testing"

func TestTypeModifierFlags(t *testing.T) {
	base := Int

	if Ref(base).BaseType() != base {
		t.Error("Ref must not alter identity")
	}
	if Cref(base).BaseType() != base {
		t.Error("Cref must not alter identity")
	}
	if !Cref(base).IsConst() || !Cref(base).IsReference() {
		t.Error("Cref must set const and reference")
	}
	if base.WithConst().WithoutConst() != base {
		t.Error("WithConst/WithoutConst must round-trip")
	}
	if Ref(base).WithoutRef() != base {
		t.Error("WithoutRef must clear the reference flag")
	}
}

func TestTypeCategories(t *testing.T) {
	if Int.Category() != FundamentalCategory || !Int.IsFundamental() {
		t.Error("int is fundamental")
	}
	e := Type(0x101) | EnumFlag
	if e.Category() != EnumCategory || !e.IsEnumType() {
		t.Error("enum flag")
	}
	o := Type(0x102) | ObjectFlag
	if o.Category() != ObjectCategory || !o.IsObjectType() {
		t.Error("object flag")
	}
	p := Type(0x103) | PrototypeFlag
	if p.Category() != PrototypeCategory || !p.IsFunctionType() {
		t.Error("prototype flag")
	}
	c := Type(0x104) | LambdaFlag
	if c.Category() != ClosureCategory || !c.IsClosureType() {
		t.Error("lambda flag")
	}
	// Modifiers never change the category.
	if Cref(o).Category() != ObjectCategory {
		t.Error("modifiers must not alter the category")
	}
}

func TestAutoIsPlaceholder(t *testing.T) {
	if !Auto.IsAuto() {
		t.Error("Auto must report IsAuto")
	}
	if Ref(Auto.WithConst()).BaseType() != Auto {
		t.Error("qualifiers strip back to Auto")
	}
}

func TestFunctionTypeInterning(t *testing.T) {
	ts := NewTypeSystem()

	p1 := NewPrototype(Int, Int, Int)
	p2 := NewPrototype(Int, Int, Int)
	p3 := NewPrototype(Int, Int, Double)

	t1 := ts.GetFunctionType(p1)
	t2 := ts.GetFunctionType(p2)
	t3 := ts.GetFunctionType(p3)

	if t1 != t2 {
		t.Error("identical prototypes must share one type handle")
	}
	if t1 == t3 {
		t.Error("distinct prototypes must not share a handle")
	}
	if !t1.IsFunctionType() {
		t.Error("interned handle must carry the prototype category")
	}

	proto, ok := ts.FunctionTypeProto(t1)
	if !ok || !proto.Equals(p1) {
		t.Error("handle must resolve back to the signature")
	}
}

func TestClassRegistration(t *testing.T) {
	ts := NewTypeSystem()

	c := NewClass("Point")
	handle := ts.RegisterClass(c)

	if !ts.Exists(handle) {
		t.Error("registered class must exist")
	}
	if ts.GetClass(handle) != c {
		t.Error("handle must resolve to the class")
	}
	if ts.GetClass(Cref(handle)) != c {
		t.Error("qualified handle must resolve too")
	}
}

func TestInheritanceDepth(t *testing.T) {
	ts := NewTypeSystem()
	a := NewClass("A")
	ts.RegisterClass(a)
	b := NewClass("B")
	b.Parent = a
	ts.RegisterClass(b)
	c := NewClass("C")
	c.Parent = b
	ts.RegisterClass(c)

	if d, ok := c.InheritanceDepth(a); !ok || d != 2 {
		t.Errorf("C to A: (%d, %v)", d, ok)
	}
	if d, ok := c.InheritanceDepth(c); !ok || d != 0 {
		t.Errorf("C to C: (%d, %v)", d, ok)
	}
	if _, ok := a.InheritanceDepth(c); ok {
		t.Error("A does not derive from C")
	}
}

func TestAttributeIndexing(t *testing.T) {
	a := NewClass("A")
	a.DataMembers = append(a.DataMembers, DataMember{Name: "x", Type: Int})
	b := NewClass("B")
	b.Parent = a
	b.DataMembers = append(b.DataMembers, DataMember{Name: "y", Type: Double})

	if b.AttributesCount() != 2 {
		t.Errorf("count %d", b.AttributesCount())
	}
	if b.AttributeIndex("x") != 0 {
		t.Errorf("x at %d", b.AttributeIndex("x"))
	}
	if b.AttributeIndex("y") != 1 {
		t.Errorf("y at %d", b.AttributeIndex("y"))
	}
	if b.AttributeAt(0).Name != "x" || b.AttributeAt(1).Name != "y" {
		t.Error("AttributeAt mismatch")
	}
}

func TestTransactionRollback(t *testing.T) {
	ts := NewTypeSystem()

	kept := NewClass("Kept")
	ts.RegisterClass(kept)

	tr := ts.BeginTransaction()
	doomed := NewClass("Doomed")
	doomedType := ts.RegisterClass(doomed)
	doomedEnum := NewEnum("DoomedE", false)
	doomedEnumType := ts.RegisterEnum(doomedEnum)
	doomedFn := ts.GetFunctionType(NewPrototype(Void, doomedType))
	tr.Rollback()

	if ts.Exists(doomedType) || ts.Exists(doomedEnumType) || ts.Exists(doomedFn) {
		t.Error("rolled-back registrations must not be queryable")
	}
	if !ts.Exists(kept.Type) {
		t.Error("registrations outside the transaction survive")
	}
}

func TestTransactionCommitHandsToOuter(t *testing.T) {
	ts := NewTypeSystem()

	outer := ts.BeginTransaction()
	inner := ts.BeginTransaction()
	c := NewClass("C")
	handle := ts.RegisterClass(c)
	inner.Commit()

	// The inner commit defers to the outer transaction; rolling the outer
	// back still removes the registration.
	outer.Rollback()
	if ts.Exists(handle) {
		t.Error("outer rollback must undo inner-committed registrations")
	}
}

func TestArgumentsKey(t *testing.T) {
	a := []TemplateArg{TypeArg(Int), IntArg(3)}
	b := []TemplateArg{TypeArg(Int), IntArg(3)}
	c := []TemplateArg{TypeArg(Int), IntArg(4)}
	if ArgumentsKey(a) != ArgumentsKey(b) {
		t.Error("equal tuples must share a key")
	}
	if ArgumentsKey(a) == ArgumentsKey(c) {
		t.Error("distinct tuples must not share a key")
	}
}

func TestSymbolQualifiedName(t *testing.T) {
	root := NewNamespace("", nil)
	math := root.ChildNamespace("math")
	cls := NewClass("Vec")
	cls.EnclosingNamespace = math

	sym := ClassSym(cls)
	if got := sym.QualifiedName(); got != "math::Vec" {
		t.Errorf("qualified name %q", got)
	}
}
