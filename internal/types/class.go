package types

// AccessSpec is the visibility of a class member.
type AccessSpec int

const (
	PublicAccess AccessSpec = iota
	ProtectedAccess
	PrivateAccess
)

// DataMember is one non-static field of a class.
type DataMember struct {
	Name   string
	Type   Type
	Access AccessSpec
}

// StaticDataMember is a static field; its initializer is a compiled
// expression held opaquely.
type StaticDataMember struct {
	Name   string
	Type   Type
	Access AccessSpec
	Init   any
}

// Class is a class definition. Data member indexing is cumulative over the
// inheritance chain: a member's absolute index is the parent's attribute
// count plus its local index.
type Class struct {
	Name   string
	Type   Type
	Parent *Class

	DataMembers   []DataMember
	StaticMembers map[string]*StaticDataMember

	Constructors []*Function
	Destructor   *Function
	Methods      []*Function
	Operators    []*Function
	Casts        []*Function

	// VTable lists the virtual methods in slot order; overriding methods
	// occupy their parent's slot.
	VTable []*Function

	Classes  map[string]*Class
	Enums    map[string]*Enum
	Typedefs map[string]Type

	Friends []string

	EnclosingNamespace *Namespace
	EnclosingClass     *Class

	// Instantiation records the template this class was produced from,
	// when it is a template instance.
	Instantiation *TemplateInstance
}

// NewClass creates an empty class definition; the type handle is assigned at
// registration.
func NewClass(name string) *Class {
	return &Class{
		Name:          name,
		StaticMembers: map[string]*StaticDataMember{},
		Classes:       map[string]*Class{},
		Enums:         map[string]*Enum{},
		Typedefs:      map[string]Type{},
	}
}

// InheritanceDepth returns the number of derivation steps from c up to
// ancestor, and whether ancestor is on c's parent chain at all. A class is
// at depth 0 from itself.
func (c *Class) InheritanceDepth(ancestor *Class) (int, bool) {
	depth := 0
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return depth, true
		}
		depth++
	}
	return 0, false
}

// AttributesCount returns the number of data members including inherited
// ones.
func (c *Class) AttributesCount() int {
	n := len(c.DataMembers)
	if c.Parent != nil {
		n += c.Parent.AttributesCount()
	}
	return n
}

// AttributeIndex returns the absolute index of a data member, searching the
// inheritance chain; -1 when not found.
func (c *Class) AttributeIndex(name string) int {
	for i := range c.DataMembers {
		if c.DataMembers[i].Name == name {
			offset := 0
			if c.Parent != nil {
				offset = c.Parent.AttributesCount()
			}
			return offset + i
		}
	}
	if c.Parent != nil {
		return c.Parent.AttributeIndex(name)
	}
	return -1
}

// AttributeAt resolves an absolute data member index to its record.
func (c *Class) AttributeAt(index int) *DataMember {
	offset := 0
	if c.Parent != nil {
		offset = c.Parent.AttributesCount()
	}
	if index < offset {
		return c.Parent.AttributeAt(index)
	}
	if index-offset < len(c.DataMembers) {
		return &c.DataMembers[index-offset]
	}
	return nil
}

// FindDataMember looks up a local data member; inherited ones are reached
// via AttributeIndex.
func (c *Class) FindDataMember(name string) (*DataMember, bool) {
	for i := range c.DataMembers {
		if c.DataMembers[i].Name == name {
			return &c.DataMembers[i], true
		}
	}
	return nil, false
}

// FindMethods collects the methods with the given name from this class and
// its ancestors.
func (c *Class) FindMethods(name string) []*Function {
	var out []*Function
	for cur := c; cur != nil; cur = cur.Parent {
		for _, m := range cur.Methods {
			if m.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

// DefaultConstructor returns the parameterless constructor, or one whose
// extra parameters are all defaulted.
func (c *Class) DefaultConstructor() *Function {
	for _, ctor := range c.Constructors {
		if ctor.Proto.ParamCount()-1 <= ctor.DefaultArgCount() {
			return ctor
		}
	}
	return nil
}

// CopyConstructor returns the constructor taking a const reference to the
// class itself.
func (c *Class) CopyConstructor() *Function {
	for _, ctor := range c.Constructors {
		if ctor.Proto.ParamCount() == 2 && ctor.Proto.Params[1] == Cref(c.Type) {
			return ctor
		}
	}
	return nil
}

// IsAbstract reports a class with at least one pure virtual method without
// an override.
func (c *Class) IsAbstract() bool {
	for _, m := range c.VTable {
		if m.IsPureVirtual() {
			return true
		}
	}
	return false
}

// IsFriend reports whether the named class was declared a friend.
func (c *Class) IsFriend(name string) bool {
	for _, f := range c.Friends {
		if f == name {
			return true
		}
	}
	return false
}
