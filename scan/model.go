package scan

// Dispatch is how a call site invokes its target.
type Dispatch int

const (
	DispatchStatic Dispatch = iota
	DispatchVirtual
)

func (d Dispatch) String() string {
	if d == DispatchVirtual {
		return "virtual"
	}
	return "static"
}

// CallSite is one call made from a method body.
type CallSite struct {
	// Method is the simple name of the called method.
	Method string

	Dispatch Dispatch

	// Generic reports whether the callee is an instantiated generic method.
	Generic bool

	// Params is the callee's declared parameter count, excluding the receiver.
	Params int

	// TypeArg is the full name of the callee's type argument.
	TypeArg string
}

// Method is a declared method of a type.
type Method struct {
	Name string

	// Description is the full signature used for skip matching. When empty
	// it defaults to "<type>:<name>".
	Description string

	Abstract bool

	// Generic reports whether the method itself has open type parameters.
	Generic bool

	// Body returns the calls made by the method. It may fail or panic for
	// methods whose body cannot be read.
	Body func() ([]CallSite, error)
}

// Type is a declared type.
type Type struct {
	FullName string
	Methods  []Method
}

// Module is a unit of compiled code, such as an assembly or plugin.
type Module struct {
	Name  string
	Types []Type
}

// Hierarchy answers assignability between named types.
type Hierarchy interface {
	AssignableTo(typ, base string) bool
}

// ParentMap is a Hierarchy backed by a child to parent mapping.
type ParentMap map[string]string

// AssignableTo reports whether typ is base or derives from it.
func (p ParentMap) AssignableTo(typ, base string) bool {
	for seen := 0; typ != "" && seen <= len(p); seen++ {
		if typ == base {
			return true
		}
		typ = p[typ]
	}
	return false
}

// Universe is the program being scanned.
type Universe struct {
	Modules   []Module
	Hierarchy Hierarchy
}

// MethodRef identifies a scanned method.
type MethodRef struct {
	Module string
	Type   string
	Method string
}

// String returns "<type>:<method>".
func (r MethodRef) String() string {
	return r.Type + ":" + r.Method
}

func describe(t Type, m Method) string {
	if m.Description != "" {
		return m.Description
	}
	return t.FullName + ":" + m.Name
}
