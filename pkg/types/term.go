// Package types implements the type terms (component E), their textual
// annotation syntax (component D) and the union-find unifier (component E) used by the
// lispy type checker.
package types

import "fmt"

// Type is the sealed variant of every type term the checker can produce: Int, Float,
// Bool, List, Function or Unknown.
type Type interface {
	isType()
	String() string
}

// Int is the type of integer literals and integer-valued expressions.
type Int struct{}

func (Int) isType()        {}
func (Int) String() string { return "int" }

// Float is the type of floating point literals and float-valued expressions.
type Float struct{}

func (Float) isType()        {}
func (Float) String() string { return "float" }

// Bool is the type of boolean literals and boolean-valued expressions.
type Bool struct{}

func (Bool) isType()        {}
func (Bool) String() string { return "bool" }

// List is the type of a homogeneous list whose elements have Element's type.
type List struct {
	Element Type
}

func (l *List) isType() {}
func (l *List) String() string {
	return fmt.Sprintf("(list %s)", l.Element)
}

// Function is the type of a lambda value: Params types, in order, and a Return type.
type Function struct {
	Params []Type
	Return Type
}

func (f *Function) isType() {}
func (f *Function) String() string {
	s := "(func ("
	for i, p := range f.Params {
		if i > 0 {
			s += " "
		}
		s += p.String()
	}
	return s + ") " + f.Return.String() + ")"
}

// Unknown is a placeholder type awaiting resolution by the Unifier. Equality of Unknown
// values is by pointer identity, never by structure: two distinct Unknown values are
// never equal even though they carry no fields, exactly as two fresh metavariables are
// never the same variable.
type Unknown struct {
	// name is purely cosmetic, used only for diagnostics and String().
	name string
}

// NewUnknown returns a fresh, uniquely-identified Unknown type. name is used only when
// printing the type for diagnostics.
func NewUnknown(name string) *Unknown {
	return &Unknown{name: name}
}

func (u *Unknown) isType() {}
func (u *Unknown) String() string {
	if u.name != "" {
		return "?" + u.name
	}
	return fmt.Sprintf("?%p", u)
}

// Equal reports whether a and b are the same type term. List and Function are compared
// structurally; Unknown is compared by identity, consistent with its role as a
// metavariable rather than a value type.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Int:
		_, ok := b.(Int)
		return ok
	case Float:
		_, ok := b.(Float)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case *List:
		bl, ok := b.(*List)
		return ok && Equal(a.Element, bl.Element)
	case *Function:
		bf, ok := b.(*Function)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		for i, p := range a.Params {
			if !Equal(p, bf.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, bf.Return)
	case *Unknown:
		bu, ok := b.(*Unknown)
		return ok && a == bu
	default:
		return false
	}
}
