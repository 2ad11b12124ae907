// Package ast implements the AST parser (component C) and the Form variant it produces:
// constants, variables, composed forms, and one variant per registered special form.
package ast

import "lispy.dev/compiler/pkg/types"

// Form is the sealed variant of every AST node this package can produce.
type Form interface {
	isForm()
	// Equal reports structural equality with other, used by the test suite to compare
	// parsed ASTs without caring about pointer identity.
	Equal(other Form) bool
}

// ConstantKind discriminates the three possible literal values a Constant can carry.
type ConstantKind int

const (
	ConstInt ConstantKind = iota
	ConstFloat
	ConstBool
)

// Constant is a literal integer, float, or boolean value.
type Constant struct {
	Kind  ConstantKind
	Int   int64
	Float float64
	Bool  bool
}

func (*Constant) isForm() {}

func (c *Constant) Equal(other Form) bool {
	o, ok := other.(*Constant)
	if !ok || o.Kind != c.Kind {
		return false
	}
	switch c.Kind {
	case ConstInt:
		return c.Int == o.Int
	case ConstFloat:
		return c.Float == o.Float || (c.Float != c.Float && o.Float != o.Float)
	default:
		return c.Bool == o.Bool
	}
}

// Variable is a non-keyword identifier reference.
type Variable struct {
	Name string
}

func (*Variable) isForm() {}

func (v *Variable) Equal(other Form) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name
}

// ComposedForm is the application of Head to an ordered sequence of Args.
type ComposedForm struct {
	Head Form
	Args []Form
}

func (*ComposedForm) isForm() {}

func (c *ComposedForm) Equal(other Form) bool {
	o, ok := other.(*ComposedForm)
	if !ok || !c.Head.Equal(o.Head) || len(c.Args) != len(o.Args) {
		return false
	}
	for i, arg := range c.Args {
		if !arg.Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// FunctionParameter is a single (name type) pair in a lambda or define's parameter list.
type FunctionParameter struct {
	Name string
	Type types.Type
}

// Lambda is an anonymous function: Parameters bound in Body's scope.
type Lambda struct {
	Parameters []FunctionParameter
	Body       Form
}

func (*Lambda) isForm() {}

func (l *Lambda) Equal(other Form) bool {
	o, ok := other.(*Lambda)
	if !ok || len(l.Parameters) != len(o.Parameters) || !l.Body.Equal(o.Body) {
		return false
	}
	for i, p := range l.Parameters {
		if p.Name != o.Parameters[i].Name || !types.Equal(p.Type, o.Parameters[i].Type) {
			return false
		}
	}
	return true
}

// Define is sugar for binding a named lambda: `(define f (params...) body)` is checked as
// `(lambda (params...) body)` and the result is bound to f directly in the current scope.
// Unlike Set, f need not already be bound.
type Define struct {
	Name       string
	Parameters []FunctionParameter
	Body       Form
}

func (*Define) isForm() {}

func (d *Define) Equal(other Form) bool {
	o, ok := other.(*Define)
	if !ok || d.Name != o.Name || len(d.Parameters) != len(o.Parameters) || !d.Body.Equal(o.Body) {
		return false
	}
	for i, p := range d.Parameters {
		if p.Name != o.Parameters[i].Name || !types.Equal(p.Type, o.Parameters[i].Type) {
			return false
		}
	}
	return true
}

// List is the `(list e1 e2 ...)` special form; an empty List is also the meaning of nil.
type List struct {
	Elements []Form
}

func (*List) isForm() {}

func (l *List) Equal(other Form) bool {
	o, ok := other.(*List)
	if !ok || len(l.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range l.Elements {
		if !e.Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Cons prepends Car onto the list Cdr evaluates to.
type Cons struct {
	Car Form
	Cdr Form
}

func (*Cons) isForm() {}

func (c *Cons) Equal(other Form) bool {
	o, ok := other.(*Cons)
	return ok && c.Car.Equal(o.Car) && c.Cdr.Equal(o.Cdr)
}

// Car extracts the head element of a list.
type Car struct {
	List Form
}

func (*Car) isForm() {}

func (c *Car) Equal(other Form) bool {
	o, ok := other.(*Car)
	return ok && c.List.Equal(o.List)
}

// Cdr extracts the tail of a list.
type Cdr struct {
	List Form
}

func (*Cdr) isForm() {}

func (c *Cdr) Equal(other Form) bool {
	o, ok := other.(*Cdr)
	return ok && c.List.Equal(o.List)
}

// Progn evaluates Forms in order, yielding the last one's value.
type Progn struct {
	Forms []Form
}

func (*Progn) isForm() {}

func (p *Progn) Equal(other Form) bool {
	o, ok := other.(*Progn)
	if !ok || len(p.Forms) != len(o.Forms) {
		return false
	}
	for i, f := range p.Forms {
		if !f.Equal(o.Forms[i]) {
			return false
		}
	}
	return true
}

// Set assigns Value to the already-bound Name. The checker unifies Value's type with
// Name's existing binding; the scope entry itself is not replaced.
type Set struct {
	Name  string
	Value Form
}

func (*Set) isForm() {}

func (s *Set) Equal(other Form) bool {
	o, ok := other.(*Set)
	return ok && s.Name == o.Name && s.Value.Equal(o.Value)
}

// LetBinding is a single (name value) pair in a let's binding list.
type LetBinding struct {
	Name  string
	Value Form
}

// Let evaluates Bindings in parallel against the outer scope, then checks Body under a
// nested scope holding all of them at once.
type Let struct {
	Bindings []LetBinding
	Body     []Form
}

func (*Let) isForm() {}

func (l *Let) Equal(other Form) bool {
	o, ok := other.(*Let)
	if !ok || len(l.Bindings) != len(o.Bindings) || len(l.Body) != len(o.Body) {
		return false
	}
	for i, b := range l.Bindings {
		if b.Name != o.Bindings[i].Name || !b.Value.Equal(o.Bindings[i].Value) {
			return false
		}
	}
	for i, f := range l.Body {
		if !f.Equal(o.Body[i]) {
			return false
		}
	}
	return true
}

// Branch is a single (predicate value) pair inside a cond or select.
type Branch struct {
	Predicate Form
	Value     Form
}

// Cond checks Branches' predicates as booleans in order, returning the value of the
// first that matches a concrete true branch's type, unified with Default's.
type Cond struct {
	Branches []Branch
	Default  Form
}

func (*Cond) isForm() {}

func (c *Cond) Equal(other Form) bool {
	o, ok := other.(*Cond)
	if !ok || len(c.Branches) != len(o.Branches) || !c.Default.Equal(o.Default) {
		return false
	}
	return branchesEqual(c.Branches, o.Branches)
}

// Select generalises Cond: Value's type need not be Bool, it is unified against every
// branch's predicate type instead.
type Select struct {
	Value    Form
	Branches []Branch
	Default  Form
}

func (*Select) isForm() {}

func (s *Select) Equal(other Form) bool {
	o, ok := other.(*Select)
	if !ok || !s.Value.Equal(o.Value) || len(s.Branches) != len(o.Branches) || !s.Default.Equal(o.Default) {
		return false
	}
	return branchesEqual(s.Branches, o.Branches)
}

func branchesEqual(a, b []Branch) bool {
	for i, br := range a {
		if !br.Predicate.Equal(b[i].Predicate) || !br.Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}

// Program is the top-level sequence of Forms parsed from a source file.
type Program struct {
	Body []Form
}
