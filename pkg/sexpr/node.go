// Package sexpr implements the grammar (component A) and s-expression builder
// (component B) of the lispy front-end: it turns source text into a uniform tree of
// Atom and List nodes, collected under a Program.
package sexpr

// Span carries a node's source location for diagnostics. It never participates in
// equality comparisons between nodes.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// AtomKind discriminates the four possible decoded values an Atom can carry.
type AtomKind int

const (
	AtomInt AtomKind = iota
	AtomFloat
	AtomBool
	AtomIdent
)

// Node is the sealed variant of the s-expression tree: every Node is either an Atom
// or a List.
type Node interface {
	isNode()
	Span() Span
	// Equal reports structural equality with other, ignoring source spans.
	Equal(other Node) bool
}

// Atom is a leaf of the tree. Exactly one of Int, Float, Bool, Ident is meaningful,
// selected by Kind. Numeric and boolean atoms arrive already decoded; Ident atoms are
// unresolved names left for the AST parser to classify.
type Atom struct {
	Kind  AtomKind
	Int   int64
	Float float64
	Bool  bool
	Ident string
	span  Span
}

func (a *Atom) isNode()    {}
func (a *Atom) Span() Span { return a.span }

func (a *Atom) Equal(other Node) bool {
	o, ok := other.(*Atom)
	if !ok || o.Kind != a.Kind {
		return false
	}
	switch a.Kind {
	case AtomInt:
		return a.Int == o.Int
	case AtomFloat:
		// NaN atoms must compare equal to themselves for round-trip tests, unlike IEEE NaN.
		return a.Float == o.Float || (isNaN(a.Float) && isNaN(o.Float))
	case AtomBool:
		return a.Bool == o.Bool
	default:
		return a.Ident == o.Ident
	}
}

func isNaN(f float64) bool { return f != f }

// List is an ordered, possibly empty, sequence of s-expressions.
type List struct {
	Elements []Node
	span     Span
}

func (l *List) isNode()    {}
func (l *List) Span() Span { return l.span }

func (l *List) Equal(other Node) bool {
	o, ok := other.(*List)
	if !ok || len(o.Elements) != len(l.Elements) {
		return false
	}
	for i, elem := range l.Elements {
		if !elem.Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Program holds the ordered top-level s-expressions of a whole source file.
type Program struct {
	Body []Node
}

func (p *Program) Equal(other *Program) bool {
	if len(p.Body) != len(other.Body) {
		return false
	}
	for i, form := range p.Body {
		if !form.Equal(other.Body[i]) {
			return false
		}
	}
	return true
}

// NewIntAtom, NewFloatAtom, NewBoolAtom and NewIdentAtom are the constructors tests and
// the s-expression parser use to build Atoms without reaching into unexported fields.

func NewIntAtom(v int64, span Span) *Atom   { return &Atom{Kind: AtomInt, Int: v, span: span} }
func NewFloatAtom(v float64, span Span) *Atom { return &Atom{Kind: AtomFloat, Float: v, span: span} }
func NewBoolAtom(v bool, span Span) *Atom   { return &Atom{Kind: AtomBool, Bool: v, span: span} }
func NewIdentAtom(v string, span Span) *Atom {
	return &Atom{Kind: AtomIdent, Ident: v, span: span}
}

// NewList builds a List from already-parsed elements.
func NewList(elements []Node, span Span) *List {
	if elements == nil {
		elements = []Node{}
	}
	return &List{Elements: elements, span: span}
}
