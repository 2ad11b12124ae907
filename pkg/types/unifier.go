package types

import "lispy.dev/compiler/pkg/lispyerr"

// Unifier implements destructive union-find unification of type terms (component E).
// It is grounded directly on the reference unifier: Unknown types are the only union-find
// roots, each mapped (at most) to a single representative type. Chains are followed by
// repeated lookups on every query; no path compression is done.
type Unifier struct {
	repr map[*Unknown]Type
}

// NewUnifier returns an empty Unifier.
func NewUnifier() *Unifier {
	return &Unifier{repr: map[*Unknown]Type{}}
}

// Unify unifies left and right, recording any new Unknown-to-type bindings needed to make
// them equal. It returns a UnificationError if the two types have incompatible shapes, or
// a CyclicTypeError if doing so would bind an Unknown to a type that contains itself.
func (u *Unifier) Unify(left, right Type) error {
	left = u.representative(left)
	right = u.representative(right)

	if Equal(left, right) {
		return nil
	}

	switch l := left.(type) {
	case *Unknown:
		return u.bind(l, right)
	default:
		if r, ok := right.(*Unknown); ok {
			return u.bind(r, left)
		}
	}

	switch l := left.(type) {
	case *List:
		r, ok := right.(*List)
		if !ok {
			return unificationError(left, right)
		}
		return u.Unify(l.Element, r.Element)
	case *Function:
		r, ok := right.(*Function)
		if !ok {
			return unificationError(left, right)
		}
		if err := u.Unify(l.Return, r.Return); err != nil {
			return err
		}
		return u.unifyMany(l.Params, r.Params)
	default:
		return unificationError(left, right)
	}
}

func (u *Unifier) unifyMany(left, right []Type) error {
	if len(left) != len(right) {
		return lispyerr.New(lispyerr.KindUnification, "unification failed: unequal number of types")
	}
	for i := range left {
		if err := u.Unify(left[i], right[i]); err != nil {
			return err
		}
	}
	return nil
}

// bind maps source to dest, rejecting the binding if dest contains source (the occurs
// check), which would otherwise create an infinite type.
func (u *Unifier) bind(source *Unknown, dest Type) error {
	if u.occurs(dest, source) {
		return lispyerr.New(lispyerr.KindCyclicType, "unification failed: cyclic type")
	}
	u.repr[source] = dest
	return nil
}

// representative returns the current union-find representative of t, following the
// chain of Unknown-to-type mappings until it reaches a type with no further mapping.
func (u *Unifier) representative(t Type) Type {
	for {
		unk, ok := t.(*Unknown)
		if !ok {
			return t
		}
		next, ok := u.repr[unk]
		if !ok {
			return t
		}
		t = next
	}
}

// Resolve returns t with every Unknown (including those nested inside List/Function)
// replaced by its current representative, recursively. Use it once checking completes to
// obtain the final, concrete type.
func (u *Unifier) Resolve(t Type) Type {
	switch r := u.representative(t).(type) {
	case *List:
		return &List{Element: u.Resolve(r.Element)}
	case *Function:
		params := make([]Type, len(r.Params))
		for i, p := range r.Params {
			params[i] = u.Resolve(p)
		}
		return &Function{Params: params, Return: u.Resolve(r.Return)}
	default:
		return r
	}
}

// occurs reports whether t is, or transitively contains, unknown.
func (u *Unifier) occurs(t Type, unknown *Unknown) bool {
	switch r := u.representative(t).(type) {
	case *Unknown:
		return r == unknown
	case *List:
		return u.occurs(r.Element, unknown)
	case *Function:
		if u.occurs(r.Return, unknown) {
			return true
		}
		for _, p := range r.Params {
			if u.occurs(p, unknown) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func unificationError(left, right Type) error {
	return lispyerr.New(lispyerr.KindUnification, "unification failed: cannot unify %s with %s", left, right)
}
