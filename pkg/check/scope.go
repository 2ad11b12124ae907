package check

import "lispy.dev/compiler/pkg/types"

// Scope maps variable names to type terms. Entering a lambda or let clones the current
// scope (see Clone); a top-level define binds into the program's global scope in place.
type Scope map[string]types.Type

// NewGlobalScope returns the empty scope a program's top-level forms are checked under.
// It is a fresh value per program: the global scope is never reused across programs.
func NewGlobalScope() Scope {
	return Scope{}
}

// Clone returns a shallow copy of s. Bindings added to or removed from the clone do not
// affect s, matching the "inner scopes contain a copy of outer bindings at creation time"
// rule for entering a lambda or let.
func (s Scope) Clone() Scope {
	clone := make(Scope, len(s))
	for name, typ := range s {
		clone[name] = typ
	}
	return clone
}

// Lookup returns the type bound to name and whether it was found.
func (s Scope) Lookup(name string) (types.Type, bool) {
	typ, ok := s[name]
	return typ, ok
}

// Bind sets name's type in s, overwriting any previous binding (shadowing is allowed and
// silent).
func (s Scope) Bind(name string, typ types.Type) {
	s[name] = typ
}
