// Package lispyerr defines the structured error taxonomy shared by the s-expression
// builder, AST parser, type parser and type checker.
package lispyerr

import "fmt"

// Kind tags an Error with its place in a shallow, fully enumerable error taxonomy.
type Kind int

const (
	// KindSyntax is raised for any lexical or structural parse failure.
	KindSyntax Kind = iota
	// KindSpecialFormSyntax is raised when a well-formed s-expression has the wrong
	// shape for the special form named by its head atom.
	KindSpecialFormSyntax
	// KindDuplicateName is raised for a duplicate lambda parameter or let binding name.
	KindDuplicateName
	// KindTypeSyntax is raised for a malformed type annotation expression.
	KindTypeSyntax
	// KindType is the umbrella kind for semantic type failures.
	KindType
	// KindUnification is raised when two type terms cannot be unified.
	KindUnification
	// KindCyclicType is raised when the occurs check fires.
	KindCyclicType
	// KindBinding is the umbrella kind for name-resolution failures.
	KindBinding
	// KindInvalidName is raised when binding to "nil" or a special-form name is attempted.
	KindInvalidName
	// KindUnboundName is raised when a name has no binding in scope.
	KindUnboundName
)

var kindNames = map[Kind]string{
	KindSyntax:             "SyntaxError",
	KindSpecialFormSyntax:  "SpecialFormSyntaxError",
	KindDuplicateName:      "DuplicateNameError",
	KindTypeSyntax:         "TypeSyntaxError",
	KindType:               "TypeError",
	KindUnification:        "UnificationError",
	KindCyclicType:         "CyclicTypeError",
	KindBinding:            "BindingError",
	KindInvalidName:        "InvalidNameError",
	KindUnboundName:        "UnboundNameError",
}

// parents records the "subtype of" edges of the taxonomy: each key's error kind is also
// considered to be every kind reachable by following this map to its end.
var parents = map[Kind]Kind{
	KindSpecialFormSyntax: KindSyntax,
	KindDuplicateName:     KindSpecialFormSyntax,
	KindTypeSyntax:        KindSyntax,
	KindUnification:       KindType,
	KindCyclicType:        KindType,
	KindInvalidName:       KindBinding,
	KindUnboundName:       KindBinding,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "LispyError"
}

// Error is the single concrete error type raised across the pipeline. Its Kind field and
// the package-level parent table together reconstruct a shallow, fully enumerable error
// hierarchy without needing one Go type per error variant.
type Error struct {
	Kind    Kind
	Message string
	Name    string // offending name, set for KindDuplicateName/KindInvalidName/KindUnboundName
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New returns a new *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a new *Error of the given kind that wraps cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// WithName returns a copy of e with Name set, for errors that carry an offending identifier.
func (e *Error) WithName(name string) *Error {
	cp := *e
	cp.Name = name
	return &cp
}

// Is reports whether err is an *Error whose kind is kind or a descendant of kind in the
// parent table, e.g. Is(KindSyntax, err) is true for a KindDuplicateName error.
func Is(kind Kind, err error) bool {
	var lerr *Error
	for {
		if e, ok := err.(*Error); ok {
			lerr = e
			break
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
		if err == nil {
			return false
		}
	}

	for k := lerr.Kind; ; {
		if k == kind {
			return true
		}
		parent, ok := parents[k]
		if !ok {
			return false
		}
		k = parent
	}
}

// SpecialFormSyntax returns a KindSpecialFormSyntax error with the fixed template:
// "Invalid syntax for special form <name>: expected '(' '<name>' <template> ')'".
func SpecialFormSyntax(name, template string) *Error {
	return New(KindSpecialFormSyntax,
		"Invalid syntax for special form %s: expected '(' '%s' %s ')'", name, name, template)
}

// TypeSyntax returns a KindTypeSyntax error with the analogous template for type expressions.
func TypeSyntax(name, template string) *Error {
	return New(KindTypeSyntax,
		"Invalid syntax for type %s: expected '(' '%s' %s ')'", name, name, template)
}

// DuplicateName returns a KindDuplicateName error naming the offending identifier.
func DuplicateName(name string) *Error {
	return New(KindDuplicateName, "duplicate name %q", name).WithName(name)
}

// InvalidName returns a KindInvalidName error naming the offending identifier.
func InvalidName(name, reason string) *Error {
	return New(KindInvalidName, "cannot bind to name %q: %s", name, reason).WithName(name)
}

// UnboundName returns a KindUnboundName error naming the offending identifier.
func UnboundName(name string) *Error {
	return New(KindUnboundName, "name %q is not in scope", name).WithName(name)
}
