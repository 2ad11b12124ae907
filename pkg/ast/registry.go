package ast

import "lispy.dev/compiler/pkg/sexpr"

// specialFormParser builds a Form from a special form's arguments (the s-expressions
// following the head atom). Registration order is irrelevant; names are unique.
type specialFormParser func(args []sexpr.Node) (Form, error)

// specialForms is the fixed, process-lifetime table mapping each special form's head
// name to its shape parser.
var specialForms = map[string]specialFormParser{
	"lambda": parseLambda,
	"define": parseDefine,
	"list":   parseListForm,
	"cons":   parseCons,
	"car":    parseCar,
	"cdr":    parseCdr,
	"progn":  parseProgn,
	"set":    parseSet,
	"let":    parseLet,
	"cond":   parseCond,
	"select": parseSelect,
}

// IsSpecialForm reports whether name is a registered special form's head name. The type
// checker uses this to reject rebinding a special form's name.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]
	return ok
}
