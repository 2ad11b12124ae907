// Package lispy exposes the two entry points a caller needs for the front-end of the
// lispy compiler: Parse, which turns source text into an AST, and Check, which parses
// and then runs the type checker over the result.
package lispy

import (
	"lispy.dev/compiler/pkg/ast"
	"lispy.dev/compiler/pkg/check"
	"lispy.dev/compiler/pkg/sexpr"
	"lispy.dev/compiler/pkg/types"
)

// Parse turns source text into an AST Program, via the intermediate s-expression tree.
func Parse(source string) (*ast.Program, error) {
	sexprProg, err := sexpr.ParseString(source)
	if err != nil {
		return nil, err
	}
	return ast.ParseProgram(sexprProg)
}

// Check parses source text and typechecks the result, returning one resolved type term
// per top-level form. The first error encountered, from either stage, is returned as-is.
func Check(source string) ([]types.Type, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return check.CheckProgram(program)
}
