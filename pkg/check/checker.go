// Package check implements the type checker (component F): a recursive inference pass
// over an AST Program that generates equality constraints between type terms and
// resolves them through a types.Unifier.
package check

import (
	"lispy.dev/compiler/pkg/ast"
	"lispy.dev/compiler/pkg/lispyerr"
	"lispy.dev/compiler/pkg/types"
)

const nilName = "nil"

// TypeChecker owns the single Unifier instance used to check one program. It is not
// reused across programs.
type TypeChecker struct {
	unifier *types.Unifier
}

// NewTypeChecker returns a TypeChecker with a fresh, empty Unifier.
func NewTypeChecker() *TypeChecker {
	return &TypeChecker{unifier: types.NewUnifier()}
}

// CheckProgram typechecks every top-level form of program under a single, shared global
// scope, threaded left to right so that top-level set and define persist for later forms.
// It returns one type term per top-level form, each resolved as far as possible through
// the unifier, or the first error encountered (checking is fail-fast: no recovery).
func CheckProgram(program *ast.Program) ([]types.Type, error) {
	checker := NewTypeChecker()
	scope := NewGlobalScope()

	results := make([]types.Type, 0, len(program.Body))
	for _, form := range program.Body {
		typ, err := checker.checkForm(form, scope)
		if err != nil {
			return nil, err
		}
		results = append(results, typ)
	}

	for i, typ := range results {
		results[i] = checker.unifier.Resolve(typ)
	}
	return results, nil
}

func (tc *TypeChecker) checkForm(form ast.Form, scope Scope) (types.Type, error) {
	switch f := form.(type) {
	case *ast.Constant:
		return tc.checkConstant(f), nil
	case *ast.Variable:
		return tc.checkVariable(f, scope)
	case *ast.ComposedForm:
		return tc.checkComposedForm(f, scope)
	case *ast.Lambda:
		return tc.checkLambda(f, scope)
	case *ast.Define:
		return tc.checkDefine(f, scope)
	case *ast.List:
		return tc.checkList(f, scope)
	case *ast.Cons:
		return tc.checkCons(f, scope)
	case *ast.Car:
		return tc.checkCar(f, scope)
	case *ast.Cdr:
		return tc.checkCdr(f, scope)
	case *ast.Progn:
		return tc.checkProgn(f.Forms, scope)
	case *ast.Set:
		return tc.checkSet(f, scope)
	case *ast.Let:
		return tc.checkLet(f, scope)
	case *ast.Cond:
		return tc.checkCond(f, scope)
	case *ast.Select:
		return tc.checkSelect(f, scope)
	default:
		return nil, lispyerr.New(lispyerr.KindType, "unrecognized form %T", form)
	}
}

func (tc *TypeChecker) checkConstant(c *ast.Constant) types.Type {
	switch c.Kind {
	case ast.ConstInt:
		return types.Int{}
	case ast.ConstFloat:
		return types.Float{}
	default:
		return types.Bool{}
	}
}

func (tc *TypeChecker) checkVariable(v *ast.Variable, scope Scope) (types.Type, error) {
	if v.Name == nilName {
		return &types.List{Element: types.NewUnknown("nil-element")}, nil
	}
	typ, ok := scope.Lookup(v.Name)
	if !ok {
		return nil, lispyerr.UnboundName(v.Name)
	}
	return typ, nil
}

func (tc *TypeChecker) checkComposedForm(c *ast.ComposedForm, scope Scope) (types.Type, error) {
	argTypes := make([]types.Type, 0, len(c.Args))
	for _, arg := range c.Args {
		typ, err := tc.checkForm(arg, scope)
		if err != nil {
			return nil, err
		}
		argTypes = append(argTypes, typ)
	}

	ret := types.NewUnknown("call-return")
	headType, err := tc.checkForm(c.Head, scope)
	if err != nil {
		return nil, err
	}

	if err := tc.unifier.Unify(headType, &types.Function{Params: argTypes, Return: ret}); err != nil {
		return nil, err
	}
	return ret, nil
}

func (tc *TypeChecker) checkLambda(l *ast.Lambda, scope Scope) (types.Type, error) {
	nested, err := tc.nestedScopeFor(l.Parameters, scope)
	if err != nil {
		return nil, err
	}

	bodyType, err := tc.checkForm(l.Body, nested)
	if err != nil {
		return nil, err
	}

	params := make([]types.Type, len(l.Parameters))
	for i, p := range l.Parameters {
		params[i] = p.Type
	}
	return &types.Function{Params: params, Return: bodyType}, nil
}

// checkDefine desugars `(define f (params...) body)` into the lambda it names and binds
// the result directly into scope. Unlike Set, Define always introduces (or replaces) its
// own binding rather than requiring the name to already exist: its entire purpose is to
// declare a fresh name, so it does not route through Set's "must already be bound" check.
func (tc *TypeChecker) checkDefine(d *ast.Define, scope Scope) (types.Type, error) {
	if err := assertNameValid(d.Name); err != nil {
		return nil, err
	}

	lambdaType, err := tc.checkLambda(&ast.Lambda{Parameters: d.Parameters, Body: d.Body}, scope)
	if err != nil {
		return nil, err
	}

	if existing, ok := scope.Lookup(d.Name); ok {
		if err := tc.unifier.Unify(existing, lambdaType); err != nil {
			return nil, err
		}
	}
	scope.Bind(d.Name, lambdaType)
	return lambdaType, nil
}

func (tc *TypeChecker) checkList(l *ast.List, scope Scope) (types.Type, error) {
	if len(l.Elements) == 0 {
		return &types.List{Element: types.NewUnknown("list-element")}, nil
	}

	first, err := tc.checkForm(l.Elements[0], scope)
	if err != nil {
		return nil, err
	}

	for i, elem := range l.Elements[1:] {
		current, err := tc.checkForm(elem, scope)
		if err != nil {
			return nil, err
		}
		if err := tc.unifier.Unify(first, current); err != nil {
			return nil, lispyerr.New(lispyerr.KindType,
				"list is not homogeneous: expected %s but got %s for element %d", first, current, i+1)
		}
	}

	return &types.List{Element: first}, nil
}

func (tc *TypeChecker) checkCons(c *ast.Cons, scope Scope) (types.Type, error) {
	carType, err := tc.checkForm(c.Car, scope)
	if err != nil {
		return nil, err
	}
	cdrType, err := tc.checkForm(c.Cdr, scope)
	if err != nil {
		return nil, err
	}

	element := types.NewUnknown("cons-element")
	if err := tc.unifier.Unify(cdrType, &types.List{Element: element}); err != nil {
		return nil, err
	}
	if err := tc.unifier.Unify(carType, element); err != nil {
		return nil, err
	}
	return &types.List{Element: element}, nil
}

func (tc *TypeChecker) checkCar(c *ast.Car, scope Scope) (types.Type, error) {
	listType, err := tc.checkForm(c.List, scope)
	if err != nil {
		return nil, err
	}
	element := types.NewUnknown("car-element")
	if err := tc.unifier.Unify(listType, &types.List{Element: element}); err != nil {
		return nil, err
	}
	return element, nil
}

func (tc *TypeChecker) checkCdr(c *ast.Cdr, scope Scope) (types.Type, error) {
	listType, err := tc.checkForm(c.List, scope)
	if err != nil {
		return nil, err
	}
	expected := &types.List{Element: types.NewUnknown("cdr-element")}
	if err := tc.unifier.Unify(listType, expected); err != nil {
		return nil, err
	}
	return expected, nil
}

func (tc *TypeChecker) checkProgn(forms []ast.Form, scope Scope) (types.Type, error) {
	var last types.Type
	for _, form := range forms {
		typ, err := tc.checkForm(form, scope)
		if err != nil {
			return nil, err
		}
		last = typ
	}
	return last, nil
}

// checkSet validates name, requires it to already be bound (an UnboundNameError
// otherwise), and unifies the new value's type with the existing binding. The scope
// entry itself is left untouched: the Unknown it may hold resolves outward through
// unification rather than being replaced, so other references sharing that Unknown see
// the same resolution.
func (tc *TypeChecker) checkSet(s *ast.Set, scope Scope) (types.Type, error) {
	if err := assertNameValid(s.Name); err != nil {
		return nil, err
	}

	existing, ok := scope.Lookup(s.Name)
	if !ok {
		return nil, lispyerr.UnboundName(s.Name)
	}

	valueType, err := tc.checkForm(s.Value, scope)
	if err != nil {
		return nil, err
	}
	if err := tc.unifier.Unify(existing, valueType); err != nil {
		return nil, err
	}
	return valueType, nil
}

// checkLet implements parallel binding semantics: every binding's value is checked under
// the outer scope before any of them are introduced, so no binding's initializer can see
// an earlier sibling binding.
func (tc *TypeChecker) checkLet(l *ast.Let, scope Scope) (types.Type, error) {
	names := make(map[string]bool, len(l.Bindings))
	bound := make([]ast.FunctionParameter, 0, len(l.Bindings))

	for _, binding := range l.Bindings {
		if err := assertNameValid(binding.Name); err != nil {
			return nil, err
		}
		if names[binding.Name] {
			return nil, lispyerr.DuplicateName(binding.Name)
		}
		names[binding.Name] = true

		valueType, err := tc.checkForm(binding.Value, scope)
		if err != nil {
			return nil, err
		}
		bound = append(bound, ast.FunctionParameter{Name: binding.Name, Type: valueType})
	}

	nested := scope.Clone()
	for _, b := range bound {
		nested.Bind(b.Name, b.Type)
	}

	return tc.checkProgn(l.Body, nested)
}

func (tc *TypeChecker) checkCond(c *ast.Cond, scope Scope) (types.Type, error) {
	first := c.Branches[0]
	predType, err := tc.checkForm(first.Predicate, scope)
	if err != nil {
		return nil, err
	}
	if err := tc.unifier.Unify(predType, types.Bool{}); err != nil {
		return nil, err
	}
	value, err := tc.checkForm(first.Value, scope)
	if err != nil {
		return nil, err
	}

	for _, branch := range c.Branches[1:] {
		predType, err := tc.checkForm(branch.Predicate, scope)
		if err != nil {
			return nil, err
		}
		if err := tc.unifier.Unify(predType, types.Bool{}); err != nil {
			return nil, err
		}
		valType, err := tc.checkForm(branch.Value, scope)
		if err != nil {
			return nil, err
		}
		if err := tc.unifier.Unify(valType, value); err != nil {
			return nil, err
		}
	}

	defaultType, err := tc.checkForm(c.Default, scope)
	if err != nil {
		return nil, err
	}
	if err := tc.unifier.Unify(defaultType, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (tc *TypeChecker) checkSelect(s *ast.Select, scope Scope) (types.Type, error) {
	key, err := tc.checkForm(s.Value, scope)
	if err != nil {
		return nil, err
	}

	for _, branch := range s.Branches {
		predType, err := tc.checkForm(branch.Predicate, scope)
		if err != nil {
			return nil, err
		}
		if err := tc.unifier.Unify(predType, key); err != nil {
			return nil, err
		}
	}

	value, err := tc.checkForm(s.Default, scope)
	if err != nil {
		return nil, err
	}

	for _, branch := range s.Branches {
		valType, err := tc.checkForm(branch.Value, scope)
		if err != nil {
			return nil, err
		}
		if err := tc.unifier.Unify(valType, value); err != nil {
			return nil, err
		}
	}

	return value, nil
}

// nestedScopeFor clones scope and binds each parameter's declared type into the clone,
// rejecting invalid or duplicate parameter names.
func (tc *TypeChecker) nestedScopeFor(params []ast.FunctionParameter, scope Scope) (Scope, error) {
	nested := scope.Clone()
	seen := make(map[string]bool, len(params))

	for _, p := range params {
		if err := assertNameValid(p.Name); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, lispyerr.DuplicateName(p.Name)
		}
		seen[p.Name] = true
		nested.Bind(p.Name, p.Type)
	}

	return nested, nil
}

// assertNameValid reports an InvalidNameError if name is "nil" or a registered special
// form name: neither may ever be used as a binding target.
func assertNameValid(name string) error {
	if name == nilName {
		return lispyerr.InvalidName(name, "rebinding nil is disallowed")
	}
	if ast.IsSpecialForm(name) {
		return lispyerr.InvalidName(name, "rebinding a special form is disallowed")
	}
	return nil
}
