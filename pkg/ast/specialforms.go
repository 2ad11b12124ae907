package ast

import (
	"lispy.dev/compiler/pkg/lispyerr"
	"lispy.dev/compiler/pkg/sexpr"
	"lispy.dev/compiler/pkg/types"
)

// Each parseX function below validates the shape of a special form's argument list and
// raises a SpecialFormSyntaxError carrying the exact expected template on any mismatch.
// Duplicate binder names are not checked here: that check belongs to the type checker
// during scope construction, since it depends on which names end up bound together, not
// on shape alone.

func parseLambda(args []sexpr.Node) (Form, error) {
	const template = "(param*) body"
	if len(args) != 2 {
		return nil, lispyerr.SpecialFormSyntax("lambda", template)
	}

	params, err := parseParameterList(args[0], "lambda", template)
	if err != nil {
		return nil, err
	}

	body, err := ParseForm(args[1])
	if err != nil {
		return nil, err
	}

	return &Lambda{Parameters: params, Body: body}, nil
}

func parseDefine(args []sexpr.Node) (Form, error) {
	const template = "name (param*) body"
	if len(args) != 3 {
		return nil, lispyerr.SpecialFormSyntax("define", template)
	}

	name, ok := identName(args[0])
	if !ok {
		return nil, lispyerr.SpecialFormSyntax("define", template)
	}

	params, err := parseParameterList(args[1], "define", template)
	if err != nil {
		return nil, err
	}

	body, err := ParseForm(args[2])
	if err != nil {
		return nil, err
	}

	return &Define{Name: name, Parameters: params, Body: body}, nil
}

func parseListForm(args []sexpr.Node) (Form, error) {
	elements := make([]Form, 0, len(args))
	for _, node := range args {
		elem, err := ParseForm(node)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	return &List{Elements: elements}, nil
}

func parseCons(args []sexpr.Node) (Form, error) {
	if len(args) != 2 {
		return nil, lispyerr.SpecialFormSyntax("cons", "car cdr")
	}
	car, err := ParseForm(args[0])
	if err != nil {
		return nil, err
	}
	cdr, err := ParseForm(args[1])
	if err != nil {
		return nil, err
	}
	return &Cons{Car: car, Cdr: cdr}, nil
}

func parseCar(args []sexpr.Node) (Form, error) {
	if len(args) != 1 {
		return nil, lispyerr.SpecialFormSyntax("car", "list")
	}
	list, err := ParseForm(args[0])
	if err != nil {
		return nil, err
	}
	return &Car{List: list}, nil
}

func parseCdr(args []sexpr.Node) (Form, error) {
	if len(args) != 1 {
		return nil, lispyerr.SpecialFormSyntax("cdr", "list")
	}
	list, err := ParseForm(args[0])
	if err != nil {
		return nil, err
	}
	return &Cdr{List: list}, nil
}

func parseProgn(args []sexpr.Node) (Form, error) {
	if len(args) < 2 {
		return nil, lispyerr.SpecialFormSyntax("progn", "form form+")
	}
	forms := make([]Form, 0, len(args))
	for _, node := range args {
		form, err := ParseForm(node)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return &Progn{Forms: forms}, nil
}

func parseSet(args []sexpr.Node) (Form, error) {
	const template = "name form"
	if len(args) != 2 {
		return nil, lispyerr.SpecialFormSyntax("set", template)
	}
	name, ok := identName(args[0])
	if !ok {
		return nil, lispyerr.SpecialFormSyntax("set", template)
	}
	value, err := ParseForm(args[1])
	if err != nil {
		return nil, err
	}
	return &Set{Name: name, Value: value}, nil
}

func parseLet(args []sexpr.Node) (Form, error) {
	const template = "(binding+) body+"
	if len(args) < 2 {
		return nil, lispyerr.SpecialFormSyntax("let", template)
	}

	bindingsList, ok := args[0].(*sexpr.List)
	if !ok || len(bindingsList.Elements) == 0 {
		return nil, lispyerr.SpecialFormSyntax("let", template)
	}

	bindings := make([]LetBinding, 0, len(bindingsList.Elements))
	for _, node := range bindingsList.Elements {
		binding, ok := node.(*sexpr.List)
		if !ok || len(binding.Elements) != 2 {
			return nil, lispyerr.SpecialFormSyntax("let", template)
		}
		name, ok := identName(binding.Elements[0])
		if !ok {
			return nil, lispyerr.SpecialFormSyntax("let", template)
		}
		value, err := ParseForm(binding.Elements[1])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, LetBinding{Name: name, Value: value})
	}

	body := make([]Form, 0, len(args)-1)
	for _, node := range args[1:] {
		form, err := ParseForm(node)
		if err != nil {
			return nil, err
		}
		body = append(body, form)
	}

	return &Let{Bindings: bindings, Body: body}, nil
}

func parseCond(args []sexpr.Node) (Form, error) {
	const template = "branch+ default"
	if len(args) < 2 {
		return nil, lispyerr.SpecialFormSyntax("cond", template)
	}

	branches, err := parseBranches(args[:len(args)-1], "cond", template)
	if err != nil {
		return nil, err
	}

	def, err := ParseForm(args[len(args)-1])
	if err != nil {
		return nil, err
	}

	return &Cond{Branches: branches, Default: def}, nil
}

func parseSelect(args []sexpr.Node) (Form, error) {
	const template = "value branch+ default"
	if len(args) < 3 {
		return nil, lispyerr.SpecialFormSyntax("select", template)
	}

	value, err := ParseForm(args[0])
	if err != nil {
		return nil, err
	}

	branches, err := parseBranches(args[1:len(args)-1], "select", template)
	if err != nil {
		return nil, err
	}

	def, err := ParseForm(args[len(args)-1])
	if err != nil {
		return nil, err
	}

	return &Select{Value: value, Branches: branches, Default: def}, nil
}

func parseBranches(nodes []sexpr.Node, name, template string) ([]Branch, error) {
	branches := make([]Branch, 0, len(nodes))
	for _, node := range nodes {
		branchList, ok := node.(*sexpr.List)
		if !ok || len(branchList.Elements) != 2 {
			return nil, lispyerr.SpecialFormSyntax(name, template)
		}
		predicate, err := ParseForm(branchList.Elements[0])
		if err != nil {
			return nil, err
		}
		value, err := ParseForm(branchList.Elements[1])
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Predicate: predicate, Value: value})
	}
	return branches, nil
}

func parseParameterList(node sexpr.Node, name, template string) ([]FunctionParameter, error) {
	list, ok := node.(*sexpr.List)
	if !ok {
		return nil, lispyerr.SpecialFormSyntax(name, template)
	}

	params := make([]FunctionParameter, 0, len(list.Elements))
	for _, elem := range list.Elements {
		paramList, ok := elem.(*sexpr.List)
		if !ok || len(paramList.Elements) != 2 {
			return nil, lispyerr.SpecialFormSyntax(name, template)
		}
		paramName, ok := identName(paramList.Elements[0])
		if !ok {
			return nil, lispyerr.SpecialFormSyntax(name, template)
		}
		typ, err := types.ParseAnnotation(paramList.Elements[1])
		if err != nil {
			return nil, err
		}
		params = append(params, FunctionParameter{Name: paramName, Type: typ})
	}
	return params, nil
}

func identName(node sexpr.Node) (string, bool) {
	atom, ok := node.(*sexpr.Atom)
	if !ok || atom.Kind != sexpr.AtomIdent {
		return "", false
	}
	return atom.Ident, true
}
