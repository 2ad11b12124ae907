package ast

import (
	"lispy.dev/compiler/pkg/lispyerr"
	"lispy.dev/compiler/pkg/sexpr"
)

// ParseForm translates a single s-expression into a Form (component C's
// parse_form operation). It is the only place that knows which head names are special;
// everything downstream operates purely on the Form variant.
func ParseForm(node sexpr.Node) (Form, error) {
	switch n := node.(type) {
	case *sexpr.Atom:
		return parseAtom(n)
	case *sexpr.List:
		return parseList(n)
	default:
		return nil, lispyerr.New(lispyerr.KindSyntax, "unrecognized s-expression node")
	}
}

// ParseProgram maps ParseForm over every top-level s-expression of prog.
func ParseProgram(prog *sexpr.Program) (*Program, error) {
	body := make([]Form, 0, len(prog.Body))
	for _, node := range prog.Body {
		form, err := ParseForm(node)
		if err != nil {
			return nil, err
		}
		body = append(body, form)
	}
	return &Program{Body: body}, nil
}

func parseAtom(atom *sexpr.Atom) (Form, error) {
	switch atom.Kind {
	case sexpr.AtomIdent:
		return &Variable{Name: atom.Ident}, nil
	case sexpr.AtomInt:
		return &Constant{Kind: ConstInt, Int: atom.Int}, nil
	case sexpr.AtomFloat:
		return &Constant{Kind: ConstFloat, Float: atom.Float}, nil
	default:
		return &Constant{Kind: ConstBool, Bool: atom.Bool}, nil
	}
}

func parseList(list *sexpr.List) (Form, error) {
	if len(list.Elements) == 0 {
		return &List{Elements: nil}, nil
	}

	head := list.Elements[0]
	rest := list.Elements[1:]

	if headIdent, ok := head.(*sexpr.Atom); ok && headIdent.Kind == sexpr.AtomIdent {
		if parse, ok := specialForms[headIdent.Ident]; ok {
			return parse(rest)
		}
	}

	headForm, err := ParseForm(head)
	if err != nil {
		return nil, err
	}

	args := make([]Form, 0, len(rest))
	for _, node := range rest {
		arg, err := ParseForm(node)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return &ComposedForm{Head: headForm, Args: args}, nil
}
