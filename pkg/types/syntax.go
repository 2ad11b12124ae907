package types

import (
	"lispy.dev/compiler/pkg/lispyerr"
	"lispy.dev/compiler/pkg/sexpr"
)

// ParseAnnotation parses a lambda parameter's type annotation: atoms "int", "float",
// "bool" map to the primitive types; "(list T)" to List(T); "(func (T1 T2...) R)" to
// Function([T1,...], R). Any other shape raises a TypeSyntaxError, mirroring how
// special-form shapes are rejected in pkg/ast.
func ParseAnnotation(node sexpr.Node) (Type, error) {
	switch n := node.(type) {
	case *sexpr.Atom:
		if n.Kind != sexpr.AtomIdent {
			return nil, lispyerr.New(lispyerr.KindTypeSyntax, "invalid type annotation: expected int, float, bool, (list T) or (func (T...) R)")
		}
		switch n.Ident {
		case "int":
			return Int{}, nil
		case "float":
			return Float{}, nil
		case "bool":
			return Bool{}, nil
		default:
			return nil, lispyerr.New(lispyerr.KindTypeSyntax, "unknown type name %q", n.Ident)
		}
	case *sexpr.List:
		return parseCompoundAnnotation(n)
	default:
		return nil, lispyerr.New(lispyerr.KindTypeSyntax, "invalid type annotation")
	}
}

func parseCompoundAnnotation(list *sexpr.List) (Type, error) {
	if len(list.Elements) == 0 {
		return nil, lispyerr.New(lispyerr.KindTypeSyntax, "invalid type annotation: empty list")
	}
	head, ok := list.Elements[0].(*sexpr.Atom)
	if !ok || head.Kind != sexpr.AtomIdent {
		return nil, lispyerr.New(lispyerr.KindTypeSyntax, "invalid type annotation: expected a type constructor head")
	}

	switch head.Ident {
	case "list":
		return parseListAnnotation(list)
	case "func":
		return parseFuncAnnotation(list)
	default:
		return nil, lispyerr.New(lispyerr.KindTypeSyntax, "unknown type constructor %q", head.Ident)
	}
}

func parseListAnnotation(list *sexpr.List) (Type, error) {
	if len(list.Elements) != 2 {
		return nil, lispyerr.TypeSyntax("list", "T")
	}
	elem, err := ParseAnnotation(list.Elements[1])
	if err != nil {
		return nil, err
	}
	return &List{Element: elem}, nil
}

func parseFuncAnnotation(list *sexpr.List) (Type, error) {
	if len(list.Elements) != 3 {
		return nil, lispyerr.TypeSyntax("func", "(T1 T2...) R")
	}
	paramsList, ok := list.Elements[1].(*sexpr.List)
	if !ok {
		return nil, lispyerr.TypeSyntax("func", "(T1 T2...) R")
	}

	params := make([]Type, 0, len(paramsList.Elements))
	for _, elem := range paramsList.Elements {
		t, err := ParseAnnotation(elem)
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}

	ret, err := ParseAnnotation(list.Elements[2])
	if err != nil {
		return nil, err
	}
	return &Function{Params: params, Return: ret}, nil
}
