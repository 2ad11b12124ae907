package sexpr_test

import (
	"math"
	"strings"
	"testing"

	"lispy.dev/compiler/pkg/sexpr"
)

func mustParse(t *testing.T, source string) *sexpr.Program {
	t.Helper()
	prog, err := sexpr.ParseString(source)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", source, err)
	}
	return prog
}

func TestParseAtoms(t *testing.T) {
	prog := mustParse(t, "42 3.14 true false foo -7 +2.5e10")

	want := []sexpr.Node{
		sexpr.NewIntAtom(42, sexpr.Span{}),
		sexpr.NewFloatAtom(3.14, sexpr.Span{}),
		sexpr.NewBoolAtom(true, sexpr.Span{}),
		sexpr.NewBoolAtom(false, sexpr.Span{}),
		sexpr.NewIdentAtom("foo", sexpr.Span{}),
		sexpr.NewIntAtom(-7, sexpr.Span{}),
		sexpr.NewFloatAtom(2.5e10, sexpr.Span{}),
	}

	if len(prog.Body) != len(want) {
		t.Fatalf("got %d top-level forms, want %d", len(prog.Body), len(want))
	}
	for i, node := range prog.Body {
		if !node.Equal(want[i]) {
			t.Errorf("form %d: got %#v, want %#v", i, node, want[i])
		}
	}
}

func TestParseInfAndNan(t *testing.T) {
	prog := mustParse(t, "inf -inf +inf nan -nan +nan")
	for i, node := range prog.Body {
		atom, ok := node.(*sexpr.Atom)
		if !ok || atom.Kind != sexpr.AtomFloat {
			t.Fatalf("form %d: expected a float atom, got %#v", i, node)
		}
	}
}

func TestParseNestedList(t *testing.T) {
	prog := mustParse(t, "(add 1 (mul 2 3))")

	want := sexpr.NewList([]sexpr.Node{
		sexpr.NewIdentAtom("add", sexpr.Span{}),
		sexpr.NewIntAtom(1, sexpr.Span{}),
		sexpr.NewList([]sexpr.Node{
			sexpr.NewIdentAtom("mul", sexpr.Span{}),
			sexpr.NewIntAtom(2, sexpr.Span{}),
			sexpr.NewIntAtom(3, sexpr.Span{}),
		}, sexpr.Span{}),
	}, sexpr.Span{})

	if len(prog.Body) != 1 || !prog.Body[0].Equal(want) {
		t.Fatalf("got %#v, want %#v", prog.Body, want)
	}
}

func TestParseEmptyList(t *testing.T) {
	prog := mustParse(t, "()")
	want := sexpr.NewList(nil, sexpr.Span{})
	if len(prog.Body) != 1 || !prog.Body[0].Equal(want) {
		t.Fatalf("got %#v, want empty list", prog.Body)
	}
}

func TestParseRoundTripIgnoresWhitespace(t *testing.T) {
	a := mustParse(t, "(let ((x 1) (y 2)) (add x y))")
	b := mustParse(t, "  (let  (  (x 1)\n(y 2))\t(add x y)  )  ")
	if !a.Equal(b) {
		t.Fatalf("expected whitespace-insensitive parses to be equal:\n%#v\n%#v", a, b)
	}
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := sexpr.ParseString("(add 1 2")
	if err == nil {
		t.Fatalf("expected an error for an unterminated list")
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := sexpr.ParseString("(add 1 2))")
	if err == nil {
		t.Fatalf("expected an error for unbalanced trailing input")
	}
}

func TestParseIdentDoesNotSwallowReservedPrefix(t *testing.T) {
	prog := mustParse(t, "infinity nanoseconds truest falsehood")
	for i, node := range prog.Body {
		atom, ok := node.(*sexpr.Atom)
		if !ok || atom.Kind != sexpr.AtomIdent {
			t.Fatalf("form %d: expected an identifier atom, got %#v", i, node)
		}
	}
}

func TestParseIntNotFollowedByLetter(t *testing.T) {
	_, err := sexpr.ParseString("1x")
	if err == nil {
		t.Fatalf("expected an error: '1x' is not a valid integer literal nor identifier")
	}
}

func TestParseFloatSpecialValues(t *testing.T) {
	prog := mustParse(t, "inf -inf nan")
	inf := prog.Body[0].(*sexpr.Atom)
	ninf := prog.Body[1].(*sexpr.Atom)
	n := prog.Body[2].(*sexpr.Atom)

	if !math.IsInf(inf.Float, 1) {
		t.Errorf("expected +Inf, got %v", inf.Float)
	}
	if !math.IsInf(ninf.Float, -1) {
		t.Errorf("expected -Inf, got %v", ninf.Float)
	}
	if !math.IsNaN(n.Float) {
		t.Errorf("expected NaN, got %v", n.Float)
	}
}

func TestParseFromReader(t *testing.T) {
	parser := sexpr.NewParser(strings.NewReader("(quote x)"))
	prog, err := parser.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected a single top-level form, got %d", len(prog.Body))
	}
}
