package lispyerr_test

import (
	"fmt"
	"testing"

	"lispy.dev/compiler/pkg/lispyerr"
)

func TestIsWalksParentChain(t *testing.T) {
	err := lispyerr.DuplicateName("x")

	if !lispyerr.Is(lispyerr.KindDuplicateName, err) {
		t.Fatalf("expected KindDuplicateName match")
	}
	if !lispyerr.Is(lispyerr.KindSpecialFormSyntax, err) {
		t.Fatalf("expected DuplicateName to also be a SpecialFormSyntax error")
	}
	if !lispyerr.Is(lispyerr.KindSyntax, err) {
		t.Fatalf("expected DuplicateName to also be a Syntax error")
	}
	if lispyerr.Is(lispyerr.KindType, err) {
		t.Fatalf("did not expect DuplicateName to be a Type error")
	}
}

func TestUnboundNameCarriesOffendingName(t *testing.T) {
	err := lispyerr.UnboundName("foo")
	if err.Name != "foo" {
		t.Fatalf("expected Name %q, got %q", "foo", err.Name)
	}
	if !lispyerr.Is(lispyerr.KindBinding, err) {
		t.Fatalf("expected UnboundName to also be a Binding error")
	}
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := lispyerr.Wrap(lispyerr.KindUnification, cause, "mismatched types")

	if err.Unwrap() != cause {
		t.Fatalf("expected Unwrap to return the wrapped cause")
	}
}

func TestSpecialFormSyntaxTemplate(t *testing.T) {
	err := lispyerr.SpecialFormSyntax("let", "(binding+) body+")
	want := "Invalid syntax for special form let: expected '(' 'let' (binding+) body+ ')'"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
