package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{NotFoundError("x"), ErrorKindNotFound},
		{InvalidTransitionError("x"), ErrorKindInvalidTransition},
		{ForbiddenError("x"), ErrorKindForbidden},
		{ConflictError("x"), ErrorKindConflict},
		{ValidationError("x"), ErrorKindValidation},
	}
	for _, tc := range cases {
		kind, ok := KindOf(tc.err)
		if !ok || kind != tc.kind {
			t.Fatalf("KindOf(%v) expected %s, got %s (ok=%v)", tc.err, tc.kind, kind, ok)
		}
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("saving quote: %w", ConflictError("quote already has an invoice"))
	if !IsKind(wrapped, ErrorKindConflict) {
		t.Fatalf("expected wrapped conflict to keep its kind")
	}
}

func TestKindOf_InfrastructureError(t *testing.T) {
	if _, ok := KindOf(errors.New("dial tcp: connection refused")); ok {
		t.Fatalf("plain errors must not classify as business errors")
	}
}
