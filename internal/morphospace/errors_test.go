package morphospace_test

import (
	"errors"
	"fmt"
	"testing"

	"patina/internal/morphospace"
)

func TestError_KindSurvivesWrapping(t *testing.T) {
	base := morphospace.NotFound("lookup", "preset", "x", []string{"a", "b"})
	wrapped := fmt.Errorf("load: %w", base)

	if !morphospace.IsNotFound(wrapped) {
		t.Error("IsNotFound lost through wrapping")
	}
	if morphospace.IsValidation(wrapped) {
		t.Error("not-found error reported as validation")
	}
	if !errors.Is(wrapped, morphospace.ErrNotFound) {
		t.Error("errors.Is(ErrNotFound) = false")
	}
	if got, want := base.Error(), `lookup: unknown preset "x" (valid: a, b)`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	if _, ok := morphospace.KindOf(errors.New("plain")); ok {
		t.Error("KindOf matched a plain error")
	}
	k, ok := morphospace.KindOf(morphospace.Validationf("op", "bad %d", 1))
	if !ok || k != morphospace.KindValidation || k.String() != "validation" {
		t.Errorf("KindOf = %v, %v", k, ok)
	}
}
