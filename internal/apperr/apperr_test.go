package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationCollectsFields(t *testing.T) {
	err := Validation("name is required", "budget must be >= 0")

	if got := err.Error(); got != "name is required; budget must be >= 0" {
		t.Fatalf("message: got=%q", got)
	}
	if len(err.Fields) != 2 || err.Fields[0] != "name" || err.Fields[1] != "budget" {
		t.Fatalf("fields: got=%v", err.Fields)
	}
}

func TestIsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("load project: %w", NotFound("project"))

	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Fatalf("did not expect wrapped error to match ErrValidation")
	}
	if got := KindOf(wrapped); got != KindNotFound {
		t.Fatalf("kind: want=%v got=%v", KindNotFound, got)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("kind: want=%v got=%v", KindInternal, got)
	}
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("extract profile", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if got := err.Error(); got != "extract profile: connection refused" {
		t.Fatalf("message: got=%q", got)
	}
}
