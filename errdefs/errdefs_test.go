package errdefs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		is   func(error) bool
	}{
		{"domain", Domainf("sigma must be nonzero"), ErrDomain, IsDomain},
		{"shape", Shapef("len %d != %d", 3, 4), ErrShape, IsShape},
		{"insufficient", InsufficientDataf("channel %d", 7), ErrInsufficientData, IsInsufficientData},
		{"configuration", Configurationf("want %d params", 4), ErrConfiguration, IsConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if !tt.is(tt.err) {
				t.Fatalf("predicate rejected %v", tt.err)
			}

			wrapped := fmt.Errorf("fit spectrum: %w", tt.err)
			if !tt.is(wrapped) {
				t.Fatalf("predicate rejected wrapped %v", wrapped)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Shapef("grid %dx%d vs %dx%d", 2, 3, 3, 2)
	if got, want := err.Error(), "shape error: grid 2x3 vs 3x2"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	bare := &Error{Kind: ErrDomain}
	if got := bare.Error(); got != "domain error" {
		t.Fatalf("Error() = %q, want %q", got, "domain error")
	}

	var nilErr *Error
	if got := nilErr.Error(); got != "" {
		t.Fatalf("nil Error() = %q, want empty", got)
	}
}

func TestKindsAreDistinct(t *testing.T) {
	if IsDomain(Shapef("x")) || IsShape(Domainf("x")) {
		t.Fatal("error kinds must not alias each other")
	}
}
