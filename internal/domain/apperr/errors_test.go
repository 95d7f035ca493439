package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindMatching(t *testing.T) {
	err := NotFound("trip_not_found", "trip not found")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found kind")
	}
	if errors.Is(err, ErrPermission) {
		t.Fatalf("did not expect permission kind")
	}

	wrapped := fmt.Errorf("load trip: %w", err)
	if !errors.Is(wrapped, err) {
		t.Fatalf("expected wrapped error to match the specific error")
	}
	got, ok := As(wrapped)
	if !ok {
		t.Fatalf("expected *Error in chain")
	}
	if got.Code() != "trip_not_found" {
		t.Fatalf("expected code trip_not_found, got %q", got.Code())
	}
	if got.Error() != "trip not found" {
		t.Fatalf("unexpected message %q", got.Error())
	}
}

func TestAsPlainError(t *testing.T) {
	if _, ok := As(errors.New("boom")); ok {
		t.Fatalf("expected no *Error in plain error")
	}
}
