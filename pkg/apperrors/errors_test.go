package apperrors

import (
	"fmt"
	"testing"
)

func TestValidationf(t *testing.T) {
	err := Validationf("amount must be at least %d", 1)

	if !IsValidation(err) {
		t.Error("IsValidation should be true")
	}
	if IsNotFound(err) || IsConflict(err) {
		t.Error("validation error must not match other predicates")
	}
	if got := err.Error(); got != "amount must be at least 1" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("recipe %d", 42)

	if !IsNotFound(err) {
		t.Error("IsNotFound should be true")
	}
	if IsValidation(err) || IsConflict(err) {
		t.Error("not-found error must not match other predicates")
	}
}

func TestConflictf(t *testing.T) {
	err := Conflictf("favorite for target %d", 7)

	if !IsConflict(err) {
		t.Error("IsConflict should be true")
	}
	if IsNotFound(err) {
		t.Error("conflict error must not be not-found")
	}
}

func TestPredicatesSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("failed to add membership: %w", Conflictf("favorite for target %d", 7))
	if !IsConflict(err) {
		t.Error("IsConflict should see through fmt.Errorf wrapping")
	}

	err = fmt.Errorf("lookup: %w", NotFoundf("user %d", 1))
	if !IsNotFound(err) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
}

func TestPredicatesOnNil(t *testing.T) {
	if IsValidation(nil) || IsNotFound(nil) || IsConflict(nil) {
		t.Error("predicates must be false for nil")
	}
}
