package appErrors_test

import (
	"fmt"
	"testing"

	appErrors "github.com/unclebandit/crm-backend/internal/errors"
)

func TestNotFound(t *testing.T) {
	err := appErrors.NewNotFound("customer", 5)
	if err.Error() != "customer with ID 5 not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !appErrors.IsNotFound(err) {
		t.Error("IsNotFound should match")
	}
	if appErrors.IsValidation(err) {
		t.Error("IsValidation should not match a not-found error")
	}
}

func TestNotFoundWithoutID(t *testing.T) {
	err := appErrors.NewNotFound("admin wael", 0)
	if err.Error() != "admin wael not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("loading profile: %w", appErrors.NewUnauthorized("expired token"))
	if !appErrors.IsUnauthorized(wrapped) {
		t.Error("IsUnauthorized should see through wrapping")
	}
}
