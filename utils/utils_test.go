package utils

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", ErrUnauthenticated, fiber.StatusUnauthorized},
		{"forbidden", ErrForbidden, fiber.StatusForbidden},
		{"not found", ErrNotFound, fiber.StatusNotFound},
		{"conflict", ErrConflict, fiber.StatusBadRequest},
		{"invalid", ErrInvalid, fiber.StatusBadRequest},
		{"upstream auth", ErrUpstreamAuth, fiber.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("class %w", ErrNotFound), fiber.StatusNotFound},
		{"wrapped upstream", fmt.Errorf("%w: provider returned 500", ErrUpstreamAuth), fiber.StatusUnauthorized},
		{"unknown error", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"admin", "teacher", "student", "parent"} {
		if !IsValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "owner", "Admin", "superuser"} {
		if IsValidRole(role) {
			t.Fatalf("expected %q to be invalid", role)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{"present", "absent", "late", "excused", "medical"} {
		if !IsValidStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if IsValidStatus("sick") {
		t.Fatal("expected \"sick\" to be invalid")
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-15", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"15-01-2024", false},
		{"2024-1-5", false},
		{"", false},
		{"not-a-date", false},
	}
	for _, tc := range tests {
		if got := IsValidDate(tc.date); got != tc.want {
			t.Fatalf("IsValidDate(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}
