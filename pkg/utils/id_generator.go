// Package utils provides small helpers shared across the application.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). This is a community convention,
// not a Go language feature.
package utils

import (
	"github.com/google/uuid"
)

// GenerateID creates a new UUID v4 string. It names catalog entries that
// arrive without an ID, fare quotes and requests.
//
// Go Learning Note — "github.com/google/uuid":
// uuid.New() creates a random (v4) UUID like
// "550e8400-e29b-41d4-a716-446655440000". It can be generated anywhere without
// coordination and collisions are astronomically unlikely.
func GenerateID() string {
	return uuid.New().String()
}

// IsID reports whether s parses as a UUID. Client-supplied request IDs are
// only echoed back when they pass this check.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
