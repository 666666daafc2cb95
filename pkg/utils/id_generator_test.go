package utils

import "testing"

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Errorf("GenerateID() returned the same value twice: %s", a)
	}
	if !IsID(a) {
		t.Errorf("IsID(%q) = false", a)
	}
}

func TestIsID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"", false},
		{"not-a-uuid", false},
		{"<script>", false},
	}

	for _, tt := range tests {
		if got := IsID(tt.in); got != tt.want {
			t.Errorf("IsID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
