package scope

import (
	"strings"
	"testing"
)

func TestValidateSegments(t *testing.T) {
	cases := []struct {
		name    string
		segment string
		wantErr bool
	}{
		{"simple", "library", false},
		{"digits and dash", "branch-02", false},
		{"underscore", "front_desk", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"uppercase", "Library", true},
		{"separator", "lib:desk", true},
		{"leading dash", "-lib", true},
		{"reserved", "admin", true},
		{"too long", strings.Repeat("a", MaxSegmentLength+1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.segment)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestJoinAndSplit(t *testing.T) {
	if got, want := Join("main", "circ"), "main:circ"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := Join("main", ""), "main"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	prefix, suffix := Split("main:circ")
	if prefix != "main" || suffix != "circ" {
		t.Fatalf("unexpected split %q / %q", prefix, suffix)
	}

	prefix, suffix = Split("main")
	if prefix != "main" || suffix != "" {
		t.Fatalf("unexpected split %q / %q", prefix, suffix)
	}
}
