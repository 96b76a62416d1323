package stores

import (
	"testing"

	"github.com/gosimple/slug"
)

// Category and product URLs embed slugs derived from names; the mapping
// must stay stable across releases or stored slugs stop matching.
func TestSlugStability(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Home & Garden", "home-garden"},
		{"Electronics", "electronics"},
		{"Desk Lamp", "desk-lamp"},
		{"Čaj & Káva", "caj-kava"},
		{"  padded  name  ", "padded-name"},
	}

	for _, tt := range tests {
		if got := slug.Make(tt.name); got != tt.expected {
			t.Errorf("slug.Make(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}
