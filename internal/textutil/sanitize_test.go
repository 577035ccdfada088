package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{`Go Time 123: Generics`, "Go Time 123 Generics"},
		{`What? How! <Why>`, "What How! Why"},
		{`a/b\c|d*e`, "abcde"},
		{"trailing dots... ", "trailing dots"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.name); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestStripBracketed(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Go Time 123 [changelog.com/2/123]", "Go Time 123"},
		{"No brackets here", "No brackets here"},
		{"Multi [a] parts [b]", "Multi parts"},
		{"[only]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripBracketed(tt.name); got != tt.want {
				t.Errorf("StripBracketed(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
