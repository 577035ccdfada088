package match

import (
	"regexp"
	"testing"
)

func TestExtractURLIdentifier(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://changelog.com/gotime/123", "changelog.com/gotime/123"},
		{"http://www.changelog.com/gotime/123/", "changelog.com/gotime/123"},
		{"changelog.com/1/2677", "changelog.com/1/2677"},
		{"https://cdn.changelog.com/uploads/gotime/123/go-time-123.mp3", "cdn.changelog.com/uploads/gotime/123/go-time-123.mp3"},
		{"", ""},
		{"https://example.com///", "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ExtractURLIdentifier(tt.url); got != tt.want {
				t.Errorf("ExtractURLIdentifier(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractURLIdentifierIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.changelog.com/podcast/500/",
		"changelog.com/podcast/500",
		"http://example.com",
	}
	for _, url := range inputs {
		once := ExtractURLIdentifier(url)
		twice := ExtractURLIdentifier(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", url, once, twice)
		}
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Go Time 123: Generics.mp3", "go time 123 generics"},
		{"The  Changelog   #500.mp3", "the changelog 500"},
		{"already-clean", "already-clean"},
		{"Weird!!!(chars)___ here.opus", "weirdchars___ here"},
		{"", ""},
		{"   .mp3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFilename(tt.name); got != tt.want {
				t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeFilenameAlphabet(t *testing.T) {
	clean := regexp.MustCompile(`^[\p{Ll}\p{N}_ -]*$`)
	inputs := []string{
		"Go Time 123: Generics.mp3",
		"Ship It! #42 — Kaizen [changelog.com/7/42].m4a",
		"ÜBER Führung.wav",
	}
	for _, name := range inputs {
		got := NormalizeFilename(name)
		if !clean.MatchString(got) {
			t.Errorf("NormalizeFilename(%q) = %q contains disallowed characters", name, got)
		}
		if regexp.MustCompile(`  `).MatchString(got) {
			t.Errorf("NormalizeFilename(%q) = %q contains doubled spaces", name, got)
		}
	}
}

func TestNormalizeSubstitutes(t *testing.T) {
	got := normalizeSubstitutes("changelog.com⧸1⧸2677：x")
	if got != "changelog.com/1/2677:x" {
		t.Errorf("normalizeSubstitutes = %q", got)
	}
}
