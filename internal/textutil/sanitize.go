package textutil

import (
	"regexp"
	"strings"
)

// fileNameReplacer removes the characters Windows forbids in filenames, so
// titles produce names valid on every filesystem the archive might sit on.
var fileNameReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
)

var bracketedPattern = regexp.MustCompile(`\s*\[[^\]]*\]`)

// SanitizeFileName strips filesystem-unsafe characters from a filename and
// trims the trailing dots and spaces Windows disallows.
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)
	return strings.TrimRight(name, ". ")
}

// StripBracketed removes bracketed tokens (and any whitespace preceding them)
// from a name. Download tools append the episode identifier in brackets;
// derived artifacts like transcripts drop it.
func StripBracketed(name string) string {
	return bracketedPattern.ReplaceAllString(name, "")
}
