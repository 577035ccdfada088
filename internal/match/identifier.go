package match

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	schemePattern     = regexp.MustCompile(`^https?://(www\.)?`)
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// substituteReplacer maps the visually-similar Unicode characters download
// tools use in place of filesystem-hostile '/' and ':' back to their literal
// form so filename tokens compare equal to feed identifiers.
var substituteReplacer = strings.NewReplacer(
	"⧸", "/", // big solidus
	"：", ":", // fullwidth colon
)

// ExtractURLIdentifier reduces a URL to its stable matching key: the scheme
// and an optional "www." prefix are stripped, as are trailing slashes.
// Applying it twice yields the same result as once.
func ExtractURLIdentifier(url string) string {
	url = schemePattern.ReplaceAllString(url, "")
	return strings.TrimRight(url, "/")
}

// NormalizeFilename prepares a filename for fuzzy title comparison: the
// extension is dropped, the text is NFC-normalized and lowercased, characters
// outside word characters, whitespace, and hyphens are removed, and runs of
// whitespace collapse to a single space.
func NormalizeFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(norm.NFC.String(name))
	name = nonWordPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

func normalizeSubstitutes(value string) string {
	return substituteReplacer.Replace(value)
}
