package match

import (
	"regexp"
	"strings"

	"chlog/internal/feed"
)

// bracketPattern matches a trailing bracketed identifier immediately before a
// recognized audio extension, e.g. "Go Time 123 [changelog.com/2/123].mp3".
var bracketPattern = regexp.MustCompile(`(?i)\[([^\]]+)\]\.(mp3|m4a|opus|ogg|wav|flac)$`)

// audioExtensions is the recognized set of downloadable audio formats,
// compared case-insensitively against file extensions.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".opus": {},
	".ogg":  {},
	".wav":  {},
	".flac": {},
}

// IsAudioFile reports whether name carries a recognized audio extension.
func IsAudioFile(name string) bool {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return false
	}
	_, ok := audioExtensions[strings.ToLower(name[dot:])]
	return ok
}

// fuzzyThreshold is the minimum word-overlap ratio a title must clear, as a
// strict lower bound, before a fallback match is accepted.
const fuzzyThreshold = 0.5

// Match reconciles a downloaded filename against the parsed episode list and
// returns the matching episode, or ok=false when nothing qualifies.
//
// The bracketed-identifier tier returns the first episode in feed order whose
// guid, canonical URL, or enclosure URL satisfies the substring rule; the
// fuzzy-title tier scans the whole feed for the best overlap.
func Match(filename string, episodes []feed.Episode) (feed.Episode, bool) {
	if m := bracketPattern.FindStringSubmatch(filename); m != nil {
		fileID := normalizeSubstitutes(m[1])
		for _, episode := range episodes {
			if matchesIdentifier(fileID, episode) {
				return episode, true
			}
		}
	}

	return matchByTitle(filename, episodes)
}

// matchesIdentifier reports whether fileID names the episode. An empty
// identifier on either side never matches; an empty link or enclosure
// identifier would otherwise be contained in every fileID and bind each
// bracketed file to the first episode in the feed.
func matchesIdentifier(fileID string, episode feed.Episode) bool {
	if fileID == "" {
		return false
	}
	// guid first, then canonical URL, then enclosure URL.
	if episode.GUID != "" {
		guid := normalizeSubstitutes(episode.GUID)
		if fileID == guid || strings.Contains(guid, fileID) || strings.Contains(fileID, guid) {
			return true
		}
	}
	if urlID := ExtractURLIdentifier(episode.Link); urlID != "" {
		if strings.Contains(urlID, fileID) || strings.Contains(fileID, urlID) {
			return true
		}
	}
	if enclosureID := ExtractURLIdentifier(episode.EnclosureURL); enclosureID != "" {
		if strings.Contains(enclosureID, fileID) || strings.Contains(fileID, enclosureID) {
			return true
		}
	}
	return false
}

// matchByTitle scores each episode by the share of its distinct title words
// present in the filename. The divisor is the title's word count alone, so a
// filename with unrelated extra words can still match a short title.
func matchByTitle(filename string, episodes []feed.Episode) (feed.Episode, bool) {
	fileWords := wordSet(NormalizeFilename(filename))

	var best feed.Episode
	bestScore := 0.0
	found := false

	for _, episode := range episodes {
		titleWords := wordSet(NormalizeFilename(episode.Title))
		if len(titleWords) == 0 {
			continue
		}
		overlap := 0
		for word := range titleWords {
			if _, ok := fileWords[word]; ok {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(titleWords))
		if score > bestScore && score > fuzzyThreshold {
			bestScore = score
			best = episode
			found = true
		}
	}

	return best, found
}

func wordSet(text string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, word := range strings.Fields(text) {
		words[word] = struct{}{}
	}
	return words
}
