// Package match reconciles downloaded audio filenames against parsed feed
// episodes.
//
// Matching is two-tiered. Filenames written by the download tool end in a
// bracketed identifier carrying the episode's canonical URL fragment; when
// present it is compared against each episode's guid, link, and enclosure URL
// with a bidirectional substring rule, first hit in feed order winning. Files
// without a usable identifier fall back to fuzzy title matching: the episode
// whose distinct title words overlap the filename by strictly more than half
// wins, best score across the feed.
package match
