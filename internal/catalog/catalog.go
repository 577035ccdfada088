package catalog

import (
	"fmt"
	"sort"
	"strings"

	"chlog/internal/services"
)

// Show describes one podcast in the fixed catalog.
type Show struct {
	// Key is the CLI identifier, e.g. "gotime".
	Key string
	// Folder is the local directory name under the archive root.
	Folder string
	// FeedURL is the RSS feed location. Empty when the show has no feed.
	FeedURL string
	// GitHubFolder is the directory in the official transcripts and
	// show-notes repositories.
	GitHubFolder string
	// FilenamePrefix is the filename prefix used by the official
	// repositories, e.g. "go-time" in "go-time-123.md".
	FilenamePrefix string
	// Official reports whether the show has entries in the official
	// transcripts and show-notes repositories.
	Official bool
}

// HasFeed reports whether the show publishes an RSS feed.
func (s Show) HasFeed() bool { return s.FeedURL != "" }

// The show catalog is closed and small, so it is enumerated here rather than
// discovered at runtime.
var shows = []Show{
	{Key: "practicalai", Folder: "Practical AI", FeedURL: "https://feeds.transistor.fm/practical-ai-machine-learning-data-science-llm", GitHubFolder: "practicalai", FilenamePrefix: "practical-ai"},
	{Key: "jsparty", Folder: "JS Party", FeedURL: "https://changelog.com/jsparty/feed", GitHubFolder: "jsparty", FilenamePrefix: "js-party", Official: true},
	{Key: "shipit", Folder: "Ship It", FeedURL: "https://changelog.com/shipit/feed", GitHubFolder: "shipit", FilenamePrefix: "ship-it", Official: true},
	{Key: "founderstalk", Folder: "Founders Talk", FeedURL: "https://changelog.com/founderstalk/feed", GitHubFolder: "founderstalk", FilenamePrefix: "founders-talk", Official: true},
	{Key: "gotime", Folder: "Go Time", FeedURL: "https://changelog.com/gotime/feed", GitHubFolder: "gotime", FilenamePrefix: "go-time", Official: true},
	{Key: "rfc", Folder: "Request for Commits", FeedURL: "https://changelog.com/rfc/feed", GitHubFolder: "rfc", FilenamePrefix: "request-for-commits", Official: true},
	{Key: "brainscience", Folder: "Brain Science", FeedURL: "https://changelog.com/brainscience/feed", GitHubFolder: "brainscience", FilenamePrefix: "brain-science", Official: true},
	{Key: "spotlight", Folder: "Spotlight", FeedURL: "https://changelog.com/spotlight/feed", GitHubFolder: "spotlight", FilenamePrefix: "spotlight", Official: true},
	{Key: "backstage", Folder: "Backstage", FeedURL: "", GitHubFolder: "backstage", FilenamePrefix: "backstage", Official: true},
	{Key: "afk", Folder: "Away from Keyboard", FeedURL: "https://changelog.com/afk/feed", GitHubFolder: "afk", FilenamePrefix: "away-from-keyboard", Official: true},
	{Key: "news", Folder: "Changelog News", FeedURL: "https://changelog.com/news/feed", GitHubFolder: "news", FilenamePrefix: "changelog-news", Official: true},
	{Key: "podcast", Folder: "Changelog Interviews", FeedURL: "https://changelog.com/podcast/feed", GitHubFolder: "podcast", FilenamePrefix: "the-changelog", Official: true},
	{Key: "friends", Folder: "Changelog and Friends", FeedURL: "https://changelog.com/friends/feed", GitHubFolder: "friends", FilenamePrefix: "changelog--friends", Official: true},
}

// aliases maps alternate CLI spellings onto canonical keys.
var aliases = map[string]string{
	"interviews": "podcast",
}

// Lookup resolves a podcast key (or alias) to its catalog entry. Unknown keys
// produce an error listing the valid options.
func Lookup(key string) (Show, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := aliases[normalized]; ok {
		normalized = canonical
	}
	for _, show := range shows {
		if show.Key == normalized {
			return show, nil
		}
	}
	return Show{}, services.Wrap(services.ErrNotFound, "catalog", "lookup",
		fmt.Sprintf("unknown podcast %q (valid: %s)", key, strings.Join(Keys(), ", ")), nil)
}

// All returns every show in catalog order.
func All() []Show {
	out := make([]Show, len(shows))
	copy(out, shows)
	return out
}

// Keys returns the sorted canonical podcast keys.
func Keys() []string {
	keys := make([]string, 0, len(shows))
	for _, show := range shows {
		keys = append(keys, show.Key)
	}
	sort.Strings(keys)
	return keys
}
