package feed

import (
	"strings"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Go Time</title>
    <item>
      <title>Go Time 124: Modules</title>
      <pubDate>Tue, 02 Jun 2020 17:00:00 +0000</pubDate>
      <link>https://changelog.com/gotime/124</link>
      <guid>changelog.com/2/124</guid>
      <enclosure url="https://cdn.changelog.com/uploads/gotime/124/go-time-124.mp3" length="1" type="audio/mpeg"/>
    </item>
    <item>
      <title>Go Time 123: Generics</title>
      <pubDate>Tue, 26 May 2020 17:00:00 GMT</pubDate>
      <link>https://changelog.com/gotime/123/</link>
      <guid>changelog.com/2/123</guid>
    </item>
    <item>
      <title>No date here</title>
      <link>https://changelog.com/gotime/122</link>
    </item>
    <item>
      <pubDate>Tue, 12 May 2020 17:00:00 +0000</pubDate>
      <link>https://changelog.com/gotime/121</link>
    </item>
    <item>
      <title>Bad date</title>
      <pubDate>sometime soon</pubDate>
      <link>https://changelog.com/gotime/120</link>
    </item>
  </channel>
</rss>`

func TestParseKeepsFeedOrder(t *testing.T) {
	episodes, err := NewParser(nil).Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("got %d episodes, want 2", len(episodes))
	}
	if episodes[0].Title != "Go Time 124: Modules" || episodes[1].Title != "Go Time 123: Generics" {
		t.Errorf("episodes reordered: %q, %q", episodes[0].Title, episodes[1].Title)
	}
}

func TestParsePopulatesFields(t *testing.T) {
	episodes, err := NewParser(nil).Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first := episodes[0]
	if first.Year != 2020 {
		t.Errorf("Year = %d, want 2020", first.Year)
	}
	want := time.Date(2020, time.June, 2, 17, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}
	if first.GUID != "changelog.com/2/124" {
		t.Errorf("GUID = %q", first.GUID)
	}
	if first.EnclosureURL == "" {
		t.Error("enclosure URL not captured")
	}
	if episodes[1].EnclosureURL != "" {
		t.Errorf("missing enclosure should be empty, got %q", episodes[1].EnclosureURL)
	}
}

func TestParseDateFallbackNormalizesSuffix(t *testing.T) {
	episodes, err := NewParser(nil).Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Second item uses a " GMT" suffix and must still land in 2020.
	if episodes[1].Year != 2020 {
		t.Errorf("GMT-suffixed date parsed to year %d", episodes[1].Year)
	}
}

func TestParseKeepsISOOffsetWithoutColon(t *testing.T) {
	doc := `<rss><channel><item>
      <title>Go Time 1: Hello</title>
      <pubDate>2023-01-02T03:04:05+0000</pubDate>
      <link>https://changelog.com/gotime/1</link>
    </item></channel></rss>`
	episodes, err := NewParser(nil).Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("got %d episodes, want 1", len(episodes))
	}
	if episodes[0].Year != 2023 {
		t.Errorf("Year = %d, want 2023", episodes[0].Year)
	}
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		value string
		year  int
		ok    bool
	}{
		{"Tue, 26 May 2020 17:00:00 +0000", 2020, true},
		{"Tue, 26 May 2020 17:00:00 GMT", 2020, true},
		{"Wed, 3 Jun 2020 09:30:00 -0500", 2020, true},
		{"2021-03-04T12:00:00+02:00", 2021, true},
		{"2023-01-02T03:04:05+0000", 2023, true},
		{"2021-03-04 12:00:00", 2021, true},
		{"2019-12-31", 2019, true},
		{"2021-03-04T12:00:00 UTC", 0, false},
		{"next tuesday", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			parsed, ok := parseDate(tt.value)
			if ok != tt.ok {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && parsed.Year() != tt.year {
				t.Errorf("parseDate(%q).Year() = %d, want %d", tt.value, parsed.Year(), tt.year)
			}
		})
	}
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte(`<rss><channel><item></wrong></item></channel></rss>`))
	if err == nil {
		t.Fatal("expected parse error for mismatched tags")
	}
}

func TestEpisodeID(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://changelog.com/gotime/123", "123"},
		{"https://changelog.com/gotime/123/", "123"},
		{"https://changelog.com/afk/12", "12"},
		{"", ""},
	}
	for _, tt := range tests {
		episode := Episode{Link: tt.link}
		if got := episode.ID(); got != tt.want {
			t.Errorf("ID(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}

func TestParseEmptyChannel(t *testing.T) {
	episodes, err := NewParser(nil).Parse([]byte(`<rss><channel><title>empty</title></channel></rss>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(episodes) != 0 {
		t.Errorf("got %d episodes from empty channel", len(episodes))
	}
}

func TestParseCountNeverExceedsItems(t *testing.T) {
	episodes, err := NewParser(nil).Parse([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	items := strings.Count(sampleFeed, "<item>")
	if len(episodes) > items {
		t.Errorf("episodes %d > items %d", len(episodes), items)
	}
}
