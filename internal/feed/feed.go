package feed

import (
	"bytes"
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"chlog/internal/logging"
	"chlog/internal/services"
)

// Episode is one parsed feed item. Episodes are immutable once parsed; an
// item with an unparsable publication date is excluded entirely rather than
// retained with a zero year.
type Episode struct {
	Title        string
	PublishedAt  time.Time
	Year         int
	Link         string
	GUID         string
	EnclosureURL string
}

// ID returns the trailing path segment of the episode's canonical URL, the
// identifier used by the official transcript and show-notes repositories
// (e.g. https://changelog.com/gotime/123 -> "123").
func (e Episode) ID() string {
	trimmed := strings.TrimRight(e.Link, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// dateFormats is the ordered ladder of publication-date layouts; the first
// successful parse wins.
var dateFormats = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type rssItem struct {
	Title     string `xml:"title"`
	PubDate   string `xml:"pubDate"`
	Link      string `xml:"link"`
	GUID      string `xml:"guid"`
	Enclosure struct {
		URL string `xml:"url,attr"`
	} `xml:"enclosure"`
}

// Parser turns a feed document into an ordered episode list.
type Parser struct {
	logger *slog.Logger
}

// NewParser constructs a feed parser. A nil logger suppresses diagnostics.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logging.NewComponentLogger(logger, "feed")}
}

// ParseFile reads and parses the feed document at path.
func (p *Parser) ParseFile(path string) ([]Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrFeedFormat, "feed", "read document", "cannot open feed file", err)
	}
	return p.Parse(data)
}

// Parse extracts episodes from raw feed text, newest-first as given by the
// source, with no reordering. Items missing a title or publication date are
// skipped silently; an unparsable date skips the item with a diagnostic. Only
// a malformed document is an error.
func (p *Parser) Parse(data []byte) ([]Episode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var episodes []Episode
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFeedFormat, "feed", "parse document", "document is not well-formed XML", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var item rssItem
		if err := decoder.DecodeElement(&item, &start); err != nil {
			return nil, services.Wrap(services.ErrFeedFormat, "feed", "parse item", "document is not well-formed XML", err)
		}

		title := strings.TrimSpace(item.Title)
		pubDate := strings.TrimSpace(item.PubDate)
		if title == "" || pubDate == "" {
			continue
		}

		published, ok := parseDate(pubDate)
		if !ok {
			p.logger.Warn("skipping item with unparsable date",
				logging.String("title", title),
				logging.String("pub_date", pubDate),
			)
			continue
		}

		episodes = append(episodes, Episode{
			Title:        title,
			PublishedAt:  published,
			Year:         published.Year(),
			Link:         strings.TrimSpace(item.Link),
			GUID:         strings.TrimSpace(item.GUID),
			EnclosureURL: strings.TrimSpace(item.Enclosure.URL),
		})
	}

	return episodes, nil
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	// Best-effort fallback: normalize common timezone suffixes and retry.
	normalized := normalizeTimezoneSuffix(value)
	if normalized != value {
		for _, layout := range dateFormats {
			if parsed, err := time.Parse(layout, normalized); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func normalizeTimezoneSuffix(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, suffix := range []string{" GMT", " UTC", " UT", " Z"} {
		if strings.HasSuffix(trimmed, suffix) {
			return strings.TrimSuffix(trimmed, suffix) + " +0000"
		}
	}
	return trimmed
}
