// Package feeds fetches and parses the public RSS/Atom science feeds that
// supply candidate articles for the scientific post path.
package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"decathlonminds/internal/core"
	"decathlonminds/internal/logger"
)

// RSS mirrors the subset of the RSS 2.0 schema we read.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Channel Channel  `xml:"channel"`
}

// Channel is an RSS channel.
type Channel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Items       []RSSItem `xml:"item"`
}

// RSSItem is one RSS item.
type RSSItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Author      string `xml:"creator"`
	GUID        string `xml:"guid"`
}

// Atom mirrors the subset of the Atom schema we read.
type Atom struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []AtomEntry `xml:"entry"`
}

// AtomLink is an Atom link element.
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// AtomEntry is one Atom entry.
type AtomEntry struct {
	Title     string     `xml:"title"`
	Link      []AtomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Published string     `xml:"published"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// Manager fetches and parses article feeds. It remembers validator headers
// per feed so unchanged feeds answer 304 and cost nothing to re-parse.
type Manager struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	state map[string]*feedState
}

type feedState struct {
	etag         string
	lastModified string
	articles     []core.Article
}

// NewManager creates a feed manager with the given per-request timeout.
func NewManager(timeout time.Duration, userAgent string) *Manager {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = "DecathlonMinds Feed/1.0"
	}
	return &Manager{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		state:     make(map[string]*feedState),
	}
}

// Fetch retrieves one feed and returns its articles.
func (m *Manager) Fetch(ctx context.Context, feedURL string) ([]core.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("User-Agent", m.userAgent)

	m.mu.Lock()
	prev := m.state[feedURL]
	m.mu.Unlock()
	if prev != nil {
		if prev.lastModified != "" {
			req.Header.Set("If-Modified-Since", prev.lastModified)
		}
		if prev.etag != "" {
			req.Header.Set("If-None-Match", prev.etag)
		}
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && prev != nil {
		return prev.articles, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", feedURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	var articles []core.Article
	var rss RSS
	if err := xml.Unmarshal(body, &rss); err == nil && rss.Channel.Title != "" {
		articles = articlesFromRSS(rss)
	} else {
		var atom Atom
		if err := xml.Unmarshal(body, &atom); err == nil && atom.Title != "" {
			articles = articlesFromAtom(atom)
		}
	}
	if articles == nil {
		return nil, fmt.Errorf("unable to parse %s as RSS or Atom", feedURL)
	}

	m.mu.Lock()
	m.state[feedURL] = &feedState{
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		articles:     articles,
	}
	m.mu.Unlock()

	return articles, nil
}

// FetchAll fetches every configured feed concurrently, tolerating individual
// failures. It only errors when every feed fails.
func (m *Manager) FetchAll(ctx context.Context, feedURLs []string) ([]core.Article, error) {
	var (
		mu       sync.Mutex
		articles []core.Article
		failures int
		wg       sync.WaitGroup
	)

	for _, u := range feedURLs {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()
			items, err := m.Fetch(ctx, feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				logger.Warn("feed fetch failed", "feed", feedURL, "error", err.Error())
				return
			}
			articles = append(articles, items...)
		}(u)
	}
	wg.Wait()

	if len(feedURLs) > 0 && failures == len(feedURLs) {
		return nil, fmt.Errorf("all %d feeds failed", failures)
	}
	return articles, nil
}

func articlesFromRSS(rss RSS) []core.Article {
	sourceName := rss.Channel.Title
	articles := make([]core.Article, 0, len(rss.Channel.Items))
	for _, item := range rss.Channel.Items {
		articles = append(articles, core.Article{
			ID:          articleID(item.Link),
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: stripTags(item.Description),
			Published:   parseRSSDate(item.PubDate),
			SourceName:  sourceName,
			Author:      item.Author,
		})
	}
	return articles
}

func articlesFromAtom(atom Atom) []core.Article {
	articles := make([]core.Article, 0, len(atom.Entries))
	for _, entry := range atom.Entries {
		var link string
		for _, l := range entry.Link {
			if l.Rel == "" || l.Rel == "alternate" {
				link = l.Href
				break
			}
		}
		articles = append(articles, core.Article{
			ID:          articleID(link),
			Title:       strings.TrimSpace(entry.Title),
			Link:        link,
			Description: stripTags(entry.Summary),
			Published:   parseAtomDate(entry.Published),
			SourceName:  atom.Title,
			Author:      entry.Author.Name,
		})
	}
	return articles
}

// articleID creates a deterministic ID for an article based on its link.
func articleID(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// stripTags removes the markup some feeds embed in descriptions. Crude but
// sufficient for keyword matching and display snippets.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// parseRSSDate tries the date formats seen across RSS feeds.
func parseRSSDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC1123,
		time.RFC1123Z,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, strings.TrimSpace(dateStr)); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// parseAtomDate parses RFC3339 with an RSS-format fallback.
func parseAtomDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(dateStr)); err == nil {
		return t.UTC()
	}
	return parseRSSDate(dateStr)
}
