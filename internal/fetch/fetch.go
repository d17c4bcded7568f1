// Package fetch probes and extracts remote web content: image URL
// accessibility checks for the selector and lightweight article extraction
// for feed links.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"decathlonminds/internal/core"
)

const accessibilityTimeout = 1 * time.Second

// AccessibilityResult reports whether a URL responded successfully within
// the probe timeout.
type AccessibilityResult struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"isAccessible"`
	Status       int    `json:"status,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Checker probes remote URLs.
type Checker struct {
	client *http.Client
}

// NewChecker creates a Checker with the short probe timeout.
func NewChecker() *Checker {
	return &Checker{
		client: &http.Client{Timeout: accessibilityTimeout},
	}
}

// CheckAccessibility issues a HEAD request for the URL and falls back to a
// ranged GET when the server rejects HEAD. Any network failure or non-2xx
// status marks the URL inaccessible rather than returning an error: callers
// treat unreachable images as a selection signal, not a fault.
func (c *Checker) CheckAccessibility(ctx context.Context, rawURL string) AccessibilityResult {
	result := AccessibilityResult{URL: rawURL}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		result.Error = "invalid url"
		return result
	}

	status, err := c.probe(ctx, http.MethodHead, rawURL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = c.probe(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Status = status
	result.IsAccessible = status >= 200 && status < 300
	return result
}

func (c *Checker) probe(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create probe request: %w", err)
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusPartialContent {
		return http.StatusOK, nil
	}
	return resp.StatusCode, nil
}

// ExtractArticle downloads an article page and pulls its title, description
// and lead image from the document metadata.
func ExtractArticle(ctx context.Context, pageURL string) (core.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to create article request: %w", err)
	}
	req.Header.Set("User-Agent", "DecathlonMinds Feed/1.0")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to fetch article %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return core.Article{}, fmt.Errorf("article %s returned status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	article := core.Article{
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(pageURL)).String(),
		Link:      pageURL,
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Published: time.Now().UTC(),
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		article.Title = strings.TrimSpace(og)
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		article.Description = strings.TrimSpace(desc)
	}
	if article.Description == "" {
		if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			article.Description = strings.TrimSpace(og)
		}
	}
	if site, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		article.SourceName = strings.TrimSpace(site)
	}
	if author, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		article.Author = strings.TrimSpace(author)
	}

	if article.Title == "" {
		return core.Article{}, fmt.Errorf("article %s has no usable title", pageURL)
	}
	return article, nil
}
