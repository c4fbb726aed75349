package assistant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neighborhood_insights/platform/logger"

	"golang.org/x/net/html"
)

const (
	maxSearchResults   = 5
	defaultHTTPTimeout = 12 * time.Second
	searchUserAgent    = "Mozilla/5.0 (compatible; neighborhood-insights/1.0)"
)

// SearchResult is one organic web result.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// WebSearcher scrapes the DuckDuckGo HTML endpoint.
type WebSearcher struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
}

// NewWebSearcher creates a web searcher.
func NewWebSearcher(endpoint string, timeout time.Duration, log *logger.Logger) *WebSearcher {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &WebSearcher{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		log:        log,
	}
}

// Search returns up to five results for query.
func (s *WebSearcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	params := url.Values{}
	params.Set("q", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", s.endpoint, params.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", searchUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WithContext(ctx).Error("web search request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.WithContext(ctx).Error("web search returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("web search status %d", resp.StatusCode)
	}

	return ParseResults(resp.Body, maxSearchResults)
}

// ParseResults extracts title/url/snippet triples from a DuckDuckGo HTML
// results page. Each a.result__a opens a result; the next .result__snippet
// fills its snippet.
func ParseResults(r io.Reader, limit int) ([]SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var results []SearchResult
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(results) > limit {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				results = append(results, SearchResult{
					Title: collapse(textContent(n)),
					URL:   resolveRedirect(attr(n, "href")),
				})
				return
			case hasClass(n, "result__snippet"):
				if len(results) > 0 && results[len(results)-1].Snippet == "" {
					results[len(results)-1].Snippet = collapse(textContent(n))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
