// Package wiki cross-references quiz topics against Wikipedia's REST
// summary API and resolves specialized fan wikis for niche categories.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Verification is the outcome of a topic lookup. Verify never fails:
// when the lookup cannot be completed, URL still holds a best-effort
// article link and Verified is false.
type Verification struct {
	URL      string
	Verified bool
	Summary  string
}

// Client looks up topics against a language-specific Wikipedia.
type Client struct {
	hc      *http.Client
	baseURL string // override for tests; empty means the real Wikipedia
}

// NewClient creates a verifier client with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		hc: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithBaseURL creates a client whose summary endpoint lives
// under base, for tests.
func NewClientWithBaseURL(base string) *Client {
	return &Client{
		hc:      &http.Client{Timeout: requestTimeout},
		baseURL: base,
	}
}

// summaryResponse is the slice of the Wikipedia REST summary body we
// care about.
type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Verify looks topic up on the lang Wikipedia. A miss is not an error:
// the result degrades to an unverified direct article link so question
// generation is never blocked on verification.
func (c *Client) Verify(ctx context.Context, topic, lang string) Verification {
	slug := Slug(topic)
	fallback := Verification{URL: ArticleURL(lang, topic)}

	endpoint := c.summaryEndpoint(lang, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fallback
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallback
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return fallback
	}

	v := Verification{
		URL:      summary.ContentURLs.Desktop.Page,
		Verified: true,
		Summary:  summary.Extract,
	}
	if v.URL == "" {
		v.URL = fallback.URL
	}
	return v
}

func (c *Client) summaryEndpoint(lang, slug string) string {
	if c.baseURL != "" {
		return fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, slug)
	}
	return fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1/page/summary/%s", lang, slug)
}

// Slug normalizes a topic into a Wikipedia article slug: spaces become
// underscores, then the result is percent-encoded.
func Slug(topic string) string {
	return url.PathEscape(strings.ReplaceAll(strings.TrimSpace(topic), " ", "_"))
}

// ArticleURL builds the direct article link for a topic on the lang
// Wikipedia. Used as the unverified fallback.
func ArticleURL(lang, topic string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, Slug(topic))
}

// IsWikipediaURL reports whether raw points at any Wikipedia domain.
func IsWikipediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org")
}

// TopicFromURL extracts the article slug from a wiki article URL,
// e.g. ".../wiki/Albert_Einstein" → "Albert_Einstein". Returns ""
// when the URL has no /wiki/ path.
func TopicFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	const marker = "/wiki/"
	i := strings.Index(u.Path, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimPrefix(u.Path[i+len(marker):], "/")
}
