// Package search looks up code solutions and documentation on the web.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/Cyclone1070/codereview/internal/retry"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// NoResults is returned when the response holds nothing worth summarising.
const NoResults = "No good search result found"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// httpDoer is satisfied by *http.Client.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type searchParams struct {
	Engine string `url:"engine"`
	Query  string `url:"q"`
	APIKey string `url:"api_key"`
	Num    int    `url:"num,omitempty"`
}

// SerpAPIClient queries SerpAPI and condenses the response into plain text.
// Requests are throttled to the configured rate and retried on 429 and 5xx.
type SerpAPIClient struct {
	http       httpDoer
	limiter    *rate.Limiter
	policy     retry.Policy
	endpoint   string
	engine     string
	apiKey     string
	maxResults int
}

// NewSerpAPIClient creates a client. A nil doer gets an *http.Client with
// the configured timeout.
func NewSerpAPIClient(doer httpDoer, cfg *config.Config, apiKey string) *SerpAPIClient {
	if doer == nil {
		doer = &http.Client{Timeout: time.Duration(cfg.Search.TimeoutSeconds) * time.Second}
	}
	return &SerpAPIClient{
		http:       doer,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Search.RequestsPerSecond), 1),
		policy:     retry.FromConfig(cfg.Provider),
		endpoint:   cfg.Search.Endpoint,
		engine:     cfg.Search.Engine,
		apiKey:     apiKey,
		maxResults: cfg.Search.MaxResults,
	}
}

// Search returns a text summary of the results for q.
func (c *SerpAPIClient) Search(ctx context.Context, q string) (string, error) {
	if strings.TrimSpace(q) == "" {
		return "", ErrQueryRequired
	}
	if c.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	body, err := retry.Do(ctx, c.policy, "search", isRetryable, func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return c.fetch(ctx, q)
	})
	if err != nil {
		return "", err
	}
	return summarise(body, c.maxResults), nil
}

func (c *SerpAPIClient) fetch(ctx context.Context, q string) ([]byte, error) {
	values, err := query.Values(searchParams{Engine: c.engine, Query: q, APIKey: c.apiKey, Num: c.maxResults})
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing search endpoint: %w", err)
	}
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, redactKey(err, c.apiKey)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	clog.FromContext(ctx).With("status", resp.StatusCode).With("elapsed", time.Since(start)).Debug("search request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: gjson.GetBytes(body, "error").String()}
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, fmt.Errorf("search API error: %s", msg.String())
	}
	return body, nil
}

// summarise prefers a direct answer, then the knowledge graph, then the top
// organic results.
func summarise(body []byte, maxResults int) string {
	doc := gjson.ParseBytes(body)

	box := doc.Get("answer_box")
	for _, key := range []string{"answer", "snippet", "snippet_highlighted_words.0"} {
		if v := box.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}

	if desc := doc.Get("knowledge_graph.description"); desc.String() != "" {
		if title := doc.Get("knowledge_graph.title").String(); title != "" {
			return title + ": " + desc.String()
		}
		return desc.String()
	}

	var b strings.Builder
	n := 0
	doc.Get("organic_results").ForEach(func(_, r gjson.Result) bool {
		if maxResults > 0 && n >= maxResults {
			return false
		}
		title, link, snippet := r.Get("title").String(), r.Get("link").String(), r.Get("snippet").String()
		if title == "" && snippet == "" {
			return true
		}
		n++
		fmt.Fprintf(&b, "%d. %s\n", n, title)
		if link != "" {
			fmt.Fprintf(&b, "   %s\n", link)
		}
		if snippet != "" {
			fmt.Fprintf(&b, "   %s\n", snippet)
		}
		return true
	})
	if n == 0 {
		return NoResults
	}
	return strings.TrimRight(b.String(), "\n")
}

// redactKey strips the API key from transport errors, which quote the URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
