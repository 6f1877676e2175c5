// Package wiki corroborates claims against Wikipedia: search for the most
// relevant page, fetch its summary and judge whether it supports or
// contradicts the claim.
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

	"golang.org/x/net/html"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/util"
)

const defaultBaseURL = "https://en.wikipedia.org"

// Client fetches Wikipedia page summaries. Requests go through the robots
// gate and the configured proxy; lookups degrade to a NotFound-style answer
// on any network failure.
type Client struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	baseURL    string
	userAgent  string
}

// NewClient creates a Wikipedia client from configuration
func NewClient(cfg *model.Config) *Client {
	timeout := cfg.Wikipedia.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.Proxy.HTTPProxy, cfg.Proxy.HTTPSProxy),
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		robots:     util.NewRobotsChecker(cfg.Wikipedia.UserAgent, timeout),
		baseURL:    defaultBaseURL,
		userAgent:  cfg.Wikipedia.UserAgent,
	}
}

// Summary is the relevant slice of one Wikipedia page
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Lookup finds the page most relevant to the claim and returns its summary.
// A nil error with an empty Title means no page matched.
func (c *Client) Lookup(ctx context.Context, claim string) (Summary, error) {
	terms := searchTerms(claim)
	if len(terms) == 0 {
		return Summary{}, nil
	}

	title, err := c.search(ctx, strings.Join(terms, " "))
	if err != nil {
		return Summary{}, err
	}
	if title == "" {
		return Summary{}, nil
	}
	return c.summary(ctx, title)
}

// search queries the MediaWiki search API for the best matching page title
func (c *Client) search(ctx context.Context, query string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"1"},
	}
	searchURL := c.baseURL + "/w/api.php?" + params.Encode()

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return "", fmt.Errorf("wikipedia search: %w", err)
	}
	if len(result.Query.Search) == 0 {
		return "", nil
	}
	return result.Query.Search[0].Title, nil
}

// summary fetches the REST summary for a page, falling back to scraping the
// article's first paragraphs when the REST endpoint fails.
func (c *Client) summary(ctx context.Context, title string) (Summary, error) {
	summaryURL := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	var s Summary
	if err := c.getJSON(ctx, summaryURL, &s); err == nil && s.Extract != "" {
		return s, nil
	}

	extract, err := c.scrapeLead(ctx, title)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Title: title, Extract: extract}, nil
}

// scrapeLead pulls the first paragraphs out of the article HTML
func (c *Client) scrapeLead(ctx context.Context, title string) (string, error) {
	pageURL := c.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer func() { _ = body.Close() }()

	doc, err := html.Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}
	return leadParagraphs(doc), nil
}

// leadParagraphs collects the text of the first few <p> elements
func leadParagraphs(doc *html.Node) string {
	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(paragraphs) >= 3 {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.Join(paragraphs, " ")
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()
	return json.NewDecoder(body).Decode(out)
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if !c.robots.Allowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}
