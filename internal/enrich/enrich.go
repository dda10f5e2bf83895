// Package enrich resolves a bare tenant slug into a display name and an
// approximate open-position count, preferring the platform's structured feed
// and falling back to scraping the public board page.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"boardwatch/internal/config"
	"boardwatch/internal/util"

	"github.com/PuerkitoBio/goquery"
)

type Status int

const (
	// StatusOK: the primary source answered.
	StatusOK Status = iota
	// StatusDegraded: a fallback produced the value; Reason says why.
	StatusDegraded
	// StatusFailed: nothing answered; the value is a placeholder.
	StatusFailed
)

// Outcome tells the caller where a value came from, so fallback decisions
// live with the caller instead of being swallowed here.
type Outcome struct {
	Status Status
	Source string // "feed", "page", "title", "meta", "slug", "none"
	Reason string
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return o.Source
	}
	return o.Source + " (" + o.Reason + ")"
}

type Client struct {
	hc      *http.Client
	limiter *util.HostLimiter
	// baseURL is the board root, https://<platform host> in production.
	baseURL string
	feedURL string // printf template taking the slug
	ua      string
}

func NewClient(cfg config.Config, limiter *util.HostLimiter) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		baseURL: "https://" + cfg.Platform.Host,
		feedURL: cfg.Platform.FeedURL,
		ua:      cfg.App.UserAgent,
	}
}

var titleSeparators = []string{" - ", " | ", " – "}

// CompanyName fetches the slug's board page and extracts a display name from
// the title, then known meta tags. It never fails: any trouble degrades to a
// title-cased version of the slug.
func (c *Client) CompanyName(ctx context.Context, slug string) (string, Outcome) {
	fallback := util.NameFromSlug(slug)

	doc, err := c.boardDoc(ctx, slug)
	if err != nil {
		return fallback, Outcome{StatusDegraded, "slug", err.Error()}
	}

	if title := util.CleanText(doc.Find("title").First().Text()); title != "" {
		name := title
		for _, sep := range titleSeparators {
			if i := strings.Index(name, sep); i >= 0 {
				name = name[:i]
			}
		}
		if name = util.CleanText(name); name != "" {
			return name, Outcome{StatusOK, "title", ""}
		}
	}

	for _, sel := range []string{
		`meta[property="og:site_name"]`,
		`meta[name="application-name"]`,
		`meta[property="og:title"]`,
	} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = util.CleanText(v); v != "" {
				return v, Outcome{StatusOK, "meta", ""}
			}
		}
	}

	return fallback, Outcome{StatusDegraded, "slug", "no usable title or meta"}
}

// JobCount returns the open-position count for a slug. The feed endpoint wins
// outright whenever it answers with a success status, even when it reports
// zero jobs; only a failed feed call falls through to the page heuristics.
func (c *Client) JobCount(ctx context.Context, slug string) (int, Outcome) {
	n, feedErr := c.feedCount(ctx, slug)
	if feedErr == nil {
		return n, Outcome{StatusOK, "feed", ""}
	}

	doc, raw, err := c.boardPage(ctx, slug)
	if err != nil {
		return 0, Outcome{StatusFailed, "none", fmt.Sprintf("feed: %v; page: %v", feedErr, err)}
	}
	return countFromPage(doc, raw), Outcome{StatusDegraded, "page", feedErr.Error()}
}

// SlugExists probes the board URL and reports whether it resolves. Used by
// brute-force candidate testing; redirects are followed, only a final 200
// counts.
func (c *Client) SlugExists(ctx context.Context, slug string) bool {
	u := c.boardURL(slug)

	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			return false
		}
		req.Header.Set("User-Agent", c.ua)

		if c.limiter != nil {
			if err := c.limiter.WaitURL(ctx, u); err != nil {
				return false
			}
		}
		res, err := c.hc.Do(req)
		if err != nil {
			return false
		}
		res.Body.Close()

		if res.StatusCode == http.StatusMethodNotAllowed {
			continue // some hosts refuse HEAD; retry as GET
		}
		return res.StatusCode == http.StatusOK
	}
	return false
}

func (c *Client) boardURL(slug string) string {
	return c.baseURL + "/" + slug
}

func (c *Client) boardDoc(ctx context.Context, slug string) (*goquery.Document, error) {
	doc, _, err := c.boardPage(ctx, slug)
	return doc, err
}
