package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"boardwatch/internal/config"
	"boardwatch/internal/util"
)

// Client talks to the Google Custom Search JSON API. Every call is one
// outbound request; pacing goes through the shared host limiter.
type Client struct {
	hc       *http.Client
	limiter  *util.HostLimiter
	baseURL  string
	apiKey   string
	engineID string
	pageSize int
	ua       string
}

func NewClient(cfg config.Config, limiter *util.HostLimiter) *Client {
	return &Client{
		hc:       &http.Client{Timeout: 30 * time.Second},
		limiter:  limiter,
		baseURL:  cfg.Search.BaseURL,
		apiKey:   cfg.Search.APIKey,
		engineID: cfg.Search.EngineID,
		pageSize: cfg.Search.PageSize,
		ua:       cfg.App.UserAgent,
	}
}

type Item struct {
	Link string
}

// Page is one page of search results. NextStart is 0 when the API reports no
// further page.
type Page struct {
	Items        []Item
	NextStart    int
	TotalResults string
}

// Response schema is a lot bigger than this; we defensively parse only what
// we need.
type searchResponse struct {
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
	Queries struct {
		NextPage []struct {
			StartIndex int `json:"startIndex"`
		} `json:"nextPage"`
	} `json:"queries"`
}

// Search runs one query page. start is the API's 1-based result offset. Any
// failure (transport, non-2xx, bad JSON) comes back as an error the caller
// treats as end-of-query; nothing here is fatal to a run.
func (c *Client) Search(ctx context.Context, query string, start int) (Page, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("start", strconv.Itoa(start))
	q.Set("num", strconv.Itoa(c.pageSize))

	u := c.baseURL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return Page{}, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("search get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		// 403 means bad/absent credentials, 429 means quota; both end the
		// query, neither ends the run.
		return Page{}, fmt.Errorf("search status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return Page{}, fmt.Errorf("search decode: %w", err)
	}

	p := Page{TotalResults: sr.SearchInformation.TotalResults}
	for _, it := range sr.Items {
		p.Items = append(p.Items, Item{Link: it.Link})
	}
	if len(sr.Queries.NextPage) > 0 {
		p.NextStart = sr.Queries.NextPage[0].StartIndex
	}
	return p, nil
}
