package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Feed schema (Ashby posting API and lookalikes): { "jobs": [ {...}, ... ] }.
// We only need the cardinality.
type feedResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// feedCount asks the structured feed endpoint how many postings the board
// has. A non-2xx status or decode trouble is an error so the caller can fall
// back; a successful empty feed is a real answer of zero.
func (c *Client) feedCount(ctx context.Context, slug string) (int, error) {
	u := fmt.Sprintf(c.feedURL, slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return 0, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("feed get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return 0, fmt.Errorf("feed status %d", res.StatusCode)
	}

	var fr feedResponse
	if err := json.NewDecoder(res.Body).Decode(&fr); err != nil {
		return 0, fmt.Errorf("feed decode: %w", err)
	}
	return len(fr.Jobs), nil
}
