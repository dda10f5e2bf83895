package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (c *Client) boardPage(ctx context.Context, slug string) (*goquery.Document, string, error) {
	u := c.boardURL(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", c.ua)

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return nil, "", err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("board get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, "", fmt.Errorf("board status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("board read: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, "", fmt.Errorf("board parse: %w", err)
	}
	return doc, string(body), nil
}

var noOpeningsPhrases = []string{
	"no open positions",
	"no openings",
	"no current openings",
	"0 open positions",
	"we don't have any open positions",
}

// Markup that tends to wrap one posting each on hosted boards: anchors to a
// posting UUID, posting container classes, serialized posting objects.
var jobMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)href="/[a-z0-9-]+/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`),
	regexp.MustCompile(`(?i)class="[^"]*job-posting[^"]*"`),
	regexp.MustCompile(`"@type"\s*:\s*"JobPosting"`),
}

// countFromPage estimates the posting count from board HTML, used only when
// the feed is unavailable. A "no openings" phrase short-circuits to zero;
// otherwise the answer is the max across marker-pattern counts and embedded
// JobPosting records. Overcounting beats undercounting here: the counts feed
// coarse buckets, not exact reporting.
func countFromPage(doc *goquery.Document, raw string) int {
	lower := strings.ToLower(doc.Text())
	for _, phrase := range noOpeningsPhrases {
		if strings.Contains(lower, phrase) {
			return 0
		}
	}

	best := 0
	for _, re := range jobMarkerPatterns {
		if n := len(re.FindAllStringIndex(raw, -1)); n > best {
			best = n
		}
	}
	if n := countJSONLDPostings(doc); n > best {
		best = n
	}
	return best
}

// countJSONLDPostings counts structured-data JobPosting records embedded in
// script blocks. Handles a bare object, an array, and an @graph wrapper.
func countJSONLDPostings(doc *goquery.Document) int {
	total := 0
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		total += postingsInJSONLD([]byte(s.Text()))
	})
	return total
}

func postingsInJSONLD(data []byte) int {
	var any interface{}
	if err := json.Unmarshal(data, &any); err != nil {
		return 0
	}
	return postingsInValue(any)
}

func postingsInValue(v interface{}) int {
	switch t := v.(type) {
	case []interface{}:
		n := 0
		for _, e := range t {
			n += postingsInValue(e)
		}
		return n
	case map[string]interface{}:
		if typ, _ := t["@type"].(string); strings.EqualFold(typ, "JobPosting") {
			return 1
		}
		if graph, ok := t["@graph"]; ok {
			return postingsInValue(graph)
		}
		return 0
	default:
		return 0
	}
}
