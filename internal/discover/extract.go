package discover

import (
	"net/url"
	"strings"
)

// ExtractSlug pulls the tenant slug out of a search-result URL. The URL must
// live on the platform host (or a subdomain of it); the slug is the first path
// segment, lowercased. Query strings and fragments never survive parsing.
func ExtractSlug(raw, platformHost string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	platformHost = strings.ToLower(platformHost)
	if host != platformHost && !strings.HasSuffix(host, "."+platformHost) {
		return "", false
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", false
	}
	slug := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		slug = path[:i]
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return "", false
	}
	return slug, true
}
