// Package wordgen generates speculative slug candidates from common business
// words. This is an opt-in probing path, separate from the search sweep: the
// hit rate is low and every candidate costs a live request, so it never runs
// by default.
package wordgen

var baseWords = []string{
	"labs", "tech", "ai", "data", "cloud", "health", "pay", "bank",
	"stack", "base", "scale", "flow", "hub", "works", "systems",
	"security", "robotics", "energy", "bio", "space", "dev", "soft",
	"net", "app", "shop", "market", "studio", "team", "co", "hq",
}

// Candidates returns each word alone, plus every ordered pair joined bare and
// joined with a hyphen ("paystack", "pay-stack"). Deduplicated, order stable.
func Candidates() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, w := range baseWords {
		add(w)
	}
	for _, a := range baseWords {
		for _, b := range baseWords {
			if a == b {
				continue
			}
			add(a + b)
			add(a + "-" + b)
		}
	}
	return out
}
