package discover

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

// Prefixes returns the query prefixes for one full sweep: the empty prefix,
// every single letter and digit, then every two-character letter+letter,
// letter+digit and digit+letter pair. The search API truncates any single
// query to a fixed result ceiling, so sweeping narrow prefixes pushes the
// union of reachable results toward exhaustive coverage. Heuristic, not a
// completeness guarantee.
func Prefixes() []string {
	out := make([]string, 0, 1+26+10+26*26+26*10+10*26)
	out = append(out, "")
	for _, l := range letters {
		out = append(out, string(l))
	}
	for _, d := range digits {
		out = append(out, string(d))
	}
	for _, a := range letters {
		for _, b := range letters {
			out = append(out, string(a)+string(b))
		}
	}
	for _, a := range letters {
		for _, b := range digits {
			out = append(out, string(a)+string(b))
		}
	}
	for _, a := range digits {
		for _, b := range letters {
			out = append(out, string(a)+string(b))
		}
	}
	return out
}
