package detect

import (
	"strings"

	"github.com/jonathan/jobboard-finder/internal/types"
)

// preferredPaths mark URLs that point at a job listing rather than a landing page.
var preferredPaths = []string{"/jobs", "/careers"}

// Dedupe removes repeated (vendor, url) pairs, keeping first occurrences in order.
func Dedupe(candidates []types.Candidate) []types.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	seen := make(map[types.Candidate]bool, len(candidates))
	out := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Select returns the first candidate whose URL contains /jobs or /careers,
// falling back to the first candidate. It reports false for an empty input.
func Select(candidates []types.Candidate) (types.Candidate, bool) {
	if len(candidates) == 0 {
		return types.Candidate{}, false
	}
	for _, c := range candidates {
		if hasPreferredPath(c.URL) {
			return c, true
		}
	}
	return candidates[0], true
}

// DedupeAndSelect dedupes candidates and selects the best one.
func DedupeAndSelect(candidates []types.Candidate) (types.Candidate, bool) {
	return Select(Dedupe(candidates))
}

func hasPreferredPath(u string) bool {
	lower := strings.ToLower(u)
	for _, p := range preferredPaths {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
