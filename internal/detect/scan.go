package detect

import (
	"strings"

	"github.com/jonathan/jobboard-finder/internal/registry"
	"github.com/jonathan/jobboard-finder/internal/types"
)

// trailingJunk is closing punctuation a URL match can over-capture.
const trailingJunk = `)"'.,;>`

// Scanner applies a vendor registry to text.
type Scanner struct {
	registry *registry.Registry
}

// NewScanner creates a scanner over reg.
func NewScanner(reg *registry.Registry) *Scanner {
	return &Scanner{registry: reg}
}

// Scan returns every vendor URL in text, ordered by registry entry and then by
// position in text. Duplicates are kept.
func (s *Scanner) Scan(text string) []types.Candidate {
	if text == "" {
		return nil
	}

	var out []types.Candidate
	for _, entry := range s.registry.Entries() {
		for _, match := range entry.Matcher().FindAllString(text, -1) {
			cleaned := strings.TrimRight(strings.TrimSpace(match), trailingJunk)
			if cleaned == "" {
				continue
			}
			out = append(out, types.Candidate{Vendor: entry.Vendor, URL: cleaned})
		}
	}
	return out
}

// First returns the first candidate Scan would produce for text.
func (s *Scanner) First(text string) (types.Candidate, bool) {
	candidates := s.Scan(text)
	if len(candidates) == 0 {
		return types.Candidate{}, false
	}
	return candidates[0], true
}
