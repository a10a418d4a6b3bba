// Package detect finds job board URLs in application pages.
//
// It covers URL normalization, scanning text for vendor URLs, resolving
// inline frames, choosing the best candidate and spotting pages that ask
// applicants to email PDF documents.
package detect

import "strings"

// NormalizeURL trims raw and adds an https scheme when it has none.
// Empty or whitespace-only input yields "". The host is not validated.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}
	return u
}
