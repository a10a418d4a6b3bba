package detect

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/jobboard-finder/internal/fetch"
	"github.com/jonathan/jobboard-finder/internal/types"
)

// ParseHTML parses page content into a document.
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}
	return doc, nil
}

// FrameURLs returns the absolute source URL of every iframe in doc, in document
// order. Sources are resolved against baseURL; unparseable sources are skipped.
func FrameURLs(doc *goquery.Document, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &FrameError{Message: "failed to parse base URL", Cause: err}
	}

	var frames []string
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		frames = append(frames, base.ResolveReference(ref).String())
	})
	return frames, nil
}

// ScanFrames collects candidates from the iframes of doc. Each frame URL is
// scanned as text; when fetcher is non-nil the frame content is fetched and
// scanned too. A frame that cannot be fetched contributes nothing.
func (s *Scanner) ScanFrames(ctx context.Context, doc *goquery.Document, baseURL string, fetcher fetch.Fetcher) ([]types.Candidate, error) {
	frames, err := FrameURLs(doc, baseURL)
	if err != nil {
		return nil, err
	}

	var out []types.Candidate
	for _, frameURL := range frames {
		out = append(out, s.Scan(frameURL)...)
		if fetcher == nil {
			continue
		}
		html, err := fetcher.Page(ctx, frameURL)
		if err != nil {
			continue
		}
		out = append(out, s.Scan(html)...)
	}
	return out, nil
}
