package fetch

import (
	"context"
	"errors"
	"sync"
)

// CachedFetcher wraps a Fetcher and remembers every outcome for the lifetime
// of the value, so a page shared by several rows (a common careers widget,
// a repeated application URL) is requested once per run. Failures are
// remembered too and are not retried. Cancellation is never cached.
type CachedFetcher struct {
	next Fetcher

	mu      sync.Mutex
	entries map[string]cacheEntry
	hits    int
}

type cacheEntry struct {
	html string
	err  error
}

// NewCachedFetcher creates a cache in front of next.
func NewCachedFetcher(next Fetcher) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		entries: make(map[string]cacheEntry),
	}
}

// Page returns the cached outcome for urlStr, fetching it on first use.
func (f *CachedFetcher) Page(ctx context.Context, urlStr string) (string, error) {
	f.mu.Lock()
	if e, ok := f.entries[urlStr]; ok {
		f.hits++
		f.mu.Unlock()
		return e.html, e.err
	}
	f.mu.Unlock()

	html, err := f.next.Page(ctx, urlStr)
	if isCanceled(ctx, err) {
		return html, err
	}

	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{html: html, err: err}
	f.mu.Unlock()
	return html, err
}

// Len returns the number of cached URLs.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Hits returns how many calls were answered from the cache.
func (f *CachedFetcher) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func isCanceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
