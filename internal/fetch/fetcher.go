package fetch

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Fetcher retrieves page text for a URL. Any failure, including a non-2xx
// status, is reported as an error and no text.
type Fetcher interface {
	Page(ctx context.Context, urlStr string) (string, error)
}

// HTTPFetcher fetches pages with a shared client and a fixed header set.
type HTTPFetcher struct {
	client  *http.Client
	options *Options
	logger  *zap.SugaredLogger
}

// NewHTTPFetcher creates a fetcher. A nil opts uses DefaultOptions; a nil logger discards logs.
func NewHTTPFetcher(opts *Options, logger *zap.SugaredLogger) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		options: opts,
		logger:  logger,
	}
}

// Fetch retrieves urlStr. On a non-2xx status the result is returned along
// with the error.
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	return get(ctx, f.client, urlStr, f.options)
}

// Page returns the body of urlStr.
func (f *HTTPFetcher) Page(ctx context.Context, urlStr string) (string, error) {
	result, err := f.Fetch(ctx, urlStr)
	if err != nil {
		f.logger.Warnw("request failed", "url", urlStr, "error", err)
		return "", err
	}
	f.logger.Debugw("fetched page",
		"url", urlStr,
		"status", result.StatusCode,
		"size", len(result.HTML),
	)
	return result.HTML, nil
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, urlStr string) (string, error)

// Page calls f.
func (f FetcherFunc) Page(ctx context.Context, urlStr string) (string, error) {
	return f(ctx, urlStr)
}
