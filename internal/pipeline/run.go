// Package pipeline turns input rows into job board results, one row at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard-finder/internal/detect"
	"github.com/jonathan/jobboard-finder/internal/fetch"
	"github.com/jonathan/jobboard-finder/internal/observability"
	"github.com/jonathan/jobboard-finder/internal/table"
	"github.com/jonathan/jobboard-finder/internal/types"
)

// Mode controls what happens when the application URL is itself a job board URL.
type Mode string

const (
	// ModeMerge always fetches the page and pools the direct match with what the page links to.
	ModeMerge Mode = "merge"
	// ModeDirect reports a direct match immediately without fetching the page.
	ModeDirect Mode = "direct"
)

// MissingURLPolicy controls rows without an application URL.
type MissingURLPolicy string

const (
	// MissingURLFlag emits an empty result noted no_apply_url.
	MissingURLFlag MissingURLPolicy = "flag"
	// MissingURLSkip emits nothing for the row.
	MissingURLSkip MissingURLPolicy = "skip"
)

// Options configures row processing.
type Options struct {
	Mode         Mode
	MissingURL   MissingURLPolicy
	FollowFrames bool          // fetch iframe content, not just scan iframe URLs
	Delay        time.Duration // pause between rows
}

// DefaultOptions returns the merge/flag behavior with frame fetching and a one second delay.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeMerge,
		MissingURL:   MissingURLFlag,
		FollowFrames: true,
		Delay:        time.Second,
	}
}

// Source yields input rows and returns io.EOF after the last one.
type Source interface {
	Next() (types.InputRow, error)
}

// Sink receives output rows in input order.
type Sink interface {
	Write(row types.OutputRow) error
}

// Pipeline processes rows sequentially.
type Pipeline struct {
	scanner *detect.Scanner
	fetcher fetch.Fetcher
	opts    Options
	logger  *zap.SugaredLogger
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates a pipeline. An empty Mode or MissingURL falls back to merge and
// flag; a nil logger discards logs.
func New(scanner *detect.Scanner, fetcher fetch.Fetcher, opts Options, logger *zap.SugaredLogger) *Pipeline {
	if opts.Mode == "" {
		opts.Mode = ModeMerge
	}
	if opts.MissingURL == "" {
		opts.MissingURL = MissingURLFlag
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{
		scanner: scanner,
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Run processes every row from src and writes results to sink in input order.
// Row-level failures are recorded in the output and malformed input rows are
// skipped; only other source errors, sink and context errors stop the run.
// The returned summary is valid even on error.
func (p *Pipeline) Run(ctx context.Context, src Source, sink Sink) (*types.Summary, error) {
	summary := types.NewSummary(uuid.NewString())
	logger := p.logger.With(observability.FieldRunID, summary.RunID)
	start := time.Now()
	defer func() { summary.DurationMS = time.Since(start).Milliseconds() }()

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		in, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, table.ErrMalformedRow) {
			summary.RowsRead++
			summary.RowsSkipped++
			logger.Warnw("skipping malformed row", observability.FieldError, err)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read row %d: %w", summary.RowsRead+1, err)
		}

		if summary.RowsRead > 0 && p.opts.Delay > 0 {
			if err := p.sleep(ctx, p.opts.Delay); err != nil {
				return summary, err
			}
		}
		summary.RowsRead++

		out, emit := p.processRow(ctx, logger, in)
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !emit {
			summary.RowsSkipped++
			continue
		}
		if err := sink.Write(out); err != nil {
			return summary, fmt.Errorf("failed to write row %d (%s): %w", summary.RowsRead, in.Company, err)
		}
		summary.Record(out)
	}

	logger.Infow("run complete",
		"rows_read", summary.RowsRead,
		"rows_written", summary.RowsWritten,
		"matched", summary.Matched,
	)
	return summary, nil
}

// ProcessRow computes the result for a single row. It reports false when the
// row should not be written.
func (p *Pipeline) ProcessRow(ctx context.Context, in types.InputRow) (types.OutputRow, bool) {
	return p.processRow(ctx, p.logger, in)
}

func (p *Pipeline) processRow(ctx context.Context, logger *zap.SugaredLogger, in types.InputRow) (types.OutputRow, bool) {
	logger = logger.With(observability.FieldCompany, in.Company)

	out, emit := p.classify(ctx, logger, in)
	if emit {
		logger.Infow("row done",
			observability.FieldNote, out.Note,
			observability.FieldVendor, out.Vendor,
			"board_url", out.BoardURL,
		)
	}
	return out, emit
}

func (p *Pipeline) classify(ctx context.Context, logger *zap.SugaredLogger, in types.InputRow) (types.OutputRow, bool) {
	norm := detect.NormalizeURL(in.ApplyURL)
	if norm == "" {
		logger.Warnw("no apply URL")
		if p.opts.MissingURL == MissingURLSkip {
			return types.OutputRow{}, false
		}
		return types.OutputRow{
			Company:   in.Company,
			SourceURL: in.ApplyURL,
			Note:      types.NoteNoApplyURL,
		}, true
	}

	logger = logger.With(observability.FieldURL, norm)
	logger.Infow("processing row")
	out := types.OutputRow{Company: in.Company, SourceURL: norm}

	direct := p.scanner.Scan(norm)
	if p.opts.Mode == ModeDirect && len(direct) > 0 {
		setBoard(&out, direct[0], types.NoteDirectMatch)
		return out, true
	}

	html, err := p.fetcher.Page(ctx, norm)
	if err != nil {
		logger.Warnw("fetch failed", observability.FieldError, err)
		if best, ok := detect.DedupeAndSelect(direct); ok && p.opts.Mode == ModeMerge {
			setBoard(&out, best, types.NoteDirectMatch)
			return out, true
		}
		out.Note = types.NoteFetchError
		return out, true
	}

	pool := make([]types.Candidate, 0, len(direct))
	pool = append(pool, direct...)
	pool = append(pool, p.scanner.Scan(html)...)

	doc, err := detect.ParseHTML(html)
	if err != nil {
		logger.Debugw("skipping frames", observability.FieldError, err)
	} else {
		var frameFetcher fetch.Fetcher
		if p.opts.FollowFrames {
			frameFetcher = p.fetcher
		}
		frames, err := p.scanner.ScanFrames(ctx, doc, norm, frameFetcher)
		if err != nil {
			logger.Debugw("skipping frames", observability.FieldError, err)
		}
		pool = append(pool, frames...)

		if detect.DetectEmailPDF(doc) {
			out.Update = types.UpdateEmailPDF
		}
	}

	if len(pool) == 0 {
		logger.Warnw("no known job board URLs found in page")
		out.Note = types.NoteNoMatchInHTML
		return out, true
	}
	logger.Debugw("candidates collected", observability.FieldCount, len(pool))

	best, ok := detect.DedupeAndSelect(pool)
	if !ok {
		logger.Warnw("candidates present but none selected")
		out.Note = types.NoteCandidateSelectionFailed
		return out, true
	}

	note := types.NoteHTMLMatch
	if containsCandidate(direct, best) {
		note = types.NoteDirectMatch
	}
	setBoard(&out, best, note)
	return out, true
}

func setBoard(out *types.OutputRow, c types.Candidate, note string) {
	out.Vendor = c.Vendor
	out.BoardURL = c.URL
	out.Note = note
}

func containsCandidate(candidates []types.Candidate, c types.Candidate) bool {
	for _, x := range candidates {
		if x == c {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
