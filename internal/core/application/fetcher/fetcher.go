// Package fetcher collects search results across provider pages with a
// bounded retry per page.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/clock"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/retry"
)

// DefaultPageDelay is the pause between two successful page fetches.
const DefaultPageDelay = 500 * time.Millisecond

// Request describes one multi-page fetch.
type Request struct {
	Query   vacancy.Query
	PerPage int
	// MaxPages caps the number of pages; zero means no cap.
	MaxPages int
}

// Result is the accumulated outcome of a fetch.
type Result struct {
	Items []vacancy.Vacancy
	// Found comes from the first page.
	Found int
	// Pages is the number of pages actually fetched.
	Pages   int
	Elapsed time.Duration
}

// ElapsedMs is the fetch wall time in milliseconds.
func (r Result) ElapsedMs() int64 {
	return r.Elapsed.Milliseconds()
}

// Fetcher walks provider pages from 0 until the provider runs out of results,
// MaxPages is reached or a page keeps failing after all retries. Upstream
// failures never escape: a failed page ends the walk and whatever was
// collected so far is returned.
type Fetcher struct {
	provider  ports.SearchProvider
	policy    retry.Policy
	pageDelay time.Duration
	clock     clock.Clock
	logger    *slog.Logger
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

func WithPolicy(p retry.Policy) Option {
	return func(f *Fetcher) { f.policy = p }
}

func WithPageDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.pageDelay = d }
}

func WithClock(c clock.Clock) Option {
	return func(f *Fetcher) { f.clock = c }
}

func NewFetcher(provider ports.SearchProvider, logger *slog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		provider:  provider,
		policy:    retry.NewPolicy(retry.DefaultMaxAttempts, retry.DefaultBaseDelay),
		pageDelay: DefaultPageDelay,
		clock:     clock.System{},
		logger:    logger.With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch runs the page walk. The only error it returns is
// ports.ErrProviderUnavailable (and input validation errors).
func (f *Fetcher) Fetch(ctx context.Context, req Request) (Result, error) {
	if req.PerPage <= 0 || req.PerPage > ports.MaxPerPage {
		return Result{}, errs.NewValueIsOutOfRangeError("perPage", req.PerPage, 1, ports.MaxPerPage)
	}
	if req.MaxPages < 0 {
		return Result{}, errs.NewValueIsOutOfRangeError("maxPages", req.MaxPages, 0, "unbounded")
	}

	started := f.clock.Now()
	var result Result

	// limit is the page count to walk; zero means "until an empty page".
	limit := req.MaxPages
	for page := 0; limit == 0 || page < limit; page++ {
		got, err := f.fetchPage(ctx, req, page)
		if errors.Is(err, ports.ErrProviderUnavailable) {
			result.Elapsed = f.clock.Now().Sub(started)
			return result, err
		}
		if err != nil {
			f.logger.WarnContext(ctx, "Page fetch failed, returning partial results",
				"query", req.Query.Text, "page", page, "collected", len(result.Items), "error", err)
			break
		}
		if len(got.Items) == 0 {
			break
		}

		result.Items = append(result.Items, got.Items...)
		result.Pages++
		if page == 0 {
			result.Found = got.Found
			// Later pages may report a different count; page 0 decides.
			if got.Pages > 0 && (limit == 0 || got.Pages < limit) {
				limit = got.Pages
			}
		}

		if limit != 0 && page+1 >= limit {
			break
		}
		if err = f.clock.Sleep(ctx, f.pageDelay); err != nil {
			break
		}
	}

	result.Elapsed = f.clock.Now().Sub(started)
	f.logger.DebugContext(ctx, "Fetch finished",
		"query", req.Query.Text, "items", len(result.Items), "pages", result.Pages, "elapsed_ms", result.ElapsedMs())
	return result, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, req Request, page int) (vacancy.Page, error) {
	var got vacancy.Page
	err := f.policy.Do(ctx, func(ctx context.Context) error {
		p, err := f.provider.SearchPage(ctx, ports.PageRequest{Query: req.Query, Page: page, PerPage: req.PerPage})
		if errors.Is(err, ports.ErrProviderUnavailable) {
			return retry.Permanent(err)
		}
		if err != nil {
			return err
		}
		got = p
		return nil
	}, func(err error, attempt int, delay time.Duration) {
		f.logger.WarnContext(ctx, "Page fetch attempt failed, retrying",
			"page", page, "attempt", attempt, "delay", delay, "error", err)
	})
	return got, err
}
