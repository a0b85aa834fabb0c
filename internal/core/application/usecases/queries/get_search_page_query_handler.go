package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"vacancybot/internal/core/application/presenter"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/domain/services"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// ErrSearchNotFound means the search expired from the cache and the store has
// no results for it either.
var ErrSearchNotFound = errors.New("search results not found")

// ResultStore reads searches recorded earlier.
type ResultStore interface {
	LatestQuery(ctx context.Context, userID int64, text string) (search.QueryRecord, error)
	Results(ctx context.Context, queryID kernel.UUID) ([]vacancy.Vacancy, error)
}

// GetSearchPageQueryResponse is one rendered page.
type GetSearchPageQueryResponse struct {
	QueryText string
	// Items are the listings on this page only.
	Items   []vacancy.Vacancy
	Layout  services.Layout
	Message ports.Message
	// FromCache is false when the list had to be reloaded from the store.
	FromCache bool
}

// GetSearchPageQueryHandler serves page turns. It reads the cache first and
// falls back to the newest stored search with the same text, re-warming the
// cache. Concurrent misses for the same search share one store read.
type GetSearchPageQueryHandler struct {
	cache    ports.ResultCache
	store    ResultStore
	pageSize int
	loads    *singleflight.Group
	logger   *slog.Logger
}

func NewGetSearchPageQueryHandler(
	cache ports.ResultCache,
	store ResultStore,
	pageSize int,
	logger *slog.Logger,
) GetSearchPageQueryHandler {
	return GetSearchPageQueryHandler{
		cache:    cache,
		store:    store,
		pageSize: pageSize,
		loads:    &singleflight.Group{},
		logger:   logger.With("component", "search_page"),
	}
}

// Handle returns the requested page. It fails with ErrSearchNotFound when
// there is nothing to page through and with errs.ErrValueIsOutOfRange when
// the page does not exist.
func (h GetSearchPageQueryHandler) Handle(ctx context.Context, query GetSearchPageQuery) (GetSearchPageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSearchPageQueryResponse{}, err
	}

	result, fromCache, err := h.results(ctx, query.UserID(), query.Text())
	if err != nil {
		return GetSearchPageQueryResponse{}, err
	}
	if len(result.Vacancies) == 0 {
		return GetSearchPageQueryResponse{}, ErrSearchNotFound
	}

	layout, err := services.NewPaginator().Render(len(result.Vacancies), query.Page(), h.pageSize, result.TotalFound)
	if err != nil {
		return GetSearchPageQueryResponse{}, err
	}

	return GetSearchPageQueryResponse{
		QueryText: query.Text(),
		Items:     vacancy.PageOf(result.Vacancies, layout.Start, layout.End),
		Layout:    layout,
		Message:   presenter.New(query.Lang()).ResultsPage(presenter.SearchHeading, query.Text(), result.Vacancies, layout),
		FromCache: fromCache,
	}, nil
}

func (h GetSearchPageQueryHandler) results(ctx context.Context, userID int64, text string) (ports.CachedResult, bool, error) {
	cached, hit, err := h.cache.Get(ctx, userID, text)
	if err != nil {
		h.logger.WarnContext(ctx, "result cache read failed", "user_id", userID, "error", err)
	}
	if err == nil && hit {
		return cached, true, nil
	}

	// The load is shared with later callers, so it must outlive the first one.
	shared := context.WithoutCancel(ctx)
	key := strconv.FormatInt(userID, 10) + "\x00" + text
	v, err, _ := h.loads.Do(key, func() (any, error) {
		return h.load(shared, userID, text)
	})
	if err != nil {
		return ports.CachedResult{}, false, err
	}
	return v.(ports.CachedResult), false, nil
}

func (h GetSearchPageQueryHandler) load(ctx context.Context, userID int64, text string) (ports.CachedResult, error) {
	record, err := h.store.LatestQuery(ctx, userID, text)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ports.CachedResult{}, ErrSearchNotFound
	}
	if err != nil {
		return ports.CachedResult{}, fmt.Errorf("load stored query: %w", err)
	}

	items, err := h.store.Results(ctx, record.ID)
	if err != nil {
		return ports.CachedResult{}, fmt.Errorf("load stored results: %w", err)
	}
	if len(items) == 0 {
		return ports.CachedResult{}, ErrSearchNotFound
	}

	result := ports.CachedResult{Vacancies: items, TotalFound: record.ResultsCount}
	if err = h.cache.Put(ctx, userID, text, result); err != nil {
		h.logger.WarnContext(ctx, "failed to re-cache stored results", "user_id", userID, "error", err)
	}

	h.logger.DebugContext(ctx, "search results restored from store",
		"user_id", userID,
		"query", text,
		"vacancies", len(items),
	)
	return result, nil
}
