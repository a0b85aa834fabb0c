package commands

import (
	"context"
	"log/slog"

	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/ports"
)

// resultKeeper stores a finished search in the result store and the cache.
// Neither failure aborts the search: the user still gets the in-memory result.
type resultKeeper struct {
	recorder SearchRecorder
	cache    ports.ResultCache
	logger   *slog.Logger
}

func (k resultKeeper) keep(ctx context.Context, e history.Entry, totalFound int) kernel.UUID {
	queryID, err := k.recorder.Record(ctx, e)
	if err != nil {
		k.logger.WarnContext(ctx, "failed to record search",
			"user_id", e.UserID,
			"query", e.Query.Text,
			"error", err,
		)
	}

	if len(e.Vacancies) == 0 {
		return queryID
	}

	cached := ports.CachedResult{Vacancies: e.Vacancies, TotalFound: totalFound}
	if err = k.cache.Put(ctx, e.UserID, e.Query.Text, cached); err != nil {
		k.logger.WarnContext(ctx, "failed to cache search results",
			"user_id", e.UserID,
			"query", e.Query.Text,
			"error", err,
		)
	}

	return queryID
}
