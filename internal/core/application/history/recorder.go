// Package history records executed searches in the result store and reads
// them back for pagination and scheduled delivery.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/core/ports"
)

// Entry is one executed search.
type Entry struct {
	UserID    int64
	Query     vacancy.Query
	Vacancies []vacancy.Vacancy
	Elapsed   time.Duration
	Now       time.Time
}

// Recorder writes the whole trace of a search (query record, vacancy upserts,
// result links) in a single transaction.
//
// Example:
//
//	recorder := history.NewRecorder(uowFactory, logger)
//	queryID, err := recorder.Record(ctx, history.Entry{
//	    UserID:    user.ID,
//	    Query:     q,
//	    Vacancies: result.Items,
//	    Elapsed:   result.Elapsed,
//	    Now:       time.Now(),
//	})
type Recorder struct {
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

func NewRecorder(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *Recorder {
	return &Recorder{
		uowFactory: uowFactory,
		logger:     logger.With("component", "history"),
	}
}

// Record persists e and returns the id of the new query record. A search
// without results still gets a record. Listings that cannot be stored and
// repeated external ids are left out; the rest keep their order and get
// dense positions. On error nothing is persisted.
func (r *Recorder) Record(ctx context.Context, e Entry) (kernel.UUID, error) {
	items := r.storable(ctx, e.Vacancies)

	record, err := search.NewQueryRecord(e.UserID, e.Query, len(items), e.Elapsed, e.Now)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := r.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SearchQueryRepository().Add(ctx, record); err != nil {
		return kernel.UUID{}, fmt.Errorf("add search query: %w", err)
	}

	if len(items) > 0 {
		ids, upsertErr := uow.VacancyRepository().Upsert(ctx, items)
		if upsertErr != nil {
			return kernel.UUID{}, fmt.Errorf("upsert vacancies: %w", upsertErr)
		}

		ordered := make([]kernel.UUID, 0, len(items))
		for _, v := range items {
			ordered = append(ordered, ids[v.ExternalID])
		}

		if err = uow.SearchResultRepository().Link(ctx, record.ID, e.UserID, search.NewResultLinks(ordered)); err != nil {
			return kernel.UUID{}, fmt.Errorf("link results: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	r.logger.DebugContext(ctx, "search recorded",
		"user_id", e.UserID,
		"query", e.Query.Text,
		"results", len(items),
	)
	return record.ID, nil
}

func (r *Recorder) storable(ctx context.Context, items []vacancy.Vacancy) []vacancy.Vacancy {
	seen := make(map[string]struct{}, len(items))
	kept := make([]vacancy.Vacancy, 0, len(items))
	for _, v := range items {
		if err := v.Validate(); err != nil {
			r.logger.WarnContext(ctx, "skip unstorable vacancy", "external_id", v.ExternalID, "error", err)
			continue
		}
		if _, ok := seen[v.ExternalID]; ok {
			continue
		}
		seen[v.ExternalID] = struct{}{}
		kept = append(kept, v)
	}
	return kept
}

// LatestQuery returns the user's newest query record with exactly text, or
// with any text when text is empty. Returns errs.ErrObjectNotFound if none.
func (r *Recorder) LatestQuery(ctx context.Context, userID int64, text string) (search.QueryRecord, error) {
	return r.uowFactory.Create().SearchQueryRepository().Latest(ctx, userID, text)
}

// Results returns the vacancies linked to a query record in result order.
func (r *Recorder) Results(ctx context.Context, queryID kernel.UUID) ([]vacancy.Vacancy, error) {
	return r.uowFactory.Create().SearchResultRepository().VacanciesForQuery(ctx, queryID)
}
