package ports

import (
	"context"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/vacancy"
)

// SearchResultRepository links query records to the vacancies they returned.
type SearchResultRepository interface {
	// Link stores the ordered result list of a query.
	Link(ctx context.Context, queryID kernel.UUID, userID int64, links []search.ResultLink) error

	// VacanciesForQuery returns the linked vacancies ordered by position.
	VacanciesForQuery(ctx context.Context, queryID kernel.UUID) ([]vacancy.Vacancy, error)

	// MarkClicked flags every result row of the user pointing at the vacancy.
	// Returns errs.ErrObjectNotFound if the user never received it.
	MarkClicked(ctx context.Context, userID int64, vacancyID kernel.UUID) error
}
