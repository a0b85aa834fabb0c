package http

import (
	"context"

	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/application/usecases/queries"
)

// The server depends on use cases through these narrow interfaces; the
// command and query handlers satisfy them as they are.

type SearchVacanciesHandler interface {
	Handle(ctx context.Context, cmd commands.SearchVacanciesCommand) (commands.SearchVacanciesResult, error)
}

type SearchPageHandler interface {
	Handle(ctx context.Context, query queries.GetSearchPageQuery) (queries.GetSearchPageQueryResponse, error)
}

type RecentSearchesHandler interface {
	Handle(ctx context.Context, query queries.GetRecentSearchesQuery) ([]queries.GetRecentSearchesQueryResponse, error)
}

type OpenSearchPageHandler interface {
	Handle(ctx context.Context, cmd commands.OpenSearchPageCommand) (commands.OpenSearchPageResult, error)
}

type DeliverVacanciesHandler interface {
	Handle(ctx context.Context, cmd commands.DeliverVacanciesCommand) (commands.DeliveryOutcome, error)
}

type MarkVacancyClickedHandler interface {
	Handle(ctx context.Context, cmd commands.MarkVacancyClickedCommand) error
}

var (
	_ SearchVacanciesHandler    = commands.SearchVacanciesCommandHandler{}
	_ SearchPageHandler         = queries.GetSearchPageQueryHandler{}
	_ RecentSearchesHandler     = queries.GetRecentSearchesQueryHandler{}
	_ OpenSearchPageHandler     = commands.OpenSearchPageCommandHandler{}
	_ DeliverVacanciesHandler   = commands.DeliverVacanciesCommandHandler{}
	_ MarkVacancyClickedHandler = commands.MarkVacancyClickedCommandHandler{}
)
