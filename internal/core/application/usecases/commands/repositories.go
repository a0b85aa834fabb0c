// Package commands contains the operations that change state or talk to users:
// running a search, delivering scheduled results, turning result pages and
// recording clicks. Handlers follow one pattern: validate the command, do the
// work through narrow collaborator interfaces, commit through a unit of work.
package commands

import (
	"context"

	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/history"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// SearchResultRepoFactory provides access to result links within a transaction.
	SearchResultRepoFactory interface {
		SearchResultRepository() ports.SearchResultRepository
	}

	// UserUoW manages transactions for delivery state updates.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// SearchResultUoW manages transactions touching result links.
	SearchResultUoW interface {
		TxManager
		SearchResultRepoFactory
	}

	// SearchResultUoWFactory creates new search result unit of work instances.
	SearchResultUoWFactory interface {
		Create() SearchResultUoW
	}
)

// Collaborators shared by the search and delivery handlers.
type (
	// VacancyFetcher runs a multi-page provider search.
	VacancyFetcher interface {
		Fetch(ctx context.Context, req fetcher.Request) (fetcher.Result, error)
	}

	// SearchRecorder persists executed searches and finds stored queries.
	SearchRecorder interface {
		Record(ctx context.Context, e history.Entry) (kernel.UUID, error)
		LatestQuery(ctx context.Context, userID int64, text string) (search.QueryRecord, error)
	}
)
