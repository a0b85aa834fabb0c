package ports

import (
	"context"

	"vacancybot/internal/core/domain/model/search"
)

// SearchQueryRepository stores one record per executed search.
type SearchQueryRepository interface {
	// Add persists a new query record.
	Add(ctx context.Context, record search.QueryRecord) error

	// Latest returns the newest record of the user. When text is empty any
	// query matches; otherwise only records with exactly that text do.
	// Returns errs.ErrObjectNotFound when there is none.
	Latest(ctx context.Context, userID int64, text string) (search.QueryRecord, error)
}
