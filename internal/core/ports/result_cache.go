package ports

import (
	"context"
	"time"

	"vacancybot/internal/core/domain/model/vacancy"
)

// DefaultResultTTL is how long a cached result list stays usable for pagination.
const DefaultResultTTL = 1800 * time.Second

// CachedResult is what a search leaves behind for pagination clicks.
type CachedResult struct {
	Vacancies  []vacancy.Vacancy `json:"vacancies"`
	TotalFound int               `json:"total_found"`
}

// ResultCache keeps recent result lists per (user, normalized query text).
// Implementations must never return an entry older than their TTL.
type ResultCache interface {
	// Get returns the entry and true on a hit.
	Get(ctx context.Context, userID int64, queryText string) (CachedResult, bool, error)
	// Put stores or replaces the entry and resets its age.
	Put(ctx context.Context, userID int64, queryText string, result CachedResult) error
}
