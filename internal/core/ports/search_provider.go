package ports

import (
	"context"
	"errors"

	"vacancybot/internal/core/domain/model/vacancy"
)

// ErrProviderUnavailable means the listings provider is not configured.
// It is never retried and surfaces to users as "service unavailable".
var ErrProviderUnavailable = errors.New("vacancy provider is not configured")

// MaxPerPage is the largest page size the provider accepts.
const MaxPerPage = 100

// PageRequest asks the provider for one page of results.
type PageRequest struct {
	Query vacancy.Query
	// Page is 0-based.
	Page    int
	PerPage int
}

// SearchProvider is the external vacancy listings API.
type SearchProvider interface {
	// SearchPage fetches a single page. Transport failures, non-success
	// statuses and malformed payloads are returned as errors and are
	// considered transient by callers; ErrProviderUnavailable is not.
	SearchPage(ctx context.Context, req PageRequest) (vacancy.Page, error)
}
