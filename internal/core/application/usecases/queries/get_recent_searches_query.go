package queries

import (
	"errors"
	"time"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/pkg/errs"
	"vacancybot/internal/pkg/guard"
)

const (
	DefaultRecentSearchesLimit = 10
	MaxRecentSearchesLimit     = 100
)

var ErrGetRecentSearchesQueryIsNotConstructed = errors.New(
	"GetRecentSearchesQuery must be created via NewGetRecentSearchesQuery constructor",
)

// GetRecentSearchesQuery lists a user's latest searches, newest first.
type GetRecentSearchesQuery struct {
	userID int64
	limit  int

	guard guard.ConstructorGuard
}

// NewGetRecentSearchesQuery creates the query. A zero limit means
// DefaultRecentSearchesLimit.
func NewGetRecentSearchesQuery(userID int64, limit int) (GetRecentSearchesQuery, error) {
	if userID <= 0 {
		return GetRecentSearchesQuery{}, errs.NewValueIsRequiredError("userID")
	}
	if limit == 0 {
		limit = DefaultRecentSearchesLimit
	}
	if limit < 1 || limit > MaxRecentSearchesLimit {
		return GetRecentSearchesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRecentSearchesLimit)
	}

	return GetRecentSearchesQuery{userID: userID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentSearchesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentSearchesQueryIsNotConstructed)
}

func (q GetRecentSearchesQuery) UserID() int64 {
	return q.userID
}

func (q GetRecentSearchesQuery) Limit() int {
	return q.limit
}

// GetRecentSearchesQueryResponse is one search in the history read model.
type GetRecentSearchesQueryResponse struct {
	ID             kernel.UUID
	Text           string
	ResultsCount   int
	ResponseTimeMs int64
	Clicked        int
	CreatedAt      time.Time
}
