// Package search describes the durable trace of a search: the query record
// created for every fetch and the ordered links from it to the vacancies it
// returned.
package search

import (
	"time"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"
)

// QueryRecord is created once per fetch, including fetches that found nothing.
type QueryRecord struct {
	ID           kernel.UUID
	UserID       int64
	Text         string
	AreaID       string
	Filters      vacancy.SearchFilters
	ResultsCount int
	ResponseTime time.Duration
	CreatedAt    time.Time
}

// NewQueryRecord stamps a fresh record for q.
func NewQueryRecord(
	userID int64,
	q vacancy.Query,
	resultsCount int,
	responseTime time.Duration,
	now time.Time,
) (QueryRecord, error) {
	if userID == 0 {
		return QueryRecord{}, errs.NewValueIsRequiredError("userID")
	}
	if q.Text == "" {
		return QueryRecord{}, errs.NewValueIsRequiredError("queryText")
	}
	if resultsCount < 0 {
		return QueryRecord{}, errs.NewValueIsOutOfRangeError("resultsCount", resultsCount, 0, "unbounded")
	}
	return QueryRecord{
		ID:           kernel.NewUUID(),
		UserID:       userID,
		Text:         q.Text,
		AreaID:       q.AreaID,
		Filters:      q.Filters,
		ResultsCount: resultsCount,
		ResponseTime: responseTime,
		CreatedAt:    now.UTC(),
	}, nil
}

// ResultLink places a stored vacancy at a 1-based position of a query's results.
type ResultLink struct {
	VacancyID kernel.UUID
	Position  int
}

// NewResultLinks turns result-ordered vacancy ids into dense positions 1..n.
func NewResultLinks(vacancyIDs []kernel.UUID) []ResultLink {
	links := make([]ResultLink, 0, len(vacancyIDs))
	for i, id := range vacancyIDs {
		links = append(links, ResultLink{VacancyID: id, Position: i + 1})
	}
	return links
}
