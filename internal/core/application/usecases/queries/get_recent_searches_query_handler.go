package queries

import (
	"context"

	"vacancybot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecentSearchesQueryHandler reads the search history straight from SQL.
// Each row also counts how many of the search's results were clicked.
//
// Example:
//
//	handler := NewGetRecentSearchesQueryHandler(db)
//	query, _ := NewGetRecentSearchesQuery(userID, 5)
//	searches, err := handler.Handle(ctx, query)
type GetRecentSearchesQueryHandler struct {
	db *gorm.DB
}

func NewGetRecentSearchesQueryHandler(db *gorm.DB) GetRecentSearchesQueryHandler {
	return GetRecentSearchesQueryHandler{db: db}
}

func (h GetRecentSearchesQueryHandler) Handle(
	ctx context.Context,
	query GetRecentSearchesQuery,
) ([]GetRecentSearchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	searches := make([]GetRecentSearchesQueryResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			q.id,
			q.query_text,
			q.results_count,
			q.response_time_ms,
			COUNT(r.id) FILTER (WHERE r.clicked) AS clicked,
			q.created_at
		FROM search_queries AS q
		LEFT JOIN user_search_results AS r ON r.search_query_id = q.id
		WHERE q.user_id = ?
		GROUP BY q.id
		ORDER BY q.created_at DESC
		LIMIT ?
	`, query.UserID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetRecentSearchesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Text,
			&item.ResultsCount,
			&item.ResponseTimeMs,
			&item.Clicked,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		searchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = searchID
		searches = append(searches, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return searches, nil
}
