// Package searchrepo persists search query records and the ordered links
// between a query and the vacancies it returned.
package searchrepo

import (
	"encoding/json"
	"time"

	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/vacancy"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchQueryDTO is the "search_queries" row.
type SearchQueryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         int64     `gorm:"not null;index:idx_search_queries_user_created,priority:1"`
	QueryText      string    `gorm:"not null"`
	AreaID         string    `gorm:"size:16"`
	Filters        datatypes.JSONMap
	ResultsCount   int
	ResponseTimeMs int64
	CreatedAt      time.Time `gorm:"not null;index:idx_search_queries_user_created,priority:2,sort:desc"`
}

func (SearchQueryDTO) TableName() string {
	return "search_queries"
}

// UserSearchResultDTO is the "user_search_results" row linking a query to a
// vacancy at a 1-based position.
type UserSearchResultDTO struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        int64     `gorm:"not null;index:idx_user_search_results_user_vacancy,priority:1"`
	SearchQueryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_search_results_query_position,priority:1"`
	VacancyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_search_results_user_vacancy,priority:2"`
	Position      int       `gorm:"not null;uniqueIndex:idx_user_search_results_query_position,priority:2"`
	Clicked       bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

func (UserSearchResultDTO) TableName() string {
	return "user_search_results"
}

func queryFromDomain(r search.QueryRecord) (SearchQueryDTO, error) {
	filters, err := filtersToMap(r.Filters)
	if err != nil {
		return SearchQueryDTO{}, err
	}
	return SearchQueryDTO{
		ID:             r.ID.Bytes(),
		UserID:         r.UserID,
		QueryText:      r.Text,
		AreaID:         r.AreaID,
		Filters:        filters,
		ResultsCount:   r.ResultsCount,
		ResponseTimeMs: r.ResponseTime.Milliseconds(),
		CreatedAt:      r.CreatedAt,
	}, nil
}

func queryToDomain(dto SearchQueryDTO) (search.QueryRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return search.QueryRecord{}, err
	}
	filters, err := FiltersFromMap(dto.Filters)
	if err != nil {
		return search.QueryRecord{}, err
	}
	return search.QueryRecord{
		ID:           id,
		UserID:       dto.UserID,
		Text:         dto.QueryText,
		AreaID:       dto.AreaID,
		Filters:      filters,
		ResultsCount: dto.ResultsCount,
		ResponseTime: time.Duration(dto.ResponseTimeMs) * time.Millisecond,
		CreatedAt:    dto.CreatedAt,
	}, nil
}

func filtersToMap(f vacancy.SearchFilters) (datatypes.JSONMap, error) {
	if f.IsEmpty() {
		return datatypes.JSONMap{}, nil
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	m := datatypes.JSONMap{}
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// FiltersFromMap decodes the JSON filter document shared by search_queries
// and users.
func FiltersFromMap(m datatypes.JSONMap) (vacancy.SearchFilters, error) {
	var f vacancy.SearchFilters
	if len(m) == 0 {
		return f, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return f, err
	}
	err = json.Unmarshal(raw, &f)
	return f, err
}

// FiltersToMap is the inverse of FiltersFromMap.
func FiltersToMap(f vacancy.SearchFilters) (datatypes.JSONMap, error) {
	return filtersToMap(f)
}
