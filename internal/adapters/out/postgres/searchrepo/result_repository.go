package searchrepo

import (
	"context"

	"vacancybot/internal/adapters/out/postgres/vacancyrepo"
	"vacancybot/internal/core/domain/model/kernel"
	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"

	"gorm.io/gorm"
)

const linkBatchSize = 200

// GormSearchResultRepository implements ports.SearchResultRepository using GORM.
type GormSearchResultRepository struct {
	db *gorm.DB
}

func NewGormSearchResultRepository(db *gorm.DB) *GormSearchResultRepository {
	return &GormSearchResultRepository{db: db}
}

// Link stores the result rows of a query.
func (r *GormSearchResultRepository) Link(
	ctx context.Context,
	queryID kernel.UUID,
	userID int64,
	links []search.ResultLink,
) error {
	if err := queryID.Validate(); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	dtos := make([]UserSearchResultDTO, 0, len(links))
	for _, link := range links {
		if link.Position < 1 {
			return errs.NewValueIsOutOfRangeError("position", link.Position, 1, "unbounded")
		}
		dtos = append(dtos, UserSearchResultDTO{
			UserID:        userID,
			SearchQueryID: queryID.Bytes(),
			VacancyID:     link.VacancyID.Bytes(),
			Position:      link.Position,
		})
	}
	return r.db.WithContext(ctx).CreateInBatches(&dtos, linkBatchSize).Error
}

// VacanciesForQuery loads the query's vacancies in result order.
func (r *GormSearchResultRepository) VacanciesForQuery(ctx context.Context, queryID kernel.UUID) ([]vacancy.Vacancy, error) {
	if err := queryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []vacancyrepo.VacancyDTO
	err := r.db.WithContext(ctx).
		Table("user_search_results AS r").
		Select("v.*").
		Joins("JOIN vacancies AS v ON v.id = r.vacancy_id").
		Where("r.search_query_id = ?", queryID.Bytes()).
		Order("r.position ASC").
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]vacancy.Vacancy, 0, len(dtos))
	for _, dto := range dtos {
		result = append(result, vacancyrepo.ToDomain(dto))
	}
	return result, nil
}

// MarkClicked sets the clicked flag on the user's rows for the vacancy.
func (r *GormSearchResultRepository) MarkClicked(ctx context.Context, userID int64, vacancyID kernel.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&UserSearchResultDTO{}).
		Where("user_id = ? AND vacancy_id = ?", userID, vacancyID.Bytes()).
		Update("clicked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("searchResult", vacancyID.String())
	}
	return nil
}
