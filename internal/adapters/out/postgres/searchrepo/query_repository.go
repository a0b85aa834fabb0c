package searchrepo

import (
	"context"
	"errors"

	"vacancybot/internal/core/domain/model/search"
	"vacancybot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSearchQueryRepository implements ports.SearchQueryRepository using GORM.
type GormSearchQueryRepository struct {
	db *gorm.DB
}

func NewGormSearchQueryRepository(db *gorm.DB) *GormSearchQueryRepository {
	return &GormSearchQueryRepository{db: db}
}

// Add saves a new query record.
func (r *GormSearchQueryRepository) Add(ctx context.Context, record search.QueryRecord) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}
	dto, err := queryFromDomain(record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Latest returns the user's newest record, optionally restricted to text.
func (r *GormSearchQueryRepository) Latest(ctx context.Context, userID int64, text string) (search.QueryRecord, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ? AND query_text <> ''", userID)
	if text != "" {
		tx = tx.Where("query_text = ?", text)
	}

	var dto SearchQueryDTO
	err := tx.Order("created_at DESC").First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return search.QueryRecord{}, errs.NewObjectNotFoundError("searchQuery", userID)
	}
	if err != nil {
		return search.QueryRecord{}, err
	}
	return queryToDomain(dto)
}
